package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

// Routes builds the dev backend router.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(s.log))

	r.Get("/healthz", Healthz)
	r.Route("/api", func(r chi.Router) {
		r.Get("/beds", s.GetBeds)
		r.Get("/queue", s.GetQueue)
		r.Get("/notes/{bedID}", s.GetNotes)
		r.Post("/voice-note", s.PostVoiceNote)
		r.Post("/priority-patient-done", s.PostPatientDone)
		r.Get("/equipment/{bedID}", s.GetEquipment)
		r.Get("/equipment-summary", s.GetEquipmentSummary)
	})
	return r
}

// requestLogger logs method, path, status and latency for each request.
func requestLogger(log zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			log.Debug().
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", status).
				Dur("duration", time.Since(start)).
				Msg("request")
		})
	}
}
