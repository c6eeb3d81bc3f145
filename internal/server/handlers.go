package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jwulff/postop/internal/api"
	"github.com/jwulff/postop/internal/db"
	"github.com/jwulff/postop/internal/notes"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeStatus(w http.ResponseWriter, status int, message string) {
	result := "success"
	if status >= 400 {
		result = "error"
	}
	writeJSON(w, status, api.StatusResponse{Status: result, Message: message})
}

// GetBeds handles GET /api/beds.
func (s *Server) GetBeds(w http.ResponseWriter, r *http.Request) {
	beds, err := s.store.Beds()
	if err != nil {
		s.log.Error().Err(err).Msg("list beds")
		writeStatus(w, http.StatusInternalServerError, "failed to list beds")
		return
	}
	out := make([]api.Bed, 0, len(beds))
	for _, b := range beds {
		out = append(out, s.bedView(b))
	}
	writeJSON(w, http.StatusOK, out)
}

// GetQueue handles GET /api/queue.
func (s *Server) GetQueue(w http.ResponseWriter, r *http.Request) {
	snap, err := s.queue()
	if err != nil {
		s.log.Error().Err(err).Msg("build queue")
		writeStatus(w, http.StatusInternalServerError, "failed to build queue")
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

// GetNotes handles GET /api/notes/{bedID}.
func (s *Server) GetNotes(w http.ResponseWriter, r *http.Request) {
	bedID := chi.URLParam(r, "bedID")
	bed, err := s.store.Bed(bedID)
	if err != nil {
		s.log.Error().Err(err).Str("bed_id", bedID).Msg("load bed")
		writeStatus(w, http.StatusInternalServerError, "failed to load bed")
		return
	}
	if bed == nil {
		writeStatus(w, http.StatusNotFound, "unknown bed")
		return
	}

	stored, err := s.store.NotesForBed(bedID)
	if err != nil {
		s.log.Error().Err(err).Str("bed_id", bedID).Msg("list notes")
		writeStatus(w, http.StatusInternalServerError, "failed to list notes")
		return
	}
	out := make([]api.Note, 0, len(stored))
	for _, n := range stored {
		created := n.CreatedAt.UTC()
		out = append(out, api.Note{
			ID:                 n.ID,
			SpeakerType:        api.Speaker(n.SpeakerType),
			Content:            n.Content,
			EquipmentMentioned: n.Equipment,
			CreatedAt:          &created,
		})
	}
	writeJSON(w, http.StatusOK, out)
}

// PostVoiceNote handles POST /api/voice-note.
func (s *Server) PostVoiceNote(w http.ResponseWriter, r *http.Request) {
	var req api.VoiceNote
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeStatus(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	req.Content = strings.TrimSpace(req.Content)
	switch {
	case req.BedID == "":
		writeStatus(w, http.StatusBadRequest, "bed_id is required")
		return
	case !req.SpeakerType.Valid():
		writeStatus(w, http.StatusBadRequest, "speaker_type must be patient or nurse")
		return
	case req.Content == "":
		writeStatus(w, http.StatusBadRequest, "content is required")
		return
	}

	if err := s.addNote(req.BedID, req.SpeakerType, req.Content); err != nil {
		s.writeNoteError(w, req.BedID, err)
		return
	}
	s.log.Info().Str("bed_id", req.BedID).Str("speaker", string(req.SpeakerType)).Msg("voice note stored")
	writeStatus(w, http.StatusOK, "Note updated successfully")
}

// PostPatientDone handles POST /api/priority-patient-done.
func (s *Server) PostPatientDone(w http.ResponseWriter, r *http.Request) {
	var req api.PatientDone
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.BedID == "" {
		writeStatus(w, http.StatusBadRequest, "Invalid bed ID")
		return
	}

	next, err := s.nextAfter(req.BedID)
	if err != nil {
		s.log.Error().Err(err).Str("bed_id", req.BedID).Msg("pick next bed")
		writeStatus(w, http.StatusInternalServerError, "Failed to update patient status")
		return
	}
	if err := s.store.ResolveBed(s.newNote(req.BedID, api.SpeakerNurse, ResolvedNote), next); err != nil {
		s.writeNoteError(w, req.BedID, err)
		return
	}
	s.log.Info().Str("bed_id", req.BedID).Msg("patient marked done")
	writeStatus(w, http.StatusOK, "Patient marked as done")
}

// GetEquipment handles GET /api/equipment/{bedID}.
func (s *Server) GetEquipment(w http.ResponseWriter, r *http.Request) {
	bedID := chi.URLParam(r, "bedID")
	bed, err := s.store.Bed(bedID)
	if err != nil {
		s.log.Error().Err(err).Str("bed_id", bedID).Msg("load bed")
		writeStatus(w, http.StatusInternalServerError, "failed to load bed")
		return
	}
	items := []string{}
	if bed != nil {
		if found := notes.ExtractEquipment(bed.CurrentNote); found != nil {
			items = found
		}
	}
	writeJSON(w, http.StatusOK, items)
}

// GetEquipmentSummary handles GET /api/equipment-summary.
func (s *Server) GetEquipmentSummary(w http.ResponseWriter, r *http.Request) {
	beds, err := s.store.Beds()
	if err != nil {
		s.log.Error().Err(err).Msg("list beds")
		writeStatus(w, http.StatusInternalServerError, "failed to list beds")
		return
	}
	texts := make([]string, 0, len(beds))
	for _, b := range beds {
		texts = append(texts, b.CurrentNote)
	}
	writeJSON(w, http.StatusOK, notes.Summarize(texts))
}

// Healthz reports liveness.
func Healthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func (s *Server) addNote(bedID string, speaker api.Speaker, content string) error {
	return s.store.AddNote(s.newNote(bedID, speaker, content))
}

func (s *Server) newNote(bedID string, speaker api.Speaker, content string) db.Note {
	return db.Note{
		ID:          uuid.NewString(),
		BedID:       bedID,
		SpeakerType: string(speaker),
		Content:     content,
		Equipment:   notes.ExtractEquipment(content),
		CreatedAt:   s.now(),
	}
}

func (s *Server) writeNoteError(w http.ResponseWriter, bedID string, err error) {
	if errors.Is(err, db.ErrNotFound) {
		writeStatus(w, http.StatusNotFound, "unknown bed")
		return
	}
	s.log.Error().Err(err).Str("bed_id", bedID).Msg("store note")
	writeStatus(w, http.StatusInternalServerError, "Failed to update note")
}
