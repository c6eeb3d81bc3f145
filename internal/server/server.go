// Package server implements the development backend: the endpoints the
// dashboard consumes, served from the SQLite store.
package server

import (
	"math"
	"sort"
	"time"

	"github.com/jwulff/postop/internal/api"
	"github.com/jwulff/postop/internal/db"
	"github.com/jwulff/postop/internal/notes"
	"github.com/rs/zerolog"
)

// ResolvedNote is written when the doctor marks a patient done.
const ResolvedNote = "Patient met with doctor and resolved."

// Server answers dashboard requests from a Store.
type Server struct {
	store *db.Store
	log   zerolog.Logger
	visit time.Duration
	now   func() time.Time
}

// New creates a Server. visit is the nominal length of a doctor visit, used
// to derive the queue's remaining-time counter.
func New(store *db.Store, log zerolog.Logger, visit time.Duration) *Server {
	return &Server{store: store, log: log, visit: visit, now: time.Now}
}

// bedView converts a stored bed into its wire form.
func (s *Server) bedView(b db.Bed) api.Bed {
	out := api.Bed{
		ID:            b.ID,
		PatientName:   b.PatientName,
		ProcedureType: b.ProcedureType,
		Priority:      b.Priority,
		MinutesPostOp: b.MinutesPostOp(s.now()),
		Status:        notes.StatusFromNote(b.CurrentNote),
		CurrentNote:   b.CurrentNote,
	}
	if b.LastUpdated != nil {
		out.LastUpdated = b.LastUpdated.UTC().Format(time.RFC1123)
	}
	return out
}

// visitOrder sorts beds most urgent first: higher priority, then longer in
// post-op, then id.
func visitOrder(beds []db.Bed) []string {
	sorted := make([]db.Bed, len(beds))
	copy(sorted, beds)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if a.Priority != b.Priority {
			return a.Priority > b.Priority
		}
		if !a.AdmittedAt.Equal(b.AdmittedAt) {
			return a.AdmittedAt.Before(b.AdmittedAt)
		}
		return a.ID < b.ID
	})

	ids := make([]string, len(sorted))
	for i, b := range sorted {
		ids[i] = b.ID
	}
	return ids
}

// queue builds the snapshot, placing the doctor at the head of the visit
// order if they are not at a known bed yet.
func (s *Server) queue() (api.QueueSnapshot, error) {
	beds, err := s.store.Beds()
	if err != nil {
		return api.QueueSnapshot{}, err
	}
	order := visitOrder(beds)

	doc, err := s.store.Doctor()
	if err != nil {
		return api.QueueSnapshot{}, err
	}
	if doc == nil || !contains(order, doc.CurrentBed) {
		next := ""
		if len(order) > 0 {
			next = order[0]
		}
		doc = &db.Doctor{CurrentBed: next, ArrivedAt: s.now()}
		if err := s.store.MoveDoctor(doc.CurrentBed, doc.ArrivedAt); err != nil {
			return api.QueueSnapshot{}, err
		}
	}

	snap := api.QueueSnapshot{CurrentBed: doc.CurrentBed, NextBeds: []string{}}
	for _, id := range order {
		if id != doc.CurrentBed {
			snap.NextBeds = append(snap.NextBeds, id)
		}
	}
	if doc.CurrentBed != "" {
		remaining := s.visit - s.now().Sub(doc.ArrivedAt)
		snap.TimerRemaining = math.Max(0, math.Ceil(remaining.Minutes()))
	}
	return snap, nil
}

// nextAfter returns the most urgent bed other than bedID, or "" if none.
func (s *Server) nextAfter(bedID string) (string, error) {
	beds, err := s.store.Beds()
	if err != nil {
		return "", err
	}
	for _, id := range visitOrder(beds) {
		if id != bedID {
			return id, nil
		}
	}
	return "", nil
}

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
