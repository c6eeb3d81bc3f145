package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// startMockBackend serves canned JSON for the dashboard endpoints and records
// the last voice-note body it received.
func startMockBackend(t *testing.T) (*httptest.Server, *VoiceNote) {
	t.Helper()

	var got VoiceNote
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/beds", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[
			{"bed_id":"B1","patient_name":"Ada","procedure_type":"Appendectomy","current_priority":8,"time_in_postop":42,"status":"needs_attention"},
			{"bed_id":"B2","patient_name":"Bo","procedure_type":"Hernia Repair","current_priority":3.5,"time_in_postop":10,"status":"stable"}
		]`))
	})
	mux.HandleFunc("GET /api/queue", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"current_bed":"B1","timer_remaining":12,"next_beds":["B2","B3"]}`))
	})
	mux.HandleFunc("GET /api/notes/{bed}", func(w http.ResponseWriter, r *http.Request) {
		if r.PathValue("bed") != "bed 7" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte(`[{"speaker_type":"nurse","content":"Needs IV pump","equipment_mentioned":["IV pump"]}]`))
	})
	mux.HandleFunc("POST /api/voice-note", func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if got.BedID == "broken" {
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte(`{"status":"error","message":"Failed to update note"}`))
			return
		}
		w.Write([]byte(`{"status":"success"}`))
	})
	mux.HandleFunc("GET /api/equipment/{bed}", func(w http.ResponseWriter, r *http.Request) {
		if r.PathValue("bed") != "B1" {
			w.Write([]byte(`[]`))
			return
		}
		w.Write([]byte(`["IV pump","wheelchair"]`))
	})
	mux.HandleFunc("GET /api/equipment-summary", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"wheelchair":2,"oxygen":1}`))
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv, &got
}

func TestClientBeds(t *testing.T) {
	srv, _ := startMockBackend(t)
	client := NewClient(srv.URL+"/", 0)

	beds, err := client.Beds(context.Background())
	require.NoError(t, err)
	require.Len(t, beds, 2)

	assert.Equal(t, "B1", beds[0].ID)
	assert.Equal(t, "Ada", beds[0].PatientName)
	assert.Equal(t, 8.0, beds[0].Priority)
	assert.Equal(t, 42, beds[0].MinutesPostOp)
	assert.Equal(t, StatusNeedsAttention, beds[0].Status)
	assert.Equal(t, 3.5, beds[1].Priority)
}

func TestClientQueue(t *testing.T) {
	srv, _ := startMockBackend(t)
	client := NewClient(srv.URL, 0)

	q, err := client.Queue(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "B1", q.CurrentBed)
	assert.Equal(t, 12.0, q.TimerRemaining)
	assert.Equal(t, []string{"B2", "B3"}, q.NextBeds)
}

func TestClientNotesEscapesBedID(t *testing.T) {
	srv, _ := startMockBackend(t)
	client := NewClient(srv.URL, 0)

	notes, err := client.Notes(context.Background(), "bed 7")
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Equal(t, SpeakerNurse, notes[0].SpeakerType)
	assert.Equal(t, []string{"IV pump"}, notes[0].EquipmentMentioned)
}

func TestClientNotesNotFound(t *testing.T) {
	srv, _ := startMockBackend(t)
	client := NewClient(srv.URL, 0)

	_, err := client.Notes(context.Background(), "nope")
	require.Error(t, err)

	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusNotFound, statusErr.Code)
}

func TestClientSubmitVoiceNote(t *testing.T) {
	srv, got := startMockBackend(t)
	client := NewClient(srv.URL, 0)

	err := client.SubmitVoiceNote(context.Background(), VoiceNote{
		BedID:       "B2",
		SpeakerType: SpeakerPatient,
		Content:     "I feel great! Ready to go home",
	})
	require.NoError(t, err)
	assert.Equal(t, "B2", got.BedID)
	assert.Equal(t, SpeakerPatient, got.SpeakerType)
	assert.Equal(t, "I feel great! Ready to go home", got.Content)
}

func TestClientSubmitVoiceNoteServerError(t *testing.T) {
	srv, _ := startMockBackend(t)
	client := NewClient(srv.URL, 0)

	err := client.SubmitVoiceNote(context.Background(), VoiceNote{BedID: "broken", SpeakerType: SpeakerNurse, Content: "x"})
	require.Error(t, err)

	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusInternalServerError, statusErr.Code)
	assert.Equal(t, "/api/voice-note", statusErr.Path)
}

func TestClientEquipmentSummary(t *testing.T) {
	srv, _ := startMockBackend(t)
	client := NewClient(srv.URL, 0)

	summary, err := client.EquipmentSummary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"wheelchair": 2, "oxygen": 1}, summary)
}

func TestClientEquipment(t *testing.T) {
	srv, _ := startMockBackend(t)
	client := NewClient(srv.URL, 0)

	items, err := client.Equipment(context.Background(), "B1")
	require.NoError(t, err)
	assert.Equal(t, []string{"IV pump", "wheelchair"}, items)

	items, err = client.Equipment(context.Background(), "B2")
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestClientConnectFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	client := NewClient(url, 0)
	_, err := client.Beds(context.Background())
	assert.Error(t, err)
}

func TestClientCancelledContext(t *testing.T) {
	srv, _ := startMockBackend(t)
	client := NewClient(srv.URL, 0)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.Queue(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}
