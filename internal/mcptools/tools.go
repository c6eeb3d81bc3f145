// Package mcptools exposes the ward's bed and queue state as MCP tools so an
// assistant can read the board and file notes through the same backend API
// the dashboard uses.
package mcptools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jwulff/postop/internal/api"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog"
)

// Backend is the part of the backend API the tools call.
type Backend interface {
	Beds(ctx context.Context) ([]api.Bed, error)
	Queue(ctx context.Context) (api.QueueSnapshot, error)
	Notes(ctx context.Context, bedID string) ([]api.Note, error)
	Equipment(ctx context.Context, bedID string) ([]string, error)
	SubmitVoiceNote(ctx context.Context, note api.VoiceNote) error
	MarkPatientDone(ctx context.Context, bedID string) error
	EquipmentSummary(ctx context.Context) (map[string]int, error)
}

// Tools holds the tool handlers.
type Tools struct {
	backend Backend
	log     zerolog.Logger
}

// New creates the tool set.
func New(backend Backend, log zerolog.Logger) *Tools {
	return &Tools{backend: backend, log: log}
}

// NewServer returns an MCP server with every tool registered.
func NewServer(t *Tools, version string) *server.MCPServer {
	s := server.NewMCPServer("postop", version, server.WithToolCapabilities(false))

	s.AddTool(mcp.NewTool("list_beds",
		mcp.WithDescription("List every post-op bed with patient, procedure, priority, minutes in post-op and status."),
	), t.ListBeds)

	s.AddTool(mcp.NewTool("get_queue",
		mcp.WithDescription("Show where the doctor is, minutes left on the current visit, and the upcoming visit order."),
	), t.GetQueue)

	s.AddTool(mcp.NewTool("get_notes",
		mcp.WithDescription("Read the notes recorded for one bed."),
		mcp.WithString("bed_id", mcp.Required(), mcp.Description("Bed identifier, e.g. bed_1")),
	), t.GetNotes)

	s.AddTool(mcp.NewTool("submit_voice_note",
		mcp.WithDescription("Record a patient or nurse note against a bed."),
		mcp.WithString("bed_id", mcp.Required(), mcp.Description("Bed identifier")),
		mcp.WithString("speaker_type", mcp.Required(), mcp.Enum(string(api.SpeakerPatient), string(api.SpeakerNurse))),
		mcp.WithString("content", mcp.Required(), mcp.Description("What was said")),
	), t.SubmitVoiceNote)

	s.AddTool(mcp.NewTool("mark_patient_done",
		mcp.WithDescription("Mark the doctor's visit to a bed as finished and move on."),
		mcp.WithString("bed_id", mcp.Required(), mcp.Description("Bed identifier")),
	), t.MarkPatientDone)

	s.AddTool(mcp.NewTool("get_equipment",
		mcp.WithDescription("List the equipment mentioned in a bed's current note."),
		mcp.WithString("bed_id", mcp.Required(), mcp.Description("Bed identifier")),
	), t.GetEquipment)

	s.AddTool(mcp.NewTool("equipment_summary",
		mcp.WithDescription("Count equipment requests across the ward."),
	), t.EquipmentSummary)

	return s
}

// ListBeds returns the bed list as JSON.
func (t *Tools) ListBeds(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	beds, err := t.backend.Beds(ctx)
	if err != nil {
		return t.fail("list beds", err), nil
	}
	return jsonResult(beds)
}

// GetQueue returns the queue snapshot as JSON.
func (t *Tools) GetQueue(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	q, err := t.backend.Queue(ctx)
	if err != nil {
		return t.fail("get queue", err), nil
	}
	return jsonResult(q)
}

// GetNotes returns one bed's notes as JSON.
func (t *Tools) GetNotes(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	bedID, err := req.RequireString("bed_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	notes, err := t.backend.Notes(ctx, bedID)
	if err != nil {
		return t.fail("get notes", err), nil
	}
	if notes == nil {
		notes = []api.Note{}
	}
	return jsonResult(notes)
}

// SubmitVoiceNote records a note.
func (t *Tools) SubmitVoiceNote(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	bedID, err := req.RequireString("bed_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	speaker := api.Speaker(req.GetString("speaker_type", ""))
	if !speaker.Valid() {
		return mcp.NewToolResultError(fmt.Sprintf("speaker_type must be %q or %q", api.SpeakerPatient, api.SpeakerNurse)), nil
	}
	content, err := req.RequireString("content")
	if err != nil || content == "" {
		return mcp.NewToolResultError("content is required"), nil
	}

	note := api.VoiceNote{BedID: bedID, SpeakerType: speaker, Content: content}
	if err := t.backend.SubmitVoiceNote(ctx, note); err != nil {
		return t.fail("submit voice note", err), nil
	}
	t.log.Info().Str("bed_id", bedID).Str("speaker", string(speaker)).Msg("note submitted via mcp")
	return mcp.NewToolResultText("Note recorded for " + bedID), nil
}

// MarkPatientDone finishes the visit to a bed.
func (t *Tools) MarkPatientDone(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	bedID, err := req.RequireString("bed_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if err := t.backend.MarkPatientDone(ctx, bedID); err != nil {
		return t.fail("mark patient done", err), nil
	}
	return mcp.NewToolResultText(bedID + " marked done"), nil
}

// GetEquipment returns one bed's requested equipment as JSON.
func (t *Tools) GetEquipment(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	bedID, err := req.RequireString("bed_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	items, err := t.backend.Equipment(ctx, bedID)
	if err != nil {
		return t.fail("get equipment", err), nil
	}
	if items == nil {
		items = []string{}
	}
	return jsonResult(items)
}

// EquipmentSummary returns ward equipment counts as JSON.
func (t *Tools) EquipmentSummary(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	summary, err := t.backend.EquipmentSummary(ctx)
	if err != nil {
		return t.fail("equipment summary", err), nil
	}
	return jsonResult(summary)
}

func (t *Tools) fail(op string, err error) *mcp.CallToolResult {
	t.log.Warn().Err(err).Str("tool_op", op).Msg("backend call failed")
	return mcp.NewToolResultError(op + ": " + err.Error())
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode result: %w", err)
	}
	return mcp.NewToolResultText(string(data)), nil
}
