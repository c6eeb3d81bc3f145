package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultTimeout bounds a single request when no client timeout is given.
const DefaultTimeout = 10 * time.Second

// StatusError is returned when the backend answers with a non-2xx status.
type StatusError struct {
	Method string
	Path   string
	Code   int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s: backend returned status %d", e.Method, e.Path, e.Code)
}

// Client talks to the post-op backend over HTTP/JSON.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient returns a client rooted at baseURL (e.g. http://localhost:5001).
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Beds fetches the full bed list.
func (c *Client) Beds(ctx context.Context) ([]Bed, error) {
	var beds []Bed
	if err := c.doJSON(ctx, http.MethodGet, "/api/beds", nil, &beds); err != nil {
		return nil, fmt.Errorf("fetch beds: %w", err)
	}
	return beds, nil
}

// Queue fetches the current queue snapshot.
func (c *Client) Queue(ctx context.Context) (QueueSnapshot, error) {
	var q QueueSnapshot
	if err := c.doJSON(ctx, http.MethodGet, "/api/queue", nil, &q); err != nil {
		return QueueSnapshot{}, fmt.Errorf("fetch queue: %w", err)
	}
	return q, nil
}

// Notes fetches the notes attached to one bed.
func (c *Client) Notes(ctx context.Context, bedID string) ([]Note, error) {
	var notes []Note
	path := "/api/notes/" + url.PathEscape(bedID)
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &notes); err != nil {
		return nil, fmt.Errorf("fetch notes for %s: %w", bedID, err)
	}
	return notes, nil
}

// SubmitVoiceNote posts a voice-derived note. Only the HTTP status matters.
func (c *Client) SubmitVoiceNote(ctx context.Context, note VoiceNote) error {
	if err := c.post(ctx, "/api/voice-note", note); err != nil {
		return fmt.Errorf("submit voice note for %s: %w", note.BedID, err)
	}
	return nil
}

// MarkPatientDone tells the backend the doctor has finished with a bed.
func (c *Client) MarkPatientDone(ctx context.Context, bedID string) error {
	if err := c.post(ctx, "/api/priority-patient-done", PatientDone{BedID: bedID}); err != nil {
		return fmt.Errorf("mark %s done: %w", bedID, err)
	}
	return nil
}

// Equipment returns the equipment mentioned in a bed's current note.
func (c *Client) Equipment(ctx context.Context, bedID string) ([]string, error) {
	var items []string
	path := "/api/equipment/" + url.PathEscape(bedID)
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &items); err != nil {
		return nil, fmt.Errorf("fetch equipment for %s: %w", bedID, err)
	}
	return items, nil
}

// EquipmentSummary returns how many beds mention each equipment item.
func (c *Client) EquipmentSummary(ctx context.Context) (map[string]int, error) {
	summary := map[string]int{}
	if err := c.doJSON(ctx, http.MethodGet, "/api/equipment-summary", nil, &summary); err != nil {
		return nil, fmt.Errorf("fetch equipment summary: %w", err)
	}
	return summary, nil
}

func (c *Client) post(ctx context.Context, path string, body any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal body: %w", err)
	}
	return c.doJSON(ctx, http.MethodPost, path, bytes.NewReader(data), nil)
}

// doJSON performs a request and decodes the response into out when out is
// non-nil. Non-2xx responses yield a *StatusError.
func (c *Client) doJSON(ctx context.Context, method, path string, body io.Reader, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		io.Copy(io.Discard, resp.Body)
		return &StatusError{Method: method, Path: path, Code: resp.StatusCode}
	}

	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
