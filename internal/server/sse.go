package server

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/panelhire/hiring-agent/internal/types"
)

// SSEWriter helps write Server-Sent Events.
type SSEWriter struct {
	w       http.ResponseWriter
	flusher http.Flusher
}

// NewSSEWriter creates a new SSE writer.
func NewSSEWriter(w http.ResponseWriter) (*SSEWriter, error) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		return nil, fmt.Errorf("streaming not supported")
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")

	return &SSEWriter{w: w, flusher: flusher}, nil
}

// WriteEvent sends one run event. The SSE event name is the event's kind.
func (s *SSEWriter) WriteEvent(event types.Event) error {
	jsonData, err := json.Marshal(event)
	if err != nil {
		return err
	}

	if _, err := fmt.Fprintf(s.w, "event: %s\n", event.Kind); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(s.w, "data: %s\n\n", jsonData); err != nil {
		return err
	}
	s.flusher.Flush()
	return nil
}

// WriteError sends an error event for failures that happen before the run's
// own stream starts.
func (s *SSEWriter) WriteError(message string) {
	_ = s.WriteEvent(types.Event{
		Source:  "system",
		Message: message,
		Status:  types.StatusError,
		Kind:    types.EventError,
	})
}
