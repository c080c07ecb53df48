package handler

import (
	"encoding/json"
	"fmt"
	"io"
)

// sseEncoder writes server-sent events with JSON payloads.
type sseEncoder struct {
	w io.Writer
}

func newSSEEncoder(w io.Writer) *sseEncoder {
	return &sseEncoder{w: w}
}

// WriteEvent emits one named event carrying the JSON encoding of payload.
func (e *sseEncoder) WriteEvent(event string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode SSE payload: %w", err)
	}
	_, err = fmt.Fprintf(e.w, "event: %s\ndata: %s\n\n", event, data)
	return err
}
