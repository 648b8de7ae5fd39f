package pubsub

import (
	"encoding/json"
	"fmt"
	"io"
)

// WriteSSE writes one event in Server-Sent Events wire format. The event
// type goes on the "event:" line so clients can use addEventListener per
// type; the full envelope rides on the "data:" line.
func WriteSSE(w io.Writer, ev Event) error {
	data, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshaling SSE event: %w", err)
	}
	_, err = fmt.Fprintf(w, "event: %s\ndata: %s\n\n", ev.Type, data)
	return err
}
