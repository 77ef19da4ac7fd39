package sse

import (
	"io"
	"net/http"
)

// Relay copies the upstream event-stream body to the client byte-for-byte,
// flushing after every chunk so deltas reach the browser as they arrive.
// Once relaying has begun, errors can no longer be converted into a JSON
// body; they surface as a truncated stream handled by the client.
func Relay(w http.ResponseWriter, body io.Reader) error {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")

	flusher, _ := w.(http.Flusher)
	chunk := make([]byte, 4096)

	for {
		n, readErr := body.Read(chunk)
		if n > 0 {
			if _, err := w.Write(chunk[:n]); err != nil {
				return err
			}
			if flusher != nil {
				flusher.Flush()
			}
		}
		if readErr == io.EOF {
			return nil
		}
		if readErr != nil {
			return readErr
		}
	}
}
