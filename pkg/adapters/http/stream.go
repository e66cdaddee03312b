package http

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/aretw0/skylark/pkg/conversation"
)

// UIMessageStreamHeader marks responses in the AI SDK UI message stream format.
const UIMessageStreamHeader = "x-vercel-ai-ui-message-stream"

// StreamWriter writes conversation chunks as Server-Sent Events.
// Headers are sent with the first chunk.
type StreamWriter struct {
	w       http.ResponseWriter
	flusher http.Flusher
	started bool
}

// NewStreamWriter wraps w. It fails when w cannot flush.
func NewStreamWriter(w http.ResponseWriter) (*StreamWriter, error) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		return nil, fmt.Errorf("streaming not supported")
	}
	return &StreamWriter{w: w, flusher: flusher}, nil
}

// Started reports whether anything has been written.
func (s *StreamWriter) Started() bool {
	return s.started
}

func (s *StreamWriter) start() {
	if s.started {
		return
	}
	h := s.w.Header()
	h.Set("Content-Type", "text/event-stream")
	h.Set("Cache-Control", "no-cache")
	h.Set("Connection", "keep-alive")
	h.Set("X-Accel-Buffering", "no")
	h.Set(UIMessageStreamHeader, "v1")
	s.w.WriteHeader(http.StatusOK)
	s.started = true
}

// Send implements conversation.Sink.
func (s *StreamWriter) Send(c conversation.Chunk) error {
	data, err := json.Marshal(c)
	if err != nil {
		return err
	}
	return s.write(data)
}

// Close terminates the stream.
func (s *StreamWriter) Close() error {
	return s.write([]byte("[DONE]"))
}

func (s *StreamWriter) write(data []byte) error {
	s.start()
	if _, err := fmt.Fprintf(s.w, "data: %s\n\n", data); err != nil {
		return err
	}
	s.flusher.Flush()
	return nil
}
