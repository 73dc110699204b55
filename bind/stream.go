package bind

import (
	"encoding/json"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/conduit-lang/routegen/contract"
)

// StreamHandler executes a server-stream contract: it sends chunks until
// done or until the request context is cancelled by the caller closing the
// connection.
type StreamHandler func(r *Request, s *Stream) error

// Stream delivers ndjson chunks with a flush per chunk.
type Stream struct {
	writer  http.ResponseWriter
	flusher http.Flusher
	encoder *json.Encoder
	started bool
}

func newStream(w http.ResponseWriter) (*Stream, error) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		return nil, fmt.Errorf("streaming not supported")
	}
	return &Stream{
		writer:  w,
		flusher: flusher,
		encoder: json.NewEncoder(w),
	}, nil
}

// Send encodes one chunk and flushes it.
func (s *Stream) Send(chunk interface{}) error {
	if !s.started {
		s.writer.Header().Set("Content-Type", "application/x-ndjson")
		s.writer.Header().Set("X-Content-Type-Options", "nosniff")
		s.writer.WriteHeader(http.StatusOK)
		s.started = true
	}
	if err := s.encoder.Encode(chunk); err != nil {
		return fmt.Errorf("failed to encode chunk: %w", err)
	}
	s.flusher.Flush()
	return nil
}

// HandleStream mounts a server-stream contract.
func (m *Mux) HandleStream(c *contract.Contract, h StreamHandler) error {
	if c.Mode != contract.ModeServerStream {
		return fmt.Errorf("bind: contract %s %s has mode %s, expected %s",
			c.Method, c.Path, c.Mode, contract.ModeServerStream)
	}

	m.mount(c, func(w http.ResponseWriter, r *http.Request) {
		req, ok := m.decode(c, w, r)
		if !ok {
			return
		}

		stream, err := newStream(w)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err)
			return
		}

		if err := h(req, stream); err != nil {
			// Headers may already be gone; log and drop the connection.
			m.logger.Error("stream handler failed",
				zap.String("method", c.Method),
				zap.String("path", c.Path),
				zap.Error(err))
		}
	})
	return nil
}
