// Package bind mounts route contracts onto an HTTP router. It is the thin
// transport adapter the contract engine is designed to feed: it translates a
// contract's path template, decodes and validates request input against the
// contract's schemas, and encodes handler output. Streaming contracts are
// served as ndjson; bidirectional contracts are upgraded to websockets.
package bind

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/conduit-lang/routegen/contract"
	"github.com/conduit-lang/routegen/schema"
)

// Handler executes a unary contract. The request carries the decoded,
// validated input; the returned value is JSON-encoded with the contract's
// success status.
type Handler func(r *Request) (interface{}, error)

// Mux binds contracts to handlers on a chi router.
type Mux struct {
	router chi.Router
	logger *zap.Logger
}

// NewMux creates a contract mux. A nil logger disables logging.
func NewMux(logger *zap.Logger) *Mux {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Mux{
		router: chi.NewRouter(),
		logger: logger,
	}
}

// ServeHTTP implements http.Handler.
func (m *Mux) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	m.router.ServeHTTP(w, r)
}

// Handle mounts a unary contract. Contracts with streaming modes must use
// HandleStream or HandleSocket instead.
func (m *Mux) Handle(c *contract.Contract, h Handler) error {
	if c.Mode != contract.ModeUnary && c.Mode != contract.ModeClientStream {
		return fmt.Errorf("bind: contract %s %s has mode %s, use HandleStream or HandleSocket",
			c.Method, c.Path, c.Mode)
	}

	m.mount(c, func(w http.ResponseWriter, r *http.Request) {
		req, ok := m.decode(c, w, r)
		if !ok {
			return
		}

		result, err := h(req)
		if err != nil {
			m.logger.Error("handler failed",
				zap.String("method", c.Method),
				zap.String("path", c.Path),
				zap.Error(err))
			writeError(w, http.StatusInternalServerError, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(c.Status)
		if result != nil {
			json.NewEncoder(w).Encode(result)
		}
	})
	return nil
}

// mount registers the handler under the contract's method and path. The
// {name} template syntax is shared with chi, so the path maps directly.
func (m *Mux) mount(c *contract.Contract, h http.HandlerFunc) {
	switch c.Method {
	case http.MethodGet:
		m.router.Get(c.Path, h)
	case http.MethodPost:
		m.router.Post(c.Path, h)
	case http.MethodPut:
		m.router.Put(c.Path, h)
	case http.MethodPatch:
		m.router.Patch(c.Path, h)
	case http.MethodDelete:
		m.router.Delete(c.Path, h)
	}

	m.logger.Info("mounted contract",
		zap.String("method", c.Method),
		zap.String("path", c.Path),
		zap.String("mode", c.Mode.String()))
}

// decode extracts and validates the request input. On structural failure it
// answers 400 with the validation errors and returns ok=false.
func (m *Mux) decode(c *contract.Contract, w http.ResponseWriter, r *http.Request) (*Request, bool) {
	req, err := newRequest(c, r)
	if err != nil {
		if ve, isValidation := err.(*schema.ValidationErrors); isValidation {
			m.logger.Debug("request rejected",
				zap.String("method", c.Method),
				zap.String("path", c.Path),
				zap.Int("errors", ve.Count()))
			writeJSON(w, http.StatusBadRequest, ve)
			return nil, false
		}
		writeError(w, http.StatusBadRequest, err)
		return nil, false
	}
	return req, true
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
