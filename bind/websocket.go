package bind

import (
	"fmt"
	"net/http"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/conduit-lang/routegen/contract"
)

// SocketHandler executes a bidirectional contract over an upgraded
// websocket connection. The handler owns the read/write pumps; returning
// closes the connection.
type SocketHandler func(r *Request, conn *websocket.Conn) error

// HandleSocket mounts a bidirectional contract, upgrading requests to
// websocket connections.
func (m *Mux) HandleSocket(c *contract.Contract, h SocketHandler) error {
	if c.Mode != contract.ModeBidirectional {
		return fmt.Errorf("bind: contract %s %s has mode %s, expected %s",
			c.Method, c.Path, c.Mode, contract.ModeBidirectional)
	}

	upgrader := &websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
	}

	m.mount(c, func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			m.logger.Error("websocket upgrade failed",
				zap.String("path", c.Path),
				zap.Error(err))
			return
		}
		defer conn.Close()

		req := &Request{Raw: r}
		if err := h(req, conn); err != nil {
			m.logger.Error("socket handler failed",
				zap.String("path", c.Path),
				zap.Error(err))
		}
	})
	return nil
}
