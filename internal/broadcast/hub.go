// Package broadcast fans out serialized events to every live client
// connection. The hub mirrors confirmed state changes only; it never
// originates state and offers no delivery guarantees beyond best effort.
package broadcast

import (
	"encoding/json"
	"sync"

	"go.uber.org/zap"
)

// Conn is one live client connection. Send must not block indefinitely: a
// connection that cannot accept the payload returns an error and is dropped
// from the hub.
type Conn interface {
	Send(payload []byte) error
	Close() error
}

type Hub struct {
	mu     sync.Mutex
	conns  map[Conn]struct{}
	logger *zap.Logger
}

func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		conns:  make(map[Conn]struct{}),
		logger: logger,
	}
}

func (h *Hub) Register(conn Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.conns[conn] = struct{}{}
}

// Unregister removes a connection. Calling it twice, or with a connection
// that was never registered, is a no-op.
func (h *Hub) Unregister(conn Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.conns, conn)
}

// Len reports the number of registered connections.
func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.conns)
}

// Broadcast serializes event once and delivers it to every registered
// connection. Delivery is fire-and-forget: failures are not reported to the
// caller; the failing connection is unregistered and closed instead. The
// member set is snapshotted first so register/unregister may run
// concurrently with delivery.
func (h *Hub) Broadcast(event any) {
	payload, err := json.Marshal(event)
	if err != nil {
		h.logger.Error("marshaling broadcast event", zap.Error(err))
		return
	}

	h.mu.Lock()
	snapshot := make([]Conn, 0, len(h.conns))
	for conn := range h.conns {
		snapshot = append(snapshot, conn)
	}
	h.mu.Unlock()

	for _, conn := range snapshot {
		if err := conn.Send(payload); err != nil {
			h.logger.Debug("dropping dead connection", zap.Error(err))
			h.Unregister(conn)
			conn.Close()
		}
	}
}
