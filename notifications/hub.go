package notifications

import (
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // portal frontend and API are served from different origins
	},
}

// Hub tracks websocket subscribers to the live assignment feed. Operators
// watching a unit dashboard connect here and receive every
// assignment_changed event as it commits.
type Hub struct {
	clients map[*websocket.Conn]bool
	mutex   sync.Mutex
}

// NewHub creates an empty hub
func NewHub() *Hub {
	return &Hub{clients: make(map[*websocket.Conn]bool)}
}

// HandleAssignmentsWebSocket upgrades the request and registers the client
// until it disconnects
func (h *Hub) HandleAssignmentsWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		zap.S().Warnf("websocket upgrade error: %v", err)
		return
	}

	h.mutex.Lock()
	h.clients[conn] = true
	h.mutex.Unlock()
	zap.S().Debugf("client connected to assignment feed: %v", conn.RemoteAddr())

	conn.SetCloseHandler(func(code int, text string) error {
		h.remove(conn)
		return nil
	})

	// drain reads to keep the connection alive and notice disconnects
	for {
		if _, _, err := conn.NextReader(); err != nil {
			h.remove(conn)
			conn.Close()
			break
		}
	}
}

// Broadcast sends an event payload to every connected client. Write
// failures drop the client and are not reported to the caller.
func (h *Hub) Broadcast(event string, payload interface{}) {
	h.mutex.Lock()
	conns := make([]*websocket.Conn, 0, len(h.clients))
	for c := range h.clients {
		conns = append(conns, c)
	}
	h.mutex.Unlock()

	for _, conn := range conns {
		err := conn.WriteJSON(map[string]interface{}{
			"event": event,
			"data":  payload,
		})
		if err != nil {
			zap.S().Debugf("dropping assignment feed client: %v", err)
			h.remove(conn)
			conn.Close()
		}
	}
}

func (h *Hub) remove(conn *websocket.Conn) {
	h.mutex.Lock()
	delete(h.clients, conn)
	h.mutex.Unlock()
}
