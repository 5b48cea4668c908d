package ingest

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// RefreshHub pushes dataset-refresh events to connected reporting views so
// they can re-fetch after an upload or delete.
type RefreshHub struct {
	mu        sync.Mutex
	clients   map[*websocket.Conn]bool
	broadcast chan []byte
}

func NewRefreshHub() *RefreshHub {
	return &RefreshHub{
		clients:   make(map[*websocket.Conn]bool),
		broadcast: make(chan []byte, 16),
	}
}

func (h *RefreshHub) HandleConnections(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	h.mu.Lock()
	h.clients[conn] = true
	h.mu.Unlock()

	defer func() {
		h.mu.Lock()
		delete(h.clients, conn)
		h.mu.Unlock()
		conn.Close()
	}()
	for {
		// Clients only listen; reads just detect disconnects.
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *RefreshHub) Run() {
	for message := range h.broadcast {
		h.mu.Lock()
		for client := range h.clients {
			if err := client.WriteMessage(websocket.TextMessage, message); err != nil {
				client.Close()
				delete(h.clients, client)
			}
		}
		h.mu.Unlock()
	}
}

// NotifyRefresh announces that a session's combined datasets changed.
func (h *RefreshHub) NotifyRefresh(sessionID, file string) {
	msg, err := json.Marshal(map[string]string{
		"event":      "refresh",
		"session_id": sessionID,
		"file":       file,
	})
	if err != nil {
		return
	}
	select {
	case h.broadcast <- msg:
	default:
		log.Println("[WARN] refresh hub broadcast buffer full, dropping event")
	}
}
