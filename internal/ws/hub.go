package ws

import (
	"encoding/json"
	"sync"

	"github.com/gofiber/contrib/websocket"
	"go.uber.org/zap"
)

// Hub fans session signals out to every connected console tab. Its main job
// is the cross-tab logout broadcast: when one tab logs out, every other tab
// receives isLoggedIn=false and clears its local session state.
type Hub struct {
	Clients    map[*websocket.Conn]bool
	Register   chan *websocket.Conn
	Unregister chan *websocket.Conn
	Broadcast  chan []byte

	log   *zap.Logger
	mutex sync.Mutex
}

func NewHub(log *zap.Logger) *Hub {
	return &Hub{
		Clients:    make(map[*websocket.Conn]bool),
		Register:   make(chan *websocket.Conn),
		Unregister: make(chan *websocket.Conn),
		Broadcast:  make(chan []byte, 8),
		log:        log,
	}
}

// SessionSignal mirrors the isLoggedIn flag the tabs watch for.
type SessionSignal struct {
	Type       string `json:"type"`
	IsLoggedIn bool   `json:"isLoggedIn"`
	UserCode   string `json:"userCode,omitempty"`
}

// AnnounceLogout pushes the cross-tab logout signal. Non-blocking: if the hub
// is saturated the signal is dropped rather than stalling the logout path.
func (h *Hub) AnnounceLogout(userCode string) {
	msg, err := json.Marshal(SessionSignal{Type: "session_signal", IsLoggedIn: false, UserCode: userCode})
	if err != nil {
		return
	}
	select {
	case h.Broadcast <- msg:
	default:
		h.log.Warn("session signal dropped, hub saturated")
	}
}

func (h *Hub) Run() {
	for {
		select {
		case conn := <-h.Register:
			h.mutex.Lock()
			h.Clients[conn] = true
			h.mutex.Unlock()
			h.log.Info("console tab connected")

		case conn := <-h.Unregister:
			h.mutex.Lock()
			if _, ok := h.Clients[conn]; ok {
				delete(h.Clients, conn)
				conn.Close()
			}
			h.mutex.Unlock()

		case message := <-h.Broadcast:
			h.mutex.Lock()
			for conn := range h.Clients {
				if err := conn.WriteMessage(websocket.TextMessage, message); err != nil {
					conn.Close()
					delete(h.Clients, conn)
				}
			}
			h.mutex.Unlock()
		}
	}
}
