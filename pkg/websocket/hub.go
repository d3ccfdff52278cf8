package websocket

import (
	"context"
	"encoding/json"

	"github.com/fasthttp/websocket"
	"go.uber.org/zap"
)

// Tipos de mensaje enviados a la página
const (
	TypeRound = "round"
	TypeError = "error"
)

type Message struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

// Conn lo que el hub necesita de una conexión
type Conn interface {
	WriteMessage(messageType int, data []byte) error
	Close() error
}

type subscription struct {
	sessionID string
	conn      Conn
}

type envelope struct {
	sessionID string
	conn      Conn
	data      []byte
}

// Hub agrupa las conexiones por sesión. Solo la goroutine de Run escribe en
// las conexiones.
type Hub struct {
	rooms      map[string]map[Conn]bool
	broadcast  chan envelope
	register   chan subscription
	unregister chan subscription
	done       chan struct{}
	log        *zap.Logger
}

func NewHub(log *zap.Logger) *Hub {
	return &Hub{
		rooms:      make(map[string]map[Conn]bool),
		broadcast:  make(chan envelope, 64),
		register:   make(chan subscription),
		unregister: make(chan subscription),
		done:       make(chan struct{}),
		log:        log,
	}
}

// Run atiende el hub hasta que se cancela ctx
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)

	for {
		select {
		case <-ctx.Done():
			for _, room := range h.rooms {
				for conn := range room {
					conn.Close()
				}
			}
			h.rooms = make(map[string]map[Conn]bool)
			return

		case sub := <-h.register:
			room, ok := h.rooms[sub.sessionID]
			if !ok {
				room = make(map[Conn]bool)
				h.rooms[sub.sessionID] = room
			}
			room[sub.conn] = true
			h.log.Debug("🔌 Cliente WebSocket conectado",
				zap.String("session_id", sub.sessionID),
				zap.Int("clients", len(room)),
			)

		case sub := <-h.unregister:
			h.remove(sub.sessionID, sub.conn)
			h.log.Debug("🔌 Cliente WebSocket desconectado", zap.String("session_id", sub.sessionID))

		case msg := <-h.broadcast:
			if msg.conn != nil {
				if _, ok := h.rooms[msg.sessionID][msg.conn]; ok {
					h.write(msg.sessionID, msg.conn, msg.data)
				}
				continue
			}
			for conn := range h.rooms[msg.sessionID] {
				h.write(msg.sessionID, conn, msg.data)
			}
		}
	}
}

func (h *Hub) write(sessionID string, conn Conn, data []byte) {
	if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
		h.log.Warn("Error enviando mensaje WebSocket", zap.String("session_id", sessionID), zap.Error(err))
		h.remove(sessionID, conn)
	}
}

func (h *Hub) remove(sessionID string, conn Conn) {
	room, ok := h.rooms[sessionID]
	if !ok {
		return
	}
	if _, ok := room[conn]; ok {
		delete(room, conn)
		conn.Close()
	}
	if len(room) == 0 {
		delete(h.rooms, sessionID)
	}
}

func (h *Hub) Register(sessionID string, conn Conn) {
	select {
	case h.register <- subscription{sessionID: sessionID, conn: conn}:
	case <-h.done:
		conn.Close()
	}
}

func (h *Hub) Unregister(sessionID string, conn Conn) {
	select {
	case h.unregister <- subscription{sessionID: sessionID, conn: conn}:
	case <-h.done:
	}
}

// Broadcast envía un mensaje a todas las páginas de la sesión
func (h *Hub) Broadcast(sessionID, msgType string, data interface{}) {
	h.enqueue(sessionID, nil, msgType, data)
}

// Send envía un mensaje a una sola conexión
func (h *Hub) Send(sessionID string, conn Conn, msgType string, data interface{}) {
	h.enqueue(sessionID, conn, msgType, data)
}

func (h *Hub) enqueue(sessionID string, conn Conn, msgType string, data interface{}) {
	msgData, err := json.Marshal(Message{Type: msgType, Data: data})
	if err != nil {
		h.log.Error("Error serializando mensaje", zap.Error(err))
		return
	}

	select {
	case h.broadcast <- envelope{sessionID: sessionID, conn: conn, data: msgData}:
	case <-h.done:
	}
}
