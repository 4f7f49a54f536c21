package ws

import (
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const sessionQueueSize = 16

// Event is one server-emitted websocket frame.
type Event struct {
	Event string `json:"event"`
	Data  any    `json:"data,omitempty"`
}

// Server-emitted event names.
const (
	EventConnected      = "connected"
	EventRoomJoined     = "room_joined"
	EventUserJoined     = "user_joined"
	EventUserLeft       = "user_left"
	EventReceiveMessage = "receive_message"
	EventChatHistory    = "chat_history"
	EventError          = "error"
)

// Session is one connected client. Outbound events go through the
// buffered Events channel drained by a single writer goroutine; Enqueue
// never blocks the caller. The mutex orders Enqueue against Close so a
// broadcast racing a disconnect can never send on the closed channel.
type Session struct {
	ID          string
	UserID      uint
	DisplayName string
	Socket      *websocket.Conn
	Events      chan Event

	mu     sync.Mutex
	closed bool
}

func NewSession(userID uint, displayName string, socket *websocket.Conn) *Session {
	return &Session{
		ID:          uuid.New().String(),
		UserID:      userID,
		DisplayName: displayName,
		Socket:      socket,
		Events:      make(chan Event, sessionQueueSize),
	}
}

// Enqueue offers an event to the session's outbound queue. A full queue
// drops the event rather than blocking the broadcaster, and a closed
// session drops everything.
func (s *Session) Enqueue(event Event) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return false
	}
	select {
	case s.Events <- event:
		return true
	default:
		return false
	}
}

// Close shuts the outbound queue. Safe to call more than once; the
// disconnect path and the error path can both reach it.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	s.closed = true
	close(s.Events)
}

// WriteLoop drains Events to the socket until the queue closes or a
// write fails. Runs as the session's single writer goroutine.
func (s *Session) WriteLoop() {
	for event := range s.Events {
		if s.Socket == nil {
			return
		}
		if err := s.Socket.WriteJSON(event); err != nil {
			return
		}
	}
}
