package domain

import (
	"encoding/json"
	"time"
)

const (
	EventJoin           = "join"
	EventLeave          = "leave"
	EventMessage        = "message"
	EventStatus         = "status"
	EventActiveUsers    = "active_users"
	EventPrivateMessage = "private_message"
)

const (
	MessageTypePrivate = "private"

	StatusJoin  = "join"
	StatusLeave = "leave"
)

// Session is the registry's record of one live connection.
type Session struct {
	ID          string
	Identity    string
	Room        string // empty until a join succeeds
	ConnectedAt time.Time
}

// Envelope frames every websocket message in both directions.
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

type ActiveUsers struct {
	Users []string `json:"users"`
}

type Status struct {
	Msg       string `json:"msg"`
	Type      string `json:"type"`
	Timestamp string `json:"timestamp"`
}

type RoomMessage struct {
	Msg       string `json:"msg"`
	Username  string `json:"username"`
	Room      string `json:"room"`
	Timestamp string `json:"timestamp"`
}

type PrivateMessage struct {
	Msg       string `json:"msg"`
	From      string `json:"from"`
	To        string `json:"to"`
	Timestamp string `json:"timestamp"`
}

type Connection interface {
	ID() string
	Send(data []byte) error
	Close() error
}

// Sink delivers outbound events best-effort; sends never report back to the
// caller.
type Sink interface {
	SendTo(connID, event string, payload any)
	SendToRoom(room, event string, payload any)
	SendToAll(event string, payload any)
}

// EventHandler consumes connection lifecycle and decoded client events from
// the transport.
type EventHandler interface {
	HandleConnect(connID, identity string)
	HandleDisconnect(connID string)
	HandleEvent(connID, event string, data json.RawMessage)
}
