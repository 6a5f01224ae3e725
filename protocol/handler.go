package protocol

import (
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	"github.com/Sahanadeepthi-A/Live-Chat-Room/domain"
	"github.com/Sahanadeepthi-A/Live-Chat-Room/registry"
)

const defaultRoom = "General"

// Handler routes inbound client events against the session registry and
// emits outbound events through the sink. Validation failures drop the event
// silently; the client never receives an error.
type Handler struct {
	reg   *registry.Registry
	sink  domain.Sink
	rooms map[string]struct{}
}

func NewHandler(reg *registry.Registry, sink domain.Sink, rooms []string) *Handler {
	set := make(map[string]struct{}, len(rooms))
	for _, room := range rooms {
		set[room] = struct{}{}
	}
	return &Handler{reg: reg, sink: sink, rooms: set}
}

func (h *Handler) HandleConnect(connID, identity string) {
	defer h.recoverFault("connect", connID)

	h.reg.Add(connID, identity)
	h.broadcastPresence()
	slog.Info("user connected", "identity", identity, "connId", connID)
}

func (h *Handler) HandleDisconnect(connID string) {
	defer h.recoverFault("disconnect", connID)

	identity, removed := h.reg.Remove(connID)
	// the presence list goes out even when the session was already gone
	h.broadcastPresence()
	if !removed {
		identity = "unknown"
	}
	slog.Info("user disconnected", "identity", identity)
}

func (h *Handler) HandleEvent(connID, event string, data json.RawMessage) {
	defer h.recoverFault(event, connID)

	s, ok := h.reg.Get(connID)
	if !ok {
		slog.Warn("event from unknown connection", "event", event, "connId", connID)
		return
	}

	switch event {
	case domain.EventJoin:
		h.join(s, data)
	case domain.EventLeave:
		h.leave(s, data)
	case domain.EventMessage:
		h.route(s, data)
	default:
		slog.Warn("unknown event", "event", event, "identity", s.Identity)
	}
}

// roomField distinguishes an absent room (defaulted) from one sent as null
// or an empty string (names no room, rejected by the caller).
type roomField struct {
	present bool
	name    string
}

func (f *roomField) UnmarshalJSON(data []byte) error {
	f.present = true
	if string(data) == "null" {
		return nil
	}
	return json.Unmarshal(data, &f.name)
}

// resolve returns the effective room name. ok is false when the field was
// sent but names no room.
func (f roomField) resolve() (string, bool) {
	if !f.present {
		return defaultRoom, true
	}
	return f.name, f.name != ""
}

type roomRequest struct {
	Room roomField `json:"room"`
}

type messageRequest struct {
	Room   roomField `json:"room"`
	Type   string    `json:"type"`
	Msg    string    `json:"msg"`
	Target string    `json:"target"`
}

func (h *Handler) join(s domain.Session, data json.RawMessage) {
	var req roomRequest
	if len(data) > 0 {
		if err := json.Unmarshal(data, &req); err != nil {
			slog.Warn("join: bad payload", "identity", s.Identity, "error", err)
			return
		}
	}
	room, ok := req.Room.resolve()
	if !ok || !h.validRoom(room) {
		slog.Warn("join: no such room", "room", room, "identity", s.Identity)
		return
	}
	if !h.reg.SetRoom(s.ID, room) {
		return
	}

	h.sink.SendToRoom(room, domain.EventStatus, domain.Status{
		Msg:       s.Identity + " has joined the room",
		Type:      domain.StatusJoin,
		Timestamp: timestamp(),
	})
	slog.Info("user joined room", "identity", s.Identity, "room", room)
}

func (h *Handler) leave(s domain.Session, data json.RawMessage) {
	var req roomRequest
	if len(data) > 0 {
		if err := json.Unmarshal(data, &req); err != nil {
			slog.Warn("leave: bad payload", "identity", s.Identity, "error", err)
			return
		}
	}
	room, ok := req.Room.resolve()
	if !ok {
		slog.Warn("leave: no usable room", "identity", s.Identity)
		return
	}
	h.reg.ClearRoom(s.ID, room)

	// the leave notice fires even when the session never joined this room
	h.sink.SendToRoom(room, domain.EventStatus, domain.Status{
		Msg:       s.Identity + " has left the room",
		Type:      domain.StatusLeave,
		Timestamp: timestamp(),
	})
	slog.Info("user left room", "identity", s.Identity, "room", room)
}

func (h *Handler) route(s domain.Session, data json.RawMessage) {
	var req messageRequest
	if len(data) > 0 {
		if err := json.Unmarshal(data, &req); err != nil {
			slog.Warn("message: bad payload", "identity", s.Identity, "error", err)
			return
		}
	}
	msg := strings.TrimSpace(req.Msg)
	if msg == "" {
		return
	}
	ts := timestamp()

	if req.Type == domain.MessageTypePrivate {
		if req.Target == "" {
			return
		}
		connID, ok := h.reg.FindByIdentity(req.Target)
		if !ok {
			return
		}
		h.sink.SendTo(connID, domain.EventPrivateMessage, domain.PrivateMessage{
			Msg:       msg,
			From:      s.Identity,
			To:        req.Target,
			Timestamp: ts,
		})
		slog.Info("private message", "from", s.Identity, "to", req.Target)
		return
	}

	room, ok := req.Room.resolve()
	if !ok || !h.validRoom(room) {
		return
	}
	h.sink.SendToRoom(room, domain.EventMessage, domain.RoomMessage{
		Msg:       msg,
		Username:  s.Identity,
		Room:      room,
		Timestamp: ts,
	})
	slog.Info("room message", "identity", s.Identity, "room", room)
}

func (h *Handler) broadcastPresence() {
	h.sink.SendToAll(domain.EventActiveUsers, domain.ActiveUsers{Users: h.reg.Identities()})
}

func (h *Handler) validRoom(room string) bool {
	_, ok := h.rooms[room]
	return ok
}

func (h *Handler) recoverFault(event, connID string) {
	if r := recover(); r != nil {
		slog.Error("event handling failed", "event", event, "connId", connID, "panic", r)
	}
}

func timestamp() string {
	return time.Now().Format(time.RFC3339)
}
