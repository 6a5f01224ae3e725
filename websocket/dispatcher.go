package websocket

import (
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/Sahanadeepthi-A/Live-Chat-Room/domain"
	"github.com/Sahanadeepthi-A/Live-Chat-Room/metrics"
)

// Roster reports which connections are members of a room. The session
// registry implements it; the dispatcher itself holds no room state.
type Roster interface {
	Members(room string) []string
}

// Dispatcher fans outbound events to registered connections. Payloads are
// encoded once per call, not per recipient. A connection that cannot accept
// a frame loses that frame; its pumps tear the connection down separately.
type Dispatcher struct {
	mu     sync.RWMutex
	conns  map[string]domain.Connection
	roster Roster
}

func NewDispatcher(roster Roster) *Dispatcher {
	return &Dispatcher{
		conns:  make(map[string]domain.Connection),
		roster: roster,
	}
}

func (d *Dispatcher) Add(conn domain.Connection) {
	d.mu.Lock()
	d.conns[conn.ID()] = conn
	open := len(d.conns)
	d.mu.Unlock()

	metrics.OpenConnections.Inc()
	slog.Info("connection registered", "connId", conn.ID(), "open", open)
}

func (d *Dispatcher) Remove(connID string) {
	d.mu.Lock()
	_, found := d.conns[connID]
	delete(d.conns, connID)
	open := len(d.conns)
	d.mu.Unlock()

	if !found {
		return
	}
	metrics.OpenConnections.Dec()
	slog.Info("connection unregistered", "connId", connID, "open", open)
}

func (d *Dispatcher) SendTo(connID, event string, payload any) {
	data, err := encode(event, payload)
	if err != nil {
		slog.Error("encode failed", "event", event, "error", err)
		return
	}

	d.mu.RLock()
	conn, found := d.conns[connID]
	d.mu.RUnlock()
	if !found {
		slog.Debug("send to unknown connection", "connId", connID, "event", event)
		return
	}

	d.deliver(conn, data)
}

func (d *Dispatcher) SendToRoom(room, event string, payload any) {
	data, err := encode(event, payload)
	if err != nil {
		slog.Error("encode failed", "event", event, "error", err)
		return
	}

	members := d.roster.Members(room)

	d.mu.RLock()
	targets := make([]domain.Connection, 0, len(members))
	for _, id := range members {
		if conn, found := d.conns[id]; found {
			targets = append(targets, conn)
		}
	}
	d.mu.RUnlock()

	for _, conn := range targets {
		d.deliver(conn, data)
	}
}

func (d *Dispatcher) SendToAll(event string, payload any) {
	data, err := encode(event, payload)
	if err != nil {
		slog.Error("encode failed", "event", event, "error", err)
		return
	}

	d.mu.RLock()
	targets := make([]domain.Connection, 0, len(d.conns))
	for _, conn := range d.conns {
		targets = append(targets, conn)
	}
	d.mu.RUnlock()

	for _, conn := range targets {
		d.deliver(conn, data)
	}
}

func (d *Dispatcher) deliver(conn domain.Connection, data []byte) {
	if err := conn.Send(data); err != nil {
		metrics.DroppedSends.Inc()
		slog.Warn("frame dropped", "connId", conn.ID(), "error", err)
	}
}

func encode(event string, payload any) ([]byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return json.Marshal(domain.Envelope{Event: event, Data: data})
}
