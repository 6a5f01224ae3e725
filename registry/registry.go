package registry

import (
	"sync"
	"time"

	"github.com/Sahanadeepthi-A/Live-Chat-Room/domain"
)

// Registry is the single source of truth for who is online. Rooms are not
// stored anywhere else: a room is the set of sessions whose Room field holds
// its name.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]*domain.Session
	order    []string // insertion order; keeps snapshots and first-match lookups deterministic
}

func New() *Registry {
	return &Registry{sessions: make(map[string]*domain.Session)}
}

// Add inserts a session for connID. Re-adding a live id replaces the record
// in place and keeps its original position.
func (r *Registry) Add(connID, identity string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if s, ok := r.sessions[connID]; ok {
		s.Identity = identity
		s.Room = ""
		s.ConnectedAt = time.Now()
		return
	}
	r.sessions[connID] = &domain.Session{
		ID:          connID,
		Identity:    identity,
		ConnectedAt: time.Now(),
	}
	r.order = append(r.order, connID)
}

// Remove deletes the session if present. Removing an absent id is a no-op.
func (r *Registry) Remove(connID string) (identity string, removed bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[connID]
	if !ok {
		return "", false
	}
	delete(r.sessions, connID)
	for i, id := range r.order {
		if id == connID {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return s.Identity, true
}

func (r *Registry) Get(connID string) (domain.Session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.sessions[connID]
	if !ok {
		return domain.Session{}, false
	}
	return *s, true
}

// Identities returns the presence snapshot in connect order.
func (r *Registry) Identities() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]string, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.sessions[id].Identity)
	}
	return out
}

// SetRoom moves the session into room, replacing any previous room without
// further bookkeeping.
func (r *Registry) SetRoom(connID, room string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[connID]
	if !ok {
		return false
	}
	s.Room = room
	return true
}

// ClearRoom clears the session's room only when it matches the requested one.
func (r *Registry) ClearRoom(connID, room string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[connID]
	if !ok || s.Room != room {
		return false
	}
	s.Room = ""
	return true
}

// Members returns the connection ids currently in room, in connect order.
// The empty name marks a session without a room and is never itself a room.
func (r *Registry) Members(room string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if room == "" {
		return nil
	}
	var out []string
	for _, id := range r.order {
		if r.sessions[id].Room == room {
			out = append(out, id)
		}
	}
	return out
}

// FindByIdentity returns the first connection whose identity matches, in
// connect order. Identities are not unique; first match wins.
func (r *Registry) FindByIdentity(identity string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, id := range r.order {
		if r.sessions[id].Identity == identity {
			return id, true
		}
	}
	return "", false
}

// Stats reports the number of occupied rooms and live sessions.
func (r *Registry) Stats() (rooms, clients int) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	occupied := make(map[string]struct{})
	for _, s := range r.sessions {
		if s.Room != "" {
			occupied[s.Room] = struct{}{}
		}
	}
	return len(occupied), len(r.sessions)
}
