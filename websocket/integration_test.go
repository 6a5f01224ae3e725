package websocket

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sahanadeepthi-A/Live-Chat-Room/domain"
	"github.com/Sahanadeepthi-A/Live-Chat-Room/protocol"
	"github.com/Sahanadeepthi-A/Live-Chat-Room/registry"
)

func envelopes(t *testing.T, c *mockConn) []domain.Envelope {
	t.Helper()
	var out []domain.Envelope
	for _, frame := range c.getReceived() {
		var env domain.Envelope
		require.NoError(t, json.Unmarshal(frame, &env))
		out = append(out, env)
	}
	return out
}

func byEvent(envs []domain.Envelope, event string) []domain.Envelope {
	var out []domain.Envelope
	for _, env := range envs {
		if env.Event == event {
			out = append(out, env)
		}
	}
	return out
}

// Drives the real registry, handler and dispatcher together and checks what
// each connection actually receives on the wire.
func TestTwoGuestSession(t *testing.T) {
	reg := registry.New()
	d := NewDispatcher(reg)
	h := protocol.NewHandler(reg, d, []string{"General", "Random", "Tech", "Games"})

	a := &mockConn{id: "conn-a"}
	d.Add(a)
	h.HandleConnect("conn-a", "Guest1111")

	b := &mockConn{id: "conn-b"}
	d.Add(b)
	h.HandleConnect("conn-b", "Guest2222")

	h.HandleEvent("conn-a", domain.EventJoin, []byte(`{"room":"General"}`))
	h.HandleEvent("conn-b", domain.EventJoin, []byte(`{"room":"General"}`))
	h.HandleEvent("conn-b", domain.EventMessage, []byte(`{"room":"General","msg":"hi"}`))
	h.HandleEvent("conn-a", domain.EventMessage, []byte(`{"type":"private","target":"Guest2222","msg":"psst"}`))

	envsA := envelopes(t, a)
	envsB := envelopes(t, b)

	// presence: A saw both connects, B only its own
	presenceA := byEvent(envsA, domain.EventActiveUsers)
	require.Len(t, presenceA, 2)
	var users domain.ActiveUsers
	require.NoError(t, json.Unmarshal(presenceA[1].Data, &users))
	assert.Equal(t, []string{"Guest1111", "Guest2222"}, users.Users)
	assert.Len(t, byEvent(envsB, domain.EventActiveUsers), 1)

	// join notices: A saw its own and B's, B only its own (A joined earlier)
	statusA := byEvent(envsA, domain.EventStatus)
	require.Len(t, statusA, 2)
	var st domain.Status
	require.NoError(t, json.Unmarshal(statusA[0].Data, &st))
	assert.Equal(t, "Guest1111 has joined the room", st.Msg)
	require.NoError(t, json.Unmarshal(statusA[1].Data, &st))
	assert.Equal(t, "Guest2222 has joined the room", st.Msg)
	assert.Len(t, byEvent(envsB, domain.EventStatus), 1)

	// the room message reached both members
	for _, envs := range [][]domain.Envelope{envsA, envsB} {
		msgs := byEvent(envs, domain.EventMessage)
		require.Len(t, msgs, 1)
		var msg domain.RoomMessage
		require.NoError(t, json.Unmarshal(msgs[0].Data, &msg))
		assert.Equal(t, "hi", msg.Msg)
		assert.Equal(t, "Guest2222", msg.Username)
		assert.Equal(t, "General", msg.Room)
	}

	// the private message reached only its target
	assert.Empty(t, byEvent(envsA, domain.EventPrivateMessage))
	privates := byEvent(envsB, domain.EventPrivateMessage)
	require.Len(t, privates, 1)
	var pm domain.PrivateMessage
	require.NoError(t, json.Unmarshal(privates[0].Data, &pm))
	assert.Equal(t, "psst", pm.Msg)
	assert.Equal(t, "Guest1111", pm.From)
	assert.Equal(t, "Guest2222", pm.To)
}

func TestDisconnectUpdatesRemainingClients(t *testing.T) {
	reg := registry.New()
	d := NewDispatcher(reg)
	h := protocol.NewHandler(reg, d, []string{"General"})

	a := &mockConn{id: "conn-a"}
	d.Add(a)
	h.HandleConnect("conn-a", "Guest1111")
	b := &mockConn{id: "conn-b"}
	d.Add(b)
	h.HandleConnect("conn-b", "Guest2222")

	beforeA := len(a.getReceived())

	// transport teardown order: dispatcher first, then the handler
	d.Remove("conn-a")
	h.HandleDisconnect("conn-a")

	assert.Len(t, a.getReceived(), beforeA, "a closed connection receives nothing further")

	envsB := envelopes(t, b)
	presence := byEvent(envsB, domain.EventActiveUsers)
	require.Len(t, presence, 2)
	var users domain.ActiveUsers
	require.NoError(t, json.Unmarshal(presence[1].Data, &users))
	assert.Equal(t, []string{"Guest2222"}, users.Users)
}

func TestLeaveNoticeSkipsTheLeaver(t *testing.T) {
	reg := registry.New()
	d := NewDispatcher(reg)
	h := protocol.NewHandler(reg, d, []string{"General"})

	a := &mockConn{id: "conn-a"}
	d.Add(a)
	h.HandleConnect("conn-a", "Guest1111")
	b := &mockConn{id: "conn-b"}
	d.Add(b)
	h.HandleConnect("conn-b", "Guest2222")

	h.HandleEvent("conn-a", domain.EventJoin, []byte(`{"room":"General"}`))
	h.HandleEvent("conn-b", domain.EventJoin, []byte(`{"room":"General"}`))
	beforeA := len(a.getReceived())

	h.HandleEvent("conn-a", domain.EventLeave, []byte(`{"room":"General"}`))

	// membership changes before the notice goes out, so A never sees it
	assert.Len(t, a.getReceived(), beforeA)

	statuses := byEvent(envelopes(t, b), domain.EventStatus)
	require.Len(t, statuses, 2) // own join, then A's leave
	var st domain.Status
	require.NoError(t, json.Unmarshal(statuses[1].Data, &st))
	assert.Equal(t, "Guest1111 has left the room", st.Msg)
	assert.Equal(t, domain.StatusLeave, st.Type)
}
