package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_AddRemove(t *testing.T) {
	r := New()

	r.Add("c1", "Guest11111111")
	r.Add("c2", "Guest22222222")

	rooms, clients := r.Stats()
	assert.Equal(t, 0, rooms)
	assert.Equal(t, 2, clients)

	identity, removed := r.Remove("c1")
	assert.True(t, removed)
	assert.Equal(t, "Guest11111111", identity)

	_, removed = r.Remove("c1")
	assert.False(t, removed, "second remove of the same id")

	_, removed = r.Remove("never-connected")
	assert.False(t, removed)

	_, clients = r.Stats()
	assert.Equal(t, 1, clients)
}

func TestRegistry_SnapshotOrder(t *testing.T) {
	r := New()
	r.Add("c1", "Alice")
	r.Add("c2", "Bob")
	r.Add("c3", "Carol")

	assert.Equal(t, []string{"Alice", "Bob", "Carol"}, r.Identities())

	// removing an interior element keeps the order of the rest
	r.Remove("c2")
	assert.Equal(t, []string{"Alice", "Carol"}, r.Identities())

	r.Add("c4", "Dave")
	assert.Equal(t, []string{"Alice", "Carol", "Dave"}, r.Identities())
}

func TestRegistry_ReAddKeepsPositionAndClearsRoom(t *testing.T) {
	r := New()
	r.Add("c1", "Alice")
	r.Add("c2", "Bob")
	require.True(t, r.SetRoom("c1", "General"))

	r.Add("c1", "Alice2")

	assert.Equal(t, []string{"Alice2", "Bob"}, r.Identities())
	s, ok := r.Get("c1")
	require.True(t, ok)
	assert.Empty(t, s.Room)
}

func TestRegistry_Rooms(t *testing.T) {
	r := New()
	r.Add("c1", "Alice")
	r.Add("c2", "Bob")
	r.Add("c3", "Carol")
	require.True(t, r.SetRoom("c1", "General"))
	require.True(t, r.SetRoom("c2", "Tech"))
	require.True(t, r.SetRoom("c3", "General"))

	assert.Equal(t, []string{"c1", "c3"}, r.Members("General"))
	assert.Equal(t, []string{"c2"}, r.Members("Tech"))
	assert.Empty(t, r.Members("Games"))

	rooms, clients := r.Stats()
	assert.Equal(t, 2, rooms)
	assert.Equal(t, 3, clients)

	// joining another room replaces the previous membership
	require.True(t, r.SetRoom("c3", "Tech"))
	assert.Equal(t, []string{"c1"}, r.Members("General"))
	assert.Equal(t, []string{"c2", "c3"}, r.Members("Tech"))
}

func TestRegistry_EmptyNameIsNotARoom(t *testing.T) {
	r := New()
	r.Add("c1", "Alice")
	r.Add("c2", "Bob")
	require.True(t, r.SetRoom("c2", "General"))

	assert.Empty(t, r.Members(""), "sessions without a room are not members of anything")
}

func TestRegistry_ClearRoom(t *testing.T) {
	tests := []struct {
		name     string
		room     string
		clear    string
		want     bool
		wantRoom string
	}{
		{name: "matching room", room: "General", clear: "General", want: true, wantRoom: ""},
		{name: "different room", room: "General", clear: "Tech", want: false, wantRoom: "General"},
		{name: "no room at all", room: "", clear: "General", want: false, wantRoom: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := New()
			r.Add("c1", "Alice")
			if tt.room != "" {
				require.True(t, r.SetRoom("c1", tt.room))
			}

			assert.Equal(t, tt.want, r.ClearRoom("c1", tt.clear))

			s, ok := r.Get("c1")
			require.True(t, ok)
			assert.Equal(t, tt.wantRoom, s.Room)
		})
	}
}

func TestRegistry_FindByIdentity(t *testing.T) {
	r := New()
	r.Add("c1", "Alice")
	r.Add("c2", "Bob")
	r.Add("c3", "Bob") // identities are not unique

	id, ok := r.FindByIdentity("Bob")
	require.True(t, ok)
	assert.Equal(t, "c2", id, "first match in connect order wins")

	_, ok = r.FindByIdentity("Mallory")
	assert.False(t, ok)

	// once the first match disconnects, the next one is found
	r.Remove("c2")
	id, ok = r.FindByIdentity("Bob")
	require.True(t, ok)
	assert.Equal(t, "c3", id)
}

func TestRegistry_UnknownConnection(t *testing.T) {
	r := New()

	_, ok := r.Get("ghost")
	assert.False(t, ok)
	assert.False(t, r.SetRoom("ghost", "General"))
	assert.False(t, r.ClearRoom("ghost", "General"))
	assert.Empty(t, r.Identities())
}
