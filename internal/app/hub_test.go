package app

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codenames/internal/domain"
)

func newTestHub(t *testing.T) *Hub {
	t.Helper()
	hub := NewHub(testLogger(), HubOptions{Words: testWords()})
	t.Cleanup(hub.Close)
	return hub
}

func TestHub_CreateRoom(t *testing.T) {
	hub := newTestHub(t)

	session, err := hub.CreateRoom()
	require.NoError(t, err)

	code := session.RoomCode()
	assert.Len(t, code, DefaultRoomCodeLength)
	for _, r := range code {
		assert.True(t, strings.ContainsRune(RoomCodeChars, r),
			"room code %q uses unexpected character %q", code, r)
	}

	found, err := hub.Session(code)
	require.NoError(t, err)
	assert.Same(t, session, found)
	assert.Equal(t, 1, hub.SessionCount())
}

func TestHub_RoomCodesAreUnique(t *testing.T) {
	hub := newTestHub(t)

	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		session, err := hub.CreateRoom()
		require.NoError(t, err)
		assert.False(t, seen[session.RoomCode()])
		seen[session.RoomCode()] = true
	}
}

func TestHub_SessionNotFound(t *testing.T) {
	hub := newTestHub(t)

	_, err := hub.Session("NOPE1")
	assert.ErrorIs(t, err, domain.ErrRoomNotFound)
}

func TestHub_RemovePlayerSweep(t *testing.T) {
	hub := newTestHub(t)

	session, err := hub.CreateRoom()
	require.NoError(t, err)
	code := session.RoomCode()

	joinPlayer(session, "p1", "alice", true)
	joinPlayer(session, "p2", "bob", false)
	assert.Equal(t, 2, hub.TotalPlayerCount())

	// An unknown identifier sweeps through without touching anything
	hub.RemovePlayer("ghost")
	assert.Equal(t, 1, hub.SessionCount())

	hub.RemovePlayer("p1")
	assert.Equal(t, 1, hub.SessionCount())
	assert.Equal(t, 1, hub.TotalPlayerCount())

	// The room dies with its last player
	hub.RemovePlayer("p2")
	assert.Equal(t, 0, hub.SessionCount())
	_, err = hub.Session(code)
	assert.ErrorIs(t, err, domain.ErrRoomNotFound)
}

func TestHub_TotalPlayerCount(t *testing.T) {
	hub := newTestHub(t)

	first, err := hub.CreateRoom()
	require.NoError(t, err)
	second, err := hub.CreateRoom()
	require.NoError(t, err)

	joinPlayer(first, "p1", "alice", true)
	joinPlayer(second, "p2", "bob", true)
	joinPlayer(second, "p3", "carol", false)

	assert.Equal(t, 2, hub.SessionCount())
	assert.Equal(t, 3, hub.TotalPlayerCount())
}

func TestHub_CloseIsIdempotent(t *testing.T) {
	hub := NewHub(testLogger(), HubOptions{Words: testWords()})

	_, err := hub.CreateRoom()
	require.NoError(t, err)

	hub.Close()
	hub.Close()

	assert.Equal(t, 0, hub.SessionCount())
}
