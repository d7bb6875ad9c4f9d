package app

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"codenames/internal/domain"
)

const (
	// DefaultRoomCodeLength is the default length for room codes
	DefaultRoomCodeLength = 5

	// DefaultStaleRoomTimeout is how long an empty room lingers before the
	// cleanup loop reaps it
	DefaultStaleRoomTimeout = 2 * time.Hour

	// DefaultCleanupInterval is how often the cleanup loop runs
	DefaultCleanupInterval = 10 * time.Minute
)

// RoomCodeChars are characters used for room codes (no ambiguous chars)
const RoomCodeChars = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// HubOptions tune the room registry. Zero values fall back to defaults.
type HubOptions struct {
	RoomCodeLength   int
	StaleRoomTimeout time.Duration
	CleanupInterval  time.Duration
	Words            []string
}

func (o HubOptions) withDefaults() HubOptions {
	if o.RoomCodeLength <= 0 {
		o.RoomCodeLength = DefaultRoomCodeLength
	}
	if o.StaleRoomTimeout <= 0 {
		o.StaleRoomTimeout = DefaultStaleRoomTimeout
	}
	if o.CleanupInterval <= 0 {
		o.CleanupInterval = DefaultCleanupInterval
	}
	if len(o.Words) == 0 {
		o.Words = DefaultWords
	}
	return o
}

// Hub is the room registry: it owns the mapping from room code to the one
// live session for that room, and nothing else mutates it.
type Hub struct {
	sessions map[string]*Session
	mu       sync.RWMutex
	opts     HubOptions
	logger   *slog.Logger
	done     chan struct{}
}

// NewHub creates a room registry and starts its cleanup loop
func NewHub(logger *slog.Logger, opts HubOptions) *Hub {
	hub := &Hub{
		sessions: make(map[string]*Session),
		opts:     opts.withDefaults(),
		logger:   logger,
		done:     make(chan struct{}),
	}

	go hub.cleanupLoop()

	return hub
}

// CreateRoom allocates a fresh room code and a session around a newly
// generated game. The founding player joins through Session.Join once its
// connection is registered.
func (h *Hub) CreateRoom() (*Session, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	var roomCode string
	for attempts := 0; attempts < 10; attempts++ {
		roomCode = h.generateRoomCode()
		if _, exists := h.sessions[roomCode]; !exists {
			break
		}
	}

	if _, exists := h.sessions[roomCode]; exists {
		return nil, fmt.Errorf("failed to generate unique room code")
	}

	game, err := domain.NewGame(roomCode, h.opts.Words, newSeededRand())
	if err != nil {
		return nil, fmt.Errorf("create game: %w", err)
	}

	session := NewSession(game, h.logger)
	h.sessions[roomCode] = session

	h.logger.Info("room created", "roomCode", roomCode)

	return session, nil
}

// Session returns the live session for a room code
func (h *Hub) Session(roomCode string) (*Session, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	session, ok := h.sessions[roomCode]
	if !ok {
		return nil, domain.ErrRoomNotFound
	}

	return session, nil
}

// RemovePlayer sweeps the player out of every room it is found in. The
// sweep is by identifier, not room-scoped: a connection belongs to at most
// one room, but a stale entry anywhere is still cleaned up. Rooms left
// empty are deleted.
func (h *Hub) RemovePlayer(playerID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for roomCode, session := range h.sessions {
		removed, empty := session.RemovePlayer(playerID)
		if !removed {
			continue
		}
		if empty {
			session.Close()
			delete(h.sessions, roomCode)
			h.logger.Info("room deleted", "roomCode", roomCode)
		}
	}
}

// SessionCount returns the number of active rooms
func (h *Hub) SessionCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.sessions)
}

// TotalPlayerCount returns the number of players across all rooms
func (h *Hub) TotalPlayerCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	total := 0
	for _, session := range h.sessions {
		total += session.PlayerCount()
	}
	return total
}

// Close shuts down the hub and all sessions
func (h *Hub) Close() {
	select {
	case <-h.done:
		return
	default:
		close(h.done)
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	for _, session := range h.sessions {
		session.Close()
	}
	h.sessions = make(map[string]*Session)
}

// generateRoomCode generates a random room code
func (h *Hub) generateRoomCode() string {
	b := make([]byte, h.opts.RoomCodeLength)
	crand.Read(b)

	code := make([]byte, h.opts.RoomCodeLength)
	for i := range code {
		code[i] = RoomCodeChars[int(b[i])%len(RoomCodeChars)]
	}

	return string(code)
}

// cleanupLoop periodically reaps rooms that emptied out without being
// deleted, e.g. when a session was created but never joined
func (h *Hub) cleanupLoop() {
	ticker := time.NewTicker(h.opts.CleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-h.done:
			return
		case <-ticker.C:
			h.cleanupStaleRooms()
		}
	}
}

func (h *Hub) cleanupStaleRooms() {
	h.mu.Lock()
	defer h.mu.Unlock()

	now := time.Now()

	for roomCode, session := range h.sessions {
		if session.PlayerCount() == 0 && now.Sub(session.CreatedAt()) > h.opts.StaleRoomTimeout {
			session.Close()
			delete(h.sessions, roomCode)
			h.logger.Info("stale room cleaned up", "roomCode", roomCode)
		}
	}
}

// newSeededRand builds a per-room entropy source seeded from crypto/rand,
// so board permutations are well distributed across rooms and restarts.
func newSeededRand() *rand.Rand {
	var seed [8]byte
	crand.Read(seed[:])
	return rand.New(rand.NewSource(int64(binary.LittleEndian.Uint64(seed[:]))))
}
