package app

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"codenames/internal/domain"
)

// ClientConn represents a connected client
type ClientConn interface {
	Send(message any) error
	PlayerID() string
	Close() error
}

// Session wraps one room's game with serialized command handling and event
// fanout. Every command runs under one mutex, so each operation is atomic
// with respect to the others; the domain layer itself carries no locks.
type Session struct {
	game      *domain.Game
	mu        sync.Mutex
	clients   map[string]ClientConn // playerID -> client
	clientsMu sync.RWMutex
	logger    *slog.Logger

	events    chan *domain.GameEvent
	done      chan struct{}
	closeOnce sync.Once
}

// NewSession creates a session around a freshly generated game
func NewSession(game *domain.Game, logger *slog.Logger) *Session {
	session := &Session{
		game:    game,
		clients: make(map[string]ClientConn),
		logger:  logger,
		events:  make(chan *domain.GameEvent, 100),
		done:    make(chan struct{}),
	}

	go session.eventLoop()

	return session
}

// RoomCode returns the room's identifier
func (s *Session) RoomCode() string {
	return s.game.RoomID
}

// CreatedAt returns when the room was created
func (s *Session) CreatedAt() time.Time {
	return s.game.CreatedAt
}

// PlayerCount returns the number of players in the room
func (s *Session) PlayerCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.game.Players)
}

// RegisterClient attaches a client connection for a player
func (s *Session) RegisterClient(playerID string, client ClientConn) {
	s.clientsMu.Lock()
	defer s.clientsMu.Unlock()
	s.clients[playerID] = client
}

// UnregisterClient detaches a client connection
func (s *Session) UnregisterClient(playerID string) {
	s.clientsMu.Lock()
	defer s.clientsMu.Unlock()
	delete(s.clients, playerID)
}

// Join adds a player to the room and announces the arrival: an ack to the
// joiner, then the board and roster to everyone. The client must already be
// registered so the ack reaches it.
func (s *Session) Join(client ClientConn, nickname string, founder bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	playerID := client.PlayerID()
	player := s.game.AddPlayer(playerID, nickname)

	ack := domain.EventRoomJoined
	line := fmt.Sprintf("%s joined the room.", player.Nickname)
	if founder {
		ack = domain.EventRoomCreated
		line = fmt.Sprintf("%s created room %s.", player.Nickname, s.game.RoomID)
	}

	s.queueEvent(domain.NewPlayerEvent(ack, s.game.RoomID, playerID,
		&domain.RoomPayload{RoomCode: s.game.RoomID}))
	s.broadcastState()
	s.broadcastRoster()
	s.log(line)
}

// SelectRole seats a player; the first pick locks team and role until the
// next restart. Errors go back to the caller only.
func (s *Session) SelectRole(playerID string, team domain.Team, role domain.Role) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	player, err := s.game.SelectRole(playerID, team, role)
	if err != nil {
		return err
	}

	s.broadcastRoster()
	s.log(fmt.Sprintf("%s is now the %s team's %s.",
		player.Nickname, strings.ToUpper(string(team)), seatName(role)))

	return nil
}

// SendClue issues the active team's clue and shares it with the room
func (s *Session) SendClue(playerID, text string, count int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	clue, err := s.game.GiveClue(playerID, text, count)
	if err != nil {
		return err
	}

	s.queueEvent(domain.NewEvent(domain.EventClueUpdate, s.game.RoomID, clue))

	return nil
}

// EndTurn passes the turn voluntarily. Requests that don't apply to the
// current state are dropped without a reply.
func (s *Session) EndTurn(playerID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := s.game.EndTurn(playerID)
	if err != nil {
		return
	}

	s.announceTurn(next)
}

// RevealCard resolves an operative's card click. Stale clicks (already
// revealed, game over, no active clue, wrong seat) are silently ignored so
// racing clients stay harmless.
func (s *Session) RevealCard(playerID string, index int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	result, err := s.game.RevealCard(playerID, index)
	if err != nil {
		return
	}

	if result.GameOver {
		s.queueEvent(domain.NewEvent(domain.EventClueCleared, s.game.RoomID, nil))
		s.broadcastState()
		s.queueEvent(domain.NewEvent(domain.EventGameOver, s.game.RoomID,
			&domain.GameOverPayload{Winner: result.Winner}))
		s.log(fmt.Sprintf("Game over — %s wins.", strings.ToUpper(string(result.Winner))))
		return
	}

	s.queueEvent(domain.NewEvent(domain.EventClueUpdate, s.game.RoomID, result.Clue))

	if result.TurnEnded {
		s.announceTurn(result.NextTurn)
		return
	}

	s.broadcastState()
}

// Restart resets the match for everyone: new board, full scores, seats
// cleared and unlocked. Any room member may call it at any time.
func (s *Session) Restart(playerID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.game.HasPlayer(playerID) {
		return
	}

	if err := s.game.Restart(); err != nil {
		s.logger.Error("restart failed", "roomCode", s.game.RoomID, "error", err)
		return
	}

	s.queueEvent(domain.NewEvent(domain.EventGameRestarted, s.game.RoomID, nil))
	s.queueEvent(domain.NewEvent(domain.EventClueCleared, s.game.RoomID, nil))
	s.broadcastState()
	s.broadcastRoster()
	s.log("Match restarted.")
}

// RemovePlayer drops a player from the roster and reports whether anyone is
// left. The hub deletes emptied sessions.
func (s *Session) RemovePlayer(playerID string) (removed, empty bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	player, empty, err := s.game.RemovePlayer(playerID)
	if err != nil {
		return false, empty
	}

	s.UnregisterClient(playerID)

	if !empty {
		s.broadcastRoster()
		s.log(fmt.Sprintf("%s left the room.", player.Nickname))
	}

	return true, empty
}

// announceTurn publishes a turn flip: clue gone, fresh state, feed line.
// Caller must hold s.mu.
func (s *Session) announceTurn(next domain.Team) {
	s.queueEvent(domain.NewEvent(domain.EventClueCleared, s.game.RoomID, nil))
	s.broadcastState()
	s.log(fmt.Sprintf("%s team's turn.", strings.ToUpper(string(next))))
}

// broadcastState queues a full game snapshot for the room. The snapshot is
// a deep copy, safe to marshal while later commands mutate the game.
func (s *Session) broadcastState() {
	snap := s.game.Snapshot()
	s.queueEvent(domain.NewEvent(domain.EventGameData, s.game.RoomID, &snap))
}

func (s *Session) broadcastRoster() {
	s.queueEvent(domain.NewEvent(domain.EventPlayersUpdate, s.game.RoomID, s.game.Roster()))
}

func (s *Session) log(text string) {
	s.queueEvent(domain.NewEvent(domain.EventLog, s.game.RoomID,
		&domain.LogPayload{Text: text, At: time.Now()}))
}

// queueEvent adds an event to the broadcast queue
func (s *Session) queueEvent(event *domain.GameEvent) {
	select {
	case s.events <- event:
	default:
		s.logger.Warn("event queue full, dropping event",
			"roomCode", s.game.RoomID, "type", event.Type)
	}
}

// eventLoop drains the queue and fans events out to clients
func (s *Session) eventLoop() {
	for {
		select {
		case <-s.done:
			return
		case event := <-s.events:
			s.dispatchEvent(event)
		}
	}
}

// dispatchEvent delivers one event: to a single player when addressed, to
// the whole room otherwise.
func (s *Session) dispatchEvent(event *domain.GameEvent) {
	s.clientsMu.RLock()
	defer s.clientsMu.RUnlock()

	if event.PlayerID != "" {
		if client, ok := s.clients[event.PlayerID]; ok {
			if err := client.Send(event); err != nil {
				s.logger.Debug("failed to send to client",
					"playerID", event.PlayerID, "error", err)
			}
		}
		return
	}

	for playerID, client := range s.clients {
		if err := client.Send(event); err != nil {
			s.logger.Debug("failed to send to client",
				"playerID", playerID, "error", err)
		}
	}
}

// Close shuts down the session and its client connections
func (s *Session) Close() {
	s.closeOnce.Do(func() {
		close(s.done)

		s.clientsMu.Lock()
		for _, client := range s.clients {
			client.Close()
		}
		s.clients = make(map[string]ClientConn)
		s.clientsMu.Unlock()
	})
}

func seatName(role domain.Role) string {
	if role == domain.RoleSpymaster {
		return "spymaster"
	}
	return "field operative"
}
