package domain

import (
	"math/rand"
	"strings"
	"time"
)

// GameState is the live board and turn state of one match.
type GameState struct {
	Board       Board `json:"gameData"`
	BlueScore   int   `json:"blueScore"`
	RedScore    int   `json:"redScore"`
	CurrentTurn Team  `json:"currentTurn"`
	Clue        *Clue `json:"clue"`
	Winner      Team  `json:"winner,omitempty"`
}

// NewGameState builds the opening state for a board: full scores, blue to move
func NewGameState(board Board) GameState {
	return GameState{
		Board:       board,
		BlueScore:   BlueCardCount,
		RedScore:    RedCardCount,
		CurrentTurn: TeamBlue,
	}
}

// Over reports whether the match has a winner. Once set, the board, clue and
// turn are frozen.
func (s *GameState) Over() bool {
	return s.Winner != ""
}

// Game owns one room: its roster and its match state. All methods mutate
// in-memory state synchronously and assume the caller serializes access
// (one writer per room).
type Game struct {
	RoomID    string
	Players   []*Player
	State     GameState
	CreatedAt time.Time

	pool []string
	rng  *rand.Rand
}

// NewGame creates a room with a freshly generated board and no players yet.
// The word pool and entropy source are kept for restarts.
func NewGame(roomID string, pool []string, rng *rand.Rand) (*Game, error) {
	board, err := GenerateBoard(pool, rng)
	if err != nil {
		return nil, err
	}

	return &Game{
		RoomID:    roomID,
		Players:   make([]*Player, 0, 4),
		State:     NewGameState(board),
		CreatedAt: time.Now(),
		pool:      pool,
		rng:       rng,
	}, nil
}

// AddPlayer appends a new unseated player to the roster
func (g *Game) AddPlayer(playerID, nickname string) *Player {
	player := NewPlayer(playerID, nickname)
	g.Players = append(g.Players, player)
	return player
}

// RemovePlayer removes a player and reports whether the room is now empty.
// Removing an unknown player returns ErrPlayerNotFound.
func (g *Game) RemovePlayer(playerID string) (*Player, bool, error) {
	for i, p := range g.Players {
		if p.ID == playerID {
			g.Players = append(g.Players[:i], g.Players[i+1:]...)
			return p, len(g.Players) == 0, nil
		}
	}
	return nil, len(g.Players) == 0, ErrPlayerNotFound
}

// Player returns the roster entry with the given ID, or nil
func (g *Game) Player(playerID string) *Player {
	for _, p := range g.Players {
		if p.ID == playerID {
			return p
		}
	}
	return nil
}

// HasPlayer reports whether the roster contains the given ID
func (g *Game) HasPlayer(playerID string) bool {
	return g.Player(playerID) != nil
}

// Roster returns the broadcastable view of the player list
func (g *Game) Roster() []PlayerInfo {
	roster := make([]PlayerInfo, 0, len(g.Players))
	for _, p := range g.Players {
		roster = append(roster, p.ToInfo())
	}
	return roster
}

// Snapshot returns a deep copy of the match state, safe to hand to the
// broadcast layer while commands keep mutating the original.
func (g *Game) Snapshot() GameState {
	snap := g.State
	snap.Board = make(Board, len(g.State.Board))
	copy(snap.Board, g.State.Board)
	if g.State.Clue != nil {
		clue := *g.State.Clue
		snap.Clue = &clue
	}
	return snap
}

// SelectRole seats a player on a team. The first successful selection locks
// the seat until the next restart, and each team holds at most one spymaster.
func (g *Game) SelectRole(playerID string, team Team, role Role) (*Player, error) {
	player := g.Player(playerID)
	if player == nil {
		return nil, ErrStaleCommand
	}

	if player.Locked {
		return nil, ErrRoleLocked
	}

	if !team.Valid() || !role.Valid() {
		return nil, ErrInvalidSelection
	}

	if role == RoleSpymaster {
		for _, p := range g.Players {
			if p.ID != playerID && p.Team == team && p.Role == RoleSpymaster {
				return nil, ErrRoleTaken
			}
		}
	}

	player.Team = team
	player.Role = role
	player.Locked = true

	return player, nil
}

// GiveClue issues the turn's clue. Only the active team's spymaster may do
// so, once per turn, with trimmed non-empty text and a count in [1,9].
func (g *Game) GiveClue(playerID, text string, count int) (*Clue, error) {
	player := g.Player(playerID)
	if player == nil || g.State.Over() {
		return nil, ErrStaleCommand
	}

	if g.State.Clue != nil {
		return nil, ErrClueActive
	}

	if player.Role != RoleSpymaster || player.Team != g.State.CurrentTurn {
		return nil, ErrNotAuthorized
	}

	text = strings.TrimSpace(text)
	if text == "" || count < MinClueCount || count > MaxClueCount {
		return nil, ErrInvalidClue
	}

	g.State.Clue = NewClue(player.Team, text, count)

	clue := *g.State.Clue
	return &clue, nil
}

// EndTurn lets any player on the active team pass voluntarily, in either
// role, even with guesses unused. Returns the team now on turn.
func (g *Game) EndTurn(playerID string) (Team, error) {
	player := g.Player(playerID)
	if player == nil || g.State.Over() {
		return "", ErrStaleCommand
	}

	if player.Team != g.State.CurrentTurn || !player.Role.Valid() {
		return "", ErrStaleCommand
	}

	g.swapTurn()
	return g.State.CurrentTurn, nil
}

// RevealResult describes the outcome of one card reveal, so the caller knows
// which notifications to send.
type RevealResult struct {
	Index int
	Cell  Cell
	Team  Team

	// Clue is the post-guess snapshot; nil when the game ended on this reveal.
	Clue      *Clue
	TurnEnded bool
	NextTurn  Team
	GameOver  bool
	Winner    Team
}

// RevealCard resolves an operative's card click. Every failed precondition
// returns ErrStaleCommand: these are races with other clients, not errors,
// and produce no reply.
//
// Resolution order matters: a correct-color reveal that empties a team's
// score wins the game before the guess budget is consulted, so a team can
// win mid-sequence with guesses left over.
func (g *Game) RevealCard(playerID string, index int) (*RevealResult, error) {
	if index < 0 || index >= len(g.State.Board) {
		return nil, ErrStaleCommand
	}

	cell := &g.State.Board[index]
	if cell.Revealed || g.State.Over() {
		return nil, ErrStaleCommand
	}

	player := g.Player(playerID)
	if player == nil {
		return nil, ErrStaleCommand
	}

	clue := g.State.Clue
	if clue == nil || clue.Exhausted() ||
		player.Team != g.State.CurrentTurn || player.Role != RoleOperative {
		return nil, ErrStaleCommand
	}

	cell.Revealed = true
	cell.RevealedBy = player.Team

	result := &RevealResult{
		Index: index,
		Team:  player.Team,
	}

	switch cell.Role {
	case CardAssassin:
		g.endGame(player.Team.Opponent())
		result.Cell = *cell
		result.GameOver = true
		result.Winner = g.State.Winner
		return result, nil
	case CardBlue:
		g.State.BlueScore--
		if g.State.BlueScore == 0 {
			g.endGame(TeamBlue)
			result.Cell = *cell
			result.GameOver = true
			result.Winner = TeamBlue
			return result, nil
		}
	case CardRed:
		g.State.RedScore--
		if g.State.RedScore == 0 {
			g.endGame(TeamRed)
			result.Cell = *cell
			result.GameOver = true
			result.Winner = TeamRed
			return result, nil
		}
	}

	clue.ConsumeGuess()
	clueSnap := *clue
	result.Cell = *cell
	result.Clue = &clueSnap

	// Turn flips on a neutral cell, an opposing-color cell, or an empty
	// guess budget; a correct guess with budget left keeps the turn.
	if cell.Role == CardNeutral || cell.Role != player.Team.Card() || clue.Exhausted() {
		g.swapTurn()
		result.TurnEnded = true
		result.NextTurn = g.State.CurrentTurn
	}

	return result, nil
}

// Restart regenerates the match: fresh board, full scores, blue to move,
// every seat cleared and unlocked. Any room member may trigger it, mid-game
// included.
func (g *Game) Restart() error {
	board, err := GenerateBoard(g.pool, g.rng)
	if err != nil {
		return err
	}

	g.State = NewGameState(board)
	for _, p := range g.Players {
		p.ClearSeat()
	}

	return nil
}

func (g *Game) swapTurn() {
	g.State.CurrentTurn = g.State.CurrentTurn.Opponent()
	g.State.Clue = nil
}

func (g *Game) endGame(winner Team) {
	g.State.Winner = winner
	g.State.Clue = nil
}
