package domain

import "errors"

// Domain errors
var (
	ErrRoomNotFound     = errors.New("room not found")
	ErrPlayerNotFound   = errors.New("player not found")
	ErrRoleLocked       = errors.New("team and role are locked for this match")
	ErrInvalidSelection = errors.New("invalid team or role")
	ErrRoleTaken        = errors.New("that team already has a spymaster")
	ErrNotAuthorized    = errors.New("only the active team's spymaster can give a clue")
	ErrInvalidClue      = errors.New("clue needs text and a count between 1 and 9")
	ErrClueActive       = errors.New("a clue is already active this turn")
	ErrPoolTooSmall     = errors.New("word pool has fewer words than the board")

	// ErrStaleCommand marks commands that no longer apply to the current
	// state (already-revealed cell, finished game, wrong seat). They are
	// dropped without a reply so stale client retries stay harmless.
	ErrStaleCommand = errors.New("command does not apply to the current state")
)
