package domain

import "math/rand"

// CardRole is the hidden affiliation of a board cell.
type CardRole string

const (
	CardBlue     CardRole = "blue"
	CardRed      CardRole = "red"
	CardNeutral  CardRole = "neutral"
	CardAssassin CardRole = "assassin"
)

// Board layout constants. Every board carries exactly this distribution.
const (
	BoardSize     = 25
	BlueCardCount = 9
	RedCardCount  = 8
	NeutralCount  = 7
	AssassinCount = 1
)

// Cell is a single card on the board. Word and Role are fixed at board
// creation; Revealed and RevealedBy are set exactly once, on disclosure.
type Cell struct {
	Word       string   `json:"word"`
	Role       CardRole `json:"role"`
	Revealed   bool     `json:"revealed"`
	RevealedBy Team     `json:"clickedBy,omitempty"`
}

// Board is an ordered sequence of exactly BoardSize cells.
type Board []Cell

// GenerateBoard builds a randomized board from the given word pool. Words
// are sampled without replacement and card roles are shuffled independently,
// so a word's position carries no information about its role. The caller
// owns the entropy source.
func GenerateBoard(pool []string, rng *rand.Rand) (Board, error) {
	if len(pool) < BoardSize {
		return nil, ErrPoolTooSmall
	}

	words := make([]string, len(pool))
	copy(words, pool)
	rng.Shuffle(len(words), func(i, j int) {
		words[i], words[j] = words[j], words[i]
	})
	words = words[:BoardSize]

	roles := make([]CardRole, 0, BoardSize)
	for i := 0; i < BlueCardCount; i++ {
		roles = append(roles, CardBlue)
	}
	for i := 0; i < RedCardCount; i++ {
		roles = append(roles, CardRed)
	}
	for i := 0; i < NeutralCount; i++ {
		roles = append(roles, CardNeutral)
	}
	roles = append(roles, CardAssassin)

	rng.Shuffle(len(roles), func(i, j int) {
		roles[i], roles[j] = roles[j], roles[i]
	})

	board := make(Board, BoardSize)
	for i := range board {
		board[i] = Cell{Word: words[i], Role: roles[i]}
	}

	return board, nil
}
