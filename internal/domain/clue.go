package domain

// Clue count bounds
const (
	MinClueCount = 1
	MaxClueCount = 9
)

// Clue is the active hint for the current turn. At most one exists per turn;
// Text and Count are immutable after creation, GuessesLeft only decreases.
type Clue struct {
	Team        Team   `json:"team"`
	Text        string `json:"clue"`
	Count       int    `json:"count"`
	GuessesLeft int    `json:"guessesLeft"`
}

// NewClue creates a clue with a full guess budget
func NewClue(team Team, text string, count int) *Clue {
	return &Clue{
		Team:        team,
		Text:        text,
		Count:       count,
		GuessesLeft: count,
	}
}

// ConsumeGuess decrements the remaining guess budget, floored at zero
func (c *Clue) ConsumeGuess() {
	if c.GuessesLeft > 0 {
		c.GuessesLeft--
	}
}

// Exhausted reports whether the guess budget is used up
func (c *Clue) Exhausted() bool {
	return c.GuessesLeft == 0
}
