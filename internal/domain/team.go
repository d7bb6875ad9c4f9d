package domain

// Team identifies one of the two playing teams.
type Team string

const (
	TeamBlue Team = "blue"
	TeamRed  Team = "red"
)

// String returns the string representation of the team.
func (t Team) String() string {
	return string(t)
}

// Valid reports whether the team is one of the two playable teams.
func (t Team) Valid() bool {
	return t == TeamBlue || t == TeamRed
}

// Opponent returns the other team.
func (t Team) Opponent() Team {
	if t == TeamBlue {
		return TeamRed
	}
	return TeamBlue
}

// Card returns the card role owned by this team.
func (t Team) Card() CardRole {
	return CardRole(t)
}
