package domain

import "time"

// Player represents a member of a room. Team and Role stay empty until the
// player picks a seat; Locked blocks further seat changes until a restart.
type Player struct {
	ID       string    `json:"id"`
	Nickname string    `json:"nickname"`
	Team     Team      `json:"team,omitempty"`
	Role     Role      `json:"role,omitempty"`
	Locked   bool      `json:"-"`
	JoinedAt time.Time `json:"-"`
}

// NewPlayer creates a new unseated player with the given ID and nickname
func NewPlayer(id, nickname string) *Player {
	return &Player{
		ID:       id,
		Nickname: nickname,
		JoinedAt: time.Now(),
	}
}

// ClearSeat resets team, role and the lock, for a fresh match
func (p *Player) ClearSeat() {
	p.Team = ""
	p.Role = ""
	p.Locked = false
}

// PlayerInfo is the roster view broadcast to the room
type PlayerInfo struct {
	ID       string `json:"id"`
	Nickname string `json:"nickname"`
	Team     Team   `json:"team,omitempty"`
	Role     Role   `json:"role,omitempty"`
}

// ToInfo converts a Player to its roster view
func (p *Player) ToInfo() PlayerInfo {
	return PlayerInfo{
		ID:       p.ID,
		Nickname: p.Nickname,
		Team:     p.Team,
		Role:     p.Role,
	}
}
