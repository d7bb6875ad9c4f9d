package domain

// Role represents a player's role within a team
type Role string

const (
	RoleSpymaster Role = "spymaster"
	RoleOperative Role = "operative"
)

// String returns the string representation of the role
func (r Role) String() string {
	return string(r)
}

// Valid reports whether the role is one of the two playable roles
func (r Role) Valid() bool {
	return r == RoleSpymaster || r == RoleOperative
}
