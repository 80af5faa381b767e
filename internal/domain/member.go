package domain

type Role string

const (
	RoleOwner Role = "owner"
	RoleGuest Role = "guest"
)

// Membership is a connection's seat in a room.
// No transport or lifecycle logic here.
type Membership struct {
	RoomID RoomID `json:"roomId"`
	Role   Role   `json:"role"`
}

func (m Membership) IsOwner() bool { return m.Role == RoleOwner }
