package domain

// Membership binds one connection to one (user, room) pair.
// A connection holds at most one Membership at a time; a fresh join
// supersedes the previous one.
type Membership struct {
	Conn ConnID
	User UserID
	Room RoomID
}
