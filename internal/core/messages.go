package core

import "github.com/Alexyali/rtc-signal-server/internal/domain"

// Wire message types emitted by the core. The transport adapter serializes
// them; clients dispatch on the "type" field.
const (
	TypeConnected  = "connected"
	TypeJoined     = "joined"
	TypeUserJoined = "user-joined"
	TypeLeaved     = "leaved"
	TypeUserLeft   = "user-left"
	TypeError      = "error"
	TypePong       = "pong"
)

// Connected greets a freshly attached connection with its id.
type Connected struct {
	Type string        `json:"type"`
	Conn domain.ConnID `json:"connId"`
}

// Joined acknowledges a join to the joiner only. Users holds the full
// member list of the room after the join, including the joiner; it is a
// set (no duplicates), order unspecified.
type Joined struct {
	Type   string          `json:"type"`
	UserID domain.UserID   `json:"userId"`
	RoomID domain.RoomID   `json:"roomId"`
	Users  []domain.UserID `json:"users"`
}

// UserJoined notifies the rest of a room about a new member.
type UserJoined struct {
	Type   string        `json:"type"`
	UserID domain.UserID `json:"userId"`
	RoomID domain.RoomID `json:"roomId"`
}

// Leaved acknowledges a leave to the leaver. Sent unconditionally, even
// when no matching membership existed.
type Leaved struct {
	Type   string        `json:"type"`
	UserID domain.UserID `json:"userId"`
	RoomID domain.RoomID `json:"roomId"`
}

// UserLeft notifies a room's remaining members about a departure,
// whether by explicit leave or by disconnect.
type UserLeft struct {
	Type   string        `json:"type"`
	UserID domain.UserID `json:"userId"`
	RoomID domain.RoomID `json:"roomId"`
}

// ErrorMsg reports a rejected message back to its originating connection.
type ErrorMsg struct {
	Type  string `json:"type"`
	Error string `json:"error"`
}

// Pong answers a client ping.
type Pong struct {
	Type string `json:"type"`
}

func NewConnected(conn domain.ConnID) Connected {
	return Connected{Type: TypeConnected, Conn: conn}
}

func NewJoined(user domain.UserID, room domain.RoomID, users []domain.UserID) Joined {
	return Joined{Type: TypeJoined, UserID: user, RoomID: room, Users: users}
}

func NewUserJoined(user domain.UserID, room domain.RoomID) UserJoined {
	return UserJoined{Type: TypeUserJoined, UserID: user, RoomID: room}
}

func NewLeaved(user domain.UserID, room domain.RoomID) Leaved {
	return Leaved{Type: TypeLeaved, UserID: user, RoomID: room}
}

func NewUserLeft(user domain.UserID, room domain.RoomID) UserLeft {
	return UserLeft{Type: TypeUserLeft, UserID: user, RoomID: room}
}

func NewError(msg string) ErrorMsg {
	return ErrorMsg{Type: TypeError, Error: msg}
}

func NewPong() Pong {
	return Pong{Type: TypePong}
}
