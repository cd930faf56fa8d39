package app

import (
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/Alexyali/rtc-signal-server/internal/domain"
)

// RoomInfo is a read-only view of one room for the introspection API.
type RoomInfo struct {
	ID          domain.RoomID `json:"roomId"`
	MemberCount int           `json:"memberCount"`
}

// RoomTable is the process-wide mapping roomID -> member set. Rooms are
// created on first join and destroyed on the leave that empties them, so
// a room present in the table always has at least one member.
type RoomTable struct {
	mu    sync.RWMutex
	rooms map[domain.RoomID]map[domain.UserID]struct{}
}

func NewRoomTable() *RoomTable {
	return &RoomTable{rooms: make(map[domain.RoomID]map[domain.UserID]struct{})}
}

// Join inserts user into room, creating the room if absent. It returns the
// post-join member snapshot including the joiner, and whether the user was
// newly inserted (false on an idempotent re-join).
func (t *RoomTable) Join(room domain.RoomID, user domain.UserID) ([]domain.UserID, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	members, ok := t.rooms[room]
	if !ok {
		members = make(map[domain.UserID]struct{})
		t.rooms[room] = members
		setRooms(len(t.rooms))
		log.Info().Str("module", "app.rooms").Str("room", string(room)).Msg("room created")
	}
	_, existed := members[user]
	members[user] = struct{}{}
	return memberSnapshot(members), !existed
}

// Leave removes user from room and reports whether the user was a member.
// The room entry is deleted when its member set empties.
func (t *RoomTable) Leave(room domain.RoomID, user domain.UserID) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	members, ok := t.rooms[room]
	if !ok {
		return false
	}
	if _, ok := members[user]; !ok {
		return false
	}
	delete(members, user)
	if len(members) == 0 {
		delete(t.rooms, room)
		setRooms(len(t.rooms))
		log.Info().Str("module", "app.rooms").Str("room", string(room)).Msg("room destroyed (empty)")
	}
	return true
}

// MembersOf returns the current member set of room; empty, not an error,
// when the room does not exist.
func (t *RoomTable) MembersOf(room domain.RoomID) []domain.UserID {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return memberSnapshot(t.rooms[room])
}

func (t *RoomTable) List() []RoomInfo {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]RoomInfo, 0, len(t.rooms))
	for id, members := range t.rooms {
		out = append(out, RoomInfo{ID: id, MemberCount: len(members)})
	}
	return out
}

func (t *RoomTable) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.rooms)
}

func memberSnapshot(members map[domain.UserID]struct{}) []domain.UserID {
	out := make([]domain.UserID, 0, len(members))
	for u := range members {
		out = append(out, u)
	}
	return out
}
