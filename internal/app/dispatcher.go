package app

import (
	"errors"
	"fmt"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"

	"github.com/Alexyali/rtc-signal-server/internal/core"
	"github.com/Alexyali/rtc-signal-server/internal/domain"
)

// ErrValidation marks a join/leave rejected before any state mutation.
var ErrValidation = errors.New("validation failed")

// JoinRequest is the payload of an inbound join message.
type JoinRequest struct {
	UserID string `json:"userId" validate:"required"`
	RoomID string `json:"roomId" validate:"required"`
}

// LeaveRequest is the payload of an inbound leave message.
type LeaveRequest struct {
	UserID string `json:"userId" validate:"required"`
	RoomID string `json:"roomId" validate:"required"`
}

// Dispatcher owns the membership protocol. One mutex serializes every
// mutate-then-notify step, so no mutation of a room is ever observed
// mid-transition; notification handoff is non-blocking, so nothing slow
// happens under the lock.
type Dispatcher struct {
	mu       sync.Mutex
	rooms    *RoomTable
	registry *Registry
	notifier *Notifier
	validate *validator.Validate
}

func NewDispatcher(rooms *RoomTable, registry *Registry, notifier *Notifier) *Dispatcher {
	return &Dispatcher{
		rooms:    rooms,
		registry: registry,
		notifier: notifier,
		validate: validator.New(),
	}
}

// Connect attaches a freshly accepted connection and greets it with its id.
func (d *Dispatcher) Connect(conn domain.ConnID, sc core.SignalConnection) {
	d.registry.Attach(conn, sc)
	d.notifier.SendTo(conn, core.NewConnected(conn))
}

// Join handles an inbound join. A prior membership of the same connection
// is implicitly superseded: its leave side-effects run first, including the
// user-left broadcast to the old room. Re-joining the same (user, room) is
// idempotent and emits no duplicate user-joined.
func (d *Dispatcher) Join(conn domain.ConnID, req JoinRequest) error {
	if err := d.validate.Struct(req); err != nil {
		return fmt.Errorf("%w: userId and roomId are required", ErrValidation)
	}
	user, room := domain.UserID(req.UserID), domain.RoomID(req.RoomID)

	d.mu.Lock()
	defer d.mu.Unlock()

	prev, had := d.registry.Unbind(conn)
	rejoin := had && prev.User == user && prev.Room == room
	if had && !rejoin {
		d.dropMembership(prev)
		log.Info().Str("module", "app.dispatcher").Str("conn", string(conn)).
			Str("from_room", string(prev.Room)).Msg("prior membership superseded by join")
	}

	users, inserted := d.rooms.Join(room, user)
	d.registry.Bind(conn, user, room)
	incJoins()

	d.notifier.SendTo(conn, core.NewJoined(user, room, users))
	if inserted {
		d.notifier.BroadcastToRoom(room, core.NewUserJoined(user, room), conn)
	}
	log.Info().Str("module", "app.dispatcher").Str("conn", string(conn)).
		Str("user", string(user)).Str("room", string(room)).Int("members", len(users)).Msg("join")
	return nil
}

// Leave handles an inbound leave. The leaved ack is unconditional; a leave
// that matches no recorded membership mutates nothing and broadcasts
// nothing.
func (d *Dispatcher) Leave(conn domain.ConnID, req LeaveRequest) error {
	if err := d.validate.Struct(req); err != nil {
		return fmt.Errorf("%w: userId and roomId are required", ErrValidation)
	}
	user, room := domain.UserID(req.UserID), domain.RoomID(req.RoomID)

	d.mu.Lock()
	defer d.mu.Unlock()

	m, ok := d.registry.MembershipOf(conn)
	if !ok || m.User != user || m.Room != room {
		d.notifier.SendTo(conn, core.NewLeaved(user, room))
		log.Debug().Str("module", "app.dispatcher").Str("conn", string(conn)).
			Str("user", string(user)).Str("room", string(room)).Msg("leave without matching membership")
		return nil
	}

	d.registry.Unbind(conn)
	d.rooms.Leave(room, user)
	incLeaves()

	d.notifier.SendTo(conn, core.NewLeaved(user, room))
	d.notifier.BroadcastToRoom(room, core.NewUserLeft(user, room), conn)
	log.Info().Str("module", "app.dispatcher").Str("conn", string(conn)).
		Str("user", string(user)).Str("room", string(room)).Msg("leave")
	return nil
}

// Disconnect cleans up after a transport-signaled disconnect. No leaved is
// sent; the connection is already gone. Safe to call for a connection that
// never joined, and concurrently with a Leave for the same connection.
func (d *Dispatcher) Disconnect(conn domain.ConnID) {
	d.mu.Lock()
	defer d.mu.Unlock()

	m, had := d.registry.Unbind(conn)
	d.registry.Detach(conn)
	if !had {
		return
	}
	d.dropMembership(m)
	incLeaves()
	log.Info().Str("module", "app.dispatcher").Str("conn", string(conn)).
		Str("user", string(m.User)).Str("room", string(m.Room)).Msg("disconnect cleanup")
}

// Relay forwards an opaque signaling frame to every other connection in
// room. Frames without a room are dropped.
func (d *Dispatcher) Relay(conn domain.ConnID, room domain.RoomID, frame core.Frame) {
	if room == "" {
		log.Debug().Str("module", "app.dispatcher").Str("conn", string(conn)).Msg("relay without room dropped")
		return
	}
	d.notifier.RelayToRoom(room, frame, conn)
}

// dropMembership runs the leave side-effects of a membership that ended
// without an explicit, matching leave. Caller holds d.mu.
func (d *Dispatcher) dropMembership(m domain.Membership) {
	if d.rooms.Leave(m.Room, m.User) {
		d.notifier.BroadcastToRoom(m.Room, core.NewUserLeft(m.User, m.Room), m.Conn)
	}
}
