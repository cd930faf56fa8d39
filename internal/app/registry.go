package app

import (
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/Alexyali/rtc-signal-server/internal/core"
	"github.com/Alexyali/rtc-signal-server/internal/domain"
)

type connEntry struct {
	conn       core.SignalConnection
	membership *domain.Membership
}

// Registry maps live connections to their outbound endpoint and, while
// joined, to their active membership. It is the only place that resolves
// connID -> (userID, roomID), which keeps disconnect cleanup O(1).
type Registry struct {
	mu    sync.RWMutex
	conns map[domain.ConnID]*connEntry
}

func NewRegistry() *Registry {
	return &Registry{conns: make(map[domain.ConnID]*connEntry)}
}

// Attach records the outbound endpoint for a freshly accepted connection.
func (r *Registry) Attach(id domain.ConnID, sc core.SignalConnection) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.conns[id] = &connEntry{conn: sc}
	incConnections()
	log.Info().Str("module", "app.registry").Str("conn", string(id)).Msg("connection attached")
}

// Detach forgets the connection entirely and returns its endpoint, nil if
// the connection was never attached or already detached.
func (r *Registry) Detach(id domain.ConnID) core.SignalConnection {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.conns[id]
	if !ok {
		return nil
	}
	delete(r.conns, id)
	decConnections()
	log.Info().Str("module", "app.registry").Str("conn", string(id)).Msg("connection detached")
	return e.conn
}

// Bind records the active membership for a connection, overwriting any
// prior one. Overwrites are expected when a connection switches rooms
// without an explicit leave.
func (r *Registry) Bind(id domain.ConnID, user domain.UserID, room domain.RoomID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.conns[id]
	if !ok {
		e = &connEntry{}
		r.conns[id] = e
	}
	e.membership = &domain.Membership{Conn: id, User: user, Room: room}
	log.Info().Str("module", "app.registry").Str("conn", string(id)).
		Str("user", string(user)).Str("room", string(room)).Msg("membership bound")
}

// Unbind clears and returns the prior membership. Idempotent: a second
// call, or a call racing a disconnect for the same connection, reports
// false and does nothing.
func (r *Registry) Unbind(id domain.ConnID) (domain.Membership, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.conns[id]
	if !ok || e.membership == nil {
		return domain.Membership{}, false
	}
	m := *e.membership
	e.membership = nil
	log.Info().Str("module", "app.registry").Str("conn", string(id)).Msg("membership unbound")
	return m, true
}

// MembershipOf reads the active membership without clearing it.
func (r *Registry) MembershipOf(id domain.ConnID) (domain.Membership, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.conns[id]
	if !ok || e.membership == nil {
		return domain.Membership{}, false
	}
	return *e.membership, true
}

// Conn returns the outbound endpoint of a live connection.
func (r *Registry) Conn(id domain.ConnID) (core.SignalConnection, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.conns[id]
	if !ok || e.conn == nil {
		return nil, false
	}
	return e.conn, true
}

// ConnSnap pairs a connection id with its endpoint in a broadcast snapshot.
type ConnSnap struct {
	ID   domain.ConnID
	Conn core.SignalConnection
}

// ConnsInRoom snapshots the endpoints of every connection whose membership
// points at room, except the excluded one. The snapshot reflects the
// registry at call time; a concurrently completing disconnect may or may
// not be included.
func (r *Registry) ConnsInRoom(room domain.RoomID, exclude domain.ConnID) []ConnSnap {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]ConnSnap, 0, len(r.conns))
	for id, e := range r.conns {
		if id == exclude || e.membership == nil || e.membership.Room != room || e.conn == nil {
			continue
		}
		out = append(out, ConnSnap{ID: id, Conn: e.conn})
	}
	return out
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.conns)
}
