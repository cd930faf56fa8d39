package app

import (
	"encoding/json"

	"github.com/rs/zerolog/log"

	"github.com/Alexyali/rtc-signal-server/internal/core"
	"github.com/Alexyali/rtc-signal-server/internal/domain"
)

// Notifier delivers core-issued messages to connections. Sends are
// non-blocking handoffs to the peer's outbound buffer; a failure (the peer
// disconnected between snapshot and send, or its buffer is full) is logged
// and counted, never propagated.
type Notifier struct {
	registry *Registry
}

func NewNotifier(registry *Registry) *Notifier {
	return &Notifier{registry: registry}
}

// SendTo delivers v to exactly one connection.
func (n *Notifier) SendTo(id domain.ConnID, v any) {
	sc, ok := n.registry.Conn(id)
	if !ok {
		incDropped()
		log.Debug().Str("module", "app.notifier").Str("conn", string(id)).Msg("send to unknown connection")
		return
	}
	n.push(id, sc, v)
}

// BroadcastToRoom delivers v to every connection currently in room except
// the excluded sender. Membership is snapshotted at call time; v is
// marshaled once for the whole fan-out.
func (n *Notifier) BroadcastToRoom(room domain.RoomID, v any, exclude domain.ConnID) {
	b, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Str("module", "app.notifier").Msg("marshal outbound message")
		return
	}
	for _, snap := range n.registry.ConnsInRoom(room, exclude) {
		n.enqueue(snap.ID, snap.Conn, b)
	}
}

// RelayToRoom forwards an already-serialized frame to every connection in
// room except the sender.
func (n *Notifier) RelayToRoom(room domain.RoomID, frame core.Frame, exclude domain.ConnID) {
	for _, snap := range n.registry.ConnsInRoom(room, exclude) {
		n.enqueue(snap.ID, snap.Conn, frame)
	}
}

func (n *Notifier) push(id domain.ConnID, sc core.SignalConnection, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Str("module", "app.notifier").Msg("marshal outbound message")
		return
	}
	n.enqueue(id, sc, b)
}

func (n *Notifier) enqueue(id domain.ConnID, sc core.SignalConnection, frame core.Frame) {
	if err := sc.TrySend(frame); err != nil {
		incDropped()
		log.Warn().Err(err).Str("module", "app.notifier").Str("conn", string(id)).Msg("dropped outbound message")
		return
	}
	incDelivered()
}
