package signal

import (
	"encoding/json"
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/Alexyali/rtc-signal-server/internal/app"
	"github.com/Alexyali/rtc-signal-server/internal/core"
	"github.com/Alexyali/rtc-signal-server/internal/domain"
)

func (ctl *SignalWSController) handleJoin(cid domain.ConnID, conn *WsSignalConn, data []byte) {
	var req app.JoinRequest
	if err := json.Unmarshal(data, &req); err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("bad join payload")
		ctl.sendJSON(conn, core.NewError("bad_payload"))
		return
	}
	if err := ctl.Dispatcher.Join(cid, req); err != nil {
		if errors.Is(err, app.ErrValidation) {
			ctl.sendJSON(conn, core.NewError("userId and roomId are required"))
			return
		}
		log.Error().Err(err).Str("module", "signal").Str("conn", string(cid)).Msg("join failed")
	}
}

func (ctl *SignalWSController) handleLeave(cid domain.ConnID, conn *WsSignalConn, data []byte) {
	var req app.LeaveRequest
	if err := json.Unmarshal(data, &req); err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("bad leave payload")
		ctl.sendJSON(conn, core.NewError("bad_payload"))
		return
	}
	if err := ctl.Dispatcher.Leave(cid, req); err != nil {
		if errors.Is(err, app.ErrValidation) {
			ctl.sendJSON(conn, core.NewError("userId and roomId are required"))
			return
		}
		log.Error().Err(err).Str("module", "signal").Str("conn", string(cid)).Msg("leave failed")
	}
}

// handleRelay forwards a signaling payload (SDP offers/answers, ICE
// candidates and the like) verbatim to the rest of the room.
func (ctl *SignalWSController) handleRelay(cid domain.ConnID, data []byte) {
	var env relayEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("bad relay payload")
		return
	}
	log.Debug().Str("module", "signal").Str("conn", string(cid)).Str("room", env.RoomID).Msg("relaying message")
	ctl.Dispatcher.Relay(cid, domain.RoomID(env.RoomID), core.Frame(data))
}
