package signal

import (
	"context"
	"encoding/json"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/Alexyali/rtc-signal-server/internal/core"
	"github.com/Alexyali/rtc-signal-server/internal/domain"
)

const writeDeadline = 5 * time.Second

// configureKeepalive arms the read deadline that pairs with the ping
// ticker: a peer that stops answering pings, or vanished without closing
// the socket, errors readPump out of ReadMessage once wait elapses instead
// of holding its membership forever.
func (ctl *SignalWSController) configureKeepalive(ws *websocket.Conn, wait time.Duration) {
	if err := ws.SetReadDeadline(time.Now().Add(wait)); err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("set initial read deadline")
	}
	ws.SetPongHandler(func(string) error {
		return ws.SetReadDeadline(time.Now().Add(wait))
	})
}

func (ctl *SignalWSController) writePump(ctx context.Context, c *WsSignalConn) {
	ticker := time.NewTicker(ctl.cfg.PingPeriod)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			log.Info().Str("module", "signal").Msg("writePump ctx done")
			return
		case <-ticker.C:
			if err := c.conn.SetWriteDeadline(time.Now().Add(writeDeadline)); err != nil {
				log.Error().Err(err).Str("module", "signal").Msg("writePump set deadline")
				return
			}
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				log.Warn().Err(err).Str("module", "signal").Msg("writePump ping")
				return
			}
		case data, ok := <-c.send:
			if !ok {
				log.Warn().Str("module", "signal").Msg("writePump channel closed")
				return
			}
			if err := c.conn.SetWriteDeadline(time.Now().Add(writeDeadline)); err != nil {
				log.Error().Err(err).Str("module", "signal").Msg("writePump set deadline")
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				log.Error().Err(err).Str("module", "signal").Msg("writePump write error")
				return
			}
		}
	}
}

func (ctl *SignalWSController) readPump(ctx context.Context, cid domain.ConnID, c *WsSignalConn, cancel context.CancelFunc) {
	defer func() {
		log.Info().Str("module", "signal").Str("conn", string(cid)).Msg("readPump closing")
		ctl.Dispatcher.Disconnect(cid)
		ctl.limiter.Forget(cid)
		cancel()
		c.Close()
	}()

	for {
		select {
		case <-ctx.Done():
			log.Info().Str("module", "signal").Str("conn", string(cid)).Msg("readPump ctx done")
			return
		default:
			_, data, err := c.conn.ReadMessage()
			if err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
					log.Error().Err(err).Str("module", "signal").Str("conn", string(cid)).Msg("readPump read error")
				}
				return
			}
			if !ctl.limiter.Allow(cid) {
				log.Warn().Str("module", "signal").Str("conn", string(cid)).Msg("rate limit exceeded, message dropped")
				continue
			}
			ctl.handleSignal(cid, c, data)
		}
	}
}

func (ctl *SignalWSController) handleSignal(cid domain.ConnID, c *WsSignalConn, data []byte) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		log.Error().Err(err).Str("module", "signal").Str("conn", string(cid)).Msg("bad json")
		ctl.sendJSON(c, core.NewError("bad_payload"))
		return
	}

	switch env.Type {
	case typeJoin:
		ctl.handleJoin(cid, c, data)
	case typeLeave:
		ctl.handleLeave(cid, c, data)
	case typeMessage:
		ctl.handleRelay(cid, data)
	case typePing:
		ctl.sendJSON(c, core.NewPong())
	default:
		// Unknown types are dropped, never fatal for the connection.
		log.Warn().Str("module", "signal").Str("type", env.Type).Msg("unknown signal ignored")
	}
}

func (ctl *SignalWSController) sendJSON(c *WsSignalConn, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("sendJSON marshal")
		return
	}
	_ = c.TrySend(b)
}
