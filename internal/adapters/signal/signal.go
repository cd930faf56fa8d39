// Package signal is the websocket transport adapter. It upgrades
// connections, frames inbound messages and feeds them to the dispatcher,
// and drains each connection's outbound buffer.
package signal

import (
	"context"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/Alexyali/rtc-signal-server/internal/app"
	"github.com/Alexyali/rtc-signal-server/internal/config"
	"github.com/Alexyali/rtc-signal-server/internal/core"
	"github.com/Alexyali/rtc-signal-server/internal/domain"
)

type SignalWSController struct {
	Dispatcher *app.Dispatcher
	cfg        *config.Config
	upgrader   websocket.Upgrader
	limiter    *MessageRateLimiter
}

func NewSignalWSController(cfg *config.Config, dispatcher *app.Dispatcher) *SignalWSController {
	return &SignalWSController{
		Dispatcher: dispatcher,
		cfg:        cfg,
		upgrader: websocket.Upgrader{
			CheckOrigin: newOriginChecker(cfg.AllowedOrigins),
		},
		limiter: NewMessageRateLimiter(cfg.RateLimit, cfg.RateInterval),
	}
}

type WsSignalConn struct {
	conn *websocket.Conn
	send chan core.Frame

	mu     sync.RWMutex
	closed bool
}

func (c *WsSignalConn) TrySend(f core.Frame) error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return core.ErrConnClosed
	}
	select {
	case c.send <- f:
	default:
		return core.ErrBackpressure
	}
	return nil
}

func (c *WsSignalConn) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	close(c.send)
	_ = c.conn.Close()
	c.mu.Unlock()
}

// HandleSignal upgrades the request and runs the connection until it drops.
// Every socket gets its own ConnID; the client token cookie only ties log
// lines of one browser together.
func (ctl *SignalWSController) HandleSignal(ctx context.Context, c *gin.Context) {
	cid := domain.ConnID(uuid.NewString())
	log.Info().Str("module", "signal").Str("conn", string(cid)).
		Str("client", c.GetString("client_token")).Msg("new WS connection")

	ws, err := ctl.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("ws upgrade")
		return
	}
	ws.SetReadLimit(ctl.cfg.ReadLimit)
	ctl.configureKeepalive(ws, ctl.cfg.PingPeriod+writeDeadline)

	conn := &WsSignalConn{
		conn: ws,
		send: make(chan core.Frame, ctl.cfg.SendBuffer),
	}

	ctl.Dispatcher.Connect(cid, conn)

	ctx, cancel := context.WithCancel(ctx)
	go func() {
		ctl.writePump(ctx, conn)
		cancel()
	}()
	go ctl.readPump(ctx, cid, conn, cancel)
}
