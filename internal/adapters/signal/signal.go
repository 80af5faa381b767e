package signal

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/dkeye/disagree/internal/app/orch"
	"github.com/dkeye/disagree/internal/core"
	"github.com/dkeye/disagree/internal/domain"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

var (
	ErrBackpressure = errors.New("backpressure")
	ErrClosed       = errors.New("connection closed")
)

type Options struct {
	ReadLimit  int64
	PingPeriod time.Duration
	PongWait   time.Duration
	WriteWait  time.Duration
	SendBuffer int
}

func DefaultOptions() Options {
	return Options{
		ReadLimit:  32768,
		PingPeriod: 54 * time.Second,
		PongWait:   60 * time.Second,
		WriteWait:  5 * time.Second,
		SendBuffer: 32,
	}
}

// SignalWSController is the transport boundary: it turns WebSocket frames into
// orchestrator calls and orchestrator events into frames.
type SignalWSController struct {
	Orch *orch.Orchestrator

	opts     Options
	validate *validator.Validate
}

func NewSignalWSController(o *orch.Orchestrator, opts Options) *SignalWSController {
	return &SignalWSController{
		Orch:     o,
		opts:     opts,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// WsSignalConn implements core.SignalConnection over one WebSocket.
type WsSignalConn struct {
	id     domain.ConnID
	token  string
	conn   *websocket.Conn
	send   chan core.Frame
	cancel context.CancelFunc

	mu     sync.RWMutex
	closed bool
}

func (c *WsSignalConn) ID() domain.ConnID { return c.id }

func (c *WsSignalConn) Send(ev core.Event) error {
	b, err := json.Marshal(outEnvelope{Type: ev.Type, Data: ev.Data})
	if err != nil {
		return err
	}
	return c.TrySend(b)
}

func (c *WsSignalConn) TrySend(f core.Frame) error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return ErrClosed
	}
	select {
	case c.send <- f:
	default:
		return ErrBackpressure
	}
	return nil
}

func (c *WsSignalConn) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	close(c.send)
	if c.cancel != nil {
		c.cancel()
	}
	_ = c.conn.Close()
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

func (ctl *SignalWSController) HandleSignal(ctx context.Context, c *gin.Context) {
	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("ws upgrade")
		return
	}

	ctx, cancel := context.WithCancel(ctx)
	conn := &WsSignalConn{
		id:     domain.NewConnID(),
		token:  c.GetString("client_token"),
		conn:   ws,
		send:   make(chan core.Frame, ctl.opts.SendBuffer),
		cancel: cancel,
	}
	log.Info().Str("module", "signal").Str("conn", string(conn.id)).Str("client", conn.token).Msg("new WS connection")

	ctl.Orch.Connect(conn.id, conn)
	_ = conn.Send(core.Event{Type: core.EventWelcome, Data: core.WelcomePayload{ConnectionID: conn.id}})
	ctl.Orch.BroadcastStats()

	go ctl.writePump(ctx, conn)
	go ctl.readPump(ctx, conn)
}
