package bridge

import (
	"context"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"command-bridge/internal/command"
	"command-bridge/internal/model"
	pkgLog "command-bridge/pkg/log"
)

// Connection defaults
const (
	DefaultSendBuffer      = 256
	DefaultWriteWait       = 10 * time.Second
	DefaultPongWait        = 60 * time.Second
	DefaultMaxMessageBytes = 512 * 1024
)

type Config struct {
	SendBuffer      int
	WriteWait       time.Duration
	PongWait        time.Duration
	MaxMessageBytes int64
	// AllowedOrigins restricts browser upgrades. Empty or "*" allows any origin.
	AllowedOrigins []string
}

// Dispatcher turns client messages into results.
type Dispatcher interface {
	Dispatch(ctx context.Context, raw []byte) model.Message
	Execute(ctx context.Context, name string, params command.Params) model.Message
}

// Hub owns the client registry and the websocket endpoint.
type Hub struct {
	registry   *Registry
	dispatcher Dispatcher
	upgrader   websocket.Upgrader
	cfg        Config
	l          pkgLog.Logger
	now        func() time.Time

	ctx    context.Context
	cancel context.CancelFunc
	closed atomic.Bool
}

// NewHub creates a hub serving registry. Zero config fields take the defaults.
func NewHub(registry *Registry, dispatcher Dispatcher, cfg Config, l pkgLog.Logger) *Hub {
	cfg = cfg.withDefaults()
	ctx, cancel := context.WithCancel(context.Background())

	h := &Hub{
		registry:   registry,
		dispatcher: dispatcher,
		cfg:        cfg,
		l:          l,
		now:        time.Now,
		ctx:        ctx,
		cancel:     cancel,
	}
	h.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     h.checkOrigin,
	}
	return h
}

// Len reports the number of connected clients.
func (h *Hub) Len() int {
	return h.registry.Len()
}

// Close disconnects every client and rejects new connections.
func (h *Hub) Close() {
	if !h.closed.CompareAndSwap(false, true) {
		return
	}
	h.cancel()
	for _, c := range h.registry.Snapshot() {
		c.Close()
	}
}

func (c Config) withDefaults() Config {
	if c.SendBuffer <= 0 {
		c.SendBuffer = DefaultSendBuffer
	}
	if c.WriteWait <= 0 {
		c.WriteWait = DefaultWriteWait
	}
	if c.PongWait <= 0 {
		c.PongWait = DefaultPongWait
	}
	if c.MaxMessageBytes <= 0 {
		c.MaxMessageBytes = DefaultMaxMessageBytes
	}
	return c
}

// pingPeriod must stay below PongWait.
func (c Config) pingPeriod() time.Duration {
	return (c.PongWait * 9) / 10
}

func (h *Hub) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" || len(h.cfg.AllowedOrigins) == 0 {
		return true
	}
	for _, allowed := range h.cfg.AllowedOrigins {
		if allowed == "*" || allowed == origin {
			return true
		}
	}
	return false
}
