package webhook

import (
	"context"

	"command-bridge/internal/model"
	pkgLog "command-bridge/pkg/log"
)

// DefaultMaxBodyBytes matches GitHub's 25 MB payload cap.
const DefaultMaxBodyBytes = 25 << 20

// Publisher fans a verified delivery out to interactive clients.
type Publisher interface {
	Publish(ctx context.Context, msg model.Message)
}

// ClientCounter reports how many interactive clients are connected.
type ClientCounter interface {
	Len() int
}

// Config is the dependency bag passed to NewHandler.
type Config struct {
	Security     SecurityConfig
	Port         int
	ServiceName  string
	MaxBodyBytes int64
}

type Handler struct {
	router    *Router
	security  *SecurityValidator
	publisher Publisher
	clients   ClientCounter
	cfg       Config
	l         pkgLog.Logger
}

// NewHandler wires the webhook endpoints. publisher and clients may be nil.
func NewHandler(
	router *Router,
	publisher Publisher,
	clients ClientCounter,
	cfg Config,
	l pkgLog.Logger,
) *Handler {
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = DefaultMaxBodyBytes
	}
	return &Handler{
		router:    router,
		security:  NewSecurityValidator(cfg.Security),
		publisher: publisher,
		clients:   clients,
		cfg:       cfg,
		l:         l,
	}
}
