package httpserver

import (
	"errors"

	"github.com/gin-gonic/gin"

	"command-bridge/internal/middleware"
	"command-bridge/pkg/log"
)

// WebhookHandler serves the GitHub webhook routes.
type WebhookHandler interface {
	HandleWebhook(c *gin.Context)
	HandleStatus(c *gin.Context)
}

// BridgeHandler serves the websocket endpoint and is closed on shutdown.
type BridgeHandler interface {
	HandleConnection(c *gin.Context)
	Close()
}

// HTTPServer holds all dependencies for the HTTP server.
type HTTPServer struct {
	// Server
	gin         *gin.Engine
	l           log.Logger
	port        int
	mode        string
	environment string
	serviceName string

	webhookHandler WebhookHandler
	bridgeHandler  BridgeHandler
}

// Config is the dependency bag passed to New().
type Config struct {
	Port        int
	Mode        string
	Environment string
	ServiceName string

	WebhookHandler WebhookHandler
	BridgeHandler  BridgeHandler
}

// New creates a new HTTPServer instance with every route mapped.
func New(logger log.Logger, cfg Config) (*HTTPServer, error) {
	gin.SetMode(cfg.Mode)

	if cfg.ServiceName == "" {
		cfg.ServiceName = ServiceName
	}

	srv := &HTTPServer{
		l:              logger,
		gin:            gin.New(),
		port:           cfg.Port,
		mode:           cfg.Mode,
		environment:    cfg.Environment,
		serviceName:    cfg.ServiceName,
		webhookHandler: cfg.WebhookHandler,
		bridgeHandler:  cfg.BridgeHandler,
	}

	if err := srv.validate(); err != nil {
		return nil, err
	}

	srv.mapHandlers(middleware.New(logger))
	return srv, nil
}

// Handler exposes the engine, mainly for tests.
func (srv *HTTPServer) Handler() *gin.Engine {
	return srv.gin
}

func (srv *HTTPServer) validate() error {
	if srv.l == nil {
		return errors.New("logger is required")
	}
	if srv.mode == "" {
		return errors.New("mode is required")
	}
	if srv.port == 0 {
		return errors.New("port is required")
	}
	return nil
}
