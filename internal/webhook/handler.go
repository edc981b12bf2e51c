package webhook

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"command-bridge/internal/model"
	pkgResponse "command-bridge/pkg/response"
)

const rateLimitSource = "github"

// StatusResponse is the body of GET /status.
type StatusResponse struct {
	Status              string   `json:"status"`
	Service             string   `json:"service"`
	Port                int      `json:"port"`
	SignatureValidation string   `json:"signature_validation"`
	SecretConfigured    bool     `json:"secret_configured"`
	SupportedEvents     []string `json:"supported_events"`
	ConnectedClients    int      `json:"connected_clients"`
}

// HandleWebhook verifies and routes a GitHub delivery
// @Summary GitHub webhook receiver
// @Description Verifies X-Hub-Signature-256 and analyses ping, push and pull_request events
// @Tags webhook
// @Accept json
// @Produce json
// @Param X-Hub-Signature-256 header string true "sha256=<hex hmac>"
// @Param X-GitHub-Event header string true "Event type"
// @Param X-GitHub-Delivery header string false "Delivery id"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} response.ErrorBody
// @Failure 401 {object} response.ErrorBody
// @Failure 403 {object} response.ErrorBody
// @Failure 413 {object} response.ErrorBody
// @Failure 429 {object} response.ErrorBody
// @Failure 500 {object} response.ErrorBody
// @Router /webhook [post]
func (h *Handler) HandleWebhook(c *gin.Context) {
	ctx := c.Request.Context()

	if err := h.security.ValidateIPAddress(c.Request); err != nil {
		h.l.Warnf(ctx, "internal.webhook.HandleWebhook: %v", err)
		pkgResponse.Forbidden(c)
		return
	}

	// Read body
	body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, h.cfg.MaxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.l.Warnf(ctx, "internal.webhook.HandleWebhook: body exceeds %d bytes", tooLarge.Limit)
			pkgResponse.PayloadTooLarge(c)
			return
		}
		h.l.Errorf(ctx, "internal.webhook.HandleWebhook: failed to read body: %v", err)
		pkgResponse.InternalError(c)
		return
	}

	env := NewEnvelope(body, c.Request.Header)
	h.l.Infof(ctx, "internal.webhook.HandleWebhook: received %s (delivery %s)", env.Event(), env.DeliveryID())

	// Verify signature
	if err := env.Verify(h.security); err != nil {
		h.l.Errorf(ctx, "internal.webhook.HandleWebhook: signature verification failed: %v", err)
		pkgResponse.Unauthorized(c)
		return
	}

	// Check rate limit
	if err := h.security.CheckRateLimit(rateLimitSource); err != nil {
		h.l.Warnf(ctx, "internal.webhook.HandleWebhook: %v", err)
		pkgResponse.TooManyRequests(c)
		return
	}

	result, err := h.router.RouteEnvelope(ctx, env)
	if err != nil {
		if errors.Is(err, ErrInvalidPayload) {
			h.l.Errorf(ctx, "internal.webhook.HandleWebhook: failed to parse payload: %v", err)
			pkgResponse.BadRequest(c)
			return
		}
		h.l.Errorf(ctx, "internal.webhook.HandleWebhook: %v", err)
		pkgResponse.InternalError(c)
		return
	}

	if h.publisher != nil {
		h.publisher.Publish(ctx, model.NewMessage(model.MessageTypeWebhookReceived, map[string]any{
			"event":       env.Event(),
			"delivery_id": env.DeliveryID(),
			"result":      result,
		}))
	}

	h.l.Infof(ctx, "internal.webhook.HandleWebhook: processed %s webhook (%s)", env.Event(), result.Outcome())
	c.JSON(http.StatusOK, result)
}

// HandleStatus reports the webhook receiver state
// @Summary Webhook server status
// @Tags webhook
// @Produce json
// @Success 200 {object} StatusResponse
// @Router /status [get]
func (h *Handler) HandleStatus(c *gin.Context) {
	validation := "enabled"
	if !h.security.Configured() {
		validation = "no_secret_configured"
	}

	connected := 0
	if h.clients != nil {
		connected = h.clients.Len()
	}

	c.JSON(http.StatusOK, StatusResponse{
		Status:              "running",
		Service:             h.cfg.ServiceName,
		Port:                h.cfg.Port,
		SignatureValidation: validation,
		SecretConfigured:    h.security.Configured(),
		SupportedEvents:     model.SupportedEvents(),
		ConnectedClients:    connected,
	})
}
