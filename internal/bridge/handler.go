package bridge

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"command-bridge/internal/command"
	"command-bridge/pkg/response"
)

// HandleConnection godoc
// @Summary      Interactive command channel
// @Description  Upgrades to a websocket. The server sends a system_status message, then answers every
// @Description  {"command": "...", ...} message with exactly one result message.
// @Tags         Bridge
// @Success      101
// @Failure      503  {object}  response.ErrorBody
// @Router       /ws [get]
func (h *Hub) HandleConnection(c *gin.Context) {
	if h.closed.Load() {
		response.Fail(c, http.StatusServiceUnavailable, ErrHubClosed.Error())
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade has already written the HTTP error.
		h.l.Warnf(c.Request.Context(), "internal.bridge.HandleConnection: upgrade failed: %v", err)
		return
	}

	client := newClient(h, conn, c.ClientIP())
	ctx := client.logContext(h.ctx)

	h.registry.Add(client)
	// Close may have snapshotted the registry while this handshake was in flight.
	if h.closed.Load() {
		client.Close()
		return
	}
	h.l.Infof(ctx, "internal.bridge.HandleConnection: client %s connected from %s (total %d)",
		client.id, client.remoteAddr, h.registry.Len())

	go client.writePump(ctx)

	status := h.dispatcher.Execute(ctx, command.NameStatus, nil)
	if err := client.sendMessage(ctx, status); err != nil {
		h.l.Warnf(ctx, "internal.bridge.HandleConnection: initial status for %s: %v", client.id, err)
	}

	client.readPump(ctx)
	h.l.Infof(ctx, "internal.bridge.HandleConnection: client %s disconnected (total %d)", client.id, h.registry.Len())
}
