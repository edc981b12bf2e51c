package httpserver

import (
	"fmt"
	"html"
	"net/http"

	"github.com/gin-gonic/gin"
)

const infoPageTemplate = `<!DOCTYPE html>
<html>
<head><title>%[1]s</title></head>
<body>
<h1>%[1]s</h1>
<p>GitHub webhook receiver and websocket command bridge.</p>
<ul>
<li><code>POST /webhook</code> GitHub webhook (X-Hub-Signature-256 required)</li>
<li><code>GET /status</code> service status</li>
<li><code>GET /ws</code> websocket command channel</li>
<li><code>GET /health</code>, <code>/ready</code>, <code>/live</code></li>
<li><a href="/swagger/index.html">API docs</a></li>
</ul>
</body>
</html>
`

// infoPage godoc
// @Summary      Service info page
// @Tags         System
// @Produce      html
// @Success      200  {string}  string
// @Router       / [get]
func (srv *HTTPServer) infoPage(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(fmt.Sprintf(infoPageTemplate, html.EscapeString(srv.serviceName))))
}
