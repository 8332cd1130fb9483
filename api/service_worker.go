package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// @Summary		Firebase messaging service worker
// @Description	Background push handler for the web client, rendered with this project's Firebase web config.
// @Tags			web
// @Produce		application/javascript
// @Success		200	{string}	string	"Service worker script"
// @Router			/firebase-messaging-sw.js [get]
func (server *Server) getServiceWorker(c *gin.Context) {
	c.Header("Service-Worker-Allowed", "/")
	c.Header("Cache-Control", "no-cache")
	c.Data(http.StatusOK, "application/javascript; charset=utf-8", server.serviceWorker)
}
