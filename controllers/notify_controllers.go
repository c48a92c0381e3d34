package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/comex-tools/comex-app/notify"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// NotifyHandler -> endpoint WebSocket do follow-up
func NotifyHandler(c *gin.Context) {
	roleInterface, exists := c.Get("role")
	if !exists {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}
	role := roleInterface.(string)

	if role != "admin" && role != "comex" && role != "fiscal" && role != "viewer" {
		c.AbortWithStatus(http.StatusForbidden)
		return
	}

	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}

	notify.RegisterClient(ws, role)

	// Mantém a conexão até o cliente desconectar
	for {
		if _, _, err := ws.ReadMessage(); err != nil {
			break
		}
	}

	notify.UnregisterClient(ws)
}
