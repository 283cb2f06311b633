package controllers

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/sancruz-dev/dotnet-waterwise/models"
)

var wsUpgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

var (
	clientsMu sync.Mutex
	clients   = make(map[*websocket.Conn]struct{})
)

// HandleWebSocket keeps a dashboard client subscribed to the live feed of
// accepted readings and alert notifications.
func HandleWebSocket(c *gin.Context) {
	conn, err := wsUpgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}

	clientsMu.Lock()
	clients[conn] = struct{}{}
	clientsMu.Unlock()

	defer func() {
		clientsMu.Lock()
		delete(clients, conn)
		clientsMu.Unlock()
		conn.Close()
	}()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
}

// BroadcastReading sends an accepted reading to all connected clients.
func BroadcastReading(reading models.Reading) {
	broadcast(map[string]interface{}{
		"event":   "reading",
		"reading": reading,
	})
}

// BroadcastAlert sends an alert notification to all connected clients.
func BroadcastAlert(alert models.Alert) {
	broadcast(map[string]interface{}{
		"event": "alert",
		"alert": alert,
	})
}

func broadcast(payload map[string]interface{}) {
	msg, _ := json.Marshal(payload)

	clientsMu.Lock()
	defer clientsMu.Unlock()
	for conn := range clients {
		conn.WriteMessage(websocket.TextMessage, msg)
	}
}
