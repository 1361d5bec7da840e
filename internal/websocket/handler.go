package websocket

import (
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

// ServeWs attaches one progress subscriber connection to the hub.
func ServeWs(hub *Hub, c *websocket.Conn, analysisID uuid.UUID) {
	client := &Client{Hub: hub, Conn: c, AnalysisID: analysisID, Send: make(chan []byte, 256)}
	client.Hub.register <- client

	go client.writePump()
	client.readPump() // Run readPump in current goroutine (handler)
}
