package handler

import (
	"github.com/Tigierre/contractguardian/internal/pkg/logger"
	internalWS "github.com/Tigierre/contractguardian/internal/websocket"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

// ProgressHandler exposes the live analysis progress stream.
type ProgressHandler struct {
	hub    *internalWS.Hub
	logger logger.ILogger
}

func NewProgressHandler(hub *internalWS.Hub, log logger.ILogger) *ProgressHandler {
	return &ProgressHandler{
		hub:    hub,
		logger: log,
	}
}

// ServeWs upgrades the connection and subscribes it to one analysis id.
func (h *ProgressHandler) ServeWs(c *fiber.Ctx) error {
	analysisID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid analysis id"})
	}

	if websocket.IsWebSocketUpgrade(c) {
		return websocket.New(func(conn *websocket.Conn) {
			h.logger.Info("ProgressHandler", "Starting WebSocket session", map[string]interface{}{"analysis_id": analysisID})
			internalWS.ServeWs(h.hub, conn, analysisID)
			h.logger.Info("ProgressHandler", "WebSocket session ended", map[string]interface{}{"analysis_id": analysisID})
		})(c)
	}
	return fiber.ErrUpgradeRequired
}

func (h *ProgressHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/ws/analysis/:id", h.ServeWs)
}
