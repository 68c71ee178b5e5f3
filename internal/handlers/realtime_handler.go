package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Windi-Fikriyansyah/tele_freelance_hub/internal/realtime"
)

const pingInterval = 30 * time.Second

// RealtimeHandler pushes order changes to open management panels.
type RealtimeHandler struct {
	Hub *realtime.Hub
	Log *zap.Logger
}

func NewRealtimeHandler(hub *realtime.Hub, log *zap.Logger) *RealtimeHandler {
	return &RealtimeHandler{Hub: hub, Log: log.Named("ws")}
}

// Upgrade rejects plain HTTP requests on the websocket route.
func (h *RealtimeHandler) Upgrade(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		return c.Next()
	}
	return fiber.ErrUpgradeRequired
}

func (h *RealtimeHandler) Stream(c *websocket.Conn) {
	userID, _ := c.Locals("userId").(string)

	client := &realtime.Client{
		ID:     uuid.NewString(),
		UserID: userID,
		Conn:   realtime.NewWebSocketConn(c),
		Send:   make(chan []byte, 64),
	}

	h.Hub.RegisterClient(client)
	h.Log.Debug("panel connected", zap.String("user", userID))
	defer func() {
		h.Hub.UnregisterClient(client)
		h.Log.Debug("panel disconnected", zap.String("user", userID))
	}()

	go func() {
		if err := realtime.Pump(client, pingInterval); err != nil {
			h.Log.Debug("ws write", zap.String("user", userID), zap.Error(err))
		}
	}()

	// client hanya kirim ping; baca terus supaya close terdeteksi
	for {
		if _, _, err := c.ReadMessage(); err != nil {
			return
		}
	}
}
