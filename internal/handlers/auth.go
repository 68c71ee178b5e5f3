package handlers

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/Windi-Fikriyansyah/tele_freelance_hub/internal/middleware"
	"github.com/Windi-Fikriyansyah/tele_freelance_hub/internal/telegram"
	"github.com/Windi-Fikriyansyah/tele_freelance_hub/internal/utils"
)

type BridgeState interface {
	State() telegram.State
}

// AuthHandler turns Telegram init data into a session cookie.
type AuthHandler struct {
	Bridge      BridgeState
	BotToken    string
	JWTSecret   string
	Expires     int
	InitDataTTL time.Duration
	Secure      bool // true di production (https, SameSite=None)
	Log         *zap.Logger

	now func() time.Time
}

type InitReq struct {
	InitData string `json:"init_data"`
}

func (h *AuthHandler) clock() time.Time {
	if h.now != nil {
		return h.now()
	}
	return time.Now()
}

func (h *AuthHandler) setCookie(c *fiber.Ctx, value string, maxAge int) {
	sameSite := "Lax"
	if h.Secure {
		sameSite = "None"
	}
	c.Cookie(&fiber.Cookie{
		Name:     middleware.CookieName,
		Value:    value,
		Path:     "/",
		HTTPOnly: true,
		Secure:   h.Secure,
		SameSite: sameSite,
		MaxAge:   maxAge,
	})
}

// Init is called once when the mini-app boots. Without init data the caller
// continues as the demo user.
func (h *AuthHandler) Init(c *fiber.Ctx) error {
	var req InitReq
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}

	initData := strings.TrimSpace(req.InitData)
	if initData == "" {
		h.setCookie(c, "", -1)
		return c.JSON(fiber.Map{
			"success": true,
			"message": "Mode demo",
			"data": fiber.Map{
				"identity": telegram.DemoIdentity(),
				"bridge":   h.Bridge.State(),
			},
		})
	}

	user, err := telegram.ValidateInitData(initData, h.BotToken, h.InitDataTTL, h.clock())
	if err != nil {
		h.Log.Warn("init data rejected", zap.Error(err))
		return fail(c, fiber.StatusUnauthorized, "init data tidak valid",
			utils.NotifyError("Sesi Telegram tidak valid. Silakan buka ulang mini app."))
	}

	who := telegram.IdentityOf(user)
	token, err := utils.SignJWT(h.JWTSecret, who.UserID, who.Name, h.Expires)
	if err != nil {
		h.Log.Error("sign session token", zap.Error(err))
		return fail(c, fiber.StatusInternalServerError, "gagal membuat sesi",
			utils.NotifyError("Gagal memulai sesi. Silakan coba lagi."))
	}
	h.setCookie(c, token, h.Expires*60)

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Sesi dimulai",
		"data": fiber.Map{
			"identity": who,
			"bridge":   h.Bridge.State(),
		},
	})
}

func (h *AuthHandler) State(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"identity": middleware.IdentityFrom(c),
			"bridge":   h.Bridge.State(),
		},
	})
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	h.setCookie(c, "", -1)
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Logout berhasil",
	})
}
