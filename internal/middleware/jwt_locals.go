package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/Windi-Fikriyansyah/tele_freelance_hub/internal/telegram"
	"github.com/Windi-Fikriyansyah/tele_freelance_hub/internal/utils"
)

func AttachIdentity() fiber.Handler {
	return func(c *fiber.Ctx) error {
		who := telegram.DemoIdentity()

		if claims, ok := c.Locals("user").(*utils.Claims); ok && claims != nil {
			if uid := strings.TrimSpace(claims.UserID); uid != "" {
				who = telegram.Identity{UserID: uid, Name: claims.Name, InTelegram: true}
			}
		}

		c.Locals("userId", who.UserID)
		c.Locals("userName", who.Name)
		c.Locals("inTelegram", who.InTelegram)
		return c.Next()
	}
}

// IdentityFrom reads what AttachIdentity stored; missing locals give the demo user.
func IdentityFrom(c *fiber.Ctx) telegram.Identity {
	uid, _ := c.Locals("userId").(string)
	if uid == "" {
		return telegram.DemoIdentity()
	}
	name, _ := c.Locals("userName").(string)
	inTelegram, _ := c.Locals("inTelegram").(bool)
	return telegram.Identity{UserID: uid, Name: name, InTelegram: inTelegram}
}
