package middleware

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Windi-Fikriyansyah/tele_freelance_hub/internal/utils"
)

const CookieName = "tfh_token"

// JWTFromCookie stores the session claims in locals. Without a cookie the request
// continues anonymously and AttachIdentity falls back to the demo user.
func JWTFromCookie(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenStr := c.Cookies(CookieName)
		if tokenStr == "" {
			return c.Next()
		}

		claims, err := utils.ParseJWT(secret, tokenStr)
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "sesi tidak valid, buka ulang mini app")
		}

		c.Locals("user", claims)
		return c.Next()
	}
}
