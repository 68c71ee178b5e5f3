package middleware

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/Windi-Fikriyansyah/tele_freelance_hub/internal/models"
	"github.com/Windi-Fikriyansyah/tele_freelance_hub/internal/telegram"
	"github.com/Windi-Fikriyansyah/tele_freelance_hub/internal/utils"
)

const AccessDeniedMessage = "Anda tidak memiliki akses ke panel admin."

type ProfileResolver interface {
	ResolveProfile(ctx context.Context, who telegram.Identity) (*models.Profile, error)
}

// RequireRoles checks the caller's stored profile role, not a claim in the token.
func RequireRoles(profiles ProfileResolver, allowed ...models.Role) fiber.Handler {
	allowedSet := map[models.Role]bool{}
	for _, r := range allowed {
		allowedSet[r] = true
	}

	return func(c *fiber.Ctx) error {
		who := IdentityFrom(c)

		p, err := profiles.ResolveProfile(c.UserContext(), who)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"success":      false,
				"message":      "gagal memuat profil",
				"notification": utils.NotifyError("Gagal memuat data panel admin"),
			})
		}

		if !allowedSet[p.Role] {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"success":      false,
				"message":      AccessDeniedMessage,
				"notification": utils.NotifyError(AccessDeniedMessage),
			})
		}

		c.Locals("profile", p)
		return c.Next()
	}
}
