package handlers

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/Windi-Fikriyansyah/tele_freelance_hub/internal/services/catalog"
	"github.com/Windi-Fikriyansyah/tele_freelance_hub/internal/utils"
)

type Catalog interface {
	List(ctx context.Context) ([]catalog.Card, error)
	Categories(ctx context.Context) ([]string, error)
}

type CatalogHandler struct {
	Catalog Catalog
}

func NewCatalogHandler(svc Catalog) *CatalogHandler {
	return &CatalogHandler{Catalog: svc}
}

func (h *CatalogHandler) ListServices(c *fiber.Ctx) error {
	cards, err := h.Catalog.List(c.UserContext())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success":      false,
			"message":      "Gagal mengambil layanan",
			"data":         []catalog.Card{},
			"notification": utils.NotifyError("Gagal memuat daftar layanan"),
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    cards,
	})
}

func (h *CatalogHandler) GetCategories(c *fiber.Ctx) error {
	categories, err := h.Catalog.Categories(c.UserContext())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Gagal mengambil kategori",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    categories,
	})
}
