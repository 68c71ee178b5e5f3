package handlers

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/Windi-Fikriyansyah/tele_freelance_hub/internal/middleware"
	"github.com/Windi-Fikriyansyah/tele_freelance_hub/internal/services/admin"
	"github.com/Windi-Fikriyansyah/tele_freelance_hub/internal/telegram"
	"github.com/Windi-Fikriyansyah/tele_freelance_hub/internal/utils"
	"github.com/Windi-Fikriyansyah/tele_freelance_hub/internal/validation"
)

const (
	msgLoadFailed   = "Gagal memuat data panel admin"
	msgUpdateFailed = "Gagal memperbarui status pesanan"
)

type AdminPanel interface {
	Load(ctx context.Context, who telegram.Identity) (*admin.Panel, error)
	StartEdit(ctx context.Context, who telegram.Identity, orderID string) (*admin.EditDraft, error)
	CancelEdit(ctx context.Context, who telegram.Identity) error
	Update(ctx context.Context, who telegram.Identity, orderID string, req admin.UpdateRequest) (*admin.Panel, error)
}

type AdminHandler struct {
	Admin AdminPanel
}

func NewAdminHandler(svc AdminPanel) *AdminHandler {
	return &AdminHandler{Admin: svc}
}

func denied(c *fiber.Ctx) error {
	return fail(c, fiber.StatusForbidden, middleware.AccessDeniedMessage,
		utils.NotifyError(middleware.AccessDeniedMessage))
}

func (h *AdminHandler) Panel(c *fiber.Ctx) error {
	panel, err := h.Admin.Load(c.UserContext(), middleware.IdentityFrom(c))
	if errors.Is(err, admin.ErrAccessDenied) {
		return denied(c)
	}
	if err != nil {
		return fail(c, fiber.StatusInternalServerError, "gagal memuat pesanan", utils.NotifyError(msgLoadFailed))
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    panel,
	})
}

func (h *AdminHandler) StartEdit(c *fiber.Ctx) error {
	draft, err := h.Admin.StartEdit(c.UserContext(), middleware.IdentityFrom(c), c.Params("id"))
	switch {
	case err == nil:
	case errors.Is(err, admin.ErrAccessDenied):
		return denied(c)
	case errors.Is(err, admin.ErrOrderNotFound):
		return fail(c, fiber.StatusNotFound, "pesanan tidak ditemukan", utils.NotifyError("Pesanan tidak ditemukan"))
	default:
		return fail(c, fiber.StatusInternalServerError, "gagal membuka pesanan", utils.NotifyError(msgLoadFailed))
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    draft,
	})
}

func (h *AdminHandler) CancelEdit(c *fiber.Ctx) error {
	if err := h.Admin.CancelEdit(c.UserContext(), middleware.IdentityFrom(c)); err != nil {
		return fail(c, fiber.StatusInternalServerError, "gagal menutup dialog", utils.NotifyError(msgLoadFailed))
	}
	return c.JSON(fiber.Map{"success": true})
}

func (h *AdminHandler) Update(c *fiber.Ctx) error {
	var req admin.UpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}

	panel, err := h.Admin.Update(c.UserContext(), middleware.IdentityFrom(c), c.Params("id"), req)

	var fe validation.FieldErrors
	switch {
	case err == nil:
	case errors.Is(err, admin.ErrAccessDenied):
		return denied(c)
	case errors.As(err, &fe):
		return validationFail(c, fe, utils.NotifyError(msgUpdateFailed))
	case errors.Is(err, admin.ErrOrderNotFound):
		return fail(c, fiber.StatusNotFound, "pesanan tidak ditemukan", utils.NotifyError(msgUpdateFailed))
	default:
		return fail(c, fiber.StatusInternalServerError, "gagal memperbarui pesanan", utils.NotifyError(msgUpdateFailed))
	}

	return c.JSON(fiber.Map{
		"success":      true,
		"message":      "Pesanan diperbarui",
		"data":         panel,
		"notification": utils.Notify("Berhasil", "Status pesanan telah diperbarui"),
	})
}
