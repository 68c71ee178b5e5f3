package handlers

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/Windi-Fikriyansyah/tele_freelance_hub/internal/dashboard"
	"github.com/Windi-Fikriyansyah/tele_freelance_hub/internal/middleware"
	"github.com/Windi-Fikriyansyah/tele_freelance_hub/internal/telegram"
	"github.com/Windi-Fikriyansyah/tele_freelance_hub/internal/utils"
)

type Dashboard interface {
	Current(ctx context.Context, who telegram.Identity) (*dashboard.Snapshot, error)
	SelectService(ctx context.Context, who telegram.Identity, serviceID string) (*dashboard.Snapshot, error)
	UpdateDraft(ctx context.Context, who telegram.Identity, d dashboard.Draft) (*dashboard.Snapshot, error)
	Back(ctx context.Context, who telegram.Identity) (*dashboard.Snapshot, error)
	OpenAdmin(ctx context.Context, who telegram.Identity) (*dashboard.Snapshot, error)
}

type DashboardHandler struct {
	Dashboard Dashboard
}

func NewDashboardHandler(d Dashboard) *DashboardHandler {
	return &DashboardHandler{Dashboard: d}
}

type SelectReq struct {
	ServiceID string `json:"service_id"`
}

func snapshot(c *fiber.Ctx, snap *dashboard.Snapshot, err error) error {
	if errors.Is(err, dashboard.ErrServiceNotFound) {
		return fail(c, fiber.StatusNotFound, "layanan tidak ditemukan",
			utils.NotifyError("Layanan tidak ditemukan atau sudah tidak aktif."))
	}
	if err != nil {
		return fail(c, fiber.StatusInternalServerError, "gagal memuat tampilan",
			utils.NotifyError("Terjadi kesalahan. Silakan coba lagi."))
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    snap,
	})
}

func (h *DashboardHandler) Current(c *fiber.Ctx) error {
	snap, err := h.Dashboard.Current(c.UserContext(), middleware.IdentityFrom(c))
	return snapshot(c, snap, err)
}

func (h *DashboardHandler) SelectService(c *fiber.Ctx) error {
	var req SelectReq
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}
	snap, err := h.Dashboard.SelectService(c.UserContext(), middleware.IdentityFrom(c), req.ServiceID)
	return snapshot(c, snap, err)
}

func (h *DashboardHandler) UpdateDraft(c *fiber.Ctx) error {
	var req dashboard.Draft
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}
	snap, err := h.Dashboard.UpdateDraft(c.UserContext(), middleware.IdentityFrom(c), req)
	return snapshot(c, snap, err)
}

func (h *DashboardHandler) Back(c *fiber.Ctx) error {
	snap, err := h.Dashboard.Back(c.UserContext(), middleware.IdentityFrom(c))
	return snapshot(c, snap, err)
}

func (h *DashboardHandler) OpenAdmin(c *fiber.Ctx) error {
	snap, err := h.Dashboard.OpenAdmin(c.UserContext(), middleware.IdentityFrom(c))
	return snapshot(c, snap, err)
}
