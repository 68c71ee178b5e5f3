package handlers

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/Windi-Fikriyansyah/tele_freelance_hub/internal/middleware"
	"github.com/Windi-Fikriyansyah/tele_freelance_hub/internal/models"
	"github.com/Windi-Fikriyansyah/tele_freelance_hub/internal/services/order"
	"github.com/Windi-Fikriyansyah/tele_freelance_hub/internal/telegram"
	"github.com/Windi-Fikriyansyah/tele_freelance_hub/internal/utils"
	"github.com/Windi-Fikriyansyah/tele_freelance_hub/internal/validation"
)

type OrderSubmitter interface {
	Submit(ctx context.Context, who telegram.Identity, req order.SubmitRequest) (*models.Order, error)
}

type SubmitResetter interface {
	OrderSubmitted(ctx context.Context, who telegram.Identity) error
}

type OrderHandler struct {
	Orders    OrderSubmitter
	Dashboard SubmitResetter
	Log       *zap.Logger
}

func NewOrderHandler(orders OrderSubmitter, dash SubmitResetter, log *zap.Logger) *OrderHandler {
	return &OrderHandler{Orders: orders, Dashboard: dash, Log: log.Named("order_handler")}
}

func (h *OrderHandler) Submit(c *fiber.Ctx) error {
	var req order.SubmitRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}

	who := middleware.IdentityFrom(c)
	o, err := h.Orders.Submit(c.UserContext(), who, req)

	var fe validation.FieldErrors
	switch {
	case err == nil:
	case errors.As(err, &fe):
		return validationFail(c, fe, utils.NotifyError("Kontak dan deadline wajib diisi."))
	case errors.Is(err, order.ErrServiceNotFound):
		return fail(c, fiber.StatusNotFound, "layanan tidak ditemukan",
			utils.NotifyError("Layanan tidak ditemukan atau sudah tidak aktif."))
	case errors.Is(err, order.ErrSubmissionInFlight):
		return fail(c, fiber.StatusConflict, "pesanan sedang dikirim",
			utils.NotifyError("Pesanan Anda sedang diproses, mohon tunggu."))
	default:
		return fail(c, fiber.StatusInternalServerError, "gagal menyimpan pesanan",
			utils.NotifyError("Gagal mengirim pesanan. Silakan coba lagi."))
	}

	if err := h.Dashboard.OrderSubmitted(c.UserContext(), who); err != nil {
		h.Log.Warn("reset dashboard after order", zap.String("user", who.UserID), zap.Error(err))
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Pesanan dibuat",
		"data": fiber.Map{
			"order": o,
			"view":  "services",
		},
		"notification": utils.Notify("Pesanan Berhasil Dikirim!",
			"Freelancer akan segera menghubungi Anda untuk konfirmasi detail."),
	})
}
