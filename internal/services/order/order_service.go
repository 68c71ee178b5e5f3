package order

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/Windi-Fikriyansyah/tele_freelance_hub/internal/models"
	"github.com/Windi-Fikriyansyah/tele_freelance_hub/internal/realtime"
	"github.com/Windi-Fikriyansyah/tele_freelance_hub/internal/repository"
	"github.com/Windi-Fikriyansyah/tele_freelance_hub/internal/session"
	"github.com/Windi-Fikriyansyah/tele_freelance_hub/internal/telegram"
	"github.com/Windi-Fikriyansyah/tele_freelance_hub/internal/validation"
)

const (
	DateLayout = "2006-01-02"

	submitLockTTL = 30 * time.Second
)

var (
	ErrServiceNotFound    = errors.New("service not found or inactive")
	ErrSubmissionInFlight = errors.New("order submission already in progress")
)

// SubmitRequest is the order form payload.
type SubmitRequest struct {
	ServiceID   string `json:"service_id" validate:"required,uuid"`
	ContactInfo string `json:"contact_info" validate:"required,notblank,max=255"`
	Deadline    string `json:"deadline" validate:"required,datetime=2006-01-02"`
	Notes       string `json:"notes"`
}

type OrderService struct {
	services repository.ServiceRepository
	orders   repository.OrderRepository
	bridge   telegram.Sender
	events   realtime.Publisher
	locker   session.Locker
	log      *zap.Logger
}

func NewOrderService(
	services repository.ServiceRepository,
	orders repository.OrderRepository,
	bridge telegram.Sender,
	events realtime.Publisher,
	locker session.Locker,
	log *zap.Logger,
) *OrderService {
	return &OrderService{
		services: services,
		orders:   orders,
		bridge:   bridge,
		events:   events,
		locker:   locker,
		log:      log.Named("order"),
	}
}

// Submit stores a new order and then forwards its summary to the bot.
// The bot step is best-effort: once the order is stored Submit succeeds.
func (s *OrderService) Submit(ctx context.Context, who telegram.Identity, req SubmitRequest) (*models.Order, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	serviceID, _ := uuid.Parse(req.ServiceID)
	deadline, _ := time.Parse(DateLayout, req.Deadline)

	svc, err := s.services.FindActiveByID(ctx, serviceID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrServiceNotFound
	}
	if err != nil {
		s.log.Error("load service for order", zap.String("service_id", req.ServiceID), zap.Error(err))
		return nil, fmt.Errorf("find service: %w", err)
	}

	lockKey := session.SubmitLockKey(who.UserID)
	acquired, err := s.locker.Acquire(ctx, lockKey, submitLockTTL)
	if err != nil {
		return nil, fmt.Errorf("acquire submit lock: %w", err)
	}
	if !acquired {
		return nil, ErrSubmissionInFlight
	}
	defer func() {
		if err := s.locker.Release(context.WithoutCancel(ctx), lockKey); err != nil {
			s.log.Warn("release submit lock", zap.String("user", who.UserID), zap.Error(err))
		}
	}()

	var notes *string
	if strings.TrimSpace(req.Notes) != "" {
		notes = &req.Notes
	}

	o := &models.Order{
		TelegramUserID: who.UserID,
		CustomerName:   who.Name,
		ContactInfo:    req.ContactInfo,
		ServiceID:      svc.ID,
		Deadline:       datatypes.Date(deadline),
		Notes:          notes,
		Status:         models.OrderStatusNew,
	}
	if err := s.orders.Create(ctx, o); err != nil {
		s.log.Error("create order", zap.String("user", who.UserID), zap.Error(err))
		return nil, fmt.Errorf("create order: %w", err)
	}
	if o.Service == nil {
		o.Service = svc
	}

	payload := telegram.NewOrderPayload{
		Type:         telegram.PayloadTypeNewOrder,
		OrderID:      o.ID.String(),
		CustomerName: who.Name,
		CustomerID:   who.UserID,
		ServiceName:  svc.Name,
		ContactInfo:  req.ContactInfo,
		Deadline:     req.Deadline,
		Notes:        req.Notes,
		PriceFrom:    svc.PriceFrom,
	}
	if err := s.bridge.SendData(payload); err != nil {
		// order stays stored, no compensation
		s.log.Warn("forward order to bot", zap.String("order_id", payload.OrderID), zap.Error(err))
	}

	s.events.PublishOrderEvent(ctx, realtime.OrderEvent{
		Type:    realtime.EventOrderCreated,
		OrderID: o.ID.String(),
		Status:  string(o.Status),
	})

	s.log.Info("order created", zap.String("order_id", o.ID.String()), zap.String("service", svc.Name))
	return o, nil
}
