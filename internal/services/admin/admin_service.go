package admin

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Windi-Fikriyansyah/tele_freelance_hub/internal/models"
	"github.com/Windi-Fikriyansyah/tele_freelance_hub/internal/realtime"
	"github.com/Windi-Fikriyansyah/tele_freelance_hub/internal/repository"
	"github.com/Windi-Fikriyansyah/tele_freelance_hub/internal/session"
	"github.com/Windi-Fikriyansyah/tele_freelance_hub/internal/telegram"
	"github.com/Windi-Fikriyansyah/tele_freelance_hub/internal/utils"
	"github.com/Windi-Fikriyansyah/tele_freelance_hub/internal/validation"
)

const (
	ViewAdmin = "admin"

	// Nama & role untuk profil yang dibuat otomatis saat panel pertama kali dibuka.
	ProvisionedName = "Admin User"
	ProvisionedRole = models.RoleAdmin

	EmptyMessage = "Belum ada pesanan masuk"
)

var (
	ErrAccessDenied  = errors.New("role may not manage orders")
	ErrOrderNotFound = errors.New("order not found")
)

type Stats struct {
	Total      int `json:"total"`
	New        int `json:"new"`
	InProgress int `json:"in_progress"`
	Completed  int `json:"completed"`
}

type OrderRow struct {
	ID            string    `json:"id"`
	CreatedAt     time.Time `json:"created_at"`
	CreatedLabel  string    `json:"created_label"`
	CustomerName  string    `json:"customer_name"`
	CustomerID    string    `json:"customer_id"`
	ContactInfo   string    `json:"contact_info"`
	ServiceName   string    `json:"service_name"`
	PriceLabel    string    `json:"price_label"`
	Deadline      string    `json:"deadline"`
	DeadlineLabel string    `json:"deadline_label"`
	Notes         string    `json:"notes"`
	Status        string    `json:"status"`
	StatusLabel   string    `json:"status_label"`
	WorkNotes     string    `json:"work_notes"`
	WorkLink      string    `json:"work_link"`
}

type StatusOption struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// EditDraft pre-fills the update dialog.
type EditDraft struct {
	OrderID   string         `json:"order_id"`
	Status    string         `json:"status"`
	WorkNotes string         `json:"work_notes"`
	WorkLink  string         `json:"work_link"`
	Options   []StatusOption `json:"options"`
}

type Panel struct {
	Profile      models.Profile `json:"profile"`
	RoleLabel    string         `json:"role_label"`
	Stats        Stats          `json:"stats"`
	Orders       []OrderRow     `json:"orders"`
	EmptyMessage string         `json:"empty_message,omitempty"`
	// EditingOrderID is set while the update dialog is open.
	EditingOrderID string `json:"editing_order_id,omitempty"`
}

type UpdateRequest struct {
	Status    string `json:"status" validate:"required,oneof=new in_progress completed cancelled"`
	WorkNotes string `json:"work_notes"`
	WorkLink  string `json:"work_link" validate:"omitempty,max=2048"`
}

type AdminService struct {
	profiles repository.ProfileRepository
	orders   repository.OrderRepository
	sessions session.Store
	events   realtime.Publisher
	log      *zap.Logger
}

func NewAdminService(
	profiles repository.ProfileRepository,
	orders repository.OrderRepository,
	sessions session.Store,
	events realtime.Publisher,
	log *zap.Logger,
) *AdminService {
	return &AdminService{
		profiles: profiles,
		orders:   orders,
		sessions: sessions,
		events:   events,
		log:      log.Named("admin"),
	}
}

// ResolveProfile returns the caller's profile, creating it on first visit.
func (s *AdminService) ResolveProfile(ctx context.Context, who telegram.Identity) (*models.Profile, error) {
	p, err := s.profiles.FindByTelegramUserID(ctx, who.UserID)
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("find profile: %w", err)
	}

	p, created, err := s.profiles.FirstOrCreate(ctx, &models.Profile{
		TelegramUserID: who.UserID,
		Name:           ProvisionedName,
		Role:           ProvisionedRole,
	})
	if err != nil {
		return nil, fmt.Errorf("create profile: %w", err)
	}
	if created {
		s.log.Info("profile provisioned", zap.String("user", who.UserID), zap.String("role", string(p.Role)))
	}
	return p, nil
}

// Authorize resolves the profile and checks that its role may manage orders.
func (s *AdminService) Authorize(ctx context.Context, who telegram.Identity) (*models.Profile, error) {
	p, err := s.ResolveProfile(ctx, who)
	if err != nil {
		s.log.Error("resolve profile", zap.String("user", who.UserID), zap.Error(err))
		return nil, err
	}
	if !p.Role.CanManageOrders() {
		return p, ErrAccessDenied
	}
	return p, nil
}

// Load returns the management panel. A denied role never triggers an order query.
func (s *AdminService) Load(ctx context.Context, who telegram.Identity) (*Panel, error) {
	p, err := s.Authorize(ctx, who)
	if err != nil {
		return nil, err
	}

	st, err := s.sessions.Get(ctx, who.UserID)
	if err != nil {
		s.log.Warn("load session", zap.String("user", who.UserID), zap.Error(err))
	}
	return s.loadPanel(ctx, p, st.EditingOrderID)
}

func (s *AdminService) loadPanel(ctx context.Context, p *models.Profile, editing string) (*Panel, error) {
	orders, err := s.orders.ListWithService(ctx)
	if err != nil {
		s.log.Error("load orders", zap.Error(err))
		return nil, fmt.Errorf("list orders: %w", err)
	}
	panel := BuildPanel(*p, orders)
	panel.EditingOrderID = editing
	return panel, nil
}

// BuildPanel derives rows and stats from the loaded orders.
func BuildPanel(p models.Profile, orders []models.Order) *Panel {
	panel := &Panel{
		Profile:   p,
		RoleLabel: p.Role.Label(),
		Orders:    make([]OrderRow, 0, len(orders)),
	}

	for _, o := range orders {
		panel.Stats.Total++
		switch o.Status {
		case models.OrderStatusNew:
			panel.Stats.New++
		case models.OrderStatusInProgress:
			panel.Stats.InProgress++
		case models.OrderStatusCompleted:
			panel.Stats.Completed++
		}
		panel.Orders = append(panel.Orders, toRow(o))
	}

	if len(orders) == 0 {
		panel.EmptyMessage = EmptyMessage
	}
	return panel
}

func toRow(o models.Order) OrderRow {
	deadline := time.Time(o.Deadline)
	row := OrderRow{
		ID:            o.ID.String(),
		CreatedAt:     o.CreatedAt,
		CreatedLabel:  utils.FormatDate(o.CreatedAt),
		CustomerName:  o.CustomerName,
		CustomerID:    o.TelegramUserID,
		ContactInfo:   o.ContactInfo,
		Deadline:      deadline.Format("2006-01-02"),
		DeadlineLabel: utils.FormatDate(deadline),
		Notes:         deref(o.Notes),
		Status:        string(o.Status),
		StatusLabel:   o.Status.Label(),
		WorkNotes:     deref(o.WorkNotes),
		WorkLink:      deref(o.WorkLink),
	}

	var price int64
	if o.Service != nil {
		row.ServiceName = o.Service.Name
		price = o.Service.PriceFrom
	}
	row.PriceLabel = utils.FormatRupiah(price)
	return row
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func statusOptions() []StatusOption {
	out := make([]StatusOption, 0, len(models.OrderStatuses))
	for _, st := range models.OrderStatuses {
		out = append(out, StatusOption{Value: string(st), Label: st.Label()})
	}
	return out
}

// StartEdit opens the update dialog for one order.
func (s *AdminService) StartEdit(ctx context.Context, who telegram.Identity, orderID string) (*EditDraft, error) {
	if _, err := s.Authorize(ctx, who); err != nil {
		return nil, err
	}

	id, err := uuid.Parse(orderID)
	if err != nil {
		return nil, ErrOrderNotFound
	}
	o, err := s.orders.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find order: %w", err)
	}

	if err := s.setEditing(ctx, who.UserID, o.ID.String()); err != nil {
		return nil, err
	}

	return &EditDraft{
		OrderID:   o.ID.String(),
		Status:    string(o.Status),
		WorkNotes: deref(o.WorkNotes),
		WorkLink:  deref(o.WorkLink),
		Options:   statusOptions(),
	}, nil
}

// CancelEdit closes the update dialog without writing.
func (s *AdminService) CancelEdit(ctx context.Context, who telegram.Identity) error {
	return s.setEditing(ctx, who.UserID, "")
}

func (s *AdminService) setEditing(ctx context.Context, userID, orderID string) error {
	st, err := s.sessions.Get(ctx, userID)
	if err != nil {
		return fmt.Errorf("load session: %w", err)
	}
	st.View = ViewAdmin
	st.EditingOrderID = orderID
	if err := s.sessions.Save(ctx, userID, st); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// Update writes status, work notes and work link (last writer wins) and reloads the full list.
func (s *AdminService) Update(ctx context.Context, who telegram.Identity, orderID string, req UpdateRequest) (*Panel, error) {
	p, err := s.Authorize(ctx, who)
	if err != nil {
		return nil, err
	}
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	id, err := uuid.Parse(orderID)
	if err != nil {
		return nil, ErrOrderNotFound
	}

	status := models.OrderStatus(req.Status)
	err = s.orders.UpdateWork(ctx, id, repository.WorkUpdate{
		Status:    status,
		WorkNotes: req.WorkNotes,
		WorkLink:  req.WorkLink,
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		s.log.Error("update order", zap.String("order_id", orderID), zap.Error(err))
		return nil, fmt.Errorf("update order: %w", err)
	}

	if err := s.setEditing(ctx, who.UserID, ""); err != nil {
		s.log.Warn("clear edit state", zap.String("user", who.UserID), zap.Error(err))
	}

	s.events.PublishOrderEvent(ctx, realtime.OrderEvent{
		Type:    realtime.EventOrderUpdated,
		OrderID: orderID,
		Status:  string(status),
	})

	return s.loadPanel(ctx, p, "")
}
