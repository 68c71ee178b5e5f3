// Package dashboard decides which screen of the mini-app a user is on.
package dashboard

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Windi-Fikriyansyah/tele_freelance_hub/internal/repository"
	"github.com/Windi-Fikriyansyah/tele_freelance_hub/internal/services/catalog"
	"github.com/Windi-Fikriyansyah/tele_freelance_hub/internal/session"
	"github.com/Windi-Fikriyansyah/tele_freelance_hub/internal/telegram"
)

type View string

const (
	ViewServices View = "services"
	ViewOrder    View = "order"
	ViewAdmin    View = "admin"
)

var ErrServiceNotFound = errors.New("service not found or inactive")

// Snapshot is what the client renders. Form is set only on the order view.
type Snapshot struct {
	View      View       `json:"view"`
	Form      *OrderForm `json:"form,omitempty"`
	CanSubmit bool       `json:"can_submit"`
}

// Draft is a partial update of the order form.
type Draft struct {
	ContactInfo *string `json:"contact_info"`
	Deadline    *string `json:"deadline"`
	Notes       *string `json:"notes"`
}

type Coordinator struct {
	store    session.Store
	locker   session.Locker
	services repository.ServiceRepository
	log      *zap.Logger
	loc      *time.Location
	now      func() time.Time
}

// NewCoordinator builds the coordinator; loc is the customers' calendar used for the deadline hint.
func NewCoordinator(store session.Store, locker session.Locker, services repository.ServiceRepository, loc *time.Location, log *zap.Logger) *Coordinator {
	return &Coordinator{
		store:    store,
		locker:   locker,
		services: services,
		log:      log.Named("dashboard"),
		loc:      loc,
		now:      time.Now,
	}
}

func (c *Coordinator) Current(ctx context.Context, who telegram.Identity) (*Snapshot, error) {
	st, err := c.store.Get(ctx, who.UserID)
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	return c.render(ctx, who, st)
}

// SelectService opens the order form. An unknown or inactive service leaves the view as it was.
func (c *Coordinator) SelectService(ctx context.Context, who telegram.Identity, serviceID string) (*Snapshot, error) {
	id, err := uuid.Parse(serviceID)
	if err != nil {
		return nil, ErrServiceNotFound
	}
	if _, err := c.services.FindActiveByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrServiceNotFound
		}
		return nil, fmt.Errorf("find service: %w", err)
	}

	st := session.ViewState{View: string(ViewOrder), SelectedServiceID: id.String()}
	return c.save(ctx, who, st)
}

func (c *Coordinator) UpdateDraft(ctx context.Context, who telegram.Identity, d Draft) (*Snapshot, error) {
	st, err := c.store.Get(ctx, who.UserID)
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	if View(st.View) != ViewOrder || st.SelectedServiceID == "" {
		return c.render(ctx, who, st)
	}

	if d.ContactInfo != nil {
		st.DraftContact = *d.ContactInfo
	}
	if d.Deadline != nil {
		st.DraftDeadline = *d.Deadline
	}
	if d.Notes != nil {
		st.DraftNotes = *d.Notes
	}
	return c.save(ctx, who, st)
}

// Back returns to the catalog and drops the selected service with its draft.
func (c *Coordinator) Back(ctx context.Context, who telegram.Identity) (*Snapshot, error) {
	return c.save(ctx, who, session.ViewState{View: string(ViewServices)})
}

func (c *Coordinator) OpenAdmin(ctx context.Context, who telegram.Identity) (*Snapshot, error) {
	return c.save(ctx, who, session.ViewState{View: string(ViewAdmin)})
}

// OrderSubmitted resets the dashboard after a successful submission.
func (c *Coordinator) OrderSubmitted(ctx context.Context, who telegram.Identity) error {
	_, err := c.Back(ctx, who)
	return err
}

func (c *Coordinator) save(ctx context.Context, who telegram.Identity, st session.ViewState) (*Snapshot, error) {
	if err := c.store.Save(ctx, who.UserID, st); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}
	return c.render(ctx, who, st)
}

func (c *Coordinator) render(ctx context.Context, who telegram.Identity, st session.ViewState) (*Snapshot, error) {
	switch View(st.View) {
	case ViewAdmin:
		return &Snapshot{View: ViewAdmin}, nil
	case ViewOrder:
		// order view without a usable service falls back to the catalog
		if st.SelectedServiceID == "" {
			return &Snapshot{View: ViewServices}, nil
		}
		id, err := uuid.Parse(st.SelectedServiceID)
		if err != nil {
			return &Snapshot{View: ViewServices}, nil
		}
		svc, err := c.services.FindActiveByID(ctx, id)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.log.Info("selected service no longer active", zap.String("user", who.UserID), zap.String("service_id", st.SelectedServiceID))
			return &Snapshot{View: ViewServices}, nil
		}
		if err != nil {
			return nil, fmt.Errorf("find service: %w", err)
		}

		submitting, err := c.locker.Held(ctx, session.SubmitLockKey(who.UserID))
		if err != nil {
			c.log.Warn("check submit lock", zap.String("user", who.UserID), zap.Error(err))
		}

		form := &OrderForm{
			Service:      catalog.ToCard(*svc),
			CustomerName: who.Name,
			ContactInfo:  st.DraftContact,
			Deadline:     st.DraftDeadline,
			Notes:        st.DraftNotes,
			MinDeadline:  MinDeadline(c.now(), c.loc),
			Submitting:   submitting,
		}
		return &Snapshot{View: ViewOrder, Form: form, CanSubmit: form.CanSubmit()}, nil
	default:
		return &Snapshot{View: ViewServices}, nil
	}
}
