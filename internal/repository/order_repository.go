package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Windi-Fikriyansyah/tele_freelance_hub/internal/models"
)

// WorkUpdate carries the three fields the management panel writes back.
type WorkUpdate struct {
	Status    models.OrderStatus
	WorkNotes string
	WorkLink  string
}

type OrderRepository interface {
	Create(ctx context.Context, o *models.Order) error
	ListWithService(ctx context.Context) ([]models.Order, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	UpdateWork(ctx context.Context, id uuid.UUID, u WorkUpdate) error
}

type GormOrderRepository struct {
	db *gorm.DB
}

func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// Create inserts the order and loads it back joined with its service.
func (r *GormOrderRepository) Create(ctx context.Context, o *models.Order) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(o).Error; err != nil {
			return err
		}
		return tx.Preload("Service").First(o, "id = ?", o.ID).Error
	})
}

// ListWithService returns every order, newest first, with the service joined.
func (r *GormOrderRepository) ListWithService(ctx context.Context) ([]models.Order, error) {
	var out []models.Order
	if err := r.db.WithContext(ctx).
		Preload("Service").
		Order("created_at DESC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *GormOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	var o models.Order
	if err := r.db.WithContext(ctx).Preload("Service").First(&o, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &o, nil
}

// UpdateWork overwrites status, work_notes and work_link unconditionally.
func (r *GormOrderRepository) UpdateWork(ctx context.Context, id uuid.UUID, u WorkUpdate) error {
	res := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":     u.Status,
			"work_notes": u.WorkNotes,
			"work_link":  u.WorkLink,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
