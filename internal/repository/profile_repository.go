package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Windi-Fikriyansyah/tele_freelance_hub/internal/models"
)

type ProfileRepository interface {
	FindByTelegramUserID(ctx context.Context, telegramUserID string) (*models.Profile, error)
	// FirstOrCreate inserts p unless a profile with the same telegram_user_id exists,
	// and returns the stored row. created is false when another writer got there first.
	FirstOrCreate(ctx context.Context, p *models.Profile) (stored *models.Profile, created bool, err error)
}

type GormProfileRepository struct {
	db *gorm.DB
}

func NewGormProfileRepository(db *gorm.DB) *GormProfileRepository {
	return &GormProfileRepository{db: db}
}

func (r *GormProfileRepository) FindByTelegramUserID(ctx context.Context, telegramUserID string) (*models.Profile, error) {
	var p models.Profile
	if err := r.db.WithContext(ctx).Where("telegram_user_id = ?", telegramUserID).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *GormProfileRepository) FirstOrCreate(ctx context.Context, p *models.Profile) (*models.Profile, bool, error) {
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "telegram_user_id"}},
			DoNothing: true,
		}).
		Create(p)
	if res.Error != nil {
		return nil, false, res.Error
	}
	if res.RowsAffected == 1 {
		return p, true, nil
	}

	stored, err := r.FindByTelegramUserID(ctx, p.TelegramUserID)
	if err != nil {
		return nil, false, err
	}
	return stored, false, nil
}
