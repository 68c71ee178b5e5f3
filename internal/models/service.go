package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DefaultIconName dipakai kalau layanan belum punya icon.
const DefaultIconName = "Briefcase"

type Service struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string    `gorm:"type:varchar(150);not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	PriceFrom   int64     `gorm:"not null;default:0" json:"price_from"` // Harga mulai dari (rupiah)
	Category    string    `gorm:"type:varchar(80);index" json:"category"`
	IconName    string    `gorm:"type:varchar(60)" json:"icon_name"`
	IsActive    bool      `gorm:"not null;default:true;index" json:"is_active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (s *Service) BeforeCreate(tx *gorm.DB) (err error) {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return
}

// Icon returns the icon name, falling back to the default briefcase.
func (s Service) Icon() string {
	if s.IconName == "" {
		return DefaultIconName
	}
	return s.IconName
}
