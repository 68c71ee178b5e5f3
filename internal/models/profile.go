package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Role string

const (
	RoleClient     Role = "client"
	RoleFreelancer Role = "freelancer"
	RoleAdmin      Role = "admin"
)

// CanManageOrders reports whether the role may open the management panel.
func (r Role) CanManageOrders() bool {
	switch r {
	case RoleAdmin, RoleFreelancer:
		return true
	case RoleClient:
		return false
	default:
		return false
	}
}

// Label is the role badge shown in the panel header.
func (r Role) Label() string {
	switch r {
	case RoleAdmin:
		return "Administrator"
	case RoleFreelancer:
		return "Freelancer"
	default:
		return "Client"
	}
}

type Profile struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	TelegramUserID string    `gorm:"type:varchar(64);not null;uniqueIndex" json:"telegram_user_id"`
	Name           string    `gorm:"type:varchar(150);not null" json:"name"`
	Role           Role      `gorm:"type:varchar(20);not null;default:'client';index" json:"role"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (p *Profile) BeforeCreate(tx *gorm.DB) (err error) {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return
}
