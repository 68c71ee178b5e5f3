package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type OrderStatus string

const (
	OrderStatusNew        OrderStatus = "new"         // Baru
	OrderStatusInProgress OrderStatus = "in_progress" // Diproses
	OrderStatusCompleted  OrderStatus = "completed"   // Selesai
	OrderStatusCancelled  OrderStatus = "cancelled"   // Dibatalkan
)

// OrderStatuses lists every status in display order.
var OrderStatuses = []OrderStatus{
	OrderStatusNew,
	OrderStatusInProgress,
	OrderStatusCompleted,
	OrderStatusCancelled,
}

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusNew, OrderStatusInProgress, OrderStatusCompleted, OrderStatusCancelled:
		return true
	}
	return false
}

// Label is the Indonesian badge text shown in the admin panel.
func (s OrderStatus) Label() string {
	switch s {
	case OrderStatusNew:
		return "Baru"
	case OrderStatusInProgress:
		return "Diproses"
	case OrderStatusCompleted:
		return "Selesai"
	case OrderStatusCancelled:
		return "Dibatalkan"
	}
	return string(s)
}

type Order struct {
	ID             uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	TelegramUserID string         `gorm:"type:varchar(64);not null;index" json:"telegram_user_id"`
	CustomerName   string         `gorm:"type:varchar(150);not null" json:"customer_name"`
	ContactInfo    string         `gorm:"type:varchar(255);not null" json:"contact_info"` // email atau no. HP, bebas
	ServiceID      uuid.UUID      `gorm:"type:uuid;not null;index" json:"service_id"`
	Deadline       datatypes.Date `json:"deadline"`
	Notes          *string        `gorm:"type:text" json:"notes"`
	Status         OrderStatus    `gorm:"type:varchar(20);not null;default:'new';index" json:"status"`

	// Diisi admin / freelancer
	WorkNotes *string `gorm:"type:text" json:"work_notes"`
	WorkLink  *string `gorm:"type:text" json:"work_link"`

	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Service *Service `gorm:"foreignKey:ServiceID" json:"service,omitempty"`
}

func (o *Order) BeforeCreate(tx *gorm.DB) (err error) {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return
}
