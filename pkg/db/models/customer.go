package models

import (
	"time"

	"github.com/google/uuid"
)

// Customer holds contact details and the birthday used for greeting lists.
type Customer struct {
	ID            uuid.UUID  `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name          string     `gorm:"column:name;not null"`
	Phone         string     `gorm:"column:phone;not null;uniqueIndex"`
	WhatsappOptIn bool       `gorm:"column:whatsapp_opt_in;not null;default:false"`
	Birthday      *time.Time `gorm:"column:birthday;type:date"`
	CreatedAt     time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}
