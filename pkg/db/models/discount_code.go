package models

import (
	"time"

	"github.com/google/uuid"
)

// DiscountCode is a named percentage discount applied to a draft bill.
// Codes are stored normalized upper-case and matched case-insensitively.
type DiscountCode struct {
	ID              uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Code            string    `gorm:"column:code;not null;uniqueIndex"`
	DiscountPercent int       `gorm:"column:discount_percent;not null"`
	Description     string    `gorm:"column:description"`
	Active          bool      `gorm:"column:active;not null;default:true"`
	CreatedAt       time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
