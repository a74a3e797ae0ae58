package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MenuItem is one orderable entry on the menu. Prices are tax-inclusive.
type MenuItem struct {
	ID         uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	CategoryID uuid.UUID       `gorm:"column:category_id;type:uuid;not null"`
	Name       string          `gorm:"column:name;not null"`
	Price      decimal.Decimal `gorm:"column:price;type:numeric(10,2);not null"`
	Taxable    bool            `gorm:"column:taxable;not null;default:true"`
	Available  bool            `gorm:"column:available;not null;default:true"`
	ImageURL   *string         `gorm:"column:image_url"`
	CreatedAt  time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}
