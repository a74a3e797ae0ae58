package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tiffinworks/pos-backend/pkg/enums"
)

// Bill is the persisted header of a finished bill. Line items reference the
// header and are written in the same transaction.
type Bill struct {
	ID             uuid.UUID        `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	BillerID       uuid.UUID        `gorm:"column:biller_id;type:uuid;not null"`
	Subtotal       decimal.Decimal  `gorm:"column:subtotal;type:numeric(10,2);not null"`
	Tax            decimal.Decimal  `gorm:"column:tax;type:numeric(10,2);not null;default:0"`
	Discount       decimal.Decimal  `gorm:"column:discount;type:numeric(10,2);not null;default:0"`
	Total          decimal.Decimal  `gorm:"column:total;type:numeric(10,2);not null"`
	DiscountCode   *string          `gorm:"column:discount_code"`
	Status         enums.BillStatus `gorm:"column:status;not null;default:'completed'"`
	WhatsappNumber *string          `gorm:"column:whatsapp_number"`
	Items          []BillItem       `gorm:"foreignKey:BillID;constraint:OnDelete:CASCADE"`
	CreatedAt      time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}
