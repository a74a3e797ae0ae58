package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BillItem snapshots one draft line at submission time. Item name and unit
// price are copied so later menu edits do not rewrite past bills.
type BillItem struct {
	ID         uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	BillID     uuid.UUID       `gorm:"column:bill_id;type:uuid;not null"`
	MenuItemID uuid.UUID       `gorm:"column:menu_item_id;type:uuid;not null"`
	ItemName   string          `gorm:"column:item_name;not null"`
	Price      decimal.Decimal `gorm:"column:price;type:numeric(10,2);not null"`
	Quantity   int             `gorm:"column:quantity;not null"`
	Taxable    bool            `gorm:"column:taxable;not null;default:true"`
	CreatedAt  time.Time       `gorm:"column:created_at;autoCreateTime"`
}
