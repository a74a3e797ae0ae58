package models

import (
	"time"

	"github.com/google/uuid"
)

// MenuCategory groups menu items on the item grid.
type MenuCategory struct {
	ID        uuid.UUID  `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name      string     `gorm:"column:name;not null;uniqueIndex"`
	SortOrder int        `gorm:"column:sort_order;not null;default:0"`
	Items     []MenuItem `gorm:"foreignKey:CategoryID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}
