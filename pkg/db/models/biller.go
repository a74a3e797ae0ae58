package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/tiffinworks/pos-backend/pkg/enums"
)

// Biller is a POS operator account. The id also keys the operator's draft
// snapshot slot in Redis.
type Biller struct {
	ID           uuid.UUID        `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Username     string           `gorm:"column:username;not null;uniqueIndex"`
	DisplayName  string           `gorm:"column:display_name;not null"`
	PasswordHash string           `gorm:"column:password_hash;not null"`
	Role         enums.BillerRole `gorm:"column:role;not null;default:'staff'"`
	Active       bool             `gorm:"column:active;not null;default:true"`
	CreatedAt    time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}
