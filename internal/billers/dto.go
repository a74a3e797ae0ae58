package billers

import (
	"time"

	"github.com/google/uuid"

	"github.com/tiffinworks/pos-backend/pkg/db/models"
	"github.com/tiffinworks/pos-backend/pkg/enums"
)

// BillerDTO is the transport shape of an operator account. It omits the
// password hash.
type BillerDTO struct {
	ID          uuid.UUID        `json:"id"`
	Username    string           `json:"username"`
	DisplayName string           `json:"display_name"`
	Role        enums.BillerRole `json:"role"`
	Active      bool             `json:"active"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

func FromModel(m *models.Biller) *BillerDTO {
	if m == nil {
		return nil
	}
	return &BillerDTO{
		ID:          m.ID,
		Username:    m.Username,
		DisplayName: m.DisplayName,
		Role:        m.Role,
		Active:      m.Active,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func FromModels(billers []models.Biller) []BillerDTO {
	out := make([]BillerDTO, 0, len(billers))
	for i := range billers {
		out = append(out, *FromModel(&billers[i]))
	}
	return out
}
