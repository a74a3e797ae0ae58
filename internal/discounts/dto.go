package discounts

import (
	"time"

	"github.com/google/uuid"

	"github.com/tiffinworks/pos-backend/pkg/db/models"
)

// CodeDTO is the transport shape of a discount code.
type CodeDTO struct {
	ID              uuid.UUID `json:"id"`
	Code            string    `json:"code"`
	DiscountPercent int       `json:"discount_percent"`
	Description     string    `json:"description,omitempty"`
	Active          bool      `json:"active"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func FromModel(m *models.DiscountCode) *CodeDTO {
	if m == nil {
		return nil
	}
	return &CodeDTO{
		ID:              m.ID,
		Code:            m.Code,
		DiscountPercent: m.DiscountPercent,
		Description:     m.Description,
		Active:          m.Active,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}

func FromModels(codes []models.DiscountCode) []CodeDTO {
	out := make([]CodeDTO, 0, len(codes))
	for i := range codes {
		out = append(out, *FromModel(&codes[i]))
	}
	return out
}
