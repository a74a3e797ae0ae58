package customers

import (
	"time"

	"github.com/google/uuid"

	"github.com/tiffinworks/pos-backend/pkg/db/models"
)

// CustomerDTO is the transport shape of a customer record.
type CustomerDTO struct {
	ID            uuid.UUID  `json:"id"`
	Name          string     `json:"name"`
	Phone         string     `json:"phone"`
	WhatsappOptIn bool       `json:"whatsapp_opt_in"`
	Birthday      *time.Time `json:"birthday,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// BirthdayDTO pairs a customer with their next birthday for the greeting list.
type BirthdayDTO struct {
	Customer CustomerDTO `json:"customer"`
	Next     time.Time   `json:"next_birthday"`
}

func FromModel(m *models.Customer) *CustomerDTO {
	if m == nil {
		return nil
	}
	return &CustomerDTO{
		ID:            m.ID,
		Name:          m.Name,
		Phone:         m.Phone,
		WhatsappOptIn: m.WhatsappOptIn,
		Birthday:      m.Birthday,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

func FromModels(customers []models.Customer) []CustomerDTO {
	out := make([]CustomerDTO, 0, len(customers))
	for i := range customers {
		out = append(out, *FromModel(&customers[i]))
	}
	return out
}

func BirthdaysFromEntries(entries []BirthdayEntry) []BirthdayDTO {
	out := make([]BirthdayDTO, 0, len(entries))
	for _, entry := range entries {
		out = append(out, BirthdayDTO{Customer: *FromModel(&entry.Customer), Next: entry.Next})
	}
	return out
}
