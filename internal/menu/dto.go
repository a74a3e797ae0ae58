package menu

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tiffinworks/pos-backend/pkg/db/models"
)

// ItemDTO is the transport shape of a menu item.
type ItemDTO struct {
	ID         uuid.UUID       `json:"id"`
	CategoryID uuid.UUID       `json:"category_id"`
	Name       string          `json:"name"`
	Price      decimal.Decimal `json:"price"`
	Taxable    bool            `json:"taxable"`
	Available  bool            `json:"available"`
	ImageURL   *string         `json:"image_url,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// CategoryDTO is the transport shape of a category with its items.
type CategoryDTO struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	SortOrder int       `json:"sort_order"`
	Items     []ItemDTO `json:"items"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func ItemFromModel(m *models.MenuItem) *ItemDTO {
	if m == nil {
		return nil
	}
	return &ItemDTO{
		ID:         m.ID,
		CategoryID: m.CategoryID,
		Name:       m.Name,
		Price:      m.Price,
		Taxable:    m.Taxable,
		Available:  m.Available,
		ImageURL:   m.ImageURL,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}

func ItemsFromModels(items []models.MenuItem) []ItemDTO {
	out := make([]ItemDTO, 0, len(items))
	for i := range items {
		out = append(out, *ItemFromModel(&items[i]))
	}
	return out
}

func CategoryFromModel(m *models.MenuCategory) *CategoryDTO {
	if m == nil {
		return nil
	}
	return &CategoryDTO{
		ID:        m.ID,
		Name:      m.Name,
		SortOrder: m.SortOrder,
		Items:     ItemsFromModels(m.Items),
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func CategoriesFromModels(categories []models.MenuCategory) []CategoryDTO {
	out := make([]CategoryDTO, 0, len(categories))
	for i := range categories {
		out = append(out, *CategoryFromModel(&categories[i]))
	}
	return out
}
