package bills

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tiffinworks/pos-backend/pkg/db/models"
	"github.com/tiffinworks/pos-backend/pkg/enums"
)

// BillItemDTO is the transport shape of one line on a submitted bill.
type BillItemDTO struct {
	ID         uuid.UUID       `json:"id"`
	MenuItemID uuid.UUID       `json:"menu_item_id"`
	ItemName   string          `json:"item_name"`
	Price      decimal.Decimal `json:"price"`
	Quantity   int             `json:"quantity"`
	Taxable    bool            `json:"taxable"`
}

// BillDTO is the transport shape of a submitted bill with its lines.
type BillDTO struct {
	ID             uuid.UUID        `json:"id"`
	BillerID       uuid.UUID        `json:"biller_id"`
	Subtotal       decimal.Decimal  `json:"subtotal"`
	Tax            decimal.Decimal  `json:"tax"`
	Discount       decimal.Decimal  `json:"discount"`
	Total          decimal.Decimal  `json:"total"`
	DiscountCode   *string          `json:"discount_code,omitempty"`
	Status         enums.BillStatus `json:"status"`
	WhatsappNumber *string          `json:"whatsapp_number,omitempty"`
	Items          []BillItemDTO    `json:"items"`
	CreatedAt      time.Time        `json:"created_at"`
}

// PageDTO carries one history page plus the cursor for the next.
type PageDTO struct {
	Bills      []BillDTO `json:"bills"`
	NextCursor string    `json:"next_cursor,omitempty"`
}

func FromModel(m *models.Bill) *BillDTO {
	if m == nil {
		return nil
	}
	items := make([]BillItemDTO, 0, len(m.Items))
	for _, item := range m.Items {
		items = append(items, BillItemDTO{
			ID:         item.ID,
			MenuItemID: item.MenuItemID,
			ItemName:   item.ItemName,
			Price:      item.Price,
			Quantity:   item.Quantity,
			Taxable:    item.Taxable,
		})
	}
	return &BillDTO{
		ID:             m.ID,
		BillerID:       m.BillerID,
		Subtotal:       m.Subtotal,
		Tax:            m.Tax,
		Discount:       m.Discount,
		Total:          m.Total,
		DiscountCode:   m.DiscountCode,
		Status:         m.Status,
		WhatsappNumber: m.WhatsappNumber,
		Items:          items,
		CreatedAt:      m.CreatedAt,
	}
}

func PageFromResult(page *Page) *PageDTO {
	if page == nil {
		return nil
	}
	out := &PageDTO{
		Bills:      make([]BillDTO, 0, len(page.Bills)),
		NextCursor: page.NextCursor,
	}
	for i := range page.Bills {
		out.Bills = append(out.Bills, *FromModel(&page.Bills[i]))
	}
	return out
}
