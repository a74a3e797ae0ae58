package billdraft

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MenuItemRef carries the menu-item fields a draft line needs. Prices are
// tax-inclusive by pricing policy, so Taxable is informational only.
type MenuItemRef struct {
	ID      uuid.UUID
	Name    string
	Price   decimal.Decimal
	Taxable bool
}

// LineItem is one row of the draft. A draft holds at most one line per menu
// item id; re-adding an item bumps its quantity instead of appending.
type LineItem struct {
	ItemID   uuid.UUID       `json:"item_id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Taxable  bool            `json:"taxable"`
	Quantity int             `json:"quantity"`
}

// Subtotal returns price × quantity for the line.
func (li LineItem) Subtotal() decimal.Decimal {
	return li.Price.Mul(decimal.NewFromInt(int64(li.Quantity)))
}

// Draft is the in-progress bill for one biller session. Items keep insertion
// order; Subtotal, Tax and Total are derived and recomputed on every mutation,
// never stored independently of the inputs.
type Draft struct {
	Items    []LineItem      `json:"items"`
	Subtotal decimal.Decimal `json:"subtotal"`
	Tax      decimal.Decimal `json:"tax"`
	Discount decimal.Decimal `json:"discount"`
	Total    decimal.Decimal `json:"total"`
	// AppliedCode is set while a discount code drives Discount; a manual
	// discount amount and a code are mutually exclusive.
	AppliedCode *string `json:"applied_code,omitempty"`
}

// New returns an empty draft with all amounts zeroed.
func New() *Draft {
	d := &Draft{Items: []LineItem{}}
	d.recompute()
	return d
}

// AddItem merges the item into an existing line or appends a new line with
// quantity 1. It cannot fail.
func (d *Draft) AddItem(item MenuItemRef) {
	for i := range d.Items {
		if d.Items[i].ItemID == item.ID {
			d.Items[i].Quantity++
			d.recompute()
			return
		}
	}
	d.Items = append(d.Items, LineItem{
		ItemID:   item.ID,
		Name:     item.Name,
		Price:    item.Price,
		Taxable:  item.Taxable,
		Quantity: 1,
	})
	d.recompute()
}

// RemoveItem drops the line for the given menu item regardless of quantity.
// Removing an absent item is a no-op.
func (d *Draft) RemoveItem(itemID uuid.UUID) {
	kept := d.Items[:0]
	for _, li := range d.Items {
		if li.ItemID != itemID {
			kept = append(kept, li)
		}
	}
	d.Items = kept
	d.recompute()
}

// UpdateQuantity sets the exact quantity for a line. A quantity of zero or
// less removes the line. Quantities are not clamped to any maximum.
func (d *Draft) UpdateQuantity(itemID uuid.UUID, quantity int) {
	if quantity <= 0 {
		d.RemoveItem(itemID)
		return
	}
	for i := range d.Items {
		if d.Items[i].ItemID == itemID {
			d.Items[i].Quantity = quantity
			break
		}
	}
	d.recompute()
}

// ApplyDiscount overwrites the discount with a manual absolute amount and
// clears any applied code. Zero clears the discount. The amount is not
// validated against the subtotal; the total silently floors at zero.
func (d *Draft) ApplyDiscount(amount decimal.Decimal) {
	if amount.IsNegative() {
		amount = decimal.Zero
	}
	d.Discount = amount
	d.AppliedCode = nil
	d.recompute()
}

// ApplyCodeDiscount derives the discount from a validated percent code:
// (subtotal + tax) × percent/100. The normalized code is recorded so the UI
// can disable manual discount entry until the code is removed.
func (d *Draft) ApplyCodeDiscount(code string, percent int) {
	normalized := NormalizeCode(code)
	base := d.itemsSubtotal().Add(d.taxAmount())
	d.Discount = base.Mul(decimal.NewFromInt(int64(percent))).Div(decimal.NewFromInt(100))
	d.AppliedCode = &normalized
	d.recompute()
}

// Clear resets the draft to the empty state.
func (d *Draft) Clear() {
	d.Items = []LineItem{}
	d.Discount = decimal.Zero
	d.AppliedCode = nil
	d.recompute()
}

// IsEmpty reports whether the draft holds no lines.
func (d *Draft) IsEmpty() bool {
	return len(d.Items) == 0
}

// Quantity returns the current quantity for a menu item, zero when absent.
func (d *Draft) Quantity(itemID uuid.UUID) int {
	for _, li := range d.Items {
		if li.ItemID == itemID {
			return li.Quantity
		}
	}
	return 0
}

func (d *Draft) itemsSubtotal() decimal.Decimal {
	sum := decimal.Zero
	for _, li := range d.Items {
		sum = sum.Add(li.Subtotal())
	}
	return sum
}

// taxAmount is always zero: menu prices are tax-inclusive. The field is kept
// on the draft for display and legacy compatibility.
func (d *Draft) taxAmount() decimal.Decimal {
	return decimal.Zero
}

// recompute derives Subtotal, Tax and Total purely from (Items, Discount).
func (d *Draft) recompute() {
	if d.Items == nil {
		d.Items = []LineItem{}
	}
	d.Subtotal = d.itemsSubtotal()
	d.Tax = d.taxAmount()

	total := d.Subtotal.Sub(d.Discount)
	if total.IsNegative() {
		total = decimal.Zero
	}
	d.Total = total
}

// NormalizeCode uppercases and trims a user-supplied discount code.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
