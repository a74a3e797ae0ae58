package billdraft

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func item(name string, price string) MenuItemRef {
	return MenuItemRef{
		ID:      uuid.New(),
		Name:    name,
		Price:   decimal.RequireFromString(price),
		Taxable: true,
	}
}

func amt(t *testing.T, d decimal.Decimal, want string) {
	t.Helper()
	assert.Equal(t, want, d.StringFixed(2))
}

func TestDraftAddItem(t *testing.T) {
	samosa := item("Samosa", "3.50")
	chai := item("Chai", "2.00")

	d := New()
	d.AddItem(samosa)
	d.AddItem(chai)
	d.AddItem(samosa)

	require.Len(t, d.Items, 2)
	assert.Equal(t, 2, d.Quantity(samosa.ID))
	assert.Equal(t, 1, d.Quantity(chai.ID))
	amt(t, d.Subtotal, "9.00")
	amt(t, d.Total, "9.00")
}

func TestDraftRemoveItem(t *testing.T) {
	samosa := item("Samosa", "3.50")
	chai := item("Chai", "2.00")

	d := New()
	d.AddItem(samosa)
	d.AddItem(samosa)
	d.AddItem(chai)

	d.RemoveItem(samosa.ID)
	require.Len(t, d.Items, 1)
	assert.Equal(t, 0, d.Quantity(samosa.ID))
	amt(t, d.Subtotal, "2.00")

	// absent id is a no-op
	d.RemoveItem(uuid.New())
	require.Len(t, d.Items, 1)
}

func TestDraftUpdateQuantity(t *testing.T) {
	thali := item("Thali", "12.00")

	d := New()
	d.AddItem(thali)
	d.UpdateQuantity(thali.ID, 5)
	assert.Equal(t, 5, d.Quantity(thali.ID))
	amt(t, d.Subtotal, "60.00")

	t.Run("zero removes the line", func(t *testing.T) {
		d.UpdateQuantity(thali.ID, 0)
		assert.True(t, d.IsEmpty())
		amt(t, d.Subtotal, "0.00")
	})

	t.Run("negative removes the line", func(t *testing.T) {
		d.AddItem(thali)
		d.UpdateQuantity(thali.ID, -3)
		assert.True(t, d.IsEmpty())
	})
}

func TestDraftManualDiscount(t *testing.T) {
	thali := item("Thali", "12.00")

	d := New()
	d.AddItem(thali)
	d.ApplyDiscount(decimal.RequireFromString("4.00"))
	amt(t, d.Discount, "4.00")
	amt(t, d.Total, "8.00")
	assert.Nil(t, d.AppliedCode)

	t.Run("zero clears", func(t *testing.T) {
		d.ApplyDiscount(decimal.Zero)
		amt(t, d.Discount, "0.00")
		amt(t, d.Total, "12.00")
	})

	t.Run("negative treated as zero", func(t *testing.T) {
		d.ApplyDiscount(decimal.RequireFromString("-5.00"))
		amt(t, d.Discount, "0.00")
		amt(t, d.Total, "12.00")
	})

	t.Run("exceeding subtotal floors total at zero", func(t *testing.T) {
		d.ApplyDiscount(decimal.RequireFromString("50.00"))
		amt(t, d.Total, "0.00")
		amt(t, d.Discount, "50.00")
	})
}

func TestDraftCodeDiscount(t *testing.T) {
	chai := item("Chai", "2.50")

	d := New()
	d.AddItem(chai)
	d.UpdateQuantity(chai.ID, 4) // subtotal 10.00

	d.ApplyCodeDiscount("  chai10 ", 10)
	require.NotNil(t, d.AppliedCode)
	assert.Equal(t, "CHAI10", *d.AppliedCode)
	amt(t, d.Discount, "1.00")
	amt(t, d.Total, "9.00")

	t.Run("manual amount clears the code", func(t *testing.T) {
		d.ApplyDiscount(decimal.RequireFromString("2.00"))
		assert.Nil(t, d.AppliedCode)
		amt(t, d.Discount, "2.00")
	})

	t.Run("removing the code zeroes the discount", func(t *testing.T) {
		d.ApplyCodeDiscount("CHAI10", 10)
		d.ApplyDiscount(decimal.Zero)
		assert.Nil(t, d.AppliedCode)
		amt(t, d.Discount, "0.00")
		amt(t, d.Total, "10.00")
	})
}

func TestDraftTotalsAreDerived(t *testing.T) {
	// totals must be a pure function of (items, discount): any mutation
	// sequence landing on the same inputs yields the same outputs
	a := item("Dosa", "6.75")
	b := item("Lassi", "3.25")

	d1 := New()
	d1.AddItem(a)
	d1.AddItem(b)

	d2 := New()
	d2.AddItem(b)
	d2.AddItem(a)
	d2.AddItem(a)
	d2.UpdateQuantity(a.ID, 1)

	amt(t, d1.Subtotal, d2.Subtotal.StringFixed(2))
	amt(t, d1.Total, d2.Total.StringFixed(2))
	amt(t, d1.Tax, "0.00")
}

func TestDraftClear(t *testing.T) {
	d := New()
	d.AddItem(item("Samosa", "3.50"))
	d.ApplyCodeDiscount("OPEN5", 5)

	d.Clear()
	assert.True(t, d.IsEmpty())
	assert.Nil(t, d.AppliedCode)
	amt(t, d.Subtotal, "0.00")
	amt(t, d.Discount, "0.00")
	amt(t, d.Total, "0.00")
}

// The end-to-end sequence from the checkout flow: build, discount via code,
// remove the code, then clear.
func TestDraftCheckoutSequence(t *testing.T) {
	chai := MenuItemRef{ID: uuid.New(), Name: "Chai", Price: decimal.RequireFromString("2.50"), Taxable: true}

	d := New()
	d.AddItem(chai)
	amt(t, d.Total, "2.50")

	d.AddItem(chai)
	d.UpdateQuantity(chai.ID, 4)
	amt(t, d.Subtotal, "10.00")
	amt(t, d.Total, "10.00")

	d.ApplyCodeDiscount("FEST20", 20)
	amt(t, d.Discount, "2.00")
	amt(t, d.Total, "8.00")

	d.ApplyDiscount(decimal.Zero)
	amt(t, d.Discount, "0.00")
	amt(t, d.Total, "10.00")

	d.Clear()
	assert.True(t, d.IsEmpty())
}

func TestNormalizeCode(t *testing.T) {
	assert.Equal(t, "FEST20", NormalizeCode(" fest20\t"))
	assert.Equal(t, "", NormalizeCode("   "))
}
