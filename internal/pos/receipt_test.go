package pos

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func item(name string, qty int, price string) ReceiptItem {
	p := decimal.RequireFromString(price)
	return ReceiptItem{
		ProductName: name,
		Quantity:    qty,
		UnitPrice:   p,
		LineTotal:   p.Mul(decimal.NewFromInt(int64(qty))),
	}
}

func TestBuildReceiptSingleItem(t *testing.T) {
	// One unit at 9.99 -> tax rounds 0.999 up to 1.00.
	r := buildReceipt([]ReceiptItem{item("Blue Shirt", 1, "9.99")})

	assert.Equal(t, "9.99", r.Subtotal.StringFixed(2))
	assert.Equal(t, "1.00", r.Tax.StringFixed(2))
	assert.Equal(t, "10.99", r.GrandTotal.StringFixed(2))
}

func TestBuildReceiptMultipleItems(t *testing.T) {
	r := buildReceipt([]ReceiptItem{
		item("Blue Shirt", 3, "19.99"),
		item("Red Hat", 2, "5.50"),
	})

	// 3*19.99 + 2*5.50 = 59.97 + 11.00 = 70.97
	assert.Equal(t, "70.97", r.Subtotal.StringFixed(2))
	assert.Equal(t, "7.10", r.Tax.StringFixed(2))
	assert.Equal(t, "78.07", r.GrandTotal.StringFixed(2))
	require.Len(t, r.Items, 2)
	assert.Equal(t, "59.97", r.Items[0].LineTotal.StringFixed(2))
	assert.False(t, r.Timestamp.IsZero())
}

func TestBuildReceiptEmpty(t *testing.T) {
	// Checkout rejects empty carts before totals; buildReceipt still behaves.
	r := buildReceipt(nil)
	assert.True(t, r.Subtotal.IsZero())
	assert.True(t, r.Tax.IsZero())
	assert.True(t, r.GrandTotal.IsZero())
}

func TestGrandTotalIsSubtotalPlusTax(t *testing.T) {
	r := buildReceipt([]ReceiptItem{
		item("A", 7, "0.33"),
		item("B", 1, "100.01"),
	})
	assert.True(t, r.GrandTotal.Equal(r.Subtotal.Add(r.Tax)))
}
