package order

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Status constants. Orders share the closed three-state classification used
// by request-like records: pending is the only mutable state, approved and
// cancelled are terminal.
const (
	StatusPending   = "pending"
	StatusApproved  = "approved"
	StatusCancelled = "cancelled"
)

// Order is an order header with derived totals mirrored from the upstream
// service. DiscountValue is a percentage (10 means 10% off).
type Order struct {
	ID            string
	CustomerName  string
	CustomerEmail string
	Status        string
	CreatedAt     string
	OriginalTotal decimal.Decimal
	DiscountValue decimal.Decimal
	PromoCode     string
	Items         []Item
}

// Item is one order line.
type Item struct {
	ProductID string
	Name      string
	Quantity  int
	UnitPrice decimal.Decimal
}

// Subtotal returns quantity * unit price for the line.
func (i Item) Subtotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// DiscountAmount returns the absolute discount derived from the percentage
// discount value, rounded to cents.
// PRE: DiscountValue is a percentage in [0, 100]
// POST: returns OriginalTotal * DiscountValue / 100
func (o Order) DiscountAmount() decimal.Decimal {
	if o.DiscountValue.IsZero() {
		return decimal.Zero
	}
	return o.OriginalTotal.Mul(o.DiscountValue).Div(decimal.NewFromInt(100)).Round(2)
}

// NetTotal returns the amount actually charged after discount.
// POST: returns OriginalTotal - DiscountAmount
func (o Order) NetTotal() decimal.Decimal {
	return o.OriginalTotal.Sub(o.DiscountAmount())
}

// DiscountLabel returns the display label for the discount line, e.g.
// "Discount (10%)". Empty when no discount applies.
func (o Order) DiscountLabel() string {
	if o.DiscountValue.IsZero() {
		return ""
	}
	return fmt.Sprintf("Discount (%s%%)", o.DiscountValue.String())
}

// HasDiscount reports whether a discount line should be rendered.
func (o Order) HasDiscount() bool {
	return !o.DiscountValue.IsZero()
}

// IsPending reports whether the order can still be approved or cancelled.
func (o Order) IsPending() bool {
	return o.Status == StatusPending
}
