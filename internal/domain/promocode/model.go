package promocode

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Domain errors
var (
	ErrEmptyCode       = errors.New("promo code cannot be empty")
	ErrInvalidDiscount = errors.New("discount must be between 0 and 100 percent")
	ErrInvalidWindow   = errors.New("valid-from date must not be after valid-to date")
)

// PromoCode is a percentage discount code with a validity window.
type PromoCode struct {
	ID            string
	Code          string
	DiscountValue decimal.Decimal // percent
	ValidFrom     time.Time
	ValidTo       time.Time
}

// Validate checks if the PromoCode has valid data.
// PRE: PromoCode struct is initialized
// POST: Returns error if validation fails, nil otherwise
func (p *PromoCode) Validate() error {
	if strings.TrimSpace(p.Code) == "" {
		return ErrEmptyCode
	}
	if p.DiscountValue.IsNegative() || p.DiscountValue.GreaterThan(decimal.NewFromInt(100)) {
		return ErrInvalidDiscount
	}
	if !p.ValidFrom.IsZero() && !p.ValidTo.IsZero() && p.ValidFrom.After(p.ValidTo) {
		return ErrInvalidWindow
	}
	return nil
}

// IsActive reports whether the code can be applied at the given time. A zero
// boundary leaves that side of the window open.
// INVARIANT: PromoCode fields are not mutated
func (p *PromoCode) IsActive(now time.Time) bool {
	if !p.ValidFrom.IsZero() && now.Before(p.ValidFrom) {
		return false
	}
	if !p.ValidTo.IsZero() && now.After(p.ValidTo) {
		return false
	}
	return true
}
