package product

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

// Max length constants for user-editable fields.
const (
	MaxNameLength = 150
)

// Domain errors
var (
	ErrEmptyName     = errors.New("product name cannot be empty")
	ErrNegativePrice = errors.New("price cannot be negative")
	ErrNegativeStock = errors.New("stock cannot be negative")
)

// Product is a catalog item mirrored from the upstream service.
type Product struct {
	ID          string
	Name        string
	Description string
	Price       decimal.Decimal
	Stock       int
	ImageURL    string
	CategoryID  string
}

// Validate checks if the Product has valid data.
// PRE: Product struct is initialized
// POST: Returns error if validation fails, nil otherwise
func (p *Product) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return ErrEmptyName
	}
	if len(p.Name) > MaxNameLength {
		return errors.New("product name cannot exceed 150 characters")
	}
	if p.Price.IsNegative() {
		return ErrNegativePrice
	}
	if p.Stock < 0 {
		return ErrNegativeStock
	}
	return nil
}

// InStock reports whether the product can currently be ordered.
func (p *Product) InStock() bool {
	return p.Stock > 0
}

// PriceLabel returns the storefront display price. A zero price displays as
// "Free"; anything else as a fixed two-decimal figure.
func (p *Product) PriceLabel() string {
	return PriceLabel(p.Price)
}

// PriceLabel formats a price for display with the zero-means-free rule.
func PriceLabel(price decimal.Decimal) string {
	if price.IsZero() {
		return "Free"
	}
	return "$" + price.StringFixed(2)
}
