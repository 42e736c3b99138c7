package product_test

import (
	"testing"

	"github.com/shopspring/decimal"

	"fitfront/internal/domain/product"
)

// TestProductValidation tests validation of Product.
func TestProductValidation(t *testing.T) {
	tests := []struct {
		name    string
		product product.Product
		wantErr bool
	}{
		{
			name:    "valid product",
			product: product.Product{Name: "Whey Protein", Price: decimal.RequireFromString("49.90"), Stock: 10},
			wantErr: false,
		},
		{
			name:    "free product is valid",
			product: product.Product{Name: "Starter Guide", Price: decimal.Zero},
			wantErr: false,
		},
		{
			name:    "empty name",
			product: product.Product{Name: " ", Price: decimal.NewFromInt(5)},
			wantErr: true,
		},
		{
			name:    "negative price",
			product: product.Product{Name: "Bands", Price: decimal.NewFromInt(-1)},
			wantErr: true,
		},
		{
			name:    "negative stock",
			product: product.Product{Name: "Bands", Price: decimal.NewFromInt(5), Stock: -2},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.product.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Product.Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

// TestPriceLabel tests the zero-means-free display rule.
func TestPriceLabel(t *testing.T) {
	tests := []struct {
		price string
		want  string
	}{
		{"0", "Free"},
		{"0.00", "Free"},
		{"15", "$15.00"},
		{"49.9", "$49.90"},
	}
	for _, tt := range tests {
		p := product.Product{Price: decimal.RequireFromString(tt.price)}
		if got := p.PriceLabel(); got != tt.want {
			t.Errorf("PriceLabel(%s) = %q, want %q", tt.price, got, tt.want)
		}
	}
}
