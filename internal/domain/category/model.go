package category

import (
	"errors"
	"strings"
)

// ErrEmptyName is returned when a category has no name.
var ErrEmptyName = errors.New("category name cannot be empty")

// Category groups products in the storefront catalog.
type Category struct {
	ID          string
	Name        string
	Description string
}

// Validate checks if the Category has valid data.
func (c *Category) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return ErrEmptyName
	}
	return nil
}
