// Package course models the three-level course catalog: a course contains
// modules, a module contains chapters. The containment arrays are optional;
// a course with no modules is valid.
package course

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

// Max length constants for user-editable fields.
const (
	MaxTitleLength = 150
)

// Domain errors
var (
	ErrEmptyTitle    = errors.New("course title cannot be empty")
	ErrNegativePrice = errors.New("course price cannot be negative")
)

// Course is a sellable training course.
type Course struct {
	ID          string
	Title       string
	Description string
	Price       decimal.Decimal
	ImageURL    string
	Modules     []Module
}

// Module is one section of a course.
type Module struct {
	ID       string
	CourseID string
	Title    string
	Position int
	Chapters []Chapter
}

// Chapter is one lesson within a module.
type Chapter struct {
	ID       string
	ModuleID string
	Title    string
	Content  string
	VideoURL string
	Position int
}

// Validate checks if the Course has valid data.
// PRE: Course struct is initialized
// POST: Returns error if validation fails, nil otherwise
func (c *Course) Validate() error {
	if strings.TrimSpace(c.Title) == "" {
		return ErrEmptyTitle
	}
	if len(c.Title) > MaxTitleLength {
		return errors.New("course title cannot exceed 150 characters")
	}
	if c.Price.IsNegative() {
		return ErrNegativePrice
	}
	for _, m := range c.Modules {
		if err := m.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Validate checks if the Module has valid data.
func (m *Module) Validate() error {
	if strings.TrimSpace(m.Title) == "" {
		return errors.New("module title cannot be empty")
	}
	return nil
}

// ChapterCount returns the total number of chapters across all modules.
func (c *Course) ChapterCount() int {
	n := 0
	for _, m := range c.Modules {
		n += len(m.Chapters)
	}
	return n
}

// IsFree reports whether the course is offered at no charge.
func (c *Course) IsFree() bool {
	return c.Price.IsZero()
}

// PriceLabel returns the storefront display price ("Free" for zero).
func (c *Course) PriceLabel() string {
	if c.IsFree() {
		return "Free"
	}
	return "$" + c.Price.StringFixed(2)
}
