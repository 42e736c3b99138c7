// Package service models bookable services (personal training sessions,
// assessments, massages) and the bookings customers submit for them.
package service

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

// Booking status constants, the same three-state machine as intake
// requests.
const (
	StatusPending   = "pending"
	StatusApproved  = "approved"
	StatusCancelled = "cancelled"
)

// Domain errors
var (
	ErrEmptyName       = errors.New("service name cannot be empty")
	ErrNegativePrice   = errors.New("service price cannot be negative")
	ErrEmptyCustomer   = errors.New("booking customer name cannot be empty")
	ErrInvalidEmail    = errors.New("booking email must be valid")
	ErrMissingService  = errors.New("booking must reference a service")
	ErrBookingFinished = errors.New("only pending bookings can be approved or cancelled")
)

// Service is a bookable offering.
type Service struct {
	ID              string
	Name            string
	Description     string
	Price           decimal.Decimal
	DurationMinutes int
	ImageURL        string
}

// Booking is a customer's request for a service slot.
type Booking struct {
	ID            string
	ServiceID     string
	ServiceName   string
	CustomerName  string
	CustomerEmail string
	CustomerPhone string
	Date          string
	Notes         string
	Status        string
	CreatedAt     string
}

// Validate checks if the Service has valid data.
func (s *Service) Validate() error {
	if strings.TrimSpace(s.Name) == "" {
		return ErrEmptyName
	}
	if s.Price.IsNegative() {
		return ErrNegativePrice
	}
	return nil
}

// Validate checks if the Booking has valid data.
// PRE: Booking struct is initialized
// POST: Returns error if validation fails, nil otherwise
func (b *Booking) Validate() error {
	if b.ServiceID == "" {
		return ErrMissingService
	}
	if strings.TrimSpace(b.CustomerName) == "" {
		return ErrEmptyCustomer
	}
	if !strings.Contains(b.CustomerEmail, "@") {
		return ErrInvalidEmail
	}
	return nil
}

// IsPending reports whether the booking is still mutable.
func (b *Booking) IsPending() bool {
	return b.Status == StatusPending
}

// Approve transitions the booking to approved.
// PRE: Status is pending
func (b *Booking) Approve() error {
	if !b.IsPending() {
		return ErrBookingFinished
	}
	b.Status = StatusApproved
	return nil
}

// Cancel transitions the booking to cancelled.
// PRE: Status is pending
func (b *Booking) Cancel() error {
	if !b.IsPending() {
		return ErrBookingFinished
	}
	b.Status = StatusCancelled
	return nil
}
