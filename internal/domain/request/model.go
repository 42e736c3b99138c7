// Package request models booking-intake records: training requests and
// course requests. Both share a three-state machine. pending is the initial
// state and the only state from which approve/cancel are permitted; approved
// and cancelled are terminal. delete removes the record from any state
// rather than transitioning it. There are no automatic transitions.
package request

import (
	"errors"
	"strings"
)

// Kind constants distinguish the two intake record classes.
const (
	KindTraining = "training"
	KindCourse   = "course"
)

// Status constants.
const (
	StatusPending   = "pending"
	StatusApproved  = "approved"
	StatusCancelled = "cancelled"
)

// Domain errors
var (
	ErrNotPending   = errors.New("only pending requests can be approved or cancelled")
	ErrEmptyName    = errors.New("request name cannot be empty")
	ErrInvalidEmail = errors.New("request email must be valid")
	ErrInvalidKind  = errors.New("kind must be 'training' or 'course'")
)

// Request holds state for one intake record.
type Request struct {
	ID          string
	Kind        string
	Name        string
	Email       string
	Phone       string
	Status      string
	CreatedAt   string
	Goal        string // training requests
	HealthNotes string // training requests
	CourseID    string // course requests
	CourseTitle string // course requests
}

// Validate checks if the Request has valid data.
// PRE: Request struct is initialized
// POST: Returns error if validation fails, nil otherwise
func (r *Request) Validate() error {
	if r.Kind != KindTraining && r.Kind != KindCourse {
		return ErrInvalidKind
	}
	if strings.TrimSpace(r.Name) == "" {
		return ErrEmptyName
	}
	if !strings.Contains(r.Email, "@") {
		return ErrInvalidEmail
	}
	return nil
}

// IsPending reports whether the request is still mutable.
// INVARIANT: Status field is not mutated
func (r *Request) IsPending() bool {
	return r.Status == StatusPending
}

// IsTerminal reports whether the request has reached a final state.
func (r *Request) IsTerminal() bool {
	return r.Status == StatusApproved || r.Status == StatusCancelled
}

// Approve transitions the request to approved.
// PRE: Status is pending
// POST: Status is approved
func (r *Request) Approve() error {
	if !r.IsPending() {
		return ErrNotPending
	}
	r.Status = StatusApproved
	return nil
}

// Cancel transitions the request to cancelled.
// PRE: Status is pending
// POST: Status is cancelled
func (r *Request) Cancel() error {
	if !r.IsPending() {
		return ErrNotPending
	}
	r.Status = StatusCancelled
	return nil
}
