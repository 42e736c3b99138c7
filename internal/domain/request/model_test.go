package request_test

import (
	"testing"

	"fitfront/internal/domain/request"
)

// TestRequestValidation tests validation of Request.
func TestRequestValidation(t *testing.T) {
	tests := []struct {
		name    string
		request request.Request
		wantErr bool
	}{
		{
			name: "valid training request",
			request: request.Request{
				ID:     "r1",
				Kind:   request.KindTraining,
				Name:   "Jane Doe",
				Email:  "jane@example.com",
				Status: request.StatusPending,
				Goal:   "lose weight",
			},
			wantErr: false,
		},
		{
			name: "valid course request",
			request: request.Request{
				ID:          "r2",
				Kind:        request.KindCourse,
				Name:        "John Doe",
				Email:       "john@example.com",
				Status:      request.StatusPending,
				CourseTitle: "Yoga Basics",
			},
			wantErr: false,
		},
		{
			name: "invalid kind",
			request: request.Request{
				Kind:  "order",
				Name:  "Jane",
				Email: "jane@example.com",
			},
			wantErr: true,
		},
		{
			name: "empty name",
			request: request.Request{
				Kind:  request.KindTraining,
				Name:  "  ",
				Email: "jane@example.com",
			},
			wantErr: true,
		},
		{
			name: "invalid email",
			request: request.Request{
				Kind:  request.KindTraining,
				Name:  "Jane",
				Email: "not-an-email",
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.request.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Request.Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

// TestRequestTransitions tests the three-state machine.
func TestRequestTransitions(t *testing.T) {
	t.Run("approve from pending", func(t *testing.T) {
		r := request.Request{Status: request.StatusPending}
		if err := r.Approve(); err != nil {
			t.Fatalf("Approve() from pending: %v", err)
		}
		if r.Status != request.StatusApproved {
			t.Errorf("Status = %q, want approved", r.Status)
		}
		if !r.IsTerminal() {
			t.Error("approved request should be terminal")
		}
	})

	t.Run("cancel from pending", func(t *testing.T) {
		r := request.Request{Status: request.StatusPending}
		if err := r.Cancel(); err != nil {
			t.Fatalf("Cancel() from pending: %v", err)
		}
		if r.Status != request.StatusCancelled {
			t.Errorf("Status = %q, want cancelled", r.Status)
		}
	})

	t.Run("approved is terminal", func(t *testing.T) {
		r := request.Request{Status: request.StatusApproved}
		if err := r.Cancel(); err != request.ErrNotPending {
			t.Errorf("Cancel() from approved = %v, want ErrNotPending", err)
		}
		if err := r.Approve(); err != request.ErrNotPending {
			t.Errorf("Approve() from approved = %v, want ErrNotPending", err)
		}
	})

	t.Run("cancelled is terminal", func(t *testing.T) {
		r := request.Request{Status: request.StatusCancelled}
		if err := r.Approve(); err != request.ErrNotPending {
			t.Errorf("Approve() from cancelled = %v, want ErrNotPending", err)
		}
	})
}
