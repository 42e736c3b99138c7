package orchestrators

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"fitfront/internal/adapters/email"
	domainService "fitfront/internal/domain/service"
)

// SubmitBookingInput carries the public booking form.
type SubmitBookingInput struct {
	Token         string // "" for anonymous visitors
	ServiceID     string
	ServiceName   string
	CustomerName  string
	CustomerEmail string
	CustomerPhone string
	Date          string
	Notes         string
}

// SubmitBookingDeps holds dependencies for SubmitBooking.
type SubmitBookingDeps struct {
	Mutator Mutator
	Email   email.Sender
}

// ExecuteSubmitBooking validates and submits a service booking, then sends
// the confirmation email. The email is best-effort: the booking stands even
// when the provider is down.
func ExecuteSubmitBooking(ctx context.Context, input SubmitBookingInput, deps SubmitBookingDeps) error {
	b := domainService.Booking{
		ServiceID:     input.ServiceID,
		ServiceName:   input.ServiceName,
		CustomerName:  input.CustomerName,
		CustomerEmail: input.CustomerEmail,
		CustomerPhone: input.CustomerPhone,
		Date:          input.Date,
		Notes:         input.Notes,
		Status:        domainService.StatusPending,
	}
	if err := b.Validate(); err != nil {
		return err
	}

	url := deps.Mutator.Endpoints().User().BookingAdd
	result, err := deps.Mutator.Mutate(ctx, input.Token, http.MethodPost, url, map[string]any{
		"service_id":     b.ServiceID,
		"customer_name":  b.CustomerName,
		"customer_email": b.CustomerEmail,
		"customer_phone": b.CustomerPhone,
		"date":           b.Date,
		"notes":          b.Notes,
	})
	if err != nil {
		return err
	}
	if err := mutationError(result); err != nil {
		return err
	}

	slog.Info("booking_event", "event", "booking_submitted", "service_id", b.ServiceID, "email", b.CustomerEmail)

	if deps.Email != nil {
		_, sendErr := deps.Email.Send(ctx, email.SendRequest{
			To:      []string{b.CustomerEmail},
			Subject: "Booking received",
			HTML:    bookingConfirmationHTML(b),
		})
		if sendErr != nil {
			slog.Warn("booking_event", "event", "confirmation_email_failed", "email", b.CustomerEmail, "error", sendErr.Error())
		}
	}
	return nil
}

func bookingConfirmationHTML(b domainService.Booking) string {
	name := b.ServiceName
	if name == "" {
		name = "your selected service"
	}
	return fmt.Sprintf(
		"<p>Hi %s,</p><p>We received your booking for %s on %s. We'll confirm your slot shortly.</p>",
		b.CustomerName, name, b.Date,
	)
}
