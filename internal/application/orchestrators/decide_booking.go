package orchestrators

import (
	"context"
	"log/slog"
	"net/http"

	"fitfront/internal/adapters/email"
	domainService "fitfront/internal/domain/service"
	"fitfront/internal/reconcile"
)

// DecideBookingInput identifies the booking and the decision.
type DecideBookingInput struct {
	Token     string
	BookingID string
	Approve   bool
}

// DecideBookingDeps holds dependencies for booking decisions.
type DecideBookingDeps struct {
	Mutator Mutator
	Fetcher RequestFetcher
	Email   email.Sender
}

// ExecuteDecideBooking approves or cancels a pending service booking and
// notifies the customer. Like the intake requests, only pending bookings
// transition.
func ExecuteDecideBooking(ctx context.Context, input DecideBookingInput, deps DecideBookingDeps) error {
	routes := deps.Mutator.Endpoints().Admin().Bookings

	payload, err := deps.Fetcher.FetchOne(ctx, input.Token, routes.GetByID(input.BookingID))
	if err != nil {
		return err
	}
	raw, _ := payload.(map[string]any)
	b := domainService.Booking{
		ID:            input.BookingID,
		CustomerName:  reconcile.StringAt(raw, "", "customer_name", "name", "full_name"),
		CustomerEmail: reconcile.StringAt(raw, "", "customer_email", "email"),
		ServiceName:   reconcile.StringAt(raw, "", "service_name", "service.name", "service.title"),
		Date:          reconcile.StringAt(raw, "", "date", "booking_date", "scheduled_at"),
		Status:        reconcile.NormalizeStatus(raw["status"]),
	}
	if input.Approve {
		err = b.Approve()
	} else {
		err = b.Cancel()
	}
	if err != nil {
		return err
	}

	url := routes.Cancel(input.BookingID)
	if input.Approve {
		url = routes.Approve(input.BookingID)
	}
	result, err := deps.Mutator.Mutate(ctx, input.Token, http.MethodPost, url, nil)
	if err != nil {
		return err
	}
	if err := mutationError(result); err != nil {
		return err
	}

	slog.Info("admin_event", "event", "booking_decided", "id", input.BookingID, "approved", input.Approve)

	if deps.Email != nil && b.CustomerEmail != "" {
		subject := "Booking cancelled"
		bodyVerb := "had to cancel"
		if input.Approve {
			subject = "Booking confirmed"
			bodyVerb = "confirmed"
		}
		_, sendErr := deps.Email.Send(ctx, email.SendRequest{
			To:      []string{b.CustomerEmail},
			Subject: subject,
			HTML:    "<p>Hi " + b.CustomerName + ",</p><p>We " + bodyVerb + " your booking for " + b.ServiceName + " on " + b.Date + ".</p>",
		})
		if sendErr != nil {
			slog.Warn("booking_event", "event", "decision_email_failed", "id", input.BookingID, "error", sendErr.Error())
		}
	}
	return nil
}

// ExecuteDeleteBooking removes a booking record.
func ExecuteDeleteBooking(ctx context.Context, token, id string, deps DecideBookingDeps) error {
	routes := deps.Mutator.Endpoints().Admin().Bookings
	result, err := deps.Mutator.Mutate(ctx, token, http.MethodPost, routes.Delete(id), nil)
	if err != nil {
		return err
	}
	if err := mutationError(result); err != nil {
		return err
	}
	slog.Info("admin_event", "event", "booking_deleted", "id", id)
	return nil
}
