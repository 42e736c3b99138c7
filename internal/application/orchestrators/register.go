package orchestrators

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	domainUser "fitfront/internal/domain/user"
)

// RegisterInput carries input for customer registration.
type RegisterInput struct {
	Name     string
	Email    string
	Phone    string
	Password string
}

// RegisterDeps holds dependencies for Register.
type RegisterDeps struct {
	Mutator Mutator
}

// ExecuteRegister validates a registration form and submits it upstream.
// Validation runs client-side first; the upstream's own validation errors
// surface through the status envelope.
// PRE: input fields are raw form values
// POST: account exists upstream; the caller logs in separately
func ExecuteRegister(ctx context.Context, input RegisterInput, deps RegisterDeps) error {
	u := domainUser.User{
		Name:  strings.TrimSpace(input.Name),
		Email: strings.TrimSpace(input.Email),
		Phone: strings.TrimSpace(input.Phone),
	}
	if err := u.Validate(); err != nil {
		return err
	}
	if err := domainUser.ValidatePassword(input.Password); err != nil {
		return err
	}

	url := deps.Mutator.Endpoints().User().Register
	result, err := deps.Mutator.Mutate(ctx, "", http.MethodPost, url, map[string]any{
		"name":     u.Name,
		"email":    u.Email,
		"phone":    u.Phone,
		"password": input.Password,
	})
	if err != nil {
		return err
	}
	if err := mutationError(result); err != nil {
		return err
	}

	slog.Info("auth_event", "event", "registered", "email", u.Email)
	return nil
}
