package orchestrators

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	domainUser "fitfront/internal/domain/user"
)

// UpdateProfileInput carries the customer profile form.
type UpdateProfileInput struct {
	Token       string
	Name        string
	Email       string
	Phone       string
	NewPassword string // "" keeps the current password
}

// UpdateProfileDeps holds dependencies for UpdateProfile.
type UpdateProfileDeps struct {
	Mutator Mutator
}

// ExecuteUpdateProfile validates and saves the signed-in customer's profile.
// The caller refreshes the session afterwards so the header greeting
// reflects the new name.
func ExecuteUpdateProfile(ctx context.Context, input UpdateProfileInput, deps UpdateProfileDeps) error {
	u := domainUser.User{
		Name:  strings.TrimSpace(input.Name),
		Email: strings.TrimSpace(input.Email),
		Phone: strings.TrimSpace(input.Phone),
	}
	if err := u.Validate(); err != nil {
		return err
	}
	if input.NewPassword != "" {
		if err := domainUser.ValidatePassword(input.NewPassword); err != nil {
			return err
		}
	}

	body := map[string]any{
		"name":  u.Name,
		"email": u.Email,
		"phone": u.Phone,
	}
	if input.NewPassword != "" {
		body["password"] = input.NewPassword
	}

	url := deps.Mutator.Endpoints().User().Profile
	result, err := deps.Mutator.Mutate(ctx, input.Token, http.MethodPost, url, body)
	if err != nil {
		return err
	}
	if err := mutationError(result); err != nil {
		return err
	}

	slog.Info("auth_event", "event", "profile_updated", "email", u.Email)
	return nil
}
