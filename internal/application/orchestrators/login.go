package orchestrators

import (
	"context"
	"errors"
	"log/slog"

	"fitfront/internal/adapters/upstream"
)

// Authenticator exchanges credentials for an upstream bearer token.
type Authenticator interface {
	Login(ctx context.Context, email, password string) (upstream.LoginResult, error)
}

// LoginInput carries input for the login orchestrator.
type LoginInput struct {
	Email    string
	Password string
}

// LoginResult carries the session material for a successful login.
type LoginResult struct {
	Token string
	Name  string
	Email string
	Role  string
}

// LoginDeps holds dependencies for Login.
type LoginDeps struct {
	Auth Authenticator
}

var ErrInvalidCredentials = errors.New("invalid email or password")

// ExecuteLogin delegates credential verification to the upstream service and
// returns its bearer token for session creation. Credentials are never
// verified locally.
// POST: Returns token, name, and role on success
func ExecuteLogin(ctx context.Context, input LoginInput, deps LoginDeps) (LoginResult, error) {
	if input.Email == "" || input.Password == "" {
		return LoginResult{}, ErrInvalidCredentials
	}

	result, err := deps.Auth.Login(ctx, input.Email, input.Password)
	if err != nil {
		if errors.Is(err, upstream.ErrUnauthorized) {
			slog.Info("auth_event", "event", "login_failed", "email", input.Email, "reason", "rejected")
			return LoginResult{}, ErrInvalidCredentials
		}
		slog.Error("auth_event", "event", "login_error", "email", input.Email, "error", err.Error())
		return LoginResult{}, err
	}

	slog.Info("auth_event", "event", "login_success", "email", input.Email, "role", result.Role)
	return LoginResult{
		Token: result.Token,
		Name:  result.Name,
		Email: result.Email,
		Role:  result.Role,
	}, nil
}
