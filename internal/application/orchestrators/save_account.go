package orchestrators

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	domainAdmin "fitfront/internal/domain/admin"
	domainUser "fitfront/internal/domain/user"
)

// SaveUserInput carries an admin-managed customer account form.
type SaveUserInput struct {
	Token    string
	ID       string
	Name     string
	Email    string
	Phone    string
	Password string // optional on update
	Existing []domainUser.User
}

// ExecuteSaveUser creates or updates a customer account from the back
// office. Duplicate emails are rejected against the loaded user list before
// anything is sent upstream.
func ExecuteSaveUser(ctx context.Context, input SaveUserInput, deps CatalogDeps) error {
	u := domainUser.User{
		ID:    input.ID,
		Name:  strings.TrimSpace(input.Name),
		Email: strings.TrimSpace(input.Email),
		Phone: strings.TrimSpace(input.Phone),
	}
	if err := u.Validate(); err != nil {
		return err
	}
	if input.ID == "" {
		if err := domainUser.ValidatePassword(input.Password); err != nil {
			return err
		}
		if err := domainUser.CheckUnique(u.Email, input.Existing); err != nil {
			return err
		}
	}

	routes := deps.Mutator.Endpoints().Admin().Users
	url := routes.Add()
	if input.ID != "" {
		url = routes.Update(input.ID)
	}
	body := map[string]any{
		"name":  u.Name,
		"email": u.Email,
		"phone": u.Phone,
	}
	if input.Password != "" {
		body["password"] = input.Password
	}

	result, err := deps.Mutator.Mutate(ctx, input.Token, http.MethodPost, url, body)
	if err != nil {
		return err
	}
	if err := mutationError(result); err != nil {
		return err
	}

	slog.Info("admin_event", "event", "user_saved", "id", input.ID, "email", u.Email)
	return nil
}

// ExecuteDeleteUser removes a customer account.
func ExecuteDeleteUser(ctx context.Context, token, id string, deps CatalogDeps) error {
	routes := deps.Mutator.Endpoints().Admin().Users
	result, err := deps.Mutator.Mutate(ctx, token, http.MethodPost, routes.Delete(id), nil)
	if err != nil {
		return err
	}
	if err := mutationError(result); err != nil {
		return err
	}
	slog.Info("admin_event", "event", "user_deleted", "id", id)
	return nil
}

// SaveAdminInput carries an operator account form.
type SaveAdminInput struct {
	Token    string
	ID       string
	Name     string
	Email    string
	Phone    string
	Role     string
	Password string
}

// ExecuteSaveAdmin creates or updates an operator account. Only superadmins
// reach this path; the role gate lives in the HTTP layer.
func ExecuteSaveAdmin(ctx context.Context, input SaveAdminInput, deps CatalogDeps) error {
	a := domainAdmin.Admin{
		ID:    input.ID,
		Name:  strings.TrimSpace(input.Name),
		Email: strings.TrimSpace(input.Email),
		Phone: strings.TrimSpace(input.Phone),
		Role:  input.Role,
	}
	if err := a.Validate(); err != nil {
		return err
	}
	if input.ID == "" {
		if err := domainUser.ValidatePassword(input.Password); err != nil {
			return err
		}
	}

	routes := deps.Mutator.Endpoints().Admin().Admins
	url := routes.Add()
	if input.ID != "" {
		url = routes.Update(input.ID)
	}
	body := map[string]any{
		"name":  a.Name,
		"email": a.Email,
		"phone": a.Phone,
		"role":  a.Role,
	}
	if input.Password != "" {
		body["password"] = input.Password
	}

	result, err := deps.Mutator.Mutate(ctx, input.Token, http.MethodPost, url, body)
	if err != nil {
		return err
	}
	if err := mutationError(result); err != nil {
		return err
	}

	slog.Info("admin_event", "event", "admin_saved", "id", input.ID, "email", a.Email, "role", a.Role)
	return nil
}

// ExecuteDeleteAdmin removes an operator account.
func ExecuteDeleteAdmin(ctx context.Context, token, id string, deps CatalogDeps) error {
	routes := deps.Mutator.Endpoints().Admin().Admins
	result, err := deps.Mutator.Mutate(ctx, token, http.MethodPost, routes.Delete(id), nil)
	if err != nil {
		return err
	}
	if err := mutationError(result); err != nil {
		return err
	}
	slog.Info("admin_event", "event", "admin_deleted", "id", id)
	return nil
}
