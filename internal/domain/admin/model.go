// Package admin models back-office operator accounts. Admins are stored
// upstream as a class parallel to users, reached through separate endpoints;
// there is no shared supertype.
package admin

import (
	"errors"
	"strings"
)

// Role constants
const (
	RoleAdmin      = "admin"
	RoleSuperAdmin = "superadmin"
)

// Domain errors
var (
	ErrEmptyName    = errors.New("admin name cannot be empty")
	ErrInvalidEmail = errors.New("admin email must be valid")
	ErrInvalidRole  = errors.New("role must be 'admin' or 'superadmin'")
)

// Admin is a back-office operator account mirrored from the upstream service.
type Admin struct {
	ID        string
	Name      string
	Email     string
	Phone     string
	Role      string
	CreatedAt string
}

// Validate checks if the Admin has valid data.
// PRE: Admin struct is initialized
// POST: Returns error if validation fails, nil otherwise
func (a *Admin) Validate() error {
	if strings.TrimSpace(a.Name) == "" {
		return ErrEmptyName
	}
	if !strings.Contains(a.Email, "@") {
		return ErrInvalidEmail
	}
	if a.Role != RoleAdmin && a.Role != RoleSuperAdmin {
		return ErrInvalidRole
	}
	return nil
}
