package user

import (
	"errors"
	"strings"
)

// Max length constants for user-editable fields.
const (
	MaxNameLength  = 100
	MaxEmailLength = 254
)

// MinPasswordLength is enforced on registration forms before any request is
// made upstream. Password storage and verification are handled entirely by
// the upstream service.
const MinPasswordLength = 8

// Domain errors
var (
	ErrEmptyName        = errors.New("name cannot be empty")
	ErrInvalidEmail     = errors.New("email must be valid")
	ErrPasswordTooShort = errors.New("password must be at least 8 characters")
	ErrDuplicateEmail   = errors.New("a user with this email already exists")
)

// User is a customer account mirrored from the upstream service.
type User struct {
	ID        string
	Name      string
	Email     string
	Phone     string
	CreatedAt string
}

// Validate checks if the User has valid data.
// PRE: User struct is initialized
// POST: Returns error if validation fails, nil otherwise
func (u *User) Validate() error {
	if strings.TrimSpace(u.Name) == "" {
		return ErrEmptyName
	}
	if len(u.Name) > MaxNameLength {
		return errors.New("name cannot exceed 100 characters")
	}
	if !ValidEmail(u.Email) {
		return ErrInvalidEmail
	}
	return nil
}

// ValidEmail reports whether an address passes the form-level email check.
func ValidEmail(email string) bool {
	email = strings.TrimSpace(email)
	if email == "" || len(email) > MaxEmailLength {
		return false
	}
	at := strings.Index(email, "@")
	return at > 0 && at < len(email)-1
}

// ValidatePassword checks a new password against the form-level policy.
// POST: Returns ErrPasswordTooShort for passwords under the minimum length
func ValidatePassword(plaintext string) error {
	if len(plaintext) < MinPasswordLength {
		return ErrPasswordTooShort
	}
	return nil
}

// CheckUnique reports ErrDuplicateEmail when the email is already present in
// an already-loaded collection. This is the cross-field uniqueness check run
// client-side before submission.
func CheckUnique(email string, loaded []User) error {
	target := strings.ToLower(strings.TrimSpace(email))
	for _, u := range loaded {
		if strings.ToLower(u.Email) == target {
			return ErrDuplicateEmail
		}
	}
	return nil
}
