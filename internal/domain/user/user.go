package user

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lendhub/service-rental/internal/domain"
)

// User is the aggregate root for a registered user.
type User struct {
	id        uuid.UUID
	name      string
	email     string
	createdAt time.Time
	updatedAt time.Time
}

// NewUser creates a new user with validated fields.
func NewUser(name, email string) (*User, error) {
	if name == "" {
		return nil, domain.NewValidationError("user name is required")
	}
	if !strings.Contains(email, "@") {
		return nil, domain.NewValidationError("a valid email is required")
	}

	now := time.Now().UTC()
	return &User{
		id:        uuid.New(),
		name:      name,
		email:     email,
		createdAt: now,
		updatedAt: now,
	}, nil
}

// Reconstruct rebuilds a User from persistence data (no validation).
func Reconstruct(id uuid.UUID, name, email string, createdAt, updatedAt time.Time) *User {
	return &User{
		id:        id,
		name:      name,
		email:     email,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

// ID returns the user's unique identifier.
func (u *User) ID() uuid.UUID { return u.id }

// Name returns the user's display name.
func (u *User) Name() string { return u.name }

// Email returns the user's email address.
func (u *User) Email() string { return u.email }

// CreatedAt returns the creation timestamp.
func (u *User) CreatedAt() time.Time { return u.createdAt }

// UpdatedAt returns the last-updated timestamp.
func (u *User) UpdatedAt() time.Time { return u.updatedAt }

// ApplyUpdate patches the mutable fields. Nil pointers leave the current
// value untouched.
func (u *User) ApplyUpdate(name, email *string) error {
	if name != nil {
		if *name == "" {
			return domain.NewValidationError("user name cannot be blank")
		}
		u.name = *name
	}
	if email != nil {
		if !strings.Contains(*email, "@") {
			return domain.NewValidationError("a valid email is required")
		}
		u.email = *email
	}
	u.updatedAt = time.Now().UTC()
	return nil
}
