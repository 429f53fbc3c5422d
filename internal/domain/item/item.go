package item

import (
	"time"

	"github.com/google/uuid"
	"github.com/lendhub/service-rental/internal/domain"
)

// Item is the aggregate root for a listed rental item.
type Item struct {
	id          uuid.UUID
	ownerID     uuid.UUID
	name        string
	description string
	available   bool
	createdAt   time.Time
	updatedAt   time.Time
}

// NewItem creates a new item listing with validated fields.
func NewItem(ownerID uuid.UUID, name, description string, available bool) (*Item, error) {
	if ownerID == uuid.Nil {
		return nil, domain.NewValidationError("owner ID is required")
	}
	if name == "" {
		return nil, domain.NewValidationError("item name is required")
	}
	if description == "" {
		return nil, domain.NewValidationError("item description is required")
	}

	now := time.Now().UTC()
	return &Item{
		id:          uuid.New(),
		ownerID:     ownerID,
		name:        name,
		description: description,
		available:   available,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

// Reconstruct rebuilds an Item from persistence data (no validation).
func Reconstruct(
	id, ownerID uuid.UUID,
	name, description string,
	available bool,
	createdAt, updatedAt time.Time,
) *Item {
	return &Item{
		id:          id,
		ownerID:     ownerID,
		name:        name,
		description: description,
		available:   available,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}
}

// ID returns the item's unique identifier.
func (i *Item) ID() uuid.UUID { return i.id }

// OwnerID returns the owning user's id.
func (i *Item) OwnerID() uuid.UUID { return i.ownerID }

// Name returns the item name.
func (i *Item) Name() string { return i.name }

// Description returns the item description.
func (i *Item) Description() string { return i.description }

// Available reports whether the item can currently be booked.
func (i *Item) Available() bool { return i.available }

// CreatedAt returns the creation timestamp.
func (i *Item) CreatedAt() time.Time { return i.createdAt }

// UpdatedAt returns the last-updated timestamp.
func (i *Item) UpdatedAt() time.Time { return i.updatedAt }

// ApplyUpdate patches the mutable fields. Nil pointers leave the current
// value untouched; provided name/description must be non-empty.
func (i *Item) ApplyUpdate(name, description *string, available *bool) error {
	if name != nil {
		if *name == "" {
			return domain.NewValidationError("item name cannot be blank")
		}
		i.name = *name
	}
	if description != nil {
		if *description == "" {
			return domain.NewValidationError("item description cannot be blank")
		}
		i.description = *description
	}
	if available != nil {
		i.available = *available
	}
	i.updatedAt = time.Now().UTC()
	return nil
}
