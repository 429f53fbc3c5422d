package booking

import (
	"time"

	"github.com/google/uuid"
	"github.com/lendhub/service-rental/internal/domain"
)

// Booking is the aggregate root for one rental request. It references the
// item and the booker by id only; it owns neither lifecycle.
type Booking struct {
	id        uuid.UUID
	itemID    uuid.UUID
	bookerID  uuid.UUID
	start     time.Time
	end       time.Time
	status    BookingStatus
	createdAt time.Time
	updatedAt time.Time
}

// NewBooking creates a new booking in WAITING status. The end must be
// strictly after the start.
func NewBooking(bookerID, itemID uuid.UUID, start, end time.Time) (*Booking, error) {
	if bookerID == uuid.Nil {
		return nil, domain.NewValidationError("booker ID is required")
	}
	if itemID == uuid.Nil {
		return nil, domain.NewValidationError("item ID is required")
	}
	if !end.After(start) {
		return nil, domain.NewValidationError("booking end must be after start")
	}

	now := time.Now().UTC()
	return &Booking{
		id:        uuid.New(),
		itemID:    itemID,
		bookerID:  bookerID,
		start:     start.UTC(),
		end:       end.UTC(),
		status:    StatusWaiting,
		createdAt: now,
		updatedAt: now,
	}, nil
}

// Reconstruct rebuilds a Booking from persistence data (no validation).
func Reconstruct(
	id, itemID, bookerID uuid.UUID,
	start, end time.Time,
	status BookingStatus,
	createdAt, updatedAt time.Time,
) *Booking {
	return &Booking{
		id:        id,
		itemID:    itemID,
		bookerID:  bookerID,
		start:     start,
		end:       end,
		status:    status,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

// ID returns the booking's unique identifier.
func (b *Booking) ID() uuid.UUID { return b.id }

// ItemID returns the booked item's id.
func (b *Booking) ItemID() uuid.UUID { return b.itemID }

// BookerID returns the renting user's id.
func (b *Booking) BookerID() uuid.UUID { return b.bookerID }

// Start returns the rental start instant.
func (b *Booking) Start() time.Time { return b.start }

// End returns the rental end instant.
func (b *Booking) End() time.Time { return b.end }

// Status returns the current approval status.
func (b *Booking) Status() BookingStatus { return b.status }

// CreatedAt returns the creation timestamp.
func (b *Booking) CreatedAt() time.Time { return b.createdAt }

// UpdatedAt returns the last-updated timestamp.
func (b *Booking) UpdatedAt() time.Time { return b.updatedAt }

// Approve transitions the booking from WAITING to APPROVED.
func (b *Booking) Approve() error {
	return b.transition(StatusApproved)
}

// Reject transitions the booking from WAITING to REJECTED.
func (b *Booking) Reject() error {
	return b.transition(StatusRejected)
}

func (b *Booking) transition(target BookingStatus) error {
	if !b.status.CanTransitionTo(target) {
		return domain.NewInvalidStateError(string(b.status), string(target))
	}
	b.status = target
	b.updatedAt = time.Now().UTC()
	return nil
}

// IsCurrent reports whether the booking is actively in progress at the given
// instant. Both bounds are strict, so a booking starting or ending exactly at
// now is not current.
func (b *Booking) IsCurrent(now time.Time) bool {
	return b.start.Before(now) && b.end.After(now)
}

// IsPast reports whether the booking ended strictly before the given instant.
func (b *Booking) IsPast(now time.Time) bool {
	return b.end.Before(now)
}

// IsFuture reports whether the booking starts strictly after the given instant.
func (b *Booking) IsFuture(now time.Time) bool {
	return b.start.After(now)
}

// Matches reports whether the booking belongs to the given filter bucket
// evaluated at now. It is the in-memory equivalent of the store-level
// predicates used by the list queries.
func (b *Booking) Matches(f StateFilter, now time.Time) bool {
	switch f {
	case FilterAll:
		return true
	case FilterCurrent:
		return b.IsCurrent(now)
	case FilterPast:
		return b.IsPast(now)
	case FilterFuture:
		return b.IsFuture(now)
	case FilterWaiting:
		return b.status == StatusWaiting
	case FilterRejected:
		return b.status == StatusRejected
	default:
		return false
	}
}
