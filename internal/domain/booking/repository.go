package booking

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// BookingRepository defines the persistence contract for booking aggregates.
// Every temporal query takes "now" explicitly; repositories never read the
// wall clock for classification.
type BookingRepository interface {
	// Save persists a new booking.
	Save(ctx context.Context, booking *Booking) error

	// FindByID retrieves a booking by its unique identifier.
	FindByID(ctx context.Context, id uuid.UUID) (*Booking, error)

	// UpdateStatus atomically moves a booking from one status to another.
	// It fails with a ConflictError when the booking is no longer in the
	// expected source status.
	UpdateStatus(ctx context.Context, id uuid.UUID, from, to BookingStatus) error

	// FindByBooker retrieves the booker's bookings in the given filter
	// bucket, sorted by end descending, with offset/limit applied after the
	// sort.
	FindByBooker(ctx context.Context, bookerID uuid.UUID, filter StateFilter, now time.Time, offset, limit int) ([]*Booking, int64, error)

	// FindByOwner retrieves bookings for all items owned by the given user,
	// in the given filter bucket, sorted by end descending.
	FindByOwner(ctx context.Context, ownerID uuid.UUID, filter StateFilter, now time.Time, offset, limit int) ([]*Booking, int64, error)

	// LastForItem returns the item's non-rejected booking with the latest
	// end strictly before now, or nil when there is none.
	LastForItem(ctx context.Context, itemID uuid.UUID, now time.Time) (*Booking, error)

	// NextForItem returns the item's non-rejected booking with the earliest
	// start strictly after now, or nil when there is none.
	NextForItem(ctx context.Context, itemID uuid.UUID, now time.Time) (*Booking, error)

	// FindCompleted returns a non-rejected booking by the given user for the
	// given item that ended strictly before asOf, or nil when there is none.
	FindCompleted(ctx context.Context, itemID, bookerID uuid.UUID, asOf time.Time) (*Booking, error)
}
