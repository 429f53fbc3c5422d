package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lendhub/service-rental/internal/domain"
	bookingDomain "github.com/lendhub/service-rental/internal/domain/booking"
	"gorm.io/gorm"
)

// BookingModel is the GORM model for the bookings table.
type BookingModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	ItemID    uuid.UUID `gorm:"type:uuid;index;not null"`
	BookerID  uuid.UUID `gorm:"type:uuid;index;not null"`
	StartAt   time.Time `gorm:"not null;index"`
	EndAt     time.Time `gorm:"not null;index"`
	Status    string    `gorm:"not null;size:20;index"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for the GORM model.
func (BookingModel) TableName() string {
	return "bookings"
}

// GormBookingRepository is the GORM-based implementation of BookingRepository.
type GormBookingRepository struct {
	db *gorm.DB
}

// NewGormBookingRepository creates a new GormBookingRepository.
func NewGormBookingRepository(db *gorm.DB) *GormBookingRepository {
	return &GormBookingRepository{db: db}
}

// Save persists a new booking.
func (r *GormBookingRepository) Save(ctx context.Context, bk *bookingDomain.Booking) error {
	if err := r.db.WithContext(ctx).Create(toBookingModel(bk)).Error; err != nil {
		return fmt.Errorf("failed to save booking: %w", err)
	}
	return nil
}

// FindByID retrieves a booking by its unique identifier.
func (r *GormBookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*bookingDomain.Booking, error) {
	var model BookingModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("Booking", id.String())
		}
		return nil, fmt.Errorf("failed to find booking by ID: %w", err)
	}
	return toDomainBooking(&model)
}

// UpdateStatus atomically moves a booking from one status to another. The
// conditional WHERE clause closes the check-then-write race between two
// concurrent approval calls: only one of them can match the source status.
func (r *GormBookingRepository) UpdateStatus(ctx context.Context, id uuid.UUID, from, to bookingDomain.BookingStatus) error {
	result := r.db.WithContext(ctx).
		Model(&BookingModel{}).
		Where("id = ? AND status = ?", id, string(from)).
		Updates(map[string]interface{}{
			"status":     string(to),
			"updated_at": time.Now().UTC(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update booking status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewConflictError("booking is no longer " + string(from))
	}
	return nil
}

// FindByBooker retrieves the booker's bookings in the given filter bucket.
func (r *GormBookingRepository) FindByBooker(ctx context.Context, bookerID uuid.UUID, filter bookingDomain.StateFilter, now time.Time, offset, limit int) ([]*bookingDomain.Booking, int64, error) {
	base := func() *gorm.DB {
		return applyStateFilter(
			r.db.WithContext(ctx).Model(&BookingModel{}).Where("booker_id = ?", bookerID),
			filter, now,
		)
	}
	return r.queryPage(base, offset, limit)
}

// FindByOwner retrieves bookings for all items owned by the given user. An
// owner with zero items simply matches nothing.
func (r *GormBookingRepository) FindByOwner(ctx context.Context, ownerID uuid.UUID, filter bookingDomain.StateFilter, now time.Time, offset, limit int) ([]*bookingDomain.Booking, int64, error) {
	base := func() *gorm.DB {
		return applyStateFilter(
			r.db.WithContext(ctx).Model(&BookingModel{}).
				Joins("JOIN items ON items.id = bookings.item_id").
				Where("items.owner_id = ?", ownerID),
			filter, now,
		)
	}
	return r.queryPage(base, offset, limit)
}

// LastForItem returns the item's non-rejected booking with the latest end
// strictly before now, or nil when there is none.
func (r *GormBookingRepository) LastForItem(ctx context.Context, itemID uuid.UUID, now time.Time) (*bookingDomain.Booking, error) {
	var model BookingModel
	err := r.db.WithContext(ctx).
		Where("item_id = ? AND end_at < ? AND status <> ?", itemID, now, string(bookingDomain.StatusRejected)).
		Order("end_at DESC").
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find last booking for item: %w", err)
	}
	return toDomainBooking(&model)
}

// NextForItem returns the item's non-rejected booking with the earliest start
// strictly after now, or nil when there is none.
func (r *GormBookingRepository) NextForItem(ctx context.Context, itemID uuid.UUID, now time.Time) (*bookingDomain.Booking, error) {
	var model BookingModel
	err := r.db.WithContext(ctx).
		Where("item_id = ? AND start_at > ? AND status <> ?", itemID, now, string(bookingDomain.StatusRejected)).
		Order("start_at ASC").
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find next booking for item: %w", err)
	}
	return toDomainBooking(&model)
}

// FindCompleted returns a non-rejected booking by the given user for the
// given item that ended strictly before asOf, or nil when there is none.
func (r *GormBookingRepository) FindCompleted(ctx context.Context, itemID, bookerID uuid.UUID, asOf time.Time) (*bookingDomain.Booking, error) {
	var model BookingModel
	err := r.db.WithContext(ctx).
		Where("item_id = ? AND booker_id = ? AND end_at < ? AND status <> ?",
			itemID, bookerID, asOf, string(bookingDomain.StatusRejected)).
		Order("end_at DESC").
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find completed booking: %w", err)
	}
	return toDomainBooking(&model)
}

// queryPage counts the filtered set, then fetches one window of it sorted by
// end descending.
func (r *GormBookingRepository) queryPage(base func() *gorm.DB, offset, limit int) ([]*bookingDomain.Booking, int64, error) {
	var total int64
	if err := base().Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count bookings: %w", err)
	}

	var models []BookingModel
	if err := base().
		Order("end_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&models).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to find bookings: %w", err)
	}

	bookings := make([]*bookingDomain.Booking, len(models))
	for i, m := range models {
		bk, err := toDomainBooking(&m)
		if err != nil {
			return nil, 0, err
		}
		bookings[i] = bk
	}
	return bookings, total, nil
}

// applyStateFilter narrows a booking query to one filter bucket. CURRENT uses
// strict bounds on both sides.
func applyStateFilter(q *gorm.DB, filter bookingDomain.StateFilter, now time.Time) *gorm.DB {
	switch filter {
	case bookingDomain.FilterCurrent:
		return q.Where("start_at < ? AND end_at > ?", now, now)
	case bookingDomain.FilterPast:
		return q.Where("end_at < ?", now)
	case bookingDomain.FilterFuture:
		return q.Where("start_at > ?", now)
	case bookingDomain.FilterWaiting:
		return q.Where("status = ?", string(bookingDomain.StatusWaiting))
	case bookingDomain.FilterRejected:
		return q.Where("status = ?", string(bookingDomain.StatusRejected))
	default:
		return q
	}
}

// --- Conversion helpers ---

func toBookingModel(bk *bookingDomain.Booking) *BookingModel {
	return &BookingModel{
		ID:        bk.ID(),
		ItemID:    bk.ItemID(),
		BookerID:  bk.BookerID(),
		StartAt:   bk.Start(),
		EndAt:     bk.End(),
		Status:    string(bk.Status()),
		CreatedAt: bk.CreatedAt(),
		UpdatedAt: bk.UpdatedAt(),
	}
}

func toDomainBooking(m *BookingModel) (*bookingDomain.Booking, error) {
	status, err := bookingDomain.ParseBookingStatus(m.Status)
	if err != nil {
		return nil, err
	}
	return bookingDomain.Reconstruct(
		m.ID,
		m.ItemID,
		m.BookerID,
		m.StartAt,
		m.EndAt,
		status,
		m.CreatedAt,
		m.UpdatedAt,
	), nil
}
