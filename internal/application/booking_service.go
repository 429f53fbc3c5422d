package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lendhub/service-rental/internal/clock"
	"github.com/lendhub/service-rental/internal/domain"
	bookingDomain "github.com/lendhub/service-rental/internal/domain/booking"
	itemDomain "github.com/lendhub/service-rental/internal/domain/item"
	userDomain "github.com/lendhub/service-rental/internal/domain/user"
	"github.com/lendhub/service-rental/internal/events"
	"github.com/lendhub/service-rental/internal/metrics"
	"go.uber.org/zap"
)

const eventSource = "service-rental"

// CreateBookingRequest holds the data needed to place a booking request.
type CreateBookingRequest struct {
	ItemID uuid.UUID `json:"item_id" binding:"required"`
	Start  time.Time `json:"start" binding:"required"`
	End    time.Time `json:"end" binding:"required"`
}

// BookingDTO is the API response representation of a booking.
type BookingDTO struct {
	ID        uuid.UUID `json:"id"`
	ItemID    uuid.UUID `json:"item_id"`
	BookerID  uuid.UUID `json:"booker_id"`
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BookingRefDTO is the short booking view attached to item details.
type BookingRefDTO struct {
	ID       uuid.UUID `json:"id"`
	BookerID uuid.UUID `json:"booker_id"`
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
}

// BookingService implements the booking lifecycle: creation rules, the
// approval state machine, temporal list queries, and the derived per-item
// lookups the item views and the comment gate depend on.
type BookingService struct {
	bookings bookingDomain.BookingRepository
	items    itemDomain.ItemRepository
	users    userDomain.UserRepository
	producer events.Publisher
	clock    clock.Clock
	logger   *zap.Logger
}

// NewBookingService creates a new BookingService.
func NewBookingService(
	bookings bookingDomain.BookingRepository,
	items itemDomain.ItemRepository,
	users userDomain.UserRepository,
	producer events.Publisher,
	clk clock.Clock,
	logger *zap.Logger,
) *BookingService {
	return &BookingService{
		bookings: bookings,
		items:    items,
		users:    users,
		producer: producer,
		clock:    clk,
		logger:   logger,
	}
}

// CreateBooking places a new booking request for the given renter. The item
// must exist, be available, and not belong to the renter; the renter must
// exist. The booking is persisted in WAITING status. Items are never marked
// unavailable by pending bookings.
func (s *BookingService) CreateBooking(ctx context.Context, renterID uuid.UUID, req CreateBookingRequest) (*BookingDTO, error) {
	if !req.End.After(req.Start) {
		return nil, domain.NewValidationError("booking end must be after start")
	}

	it, err := s.items.FindByID(ctx, req.ItemID)
	if err != nil {
		return nil, err
	}
	if it.OwnerID() == renterID {
		return nil, domain.NewSelfRentalError(it.ID().String(), renterID.String())
	}
	if !it.Available() {
		return nil, domain.NewValidationError("item is not available for booking")
	}

	if _, err := s.users.FindByID(ctx, renterID); err != nil {
		return nil, err
	}

	bk, err := bookingDomain.NewBooking(renterID, req.ItemID, req.Start, req.End)
	if err != nil {
		return nil, err
	}

	if err := s.bookings.Save(ctx, bk); err != nil {
		return nil, fmt.Errorf("failed to save booking: %w", err)
	}

	metrics.RecordBooking(string(bk.Status()))
	s.publishEvent(ctx, events.BookingRequested, bk.ID().String(), events.BookingRequestedEvent{
		BookingID:  bk.ID(),
		ItemID:     bk.ItemID(),
		BookerID:   bk.BookerID(),
		Start:      bk.Start(),
		End:        bk.End(),
		OccurredAt: s.clock.Now(),
	})

	result := toBookingDTO(bk)
	return &result, nil
}

// SetApproval decides a waiting booking. Only the owner of the booked item
// may decide, and a booking can be decided exactly once. The status write is
// conditional at the store layer, so a racing second decision loses cleanly.
func (s *BookingService) SetApproval(ctx context.Context, ownerID, bookingID uuid.UUID, approve bool) (*BookingDTO, error) {
	bk, err := s.bookings.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	it, err := s.items.FindByID(ctx, bk.ItemID())
	if err != nil {
		return nil, err
	}
	if it.OwnerID() != ownerID {
		// Non-owners learn nothing beyond "no such booking".
		return nil, domain.NewNotFoundError("Booking", bookingID.String())
	}

	if approve {
		err = bk.Approve()
	} else {
		err = bk.Reject()
	}
	if err != nil {
		return nil, err
	}

	if err := s.bookings.UpdateStatus(ctx, bk.ID(), bookingDomain.StatusWaiting, bk.Status()); err != nil {
		var conflict *domain.ConflictError
		if errors.As(err, &conflict) {
			return nil, domain.NewValidationError("booking has already been decided")
		}
		return nil, err
	}

	metrics.RecordBooking(string(bk.Status()))
	eventType := events.BookingRejected
	if approve {
		eventType = events.BookingApproved
	}
	s.publishEvent(ctx, eventType, bk.ID().String(), events.BookingDecidedEvent{
		BookingID:  bk.ID(),
		ItemID:     bk.ItemID(),
		BookerID:   bk.BookerID(),
		OwnerID:    ownerID,
		Status:     string(bk.Status()),
		OccurredAt: s.clock.Now(),
	})

	result := toBookingDTO(bk)
	return &result, nil
}

// GetBooking retrieves a single booking. Only the booker and the item's
// owner may see it; anyone else gets not-found.
func (s *BookingService) GetBooking(ctx context.Context, viewerID, bookingID uuid.UUID) (*BookingDTO, error) {
	bk, err := s.bookings.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if viewerID != bk.BookerID() {
		it, err := s.items.FindByID(ctx, bk.ItemID())
		if err != nil {
			return nil, err
		}
		if it.OwnerID() != viewerID {
			return nil, domain.NewNotFoundError("Booking", bookingID.String())
		}
	}

	result := toBookingDTO(bk)
	return &result, nil
}

// ListForBooker retrieves the booker's bookings in the given state bucket,
// classified against now, sorted by end descending.
func (s *BookingService) ListForBooker(ctx context.Context, bookerID uuid.UUID, state string, offset, limit int) (*domain.PaginatedResult[BookingDTO], error) {
	filter, err := bookingDomain.ParseStateFilter(state)
	if err != nil {
		return nil, err
	}
	if _, err := s.users.FindByID(ctx, bookerID); err != nil {
		return nil, err
	}

	bookings, total, err := s.bookings.FindByBooker(ctx, bookerID, filter, s.clock.Now(), offset, limit)
	if err != nil {
		return nil, err
	}

	result := domain.NewPaginatedResult(toBookingDTOs(bookings), total, offset, limit)
	return &result, nil
}

// ListForOwner retrieves bookings for all items the owner has listed. An
// owner with zero items gets an empty list; an unknown owner gets not-found.
func (s *BookingService) ListForOwner(ctx context.Context, ownerID uuid.UUID, state string, offset, limit int) (*domain.PaginatedResult[BookingDTO], error) {
	filter, err := bookingDomain.ParseStateFilter(state)
	if err != nil {
		return nil, err
	}
	if _, err := s.users.FindByID(ctx, ownerID); err != nil {
		return nil, err
	}

	bookings, total, err := s.bookings.FindByOwner(ctx, ownerID, filter, s.clock.Now(), offset, limit)
	if err != nil {
		return nil, err
	}

	result := domain.NewPaginatedResult(toBookingDTOs(bookings), total, offset, limit)
	return &result, nil
}

// LastBookingForItem returns the item's most recently ended non-rejected
// booking, or nil when it has none.
func (s *BookingService) LastBookingForItem(ctx context.Context, itemID uuid.UUID) (*BookingRefDTO, error) {
	bk, err := s.bookings.LastForItem(ctx, itemID, s.clock.Now())
	if err != nil {
		return nil, err
	}
	return toBookingRefDTO(bk), nil
}

// NextBookingForItem returns the item's soonest upcoming non-rejected
// booking, or nil when it has none.
func (s *BookingService) NextBookingForItem(ctx context.Context, itemID uuid.UUID) (*BookingRefDTO, error) {
	bk, err := s.bookings.NextForItem(ctx, itemID, s.clock.Now())
	if err != nil {
		return nil, err
	}
	return toBookingRefDTO(bk), nil
}

// CheckCommentEligibility returns a booking proving the user completed a
// rental of the item before asOf. Rejected bookings never qualify.
func (s *BookingService) CheckCommentEligibility(ctx context.Context, itemID, userID uuid.UUID, asOf time.Time) (*BookingDTO, error) {
	bk, err := s.bookings.FindCompleted(ctx, itemID, userID, asOf)
	if err != nil {
		return nil, err
	}
	if bk == nil {
		return nil, domain.NewValidationError("no eligible booking for this item")
	}
	result := toBookingDTO(bk)
	return &result, nil
}

// --- Helpers ---

func (s *BookingService) publishEvent(ctx context.Context, eventType, key string, data interface{}) {
	cloudEvent, err := events.NewCloudEvent(eventSource, eventType, data)
	if err != nil {
		s.logger.Error("failed to create cloud event",
			zap.String("event_type", eventType),
			zap.Error(err),
		)
		return
	}

	if err := s.producer.Publish(ctx, events.TopicRentalEvents, key, cloudEvent); err != nil {
		s.logger.Error("failed to publish event",
			zap.String("event_type", eventType),
			zap.Error(err),
		)
	}
}

func toBookingDTO(bk *bookingDomain.Booking) BookingDTO {
	return BookingDTO{
		ID:        bk.ID(),
		ItemID:    bk.ItemID(),
		BookerID:  bk.BookerID(),
		Start:     bk.Start(),
		End:       bk.End(),
		Status:    string(bk.Status()),
		CreatedAt: bk.CreatedAt(),
		UpdatedAt: bk.UpdatedAt(),
	}
}

func toBookingDTOs(bookings []*bookingDomain.Booking) []BookingDTO {
	dtos := make([]BookingDTO, len(bookings))
	for i, bk := range bookings {
		dtos[i] = toBookingDTO(bk)
	}
	return dtos
}

func toBookingRefDTO(bk *bookingDomain.Booking) *BookingRefDTO {
	if bk == nil {
		return nil
	}
	return &BookingRefDTO{
		ID:       bk.ID(),
		BookerID: bk.BookerID(),
		Start:    bk.Start(),
		End:      bk.End(),
	}
}
