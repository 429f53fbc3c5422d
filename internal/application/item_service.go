package application

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lendhub/service-rental/internal/clock"
	"github.com/lendhub/service-rental/internal/domain"
	commentDomain "github.com/lendhub/service-rental/internal/domain/comment"
	itemDomain "github.com/lendhub/service-rental/internal/domain/item"
	userDomain "github.com/lendhub/service-rental/internal/domain/user"
	"github.com/lendhub/service-rental/internal/events"
	"github.com/lendhub/service-rental/internal/metrics"
	"go.uber.org/zap"
)

// CreateItemRequest is the request DTO for listing a new item.
type CreateItemRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description" binding:"required"`
	Available   *bool  `json:"available" binding:"required"`
}

// UpdateItemRequest is the request DTO for patching an item listing.
type UpdateItemRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Available   *bool   `json:"available"`
}

// CreateCommentRequest is the request DTO for commenting on an item.
type CreateCommentRequest struct {
	Text string `json:"text" binding:"required"`
}

// ItemDTO is the API response representation of an item listing.
type ItemDTO struct {
	ID          uuid.UUID      `json:"id"`
	OwnerID     uuid.UUID      `json:"owner_id"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Available   bool           `json:"available"`
	LastBooking *BookingRefDTO `json:"last_booking,omitempty"`
	NextBooking *BookingRefDTO `json:"next_booking,omitempty"`
	Comments    []CommentDTO   `json:"comments,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// CommentDTO is the API response representation of an item comment.
type CommentDTO struct {
	ID         uuid.UUID `json:"id"`
	ItemID     uuid.UUID `json:"item_id"`
	AuthorID   uuid.UUID `json:"author_id"`
	AuthorName string    `json:"author_name"`
	Text       string    `json:"text"`
	CreatedAt  time.Time `json:"created_at"`
}

// ItemService implements item catalog use cases. Booking-derived views
// (last/next booking, comment eligibility) are delegated to the booking
// engine.
type ItemService struct {
	items    itemDomain.ItemRepository
	users    userDomain.UserRepository
	comments commentDomain.CommentRepository
	bookings *BookingService
	producer events.Publisher
	clock    clock.Clock
	logger   *zap.Logger
}

// NewItemService creates a new ItemService.
func NewItemService(
	items itemDomain.ItemRepository,
	users userDomain.UserRepository,
	comments commentDomain.CommentRepository,
	bookings *BookingService,
	producer events.Publisher,
	clk clock.Clock,
	logger *zap.Logger,
) *ItemService {
	return &ItemService{
		items:    items,
		users:    users,
		comments: comments,
		bookings: bookings,
		producer: producer,
		clock:    clk,
		logger:   logger,
	}
}

// CreateItem lists a new item for the given owner.
func (s *ItemService) CreateItem(ctx context.Context, ownerID uuid.UUID, req CreateItemRequest) (*ItemDTO, error) {
	if _, err := s.users.FindByID(ctx, ownerID); err != nil {
		return nil, err
	}

	available := true
	if req.Available != nil {
		available = *req.Available
	}
	it, err := itemDomain.NewItem(ownerID, req.Name, req.Description, available)
	if err != nil {
		return nil, err
	}

	if err := s.items.Save(ctx, it); err != nil {
		return nil, fmt.Errorf("failed to save item: %w", err)
	}

	result := toItemDTO(it)
	return &result, nil
}

// UpdateItem patches an item listing. Only the owner may update; anyone else
// gets not-found.
func (s *ItemService) UpdateItem(ctx context.Context, ownerID, itemID uuid.UUID, req UpdateItemRequest) (*ItemDTO, error) {
	it, err := s.items.FindByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if it.OwnerID() != ownerID {
		return nil, domain.NewNotFoundError("Item", itemID.String())
	}

	if err := it.ApplyUpdate(req.Name, req.Description, req.Available); err != nil {
		return nil, err
	}
	if err := s.items.Update(ctx, it); err != nil {
		return nil, err
	}

	result := toItemDTO(it)
	return &result, nil
}

// GetItem retrieves one item with its comments. The last/next booking views
// are visible to the owner only.
func (s *ItemService) GetItem(ctx context.Context, viewerID, itemID uuid.UUID) (*ItemDTO, error) {
	it, err := s.items.FindByID(ctx, itemID)
	if err != nil {
		return nil, err
	}

	dto := toItemDTO(it)
	if viewerID == it.OwnerID() {
		if err := s.attachBookingViews(ctx, &dto); err != nil {
			return nil, err
		}
	}

	comments, err := s.commentDTOsForItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	dto.Comments = comments

	return &dto, nil
}

// ListByOwner retrieves the owner's items, each with its last/next booking
// views and comments.
func (s *ItemService) ListByOwner(ctx context.Context, ownerID uuid.UUID, offset, limit int) (*domain.PaginatedResult[ItemDTO], error) {
	if _, err := s.users.FindByID(ctx, ownerID); err != nil {
		return nil, err
	}

	items, total, err := s.items.FindByOwnerID(ctx, ownerID, offset, limit)
	if err != nil {
		return nil, err
	}

	dtos := make([]ItemDTO, len(items))
	for i, it := range items {
		dto := toItemDTO(it)
		if err := s.attachBookingViews(ctx, &dto); err != nil {
			return nil, err
		}
		comments, err := s.commentDTOsForItem(ctx, it.ID())
		if err != nil {
			return nil, err
		}
		dto.Comments = comments
		dtos[i] = dto
	}

	result := domain.NewPaginatedResult(dtos, total, offset, limit)
	return &result, nil
}

// Search retrieves available items matching the given text. A blank query
// yields an empty result.
func (s *ItemService) Search(ctx context.Context, text string, offset, limit int) (*domain.PaginatedResult[ItemDTO], error) {
	items, total, err := s.items.Search(ctx, text, offset, limit)
	if err != nil {
		return nil, err
	}

	dtos := make([]ItemDTO, len(items))
	for i, it := range items {
		dtos[i] = toItemDTO(it)
	}

	result := domain.NewPaginatedResult(dtos, total, offset, limit)
	return &result, nil
}

// AddComment creates a comment on an item. The author must have a completed,
// non-rejected booking for the item; the booking engine is the authority on
// that.
func (s *ItemService) AddComment(ctx context.Context, authorID, itemID uuid.UUID, req CreateCommentRequest) (*CommentDTO, error) {
	author, err := s.users.FindByID(ctx, authorID)
	if err != nil {
		return nil, err
	}
	if _, err := s.items.FindByID(ctx, itemID); err != nil {
		return nil, err
	}

	now := s.clock.Now()
	if _, err := s.bookings.CheckCommentEligibility(ctx, itemID, authorID, now); err != nil {
		return nil, err
	}

	cm, err := commentDomain.NewComment(authorID, itemID, req.Text, now)
	if err != nil {
		return nil, err
	}
	if err := s.comments.Save(ctx, cm); err != nil {
		return nil, fmt.Errorf("failed to save comment: %w", err)
	}

	metrics.RecordComment()
	s.publishCommentCreated(ctx, cm)

	return &CommentDTO{
		ID:         cm.ID(),
		ItemID:     cm.ItemID(),
		AuthorID:   cm.AuthorID(),
		AuthorName: author.Name(),
		Text:       cm.Text(),
		CreatedAt:  cm.CreatedAt(),
	}, nil
}

// --- Helpers ---

func (s *ItemService) attachBookingViews(ctx context.Context, dto *ItemDTO) error {
	last, err := s.bookings.LastBookingForItem(ctx, dto.ID)
	if err != nil {
		return err
	}
	next, err := s.bookings.NextBookingForItem(ctx, dto.ID)
	if err != nil {
		return err
	}
	dto.LastBooking = last
	dto.NextBooking = next
	return nil
}

func (s *ItemService) commentDTOsForItem(ctx context.Context, itemID uuid.UUID) ([]CommentDTO, error) {
	comments, err := s.comments.FindByItemID(ctx, itemID)
	if err != nil {
		return nil, err
	}

	names := make(map[uuid.UUID]string)
	dtos := make([]CommentDTO, len(comments))
	for i, cm := range comments {
		name, ok := names[cm.AuthorID()]
		if !ok {
			author, err := s.users.FindByID(ctx, cm.AuthorID())
			if err == nil {
				name = author.Name()
			}
			names[cm.AuthorID()] = name
		}
		dtos[i] = CommentDTO{
			ID:         cm.ID(),
			ItemID:     cm.ItemID(),
			AuthorID:   cm.AuthorID(),
			AuthorName: name,
			Text:       cm.Text(),
			CreatedAt:  cm.CreatedAt(),
		}
	}
	return dtos, nil
}

func (s *ItemService) publishCommentCreated(ctx context.Context, cm *commentDomain.Comment) {
	cloudEvent, err := events.NewCloudEvent(eventSource, events.CommentCreated, events.CommentCreatedEvent{
		CommentID:  cm.ID(),
		ItemID:     cm.ItemID(),
		AuthorID:   cm.AuthorID(),
		OccurredAt: s.clock.Now(),
	})
	if err != nil {
		s.logger.Error("failed to create cloud event", zap.Error(err))
		return
	}
	if err := s.producer.Publish(ctx, events.TopicRentalEvents, cm.ItemID().String(), cloudEvent); err != nil {
		s.logger.Error("failed to publish comment event", zap.Error(err))
	}
}

func toItemDTO(it *itemDomain.Item) ItemDTO {
	return ItemDTO{
		ID:          it.ID(),
		OwnerID:     it.OwnerID(),
		Name:        it.Name(),
		Description: it.Description(),
		Available:   it.Available(),
		CreatedAt:   it.CreatedAt(),
		UpdatedAt:   it.UpdatedAt(),
	}
}
