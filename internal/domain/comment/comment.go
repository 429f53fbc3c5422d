package comment

import (
	"time"

	"github.com/google/uuid"
	"github.com/lendhub/service-rental/internal/domain"
)

// Comment is feedback a renter leaves on an item after a completed rental.
// Eligibility is enforced by the booking engine, not here.
type Comment struct {
	id        uuid.UUID
	itemID    uuid.UUID
	authorID  uuid.UUID
	text      string
	createdAt time.Time
}

// NewComment creates a new comment with validated fields.
func NewComment(authorID, itemID uuid.UUID, text string, createdAt time.Time) (*Comment, error) {
	if authorID == uuid.Nil {
		return nil, domain.NewValidationError("author ID is required")
	}
	if itemID == uuid.Nil {
		return nil, domain.NewValidationError("item ID is required")
	}
	if text == "" {
		return nil, domain.NewValidationError("comment text is required")
	}

	return &Comment{
		id:        uuid.New(),
		itemID:    itemID,
		authorID:  authorID,
		text:      text,
		createdAt: createdAt.UTC(),
	}, nil
}

// Reconstruct rebuilds a Comment from persistence data (no validation).
func Reconstruct(id, itemID, authorID uuid.UUID, text string, createdAt time.Time) *Comment {
	return &Comment{
		id:        id,
		itemID:    itemID,
		authorID:  authorID,
		text:      text,
		createdAt: createdAt,
	}
}

// ID returns the comment's unique identifier.
func (c *Comment) ID() uuid.UUID { return c.id }

// ItemID returns the commented item's id.
func (c *Comment) ItemID() uuid.UUID { return c.itemID }

// AuthorID returns the commenting user's id.
func (c *Comment) AuthorID() uuid.UUID { return c.authorID }

// Text returns the comment body.
func (c *Comment) Text() string { return c.text }

// CreatedAt returns the creation timestamp.
func (c *Comment) CreatedAt() time.Time { return c.createdAt }
