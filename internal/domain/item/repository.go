package item

import (
	"context"

	"github.com/google/uuid"
)

// ItemRepository defines persistence operations for item listings.
type ItemRepository interface {
	Save(ctx context.Context, item *Item) error
	FindByID(ctx context.Context, id uuid.UUID) (*Item, error)
	FindByOwnerID(ctx context.Context, ownerID uuid.UUID, offset, limit int) ([]*Item, int64, error)
	Search(ctx context.Context, text string, offset, limit int) ([]*Item, int64, error)
	Update(ctx context.Context, item *Item) error
}
