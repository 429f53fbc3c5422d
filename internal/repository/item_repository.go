package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lendhub/service-rental/internal/domain"
	itemDomain "github.com/lendhub/service-rental/internal/domain/item"
	"gorm.io/gorm"
)

// ItemModel is the GORM model for the items table.
type ItemModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	OwnerID     uuid.UUID `gorm:"type:uuid;index;not null"`
	Name        string    `gorm:"not null;size:255"`
	Description string    `gorm:"not null;size:2000"`
	Available   bool      `gorm:"not null"`
	CreatedAt   time.Time `gorm:"not null"`
	UpdatedAt   time.Time `gorm:"not null"`
}

// TableName returns the table name for the GORM model.
func (ItemModel) TableName() string {
	return "items"
}

// GormItemRepository is the GORM-based implementation of ItemRepository.
type GormItemRepository struct {
	db *gorm.DB
}

// NewGormItemRepository creates a new GormItemRepository.
func NewGormItemRepository(db *gorm.DB) *GormItemRepository {
	return &GormItemRepository{db: db}
}

// Save persists a new item.
func (r *GormItemRepository) Save(ctx context.Context, it *itemDomain.Item) error {
	if err := r.db.WithContext(ctx).Create(toItemModel(it)).Error; err != nil {
		return fmt.Errorf("failed to save item: %w", err)
	}
	return nil
}

// FindByID retrieves an item by its unique identifier.
func (r *GormItemRepository) FindByID(ctx context.Context, id uuid.UUID) (*itemDomain.Item, error) {
	var model ItemModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("Item", id.String())
		}
		return nil, fmt.Errorf("failed to find item by ID: %w", err)
	}
	return toDomainItem(&model), nil
}

// FindByOwnerID retrieves the owner's items with pagination, oldest first.
func (r *GormItemRepository) FindByOwnerID(ctx context.Context, ownerID uuid.UUID, offset, limit int) ([]*itemDomain.Item, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&ItemModel{}).Where("owner_id = ?", ownerID).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count owner items: %w", err)
	}

	var models []ItemModel
	if err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at ASC").
		Offset(offset).
		Limit(limit).
		Find(&models).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to find owner items: %w", err)
	}

	return toDomainItems(models), total, nil
}

// Search retrieves available items whose name or description contains the
// given text, case-insensitively. A blank query matches nothing.
func (r *GormItemRepository) Search(ctx context.Context, text string, offset, limit int) ([]*itemDomain.Item, int64, error) {
	if text == "" {
		return []*itemDomain.Item{}, 0, nil
	}

	pattern := "%" + text + "%"
	base := func() *gorm.DB {
		return r.db.WithContext(ctx).Model(&ItemModel{}).
			Where("available = ?", true).
			Where("LOWER(name) LIKE LOWER(?) OR LOWER(description) LIKE LOWER(?)", pattern, pattern)
	}

	var total int64
	if err := base().Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count search results: %w", err)
	}

	var models []ItemModel
	if err := base().
		Order("created_at ASC").
		Offset(offset).
		Limit(limit).
		Find(&models).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to search items: %w", err)
	}

	return toDomainItems(models), total, nil
}

// Update persists changes to an existing item.
func (r *GormItemRepository) Update(ctx context.Context, it *itemDomain.Item) error {
	model := toItemModel(it)
	result := r.db.WithContext(ctx).
		Model(&ItemModel{}).
		Where("id = ?", model.ID).
		Updates(map[string]interface{}{
			"name":        model.Name,
			"description": model.Description,
			"available":   model.Available,
			"updated_at":  model.UpdatedAt,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update item: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewNotFoundError("Item", model.ID.String())
	}
	return nil
}

// --- Conversion helpers ---

func toItemModel(it *itemDomain.Item) *ItemModel {
	return &ItemModel{
		ID:          it.ID(),
		OwnerID:     it.OwnerID(),
		Name:        it.Name(),
		Description: it.Description(),
		Available:   it.Available(),
		CreatedAt:   it.CreatedAt(),
		UpdatedAt:   it.UpdatedAt(),
	}
}

func toDomainItem(m *ItemModel) *itemDomain.Item {
	return itemDomain.Reconstruct(m.ID, m.OwnerID, m.Name, m.Description, m.Available, m.CreatedAt, m.UpdatedAt)
}

func toDomainItems(models []ItemModel) []*itemDomain.Item {
	items := make([]*itemDomain.Item, len(models))
	for i, m := range models {
		items[i] = toDomainItem(&m)
	}
	return items
}
