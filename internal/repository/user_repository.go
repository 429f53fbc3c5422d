package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lendhub/service-rental/internal/domain"
	userDomain "github.com/lendhub/service-rental/internal/domain/user"
	"gorm.io/gorm"
)

// UserModel is the GORM model for the users table.
type UserModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name      string    `gorm:"not null;size:255"`
	Email     string    `gorm:"uniqueIndex;not null;size:255"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for the GORM model.
func (UserModel) TableName() string {
	return "users"
}

// GormUserRepository is the GORM-based implementation of UserRepository.
type GormUserRepository struct {
	db *gorm.DB
}

// NewGormUserRepository creates a new GormUserRepository.
func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

// Save persists a new user.
func (r *GormUserRepository) Save(ctx context.Context, u *userDomain.User) error {
	if err := r.db.WithContext(ctx).Create(toUserModel(u)).Error; err != nil {
		return fmt.Errorf("failed to save user: %w", err)
	}
	return nil
}

// FindByID retrieves a user by its unique identifier.
func (r *GormUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*userDomain.User, error) {
	var model UserModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("User", id.String())
		}
		return nil, fmt.Errorf("failed to find user by ID: %w", err)
	}
	return toDomainUser(&model), nil
}

// FindByEmail retrieves a user by email, or nil when no user has it.
func (r *GormUserRepository) FindByEmail(ctx context.Context, email string) (*userDomain.User, error) {
	var model UserModel
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find user by email: %w", err)
	}
	return toDomainUser(&model), nil
}

// List retrieves users with pagination, oldest first.
func (r *GormUserRepository) List(ctx context.Context, offset, limit int) ([]*userDomain.User, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&UserModel{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count users: %w", err)
	}

	var models []UserModel
	if err := r.db.WithContext(ctx).
		Order("created_at ASC").
		Offset(offset).
		Limit(limit).
		Find(&models).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list users: %w", err)
	}

	users := make([]*userDomain.User, len(models))
	for i, m := range models {
		users[i] = toDomainUser(&m)
	}
	return users, total, nil
}

// Update persists changes to an existing user.
func (r *GormUserRepository) Update(ctx context.Context, u *userDomain.User) error {
	model := toUserModel(u)
	result := r.db.WithContext(ctx).
		Model(&UserModel{}).
		Where("id = ?", model.ID).
		Updates(map[string]interface{}{
			"name":       model.Name,
			"email":      model.Email,
			"updated_at": model.UpdatedAt,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update user: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewNotFoundError("User", model.ID.String())
	}
	return nil
}

// Delete removes a user.
func (r *GormUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&UserModel{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete user: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewNotFoundError("User", id.String())
	}
	return nil
}

// --- Conversion helpers ---

func toUserModel(u *userDomain.User) *UserModel {
	return &UserModel{
		ID:        u.ID(),
		Name:      u.Name(),
		Email:     u.Email(),
		CreatedAt: u.CreatedAt(),
		UpdatedAt: u.UpdatedAt(),
	}
}

func toDomainUser(m *UserModel) *userDomain.User {
	return userDomain.Reconstruct(m.ID, m.Name, m.Email, m.CreatedAt, m.UpdatedAt)
}
