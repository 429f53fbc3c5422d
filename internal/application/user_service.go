package application

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lendhub/service-rental/internal/domain"
	userDomain "github.com/lendhub/service-rental/internal/domain/user"
	"go.uber.org/zap"
)

// CreateUserRequest is the request DTO for registering a user.
type CreateUserRequest struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required"`
}

// UpdateUserRequest is the request DTO for patching a user.
type UpdateUserRequest struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
}

// UserDTO is the API response representation of a user.
type UserDTO struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UserService implements user directory use cases.
type UserService struct {
	users  userDomain.UserRepository
	logger *zap.Logger
}

// NewUserService creates a new UserService.
func NewUserService(users userDomain.UserRepository, logger *zap.Logger) *UserService {
	return &UserService{users: users, logger: logger}
}

// CreateUser registers a new user with a unique email.
func (s *UserService) CreateUser(ctx context.Context, req CreateUserRequest) (*UserDTO, error) {
	existing, err := s.users.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.NewConflictError("email is already in use")
	}

	u, err := userDomain.NewUser(req.Name, req.Email)
	if err != nil {
		return nil, err
	}
	if err := s.users.Save(ctx, u); err != nil {
		return nil, fmt.Errorf("failed to save user: %w", err)
	}

	result := toUserDTO(u)
	return &result, nil
}

// GetUser retrieves a user by id.
func (s *UserService) GetUser(ctx context.Context, id uuid.UUID) (*UserDTO, error) {
	u, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	result := toUserDTO(u)
	return &result, nil
}

// ListUsers retrieves users with pagination.
func (s *UserService) ListUsers(ctx context.Context, offset, limit int) (*domain.PaginatedResult[UserDTO], error) {
	users, total, err := s.users.List(ctx, offset, limit)
	if err != nil {
		return nil, err
	}

	dtos := make([]UserDTO, len(users))
	for i, u := range users {
		dtos[i] = toUserDTO(u)
	}

	result := domain.NewPaginatedResult(dtos, total, offset, limit)
	return &result, nil
}

// UpdateUser patches a user's name and/or email, keeping emails unique.
func (s *UserService) UpdateUser(ctx context.Context, id uuid.UUID, req UpdateUserRequest) (*UserDTO, error) {
	u, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Email != nil && *req.Email != u.Email() {
		existing, err := s.users.FindByEmail(ctx, *req.Email)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, domain.NewConflictError("email is already in use")
		}
	}

	if err := u.ApplyUpdate(req.Name, req.Email); err != nil {
		return nil, err
	}
	if err := s.users.Update(ctx, u); err != nil {
		return nil, err
	}

	result := toUserDTO(u)
	return &result, nil
}

// DeleteUser removes a user.
func (s *UserService) DeleteUser(ctx context.Context, id uuid.UUID) error {
	return s.users.Delete(ctx, id)
}

func toUserDTO(u *userDomain.User) UserDTO {
	return UserDTO{
		ID:        u.ID(),
		Name:      u.Name(),
		Email:     u.Email(),
		CreatedAt: u.CreatedAt(),
		UpdatedAt: u.UpdatedAt(),
	}
}
