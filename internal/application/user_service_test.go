package application

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/lendhub/service-rental/internal/domain"
	userDomain "github.com/lendhub/service-rental/internal/domain/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestCreateUser(t *testing.T) {
	ctx := context.Background()

	t.Run("registers user with fresh email", func(t *testing.T) {
		users := &mockUserRepo{}
		svc := NewUserService(users, zap.NewNop())

		users.On("FindByEmail", ctx, "mila@example.com").Return(nil, nil)
		users.On("Save", ctx, mock.AnythingOfType("*user.User")).Return(nil)

		dto, err := svc.CreateUser(ctx, CreateUserRequest{Name: "Mila", Email: "mila@example.com"})
		require.NoError(t, err)
		assert.Equal(t, "Mila", dto.Name)
		assert.NotEqual(t, uuid.Nil, dto.ID)
	})

	t.Run("duplicate email conflicts", func(t *testing.T) {
		users := &mockUserRepo{}
		svc := NewUserService(users, zap.NewNop())

		taken, err := userDomain.NewUser("First", "taken@example.com")
		require.NoError(t, err)
		users.On("FindByEmail", ctx, "taken@example.com").Return(taken, nil)

		_, err = svc.CreateUser(ctx, CreateUserRequest{Name: "Second", Email: "taken@example.com"})
		var conflict *domain.ConflictError
		require.ErrorAs(t, err, &conflict)
		users.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("malformed email is a validation failure", func(t *testing.T) {
		users := &mockUserRepo{}
		svc := NewUserService(users, zap.NewNop())
		users.On("FindByEmail", ctx, "not-an-email").Return(nil, nil)

		_, err := svc.CreateUser(ctx, CreateUserRequest{Name: "Mila", Email: "not-an-email"})
		var validation *domain.ValidationError
		require.ErrorAs(t, err, &validation)
	})
}

func TestUpdateUser(t *testing.T) {
	ctx := context.Background()

	t.Run("patches name only", func(t *testing.T) {
		users := &mockUserRepo{}
		svc := NewUserService(users, zap.NewNop())

		u, err := userDomain.NewUser("Old Name", "same@example.com")
		require.NoError(t, err)
		users.On("FindByID", ctx, u.ID()).Return(u, nil)
		users.On("Update", ctx, u).Return(nil)

		dto, err := svc.UpdateUser(ctx, u.ID(), UpdateUserRequest{Name: strPtr("New Name")})
		require.NoError(t, err)
		assert.Equal(t, "New Name", dto.Name)
		assert.Equal(t, "same@example.com", dto.Email)
		users.AssertNotCalled(t, "FindByEmail", mock.Anything, mock.Anything)
	})

	t.Run("changing to taken email conflicts", func(t *testing.T) {
		users := &mockUserRepo{}
		svc := NewUserService(users, zap.NewNop())

		u, err := userDomain.NewUser("Mover", "mover@example.com")
		require.NoError(t, err)
		other, err := userDomain.NewUser("Settler", "settled@example.com")
		require.NoError(t, err)

		users.On("FindByID", ctx, u.ID()).Return(u, nil)
		users.On("FindByEmail", ctx, "settled@example.com").Return(other, nil)

		_, err = svc.UpdateUser(ctx, u.ID(), UpdateUserRequest{Email: strPtr("settled@example.com")})
		var conflict *domain.ConflictError
		require.ErrorAs(t, err, &conflict)
	})

	t.Run("unknown user is not found", func(t *testing.T) {
		users := &mockUserRepo{}
		svc := NewUserService(users, zap.NewNop())

		id := uuid.New()
		users.On("FindByID", ctx, id).Return(nil, domain.NewNotFoundError("User", id.String()))

		_, err := svc.UpdateUser(ctx, id, UpdateUserRequest{Name: strPtr("Ghost")})
		var notFound *domain.NotFoundError
		require.ErrorAs(t, err, &notFound)
	})
}

func TestListUsers(t *testing.T) {
	ctx := context.Background()
	users := &mockUserRepo{}
	svc := NewUserService(users, zap.NewNop())

	a, err := userDomain.NewUser("A", "a@example.com")
	require.NoError(t, err)
	b, err := userDomain.NewUser("B", "b@example.com")
	require.NoError(t, err)
	users.On("List", ctx, 0, 20).Return([]*userDomain.User{a, b}, int64(2), nil)

	result, err := svc.ListUsers(ctx, 0, 20)
	require.NoError(t, err)
	assert.Len(t, result.Items, 2)
	assert.Equal(t, int64(2), result.Total)
}

func TestDeleteUser(t *testing.T) {
	ctx := context.Background()
	users := &mockUserRepo{}
	svc := NewUserService(users, zap.NewNop())

	id := uuid.New()
	users.On("Delete", ctx, id).Return(nil)

	require.NoError(t, svc.DeleteUser(ctx, id))
	users.AssertExpectations(t)
}
