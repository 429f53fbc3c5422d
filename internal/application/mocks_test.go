package application

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	bookingDomain "github.com/lendhub/service-rental/internal/domain/booking"
	commentDomain "github.com/lendhub/service-rental/internal/domain/comment"
	itemDomain "github.com/lendhub/service-rental/internal/domain/item"
	userDomain "github.com/lendhub/service-rental/internal/domain/user"
	"github.com/lendhub/service-rental/internal/events"
	"github.com/stretchr/testify/mock"
)

type mockBookingRepo struct {
	mock.Mock
}

func (m *mockBookingRepo) Save(ctx context.Context, bk *bookingDomain.Booking) error {
	args := m.Called(ctx, bk)
	return args.Error(0)
}

func (m *mockBookingRepo) FindByID(ctx context.Context, id uuid.UUID) (*bookingDomain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*bookingDomain.Booking), args.Error(1)
}

func (m *mockBookingRepo) UpdateStatus(ctx context.Context, id uuid.UUID, from, to bookingDomain.BookingStatus) error {
	args := m.Called(ctx, id, from, to)
	return args.Error(0)
}

func (m *mockBookingRepo) FindByBooker(ctx context.Context, bookerID uuid.UUID, filter bookingDomain.StateFilter, now time.Time, offset, limit int) ([]*bookingDomain.Booking, int64, error) {
	args := m.Called(ctx, bookerID, filter, now, offset, limit)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*bookingDomain.Booking), args.Get(1).(int64), args.Error(2)
}

func (m *mockBookingRepo) FindByOwner(ctx context.Context, ownerID uuid.UUID, filter bookingDomain.StateFilter, now time.Time, offset, limit int) ([]*bookingDomain.Booking, int64, error) {
	args := m.Called(ctx, ownerID, filter, now, offset, limit)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*bookingDomain.Booking), args.Get(1).(int64), args.Error(2)
}

func (m *mockBookingRepo) LastForItem(ctx context.Context, itemID uuid.UUID, now time.Time) (*bookingDomain.Booking, error) {
	args := m.Called(ctx, itemID, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*bookingDomain.Booking), args.Error(1)
}

func (m *mockBookingRepo) NextForItem(ctx context.Context, itemID uuid.UUID, now time.Time) (*bookingDomain.Booking, error) {
	args := m.Called(ctx, itemID, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*bookingDomain.Booking), args.Error(1)
}

func (m *mockBookingRepo) FindCompleted(ctx context.Context, itemID, bookerID uuid.UUID, asOf time.Time) (*bookingDomain.Booking, error) {
	args := m.Called(ctx, itemID, bookerID, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*bookingDomain.Booking), args.Error(1)
}

type mockItemRepo struct {
	mock.Mock
}

func (m *mockItemRepo) Save(ctx context.Context, it *itemDomain.Item) error {
	args := m.Called(ctx, it)
	return args.Error(0)
}

func (m *mockItemRepo) FindByID(ctx context.Context, id uuid.UUID) (*itemDomain.Item, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*itemDomain.Item), args.Error(1)
}

func (m *mockItemRepo) FindByOwnerID(ctx context.Context, ownerID uuid.UUID, offset, limit int) ([]*itemDomain.Item, int64, error) {
	args := m.Called(ctx, ownerID, offset, limit)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*itemDomain.Item), args.Get(1).(int64), args.Error(2)
}

func (m *mockItemRepo) Search(ctx context.Context, text string, offset, limit int) ([]*itemDomain.Item, int64, error) {
	args := m.Called(ctx, text, offset, limit)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*itemDomain.Item), args.Get(1).(int64), args.Error(2)
}

func (m *mockItemRepo) Update(ctx context.Context, it *itemDomain.Item) error {
	args := m.Called(ctx, it)
	return args.Error(0)
}

type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) Save(ctx context.Context, u *userDomain.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *mockUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*userDomain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*userDomain.User), args.Error(1)
}

func (m *mockUserRepo) FindByEmail(ctx context.Context, email string) (*userDomain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*userDomain.User), args.Error(1)
}

func (m *mockUserRepo) List(ctx context.Context, offset, limit int) ([]*userDomain.User, int64, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*userDomain.User), args.Get(1).(int64), args.Error(2)
}

func (m *mockUserRepo) Update(ctx context.Context, u *userDomain.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *mockUserRepo) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type mockCommentRepo struct {
	mock.Mock
}

func (m *mockCommentRepo) Save(ctx context.Context, c *commentDomain.Comment) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *mockCommentRepo) FindByItemID(ctx context.Context, itemID uuid.UUID) ([]*commentDomain.Comment, error) {
	args := m.Called(ctx, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*commentDomain.Comment), args.Error(1)
}

// fakePublisher records published events instead of talking to a broker.
type fakePublisher struct {
	mu        sync.Mutex
	published []*events.CloudEvent
}

func (f *fakePublisher) Publish(_ context.Context, _ string, _ string, event *events.CloudEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.published = append(f.published, event)
	return nil
}

func (f *fakePublisher) Types() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	types := make([]string, len(f.published))
	for i, e := range f.published {
		types[i] = e.Type
	}
	return types
}
