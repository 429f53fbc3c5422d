//go:build integration

package main_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/lendhub/service-rental/internal/application"
	"github.com/lendhub/service-rental/internal/clock"
	"github.com/lendhub/service-rental/internal/events"
	"github.com/lendhub/service-rental/internal/repository"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// testInfra holds shared test infrastructure.
type testInfra struct {
	DB      *gorm.DB
	Cleanup func()
}

// rentalStack holds wired-up rental service components.
type rentalStack struct {
	Bookings  *application.BookingService
	Items     *application.ItemService
	Users     *application.UserService
	Clock     *clock.Fixed
	Publisher *memoryPublisher
}

// memoryPublisher collects published events for assertions.
type memoryPublisher struct {
	mu     sync.Mutex
	events []*events.CloudEvent
}

func (p *memoryPublisher) Publish(_ context.Context, _, _ string, event *events.CloudEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

func (p *memoryPublisher) Types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	types := make([]string, len(p.events))
	for i, e := range p.events {
		types[i] = e.Type
	}
	return types
}

// setupContainers starts a PostgreSQL testcontainer and returns a connected
// GORM DB with the schema migrated.
func setupContainers(t *testing.T) *testInfra {
	t.Helper()
	ctx := context.Background()

	pgReq := testcontainers.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "test",
			"POSTGRES_PASSWORD": "test",
			"POSTGRES_DB":       "test_rental",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(60 * time.Second),
	}
	pgContainer, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: pgReq,
		Started:          true,
	})
	require.NoError(t, err, "failed to start PostgreSQL container")

	pgHost, err := pgContainer.Host(ctx)
	require.NoError(t, err)
	pgPort, err := pgContainer.MappedPort(ctx, "5432")
	require.NoError(t, err)

	dsn := fmt.Sprintf("host=%s port=%s user=test password=test dbname=test_rental sslmode=disable",
		pgHost, pgPort.Port())

	// Poll until GORM can actually connect and ping.
	var db *gorm.DB
	require.Eventually(t, func() bool {
		var err error
		db, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
		if err != nil {
			return false
		}
		sqlDB, err := db.DB()
		if err != nil {
			return false
		}
		return sqlDB.Ping() == nil
	}, 30*time.Second, time.Second, "PostgreSQL never became reachable")

	require.NoError(t, db.AutoMigrate(
		&repository.UserModel{},
		&repository.ItemModel{},
		&repository.BookingModel{},
		&repository.CommentModel{},
	))

	return &testInfra{
		DB: db,
		Cleanup: func() {
			if sqlDB, err := db.DB(); err == nil {
				_ = sqlDB.Close()
			}
			_ = pgContainer.Terminate(ctx)
		},
	}
}

// setupRentalStack wires the application services against the given DB.
func setupRentalStack(t *testing.T, db *gorm.DB) *rentalStack {
	t.Helper()

	bookingRepo := repository.NewGormBookingRepository(db)
	itemRepo := repository.NewGormItemRepository(db)
	userRepo := repository.NewGormUserRepository(db)
	commentRepo := repository.NewGormCommentRepository(db)

	pub := &memoryPublisher{}
	clk := clock.NewFixed(time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC))
	logger := zap.NewNop()

	bookings := application.NewBookingService(bookingRepo, itemRepo, userRepo, pub, clk, logger)
	items := application.NewItemService(itemRepo, userRepo, commentRepo, bookings, pub, clk, logger)
	users := application.NewUserService(userRepo, logger)

	return &rentalStack{
		Bookings:  bookings,
		Items:     items,
		Users:     users,
		Clock:     clk,
		Publisher: pub,
	}
}
