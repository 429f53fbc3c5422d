package booking

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/lendhub/service-rental/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBooking(t *testing.T) {
	now := time.Now().UTC()

	t.Run("creates waiting booking", func(t *testing.T) {
		bk, err := NewBooking(uuid.New(), uuid.New(), now.Add(2*time.Second), now.Add(3*time.Second))
		require.NoError(t, err)
		assert.Equal(t, StatusWaiting, bk.Status())
		assert.NotEqual(t, uuid.Nil, bk.ID())
	})

	t.Run("rejects end equal to start", func(t *testing.T) {
		_, err := NewBooking(uuid.New(), uuid.New(), now, now)
		var validation *domain.ValidationError
		require.ErrorAs(t, err, &validation)
	})

	t.Run("rejects end before start", func(t *testing.T) {
		_, err := NewBooking(uuid.New(), uuid.New(), now, now.Add(-time.Hour))
		var validation *domain.ValidationError
		require.ErrorAs(t, err, &validation)
	})

	t.Run("rejects nil booker", func(t *testing.T) {
		_, err := NewBooking(uuid.Nil, uuid.New(), now, now.Add(time.Hour))
		require.Error(t, err)
	})

	t.Run("rejects nil item", func(t *testing.T) {
		_, err := NewBooking(uuid.New(), uuid.Nil, now, now.Add(time.Hour))
		require.Error(t, err)
	})
}

func TestBookingApproval(t *testing.T) {
	now := time.Now().UTC()

	newWaiting := func(t *testing.T) *Booking {
		t.Helper()
		bk, err := NewBooking(uuid.New(), uuid.New(), now.Add(time.Hour), now.Add(2*time.Hour))
		require.NoError(t, err)
		return bk
	}

	t.Run("approve from waiting", func(t *testing.T) {
		bk := newWaiting(t)
		require.NoError(t, bk.Approve())
		assert.Equal(t, StatusApproved, bk.Status())
	})

	t.Run("reject from waiting", func(t *testing.T) {
		bk := newWaiting(t)
		require.NoError(t, bk.Reject())
		assert.Equal(t, StatusRejected, bk.Status())
	})

	t.Run("approved is terminal", func(t *testing.T) {
		bk := newWaiting(t)
		require.NoError(t, bk.Approve())

		var validation *domain.ValidationError
		require.ErrorAs(t, bk.Approve(), &validation)
		require.ErrorAs(t, bk.Reject(), &validation)
		assert.Equal(t, StatusApproved, bk.Status())
	})

	t.Run("rejected is terminal", func(t *testing.T) {
		bk := newWaiting(t)
		require.NoError(t, bk.Reject())

		var validation *domain.ValidationError
		require.ErrorAs(t, bk.Approve(), &validation)
		assert.Equal(t, StatusRejected, bk.Status())
	})
}

func TestBookingStatusStateMachine(t *testing.T) {
	assert.True(t, StatusWaiting.CanTransitionTo(StatusApproved))
	assert.True(t, StatusWaiting.CanTransitionTo(StatusRejected))
	assert.False(t, StatusApproved.CanTransitionTo(StatusRejected))
	assert.False(t, StatusRejected.CanTransitionTo(StatusApproved))
	assert.False(t, StatusWaiting.IsTerminal())
	assert.True(t, StatusApproved.IsTerminal())
	assert.True(t, StatusRejected.IsTerminal())
}

func TestParseBookingStatus(t *testing.T) {
	status, err := ParseBookingStatus("WAITING")
	require.NoError(t, err)
	assert.Equal(t, StatusWaiting, status)

	_, err = ParseBookingStatus("PENDING")
	assert.Error(t, err)
}

func TestParseStateFilter(t *testing.T) {
	for _, token := range []string{"ALL", "CURRENT", "PAST", "FUTURE", "WAITING", "REJECTED"} {
		f, err := ParseStateFilter(token)
		require.NoError(t, err, token)
		assert.Equal(t, token, f.String())
	}

	t.Run("lowercase accepted", func(t *testing.T) {
		f, err := ParseStateFilter("past")
		require.NoError(t, err)
		assert.Equal(t, FilterPast, f)
	})

	t.Run("empty defaults to ALL", func(t *testing.T) {
		f, err := ParseStateFilter("")
		require.NoError(t, err)
		assert.Equal(t, FilterAll, f)
	})

	t.Run("unknown token fails", func(t *testing.T) {
		_, err := ParseStateFilter("SOMEDAY")
		var validation *domain.ValidationError
		require.ErrorAs(t, err, &validation)
	})
}

func TestTemporalClassification(t *testing.T) {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	mk := func(start, end time.Time) *Booking {
		bk, err := NewBooking(uuid.New(), uuid.New(), start, end)
		require.NoError(t, err)
		return bk
	}

	past := mk(now.Add(-2*time.Hour), now.Add(-time.Hour))
	current := mk(now.Add(-time.Hour), now.Add(time.Hour))
	future := mk(now.Add(time.Hour), now.Add(2*time.Hour))

	assert.True(t, past.IsPast(now))
	assert.True(t, current.IsCurrent(now))
	assert.True(t, future.IsFuture(now))

	t.Run("temporal buckets partition away from boundaries", func(t *testing.T) {
		for _, bk := range []*Booking{past, current, future} {
			matched := 0
			for _, f := range []StateFilter{FilterCurrent, FilterPast, FilterFuture} {
				if bk.Matches(f, now) {
					matched++
				}
			}
			assert.Equal(t, 1, matched, "each booking sits in exactly one temporal bucket")
			assert.True(t, bk.Matches(FilterAll, now))
		}
	})

	t.Run("status buckets partition", func(t *testing.T) {
		waiting := mk(now.Add(time.Hour), now.Add(2*time.Hour))
		rejected := mk(now.Add(time.Hour), now.Add(2*time.Hour))
		require.NoError(t, rejected.Reject())

		assert.True(t, waiting.Matches(FilterWaiting, now))
		assert.False(t, waiting.Matches(FilterRejected, now))
		assert.True(t, rejected.Matches(FilterRejected, now))
		assert.False(t, rejected.Matches(FilterWaiting, now))
	})

	t.Run("strict bounds at start and end", func(t *testing.T) {
		bk := mk(now, now.Add(time.Hour))
		assert.False(t, bk.IsCurrent(now), "booking starting exactly at now is not current")
		assert.False(t, bk.IsPast(now))
		assert.False(t, bk.IsFuture(now))

		ending := mk(now.Add(-time.Hour), now)
		assert.False(t, ending.IsCurrent(now), "booking ending exactly at now is not current")
		assert.False(t, ending.IsPast(now))
	})
}
