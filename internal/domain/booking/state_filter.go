package booking

import (
	"strings"

	"github.com/lendhub/service-rental/internal/domain"
)

// StateFilter selects which bucket of bookings a list query returns. CURRENT,
// PAST and FUTURE classify by time against the caller's "now"; WAITING and
// REJECTED classify by status.
type StateFilter string

const (
	FilterAll      StateFilter = "ALL"
	FilterCurrent  StateFilter = "CURRENT"
	FilterPast     StateFilter = "PAST"
	FilterFuture   StateFilter = "FUTURE"
	FilterWaiting  StateFilter = "WAITING"
	FilterRejected StateFilter = "REJECTED"
)

// ParseStateFilter converts a query token to a StateFilter. The token set is
// closed; anything else is a validation failure.
func ParseStateFilter(s string) (StateFilter, error) {
	if s == "" {
		return FilterAll, nil
	}
	switch f := StateFilter(strings.ToUpper(s)); f {
	case FilterAll, FilterCurrent, FilterPast, FilterFuture, FilterWaiting, FilterRejected:
		return f, nil
	default:
		return "", domain.NewValidationError("unknown state: " + s)
	}
}

// String returns the string representation of the filter.
func (f StateFilter) String() string {
	return string(f)
}
