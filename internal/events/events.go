package events

import (
	"time"

	"github.com/google/uuid"
)

// TopicRentalEvents is the topic carrying all rental lifecycle events.
const TopicRentalEvents = "rental.events"

// Event type identifiers.
const (
	BookingRequested = "booking.requested"
	BookingApproved  = "booking.approved"
	BookingRejected  = "booking.rejected"
	CommentCreated   = "comment.created"
)

// BookingRequestedEvent is published when a renter places a booking request.
type BookingRequestedEvent struct {
	BookingID  uuid.UUID `json:"booking_id"`
	ItemID     uuid.UUID `json:"item_id"`
	BookerID   uuid.UUID `json:"booker_id"`
	Start      time.Time `json:"start"`
	End        time.Time `json:"end"`
	OccurredAt time.Time `json:"occurred_at"`
}

// BookingDecidedEvent is published when an owner approves or rejects a
// waiting booking. The event type distinguishes the two outcomes.
type BookingDecidedEvent struct {
	BookingID  uuid.UUID `json:"booking_id"`
	ItemID     uuid.UUID `json:"item_id"`
	BookerID   uuid.UUID `json:"booker_id"`
	OwnerID    uuid.UUID `json:"owner_id"`
	Status     string    `json:"status"`
	OccurredAt time.Time `json:"occurred_at"`
}

// CommentCreatedEvent is published when a renter comments on an item.
type CommentCreatedEvent struct {
	CommentID  uuid.UUID `json:"comment_id"`
	ItemID     uuid.UUID `json:"item_id"`
	AuthorID   uuid.UUID `json:"author_id"`
	OccurredAt time.Time `json:"occurred_at"`
}
