package events

import (
	"time"

	"github.com/google/uuid"
)

// Topics the matching service consumes from and publishes to.
const (
	TopicDeliveryEvents = "delivery.events"
	TopicMatchingEvents = "matching.events"
)

// Event types.
const (
	DeliveryRequested = "delivery.requested"
	MatchesRanked     = "matching.matches_ranked"
)

// DeliveryRequestedEvent announces a newly posted delivery request.
type DeliveryRequestedEvent struct {
	RequestID       uuid.UUID `json:"request_id"`
	GllerID         uuid.UUID `json:"gller_id"`
	PickupStation   string    `json:"pickup_station"`
	DeliveryStation string    `json:"delivery_station"`
	OccurredAt      time.Time `json:"occurred_at"`
}

// RankedMatch is one entry of a MatchesRankedEvent.
type RankedMatch struct {
	GillerRouteID uuid.UUID `json:"giller_route_id"`
	TotalScore    int       `json:"total_score"`
	Reasons       []string  `json:"reasons"`
}

// MatchesRankedEvent carries the ranked match suggestions for a request.
type MatchesRankedEvent struct {
	RequestID  uuid.UUID     `json:"request_id"`
	Matches    []RankedMatch `json:"matches"`
	OccurredAt time.Time     `json:"occurred_at"`
}
