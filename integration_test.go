//go:build integration

package main_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ganengile/service-matching/internal/application"
	matchingEvents "github.com/ganengile/service-matching/internal/events"
)

// TestDeliveryRequested_PublishesRankedMatches verifies that when a delivery
// request is posted, the matching service picks the DeliveryRequestedEvent up
// from delivery.events, scores every stored commute route, and publishes a
// MatchesRankedEvent on matching.events sorted by descending score.
func TestDeliveryRequested_PublishesRankedMatches(t *testing.T) {
	infra := setupContainers(t)
	defer infra.Cleanup()

	stack := setupMatchingStack(t, infra.DB, infra.KafkaBrokers)
	defer stack.CleanupProducer()
	defer func() { _ = stack.Consumer.Close() }()

	// Seed two commute routes: one exactly matching the request's trip and
	// one on an unrelated corridor.
	strong := seedRoute(t, stack.Service, "150", "222", "08:00", 4.5, 20, 19)
	weak := seedRoute(t, stack.Service, "136", "329", "10:30", 2.5, 10, 4)

	// Start the consumer.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = stack.Consumer.Start(ctx) }()
	time.Sleep(3 * time.Second) // Wait for consumer group join.

	// Post a delivery request 서울역 -> 강남역; CreateRequest publishes the
	// DeliveryRequestedEvent itself.
	request, err := stack.Service.CreateRequest(context.Background(), uuid.New(), application.CreateDeliveryRequest{
		PickupStationName:   "서울역",
		DeliveryStationName: "강남역",
		PickupWindowStart:   "08:00",
		PickupWindowEnd:     "09:00",
		DeliveryDeadline:    "12:00",
		PreferredDays:       []int{1, 2, 3, 4, 5},
		PackageSize:         "small",
		WeightKg:            1.5,
	})
	require.NoError(t, err)

	// Assert: MatchesRankedEvent on matching.events.
	ce := consumeOneEvent(t, infra.KafkaBrokers, matchingEvents.TopicMatchingEvents,
		matchingEvents.MatchesRanked, 20*time.Second)

	var ranked matchingEvents.MatchesRankedEvent
	require.NoError(t, ce.ParseData(&ranked))
	assert.Equal(t, request.ID, ranked.RequestID)
	require.Len(t, ranked.Matches, 2)

	assert.Equal(t, strong.ID, ranked.Matches[0].GillerRouteID)
	assert.Equal(t, weak.ID, ranked.Matches[1].GillerRouteID)
	assert.Greater(t, ranked.Matches[0].TotalScore, ranked.Matches[1].TotalScore)
	assert.NotEmpty(t, ranked.Matches[0].Reasons)
}

// TestDeliveryRequested_UnknownStationYieldsNoMatches verifies that a request
// naming a station outside the curated network still produces a
// MatchesRankedEvent, just with an empty match list: every route is excluded
// instead of the batch failing.
func TestDeliveryRequested_UnknownStationYieldsNoMatches(t *testing.T) {
	infra := setupContainers(t)
	defer infra.Cleanup()

	stack := setupMatchingStack(t, infra.DB, infra.KafkaBrokers)
	defer stack.CleanupProducer()
	defer func() { _ = stack.Consumer.Close() }()

	seedRoute(t, stack.Service, "150", "222", "08:00", 4.0, 10, 9)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = stack.Consumer.Start(ctx) }()
	time.Sleep(3 * time.Second)

	request, err := stack.Service.CreateRequest(context.Background(), uuid.New(), application.CreateDeliveryRequest{
		PickupStationName:   "부산역",
		DeliveryStationName: "강남역",
		PickupWindowStart:   "08:00",
		PickupWindowEnd:     "09:00",
		DeliveryDeadline:    "12:00",
		PackageSize:         "small",
		WeightKg:            1.0,
	})
	require.NoError(t, err)

	ce := consumeOneEvent(t, infra.KafkaBrokers, matchingEvents.TopicMatchingEvents,
		matchingEvents.MatchesRanked, 20*time.Second)

	var ranked matchingEvents.MatchesRankedEvent
	require.NoError(t, ce.ParseData(&ranked))
	assert.Equal(t, request.ID, ranked.RequestID)
	assert.Empty(t, ranked.Matches)
}
