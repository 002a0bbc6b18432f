package matching

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ganengile/service-matching/internal/domain"
	"github.com/ganengile/service-matching/internal/domain/transit"
)

func testScorer(t *testing.T) (*TransitScorer, *transit.Network) {
	t.Helper()
	network := transit.SeoulNetwork()
	return NewTransitScorer(network, zap.NewNop()), network
}

func testStation(t *testing.T, network *transit.Network, id string) transit.Station {
	t.Helper()
	station, ok := network.Stations.GetByID(id)
	require.True(t, ok, "station %s missing from the reference network", id)
	return station
}

func testRoute(t *testing.T, network *transit.Network, startID, endID, departure string, rating float64, total, completed int) GillerRoute {
	t.Helper()
	route, err := NewGillerRoute(
		uuid.New(),
		"commute",
		testStation(t, network, startID),
		testStation(t, network, endID),
		departure,
		[]int{1, 2, 3, 4, 5},
		rating,
		total, completed,
	)
	require.NoError(t, err)
	return *route
}

func testRequest(t *testing.T, pickup, delivery, windowStart string, preferredDays []int) DeliveryRequest {
	t.Helper()
	req, err := NewDeliveryRequest(
		uuid.New(),
		pickup, delivery,
		windowStart, "21:00", "22:00",
		preferredDays,
		PackageSizeSmall,
		1.5,
	)
	require.NoError(t, err)
	return *req
}

func TestStationOnRouteScore(t *testing.T) {
	_, network := testScorer(t)

	start := testStation(t, network, "150") // 서울역, lines 1/4/A/K
	end := testStation(t, network, "222")   // 강남역, lines 2/S

	tests := []struct {
		name     string
		targetID string
		want     float64
	}{
		{"route endpoint", "150", 25},
		{"other endpoint", "222", 25},
		{"shares a line with the start", "132", 20}, // 시청역 on line 1
		{"shares a line with the end", "240", 20},   // 신촌역 on line 2
		{"single transfer assumed", "329", 15},      // 고속터미널역, lines 3/7/9
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			target := testStation(t, network, tc.targetID)
			assert.Equal(t, tc.want, StationOnRouteScore(start, end, target))
		})
	}
}

func TestDepartureTimeMatch(t *testing.T) {
	tests := []struct {
		departure   string
		windowStart string
		want        float64
	}{
		{"08:00", "08:00", 20},
		{"08:15", "08:00", 15},
		{"08:30", "08:00", 10},
		{"09:00", "08:00", 0},
		{"09:30", "08:00", 0},
		{"07:30", "08:00", 10}, // gap is absolute
	}

	for _, tc := range tests {
		dep, err := transit.ParseClock(tc.departure)
		require.NoError(t, err)
		ws, err := transit.ParseClock(tc.windowStart)
		require.NoError(t, err)
		assert.Equal(t, tc.want, DepartureTimeMatch(dep, ws),
			"departure=%s windowStart=%s", tc.departure, tc.windowStart)
	}
}

func TestScheduleFlexibility(t *testing.T) {
	tests := []struct {
		name      string
		preferred []int
		routeDays []int
		want      float64
	}{
		{"full overlap", []int{1, 2, 3}, []int{1, 2, 3, 4, 5}, 10},
		{"half overlap", []int{1, 2, 6, 7}, []int{1, 2, 3, 4, 5}, 5},
		{"no overlap", []int{6, 7}, []int{1, 2, 3, 4, 5}, 0},
		{"empty preferred set scores zero", nil, []int{1, 2, 3}, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ScheduleFlexibility(tc.preferred, tc.routeDays))
		})
	}
}

func TestRatingScore(t *testing.T) {
	assert.Equal(t, 0.0, RatingScore(1))
	assert.Equal(t, 7.5, RatingScore(3))
	assert.Equal(t, 13.125, RatingScore(4.5))
	assert.Equal(t, 15.0, RatingScore(5))

	// Out-of-domain input clamps instead of extrapolating.
	assert.Equal(t, 0.0, RatingScore(0))
	assert.Equal(t, 15.0, RatingScore(6))

	// Monotonic over the valid domain.
	prev := -1.0
	for r := 1.0; r <= 5.0; r += 0.25 {
		score := RatingScore(r)
		assert.GreaterOrEqual(t, score, prev, "rating=%v", r)
		prev = score
	}
}

func TestCompletionRateScore(t *testing.T) {
	assert.Equal(t, 2.5, CompletionRateScore(0, 0))   // no history is neutral
	assert.Equal(t, 2.5, CompletionRateScore(-3, 10)) // nonsense totals too
	assert.Equal(t, 4.0, CompletionRateScore(10, 8))
	assert.Equal(t, 5.0, CompletionRateScore(10, 15)) // completed clamps to total
	assert.Equal(t, 0.0, CompletionRateScore(10, -2))
	assert.Equal(t, 5.0, CompletionRateScore(20, 20))
}

func TestScoreMatchNearPerfectCommute(t *testing.T) {
	scorer, network := testScorer(t)

	// Giller departs 서울역 08:00 toward 강남역; the request is exactly that
	// trip, same window, weekday overlap, 4.5 rating, no delivery history.
	route := testRoute(t, network, "150", "222", "08:00", 4.5, 0, 0)
	req := testRequest(t, "서울역", "강남역", "08:00", []int{1, 2, 3, 4, 5})

	result, err := scorer.ScoreMatch(route, req)
	require.NoError(t, err)

	assert.Equal(t, 50, result.RouteMatchScore)
	assert.Equal(t, 30, result.TimeMatchScore)
	assert.Equal(t, 13, result.RatingScore)         // 13.125 rounds down
	assert.Equal(t, 3, result.CompletionRateScore)  // 2.5 rounds half away from zero
	assert.Equal(t, 96, result.TotalScore)

	assert.Equal(t, 25.0, result.Breakdown.PickupStationScore)
	assert.Equal(t, 25.0, result.Breakdown.DeliveryStationScore)
	assert.Equal(t, 20.0, result.Breakdown.DepartureTimeMatch)
	assert.Equal(t, 10.0, result.Breakdown.ScheduleFlexibility)
	assert.Equal(t, 13.125, result.Breakdown.RatingRaw)
	assert.Equal(t, 2.5, result.Breakdown.CompletionRateRaw)

	// Trip summary: the start==pickup leg has no table entry and contributes
	// nothing; 150-222 is 1560s with one transfer.
	assert.Equal(t, 1560, result.Route.TotalTravelTimeSec)
	assert.Equal(t, 1, result.Route.TransferCount)
	assert.False(t, result.Route.HasExpress)
	assert.Equal(t, CongestionHigh, result.Route.Congestion)

	assert.Equal(t, []string{
		"pickup and delivery sit directly on the commute route",
		"departure lines up with the pickup window",
		"highly rated giller",
	}, result.Reasons)
}

func TestScoreMatchUnknownStation(t *testing.T) {
	scorer, network := testScorer(t)

	route := testRoute(t, network, "150", "222", "08:00", 4.0, 10, 9)
	req := testRequest(t, "부산역", "강남역", "08:00", []int{1})

	_, err := scorer.ScoreMatch(route, req)
	require.Error(t, err)

	var notFound *domain.NotFoundError
	assert.True(t, errors.As(err, &notFound))
}

func TestScoreMatchExpressFlagFromLegs(t *testing.T) {
	scorer, network := testScorer(t)

	// 노량진→고속터미널 rides the line 9 express segment.
	route := testRoute(t, network, "136", "329", "10:00", 4.0, 10, 9)
	req := testRequest(t, "노량진역", "고속터미널역", "10:00", []int{1, 2, 3, 4, 5})

	result, err := scorer.ScoreMatch(route, req)
	require.NoError(t, err)

	assert.True(t, result.Route.HasExpress)
	assert.Equal(t, 720, result.Route.TotalTravelTimeSec)
	assert.Equal(t, CongestionMedium, result.Route.Congestion)
}

func TestMatchRoutesExcludesFailedRoutesWithoutAborting(t *testing.T) {
	scorer, network := testScorer(t)

	good1 := testRoute(t, network, "150", "222", "08:00", 4.5, 20, 19)
	good2 := testRoute(t, network, "136", "329", "08:30", 4.0, 10, 8)

	// Built by hand to bypass constructor validation, the way stale rows can
	// surface from storage.
	bad := good1
	bad.ID = uuid.New()
	bad.DepartureTime = "25:99"

	req := testRequest(t, "서울역", "강남역", "08:00", []int{1, 2, 3})

	results := scorer.MatchRoutes([]GillerRoute{good1, bad, good2}, req)
	require.Len(t, results, 2)
	for _, r := range results {
		assert.NotEqual(t, bad.ID, r.GillerRouteID)
	}
}

func TestMatchRoutesReturnsEmptyWhenRequestStationUnknown(t *testing.T) {
	scorer, network := testScorer(t)

	routes := []GillerRoute{
		testRoute(t, network, "150", "222", "08:00", 4.5, 20, 19),
		testRoute(t, network, "136", "329", "08:30", 4.0, 10, 8),
	}
	req := testRequest(t, "부산역", "강남역", "08:00", []int{1})

	assert.Empty(t, scorer.MatchRoutes(routes, req))
}

func TestMatchRoutesSortsDescendingAndKeepsTieOrder(t *testing.T) {
	scorer, network := testScorer(t)

	// tieA and tieB score identically; weak scores lower on every component
	// that differs.
	tieA := testRoute(t, network, "150", "222", "08:00", 4.5, 20, 19)
	tieB := testRoute(t, network, "150", "222", "08:00", 4.5, 20, 19)
	weak := testRoute(t, network, "136", "329", "09:30", 2.0, 10, 4)

	req := testRequest(t, "서울역", "강남역", "08:00", []int{1, 2, 3, 4, 5})

	results := scorer.MatchRoutes([]GillerRoute{weak, tieA, tieB}, req)
	require.Len(t, results, 3)

	assert.GreaterOrEqual(t, results[0].TotalScore, results[1].TotalScore)
	assert.GreaterOrEqual(t, results[1].TotalScore, results[2].TotalScore)

	// The tied pair keeps input order.
	assert.Equal(t, tieA.ID, results[0].GillerRouteID)
	assert.Equal(t, tieB.ID, results[1].GillerRouteID)
	assert.Equal(t, weak.ID, results[2].GillerRouteID)
}

func TestTopMatchesIsAPrefixOfMatchRoutes(t *testing.T) {
	scorer, network := testScorer(t)

	routes := []GillerRoute{
		testRoute(t, network, "150", "222", "08:00", 4.5, 20, 19),
		testRoute(t, network, "150", "132", "08:10", 4.0, 15, 12),
		testRoute(t, network, "136", "329", "09:00", 3.5, 10, 7),
		testRoute(t, network, "132", "205", "07:30", 3.0, 8, 5),
		testRoute(t, network, "222", "216", "10:00", 2.5, 5, 2),
		testRoute(t, network, "239", "240", "12:00", 2.0, 4, 1),
	}
	req := testRequest(t, "서울역", "강남역", "08:00", []int{1, 2, 3})

	full := scorer.MatchRoutes(routes, req)
	require.Len(t, full, 6)

	top3 := scorer.TopMatches(routes, req, 3)
	assert.Equal(t, full[:3], top3)

	// A non-positive limit falls back to the default of five.
	assert.Equal(t, full[:DefaultTopMatches], scorer.TopMatches(routes, req, 0))

	// A limit beyond the batch returns everything.
	assert.Equal(t, full, scorer.TopMatches(routes, req, 50))
}

func TestDepartureCongestionTier(t *testing.T) {
	scorer, network := testScorer(t)
	req := testRequest(t, "서울역", "강남역", "08:00", []int{1})

	tests := []struct {
		departure string
		want      CongestionTier
	}{
		{"08:00", CongestionHigh},
		{"12:00", CongestionMedium},
		{"22:00", CongestionLow},
		// The tier's evening window is 17-19, one hour ahead of the
		// congestion model's 18-20 rush definition.
		{"17:30", CongestionHigh},
		{"19:30", CongestionLow},
	}

	for _, tc := range tests {
		route := testRoute(t, network, "150", "222", tc.departure, 4.0, 10, 9)
		result, err := scorer.ScoreMatch(route, req)
		require.NoError(t, err)
		assert.Equal(t, tc.want, result.Route.Congestion, "departure=%s", tc.departure)
	}

	// Sanity: 19:30 is rush hour for the congestion model even though the
	// tier above calls it low.
	at, err := transit.ParseClock("19:30")
	require.NoError(t, err)
	assert.True(t, transit.IsRushHour(at))
}

func TestScoreMatchEmptyPreferredDays(t *testing.T) {
	scorer, network := testScorer(t)

	route := testRoute(t, network, "150", "222", "08:00", 4.5, 0, 0)
	req := testRequest(t, "서울역", "강남역", "08:00", nil)

	result, err := scorer.ScoreMatch(route, req)
	require.NoError(t, err)

	assert.Equal(t, 0.0, result.Breakdown.ScheduleFlexibility)
	assert.Equal(t, 20, result.TimeMatchScore)
	assert.Equal(t, 86, result.TotalScore)
}
