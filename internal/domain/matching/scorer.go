package matching

import (
	"fmt"
	"math"
	"sort"

	"go.uber.org/zap"

	"github.com/ganengile/service-matching/internal/domain"
	"github.com/ganengile/service-matching/internal/domain/transit"
)

// DefaultTopMatches is the number of results TopMatches returns when the
// caller does not ask for a specific limit.
const DefaultTopMatches = 5

// Scorer ranks giller routes against a delivery request.
type Scorer interface {
	// ScoreMatch scores a single route against a request.
	ScoreMatch(route GillerRoute, req DeliveryRequest) (MatchingResult, error)

	// MatchRoutes scores every route, drops the ones that fail, and returns
	// the rest sorted by descending total score (ties keep input order).
	MatchRoutes(routes []GillerRoute, req DeliveryRequest) []MatchingResult

	// TopMatches returns at most limit results from MatchRoutes.
	TopMatches(routes []GillerRoute, req DeliveryRequest, limit int) []MatchingResult
}

// TransitScorer scores matches against a fixed transit network. It is
// stateless apart from the immutable network and safe for concurrent use.
type TransitScorer struct {
	network *transit.Network
	logger  *zap.Logger
}

// NewTransitScorer creates a TransitScorer over the given network.
func NewTransitScorer(network *transit.Network, logger *zap.Logger) *TransitScorer {
	return &TransitScorer{network: network, logger: logger}
}

// ScoreMatch computes the full weighted score for one (route, request) pair.
// It fails when either request station name does not resolve; the caller
// decides whether that is fatal.
func (s *TransitScorer) ScoreMatch(route GillerRoute, req DeliveryRequest) (MatchingResult, error) {
	pickup, ok := s.network.Stations.GetByName(req.PickupStationName)
	if !ok {
		return MatchingResult{}, domain.NewNotFoundError("Station", req.PickupStationName)
	}
	delivery, ok := s.network.Stations.GetByName(req.DeliveryStationName)
	if !ok {
		return MatchingResult{}, domain.NewNotFoundError("Station", req.DeliveryStationName)
	}

	departure, err := transit.ParseClock(route.DepartureTime)
	if err != nil {
		return MatchingResult{}, domain.NewValidationError(fmt.Sprintf("route departure time: %v", err))
	}
	windowStart, err := transit.ParseClock(req.PickupWindowStart)
	if err != nil {
		return MatchingResult{}, domain.NewValidationError(fmt.Sprintf("pickup window start: %v", err))
	}

	pickupScore := StationOnRouteScore(route.StartStation, route.EndStation, pickup)
	deliveryScore := StationOnRouteScore(route.StartStation, route.EndStation, delivery)
	routeScore := pickupScore + deliveryScore

	details := s.routeDetails(route.StartStation, pickup, delivery, departure)

	timeMatch := DepartureTimeMatch(departure, windowStart)
	flexibility := ScheduleFlexibility(req.PreferredDays, route.DaysOfWeek)
	timeScore := timeMatch + flexibility

	ratingRaw := RatingScore(route.Rating)
	completionRaw := CompletionRateScore(route.TotalDeliveries, route.CompletedDeliveries)

	// Each component is rounded on its own before summing; rounding the
	// exact sum instead would change totals.
	routeRounded := roundScore(routeScore)
	timeRounded := roundScore(timeScore)
	ratingRounded := roundScore(ratingRaw)
	completionRounded := roundScore(completionRaw)

	return MatchingResult{
		GillerRouteID:       route.ID,
		RequestID:           req.ID,
		TotalScore:          routeRounded + timeRounded + ratingRounded + completionRounded,
		RouteMatchScore:     routeRounded,
		TimeMatchScore:      timeRounded,
		RatingScore:         ratingRounded,
		CompletionRateScore: completionRounded,
		Breakdown: ScoreBreakdown{
			PickupStationScore:   pickupScore,
			DeliveryStationScore: deliveryScore,
			DepartureTimeMatch:   timeMatch,
			ScheduleFlexibility:  flexibility,
			RatingRaw:            ratingRaw,
			CompletionRateRaw:    completionRaw,
		},
		Route:   details,
		Reasons: buildReasons(routeRounded, timeRounded, ratingRounded, completionRounded),
	}, nil
}

// MatchRoutes maps every route through ScoreMatch. A route that fails is
// logged and excluded from the result set; the batch itself never aborts.
func (s *TransitScorer) MatchRoutes(routes []GillerRoute, req DeliveryRequest) []MatchingResult {
	results := make([]MatchingResult, 0, len(routes))
	for _, route := range routes {
		result, err := s.ScoreMatch(route, req)
		if err != nil {
			s.logger.Warn("excluding giller route from match batch",
				zap.String("route_id", route.ID.String()),
				zap.String("request_id", req.ID.String()),
				zap.Error(err),
			)
			continue
		}
		results = append(results, result)
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].TotalScore > results[j].TotalScore
	})
	return results
}

// TopMatches sorts the full batch and slices it; fine at the fleet sizes the
// service sees.
func (s *TransitScorer) TopMatches(routes []GillerRoute, req DeliveryRequest, limit int) []MatchingResult {
	if limit <= 0 {
		limit = DefaultTopMatches
	}
	results := s.MatchRoutes(routes, req)
	if len(results) > limit {
		results = results[:limit]
	}
	return results
}

// StationOnRouteScore is the three-tier station fit heuristic: 25 points when
// the target is one of the route's endpoints, 20 when it shares a line with
// either endpoint, otherwise a flat 15 assuming a single transfer. This is a
// classifier, not a path search.
func StationOnRouteScore(routeStart, routeEnd, target transit.Station) float64 {
	if target.ID == routeStart.ID || target.ID == routeEnd.ID {
		return 25
	}
	if target.SharesLineWith(routeStart) || target.SharesLineWith(routeEnd) {
		return 20
	}
	return 15
}

// DepartureTimeMatch scores how closely the giller's departure lines up with
// the pickup window start: 20 at zero gap, falling to 0 at a 60-minute gap.
func DepartureTimeMatch(departure, windowStart transit.ClockMinutes) float64 {
	gap := math.Abs(float64(departure) - float64(windowStart))
	return math.Max(0, 20-gap/3)
}

// ScheduleFlexibility scores the day-of-week overlap between the request's
// preferred days and the route's operating days, 0-10. An empty preferred
// set yields 0 rather than dividing by zero.
func ScheduleFlexibility(preferredDays, routeDays []int) float64 {
	if len(preferredDays) == 0 {
		return 0
	}
	routeSet := make(map[int]struct{}, len(routeDays))
	for _, d := range routeDays {
		routeSet[d] = struct{}{}
	}
	overlap := 0
	for _, d := range preferredDays {
		if _, ok := routeSet[d]; ok {
			overlap++
		}
	}
	return float64(overlap) / float64(len(preferredDays)) * 10
}

// RatingScore maps a 1-5 rating linearly onto 0-15. Out-of-domain input is
// clamped.
func RatingScore(rating float64) float64 {
	if rating < 1 {
		rating = 1
	}
	if rating > 5 {
		rating = 5
	}
	return (rating - 1.0) / 4.0 * 15
}

// CompletionRateScore maps the completion ratio onto 0-5, with a neutral 2.5
// for gillers with no history. Completed is clamped to the total.
func CompletionRateScore(total, completed int) float64 {
	if total <= 0 {
		return 2.5
	}
	if completed < 0 {
		completed = 0
	}
	if completed > total {
		completed = total
	}
	return float64(completed) / float64(total) * 5
}

// routeDetails assembles the informational trip summary for the breakdown.
// Legs missing from the travel-time table contribute zero, an accepted
// approximation.
func (s *TransitScorer) routeDetails(start, pickup, delivery transit.Station, departure transit.ClockMinutes) RouteDetails {
	details := RouteDetails{Congestion: departureCongestionTier(departure)}

	if leg, ok := s.network.TravelTimes.Lookup(start.ID, pickup.ID); ok {
		details.TotalTravelTimeSec += leg.NormalTimeSec
		details.TransferCount += leg.TransferCount
		details.HasExpress = details.HasExpress || leg.HasExpress
	}
	if leg, ok := s.network.TravelTimes.Lookup(pickup.ID, delivery.ID); ok {
		details.TotalTravelTimeSec += leg.NormalTimeSec
		details.TransferCount += leg.TransferCount
		details.HasExpress = details.HasExpress || leg.HasExpress
	}
	return details
}

// departureCongestionTier buckets the giller's departure hour. Its high
// window (07-09, 17-19) deliberately differs from the congestion model's
// rush definition (07-09, 18-20); both are kept as-is pending a product
// decision.
func departureCongestionTier(departure transit.ClockMinutes) CongestionTier {
	hour := departure.Hour()
	switch {
	case (hour >= 7 && hour < 9) || (hour >= 17 && hour < 19):
		return CongestionHigh
	case hour >= 9 && hour < 17:
		return CongestionMedium
	default:
		return CongestionLow
	}
}

// buildReasons renders human-readable tags from fixed component thresholds,
// always in route, time, rating, completion order.
func buildReasons(routeScore, timeScore, ratingScore, completionScore int) []string {
	var reasons []string

	switch {
	case routeScore >= 40:
		reasons = append(reasons, "pickup and delivery sit directly on the commute route")
	case routeScore >= 30:
		reasons = append(reasons, "pickup and delivery are on lines the commute already uses")
	case routeScore >= 20:
		reasons = append(reasons, "pickup and delivery reachable with a single transfer")
	}

	switch {
	case timeScore >= 25:
		reasons = append(reasons, "departure lines up with the pickup window")
	case timeScore >= 20:
		reasons = append(reasons, "departure is close to the pickup window")
	case timeScore < 15:
		reasons = append(reasons, "departure is far from the pickup window")
	}

	switch {
	case ratingScore >= 12:
		reasons = append(reasons, "highly rated giller")
	case ratingScore >= 9:
		reasons = append(reasons, "well rated giller")
	}

	if completionScore >= 4 {
		reasons = append(reasons, "strong completion history")
	} else if completionScore < 3 {
		reasons = append(reasons, "limited completion history")
	}

	return reasons
}

// roundScore rounds half away from zero, matching how the totals were
// historically computed.
func roundScore(v float64) int {
	return int(math.Round(v))
}
