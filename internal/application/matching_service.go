package application

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ganengile/service-matching/internal/domain"
	"github.com/ganengile/service-matching/internal/domain/matching"
	"github.com/ganengile/service-matching/internal/domain/transit"
	"github.com/ganengile/service-matching/internal/events"
	"github.com/ganengile/service-matching/internal/kafka"
)

// CreateRouteRequest holds the data needed to register a commute route.
type CreateRouteRequest struct {
	Name                string  `json:"name" binding:"required"`
	StartStationID      string  `json:"start_station_id" binding:"required"`
	EndStationID        string  `json:"end_station_id" binding:"required"`
	DepartureTime       string  `json:"departure_time" binding:"required"`
	DaysOfWeek          []int   `json:"days_of_week" binding:"required"`
	Rating              float64 `json:"rating"`
	TotalDeliveries     int     `json:"total_deliveries"`
	CompletedDeliveries int     `json:"completed_deliveries"`
}

// CreateDeliveryRequest holds the data needed to post a delivery request.
type CreateDeliveryRequest struct {
	PickupStationName   string  `json:"pickup_station_name" binding:"required"`
	DeliveryStationName string  `json:"delivery_station_name" binding:"required"`
	PickupWindowStart   string  `json:"pickup_window_start" binding:"required"`
	PickupWindowEnd     string  `json:"pickup_window_end" binding:"required"`
	DeliveryDeadline    string  `json:"delivery_deadline" binding:"required"`
	PreferredDays       []int   `json:"preferred_days"`
	PackageSize         string  `json:"package_size" binding:"required"`
	WeightKg            float64 `json:"weight_kg" binding:"required"`
}

// MatchingStatsDTO holds counts for the admin dashboard.
type MatchingStatsDTO struct {
	TotalRoutes   int64 `json:"total_routes"`
	TotalRequests int64 `json:"total_requests"`
}

// MatchingService orchestrates the matching use cases: storing route
// profiles and requests, running the scorer, and publishing results.
type MatchingService struct {
	routes   matching.RouteRepository
	requests matching.RequestRepository
	scorer   matching.Scorer
	network  *transit.Network
	producer *kafka.Producer
	logger   *zap.Logger
}

// NewMatchingService creates a MatchingService.
func NewMatchingService(
	routes matching.RouteRepository,
	requests matching.RequestRepository,
	scorer matching.Scorer,
	network *transit.Network,
	producer *kafka.Producer,
	logger *zap.Logger,
) *MatchingService {
	return &MatchingService{
		routes:   routes,
		requests: requests,
		scorer:   scorer,
		network:  network,
		producer: producer,
		logger:   logger,
	}
}

// CreateRoute registers a commute route profile for the given giller.
func (s *MatchingService) CreateRoute(ctx context.Context, gillerID uuid.UUID, req CreateRouteRequest) (*matching.GillerRoute, error) {
	start, ok := s.network.Stations.GetByID(req.StartStationID)
	if !ok {
		return nil, domain.NewNotFoundError("Station", req.StartStationID)
	}
	end, ok := s.network.Stations.GetByID(req.EndStationID)
	if !ok {
		return nil, domain.NewNotFoundError("Station", req.EndStationID)
	}

	rating := req.Rating
	if rating == 0 {
		// New gillers start at the midpoint until they earn real ratings.
		rating = 3
	}

	route, err := matching.NewGillerRoute(
		gillerID,
		req.Name,
		start,
		end,
		req.DepartureTime,
		req.DaysOfWeek,
		rating,
		req.TotalDeliveries,
		req.CompletedDeliveries,
	)
	if err != nil {
		return nil, err
	}

	if err := s.routes.Save(ctx, route); err != nil {
		return nil, fmt.Errorf("failed to save route: %w", err)
	}
	return route, nil
}

// GetGillerRoutes retrieves paginated route profiles for one giller.
func (s *MatchingService) GetGillerRoutes(ctx context.Context, gillerID uuid.UUID, page, limit int) (*domain.PaginatedResult[*matching.GillerRoute], error) {
	routes, total, err := s.routes.FindByGillerID(ctx, gillerID, page, limit)
	if err != nil {
		return nil, err
	}
	result := domain.NewPaginatedResult(routes, total, page, limit)
	return &result, nil
}

// CreateRequest stores a delivery request and announces it on the delivery
// topic so matching runs asynchronously.
func (s *MatchingService) CreateRequest(ctx context.Context, gllerID uuid.UUID, req CreateDeliveryRequest) (*matching.DeliveryRequest, error) {
	request, err := matching.NewDeliveryRequest(
		gllerID,
		req.PickupStationName,
		req.DeliveryStationName,
		req.PickupWindowStart,
		req.PickupWindowEnd,
		req.DeliveryDeadline,
		req.PreferredDays,
		matching.PackageSize(req.PackageSize),
		req.WeightKg,
	)
	if err != nil {
		return nil, err
	}

	if err := s.requests.Save(ctx, request); err != nil {
		return nil, fmt.Errorf("failed to save delivery request: %w", err)
	}

	evt := events.DeliveryRequestedEvent{
		RequestID:       request.ID,
		GllerID:         request.GllerID,
		PickupStation:   request.PickupStationName,
		DeliveryStation: request.DeliveryStationName,
		OccurredAt:      time.Now().UTC(),
	}
	s.publishEvent(ctx, events.TopicDeliveryEvents, events.DeliveryRequested, evt)

	return request, nil
}

// MatchRequest runs the scorer over every stored route profile and returns
// the ranked matches for the request. Nothing is persisted; the result is
// recomputed on every call.
func (s *MatchingService) MatchRequest(ctx context.Context, requestID uuid.UUID, limit int) ([]matching.MatchingResult, error) {
	request, err := s.requests.FindByID(ctx, requestID)
	if err != nil {
		return nil, err
	}

	routes, err := s.routes.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load route profiles: %w", err)
	}

	candidates := make([]matching.GillerRoute, len(routes))
	for i, r := range routes {
		candidates[i] = *r
	}

	results := s.scorer.TopMatches(candidates, *request, limit)

	s.publishMatchesRanked(ctx, requestID, results)
	return results, nil
}

// Stats returns aggregate counts for the admin dashboard.
func (s *MatchingService) Stats(ctx context.Context) (*MatchingStatsDTO, error) {
	totalRoutes, err := s.routes.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count routes: %w", err)
	}
	totalRequests, err := s.requests.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count requests: %w", err)
	}
	return &MatchingStatsDTO{
		TotalRoutes:   totalRoutes,
		TotalRequests: totalRequests,
	}, nil
}

func (s *MatchingService) publishMatchesRanked(ctx context.Context, requestID uuid.UUID, results []matching.MatchingResult) {
	ranked := make([]events.RankedMatch, len(results))
	for i, r := range results {
		ranked[i] = events.RankedMatch{
			GillerRouteID: r.GillerRouteID,
			TotalScore:    r.TotalScore,
			Reasons:       r.Reasons,
		}
	}
	evt := events.MatchesRankedEvent{
		RequestID:  requestID,
		Matches:    ranked,
		OccurredAt: time.Now().UTC(),
	}
	s.publishEvent(ctx, events.TopicMatchingEvents, events.MatchesRanked, evt)
}

func (s *MatchingService) publishEvent(ctx context.Context, topic, eventType string, data interface{}) {
	cloudEvent, err := kafka.NewCloudEvent("service-matching", eventType, data)
	if err != nil {
		s.logger.Error("failed to create cloud event",
			zap.String("event_type", eventType),
			zap.Error(err),
		)
		return
	}

	if err := s.producer.PublishEvent(ctx, topic, cloudEvent); err != nil {
		s.logger.Error("failed to publish event",
			zap.String("topic", topic),
			zap.String("event_type", eventType),
			zap.Error(err),
		)
	}
}
