package matching

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ganengile/service-matching/internal/domain"
	"github.com/ganengile/service-matching/internal/domain/transit"
)

// PackageSize classifies the parcel a gller wants delivered.
type PackageSize string

const (
	PackageSizeSmall  PackageSize = "small"
	PackageSizeMedium PackageSize = "medium"
	PackageSizeLarge  PackageSize = "large"
)

// IsValid returns true if the package size is recognized.
func (p PackageSize) IsValid() bool {
	switch p {
	case PackageSizeSmall, PackageSizeMedium, PackageSizeLarge:
		return true
	}
	return false
}

// GillerRoute is a courier's habitual commute: the giller rides this route
// anyway and picks up deliveries along it.
type GillerRoute struct {
	ID                  uuid.UUID       `json:"id"`
	GillerID            uuid.UUID       `json:"giller_id"`
	Name                string          `json:"name"`
	StartStation        transit.Station `json:"start_station"`
	EndStation          transit.Station `json:"end_station"`
	DepartureTime       string          `json:"departure_time"` // "HH:mm"
	DaysOfWeek          []int           `json:"days_of_week"`   // 1 (Mon) .. 7 (Sun)
	Rating              float64         `json:"rating"`         // 1-5
	TotalDeliveries     int             `json:"total_deliveries"`
	CompletedDeliveries int             `json:"completed_deliveries"`
	CreatedAt           time.Time       `json:"created_at"`
	UpdatedAt           time.Time       `json:"updated_at"`
}

// NewGillerRoute validates and creates a route profile.
func NewGillerRoute(
	gillerID uuid.UUID,
	name string,
	start, end transit.Station,
	departureTime string,
	daysOfWeek []int,
	rating float64,
	totalDeliveries, completedDeliveries int,
) (*GillerRoute, error) {
	if gillerID == uuid.Nil {
		return nil, domain.NewValidationError("giller ID is required")
	}
	if name == "" {
		return nil, domain.NewValidationError("route name is required")
	}
	if start.ID == "" || end.ID == "" {
		return nil, domain.NewValidationError("start and end stations are required")
	}
	if _, err := transit.ParseClock(departureTime); err != nil {
		return nil, domain.NewValidationError(fmt.Sprintf("invalid departure time: %v", err))
	}
	if len(daysOfWeek) == 0 {
		return nil, domain.NewValidationError("at least one day of week is required")
	}
	if !validDays(daysOfWeek) {
		return nil, domain.NewValidationError("days of week must be within 1-7")
	}
	if rating < 1 || rating > 5 {
		return nil, domain.NewValidationError("rating must be within 1-5")
	}
	if totalDeliveries < 0 || completedDeliveries < 0 {
		return nil, domain.NewValidationError("delivery counts cannot be negative")
	}

	now := time.Now().UTC()
	return &GillerRoute{
		ID:                  uuid.New(),
		GillerID:            gillerID,
		Name:                name,
		StartStation:        start,
		EndStation:          end,
		DepartureTime:       departureTime,
		DaysOfWeek:          daysOfWeek,
		Rating:              rating,
		TotalDeliveries:     totalDeliveries,
		CompletedDeliveries: completedDeliveries,
		CreatedAt:           now,
		UpdatedAt:           now,
	}, nil
}

// DeliveryRequest is a pending delivery posted by a gller (the requester,
// kept distinct from "giller" per product naming). Pickup and delivery
// stations are referenced by exact Korean name and resolved by the engine.
type DeliveryRequest struct {
	ID                  uuid.UUID   `json:"id"`
	GllerID             uuid.UUID   `json:"gller_id"`
	PickupStationName   string      `json:"pickup_station_name"`
	DeliveryStationName string      `json:"delivery_station_name"`
	PickupWindowStart   string      `json:"pickup_window_start"` // "HH:mm"
	PickupWindowEnd     string      `json:"pickup_window_end"`
	DeliveryDeadline    string      `json:"delivery_deadline"`
	PreferredDays       []int       `json:"preferred_days"`
	PackageSize         PackageSize `json:"package_size"`
	WeightKg            float64     `json:"weight_kg"`
	CreatedAt           time.Time   `json:"created_at"`
}

// NewDeliveryRequest validates and creates a delivery request. PreferredDays
// may be empty; the engine treats that as zero schedule flexibility.
func NewDeliveryRequest(
	gllerID uuid.UUID,
	pickupStationName, deliveryStationName string,
	pickupWindowStart, pickupWindowEnd, deliveryDeadline string,
	preferredDays []int,
	packageSize PackageSize,
	weightKg float64,
) (*DeliveryRequest, error) {
	if gllerID == uuid.Nil {
		return nil, domain.NewValidationError("gller ID is required")
	}
	if pickupStationName == "" || deliveryStationName == "" {
		return nil, domain.NewValidationError("pickup and delivery station names are required")
	}
	start, err := transit.ParseClock(pickupWindowStart)
	if err != nil {
		return nil, domain.NewValidationError(fmt.Sprintf("invalid pickup window start: %v", err))
	}
	end, err := transit.ParseClock(pickupWindowEnd)
	if err != nil {
		return nil, domain.NewValidationError(fmt.Sprintf("invalid pickup window end: %v", err))
	}
	if end < start {
		return nil, domain.NewValidationError("pickup window end precedes start")
	}
	if _, err := transit.ParseClock(deliveryDeadline); err != nil {
		return nil, domain.NewValidationError(fmt.Sprintf("invalid delivery deadline: %v", err))
	}
	if !validDays(preferredDays) {
		return nil, domain.NewValidationError("preferred days must be within 1-7")
	}
	if !packageSize.IsValid() {
		return nil, domain.NewValidationError(fmt.Sprintf("invalid package size: %s", packageSize))
	}
	if weightKg <= 0 {
		return nil, domain.NewValidationError("package weight must be positive")
	}

	return &DeliveryRequest{
		ID:                  uuid.New(),
		GllerID:             gllerID,
		PickupStationName:   pickupStationName,
		DeliveryStationName: deliveryStationName,
		PickupWindowStart:   pickupWindowStart,
		PickupWindowEnd:     pickupWindowEnd,
		DeliveryDeadline:    deliveryDeadline,
		PreferredDays:       preferredDays,
		PackageSize:         packageSize,
		WeightKg:            weightKg,
		CreatedAt:           time.Now().UTC(),
	}, nil
}

func validDays(days []int) bool {
	for _, d := range days {
		if d < 1 || d > 7 {
			return false
		}
	}
	return true
}

// CongestionTier is the coarse crowding classification attached to a match.
type CongestionTier string

const (
	CongestionLow    CongestionTier = "low"
	CongestionMedium CongestionTier = "medium"
	CongestionHigh   CongestionTier = "high"
)

// ScoreBreakdown carries the unrounded inputs behind the four components.
type ScoreBreakdown struct {
	PickupStationScore   float64 `json:"pickup_station_score"`
	DeliveryStationScore float64 `json:"delivery_station_score"`
	DepartureTimeMatch   float64 `json:"departure_time_match"`
	ScheduleFlexibility  float64 `json:"schedule_flexibility"`
	RatingRaw            float64 `json:"rating_raw"`
	CompletionRateRaw    float64 `json:"completion_rate_raw"`
}

// RouteDetails describes the physical trip behind a match. Missing
// travel-time legs contribute zero rather than failing the match.
type RouteDetails struct {
	TotalTravelTimeSec int            `json:"total_travel_time_sec"`
	TransferCount      int            `json:"transfer_count"`
	HasExpress         bool           `json:"has_express"`
	Congestion         CongestionTier `json:"congestion"`
}

// MatchingResult is the engine's output for one (route, request) pair. It is
// purely derived and never persisted.
type MatchingResult struct {
	GillerRouteID       uuid.UUID      `json:"giller_route_id"`
	RequestID           uuid.UUID      `json:"request_id"`
	TotalScore          int            `json:"total_score"`           // 0-100
	RouteMatchScore     int            `json:"route_match_score"`     // 0-50
	TimeMatchScore      int            `json:"time_match_score"`      // 0-30
	RatingScore         int            `json:"rating_score"`          // 0-15
	CompletionRateScore int            `json:"completion_rate_score"` // 0-5
	Breakdown           ScoreBreakdown `json:"breakdown"`
	Route               RouteDetails   `json:"route"`
	Reasons             []string       `json:"reasons"`
}
