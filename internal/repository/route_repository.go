package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ganengile/service-matching/internal/domain"
	"github.com/ganengile/service-matching/internal/domain/matching"
	"github.com/ganengile/service-matching/internal/domain/transit"
)

// RouteModel is the GORM model for the giller_routes table. Stations are
// stored by ID and resolved against the station directory on load.
type RouteModel struct {
	ID                  uuid.UUID       `gorm:"type:uuid;primaryKey"`
	GillerID            uuid.UUID       `gorm:"type:uuid;index;not null"`
	Name                string          `gorm:"not null;size:100"`
	StartStationID      string          `gorm:"not null;size:10"`
	EndStationID        string          `gorm:"not null;size:10"`
	DepartureTime       string          `gorm:"not null;size:5"`
	DaysOfWeek          json.RawMessage `gorm:"type:jsonb;not null"`
	Rating              float64         `gorm:"not null"`
	TotalDeliveries     int             `gorm:"not null;default:0"`
	CompletedDeliveries int             `gorm:"not null;default:0"`
	CreatedAt           time.Time       `gorm:"not null"`
	UpdatedAt           time.Time       `gorm:"not null"`
}

// TableName returns the table name for the GORM model.
func (RouteModel) TableName() string {
	return "giller_routes"
}

// GormRouteRepository is the GORM-based implementation of RouteRepository.
type GormRouteRepository struct {
	db       *gorm.DB
	stations *transit.StationDirectory
}

// NewGormRouteRepository creates a route repository. The station directory is
// needed to rehydrate start/end stations from their stored IDs.
func NewGormRouteRepository(db *gorm.DB, stations *transit.StationDirectory) *GormRouteRepository {
	return &GormRouteRepository{db: db, stations: stations}
}

// Save persists a new route profile.
func (r *GormRouteRepository) Save(ctx context.Context, route *matching.GillerRoute) error {
	model, err := toRouteModel(route)
	if err != nil {
		return fmt.Errorf("failed to convert route to model: %w", err)
	}
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to save route: %w", err)
	}
	return nil
}

// FindByID retrieves a route profile by its unique identifier.
func (r *GormRouteRepository) FindByID(ctx context.Context, id uuid.UUID) (*matching.GillerRoute, error) {
	var model RouteModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("GillerRoute", id.String())
		}
		return nil, fmt.Errorf("failed to find route by ID: %w", err)
	}
	return r.toDomainRoute(&model)
}

// FindByGillerID retrieves route profiles for one giller with pagination.
func (r *GormRouteRepository) FindByGillerID(ctx context.Context, gillerID uuid.UUID, page, limit int) ([]*matching.GillerRoute, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&RouteModel{}).Where("giller_id = ?", gillerID).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count giller routes: %w", err)
	}

	var models []RouteModel
	offset := (page - 1) * limit
	if err := r.db.WithContext(ctx).
		Where("giller_id = ?", gillerID).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&models).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to find giller routes: %w", err)
	}

	routes := make([]*matching.GillerRoute, len(models))
	for i, m := range models {
		route, err := r.toDomainRoute(&m)
		if err != nil {
			return nil, 0, err
		}
		routes[i] = route
	}
	return routes, total, nil
}

// ListAll retrieves every stored route profile for batch matching.
func (r *GormRouteRepository) ListAll(ctx context.Context) ([]*matching.GillerRoute, error) {
	var models []RouteModel
	if err := r.db.WithContext(ctx).Order("created_at ASC").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list routes: %w", err)
	}

	routes := make([]*matching.GillerRoute, len(models))
	for i, m := range models {
		route, err := r.toDomainRoute(&m)
		if err != nil {
			return nil, err
		}
		routes[i] = route
	}
	return routes, nil
}

// Count returns the number of stored route profiles.
func (r *GormRouteRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&RouteModel{}).Count(&total).Error; err != nil {
		return 0, fmt.Errorf("failed to count routes: %w", err)
	}
	return total, nil
}

// --- Conversion helpers ---

func toRouteModel(route *matching.GillerRoute) (*RouteModel, error) {
	days, err := json.Marshal(route.DaysOfWeek)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal days of week: %w", err)
	}
	return &RouteModel{
		ID:                  route.ID,
		GillerID:            route.GillerID,
		Name:                route.Name,
		StartStationID:      route.StartStation.ID,
		EndStationID:        route.EndStation.ID,
		DepartureTime:       route.DepartureTime,
		DaysOfWeek:          days,
		Rating:              route.Rating,
		TotalDeliveries:     route.TotalDeliveries,
		CompletedDeliveries: route.CompletedDeliveries,
		CreatedAt:           route.CreatedAt,
		UpdatedAt:           route.UpdatedAt,
	}, nil
}

func (r *GormRouteRepository) toDomainRoute(m *RouteModel) (*matching.GillerRoute, error) {
	var days []int
	if err := json.Unmarshal(m.DaysOfWeek, &days); err != nil {
		return nil, fmt.Errorf("failed to unmarshal days of week: %w", err)
	}

	start, ok := r.stations.GetByID(m.StartStationID)
	if !ok {
		return nil, domain.NewNotFoundError("Station", m.StartStationID)
	}
	end, ok := r.stations.GetByID(m.EndStationID)
	if !ok {
		return nil, domain.NewNotFoundError("Station", m.EndStationID)
	}

	return &matching.GillerRoute{
		ID:                  m.ID,
		GillerID:            m.GillerID,
		Name:                m.Name,
		StartStation:        start,
		EndStation:          end,
		DepartureTime:       m.DepartureTime,
		DaysOfWeek:          days,
		Rating:              m.Rating,
		TotalDeliveries:     m.TotalDeliveries,
		CompletedDeliveries: m.CompletedDeliveries,
		CreatedAt:           m.CreatedAt,
		UpdatedAt:           m.UpdatedAt,
	}, nil
}
