package matching

import (
	"context"

	"github.com/google/uuid"
)

// RouteRepository defines the persistence contract for giller route profiles.
type RouteRepository interface {
	// Save persists a new route profile.
	Save(ctx context.Context, route *GillerRoute) error

	// FindByID retrieves a route profile by its unique identifier.
	FindByID(ctx context.Context, id uuid.UUID) (*GillerRoute, error)

	// FindByGillerID retrieves route profiles for one giller with pagination.
	FindByGillerID(ctx context.Context, gillerID uuid.UUID, page, limit int) ([]*GillerRoute, int64, error)

	// ListAll retrieves every stored route profile for batch matching.
	ListAll(ctx context.Context) ([]*GillerRoute, error)

	// Count returns the number of stored route profiles.
	Count(ctx context.Context) (int64, error)
}

// RequestRepository defines the persistence contract for delivery requests.
type RequestRepository interface {
	// Save persists a new delivery request.
	Save(ctx context.Context, req *DeliveryRequest) error

	// FindByID retrieves a delivery request by its unique identifier.
	FindByID(ctx context.Context, id uuid.UUID) (*DeliveryRequest, error)

	// FindByGllerID retrieves requests posted by one gller with pagination.
	FindByGllerID(ctx context.Context, gllerID uuid.UUID, page, limit int) ([]*DeliveryRequest, int64, error)

	// Count returns the number of stored delivery requests.
	Count(ctx context.Context) (int64, error)
}
