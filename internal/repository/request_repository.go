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
)

// RequestModel is the GORM model for the delivery_requests table.
type RequestModel struct {
	ID                  uuid.UUID       `gorm:"type:uuid;primaryKey"`
	GllerID             uuid.UUID       `gorm:"type:uuid;index;not null"`
	PickupStationName   string          `gorm:"not null;size:50"`
	DeliveryStationName string          `gorm:"not null;size:50"`
	PickupWindowStart   string          `gorm:"not null;size:5"`
	PickupWindowEnd     string          `gorm:"not null;size:5"`
	DeliveryDeadline    string          `gorm:"not null;size:5"`
	PreferredDays       json.RawMessage `gorm:"type:jsonb;not null"`
	PackageSize         string          `gorm:"not null;size:10"`
	WeightKg            float64         `gorm:"not null"`
	CreatedAt           time.Time       `gorm:"not null"`
}

// TableName returns the table name for the GORM model.
func (RequestModel) TableName() string {
	return "delivery_requests"
}

// GormRequestRepository is the GORM-based implementation of RequestRepository.
type GormRequestRepository struct {
	db *gorm.DB
}

// NewGormRequestRepository creates a delivery-request repository.
func NewGormRequestRepository(db *gorm.DB) *GormRequestRepository {
	return &GormRequestRepository{db: db}
}

// Save persists a new delivery request.
func (r *GormRequestRepository) Save(ctx context.Context, req *matching.DeliveryRequest) error {
	model, err := toRequestModel(req)
	if err != nil {
		return fmt.Errorf("failed to convert request to model: %w", err)
	}
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to save delivery request: %w", err)
	}
	return nil
}

// FindByID retrieves a delivery request by its unique identifier.
func (r *GormRequestRepository) FindByID(ctx context.Context, id uuid.UUID) (*matching.DeliveryRequest, error) {
	var model RequestModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("DeliveryRequest", id.String())
		}
		return nil, fmt.Errorf("failed to find delivery request by ID: %w", err)
	}
	return toDomainRequest(&model)
}

// FindByGllerID retrieves requests posted by one gller with pagination.
func (r *GormRequestRepository) FindByGllerID(ctx context.Context, gllerID uuid.UUID, page, limit int) ([]*matching.DeliveryRequest, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&RequestModel{}).Where("gller_id = ?", gllerID).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count gller requests: %w", err)
	}

	var models []RequestModel
	offset := (page - 1) * limit
	if err := r.db.WithContext(ctx).
		Where("gller_id = ?", gllerID).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&models).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to find gller requests: %w", err)
	}

	requests := make([]*matching.DeliveryRequest, len(models))
	for i, m := range models {
		req, err := toDomainRequest(&m)
		if err != nil {
			return nil, 0, err
		}
		requests[i] = req
	}
	return requests, total, nil
}

// Count returns the number of stored delivery requests.
func (r *GormRequestRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&RequestModel{}).Count(&total).Error; err != nil {
		return 0, fmt.Errorf("failed to count delivery requests: %w", err)
	}
	return total, nil
}

// --- Conversion helpers ---

func toRequestModel(req *matching.DeliveryRequest) (*RequestModel, error) {
	days, err := json.Marshal(req.PreferredDays)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal preferred days: %w", err)
	}
	return &RequestModel{
		ID:                  req.ID,
		GllerID:             req.GllerID,
		PickupStationName:   req.PickupStationName,
		DeliveryStationName: req.DeliveryStationName,
		PickupWindowStart:   req.PickupWindowStart,
		PickupWindowEnd:     req.PickupWindowEnd,
		DeliveryDeadline:    req.DeliveryDeadline,
		PreferredDays:       days,
		PackageSize:         string(req.PackageSize),
		WeightKg:            req.WeightKg,
		CreatedAt:           req.CreatedAt,
	}, nil
}

func toDomainRequest(m *RequestModel) (*matching.DeliveryRequest, error) {
	var days []int
	if err := json.Unmarshal(m.PreferredDays, &days); err != nil {
		return nil, fmt.Errorf("failed to unmarshal preferred days: %w", err)
	}

	return &matching.DeliveryRequest{
		ID:                  m.ID,
		GllerID:             m.GllerID,
		PickupStationName:   m.PickupStationName,
		DeliveryStationName: m.DeliveryStationName,
		PickupWindowStart:   m.PickupWindowStart,
		PickupWindowEnd:     m.PickupWindowEnd,
		DeliveryDeadline:    m.DeliveryDeadline,
		PreferredDays:       days,
		PackageSize:         matching.PackageSize(m.PackageSize),
		WeightKg:            m.WeightKg,
		CreatedAt:           m.CreatedAt,
	}, nil
}
