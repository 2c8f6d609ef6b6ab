package domain

import (
	"context"
	"errors"
)

var (
	ErrInvalidID       = errors.New("invalid plant id")
	ErrInvalidName     = errors.New("invalid plant name")
	ErrInvalidInterval = errors.New("watering interval must be at least one day")
	ErrInvalidLiters   = errors.New("liters must be positive")
	ErrInvalidOwner    = errors.New("invalid owner")
	ErrNotFound        = errors.New("plant not found")
)

type Service interface {
	// Create adds a plant with no schedule yet: last_watered_at and
	// next_water_at both start null.
	Create(ctx context.Context, req CreatePlantRequest) (Plant, error)
	List(ctx context.Context) ([]Plant, error)
	Get(ctx context.Context, id string) (Plant, []WateringHistory, error)
	// RegisterWatering appends a history row and advances the plant's
	// schedule in one atomic unit of work.
	RegisterWatering(ctx context.Context, req RegisterWateringRequest) (WateringResult, error)
	Delete(ctx context.Context, id string) error
}
