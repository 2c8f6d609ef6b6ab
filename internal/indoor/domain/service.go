package domain

import (
	"context"
	"errors"
)

var (
	ErrInvalidID         = errors.New("invalid indoor id")
	ErrInvalidName       = errors.New("invalid indoor name")
	ErrInvalidLightPower = errors.New("light power must be between 0 and 100")
	ErrInvalidOwner      = errors.New("invalid owner")
	ErrNotFound          = errors.New("indoor not found")
)

type Service interface {
	Create(ctx context.Context, req CreateIndoorRequest) (Indoor, error)
	List(ctx context.Context) ([]IndoorListItem, error)
	Get(ctx context.Context, id string) (IndoorDetail, error)
	// Update applies a sparse patch. When the patch changes light_power_pct
	// it appends exactly one history entry describing the change, atomically
	// with the field update.
	Update(ctx context.Context, req UpdateIndoorRequest) (Indoor, error)
	Delete(ctx context.Context, id string) error
}
