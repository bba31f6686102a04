package location

import (
	"context"

	locationRepo "freightadmin/database/repository/location"
	"freightadmin/models"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
	MaxPage         = 1_000_000
)

type LocationService interface {
	Page(ctx context.Context, filter models.LocationFilter, page, limit int) (models.Page[models.Location], error)
	Get(ctx context.Context, id string) (*models.Location, error)
	Create(ctx context.Context, loc *models.Location) (*models.Location, error)
	Update(ctx context.Context, id string, loc *models.Location) (*models.Location, error)
	Delete(ctx context.Context, id string) error
	// Resolve returns the stored locations among ids, keyed by id.
	Resolve(ctx context.Context, ids []string) (map[string]models.Location, error)
}

// DefaultLocationService is the production implementation.
type DefaultLocationService struct {
	Repo locationRepo.LocationRepository
}
