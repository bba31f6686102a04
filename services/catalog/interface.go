package catalog

import (
	"context"

	catalogRepo "freightadmin/database/repository/catalog"
	"freightadmin/models"
)

// CrudService is the surface every catalog screen is served through.
type CrudService[T any] interface {
	List(ctx context.Context, filter catalogRepo.Filter) ([]T, error)
	Get(ctx context.Context, id string) (*T, error)
	Create(ctx context.Context, doc *T) (*T, error)
	Update(ctx context.Context, id string, doc *T) (*T, error)
	Delete(ctx context.Context, id string) error
}

// SubActivityService adds the by-method lookup used by the price entry form.
type SubActivityService interface {
	CrudService[models.SubActivity]
	ByMethod(ctx context.Context, method models.PricingMethod) ([]models.SubActivityOption, error)
}

// DefaultCrudService is the production implementation for one collection.
type DefaultCrudService[T any, PT catalogRepo.Doc[T]] struct {
	Repo catalogRepo.Repository[T]
	// OnChange runs after every successful write.
	OnChange func(ctx context.Context)
}

// DefaultSubActivityService wraps the generic service with a method lookup cache.
type DefaultSubActivityService struct {
	DefaultCrudService[models.SubActivity, *models.SubActivity]
	Activities catalogRepo.Repository[models.Activity]
	Cache      SubActivityCache
}
