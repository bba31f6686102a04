package pricelist

import (
	"context"
	"time"

	catalogRepo "freightadmin/database/repository/catalog"
	priceListRepo "freightadmin/database/repository/pricelist"
	"freightadmin/models"
)

// PriceListService owns the authoritative copy of every price list. Entry
// mutations return the canonical list so clients can replace their cache.
type PriceListService interface {
	ListByOwner(ctx context.Context, owner models.Owner) ([]models.PriceListView, error)
	Get(ctx context.Context, id string) (*models.PriceListView, error)
	Create(ctx context.Context, owner models.Owner, draft Draft) (*models.PriceListView, error)
	UpdateHeader(ctx context.Context, id string, header models.PriceListHeader) (*models.PriceListView, error)
	Delete(ctx context.Context, id string) error

	AddEntry(ctx context.Context, id string, entry models.SubActivityPriceEntry) (*models.PriceListView, error)
	UpdateEntry(ctx context.Context, id, entryID string, entry models.SubActivityPriceEntry) (*models.PriceListView, error)
	RemoveEntry(ctx context.Context, id, entryID string) error

	// ExpireLapsed deactivates lists whose effective window ended before now.
	ExpireLapsed(ctx context.Context, now time.Time) (int64, error)
}

// Draft is a new price list: its header and optional initial entries.
type Draft struct {
	models.PriceListHeader
	Entries []models.SubActivityPriceEntry `json:"entries"`
}

// LocationResolver looks up locations by id in one round trip.
type LocationResolver interface {
	Resolve(ctx context.Context, ids []string) (map[string]models.Location, error)
}

// OwnerDirectory reports whether a customer or vendor exists.
type OwnerDirectory interface {
	Exists(ctx context.Context, owner models.Owner) (bool, error)
}

// DefaultPriceListService is the production implementation.
type DefaultPriceListService struct {
	Repo          priceListRepo.PriceListRepository
	SubActivities catalogRepo.Repository[models.SubActivity]
	Locations     LocationResolver
	Owners        OwnerDirectory
	Policy        models.PricingPolicy
}
