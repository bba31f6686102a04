// File: database/repository/pricelist/interface.go
package priceListRepo

import (
	"context"
	"time"

	"freightadmin/models"

	"go.mongodb.org/mongo-driver/mongo"
)

const PriceListsCollection = "price_lists"

// PriceListRepository persists price lists as whole aggregates. Entries are
// always written together with the list so the cost range never drifts.
type PriceListRepository interface {
	Create(ctx context.Context, list *models.PriceList) error
	GetByID(ctx context.Context, id string) (*models.PriceList, error)
	ListByOwner(ctx context.Context, owner models.Owner) ([]models.PriceList, error)
	Replace(ctx context.Context, list *models.PriceList) error
	Delete(ctx context.Context, id string) error
	// DeactivateLapsed flips isActive off for active lists whose effectiveTo is before now.
	DeactivateLapsed(ctx context.Context, now time.Time) (int64, error)
}

type mongoPriceListRepo struct {
	coll *mongo.Collection
}

// NewMongoPriceListRepo constructs a new MongoDB PriceListRepository.
func NewMongoPriceListRepo(db *mongo.Database) PriceListRepository {
	return &mongoPriceListRepo{
		coll: db.Collection(PriceListsCollection),
	}
}
