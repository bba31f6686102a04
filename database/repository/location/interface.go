// File: database/repository/location/interface.go
package locationRepo

import (
	"context"

	"freightadmin/models"

	"go.mongodb.org/mongo-driver/mongo"
)

type LocationRepository interface {
	Create(ctx context.Context, loc *models.Location) error
	GetByID(ctx context.Context, id string) (*models.Location, error)
	GetByIDs(ctx context.Context, ids []string) ([]models.Location, error)
	// Page returns one page of locations plus the total number of matches.
	Page(ctx context.Context, filter models.LocationFilter, page, limit int) ([]models.Location, int64, error)
	Replace(ctx context.Context, loc *models.Location) error
	Delete(ctx context.Context, id string) error
}

const LocationsCollection = "locations"

type mongoLocationRepo struct {
	coll *mongo.Collection
}

// NewMongoLocationRepo constructs a new MongoDB LocationRepository.
func NewMongoLocationRepo(db *mongo.Database) LocationRepository {
	return &mongoLocationRepo{
		coll: db.Collection(LocationsCollection),
	}
}
