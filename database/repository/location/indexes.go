package locationRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the necessary indexes on the locations collection.
func EnsureIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_id"),
		},
		{
			Keys:    bson.D{{Key: "name.en", Value: 1}, {Key: "id", Value: 1}},
			Options: options.Index().SetName("name_sort_idx"),
		},
		{
			Keys:    bson.D{{Key: "city.en", Value: 1}, {Key: "isActive", Value: 1}},
			Options: options.Index().SetName("city_active_idx"),
		},
	}

	if _, err := db.Collection(LocationsCollection).Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create location indexes: %w", err)
	}
	return nil
}
