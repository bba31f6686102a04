package priceListRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the necessary indexes on the price_lists collection.
func EnsureIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_id"),
		},
		{
			Keys:    bson.D{{Key: "ownerType", Value: 1}, {Key: "ownerId", Value: 1}, {Key: "effectiveFrom", Value: -1}},
			Options: options.Index().SetName("owner_idx"),
		},
		{
			// used by the expiry job
			Keys:    bson.D{{Key: "isActive", Value: 1}, {Key: "effectiveTo", Value: 1}},
			Options: options.Index().SetName("active_effective_to_idx"),
		},
	}

	if _, err := db.Collection(PriceListsCollection).Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create price list indexes: %w", err)
	}
	return nil
}
