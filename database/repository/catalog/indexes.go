// FILE: database/repository/catalog/indexes.go
package catalogRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the indexes every catalog collection relies on.
func EnsureIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	common := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_id"),
		},
		{
			Keys:    bson.D{{Key: "code", Value: 1}},
			Options: options.Index().SetName("code_idx"),
		},
	}

	for _, name := range []string{ActivitiesCollection, SubActivitiesCollection, CustomersCollection, VendorsCollection, TransactionTypesCollection} {
		if _, err := db.Collection(name).Indexes().CreateMany(ctx, common); err != nil {
			return fmt.Errorf("failed to create %s indexes: %w", name, err)
		}
	}

	// Sub-activity lookups filter by eligible pricing method.
	_, err := db.Collection(SubActivitiesCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "pricingMethods", Value: 1}, {Key: "isActive", Value: 1}},
		Options: options.Index().SetName("pricing_method_active_idx"),
	})
	if err != nil {
		return fmt.Errorf("failed to create sub-activity method index: %w", err)
	}
	return nil
}
