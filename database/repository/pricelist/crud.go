package priceListRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"freightadmin/database"
	"freightadmin/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Create inserts a price list, assigning IDs to the list and any new entries.
func (r *mongoPriceListRepo) Create(ctx context.Context, list *models.PriceList) error {
	if list.ID == "" {
		list.ID = uuid.New().String()
	}
	assignEntryIDs(list)
	list.Recalculate()
	list.Touch(time.Now().UTC())

	if _, err := r.coll.InsertOne(ctx, list); err != nil {
		return fmt.Errorf("failed to insert price list: %w", err)
	}
	return nil
}

func (r *mongoPriceListRepo) GetByID(ctx context.Context, id string) (*models.PriceList, error) {
	var list models.PriceList
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&list)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("price list %s: %w", id, database.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch price list %s: %w", id, err)
	}
	return &list, nil
}

// ListByOwner returns the owner's lists, newest effective date first.
func (r *mongoPriceListRepo) ListByOwner(ctx context.Context, owner models.Owner) ([]models.PriceList, error) {
	filter := bson.M{"ownerType": owner.OwnerType, "ownerId": owner.OwnerID}
	opts := options.Find().SetSort(bson.D{{Key: "effectiveFrom", Value: -1}, {Key: "createdAt", Value: 1}})

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query price lists: %w", err)
	}
	defer cursor.Close(ctx)

	lists := []models.PriceList{}
	if err := cursor.All(ctx, &lists); err != nil {
		return nil, fmt.Errorf("failed to decode price lists: %w", err)
	}
	return lists, nil
}

// Replace writes the whole aggregate back, recomputing cost ranges first.
func (r *mongoPriceListRepo) Replace(ctx context.Context, list *models.PriceList) error {
	assignEntryIDs(list)
	list.Recalculate()
	list.Touch(time.Now().UTC())

	res, err := r.coll.ReplaceOne(ctx, bson.M{"id": list.ID}, list)
	if err != nil {
		return fmt.Errorf("failed to replace price list %s: %w", list.ID, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("price list %s: %w", list.ID, database.ErrNotFound)
	}
	return nil
}

func (r *mongoPriceListRepo) Delete(ctx context.Context, id string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete price list %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("price list %s: %w", id, database.ErrNotFound)
	}
	return nil
}

func (r *mongoPriceListRepo) DeactivateLapsed(ctx context.Context, now time.Time) (int64, error) {
	filter := bson.M{
		"isActive":    true,
		"effectiveTo": bson.M{"$gt": time.Time{}, "$lt": now},
	}
	update := bson.M{"$set": bson.M{"isActive": false, "updatedAt": now}}

	res, err := r.coll.UpdateMany(ctx, filter, update)
	if err != nil {
		return 0, fmt.Errorf("failed to deactivate lapsed price lists: %w", err)
	}
	return res.ModifiedCount, nil
}

func assignEntryIDs(list *models.PriceList) {
	for i := range list.Entries {
		if list.Entries[i].ID == "" {
			list.Entries[i].ID = uuid.New().String()
		}
	}
}
