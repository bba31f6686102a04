package locationRepo

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"freightadmin/database"
	"freightadmin/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Create inserts a new location and assigns its ID.
func (r *mongoLocationRepo) Create(ctx context.Context, loc *models.Location) error {
	if loc.ID == "" {
		loc.ID = uuid.New().String()
	}
	loc.Touch(time.Now().UTC())
	if _, err := r.coll.InsertOne(ctx, loc); err != nil {
		return fmt.Errorf("failed to insert location: %w", err)
	}
	return nil
}

func (r *mongoLocationRepo) GetByID(ctx context.Context, id string) (*models.Location, error) {
	var loc models.Location
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&loc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("location %s: %w", id, database.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch location %s: %w", id, err)
	}
	return &loc, nil
}

func (r *mongoLocationRepo) GetByIDs(ctx context.Context, ids []string) ([]models.Location, error) {
	if len(ids) == 0 {
		return []models.Location{}, nil
	}
	cursor, err := r.coll.Find(ctx, bson.M{"id": bson.M{"$in": ids}})
	if err != nil {
		return nil, fmt.Errorf("failed to query locations: %w", err)
	}
	defer cursor.Close(ctx)

	locs := []models.Location{}
	if err := cursor.All(ctx, &locs); err != nil {
		return nil, fmt.Errorf("failed to decode locations: %w", err)
	}
	return locs, nil
}

// Page applies the filter server-side, sorted by English name.
func (r *mongoLocationRepo) Page(ctx context.Context, filter models.LocationFilter, page, limit int) ([]models.Location, int64, error) {
	query := locationQuery(filter)

	total, err := r.coll.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count locations: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "name.en", Value: 1}, {Key: "id", Value: 1}}).
		SetSkip(int64(page-1) * int64(limit)).
		SetLimit(int64(limit))
	cursor, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query locations: %w", err)
	}
	defer cursor.Close(ctx)

	locs := []models.Location{}
	if err := cursor.All(ctx, &locs); err != nil {
		return nil, 0, fmt.Errorf("failed to decode locations: %w", err)
	}
	return locs, total, nil
}

func (r *mongoLocationRepo) Replace(ctx context.Context, loc *models.Location) error {
	existing, err := r.GetByID(ctx, loc.ID)
	if err != nil {
		return err
	}
	loc.CreatedAt = existing.CreatedAt
	loc.Touch(time.Now().UTC())
	if _, err := r.coll.ReplaceOne(ctx, bson.M{"id": loc.ID}, loc); err != nil {
		return fmt.Errorf("failed to replace location %s: %w", loc.ID, err)
	}
	return nil
}

func (r *mongoLocationRepo) Delete(ctx context.Context, id string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete location %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("location %s: %w", id, database.ErrNotFound)
	}
	return nil
}

func locationQuery(f models.LocationFilter) bson.M {
	query := bson.M{}
	if f.ActiveOnly {
		query["isActive"] = true
	}
	if f.City != "" {
		city := regexp.QuoteMeta(f.City)
		query["$and"] = bson.A{bson.M{"$or": bson.A{
			bson.M{"city.en": bson.M{"$regex": "^" + city + "$", "$options": "i"}},
			bson.M{"city.ar": city},
		}}}
	}
	if f.Search != "" {
		pattern := regexp.QuoteMeta(f.Search)
		var or bson.A
		for _, field := range []string{"code", "name.en", "name.ar", "street.en", "street.ar", "city.en", "city.ar", "region.en", "region.ar", "country.en", "country.ar"} {
			or = append(or, bson.M{field: bson.M{"$regex": pattern, "$options": "i"}})
		}
		query["$or"] = or
	}
	return query
}
