package catalogRepo

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"freightadmin/database"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Create inserts doc, assigning an ID when it has none.
func (r *mongoRepo[T, PT]) Create(ctx context.Context, doc *T) error {
	d := PT(doc)
	if d.GetID() == "" {
		d.SetID(uuid.New().String())
	}
	d.Touch(time.Now().UTC())

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("failed to insert into %s: %w", r.coll.Name(), err)
	}
	return nil
}

func (r *mongoRepo[T, PT]) GetByID(ctx context.Context, id string) (*T, error) {
	var doc T
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("%s %s: %w", r.coll.Name(), id, database.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s %s: %w", r.coll.Name(), id, err)
	}
	return &doc, nil
}

// GetByIDs returns the documents whose id is in ids, in no particular order.
func (r *mongoRepo[T, PT]) GetByIDs(ctx context.Context, ids []string) ([]T, error) {
	if len(ids) == 0 {
		return []T{}, nil
	}
	return r.find(ctx, bson.M{"id": bson.M{"$in": ids}})
}

func (r *mongoRepo[T, PT]) List(ctx context.Context, filter Filter) ([]T, error) {
	return r.find(ctx, buildFilter(filter))
}

// Replace overwrites the stored document with the same id.
func (r *mongoRepo[T, PT]) Replace(ctx context.Context, doc *T) error {
	d := PT(doc)
	existing, err := r.GetByID(ctx, d.GetID())
	if err != nil {
		return err
	}
	// keep the original creation time
	d.SetCreatedAt(PT(existing).GetCreatedAt())
	d.Touch(time.Now().UTC())

	res, err := r.coll.ReplaceOne(ctx, bson.M{"id": d.GetID()}, doc)
	if err != nil {
		return fmt.Errorf("failed to replace %s %s: %w", r.coll.Name(), d.GetID(), err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("%s %s: %w", r.coll.Name(), d.GetID(), database.ErrNotFound)
	}
	return nil
}

func (r *mongoRepo[T, PT]) Delete(ctx context.Context, id string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete %s %s: %w", r.coll.Name(), id, err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("%s %s: %w", r.coll.Name(), id, database.ErrNotFound)
	}
	return nil
}

func (r *mongoRepo[T, PT]) find(ctx context.Context, filter bson.M) ([]T, error) {
	opts := options.Find().SetSort(bson.D{{Key: "code", Value: 1}, {Key: "createdAt", Value: 1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", r.coll.Name(), err)
	}
	defer cursor.Close(ctx)

	docs := []T{}
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", r.coll.Name(), err)
	}
	return docs, nil
}

func buildFilter(f Filter) bson.M {
	filter := bson.M{}
	if f.ActiveOnly {
		filter["isActive"] = true
	}
	if f.Field != "" {
		filter[f.Field] = f.Value
	}
	if f.Search != "" {
		pattern := regexp.QuoteMeta(f.Search)
		filter["$or"] = bson.A{
			bson.M{"code": bson.M{"$regex": pattern, "$options": "i"}},
			bson.M{"name.en": bson.M{"$regex": pattern, "$options": "i"}},
			bson.M{"name.ar": bson.M{"$regex": pattern, "$options": "i"}},
		}
	}
	return filter
}
