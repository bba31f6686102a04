// File: database/repository/catalog/interface.go
package catalogRepo

import (
	"context"

	"freightadmin/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// Filter narrows a catalog listing.
type Filter struct {
	Search     string // matched against code and both name languages
	ActiveOnly bool
	Field      string // optional exact-match field, e.g. "activityId"
	Value      any
}

// Repository is the data access contract shared by every catalog collection.
type Repository[T any] interface {
	Create(ctx context.Context, doc *T) error
	GetByID(ctx context.Context, id string) (*T, error)
	GetByIDs(ctx context.Context, ids []string) ([]T, error)
	List(ctx context.Context, filter Filter) ([]T, error)
	Replace(ctx context.Context, doc *T) error
	Delete(ctx context.Context, id string) error
}

// Doc constrains T to pointer-implemented catalog documents.
type Doc[T any] interface {
	*T
	models.Document
}

type mongoRepo[T any, PT Doc[T]] struct {
	coll *mongo.Collection
}

// NewMongoRepo returns a Repository over the named collection of db.
func NewMongoRepo[T any, PT Doc[T]](db *mongo.Database, collection string) Repository[T] {
	return &mongoRepo[T, PT]{coll: db.Collection(collection)}
}

// Collection names.
const (
	ActivitiesCollection       = "activities"
	SubActivitiesCollection    = "sub_activities"
	CustomersCollection        = "customers"
	VendorsCollection          = "vendors"
	TransactionTypesCollection = "transaction_types"
)

// NewActivityRepo, NewSubActivityRepo and friends bind the generic repo to its collection.
func NewActivityRepo(db *mongo.Database) Repository[models.Activity] {
	return NewMongoRepo[models.Activity](db, ActivitiesCollection)
}

func NewSubActivityRepo(db *mongo.Database) Repository[models.SubActivity] {
	return NewMongoRepo[models.SubActivity](db, SubActivitiesCollection)
}

func NewCustomerRepo(db *mongo.Database) Repository[models.Customer] {
	return NewMongoRepo[models.Customer](db, CustomersCollection)
}

func NewVendorRepo(db *mongo.Database) Repository[models.Vendor] {
	return NewMongoRepo[models.Vendor](db, VendorsCollection)
}

func NewTransactionTypeRepo(db *mongo.Database) Repository[models.TransactionType] {
	return NewMongoRepo[models.TransactionType](db, TransactionTypesCollection)
}
