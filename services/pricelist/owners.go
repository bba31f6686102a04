package pricelist

import (
	"context"
	"errors"
	"fmt"

	"freightadmin/database"
	catalogRepo "freightadmin/database/repository/catalog"
	"freightadmin/models"
)

// CatalogOwners resolves owners against the customer and vendor collections.
type CatalogOwners struct {
	Customers catalogRepo.Repository[models.Customer]
	Vendors   catalogRepo.Repository[models.Vendor]
}

func (o CatalogOwners) Exists(ctx context.Context, owner models.Owner) (bool, error) {
	var err error
	switch owner.OwnerType {
	case models.OwnerCustomer:
		_, err = o.Customers.GetByID(ctx, owner.OwnerID)
	case models.OwnerVendor:
		_, err = o.Vendors.GetByID(ctx, owner.OwnerID)
	default:
		return false, fmt.Errorf("unknown owner type %q", owner.OwnerType)
	}
	if errors.Is(err, database.ErrNotFound) {
		return false, nil
	}
	return err == nil, err
}
