// File: handlers/bundle.go
package handlers

import (
	"freightadmin/models"

	"github.com/gin-gonic/gin"
)

// HandlerBundle groups all endpoint handlers into one struct.
type HandlerBundle struct {
	// Catalog collections
	Activities       CrudRoutes
	SubActivities    CrudRoutes
	Vendors          CrudRoutes
	Customers        CrudRoutes
	TransactionTypes CrudRoutes
	Locations        CrudRoutes

	// Sub-activity lookup used by the price entry form
	SubActivitiesByMethodHandler gin.HandlerFunc

	// Price list endpoints
	ListPriceListsHandler   func(models.OwnerType) gin.HandlerFunc
	CreatePriceListHandler  func(models.OwnerType) gin.HandlerFunc
	GetPriceListHandler     gin.HandlerFunc
	UpdatePriceListHandler  gin.HandlerFunc
	DeletePriceListHandler  gin.HandlerFunc
	AddPriceEntryHandler    gin.HandlerFunc
	UpdatePriceEntryHandler gin.HandlerFunc
	RemovePriceEntryHandler gin.HandlerFunc
}
