package routes

import (
	"net/http"
	"time"

	"freightadmin/handlers"
	"freightadmin/models"
	"freightadmin/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// registerCrud mounts the five REST routes of one collection under group.
func registerCrud(group *gin.RouterGroup, h handlers.CrudRoutes) {
	group.GET("", h.List)
	group.POST("", h.Create)
	group.GET("/:id", h.Get)
	group.PUT("/:id", h.Update)
	group.DELETE("/:id", h.Delete)
}

// RegisterCatalogRoutes registers the catalog collections.
func RegisterCatalogRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api")
	{
		registerCrud(api.Group("/activities"), hb.Activities)
		registerCrud(api.Group("/vendors"), hb.Vendors)
		registerCrud(api.Group("/customers"), hb.Customers)
		registerCrud(api.Group("/transaction-types"), hb.TransactionTypes)
		registerCrud(api.Group("/locations"), hb.Locations)

		subActivities := api.Group("/sub-activities")
		subActivities.GET("/by-method/:method", hb.SubActivitiesByMethodHandler)
		registerCrud(subActivities, hb.SubActivities)
	}
}

// RegisterPriceListRoutes registers price-list header and entry endpoints.
func RegisterPriceListRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	for _, ownerType := range []models.OwnerType{models.OwnerCustomer, models.OwnerVendor} {
		owned := r.Group("/api/" + ownerType.Plural() + "/:id/price-lists")
		owned.GET("", hb.ListPriceListsHandler(ownerType))
		owned.POST("", hb.CreatePriceListHandler(ownerType))
	}

	lists := r.Group("/api/price-lists")
	{
		lists.GET("/:id", hb.GetPriceListHandler)
		lists.PUT("/:id", hb.UpdatePriceListHandler)
		lists.DELETE("/:id", hb.DeletePriceListHandler)

		lists.POST("/:id/sub-activities", hb.AddPriceEntryHandler)
		lists.PUT("/:id/sub-activities/:entryId", hb.UpdatePriceEntryHandler)
		lists.DELETE("/:id/sub-activities/:entryId", hb.RemovePriceEntryHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint backed by the health monitor.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		status := utils.GetHealthStatus()
		code := http.StatusOK
		state := "ok"
		if !status.Healthy() {
			code = http.StatusServiceUnavailable
			state = "degraded"
		}
		c.JSON(code, gin.H{"status": state, "services": status})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterCatalogRoutes(r, hb)
	RegisterPriceListRoutes(r, hb)
	RegisterHealthRoute(r)
}
