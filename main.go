// File: freightadmin/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"freightadmin/config"
	"freightadmin/cron"
	"freightadmin/database"
	catalogRepo "freightadmin/database/repository/catalog"
	locationRepo "freightadmin/database/repository/location"
	priceListRepo "freightadmin/database/repository/pricelist"
	"freightadmin/handlers"
	"freightadmin/middleware"
	"freightadmin/models"
	"freightadmin/routes"
	"freightadmin/services/catalog"
	"freightadmin/services/location"
	"freightadmin/services/pricelist"
	"freightadmin/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()
	defer logger.Sync()

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	database.InitDB()
	utils.InitCache()
	db := database.DB()

	for _, ensure := range []func(*mongo.Database) error{
		catalogRepo.EnsureIndexes,
		locationRepo.EnsureIndexes,
		priceListRepo.EnsureIndexes,
	} {
		if err := ensure(db); err != nil {
			logger.Fatal("main: failed to ensure indexes", zap.Error(err))
		}
	}

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RequestLogger(logger))
	router.Use(middleware.RateLimitMiddleware(config.AppConfig.MaxRequestsPerMin))

	// repositories.
	activityRepo := catalogRepo.NewActivityRepo(db)
	subActivityRepo := catalogRepo.NewSubActivityRepo(db)
	customerRepo := catalogRepo.NewCustomerRepo(db)
	vendorRepo := catalogRepo.NewVendorRepo(db)
	transactionTypeRepo := catalogRepo.NewTransactionTypeRepo(db)
	locRepo := locationRepo.NewMongoLocationRepo(db)
	listRepo := priceListRepo.NewMongoPriceListRepo(db)

	// services.
	subActivityCache := catalog.NewRedisSubActivityCache(utils.GetCacheClient(), config.AppConfig.SubActivityCacheTTL)
	subActivityService := catalog.NewSubActivityService(subActivityRepo, activityRepo, subActivityCache)
	locationService := &location.DefaultLocationService{Repo: locRepo}
	priceListService := &pricelist.DefaultPriceListService{
		Repo:          listRepo,
		SubActivities: subActivityRepo,
		Locations:     locationService,
		Owners:        pricelist.CatalogOwners{Customers: customerRepo, Vendors: vendorRepo},
		Policy:        models.PricingPolicy{AllowSameLocationTrips: config.AppConfig.AllowSameLocationTrips},
	}

	// handlers.
	subActivityHandler := handlers.NewSubActivityHandler(subActivityService)
	locationHandler := handlers.NewLocationHandler(locationService)
	priceListHandler := handlers.NewPriceListHandler(priceListService)

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		Activities:       handlers.NewCatalogHandler[models.Activity](catalog.NewCrudService[models.Activity](activityRepo), "activity", "").Routes(),
		SubActivities:    subActivityHandler.Routes(),
		Vendors:          handlers.NewCatalogHandler[models.Vendor](catalog.NewCrudService[models.Vendor](vendorRepo), "vendor", "").Routes(),
		Customers:        handlers.NewCatalogHandler[models.Customer](catalog.NewCrudService[models.Customer](customerRepo), "customer", "").Routes(),
		TransactionTypes: handlers.NewCatalogHandler[models.TransactionType](catalog.NewCrudService[models.TransactionType](transactionTypeRepo), "transaction type", "direction").Routes(),
		Locations:        locationHandler.Routes(),

		SubActivitiesByMethodHandler: subActivityHandler.ByMethodHandler,

		ListPriceListsHandler:   priceListHandler.ListByOwnerHandler,
		CreatePriceListHandler:  priceListHandler.CreateHandler,
		GetPriceListHandler:     priceListHandler.GetHandler,
		UpdatePriceListHandler:  priceListHandler.UpdateHeaderHandler,
		DeletePriceListHandler:  priceListHandler.DeleteHandler,
		AddPriceEntryHandler:    priceListHandler.AddEntryHandler,
		UpdatePriceEntryHandler: priceListHandler.UpdateEntryHandler,
		RemovePriceEntryHandler: priceListHandler.RemoveEntryHandler,
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

	// Background jobs.
	bgCtx, stopBackground := context.WithCancel(context.Background())
	defer stopBackground()
	utils.StartHealthMonitor(bgCtx, utils.GetCacheClient(), database.MongoClient, 30*time.Second)

	expiryWorker, err := cron.NewExpiryWorker(priceListService, config.AppConfig.PriceListExpirySpec)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to set up expiry worker: %v", err)
	}
	if err := expiryWorker.Start(); err != nil {
		logger.Sugar().Fatalf("main: %v", err)
	}

	// Start the HTTP server.
	srv := &http.Server{
		Addr:    "0.0.0.0:" + config.AppConfig.AppPort,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}
	stopBackground()
	expiryWorker.Shutdown()
	if err := database.Close(ctx); err != nil {
		logger.Warn("main: failed to disconnect from MongoDB", zap.Error(err))
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
