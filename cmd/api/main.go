package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"foodafford/internal/config"
	"foodafford/internal/database"
	"foodafford/internal/handlers"
	"foodafford/internal/loader"
	"foodafford/internal/logger"
	"foodafford/internal/middleware"
	"foodafford/internal/services"
	"foodafford/internal/validator"

	_ "foodafford/internal/docs" // Import swagger docs
)

// @title           Food Affordability API
// @version         1.0
// @description     Food affordability in Ireland, 2014 to 2024: basket cost against median disposable income, with category price trends.
// @termsOfService  http://swagger.io/terms/

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key
// @description Pipeline key for the dataset reload.

const shutdownTimeout = 10 * time.Second

func main() {
	// Initialize logger (use ENV var if available, default to development)
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	// Load configuration
	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if err := logger.SetLevel(appConfig.LogLevel); err != nil {
		return err
	}
	if appConfig.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	decimal.MarshalJSONWithoutQuotes = true
	validator.Register()

	// Create database manager
	dbManager, err := database.NewManager(database.NewConfig(appConfig))
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}
	defer func() {
		if err := dbManager.Close(); err != nil {
			log.Warnf("database close error: %v", err)
		}
	}()

	// Run migrations
	if err := dbManager.Migrate(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	router, datasetService := newRouter(appConfig, dbManager.DB())

	// Load the flat files once at startup. A failed load is recorded and
	// reported by the read endpoints; the server still starts.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if load, err := datasetService.Reload(ctx); err != nil {
		log.Warnf("Initial dataset load failed: %v", err)
	} else {
		log.Infof("Loaded %d prices over %d months", load.PriceCount, load.MonthCount)
	}

	srv := &http.Server{
		Addr:              ":" + appConfig.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Infof("Starting food affordability server on port %s", appConfig.Port)
		log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// newRouter wires the services, handlers and routes over db.
func newRouter(cfg *config.Config, db *gorm.DB) (*gin.Engine, services.DatasetServicer) {
	// Initialize services
	datasetService := services.NewDatasetService(db, loader.Sources{
		PricesFile:     cfg.PricesFile,
		IncomeFile:     cfg.IncomeFile,
		BasketFile:     cfg.BasketFile,
		CategoriesFile: cfg.CategoriesFile,
		BaselineYear:   cfg.BaselineYear,
	})
	affordabilityService := services.NewAffordabilityService(db)
	basketService := services.NewBasketService(db)
	priceService := services.NewPriceService(db)
	categoryService := services.NewCategoryService(db)

	// Initialize handlers
	datasetHandler := handlers.NewDatasetHandler(datasetService)
	affordabilityHandler := handlers.NewAffordabilityHandler(affordabilityService)
	basketHandler := handlers.NewBasketHandler(basketService)
	itemHandler := handlers.NewItemHandler(priceService)
	categoryHandler := handlers.NewCategoryHandler(categoryService)

	// Initialize Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())
	router.Use(middleware.CORS(cfg.CORSOrigins))
	router.NoRoute(middleware.NotFound())

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Dashboard
	router.StaticFile("/", filepath.Join(cfg.DashboardWebDir, "index.html"))

	// API v1 group
	v1 := router.Group("/api/v1")
	v1.GET("/overview", datasetHandler.GetOverview)

	affordability := v1.Group("/affordability")
	affordability.GET("", affordabilityHandler.GetAffordability)
	affordability.GET("/categories", affordabilityHandler.GetCostBreakdown)
	affordability.GET("/export", affordabilityHandler.ExportMetrics)

	v1.GET("/basket", basketHandler.GetBasket)
	v1.GET("/incomes", basketHandler.ListIncomes)

	items := v1.Group("/items")
	items.GET("", itemHandler.ListItems)
	items.GET("/stats", itemHandler.GetItemStats)
	items.GET("/:item/prices", itemHandler.GetItemPrices)

	categories := v1.Group("/categories")
	categories.GET("/trends", categoryHandler.GetTrends)
	categories.GET("/summary", categoryHandler.GetSummary)

	// Pipeline routes (API key auth)
	pipeline := v1.Group("/pipeline")
	pipeline.Use(middleware.PipelineAuthMiddleware(cfg.PipelineAPIKey))
	pipeline.POST("/reload", datasetHandler.Reload)

	return router, datasetService
}
