package app

import (
	"context"
	"fmt"
	"os"

	"github.com/shopspring/decimal"

	"fern-and-paper/app/controller"
	"fern-and-paper/app/middleware"
	"fern-and-paper/app/router"
	"fern-and-paper/db"
	"fern-and-paper/repository"
	"fern-and-paper/service"
)

// Initialize initializes the application
func Initialize() error {
	// Money fields marshal as JSON numbers, not strings
	decimal.MarshalJSONWithoutQuotes = true

	// Initialize database connection and schema
	if err := db.InitDB(); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	if err := db.Migrate(context.Background()); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		return fmt.Errorf("JWT_SECRET environment variable is not set")
	}

	credentialsPath := os.Getenv("GOOGLE_APPLICATION_CREDENTIALS")
	if credentialsPath == "" {
		return fmt.Errorf("GOOGLE_APPLICATION_CREDENTIALS environment variable is not set")
	}

	baseURL := os.Getenv("BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}

	// Initialize services
	storageService, err := service.NewStorageService(credentialsPath, os.Getenv("DRIVE_UPLOAD_FOLDER_ID"))
	if err != nil {
		return err
	}
	if err := service.EnsureCacheDir(); err != nil {
		return err
	}
	tokenService := service.NewTokenService(jwtSecret)

	// Initialize repositories
	productRepo := repository.NewProductRepository()
	orderRepo := repository.NewOrderRepository()
	userRepo := repository.NewUserRepository()

	catalogService := service.NewCatalogService(productRepo, baseURL)

	// Create controllers
	controllers := &router.Controllers{
		Product: controller.NewProductController(productRepo),
		Order:   controller.NewOrderController(orderRepo, productRepo),
		User:    controller.NewUserController(userRepo, tokenService),
		Upload:  controller.NewUploadController(storageService),
		Catalog: controller.NewCatalogController(catalogService),
		Auth:    middleware.NewAuthMiddleware(tokenService, userRepo),
	}

	// Setup routes using standard http router
	router.SetupRoutes(controllers)

	return nil
}
