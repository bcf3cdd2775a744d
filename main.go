package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"products/internal/config"
	"products/internal/handlers"
	"products/internal/models"
	"products/internal/repositories"
	"products/internal/services"
	"products/pkg/rabbitmq"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	zapLogger, err := newLogger(cfg.AppEnv)
	if err != nil {
		panic(err)
	}
	defer zapLogger.Sync()

	db, err := openDatabase(cfg)
	if err != nil {
		zapLogger.Fatal("failed to connect to database", zap.Error(err))
	}
	if err := db.AutoMigrate(&models.Product{}); err != nil {
		zapLogger.Fatal("failed to migrate database", zap.Error(err))
	}

	// The event publisher is optional: without a broker the service still
	// serves the full REST contract and only skips lifecycle events.
	var publisher services.EventPublisher
	var mqClient *rabbitmq.Client
	if cfg.EventsEnabled {
		mqClient, err = rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL})
		if err != nil {
			zapLogger.Fatal("failed to initialize RabbitMQ client", zap.Error(err))
		}
		defer mqClient.Close()
		publisher = mqClient
		zapLogger.Info("RabbitMQ client connected", zap.String("url", cfg.RabbitMQURL))
	}

	productRepo := repositories.NewGORMProductRepository(db)
	productService := services.NewProductService(productRepo, publisher, zapLogger)
	productHandler := handlers.NewProductHandler(productService, zapLogger)

	app := newApp(productHandler)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		zapLogger.Info("starting server", zap.String("port", cfg.AppPort))
		if err := app.Listen(cfg.AppPort); err != nil {
			zapLogger.Fatal("server failed to start", zap.Error(err))
		}
	}()

	<-quit
	zapLogger.Info("shutting down server")
	if err := app.Shutdown(); err != nil {
		zapLogger.Error("error during shutdown", zap.Error(err))
	}
	zapLogger.Info("server gracefully stopped")
}

// newApp assembles the Fiber app and wires every route.
func newApp(productHandler *handlers.ProductHandler) *fiber.App {
	app := fiber.New()
	app.Use(logger.New()) // Request logger

	app.Get("/healthcheck", productHandler.HandleHealthCheck)
	app.Get("/", productHandler.HandleIndex)
	productHandler.RegisterRoutes(app)

	return app
}

// openDatabase opens the configured GORM backend.
func openDatabase(cfg config.Config) (*gorm.DB, error) {
	if cfg.DBDriver == "postgres" {
		return gorm.Open(postgres.Open(cfg.DBDSN), &gorm.Config{})
	}
	return gorm.Open(sqlite.Open(cfg.DBDSN), &gorm.Config{})
}

// newLogger builds the zap logger for the current environment.
func newLogger(env string) (*zap.Logger, error) {
	if env == "production" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}
