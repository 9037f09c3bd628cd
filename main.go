package main

import (
	"log"

	"github.com/go-redis/redis/v8"
	"github.com/labstack/echo/v4"
	echoMw "github.com/labstack/echo/v4/middleware"
	"github.com/roamly/discovery-service/config"
	"github.com/roamly/discovery-service/internal/consumer"
	"github.com/roamly/discovery-service/internal/handler"
	"github.com/roamly/discovery-service/internal/middleware"
	"github.com/roamly/discovery-service/internal/query"
	"github.com/roamly/discovery-service/internal/repository"
	"github.com/roamly/discovery-service/internal/service"
	"github.com/roamly/discovery-service/internal/store"
	"github.com/roamly/discovery-service/pkg/database"
	"github.com/roamly/discovery-service/pkg/rabbitmq"
)

func main() {
	cfg := config.Load()

	db := database.NewPostgresDB(cfg.DSN())

	// RabbitMQ consumer: mirror tours and capacity ledgers from the host and
	// booking services into the local read model
	mqConsumer, err := rabbitmq.NewConsumer(cfg.RabbitURL)
	if err != nil {
		log.Fatalf("failed to connect to RabbitMQ: %v", err)
	}
	defer mqConsumer.Close()

	msgs, err := mqConsumer.Consume()
	if err != nil {
		log.Fatalf("failed to start consuming: %v", err)
	}

	catalogConsumer := consumer.NewCatalogConsumer(db)
	catalogConsumer.Start(msgs)

	redisClient := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})

	// Repositories
	tourRepo := repository.NewTourRepository(db)
	ledgerRepo := repository.NewLedgerRepository(db)

	// Services
	deriver := &service.DealStateDeriver{
		DropInWindow:    cfg.DropInWindow,
		EarlyBirdWindow: cfg.EarlyBirdWindow,
	}
	discoverySvc := service.NewDiscoveryService(tourRepo, ledgerRepo, deriver, service.SystemClock())
	availabilitySvc := service.NewAvailabilityService(tourRepo, ledgerRepo, cfg.EnforceMinGroup)

	normalizer := query.NewNormalizer(query.NopIntentParser{}, cfg.DefaultPageLimit, cfg.MaxPageLimit)

	recents := store.NewRedisRecentSearches(redisClient)
	wishlist := store.NewRedisWishlist(redisClient)

	// Echo
	e := echo.New()
	e.HTTPErrorHandler = middleware.ErrorHandler
	e.Use(echoMw.RequestLoggerWithConfig(echoMw.RequestLoggerConfig{
		LogStatus: true,
		LogURI:    true,
		LogMethod: true,
		LogValuesFunc: func(c echo.Context, v echoMw.RequestLoggerValues) error {
			log.Printf("%s %s %d", v.Method, v.URI, v.Status)
			return nil
		},
	}))
	e.Use(echoMw.Recover())

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok", "service": "discovery-service"})
	})

	handler.NewDiscoveryHandler(discoverySvc, normalizer, recents).RegisterRoutes(e)
	handler.NewAvailabilityHandler(availabilitySvc).RegisterRoutes(e)
	handler.NewSavedHandler(recents, wishlist).RegisterRoutes(e)

	log.Printf("Discovery Service starting on :%s", cfg.ServerPort)
	e.Logger.Fatal(e.Start(":" + cfg.ServerPort))
}
