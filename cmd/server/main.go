package main

import (
	"log"

	"eventcal/config"
	"eventcal/internal/database"
	"eventcal/internal/handler"
	"eventcal/internal/hooks"
	"eventcal/internal/repository"
	"eventcal/internal/service"
	"eventcal/internal/settings"
	"eventcal/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	cfg := config.LoadConfig()

	defer logger.L.Sync()

	pool, err := database.InitDatabase(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer pool.Close()

	if err := database.RunMigrations(&cfg.Database, "migrations"); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		log.Fatalf("Failed to initialize redis: %v", err)
	}
	defer rdb.Close()

	registry := hooks.New()
	store := settings.NewStore(rdb, settings.Defaults(cfg.Calendar), registry)

	eventRepo := repository.NewEventRepository(pool, registry)
	eventService := service.NewEventService(eventRepo, store, registry)
	calendarService := service.NewCalendarService(eventRepo, store, registry)

	router := gin.Default()
	router.Static("/static", "./static")

	handler.NewEventHandler(eventService).RegisterRoutes(router)
	handler.NewCalendarHandler(calendarService).RegisterRoutes(router)
	handler.NewArchiveHandler(eventService).RegisterRoutes(router)
	handler.NewFeedHandler(eventService).RegisterRoutes(router)
	handler.NewSettingsHandler(store).RegisterRoutes(router)

	if err := router.Run(cfg.Server.Address); err != nil {
		log.Fatalf("Server stopped: %v", err)
	}
}
