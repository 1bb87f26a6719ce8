package main

import (
	"context"
	"os"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/y122132/pet-trainer-sub000/internal/api"
	"github.com/y122132/pet-trainer-sub000/internal/config"
	"github.com/y122132/pet-trainer-sub000/internal/constants"
	"github.com/y122132/pet-trainer-sub000/internal/logging"
	"github.com/y122132/pet-trainer-sub000/internal/room"
	"github.com/y122132/pet-trainer-sub000/internal/service"
	"github.com/y122132/pet-trainer-sub000/internal/storage"
	"github.com/y122132/pet-trainer-sub000/internal/version"
	"github.com/y122132/pet-trainer-sub000/internal/ws"
)

const sweepInterval = 5 * time.Second

func main() {
	configPath := os.Getenv(constants.EnvConfigPath)
	if configPath == "" {
		configPath = "./pet_trainer_config.json"
	}
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logging.Fatal("Invalid configuration", err, logging.Fields{"config_path": configPath})
	}

	// Environment overrides for container deployments.
	if v := os.Getenv(constants.EnvDBPath); v != "" {
		cfg.DatabasePath = v
	}
	if v := os.Getenv(constants.EnvRedisAddr); v != "" {
		cfg.RedisAddress = v
	}
	if v := os.Getenv(constants.EnvRedisPass); v != "" {
		cfg.RedisPassword = v
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddress,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		logging.Fatal("Failed to connect to redis", err, logging.Fields{constants.LogFieldAddr: cfg.RedisAddress})
	}

	db, err := storage.OpenAndMigrate(cfg.DatabasePath)
	if err != nil {
		logging.Fatal("Failed to initialize database", err, nil)
	}

	store := storage.NewSQLiteRepository(db)
	chars := storage.NewCharacterProvider(store)
	rooms := room.NewRedisRepository(rdb, cfg.RoomTTL)

	hub := ws.NewHub()
	driver := service.NewDriver(rooms, chars, store, hub, cfg.LockTTL)
	matchmaker := service.NewMatchmaker()
	arena := service.NewArena(driver, matchmaker, hub)

	// Queued users who wait past the queue TTL get a bot opponent instead.
	go arena.RunQueueSweeper(context.Background(), sweepInterval, cfg.QueueTTL)

	router := api.NewRouter(api.NewHandler(hub, arena, store))

	logging.Info("Server started", logging.Fields{
		constants.LogFieldAddr: cfg.ServerAddress,
		"version":              version.Version,
	})
	if err := router.Run(cfg.ServerAddress); err != nil {
		logging.Fatal("Failed to start server", err, nil)
	}
}
