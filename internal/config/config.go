package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

type rawConfig struct {
	Server *struct {
		Address string `json:"address"`
	} `json:"server"`
	Redis *struct {
		Address  string `json:"address"`
		Password string `json:"password"`
		DB       int    `json:"db"`
	} `json:"redis"`
	Database *struct {
		Path string `json:"path"`
	} `json:"database"`
	Battle *struct {
		// TTLs are given in seconds in the config file.
		RoomTTLSeconds int `json:"room_ttl_seconds"`
		LockTTLSeconds int `json:"lock_ttl_seconds"`
		// How long a matchmaking ticket may wait before the sweeper
		// drops it and notifies the client.
		QueueTTLSeconds int `json:"queue_ttl_seconds"`
	} `json:"battle"`
}

// LoadedConfig contains the resolved runtime configuration.
type LoadedConfig struct {
	ServerAddress string
	RedisAddress  string
	RedisPassword string
	RedisDB       int
	DatabasePath  string
	RoomTTL       time.Duration
	LockTTL       time.Duration
	QueueTTL      time.Duration
}

// LoadConfig reads the configuration file at path and applies defaults for
// any missing section. A missing file is not an error: all settings have
// working local-development defaults.
func LoadConfig(path string) (*LoadedConfig, error) {
	cfg := &LoadedConfig{
		ServerAddress: ":8080",
		RedisAddress:  "localhost:6379",
		DatabasePath:  "./data/pet_trainer.db",
		RoomTTL:       30 * time.Minute,
		LockTTL:       10 * time.Second,
		QueueTTL:      2 * time.Minute,
	}

	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	var rc rawConfig
	if err := json.Unmarshal(b, &rc); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if rc.Server != nil && rc.Server.Address != "" {
		cfg.ServerAddress = rc.Server.Address
	}
	if rc.Redis != nil {
		if rc.Redis.Address != "" {
			cfg.RedisAddress = rc.Redis.Address
		}
		cfg.RedisPassword = rc.Redis.Password
		cfg.RedisDB = rc.Redis.DB
	}
	if rc.Database != nil && rc.Database.Path != "" {
		cfg.DatabasePath = rc.Database.Path
	}
	if rc.Battle != nil {
		if rc.Battle.RoomTTLSeconds < 0 || rc.Battle.LockTTLSeconds < 0 || rc.Battle.QueueTTLSeconds < 0 {
			return nil, fmt.Errorf("config file %s: battle TTLs must be positive", path)
		}
		if rc.Battle.RoomTTLSeconds > 0 {
			cfg.RoomTTL = time.Duration(rc.Battle.RoomTTLSeconds) * time.Second
		}
		if rc.Battle.LockTTLSeconds > 0 {
			cfg.LockTTL = time.Duration(rc.Battle.LockTTLSeconds) * time.Second
		}
		if rc.Battle.QueueTTLSeconds > 0 {
			cfg.QueueTTL = time.Duration(rc.Battle.QueueTTLSeconds) * time.Second
		}
	}

	// The lock must expire well before the room does, otherwise a crashed
	// resolver could pin an abandoned room until the room TTL fires.
	if cfg.LockTTL >= cfg.RoomTTL {
		return nil, fmt.Errorf("config file %s: lock TTL must be shorter than room TTL", path)
	}
	return cfg, nil
}
