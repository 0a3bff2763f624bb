package config

import (
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Session   SessionConfig
	Broadcast BroadcastConfig
	Log       LogConfig
}

type ServerConfig struct {
	Port int
}

type DatabaseConfig struct {
	Path string
}

type SessionConfig struct {
	TTL time.Duration
}

type BroadcastConfig struct {
	WriteTimeout time.Duration
	SendBuffer   int
}

type LogConfig struct {
	Level string
}

func Load() (*Config, error) {
	viper.AutomaticEnv()

	viper.SetDefault("SERVER_PORT", 3000)
	viper.SetDefault("DB_PATH", "restaurant.db")
	viper.SetDefault("SESSION_TTL", "24h")
	viper.SetDefault("WS_WRITE_TIMEOUT", "10s")
	viper.SetDefault("WS_SEND_BUFFER", 32)
	viper.SetDefault("LOG_LEVEL", "info")

	sessionTTL, err := time.ParseDuration(viper.GetString("SESSION_TTL"))
	if err != nil {
		return nil, err
	}

	writeTimeout, err := time.ParseDuration(viper.GetString("WS_WRITE_TIMEOUT"))
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Server: ServerConfig{
			Port: viper.GetInt("SERVER_PORT"),
		},
		Database: DatabaseConfig{
			Path: viper.GetString("DB_PATH"),
		},
		Session: SessionConfig{
			TTL: sessionTTL,
		},
		Broadcast: BroadcastConfig{
			WriteTimeout: writeTimeout,
			SendBuffer:   viper.GetInt("WS_SEND_BUFFER"),
		},
		Log: LogConfig{
			Level: viper.GetString("LOG_LEVEL"),
		},
	}

	return cfg, nil
}
