package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Server struct {
	Address string
	Port    int
}

type Matching struct {
	PriceStrategy string
}

type SelfTrade struct {
	Enable     bool
	TimeWindow time.Duration
}

type Config struct {
	Server    Server
	Matching  Matching
	SelfTrade SelfTrade
	LogLevel  string
}

// Load reads config.yaml from the given path (or the working directory)
// with TRADING_* environment overrides. Every key has a default, so the
// binary runs with no config file at all.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if path != "" {
		v.AddConfigPath(path)
	}
	v.AddConfigPath(".")

	v.SetDefault("server.address", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("matching.price-strategy", "MID_PRICE")
	v.SetDefault("risk.self-trade.enable", true)
	v.SetDefault("risk.self-trade.time-window", "60s")
	v.SetDefault("log.level", "info")

	v.SetEnvPrefix("TRADING")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("unable to read config: %w", err)
		}
	}

	return &Config{
		Server: Server{
			Address: v.GetString("server.address"),
			Port:    v.GetInt("server.port"),
		},
		Matching: Matching{
			PriceStrategy: v.GetString("matching.price-strategy"),
		},
		SelfTrade: SelfTrade{
			Enable:     v.GetBool("risk.self-trade.enable"),
			TimeWindow: v.GetDuration("risk.self-trade.time-window"),
		},
		LogLevel: v.GetString("log.level"),
	}, nil
}
