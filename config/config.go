package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

const envPrefix = "STAFFBOOK_"

type Config struct {
	Telegram Telegram `koanf:"telegram"`
	DB       Database `koanf:"db" validate:"required"`
	Pool     Pool     `koanf:"pool" validate:"required"`
	Log      Log      `koanf:"log" validate:"required"`
}

type Telegram struct {
	Token string `koanf:"token"`
}

type Database struct {
	DSN          string `koanf:"dsn" validate:"required"`
	ForeignKeys  bool   `koanf:"foreign_keys"`
	MaxOpenConns int    `koanf:"max_open_conns" validate:"gte=1"`
}

type Pool struct {
	Workers   int `koanf:"workers" validate:"gte=1"`
	QueueSize int `koanf:"queue_size" validate:"gte=0"`
}

type Log struct {
	Level  string `koanf:"level" validate:"oneof=trace debug info warn error"`
	Pretty bool   `koanf:"pretty"`
}

func Default() Config {
	return Config{
		DB:   Database{DSN: "staffbook.db", MaxOpenConns: 1},
		Pool: Pool{Workers: 4, QueueSize: 32},
		Log:  Log{Level: "info"},
	}
}

// LoadConfig reads STAFFBOOK_* variables, after loading a .env file if one
// is present, on top of Default. STAFFBOOK_DB_MAX_OPEN_CONNS maps to
// db.max_open_conns.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	k := koanf.New(".")
	err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		key := strings.ToLower(strings.TrimPrefix(s, envPrefix))
		return strings.Replace(key, "_", ".", 1)
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("load env: %w", err)
	}

	cfg := Default()
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if cfg.Telegram.Token == "" {
		return nil, ErrNoToken{}
	}
	cfg.Log.Level = strings.ToLower(cfg.Log.Level)
	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

type ErrNoToken struct{}

func (e ErrNoToken) Error() string {
	return envPrefix + "TELEGRAM_TOKEN is not set"
}
