package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Config is the explicit configuration object handed to constructors at
// startup. Core logic never reads environment state on its own.
type Config struct {
	Port     string `env:"PORT,     default=8080"`
	Env      string `env:"ENV,      default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	// Storage selects the credential/book store backend: "mongo" or "memory".
	// The memory backend exists for local development and tests only.
	Storage string `env:"STORAGE_DRIVER, default=mongo"`

	Auth  AuthConfig
	Mongo MongoConfig
	Redis RedisConfig
}

type AuthConfig struct {
	// JWTSecret signs and verifies tokens. Required; never logged.
	JWTSecret  string        `env:"JWT_SECRET, required"`
	TokenTTL   time.Duration `env:"TOKEN_TTL,  default=24h"`
	BcryptCost int           `env:"BCRYPT_COST, default=10"`

	// Login throttle: lock a key after MaxLoginAttempts failures within
	// LockWindow. Requires Redis; degrades to no throttling without it.
	MaxLoginAttempts int           `env:"MAX_LOGIN_ATTEMPTS, default=5"`
	LockWindow       time.Duration `env:"LOGIN_LOCK_WINDOW,  default=15m"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=identity"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
