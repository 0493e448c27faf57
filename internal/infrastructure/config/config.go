package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Access policies. The policy is a first-class configuration value, not
// an alternate code path: "permissive" leaves every route open (the
// profile endpoint still does its own bearer-token check), while
// "protected-endpoints" mounts the JWT middleware on sensitive routes.
const (
	PolicyPermissive         = "permissive"
	PolicyProtectedEndpoints = "protected-endpoints"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	JWTSecret string        `env:"JWT_SECRET"`
	TokenTTL  time.Duration `env:"TOKEN_TTL,   default=24h"`

	BcryptCost   int    `env:"BCRYPT_COST,   default=10"`
	AccessPolicy string `env:"ACCESS_POLICY, default=permissive"`

	ProfileCacheTTL time.Duration `env:"PROFILE_CACHE_TTL, default=5m"`

	Mongo MongoConfig
	Redis RedisConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=medichain"`
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
	if cfg.AccessPolicy != PolicyPermissive && cfg.AccessPolicy != PolicyProtectedEndpoints {
		panic(fmt.Sprintf("config: unknown ACCESS_POLICY %q", cfg.AccessPolicy))
	}
	return &cfg
}
