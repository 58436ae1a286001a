package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"

	pkgcfg "github.com/Skotchmaster/job_board/pkg/config"
)

type Config struct {
	ServiceName string
	Env         string
	ServerPort  int
	LogLevel    string

	DBDriver    string
	DatabaseURL string

	JWTSecret       []byte
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration

	CORSOrigins []string

	RedisURL        string
	RateLimitAuth   int
	RateLimitWindow time.Duration

	KafkaBrokers []string

	ESURL      string
	ESUser     string
	ESPassword string
	ESIndex    string
}

func (c Config) Production() bool { return c.Env == "production" }

// Load reads .env (when present) and the process environment.
func Load() (Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("notice: .env file not found: %v. Using system environment variables", err)
	}

	cfg := Config{
		ServiceName: pkgcfg.EnvDefault("SERVICE_NAME", "jobboard"),
		Env:         pkgcfg.EnvDefault("APP_ENV", "development"),
		ServerPort:  pkgcfg.EnvIntDefault("SERVER_PORT", 8080),
		LogLevel:    pkgcfg.EnvDefault("LOG_LEVEL", "info"),

		DBDriver:    pkgcfg.EnvDefault("DB_DRIVER", "sqlite"),
		DatabaseURL: pkgcfg.EnvDefault("DATABASE_URL", "jobboard.db"),

		JWTSecret:       []byte(pkgcfg.EnvDefault("JWT_SECRET", "")),
		AccessTokenTTL:  pkgcfg.EnvDurationDefault("ACCESS_TOKEN_TTL", 15*time.Minute),
		RefreshTokenTTL: pkgcfg.EnvDurationDefault("REFRESH_TOKEN_TTL", 7*24*time.Hour),

		CORSOrigins: pkgcfg.CSV(pkgcfg.EnvDefault("CORS_ORIGINS", "http://localhost:3000")),

		RedisURL:        pkgcfg.EnvDefault("REDIS_URL", ""),
		RateLimitAuth:   pkgcfg.EnvIntDefault("RATE_LIMIT_AUTH", 10),
		RateLimitWindow: pkgcfg.EnvDurationDefault("RATE_LIMIT_WINDOW", 15*time.Minute),

		KafkaBrokers: pkgcfg.CSV(pkgcfg.EnvDefault("KAFKA_BROKERS", "")),

		ESURL:      pkgcfg.EnvDefault("ES_URL", ""),
		ESUser:     pkgcfg.EnvDefault("ES_USER", ""),
		ESPassword: pkgcfg.EnvDefault("ES_PASSWORD", ""),
		ESIndex:    pkgcfg.EnvDefault("ES_INDEX", "jobs"),
	}

	var req pkgcfg.Required
	req.Bytes(cfg.JWTSecret, "JWT_SECRET")
	req.String(cfg.DatabaseURL, "DATABASE_URL")
	if err := req.Err(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}
