package config

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/Skotchmaster/user_service/internal/models"
	pkgconfig "github.com/Skotchmaster/user_service/pkg/config"
	"github.com/Skotchmaster/user_service/pkg/db"
)

type Config struct {
	ServerPort int
	LogLevel   string

	DatabaseURL string

	JWTSecret  []byte
	AccessTTL  time.Duration
	RefreshTTL time.Duration

	ESURL      string
	ESUser     string
	ESPassword string
	ESIndex    string

	KafkaBrokers []string
	KafkaTopic   string
}

func Load() *Config {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Notice: .env file not found: %v. Using system environment variables", err)
	}

	return &Config{
		ServerPort: pkgconfig.EnvIntDefault("SERVER_PORT", 8080),
		LogLevel:   pkgconfig.EnvDefault("LOG_LEVEL", "info"),

		DatabaseURL: pkgconfig.EnvDefault("DATABASE_URL", ""),

		JWTSecret:  []byte(pkgconfig.MustEnv("JWT_SECRET")),
		AccessTTL:  pkgconfig.EnvDurationDefault("ACCESS_TOKEN_TTL", 15*time.Minute),
		RefreshTTL: pkgconfig.EnvDurationDefault("REFRESH_TOKEN_TTL", 7*24*time.Hour),

		ESURL:      pkgconfig.EnvDefault("ES_URL", ""),
		ESUser:     pkgconfig.EnvDefault("ES_USER", ""),
		ESPassword: pkgconfig.EnvDefault("ES_PASSWORD", ""),
		ESIndex:    pkgconfig.EnvDefault("ES_INDEX", "users"),

		KafkaBrokers: pkgconfig.CSV(pkgconfig.EnvDefault("KAFKA_BROKERS", "")),
		KafkaTopic:   pkgconfig.EnvDefault("KAFKA_TOPIC", "user_events"),
	}
}

func InitDB(ctx context.Context, dsn string) (*gorm.DB, error) {
	gdb, err := db.Open(ctx, dsn)
	if err != nil {
		return nil, err
	}

	if err := gdb.AutoMigrate(&models.User{}); err != nil {
		return nil, fmt.Errorf("db migrate: %w", err)
	}

	return gdb, nil
}
