package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config is built once at startup and passed explicitly to the components
// that need it. Nothing reads the environment after Load returns.
type Config struct {
	Addr           string
	GinMode        string
	AllowedOrigins []string
	JWTSecret      string
	TokenTTL       time.Duration
	DB             DBConfig
}

type DBConfig struct {
	User           string
	Pass           string
	Host           string
	Name           string
	MaxConns       int
	MigrationsPath string
}

func (c *DBConfig) DSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s)/%s?parseTime=true",
		c.User, c.Pass, c.Host, c.Name)
}

func Load() (*Config, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return nil, errors.New("$JWT_SECRET must be set")
	}

	tokenTTL := 24 * time.Hour
	if val := os.Getenv("TOKEN_TTL"); val != "" {
		parsed, err := time.ParseDuration(val)
		if err != nil {
			return nil, fmt.Errorf("invalid $TOKEN_TTL: %w", err)
		}
		tokenTTL = parsed
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	origins := []string{"http://localhost:3000"}
	if val := os.Getenv("FE_ORIGINS"); val != "" {
		origins = strings.Split(val, ";")
	}

	maxConns := 50
	if val := os.Getenv("DB_MAX_CONNS"); val != "" {
		parsed, err := strconv.Atoi(val)
		if err != nil {
			return nil, fmt.Errorf("invalid $DB_MAX_CONNS: %w", err)
		}
		maxConns = parsed
	}

	dbName := os.Getenv("DB_NAME")
	if dbName == "" {
		dbName = "blog"
	}

	migrationsPath := os.Getenv("DB_MIGRATIONS")
	if migrationsPath == "" {
		migrationsPath = "db/migrations"
	}

	return &Config{
		Addr:           ":" + port,
		GinMode:        os.Getenv("GIN_MODE"),
		AllowedOrigins: origins,
		JWTSecret:      secret,
		TokenTTL:       tokenTTL,
		DB: DBConfig{
			User:           os.Getenv("DB_USER"),
			Pass:           os.Getenv("DB_PASS"),
			Host:           os.Getenv("DB_HOST"),
			Name:           dbName,
			MaxConns:       maxConns,
			MigrationsPath: migrationsPath,
		},
	}, nil
}
