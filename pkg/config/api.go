package config

import (
	"time"

	"github.com/joho/godotenv"
)

// APIConfig holds runtime configuration for the auth API service.
type APIConfig struct {
	Environment   string
	Addr          string
	DatabaseURL   string
	MigrationsDir string
	JWTSecret     string
	BcryptCost    int
	TokenTTL      time.Duration
}

// LoadAPIConfig constructs an APIConfig from the environment, reading a
// local .env file first when one is present.
//
// TokenTTL defaults to zero, which issues tokens without an expiry claim.
func LoadAPIConfig() APIConfig {
	_ = godotenv.Load()

	return APIConfig{
		Environment:   GetString("APP_ENV", "development"),
		Addr:          GetString("API_ADDR", ":3000"),
		DatabaseURL:   GetString("DATABASE_URL", "postgres://auth:auth@db:5432/auth?sslmode=disable"),
		MigrationsDir: GetString("DB_MIGRATIONS_DIR", "db/migrations"),
		JWTSecret:     GetString("JWT_SECRET", "supersecuresecret"),
		BcryptCost:    GetInt("BCRYPT_COST", 12),
		TokenTTL:      time.Duration(GetInt("TOKEN_TTL_MIN", 0)) * time.Minute,
	}
}
