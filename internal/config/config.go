package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"profile-app-go/pkg/logger"
)

type Config struct {
	HTTPPort string
	Env      string
	DB       DBConfig
	Auth     AuthConfig
	Uploads  UploadsConfig
	CORS     CORSConfig
}

type DBConfig struct {
	DSN             string
	Host            string
	Port            string
	User            string
	Password        string
	Name            string
	SSLMode         string
	TimeZone        string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

type AuthConfig struct {
	// JWTSecret signs and verifies the HS256 bearer tokens issued by the
	// login endpoint.
	JWTSecret     string
	TokenTTL      time.Duration
	SkipAuth      bool
	MockUserEmail string
}

type UploadsConfig struct {
	// Dir is where avatar files are written on disk. PublicPrefix is the
	// URL-path prefix clients use to fetch them; the two are deliberately
	// independent.
	Dir          string
	PublicPrefix string
}

type CORSConfig struct {
	AllowedOrigins []string
}

func Load(log logger.Logger) (Config, error) {
	if err := godotenv.Load(); err == nil {
		log.Info("config: loaded .env file")
	} else if !os.IsNotExist(err) {
		return Config{}, err
	}

	return Config{
		HTTPPort: getEnv("HTTP_PORT", "8080"),
		Env:      getEnv("ENV", "development"),
		DB: DBConfig{
			DSN:             getEnv("DB_DSN", ""),
			Host:            getEnv("DB_HOST", "localhost"),
			Port:            getEnv("DB_PORT", "5432"),
			User:            getEnv("DB_USER", "postgres"),
			Password:        getEnv("DB_PASSWORD", "postgres"),
			Name:            getEnv("DB_NAME", "profile_app"),
			SSLMode:         getEnv("DB_SSLMODE", "disable"),
			TimeZone:        getEnv("DB_TIMEZONE", "UTC"),
			MaxOpenConns:    getEnvInt("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns:    getEnvInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getEnvDuration("DB_CONN_MAX_LIFETIME", 30*time.Minute),
		},
		Auth: AuthConfig{
			JWTSecret:     getEnv("JWT_SECRET", ""),
			TokenTTL:      getEnvDuration("JWT_TOKEN_TTL", 72*time.Hour),
			SkipAuth:      getEnvBool("AUTH_SKIP", false),
			MockUserEmail: getEnv("AUTH_MOCK_USER_EMAIL", ""),
		},
		Uploads: UploadsConfig{
			Dir:          getEnv("UPLOADS_DIR", "uploads/profile-images"),
			PublicPrefix: getEnv("UPLOADS_PUBLIC_PREFIX", "/uploads/profile-images"),
		},
		CORS: CORSConfig{
			AllowedOrigins: []string{getEnv("CORS_ALLOWED_ORIGIN", "http://localhost:5173")},
		},
	}, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func (c DBConfig) GetDSN() string {
	if c.DSN != "" {
		return c.DSN
	}
	return "host=" + c.Host +
		" user=" + c.User +
		" password=" + c.Password +
		" dbname=" + c.Name +
		" port=" + c.Port +
		" sslmode=" + c.SSLMode +
		" TimeZone=" + c.TimeZone
}
