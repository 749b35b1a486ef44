package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Database
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// JWT
	JWTSecret      string
	JWTExpireHours string

	// Redis
	RedisEnabled  bool
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       string

	// Role cache
	RoleCacheTTLMinutes int

	// Rate limiting
	RateLimitEnabled       bool
	RateLimitMaxRequests   int
	RateLimitWindowSeconds int

	// Logging
	LogLevel  string
	LogFormat string

	// Frontend URL (CORS + websocket origin)
	FrontendURL string

	// Service URLs
	OrganizationServiceURL string
	NotificationServiceURL string

	// Organizations feature flags
	RegisterRoutes         bool
	RoutePrefix            string
	WorkspaceScoped        bool
	WorkspaceRoles         bool
	RegenerateSlugOnRename bool
	EventsChannel          string
	EventsWebhookURL       string
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	envPaths := []string{
		".env",
		"../.env",
		"../../.env",
	}

	envLoaded := false
	for _, path := range envPaths {
		if err := godotenv.Load(path); err == nil {
			log.Printf("environment loaded from %s", path)
			envLoaded = true
			break
		}
	}

	if !envLoaded {
		log.Println("warning: .env file not found, using system environment variables")
	}

	cfg := &Config{
		// Database
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "organizations"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		// JWT
		JWTSecret:      getEnv("JWT_SECRET", "your-secret-key-change-this"),
		JWTExpireHours: getEnv("JWT_EXPIRE_HOURS", "3"),

		// Redis
		RedisEnabled:  getEnvAsBool("REDIS_ENABLED", true),
		RedisHost:     getEnv("REDIS_HOST", "localhost"),
		RedisPort:     getEnv("REDIS_PORT", "6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnv("REDIS_DB", "0"),

		RoleCacheTTLMinutes: getEnvAsInt("ROLE_CACHE_TTL_MINUTES", 15),

		RateLimitEnabled:       getEnvAsBool("RATE_LIMIT_ENABLED", true),
		RateLimitMaxRequests:   getEnvAsInt("RATE_LIMIT_MAX_REQUESTS", 60),
		RateLimitWindowSeconds: getEnvAsInt("RATE_LIMIT_WINDOW_SECONDS", 60),

		// Logging
		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "json"),

		FrontendURL: getEnv("FRONTEND_URL", "http://localhost:3000"),

		OrganizationServiceURL: getEnv("ORGANIZATION_SERVICE_URL", "http://localhost:8003"),
		NotificationServiceURL: getEnv("NOTIFICATION_SERVICE_URL", "http://localhost:8004"),

		// Organizations
		RegisterRoutes:         getEnvAsBool("ORGANIZATIONS_REGISTER_ROUTES", true),
		RoutePrefix:            getEnv("ORGANIZATIONS_ROUTE_PREFIX", "/api"),
		WorkspaceScoped:        getEnvAsBool("ORGANIZATIONS_WORKSPACE_SCOPED", true),
		WorkspaceRoles:         getEnvAsBool("ORGANIZATIONS_WORKSPACE_ROLES", true),
		RegenerateSlugOnRename: getEnvAsBool("ORGANIZATIONS_REGENERATE_SLUG_ON_RENAME", false),
		EventsChannel:          getEnv("ORGANIZATIONS_EVENTS_CHANNEL", "organizations.events"),
		EventsWebhookURL:       getEnv("ORGANIZATIONS_EVENTS_WEBHOOK_URL", ""),
	}

	log.Println("configuration loaded")
	return cfg
}

// GetJWTExpireDuration returns the token lifetime, 24h when unset or invalid
func (c *Config) GetJWTExpireDuration() time.Duration {
	hours, err := strconv.Atoi(c.JWTExpireHours)
	if err != nil || hours <= 0 {
		return 24 * time.Hour
	}
	return time.Duration(hours) * time.Hour
}

// GetRedisDB returns the redis database number as integer
func (c *Config) GetRedisDB() int {
	if value, err := strconv.Atoi(c.RedisDB); err == nil {
		return value
	}
	return 0
}

// GetRoleCacheTTL returns the role cache TTL
func (c *Config) GetRoleCacheTTL() time.Duration {
	if c.RoleCacheTTLMinutes <= 0 {
		return 15 * time.Minute
	}
	return time.Duration(c.RoleCacheTTLMinutes) * time.Minute
}

// GetRateLimitWindow returns the throttle window, one minute when unset
func (c *Config) GetRateLimitWindow() time.Duration {
	if c.RateLimitWindowSeconds <= 0 {
		return time.Minute
	}
	return time.Duration(c.RateLimitWindowSeconds) * time.Second
}

// ServicePort extracts the port from a service URL such as http://localhost:8003
func ServicePort(serviceURL, fallback string) string {
	parts := strings.Split(serviceURL, ":")
	if len(parts) < 3 || parts[2] == "" {
		return fallback
	}
	return strings.TrimSuffix(parts[2], "/")
}

// getEnv gets environment variable with default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt gets environment variable as integer with default value
func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
