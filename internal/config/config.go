package config

import (
	"fmt"
	"os"
	"strings"
)

type Config struct {
	// Database
	DBHost      string
	DBPort      string
	DBUser      string
	DBPassword  string
	DBName      string
	DBSSLMode   string
	DatabaseURL string

	// Redis
	EnableRedis bool
	RedisURL    string

	// JWT (editorial API)
	JWTSecret string

	// Server
	Port        string
	Environment string

	// CORS
	CORSOrigins []string

	// Locales
	DefaultLocale    string
	SupportedLocales []string

	// Assets
	AssetBaseURL  string
	AssetQuality  int
	AssetAutoWebP bool

	// Features
	EnableCache   bool
	EnableMetrics bool

	// Site Meta
	SiteName        string
	SiteDescription string
	SiteURL         string
	SiteFavicon     string
}

func New() *Config {
	c := &Config{
		// Database
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "siteuser"),
		DBPassword: getEnv("DB_PASSWORD", "sitepassword"),
		DBName:     getEnv("DB_NAME", "sitedb"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		// Redis
		EnableRedis: getEnvAsBool("ENABLE_REDIS", true),
		RedisURL:    getEnv("REDIS_URL", "localhost:6379"),

		// JWT
		JWTSecret: getEnv("JWT_SECRET", "change-this-editorial-api-secret"),

		// Server
		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("ENVIRONMENT", "development"),

		// CORS
		CORSOrigins: splitAndTrim(getEnv("CORS_ORIGINS", "http://localhost:3000,http://localhost:8080")),

		// Locales
		DefaultLocale:    getEnv("DEFAULT_LOCALE", "en"),
		SupportedLocales: splitAndTrim(getEnv("SUPPORTED_LOCALES", "en,es,it")),

		// Assets
		AssetBaseURL:  getEnv("ASSET_BASE_URL", "https://cdn.carsu.app/images"),
		AssetQuality:  getEnvAsInt("ASSET_QUALITY", 80),
		AssetAutoWebP: getEnvAsBool("ASSET_AUTO_WEBP", true),

		// Features
		EnableCache:   getEnvAsBool("ENABLE_CACHE", true),
		EnableMetrics: getEnvAsBool("ENABLE_METRICS", true),

		// Site Meta
		SiteName:        getEnv("SITE_NAME", "Carsu"),
		SiteDescription: getEnv("SITE_DESCRIPTION", "Workshop management software for modern garages."),
		SiteURL:         getEnv("SITE_URL", "http://localhost:8080"),
		SiteFavicon:     getEnv("SITE_FAVICON", "/favicon.ico"),
	}

	// Build DSN
	c.DatabaseURL = fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName, c.DBSSLMode,
	)

	return c
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	var value int
	_, err := fmt.Sscanf(valueStr, "%d", &value)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	return valueStr == "true" || valueStr == "1"
}

func splitAndTrim(value string) []string {
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		if token := strings.TrimSpace(part); token != "" {
			result = append(result, token)
		}
	}
	return result
}

func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
