package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration values
type Config struct {
	Port                 string
	APIBaseURL           string
	StripePublishableKey string
	ImageHosts           []string
	SessionTTL           time.Duration
	LogLevel             string

	// Optional Fluent Bit log forwarding
	FluentEnabled bool
	FluentHost    string
	FluentPort    int
}

// LoadConfig reads configuration from environment variables, falling back to
// local-development defaults
func LoadConfig() *Config {
	cfg := &Config{
		Port:                 getEnv("PORT", "8080"),
		APIBaseURL:           getEnv("API_BASE_URL", "http://localhost:8000"),
		StripePublishableKey: os.Getenv("STRIPE_PUBLISHABLE_KEY"),
		ImageHosts:           splitHosts(getEnv("IMAGE_HOSTS", "api.mapbox.com,maps.googleapis.com")),
		SessionTTL:           getEnvAsDuration("SESSION_TTL", 30*time.Minute),
		LogLevel:             getEnv("LOG_LEVEL", "info"),
		FluentEnabled:        getEnvAsBool("FLUENT_ENABLED", false),
	}

	if cfg.FluentEnabled {
		cfg.FluentHost = os.Getenv("FLUENT_HOST")
		if cfg.FluentHost == "" {
			log.Println("WARNING: FLUENT_ENABLED is true but FLUENT_HOST is not set. Disabling log forwarding.")
			cfg.FluentEnabled = false
		}
		cfg.FluentPort = getEnvAsInt("FLUENT_PORT", 24224)
	}

	return cfg
}

// ImageHostAllowed reports whether a remote image host is on the allow-list
func (c *Config) ImageHostAllowed(host string) bool {
	for _, allowed := range c.ImageHosts {
		if strings.EqualFold(host, allowed) {
			return true
		}
	}
	return false
}

func splitHosts(raw string) []string {
	var hosts []string
	for _, h := range strings.Split(raw, ",") {
		h = strings.TrimSpace(h)
		if h != "" {
			hosts = append(hosts, h)
		}
	}
	return hosts
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	valueInt, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Warning: environment variable %s (value: %s) is not an int: %v. Using default %d", key, valueStr, err, defaultValue)
		return defaultValue
	}
	return valueInt
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	valueBool, err := strconv.ParseBool(valueStr)
	if err != nil {
		log.Printf("Warning: environment variable %s (value: %s) is not a bool: %v. Using default %t", key, valueStr, err, defaultValue)
		return defaultValue
	}
	return valueBool
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	d, err := time.ParseDuration(valueStr)
	if err != nil {
		log.Printf("Warning: environment variable %s (value: %s) is not a duration: %v. Using default %s", key, valueStr, err, defaultValue)
		return defaultValue
	}
	return d
}
