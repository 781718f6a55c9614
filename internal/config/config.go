// Package config provides functionality for managing configuration options
// for the application using command-line flags and environment variables.
package config

import (
	"flag"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Options holds the configuration values for the application.
type Options struct {
	// Addr defines the server's listening address (ip:port).
	Addr string

	// DatabaseDSN holds the database connection string. Empty means
	// in-memory storage.
	DatabaseDSN string

	// RedisURL is the address of the redis instance used for rate
	// limiting. Empty disables the limiter.
	RedisURL string

	// GatewayURL is the base URL of the hosted model gateway.
	GatewayURL string

	// GatewayAPIKey authenticates outbound calls to the model gateway.
	// It is server-held and never exposed to clients.
	GatewayAPIKey string

	// GatewayModel is the chat-completion model identifier.
	GatewayModel string

	// JWTSecret signs and verifies bearer tokens.
	JWTSecret string

	// RetentionDays is the history retention window in days. Zero keeps
	// records forever and disables the sweeper.
	RetentionDays int

	// RateLimitPerMinute caps analysis submissions per user per minute.
	RateLimitPerMinute int

	// LogLevel sets the zap logging level.
	LogLevel string

	// EnablePprof indicates whether to enable pprof for performance profiling.
	EnablePprof bool

	// EnableHTTPS indicates whether to enable https.
	EnableHTTPS bool
}

// options holds the current configuration values.
var options = &Options{}

// init initializes command-line flags and sets default values.
func init() {
	flag.StringVar(&options.Addr, "a", "localhost:8080", "run on ip:port server")
	flag.StringVar(&options.DatabaseDSN, "d", "", "db address")
	flag.StringVar(&options.RedisURL, "r", "", "redis address for rate limiting")
	flag.StringVar(&options.GatewayURL, "g", "https://ai.gateway.lovable.dev", "model gateway base url")
	flag.StringVar(&options.GatewayModel, "m", "google/gemini-2.5-flash", "model gateway model id")
	flag.IntVar(&options.RetentionDays, "retention-days", 0, "delete analyses older than N days (0 keeps forever)")
	flag.IntVar(&options.RateLimitPerMinute, "rate-limit", 30, "analysis submissions per user per minute")
	flag.StringVar(&options.LogLevel, "l", "info", "log level")
	flag.BoolVar(&options.EnablePprof, "p", false, "enable pprof")
	flag.BoolVar(&options.EnableHTTPS, "s", false, "enable https")
}

// Parse parses the command-line flags and environment variables to set
// configuration values. It returns a pointer to the Options struct containing
// the parsed configuration values.
func Parse() *Options {
	godotenv.Load()

	flag.Parse()

	// Override flags with environment variables if set
	if serverAddress := os.Getenv("SERVER_ADDRESS"); serverAddress != "" {
		options.Addr = serverAddress
	}

	if dsn := os.Getenv("DATABASE_DSN"); dsn != "" {
		options.DatabaseDSN = dsn
	}

	if redisURL := os.Getenv("REDIS_URL"); redisURL != "" {
		options.RedisURL = redisURL
	}

	if gatewayURL := os.Getenv("GATEWAY_URL"); gatewayURL != "" {
		options.GatewayURL = gatewayURL
	}

	if model := os.Getenv("GATEWAY_MODEL"); model != "" {
		options.GatewayModel = model
	}

	// Secrets come from the environment only.
	options.GatewayAPIKey = os.Getenv("GATEWAY_API_KEY")
	options.JWTSecret = getEnvOrDefault("JWT_SECRET", "supersecretkey")

	if retention := os.Getenv("RETENTION_DAYS"); retention != "" {
		if days, err := strconv.Atoi(retention); err == nil {
			options.RetentionDays = days
		}
	}

	if level := os.Getenv("LOG_LEVEL"); level != "" {
		options.LogLevel = level
	}

	if enableHTTPS := os.Getenv("ENABLE_HTTPS"); enableHTTPS != "" {
		httpMode, err := strconv.ParseBool(enableHTTPS)
		if err != nil {
			options.EnableHTTPS = false
		}

		options.EnableHTTPS = httpMode
	}

	return options
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
