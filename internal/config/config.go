package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Supported data backends.
const (
	BackendMongo  = "mongo"
	BackendBadger = "badger"
	BackendMemory = "memory"
)

// Config holds every runtime setting, loaded from the environment.
type Config struct {
	// HTTP Server
	Port string

	// Storage
	DataBackend   string
	MongoURI      string
	MongoDatabase string
	BadgerPath    string

	// AMQP (optional; empty URL disables event publishing)
	AMQPURL      string
	AMQPExchange string

	// Logging
	LogLevel string
}

// Load reads the configuration from the environment, falling back to
// local-development defaults.
func Load() *Config {
	return &Config{
		Port: getEnv("PORT", "8080"),

		DataBackend:   getEnv("DATA_BACKEND", BackendMongo),
		MongoURI:      getEnv("MONGODB_URI", "mongodb://localhost:27017"),
		MongoDatabase: getEnv("MONGODB_DATABASE", "finance_tracker"),
		BadgerPath:    getEnv("BADGER_PATH", "./data"),

		AMQPURL:      getEnv("AMQP_URL", ""),
		AMQPExchange: getEnv("AMQP_EXCHANGE", "finance_tracker"),

		LogLevel: getEnv("LOG_LEVEL", "info"),
	}
}

// Validate checks the configuration and reports every problem at once.
func (c *Config) Validate() error {
	var errs []string

	if port, err := strconv.Atoi(c.Port); err != nil {
		errs = append(errs, fmt.Sprintf("invalid port %q: must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errs = append(errs, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	switch c.DataBackend {
	case BackendMongo:
		if c.MongoURI == "" {
			errs = append(errs, "MongoDB URI cannot be empty when using the mongo backend")
		}
		if c.MongoDatabase == "" {
			errs = append(errs, "MongoDB database name cannot be empty when using the mongo backend")
		}
	case BackendBadger:
		if c.BadgerPath == "" {
			errs = append(errs, "Badger path cannot be empty when using the badger backend")
		} else if dir := filepath.Dir(c.BadgerPath); dir != "." && dir != "" {
			if _, err := os.Stat(dir); os.IsNotExist(err) {
				if err := os.MkdirAll(dir, 0o755); err != nil {
					errs = append(errs, fmt.Sprintf("cannot create badger directory %q: %v", dir, err))
				}
			}
		}
	case BackendMemory:
		// Nothing to check.
	default:
		errs = append(errs, fmt.Sprintf("invalid data backend %q: must be one of [%s %s %s]",
			c.DataBackend, BackendMongo, BackendBadger, BackendMemory))
	}

	if c.AMQPURL != "" {
		if parsed, err := url.Parse(c.AMQPURL); err != nil {
			errs = append(errs, fmt.Sprintf("invalid AMQP URL %q: %v", c.AMQPURL, err))
		} else if parsed.Scheme != "amqp" && parsed.Scheme != "amqps" {
			errs = append(errs, fmt.Sprintf("invalid AMQP URL scheme %q: must be 'amqp' or 'amqps'", parsed.Scheme))
		}
		if c.AMQPExchange == "" {
			errs = append(errs, "AMQP exchange name cannot be empty when an AMQP URL is provided")
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errs, "\n- "))
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
