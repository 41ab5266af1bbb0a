package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultHost               = "localhost"
	defaultPort               = "8000"
	defaultConnectionString   = "mongodb://127.0.0.1:27017/countries_db"
	defaultDatabase           = "countries_db"
	defaultCountryCollection  = "country"
	defaultMigrationsHistory  = "migrations_history"
	defaultRestCountriesURL   = "https://restcountries.com/v3.1/all"
	defaultMaxPoolSize uint64 = 100
	defaultIngestWorkers      = 5
	defaultRequestTimeout     = 10 * time.Second
)

// Config holds the application configuration
type Config struct {
	Host                        string
	Port                        string
	DBConnectionString          string
	DBName                      string
	CollectionCountries         string
	CollectionMigrationsHistory string
	MongoMaxPoolSize            uint64
	RestCountriesAPIBaseURL     string
	IngestSourceFile            string
	IngestWorkers               int
	RequestTimeout              time.Duration
	LogLevel                    string
}

// Load reads the .env file, if any, and builds the configuration from the environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	cfg := &Config{
		Host:                        getEnv("HOST", defaultHost),
		Port:                        getEnv("PORT", defaultPort),
		DBConnectionString:          getEnv("DB_CONNECTION_STRING", defaultConnectionString),
		CollectionCountries:         getEnv("COLLECTION_COUNTRIES", defaultCountryCollection),
		CollectionMigrationsHistory: getEnv("COLLECTION_MIGRATIONS_HISTORY", defaultMigrationsHistory),
		RestCountriesAPIBaseURL:     getEnv("RESTCOUNTRIES_API_BASE_URL", defaultRestCountriesURL),
		IngestSourceFile:            os.Getenv("INGEST_SOURCE_FILE"),
		LogLevel:                    getEnv("LOG_LEVEL", "info"),
		MongoMaxPoolSize:            defaultMaxPoolSize,
		IngestWorkers:               defaultIngestWorkers,
		RequestTimeout:              defaultRequestTimeout,
	}
	cfg.DBName = databaseFromURI(cfg.DBConnectionString)

	if v := os.Getenv("MONGO_MAX_POOL_SIZE"); v != "" {
		n, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid MONGO_MAX_POOL_SIZE %q: %w", v, err)
		}
		cfg.MongoMaxPoolSize = n
	}

	if v := os.Getenv("INGEST_WORKERS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return nil, fmt.Errorf("invalid INGEST_WORKERS %q: must be a positive integer", v)
		}
		cfg.IngestWorkers = n
	}

	if v := os.Getenv("REQUEST_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("invalid REQUEST_TIMEOUT %q: %w", v, err)
		}
		cfg.RequestTimeout = d
	}

	return cfg, nil
}

// Addr is the host:port the HTTP server listens on.
func (c *Config) Addr() string {
	return c.Host + ":" + c.Port
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// databaseFromURI extracts the database segment of a
// scheme://[user:pass@]host[:port][,host...]/databaseName[?options] string.
func databaseFromURI(uri string) string {
	rest := uri
	if i := strings.Index(rest, "://"); i >= 0 {
		rest = rest[i+3:]
	}
	i := strings.Index(rest, "/")
	if i < 0 {
		return defaultDatabase
	}
	name := rest[i+1:]
	if j := strings.IndexAny(name, "?#"); j >= 0 {
		name = name[:j]
	}
	if name == "" {
		return defaultDatabase
	}
	return name
}
