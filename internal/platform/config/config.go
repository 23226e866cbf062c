package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/wepoYJ/wepo-server/internal/cache"
)

// Config represents the application configuration.
type Config struct {
	Server    ServerConfig    `json:"server"`
	Database  DatabaseConfig  `json:"database"`
	Cache     cache.Config    `json:"cache"`
	Snowflake SnowflakeConfig `json:"snowflake"`
	App       AppConfig       `json:"app"`
}

// ServerConfig holds server-related configuration.
type ServerConfig struct {
	Host      string `json:"host"`
	Port      int    `json:"port"`
	BaseRoute string `json:"baseRoute"`
	WebDomain string `json:"webDomain"`
	Debug     bool   `json:"debug"`
}

// DatabaseConfig holds database-related configuration.
type DatabaseConfig struct {
	Postgres PostgreSQLConfig `json:"postgres"`
}

// PostgreSQLConfig holds PostgreSQL-specific configuration.
type PostgreSQLConfig struct {
	Host            string        `json:"host"`
	Port            int           `json:"port"`
	Username        string        `json:"username"`
	Password        string        `json:"password"`
	Database        string        `json:"database"`
	SSLMode         string        `json:"sslMode"`
	ConnectTimeout  int           `json:"connectTimeout"`
	MaxOpenConns    int           `json:"maxOpenConns"`
	MaxIdleConns    int           `json:"maxIdleConns"`
	ConnMaxLifetime time.Duration `json:"connMaxLifetime"`
}

// SnowflakeConfig identifies this process in the id space. Cooperating
// processes must each be deployed with a distinct pair.
type SnowflakeConfig struct {
	DatacenterID int64 `json:"datacenterId"`
	WorkerID     int64 `json:"workerId"`
}

// AppConfig holds application-related configuration.
type AppConfig struct {
	Name      string `json:"name"`
	WebDomain string `json:"webDomain"`
}

// LoadFromEnv loads configuration with the following precedence:
// 1. Explicit environment variables (e.g., set in the shell or by CI)
// 2. Values from the .env file (if it exists)
// 3. Hardcoded defaults
func LoadFromEnv() (*Config, error) {
	// godotenv.Load() reads the .env file into the environment only for keys
	// that are not already set, which gives the precedence above.
	if err := godotenv.Load(); err != nil {
		fmt.Println("INFO: .env file not found, using environment variables and defaults.")
	}

	config := &Config{
		Server: ServerConfig{
			Host:      getEnvOrDefault("HOST", "localhost"),
			Port:      getEnvAsInt("SERVER_PORT", 8080),
			BaseRoute: getEnvOrDefault("BASE_ROUTE", "/api"),
			WebDomain: getEnvOrDefault("WEB_DOMAIN", "http://localhost:3000"),
			Debug:     getEnvAsBool("DEBUG", false),
		},
		Database: DatabaseConfig{
			Postgres: PostgreSQLConfig{
				Host:            getEnvOrDefault("POSTGRES_HOST", "localhost"),
				Port:            getEnvAsInt("POSTGRES_PORT", 5432),
				Username:        getEnvOrDefault("POSTGRES_USERNAME", ""),
				Password:        getEnvOrDefault("POSTGRES_PASSWORD", ""),
				Database:        getEnvOrDefault("POSTGRES_DATABASE", "wepo"),
				SSLMode:         getEnvOrDefault("POSTGRES_SSL_MODE", "disable"),
				ConnectTimeout:  getEnvAsInt("POSTGRES_CONNECT_TIMEOUT", 10),
				MaxOpenConns:    getEnvAsInt("POSTGRES_MAX_OPEN_CONNS", 25),
				MaxIdleConns:    getEnvAsInt("POSTGRES_MAX_IDLE_CONNS", 25),
				ConnMaxLifetime: time.Duration(getEnvAsInt("POSTGRES_CONN_MAX_LIFETIME", 300)) * time.Second,
			},
		},
		Cache: cache.Config{
			Backend: getEnvOrDefault("CACHE_BACKEND", cache.BackendRedis),
			Prefix:  getEnvOrDefault("CACHE_PREFIX", "wepo:"),
			Redis: cache.RedisConfig{
				Address:      getEnvOrDefault("REDIS_ADDRESS", "localhost:6379"),
				Password:     getEnvOrDefault("REDIS_PASSWORD", ""),
				Database:     getEnvAsInt("REDIS_DATABASE", 0),
				PoolSize:     getEnvAsInt("REDIS_POOL_SIZE", 10),
				MinIdleConns: getEnvAsInt("REDIS_MIN_IDLE_CONNS", 2),
				MaxConnAge:   getEnvAsDuration("REDIS_MAX_CONN_AGE", 30*time.Minute),
			},
		},
		Snowflake: SnowflakeConfig{
			DatacenterID: getEnvAsInt64("SNOWFLAKE_DATACENTER_ID", 1),
			WorkerID:     getEnvAsInt64("SNOWFLAKE_WORKER_ID", 1),
		},
		App: AppConfig{
			Name:      getEnvOrDefault("APP_NAME", "Wepo"),
			WebDomain: getEnvOrDefault("WEB_DOMAIN", "http://localhost:3000"),
		},
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Validate checks the configuration for values that would only fail later at
// an inconvenient time.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	if c.Cache.Backend != cache.BackendRedis && c.Cache.Backend != cache.BackendMemory {
		return fmt.Errorf("invalid cache backend: %q", c.Cache.Backend)
	}
	if c.Cache.Backend == cache.BackendRedis && c.Cache.Redis.Address == "" && !c.Cache.Redis.Cluster.Enabled {
		return fmt.Errorf("redis cache backend requires REDIS_ADDRESS")
	}
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseInt(value, 10, 64); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
