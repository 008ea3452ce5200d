package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

// Storage backends understood by storage.New.
const (
	BackendFile     = "file"
	BackendRedis    = "redis"
	BackendSurreal  = "surrealdb"
	BackendPostgres = "postgres"
	BackendSQLite   = "sqlite"
)

// Notification backends understood by notify.New.
const (
	NotifyLog   = "log"
	NotifyKafka = "kafka"
	NotifyNone  = "none"
)

// Config holds application configuration
type Config struct {
	Env      string
	LogLevel string

	// Server
	Port string

	// JWT
	JWTSecret        string
	JWTExpirationDur time.Duration

	// Auth route rate limiting, per client IP
	AuthRateLimit float64
	AuthRateBurst int

	// Trading
	InitialBalance decimal.Decimal
	LockTimeout    time.Duration
	MarketDataFile string

	Storage StorageConfig
	Notify  NotifyConfig
}

// StorageConfig selects and configures the ledger persistence backend.
type StorageConfig struct {
	Backend     string
	AutoMigrate bool

	// file
	DataFile string

	// redis
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	RedisPrefix   string

	// surrealdb
	SurrealAddr string
	SurrealUser string
	SurrealPass string
	SurrealNS   string
	SurrealDB   string

	// postgres
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// sqlite
	SQLitePath string
}

// NotifyConfig selects the trade confirmation channel.
type NotifyConfig struct {
	Backend      string
	KafkaBrokers []string
	KafkaTopic   string
}

var appConfig *Config

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if not already loaded
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	config := &Config{
		Env:      getEnv("ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", ""),
		Port:     getEnv("PORT", "8080"),

		JWTSecret: getEnv("JWT_SECRET", "fallback-secret-key-for-dev-only"),

		AuthRateLimit:  getFloat("AUTH_RATE_LIMIT", 5),
		AuthRateBurst:  getInt("AUTH_RATE_BURST", 10),
		MarketDataFile: getEnv("MARKET_DATA_FILE", ""),

		Storage: StorageConfig{
			Backend:     strings.ToLower(getEnv("STORAGE_BACKEND", BackendFile)),
			AutoMigrate: getBool("AUTO_MIGRATE", true),

			DataFile: getEnv("DATA_FILE", "trading_data.json"),

			RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
			RedisPassword: getEnv("REDIS_PASSWORD", ""),
			RedisDB:       getInt("REDIS_DB", 0),
			RedisPrefix:   getEnv("REDIS_PREFIX", "papertrade"),

			SurrealAddr: getEnv("SURREAL_ADDR", "ws://localhost:8000/rpc"),
			SurrealUser: getEnv("SURREAL_USER", "root"),
			SurrealPass: getEnv("SURREAL_PASS", "root"),
			SurrealNS:   getEnv("SURREAL_NS", "papertrade"),
			SurrealDB:   getEnv("SURREAL_DB", "papertrade"),

			DBHost:     getEnv("DB_HOST", "localhost"),
			DBPort:     getEnv("DB_PORT", "5432"),
			DBUser:     getEnv("DB_USER", "papertrade"),
			DBPassword: getEnv("DB_PASSWORD", "papertrade"),
			DBName:     getEnv("DB_NAME", "papertrade"),
			DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

			SQLitePath: getEnv("SQLITE_PATH", "papertrade.db"),
		},

		Notify: NotifyConfig{
			Backend:      strings.ToLower(getEnv("NOTIFY_BACKEND", NotifyLog)),
			KafkaBrokers: splitList(getEnv("KAFKA_BROKERS", "localhost:9092")),
			KafkaTopic:   getEnv("KAFKA_TOPIC", "trade-confirmations"),
		},
	}

	config.JWTExpirationDur = getDuration("JWT_EXPIRES_IN", 24*time.Hour)
	config.LockTimeout = getDuration("LOCK_TIMEOUT", 5*time.Second)

	balStr := getEnv("INITIAL_BALANCE", "10000.00")
	bal, err := decimal.NewFromString(balStr)
	if err != nil || bal.IsNegative() {
		log.Printf("Warning: invalid INITIAL_BALANCE value '%s', falling back to 10000.00\n", balStr)
		bal = decimal.RequireFromString("10000.00")
	}
	config.InitialBalance = bal

	appConfig = config
	return config, nil
}

// Get returns the application configuration
func Get() *Config {
	if appConfig == nil {
		var err error
		appConfig, err = Load()
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}
	}
	return appConfig
}

// Set replaces the cached configuration. Tests use it to pin secrets and timeouts.
func Set(cfg *Config) {
	appConfig = cfg
}

// PostgresURL returns the connection URL used by golang-migrate.
func (s StorageConfig) PostgresURL() string {
	return "postgres://" + s.DBUser + ":" + s.DBPassword + "@" + s.DBHost + ":" + s.DBPort + "/" + s.DBName + "?sslmode=" + s.DBSSLMode
}

// PostgresDSN returns the keyword/value connection string used by GORM.
func (s StorageConfig) PostgresDSN() string {
	return "host=" + s.DBHost + " port=" + s.DBPort + " user=" + s.DBUser +
		" password=" + s.DBPassword + " dbname=" + s.DBName + " sslmode=" + s.DBSSLMode
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getInt(key string, defaultValue int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		log.Printf("Warning: invalid %s value '%s', falling back to %d\n", key, raw, defaultValue)
		return defaultValue
	}
	return v
}

func getFloat(key string, defaultValue float64) float64 {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		log.Printf("Warning: invalid %s value '%s', falling back to %g\n", key, raw, defaultValue)
		return defaultValue
	}
	return v
}

func getBool(key string, defaultValue bool) bool {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return defaultValue
	}
	return v
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	raw := getEnv(key, "")
	if raw == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		log.Printf("Warning: invalid %s value '%s', falling back to %s\n", key, raw, defaultValue)
		return defaultValue
	}
	return d
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
