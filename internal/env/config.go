package env

import (
	"fmt"
	"time"
)

// User store backends.
const (
	StoreMemory   = "memory"
	StorePostgres = "postgres"
	StoreS3       = "s3"
	StorePebble   = "pebble"
)

// Config is the process configuration, read from the environment.
type Config struct {
	HTTPAddr          string
	OrderSearchURL    string
	ProductInfoURL    string
	ProductTimeout    time.Duration
	MaxInFlight       int
	UserStore         string
	UsersFile         string
	DatabaseURL       string
	MinioEndpoint     string
	MinioAccessKey    string
	MinioSecretKey    string
	MinioUseSSL       bool
	UsersBucket       string
	PebbleDir         string
	KafkaBroker       string
	KafkaRequestTopic string
	KafkaResultTopic  string
	KafkaGroupID      string
}

// Load reads Config from the environment, applying defaults. Only malformed
// numbers and durations fail here; see Validate for required settings.
func Load() (Config, error) {
	cfg := Config{
		HTTPAddr:          GetEnv("HTTP_ADDR", ":8080"),
		OrderSearchURL:    GetEnv("ORDER_SEARCH_SERVICE_BASE_URL", ""),
		ProductInfoURL:    GetEnv("PRODUCT_INFO_SERVICE_BASE_URL", ""),
		UserStore:         GetEnv("USER_STORE", StoreMemory),
		UsersFile:         GetEnv("USERS_FILE", ""),
		DatabaseURL:       GetEnv("DATABASE_URL", ""),
		MinioEndpoint:     GetEnv("MINIO_ENDPOINT", ""),
		MinioAccessKey:    GetEnv("MINIO_ACCESS_KEY", ""),
		MinioSecretKey:    GetEnv("MINIO_SECRET_KEY", ""),
		MinioUseSSL:       GetEnv("MINIO_USE_SSL", "false") == "true",
		UsersBucket:       GetEnv("USERS_BUCKET", "users"),
		PebbleDir:         GetEnv("PEBBLE_DIR", "./data/users"),
		KafkaBroker:       GetEnv("KAFKA_BROKER", ""),
		KafkaRequestTopic: GetEnv("KAFKA_REQUEST_TOPIC", "userorders.requests"),
		KafkaResultTopic:  GetEnv("KAFKA_RESULT_TOPIC", "userorders.results"),
		KafkaGroupID:      GetEnv("KAFKA_GROUP_ID", "userorders"),
	}

	var err error
	if cfg.ProductTimeout, err = GetDuration("PRODUCT_TIMEOUT", 5*time.Second); err != nil {
		return Config{}, err
	}
	if cfg.MaxInFlight, err = GetInt("MAX_IN_FLIGHT", 0); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the settings every aggregating process needs.
func (c Config) Validate() error {
	if c.OrderSearchURL == "" {
		return fmt.Errorf("ORDER_SEARCH_SERVICE_BASE_URL not set")
	}
	if c.ProductInfoURL == "" {
		return fmt.Errorf("PRODUCT_INFO_SERVICE_BASE_URL not set")
	}
	if c.ProductTimeout <= 0 {
		return fmt.Errorf("PRODUCT_TIMEOUT must be positive, got %s", c.ProductTimeout)
	}
	switch c.UserStore {
	case StoreMemory, StorePebble, StoreS3:
	case StorePostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL required for USER_STORE=postgres")
		}
	default:
		return fmt.Errorf("unknown USER_STORE %q", c.UserStore)
	}
	return nil
}
