package config

import (
	"fmt"
	"os"
	"regexp"
	"roomledger/pkg/client"
	"roomledger/pkg/logger"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	StorageMongo  = "mongo"
	StorageMemory = "memory"

	LockMongo  = "mongo"
	LockRedis  = "redis"
	LockMemory = "memory"
)

type Config struct {
	MongoURI          string
	MongoDatabaseName string
	MongoConnTimeout  time.Duration

	Port string

	StorageDriver string
	LockBackend   string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	LockTTL          time.Duration
	LockRetries      int
	LockRetryBackoff time.Duration

	BookingHoldTTL         time.Duration
	ExpirySweepInterval    time.Duration
	ConfidenceMinBookings  int
	ConfidenceRecentWindow time.Duration
	SearchConcurrency      int

	RateLimitRequests int
	RateLimitWindow   time.Duration

	RequestTimeout time.Duration
	IdempotencyTTL time.Duration
	MaxRequestSize int

	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration

	KafkaEnabled       bool
	BookingEventsTopic string
	StayCompletedTopic string
	KafkaConsumerGroup string
	KafkaDLQTopic      string

	Log    *logger.Logger
	Client *client.Client
}

// Load reads the configuration from the environment. A .env file in the
// working directory is applied first; variables already set take precedence.
func Load(serviceName string) *Config {
	_ = godotenv.Load()

	cfg := &Config{
		MongoURI:          getEnvStr(EnvMongoURI, DefaultMongoURI),
		MongoDatabaseName: getEnvStr(EnvMongoDatabaseName, DefaultMongoDatabaseName),
		MongoConnTimeout:  getEnvDuration(EnvMongoConnTimeout, DefaultMongoConnTimeout),

		Port: getEnvStr(EnvPort, DefaultPort),

		StorageDriver: getEnvStr(EnvStorageDriver, DefaultStorageDriver),
		LockBackend:   getEnvStr(EnvLockBackend, DefaultLockBackend),

		RedisAddr:     getEnvStr(EnvRedisAddr, DefaultRedisAddr),
		RedisPassword: getEnvStr(EnvRedisPassword, ""),
		RedisDB:       getEnvNum(EnvRedisDB, DefaultRedisDB),

		LockTTL:          getEnvDuration(EnvLockTTL, DefaultLockTTL),
		LockRetries:      getEnvNum(EnvLockRetries, DefaultLockRetries),
		LockRetryBackoff: getEnvDuration(EnvLockRetryBackoff, DefaultLockRetryBackoff),

		BookingHoldTTL:         getEnvDuration(EnvBookingHoldTTL, DefaultBookingHoldTTL),
		ExpirySweepInterval:    getEnvDuration(EnvExpirySweepInterval, DefaultExpirySweepInterval),
		ConfidenceMinBookings:  getEnvNum(EnvConfidenceMinBookings, DefaultConfidenceMinBooking),
		ConfidenceRecentWindow: getEnvDuration(EnvConfidenceRecentWindow, DefaultConfidenceWindow),
		SearchConcurrency:      getEnvNum(EnvSearchConcurrency, DefaultSearchConcurrency),

		RateLimitRequests: getEnvNum(EnvRateLimitRequests, DefaultRateLimitRequests),
		RateLimitWindow:   getEnvDuration(EnvRateLimitWindow, DefaultRateLimitWindow),

		RequestTimeout: getEnvDuration(EnvRequestTimeout, DefaultRequestTimeout),
		IdempotencyTTL: getEnvDuration(EnvIdempotencyTTL, DefaultIdempotencyTTL),
		MaxRequestSize: getEnvNum(EnvMaxRequestSize, DefaultMaxRequestSize),

		ReadTimeout:     getEnvDuration(EnvReadTimeout, DefaultReadTimeout),
		WriteTimeout:    getEnvDuration(EnvWriteTimeout, DefaultWriteTimeout),
		IdleTimeout:     getEnvDuration(EnvIdleTimeout, DefaultIdleTimeout),
		ShutdownTimeout: getEnvDuration(EnvShutdownTimeout, DefaultShutdownTimeout),

		KafkaEnabled:       getEnvBool(EnvKafkaEnabled, false),
		BookingEventsTopic: getEnvStr(EnvBookingEventsTopic, DefaultBookingEventsTopic),
		StayCompletedTopic: getEnvStr(EnvStayCompletedTopic, DefaultStayCompletedTopic),
		KafkaConsumerGroup: getEnvStr(EnvKafkaConsumerGroup, DefaultConsumerGroup),
		KafkaDLQTopic:      getEnvStr(EnvKafkaDLQTopic, DefaultDLQTopic),

		Log: logger.New(logger.Config{
			Level:     getEnvStr(EnvLogLevel, DefaultLogLevel),
			Format:    logger.JSON,
			AddSource: true,
			Service:   serviceName,
		}),
		Client: client.NewClient(),
	}

	err := cfg.Validate()
	if err != nil {
		cfg.Log.Fatal(err.Error())
	}
	cfg.LogConfiguration()
	return cfg
}

// Default returns a configuration built from defaults only, for tests and tools.
func Default(log *logger.Logger) *Config {
	return &Config{
		MongoURI:               DefaultMongoURI,
		MongoDatabaseName:      DefaultMongoDatabaseName,
		MongoConnTimeout:       DefaultMongoConnTimeout,
		Port:                   DefaultPort,
		StorageDriver:          StorageMemory,
		LockBackend:            LockMemory,
		LockTTL:                DefaultLockTTL,
		LockRetries:            DefaultLockRetries,
		LockRetryBackoff:       DefaultLockRetryBackoff,
		BookingHoldTTL:         DefaultBookingHoldTTL,
		ExpirySweepInterval:    DefaultExpirySweepInterval,
		ConfidenceMinBookings:  DefaultConfidenceMinBooking,
		ConfidenceRecentWindow: DefaultConfidenceWindow,
		SearchConcurrency:      DefaultSearchConcurrency,
		RateLimitRequests:      DefaultRateLimitRequests,
		RateLimitWindow:        DefaultRateLimitWindow,
		RequestTimeout:         DefaultRequestTimeout,
		IdempotencyTTL:         DefaultIdempotencyTTL,
		MaxRequestSize:         DefaultMaxRequestSize,
		ReadTimeout:            DefaultReadTimeout,
		WriteTimeout:           DefaultWriteTimeout,
		IdleTimeout:            DefaultIdleTimeout,
		ShutdownTimeout:        DefaultShutdownTimeout,
		BookingEventsTopic:     DefaultBookingEventsTopic,
		StayCompletedTopic:     DefaultStayCompletedTopic,
		KafkaConsumerGroup:     DefaultConsumerGroup,
		KafkaDLQTopic:          DefaultDLQTopic,
		Log:                    log,
		Client:                 client.NewClient(),
	}
}

func (cfg *Config) SetMongo() {
	cfg.Client.SetMongo(cfg.Log, cfg.MongoURI, cfg.MongoConnTimeout)
}

func (cfg *Config) SetRedis() {
	cfg.Client.SetRedis(cfg.Log, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, cfg.MongoConnTimeout)
}

func (cfg *Config) Validate() error {
	var errors []string

	if port, err := strconv.Atoi(cfg.Port); err != nil || port < 1 || port > 65535 {
		errors = append(errors, fmt.Sprintf("Port must be between 1 and 65535, got: %s", cfg.Port))
	}

	switch cfg.StorageDriver {
	case StorageMongo, StorageMemory:
	default:
		errors = append(errors, fmt.Sprintf("StorageDriver must be one of [%s, %s], got: %s", StorageMongo, StorageMemory, cfg.StorageDriver))
	}

	switch cfg.LockBackend {
	case LockMongo, LockRedis, LockMemory:
	default:
		errors = append(errors, fmt.Sprintf("LockBackend must be one of [%s, %s, %s], got: %s", LockMongo, LockRedis, LockMemory, cfg.LockBackend))
	}
	if cfg.LockBackend == LockMongo && cfg.StorageDriver != StorageMongo {
		errors = append(errors, "LockBackend mongo requires StorageDriver mongo")
	}
	if cfg.LockBackend == LockRedis && cfg.RedisAddr == "" {
		errors = append(errors, "RedisAddr cannot be empty when LockBackend is redis")
	}

	if cfg.StorageDriver == StorageMongo {
		if cfg.MongoURI == "" {
			errors = append(errors, "MongoURI cannot be empty")
		} else if len(cfg.MongoURI) < 10 || !regexp.MustCompile(`^mongodb(\+srv)?://`).MatchString(cfg.MongoURI) {
			errors = append(errors, fmt.Sprintf("MongoURI must start with 'mongodb://' or 'mongodb+srv://', got: %s", redactMongoURI(cfg.MongoURI)))
		}
		if cfg.MongoDatabaseName == "" {
			errors = append(errors, "MongoDatabaseName cannot be empty")
		}
	}

	if cfg.MongoConnTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("MongoConnTimeout must be positive, got: %s", cfg.MongoConnTimeout))
	}
	if cfg.LockTTL <= 0 {
		errors = append(errors, fmt.Sprintf("LockTTL must be positive, got: %s", cfg.LockTTL))
	}
	if cfg.LockRetries < 0 {
		errors = append(errors, fmt.Sprintf("LockRetries cannot be negative, got: %d", cfg.LockRetries))
	}
	if cfg.LockRetryBackoff < 0 {
		errors = append(errors, fmt.Sprintf("LockRetryBackoff cannot be negative, got: %s", cfg.LockRetryBackoff))
	}
	if cfg.BookingHoldTTL <= 0 {
		errors = append(errors, fmt.Sprintf("BookingHoldTTL must be positive, got: %s", cfg.BookingHoldTTL))
	}
	if cfg.ExpirySweepInterval < 0 {
		errors = append(errors, fmt.Sprintf("ExpirySweepInterval cannot be negative, got: %s", cfg.ExpirySweepInterval))
	}
	if cfg.ConfidenceMinBookings <= 0 {
		errors = append(errors, fmt.Sprintf("ConfidenceMinBookings must be positive, got: %d", cfg.ConfidenceMinBookings))
	}
	if cfg.ConfidenceRecentWindow <= 0 {
		errors = append(errors, fmt.Sprintf("ConfidenceRecentWindow must be positive, got: %s", cfg.ConfidenceRecentWindow))
	}
	if cfg.SearchConcurrency <= 0 {
		errors = append(errors, fmt.Sprintf("SearchConcurrency must be positive, got: %d", cfg.SearchConcurrency))
	}
	if cfg.RateLimitWindow <= 0 {
		errors = append(errors, fmt.Sprintf("RateLimitWindow must be positive, got: %s", cfg.RateLimitWindow))
	}
	if cfg.RequestTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("RequestTimeout must be positive, got: %s", cfg.RequestTimeout))
	}
	if cfg.IdempotencyTTL <= 0 {
		errors = append(errors, fmt.Sprintf("IdempotencyTTL must be positive, got: %s", cfg.IdempotencyTTL))
	}
	if cfg.ReadTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("ReadTimeout must be positive, got: %s", cfg.ReadTimeout))
	}
	if cfg.WriteTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("WriteTimeout must be positive, got: %s", cfg.WriteTimeout))
	}
	if cfg.IdleTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("IdleTimeout must be positive, got: %s", cfg.IdleTimeout))
	}
	if cfg.ShutdownTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("ShutdownTimeout must be positive, got: %s", cfg.ShutdownTimeout))
	}

	if cfg.RateLimitRequests <= 0 {
		errors = append(errors, fmt.Sprintf("RateLimitRequests must be positive, got: %d", cfg.RateLimitRequests))
	}
	if cfg.MaxRequestSize <= 0 {
		errors = append(errors, fmt.Sprintf("MaxRequestSize must be positive, got: %d", cfg.MaxRequestSize))
	}

	if cfg.KafkaEnabled {
		if cfg.BookingEventsTopic == "" {
			errors = append(errors, "BookingEventsTopic cannot be empty when Kafka is enabled")
		}
		if cfg.StayCompletedTopic == "" {
			errors = append(errors, "StayCompletedTopic cannot be empty when Kafka is enabled")
		}
		if cfg.KafkaConsumerGroup == "" {
			errors = append(errors, "KafkaConsumerGroup cannot be empty when Kafka is enabled")
		}
	}

	if len(errors) > 0 {
		errMsg := "Configuration validation failed:\n"
		for i, err := range errors {
			errMsg += fmt.Sprintf("  %d. %s\n", i+1, err)
		}
		return fmt.Errorf("%s", errMsg)
	}

	return nil
}

func (cfg *Config) LogConfiguration() {
	cfg.Log.Info("Configuration loaded successfully",
		"mongo_uri", redactMongoURI(cfg.MongoURI),
		"mongo_database", cfg.MongoDatabaseName,
		"mongo_conn_timeout", cfg.MongoConnTimeout,
		"port", cfg.Port,
		"storage_driver", cfg.StorageDriver,
		"lock_backend", cfg.LockBackend,
		"redis_addr", cfg.RedisAddr,
		"redis_password_set", cfg.RedisPassword != "",
		"lock_ttl", cfg.LockTTL,
		"lock_retries", cfg.LockRetries,
		"lock_retry_backoff", cfg.LockRetryBackoff,
		"booking_hold_ttl", cfg.BookingHoldTTL,
		"expiry_sweep_interval", cfg.ExpirySweepInterval,
		"confidence_min_bookings", cfg.ConfidenceMinBookings,
		"confidence_recent_window", cfg.ConfidenceRecentWindow,
		"search_concurrency", cfg.SearchConcurrency,
		"rate_limit_requests", cfg.RateLimitRequests,
		"rate_limit_window", cfg.RateLimitWindow,
		"request_timeout", cfg.RequestTimeout,
		"idempotency_ttl", cfg.IdempotencyTTL,
		"max_request_size", cfg.MaxRequestSize,
		"read_timeout", cfg.ReadTimeout,
		"write_timeout", cfg.WriteTimeout,
		"idle_timeout", cfg.IdleTimeout,
		"shutdown_timeout", cfg.ShutdownTimeout,
		"kafka_enabled", cfg.KafkaEnabled,
		"booking_events_topic", cfg.BookingEventsTopic,
		"stay_completed_topic", cfg.StayCompletedTopic,
	)
}

func redactMongoURI(uri string) string {
	credentialRegex := regexp.MustCompile(`(mongodb(\+srv)?://)[^:]+:[^@]+@`)
	return credentialRegex.ReplaceAllString(uri, "${1}***:***@")
}

func getEnvStr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvNum(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}

func (cfg *Config) GracefulShutdown() {
	cfg.Client.GracefulShutdown(cfg.Log)
}
