package config

const (
	EnvMongoURI          = "MONGO_URI"
	EnvMongoDatabaseName = "MONGO_DATABASE_NAME"
	EnvMongoConnTimeout  = "MONGO_CONN_TIMEOUT"

	EnvPort     = "PORT"
	EnvLogLevel = "LOG_LEVEL"

	EnvStorageDriver = "STORAGE_DRIVER"
	EnvLockBackend   = "LOCK_BACKEND"

	EnvRedisAddr     = "REDIS_ADDR"
	EnvRedisPassword = "REDIS_PASSWORD"
	EnvRedisDB       = "REDIS_DB"

	EnvLockTTL          = "LOCK_TTL"
	EnvLockRetries      = "LOCK_RETRIES"
	EnvLockRetryBackoff = "LOCK_RETRY_BACKOFF"

	EnvBookingHoldTTL         = "BOOKING_HOLD_TTL"
	EnvExpirySweepInterval    = "EXPIRY_SWEEP_INTERVAL"
	EnvConfidenceMinBookings  = "CONFIDENCE_MIN_BOOKINGS"
	EnvConfidenceRecentWindow = "CONFIDENCE_RECENT_WINDOW"
	EnvSearchConcurrency      = "SEARCH_CONCURRENCY"

	EnvRateLimitRequests = "RATE_LIMIT_REQUESTS"
	EnvRateLimitWindow   = "RATE_LIMIT_WINDOW"

	EnvRequestTimeout = "REQUEST_TIMEOUT"
	EnvIdempotencyTTL = "IDEMPOTENCY_TTL"
	EnvMaxRequestSize = "MAX_REQUEST_SIZE"

	EnvReadTimeout     = "READ_TIMEOUT"
	EnvWriteTimeout    = "WRITE_TIMEOUT"
	EnvIdleTimeout     = "IDLE_TIMEOUT"
	EnvShutdownTimeout = "SHUTDOWN_TIMEOUT"

	EnvKafkaEnabled       = "KAFKA_ENABLED"
	EnvBookingEventsTopic = "BOOKING_EVENTS_TOPIC"
	EnvStayCompletedTopic = "STAY_COMPLETED_TOPIC"
	EnvKafkaConsumerGroup = "KAFKA_CONSUMER_GROUP"
	EnvKafkaDLQTopic      = "KAFKA_DLQ_TOPIC"
)
