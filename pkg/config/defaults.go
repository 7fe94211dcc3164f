package config

import "time"

const (
	DefaultMongoURI          = "mongodb://localhost:27017"
	DefaultMongoDatabaseName = "roomledger"
	DefaultMongoConnTimeout  = 10 * time.Second

	DefaultPort     = "8080"
	DefaultLogLevel = "info"

	DefaultStorageDriver = StorageMongo
	DefaultLockBackend   = LockMongo

	DefaultRedisAddr = "localhost:6379"
	DefaultRedisDB   = 0

	DefaultLockTTL          = 10 * time.Second
	DefaultLockRetries      = 5
	DefaultLockRetryBackoff = 50 * time.Millisecond

	DefaultBookingHoldTTL       = 15 * time.Minute
	DefaultExpirySweepInterval  = 1 * time.Minute
	DefaultConfidenceMinBooking = 20
	DefaultConfidenceWindow     = 30 * 24 * time.Hour
	DefaultSearchConcurrency    = 8

	DefaultRateLimitRequests = 60
	DefaultRateLimitWindow   = 1 * time.Minute

	DefaultRequestTimeout = 30 * time.Second
	DefaultIdempotencyTTL = 24 * time.Hour
	DefaultMaxRequestSize = 1 * 1024 * 1024 // 1MB

	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second

	DefaultBookingEventsTopic = "booking-events"
	DefaultStayCompletedTopic = "stay-completed"
	DefaultConsumerGroup      = "roomledger-bookings"
	DefaultDLQTopic           = "roomledger-dlq"
)
