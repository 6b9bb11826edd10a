package config

import "time"

const (
	DefaultMongoURI          = "mongodb://localhost:27017"
	DefaultMongoDatabaseName = "campusbook"
	DefaultMongoConnTimeout  = 10 * time.Second

	DefaultPort = "8080"

	DefaultRateLimitRequests = 30
	DefaultRateLimitWindow   = 1 * time.Minute

	DefaultRequestTimeout = 30 * time.Second
	DefaultIdempotencyTTL = 24 * time.Hour
	DefaultMaxRequestSize = 1 * 1024 * 1024 // 1MB

	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second

	DefaultPaginationLimit = 100

	// Slot end defaults to start + this duration when the request omits it,
	// matching the hourly slots of the original campus system.
	DefaultDefaultBookingDuration = 1 * time.Hour

	// Advisory locks expire on their own so a crashed holder cannot wedge
	// a room.
	DefaultBookingLockTTL = 10 * time.Second

	DefaultKafkaBrokers        = "localhost:9092"
	DefaultBookingEventsTopic  = "booking-events"
	DefaultKafkaEnabled        = false
	DefaultProducerMaxAttempts = 3
	DefaultProducerBatchWait   = 10 * time.Millisecond
)
