package config

const (
	EnvMongoURI          = "MONGO_URI"
	EnvMongoDatabaseName = "MONGO_DATABASE_NAME"
	EnvMongoConnTimeout  = "MONGO_CONN_TIMEOUT"

	EnvPort     = "PORT"
	EnvLogLevel = "LOG_LEVEL"

	EnvRateLimitRequests = "RATE_LIMIT_REQUESTS"
	EnvRateLimitWindow   = "RATE_LIMIT_WINDOW"

	EnvRequestTimeout = "REQUEST_TIMEOUT"
	EnvIdempotencyTTL = "IDEMPOTENCY_TTL"
	EnvMaxRequestSize = "MAX_REQUEST_SIZE"

	EnvReadTimeout     = "READ_TIMEOUT"
	EnvWriteTimeout    = "WRITE_TIMEOUT"
	EnvIdleTimeout     = "IDLE_TIMEOUT"
	EnvShutdownTimeout = "SHUTDOWN_TIMEOUT"

	EnvDefaultBookingDuration = "DEFAULT_BOOKING_DURATION"
	EnvBookingLockTTL         = "BOOKING_LOCK_TTL"

	EnvKafkaBrokers             = "KAFKA_BROKERS"
	EnvBookingEventsTopic       = "BOOKING_EVENTS_TOPIC"
	EnvKafkaEnabled             = "KAFKA_ENABLED"
	EnvKafkaProducerMaxAttempts = "KAFKA_PRODUCER_MAX_ATTEMPTS"
	EnvKafkaProducerBatchWait   = "KAFKA_PRODUCER_BATCH_WAIT"
)
