package config

import "time"

const (
	DefaultMongoURI          = "mongodb://localhost:27017"
	DefaultMongoDatabaseName = "houseHuntingDB"
	DefaultMongoConnTimeout  = 10 * time.Second

	DefaultPort = "4000"

	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"

	DefaultJWTTTL = 1 * time.Hour

	DefaultCORSAllowedOrigins = "*"

	DefaultRateLimitRequests = 10
	DefaultRateLimitWindow   = 1 * time.Minute

	DefaultRequestTimeout = 30 * time.Second
	DefaultIdempotencyTTL = 24 * time.Hour
	DefaultMaxRequestSize = 1 * 1024 * 1024 // 1MB

	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second

	DefaultPageSize    = 10
	DefaultMaxPageSize = 100

	DefaultKafkaBookingTopic = "househunt.bookings"

	DefaultPhoneRegions = "US,IL"

	MinJWTSecretLength = 16
)
