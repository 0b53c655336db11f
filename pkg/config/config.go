package config

import (
	"context"
	"errors"
	"fmt"
	mongodb "househunt/pkg/db/mongo"
	"househunt/pkg/logger"
	"househunt/pkg/sanitizer"
	"io/fs"
	"net/url"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/mongo"
)

var (
	mongoURIRegex      = regexp.MustCompile(`^mongodb(\+srv)?://`)
	mongoCredentialsRe = regexp.MustCompile(`(mongodb(\+srv)?://)[^:]+:[^@]+@`)
)

type Config struct {
	MongoURI          string
	MongoDatabaseName string
	MongoConnTimeout  time.Duration

	Port string

	JWTSecret string
	JWTTTL    time.Duration

	CORSAllowedOrigins []string

	RateLimitRequests int
	RateLimitWindow   time.Duration

	RequestTimeout time.Duration
	IdempotencyTTL time.Duration
	MaxRequestSize int

	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration

	DefaultPageSize int
	MaxPageSize     int

	KafkaBrokers      []string
	KafkaBookingTopic string

	// PhoneRegions are tried in order when a phone number has no +country prefix.
	PhoneRegions []string

	Log   *logger.Logger
	Mongo *mongo.Client
}

// Load reads envFile (when it exists) into the process environment, builds the
// configuration from the environment and exits on invalid values.
func Load(serviceName, envFile string) *Config {
	return load(serviceName, envFile, (*Config).Validate)
}

// LoadStorage is Load for jobs that only talk to MongoDB. HTTP and auth
// settings are not validated.
func LoadStorage(serviceName, envFile string) *Config {
	return load(serviceName, envFile, (*Config).ValidateStorage)
}

func load(serviceName, envFile string, validate func(*Config) error) *Config {
	envErr := loadEnvFile(envFile)

	cfg := FromEnv(serviceName)
	if envErr != nil {
		cfg.Log.Warn("Failed to load env file", "path", envFile, "error", envErr)
	}

	if err := validate(cfg); err != nil {
		cfg.Log.Fatal(err.Error())
	}
	cfg.LogConfiguration()
	return cfg
}

// FromEnv builds a Config from environment variables without validating it.
func FromEnv(serviceName string) *Config {
	return &Config{
		MongoURI:          resolveMongoURI(),
		MongoDatabaseName: getEnvStr(EnvMongoDatabaseName, DefaultMongoDatabaseName),
		MongoConnTimeout:  getEnvDuration(EnvMongoConnTimeout, DefaultMongoConnTimeout),

		Port: getEnvStr(EnvPort, DefaultPort),

		JWTSecret: getEnvStr(EnvJWTSecret, ""),
		JWTTTL:    getEnvDuration(EnvJWTTTL, DefaultJWTTTL),

		CORSAllowedOrigins: getEnvList(EnvCORSAllowedOrigins, DefaultCORSAllowedOrigins),

		RateLimitRequests: getEnvNum(EnvRateLimitRequests, DefaultRateLimitRequests),
		RateLimitWindow:   getEnvDuration(EnvRateLimitWindow, DefaultRateLimitWindow),

		RequestTimeout: getEnvDuration(EnvRequestTimeout, DefaultRequestTimeout),
		IdempotencyTTL: getEnvDuration(EnvIdempotencyTTL, DefaultIdempotencyTTL),
		MaxRequestSize: getEnvNum(EnvMaxRequestSize, DefaultMaxRequestSize),

		ReadTimeout:     getEnvDuration(EnvReadTimeout, DefaultReadTimeout),
		WriteTimeout:    getEnvDuration(EnvWriteTimeout, DefaultWriteTimeout),
		IdleTimeout:     getEnvDuration(EnvIdleTimeout, DefaultIdleTimeout),
		ShutdownTimeout: getEnvDuration(EnvShutdownTimeout, DefaultShutdownTimeout),

		DefaultPageSize: getEnvNum(EnvDefaultPageSize, DefaultPageSize),
		MaxPageSize:     getEnvNum(EnvMaxPageSize, DefaultMaxPageSize),

		KafkaBrokers:      getEnvList(EnvKafkaBrokers, ""),
		KafkaBookingTopic: getEnvStr(EnvKafkaBookingTopic, DefaultKafkaBookingTopic),

		PhoneRegions: getEnvList(EnvPhoneRegions, DefaultPhoneRegions),

		Log: logger.New(logger.Config{
			Level:     getEnvStr(EnvLogLevel, DefaultLogLevel),
			Format:    getEnvStr(EnvLogFormat, DefaultLogFormat),
			AddSource: true,
			Service:   serviceName,
		}),
	}
}

// SetMongo connects the process-wide Mongo client. It exits on failure.
func (cfg *Config) SetMongo() {
	client, err := mongodb.Connect(context.Background(), cfg.MongoURI, cfg.MongoConnTimeout)
	if err != nil {
		cfg.Log.Fatal("Failed to connect to MongoDB",
			"error", err,
			"uri", redactMongoURI(cfg.MongoURI),
		)
	}
	cfg.Log.Info("Successfully connected to MongoDB", "database", cfg.MongoDatabaseName)
	cfg.Mongo = client
}

func (cfg *Config) Database() *mongo.Database {
	return cfg.Mongo.Database(cfg.MongoDatabaseName)
}

func (cfg *Config) KafkaEnabled() bool {
	return len(cfg.KafkaBrokers) > 0
}

// ValidateStorage checks only the MongoDB settings.
func (cfg *Config) ValidateStorage() error {
	errors := cfg.storageErrors()
	if cfg.MongoConnTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("MongoConnTimeout must be positive, got: %s", cfg.MongoConnTimeout))
	}
	return joinValidationErrors(errors)
}

func (cfg *Config) storageErrors() []string {
	var errors []string
	if cfg.MongoURI == "" {
		errors = append(errors, "MongoURI cannot be empty")
	} else if len(cfg.MongoURI) < 10 || !mongoURIRegex.MatchString(cfg.MongoURI) {
		errors = append(errors, fmt.Sprintf("MongoURI must start with 'mongodb://' or 'mongodb+srv://', got: %s", redactMongoURI(cfg.MongoURI)))
	}
	if cfg.MongoDatabaseName == "" {
		errors = append(errors, "MongoDatabaseName cannot be empty")
	}
	return errors
}

func (cfg *Config) Validate() error {
	var errors []string

	if port, err := strconv.Atoi(cfg.Port); err != nil || port < 1 || port > 65535 {
		errors = append(errors, fmt.Sprintf("Port must be between 1 and 65535, got: %s", cfg.Port))
	}

	errors = append(errors, cfg.storageErrors()...)

	if len(cfg.JWTSecret) < MinJWTSecretLength {
		errors = append(errors, fmt.Sprintf("JWTSecret must be at least %d characters long", MinJWTSecretLength))
	}
	if cfg.JWTTTL <= 0 {
		errors = append(errors, fmt.Sprintf("JWTTTL must be positive, got: %s", cfg.JWTTTL))
	}

	durations := []struct {
		name  string
		value time.Duration
	}{
		{"MongoConnTimeout", cfg.MongoConnTimeout},
		{"RateLimitWindow", cfg.RateLimitWindow},
		{"RequestTimeout", cfg.RequestTimeout},
		{"IdempotencyTTL", cfg.IdempotencyTTL},
		{"ReadTimeout", cfg.ReadTimeout},
		{"WriteTimeout", cfg.WriteTimeout},
		{"IdleTimeout", cfg.IdleTimeout},
		{"ShutdownTimeout", cfg.ShutdownTimeout},
	}
	for _, d := range durations {
		if d.value <= 0 {
			errors = append(errors, fmt.Sprintf("%s must be positive, got: %s", d.name, d.value))
		}
	}

	if cfg.RateLimitRequests <= 0 {
		errors = append(errors, fmt.Sprintf("RateLimitRequests must be positive, got: %d", cfg.RateLimitRequests))
	}
	if cfg.MaxRequestSize <= 0 {
		errors = append(errors, fmt.Sprintf("MaxRequestSize must be positive, got: %d", cfg.MaxRequestSize))
	}
	if cfg.DefaultPageSize <= 0 {
		errors = append(errors, fmt.Sprintf("DefaultPageSize must be positive, got: %d", cfg.DefaultPageSize))
	}
	if cfg.MaxPageSize < cfg.DefaultPageSize {
		errors = append(errors, fmt.Sprintf("MaxPageSize (%d) must be >= DefaultPageSize (%d)", cfg.MaxPageSize, cfg.DefaultPageSize))
	}

	if cfg.KafkaEnabled() && cfg.KafkaBookingTopic == "" {
		errors = append(errors, "KafkaBookingTopic cannot be empty when KafkaBrokers is set")
	}

	if len(cfg.PhoneRegions) == 0 {
		errors = append(errors, "PhoneRegions cannot be empty")
	}
	for _, region := range cfg.PhoneRegions {
		if !sanitizer.SupportedRegion(region) {
			errors = append(errors, fmt.Sprintf("PhoneRegions contains unsupported region: %s", region))
		}
	}

	return joinValidationErrors(errors)
}

func joinValidationErrors(errors []string) error {
	if len(errors) == 0 {
		return nil
	}
	errMsg := "Configuration validation failed:\n"
	for i, err := range errors {
		errMsg += fmt.Sprintf("  %d. %s\n", i+1, err)
	}
	return fmt.Errorf("%s", errMsg)
}

func (cfg *Config) LogConfiguration() {
	cfg.Log.Info("Configuration loaded successfully",
		"mongo_uri", redactMongoURI(cfg.MongoURI),
		"mongo_database", cfg.MongoDatabaseName,
		"mongo_conn_timeout", cfg.MongoConnTimeout,
		"port", cfg.Port,
		"jwt_secret_set", cfg.JWTSecret != "",
		"jwt_ttl", cfg.JWTTTL,
		"cors_allowed_origins", cfg.CORSAllowedOrigins,
		"rate_limit_requests", cfg.RateLimitRequests,
		"rate_limit_window", cfg.RateLimitWindow,
		"request_timeout", cfg.RequestTimeout,
		"idempotency_ttl", cfg.IdempotencyTTL,
		"max_request_size", cfg.MaxRequestSize,
		"read_timeout", cfg.ReadTimeout,
		"write_timeout", cfg.WriteTimeout,
		"idle_timeout", cfg.IdleTimeout,
		"shutdown_timeout", cfg.ShutdownTimeout,
		"default_page_size", cfg.DefaultPageSize,
		"max_page_size", cfg.MaxPageSize,
		"kafka_enabled", cfg.KafkaEnabled(),
		"kafka_booking_topic", cfg.KafkaBookingTopic,
		"phone_regions", cfg.PhoneRegions,
	)
}

// GracefulShutdown disconnects the Mongo client if one was opened.
func (cfg *Config) GracefulShutdown() {
	if cfg.Mongo == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := cfg.Mongo.Disconnect(ctx); err != nil {
		cfg.Log.Error("Failed to disconnect from MongoDB", "error", err)
		return
	}
	cfg.Log.Info("Disconnected from MongoDB")
}

// NormalizePageSize clamps a requested page size into [1, MaxPageSize],
// substituting DefaultPageSize for non-positive values.
func (cfg *Config) NormalizePageSize(limit int) int {
	if limit <= 0 {
		return cfg.DefaultPageSize
	}
	return min(limit, cfg.MaxPageSize)
}

func NormalizeOffset(offset int64) int64 {
	return max(0, offset)
}

func loadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return err
	}
	return nil
}

// resolveMongoURI prefers MONGO_URI and otherwise assembles an Atlas SRV URI
// from DB_USER, DB_USER_PASSWORD and DB_HOST.
func resolveMongoURI() string {
	if uri := os.Getenv(EnvMongoURI); uri != "" {
		return uri
	}
	user, password, host := os.Getenv(EnvDBUser), os.Getenv(EnvDBUserPassword), os.Getenv(EnvDBHost)
	if user == "" || password == "" || host == "" {
		return DefaultMongoURI
	}
	u := url.URL{
		Scheme:   "mongodb+srv",
		User:     url.UserPassword(user, password),
		Host:     host,
		Path:     "/",
		RawQuery: "retryWrites=true&w=majority",
	}
	return u.String()
}

func redactMongoURI(uri string) string {
	return mongoCredentialsRe.ReplaceAllString(uri, "${1}***:***@")
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

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}

func getEnvList(key, fallback string) []string {
	raw := getEnvStr(key, fallback)
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
