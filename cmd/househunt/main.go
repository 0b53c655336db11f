package main

import (
	"context"
	bookingshandler "househunt/internal/bookings/handler"
	bookingsrepository "househunt/internal/bookings/repository"
	bookingsservice "househunt/internal/bookings/service"
	bookingsvalidator "househunt/internal/bookings/validator"
	"househunt/internal/health"
	houseshandler "househunt/internal/houses/handler"
	housesrepository "househunt/internal/houses/repository"
	housesservice "househunt/internal/houses/service"
	housesvalidator "househunt/internal/houses/validator"
	mongoMigration "househunt/internal/migrations/mongo"
	usershandler "househunt/internal/users/handler"
	usersrepository "househunt/internal/users/repository"
	usersservice "househunt/internal/users/service"
	usersvalidator "househunt/internal/users/validator"
	"househunt/pkg/app"
	"househunt/pkg/auth"
	"househunt/pkg/config"
	"househunt/pkg/kafka"
	kafka_middleware "househunt/pkg/kafka/middleware"

	"github.com/spf13/pflag"
)

const ServiceName = "househunt"

type bookingEvents interface {
	bookingsservice.EventPublisher
	Close() error
}

func main() {
	envFile := pflag.String("env-file", ".env", "path to a dotenv file loaded before reading the environment")
	migrate := pflag.Bool("migrate", false, "ensure collections, validators and indexes before serving")
	pflag.Parse()

	cfg := config.Load(ServiceName, *envFile)
	cfg.SetMongo()

	if *migrate {
		ctx, cancel := context.WithTimeout(context.Background(), cfg.MongoConnTimeout*6)
		err := mongoMigration.RunMigration(ctx, cfg.Database(), cfg.Log)
		cancel()
		if err != nil {
			cfg.Log.Fatal("Migration failed", "error", err)
		}
	}

	cfg.Log.Info("Starting HouseHunt service")
	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTTTL)
	events := initEvents(cfg)

	houseRepo := housesrepository.NewMongoHouseRepository(cfg)

	userService := usersservice.NewUserService(
		usersrepository.NewMongoUserRepository(cfg),
		usersvalidator.NewUserValidator(),
		tokens,
		cfg,
	)
	houseService := housesservice.NewHouseService(
		houseRepo,
		housesvalidator.NewHouseValidator(),
		cfg,
	)
	bookingService := bookingsservice.NewBookingService(
		bookingsrepository.NewMongoBookingRepository(cfg),
		houseRepo,
		bookingsvalidator.NewBookingValidator(),
		events,
		cfg,
	)
	cfg.Log.Info("Services initialized", "database", cfg.MongoDatabaseName)

	serverApp := app.NewApplication(cfg)
	serverApp.OnShutdown("booking-events", events.Close)
	serverApp.SetApp(
		health.NewStatusHandler(cfg.Log),
		usershandler.NewUserHandler(userService, cfg.Log),
		houseshandler.NewHouseHandler(houseService, tokens, cfg),
		bookingshandler.NewBookingHandler(bookingService, tokens, cfg.Log),
	)
	serverApp.Run()
}

func initEvents(cfg *config.Config) bookingEvents {
	if !cfg.KafkaEnabled() {
		cfg.Log.Info("Kafka brokers not configured, booking events disabled")
		return kafka.NoopPublisher{}
	}

	producer, err := kafka.NewProducer(kafka.ProducerConfig{
		Brokers:     cfg.KafkaBrokers,
		Topic:       cfg.KafkaBookingTopic,
		Compression: kafka.DefaultCompression,
		RequireAcks: -1,
	}, cfg.Log)
	if err != nil {
		cfg.Log.Fatal("Failed to create Kafka producer", "error", err)
	}
	producer.Use(kafka_middleware.LoggingProducerMiddleware(cfg.Log))

	cfg.Log.Info("Booking events enabled", "brokers", cfg.KafkaBrokers, "topic", cfg.KafkaBookingTopic)
	return kafka.NewBookingPublisher(producer, cfg.Log)
}
