package main

import (
	"context"
	mongoMigration "househunt/internal/migrations/mongo"
	"househunt/pkg/config"
	"time"

	"github.com/spf13/pflag"
)

const JobName = "mongo-migration"

func main() {
	envFile := pflag.String("env-file", ".env", "path to a dotenv file loaded before reading the environment")
	timeout := pflag.Duration("timeout", 120*time.Second, "overall migration deadline")
	pflag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	cfg := config.LoadStorage(JobName, *envFile)
	cfg.SetMongo()

	cfg.Log.Info("Starting Mongo migration job")
	err := mongoMigration.RunMigration(ctx, cfg.Database(), cfg.Log)
	cfg.GracefulShutdown()
	if err != nil {
		cfg.Log.Fatal("Migration failed", "error", err)
	}
	cfg.Log.Info("Migration completed successfully")
}
