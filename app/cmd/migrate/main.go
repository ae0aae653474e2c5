package main

import (
	"database/sql"
	"flag"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"account-service/app/config"
	"account-service/app/migrations"
	"account-service/app/utils/logger"
	"account-service/app/utils/migration"
)

func main() {
	direction := flag.String("direction", "up", "migration direction: up or down")
	flag.Parse()

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		slog.Warn("Could not load .env file", "error", err)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	appLogger, err := logger.New(cfg.LogLevel)
	if err != nil {
		slog.Error("Failed to initialize logger", "error", err)
		os.Exit(1)
	}

	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		appLogger.Error("Failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		appLogger.Error("Failed to ping database", "error", err)
		os.Exit(1)
	}

	migrator := migration.NewMigrator(db, appLogger, migrations.FS)

	switch *direction {
	case "up":
		err = migrator.Up()
	case "down":
		err = migrator.Down()
	default:
		appLogger.Error("Unknown migration direction", "direction", *direction)
		os.Exit(1)
	}

	if err != nil {
		appLogger.Error("Migration failed", "direction", *direction, "error", err)
		os.Exit(1)
	}

	appLogger.Info("Migration completed", "direction", *direction)
}
