package main

import (
	"strconv"

	"github.com/joho/godotenv"
	gormlogger "gorm.io/gorm/logger"

	"github.com/taskflow-dev/taskflow/config"
	"github.com/taskflow-dev/taskflow/internal/app"
	"github.com/taskflow-dev/taskflow/internal/db"
	"github.com/taskflow-dev/taskflow/internal/logger"
)

func main() {
	// .env is optional; environment variables win either way
	_ = godotenv.Load()

	logger.Initialize()

	port, err := strconv.Atoi(config.GetEnv("DB_PORT", "5432"))
	if err != nil {
		logger.Fatalf("Invalid DB_PORT: %v", err)
	}

	database, err := db.New(db.Options{
		Host:     config.GetEnv("DB_HOST", db.DefaultHost),
		User:     config.GetEnv("DB_USER", db.DefaultUser),
		Password: config.GetEnv("DB_PASSWORD", db.DefaultPassword),
		DBName:   config.GetEnv("DB_NAME", db.DefaultDBName),
		Port:     port,
		LogLevel: gormlogger.Warn,
	})
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}

	application := app.New(database, app.Options{
		StorageDir: config.GetEnv("STORAGE_DIR", "data"),
	})

	listenAddr := ":" + config.GetEnv("PORT", "8080")
	logger.Infof("Starting TaskFlow API on %s", listenAddr)
	if err := application.Listen(listenAddr); err != nil {
		logger.Fatalf("Server stopped: %v", err)
	}
}
