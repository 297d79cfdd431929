package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"datalens/adapters/loader"
	"datalens/adapters/postgres"
	"datalens/app"
	"datalens/internal/config"
	"datalens/internal/errors"
	"datalens/internal/profiling"
	"datalens/internal/session"
	"datalens/ui"
)

// initDatabase connects to PostgreSQL and ensures the schema exists
func initDatabase(appConfig *config.Config) (*sqlx.DB, error) {
	db, err := sqlx.Connect("postgres", appConfig.Database.URL)
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect to database")
	}
	if err := db.Ping(); err != nil {
		return nil, errors.Wrap(err, "failed to ping database")
	}
	if err := postgres.EnsureSchema(db); err != nil {
		return nil, errors.Wrap(err, "failed to ensure database schema")
	}
	return db, nil
}

func main() {
	// .env is optional; environment variables win
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	appConfig, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	gin.SetMode(appConfig.Server.GinMode)

	db, err := initDatabase(appConfig)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	inferConfig := profiling.DefaultConfig()
	datasets := app.NewDatasetService(
		postgres.NewDatasetRepository(db),
		loader.NewDataReader(inferConfig),
		profiling.NewProfiler(inferConfig),
		appConfig.Data.UploadDir,
		appConfig.Data.MaxPreviewRows,
	)
	insights := app.NewInsightService(datasets, session.NewMemory(appConfig.Memory.MaxMessagesPerUser))

	server := ui.NewServer(datasets, insights)
	if err := server.Run(appConfig.Server.Port); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
