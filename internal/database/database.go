package database

import (
	"fmt"

	"github.com/Muunneebb/PostureHealthTracker/internal/config"
	logging "github.com/Muunneebb/PostureHealthTracker/internal/logging"
	"github.com/Muunneebb/PostureHealthTracker/internal/models"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

func Init(log *zap.Logger) {
	var err error
	dbConf := config.Conf.Database
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=UTC",
		dbConf.Host, dbConf.User, dbConf.Password, dbConf.DBName, dbConf.Port)

	// Create our custom GORM logger
	gormLogger := logging.NewGormZapLogger(log)
	gormLogger.LogLevel = logger.Warn

	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormLogger,
	})

	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}

	log.Info("Database connection established successfully.")
	runMigrations(log)
}

func runMigrations(log *zap.Logger) {
	// GORM's AutoMigrate will create tables, columns, and foreign keys.
	// It will NOT create custom indexes, so we handle that separately.
	err := DB.AutoMigrate(
		&models.User{},
		&models.Session{},
		&models.Reading{},
	)
	if err != nil {
		log.Fatal("Failed to run database migrations", zap.Error(err))
	}
	log.Info("Database migrations completed successfully.")

	// The leaderboard scans every session in the trailing window; the
	// dashboard scans one user's history newest-first.
	indexes := []string{
		`CREATE INDEX IF NOT EXISTS idx_sessions_window ON sessions (start_time DESC);`,
		`CREATE INDEX IF NOT EXISTS idx_sessions_active ON sessions (user_id) WHERE end_time IS NULL;`,
		`CREATE INDEX IF NOT EXISTS idx_readings_session_ts ON readings (session_id, timestamp);`,
	}
	for _, idx := range indexes {
		if err := DB.Exec(idx).Error; err != nil {
			log.Fatal("Failed to create custom index", zap.Error(err))
		}
	}
	log.Info("Custom indexes ensured successfully.")
}
