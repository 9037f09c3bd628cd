package database

import (
	"log"

	"github.com/roamly/discovery-service/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func NewPostgresDB(dsn string) *gorm.DB {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(&models.Tour{}, &models.TourStartTime{}, &models.CapacityLedger{}); err != nil {
		log.Fatalf("failed to auto-migrate: %v", err)
	}

	// Location facets match case-insensitively; index the lowered columns
	db.Exec(`CREATE INDEX IF NOT EXISTS idx_tours_city_lower ON tours (lower(city))`)
	db.Exec(`CREATE INDEX IF NOT EXISTS idx_tours_country_lower ON tours (lower(country))`)

	return db
}
