package db

import (
	"os"

	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"hostel-backend/internal/models"
)

func Init() *gorm.DB {
	dsn := os.Getenv("DATABASE_DSN")
	if dsn == "" {
		log.Fatal().Msg("DATABASE_DSN required")
	}
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect db")
	}
	if err := db.AutoMigrate(&models.Student{}); err != nil {
		log.Fatal().Err(err).Msg("auto migrate failed")
	}
	return db
}
