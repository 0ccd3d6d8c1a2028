package database

import (
	"github.com/playscore/playscore-backend/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func Init(databaseURL string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, err
	}

	// Auto migrate schemas
	err = db.AutoMigrate(
		&models.User{},
		&models.Game{},
		&models.GameImage{},
		&models.Comment{},
		&models.Rating{},
		&models.RefreshToken{},
		&models.PasswordResetToken{},
	)
	if err != nil {
		return nil, err
	}

	return db, nil
}
