package database

import (
	"gorm.io/gorm"

	"vfxhub_backend/internal/models"
)

// Migrate creates or updates the schema for every persisted entity.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.RefreshToken{},
		&models.Profile{},
		&models.Notification{},
		&models.Message{},
		&models.Job{},
		&models.Proposal{},
	)
}
