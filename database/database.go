// File: /database/database.go
package database

import (
	"fmt"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"livewall-api/models"
)

func Initialize(databaseURL string) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(databaseURL), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return db, nil
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.Post{}); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	if err := addCustomIndexes(db); err != nil {
		return fmt.Errorf("failed to add custom indexes: %w", err)
	}

	return nil
}

func addCustomIndexes(db *gorm.DB) error {
	// Feed queries filter on the day window plus the hidden flag and sort
	// newest first; a composite index covers both the public and the
	// moderator variant.
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_posts_hidden_created ON posts(hidden, created_at DESC)").Error; err != nil {
		fmt.Printf("Warning: Could not create index for posts: %v\n", err)
	}

	// The sweep job looks posts up by their storage id.
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_posts_media_storage_id ON posts(media_storage_id)").Error; err != nil {
		fmt.Printf("Warning: Could not create index for media storage ids: %v\n", err)
	}

	return nil
}
