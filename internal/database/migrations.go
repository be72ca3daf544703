package database

import (
	"fmt"

	"github.com/briefmate/briefmate/internal/models"
	"github.com/charmbracelet/log"
	"gorm.io/gorm"
)

// AddIndexes adds the composite indexes used by dashboard filtering and stats.
// Single-column indexes are declared on the models.
func AddIndexes(db *gorm.DB) error {
	indexes := []struct {
		model   interface{}
		name    string
		columns string
	}{
		// Listing and stats always filter by owner first
		{&models.Brief{}, "idx_briefs_user_status", "user_id, status"},
		{&models.Brief{}, "idx_briefs_user_priority", "user_id, priority"},
		{&models.Brief{}, "idx_briefs_user_deadline", "user_id, deadline"},
		{&models.Brief{}, "idx_briefs_user_created_at", "user_id, created_at"},

		// Task ordering inside a brief
		{&models.Task{}, "idx_tasks_brief_position", "brief_id, position"},

		// Client listing by name
		{&models.Client{}, "idx_clients_user_name", "user_id, name"},
	}

	migrator := db.Migrator()
	for _, idx := range indexes {
		if migrator.HasIndex(idx.model, idx.name) {
			log.Debug("Index already exists, skipping", "index", idx.name)
			continue
		}

		stmt := &gorm.Statement{DB: db}
		if err := stmt.Parse(idx.model); err != nil {
			return fmt.Errorf("failed to resolve table for index %s: %w", idx.name, err)
		}

		sql := fmt.Sprintf("CREATE INDEX %s ON %s (%s)", idx.name, stmt.Schema.Table, idx.columns)
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}

		log.Info("Created index", "index", idx.name, "table", stmt.Schema.Table, "columns", idx.columns)
	}

	return nil
}

// MigrateDatabase runs all database migrations
func MigrateDatabase(db *gorm.DB) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	if err := AddIndexes(db); err != nil {
		return fmt.Errorf("failed to add indexes: %w", err)
	}

	if err := BackfillSearchText(db); err != nil {
		return fmt.Errorf("failed to backfill search text: %w", err)
	}

	return nil
}

// BackfillSearchText fills the search column of briefs written before it
// existed.
func BackfillSearchText(db *gorm.DB) error {
	var briefs []models.Brief
	var updated int
	result := db.Select("id", "title", "description").
		Where("search_text IS NULL OR search_text = ''").
		FindInBatches(&briefs, 200, func(tx *gorm.DB, batch int) error {
			for _, b := range briefs {
				text := models.BriefSearchText(b.Title, b.Description)
				if err := db.Model(&models.Brief{}).Where("id = ?", b.ID).UpdateColumn("search_text", text).Error; err != nil {
					return err
				}
				updated++
			}
			return nil
		})
	if result.Error != nil {
		return result.Error
	}

	if updated > 0 {
		log.Info("Backfilled brief search text", "briefs", updated)
	}
	return nil
}
