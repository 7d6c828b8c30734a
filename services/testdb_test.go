package services

import (
	"fmt"
	"strings"
	"testing"

	"scholar-monitor-api/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens an isolated in-memory database per test. cache=shared keeps
// the schema visible across the pooled connections GORM opens.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", "#", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}

	if err := db.AutoMigrate(
		&models.Scholar{},
		&models.Paper{},
		&models.Patent{},
		&models.SyncLog{},
	); err != nil {
		t.Fatalf("failed to migrate test db: %v", err)
	}

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	return db
}

func mustCreateScholar(t *testing.T, db *gorm.DB, aminerID, name string) *models.Scholar {
	t.Helper()

	scholar := &models.Scholar{AminerID: aminerID, Name: name}
	if err := NewScholarService(db).Create(scholar); err != nil {
		t.Fatalf("failed to create scholar %s: %v", aminerID, err)
	}
	return scholar
}
