package models_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/returnukhti/resi_backend/config"
	"github.com/returnukhti/resi_backend/models"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// openTestDB points the global DB handle at a per-test in-memory sqlite
// session. TranslateError matches the production gorm config so duplicate-key
// detection behaves the same here as on MySQL.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	if err := db.AutoMigrate(&models.User{}, &models.Resi{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	config.SetDB(db)
	t.Cleanup(func() {
		config.SetDB(nil)
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}
