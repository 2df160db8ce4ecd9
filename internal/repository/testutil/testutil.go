// Package testutil provides a throwaway embedded database for repository
// tests.
package testutil

import (
	"path/filepath"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/finmock/researchd/internal/domain"
)

// DB opens a fresh sqlite database in a per-test temp dir with the full
// schema migrated.
func DB(tb testing.TB) *gorm.DB {
	tb.Helper()

	path := filepath.Join(tb.TempDir(), "researchd_test.db")
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
	})
	if err != nil {
		tb.Fatalf("open test db: %v", err)
	}

	if err := db.AutoMigrate(
		&domain.Tag{},
		&domain.Extraction{},
		&domain.ExtractionTag{},
	); err != nil {
		tb.Fatalf("migrate test db: %v", err)
	}

	return db
}
