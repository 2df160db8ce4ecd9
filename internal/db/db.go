// Package db owns the embedded storage handle. The service runs single
// process with one shared connection, constructed here and injected into
// each repository from the composition root.
package db

import (
	"context"
	"fmt"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/finmock/researchd/internal/domain"
)

// Store wraps the embedded gorm/sqlite handle.
type Store struct {
	gorm *gorm.DB
}

// Open opens (creating if needed) the sqlite database at path.
func Open(path string) (*Store, error) {
	g, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open sqlite database %s: %w", path, err)
	}

	if err := g.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}

	return &Store{gorm: g}, nil
}

// DB exposes the gorm handle for repositories.
func (s *Store) DB() *gorm.DB { return s.gorm }

// Migrate creates or updates the three tables: extraction records, catalog
// tags, and the derived relationship rows.
func (s *Store) Migrate() error {
	if err := s.gorm.AutoMigrate(
		&domain.Tag{},
		&domain.Extraction{},
		&domain.ExtractionTag{},
	); err != nil {
		return fmt.Errorf("migrate schema: %w", err)
	}
	return nil
}

// Ping verifies the underlying connection.
func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.gorm.DB()
	if err != nil {
		return fmt.Errorf("unwrap sql db: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("ping database: %w", err)
	}
	return nil
}

// Close closes the underlying connection.
func (s *Store) Close() error {
	sqlDB, err := s.gorm.DB()
	if err != nil {
		return fmt.Errorf("unwrap sql db: %w", err)
	}
	if err := sqlDB.Close(); err != nil {
		return fmt.Errorf("close database: %w", err)
	}
	return nil
}
