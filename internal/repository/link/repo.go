// Package link stores the derived extraction-tag relationship rows.
package link

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/finmock/researchd/internal/domain"
)

// Repo stores relationship rows.
type Repo struct {
	db *gorm.DB
}

// New creates a link repository.
func New(db *gorm.DB) *Repo {
	return &Repo{db: db}
}

// Insert writes one relationship row. Duplicate attempts on the same
// (extraction, tag) pair are swallowed; created reports whether a new row
// was written.
func (r *Repo) Insert(ctx context.Context, l domain.ExtractionTag) (bool, error) {
	res := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "extraction_id"},
			{Name: "tag_id"},
		},
		DoNothing: true,
	}).Create(&l)
	if res.Error != nil {
		return false, fmt.Errorf("insert relationship: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}

// ByExtraction returns the relationship rows for one extraction.
func (r *Repo) ByExtraction(ctx context.Context, extractionID string) ([]domain.ExtractionTag, error) {
	var links []domain.ExtractionTag
	err := r.db.WithContext(ctx).
		Where("extraction_id = ?", extractionID).
		Order("tag_category").Order("tag_id").
		Find(&links).Error
	if err != nil {
		return nil, fmt.Errorf("list relationships: %w", err)
	}
	return links, nil
}

// DeleteAll clears the relationship table. Used before taxonomy reloads —
// the rows are derived data and are recomputed on the next linking pass.
func (r *Repo) DeleteAll(ctx context.Context) error {
	if err := r.db.WithContext(ctx).Where("1 = 1").Delete(&domain.ExtractionTag{}).Error; err != nil {
		return fmt.Errorf("delete relationships: %w", err)
	}
	return nil
}
