// Package tag implements the tag catalog storage: uniquely-named tags
// grouped by category, backed by the tags table.
package tag

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/finmock/researchd/internal/domain"
)

// Repo stores catalog tags.
type Repo struct {
	db *gorm.DB
}

// New creates a tag repository.
func New(db *gorm.DB) *Repo {
	return &Repo{db: db}
}

// Insert stores a tag unless its (name, category) pair already exists.
// Duplicate inserts are idempotent: the canonical row is returned and
// created is false. Enforced by the unique index on (name, category).
func (r *Repo) Insert(ctx context.Context, t domain.Tag) (domain.Tag, bool, error) {
	res := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}, {Name: "category"}},
		DoNothing: true,
	}).Create(&t)
	if res.Error != nil {
		return domain.Tag{}, false, fmt.Errorf("insert tag: %w", res.Error)
	}
	if res.RowsAffected > 0 {
		return t, true, nil
	}

	existing, err := r.Find(ctx, t.Name, t.Category)
	if err != nil {
		return domain.Tag{}, false, err
	}
	return existing, false, nil
}

// Find looks up a tag by its (name, category) identity.
func (r *Repo) Find(ctx context.Context, name, category string) (domain.Tag, error) {
	var t domain.Tag
	err := r.db.WithContext(ctx).
		Where("name = ? AND category = ?", name, category).
		First(&t).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.Tag{}, fmt.Errorf("tag %q in category %q: %w", name, category, domain.ErrTagNotFound)
	}
	if err != nil {
		return domain.Tag{}, fmt.Errorf("find tag: %w", err)
	}
	return t, nil
}

// FindByName returns every tag carrying the given name, across categories.
func (r *Repo) FindByName(ctx context.Context, name string) ([]domain.Tag, error) {
	var tags []domain.Tag
	err := r.db.WithContext(ctx).
		Where("name = ?", name).
		Order("category").
		Find(&tags).Error
	if err != nil {
		return nil, fmt.Errorf("find tags by name: %w", err)
	}
	return tags, nil
}

// List returns tags ordered by (category, name), optionally restricted to
// one category.
func (r *Repo) List(ctx context.Context, category string) ([]domain.Tag, error) {
	q := r.db.WithContext(ctx).Model(&domain.Tag{})
	if category != "" {
		q = q.Where("category = ?", category)
	}

	var tags []domain.Tag
	if err := q.Order("category").Order("name").Find(&tags).Error; err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}
	return tags, nil
}

// Categories returns each distinct category with its tag count, ordered by
// category name.
func (r *Repo) Categories(ctx context.Context) ([]domain.CategoryCount, error) {
	var counts []domain.CategoryCount
	err := r.db.WithContext(ctx).
		Model(&domain.Tag{}).
		Select("category, COUNT(*) AS tag_count").
		Group("category").
		Order("category").
		Scan(&counts).Error
	if err != nil {
		return nil, fmt.Errorf("count categories: %w", err)
	}
	return counts, nil
}

// DeleteAll clears the catalog. Used by taxonomy reloads; relationship rows
// must be cleared first.
func (r *Repo) DeleteAll(ctx context.Context) error {
	if err := r.db.WithContext(ctx).Where("1 = 1").Delete(&domain.Tag{}).Error; err != nil {
		return fmt.Errorf("delete tags: %w", err)
	}
	return nil
}
