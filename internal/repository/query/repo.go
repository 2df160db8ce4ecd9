// Package query implements the filtered reads over extraction records
// joined through the derived relationship rows: list-with-filters, popular
// tags, and per-category breakdowns. All values are bound parameters —
// never interpolated into query text.
package query

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/finmock/researchd/internal/domain"
)

// Repo answers filtered read queries.
type Repo struct {
	db *gorm.DB
}

// New creates a query repository.
func New(db *gorm.DB) *Repo {
	return &Repo{db: db}
}

// matchedIDs builds the AND-filter subquery: extraction ids whose linked
// distinct tag-name set, restricted to the requested names, has cardinality
// equal to the requested set's. The grouped count is a valid quorum proof
// because relationship rows are unique per (extraction, tag) and the catalog
// enforces name uniqueness per category.
func (r *Repo) matchedIDs(names []string) *gorm.DB {
	return r.db.Table("extraction_tags AS et").
		Select("et.extraction_id").
		Joins("JOIN tags AS t ON t.id = et.tag_id").
		Where("t.name IN ?", names).
		Group("et.extraction_id").
		Having("COUNT(DISTINCT t.name) = ?", len(names))
}

// List returns extraction records matching the filter, most recent first
// (published_date DESC, created_at DESC as the stable tie-break). names is
// the already-normalized requested tag set; empty means no tag filter.
func (r *Repo) List(ctx context.Context, f domain.ListFilter, names []string) ([]domain.Extraction, error) {
	q := r.db.WithContext(ctx).Model(&domain.Extraction{})
	if !f.IncludeDeleted {
		q = q.Where("deleted_at IS NULL")
	}
	if f.StartDate != "" {
		q = q.Where("published_date >= ?", f.StartDate)
	}
	if f.EndDate != "" {
		q = q.Where("published_date <= ?", f.EndDate)
	}
	if len(names) > 0 {
		q = q.Where("id IN (?)", r.matchedIDs(names))
	}

	q = q.Order("published_date DESC").Order("created_at DESC")
	if f.Limit != nil {
		q = q.Limit(*f.Limit)
	}

	var out []domain.Extraction
	if err := q.Find(&out).Error; err != nil {
		return nil, fmt.Errorf("list extractions: %w", err)
	}
	return out, nil
}

// PopularTags counts, per (name, category), the distinct qualifying
// extractions referencing each tag, ordered by count descending.
func (r *Repo) PopularTags(
	ctx context.Context, f domain.ListFilter, names []string, limit int,
) ([]domain.TagCount, error) {
	q := r.joined(ctx)
	q = r.restrictCandidates(q, f, names)

	var out []domain.TagCount
	err := q.Select("t.name AS name, t.category AS category, COUNT(DISTINCT et.extraction_id) AS count").
		Group("t.name, t.category").
		Order("count DESC").Order("t.name").
		Limit(limit).
		Scan(&out).Error
	if err != nil {
		return nil, fmt.Errorf("popular tags: %w", err)
	}
	return out, nil
}

// CountByCategory restricts relationship rows to one category and returns
// (tag name, distinct extraction count) pairs, count descending.
func (r *Repo) CountByCategory(
	ctx context.Context, category string, f domain.ListFilter, names []string,
) ([]domain.TagCount, error) {
	q := r.joined(ctx).Where("t.category = ?", category)
	q = r.restrictCandidates(q, f, names)

	var out []domain.TagCount
	err := q.Select("t.name AS name, COUNT(DISTINCT et.extraction_id) AS count").
		Group("t.name").
		Order("count DESC").Order("t.name").
		Scan(&out).Error
	if err != nil {
		return nil, fmt.Errorf("count by category: %w", err)
	}
	return out, nil
}

// joined is the aggregate base: relationship rows joined to their tag and
// owning extraction.
func (r *Repo) joined(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("extraction_tags AS et").
		Joins("JOIN tags AS t ON t.id = et.tag_id").
		Joins("JOIN research_extractions AS re ON re.id = et.extraction_id")
}

// restrictCandidates applies the shared candidate-set filters (soft-delete
// visibility, inclusive date bounds, AND tag filter) to an aggregate query.
func (r *Repo) restrictCandidates(q *gorm.DB, f domain.ListFilter, names []string) *gorm.DB {
	if !f.IncludeDeleted {
		q = q.Where("re.deleted_at IS NULL")
	}
	if f.StartDate != "" {
		q = q.Where("re.published_date >= ?", f.StartDate)
	}
	if f.EndDate != "" {
		q = q.Where("re.published_date <= ?", f.EndDate)
	}
	if len(names) > 0 {
		q = q.Where("re.id IN (?)", r.matchedIDs(names))
	}
	return q
}
