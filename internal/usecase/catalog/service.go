// Package catalog manages the tag taxonomy: uniquely-named tags grouped by
// category, with idempotent inserts and bulk loading.
package catalog

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/finmock/researchd/internal/domain"
	"github.com/finmock/researchd/internal/logger"
)

// Service exposes the tag catalog operations.
type Service struct {
	repo  Repository
	links LinkStore
}

// New creates a catalog service.
func New(repo Repository, links LinkStore) *Service {
	return &Service{repo: repo, links: links}
}

// TaxonomyInput is a bulk-load request. Either Groups (category to names) or
// Tags (flat rows) may be set; both are accepted together.
type TaxonomyInput struct {
	Groups  map[string][]string `json:"groups,omitempty"`
	Tags    []domain.Tag        `json:"tags,omitempty"`
	Replace bool                `json:"replace,omitempty"`
}

// TaxonomyReport summarizes a bulk load.
type TaxonomyReport struct {
	Inserted int `json:"inserted"`
	Skipped  int `json:"skipped"`
}

// InsertTag adds one tag to the catalog. Duplicate (name, category) pairs are
// idempotent: the existing row comes back with created=false. An id is
// assigned when the caller leaves it blank.
func (s *Service) InsertTag(ctx context.Context, t domain.Tag) (domain.Tag, bool, error) {
	t.Name = domain.NormalizeTagName(t.Name)
	t.Category = domain.NormalizeTagName(t.Category)
	if t.Name == "" {
		return domain.Tag{}, false, domain.NewValidationError("name", "is required")
	}
	if t.Category == "" {
		return domain.Tag{}, false, domain.NewValidationError("category", "is required")
	}
	if t.Category == domain.CategoryCounterpart {
		t.Name = domain.NormalizeCounterpart(t.Name)
	}
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return s.repo.Insert(ctx, t)
}

// ListTags returns catalog tags, optionally restricted to one category.
func (s *Service) ListTags(ctx context.Context, category string) ([]domain.Tag, error) {
	return s.repo.List(ctx, domain.NormalizeTagName(category))
}

// Categories returns each category with its tag count.
func (s *Service) Categories(ctx context.Context) ([]domain.CategoryCount, error) {
	return s.repo.Categories(ctx)
}

// LoadTaxonomy bulk-inserts tags from a grouped map, a flat list, or both.
// Replace clears relationship rows and the catalog first; rows are derived
// data, so dropping them with their tags keeps the store consistent.
func (s *Service) LoadTaxonomy(ctx context.Context, in TaxonomyInput) (TaxonomyReport, error) {
	log := logger.FromContext(ctx)

	if in.Replace {
		if err := s.links.DeleteAll(ctx); err != nil {
			return TaxonomyReport{}, fmt.Errorf("clear relationship rows: %w", err)
		}
		if err := s.repo.DeleteAll(ctx); err != nil {
			return TaxonomyReport{}, fmt.Errorf("clear catalog: %w", err)
		}
		log.Info("taxonomy replace: catalog cleared")
	}

	var report TaxonomyReport
	add := func(t domain.Tag) error {
		_, created, err := s.InsertTag(ctx, t)
		if err != nil {
			return err
		}
		if created {
			report.Inserted++
		} else {
			report.Skipped++
		}
		return nil
	}

	for category, names := range in.Groups {
		for _, name := range names {
			if err := add(domain.Tag{Name: name, Category: category}); err != nil {
				return report, err
			}
		}
	}
	for _, t := range in.Tags {
		if err := add(t); err != nil {
			return report, err
		}
	}

	return report, nil
}
