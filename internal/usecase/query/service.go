// Package query implements the read side: filtered listing with AND tag
// semantics, popular-tag rankings, per-category breakdowns, and the combined
// dashboard view.
package query

import (
	"context"
	"errors"
	"fmt"

	"github.com/finmock/researchd/internal/domain"
)

// Service answers read queries over the extraction store.
type Service struct {
	store        Store
	tags         TagResolver
	popularLimit int
}

// New creates a query service. popularLimit caps the dashboard's popular-tag
// ranking.
func New(store Store, tags TagResolver, popularLimit int) *Service {
	return &Service{store: store, tags: tags, popularLimit: popularLimit}
}

// Dashboard is the combined filtered view returned in one response.
type Dashboard struct {
	TotalExtractions int                 `json:"total_extractions"`
	TotalTradeIdeas  int                 `json:"total_trade_ideas"`
	DateRange        DateRange           `json:"date_range"`
	TagsFilter       []string            `json:"tags_filter"`
	PopularTags      []domain.TagCount   `json:"popular_tags"`
	ByCountry        []domain.TagCount   `json:"by_country"`
	BySector         []domain.TagCount   `json:"by_sector"`
	Results          []domain.Extraction `json:"results"`
}

// DateRange echoes the applied date bounds.
type DateRange struct {
	StartDate string `json:"start,omitempty"`
	EndDate   string `json:"end,omitempty"`
}

// List returns extractions matching the filter, most recent first. An
// explicit zero limit short-circuits to an empty result.
func (s *Service) List(ctx context.Context, f domain.ListFilter) ([]domain.Extraction, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}
	if f.Limit != nil && *f.Limit <= 0 {
		return []domain.Extraction{}, nil
	}

	names, err := s.resolveTags(ctx, f.Tags)
	if err != nil {
		return nil, err
	}
	return s.store.List(ctx, f, names)
}

// PopularTags ranks tags by the number of distinct qualifying extractions
// referencing them.
func (s *Service) PopularTags(ctx context.Context, f domain.ListFilter, limit int) ([]domain.TagCount, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = s.popularLimit
	}

	names, err := s.resolveTags(ctx, f.Tags)
	if err != nil {
		return nil, err
	}
	return s.store.PopularTags(ctx, f, names, limit)
}

// ByCategory breaks the filtered candidate set down by one fixed category.
// Only the country and sector breakdowns are exposed.
func (s *Service) ByCategory(ctx context.Context, category string, f domain.ListFilter) ([]domain.TagCount, error) {
	if category != domain.CategoryCountry && category != domain.CategorySector {
		return nil, fmt.Errorf("category %q: %w", category, domain.ErrInvalidCategory)
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}

	names, err := s.resolveTags(ctx, f.Tags)
	if err != nil {
		return nil, err
	}
	return s.store.CountByCategory(ctx, category, f, names)
}

// Dashboard assembles the filtered list with its aggregations in one pass.
func (s *Service) Dashboard(ctx context.Context, f domain.ListFilter) (Dashboard, error) {
	if err := f.Validate(); err != nil {
		return Dashboard{}, err
	}

	names, err := s.resolveTags(ctx, f.Tags)
	if err != nil {
		return Dashboard{}, err
	}

	results, err := s.store.List(ctx, f, names)
	if err != nil {
		return Dashboard{}, err
	}
	popular, err := s.store.PopularTags(ctx, f, names, s.popularLimit)
	if err != nil {
		return Dashboard{}, err
	}
	byCountry, err := s.store.CountByCategory(ctx, domain.CategoryCountry, f, names)
	if err != nil {
		return Dashboard{}, err
	}
	bySector, err := s.store.CountByCategory(ctx, domain.CategorySector, f, names)
	if err != nil {
		return Dashboard{}, err
	}

	ideas := 0
	for _, e := range results {
		for _, idea := range e.TradeIdeas {
			if idea.DeletedAt == nil {
				ideas++
			}
		}
	}

	return Dashboard{
		TotalExtractions: len(results),
		TotalTradeIdeas:  ideas,
		DateRange:        DateRange{StartDate: f.StartDate, EndDate: f.EndDate},
		TagsFilter:       names,
		PopularTags:      popular,
		ByCountry:        byCountry,
		BySector:         bySector,
		Results:          results,
	}, nil
}

// resolveTags normalizes the requested names against the catalog. Names that
// only exist in despaced counterpart form ("Goldman Sachs") resolve to that
// canonical form; names the catalog does not know stay in the set untouched,
// where the grouped AND count lets them match nothing. The result is
// deduplicated in request order.
func (s *Service) resolveTags(ctx context.Context, raw []string) ([]string, error) {
	var names []string
	seen := make(map[string]struct{}, len(raw))

	for _, r := range raw {
		name := domain.NormalizeTagName(r)
		if name == "" {
			continue
		}

		matches, err := s.tags.FindByName(ctx, name)
		if err != nil {
			return nil, err
		}
		if len(matches) == 0 {
			despaced := domain.NormalizeCounterpart(name)
			if despaced != name {
				if _, err := s.tags.Find(ctx, despaced, domain.CategoryCounterpart); err == nil {
					name = despaced
				} else if !errors.Is(err, domain.ErrTagNotFound) {
					return nil, err
				}
			}
		}

		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}

	return names, nil
}
