// Package linker synchronizes the derived extraction-tag relationship rows
// from an extraction's embedded tag selection. The embedded selection stays
// the source of truth; relationship rows only enrich the query side.
package linker

import (
	"context"
	"errors"
	"fmt"

	"github.com/finmock/researchd/internal/domain"
)

// Service reconciles embedded tag selections against the catalog.
type Service struct {
	tags  TagReader
	links LinkWriter
}

// New creates a linker service.
func New(tags TagReader, links LinkWriter) *Service {
	return &Service{tags: tags, links: links}
}

// Sync derives relationship rows for one extraction. Tag names with no
// catalog entry in their category are accumulated as misses, never raised.
// Counterpart values have internal whitespace stripped before lookup; the
// query path applies the same normalization so both sides agree.
func (s *Service) Sync(ctx context.Context, e *domain.Extraction) (domain.LinkReport, error) {
	var report domain.LinkReport

	for _, entry := range e.Tags.Data().Entries() {
		for _, raw := range entry.Names {
			name := domain.NormalizeTagName(raw)
			if entry.Category == domain.CategoryCounterpart {
				name = domain.NormalizeCounterpart(name)
			}
			if name == "" {
				continue
			}

			tag, err := s.tags.Find(ctx, name, entry.Category)
			if errors.Is(err, domain.ErrTagNotFound) {
				report.Misses = append(report.Misses, domain.LinkMiss{
					Name:     name,
					Category: entry.Category,
				})
				continue
			}
			if err != nil {
				return report, fmt.Errorf("find tag: %w", err)
			}

			created, err := s.links.Insert(ctx, domain.ExtractionTag{
				ExtractionID: e.ID,
				TagID:        tag.ID,
				TagCategory:  tag.Category,
			})
			if err != nil {
				return report, fmt.Errorf("link tag %s: %w", tag.ID, err)
			}
			if created {
				report.Linked++
			}
		}
	}

	return report, nil
}
