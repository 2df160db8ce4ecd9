// Package extraction implements the research-record lifecycle: validated
// creation with tag linking, lookup, and soft deletion of records and their
// nested trade ideas.
package extraction

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/finmock/researchd/internal/domain"
	"github.com/finmock/researchd/internal/logger"
	"github.com/finmock/researchd/internal/metrics"
)

// Service owns extraction writes and reads.
type Service struct {
	repo   Repository
	linker Linker
	now    func() time.Time
}

// New creates an extraction service.
func New(repo Repository, linker Linker) *Service {
	return &Service{repo: repo, linker: linker, now: time.Now}
}

// Create validates and persists a new record, then synchronously derives its
// relationship rows. Linking problems never roll back the insert; the record
// is already durable and its embedded tags remain the source of truth. The
// report carries any misses back to the caller.
func (s *Service) Create(ctx context.Context, e domain.Extraction) (domain.Extraction, domain.LinkReport, error) {
	now := s.now().UTC()

	normalized, err := domain.NormalizePublishedDate(stringValue(e.PublishedDate), now)
	if err != nil {
		return domain.Extraction{}, domain.LinkReport{}, err
	}
	e.PublishedDate = &normalized

	if err := e.Validate(); err != nil {
		return domain.Extraction{}, domain.LinkReport{}, err
	}

	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	ideas := []domain.TradeIdea(e.TradeIdeas)
	for i := range ideas {
		if ideas[i].ID == "" {
			ideas[i].ID = uuid.NewString()
		}
	}
	e.TradeIdeas = ideas
	e.CreatedAt = now

	if err := s.repo.Insert(ctx, &e); err != nil {
		return domain.Extraction{}, domain.LinkReport{}, err
	}
	metrics.ExtractionsCreatedTotal.Inc()

	report, err := s.linker.Sync(ctx, &e)
	if err != nil {
		logger.FromContext(ctx).Warn("tag linking failed",
			zap.String("extraction_id", e.ID),
			zap.Error(err),
		)
		return e, report, nil
	}

	metrics.TagLinksCreatedTotal.Add(float64(report.Linked))
	metrics.TagLinkMissesTotal.Add(float64(len(report.Misses)))
	for _, miss := range report.Misses {
		logger.FromContext(ctx).Warn("tag not linked",
			zap.String("extraction_id", e.ID),
			zap.String("tag", miss.Name),
			zap.String("category", miss.Category),
		)
	}

	return e, report, nil
}

// Get returns one record, hiding soft-deleted ones unless asked.
func (s *Service) Get(ctx context.Context, id string, includeDeleted bool) (domain.Extraction, error) {
	return s.repo.Get(ctx, id, includeDeleted)
}

// SoftDelete sets or clears the record's deletion marker. A nil timestamp
// restores the record.
func (s *Service) SoftDelete(ctx context.Context, id string, ts *time.Time) (domain.Extraction, error) {
	e, err := s.repo.SetDeletedAt(ctx, id, ts)
	if err != nil {
		return domain.Extraction{}, err
	}
	return e, nil
}

// SoftDeleteTradeIdea sets or clears the deletion marker of one nested trade
// idea, leaving siblings and the parent untouched.
func (s *Service) SoftDeleteTradeIdea(
	ctx context.Context, extractionID, tradeIdeaID string, ts *time.Time,
) (domain.Extraction, error) {
	e, err := s.repo.SetTradeIdeaDeletedAt(ctx, extractionID, tradeIdeaID, ts)
	if err != nil {
		return domain.Extraction{}, fmt.Errorf("soft delete trade idea: %w", err)
	}
	return e, nil
}

func stringValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
