package extraction

import (
	"context"
	"time"

	"github.com/finmock/researchd/internal/domain"
)

// Repository is the extraction row storage.
type Repository interface {
	Insert(ctx context.Context, e *domain.Extraction) error
	Get(ctx context.Context, id string, includeDeleted bool) (domain.Extraction, error)
	SetDeletedAt(ctx context.Context, id string, ts *time.Time) (domain.Extraction, error)
	SetTradeIdeaDeletedAt(ctx context.Context, extractionID, tradeIdeaID string, ts *time.Time) (domain.Extraction, error)
}

// Linker derives relationship rows after an insert.
type Linker interface {
	Sync(ctx context.Context, e *domain.Extraction) (domain.LinkReport, error)
}
