package export

import (
	"context"

	"github.com/finmock/researchd/internal/domain"
)

// Reader streams every stored extraction for snapshot export.
type Reader interface {
	All(ctx context.Context, includeDeleted bool) ([]domain.Extraction, error)
}

// Creator ingests one record through the normal validated write path, tag
// linking included.
type Creator interface {
	Create(ctx context.Context, e domain.Extraction) (domain.Extraction, domain.LinkReport, error)
}

// TagLookup resolves flat tag names to their catalog categories during
// legacy-shape imports.
type TagLookup interface {
	FindByName(ctx context.Context, name string) ([]domain.Tag, error)
}
