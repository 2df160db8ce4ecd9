package linker

import (
	"context"

	"github.com/finmock/researchd/internal/domain"
)

// TagReader looks up catalog tags by their (name, category) identity.
type TagReader interface {
	Find(ctx context.Context, name, category string) (domain.Tag, error)
}

// LinkWriter inserts relationship rows idempotently.
type LinkWriter interface {
	Insert(ctx context.Context, l domain.ExtractionTag) (created bool, err error)
}
