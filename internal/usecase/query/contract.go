package query

import (
	"context"

	"github.com/finmock/researchd/internal/domain"
)

// Store answers the filtered aggregate queries over extraction records.
type Store interface {
	List(ctx context.Context, f domain.ListFilter, names []string) ([]domain.Extraction, error)
	PopularTags(ctx context.Context, f domain.ListFilter, names []string, limit int) ([]domain.TagCount, error)
	CountByCategory(ctx context.Context, category string, f domain.ListFilter, names []string) ([]domain.TagCount, error)
}

// TagResolver maps requested tag names onto their catalog identities.
type TagResolver interface {
	FindByName(ctx context.Context, name string) ([]domain.Tag, error)
	Find(ctx context.Context, name, category string) (domain.Tag, error)
}
