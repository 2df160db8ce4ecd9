package catalog

import (
	"context"

	"github.com/finmock/researchd/internal/domain"
)

// Repository is the tag storage the catalog drives.
type Repository interface {
	Insert(ctx context.Context, t domain.Tag) (tag domain.Tag, created bool, err error)
	List(ctx context.Context, category string) ([]domain.Tag, error)
	Categories(ctx context.Context) ([]domain.CategoryCount, error)
	DeleteAll(ctx context.Context) error
}

// LinkStore clears derived relationship rows before a taxonomy replace.
type LinkStore interface {
	DeleteAll(ctx context.Context) error
}
