// Package extraction implements storage for research extraction records.
// Each record is one row; nested content (trade ideas, summary bullets, the
// embedded tag selection) lives in typed JSON columns.
package extraction

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"gorm.io/gorm"

	"github.com/finmock/researchd/internal/domain"
)

// Repo stores extraction records.
//
// Mutations that read the row and write it back (the nested trade-idea
// update) are serialized by mu. The embedded engine already allows only one
// writer; the mutex closes the read-modify-write window above it.
type Repo struct {
	db *gorm.DB
	mu sync.Mutex
}

// New creates an extraction repository.
func New(db *gorm.DB) *Repo {
	return &Repo{db: db}
}

// Insert persists a full record, nested trade ideas included, as one atomic
// write.
func (r *Repo) Insert(ctx context.Context, e *domain.Extraction) error {
	if err := r.db.WithContext(ctx).Create(e).Error; err != nil {
		return fmt.Errorf("insert extraction: %w", err)
	}
	return nil
}

// Get returns a record by id. Soft-deleted records are reported as missing
// unless includeDeleted is set.
func (r *Repo) Get(ctx context.Context, id string, includeDeleted bool) (domain.Extraction, error) {
	var e domain.Extraction
	q := r.db.WithContext(ctx).Where("id = ?", id)
	if !includeDeleted {
		q = q.Where("deleted_at IS NULL")
	}

	err := q.First(&e).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.Extraction{}, fmt.Errorf("extraction %s: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return domain.Extraction{}, fmt.Errorf("get extraction: %w", err)
	}
	return e, nil
}

// SetDeletedAt sets (or clears, when ts is nil) the record's soft-delete
// marker and returns the updated record.
func (r *Repo) SetDeletedAt(ctx context.Context, id string, ts *time.Time) (domain.Extraction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, err := r.Get(ctx, id, true)
	if err != nil {
		return domain.Extraction{}, err
	}

	err = r.db.WithContext(ctx).
		Model(&domain.Extraction{}).
		Where("id = ?", id).
		Update("deleted_at", ts).Error
	if err != nil {
		return domain.Extraction{}, fmt.Errorf("update deleted_at: %w", err)
	}

	e.DeletedAt = ts
	return e, nil
}

// SetTradeIdeaDeletedAt locates one nested trade idea inside the record,
// sets (or clears) its deleted_at, and persists the whole trade_ideas list
// back. The read-modify-write runs under the repository write lock.
func (r *Repo) SetTradeIdeaDeletedAt(
	ctx context.Context, extractionID, tradeIdeaID string, ts *time.Time,
) (domain.Extraction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, err := r.Get(ctx, extractionID, true)
	if err != nil {
		return domain.Extraction{}, err
	}

	ideas := []domain.TradeIdea(e.TradeIdeas)
	found := false
	for i := range ideas {
		if ideas[i].ID == tradeIdeaID {
			ideas[i].DeletedAt = ts
			found = true
			break
		}
	}
	if !found {
		return domain.Extraction{}, fmt.Errorf("trade idea %s in extraction %s: %w",
			tradeIdeaID, extractionID, domain.ErrTradeIdeaNotFound)
	}

	e.TradeIdeas = ideas
	err = r.db.WithContext(ctx).
		Model(&domain.Extraction{}).
		Where("id = ?", extractionID).
		Update("trade_ideas", e.TradeIdeas).Error
	if err != nil {
		return domain.Extraction{}, fmt.Errorf("update trade_ideas: %w", err)
	}

	return e, nil
}

// All returns every record for snapshot export, ordered like list queries.
func (r *Repo) All(ctx context.Context, includeDeleted bool) ([]domain.Extraction, error) {
	q := r.db.WithContext(ctx).Model(&domain.Extraction{})
	if !includeDeleted {
		q = q.Where("deleted_at IS NULL")
	}

	var out []domain.Extraction
	err := q.Order("published_date DESC").Order("created_at DESC").Find(&out).Error
	if err != nil {
		return nil, fmt.Errorf("list extractions: %w", err)
	}
	return out, nil
}
