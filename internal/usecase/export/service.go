// Package export implements snapshot round-trips: dumping the full
// extraction store to a JSON file and re-ingesting snapshots, including
// older flatter shapes.
package export

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"github.com/finmock/researchd/internal/domain"
	"github.com/finmock/researchd/internal/logger"
)

// Service produces and consumes store snapshots.
type Service struct {
	reader   Reader
	creator  Creator
	tags     TagLookup
	dumpPath string
	now      func() time.Time
}

// New creates an export service writing dumps to dumpPath.
func New(reader Reader, creator Creator, tags TagLookup, dumpPath string) *Service {
	return &Service{
		reader:   reader,
		creator:  creator,
		tags:     tags,
		dumpPath: dumpPath,
		now:      time.Now,
	}
}

// ImportReport summarizes a snapshot ingestion.
type ImportReport struct {
	Imported   int `json:"imported"`
	Skipped    int `json:"skipped"`
	LinkMisses int `json:"link_misses"`
}

// Dump exports every record, soft-deleted ones included, writes the snapshot
// to the configured file, and returns it. Records missing a title are not
// exportable and are left out; trade ideas lacking ids get them assigned so
// the snapshot re-ingests cleanly.
func (s *Service) Dump(ctx context.Context) (domain.Snapshot, error) {
	all, err := s.reader.All(ctx, true)
	if err != nil {
		return domain.Snapshot{}, err
	}

	records := make([]domain.Extraction, 0, len(all))
	for _, e := range all {
		if strings.TrimSpace(e.Title) == "" {
			continue
		}
		ideas := []domain.TradeIdea(e.TradeIdeas)
		for i := range ideas {
			if ideas[i].ID == "" {
				ideas[i].ID = uuid.NewString()
			}
		}
		e.TradeIdeas = ideas
		records = append(records, e)
	}

	snap := domain.Snapshot{
		ExportedAt:  s.now().UTC(),
		Total:       len(records),
		Version:     domain.SnapshotVersion,
		Extractions: records,
	}

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return domain.Snapshot{}, fmt.Errorf("encode snapshot: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.dumpPath), 0o755); err != nil {
		return domain.Snapshot{}, fmt.Errorf("create dump dir: %w", err)
	}
	if err := os.WriteFile(s.dumpPath, data, 0o644); err != nil {
		return domain.Snapshot{}, fmt.Errorf("write snapshot: %w", err)
	}

	return snap, nil
}

// Import re-ingests a snapshot through the normal write path. Records that
// fail validation or collide with existing ids are skipped, not fatal; a
// partial import of a legacy file beats none.
func (s *Service) Import(ctx context.Context, raw []byte) (ImportReport, error) {
	records, err := decodeSnapshot(raw)
	if err != nil {
		return ImportReport{}, fmt.Errorf("decode snapshot: %w", domain.NewValidationError("body", err.Error()))
	}

	log := logger.FromContext(ctx)
	var report ImportReport
	for _, w := range records {
		e, err := s.toDomain(ctx, w)
		if err != nil {
			return report, err
		}

		_, linkReport, err := s.creator.Create(ctx, e)
		if err != nil {
			log.Warn("snapshot record skipped",
				zap.String("id", w.ID),
				zap.String("title", w.Title),
				zap.Error(err),
			)
			report.Skipped++
			continue
		}
		report.Imported++
		report.LinkMisses += len(linkReport.Misses)
	}

	return report, nil
}

// toDomain converts a wire record, distributing legacy flat tag names onto
// their category fields via catalog lookup. Names the catalog does not know
// cannot be categorized and are dropped from the selection.
func (s *Service) toDomain(ctx context.Context, w wireExtraction) (domain.Extraction, error) {
	selection := w.Tags.Selection
	for _, name := range w.Tags.Flat {
		name = domain.NormalizeTagName(name)
		if name == "" {
			continue
		}
		matches, err := s.tags.FindByName(ctx, name)
		if err != nil {
			return domain.Extraction{}, err
		}
		if len(matches) == 0 {
			despaced := domain.NormalizeCounterpart(name)
			if despaced != name {
				matches, err = s.tags.FindByName(ctx, despaced)
				if err != nil {
					return domain.Extraction{}, err
				}
			}
		}
		if len(matches) == 0 {
			continue
		}
		assignToCategory(&selection, matches[0])
	}

	ideas := make([]domain.TradeIdea, 0, len(w.TradeIdeas))
	for _, wi := range w.TradeIdeas {
		ideas = append(ideas, domain.TradeIdea{
			ID:             wi.ID,
			Recommendation: wi.Recommendation,
			Summary:        wi.Summary,
			Conviction:     wi.Conviction,
			Pros:           wi.Pros,
			Cons:           wi.Cons,
			DeletedAt:      wi.DeletedAt,
		})
	}

	return domain.Extraction{
		ID:            w.ID,
		Title:         w.Title,
		PublishedDate: w.PublishedDate,
		Authors:       datatypes.NewJSONSlice(w.Authors),
		Summary:       datatypes.NewJSONSlice([]domain.BulletPoint(w.Summary)),
		Tags:          datatypes.NewJSONType(selection),
		Pros:          datatypes.NewJSONSlice(w.Pros),
		Cons:          datatypes.NewJSONSlice(w.Cons),
		TradeIdeas:    datatypes.NewJSONSlice(ideas),
		SuggestedTags: datatypes.NewJSONSlice(w.SuggestedTags),
		DeletedAt:     w.DeletedAt,
	}, nil
}

func assignToCategory(sel *domain.TagSelection, tag domain.Tag) {
	switch tag.Category {
	case domain.CategoryAssetClass:
		sel.AssetClass = appendUnique(sel.AssetClass, tag.Name)
	case domain.CategoryED:
		sel.ED = appendUnique(sel.ED, tag.Name)
	case domain.CategoryRegion:
		sel.Region = appendUnique(sel.Region, tag.Name)
	case domain.CategoryCountry:
		sel.Country = appendUnique(sel.Country, tag.Name)
	case domain.CategorySector:
		sel.Sector = appendUnique(sel.Sector, tag.Name)
	case domain.CategoryTrade:
		sel.Trade = appendUnique(sel.Trade, tag.Name)
	case domain.CategoryCounterpart:
		if sel.Counterpart == "" {
			sel.Counterpart = tag.Name
		}
	}
}

func appendUnique(names []string, name string) []string {
	for _, existing := range names {
		if existing == name {
			return names
		}
	}
	return append(names, name)
}
