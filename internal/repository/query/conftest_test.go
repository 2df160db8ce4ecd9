package query

import (
	"testing"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/finmock/researchd/internal/domain"
	"github.com/finmock/researchd/internal/repository/testutil"
)

// The shared fixture:
//
//	e1 "Japan Q4"      2025-11-09  Japan, Equity, GoldmanSachs
//	e5 "Tech wrap"     2025-11-09  Technology          (older created_at than e1)
//	e2 "Germany note"  2025-11-01  Germany, Equity
//	e3 "Japan macro"   2025-10-15  Japan
//	e4 "Stale piece"   2025-11-09  Japan, Equity       (soft-deleted)
func newTestRepo(t *testing.T) *Repo {
	t.Helper()

	db := testutil.DB(t)

	tags := []domain.Tag{
		{ID: "t-japan", Name: "Japan", Category: domain.CategoryCountry},
		{ID: "t-germany", Name: "Germany", Category: domain.CategoryCountry},
		{ID: "t-equity", Name: "Equity", Category: domain.CategoryAssetClass},
		{ID: "t-tech", Name: "Technology", Category: domain.CategorySector},
		{ID: "t-gs", Name: "GoldmanSachs", Category: domain.CategoryCounterpart},
	}
	for i := range tags {
		mustCreate(t, db, &tags[i])
	}

	base := time.Date(2025, 11, 10, 12, 0, 0, 0, time.UTC)
	deletedAt := base.Add(time.Hour)
	extractions := []domain.Extraction{
		newFixtureExtraction("e1", "Japan Q4", "2025-11-09", base.Add(2*time.Minute)),
		newFixtureExtraction("e5", "Tech wrap", "2025-11-09", base.Add(1*time.Minute)),
		newFixtureExtraction("e2", "Germany note", "2025-11-01", base),
		newFixtureExtraction("e3", "Japan macro", "2025-10-15", base),
		newFixtureExtraction("e4", "Stale piece", "2025-11-09", base),
	}
	extractions[4].DeletedAt = &deletedAt
	for i := range extractions {
		mustCreate(t, db, &extractions[i])
	}

	links := []domain.ExtractionTag{
		{ExtractionID: "e1", TagID: "t-japan", TagCategory: domain.CategoryCountry},
		{ExtractionID: "e1", TagID: "t-equity", TagCategory: domain.CategoryAssetClass},
		{ExtractionID: "e1", TagID: "t-gs", TagCategory: domain.CategoryCounterpart},
		{ExtractionID: "e5", TagID: "t-tech", TagCategory: domain.CategorySector},
		{ExtractionID: "e2", TagID: "t-germany", TagCategory: domain.CategoryCountry},
		{ExtractionID: "e2", TagID: "t-equity", TagCategory: domain.CategoryAssetClass},
		{ExtractionID: "e3", TagID: "t-japan", TagCategory: domain.CategoryCountry},
		{ExtractionID: "e4", TagID: "t-japan", TagCategory: domain.CategoryCountry},
		{ExtractionID: "e4", TagID: "t-equity", TagCategory: domain.CategoryAssetClass},
	}
	for i := range links {
		mustCreate(t, db, &links[i])
	}

	return New(db)
}

func newFixtureExtraction(id, title, published string, createdAt time.Time) domain.Extraction {
	return domain.Extraction{
		ID:            id,
		Title:         title,
		PublishedDate: &published,
		Tags:          datatypes.NewJSONType(domain.TagSelection{}),
		CreatedAt:     createdAt,
	}
}

func mustCreate(t *testing.T, db *gorm.DB, value any) {
	t.Helper()
	if err := db.Create(value).Error; err != nil {
		t.Fatalf("seed %T: %v", value, err)
	}
}

func ids(extractions []domain.Extraction) []string {
	out := make([]string, 0, len(extractions))
	for _, e := range extractions {
		out = append(out, e.ID)
	}
	return out
}

func equalIDs(got []string, want ...string) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range want {
		if got[i] != want[i] {
			return false
		}
	}
	return true
}
