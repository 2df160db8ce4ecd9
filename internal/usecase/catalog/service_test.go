package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/finmock/researchd/internal/domain"
)

type stubRepo struct {
	rows    []domain.Tag
	cleared bool
}

func (s *stubRepo) Insert(_ context.Context, t domain.Tag) (domain.Tag, bool, error) {
	for _, existing := range s.rows {
		if existing.Name == t.Name && existing.Category == t.Category {
			return existing, false, nil
		}
	}
	s.rows = append(s.rows, t)
	return t, true, nil
}

func (s *stubRepo) List(_ context.Context, category string) ([]domain.Tag, error) {
	if category == "" {
		return s.rows, nil
	}
	var out []domain.Tag
	for _, t := range s.rows {
		if t.Category == category {
			out = append(out, t)
		}
	}
	return out, nil
}

func (s *stubRepo) Categories(_ context.Context) ([]domain.CategoryCount, error) {
	counts := map[string]int{}
	for _, t := range s.rows {
		counts[t.Category]++
	}
	var out []domain.CategoryCount
	for category, n := range counts {
		out = append(out, domain.CategoryCount{Category: category, TagCount: n})
	}
	return out, nil
}

func (s *stubRepo) DeleteAll(context.Context) error {
	s.rows = nil
	s.cleared = true
	return nil
}

type stubLinkStore struct {
	cleared bool
}

func (s *stubLinkStore) DeleteAll(context.Context) error {
	s.cleared = true
	return nil
}

func TestInsertTag_AssignsIDAndTrims(t *testing.T) {
	repo := &stubRepo{}
	svc := New(repo, &stubLinkStore{})

	tag, created, err := svc.InsertTag(context.Background(), domain.Tag{
		Name:     "  Japan ",
		Category: " country ",
	})
	if err != nil {
		t.Fatalf("InsertTag: %v", err)
	}
	if !created {
		t.Error("created = false, want true")
	}
	if tag.ID == "" {
		t.Error("id should be assigned when blank")
	}
	if tag.Name != "Japan" || tag.Category != "country" {
		t.Errorf("tag = %+v, want trimmed Japan/country", tag)
	}
}

func TestInsertTag_DuplicateIsIdempotent(t *testing.T) {
	repo := &stubRepo{}
	svc := New(repo, &stubLinkStore{})
	ctx := context.Background()

	first, _, err := svc.InsertTag(ctx, domain.Tag{Name: "Japan", Category: domain.CategoryCountry})
	if err != nil {
		t.Fatalf("InsertTag: %v", err)
	}

	second, created, err := svc.InsertTag(ctx, domain.Tag{Name: "Japan", Category: domain.CategoryCountry})
	if err != nil {
		t.Fatalf("duplicate InsertTag: %v", err)
	}
	if created {
		t.Error("duplicate should not be created")
	}
	if second.ID != first.ID {
		t.Errorf("duplicate returned id %s, want canonical %s", second.ID, first.ID)
	}
	if len(repo.rows) != 1 {
		t.Errorf("rows = %d, want 1", len(repo.rows))
	}
}

func TestInsertTag_CounterpartWhitespaceStripped(t *testing.T) {
	repo := &stubRepo{}
	svc := New(repo, &stubLinkStore{})

	tag, _, err := svc.InsertTag(context.Background(), domain.Tag{
		Name:     "Goldman Sachs",
		Category: domain.CategoryCounterpart,
	})
	if err != nil {
		t.Fatalf("InsertTag: %v", err)
	}
	if tag.Name != "GoldmanSachs" {
		t.Errorf("name = %q, want GoldmanSachs", tag.Name)
	}
}

func TestInsertTag_Validation(t *testing.T) {
	svc := New(&stubRepo{}, &stubLinkStore{})
	ctx := context.Background()

	if _, _, err := svc.InsertTag(ctx, domain.Tag{Category: domain.CategoryCountry}); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("missing name: err = %v, want ErrValidation", err)
	}
	if _, _, err := svc.InsertTag(ctx, domain.Tag{Name: "Japan"}); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("missing category: err = %v, want ErrValidation", err)
	}
}

func TestLoadTaxonomy_GroupedAndFlat(t *testing.T) {
	repo := &stubRepo{}
	svc := New(repo, &stubLinkStore{})

	report, err := svc.LoadTaxonomy(context.Background(), TaxonomyInput{
		Groups: map[string][]string{
			domain.CategoryCountry: {"Japan", "Germany"},
		},
		Tags: []domain.Tag{
			{ID: "t-equity", Name: "Equity", Category: domain.CategoryAssetClass},
			{Name: "Japan", Category: domain.CategoryCountry},
		},
	})
	if err != nil {
		t.Fatalf("LoadTaxonomy: %v", err)
	}
	if report.Inserted != 3 {
		t.Errorf("Inserted = %d, want 3", report.Inserted)
	}
	if report.Skipped != 1 {
		t.Errorf("Skipped = %d, want 1", report.Skipped)
	}
}

func TestLoadTaxonomy_ReplaceClearsLinksFirst(t *testing.T) {
	repo := &stubRepo{rows: []domain.Tag{
		{ID: "t-old", Name: "Old", Category: domain.CategoryRegion},
	}}
	links := &stubLinkStore{}
	svc := New(repo, links)

	report, err := svc.LoadTaxonomy(context.Background(), TaxonomyInput{
		Groups:  map[string][]string{domain.CategoryCountry: {"Japan"}},
		Replace: true,
	})
	if err != nil {
		t.Fatalf("LoadTaxonomy: %v", err)
	}
	if !links.cleared || !repo.cleared {
		t.Error("replace should clear relationship rows and the catalog")
	}
	if report.Inserted != 1 {
		t.Errorf("Inserted = %d, want 1", report.Inserted)
	}
	if len(repo.rows) != 1 || repo.rows[0].Name != "Japan" {
		t.Errorf("rows = %+v, want only Japan", repo.rows)
	}
}
