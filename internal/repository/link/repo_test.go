package link

import (
	"context"
	"testing"

	"github.com/finmock/researchd/internal/domain"
	"github.com/finmock/researchd/internal/repository/testutil"
)

func TestInsert_IdempotentPerPair(t *testing.T) {
	repo := New(testutil.DB(t))
	ctx := context.Background()

	row := domain.ExtractionTag{
		ExtractionID: "e1",
		TagID:        "t1",
		TagCategory:  domain.CategoryCountry,
	}

	created, err := repo.Insert(ctx, row)
	if err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if !created {
		t.Error("first insert should report created=true")
	}

	created, err = repo.Insert(ctx, row)
	if err != nil {
		t.Fatalf("duplicate Insert: %v", err)
	}
	if created {
		t.Error("duplicate insert should be swallowed, not re-created")
	}

	links, err := repo.ByExtraction(ctx, "e1")
	if err != nil {
		t.Fatalf("ByExtraction: %v", err)
	}
	if len(links) != 1 {
		t.Errorf("relationship rows = %d, want 1", len(links))
	}
}

func TestByExtraction_OnlyOwnRows(t *testing.T) {
	repo := New(testutil.DB(t))
	ctx := context.Background()

	rows := []domain.ExtractionTag{
		{ExtractionID: "e1", TagID: "t1", TagCategory: domain.CategoryCountry},
		{ExtractionID: "e1", TagID: "t2", TagCategory: domain.CategoryAssetClass},
		{ExtractionID: "e2", TagID: "t1", TagCategory: domain.CategoryCountry},
	}
	for _, row := range rows {
		if _, err := repo.Insert(ctx, row); err != nil {
			t.Fatalf("Insert: %v", err)
		}
	}

	links, err := repo.ByExtraction(ctx, "e1")
	if err != nil {
		t.Fatalf("ByExtraction: %v", err)
	}
	if len(links) != 2 {
		t.Errorf("e1 rows = %d, want 2", len(links))
	}
	for _, l := range links {
		if l.ExtractionID != "e1" {
			t.Errorf("row for %s leaked into e1's set", l.ExtractionID)
		}
	}
}

func TestDeleteAll(t *testing.T) {
	repo := New(testutil.DB(t))
	ctx := context.Background()

	if _, err := repo.Insert(ctx, domain.ExtractionTag{
		ExtractionID: "e1", TagID: "t1", TagCategory: domain.CategoryCountry,
	}); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if err := repo.DeleteAll(ctx); err != nil {
		t.Fatalf("DeleteAll: %v", err)
	}

	links, err := repo.ByExtraction(ctx, "e1")
	if err != nil {
		t.Fatalf("ByExtraction: %v", err)
	}
	if len(links) != 0 {
		t.Errorf("rows after DeleteAll = %d, want 0", len(links))
	}
}
