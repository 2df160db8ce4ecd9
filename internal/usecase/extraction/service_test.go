package extraction

import (
	"context"
	"errors"
	"testing"
	"time"

	"gorm.io/datatypes"

	"github.com/finmock/researchd/internal/domain"
)

type stubRepo struct {
	inserted  []domain.Extraction
	insertErr error
}

func (s *stubRepo) Insert(_ context.Context, e *domain.Extraction) error {
	if s.insertErr != nil {
		return s.insertErr
	}
	s.inserted = append(s.inserted, *e)
	return nil
}

func (s *stubRepo) Get(_ context.Context, id string, _ bool) (domain.Extraction, error) {
	for _, e := range s.inserted {
		if e.ID == id {
			return e, nil
		}
	}
	return domain.Extraction{}, domain.ErrNotFound
}

func (s *stubRepo) SetDeletedAt(_ context.Context, id string, ts *time.Time) (domain.Extraction, error) {
	for i := range s.inserted {
		if s.inserted[i].ID == id {
			s.inserted[i].DeletedAt = ts
			return s.inserted[i], nil
		}
	}
	return domain.Extraction{}, domain.ErrNotFound
}

func (s *stubRepo) SetTradeIdeaDeletedAt(
	_ context.Context, extractionID, tradeIdeaID string, ts *time.Time,
) (domain.Extraction, error) {
	for i := range s.inserted {
		if s.inserted[i].ID != extractionID {
			continue
		}
		ideas := []domain.TradeIdea(s.inserted[i].TradeIdeas)
		for j := range ideas {
			if ideas[j].ID == tradeIdeaID {
				ideas[j].DeletedAt = ts
				s.inserted[i].TradeIdeas = ideas
				return s.inserted[i], nil
			}
		}
		return domain.Extraction{}, domain.ErrTradeIdeaNotFound
	}
	return domain.Extraction{}, domain.ErrNotFound
}

type stubLinker struct {
	report domain.LinkReport
	err    error
	synced []string
}

func (s *stubLinker) Sync(_ context.Context, e *domain.Extraction) (domain.LinkReport, error) {
	s.synced = append(s.synced, e.ID)
	return s.report, s.err
}

func newService(repo *stubRepo, linker *stubLinker) *Service {
	svc := New(repo, linker)
	svc.now = func() time.Time {
		return time.Date(2025, 11, 10, 9, 30, 0, 0, time.UTC)
	}
	return svc
}

func ptr(s string) *string { return &s }

func TestCreate_AssignsIDsAndNormalizesDate(t *testing.T) {
	repo := &stubRepo{}
	linker := &stubLinker{report: domain.LinkReport{Linked: 2}}
	svc := newService(repo, linker)

	created, report, err := svc.Create(context.Background(), domain.Extraction{
		Title:         "Japan Q4",
		PublishedDate: ptr("2025/11/09"),
		TradeIdeas: datatypes.NewJSONSlice([]domain.TradeIdea{
			{Recommendation: "Long", Conviction: 7},
			{ID: "ti-fixed", Recommendation: "Short", Conviction: 3},
		}),
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.ID == "" {
		t.Error("extraction id should be assigned")
	}
	if got := *created.PublishedDate; got != "2025-11-09" {
		t.Errorf("published_date = %q, want 2025-11-09", got)
	}

	ideas := []domain.TradeIdea(created.TradeIdeas)
	if ideas[0].ID == "" {
		t.Error("trade idea id should be assigned when blank")
	}
	if ideas[1].ID != "ti-fixed" {
		t.Errorf("existing trade idea id rewritten to %q", ideas[1].ID)
	}
	if report.Linked != 2 {
		t.Errorf("Linked = %d, want 2", report.Linked)
	}
	if len(linker.synced) != 1 || linker.synced[0] != created.ID {
		t.Errorf("linker synced %v, want [%s]", linker.synced, created.ID)
	}
}

func TestCreate_MissingDateDefaultsToToday(t *testing.T) {
	repo := &stubRepo{}
	svc := newService(repo, &stubLinker{})

	created, _, err := svc.Create(context.Background(), domain.Extraction{Title: "Undated note"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if got := *created.PublishedDate; got != "2025-11-10" {
		t.Errorf("published_date = %q, want 2025-11-10", got)
	}
}

func TestCreate_Validation(t *testing.T) {
	svc := newService(&stubRepo{}, &stubLinker{})
	ctx := context.Background()

	tests := []struct {
		name string
		in   domain.Extraction
	}{
		{name: "missing title", in: domain.Extraction{}},
		{
			name: "conviction below range",
			in: domain.Extraction{
				Title:      "Bad idea",
				TradeIdeas: datatypes.NewJSONSlice([]domain.TradeIdea{{Conviction: 0}}),
			},
		},
		{
			name: "conviction above range",
			in: domain.Extraction{
				Title:      "Bad idea",
				TradeIdeas: datatypes.NewJSONSlice([]domain.TradeIdea{{Conviction: 11}}),
			},
		},
		{
			name: "garbage date",
			in:   domain.Extraction{Title: "Bad date", PublishedDate: ptr("eleventh of never")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, err := svc.Create(ctx, tt.in); !errors.Is(err, domain.ErrValidation) {
				t.Errorf("err = %v, want ErrValidation", err)
			}
		})
	}
}

func TestCreate_AcceptsConvictionBounds(t *testing.T) {
	svc := newService(&stubRepo{}, &stubLinker{})
	ctx := context.Background()

	for _, conviction := range []int{1, 10} {
		_, _, err := svc.Create(ctx, domain.Extraction{
			Title: "Boundary idea",
			TradeIdeas: datatypes.NewJSONSlice([]domain.TradeIdea{
				{Recommendation: "Hold", Conviction: conviction},
			}),
		})
		if err != nil {
			t.Errorf("conviction %d: Create = %v, want accepted", conviction, err)
		}
	}
}

func TestCreate_LinkerFailureKeepsRecord(t *testing.T) {
	repo := &stubRepo{}
	linker := &stubLinker{err: errors.New("catalog down")}
	svc := newService(repo, linker)

	created, _, err := svc.Create(context.Background(), domain.Extraction{Title: "Resilient"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if len(repo.inserted) != 1 {
		t.Fatalf("inserted = %d, want 1", len(repo.inserted))
	}
	if repo.inserted[0].ID != created.ID {
		t.Error("persisted record should match the returned one")
	}
}

func TestSoftDelete_SetAndRestore(t *testing.T) {
	repo := &stubRepo{}
	svc := newService(repo, &stubLinker{})
	ctx := context.Background()

	created, _, err := svc.Create(ctx, domain.Extraction{Title: "Ephemeral"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	ts := time.Date(2025, 11, 11, 0, 0, 0, 0, time.UTC)
	deleted, err := svc.SoftDelete(ctx, created.ID, &ts)
	if err != nil {
		t.Fatalf("SoftDelete: %v", err)
	}
	if !deleted.Deleted() {
		t.Error("record should be marked deleted")
	}

	restored, err := svc.SoftDelete(ctx, created.ID, nil)
	if err != nil {
		t.Fatalf("restore: %v", err)
	}
	if restored.Deleted() {
		t.Error("record should be restored")
	}
}

func TestSoftDeleteTradeIdea_NotFound(t *testing.T) {
	repo := &stubRepo{}
	svc := newService(repo, &stubLinker{})
	ctx := context.Background()

	created, _, err := svc.Create(ctx, domain.Extraction{
		Title:      "Host",
		TradeIdeas: datatypes.NewJSONSlice([]domain.TradeIdea{{ID: "ti-1", Conviction: 5}}),
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	ts := time.Now().UTC()
	if _, err := svc.SoftDeleteTradeIdea(ctx, created.ID, "ti-ghost", &ts); !errors.Is(err, domain.ErrTradeIdeaNotFound) {
		t.Errorf("err = %v, want ErrTradeIdeaNotFound", err)
	}
	if _, err := svc.SoftDeleteTradeIdea(ctx, "e-ghost", "ti-1", &ts); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}
