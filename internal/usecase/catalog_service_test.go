package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/shelfwatch/backend/internal/domain"
)

// MockProductRepository is a mock implementation of domain.ProductRepository
type MockProductRepository struct {
	records      map[string]*domain.ProductRecord
	getError     error
	upsertError  error
	upsertCalled bool
}

func NewMockProductRepository() *MockProductRepository {
	return &MockProductRepository{
		records: make(map[string]*domain.ProductRecord),
	}
}

func (m *MockProductRepository) Get(ctx context.Context, sourceSite, id string) (*domain.ProductRecord, error) {
	if m.getError != nil {
		return nil, m.getError
	}
	if record, ok := m.records[sourceSite+"|"+id]; ok {
		copied := *record
		return &copied, nil
	}
	return nil, domain.ErrProductNotFound
}

func (m *MockProductRepository) Upsert(ctx context.Context, record *domain.ProductRecord) error {
	m.upsertCalled = true
	if m.upsertError != nil {
		return m.upsertError
	}
	copied := *record
	m.records[record.SourceSite+"|"+record.ID] = &copied
	return nil
}

func (m *MockProductRepository) List(ctx context.Context, sourceSite, category string) ([]domain.ProductRecord, error) {
	var out []domain.ProductRecord
	for _, r := range m.records {
		if r.SourceSite == sourceSite {
			out = append(out, *r)
		}
	}
	return out, nil
}

func newTestService(repo domain.ProductRepository, overrides map[string]domain.Override) *CatalogService {
	return NewCatalogService(repo, NewOverrideResolver(overrides), CatalogServiceConfig{
		SourceSite:      testSourceSite,
		ValidCategories: testCategories,
	})
}

func TestReconcileSnapshot_NewProductPersisted(t *testing.T) {
	repo := NewMockProductRepository()
	svc := newTestService(repo, nil)
	ctx := context.Background()

	outcome, err := svc.ReconcileSnapshot(ctx, validSnapshot())
	if err != nil {
		t.Fatalf("ReconcileSnapshot() error = %v", err)
	}
	if outcome.Kind != domain.OutcomeNew {
		t.Fatalf("Kind = %v, want New", outcome.Kind)
	}

	stored, err := repo.Get(ctx, testSourceSite, "P5001376")
	if err != nil {
		t.Fatalf("Get() after reconcile error = %v", err)
	}
	if len(stored.PriceHistory) != 1 {
		t.Errorf("persisted history length = %d, want 1", len(stored.PriceHistory))
	}
}

func TestReconcileSnapshot_RejectionPersistsNothing(t *testing.T) {
	repo := NewMockProductRepository()
	svc := newTestService(repo, nil)

	snap := validSnapshot()
	snap.Name = ""

	outcome, err := svc.ReconcileSnapshot(context.Background(), snap)
	if err != nil {
		t.Fatalf("ReconcileSnapshot() error = %v", err)
	}
	if outcome.Kind != domain.OutcomeRejected {
		t.Errorf("Kind = %v, want Rejected", outcome.Kind)
	}
	if outcome.Record != nil {
		t.Errorf("Record = %+v, want nil for rejection", outcome.Record)
	}
	if repo.upsertCalled {
		t.Error("Upsert was called for a rejected snapshot")
	}
}

func TestReconcileSnapshot_OverriddenInvalidAlwaysRejected(t *testing.T) {
	repo := NewMockProductRepository()
	svc := newTestService(repo, map[string]domain.Override{
		"P5001376": {Category: domain.InvalidCategory},
	})

	for i := 0; i < 3; i++ {
		outcome, err := svc.ReconcileSnapshot(context.Background(), validSnapshot())
		if err != nil {
			t.Fatalf("ReconcileSnapshot() error = %v", err)
		}
		if outcome.Kind != domain.OutcomeRejected || outcome.Reason != domain.RejectOverridden {
			t.Errorf("outcome = %v/%v, want Rejected/RejectOverridden", outcome.Kind, outcome.Reason)
		}
	}
}

func TestReconcileSnapshot_SecondPassUpToDate(t *testing.T) {
	repo := NewMockProductRepository()
	svc := newTestService(repo, nil)
	ctx := context.Background()

	first, err := svc.ReconcileSnapshot(ctx, validSnapshot())
	if err != nil {
		t.Fatalf("first ReconcileSnapshot() error = %v", err)
	}
	if first.Kind != domain.OutcomeNew {
		t.Fatalf("first Kind = %v, want New", first.Kind)
	}

	second, err := svc.ReconcileSnapshot(ctx, validSnapshot())
	if err != nil {
		t.Fatalf("second ReconcileSnapshot() error = %v", err)
	}
	if second.Kind != domain.OutcomeAlreadyUpToDate {
		t.Errorf("second Kind = %v, want AlreadyUpToDate", second.Kind)
	}
	if len(second.Record.PriceHistory) != 1 {
		t.Errorf("history length = %d after repeat scrape, want 1", len(second.Record.PriceHistory))
	}
}

func TestReconcileSnapshot_PriceChangeAcrossDays(t *testing.T) {
	repo := NewMockProductRepository()
	svc := newTestService(repo, nil)
	ctx := context.Background()

	day1 := validSnapshot()
	day1.ObservedAt = time.Date(2026, 8, 29, 9, 0, 0, 0, time.UTC)
	if _, err := svc.ReconcileSnapshot(ctx, day1); err != nil {
		t.Fatalf("day1 ReconcileSnapshot() error = %v", err)
	}

	day2 := validSnapshot()
	day2.ObservedAt = time.Date(2026, 8, 30, 9, 0, 0, 0, time.UTC)
	day2.DollarText = "7"
	day2.CentText = "99"

	outcome, err := svc.ReconcileSnapshot(ctx, day2)
	if err != nil {
		t.Fatalf("day2 ReconcileSnapshot() error = %v", err)
	}
	if outcome.Kind != domain.OutcomePriceChanged {
		t.Fatalf("Kind = %v, want PriceChanged", outcome.Kind)
	}

	stored, _ := repo.Get(ctx, testSourceSite, "P5001376")
	if len(stored.PriceHistory) != 2 {
		t.Fatalf("persisted history length = %d, want 2", len(stored.PriceHistory))
	}
	if stored.PriceHistory[1].Price != 7.99 {
		t.Errorf("newest persisted price = %v, want 7.99", stored.PriceHistory[1].Price)
	}
	if stored.CurrentPrice != 7.99 {
		t.Errorf("CurrentPrice = %v, want 7.99", stored.CurrentPrice)
	}
}

func TestRunStats(t *testing.T) {
	var stats RunStats
	for _, kind := range []domain.OutcomeKind{
		domain.OutcomeNew, domain.OutcomeNew,
		domain.OutcomePriceChanged,
		domain.OutcomeInfoChanged,
		domain.OutcomeAlreadyUpToDate,
		domain.OutcomeRejected,
	} {
		stats.Add(kind)
	}

	want := "2 new products, 1 prices updated, 1 info updated, 1 already up-to-date"
	if got := stats.Summary(); got != want {
		t.Errorf("Summary() = %q, want %q", got, want)
	}
	if stats.Rejected != 1 {
		t.Errorf("Rejected = %d, want 1", stats.Rejected)
	}
}
