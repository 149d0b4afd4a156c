package store

import (
	"context"
	"sort"
	"sync"

	"github.com/shelfwatch/backend/internal/domain"
)

// MemoryStore is a thread-safe in-memory product repository. It backs
// dry-run scrapes and tests, where nothing should touch disk.
type MemoryStore struct {
	records map[string]domain.ProductRecord
	mutex   sync.RWMutex
}

// NewMemoryStore creates a new in-memory product store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		records: make(map[string]domain.ProductRecord),
	}
}

func storeKey(sourceSite, id string) string {
	return sourceSite + "|" + id
}

// Get retrieves the stored record for (sourceSite, id)
func (s *MemoryStore) Get(ctx context.Context, sourceSite, id string) (*domain.ProductRecord, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	record, exists := s.records[storeKey(sourceSite, id)]
	if !exists {
		return nil, domain.ErrProductNotFound
	}

	copied := cloneRecord(record)
	return &copied, nil
}

// Upsert inserts or replaces the record for its (sourceSite, id)
func (s *MemoryStore) Upsert(ctx context.Context, record *domain.ProductRecord) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.records[storeKey(record.SourceSite, record.ID)] = cloneRecord(*record)
	return nil
}

// List returns all records for a source site, optionally filtered to those
// carrying the given category
func (s *MemoryStore) List(ctx context.Context, sourceSite, category string) ([]domain.ProductRecord, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	var out []domain.ProductRecord
	for _, record := range s.records {
		if record.SourceSite != sourceSite {
			continue
		}
		if category != "" && !hasCategory(record.Category, category) {
			continue
		}
		out = append(out, cloneRecord(record))
	}
	// Map iteration order is random; keep listings stable across drivers
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// Size returns the current number of stored records (for debugging/monitoring)
func (s *MemoryStore) Size() int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return len(s.records)
}

// cloneRecord copies a record deeply enough that callers can't alias the
// stored history or category slices
func cloneRecord(record domain.ProductRecord) domain.ProductRecord {
	copied := record
	copied.Category = append([]string(nil), record.Category...)
	copied.PriceHistory = append([]domain.DatedPrice(nil), record.PriceHistory...)
	if record.UnitPrice != nil {
		v := *record.UnitPrice
		copied.UnitPrice = &v
	}
	if record.OriginalUnitQuantity != nil {
		v := *record.OriginalUnitQuantity
		copied.OriginalUnitQuantity = &v
	}
	return copied
}

func hasCategory(categories []string, category string) bool {
	for _, c := range categories {
		if c == category {
			return true
		}
	}
	return false
}
