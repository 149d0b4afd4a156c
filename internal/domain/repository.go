package domain

import "context"

// ProductRepository defines the interface for catalog persistence.
// Lookups are always by (sourceSite, id). The engine itself performs no
// I/O; callers must serialize read-reconcile-persist per id.
type ProductRepository interface {
	Get(ctx context.Context, sourceSite, id string) (*ProductRecord, error)
	Upsert(ctx context.Context, record *ProductRecord) error
	List(ctx context.Context, sourceSite, category string) ([]ProductRecord, error)
}

// OverrideSource defines the interface for operator-curated product
// corrections. Lookup is a pure table read.
type OverrideSource interface {
	Lookup(id string) (Override, bool)
}

// SnapshotSource defines the interface for anything that can produce raw
// product snapshots from a listing page (HTML fetcher, fixture file, ...).
type SnapshotSource interface {
	Fetch(ctx context.Context, pageURL string) ([]RawSnapshot, error)
}
