package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/shelfwatch/backend/internal/domain"
)

const schema = `
CREATE TABLE IF NOT EXISTS products (
  id TEXT NOT NULL,
  source_site TEXT NOT NULL,
  name TEXT NOT NULL,
  size TEXT,
  current_price REAL NOT NULL,
  category TEXT NOT NULL,      -- JSON array as text
  price_history TEXT NOT NULL, -- JSON array as text
  last_updated TEXT NOT NULL,
  last_checked TEXT NOT NULL,
  unit_price REAL,
  unit_name TEXT,
  original_unit_quantity REAL,
  PRIMARY KEY (source_site, id)
);
`

// SQLiteStore is the persisted product repository backed by SQLite.
// Category and price history are stored as JSON text columns; timestamps
// as RFC 3339 strings.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens (creating if needed) the catalog database at path
func OpenSQLite(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("%w: open sqlite %s: %v", domain.ErrStoreUnavailable, path, err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: create products table: %v", domain.ErrStoreUnavailable, err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close releases the underlying database handle
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Get retrieves the stored record for (sourceSite, id)
func (s *SQLiteStore) Get(ctx context.Context, sourceSite, id string) (*domain.ProductRecord, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, source_site, name, size, current_price, category, price_history,
		       last_updated, last_checked, unit_price, unit_name, original_unit_quantity
		FROM products WHERE source_site = ? AND id = ?`,
		sourceSite, id,
	)

	record, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrProductNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get product %s/%s: %w", sourceSite, id, err)
	}
	return record, nil
}

// Upsert inserts or replaces the record for its (sourceSite, id)
func (s *SQLiteStore) Upsert(ctx context.Context, record *domain.ProductRecord) error {
	categoryJSON, err := json.Marshal(record.Category)
	if err != nil {
		return fmt.Errorf("marshal category for %s: %w", record.ID, err)
	}
	historyJSON, err := json.Marshal(record.PriceHistory)
	if err != nil {
		return fmt.Errorf("marshal price history for %s: %w", record.ID, err)
	}

	var unitPrice, quantity sql.NullFloat64
	var unitName sql.NullString
	if record.UnitPrice != nil {
		unitPrice = sql.NullFloat64{Float64: *record.UnitPrice, Valid: true}
		unitName = sql.NullString{String: record.UnitName, Valid: true}
		quantity = sql.NullFloat64{Float64: *record.OriginalUnitQuantity, Valid: true}
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO products (id, source_site, name, size, current_price, category,
		                      price_history, last_updated, last_checked,
		                      unit_price, unit_name, original_unit_quantity)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(source_site, id) DO UPDATE SET
		  name = excluded.name,
		  size = excluded.size,
		  current_price = excluded.current_price,
		  category = excluded.category,
		  price_history = excluded.price_history,
		  last_updated = excluded.last_updated,
		  last_checked = excluded.last_checked,
		  unit_price = excluded.unit_price,
		  unit_name = excluded.unit_name,
		  original_unit_quantity = excluded.original_unit_quantity`,
		record.ID,
		record.SourceSite,
		record.Name,
		record.Size,
		record.CurrentPrice,
		string(categoryJSON),
		string(historyJSON),
		record.LastUpdated.UTC().Format(time.RFC3339),
		record.LastChecked.UTC().Format(time.RFC3339),
		unitPrice,
		unitName,
		quantity,
	)
	if err != nil {
		return fmt.Errorf("upsert product %s: %w", record.ID, err)
	}
	return nil
}

// List returns all records for a source site, optionally filtered by category
func (s *SQLiteStore) List(ctx context.Context, sourceSite, category string) ([]domain.ProductRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, source_site, name, size, current_price, category, price_history,
		       last_updated, last_checked, unit_price, unit_name, original_unit_quantity
		FROM products WHERE source_site = ? ORDER BY name`,
		sourceSite,
	)
	if err != nil {
		return nil, fmt.Errorf("list products for %s: %w", sourceSite, err)
	}
	defer rows.Close()

	var out []domain.ProductRecord
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product row: %w", err)
		}
		if category != "" && !hasCategory(record.Category, category) {
			continue
		}
		out = append(out, *record)
	}
	return out, rows.Err()
}

// scanner covers both *sql.Row and *sql.Rows
type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(row scanner) (*domain.ProductRecord, error) {
	var (
		record                      domain.ProductRecord
		categoryJSON, historyJSON   string
		lastUpdatedRaw, lastChecked string
		unitPrice, quantity         sql.NullFloat64
		unitName                    sql.NullString
	)

	err := row.Scan(
		&record.ID, &record.SourceSite, &record.Name, &record.Size,
		&record.CurrentPrice, &categoryJSON, &historyJSON,
		&lastUpdatedRaw, &lastChecked,
		&unitPrice, &unitName, &quantity,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(categoryJSON), &record.Category); err != nil {
		return nil, fmt.Errorf("decode category: %w", err)
	}
	if err := json.Unmarshal([]byte(historyJSON), &record.PriceHistory); err != nil {
		return nil, fmt.Errorf("decode price history: %w", err)
	}

	if record.LastUpdated, err = time.Parse(time.RFC3339, lastUpdatedRaw); err != nil {
		return nil, fmt.Errorf("decode last_updated: %w", err)
	}
	if record.LastChecked, err = time.Parse(time.RFC3339, lastChecked); err != nil {
		return nil, fmt.Errorf("decode last_checked: %w", err)
	}

	if unitPrice.Valid {
		record.UnitPrice = &unitPrice.Float64
		record.UnitName = unitName.String
		record.OriginalUnitQuantity = &quantity.Float64
	}

	return &record, nil
}
