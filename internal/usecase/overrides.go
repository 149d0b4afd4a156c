package usecase

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/shelfwatch/backend/internal/domain"
)

// OverrideResolver answers manual per-product corrections from an
// operator-curated table. Lookups are pure reads; the table is loaded once
// and never mutated.
type OverrideResolver struct {
	table map[string]domain.Override
}

// NewOverrideResolver creates a resolver over the given table. A nil table
// behaves as an empty one.
func NewOverrideResolver(table map[string]domain.Override) *OverrideResolver {
	if table == nil {
		table = map[string]domain.Override{}
	}
	return &OverrideResolver{table: table}
}

// Lookup returns the override for a product id, if one exists
func (r *OverrideResolver) Lookup(id string) (domain.Override, bool) {
	o, ok := r.table[id]
	return o, ok
}

// LoadOverrideFile reads an override table from a JSON file mapping product
// id to override. A missing path means no overrides are configured.
func LoadOverrideFile(path string) (map[string]domain.Override, error) {
	if path == "" {
		return map[string]domain.Override{}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read override file: %w", err)
	}

	var table map[string]domain.Override
	if err := json.Unmarshal(data, &table); err != nil {
		return nil, fmt.Errorf("parse override file %s: %w", path, err)
	}

	return table, nil
}
