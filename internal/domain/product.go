package domain

import "time"

// DatedPrice is a single price observation in a product's history
type DatedPrice struct {
	Date  time.Time `json:"date"`
	Price float64   `json:"price"`
}

// ProductRecord is the canonical persisted form of a scraped product.
// The ID is derived from the product image filename and is unique per
// source site. UnitPrice, UnitName and OriginalUnitQuantity are jointly
// present or jointly absent.
type ProductRecord struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	Size         string       `json:"size,omitempty"`
	CurrentPrice float64      `json:"currentPrice"`
	Category     []string     `json:"category"`
	SourceSite   string       `json:"sourceSite"`
	PriceHistory []DatedPrice `json:"priceHistory"`
	LastUpdated  time.Time    `json:"lastUpdated"`
	LastChecked  time.Time    `json:"lastChecked"`

	UnitPrice            *float64 `json:"unitPrice,omitempty"`
	UnitName             string   `json:"unitName,omitempty"`
	OriginalUnitQuantity *float64 `json:"originalUnitQuantity,omitempty"`
}

// HasUnitPricing reports whether the derived unit-price triple is present
func (p *ProductRecord) HasUnitPricing() bool {
	return p.UnitPrice != nil
}

// RawSnapshot is the unvalidated set of fields extracted from a single
// scraped product listing, plus the wall-clock time it was observed.
// Dollar and cent price components are kept as the raw text the page shows.
type RawSnapshot struct {
	Name          string
	SizeText      string
	DollarText    string
	CentText      string
	CategoryHints []string
	ImageURL      string
	ObservedAt    time.Time
}

// Override is an operator-supplied correction keyed by product id.
// A Category of "invalid" marks the product as one to reject outright.
type Override struct {
	Size     string `json:"size,omitempty"`
	Category string `json:"category,omitempty"`
}

// InvalidCategory is the override sentinel that rejects a product
const InvalidCategory = "invalid"
