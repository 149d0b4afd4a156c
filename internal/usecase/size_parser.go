package usecase

import (
	"log"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Package-level compiled regex patterns for size normalization
var (
	// Lowercase litre marker directly after a digit, e.g. "2l", "375ml" is left alone
	litreCaseRegex = regexp.MustCompile(`(\d)l\b`)

	// Sub-kilogram sizes written as decimal kg, e.g. "0.25kg"
	decimalKgRegex = regexp.MustCompile(`^0\.(\d+)\s*kg$`)

	// Sub-litre sizes written as decimal litres, e.g. "0.33L"
	decimalLitreRegex = regexp.MustCompile(`^0\.(\d+)\s*L$`)
)

// UnitPricing is the derived price-per-base-unit triple. Quantity is the
// amount in the size string's own unit (e.g. 500 for "500g"), kept so the
// original listing can be reconstructed.
type UnitPricing struct {
	UnitPrice float64
	UnitName  string
	Quantity  float64
}

// unitRule is a single pattern -> derivation step. Rules are tried in order
// and the first match wins; no match means no derived unit price.
type unitRule struct {
	pattern *regexp.Regexp
	derive  func(quantity, price float64) *UnitPricing
}

// Derivation rules, most specific first. Gram and millilitre quantities are
// converted to kilograms/litres so unit prices compare across pack sizes.
var unitRules = []unitRule{
	{
		// Bulk items priced per kilogram, no quantity on the label
		pattern: regexp.MustCompile(`^per kg$`),
		derive: func(_, price float64) *UnitPricing {
			return &UnitPricing{UnitPrice: price, UnitName: "kg", Quantity: 1}
		},
	},
	{
		pattern: regexp.MustCompile(`(\d+(?:\.\d+)?)\s*kg\b`),
		derive: func(q, price float64) *UnitPricing {
			return &UnitPricing{UnitPrice: roundCents(price / q), UnitName: "kg", Quantity: q}
		},
	},
	{
		pattern: regexp.MustCompile(`(\d+(?:\.\d+)?)\s*g\b`),
		derive: func(q, price float64) *UnitPricing {
			return &UnitPricing{UnitPrice: roundCents(price / (q / 1000)), UnitName: "kg", Quantity: q}
		},
	},
	{
		pattern: regexp.MustCompile(`(\d+(?:\.\d+)?)\s*L\b`),
		derive: func(q, price float64) *UnitPricing {
			return &UnitPricing{UnitPrice: roundCents(price / q), UnitName: "L", Quantity: q}
		},
	},
	{
		pattern: regexp.MustCompile(`(\d+(?:\.\d+)?)\s*ml\b`),
		derive: func(q, price float64) *UnitPricing {
			return &UnitPricing{UnitPrice: roundCents(price / (q / 1000)), UnitName: "L", Quantity: q}
		},
	},
	{
		// Discrete multi-packs, e.g. "6pk", "12 pack"
		pattern: regexp.MustCompile(`(?i)(\d+)\s*(?:pk|pack)\b`),
		derive: func(q, price float64) *UnitPricing {
			return &UnitPricing{UnitPrice: roundCents(price / q), UnitName: "each", Quantity: q}
		},
	},
	{
		pattern: regexp.MustCompile(`(?i)^(?:each|ea)$`),
		derive: func(_, price float64) *UnitPricing {
			return &UnitPricing{UnitPrice: price, UnitName: "each", Quantity: 1}
		},
	},
}

// SizeParser normalizes free-text size strings and derives unit prices
type SizeParser struct {
	enableDebugLogging bool
}

// NewSizeParser creates a new size parser
func NewSizeParser(enableDebugLogging bool) *SizeParser {
	return &SizeParser{enableDebugLogging: enableDebugLogging}
}

// NormalizeSize rewrites a raw size string into its canonical display form.
// Malformed input is returned trimmed but otherwise untouched; this never fails.
func (p *SizeParser) NormalizeSize(raw string) string {
	size := strings.TrimSpace(raw)
	if size == "" {
		return ""
	}

	// Capitalize litres when the marker follows a digit ("2l" -> "2L")
	size = litreCaseRegex.ReplaceAllString(size, "${1}L")

	// Bulk items are labelled with a bare unit
	if size == "kg" {
		return "per kg"
	}

	// Rewrite sub-kilogram decimal sizes to whole grams ("0.25kg" -> "250g")
	if m := decimalKgRegex.FindStringSubmatch(size); m != nil {
		if kg, err := strconv.ParseFloat("0."+m[1], 64); err == nil {
			size = strconv.FormatFloat(math.Round(kg*1000), 'f', -1, 64) + "g"
		}
	}

	// Rewrite sub-litre decimal sizes to whole millilitres ("0.33L" -> "330ml")
	if m := decimalLitreRegex.FindStringSubmatch(size); m != nil {
		if litres, err := strconv.ParseFloat("0."+m[1], 64); err == nil {
			size = strconv.FormatFloat(math.Round(litres*1000), 'f', -1, 64) + "ml"
		}
	}

	return size
}

// DeriveUnitPricing extracts a quantity from the canonical size string and
// computes the price per base unit (kg, L or each). A size with no
// recognizable quantity yields nil, which is expected and not an error.
func (p *SizeParser) DeriveUnitPricing(size string, currentPrice float64) *UnitPricing {
	if size == "" || currentPrice < 0 {
		return nil
	}

	for _, rule := range unitRules {
		m := rule.pattern.FindStringSubmatch(size)
		if m == nil {
			continue
		}

		quantity := 1.0
		if len(m) > 1 {
			q, err := strconv.ParseFloat(m[1], 64)
			if err != nil || q <= 0 {
				// Unusable quantity; fall through to the next rule
				continue
			}
			quantity = q
		}

		pricing := rule.derive(quantity, currentPrice)
		if p.enableDebugLogging {
			log.Printf("[SIZE] %q @ $%.2f -> $%.2f /%s (qty %g)",
				size, currentPrice, pricing.UnitPrice, pricing.UnitName, pricing.Quantity)
		}
		return pricing
	}

	if p.enableDebugLogging {
		log.Printf("[SIZE] %q has no recognizable quantity, skipping unit price", size)
	}
	return nil
}

// roundCents rounds a derived unit price to whole cents
func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
