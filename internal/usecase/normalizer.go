package usecase

import (
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/shelfwatch/backend/internal/domain"
)

// SnapshotNormalizer turns raw scraped fields into a canonical candidate
// ProductRecord, or rejects the snapshot. Rejections never abort a scrape
// run; the caller just moves on to the next listing.
type SnapshotNormalizer struct {
	parser             *SizeParser
	overrides          domain.OverrideSource
	sourceSite         string
	enableDebugLogging bool
}

// NewSnapshotNormalizer creates a normalizer for one source site
func NewSnapshotNormalizer(
	parser *SizeParser,
	overrides domain.OverrideSource,
	sourceSite string,
	enableDebugLogging bool,
) *SnapshotNormalizer {
	return &SnapshotNormalizer{
		parser:             parser,
		overrides:          overrides,
		sourceSite:         sourceSite,
		enableDebugLogging: enableDebugLogging,
	}
}

// Normalize validates and canonicalizes a raw snapshot. On success the
// returned record carries a freshly minted single-sample price history and
// RejectNone; on failure the record is nil and the reason says why.
func (n *SnapshotNormalizer) Normalize(snap domain.RawSnapshot) (*domain.ProductRecord, domain.RejectReason) {
	name := strings.TrimSpace(snap.Name)
	if name == "" {
		log.Printf("[NORMALIZE] rejected: no product name (image %s)", snap.ImageURL)
		return nil, domain.RejectMissingName
	}

	price, reason := parsePrice(snap.DollarText, snap.CentText)
	if reason != domain.RejectNone {
		if reason == domain.RejectBadPrice {
			log.Printf("[NORMALIZE] %s - rejected: unparseable price %q.%q",
				name, snap.DollarText, snap.CentText)
		}
		// A listing with no price at all is skipped without noise
		return nil, reason
	}

	id := ProductIDFromImageURL(snap.ImageURL)
	if id == "" {
		log.Printf("[NORMALIZE] %s - rejected: no product id derivable from image URL %q",
			name, snap.ImageURL)
		return nil, domain.RejectBadID
	}

	size := n.parser.NormalizeSize(snap.SizeText)
	category := append([]string(nil), snap.CategoryHints...)

	// Operator overrides take precedence over anything scraped
	if override, ok := n.overrides.Lookup(id); ok {
		if override.Category == domain.InvalidCategory {
			log.Printf("[NORMALIZE] %s (%s) - rejected: overridden as invalid by operator", name, id)
			return nil, domain.RejectOverridden
		}
		if override.Size != "" {
			size = override.Size
		}
		if override.Category != "" {
			category = []string{override.Category}
		}
	}

	// Truncating to the hour makes re-scrapes within the same hour idempotent
	observed := snap.ObservedAt.UTC().Truncate(time.Hour)

	record := &domain.ProductRecord{
		ID:           id,
		Name:         name,
		Size:         size,
		CurrentPrice: price,
		Category:     category,
		SourceSite:   n.sourceSite,
		PriceHistory: []domain.DatedPrice{{Date: observed, Price: price}},
		LastUpdated:  observed,
		LastChecked:  observed,
	}

	if pricing := n.parser.DeriveUnitPricing(size, price); pricing != nil {
		unitPrice := pricing.UnitPrice
		quantity := pricing.Quantity
		record.UnitPrice = &unitPrice
		record.UnitName = pricing.UnitName
		record.OriginalUnitQuantity = &quantity
	}

	if !isValidCandidate(record) {
		log.Printf("[NORMALIZE] %s (%s) - rejected: incomplete candidate", name, id)
		return nil, domain.RejectIncomplete
	}

	if n.enableDebugLogging {
		log.Printf("[NORMALIZE] %s | %s | %s | $%.2f | %v", id, name, size, price, category)
	}
	return record, domain.RejectNone
}

// parsePrice combines the dollar and cent texts into a non-negative price.
// An entirely absent price is the quiet RejectNoPrice; anything else that
// fails to parse is RejectBadPrice.
func parsePrice(dollarText, centText string) (float64, domain.RejectReason) {
	dollars := strings.TrimSpace(dollarText)
	cents := strings.TrimSpace(centText)

	if dollars == "" && cents == "" {
		return 0, domain.RejectNoPrice
	}
	if dollars == "" {
		dollars = "0"
	}
	if cents == "" {
		cents = "0"
	}

	price, err := strconv.ParseFloat(dollars+"."+cents, 64)
	if err != nil || price < 0 {
		return 0, domain.RejectBadPrice
	}
	return price, domain.RejectNone
}

// ProductIDFromImageURL derives the stable product id from the image
// filename: the last path segment with query params and extension stripped,
// prefixed with "P".
func ProductIDFromImageURL(imageURL string) string {
	if imageURL == "" {
		return ""
	}

	segment := imageURL
	if idx := strings.LastIndex(segment, "/"); idx >= 0 {
		segment = segment[idx+1:]
	}
	if idx := strings.Index(segment, "?"); idx >= 0 {
		segment = segment[:idx]
	}
	if idx := strings.Index(segment, "."); idx >= 0 {
		segment = segment[:idx]
	}

	if segment == "" {
		return ""
	}
	return "P" + segment
}

// isValidCandidate is the final gate before a candidate leaves the normalizer
func isValidCandidate(record *domain.ProductRecord) bool {
	return record.Name != "" &&
		record.ID != "" &&
		record.CurrentPrice >= 0 &&
		len(record.Category) > 0
}
