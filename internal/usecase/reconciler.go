package usecase

import (
	"log"
	"math"
	"time"

	"github.com/shelfwatch/backend/internal/domain"
)

// priceChangeThreshold absorbs float noise from price parsing. Genuine
// promotional changes move prices by more than five cents.
const priceChangeThreshold = 0.05

// Reconciler classifies a canonical candidate record against the stored
// record for the same id. It is pure computation: stored records are never
// mutated, and classification is total for every accepted candidate.
type Reconciler struct {
	validCategories    map[string]bool
	enableDebugLogging bool
}

// NewReconciler creates a reconciler with the recognized category vocabulary
func NewReconciler(validCategories []string, enableDebugLogging bool) *Reconciler {
	vocab := make(map[string]bool, len(validCategories))
	for _, c := range validCategories {
		vocab[c] = true
	}
	return &Reconciler{
		validCategories:    vocab,
		enableDebugLogging: enableDebugLogging,
	}
}

// Classify produces exactly one outcome for a (candidate, stored) pair.
// Policy, in order:
//  1. no stored record -> New
//  2. price moved more than the threshold on a different calendar day ->
//     PriceChanged, with the new sample appended to the stored history
//  3. stored category list empty or containing an unrecognized term ->
//     InfoChanged, price and history untouched
//  4. otherwise AlreadyUpToDate, only lastChecked advances
func (r *Reconciler) Classify(candidate, stored *domain.ProductRecord) domain.ReconciliationOutcome {
	if stored == nil {
		if r.enableDebugLogging {
			log.Printf("[RECONCILE] %s (%s) is new", candidate.Name, candidate.ID)
		}
		return domain.ReconciliationOutcome{Kind: domain.OutcomeNew, Record: candidate}
	}

	priceDelta := math.Abs(stored.CurrentPrice - candidate.CurrentPrice)
	sameDay := calendarDay(stored.LastUpdated) == calendarDay(candidate.LastUpdated)

	// Only the first meaningfully different price per day is recorded, so a
	// price flickering within one day cannot flood the history
	if priceDelta > priceChangeThreshold && !sameDay {
		updated := *candidate
		updated.PriceHistory = appendSample(stored.PriceHistory, candidate.PriceHistory[0])

		logPriceChange(stored, candidate.CurrentPrice)
		return domain.ReconciliationOutcome{Kind: domain.OutcomePriceChanged, Record: &updated}
	}

	if !r.categoriesRecognized(stored.Category) {
		log.Printf("  Categories Changed: %-40.40s - %v > %v",
			candidate.Name, stored.Category, candidate.Category)

		updated := *candidate
		updated.PriceHistory = append([]domain.DatedPrice(nil), stored.PriceHistory...)
		updated.LastUpdated = stored.LastUpdated
		return domain.ReconciliationOutcome{Kind: domain.OutcomeInfoChanged, Record: &updated}
	}

	updated := *stored
	updated.PriceHistory = append([]domain.DatedPrice(nil), stored.PriceHistory...)
	updated.LastChecked = candidate.LastChecked
	return domain.ReconciliationOutcome{Kind: domain.OutcomeAlreadyUpToDate, Record: &updated}
}

// categoriesRecognized reports whether every stored category is in the
// recognized vocabulary. An empty list always needs correction.
func (r *Reconciler) categoriesRecognized(categories []string) bool {
	if len(categories) == 0 {
		return false
	}
	for _, c := range categories {
		if !r.validCategories[c] {
			return false
		}
	}
	return true
}

// appendSample extends a history without aliasing the stored slice
func appendSample(history []domain.DatedPrice, sample domain.DatedPrice) []domain.DatedPrice {
	extended := make([]domain.DatedPrice, 0, len(history)+1)
	extended = append(extended, history...)
	return append(extended, sample)
}

// calendarDay collapses a timestamp to its UTC date for day-boundary checks
func calendarDay(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// logPriceChange reports the direction of a detected price move
func logPriceChange(stored *domain.ProductRecord, newPrice float64) {
	direction := "Down"
	if newPrice > stored.CurrentPrice {
		direction = "Up"
	}
	log.Printf("  Price %-4s : %-47.47s | $%.2f > $%.2f",
		direction, stored.Name, stored.CurrentPrice, newPrice)
}
