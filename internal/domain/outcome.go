package domain

// OutcomeKind classifies the result of reconciling a scraped candidate
// against the stored catalog record for the same id.
type OutcomeKind int

const (
	// OutcomeNew means no stored record existed; the candidate is persisted as-is
	OutcomeNew OutcomeKind = iota

	// OutcomePriceChanged means the price moved by more than the noise
	// threshold on a new calendar day; a history sample was appended
	OutcomePriceChanged

	// OutcomeInfoChanged means price and history are untouched but
	// category/metadata were corrected
	OutcomeInfoChanged

	// OutcomeAlreadyUpToDate means only lastChecked advanced
	OutcomeAlreadyUpToDate

	// OutcomeRejected means the snapshot never became a valid candidate;
	// nothing is persisted
	OutcomeRejected
)

// String returns a short human-readable name for logging
func (k OutcomeKind) String() string {
	switch k {
	case OutcomeNew:
		return "New"
	case OutcomePriceChanged:
		return "PriceChanged"
	case OutcomeInfoChanged:
		return "InfoChanged"
	case OutcomeAlreadyUpToDate:
		return "AlreadyUpToDate"
	case OutcomeRejected:
		return "Rejected"
	default:
		return "Unknown"
	}
}

// RejectReason distinguishes why a snapshot was rejected, so operator-directed
// exclusions can be told apart from scraping defects in the logs.
type RejectReason int

const (
	RejectNone RejectReason = iota

	// RejectMissingName - no product name could be extracted
	RejectMissingName

	// RejectNoPrice - the listing had no price at all; rejected silently
	RejectNoPrice

	// RejectBadPrice - price text was present but unparseable
	RejectBadPrice

	// RejectBadID - no product id could be derived from the image URL
	RejectBadID

	// RejectOverridden - an operator override marked the product invalid
	RejectOverridden

	// RejectIncomplete - the candidate failed final validation
	RejectIncomplete
)

// ReconciliationOutcome is the engine's single result type. Record is set
// for every kind except OutcomeRejected; Reason is set only for rejections.
type ReconciliationOutcome struct {
	Kind   OutcomeKind
	Record *ProductRecord
	Reason RejectReason
}
