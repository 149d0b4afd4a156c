package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/shelfwatch/backend/internal/domain"
)

// CatalogServiceConfig holds configuration for the catalog service
type CatalogServiceConfig struct {
	SourceSite         string
	ValidCategories    []string
	EnableDebugLogging bool
}

// CatalogService wires the normalizer and reconciler to the catalog store.
// Flow per snapshot: normalize -> look up stored record -> classify ->
// persist the outcome's record. Rejections persist nothing.
type CatalogService struct {
	normalizer *SnapshotNormalizer
	reconciler *Reconciler
	repo       domain.ProductRepository
	sourceSite string
}

// NewCatalogService creates a catalog service with dependencies
func NewCatalogService(
	repo domain.ProductRepository,
	overrides domain.OverrideSource,
	config CatalogServiceConfig,
) *CatalogService {
	parser := NewSizeParser(config.EnableDebugLogging)

	return &CatalogService{
		normalizer: NewSnapshotNormalizer(parser, overrides, config.SourceSite, config.EnableDebugLogging),
		reconciler: NewReconciler(config.ValidCategories, config.EnableDebugLogging),
		repo:       repo,
		sourceSite: config.SourceSite,
	}
}

// ReconcileSnapshot processes one raw snapshot end to end and returns its
// classified outcome. Only store failures return an error; every per-item
// parse problem is a Rejected outcome so a run is never aborted by one bad
// listing.
func (s *CatalogService) ReconcileSnapshot(
	ctx context.Context,
	snap domain.RawSnapshot,
) (domain.ReconciliationOutcome, error) {
	candidate, reason := s.normalizer.Normalize(snap)
	if reason != domain.RejectNone {
		return domain.ReconciliationOutcome{Kind: domain.OutcomeRejected, Reason: reason}, nil
	}

	stored, err := s.repo.Get(ctx, s.sourceSite, candidate.ID)
	if err != nil && !errors.Is(err, domain.ErrProductNotFound) {
		return domain.ReconciliationOutcome{}, fmt.Errorf("lookup %s: %w", candidate.ID, err)
	}

	outcome := s.reconciler.Classify(candidate, stored)

	if err := s.repo.Upsert(ctx, outcome.Record); err != nil {
		return domain.ReconciliationOutcome{}, fmt.Errorf("persist %s: %w", candidate.ID, err)
	}

	return outcome, nil
}

// RunStats counts outcomes over one page of a scrape run
type RunStats struct {
	New          int
	PriceChanged int
	InfoChanged  int
	UpToDate     int
	Rejected     int
}

// Add records one outcome
func (s *RunStats) Add(kind domain.OutcomeKind) {
	switch kind {
	case domain.OutcomeNew:
		s.New++
	case domain.OutcomePriceChanged:
		s.PriceChanged++
	case domain.OutcomeInfoChanged:
		s.InfoChanged++
	case domain.OutcomeAlreadyUpToDate:
		s.UpToDate++
	case domain.OutcomeRejected:
		s.Rejected++
	}
}

// Summary formats the per-page counters the way the run log reports them
func (s *RunStats) Summary() string {
	return fmt.Sprintf("%d new products, %d prices updated, %d info updated, %d already up-to-date",
		s.New, s.PriceChanged, s.InfoChanged, s.UpToDate)
}
