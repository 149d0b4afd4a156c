package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/shelfwatch/backend/config"
	"github.com/shelfwatch/backend/internal/domain"
	"github.com/shelfwatch/backend/internal/infrastructure/scrape"
	"github.com/shelfwatch/backend/internal/infrastructure/store"
	"github.com/shelfwatch/backend/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	runID := uuid.New().String()
	log.Printf("Starting ShelfWatch scrape run %s", runID)
	log.Printf("Source Site: %s", cfg.Scraper.SourceSite)
	log.Printf("Dry Run: %v", cfg.Scraper.DryRun)

	// Graceful shutdown on SIGINT/SIGTERM; finishes the in-flight item
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Initialize the catalog store. Dry runs never touch the real store.
	var repo domain.ProductRepository
	if cfg.Scraper.DryRun || cfg.Store.Driver == "memory" {
		repo = store.NewMemoryStore()
	} else {
		sqliteStore, err := store.OpenSQLite(cfg.Store.SQLitePath)
		if err != nil {
			log.Fatalf("Failed to open catalog store %s: %v", cfg.Store.SQLitePath, err)
		}
		defer sqliteStore.Close()
		log.Printf("Catalog store: %s", cfg.Store.SQLitePath)
		repo = sqliteStore
	}

	// Load the operator override table
	overrideTable, err := usecase.LoadOverrideFile(cfg.Overrides.File)
	if err != nil {
		log.Fatalf("Failed to load overrides from %s: %v", cfg.Overrides.File, err)
	}
	if len(overrideTable) > 0 {
		log.Printf("Loaded %d product overrides", len(overrideTable))
	}

	service := usecase.NewCatalogService(
		repo,
		usecase.NewOverrideResolver(overrideTable),
		usecase.CatalogServiceConfig{
			SourceSite:         cfg.Scraper.SourceSite,
			ValidCategories:    cfg.Catalog.ValidCategories,
			EnableDebugLogging: cfg.Scraper.Debug,
		},
	)

	// Read the pages to visit
	pages, err := scrape.ReadURLsFile(cfg.Scraper.URLsFile, cfg.Scraper.SourceSite)
	if err != nil {
		log.Fatalf("Failed to read URLs from %s: %v", cfg.Scraper.URLsFile, err)
	}
	if len(pages) == 0 {
		log.Fatalf("No usable URLs in %s for site %s", cfg.Scraper.URLsFile, cfg.Scraper.SourceSite)
	}
	log.Printf("Visiting %d listing pages", len(pages))

	var source domain.SnapshotSource = scrape.NewCollector(cfg.Scraper.Selectors, cfg.Scraper.UserAgent)

	// Politeness limiters: a long gap between pages, a short one between items
	pageLimiter := rate.NewLimiter(rate.Every(cfg.Scraper.PageDelay), 1)
	itemLimiter := rate.NewLimiter(rate.Every(cfg.Scraper.ProductDelay), 1)

	var total usecase.RunStats
	for _, page := range pages {
		if err := pageLimiter.Wait(ctx); err != nil {
			log.Printf("Run interrupted: %v", err)
			break
		}

		log.Printf("Scraping %s (%s)", page.URL, page.Category)
		snapshots, err := source.Fetch(ctx, page.URL)
		if err != nil {
			log.Printf("Failed to fetch %s: %v", page.URL, err)
			continue
		}

		stats := processPage(ctx, service, itemLimiter, snapshots, page.Category, cfg.Scraper.DryRun)
		log.Printf("%s: %s", page.Category, stats.Summary())

		total.New += stats.New
		total.PriceChanged += stats.PriceChanged
		total.InfoChanged += stats.InfoChanged
		total.UpToDate += stats.UpToDate
		total.Rejected += stats.Rejected
	}

	log.Printf("Run %s complete: %s (%d rejected)", runID, total.Summary(), total.Rejected)
}

// processPage reconciles every snapshot from one listing page, tagging each
// with the page's category before it reaches the normalizer.
func processPage(
	ctx context.Context,
	service *usecase.CatalogService,
	limiter *rate.Limiter,
	snapshots []domain.RawSnapshot,
	category string,
	dryRun bool,
) usecase.RunStats {
	var stats usecase.RunStats

	for _, snap := range snapshots {
		if err := limiter.Wait(ctx); err != nil {
			log.Printf("Page interrupted: %v", err)
			return stats
		}

		snap.CategoryHints = []string{category}

		outcome, err := service.ReconcileSnapshot(ctx, snap)
		if err != nil {
			log.Printf("Failed to reconcile %q: %v", snap.Name, err)
			continue
		}
		stats.Add(outcome.Kind)

		if dryRun && outcome.Record != nil {
			printRow(outcome.Record)
		}
	}

	return stats
}

// printRow writes one fixed-width product line for dry-run inspection
func printRow(r *domain.ProductRecord) {
	unit := ""
	if r.HasUnitPricing() {
		unit = fmt.Sprintf("$%.2f/%s", *r.UnitPrice, r.UnitName)
	}
	fmt.Printf("%-10s | %-60s | %-10s | $%7.2f | %s\n",
		r.ID, truncate(r.Name, 60), truncate(r.Size, 10), r.CurrentPrice, unit)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

func init() {
	// Set log flags for better debugging
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.SetOutput(os.Stdout)
}
