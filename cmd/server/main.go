package main

import (
	"fmt"
	"log"
	"os"

	"github.com/shelfwatch/backend/config"
	httpDelivery "github.com/shelfwatch/backend/internal/delivery/http"
	"github.com/shelfwatch/backend/internal/domain"
	"github.com/shelfwatch/backend/internal/infrastructure/store"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Printf("Starting ShelfWatch Backend v1.0.0")
	log.Printf("Environment: %s", cfg.Server.Environment)
	log.Printf("Port: %s", cfg.Server.Port)
	log.Printf("Store Driver: %s", cfg.Store.Driver)
	log.Printf("Source Site: %s", cfg.Scraper.SourceSite)

	// Initialize the catalog store
	var repo domain.ProductRepository
	switch cfg.Store.Driver {
	case "sqlite":
		sqliteStore, err := store.OpenSQLite(cfg.Store.SQLitePath)
		if err != nil {
			log.Fatalf("Failed to open catalog store %s: %v", cfg.Store.SQLitePath, err)
		}
		defer sqliteStore.Close()
		log.Printf("Catalog store: %s", cfg.Store.SQLitePath)
		repo = sqliteStore
	default:
		log.Printf("WARNING: using in-memory catalog store - data will not survive restarts")
		repo = store.NewMemoryStore()
	}

	// Create HTTP handler with dependencies
	handler := httpDelivery.NewHandler(repo, cfg.Scraper.SourceSite)

	// Setup router
	router := httpDelivery.SetupRouter(cfg, handler)

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("Server listening on %s", addr)

	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func init() {
	// Set log flags for better debugging
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.SetOutput(os.Stdout)
}
