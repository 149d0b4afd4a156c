package scrape

import (
	"context"
	"fmt"
	"log"
	"regexp"
	"time"

	"github.com/gocolly/colly"

	"github.com/shelfwatch/backend/internal/domain"
)

// imageSizeRegex matches the resolution segment of product image URLs
// (200x200, 400x400, ...); swapping it for "master" yields the hi-res image
var imageSizeRegex = regexp.MustCompile(`\d00x\d00`)

// Selectors holds the CSS selectors for one retailer's product cards
type Selectors struct {
	ProductCard string `mapstructure:"product_card"`
	Name        string `mapstructure:"name"`
	Size        string `mapstructure:"size"`
	Dollars     string `mapstructure:"dollars"`
	Cents       string `mapstructure:"cents"`
	Image       string `mapstructure:"image"`
}

// Collector fetches listing pages and extracts the raw snapshot fields the
// reconciliation engine consumes. It does no validation of its own; bad
// extractions surface as rejections downstream.
type Collector struct {
	selectors Selectors
	userAgent string
	now       func() time.Time
}

// NewCollector creates a snapshot source for one retailer's page layout
func NewCollector(selectors Selectors, userAgent string) *Collector {
	return &Collector{
		selectors: selectors,
		userAgent: userAgent,
		now:       time.Now,
	}
}

// Fetch loads one listing page and returns a snapshot per product card found
func (c *Collector) Fetch(ctx context.Context, pageURL string) ([]domain.RawSnapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	collector := colly.NewCollector(colly.UserAgent(c.userAgent))

	var snapshots []domain.RawSnapshot
	collector.OnHTML(c.selectors.ProductCard, func(e *colly.HTMLElement) {
		snapshots = append(snapshots, domain.RawSnapshot{
			Name:       e.ChildText(c.selectors.Name),
			SizeText:   e.ChildText(c.selectors.Size),
			DollarText: e.ChildText(c.selectors.Dollars),
			CentText:   e.ChildText(c.selectors.Cents),
			ImageURL:   HiResImageURL(e.ChildAttr(c.selectors.Image, "src")),
			ObservedAt: c.now().UTC(),
		})
	})

	collector.OnError(func(r *colly.Response, err error) {
		log.Printf("[SCRAPE] %s - request failed: %v", pageURL, err)
	})

	if err := collector.Visit(pageURL); err != nil {
		return nil, fmt.Errorf("visit %s: %w", pageURL, err)
	}
	collector.Wait()

	return snapshots, nil
}

// HiResImageURL rewrites a thumbnail image URL to its full-resolution
// variant. URLs without a resolution segment pass through unchanged.
func HiResImageURL(imageURL string) string {
	return imageSizeRegex.ReplaceAllString(imageURL, "master")
}
