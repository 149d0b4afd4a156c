package scrape

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// CategorisedURL pairs a listing page URL with the catalog category its
// products belong to. The category comes from the URL's own path.
type CategorisedURL struct {
	URL      string
	Category string
}

// ReadURLsFile loads the plain-text page URL list, one URL per line.
// Blank lines and #-comments are skipped.
func ReadURLsFile(path, urlShouldContain string) ([]CategorisedURL, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open urls file: %w", err)
	}
	defer f.Close()

	var lines []string
	s := bufio.NewScanner(f)
	for s.Scan() {
		lines = append(lines, s.Text())
	}
	if err := s.Err(); err != nil {
		return nil, fmt.Errorf("read urls file: %w", err)
	}

	return ParseCategorisedURLs(lines, urlShouldContain), nil
}

// ParseCategorisedURLs turns raw text lines into categorised URLs, dropping
// anything blank, commented or pointing at the wrong site.
func ParseCategorisedURLs(lines []string, urlShouldContain string) []CategorisedURL {
	var out []CategorisedURL
	for _, line := range lines {
		url := strings.TrimSpace(line)
		if url == "" || strings.HasPrefix(url, "#") {
			continue
		}
		if urlShouldContain != "" && !strings.Contains(url, urlShouldContain) {
			continue
		}
		out = append(out, CategorisedURL{
			URL:      url,
			Category: categoryFromURL(url),
		})
	}
	return out
}

// categoryFromURL takes the last path segment as the category name, with
// query params stripped ("...​/category/fruit-veg?pg=2" -> "fruit-veg")
func categoryFromURL(url string) string {
	path := url
	if idx := strings.Index(path, "?"); idx >= 0 {
		path = path[:idx]
	}
	path = strings.TrimSuffix(path, "/")
	if idx := strings.LastIndex(path, "/"); idx >= 0 {
		path = path[idx+1:]
	}
	return path
}
