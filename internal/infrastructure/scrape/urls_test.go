package scrape

import "testing"

func TestParseCategorisedURLs(t *testing.T) {
	lines := []string{
		"https://www.paknsave.co.nz/shop/category/fruit-veg?pg=1",
		"",
		"# pantry is disabled for now",
		"https://www.paknsave.co.nz/shop/category/chilled-frozen-and-desserts/",
		"https://www.othersite.example/shop/category/milk",
	}

	got := ParseCategorisedURLs(lines, "paknsave.co.nz")

	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].Category != "fruit-veg" {
		t.Errorf("Category = %q, want fruit-veg", got[0].Category)
	}
	if got[1].Category != "chilled-frozen-and-desserts" {
		t.Errorf("Category = %q, want chilled-frozen-and-desserts", got[1].Category)
	}
}

func TestParseCategorisedURLs_NoFilter(t *testing.T) {
	got := ParseCategorisedURLs([]string{"https://example.com/a/b"}, "")
	if len(got) != 1 || got[0].Category != "b" {
		t.Errorf("got %+v, want one entry with category b", got)
	}
}
