package usecase

import (
	"testing"
)

func TestNormalizeSize(t *testing.T) {
	p := NewSizeParser(false)

	testCases := []struct {
		name string
		raw  string
		want string
	}{
		{
			name: "capitalizes litre marker after digit",
			raw:  "2l",
			want: "2L",
		},
		{
			name: "leaves ml suffix alone",
			raw:  "375ml",
			want: "375ml",
		},
		{
			name: "bare kg becomes per kg",
			raw:  "kg",
			want: "per kg",
		},
		{
			name: "sub-kilogram decimal becomes grams",
			raw:  "0.25kg",
			want: "250g",
		},
		{
			name: "sub-kilogram decimal rounds to nearest gram",
			raw:  "0.4535kg",
			want: "454g",
		},
		{
			name: "sub-litre decimal becomes millilitres",
			raw:  "0.33L",
			want: "330ml",
		},
		{
			name: "sub-litre lowercase input normalized then converted",
			raw:  "0.5l",
			want: "500ml",
		},
		{
			name: "whole kilograms untouched",
			raw:  "1.5kg",
			want: "1.5kg",
		},
		{
			name: "trims whitespace",
			raw:  "  400g ",
			want: "400g",
		},
		{
			name: "empty stays empty",
			raw:  "",
			want: "",
		},
		{
			name: "free text passes through",
			raw:  "bunch",
			want: "bunch",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := p.NormalizeSize(tc.raw)
			if got != tc.want {
				t.Errorf("NormalizeSize(%q) = %q, want %q", tc.raw, got, tc.want)
			}
		})
	}
}

func TestDeriveUnitPricing(t *testing.T) {
	p := NewSizeParser(false)

	testCases := []struct {
		name         string
		size         string
		price        float64
		wantNil      bool
		wantPrice    float64
		wantUnit     string
		wantQuantity float64
	}{
		{
			name:         "grams normalize to per kilogram",
			size:         "400g",
			price:        4.00,
			wantPrice:    10.00,
			wantUnit:     "kg",
			wantQuantity: 400,
		},
		{
			name:         "kilograms priced directly",
			size:         "1.5kg",
			price:        6.00,
			wantPrice:    4.00,
			wantUnit:     "kg",
			wantQuantity: 1.5,
		},
		{
			name:         "litres priced directly",
			size:         "2L",
			price:        3.60,
			wantPrice:    1.80,
			wantUnit:     "L",
			wantQuantity: 2,
		},
		{
			name:         "millilitres normalize to per litre",
			size:         "330ml",
			price:        1.65,
			wantPrice:    5.00,
			wantUnit:     "L",
			wantQuantity: 330,
		},
		{
			name:         "per kg bulk item",
			size:         "per kg",
			price:        12.99,
			wantPrice:    12.99,
			wantUnit:     "kg",
			wantQuantity: 1,
		},
		{
			name:         "pack count priced per each",
			size:         "6pk",
			price:        9.00,
			wantPrice:    1.50,
			wantUnit:     "each",
			wantQuantity: 6,
		},
		{
			name:         "spaced pack notation",
			size:         "12 pack",
			price:        6.00,
			wantPrice:    0.50,
			wantUnit:     "each",
			wantQuantity: 12,
		},
		{
			name:         "each keyword",
			size:         "each",
			price:        2.49,
			wantPrice:    2.49,
			wantUnit:     "each",
			wantQuantity: 1,
		},
		{
			name:    "free text yields no derivation",
			size:    "bunch",
			price:   3.00,
			wantNil: true,
		},
		{
			name:    "empty size yields no derivation",
			size:    "",
			price:   3.00,
			wantNil: true,
		},
		{
			name:    "negative price yields no derivation",
			size:    "400g",
			price:   -1,
			wantNil: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := p.DeriveUnitPricing(tc.size, tc.price)

			if tc.wantNil {
				if got != nil {
					t.Fatalf("DeriveUnitPricing(%q, %v) = %+v, want nil", tc.size, tc.price, got)
				}
				return
			}

			if got == nil {
				t.Fatalf("DeriveUnitPricing(%q, %v) = nil, want pricing", tc.size, tc.price)
			}
			if got.UnitPrice != tc.wantPrice {
				t.Errorf("UnitPrice = %v, want %v", got.UnitPrice, tc.wantPrice)
			}
			if got.UnitName != tc.wantUnit {
				t.Errorf("UnitName = %q, want %q", got.UnitName, tc.wantUnit)
			}
			if got.Quantity != tc.wantQuantity {
				t.Errorf("Quantity = %v, want %v", got.Quantity, tc.wantQuantity)
			}
		})
	}
}

func TestDeriveUnitPricing_MalformedNeverPanics(t *testing.T) {
	p := NewSizeParser(false)

	for _, size := range []string{"kg500", "g", "....", "0kg", "x pack", "ml"} {
		if got := p.DeriveUnitPricing(size, 5.00); got != nil && got.Quantity <= 0 {
			t.Errorf("DeriveUnitPricing(%q) produced non-positive quantity %v", size, got.Quantity)
		}
	}
}
