package ipo_test

import (
	"encoding/json"
	"html/template"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shanehull/iposcraper/internal/ipo"
	"github.com/shanehull/iposcraper/internal/types"
)

func TestParseSubscription(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input    string
		expected float64
	}{
		{"12.5x", 12.5},
		{"12.5X", 12.5},
		{" 3 x ", 3},
		{"526.56x", 526.56},
		{"--", 0},
		{"", 0},
		{"x", 0},
		{"NaN", 0},
		{"inf", 0},
		{"5", 5},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()
			assert.InDelta(t, tt.expected, ipo.ParseSubscription(tt.input), 1e-9)
		})
	}
}

func TestMinInvestment(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		price         string
		lot           string
		expected      string
		expectedPrice string
		expectedLot   int
	}{
		{name: "round numbers", price: "1200", lot: "50", expected: "₹60,000", expectedPrice: "1200", expectedLot: 50},
		{name: "fractional price truncates", price: "99.5", lot: "3", expected: "₹298", expectedPrice: "99.5", expectedLot: 3},
		{name: "large total", price: "1500", lot: "1000", expected: "₹1,500,000", expectedPrice: "1500", expectedLot: 1000},
		{name: "non-numeric price", price: "TBA", lot: "50", expected: "--", expectedPrice: "0"},
		{name: "non-numeric lot", price: "1200", lot: "--", expected: "--", expectedPrice: "0"},
		{name: "fractional lot", price: "1200", lot: "50.5", expected: "--", expectedPrice: "0"},
		{name: "empty price", price: "", lot: "50", expected: "--", expectedPrice: "0"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			price, lot, display := ipo.MinInvestment(tt.price, tt.lot)
			assert.Equal(t, tt.expected, display)
			assert.Equal(t, tt.expectedPrice, price.String())
			assert.Equal(t, tt.expectedLot, lot)
		})
	}
}

func TestParseGMP(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name            string
		input           string
		expectedPercent float64
		expectedDisplay template.HTML
	}{
		{
			name:            "value and percent",
			input:           "₹25 (30.86%)",
			expectedPercent: 30.86,
			expectedDisplay: "₹25 (<b>30.86%</b>)",
		},
		{
			name:            "integer percent",
			input:           "20%",
			expectedPercent: 20,
			expectedDisplay: "<b>20%</b>",
		},
		{
			name:            "only first token emphasised",
			input:           "12% to 15%",
			expectedPercent: 12,
			expectedDisplay: "<b>12%</b> to 15%",
		},
		{
			name:            "no percent",
			input:           "--",
			expectedPercent: 0,
			expectedDisplay: "--",
		},
		{
			name:            "markup in text escaped",
			input:           "<i>5%</i>",
			expectedPercent: 5,
			expectedDisplay: "&lt;i&gt;<b>5%</b>&lt;/i&gt;",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			percent, display := ipo.ParseGMP(tt.input)
			assert.InDelta(t, tt.expectedPercent, percent, 1e-9)
			assert.Equal(t, tt.expectedDisplay, display)
		})
	}
}

func TestCountFire(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 4, ipo.CountFire("🔥🔥🔥🔥"))
	assert.Equal(t, 2, ipo.CountFire("🔥 🔥 (2/5)"))
	assert.Equal(t, 3, ipo.CountFire("&#128293;&#128293;&#128293;"))
	assert.Equal(t, 0, ipo.CountFire(""))
	assert.Equal(t, 0, ipo.CountFire("--"))
}

func TestIsHighlighted(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		gmp      float64
		fire     int
		sub      float64
		expected bool
	}{
		{name: "all at boundary", gmp: 20, fire: 4, sub: 5, expected: true},
		{name: "all above", gmp: 45.5, fire: 5, sub: 120, expected: true},
		{name: "gmp just below", gmp: 19.9, fire: 4, sub: 5, expected: false},
		{name: "fire just below", gmp: 20, fire: 3, sub: 5, expected: false},
		{name: "subscription just below", gmp: 20, fire: 4, sub: 4.9, expected: false},
		{name: "all zero", expected: false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, ipo.IsHighlighted(tt.gmp, tt.fire, tt.sub))
		})
	}
}

func TestNewListing(t *testing.T) {
	t.Parallel()

	t.Run("full record", func(t *testing.T) {
		t.Parallel()

		var raw types.RawRecord
		require.NoError(t, json.Unmarshal([]byte(`{
			"Name": "<a href=\"/gmp/acme\">Acme Foods</a> <span class=\"badge\">NSE SME</span>",
			"GMP": "₹40 (<b>25.5%</b>)",
			"Price": "1,200",
			"Lot": 50,
			"IPO Size": "₹85.4 Cr",
			"Fire Rating": "&#128293;&#128293;&#128293;&#128293;",
			"Sub": "7.25x",
			"Open": "15-Oct",
			"Close": "17-Oct",
			"Listing": "NSE SME"
		}`), &raw))

		l := ipo.NewListing(raw)

		assert.Equal(t, "Acme Foods NSE SME", l.Name)
		assert.Equal(t, "₹40 ( 25.5% )", l.GMP)
		assert.InDelta(t, 25.5, l.GMPPercent, 1e-9)
		assert.Equal(t, 4, l.FireCount)
		assert.InDelta(t, 7.25, l.SubscriptionValue, 1e-9)
		assert.Equal(t, "1200", l.PriceText)
		assert.Equal(t, "50", l.LotText)
		assert.Equal(t, "₹60,000", l.MinInvestment)
		assert.True(t, l.Highlighted)
	})

	t.Run("missing fields fall back", func(t *testing.T) {
		t.Parallel()

		l := ipo.NewListing(types.RawRecord{"Price": nil})

		assert.Equal(t, types.Placeholder, l.Name)
		assert.Equal(t, types.Placeholder, l.GMP)
		assert.Equal(t, "", l.FireRating)
		assert.Equal(t, "0", l.PriceText)
		assert.Equal(t, "0", l.LotText)
		assert.Equal(t, types.Placeholder, l.Subscription)
		assert.Equal(t, "₹0", l.MinInvestment)
		assert.Zero(t, l.GMPPercent)
		assert.Zero(t, l.FireCount)
		assert.Zero(t, l.SubscriptionValue)
		assert.False(t, l.Highlighted)
	})

	t.Run("malformed numbers do not fail", func(t *testing.T) {
		t.Parallel()

		l := ipo.NewListing(types.RawRecord{
			"Price": "TBA",
			"Lot":   "n/a",
			"Sub":   "--",
			"GMP":   "--",
		})

		assert.Equal(t, types.Placeholder, l.MinInvestment)
		assert.True(t, l.Price.IsZero())
		assert.Zero(t, l.SubscriptionValue)
		assert.Zero(t, l.GMPPercent)
	})
}
