package ipo

import (
	"html"
	"html/template"
	"math"
	"regexp"
	"strconv"
	"strings"
	"sync"

	"github.com/dustin/go-humanize"
	"github.com/microcosm-cc/bluemonday"
	"github.com/shopspring/decimal"

	"github.com/shanehull/iposcraper/internal/types"
)

// Highlight thresholds, all inclusive.
const (
	MinHighlightGMP          = 20.0
	MinHighlightFire         = 4
	MinHighlightSubscription = 5.0
)

const (
	fireGlyph     = "🔥"
	fireReference = "&#128293;"
	rupee         = "₹"
)

var gmpPercentRegex = regexp.MustCompile(`(\d+(\.\d+)?)%`)

var (
	gmpPolicy     *bluemonday.Policy
	gmpPolicyOnce sync.Once
)

func emphasisPolicy() *bluemonday.Policy {
	gmpPolicyOnce.Do(func() {
		gmpPolicy = bluemonday.NewPolicy()
		gmpPolicy.AllowElements("b")
	})
	return gmpPolicy
}

// NewListing converts a raw upstream row into a typed listing. Every field
// falls back to a placeholder or zero value; it never fails.
func NewListing(r types.RawRecord) types.Listing {
	l := types.Listing{
		Name:         r.Field(types.FieldName, types.Placeholder),
		GMP:          r.Field(types.FieldGMP, types.Placeholder),
		FireRating:   r.Field(types.FieldFireRating, ""),
		PriceText:    stripThousands(r.Field(types.FieldPrice, "0")),
		LotText:      stripThousands(r.Field(types.FieldLot, "0")),
		IssueSize:    r.Field(types.FieldIssueSize, types.Placeholder),
		Subscription: r.Field(types.FieldSub, types.Placeholder),
		Open:         r.Field(types.FieldOpen, types.Placeholder),
		Close:        r.Field(types.FieldClose, types.Placeholder),
		ListingAt:    r.Field(types.FieldListing, types.Placeholder),
	}

	l.GMPPercent, l.GMPDisplay = ParseGMP(l.GMP)
	l.FireCount = CountFire(l.FireRating)
	l.SubscriptionValue = ParseSubscription(l.Subscription)
	l.Price, l.Lot, l.MinInvestment = MinInvestment(l.PriceText, l.LotText)
	l.Highlighted = IsHighlighted(l.GMPPercent, l.FireCount, l.SubscriptionValue)
	return l
}

// NewListings converts rows in order.
func NewListings(records []types.RawRecord) []types.Listing {
	listings := make([]types.Listing, 0, len(records))
	for _, r := range records {
		listings = append(listings, NewListing(r))
	}
	return listings
}

// ParseGMP returns the first percentage in s (0 if none) and s with that token
// emphasised. The display is escaped and may only contain <b>.
func ParseGMP(s string) (float64, template.HTML) {
	loc := gmpPercentRegex.FindStringSubmatchIndex(s)
	if loc == nil {
		return 0, template.HTML(html.EscapeString(s))
	}

	percent, err := strconv.ParseFloat(s[loc[2]:loc[3]], 64)
	if err != nil {
		percent = 0
	}

	marked := html.EscapeString(s[:loc[0]]) +
		"<b>" + html.EscapeString(s[loc[0]:loc[1]]) + "</b>" +
		html.EscapeString(s[loc[1]:])

	return percent, template.HTML(emphasisPolicy().Sanitize(marked))
}

// CountFire counts flame glyphs, falling back to their numeric character reference.
func CountFire(s string) int {
	if n := strings.Count(s, fireGlyph); n > 0 {
		return n
	}
	return strings.Count(s, fireReference)
}

// ParseSubscription parses a multiple such as "12.5x". Anything unparseable is 0.
func ParseSubscription(s string) float64 {
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(strings.TrimSuffix(s, "x"), "X")
	s = strings.TrimSpace(s)

	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// MinInvestment multiplies price by lot size. On a parse failure of either it
// returns a zero price and the placeholder.
func MinInvestment(priceText, lotText string) (decimal.Decimal, int, string) {
	price, err := decimal.NewFromString(priceText)
	if err != nil {
		return decimal.Zero, 0, types.Placeholder
	}
	lot, err := strconv.Atoi(lotText)
	if err != nil {
		return decimal.Zero, 0, types.Placeholder
	}

	total := price.Mul(decimal.NewFromInt(int64(lot))).IntPart()
	return price, lot, rupee + humanize.Comma(total)
}

func IsHighlighted(gmpPercent float64, fireCount int, subscription float64) bool {
	return gmpPercent >= MinHighlightGMP &&
		fireCount >= MinHighlightFire &&
		subscription >= MinHighlightSubscription
}

func stripThousands(s string) string {
	return strings.ReplaceAll(s, ",", "")
}
