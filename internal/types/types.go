package types

import (
	"encoding/json"
	"html/template"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/shanehull/iposcraper/internal/sanitize"
)

// Upstream field names in the investorgain report payload.
const (
	FieldName       = "Name"
	FieldGMP        = "GMP"
	FieldPrice      = "Price"
	FieldLot        = "Lot"
	FieldIssueSize  = "IPO Size"
	FieldFireRating = "Fire Rating"
	FieldSub        = "Sub"
	FieldOpen       = "Open"
	FieldClose      = "Close"
	FieldListing    = "Listing"
	FieldSortOpen   = "~Srt_Open"
	FieldSortClose  = "~Srt_Close"
)

// Placeholder is shown for missing or unparseable display values.
const Placeholder = "--"

// RawRecord is one row of the upstream report, kept as loosely typed as it arrives.
type RawRecord map[string]any

// Field returns the sanitized string form of key, or fallback when the key is
// absent or null.
func (r RawRecord) Field(key, fallback string) string {
	v, ok := r[key]
	if !ok || v == nil {
		return fallback
	}

	var s string
	switch val := v.(type) {
	case string:
		s = val
	case json.Number:
		s = val.String()
	case float64:
		s = strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		s = strconv.FormatBool(val)
	default:
		b, err := json.Marshal(val)
		if err != nil {
			return fallback
		}
		s = string(b)
	}
	return sanitize.Text(s)
}

type Listing struct {
	Name         string
	GMP          string
	FireRating   string
	PriceText    string
	LotText      string
	IssueSize    string
	Subscription string
	Open         string
	Close        string
	ListingAt    string

	GMPDisplay        template.HTML
	GMPPercent        float64
	FireCount         int
	SubscriptionValue float64
	Price             decimal.Decimal
	Lot               int
	MinInvestment     string
	Highlighted       bool
}
