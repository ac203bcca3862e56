package ipo

import (
	"slices"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/shanehull/iposcraper/internal/types"
)

const dateLayout = "2006-01-02"

// civilDate truncates t to midnight in its own location.
func civilDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func parseDate(s string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(dateLayout, s, loc)
}

type datedRecord struct {
	record types.RawRecord
	close  time.Time
}

// FilterOpen keeps records with open <= today <= close, comparing calendar
// dates in now's location, and stable-sorts them by close date. Records whose
// dates do not parse are dropped.
func FilterOpen(records []types.RawRecord, now time.Time, logger *logrus.Logger) []types.RawRecord {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	loc := now.Location()
	today := civilDate(now)

	var kept []datedRecord
	for i, rec := range records {
		openStr := rec.Field(types.FieldSortOpen, "")
		closeStr := rec.Field(types.FieldSortClose, "")

		open, err := parseDate(openStr, loc)
		if err != nil {
			logger.WithFields(logrus.Fields{"index": i, "open": openStr}).Debug("Skipping record with invalid open date")
			continue
		}
		closeDate, err := parseDate(closeStr, loc)
		if err != nil {
			logger.WithFields(logrus.Fields{"index": i, "close": closeStr}).Debug("Skipping record with invalid close date")
			continue
		}

		if today.Before(open) || today.After(closeDate) {
			continue
		}
		kept = append(kept, datedRecord{record: rec, close: closeDate})
	}

	slices.SortStableFunc(kept, func(a, b datedRecord) int {
		return a.close.Compare(b.close)
	})

	out := make([]types.RawRecord, 0, len(kept))
	for _, k := range kept {
		out = append(out, k.record)
	}
	return out
}
