package extract

import (
	"strconv"
	"time"
)

var localDateTimeLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
}

// ParseTimestamp resolves a source timestamp with a fixed heuristic order:
// epoch milliseconds, then ISO-8601 local date-time, then now(). Source
// files mix both encodings without saying which one a column uses, so this
// is a guess in priority order rather than format negotiation.
func ParseTimestamp(raw string, now func() time.Time) time.Time {
	if ms, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return time.UnixMilli(ms).In(time.Local)
	}
	for _, layout := range localDateTimeLayouts {
		if t, err := time.ParseInLocation(layout, raw, time.Local); err == nil {
			return t
		}
	}
	return now()
}
