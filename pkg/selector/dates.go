package selector

import (
	"strconv"
	"strings"
)

//nolint:gochecknoglobals // Static lookup table
var monthNames = map[string]int{
	"jan": 1, "january": 1,
	"feb": 2, "february": 2,
	"mar": 3, "march": 3,
	"apr": 4, "april": 4,
	"may": 5,
	"jun": 6, "june": 6,
	"jul": 7, "july": 7,
	"aug": 8, "august": 8,
	"sep": 9, "september": 9,
	"oct": 10, "october": 10,
	"nov": 11, "november": 11,
	"dec": 12, "december": 12,
}

// dateKey converts a date string like "Jan 2024" or "Present" into a
// sortable (year, month) pair. "Present" sorts newest; empty or
// unparseable dates sort oldest. A bare year defaults to December.
func dateKey(date string) (year, month int) {
	date = strings.TrimSpace(date)
	if date == "" {
		return 0, 0
	}

	switch strings.ToLower(date) {
	case "present", "current", "now":
		return 9999, 12
	}

	for _, part := range strings.Fields(strings.ToLower(date)) {
		if len(part) == 4 {
			if y, convErr := strconv.Atoi(part); convErr == nil {
				year = y
				continue
			}
		}
		if m, found := monthNames[part]; found {
			month = m
		}
	}

	if year > 0 && month == 0 {
		month = 12
	}

	return year, month
}

// dateLess reports whether date a sorts older than date b.
func dateLess(a, b string) (less bool) {
	ay, am := dateKey(a)
	by, bm := dateKey(b)
	if ay != by {
		less = ay < by
		return less
	}
	less = am < bm
	return less
}
