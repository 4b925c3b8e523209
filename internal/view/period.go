package view

import (
	"sort"
	"strings"
	"time"

	"github.com/gsapre/housetab/internal/model"
)

// PeriodAllTime selects the whole dataset.
const PeriodAllTime = "all-time"

// Periods returns the distinct year ("2025") and month ("2025-03")
// keys present in the dataset, most recent first, years before their
// months. Rows without a parseable date contribute nothing.
func Periods(rows []model.Expense) []string {
	years := make(map[string]struct{})
	months := make(map[string]struct{})
	for _, e := range rows {
		day, ok := e.Day()
		if !ok {
			continue
		}
		iso := day.Format(model.DayFormat)
		years[iso[:4]] = struct{}{}
		months[iso[:7]] = struct{}{}
	}
	out := make([]string, 0, len(years)+len(months))
	for y := range years {
		out = append(out, y)
	}
	for m := range months {
		out = append(out, m)
	}
	// Descending lexicographic puts newest first and keeps each year
	// ahead of its months ("2025" > "2025-03" is false, so sort by
	// prefix then kind).
	sort.Slice(out, func(i, j int) bool {
		yi, yj := out[i][:4], out[j][:4]
		if yi != yj {
			return yi > yj
		}
		// Same year: the bare year key leads its months.
		if len(out[i]) == 4 {
			return len(out[j]) != 4
		}
		if len(out[j]) == 4 {
			return false
		}
		return out[i] > out[j]
	})
	return out
}

// FilterByPeriod keeps the rows belonging to the selected period.
// Unparseable dates belong to no period: they survive only all-time.
func FilterByPeriod(rows []model.Expense, period string) []model.Expense {
	if period == "" || period == PeriodAllTime {
		out := make([]model.Expense, len(rows))
		copy(out, rows)
		return out
	}
	out := make([]model.Expense, 0, len(rows))
	for _, e := range rows {
		day, ok := e.Day()
		if !ok {
			continue
		}
		if strings.HasPrefix(day.Format(model.DayFormat), period+"-") {
			out = append(out, e)
		}
	}
	return out
}

// FormatPeriod renders a period key for display.
func FormatPeriod(period string) string {
	switch {
	case period == "" || period == PeriodAllTime:
		return "All Time"
	case len(period) == 7:
		if t, err := time.Parse("2006-01", period); err == nil {
			return t.Format("January 2006")
		}
		return period
	default:
		return period
	}
}
