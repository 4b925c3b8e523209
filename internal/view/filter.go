package view

import (
	"strings"

	"github.com/gsapre/housetab/internal/model"
)

// Criteria is the set of active column filters. The zero value
// matches every row. All active criteria must hold (AND).
type Criteria struct {
	DateFrom string // inclusive, YYYY-MM-DD
	DateTo   string // inclusive, YYYY-MM-DD

	AmountMin *float64 // inclusive
	AmountMax *float64 // inclusive

	// Exact, case-sensitive matches against stored values.
	Category string
	Card     string
	Who      string
	Need     string

	// Case-insensitive substring matches.
	Description string
	Notes       string
}

// IsZero reports whether no criterion is active.
func (c Criteria) IsZero() bool {
	return c == Criteria{}
}

// Match reports whether the row passes every active criterion.
//
// Date bounds are fail-open: a row whose date does not parse is not
// excluded by them. Amount bounds are the opposite: once either bound
// is active, a row whose amount does not parse is excluded.
func (c Criteria) Match(e model.Expense) bool {
	if c.DateFrom != "" || c.DateTo != "" {
		if day, ok := e.Day(); ok {
			if from, ok := model.ParseDay(c.DateFrom); ok && day.Before(from) {
				return false
			}
			if to, ok := model.ParseDay(c.DateTo); ok && day.After(to) {
				return false
			}
		}
	}

	if c.AmountMin != nil || c.AmountMax != nil {
		amt, ok := e.Amount.Value()
		if !ok {
			return false
		}
		if c.AmountMin != nil && amt < *c.AmountMin {
			return false
		}
		if c.AmountMax != nil && amt > *c.AmountMax {
			return false
		}
	}

	if c.Category != "" && e.Category != c.Category {
		return false
	}
	if c.Card != "" && e.Card != c.Card {
		return false
	}
	if c.Who != "" && e.Who != c.Who {
		return false
	}
	if c.Need != "" && e.Need() != c.Need {
		return false
	}

	if c.Description != "" && !strings.Contains(strings.ToLower(e.Description), strings.ToLower(c.Description)) {
		return false
	}
	if c.Notes != "" && !strings.Contains(strings.ToLower(e.Notes), strings.ToLower(c.Notes)) {
		return false
	}
	return true
}

// Filter returns the rows matching the criteria, preserving order.
func Filter(rows []model.Expense, c Criteria) []model.Expense {
	if c.IsZero() {
		out := make([]model.Expense, len(rows))
		copy(out, rows)
		return out
	}
	out := make([]model.Expense, 0, len(rows))
	for _, e := range rows {
		if c.Match(e) {
			out = append(out, e)
		}
	}
	return out
}
