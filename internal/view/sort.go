package view

import (
	"sort"
	"strings"

	"github.com/gsapre/housetab/internal/model"
)

// Sortable columns.
const (
	ColDate        = "date"
	ColDescription = "description"
	ColAmount      = "amount"
	ColCategory    = "category"
	ColNeed        = "need_category"
	ColCard        = "card"
	ColWho         = "who"
	ColNotes       = "notes"
)

// Directive is the active sort: a column and a direction (+1
// ascending, -1 descending). The zero value means unsorted.
type Directive struct {
	Column    string
	Direction int
}

// Toggle returns the directive after the user picks a column: a new
// column starts descending, the same column flips direction.
func (d Directive) Toggle(column string) Directive {
	if d.Column == column {
		return Directive{Column: column, Direction: -d.Direction}
	}
	return Directive{Column: column, Direction: -1}
}

// SortRows sorts a copy of rows by the directive. The sort is stable,
// so equal keys keep their incoming order.
//
// Amounts compare numerically with non-numeric values as 0. Dates
// compare chronologically with unparseable dates last in both
// directions. Everything else compares as lowercased strings.
func SortRows(rows []model.Expense, d Directive) []model.Expense {
	out := make([]model.Expense, len(rows))
	copy(out, rows)
	if d.Column == "" || d.Direction == 0 {
		return out
	}
	asc := d.Direction > 0
	sort.SliceStable(out, func(i, j int) bool {
		switch d.Column {
		case ColAmount:
			ai, aj := out[i].Amount.ValueOrZero(), out[j].Amount.ValueOrZero()
			if ai == aj {
				return false
			}
			if asc {
				return ai < aj
			}
			return ai > aj
		case ColDate:
			di, oki := out[i].Day()
			dj, okj := out[j].Day()
			if oki != okj {
				return oki // parseable before unparseable, either direction
			}
			if !oki {
				return false
			}
			if di.Equal(dj) {
				return false
			}
			if asc {
				return di.Before(dj)
			}
			return di.After(dj)
		default:
			si := strings.ToLower(stringColumn(out[i], d.Column))
			sj := strings.ToLower(stringColumn(out[j], d.Column))
			if si == sj {
				return false
			}
			if asc {
				return si < sj
			}
			return si > sj
		}
	})
	return out
}

func stringColumn(e model.Expense, column string) string {
	switch column {
	case ColDescription:
		return e.Description
	case ColCategory:
		return e.Category
	case ColNeed:
		return e.Need()
	case ColCard:
		return e.Card
	case ColWho:
		return e.Who
	case ColNotes:
		return e.Notes
	default:
		return ""
	}
}
