package view

import (
	"sort"

	"github.com/gsapre/housetab/internal/model"
)

// Aggregations coerce non-numeric amounts to 0 rather than dropping
// the row, so counts stay consistent with the table.

// Total sums the amounts of the given rows.
func Total(rows []model.Expense) float64 {
	var sum float64
	for _, e := range rows {
		sum += e.Amount.ValueOrZero()
	}
	return sum
}

// SplitTotal sums only the rows marked split.
func SplitTotal(rows []model.Expense) float64 {
	var sum float64
	for _, e := range rows {
		if e.SplitCost {
			sum += e.Amount.ValueOrZero()
		}
	}
	return sum
}

// MemberTotals attributes spend to each configured member. Split rows
// divide evenly across all members; other rows go to the member whose
// name matches the row's spender (trimmed, case-insensitive). Rows
// with an unmatched spender count toward no member, only the total.
func MemberTotals(rows []model.Expense, members model.Members) map[string]float64 {
	out := make(map[string]float64, len(members.Names))
	for _, name := range members.Names {
		out[name] = 0
	}
	if len(members.Names) == 0 {
		return out
	}
	for _, e := range rows {
		amt := e.Amount.ValueOrZero()
		if e.SplitCost {
			share := amt / float64(len(members.Names))
			for _, name := range members.Names {
				out[name] += share
			}
			continue
		}
		if name, ok := members.Match(e.Who); ok {
			out[name] += amt
		}
	}
	return out
}

// GroupSum is one aggregation bucket.
type GroupSum struct {
	Key string
	Sum float64
}

func groupBy(rows []model.Expense, key func(model.Expense) (string, bool)) []GroupSum {
	sums := make(map[string]float64)
	for _, e := range rows {
		k, ok := key(e)
		if !ok {
			continue
		}
		sums[k] += e.Amount.ValueOrZero()
	}
	out := make([]GroupSum, 0, len(sums))
	for k, v := range sums {
		out = append(out, GroupSum{Key: k, Sum: v})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Sum != out[j].Sum {
			return out[i].Sum > out[j].Sum
		}
		return out[i].Key < out[j].Key
	})
	return out
}

// ByCategory sums amounts per category, largest first.
func ByCategory(rows []model.Expense) []GroupSum {
	return groupBy(rows, func(e model.Expense) (string, bool) {
		if e.Category == "" {
			return "Uncategorized", true
		}
		return e.Category, true
	})
}

// ByCard sums amounts per card, largest first.
func ByCard(rows []model.Expense) []GroupSum {
	return groupBy(rows, func(e model.Expense) (string, bool) {
		return e.Card, e.Card != ""
	})
}

// ByWho sums amounts per spender string as stored, largest first.
func ByWho(rows []model.Expense) []GroupSum {
	return groupBy(rows, func(e model.Expense) (string, bool) {
		return e.Who, e.Who != ""
	})
}

// ByNeed splits spend between Need and Luxury.
func ByNeed(rows []model.Expense) []GroupSum {
	return groupBy(rows, func(e model.Expense) (string, bool) {
		return e.Need(), true
	})
}

// ByDayOfWeek sums per weekday; rows without a parseable date are
// skipped. Keys are weekday names, ordered Monday first rather than
// by sum.
func ByDayOfWeek(rows []model.Expense) []GroupSum {
	sums := make(map[string]float64)
	for _, e := range rows {
		day, ok := e.Day()
		if !ok {
			continue
		}
		sums[day.Weekday().String()] += e.Amount.ValueOrZero()
	}
	order := []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}
	out := make([]GroupSum, 0, len(sums))
	for _, name := range order {
		if v, ok := sums[name]; ok {
			out = append(out, GroupSum{Key: name, Sum: v})
		}
	}
	return out
}

// ByMerchant sums per merchant key (first word of the description,
// uppercased), largest first.
func ByMerchant(rows []model.Expense) []GroupSum {
	return groupBy(rows, func(e model.Expense) (string, bool) {
		m := e.Merchant()
		return m, m != ""
	})
}

// ByMonth sums per calendar month ("2025-03"), oldest first.
func ByMonth(rows []model.Expense) []GroupSum {
	return byDatePrefix(rows, 7)
}

// ByYear sums per calendar year ("2025"), oldest first.
func ByYear(rows []model.Expense) []GroupSum {
	return byDatePrefix(rows, 4)
}

func byDatePrefix(rows []model.Expense, n int) []GroupSum {
	sums := make(map[string]float64)
	for _, e := range rows {
		day, ok := e.Day()
		if !ok {
			continue
		}
		sums[day.Format(model.DayFormat)[:n]] += e.Amount.ValueOrZero()
	}
	out := make([]GroupSum, 0, len(sums))
	for k, v := range sums {
		out = append(out, GroupSum{Key: k, Sum: v})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

// Averages reports mean spend per distinct day and per distinct
// month present in the rows. Divisors never drop below 1, so a
// dataset of unparseable dates averages to its own total.
func Averages(rows []model.Expense) (perDay, perMonth float64) {
	days := make(map[string]struct{})
	months := make(map[string]struct{})
	for _, e := range rows {
		day, ok := e.Day()
		if !ok {
			continue
		}
		iso := day.Format(model.DayFormat)
		days[iso] = struct{}{}
		months[iso[:7]] = struct{}{}
	}
	total := Total(rows)
	nd, nm := len(days), len(months)
	if nd < 1 {
		nd = 1
	}
	if nm < 1 {
		nm = 1
	}
	return total / float64(nd), total / float64(nm)
}

// TopN returns the first n groups of an already-ranked group list.
func TopN(groups []GroupSum, n int) []GroupSum {
	if n > len(groups) {
		n = len(groups)
	}
	return groups[:n]
}

// RecentLarge returns the n largest rows by amount, ties broken by
// most recent date.
func RecentLarge(rows []model.Expense, n int) []model.Expense {
	out := make([]model.Expense, len(rows))
	copy(out, rows)
	sort.SliceStable(out, func(i, j int) bool {
		ai, aj := out[i].Amount.ValueOrZero(), out[j].Amount.ValueOrZero()
		if ai != aj {
			return ai > aj
		}
		return out[i].Date > out[j].Date
	})
	if n > len(out) {
		n = len(out)
	}
	return out[:n]
}
