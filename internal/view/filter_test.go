package view

import (
	"testing"

	"github.com/gsapre/housetab/internal/model"
)

func f64(v float64) *float64 { return &v }

func sampleRows() []model.Expense {
	return []model.Expense{
		{ID: 1, Date: "2025-03-01", Description: "Woolworths groceries", Amount: "82.50", Category: "Groceries", Card: "Visa", Who: "Gargi", Notes: "weekly shop"},
		{ID: 2, Date: "2025-03-05", Description: "Uber trip", Amount: "19.90", Category: "Transport", Card: "Amex", Who: "Rohan", NeedCategory: "Luxury"},
		{ID: 3, Date: "2025-02-14", Description: "Dinner out", Amount: "120.00", Category: "Dining", Card: "Visa", Who: "Gargi", SplitCost: true, NeedCategory: "Luxury"},
		{ID: 4, Date: "", Description: "carried over balance", Amount: "pending", Category: "Other", Card: "Visa", Who: "Rohan"},
		{ID: 5, Date: "2024-12-31", Description: "NYE party supplies", Amount: "64.10", Category: "Entertainment", Card: "Amex", Who: "gargi", NeedCategory: "Luxury", Notes: "split later"},
	}
}

func ids(rows []model.Expense) []int64 {
	out := make([]int64, len(rows))
	for i, e := range rows {
		out[i] = e.ID
	}
	return out
}

func equalIDs(a, b []int64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestFilterCriteria(t *testing.T) {
	rows := sampleRows()
	tests := []struct {
		name string
		c    Criteria
		want []int64
	}{
		{"empty criteria pass everything", Criteria{}, []int64{1, 2, 3, 4, 5}},
		{"date range inclusive", Criteria{DateFrom: "2025-02-14", DateTo: "2025-03-01"}, []int64{1, 3, 4}},
		{"date fail-open keeps undated rows", Criteria{DateFrom: "2025-03-01"}, []int64{1, 2, 4}},
		{"amount min inclusive", Criteria{AmountMin: f64(64.10)}, []int64{1, 3, 5}},
		{"amount max excludes non-numeric", Criteria{AmountMax: f64(1000)}, []int64{1, 2, 3, 5}},
		{"amount band", Criteria{AmountMin: f64(20), AmountMax: f64(100)}, []int64{1, 5}},
		{"category exact", Criteria{Category: "Groceries"}, []int64{1}},
		{"category is case-sensitive", Criteria{Category: "groceries"}, nil},
		{"card exact", Criteria{Card: "Amex"}, []int64{2, 5}},
		{"who exact", Criteria{Who: "Gargi"}, []int64{1, 3}},
		{"need", Criteria{Need: "Luxury"}, []int64{2, 3, 5}},
		{"need default", Criteria{Need: "Need"}, []int64{1, 4}},
		{"description substring case-insensitive", Criteria{Description: "UBER"}, []int64{2}},
		{"notes substring", Criteria{Notes: "split"}, []int64{5}},
		{"criteria AND together", Criteria{Card: "Visa", Who: "Gargi", Need: "Luxury"}, []int64{3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ids(Filter(rows, tt.c))
			want := tt.want
			if want == nil {
				want = []int64{}
			}
			if !equalIDs(got, want) {
				t.Errorf("Filter = %v, want %v", got, want)
			}
		})
	}
}

func TestFilterDoesNotMutateInput(t *testing.T) {
	rows := sampleRows()
	Filter(rows, Criteria{Category: "Dining"})
	if !equalIDs(ids(rows), []int64{1, 2, 3, 4, 5}) {
		t.Error("input slice mutated")
	}
}
