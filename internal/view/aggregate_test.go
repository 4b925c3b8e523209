package view

import (
	"math"
	"testing"

	"github.com/gsapre/housetab/internal/model"
)

func close2(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestTotalCoercesNonNumeric(t *testing.T) {
	got := Total(sampleRows())
	if !close2(got, 82.50+19.90+120.00+0+64.10) {
		t.Errorf("Total = %v", got)
	}
}

func TestMemberTotals(t *testing.T) {
	members := model.Members{Names: []string{"Gargi", "Rohan"}}
	rows := []model.Expense{
		{Amount: "100", Who: "Gargi"},
		{Amount: "40", Who: "rohan "}, // matched case-insensitively
		{Amount: "60", Who: "ignored", SplitCost: true},
		{Amount: "10", Who: "visitor"}, // counts toward no member
	}
	got := MemberTotals(rows, members)
	if !close2(got["Gargi"], 130) {
		t.Errorf("Gargi = %v, want 130", got["Gargi"])
	}
	if !close2(got["Rohan"], 70) {
		t.Errorf("Rohan = %v, want 70", got["Rohan"])
	}

	// Member totals never exceed the grand total.
	var memberSum float64
	for _, v := range got {
		memberSum += v
	}
	if memberSum > Total(rows)+1e-9 {
		t.Errorf("member sum %v exceeds total %v", memberSum, Total(rows))
	}
}

func TestMemberTotalsAllMatchedIsAdditive(t *testing.T) {
	members := model.Members{Names: []string{"Gargi", "Rohan"}}
	rows := []model.Expense{
		{Amount: "30", Who: "Gargi"},
		{Amount: "50", Who: "Rohan", SplitCost: true},
		{Amount: "20", Who: "Gargi", SplitCost: true},
	}
	got := MemberTotals(rows, members)
	var memberSum float64
	for _, v := range got {
		memberSum += v
	}
	if !close2(memberSum, Total(rows)) {
		t.Errorf("member sum %v, total %v", memberSum, Total(rows))
	}
}

func TestGroupSums(t *testing.T) {
	rows := sampleRows()
	cats := ByCategory(rows)
	if cats[0].Key != "Dining" || !close2(cats[0].Sum, 120) {
		t.Errorf("top category = %+v", cats[0])
	}
	need := ByNeed(rows)
	sums := map[string]float64{}
	for _, g := range need {
		sums[g.Key] = g.Sum
	}
	if !close2(sums["Luxury"], 19.90+120.00+64.10) || !close2(sums["Need"], 82.50) {
		t.Errorf("need split = %v", sums)
	}
	merch := ByMerchant(rows)
	found := false
	for _, g := range merch {
		if g.Key == "WOOLWORTHS" && close2(g.Sum, 82.50) {
			found = true
		}
	}
	if !found {
		t.Errorf("merchant groups = %v", merch)
	}
}

func TestByDayOfWeekSkipsUnparseable(t *testing.T) {
	rows := []model.Expense{
		{Date: "2025-03-03", Amount: "5"}, // Monday
		{Date: "2025-03-04", Amount: "7"}, // Tuesday
		{Date: "junk", Amount: "100"},
	}
	got := ByDayOfWeek(rows)
	if len(got) != 2 || got[0].Key != "Monday" || got[1].Key != "Tuesday" {
		t.Fatalf("ByDayOfWeek = %v", got)
	}
	if !close2(got[0].Sum, 5) || !close2(got[1].Sum, 7) {
		t.Errorf("sums = %v", got)
	}
}

func TestByMonthByYear(t *testing.T) {
	rows := sampleRows()
	months := ByMonth(rows)
	if len(months) != 3 || months[0].Key != "2024-12" || months[2].Key != "2025-03" {
		t.Errorf("ByMonth = %v", months)
	}
	years := ByYear(rows)
	if len(years) != 2 || years[0].Key != "2024" || years[1].Key != "2025" {
		t.Errorf("ByYear = %v", years)
	}
	if !close2(years[1].Sum, 82.50+19.90+120.00) {
		t.Errorf("2025 sum = %v", years[1].Sum)
	}
}

func TestAverages(t *testing.T) {
	rows := []model.Expense{
		{Date: "2025-03-01", Amount: "10"},
		{Date: "2025-03-01", Amount: "20"}, // same day
		{Date: "2025-04-10", Amount: "30"},
	}
	perDay, perMonth := Averages(rows)
	if !close2(perDay, 30) { // 60 over 2 distinct days
		t.Errorf("perDay = %v", perDay)
	}
	if !close2(perMonth, 30) { // 60 over 2 distinct months
		t.Errorf("perMonth = %v", perMonth)
	}

	// No parseable dates: divisor floors at 1.
	perDay, perMonth = Averages([]model.Expense{{Date: "x", Amount: "50"}})
	if !close2(perDay, 50) || !close2(perMonth, 50) {
		t.Errorf("floored averages = %v, %v", perDay, perMonth)
	}
}

func TestTopN(t *testing.T) {
	groups := []GroupSum{{Key: "a", Sum: 3}, {Key: "b", Sum: 2}, {Key: "c", Sum: 1}}
	if got := TopN(groups, 2); len(got) != 2 || got[0].Key != "a" {
		t.Errorf("TopN = %v", got)
	}
	if got := TopN(groups, 10); len(got) != 3 {
		t.Errorf("TopN over-length = %v", got)
	}
}

func TestRecentLarge(t *testing.T) {
	got := RecentLarge(sampleRows(), 3)
	if len(got) != 3 || got[0].ID != 3 || got[1].ID != 1 || got[2].ID != 5 {
		t.Errorf("RecentLarge = %v", ids(got))
	}
}
