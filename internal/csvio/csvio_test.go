package csvio

import (
	"strings"
	"testing"

	"github.com/gsapre/housetab/internal/model"
)

func TestExportImportRoundTrip(t *testing.T) {
	rows := []model.Expense{
		{ID: 1, Date: "2025-03-01", Description: "Woolworths, metro", Amount: "82.50", Category: "Groceries", Card: "Visa", Who: "Gargi", Notes: "has \"quotes\""},
		{ID: 2, Date: "2025-03-05", Description: "Uber", Amount: "19.90", Category: "Transport", NeedCategory: "Luxury", Card: "Amex", Who: "Rohan", SplitCost: true, Outlier: true},
	}

	var sb strings.Builder
	if err := Export(&sb, rows); err != nil {
		t.Fatalf("export: %v", err)
	}

	reg, err := model.DefaultRegistry()
	if err != nil {
		t.Fatalf("registry: %v", err)
	}
	got, err := Import(strings.NewReader(sb.String()), reg)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("imported %d rows", len(got))
	}
	if got[0].ID != 0 || got[1].ID != 0 {
		t.Error("import should leave IDs for the server to assign")
	}
	if got[0].Description != "Woolworths, metro" || got[0].Notes != `has "quotes"` {
		t.Errorf("quoting mangled: %+v", got[0])
	}
	if got[1].NeedCategory != model.NeedCategoryLuxury || !got[1].SplitCost || !got[1].Outlier {
		t.Errorf("flags lost: %+v", got[1])
	}
}

func TestImportSnapsCategoryTypos(t *testing.T) {
	reg, err := model.DefaultRegistry()
	if err != nil {
		t.Fatalf("registry: %v", err)
	}
	csvText := "Date,Description,Amount,Category,Need,Card,Who,Split,Outlier,Notes\n" +
		"2025-03-01,coffee,4.50,Grocries,Need,Visa,Gargi,No,No,\n" +
		"2025-03-02,mystery,9.00,Cryptozoology,Need,Visa,Gargi,No,No,\n"
	got, err := Import(strings.NewReader(csvText), reg)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if got[0].Category != "Groceries" {
		t.Errorf("typo not snapped: %q", got[0].Category)
	}
	if got[1].Category != "Cryptozoology" {
		t.Errorf("distant name rewritten: %q", got[1].Category)
	}
}

func TestImportRejectsWrongHeader(t *testing.T) {
	if _, err := Import(strings.NewReader("a,b,c\n1,2,3\n"), nil); err == nil {
		t.Error("wrong header accepted")
	}
}

func TestImportEmpty(t *testing.T) {
	got, err := Import(strings.NewReader(""), nil)
	if err != nil || got != nil {
		t.Errorf("empty import = %v, %v", got, err)
	}
}
