package model

import (
	"encoding/json"
	"testing"
)

func TestRawAmountValue(t *testing.T) {
	tests := []struct {
		name string
		raw  RawAmount
		want float64
		ok   bool
	}{
		{"plain", "12.50", 12.50, true},
		{"integer", "7", 7, true},
		{"negative", "-3.25", -3.25, true},
		{"padded", " 19.99 ", 19.99, true},
		{"empty", "", 0, false},
		{"words", "pending", 0, false},
		{"currency symbol", "$12", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.raw.Value()
			if ok != tt.ok || got != tt.want {
				t.Errorf("Value(%q) = %v, %v; want %v, %v", tt.raw, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestRawAmountJSON(t *testing.T) {
	var e Expense
	if err := json.Unmarshal([]byte(`{"amount": 42.5}`), &e); err != nil {
		t.Fatalf("unmarshal number: %v", err)
	}
	if v, ok := e.Amount.Value(); !ok || v != 42.5 {
		t.Errorf("number amount = %q, want 42.5", e.Amount)
	}

	if err := json.Unmarshal([]byte(`{"amount": "13.20"}`), &e); err != nil {
		t.Fatalf("unmarshal string: %v", err)
	}
	if v, ok := e.Amount.Value(); !ok || v != 13.20 {
		t.Errorf("string amount = %q, want 13.20", e.Amount)
	}

	if err := json.Unmarshal([]byte(`{"amount": null}`), &e); err != nil {
		t.Fatalf("unmarshal null: %v", err)
	}
	if _, ok := e.Amount.Value(); ok {
		t.Errorf("null amount parsed as numeric")
	}

	out, err := json.Marshal(RawAmount("9.75"))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(out) != "9.75" {
		t.Errorf("marshal numeric = %s, want 9.75", out)
	}
	out, _ = json.Marshal(RawAmount("n/a"))
	if string(out) != `"n/a"` {
		t.Errorf("marshal non-numeric = %s, want \"n/a\"", out)
	}
}

func TestParseDay(t *testing.T) {
	if _, ok := ParseDay("2025-02-14"); !ok {
		t.Error("valid day rejected")
	}
	for _, bad := range []string{"", "2025-13-01", "14/02/2025", "garbage", "2025-02-30"} {
		if _, ok := ParseDay(bad); ok {
			t.Errorf("ParseDay(%q) accepted", bad)
		}
	}
}

func TestMerchant(t *testing.T) {
	tests := []struct {
		desc string
		want string
	}{
		{"woolworths metro 123", "WOOLWORTHS"},
		{"  Uber   trip", "UBER"},
		{"", ""},
		{"   ", ""},
	}
	for _, tt := range tests {
		if got := (Expense{Description: tt.desc}).Merchant(); got != tt.want {
			t.Errorf("Merchant(%q) = %q, want %q", tt.desc, got, tt.want)
		}
	}
}

func TestToggleNeed(t *testing.T) {
	if ToggleNeed(NeedCategoryNeed) != NeedCategoryLuxury {
		t.Error("Need should toggle to Luxury")
	}
	if ToggleNeed(NeedCategoryLuxury) != NeedCategoryNeed {
		t.Error("Luxury should toggle to Need")
	}
	if ToggleNeed("") != NeedCategoryLuxury {
		t.Error("unset should toggle to Luxury")
	}
	if (Expense{}).Need() != NeedCategoryNeed {
		t.Error("unset need category should read as Need")
	}
}
