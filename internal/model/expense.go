package model

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// DayFormat is the calendar-date layout used by the expense service.
const DayFormat = "2006-01-02"

// Need categories.
const (
	NeedCategoryNeed   = "Need"
	NeedCategoryLuxury = "Luxury"
)

// Expense is one transaction row as the expense service stores it.
// The service does not validate much, so Date may be empty or
// malformed and Amount may be non-numeric; both are parsed at use
// sites instead of at decode time.
type Expense struct {
	ID           int64     `json:"id"`
	Date         string    `json:"date"`
	Description  string    `json:"description"`
	Amount       RawAmount `json:"amount"`
	Category     string    `json:"category"`
	NeedCategory string    `json:"need_category"`
	Card         string    `json:"card"`
	Who          string    `json:"who"`
	SplitCost    bool      `json:"split_cost"`
	Outlier      bool      `json:"outlier"`
	Notes        string    `json:"notes"`
}

// Day parses the row's date as a calendar day.
func (e Expense) Day() (time.Time, bool) {
	return ParseDay(e.Date)
}

// Need returns the need category, defaulting to Need when unset.
func (e Expense) Need() string {
	if e.NeedCategory == NeedCategoryLuxury {
		return NeedCategoryLuxury
	}
	return NeedCategoryNeed
}

// ToggleNeed flips between Need and Luxury.
func ToggleNeed(v string) string {
	if v == NeedCategoryLuxury {
		return NeedCategoryNeed
	}
	return NeedCategoryLuxury
}

// Merchant derives a grouping key from the description: the first
// whitespace-delimited token, uppercased. Empty description maps to
// the empty key.
func (e Expense) Merchant() string {
	fields := strings.Fields(e.Description)
	if len(fields) == 0 {
		return ""
	}
	return strings.ToUpper(fields[0])
}

// ParseDay parses an ISO calendar day string.
func ParseDay(s string) (time.Time, bool) {
	t, err := time.Parse(DayFormat, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// RawAmount is an amount as stored by the service. Arithmetic callers
// go through Value; a failed parse is the caller's policy decision.
type RawAmount string

// Value parses the amount as a decimal number.
func (a RawAmount) Value() (float64, bool) {
	s := strings.TrimSpace(string(a))
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// ValueOrZero coerces a non-numeric amount to 0.
func (a RawAmount) ValueOrZero() float64 {
	v, _ := a.Value()
	return v
}

// UnmarshalJSON accepts both JSON numbers and JSON strings; the Flask
// service has emitted both over time.
func (a *RawAmount) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "null" {
		*a = ""
		return nil
	}
	if strings.HasPrefix(s, `"`) {
		var v string
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}
		*a = RawAmount(v)
		return nil
	}
	*a = RawAmount(s)
	return nil
}

// MarshalJSON emits a number when the amount parses, preserving the
// raw string otherwise.
func (a RawAmount) MarshalJSON() ([]byte, error) {
	if v, ok := a.Value(); ok {
		return json.Marshal(v)
	}
	return json.Marshal(string(a))
}
