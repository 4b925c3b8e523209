// Package csvio exports the visible expense view to CSV and imports
// the same format back through the API.
package csvio

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/gsapre/housetab/internal/model"
)

var header = []string{"Date", "Description", "Amount", "Category", "Need", "Card", "Who", "Split", "Outlier", "Notes"}

// Export writes rows as CSV in the fixed column order.
func Export(w io.Writer, rows []model.Expense) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, e := range rows {
		rec := []string{
			e.Date,
			e.Description,
			string(e.Amount),
			e.Category,
			e.Need(),
			e.Card,
			e.Who,
			formatBool(e.SplitCost),
			formatBool(e.Outlier),
			e.Notes,
		}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("write row %d: %w", e.ID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func formatBool(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

func parseBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yes", "true", "1", "y":
		return true
	default:
		return false
	}
}

// Import reads the export format back into expense rows. IDs are left
// zero; the server assigns them on create. Category names that don't
// resolve in the registry are snapped to the nearest known category
// when the typo is small, otherwise kept verbatim.
func Import(r io.Reader, registry *model.Registry) ([]model.Expense, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(header)

	first, err := cr.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	if !isHeader(first) {
		return nil, fmt.Errorf("unrecognized header %v", first)
	}

	var out []model.Expense
	line := 1
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		out = append(out, model.Expense{
			Date:         strings.TrimSpace(rec[0]),
			Description:  strings.TrimSpace(rec[1]),
			Amount:       model.RawAmount(strings.TrimSpace(rec[2])),
			Category:     resolveCategory(rec[3], registry),
			NeedCategory: normalizeNeed(rec[4]),
			Card:         strings.TrimSpace(rec[5]),
			Who:          strings.TrimSpace(rec[6]),
			SplitCost:    parseBool(rec[7]),
			Outlier:      parseBool(rec[8]),
			Notes:        rec[9],
		})
	}
	return out, nil
}

func isHeader(rec []string) bool {
	if len(rec) != len(header) {
		return false
	}
	for i, want := range header {
		if !strings.EqualFold(strings.TrimSpace(rec[i]), want) {
			return false
		}
	}
	return true
}

func normalizeNeed(s string) string {
	if strings.EqualFold(strings.TrimSpace(s), model.NeedCategoryLuxury) {
		return model.NeedCategoryLuxury
	}
	return model.NeedCategoryNeed
}

// resolveCategory snaps a name to a known category: exact registry
// hit first, then the closest known name within edit distance 2.
func resolveCategory(name string, registry *model.Registry) string {
	name = strings.TrimSpace(name)
	if name == "" || registry == nil {
		return name
	}
	if c, ok := registry.Lookup(name); ok {
		return c.Name
	}
	key := model.NormalizeCategory(name)
	best, bestDist := "", 3
	for _, known := range registry.Names() {
		d := levenshtein.ComputeDistance(key, model.NormalizeCategory(known))
		if d < bestDist {
			best, bestDist = known, d
		}
	}
	if best != "" {
		return best
	}
	return name
}
