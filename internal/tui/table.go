package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/gsapre/housetab/internal/edit"
	"github.com/gsapre/housetab/internal/model"
	"github.com/gsapre/housetab/internal/view"
)

type columnSpec struct {
	title string
	width int
}

var tableColumns = []columnSpec{
	{"Date", 10},
	{"Description", 28},
	{"Amount", 10},
	{"Category", 14},
	{"Need", 7},
	{"Card", 8},
	{"Who", 10},
	{"Notes", 18},
}

func (m *Model) renderExpenses() string {
	rows := m.store.Visible()

	var b strings.Builder
	b.WriteString(m.renderChips())
	b.WriteString("\n")
	b.WriteString(m.renderTableHeader())
	b.WriteString("\n")

	if len(rows) == 0 {
		b.WriteString(styleHelp.Render("no expenses match the current view"))
		b.WriteString("\n")
		return b.String()
	}

	perPage := m.cfg.UI.RowsPerPage
	if perPage <= 0 {
		perPage = 20
	}
	start := (m.cursor / perPage) * perPage
	end := start + perPage
	if end > len(rows) {
		end = len(rows)
	}

	for i := start; i < end; i++ {
		b.WriteString(m.renderRow(rows[i], i))
		b.WriteString("\n")
	}

	b.WriteString(styleHelp.Render(fmt.Sprintf("%d–%d of %d · %d selected",
		start+1, end, len(rows), len(m.store.Selected()))))
	b.WriteString("\n")
	return b.String()
}

func (m *Model) renderTableHeader() string {
	dir := m.store.SortDirective()
	cells := make([]string, 0, len(tableColumns)+1)
	cells = append(cells, pad(" ", 2))
	for i, col := range tableColumns {
		title := col.title
		if sortColumns[i] == dir.Column {
			if dir.Direction > 0 {
				title += " ↑"
			} else {
				title += " ↓"
			}
		}
		cells = append(cells, pad(title, col.width))
	}
	return styleTableHeader.Render(strings.Join(cells, " "))
}

func (m *Model) renderRow(e model.Expense, idx int) string {
	marker := "  "
	if m.store.IsSelected(e.ID) {
		marker = "✓ "
	}

	cells := make([]string, 0, len(tableColumns)+1)
	cells = append(cells, marker)
	for col, f := range editColumns {
		value := cellValue(e, f)
		if f == edit.FieldAmount {
			if v, ok := e.Amount.Value(); ok {
				value = fmt.Sprintf("%s%.2f", m.cfg.UI.CurrencySymbol, v)
			}
		}
		cell := pad(value, tableColumns[col].width)

		if m.uiMode == modeEditing && idx == m.cursor && col == m.col {
			cell = styleCellEditing.Render(pad(m.input.View(), tableColumns[col].width))
		} else if idx == m.cursor && col == m.col {
			cell = styleRowCursor.Render(cell)
		}
		cells = append(cells, cell)
	}

	line := strings.Join(cells, " ")
	switch {
	case m.uiMode != modeEditing && idx == m.cursor:
		return line
	case m.store.IsSelected(e.ID):
		return styleRowSelected.Render(line)
	default:
		return styleRow.Render(line)
	}
}

func (m *Model) renderChips() string {
	chips := []string{}

	addChips := func(groups []view.GroupSum, active int, render func(string) string) {
		for i, g := range groups {
			label := render(g.Key)
			if i == active {
				chips = append(chips, styleChipActive.Render(label))
			} else {
				chips = append(chips, styleChip.Render(label))
			}
		}
	}
	addChips(m.topCategories(), m.chipCat, func(s string) string { return s })
	addChips(m.topCards(), m.chipCard, func(s string) string { return "💳 " + s })
	addChips(m.topSpenders(), m.chipWho, func(s string) string { return "@" + s })

	for i, label := range []string{model.NeedCategoryNeed, model.NeedCategoryLuxury} {
		if i == m.chipNeed {
			chips = append(chips, styleChipActive.Render(label))
		} else {
			chips = append(chips, styleChip.Render(label))
		}
	}

	if len(chips) == 0 {
		return ""
	}
	return lipgloss.JoinHorizontal(lipgloss.Center, strings.Join(chips, " "))
}

// pad truncates or right-pads a value to the column width. Widths are
// display cells measured with lipgloss, so double-width glyphs stay
// aligned.
func pad(s string, width int) string {
	if lipgloss.Width(s) > width {
		var b strings.Builder
		used := 0
		for _, r := range s {
			rw := lipgloss.Width(string(r))
			if used+rw > width-1 {
				break
			}
			b.WriteRune(r)
			used += rw
		}
		s = b.String() + "…"
	}
	return s + strings.Repeat(" ", width-lipgloss.Width(s))
}
