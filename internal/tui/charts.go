package tui

import (
	"fmt"
	"strings"

	"github.com/gsapre/housetab/internal/view"
)

const barWidth = 36

func (m *Model) renderCharts() string {
	rows := m.store.Visible()

	var b strings.Builder
	b.WriteString(styleCardTitle.Render("Spend by category"))
	b.WriteString("\n")
	b.WriteString(renderBars(view.ByCategory(rows), m.cfg.UI.CurrencySymbol))

	b.WriteString("\n")
	if m.chartYearly {
		b.WriteString(styleCardTitle.Render("Spend by year"))
		b.WriteString("\n")
		b.WriteString(renderBars(view.ByYear(rows), m.cfg.UI.CurrencySymbol))
	} else {
		b.WriteString(styleCardTitle.Render("Spend by month"))
		b.WriteString("\n")
		b.WriteString(renderBars(view.ByMonth(rows), m.cfg.UI.CurrencySymbol))
	}

	b.WriteString("\n")
	b.WriteString(styleCardTitle.Render("Need vs luxury"))
	b.WriteString("\n")
	b.WriteString(renderBars(view.ByNeed(rows), m.cfg.UI.CurrencySymbol))

	b.WriteString("\n")
	b.WriteString(styleCardTitle.Render("Spend by weekday"))
	b.WriteString("\n")
	b.WriteString(renderBars(view.ByDayOfWeek(rows), m.cfg.UI.CurrencySymbol))
	return b.String()
}

func renderBars(groups []view.GroupSum, currency string) string {
	if len(groups) == 0 {
		return styleHelp.Render("  no data") + "\n"
	}
	max := groups[0].Sum
	for _, g := range groups {
		if g.Sum > max {
			max = g.Sum
		}
	}
	if max <= 0 {
		max = 1
	}

	var b strings.Builder
	for i, g := range groups {
		n := int(g.Sum / max * barWidth)
		if n < 1 && g.Sum > 0 {
			n = 1
		}
		bar := styleBar.Foreground(barChartColors[i%len(barChartColors)]).
			Render(strings.Repeat("█", n))
		b.WriteString(fmt.Sprintf("  %s %s %s\n",
			styleBarLabel.Render(pad(g.Key, 14)),
			bar,
			styleHelp.Render(fmt.Sprintf("%s%.2f", currency, g.Sum))))
	}
	return b.String()
}

func (m *Model) renderStatements() string {
	var b strings.Builder
	b.WriteString(styleCardTitle.Render("Uploaded statements"))
	b.WriteString("\n")

	if len(m.statements) == 0 {
		b.WriteString(styleHelp.Render("  no statements uploaded"))
		b.WriteString("\n")
		return b.String()
	}

	for i, st := range m.statements {
		line := fmt.Sprintf("  %s %s %s %4d rows",
			pad(fmt.Sprintf("#%d", st.ID), 6),
			pad(st.Filename, 32),
			pad(st.UploadedAt, 20),
			st.RowCount)
		if i == m.stCursor {
			line = styleRowCursor.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}
