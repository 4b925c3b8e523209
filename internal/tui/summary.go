package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/gsapre/housetab/internal/view"
)

func (m *Model) renderSummary() string {
	rows := m.store.Visible()
	cur := m.cfg.UI.CurrencySymbol

	total := view.Total(rows)
	split := view.SplitTotal(rows)
	perDay, perMonth := view.Averages(rows)

	cards := []string{
		summaryCard("Total", fmt.Sprintf("%s%.2f", cur, total)),
		summaryCard("Split half", fmt.Sprintf("%s%.2f", cur, split/2)),
		summaryCard("Avg / day", fmt.Sprintf("%s%.2f", cur, perDay)),
		summaryCard("Avg / month", fmt.Sprintf("%s%.2f", cur, perMonth)),
	}

	memberTotals := view.MemberTotals(rows, m.members)
	names := make([]string, 0, len(memberTotals))
	for name := range memberTotals {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		cards = append(cards, summaryCard(name, fmt.Sprintf("%s%.2f", cur, memberTotals[name])))
	}

	var b strings.Builder
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, cards...))
	b.WriteString("\n\n")

	b.WriteString(styleCardTitle.Render("Largest expenses"))
	b.WriteString("\n")
	for _, e := range view.RecentLarge(rows, 3) {
		amount := string(e.Amount)
		if v, ok := e.Amount.Value(); ok {
			amount = fmt.Sprintf("%s%.2f", cur, v)
		}
		b.WriteString(fmt.Sprintf("  %s  %-28s %s\n", pad(e.Date, 10), pad(e.Description, 28), amount))
	}

	b.WriteString("\n")
	b.WriteString(styleCardTitle.Render("Top merchants"))
	b.WriteString("\n")
	for _, g := range view.TopN(view.ByMerchant(rows), 10) {
		b.WriteString(fmt.Sprintf("  %-20s %s%.2f\n", g.Key, cur, g.Sum))
	}
	return b.String()
}

func summaryCard(title, value string) string {
	return styleCard.Render(lipgloss.JoinVertical(lipgloss.Left,
		styleCardTitle.Render(title),
		styleCardValue.Render(value),
	))
}
