package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/gsapre/housetab/internal/view"
)

var tabLabels = []string{"Expenses", "Summary", "Charts", "Statements"}

// View renders the whole screen.
func (m *Model) View() string {
	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n")

	switch m.activeTab {
	case tabExpenses:
		b.WriteString(m.renderExpenses())
	case tabSummary:
		b.WriteString(m.renderSummary())
	case tabCharts:
		b.WriteString(m.renderCharts())
	case tabStatements:
		b.WriteString(m.renderStatements())
	}

	b.WriteString("\n")
	b.WriteString(m.renderStatusBar())
	return b.String()
}

func (m *Model) renderHeader() string {
	title := styleTitle.Render("Housetab")

	tabs := make([]string, 0, len(tabLabels))
	for i, label := range tabLabels {
		if tab(i) == m.activeTab {
			tabs = append(tabs, styleTabActive.Render(label))
		} else {
			tabs = append(tabs, styleTab.Render(label))
		}
	}

	period := styleChipActive.Render(view.FormatPeriod(m.store.Period()))

	line := lipgloss.JoinHorizontal(lipgloss.Center,
		title, "  ", lipgloss.JoinHorizontal(lipgloss.Center, tabs...), "  ", period)

	if m.stale {
		note := "showing cached data"
		if !m.staleAt.IsZero() {
			note = fmt.Sprintf("showing cached data from %s", m.staleAt.Format("2006-01-02 15:04"))
		}
		line = lipgloss.JoinVertical(lipgloss.Left, line, styleStale.Render(note))
	}
	return line
}

func (m *Model) renderStatusBar() string {
	left := ""
	switch {
	case m.uiMode == modeSearch:
		left = "/" + m.search.View()
	case m.uiMode == modeRenameCat:
		left = fmt.Sprintf("rename %q to: ", m.renameFrom) + m.input.View()
	case m.status != "" && m.statusErr:
		left = styleStatusError.Render(m.status)
	case m.status != "":
		left = styleStatusInfo.Render(m.status)
	}

	help := ""
	switch m.activeTab {
	case tabExpenses:
		help = "j/k move · h/l column · enter edit · space select · d/D delete · u undo · / search · s/S sort · p period · c/v/w/n chips · a autofill · e/X category · Z wipe · +/- rows · x/i csv · q quit"
	case tabCharts:
		help = "m monthly/yearly · tab switch · q quit"
	case tabStatements:
		help = "j/k move · R reimport · d delete · r reload · q quit"
	default:
		help = "tab switch · q quit"
	}

	if left == "" {
		return styleHelp.Render(help)
	}
	return left + "\n" + styleHelp.Render(help)
}
