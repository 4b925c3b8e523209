package tui

import "github.com/charmbracelet/lipgloss"

// Catppuccin Mocha palette — true-color hex values
// https://catppuccin.com/palette

const (
	colorPink     lipgloss.Color = "#f5c2e7"
	colorMauve    lipgloss.Color = "#cba6f7"
	colorRed      lipgloss.Color = "#f38ba8"
	colorPeach    lipgloss.Color = "#fab387"
	colorYellow   lipgloss.Color = "#f9e2af"
	colorGreen    lipgloss.Color = "#a6e3a1"
	colorTeal     lipgloss.Color = "#94e2d5"
	colorBlue     lipgloss.Color = "#89b4fa"
	colorLavender lipgloss.Color = "#b4befe"

	colorText     lipgloss.Color = "#cdd6f4"
	colorSubtext0 lipgloss.Color = "#a6adc8"
	colorOverlay0 lipgloss.Color = "#6c7086"
	colorSurface1 lipgloss.Color = "#45475a"
	colorSurface0 lipgloss.Color = "#313244"
	colorBase     lipgloss.Color = "#1e1e2e"
)

const (
	colorAccent  = colorPink
	colorFocus   = colorLavender
	colorSuccess = colorGreen
	colorError   = colorRed
	colorWarning = colorYellow
)

var (
	styleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)

	styleTab       = lipgloss.NewStyle().Padding(0, 2).Foreground(colorSubtext0)
	styleTabActive = lipgloss.NewStyle().Padding(0, 2).Bold(true).
			Foreground(colorBase).Background(colorAccent)

	styleTableHeader = lipgloss.NewStyle().Bold(true).Foreground(colorLavender).
				BorderStyle(lipgloss.NormalBorder()).BorderBottom(true).
				BorderForeground(colorSurface1)
	styleRow         = lipgloss.NewStyle().Foreground(colorText)
	styleRowCursor   = lipgloss.NewStyle().Foreground(colorBase).Background(colorFocus)
	styleRowSelected = lipgloss.NewStyle().Foreground(colorYellow)
	styleCellEditing = lipgloss.NewStyle().Foreground(colorBase).Background(colorPeach)

	styleCard = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).BorderForeground(colorSurface1).
			Padding(0, 1).MarginRight(1)
	styleCardTitle = lipgloss.NewStyle().Bold(true).Foreground(colorSubtext0)
	styleCardValue = lipgloss.NewStyle().Bold(true).Foreground(colorGreen)

	styleChip       = lipgloss.NewStyle().Padding(0, 1).Foreground(colorSubtext0).Background(colorSurface0)
	styleChipActive = lipgloss.NewStyle().Padding(0, 1).Foreground(colorBase).Background(colorTeal)

	styleBar      = lipgloss.NewStyle().Foreground(colorBlue)
	styleBarLabel = lipgloss.NewStyle().Foreground(colorText)

	styleStatusInfo  = lipgloss.NewStyle().Foreground(colorTeal)
	styleStatusError = lipgloss.NewStyle().Bold(true).Foreground(colorError)
	styleStatusWarn  = lipgloss.NewStyle().Foreground(colorWarning)
	styleHelp        = lipgloss.NewStyle().Foreground(colorOverlay0)
	styleStale       = lipgloss.NewStyle().Italic(true).Foreground(colorWarning)
)

// barChartColors cycles across chart rows.
var barChartColors = []lipgloss.Color{
	colorGreen, colorTeal, colorPeach, colorBlue,
	colorMauve, colorPink, colorLavender, colorYellow,
}
