package shell

import "github.com/charmbracelet/lipgloss"

// ---------------------------------------------------------------------------
// Styles — Catppuccin Mocha themed
// https://catppuccin.com/palette
// ---------------------------------------------------------------------------

const (
	colorPink     lipgloss.Color = "#f5c2e7"
	colorRed      lipgloss.Color = "#f38ba8"
	colorPeach    lipgloss.Color = "#fab387"
	colorYellow   lipgloss.Color = "#f9e2af"
	colorGreen    lipgloss.Color = "#a6e3a1"
	colorLavender lipgloss.Color = "#b4befe"

	colorText     lipgloss.Color = "#cdd6f4"
	colorSubtext0 lipgloss.Color = "#a6adc8"
	colorOverlay1 lipgloss.Color = "#7f849c"
	colorOverlay0 lipgloss.Color = "#6c7086"
	colorSurface0 lipgloss.Color = "#313244"
	colorMantle   lipgloss.Color = "#181825"
)

const (
	colorAccent  = colorPink
	colorBrand   = colorPink
	colorError   = colorRed
	colorWarning = colorYellow
	colorSuccess = colorGreen
)

var (
	// Header bar (spans full width)
	headerBarStyle = lipgloss.NewStyle().
			Foreground(colorText).
			Background(colorMantle).
			Padding(0, 2)

	headerAppStyle = lipgloss.NewStyle().
			Foreground(colorBrand).
			Bold(true)

	// Tab styles
	activeTabStyle = lipgloss.NewStyle().
			Foreground(colorAccent).
			Background(colorSurface0).
			Bold(true).
			Padding(0, 1)

	inactiveTabStyle = lipgloss.NewStyle().
				Foreground(colorOverlay1).
				Background(colorMantle).
				Padding(0, 1)

	tabSepStyle = lipgloss.NewStyle().
			Foreground(colorOverlay0).
			Background(colorMantle)

	badgeStyle = lipgloss.NewStyle().
			Foreground(colorMantle).
			Background(colorPeach).
			Bold(true)

	// Content pane
	contentStyle = lipgloss.NewStyle().Padding(1, 2)

	lineStyle       = lipgloss.NewStyle().Foreground(colorText)
	dimLineStyle    = lipgloss.NewStyle().Foreground(colorSubtext0)
	loadingStyle    = lipgloss.NewStyle().Foreground(colorOverlay1).Italic(true)
	paramStyle      = lipgloss.NewStyle().Foreground(colorLavender)
	transitionStyle = lipgloss.NewStyle().Foreground(colorWarning)

	// Status bar + footer
	statusBarStyle = lipgloss.NewStyle().
			Foreground(colorSubtext0).
			Background(colorSurface0).
			Padding(0, 2)

	footerStyle = lipgloss.NewStyle().
			Foreground(colorSubtext0).
			Background(colorMantle).
			Padding(0, 2)

	helpKeyStyle = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)

	// Confirm modal
	modalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorAccent).
			Padding(1, 2)

	modalTitleStyle  = lipgloss.NewStyle().Foreground(colorWarning).Bold(true)
	modalReasonStyle = lipgloss.NewStyle().Foreground(colorText)
)
