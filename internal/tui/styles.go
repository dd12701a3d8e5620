package tui

import "github.com/charmbracelet/lipgloss"

// Palette, reassigned by applyTheme.
var (
	colorBase     lipgloss.Color
	colorSurface0 lipgloss.Color
	colorSurface1 lipgloss.Color
	colorText     lipgloss.Color
	colorSubtext  lipgloss.Color
	colorDim      lipgloss.Color
	colorAccent   lipgloss.Color
	colorBlue     lipgloss.Color
	colorSapphire lipgloss.Color
	colorGreen    lipgloss.Color
	colorYellow   lipgloss.Color
	colorRed      lipgloss.Color
	colorLavender lipgloss.Color
)

var (
	brandStyle         lipgloss.Style
	headerStyle        lipgloss.Style
	sectionHeaderStyle lipgloss.Style
	labelStyle         lipgloss.Style
	valueStyle         lipgloss.Style
	dimStyle           lipgloss.Style
	errorStyle         lipgloss.Style
	separatorStyle     lipgloss.Style

	tabActiveStyle   lipgloss.Style
	tabInactiveStyle lipgloss.Style

	chartAxisStyle lipgloss.Style
	captionStyle   lipgloss.Style
	streakStyle    lipgloss.Style
	refreshStyle   lipgloss.Style
)

func applyTheme(t Theme) {
	colorBase = t.Base
	colorSurface0 = t.Surface0
	colorSurface1 = t.Surface1
	colorText = t.Text
	colorSubtext = t.Subtext
	colorDim = t.Dim
	colorAccent = t.Accent
	colorBlue = t.Blue
	colorSapphire = t.Sapphire
	colorGreen = t.Green
	colorYellow = t.Yellow
	colorRed = t.Red
	colorLavender = t.Lavender

	brandStyle = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(colorLavender)
	sectionHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(colorBlue)
	labelStyle = lipgloss.NewStyle().Foreground(colorSubtext)
	valueStyle = lipgloss.NewStyle().Foreground(colorText)
	dimStyle = lipgloss.NewStyle().Foreground(colorDim)
	errorStyle = lipgloss.NewStyle().Foreground(colorRed)
	separatorStyle = lipgloss.NewStyle().Foreground(colorSurface1)

	tabActiveStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(colorBase).
		Background(colorAccent).
		Padding(0, 1)
	tabInactiveStyle = lipgloss.NewStyle().
		Foreground(colorDim).
		Background(colorSurface0).
		Padding(0, 1)

	chartAxisStyle = lipgloss.NewStyle().Foreground(colorDim)
	captionStyle = lipgloss.NewStyle().Foreground(colorSapphire)
	streakStyle = lipgloss.NewStyle().Bold(true).Foreground(colorGreen)
	refreshStyle = lipgloss.NewStyle().Foreground(colorYellow)
}
