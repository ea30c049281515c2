package styles

import "github.com/charmbracelet/lipgloss"

// Styles contains the lipgloss styles built from a color palette.
type Styles struct {
	Palette *ColorPalette

	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Muted    lipgloss.Style
	Error    lipgloss.Style

	// Cell states. A cell may be focused and picked at the same time.
	Cell          lipgloss.Style
	Focused       lipgloss.Style
	Picked        lipgloss.Style
	FocusedPicked lipgloss.Style
	Disabled      lipgloss.Style
	Ineligible    lipgloss.Style
	Match         lipgloss.Style

	// Panel and bars
	Panel     lipgloss.Style
	StatusBar lipgloss.Style
	HelpKey   lipgloss.Style
	HelpDesc  lipgloss.Style
	Prompt    lipgloss.Style
}

// New builds Styles from the given palette.
func New(p *ColorPalette) *Styles {
	s := &Styles{Palette: p}

	s.Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(p.Primary)

	s.Subtitle = lipgloss.NewStyle().
		Foreground(p.Muted).
		Italic(true)

	s.Muted = lipgloss.NewStyle().Foreground(p.Muted)
	s.Error = lipgloss.NewStyle().Foreground(p.Error).Bold(true)

	s.Cell = lipgloss.NewStyle().Foreground(p.Text)
	s.Focused = lipgloss.NewStyle().
		Foreground(p.Primary).
		Background(p.Surface).
		Bold(true)
	s.Picked = lipgloss.NewStyle().Foreground(p.Secondary)
	s.FocusedPicked = s.Focused.Foreground(p.Secondary)
	s.Disabled = lipgloss.NewStyle().Foreground(p.Warning).Faint(true)
	s.Ineligible = lipgloss.NewStyle().Foreground(p.Muted).Strikethrough(true)
	s.Match = lipgloss.NewStyle().Foreground(p.MatchFg).Background(p.MatchBg)

	s.Panel = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.Border).
		Padding(0, 1)

	s.StatusBar = lipgloss.NewStyle().Foreground(p.Muted)
	s.HelpKey = lipgloss.NewStyle().Foreground(p.Primary).Bold(true)
	s.HelpDesc = lipgloss.NewStyle().Foreground(p.Muted)
	s.Prompt = lipgloss.NewStyle().Foreground(p.Primary)

	return s
}

// ForTheme builds Styles for a named theme.
func ForTheme(name string) *Styles {
	return New(GetPalette(ThemeName(name)))
}
