package replay

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/Iron-Ham/focusgrid/internal/eligibility"
)

// Column widths of the text transcript.
var columns = []struct {
	title string
	width int
}{
	{"#", 3},
	{"op", 18},
	{"args", 28},
	{"outcome", 9},
	{"location", 9},
	{"focused", 12},
	{"picks", 0},
}

var (
	headerStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#A78BFA"))
	titleStyle    = lipgloss.NewStyle().Bold(true)
	mutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#9CA3AF"))
	enabledStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#10B981"))
	disabledStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F59E0B"))
)

func outcomeStyle(o eligibility.Outcome) lipgloss.Style {
	switch o {
	case eligibility.OutcomeEnabled:
		return enabledStyle
	case eligibility.OutcomeDisabled:
		return disabledStyle
	default:
		return mutedStyle
	}
}

// cell pads or truncates s to width display columns. Width 0 leaves s as is.
func cell(s string, width int) string {
	if width == 0 {
		return s
	}
	return runewidth.FillRight(runewidth.Truncate(s, width, "…"), width)
}

// WriteText writes t as an aligned table. styled adds color; pass false
// when w is not a terminal.
func WriteText(w io.Writer, t *Transcript, styled bool) error {
	paint := func(style lipgloss.Style, s string) string {
		if !styled {
			return s
		}
		return style.Render(s)
	}

	var sb strings.Builder
	title := fmt.Sprintf("%s (%s)", t.Name, t.Surface)
	if t.Name == "" {
		title = fmt.Sprintf("(%s)", t.Surface)
	}
	sb.WriteString(paint(titleStyle, title))
	sb.WriteString(paint(mutedStyle, "  session "+t.Session))
	sb.WriteString("\n")

	header := make([]string, 0, len(columns))
	for _, c := range columns {
		header = append(header, cell(c.title, c.width))
	}
	sb.WriteString(paint(headerStyle, strings.TrimRight(strings.Join(header, " "), " ")))
	sb.WriteString("\n")

	for _, e := range t.Entries {
		step := "-"
		if e.Step >= 0 {
			step = strconv.Itoa(e.Step)
		}
		outcome := string(e.Outcome)
		if outcome == "" {
			outcome = "."
		}
		picks := strings.Join(e.Picks, ",")
		if e.Note != "" {
			picks = strings.TrimSpace(picks + "  " + paint(mutedStyle, "("+e.Note+")"))
		}
		row := []string{
			cell(step, columns[0].width),
			cell(string(e.Op), columns[1].width),
			cell(e.Args, columns[2].width),
			paint(outcomeStyle(e.Outcome), cell(outcome, columns[3].width)),
			cell(e.Location, columns[4].width),
			cell(e.Focused, columns[5].width),
			picks,
		}
		sb.WriteString(strings.TrimRight(strings.Join(row, " "), " "))
		sb.WriteString("\n")
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

// WriteJSON writes t as indented JSON.
func WriteJSON(w io.Writer, t *Transcript) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(t)
}
