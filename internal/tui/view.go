package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"

	"github.com/Iron-Ham/focusgrid/internal/snapshot"
	"github.com/Iron-Ham/focusgrid/internal/tui/keymap"
)

// View renders the demo
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")

	if m.mode == keymap.ModeHelp {
		b.WriteString(m.styles.Panel.Render(m.renderHelp()))
	} else {
		b.WriteString(m.styles.Panel.Render(m.renderBoard()))
	}
	b.WriteString("\n")
	b.WriteString(m.renderStatus())
	b.WriteString("\n")

	switch {
	case m.mode == keymap.ModeFilter:
		b.WriteString(m.styles.Prompt.Render(m.input.View()))
	case m.errorMessage != "":
		b.WriteString(m.styles.Error.Render(m.errorMessage))
	case m.infoMessage != "":
		b.WriteString(m.styles.Muted.Render(m.infoMessage))
	default:
		b.WriteString(m.renderHelpBar())
	}
	b.WriteString("\n")
	return b.String()
}

func (m Model) renderHeader() string {
	name := m.fixture.Name
	if name == "" {
		name = "focusgrid"
	}
	session := m.session
	if len(session) > 8 {
		session = session[:8]
	}
	return m.styles.Title.Render(name) + " " + m.styles.Subtitle.Render(fmt.Sprintf("%s · session %s", m.fixture.Kind, session))
}

// marker is the pick indicator drawn before a label.
func marker(c cell) string {
	switch c.Kind {
	case snapshot.KindCheckbox:
		if c.Picked {
			return "[x]"
		}
		return "[ ]"
	case snapshot.KindRadio:
		if c.Picked {
			return "(•)"
		}
		return "( )"
	default:
		if c.Picked {
			return " • "
		}
		return "   "
	}
}

func (m Model) cellStyle(c cell) (lipgloss.Style, bool) {
	switch {
	case c.Focused && c.Picked:
		return m.styles.FocusedPicked, true
	case c.Focused:
		return m.styles.Focused, true
	case c.Picked:
		return m.styles.Picked, true
	case !c.Match:
		return m.styles.Ineligible, true
	case c.Disabled:
		return m.styles.Disabled, true
	}
	return m.styles.Cell, false
}

// fit truncates s to width display columns and pads it to exactly width.
func fit(s string, width int) string {
	return runewidth.FillRight(runewidth.Truncate(s, width, "…"), width)
}

func (m Model) renderBoard() string {
	rows := m.board.cells()
	if len(rows) == 0 {
		return m.styles.Muted.Render("(empty)")
	}
	if m.board.grid() {
		return m.renderGrid(rows)
	}
	return m.renderList(rows)
}

func (m Model) renderList(rows [][]cell) string {
	width := m.cellWidth * 3
	if m.width > 0 {
		width = max(m.width-10, m.cellWidth)
	}
	lines := make([]string, 0, len(rows))
	for _, row := range rows {
		c := row[0]
		label := c.Label
		style, special := m.cellStyle(c)
		if !special {
			label = m.filter.Highlight(label, m.styles.Match)
		}
		// ANSI-aware, so a highlighted match keeps its escape codes
		label = ansi.Truncate(label, width, "…")
		lines = append(lines, style.Render(marker(c)+" "+label))
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderGrid(rows [][]cell) string {
	lines := make([]string, 0, len(rows))
	for _, row := range rows {
		parts := make([]string, 0, len(row))
		for _, c := range row {
			style, _ := m.cellStyle(c)
			parts = append(parts, style.Render(fit(marker(c)+" "+c.Label, m.cellWidth)))
		}
		lines = append(lines, strings.Join(parts, " "))
	}
	return strings.Join(lines, "\n")
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

func (m Model) renderStatus() string {
	p := m.board.policy()
	focus := m.board.location()
	if key, ok := m.board.focused(); ok {
		focus += " " + key
	}
	parts := []string{
		fmt.Sprintf("cycle %d/%d", m.cycle+1, len(m.fixture.Cycles)),
		"focus " + focus,
		fmt.Sprintf("picks %d", len(m.board.picks())),
		"loops " + onOff(p.Loops),
	}
	if m.board.grid() {
		parts = append(parts, string(p.Direction))
	}
	if m.lastOutcome != "" {
		parts = append(parts, "last "+string(m.lastOutcome))
	}
	if m.filter.Active() && m.mode != keymap.ModeFilter {
		parts = append(parts, "filter /"+m.filter.Pattern())
	}
	return m.styles.StatusBar.Render(strings.Join(parts, " · "))
}

// keysFor joins the keys bound to cmd, e.g. "j/down".
func (m Model) keysFor(cmd keymap.Command, mode keymap.Mode) string {
	var keys []string
	for _, k := range m.keymap.KeysFor(cmd, mode) {
		keys = append(keys, k.String())
	}
	return strings.Join(keys, "/")
}

func (m Model) renderHelpBar() string {
	items := []struct {
		cmd  keymap.Command
		desc string
	}{
		{keymap.CmdPickToggle, "pick"},
		{keymap.CmdEnterFilter, "filter"},
		{keymap.CmdNextCycle, "cycle"},
		{keymap.CmdToggleHelp, "help"},
		{keymap.CmdQuit, "quit"},
	}
	parts := make([]string, 0, len(items))
	for _, it := range items {
		keys := m.keymap.KeysFor(it.cmd, keymap.ModeNormal)
		if len(keys) == 0 {
			continue
		}
		parts = append(parts, m.styles.HelpKey.Render(keys[0].String())+" "+m.styles.HelpDesc.Render(it.desc))
	}
	return strings.Join(parts, "  ")
}

func (m Model) renderHelp() string {
	var b strings.Builder
	for i, section := range m.keymap.Sections(keymap.ModeNormal) {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(m.styles.Title.Render(section.Name))
		b.WriteString("\n")
		seen := make(map[keymap.Command]bool)
		for _, binding := range section.Bindings {
			if seen[binding.Command] {
				continue
			}
			seen[binding.Command] = true
			keys := fit(m.keysFor(binding.Command, keymap.ModeNormal), 14)
			b.WriteString("  " + m.styles.HelpKey.Render(keys) + m.styles.HelpDesc.Render(binding.Help) + "\n")
		}
	}
	return strings.TrimRight(b.String(), "\n")
}
