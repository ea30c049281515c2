package tui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/Iron-Ham/focusgrid/internal/fixture"
	"github.com/Iron-Ham/focusgrid/internal/navigate"
	"github.com/Iron-Ham/focusgrid/internal/traverse"
	"github.com/Iron-Ham/focusgrid/internal/tui/keymap"
)

func decode(t *testing.T, content string) *fixture.Fixture {
	t.Helper()
	f, err := fixture.Decode([]byte(content), fixture.FormatYAML)
	require.NoError(t, err)
	return f
}

func newModel(t *testing.T, content string, opts Options) Model {
	t.Helper()
	if opts.Copy == nil {
		opts.Copy = func(string) error { return nil }
	}
	m, err := NewModel(decode(t, content), opts)
	require.NoError(t, err)
	return m
}

// key builds the KeyMsg bubbletea delivers for a key name or typed text.
func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "space":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		return tea.KeyMsg{Type: tea.KeyShiftTab}
	case "ctrl+u":
		return tea.KeyMsg{Type: tea.KeyCtrlU}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(t *testing.T, m Model, keys ...string) Model {
	t.Helper()
	for _, k := range keys {
		next, _ := m.Update(key(k))
		m = next.(Model)
	}
	return m
}

const listFixture = `
name: menu
cycles:
  - items:
      - {key: a, label: Alpha}
      - {key: b, label: Beta}
      - {key: c, label: Gamma, ability: disabled}
      - {key: d, label: Delta}
`

const checkboxFixture = `
cycles:
  - items:
      - {key: x, label: Alpha, kind: checkbox}
      - {key: y, label: Beta, kind: checkbox}
      - {key: z, label: Gamma, kind: checkbox}
`

const gridFixture = `
kind: plane
cycles:
  - rows:
      - [{key: a1}, {key: a2}, {key: a3}]
      - [{key: b1}, {key: b2}, {key: b3}]
`

func TestListFocus(t *testing.T) {
	m := newModel(t, listFixture, Options{})
	require.Equal(t, "0", m.Location())

	tests := []struct {
		key  string
		want string
	}{
		{"j", "1"},
		{"j", "3"}, // disabled Gamma is skipped
		{"j", "3"},
		{"k", "1"},
		{"G", "3"},
		{"g", "0"},
		{"tab", "1"},
		{"shift+tab", "0"},
	}
	for _, tt := range tests {
		m = press(t, m, tt.key)
		require.Equal(t, tt.want, m.Location(), "after %q", tt.key)
	}
}

func TestPickCommands(t *testing.T) {
	m := newModel(t, checkboxFixture, Options{})

	m = press(t, m, "space")
	require.Equal(t, []string{"x"}, m.Picks())

	m = press(t, m, "j", "space")
	require.Equal(t, []string{"x", "y"}, m.Picks())

	m = press(t, m, "space")
	require.Equal(t, []string{"x"}, m.Picks(), "space on a picked item unpicks it")

	m = press(t, m, "enter")
	require.Equal(t, []string{"y"}, m.Picks())

	m = press(t, m, "a")
	require.ElementsMatch(t, []string{"x", "y", "z"}, m.Picks())

	m = press(t, m, "x")
	require.Empty(t, m.Picks())
}

func TestPickExtendAndRange(t *testing.T) {
	m := newModel(t, checkboxFixture, Options{})

	m = press(t, m, "J")
	require.Equal(t, []string{"y"}, m.Picks())
	require.Equal(t, "1", m.Location(), "focus follows the extended pick")

	m = press(t, m, "J")
	require.Equal(t, []string{"y", "z"}, m.Picks())

	m = press(t, m, "x", "g", "v", "G", "V")
	require.ElementsMatch(t, []string{"x", "y", "z"}, m.Picks())
}

func TestGridFocus(t *testing.T) {
	m := newModel(t, gridFixture, Options{})
	require.Equal(t, "(0,0)", m.Location())

	tests := []struct {
		key  string
		want string
	}{
		{"l", "(0,1)"},
		{"j", "(1,1)"},
		{"h", "(1,0)"},
		{"k", "(0,0)"},
		{"$", "(0,2)"},
		{"0", "(0,0)"},
		{"G", "(1,2)"},
		{"tab", "(1,2)"},
		{"shift+tab", "(1,1)"},
	}
	for _, tt := range tests {
		m = press(t, m, tt.key)
		require.Equal(t, tt.want, m.Location(), "after %q", tt.key)
	}
}

func TestPolicyToggles(t *testing.T) {
	m := newModel(t, listFixture, Options{})
	require.False(t, m.Policy().Loops)

	m = press(t, m, "w")
	require.True(t, m.Policy().Loops)
	m = press(t, m, "k")
	require.Equal(t, "3", m.Location(), "wraps to the last enabled item")

	g := newModel(t, gridFixture, Options{NavigateOptions: []navigate.Option{navigate.WithLoops(true)}})
	require.Equal(t, traverse.Horizontal, g.Policy().Direction)
	g = press(t, g, "l", "d")
	require.Equal(t, traverse.Vertical, g.Policy().Direction)
	require.True(t, g.Policy().Loops, "toggling direction keeps the other fields")
	require.Equal(t, "(0,1)", g.Location(), "rebuilding keeps focus")
}

func TestFilterMode(t *testing.T) {
	m := newModel(t, listFixture, Options{})

	m = press(t, m, "/")
	require.Equal(t, keymap.ModeFilter, m.Mode())

	m = press(t, m, "elt")
	require.Equal(t, "elt", m.Filter())
	require.Equal(t, "3", m.Location(), "focus moves to the first match")

	m = press(t, m, "enter")
	require.Equal(t, keymap.ModeNormal, m.Mode())
	require.Equal(t, "elt", m.Filter())

	m = press(t, m, "k")
	require.Equal(t, "3", m.Location(), "no other item matches")

	m = press(t, m, "esc")
	require.Empty(t, m.Filter())
	m = press(t, m, "k")
	require.Equal(t, "1", m.Location())
}

func TestFilterCancelRestoresPattern(t *testing.T) {
	m := newModel(t, listFixture, Options{})

	m = press(t, m, "/", "bet")
	require.Equal(t, "1", m.Location())
	m = press(t, m, "esc")
	require.Equal(t, keymap.ModeNormal, m.Mode())
	require.Empty(t, m.Filter())
	require.Equal(t, "1", m.Location())

	m = press(t, m, "/", "zzz", "ctrl+u")
	require.Empty(t, m.Filter())
	require.Equal(t, keymap.ModeFilter, m.Mode())
}

func TestFilterFuzzy(t *testing.T) {
	m := newModel(t, listFixture, Options{FuzzyDistance: 1})
	m = press(t, m, "/", "delte", "enter")
	require.Equal(t, "3", m.Location())
}

func TestNextCycle(t *testing.T) {
	const content = `
cycles:
  - items: [{key: a}, {key: b}, {key: c}]
  - items: [{key: c}, {key: a}, {key: b}]
`
	m := newModel(t, content, Options{})
	m = press(t, m, "j", "space")

	m = press(t, m, "n")
	require.Equal(t, 1, m.Cycle())
	require.Equal(t, "2", m.Location(), "focus follows b")
	require.Equal(t, []string{"b"}, m.Picks())

	m = press(t, m, "n")
	require.Equal(t, 0, m.Cycle())
	require.Equal(t, "1", m.Location())
}

func TestYank(t *testing.T) {
	var copied string
	m := newModel(t, checkboxFixture, Options{Copy: func(s string) error {
		copied = s
		return nil
	}})
	m = press(t, m, "space", "j", "space")

	next, cmd := m.Update(key("y"))
	require.NotNil(t, cmd)
	next, _ = next.(Model).Update(cmd())
	m = next.(Model)

	require.Equal(t, "Alpha\nBeta", copied)
	require.Contains(t, m.View(), "Copied 2 picks")
}

func TestYankFailure(t *testing.T) {
	m := newModel(t, checkboxFixture, Options{Copy: func(string) error { return errors.New("boom") }})

	_, cmd := m.Update(key("y"))
	next, _ := m.Update(cmd())
	require.Contains(t, next.(Model).View(), "Copy failed: boom")
}

func TestKeyOverrides(t *testing.T) {
	m := newModel(t, checkboxFixture, Options{Keys: map[string]string{"pick_all": "A"}})
	m = press(t, m, "A")
	require.Len(t, m.Picks(), 3)

	_, err := NewModel(decode(t, checkboxFixture), Options{Keys: map[string]string{"explode": "e"}})
	require.Error(t, err)
}

func TestHelpMode(t *testing.T) {
	m := newModel(t, listFixture, Options{})
	m = press(t, m, "?")
	require.Equal(t, keymap.ModeHelp, m.Mode())

	view := m.View()
	for _, want := range []string{"Focus", "Pick", "Collection", "j/down"} {
		require.Contains(t, view, want)
	}

	m = press(t, m, "j")
	require.Equal(t, "0", m.Location(), "focus keys are inactive under help")

	m = press(t, m, "esc")
	require.Equal(t, keymap.ModeNormal, m.Mode())
}

func TestView(t *testing.T) {
	m := newModel(t, checkboxFixture, Options{Session: "0123456789"})
	m = press(t, m, "space")

	next, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	view := next.(Model).View()

	require.Contains(t, view, "session 01234567")
	require.Contains(t, view, "[x]")
	require.Contains(t, view, "Gamma")
	require.Contains(t, view, "picks 1")
	require.Contains(t, view, "last enabled")

	g := newModel(t, gridFixture, Options{CellWidth: 6})
	view = g.View()
	require.Contains(t, view, "a1")
	require.Contains(t, view, "horizontal")
	for _, line := range strings.Split(view, "\n") {
		require.NotContains(t, line, "a1 a2", "cells are padded to the cell width")
	}
}

func TestViewTruncatesLongLabels(t *testing.T) {
	const content = `
cycles:
  - items:
      - {key: a, label: "An unusually long label that cannot fit"}
      - {key: b, label: Short}
`
	m := newModel(t, content, Options{CellWidth: 4})
	next, _ := m.Update(tea.WindowSizeMsg{Width: 24, Height: 10})
	view := next.(Model).View()

	require.Contains(t, view, "Short")
	require.Contains(t, view, "An unusually")
	require.NotContains(t, view, "cannot fit")
}

func TestQuit(t *testing.T) {
	m := newModel(t, listFixture, Options{})
	next, cmd := m.Update(key("q"))
	require.NotNil(t, cmd)
	require.Equal(t, tea.QuitMsg{}, cmd())
	require.Empty(t, next.(Model).View())

	m = press(t, m, "/")
	_, cmd = m.Update(key("ctrl+c"))
	require.NotNil(t, cmd)
}
