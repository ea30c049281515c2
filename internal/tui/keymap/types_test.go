package keymap

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestParseKey(t *testing.T) {
	tests := []struct {
		spec string
		want Key
	}{
		{"j", Key{Type: tea.KeyRunes, Rune: 'j'}},
		{"G", Key{Type: tea.KeyRunes, Rune: 'G'}},
		{"$", Key{Type: tea.KeyRunes, Rune: '$'}},
		{"é", Key{Type: tea.KeyRunes, Rune: 'é'}},
		{"f", Key{Type: tea.KeyRunes, Rune: 'f'}},
		{"space", Key{Type: tea.KeySpace}},
		{"enter", Key{Type: tea.KeyEnter}},
		{"escape", Key{Type: tea.KeyEsc}},
		{"pagedown", Key{Type: tea.KeyPgDown}},
		{"shift+tab", Key{Type: tea.KeyShiftTab}},
		{"ctrl+a", Key{Type: tea.KeyCtrlA}},
		{"ctrl+u", Key{Type: tea.KeyCtrlU}},
		{"f1", Key{Type: tea.KeyF1}},
		{"f20", Key{Type: tea.KeyF20}},
		{"alt+x", Key{Type: tea.KeyRunes, Rune: 'x', Alt: true}},
		{"alt+left", Key{Type: tea.KeyLeft, Alt: true}},
	}
	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			got, err := ParseKey(tt.spec)
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}

	for _, bad := range []string{"", "jj", "ctrl+", "ctrl+1", "ctrl+A", "f0", "f21", "f5x", "hyper+k", "alt+"} {
		_, err := ParseKey(bad)
		require.Error(t, err, "spec %q", bad)
	}
}

func TestKeyStringRoundTrips(t *testing.T) {
	for _, spec := range []string{"j", "space", "enter", "shift+tab", "ctrl+c", "alt+x", "f5", "down"} {
		k, err := ParseKey(spec)
		require.NoError(t, err)
		require.Equal(t, spec, k.String())
	}
}

func TestKeyMatches(t *testing.T) {
	j := Key{Type: tea.KeyRunes, Rune: 'j'}
	require.True(t, j.Matches(runes("j")))
	require.False(t, j.Matches(runes("k")))
	require.False(t, j.Matches(runes("jj")), "pasted text is not a key press")
	require.False(t, j.Matches(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("j"), Alt: true}))

	altJ := Key{Type: tea.KeyRunes, Rune: 'j', Alt: true}
	require.True(t, altJ.Matches(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("j"), Alt: true}))
	require.False(t, altJ.Matches(runes("j")))

	enter := Key{Type: tea.KeyEnter}
	require.True(t, enter.Matches(tea.KeyMsg{Type: tea.KeyEnter}))
	require.False(t, enter.Matches(tea.KeyMsg{Type: tea.KeyTab}))
}

func TestDefaultKeymapLookup(t *testing.T) {
	km := DefaultKeymap()

	tests := []struct {
		mode Mode
		msg  tea.KeyMsg
		want Command
	}{
		{ModeNormal, runes("j"), CmdFocusDown},
		{ModeNormal, tea.KeyMsg{Type: tea.KeyDown}, CmdFocusDown},
		{ModeNormal, runes("$"), CmdLineEnd},
		{ModeNormal, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune(" ")}, CmdPickToggle},
		{ModeNormal, tea.KeyMsg{Type: tea.KeyShiftTab}, CmdFocusPrev},
		{ModeNormal, tea.KeyMsg{Type: tea.KeyEsc}, CmdClearFilter},
		{ModeFilter, tea.KeyMsg{Type: tea.KeyEsc}, CmdCancel},
		{ModeFilter, tea.KeyMsg{Type: tea.KeyCtrlU}, CmdClearFilter},
		{ModeHelp, tea.KeyMsg{Type: tea.KeyEsc}, CmdToggleHelp},
		{ModeHelp, tea.KeyMsg{Type: tea.KeyCtrlC}, CmdQuit},
	}
	for _, tt := range tests {
		got, ok := km.Lookup(tt.msg, tt.mode)
		require.True(t, ok, "%s %s", tt.mode, tt.msg)
		require.Equal(t, tt.want, got, "%s %s", tt.mode, tt.msg)
	}

	_, ok := km.Lookup(runes("j"), ModeFilter)
	require.False(t, ok, "letters are typed into the filter")
	_, ok = km.Lookup(runes("j"), Mode("missing"))
	require.False(t, ok)
}

func TestDefaultKeymapCoversEveryNormalCommand(t *testing.T) {
	km := DefaultKeymap()
	filterOnly := map[Command]bool{CmdConfirm: true, CmdCancel: true}
	for _, cmd := range Commands() {
		if filterOnly[cmd] {
			require.NotEmpty(t, km.KeysFor(cmd, ModeFilter), cmd)
			continue
		}
		require.NotEmpty(t, km.KeysFor(cmd, ModeNormal), cmd)
	}

	seen := make(map[Key]Command)
	for _, b := range km.Bindings(ModeNormal) {
		prev, dup := seen[b.Key]
		require.False(t, dup, "%s bound to both %s and %s", b.Key, prev, b.Command)
		seen[b.Key] = b.Command
	}
}

func TestKeysFor(t *testing.T) {
	km := DefaultKeymap()
	require.Equal(t, []Key{{Type: tea.KeyRunes, Rune: 'j'}, {Type: tea.KeyDown}}, km.KeysFor(CmdFocusDown, ModeNormal))
	require.Empty(t, km.KeysFor(CmdConfirm, ModeNormal))
}

func TestSections(t *testing.T) {
	km := DefaultKeymap()
	var names []string
	for _, s := range km.Sections(ModeNormal) {
		names = append(names, s.Name)
	}
	require.Equal(t, []string{"Focus", "Pick", "Collection", "Modes", "Application"}, names)

	km.modes[ModeHelp] = append([]Binding{{Key: Key{Type: tea.KeyF1}, Command: CmdQuit}}, km.modes[ModeHelp]...)
	help := km.Sections(ModeHelp)
	require.Equal(t, "Other", help[len(help)-1].Name, "unlabelled bindings go last")
}

func TestBind(t *testing.T) {
	km := DefaultKeymap()
	require.NoError(t, km.Bind(ModeNormal, "ctrl+a", CmdPickAll))

	got, ok := km.Lookup(tea.KeyMsg{Type: tea.KeyCtrlA}, ModeNormal)
	require.True(t, ok)
	require.Equal(t, CmdPickAll, got)

	first := km.Bindings(ModeNormal)[0]
	require.Equal(t, "Pick all", first.Help, "custom bindings keep the command's help")
	require.Equal(t, "Custom", first.Section)

	require.NoError(t, km.Bind(ModeNormal, "j", CmdFocusUp))
	got, _ = km.Lookup(runes("j"), ModeNormal)
	require.Equal(t, CmdFocusUp, got, "a custom binding shadows the default")

	require.Error(t, km.Bind(ModeNormal, "hyper+k", CmdQuit))

	var empty Keymap
	require.NoError(t, empty.Bind(ModeNormal, "q", CmdQuit))
	got, _ = empty.Lookup(runes("q"), ModeNormal)
	require.Equal(t, CmdQuit, got)
}

func TestOverride(t *testing.T) {
	km := DefaultKeymap()
	require.NoError(t, km.Override(ModeNormal, map[string]string{"pick_all": "A", "yank": "ctrl+y"}))

	got, _ := km.Lookup(runes("A"), ModeNormal)
	require.Equal(t, CmdPickAll, got)
	got, _ = km.Lookup(tea.KeyMsg{Type: tea.KeyCtrlY}, ModeNormal)
	require.Equal(t, CmdYank, got)

	require.ErrorContains(t, km.Override(ModeNormal, map[string]string{"explode": "e"}), "unknown command")
	require.ErrorContains(t, km.Override(ModeNormal, map[string]string{"quit": "hyper+q"}), "binding quit")
}
