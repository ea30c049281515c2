// Package keymap provides key binding definitions and lookup for the
// focus and pick demo. Bindings are declarative and mode-aware so the
// model's Update method only maps commands to engine calls.
package keymap

import (
	"fmt"
	"maps"
	"slices"
	"strings"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"
)

// Mode represents the current input mode of the TUI.
// Different modes have different key bindings active.
type Mode string

const (
	ModeNormal Mode = "normal" // Moving focus and picking
	ModeFilter Mode = "filter" // Typing a label filter (after /)
	ModeHelp   Mode = "help"   // Help overlay is open
)

// Command represents a named action that can be triggered by a key binding.
type Command string

// Focus commands. On a list, left and right behave like up and down.
const (
	CmdFocusUp     Command = "focus_up"
	CmdFocusDown   Command = "focus_down"
	CmdFocusLeft   Command = "focus_left"
	CmdFocusRight  Command = "focus_right"
	CmdFocusNext   Command = "focus_next"     // next along the policy direction
	CmdFocusPrev   Command = "focus_previous" // previous along the policy direction
	CmdFocusFirst  Command = "focus_first"
	CmdFocusLast   Command = "focus_last"
	CmdLineStart   Command = "line_start" // first in row
	CmdLineEnd     Command = "line_end"   // last in row
	CmdFocusRandom Command = "focus_random"
)

// Pick commands
const (
	CmdPickToggle  Command = "pick_toggle"  // pick the focused item, keeping others
	CmdPickOnly    Command = "pick_only"    // pick the focused item alone
	CmdPickNext    Command = "pick_next"    // extend the selection forward
	CmdPickPrev    Command = "pick_previous"
	CmdPickAll     Command = "pick_all"
	CmdPickAnchor  Command = "pick_anchor" // set the range anchor
	CmdPickRange   Command = "pick_range"  // pick anchor..focus
	CmdPickClear   Command = "pick_clear"
	CmdYank        Command = "yank" // copy picked labels to the clipboard
	CmdNextCycle   Command = "next_cycle"
	CmdToggleLoops Command = "toggle_loops"
	CmdToggleDir   Command = "toggle_direction"
)

// Mode commands
const (
	CmdEnterFilter Command = "enter_filter"
	CmdToggleHelp  Command = "toggle_help"
	CmdQuit        Command = "quit"

	CmdConfirm     Command = "confirm"
	CmdCancel      Command = "cancel"
	CmdClearFilter Command = "clear_filter"
)

// Key is one key press as bubbletea reports it. Ctrl combinations and
// shift+tab are key types of their own; alt is the only free modifier.
type Key struct {
	Type tea.KeyType
	Rune rune // set when Type is tea.KeyRunes
	Alt  bool
}

// Matches reports whether msg is this key.
func (k Key) Matches(msg tea.KeyMsg) bool {
	if msg.Alt != k.Alt || msg.Type != k.Type {
		return false
	}
	if k.Type != tea.KeyRunes {
		return true
	}
	return len(msg.Runes) == 1 && msg.Runes[0] == k.Rune
}

// String renders the key the way ParseKey reads it, e.g. "alt+x", "space".
func (k Key) String() string {
	var name string
	switch k.Type {
	case tea.KeyRunes:
		name = string(k.Rune)
	case tea.KeySpace:
		name = "space"
	default:
		name = k.Type.String()
	}
	if k.Alt {
		return "alt+" + name
	}
	return name
}

// namedKeys are the key names ParseKey accepts besides single runes,
// ctrl+<letter> and f1..f20.
var namedKeys = map[string]tea.KeyType{
	"enter":     tea.KeyEnter,
	"tab":       tea.KeyTab,
	"shift+tab": tea.KeyShiftTab,
	"esc":       tea.KeyEsc,
	"escape":    tea.KeyEsc,
	"space":     tea.KeySpace,
	"backspace": tea.KeyBackspace,
	"delete":    tea.KeyDelete,
	"insert":    tea.KeyInsert,
	"up":        tea.KeyUp,
	"down":      tea.KeyDown,
	"left":      tea.KeyLeft,
	"right":     tea.KeyRight,
	"home":      tea.KeyHome,
	"end":       tea.KeyEnd,
	"pgup":      tea.KeyPgUp,
	"pageup":    tea.KeyPgUp,
	"pgdown":    tea.KeyPgDown,
	"pagedown":  tea.KeyPgDown,
}

var functionKeys = []tea.KeyType{
	tea.KeyF1, tea.KeyF2, tea.KeyF3, tea.KeyF4, tea.KeyF5,
	tea.KeyF6, tea.KeyF7, tea.KeyF8, tea.KeyF9, tea.KeyF10,
	tea.KeyF11, tea.KeyF12, tea.KeyF13, tea.KeyF14, tea.KeyF15,
	tea.KeyF16, tea.KeyF17, tea.KeyF18, tea.KeyF19, tea.KeyF20,
}

// ParseKey reads a key spec such as "j", "G", "enter", "ctrl+a",
// "shift+tab", "alt+left" or "f5".
func ParseKey(spec string) (Key, error) {
	var k Key
	rest := spec
	if after, ok := strings.CutPrefix(rest, "alt+"); ok && after != "" {
		k.Alt = true
		rest = after
	}

	if t, ok := namedKeys[rest]; ok {
		k.Type = t
		return k, nil
	}
	if letter, ok := strings.CutPrefix(rest, "ctrl+"); ok && len(letter) == 1 && letter[0] >= 'a' && letter[0] <= 'z' {
		k.Type = tea.KeyCtrlA + tea.KeyType(letter[0]-'a')
		return k, nil
	}
	var n int
	if _, err := fmt.Sscanf(rest, "f%d", &n); err == nil && rest == fmt.Sprintf("f%d", n) && n >= 1 && n <= len(functionKeys) {
		k.Type = functionKeys[n-1]
		return k, nil
	}
	if utf8.RuneCountInString(rest) == 1 {
		k.Type = tea.KeyRunes
		k.Rune, _ = utf8.DecodeRuneInString(rest)
		return k, nil
	}
	return Key{}, fmt.Errorf("unrecognized key spec: %q", spec)
}

// Binding ties a key to a command within one mode.
type Binding struct {
	Key     Key
	Command Command
	Help    string // shown in the help overlay
	Section string // help overlay heading
}

// Section is one heading of the help overlay with its bindings in order.
type Section struct {
	Name     string
	Bindings []Binding
}

// Keymap holds the bindings of every mode. Earlier bindings win when two
// match the same key.
type Keymap struct {
	modes map[Mode][]Binding
}

// Lookup returns the command bound to msg in mode.
func (km *Keymap) Lookup(msg tea.KeyMsg, mode Mode) (Command, bool) {
	for _, b := range km.modes[mode] {
		if b.Key.Matches(msg) {
			return b.Command, true
		}
	}
	return "", false
}

// Bindings returns the bindings of mode in lookup order.
func (km *Keymap) Bindings(mode Mode) []Binding {
	return km.modes[mode]
}

// KeysFor returns the keys that trigger cmd in mode, in lookup order.
func (km *Keymap) KeysFor(cmd Command, mode Mode) []Key {
	var keys []Key
	for _, b := range km.modes[mode] {
		if b.Command == cmd {
			keys = append(keys, b.Key)
		}
	}
	return keys
}

// Sections groups the bindings of mode under their help headings, in the
// order each heading first appears. Bindings without a heading go last,
// under "Other".
func (km *Keymap) Sections(mode Mode) []Section {
	var sections []Section
	index := make(map[string]int)
	for _, b := range km.modes[mode] {
		name := b.Section
		if name == "" {
			name = "Other"
		}
		i, ok := index[name]
		if !ok {
			i = len(sections)
			index[name] = i
			sections = append(sections, Section{Name: name})
		}
		sections[i].Bindings = append(sections[i].Bindings, b)
	}
	if i, ok := index["Other"]; ok && i != len(sections)-1 {
		other := sections[i]
		sections = append(slices.Delete(sections, i, i+1), other)
	}
	return sections
}

// Bind puts spec ahead of the existing bindings of mode so it takes
// precedence. The command's existing help text is reused.
func (km *Keymap) Bind(mode Mode, spec string, cmd Command) error {
	key, err := ParseKey(spec)
	if err != nil {
		return err
	}
	help := string(cmd)
	if i := slices.IndexFunc(km.modes[mode], func(b Binding) bool { return b.Command == cmd }); i >= 0 {
		help = km.modes[mode][i].Help
	}
	if km.modes == nil {
		km.modes = make(map[Mode][]Binding)
	}
	km.modes[mode] = slices.Insert(km.modes[mode], 0, Binding{Key: key, Command: cmd, Help: help, Section: "Custom"})
	return nil
}

// Override applies user bindings given as command name to key spec, in
// command name order.
func (km *Keymap) Override(mode Mode, overrides map[string]string) error {
	for _, name := range slices.Sorted(maps.Keys(overrides)) {
		cmd := Command(name)
		if !IsCommand(cmd) {
			return fmt.Errorf("binding %s: unknown command", name)
		}
		if err := km.Bind(mode, overrides[name], cmd); err != nil {
			return fmt.Errorf("binding %s: %w", name, err)
		}
	}
	return nil
}
