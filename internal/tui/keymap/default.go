package keymap

import "slices"

// DefaultKeymap returns the default demo key bindings.
func DefaultKeymap() *Keymap {
	km := &Keymap{modes: make(map[Mode][]Binding)}

	normal := km.section(ModeNormal, "Focus")
	normal(CmdFocusUp, "Up", "k", "up")
	normal(CmdFocusDown, "Down", "j", "down")
	normal(CmdFocusLeft, "Left", "h", "left")
	normal(CmdFocusRight, "Right", "l", "right")
	normal(CmdFocusNext, "Next", "tab")
	normal(CmdFocusPrev, "Previous", "shift+tab")
	normal(CmdFocusFirst, "First", "g", "home")
	normal(CmdFocusLast, "Last", "G", "end")
	normal(CmdLineStart, "Start of row", "0")
	normal(CmdLineEnd, "End of row", "$")
	normal(CmdFocusRandom, "Random", "r")

	normal = km.section(ModeNormal, "Pick")
	normal(CmdPickToggle, "Pick focused", "space")
	normal(CmdPickOnly, "Pick only focused", "enter")
	normal(CmdPickNext, "Extend forward", "J")
	normal(CmdPickPrev, "Extend backward", "K")
	normal(CmdPickAll, "Pick all", "a")
	normal(CmdPickAnchor, "Set range anchor", "v")
	normal(CmdPickRange, "Pick anchor to focus", "V")
	normal(CmdPickClear, "Clear picks", "x")
	normal(CmdYank, "Copy picks", "y")

	normal = km.section(ModeNormal, "Collection")
	normal(CmdNextCycle, "Next cycle", "n")
	normal(CmdToggleLoops, "Toggle wrapping", "w")
	normal(CmdToggleDir, "Toggle direction", "d")

	normal = km.section(ModeNormal, "Modes")
	normal(CmdEnterFilter, "Filter", "/")
	normal(CmdClearFilter, "Clear filter", "esc")
	normal(CmdToggleHelp, "Toggle help", "?")

	km.section(ModeNormal, "Application")(CmdQuit, "Quit", "q", "ctrl+c")

	filter := km.section(ModeFilter, "Filter")
	filter(CmdConfirm, "Apply filter", "enter")
	filter(CmdCancel, "Cancel", "esc")
	filter(CmdClearFilter, "Clear filter", "ctrl+u")
	km.section(ModeFilter, "Application")(CmdQuit, "Quit", "ctrl+c")

	km.section(ModeHelp, "Modes")(CmdToggleHelp, "Close help", "?", "esc")
	km.section(ModeHelp, "Application")(CmdQuit, "Quit", "q", "ctrl+c")

	return km
}

// section returns a helper that appends bindings under one help heading.
// The specs are fixed at compile time, so a bad one is a programming error.
func (km *Keymap) section(mode Mode, name string) func(cmd Command, help string, specs ...string) {
	return func(cmd Command, help string, specs ...string) {
		for _, spec := range specs {
			key, err := ParseKey(spec)
			if err != nil {
				panic("keymap: default binding: " + err.Error())
			}
			km.modes[mode] = append(km.modes[mode], Binding{Key: key, Command: cmd, Help: help, Section: name})
		}
	}
}

// Commands returns every command a binding may name.
func Commands() []Command {
	return []Command{
		CmdFocusUp, CmdFocusDown, CmdFocusLeft, CmdFocusRight,
		CmdFocusNext, CmdFocusPrev, CmdFocusFirst, CmdFocusLast,
		CmdLineStart, CmdLineEnd, CmdFocusRandom,
		CmdPickToggle, CmdPickOnly, CmdPickNext, CmdPickPrev, CmdPickAll,
		CmdPickAnchor, CmdPickRange, CmdPickClear, CmdYank,
		CmdNextCycle, CmdToggleLoops, CmdToggleDir,
		CmdEnterFilter, CmdToggleHelp, CmdQuit,
		CmdConfirm, CmdCancel, CmdClearFilter,
	}
}

// IsCommand reports whether c is a known command.
func IsCommand(c Command) bool {
	return slices.Contains(Commands(), c)
}
