package tui

import (
	"fmt"
	"math/rand/v2"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/Iron-Ham/focusgrid/internal/eligibility"
	"github.com/Iron-Ham/focusgrid/internal/fixture"
	"github.com/Iron-Ham/focusgrid/internal/logging"
	"github.com/Iron-Ham/focusgrid/internal/navigate"
	"github.com/Iron-Ham/focusgrid/internal/pick"
	"github.com/Iron-Ham/focusgrid/internal/traverse"
	"github.com/Iron-Ham/focusgrid/internal/tui/filter"
	"github.com/Iron-Ham/focusgrid/internal/tui/keymap"
	"github.com/Iron-Ham/focusgrid/internal/tui/styles"
)

// DefaultCellWidth is used when Options.CellWidth is zero.
const DefaultCellWidth = 12

// Options configures the demo model.
type Options struct {
	Theme         string
	CellWidth     int
	FuzzyDistance int

	// Keys rebinds normal-mode commands by name.
	Keys map[string]string

	NavigateOptions []navigate.Option
	PickOptions     []pick.Option
	Logger          *logging.Logger
	Session         string

	// Copy writes text to the clipboard. Defaults to the system clipboard.
	Copy func(string) error
}

// Model holds the demo state
type Model struct {
	fixture *fixture.Fixture
	board   board
	keymap  *keymap.Keymap
	styles  *styles.Styles
	filter  *filter.Filter
	input   textinput.Model
	logger  *logging.Logger
	copy    func(string) error

	// UI state
	mode         keymap.Mode
	cycle        int
	cellWidth    int
	width        int
	height       int
	session      string
	prevPattern  string
	lastOutcome  eligibility.Outcome
	infoMessage  string
	errorMessage string
	quitting     bool
}

// NewModel builds the demo model for a fixture. The fixture's first cycle
// is shown; the remaining cycles are reached with the next-cycle command.
func NewModel(f *fixture.Fixture, opts Options) (Model, error) {
	km := keymap.DefaultKeymap()
	if err := km.Override(keymap.ModeNormal, opts.Keys); err != nil {
		return Model{}, err
	}

	session := opts.Session
	if session == "" {
		session = uuid.New().String()
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.NopLogger()
	}
	logger = logger.WithSession(session).WithSurface(string(f.Kind))

	seed := f.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	navOpts := slices.Concat(opts.NavigateOptions, f.NavigateOptions(), []navigate.Option{
		navigate.WithLogger(logger),
		navigate.WithRand(rand.New(rand.NewPCG(seed, seed))),
	})
	pickOpts := slices.Concat(opts.PickOptions, f.PickOptions(), []pick.Option{pick.WithLogger(logger)})

	flt := filter.New(opts.FuzzyDistance)
	var b board
	var err error
	if f.Kind == fixture.SurfacePlane {
		b, err = newGridBoard(f, flt, navOpts, pickOpts)
	} else {
		b, err = newListBoard(f, flt, navOpts, pickOpts)
	}
	if err != nil {
		return Model{}, err
	}

	input := textinput.New()
	input.Prompt = "/"
	input.Placeholder = "filter labels"

	cellWidth := opts.CellWidth
	if cellWidth == 0 {
		cellWidth = DefaultCellWidth
	}
	copyFn := opts.Copy
	if copyFn == nil {
		copyFn = systemCopy
	}

	return Model{
		fixture:   f,
		board:     b,
		keymap:    km,
		styles:    styles.ForTheme(opts.Theme),
		filter:    flt,
		input:     input,
		logger:    logger,
		copy:      copyFn,
		mode:      keymap.ModeNormal,
		cellWidth: cellWidth,
		session:   session,
	}, nil
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// yankedMsg reports the result of copying picks to the clipboard.
type yankedMsg struct {
	count int
	err   error
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeypress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case yankedMsg:
		if msg.err != nil {
			m.errorMessage = fmt.Sprintf("Copy failed: %v", msg.err)
			m.logger.Warn("clipboard write failed", "error", msg.err.Error())
			return m, nil
		}
		m.infoMessage = fmt.Sprintf("Copied %d picks", msg.count)
		return m, nil
	}
	return m, nil
}

func (m Model) handleKeypress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.mode == keymap.ModeFilter {
		return m.handleFilterInput(msg)
	}

	cmd, ok := m.keymap.Lookup(msg, m.mode)
	if !ok {
		return m, nil
	}
	m.errorMessage = ""
	m.infoMessage = ""

	switch cmd {
	case keymap.CmdQuit:
		m.quitting = true
		return m, tea.Quit
	case keymap.CmdToggleHelp:
		if m.mode == keymap.ModeHelp {
			m.mode = keymap.ModeNormal
		} else {
			m.mode = keymap.ModeHelp
		}
		return m, nil
	case keymap.CmdEnterFilter:
		m.mode = keymap.ModeFilter
		m.prevPattern = m.filter.Pattern()
		m.input.SetValue(m.filter.Pattern())
		m.input.CursorEnd()
		return m, m.input.Focus()
	case keymap.CmdClearFilter:
		m.filter.Clear()
		return m, nil
	case keymap.CmdYank:
		return m, m.yank()
	}

	m.apply(cmd)
	return m, nil
}

// apply runs a focus or pick command against the board.
func (m *Model) apply(cmd keymap.Command) {
	var out eligibility.Outcome
	switch cmd {
	case keymap.CmdPickToggle:
		out = m.board.toggle()
	case keymap.CmdPickOnly:
		out = m.board.only()
	case keymap.CmdPickNext:
		out = m.board.extend(true)
	case keymap.CmdPickPrev:
		out = m.board.extend(false)
	case keymap.CmdPickAll:
		out = m.board.all()
	case keymap.CmdPickAnchor:
		m.board.setAnchor()
		m.infoMessage = "Anchor set at " + m.board.location()
		return
	case keymap.CmdPickRange:
		out = m.board.pickRange()
	case keymap.CmdPickClear:
		m.board.clear()
		return
	case keymap.CmdNextCycle:
		m.nextCycle()
		return
	case keymap.CmdToggleLoops:
		p := m.board.policy()
		p.Loops = !p.Loops
		m.setPolicy(p)
		return
	case keymap.CmdToggleDir:
		p := m.board.policy()
		if p.Direction == traverse.Vertical {
			p.Direction = traverse.Horizontal
		} else {
			p.Direction = traverse.Vertical
		}
		m.setPolicy(p)
		return
	default:
		out = m.board.move(cmd)
	}
	m.lastOutcome = out
	m.logger.Debug("command applied", "command", string(cmd), "outcome", string(out), "location", m.board.location())
}

func (m *Model) nextCycle() {
	next := (m.cycle + 1) % len(m.fixture.Cycles)
	if err := m.board.sync(next); err != nil {
		m.errorMessage = err.Error()
		return
	}
	m.cycle = next
	m.infoMessage = fmt.Sprintf("Cycle %d of %d", next+1, len(m.fixture.Cycles))
}

func (m *Model) setPolicy(p navigate.Policy) {
	if err := m.board.setPolicy(p); err != nil {
		m.errorMessage = err.Error()
	}
}

func (m Model) handleFilterInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if cmd, ok := m.keymap.Lookup(msg, keymap.ModeFilter); ok {
		switch cmd {
		case keymap.CmdQuit:
			m.quitting = true
			return m, tea.Quit
		case keymap.CmdConfirm:
			m.mode = keymap.ModeNormal
			m.input.Blur()
			return m, nil
		case keymap.CmdCancel:
			m.filter.SetPattern(m.prevPattern)
			m.mode = keymap.ModeNormal
			m.input.Blur()
			m.refocus()
			return m, nil
		case keymap.CmdClearFilter:
			m.input.SetValue("")
			m.filter.Clear()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() != m.filter.Pattern() {
		m.filter.SetPattern(m.input.Value())
		m.refocus()
	}
	return m, cmd
}

// refocus moves focus to the first matching item when the focused one no
// longer passes the filter.
func (m *Model) refocus() {
	for _, row := range m.board.cells() {
		for _, c := range row {
			if c.Focused && c.Match {
				return
			}
		}
	}
	m.lastOutcome = m.board.move(keymap.CmdFocusFirst)
}

func (m Model) yank() tea.Cmd {
	picks := m.board.picks()
	labels := m.fixture.Labels(m.cycle)
	lines := make([]string, 0, len(picks))
	for _, key := range picks {
		lines = append(lines, labels[key])
	}
	text := strings.Join(lines, "\n")
	copyFn := m.copy
	return func() tea.Msg {
		return yankedMsg{count: len(picks), err: copyFn(text)}
	}
}

// Mode returns the current input mode.
func (m Model) Mode() keymap.Mode { return m.mode }

// Location returns the focused location, or "none".
func (m Model) Location() string { return m.board.location() }

// Picks returns the picked keys in pick order.
func (m Model) Picks() []string { return m.board.picks() }

// Policy returns the active navigation policy.
func (m Model) Policy() navigate.Policy { return m.board.policy() }

// Cycle returns the index of the snapshot on screen.
func (m Model) Cycle() int { return m.cycle }

// Filter returns the current filter pattern.
func (m Model) Filter() string { return m.filter.Pattern() }
