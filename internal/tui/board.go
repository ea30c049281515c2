package tui

import (
	"slices"
	"strconv"

	"github.com/Iron-Ham/focusgrid/internal/eligibility"
	"github.com/Iron-Ham/focusgrid/internal/fixture"
	"github.com/Iron-Ham/focusgrid/internal/navigate"
	"github.com/Iron-Ham/focusgrid/internal/pick"
	"github.com/Iron-Ham/focusgrid/internal/plane"
	"github.com/Iron-Ham/focusgrid/internal/snapshot"
	"github.com/Iron-Ham/focusgrid/internal/tui/filter"
	"github.com/Iron-Ham/focusgrid/internal/tui/keymap"
)

// cell is what the view needs to draw one item.
type cell struct {
	Key      string
	Label    string
	Kind     snapshot.Kind
	Focused  bool
	Picked   bool
	Disabled bool
	Match    bool
}

// board drives one surface of the demo. Implementations share the
// model's filter so every call is narrowed to matching labels.
type board interface {
	move(cmd keymap.Command) eligibility.Outcome
	toggle() eligibility.Outcome
	only() eligibility.Outcome
	extend(forward bool) eligibility.Outcome
	all() eligibility.Outcome
	setAnchor()
	pickRange() eligibility.Outcome
	clear()
	sync(cycle int) error
	setPolicy(p navigate.Policy) error
	policy() navigate.Policy
	focused() (string, bool)
	location() string
	picks() []string
	cells() [][]cell
	grid() bool
}

type listBoard struct {
	f       *fixture.Fixture
	navOpts []navigate.Option
	filter  *filter.Filter
	labels  map[string]string
	nav     *navigate.List[string]
	sel     *pick.List[string]
	anchor  int
}

func newListBoard(f *fixture.Fixture, flt *filter.Filter, navOpts []navigate.Option, pickOpts []pick.Option) (*listBoard, error) {
	snap, err := f.List(0)
	if err != nil {
		return nil, err
	}
	nav, err := navigate.NewList(snap, navOpts...)
	if err != nil {
		return nil, err
	}
	sel, err := pick.NewList(snap, pickOpts...)
	if err != nil {
		return nil, err
	}
	return &listBoard{f: f, navOpts: navOpts, filter: flt, labels: f.Labels(0), nav: nav, sel: sel, anchor: -1}, nil
}

func (b *listBoard) where() []eligibility.Option[int] {
	keys := b.nav.Snapshot().Keys
	return filter.Where(b.filter, func(i int) string { return b.labels[keys[i]] })
}

func (b *listBoard) move(cmd keymap.Command) eligibility.Outcome {
	loc := b.nav.Location()
	where := b.where()
	switch cmd {
	case keymap.CmdFocusUp, keymap.CmdFocusLeft, keymap.CmdFocusPrev:
		return b.nav.Previous(loc, where...)
	case keymap.CmdFocusDown, keymap.CmdFocusRight, keymap.CmdFocusNext:
		return b.nav.Next(loc, where...)
	case keymap.CmdFocusFirst, keymap.CmdLineStart:
		return b.nav.First(where...)
	case keymap.CmdFocusLast, keymap.CmdLineEnd:
		return b.nav.Last(where...)
	case keymap.CmdFocusRandom:
		return b.nav.Random(where...)
	}
	return eligibility.OutcomeNone
}

func (b *listBoard) toggle() eligibility.Outcome {
	loc := b.nav.Location()
	if b.sel.IsPicked(loc) {
		b.sel.Omit(loc)
		return eligibility.OutcomeNone
	}
	return b.sel.Exact([]int{loc}, pick.ReplaceNone, b.where()...)
}

func (b *listBoard) only() eligibility.Outcome {
	return b.sel.Exact([]int{b.nav.Location()}, pick.ReplaceAll, b.where()...)
}

func (b *listBoard) extend(forward bool) eligibility.Outcome {
	loc := b.nav.Location()
	var out eligibility.Outcome
	if forward {
		out = b.sel.Next(loc, pick.ReplaceNone, b.where()...)
	} else {
		out = b.sel.Previous(loc, pick.ReplaceNone, b.where()...)
	}
	if newest, ok := b.sel.Newest(); ok && out.Found() {
		b.nav.Exact(newest)
	}
	return out
}

func (b *listBoard) all() eligibility.Outcome {
	return b.sel.All(b.where()...)
}

func (b *listBoard) setAnchor() {
	b.anchor = b.nav.Location()
}

func (b *listBoard) pickRange() eligibility.Outcome {
	from := b.anchor
	if from < 0 {
		from = b.nav.Location()
	}
	return b.sel.Range(from, b.nav.Location(), pick.ReplaceAll, b.where()...)
}

func (b *listBoard) clear() {
	b.sel.Clear()
	b.anchor = -1
}

func (b *listBoard) sync(cycle int) error {
	snap, err := b.f.List(cycle)
	if err != nil {
		return err
	}
	if err := b.nav.Sync(snap); err != nil {
		return err
	}
	if err := b.sel.Sync(snap); err != nil {
		return err
	}
	b.labels = b.f.Labels(cycle)
	if b.anchor >= len(snap.Keys) {
		b.anchor = -1
	}
	return nil
}

func (b *listBoard) setPolicy(p navigate.Policy) error {
	loc := b.nav.Location()
	nav, err := navigate.NewList(b.nav.Snapshot(), append(slices.Clone(b.navOpts), navigate.WithPolicy(p))...)
	if err != nil {
		return err
	}
	if loc >= 0 {
		nav.Exact(loc)
	}
	b.nav = nav
	return nil
}

func (b *listBoard) policy() navigate.Policy { return b.nav.Policy() }
func (b *listBoard) focused() (string, bool) { return b.nav.Focused() }
func (b *listBoard) picks() []string { return b.sel.Keys() }
func (b *listBoard) grid() bool { return false }

func (b *listBoard) location() string {
	if loc := b.nav.Location(); loc >= 0 {
		return strconv.Itoa(loc)
	}
	return "none"
}

func (b *listBoard) cells() [][]cell {
	snap := b.nav.Snapshot()
	loc := b.nav.Location()
	rows := make([][]cell, 0, len(snap.Keys))
	for i, key := range snap.Keys {
		meta := snap.MetaAt(i)
		label := b.labels[key]
		rows = append(rows, []cell{{
			Key:      key,
			Label:    label,
			Kind:     meta.KindOrItem(),
			Focused:  i == loc,
			Picked:   b.sel.IsPicked(i),
			Disabled: meta.AbilityOrEnabled() == eligibility.Disabled,
			Match:    b.filter.Matches(label),
		}})
	}
	return rows
}

type gridBoard struct {
	f       *fixture.Fixture
	navOpts []navigate.Option
	filter  *filter.Filter
	labels  map[string]string
	nav     *navigate.Plane[string]
	sel     *pick.Plane[string]
	anchor  plane.Coordinates
}

func newGridBoard(f *fixture.Fixture, flt *filter.Filter, navOpts []navigate.Option, pickOpts []pick.Option) (*gridBoard, error) {
	snap, err := f.Plane(0)
	if err != nil {
		return nil, err
	}
	nav, err := navigate.NewPlane(snap, navOpts...)
	if err != nil {
		return nil, err
	}
	sel, err := pick.NewPlane(snap, pickOpts...)
	if err != nil {
		return nil, err
	}
	return &gridBoard{f: f, navOpts: navOpts, filter: flt, labels: f.Labels(0), nav: nav, sel: sel, anchor: plane.None}, nil
}

func (b *gridBoard) where() []eligibility.Option[plane.Coordinates] {
	keys := b.nav.Snapshot().Keys
	return filter.Where(b.filter, func(c plane.Coordinates) string {
		key, _ := keys.Get(c)
		return b.labels[key]
	})
}

func (b *gridBoard) move(cmd keymap.Command) eligibility.Outcome {
	loc := b.nav.Location()
	where := b.where()
	switch cmd {
	case keymap.CmdFocusUp:
		return b.nav.PreviousInColumn(loc, where...)
	case keymap.CmdFocusDown:
		return b.nav.NextInColumn(loc, where...)
	case keymap.CmdFocusLeft:
		return b.nav.PreviousInRow(loc, where...)
	case keymap.CmdFocusRight:
		return b.nav.NextInRow(loc, where...)
	case keymap.CmdFocusPrev:
		return b.nav.Previous(loc, where...)
	case keymap.CmdFocusNext:
		return b.nav.Next(loc, where...)
	case keymap.CmdFocusFirst:
		return b.nav.First(where...)
	case keymap.CmdFocusLast:
		return b.nav.Last(where...)
	case keymap.CmdLineStart:
		return b.nav.FirstInRow(max(loc.Row, 0), where...)
	case keymap.CmdLineEnd:
		return b.nav.LastInRow(max(loc.Row, 0), where...)
	case keymap.CmdFocusRandom:
		return b.nav.Random(where...)
	}
	return eligibility.OutcomeNone
}

func (b *gridBoard) toggle() eligibility.Outcome {
	loc := b.nav.Location()
	if b.sel.IsPicked(loc) {
		b.sel.Omit(loc)
		return eligibility.OutcomeNone
	}
	return b.sel.Exact([]plane.Coordinates{loc}, pick.ReplaceNone, b.where()...)
}

func (b *gridBoard) only() eligibility.Outcome {
	return b.sel.Exact([]plane.Coordinates{b.nav.Location()}, pick.ReplaceAll, b.where()...)
}

func (b *gridBoard) extend(forward bool) eligibility.Outcome {
	loc := b.nav.Location()
	var out eligibility.Outcome
	if forward {
		out = b.sel.Next(loc, pick.ReplaceNone, b.where()...)
	} else {
		out = b.sel.Previous(loc, pick.ReplaceNone, b.where()...)
	}
	if newest, ok := b.sel.Newest(); ok && out.Found() {
		b.nav.Exact(newest)
	}
	return out
}

func (b *gridBoard) all() eligibility.Outcome {
	return b.sel.All(b.where()...)
}

func (b *gridBoard) setAnchor() {
	b.anchor = b.nav.Location()
}

func (b *gridBoard) pickRange() eligibility.Outcome {
	from := b.anchor
	if from.IsNone() {
		from = b.nav.Location()
	}
	return b.sel.Range(from, b.nav.Location(), pick.ReplaceAll, b.where()...)
}

func (b *gridBoard) clear() {
	b.sel.Clear()
	b.anchor = plane.None
}

func (b *gridBoard) sync(cycle int) error {
	snap, err := b.f.Plane(cycle)
	if err != nil {
		return err
	}
	if err := b.nav.Sync(snap); err != nil {
		return err
	}
	if err := b.sel.Sync(snap); err != nil {
		return err
	}
	b.labels = b.f.Labels(cycle)
	if !snap.Keys.Contains(b.anchor) {
		b.anchor = plane.None
	}
	return nil
}

func (b *gridBoard) setPolicy(p navigate.Policy) error {
	loc := b.nav.Location()
	nav, err := navigate.NewPlane(b.nav.Snapshot(), append(slices.Clone(b.navOpts), navigate.WithPolicy(p))...)
	if err != nil {
		return err
	}
	if !loc.IsNone() {
		nav.Exact(loc)
	}
	b.nav = nav
	return nil
}

func (b *gridBoard) policy() navigate.Policy { return b.nav.Policy() }
func (b *gridBoard) focused() (string, bool) { return b.nav.Focused() }
func (b *gridBoard) picks() []string { return b.sel.Keys() }
func (b *gridBoard) grid() bool { return true }

func (b *gridBoard) location() string {
	if loc := b.nav.Location(); !loc.IsNone() {
		return loc.String()
	}
	return "none"
}

func (b *gridBoard) cells() [][]cell {
	snap := b.nav.Snapshot()
	loc := b.nav.Location()
	rows := make([][]cell, snap.Rows())
	for p := range snap.Keys.Points() {
		c := p.Coordinates()
		meta := snap.MetaAt(c)
		label := b.labels[p.Value]
		rows[c.Row] = append(rows[c.Row], cell{
			Key:      p.Value,
			Label:    label,
			Kind:     meta.KindOrItem(),
			Focused:  c == loc,
			Picked:   b.sel.IsPicked(c),
			Disabled: meta.AbilityOrEnabled() == eligibility.Disabled,
			Match:    b.filter.Matches(label),
		})
	}
	return rows
}
