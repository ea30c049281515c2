package replay

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Iron-Ham/focusgrid/internal/eligibility"
	"github.com/Iron-Ham/focusgrid/internal/errors"
	"github.com/Iron-Ham/focusgrid/internal/fixture"
	"github.com/Iron-Ham/focusgrid/internal/navigate"
	"github.com/Iron-Ham/focusgrid/internal/pick"
	"github.com/Iron-Ham/focusgrid/internal/plane"
	"github.com/Iron-Ham/focusgrid/internal/traverse"
)

type listDriver struct {
	f   *fixture.Fixture
	nav *navigate.List[string]
	sel *pick.List[string]
}

func newListDriver(f *fixture.Fixture, navOpts []navigate.Option, pickOpts []pick.Option) (*listDriver, error) {
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
	return &listDriver{f: f, nav: nav, sel: sel}, nil
}

func (d *listDriver) where(s fixture.Step) ([]eligibility.Option[int], error) {
	skipped, err := s.Skipped()
	if err != nil || skipped == nil {
		return nil, err
	}
	keys := d.nav.Snapshot().Keys
	return []eligibility.Option[int]{eligibility.Where(func(i int) bool {
		return !skipped(keys[i])
	})}, nil
}

func (d *listDriver) from(l fixture.Location) int {
	if l.Set {
		return l.Index
	}
	return d.nav.Location()
}

func (d *listDriver) apply(s fixture.Step) (eligibility.Outcome, string, error) {
	opts, err := d.where(s)
	if err != nil {
		return "", "", err
	}
	replace := pick.Replace(s.Replace)

	switch s.Op {
	case fixture.OpExact:
		return d.nav.Exact(s.Target.Index, opts...), "", nil
	case fixture.OpNext:
		return d.nav.Next(d.from(s.From), opts...), "", nil
	case fixture.OpPrevious:
		return d.nav.Previous(d.from(s.From), opts...), "", nil
	case fixture.OpFirst:
		return d.nav.First(opts...), "", nil
	case fixture.OpLast:
		return d.nav.Last(opts...), "", nil
	case fixture.OpRandom:
		return d.nav.Random(opts...), "", nil
	case fixture.OpPickExact:
		targets := make([]int, 0, len(s.Targets))
		for _, t := range s.Targets {
			targets = append(targets, t.Index)
		}
		return d.sel.Exact(targets, replace, opts...), "", nil
	case fixture.OpPickNext:
		return d.sel.Next(d.from(s.From), replace, opts...), "", nil
	case fixture.OpPickPrevious:
		return d.sel.Previous(d.from(s.From), replace, opts...), "", nil
	case fixture.OpPickAll:
		return d.sel.All(opts...), "", nil
	case fixture.OpPickRange:
		return d.sel.Range(s.From.Index, s.To.Index, replace, opts...), "", nil
	case fixture.OpPickOmit:
		targets := make([]int, 0, len(s.Targets))
		for _, t := range s.Targets {
			targets = append(targets, t.Index)
		}
		return "", fmt.Sprintf("omitted %d", d.sel.Omit(targets...)), nil
	case fixture.OpPickClear:
		d.sel.Clear()
		return "", "", nil
	case fixture.OpSync:
		snap, err := d.f.List(s.Cycle)
		if err != nil {
			return "", "", err
		}
		if err := d.nav.Sync(snap); err != nil {
			return "", "", err
		}
		if err := d.sel.Sync(snap); err != nil {
			return "", "", err
		}
		return "", fmt.Sprintf("cycle %d: %d items", s.Cycle, len(snap.Keys)), nil
	default:
		return "", "", errors.NewValidationError("op not supported on lists").WithField("op").WithValue(string(s.Op)).WithCause(errors.ErrUnknownStep)
	}
}

func (d *listDriver) location() string {
	if loc := d.nav.Location(); loc >= 0 {
		return strconv.Itoa(loc)
	}
	return "none"
}

func (d *listDriver) focused() (string, bool) {
	return d.nav.Focused()
}

func (d *listDriver) picks() []string {
	return d.sel.Keys()
}

type planeDriver struct {
	f   *fixture.Fixture
	nav *navigate.Plane[string]
	sel *pick.Plane[string]
}

func newPlaneDriver(f *fixture.Fixture, navOpts []navigate.Option, pickOpts []pick.Option) (*planeDriver, error) {
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
	return &planeDriver{f: f, nav: nav, sel: sel}, nil
}

func (d *planeDriver) options(s fixture.Step) ([]eligibility.Option[plane.Coordinates], error) {
	var opts []eligibility.Option[plane.Coordinates]
	skipped, err := s.Skipped()
	if err != nil {
		return nil, err
	}
	if skipped != nil {
		keys := d.nav.Snapshot().Keys
		opts = append(opts, eligibility.Where(func(c plane.Coordinates) bool {
			k, _ := keys.Get(c)
			return !skipped(k)
		}))
	}
	if s.Direction != "" {
		dir, _ := traverse.ParseDirection(s.Direction)
		opts = append(opts, eligibility.Toward(dir))
	}
	return opts, nil
}

func (d *planeDriver) from(l fixture.Location) plane.Coordinates {
	if l.Set {
		return l.Coordinates()
	}
	return d.nav.Location()
}

func coordinates(ls []fixture.Location) []plane.Coordinates {
	out := make([]plane.Coordinates, 0, len(ls))
	for _, l := range ls {
		out = append(out, l.Coordinates())
	}
	return out
}

func (d *planeDriver) apply(s fixture.Step) (eligibility.Outcome, string, error) {
	opts, err := d.options(s)
	if err != nil {
		return "", "", err
	}
	replace := pick.Replace(s.Replace)

	switch s.Op {
	case fixture.OpExact:
		return d.nav.Exact(s.Target.Coordinates(), opts...), "", nil
	case fixture.OpNext:
		return d.nav.Next(d.from(s.From), opts...), "", nil
	case fixture.OpPrevious:
		return d.nav.Previous(d.from(s.From), opts...), "", nil
	case fixture.OpFirst:
		return d.nav.First(opts...), "", nil
	case fixture.OpLast:
		return d.nav.Last(opts...), "", nil
	case fixture.OpRandom:
		return d.nav.Random(opts...), "", nil
	case fixture.OpFirstInRow:
		return d.nav.FirstInRow(s.Row, opts...), "", nil
	case fixture.OpLastInRow:
		return d.nav.LastInRow(s.Row, opts...), "", nil
	case fixture.OpFirstInColumn:
		return d.nav.FirstInColumn(s.Column, opts...), "", nil
	case fixture.OpLastInColumn:
		return d.nav.LastInColumn(s.Column, opts...), "", nil
	case fixture.OpNextInRow:
		return d.nav.NextInRow(d.from(s.From), opts...), "", nil
	case fixture.OpPreviousInRow:
		return d.nav.PreviousInRow(d.from(s.From), opts...), "", nil
	case fixture.OpNextInColumn:
		return d.nav.NextInColumn(d.from(s.From), opts...), "", nil
	case fixture.OpPreviousInColumn:
		return d.nav.PreviousInColumn(d.from(s.From), opts...), "", nil
	case fixture.OpPickExact:
		return d.sel.Exact(coordinates(s.Targets), replace, opts...), "", nil
	case fixture.OpPickNext:
		return d.sel.Next(d.from(s.From), replace, opts...), "", nil
	case fixture.OpPickPrevious:
		return d.sel.Previous(d.from(s.From), replace, opts...), "", nil
	case fixture.OpPickAll:
		return d.sel.All(opts...), "", nil
	case fixture.OpPickRange:
		return d.sel.Range(s.From.Coordinates(), s.To.Coordinates(), replace, opts...), "", nil
	case fixture.OpPickOmit:
		return "", fmt.Sprintf("omitted %d", d.sel.Omit(coordinates(s.Targets)...)), nil
	case fixture.OpPickClear:
		d.sel.Clear()
		return "", "", nil
	case fixture.OpSync:
		snap, err := d.f.Plane(s.Cycle)
		if err != nil {
			return "", "", err
		}
		if err := d.nav.Sync(snap); err != nil {
			return "", "", err
		}
		if err := d.sel.Sync(snap); err != nil {
			return "", "", err
		}
		return "", fmt.Sprintf("cycle %d: %dx%d", s.Cycle, snap.Rows(), snap.Columns()), nil
	default:
		return "", "", errors.NewValidationError("unknown op").WithField("op").WithValue(string(s.Op)).WithCause(errors.ErrUnknownStep)
	}
}

func (d *planeDriver) location() string {
	if loc := d.nav.Location(); !loc.IsNone() {
		return loc.String()
	}
	return "none"
}

func (d *planeDriver) focused() (string, bool) {
	return d.nav.Focused()
}

func (d *planeDriver) picks() []string {
	return d.sel.Keys()
}

// describe renders the arguments of a step for the transcript.
func describe(s fixture.Step) string {
	var parts []string
	add := func(name string, l fixture.Location) {
		if l.Set {
			parts = append(parts, name+"="+l.String())
		}
	}
	add("target", s.Target)
	add("from", s.From)
	add("to", s.To)
	if len(s.Targets) > 0 {
		ts := make([]string, 0, len(s.Targets))
		for _, t := range s.Targets {
			ts = append(ts, t.String())
		}
		parts = append(parts, "targets="+strings.Join(ts, ","))
	}
	switch s.Op {
	case fixture.OpFirstInRow, fixture.OpLastInRow:
		parts = append(parts, "row="+strconv.Itoa(s.Row))
	case fixture.OpFirstInColumn, fixture.OpLastInColumn:
		parts = append(parts, "column="+strconv.Itoa(s.Column))
	case fixture.OpSync:
		parts = append(parts, "cycle="+strconv.Itoa(s.Cycle))
	}
	if s.Replace != "" {
		parts = append(parts, "replace="+s.Replace)
	}
	if s.Direction != "" {
		parts = append(parts, "direction="+s.Direction)
	}
	if len(s.Skip) > 0 {
		parts = append(parts, "skip="+strings.Join(s.Skip, ","))
	}
	return strings.Join(parts, " ")
}
