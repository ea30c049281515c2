package fixture

import (
	"fmt"
	"slices"

	"github.com/gobwas/glob"

	"github.com/Iron-Ham/focusgrid/internal/eligibility"
	"github.com/Iron-Ham/focusgrid/internal/errors"
	"github.com/Iron-Ham/focusgrid/internal/pick"
	"github.com/Iron-Ham/focusgrid/internal/snapshot"
	"github.com/Iron-Ham/focusgrid/internal/traverse"
)

// Op names a replay step.
type Op string

// Navigate ops.
const (
	OpExact            Op = "exact"
	OpNext             Op = "next"
	OpPrevious         Op = "previous"
	OpFirst            Op = "first"
	OpLast             Op = "last"
	OpRandom           Op = "random"
	OpFirstInRow       Op = "first_in_row"
	OpLastInRow        Op = "last_in_row"
	OpFirstInColumn    Op = "first_in_column"
	OpLastInColumn     Op = "last_in_column"
	OpNextInRow        Op = "next_in_row"
	OpPreviousInRow    Op = "previous_in_row"
	OpNextInColumn     Op = "next_in_column"
	OpPreviousInColumn Op = "previous_in_column"
)

// Pick ops.
const (
	OpPickExact    Op = "pick.exact"
	OpPickNext     Op = "pick.next"
	OpPickPrevious Op = "pick.previous"
	OpPickAll      Op = "pick.all"
	OpPickRange    Op = "pick.range"
	OpPickOmit     Op = "pick.omit"
	OpPickClear    Op = "pick.clear"
)

// OpSync applies the update cycle named by Step.Cycle.
const OpSync Op = "sync"

var planeOnly = []Op{
	OpFirstInRow, OpLastInRow, OpFirstInColumn, OpLastInColumn,
	OpNextInRow, OpPreviousInRow, OpNextInColumn, OpPreviousInColumn,
}

var allOps = append([]Op{
	OpExact, OpNext, OpPrevious, OpFirst, OpLast, OpRandom,
	OpPickExact, OpPickNext, OpPickPrevious, OpPickAll, OpPickRange, OpPickOmit, OpPickClear,
	OpSync,
}, planeOnly...)

// Ops returns every recognized op.
func Ops() []Op {
	return slices.Clone(allOps)
}

// PlaneOnly reports whether the op only applies to plane fixtures.
func (o Op) PlaneOnly() bool {
	return slices.Contains(planeOnly, o)
}

// Step is one scripted call. Which fields matter depends on Op.
type Step struct {
	Op      Op         `yaml:"op" toml:"op"`
	From    Location   `yaml:"from" toml:"from"`
	To      Location   `yaml:"to" toml:"to"`
	Target  Location   `yaml:"target" toml:"target"`
	Targets []Location `yaml:"targets" toml:"targets"`
	// Row and Column address the *_in_row and *_in_column ops.
	Row    int `yaml:"row" toml:"row"`
	Column int `yaml:"column" toml:"column"`
	// Replace overrides the fixture's replace mode for pick ops.
	Replace string `yaml:"replace" toml:"replace"`
	// Direction overrides the scan direction for this call.
	Direction string `yaml:"direction" toml:"direction"`
	// Skip lists keys the call treats as ineligible. Entries are glob
	// patterns, so "r*c0" skips the first column of a grid.
	Skip []string `yaml:"skip" toml:"skip"`
	// Cycle is the update cycle a sync step applies.
	Cycle int `yaml:"cycle" toml:"cycle"`
}

// Validate checks the fixture shape, builds and validates the snapshot of
// every cycle, and checks every step. An omitted kind means list.
func (f *Fixture) Validate() error {
	switch f.Kind {
	case SurfaceList, SurfacePlane:
	case "":
		f.Kind = SurfaceList
	default:
		return errors.NewFixtureError("unknown kind "+string(f.Kind), errors.ErrInvalidInput)
	}
	if f.Direction != nil {
		if _, err := traverse.ParseDirection(*f.Direction); err != nil {
			return errors.NewFixtureError("invalid direction", errors.Join(errors.ErrInvalidInput, err))
		}
	}
	if f.Replace != nil {
		if _, err := pick.ParseReplace(*f.Replace); err != nil {
			return errors.NewFixtureError("invalid replace mode", err)
		}
	}
	if len(f.Cycles) == 0 {
		return errors.NewFixtureError("at least one cycle is required", errors.ErrInvalidInput)
	}
	for i, c := range f.Cycles {
		if err := f.validateCycle(c); err != nil {
			return errors.NewFixtureError(fmt.Sprintf("cycle %d", i), err)
		}
	}
	for i, s := range f.Steps {
		if err := f.validateStep(s); err != nil {
			return errors.NewFixtureError("invalid step", err).WithStep(i)
		}
	}
	return nil
}

func (f *Fixture) validateCycle(c Cycle) error {
	if f.Kind == SurfaceList && len(c.Rows) > 0 {
		return errors.NewValidationError("list cycles use items, not rows").WithField("rows").WithCause(errors.ErrInvalidInput)
	}
	if f.Kind == SurfacePlane && len(c.Items) > 0 {
		return errors.NewValidationError("plane cycles use rows, not items").WithField("items").WithCause(errors.ErrInvalidInput)
	}
	if f.Kind == SurfacePlane {
		snap, err := buildPlane(c)
		if err != nil {
			return err
		}
		return snap.Validate()
	}
	snap, err := buildList(c)
	if err != nil {
		return err
	}
	return snap.Validate()
}

func (f *Fixture) validateStep(s Step) error {
	if !slices.Contains(allOps, s.Op) {
		return errors.NewValidationError("unknown op").WithField("op").WithValue(string(s.Op)).WithCause(errors.ErrUnknownStep)
	}
	if s.Op.PlaneOnly() && f.Kind != SurfacePlane {
		return errors.NewValidationError("op needs a plane fixture").WithField("op").WithValue(string(s.Op)).WithCause(errors.ErrInvalidInput)
	}
	if s.Op == OpSync && (s.Cycle < 0 || s.Cycle >= len(f.Cycles)) {
		return errors.NewValidationError("no such cycle").WithField("cycle").WithValue(s.Cycle).WithCause(errors.ErrCycleOutOfRange)
	}
	if s.Replace != "" {
		if _, err := pick.ParseReplace(s.Replace); err != nil {
			return err
		}
	}
	if s.Direction != "" {
		if f.Kind != SurfacePlane {
			return errors.NewValidationError("direction needs a plane fixture").WithField("direction").WithCause(errors.ErrInvalidInput)
		}
		if _, err := traverse.ParseDirection(s.Direction); err != nil {
			return errors.NewValidationError("invalid direction").WithField("direction").WithValue(s.Direction).WithCause(errors.ErrInvalidInput)
		}
	}

	if _, err := s.Skipped(); err != nil {
		return err
	}

	locations := append([]Location{s.From, s.To, s.Target}, s.Targets...)
	for _, l := range locations {
		if l.Set && l.Pair != (f.Kind == SurfacePlane) {
			want := "an index"
			if f.Kind == SurfacePlane {
				want = "[row, column]"
			}
			return errors.NewValidationError("location must be "+want).WithField("location").WithValue(l.String()).WithCause(errors.ErrInvalidInput)
		}
	}
	switch s.Op {
	case OpExact:
		if !s.Target.Set {
			return errors.NewValidationError("exact needs a target").WithField("target").WithCause(errors.ErrInvalidInput)
		}
	case OpPickExact, OpPickOmit:
		if len(s.Targets) == 0 {
			return errors.NewValidationError(string(s.Op)+" needs targets").WithField("targets").WithCause(errors.ErrInvalidInput)
		}
	case OpPickRange:
		if !s.From.Set || !s.To.Set {
			return errors.NewValidationError("pick.range needs from and to").WithField("from").WithCause(errors.ErrInvalidInput)
		}
	}
	return nil
}

// Skipped compiles Skip into a key matcher. It returns nil when the step
// skips nothing.
func (s Step) Skipped() (func(key string) bool, error) {
	if len(s.Skip) == 0 {
		return nil, nil
	}
	globs := make([]glob.Glob, 0, len(s.Skip))
	for _, pattern := range s.Skip {
		g, err := glob.Compile(pattern)
		if err != nil {
			return nil, errors.NewValidationError("invalid skip pattern").WithField("skip").WithValue(pattern).WithCause(errors.Join(errors.ErrInvalidInput, err))
		}
		globs = append(globs, g)
	}
	return func(key string) bool {
		for _, g := range globs {
			if g.Match(key) {
				return true
			}
		}
		return false
	}, nil
}

func (i Item) meta() (snapshot.Meta, error) {
	ability, err := eligibility.ParseAbility(i.Ability)
	if err != nil {
		return snapshot.Meta{}, errors.NewValidationError("invalid ability").WithField("ability").WithValue(i.Ability).WithCause(errors.Join(errors.ErrInvalidInput, err))
	}
	kind, err := snapshot.ParseKind(i.Kind)
	if err != nil {
		return snapshot.Meta{}, err
	}
	return snapshot.Meta{Ability: ability, Kind: kind, Group: i.Group}, nil
}
