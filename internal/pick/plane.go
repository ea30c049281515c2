package pick

import (
	"github.com/Iron-Ham/focusgrid/internal/eligibility"
	"github.com/Iron-Ham/focusgrid/internal/plane"
	"github.com/Iron-Ham/focusgrid/internal/snapshot"
	"github.com/Iron-Ham/focusgrid/internal/status"
	"github.com/Iron-Ham/focusgrid/internal/traverse"
)

// Plane owns the selection of one grid. It is not safe for concurrent use.
type Plane[K comparable] struct {
	settings
	equal func(a, b K) bool
	snap  snapshot.Plane[K]
	sel   selection[plane.Coordinates]
}

// NewPlane validates snap and returns a Plane with nothing picked.
func NewPlane[K comparable](snap snapshot.Plane[K], opts ...Option) (*Plane[K], error) {
	if err := snap.Validate(); err != nil {
		return nil, err
	}
	s := resolve("plane", opts)
	equal, err := identity[K](s)
	if err != nil {
		return nil, err
	}
	return &Plane[K]{settings: s, equal: equal, snap: snap}, nil
}

// Snapshot returns the current snapshot.
func (p *Plane[K]) Snapshot() snapshot.Plane[K] {
	return p.snap
}

// Policy returns the picking policy.
func (p *Plane[K]) Policy() Policy {
	return p.settings.Policy
}

func (p *Plane[K]) ability(c plane.Coordinates) eligibility.Ability {
	return p.snap.MetaAt(c).AbilityOrEnabled()
}

func (p *Plane[K]) group(c plane.Coordinates) string {
	return exclusiveGroup(p.snap.MetaAt(c))
}

func (p *Plane[K]) gate(opts []eligibility.Option[plane.Coordinates], traversal bool) (eligibility.Predicate[plane.Coordinates], traverse.Direction) {
	o := eligibility.Apply(opts)
	caller := o.Predicate
	if traversal {
		caller = eligibility.And[plane.Coordinates](caller, func(c plane.Coordinates) bool {
			return traversable(p.snap.MetaAt(c))
		})
	}
	return eligibility.Gate(p.DisabledElementsAreEligibleLocations, p.ability, caller), o.DirectionOr(p.Direction)
}

func (p *Plane[K]) pick(eligible []plane.Coordinates, replace Replace) eligibility.Outcome {
	if len(eligible) == 0 {
		return eligibility.OutcomeNone
	}
	p.sel.add(eligible, p.replace(replace), p.AllowsDuplicates, p.group)
	return eligibility.OutcomeOf(p.ability(eligible[len(eligible)-1]))
}

// Exact picks every eligible target, click-style.
func (p *Plane[K]) Exact(targets []plane.Coordinates, replace Replace, opts ...eligibility.Option[plane.Coordinates]) eligibility.Outcome {
	gate, _ := p.gate(opts, false)
	eligible := make([]plane.Coordinates, 0, len(targets))
	for _, t := range targets {
		if !p.snap.Keys.Contains(t) {
			p.logger.WithOperation("pick.exact").Debug("target out of range",
				"target", t.String(), "rows", p.snap.Rows(), "columns", p.snap.Columns())
			continue
		}
		if gate(t) {
			eligible = append(eligible, t)
		}
	}
	return p.pick(eligible, replace)
}

// Next picks the first eligible checkbox or radio after from in the scan
// direction.
func (p *Plane[K]) Next(from plane.Coordinates, replace Replace, opts ...eligibility.Option[plane.Coordinates]) eligibility.Outcome {
	gate, dir := p.gate(opts, true)
	c, ok := traverse.GridOf(p.snap.Keys, p.Loops).ToNextEligibleIn(from, dir, gate)
	if !ok {
		return eligibility.OutcomeNone
	}
	return p.pick([]plane.Coordinates{c}, replace)
}

// Previous picks the first eligible checkbox or radio before from.
func (p *Plane[K]) Previous(from plane.Coordinates, replace Replace, opts ...eligibility.Option[plane.Coordinates]) eligibility.Outcome {
	gate, dir := p.gate(opts, true)
	c, ok := traverse.GridOf(p.snap.Keys, p.Loops).ToPreviousEligibleIn(from, dir, gate)
	if !ok {
		return eligibility.OutcomeNone
	}
	return p.pick([]plane.Coordinates{c}, replace)
}

// All replaces the selection with every eligible checkbox or radio in
// row-major order. When nothing is eligible the selection is left alone.
func (p *Plane[K]) All(opts ...eligibility.Option[plane.Coordinates]) eligibility.Outcome {
	gate, _ := p.gate(opts, true)
	var eligible []plane.Coordinates
	for pt := range p.snap.Keys.Points() {
		if c := pt.Coordinates(); gate(c) {
			eligible = append(eligible, c)
		}
	}
	if len(eligible) == 0 {
		return eligibility.OutcomeNone
	}
	p.sel.add(eligible, ReplaceAll, p.AllowsDuplicates, p.group)
	return eligibility.OutcomeEnabled
}

// Range picks every eligible cell of the rectangle spanned by from and to,
// row by row starting at from's corner. It ignores the kind filter. The
// rectangle is clamped to the plane on each axis.
func (p *Plane[K]) Range(from, to plane.Coordinates, replace Replace, opts ...eligibility.Option[plane.Coordinates]) eligibility.Outcome {
	fromRow, toRow, rowsOK := clampSpan(from.Row, to.Row, p.snap.Rows())
	fromCol, toCol, colsOK := clampSpan(from.Column, to.Column, p.snap.Columns())
	if !rowsOK || !colsOK {
		return eligibility.OutcomeNone
	}
	from, to = plane.At(fromRow, fromCol), plane.At(toRow, toCol)

	gate, _ := p.gate(opts, false)
	rowStep, colStep := 1, 1
	if to.Row < from.Row {
		rowStep = -1
	}
	if to.Column < from.Column {
		colStep = -1
	}
	var eligible []plane.Coordinates
	for r := from.Row; ; r += rowStep {
		for c := from.Column; ; c += colStep {
			if at := plane.At(r, c); gate(at) {
				eligible = append(eligible, at)
			}
			if c == to.Column {
				break
			}
		}
		if r == to.Row {
			break
		}
	}
	return p.pick(eligible, replace)
}

// Omit removes locations from the selection and reports how many picks were
// removed.
func (p *Plane[K]) Omit(locations ...plane.Coordinates) int {
	return p.sel.omit(locations, p.group)
}

// Clear removes every pick.
func (p *Plane[K]) Clear() {
	p.sel.clear()
}

// Picks returns the picked coordinates in pick order.
func (p *Plane[K]) Picks() []plane.Coordinates {
	return p.sel.snapshot()
}

// Keys returns the picked keys in pick order.
func (p *Plane[K]) Keys() []K {
	keys := make([]K, 0, len(p.sel.picks))
	for _, c := range p.sel.picks {
		k, _ := p.snap.Keys.Get(c)
		keys = append(keys, k)
	}
	return keys
}

// IsPicked reports whether c is in the selection.
func (p *Plane[K]) IsPicked(c plane.Coordinates) bool {
	return p.sel.contains(c)
}

// Oldest returns the earliest pick still selected.
func (p *Plane[K]) Oldest() (plane.Coordinates, bool) { return p.sel.oldest() }

// Newest returns the most recent pick.
func (p *Plane[K]) Newest() (plane.Coordinates, bool) { return p.sel.newest() }

// First returns the picked cell that comes first in row-major order.
func (p *Plane[K]) First() (plane.Coordinates, bool) {
	return p.sel.first(plane.Coordinates.Compare)
}

// Last returns the picked cell that comes last in row-major order.
func (p *Plane[K]) Last() (plane.Coordinates, bool) {
	return p.sel.last(plane.Coordinates.Compare)
}

// Multiple reports whether more than one location is picked.
func (p *Plane[K]) Multiple() bool {
	return len(p.sel.picks) > 1
}

// Groups returns the picked member of each radio group.
func (p *Plane[K]) Groups() map[string]plane.Coordinates {
	return p.sel.groupMap()
}

// Sync replaces the snapshot with next and reconciles the selection the same
// way List.Sync does, using coordinates.
func (p *Plane[K]) Sync(next snapshot.Plane[K]) error {
	if err := next.Validate(); err != nil {
		return err
	}
	prev := p.snap
	p.snap = next
	if len(p.sel.picks) == 0 {
		return nil
	}

	st := status.Plane(next.Keys, prev.Keys, status.WithEqual(p.equal))
	before := len(p.sel.picks)
	var zero K
	kept := make([]plane.Coordinates, 0, before)
	for _, old := range p.sel.picks {
		loc := old
		if st.Order == status.OrderChanged {
			key, _ := prev.Keys.Get(old)
			if key == zero {
				continue
			}
			if loc = next.IndexOfFunc(key, p.equal); loc.IsNone() {
				continue
			}
		} else if !next.Keys.Contains(loc) {
			continue
		}
		if prev.MetaAt(old).AbilityOrEnabled() == eligibility.Enabled &&
			next.MetaAt(loc).AbilityOrEnabled() == eligibility.Disabled {
			continue
		}
		kept = append(kept, loc)
	}
	p.sel.settle(kept, p.group)

	if dropped := before - len(p.sel.picks); dropped > 0 || st.Order == status.OrderChanged {
		p.logger.WithOperation("pick.sync").Debug("reconciled picks",
			"order", string(st.Order), "row_width", string(st.RowWidth),
			"column_height", string(st.ColumnHeight), "kept", len(p.sel.picks), "dropped", dropped)
	}
	return nil
}
