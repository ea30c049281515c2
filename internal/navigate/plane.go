package navigate

import (
	"github.com/Iron-Ham/focusgrid/internal/eligibility"
	"github.com/Iron-Ham/focusgrid/internal/plane"
	"github.com/Iron-Ham/focusgrid/internal/snapshot"
	"github.com/Iron-Ham/focusgrid/internal/status"
	"github.com/Iron-Ham/focusgrid/internal/traverse"
)

// Plane owns the focus location of one grid. It is not safe for concurrent
// use; callers serialize access.
type Plane[K comparable] struct {
	settings
	equal    func(a, b K) bool
	snap     snapshot.Plane[K]
	location plane.Coordinates
}

// NewPlane validates snap and returns a Plane focused on (0,0), or on
// plane.None when snap is empty.
func NewPlane[K comparable](snap snapshot.Plane[K], opts ...Option) (*Plane[K], error) {
	if err := snap.Validate(); err != nil {
		return nil, err
	}
	s := resolve("plane", opts)
	equal, err := identity[K](s)
	if err != nil {
		return nil, err
	}
	p := &Plane[K]{settings: s, equal: equal, snap: snap, location: plane.None}
	if !p.empty() {
		p.location = plane.At(0, 0)
	}
	return p, nil
}

func (p *Plane[K]) empty() bool {
	return p.snap.Rows() == 0 || p.snap.Columns() == 0
}

// Location returns the focused coordinates, or plane.None when empty.
func (p *Plane[K]) Location() plane.Coordinates {
	return p.location
}

// Focused returns the key at the focused coordinates.
func (p *Plane[K]) Focused() (K, bool) {
	return p.snap.Keys.Get(p.location)
}

// Snapshot returns the current snapshot.
func (p *Plane[K]) Snapshot() snapshot.Plane[K] {
	return p.snap
}

// Policy returns the traversal policy.
func (p *Plane[K]) Policy() Policy {
	return p.settings.Policy
}

func (p *Plane[K]) ability(c plane.Coordinates) eligibility.Ability {
	return p.snap.MetaAt(c).AbilityOrEnabled()
}

func (p *Plane[K]) grid() traverse.Grid {
	return traverse.GridOf(p.snap.Keys, p.Loops)
}

// resolveCall folds per-call options into the gate and scan direction. The
// extra predicates are the row or column constraints of the *InRow and
// *InColumn variants.
func (p *Plane[K]) resolveCall(opts []eligibility.Option[plane.Coordinates], extra ...eligibility.Predicate[plane.Coordinates]) (eligibility.Predicate[plane.Coordinates], traverse.Direction) {
	o := eligibility.Apply(opts)
	caller := eligibility.And(append([]eligibility.Predicate[plane.Coordinates]{o.Predicate}, extra...)...)
	return eligibility.Gate(p.DisabledElementsAreEligibleLocations, p.ability, caller), o.DirectionOr(p.Direction)
}

func (p *Plane[K]) land(c plane.Coordinates, ok bool) eligibility.Outcome {
	if !ok {
		return eligibility.OutcomeNone
	}
	p.location = c
	return eligibility.OutcomeOf(p.ability(c))
}

func (p *Plane[K]) next(from plane.Coordinates, dir traverse.Direction, gate eligibility.Predicate[plane.Coordinates]) eligibility.Outcome {
	return p.land(p.grid().ToNextEligibleIn(from, dir, gate))
}

func (p *Plane[K]) previous(from plane.Coordinates, dir traverse.Direction, gate eligibility.Predicate[plane.Coordinates]) eligibility.Outcome {
	return p.land(p.grid().ToPreviousEligibleIn(from, dir, gate))
}

func inRow(row int) eligibility.Predicate[plane.Coordinates] {
	return func(c plane.Coordinates) bool { return c.Row == row }
}

func inColumn(column int) eligibility.Predicate[plane.Coordinates] {
	return func(c plane.Coordinates) bool { return c.Column == column }
}

// Exact focuses target when it is in range and eligible.
func (p *Plane[K]) Exact(target plane.Coordinates, opts ...eligibility.Option[plane.Coordinates]) eligibility.Outcome {
	if !p.snap.Keys.Contains(target) {
		p.logger.WithOperation("navigate.exact").Debug("target out of range",
			"target", target.String(), "rows", p.snap.Rows(), "columns", p.snap.Columns())
		return eligibility.OutcomeNone
	}
	gate, _ := p.resolveCall(opts)
	return p.land(target, gate(target))
}

// Next focuses the first eligible cell after from in the scan direction.
func (p *Plane[K]) Next(from plane.Coordinates, opts ...eligibility.Option[plane.Coordinates]) eligibility.Outcome {
	gate, dir := p.resolveCall(opts)
	return p.next(from, dir, gate)
}

// Previous focuses the first eligible cell before from in the scan
// direction.
func (p *Plane[K]) Previous(from plane.Coordinates, opts ...eligibility.Option[plane.Coordinates]) eligibility.Outcome {
	gate, dir := p.resolveCall(opts)
	return p.previous(from, dir, gate)
}

// First focuses the first eligible cell in the scan direction.
func (p *Plane[K]) First(opts ...eligibility.Option[plane.Coordinates]) eligibility.Outcome {
	return p.Next(plane.None, opts...)
}

// Last focuses the last eligible cell in the scan direction.
func (p *Plane[K]) Last(opts ...eligibility.Option[plane.Coordinates]) eligibility.Outcome {
	return p.Previous(plane.At(p.snap.Rows(), p.snap.Columns()), opts...)
}

// FirstInRow focuses the leftmost eligible cell of row.
func (p *Plane[K]) FirstInRow(row int, opts ...eligibility.Option[plane.Coordinates]) eligibility.Outcome {
	gate, _ := p.resolveCall(opts, inRow(row))
	return p.next(plane.At(row, -1), traverse.Horizontal, gate)
}

// LastInRow focuses the rightmost eligible cell of row.
func (p *Plane[K]) LastInRow(row int, opts ...eligibility.Option[plane.Coordinates]) eligibility.Outcome {
	gate, _ := p.resolveCall(opts, inRow(row))
	return p.previous(plane.At(row, p.snap.Columns()), traverse.Horizontal, gate)
}

// FirstInColumn focuses the topmost eligible cell of column.
func (p *Plane[K]) FirstInColumn(column int, opts ...eligibility.Option[plane.Coordinates]) eligibility.Outcome {
	gate, _ := p.resolveCall(opts, inColumn(column))
	return p.next(plane.At(-1, column), traverse.Vertical, gate)
}

// LastInColumn focuses the bottommost eligible cell of column.
func (p *Plane[K]) LastInColumn(column int, opts ...eligibility.Option[plane.Coordinates]) eligibility.Outcome {
	gate, _ := p.resolveCall(opts, inColumn(column))
	return p.previous(plane.At(p.snap.Rows(), column), traverse.Vertical, gate)
}

// NextInRow focuses the next eligible cell to the right of from, wrapping
// within the row when loops are on.
func (p *Plane[K]) NextInRow(from plane.Coordinates, opts ...eligibility.Option[plane.Coordinates]) eligibility.Outcome {
	gate, _ := p.resolveCall(opts, inRow(from.Row))
	return p.next(from, traverse.Horizontal, gate)
}

// PreviousInRow focuses the next eligible cell to the left of from.
func (p *Plane[K]) PreviousInRow(from plane.Coordinates, opts ...eligibility.Option[plane.Coordinates]) eligibility.Outcome {
	gate, _ := p.resolveCall(opts, inRow(from.Row))
	return p.previous(from, traverse.Horizontal, gate)
}

// NextInColumn focuses the next eligible cell below from.
func (p *Plane[K]) NextInColumn(from plane.Coordinates, opts ...eligibility.Option[plane.Coordinates]) eligibility.Outcome {
	gate, _ := p.resolveCall(opts, inColumn(from.Column))
	return p.next(from, traverse.Vertical, gate)
}

// PreviousInColumn focuses the next eligible cell above from.
func (p *Plane[K]) PreviousInColumn(from plane.Coordinates, opts ...eligibility.Option[plane.Coordinates]) eligibility.Outcome {
	gate, _ := p.resolveCall(opts, inColumn(from.Column))
	return p.previous(from, traverse.Vertical, gate)
}

// Random focuses an eligible cell chosen uniformly.
func (p *Plane[K]) Random(opts ...eligibility.Option[plane.Coordinates]) eligibility.Outcome {
	gate, _ := p.resolveCall(opts)
	var candidates []plane.Coordinates
	for pt := range p.snap.Keys.Points() {
		if c := pt.Coordinates(); gate(c) {
			candidates = append(candidates, c)
		}
	}
	if len(candidates) == 0 {
		return eligibility.OutcomeNone
	}
	return p.land(candidates[p.intN(len(candidates))], true)
}

// Sync replaces the snapshot with next and reconciles focus. Reorders follow
// the focused key (falling back to First). When the plane shrinks past the
// focus it clamps with LastInRow when only the width shrank past it,
// LastInColumn when only the height did, and Last when both did. Growth
// leaves focus alone; an empty plane sets it to plane.None.
//
// A malformed next is rejected and the Plane is left unchanged.
func (p *Plane[K]) Sync(next snapshot.Plane[K]) error {
	if err := next.Validate(); err != nil {
		return err
	}
	log := p.logger.WithOperation("navigate.sync")
	var zero K
	focused, hadFocus := p.Focused()
	// A zero key was not collected this cycle and identifies nothing.
	hadFocus = hadFocus && focused != zero
	prev := p.snap
	from := p.location
	p.snap = next

	if p.empty() {
		p.location = plane.None
		if !from.IsNone() {
			log.Debug("collection emptied", "from", from.String())
		}
		return nil
	}

	st := status.Plane(next.Keys, prev.Keys, status.WithEqual(p.equal))
	rows, cols := next.Rows(), next.Columns()
	switch {
	case from.IsNone():
		if !p.First().Found() {
			p.location = plane.At(0, 0)
		}
		log.Debug("collection populated", "to", p.location.String())
	case st.Order == status.OrderChanged:
		if c := next.IndexOfFunc(focused, p.equal); hadFocus && !c.IsNone() {
			p.location = c
			log.Debug("focus followed key", "from", from.String(), "to", c.String())
			return nil
		}
		if !p.First().Found() {
			p.location = plane.At(min(from.Row, rows-1), min(from.Column, cols-1))
		}
		log.Debug("focused key gone, moved to first", "from", from.String(), "to", p.location.String())
	case from.Row >= rows || from.Column >= cols:
		var out eligibility.Outcome
		switch {
		case from.Row >= rows && from.Column >= cols:
			out = p.Last()
		case from.Row >= rows:
			out = p.LastInColumn(from.Column)
		default:
			out = p.LastInRow(from.Row)
		}
		if !out.Found() {
			p.location = plane.At(min(from.Row, rows-1), min(from.Column, cols-1))
		}
		log.Debug("focus clamped", "from", from.String(), "to", p.location.String(),
			"row_width", string(st.RowWidth), "column_height", string(st.ColumnHeight))
	}
	return nil
}
