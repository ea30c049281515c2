package navigate

import (
	"github.com/Iron-Ham/focusgrid/internal/eligibility"
	"github.com/Iron-Ham/focusgrid/internal/snapshot"
	"github.com/Iron-Ham/focusgrid/internal/status"
	"github.com/Iron-Ham/focusgrid/internal/traverse"
)

// List owns the focus location of one list. It is not safe for concurrent
// use; callers serialize access.
type List[K comparable] struct {
	settings
	equal    func(a, b K) bool
	snap     snapshot.List[K]
	location int
}

// NewList validates snap and returns a List focused on index 0, or on -1
// when snap is empty.
func NewList[K comparable](snap snapshot.List[K], opts ...Option) (*List[K], error) {
	if err := snap.Validate(); err != nil {
		return nil, err
	}
	s := resolve("list", opts)
	equal, err := identity[K](s)
	if err != nil {
		return nil, err
	}
	l := &List[K]{settings: s, equal: equal, snap: snap, location: -1}
	if snap.Len() > 0 {
		l.location = 0
	}
	return l, nil
}

// Location returns the focused index, or -1 when the list is empty.
func (l *List[K]) Location() int {
	return l.location
}

// Focused returns the key at the focused index.
func (l *List[K]) Focused() (K, bool) {
	var zero K
	if l.location < 0 || l.location >= l.snap.Len() {
		return zero, false
	}
	return l.snap.Keys[l.location], true
}

// Snapshot returns the current snapshot.
func (l *List[K]) Snapshot() snapshot.List[K] {
	return l.snap
}

// Policy returns the traversal policy.
func (l *List[K]) Policy() Policy {
	return l.settings.Policy
}

func (l *List[K]) ability(i int) eligibility.Ability {
	return l.snap.MetaAt(i).AbilityOrEnabled()
}

func (l *List[K]) gate(opts []eligibility.Option[int]) eligibility.Predicate[int] {
	o := eligibility.Apply(opts)
	return eligibility.Gate(l.DisabledElementsAreEligibleLocations, l.ability, o.Predicate)
}

func (l *List[K]) land(i int, ok bool) eligibility.Outcome {
	if !ok {
		return eligibility.OutcomeNone
	}
	l.location = i
	return eligibility.OutcomeOf(l.ability(i))
}

// Exact focuses target when it is in range and eligible. Out-of-range
// targets are rejected without moving focus.
func (l *List[K]) Exact(target int, opts ...eligibility.Option[int]) eligibility.Outcome {
	if target < 0 || target >= l.snap.Len() {
		l.logger.WithOperation("navigate.exact").Debug("target out of range", "target", target, "length", l.snap.Len())
		return eligibility.OutcomeNone
	}
	return l.land(target, l.gate(opts)(target))
}

// Next focuses the first eligible index after from.
func (l *List[K]) Next(from int, opts ...eligibility.Option[int]) eligibility.Outcome {
	return l.land(traverse.ToNextEligible(l.snap.Len(), from, l.Loops, l.gate(opts)))
}

// Previous focuses the first eligible index before from.
func (l *List[K]) Previous(from int, opts ...eligibility.Option[int]) eligibility.Outcome {
	return l.land(traverse.ToPreviousEligible(l.snap.Len(), from, l.Loops, l.gate(opts)))
}

// First focuses the first eligible index.
func (l *List[K]) First(opts ...eligibility.Option[int]) eligibility.Outcome {
	return l.Next(-1, opts...)
}

// Last focuses the last eligible index.
func (l *List[K]) Last(opts ...eligibility.Option[int]) eligibility.Outcome {
	return l.Previous(l.snap.Len(), opts...)
}

// Random focuses an eligible index chosen uniformly.
func (l *List[K]) Random(opts ...eligibility.Option[int]) eligibility.Outcome {
	gate := l.gate(opts)
	var candidates []int
	for i := range l.snap.Len() {
		if gate(i) {
			candidates = append(candidates, i)
		}
	}
	if len(candidates) == 0 {
		return eligibility.OutcomeNone
	}
	return l.land(candidates[l.intN(len(candidates))], true)
}

// Sync replaces the snapshot with next and reconciles focus:
//   - reordered: focus follows the previously focused key, or moves to
//     First when the key is gone.
//   - shortened past the focus: focus clamps to Last.
//   - lengthened: focus stays.
//   - emptied: focus becomes -1.
//
// A malformed next is rejected and the List is left unchanged.
func (l *List[K]) Sync(next snapshot.List[K]) error {
	if err := next.Validate(); err != nil {
		return err
	}
	log := l.logger.WithOperation("navigate.sync")
	var zero K
	focused, hadFocus := l.Focused()
	// A zero key was not collected this cycle and identifies nothing.
	hadFocus = hadFocus && focused != zero
	prev := l.snap
	from := l.location
	l.snap = next

	if next.Len() == 0 {
		l.location = -1
		if from != -1 {
			log.Debug("collection emptied", "from", from)
		}
		return nil
	}

	st := status.List(next.Keys, prev.Keys, status.WithEqual(l.equal))
	switch {
	case l.location < 0:
		if !l.First().Found() {
			l.location = 0
		}
		log.Debug("collection populated", "to", l.location)
	case st.Order == status.OrderChanged:
		if idx := next.IndexOfFunc(focused, l.equal); hadFocus && idx >= 0 {
			l.location = idx
			log.Debug("focus followed key", "from", from, "to", idx)
			return nil
		}
		if !l.First().Found() {
			l.location = min(l.location, next.Len()-1)
		}
		log.Debug("focused key gone, moved to first", "from", from, "to", l.location)
	case st.Length == status.Shortened && l.location >= next.Len():
		if !l.Last().Found() {
			l.location = next.Len() - 1
		}
		log.Debug("focus clamped", "from", from, "to", l.location)
	}
	return nil
}
