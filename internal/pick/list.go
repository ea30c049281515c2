package pick

import (
	"cmp"

	"github.com/Iron-Ham/focusgrid/internal/eligibility"
	"github.com/Iron-Ham/focusgrid/internal/snapshot"
	"github.com/Iron-Ham/focusgrid/internal/status"
	"github.com/Iron-Ham/focusgrid/internal/traverse"
)

// List owns the selection of one list. It is not safe for concurrent use.
type List[K comparable] struct {
	settings
	equal func(a, b K) bool
	snap  snapshot.List[K]
	sel   selection[int]
}

// NewList validates snap and returns a List with nothing picked.
func NewList[K comparable](snap snapshot.List[K], opts ...Option) (*List[K], error) {
	if err := snap.Validate(); err != nil {
		return nil, err
	}
	s := resolve("list", opts)
	equal, err := identity[K](s)
	if err != nil {
		return nil, err
	}
	return &List[K]{settings: s, equal: equal, snap: snap}, nil
}

// Snapshot returns the current snapshot.
func (l *List[K]) Snapshot() snapshot.List[K] {
	return l.snap
}

// Policy returns the picking policy.
func (l *List[K]) Policy() Policy {
	return l.settings.Policy
}

func (l *List[K]) ability(i int) eligibility.Ability {
	return l.snap.MetaAt(i).AbilityOrEnabled()
}

func (l *List[K]) group(i int) string {
	return exclusiveGroup(l.snap.MetaAt(i))
}

func (l *List[K]) inRange(i int) bool {
	return i >= 0 && i < l.snap.Len()
}

// gate builds the eligibility predicate. Traversal-based calls add the kind
// filter; direct calls do not.
func (l *List[K]) gate(opts []eligibility.Option[int], traversal bool) eligibility.Predicate[int] {
	o := eligibility.Apply(opts)
	caller := o.Predicate
	if traversal {
		caller = eligibility.And[int](caller, func(i int) bool { return traversable(l.snap.MetaAt(i)) })
	}
	return eligibility.Gate(l.DisabledElementsAreEligibleLocations, l.ability, caller)
}

// pick adds eligible targets and reports the outcome of the newest one.
func (l *List[K]) pick(eligible []int, replace Replace) eligibility.Outcome {
	if len(eligible) == 0 {
		return eligibility.OutcomeNone
	}
	l.sel.add(eligible, l.replace(replace), l.AllowsDuplicates, l.group)
	return eligibility.OutcomeOf(l.ability(eligible[len(eligible)-1]))
}

// Exact picks every eligible target, click-style: the kind filter does not
// apply. Out-of-range and ineligible targets are skipped. An empty replace
// uses the policy default.
func (l *List[K]) Exact(targets []int, replace Replace, opts ...eligibility.Option[int]) eligibility.Outcome {
	gate := l.gate(opts, false)
	eligible := make([]int, 0, len(targets))
	for _, t := range targets {
		if !l.inRange(t) {
			l.logger.WithOperation("pick.exact").Debug("target out of range", "target", t, "length", l.snap.Len())
			continue
		}
		if gate(t) {
			eligible = append(eligible, t)
		}
	}
	return l.pick(eligible, replace)
}

// Next picks the first eligible checkbox or radio after from.
func (l *List[K]) Next(from int, replace Replace, opts ...eligibility.Option[int]) eligibility.Outcome {
	i, ok := traverse.ToNextEligible(l.snap.Len(), from, l.Loops, l.gate(opts, true))
	if !ok {
		return eligibility.OutcomeNone
	}
	return l.pick([]int{i}, replace)
}

// Previous picks the first eligible checkbox or radio before from.
func (l *List[K]) Previous(from int, replace Replace, opts ...eligibility.Option[int]) eligibility.Outcome {
	i, ok := traverse.ToPreviousEligible(l.snap.Len(), from, l.Loops, l.gate(opts, true))
	if !ok {
		return eligibility.OutcomeNone
	}
	return l.pick([]int{i}, replace)
}

// All replaces the selection with every eligible checkbox or radio. Within
// a radio group the last member wins. When nothing is eligible the selection
// is left alone.
func (l *List[K]) All(opts ...eligibility.Option[int]) eligibility.Outcome {
	gate := l.gate(opts, true)
	var eligible []int
	for i := range l.snap.Len() {
		if gate(i) {
			eligible = append(eligible, i)
		}
	}
	if len(eligible) == 0 {
		return eligibility.OutcomeNone
	}
	l.sel.add(eligible, ReplaceAll, l.AllowsDuplicates, l.group)
	return eligibility.OutcomeEnabled
}

// Range picks every eligible index between from and to inclusive, in the
// order walked from from toward to. Like Exact it ignores the kind filter.
// Endpoints past either end are clamped to the list.
func (l *List[K]) Range(from, to int, replace Replace, opts ...eligibility.Option[int]) eligibility.Outcome {
	from, to, ok := clampSpan(from, to, l.snap.Len())
	if !ok {
		return eligibility.OutcomeNone
	}
	step := 1
	if to < from {
		step = -1
	}
	gate := l.gate(opts, false)
	var eligible []int
	for i := from; ; i += step {
		if gate(i) {
			eligible = append(eligible, i)
		}
		if i == to {
			break
		}
	}
	return l.pick(eligible, replace)
}

// Omit removes locations from the selection and reports how many picks were
// removed.
func (l *List[K]) Omit(locations ...int) int {
	return l.sel.omit(locations, l.group)
}

// Clear removes every pick.
func (l *List[K]) Clear() {
	l.sel.clear()
}

// Picks returns the picked indices in pick order.
func (l *List[K]) Picks() []int {
	return l.sel.snapshot()
}

// Keys returns the picked keys in pick order.
func (l *List[K]) Keys() []K {
	keys := make([]K, 0, len(l.sel.picks))
	for _, i := range l.sel.picks {
		keys = append(keys, l.snap.Keys[i])
	}
	return keys
}

// IsPicked reports whether i is in the selection.
func (l *List[K]) IsPicked(i int) bool {
	return l.sel.contains(i)
}

// Oldest returns the earliest pick still selected.
func (l *List[K]) Oldest() (int, bool) { return l.sel.oldest() }

// Newest returns the most recent pick.
func (l *List[K]) Newest() (int, bool) { return l.sel.newest() }

// First returns the lowest picked index.
func (l *List[K]) First() (int, bool) { return l.sel.first(cmp.Compare[int]) }

// Last returns the highest picked index.
func (l *List[K]) Last() (int, bool) { return l.sel.last(cmp.Compare[int]) }

// Multiple reports whether more than one location is picked.
func (l *List[K]) Multiple() bool {
	return len(l.sel.picks) > 1
}

// Groups returns the picked member of each radio group.
func (l *List[K]) Groups() map[string]int {
	return l.sel.groupMap()
}

// Sync replaces the snapshot with next and reconciles the selection:
//   - reordered: picks follow their keys; picks whose key is gone are
//     dropped.
//   - shortened: picks past the end are dropped.
//   - a pick whose item went from enabled to disabled is dropped.
//
// A malformed next is rejected and the List is left unchanged.
func (l *List[K]) Sync(next snapshot.List[K]) error {
	if err := next.Validate(); err != nil {
		return err
	}
	prev := l.snap
	l.snap = next
	if len(l.sel.picks) == 0 {
		return nil
	}

	st := status.List(next.Keys, prev.Keys, status.WithEqual(l.equal))
	before := len(l.sel.picks)
	var zero K
	kept := make([]int, 0, before)
	for _, old := range l.sel.picks {
		loc := old
		if st.Order == status.OrderChanged {
			key := prev.Keys[old]
			if key == zero {
				continue
			}
			if loc = next.IndexOfFunc(key, l.equal); loc < 0 {
				continue
			}
		} else if loc >= next.Len() {
			continue
		}
		if prev.MetaAt(old).AbilityOrEnabled() == eligibility.Enabled &&
			next.MetaAt(loc).AbilityOrEnabled() == eligibility.Disabled {
			continue
		}
		kept = append(kept, loc)
	}
	l.sel.settle(kept, l.group)

	if dropped := before - len(l.sel.picks); dropped > 0 || st.Order == status.OrderChanged {
		l.logger.WithOperation("pick.sync").Debug("reconciled picks",
			"order", string(st.Order), "length", string(st.Length), "kept", len(l.sel.picks), "dropped", dropped)
	}
	return nil
}
