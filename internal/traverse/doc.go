// Package traverse implements the eligibility-aware stepping search used by
// the navigate and pick packages.
//
// The one-dimensional [Stepper] is the only place the "step with a
// precomputed wraparound limit" rule lives. [Grid] composes two Steppers,
// one per axis, to scan a plane in either [Horizontal] or [Vertical]
// direction.
//
// # Usage
//
//	i, ok := traverse.ToNextEligible(len(items), current, loops, func(i int) bool {
//	    return abilities[i] == eligibility.Enabled
//	})
//
//	g := traverse.GridOf(cells, true)
//	c, ok := g.ToPreviousEligibleIn(plane.At(0, 0), traverse.Vertical, eligible)
//
// A search never runs more than one full pass over the collection, so every
// call is bounded by the collection size.
package traverse
