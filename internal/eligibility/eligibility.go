// Package eligibility defines item ability, call outcomes, and the
// composable predicates that decide where navigation and picking may land.
//
// Ability is stored per item. Eligibility is never stored: it is derived at
// call time from ability, the caller's predicate, and any filter the calling
// package adds (for example the pick package's kind filter).
package eligibility

import (
	"fmt"

	"github.com/Iron-Ham/focusgrid/internal/plane"
	"github.com/Iron-Ham/focusgrid/internal/traverse"
)

// Ability is the enabled/disabled state of an item.
type Ability string

const (
	Enabled  Ability = "enabled"
	Disabled Ability = "disabled"
)

// ParseAbility accepts "enabled", "disabled", or "" (enabled).
func ParseAbility(s string) (Ability, error) {
	switch Ability(s) {
	case Enabled, "":
		return Enabled, nil
	case Disabled:
		return Disabled, nil
	default:
		return "", fmt.Errorf("unknown ability %q", s)
	}
}

// Outcome is the result of a navigate or pick call: the ability of the
// landed item, or OutcomeNone when nothing eligible was found.
type Outcome string

const (
	OutcomeEnabled  Outcome = "enabled"
	OutcomeDisabled Outcome = "disabled"
	OutcomeNone     Outcome = "none"
)

// OutcomeOf converts an item's ability to the outcome reported for it.
func OutcomeOf(a Ability) Outcome {
	if a == Disabled {
		return OutcomeDisabled
	}
	return OutcomeEnabled
}

// Found reports whether the call landed somewhere.
func (o Outcome) Found() bool {
	return o == OutcomeEnabled || o == OutcomeDisabled
}

// Predicate decides whether a location is eligible.
type Predicate[L any] func(L) bool

// Always is the predicate that accepts every location.
func Always[L any](L) bool { return true }

// And composes predicates; nil predicates are skipped.
func And[L any](preds ...Predicate[L]) Predicate[L] {
	return func(l L) bool {
		for _, p := range preds {
			if p != nil && !p(l) {
				return false
			}
		}
		return true
	}
}

// Gate returns the traversal predicate for the given policy. When disabled
// locations are eligible, ability is ignored and only the caller predicate
// applies; otherwise the location must also be enabled.
func Gate[L any](disabledAreEligible bool, ability func(L) Ability, caller Predicate[L]) Predicate[L] {
	if disabledAreEligible {
		return And[L](caller)
	}
	return And[L](func(l L) bool { return ability(l) == Enabled }, caller)
}

// Options carries the per-call settings shared by navigate and pick.
type Options[L any] struct {
	Predicate Predicate[L]
	Direction traverse.Direction
	// HasDirection is set when Direction was given explicitly.
	HasDirection bool
}

// Option configures a single navigate or pick call.
type Option[L any] func(*Options[L])

// Where narrows the call to locations accepted by pred.
func Where[L any](pred func(L) bool) Option[L] {
	return func(o *Options[L]) {
		if o.Predicate == nil {
			o.Predicate = pred
			return
		}
		prev := o.Predicate
		o.Predicate = func(l L) bool { return prev(l) && pred(l) }
	}
}

// Toward overrides the plane's default scan direction for one call.
func Toward(d traverse.Direction) Option[plane.Coordinates] {
	return func(o *Options[plane.Coordinates]) {
		o.Direction = d
		o.HasDirection = true
	}
}

// Apply folds opts over the zero Options.
func Apply[L any](opts []Option[L]) Options[L] {
	var o Options[L]
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}

// DirectionOr returns the explicit direction or fallback.
func (o Options[L]) DirectionOr(fallback traverse.Direction) traverse.Direction {
	if o.HasDirection {
		return o.Direction
	}
	return fallback
}
