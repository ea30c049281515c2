package pick

import (
	"fmt"

	"github.com/Iron-Ham/focusgrid/internal/errors"
	"github.com/Iron-Ham/focusgrid/internal/logging"
	"github.com/Iron-Ham/focusgrid/internal/snapshot"
	"github.com/Iron-Ham/focusgrid/internal/traverse"
)

// Policy is the picking policy fixed at construction.
type Policy struct {
	Loops                                bool
	DisabledElementsAreEligibleLocations bool
	Direction                            traverse.Direction
	// AllowsDuplicates keeps repeated picks of the same location.
	AllowsDuplicates bool
	// Replace is used by calls that pass an empty Replace.
	Replace Replace
}

type settings struct {
	Policy
	logger   *logging.Logger
	keyEqual any // func(a, b K) bool for the key type of the List or Plane
}

// Option configures a List or Plane at construction.
type Option func(*settings)

// WithPolicy replaces the whole picking policy.
func WithPolicy(p Policy) Option {
	return func(s *settings) { s.Policy = p }
}

// WithLoops sets Policy.Loops.
func WithLoops(loops bool) Option {
	return func(s *settings) { s.Loops = loops }
}

// WithDisabledEligible sets Policy.DisabledElementsAreEligibleLocations.
func WithDisabledEligible(eligible bool) Option {
	return func(s *settings) { s.DisabledElementsAreEligibleLocations = eligible }
}

// WithDirection sets the default plane scan direction.
func WithDirection(d traverse.Direction) Option {
	return func(s *settings) { s.Direction = d }
}

// WithDuplicates sets Policy.AllowsDuplicates.
func WithDuplicates(allow bool) Option {
	return func(s *settings) { s.AllowsDuplicates = allow }
}

// WithReplace sets the default Replace mode.
func WithReplace(r Replace) Option {
	return func(s *settings) { s.Replace = r }
}

// WithLogger sets the logger used for reconciliation and rejected targets.
func WithLogger(l *logging.Logger) Option {
	return func(s *settings) { s.logger = l }
}

// WithEqual sets how Sync decides that a key in the next snapshot is the
// same item as a key in the current one. The default is ==. The key type
// must match the List or Plane being built.
func WithEqual[K comparable](equal func(a, b K) bool) Option {
	return func(s *settings) { s.keyEqual = equal }
}

func resolve(surface string, opts []Option) settings {
	var s settings
	for _, opt := range opts {
		opt(&s)
	}
	if s.Direction == "" {
		s.Direction = traverse.Horizontal
	}
	if s.Replace == "" {
		s.Replace = ReplaceAll
	}
	if s.logger == nil {
		s.logger = logging.NopLogger()
	}
	s.logger = s.logger.WithSurface(surface)
	return s
}

func (s settings) replace(r Replace) Replace {
	if r == "" {
		return s.Replace
	}
	return r
}

// traversable is the kind filter applied by Next, Previous and All: plain
// items are only picked directly.
func traversable(m snapshot.Meta) bool {
	return m.KindOrItem() != snapshot.KindItem
}

func exclusiveGroup(m snapshot.Meta) string {
	if m.Exclusive() {
		return m.Group
	}
	return ""
}

// clampSpan clamps the inclusive span between a and b to [0, length),
// keeping its direction. It reports false when the span misses the range.
func clampSpan(a, b, length int) (int, int, bool) {
	if length == 0 || max(a, b) < 0 || min(a, b) >= length {
		return 0, 0, false
	}
	return min(max(a, 0), length-1), min(max(b, 0), length-1), true
}

// identity returns the WithEqual function for key type K, or == when none
// was set.
func identity[K comparable](s settings) (func(a, b K) bool, error) {
	if s.keyEqual == nil {
		return func(a, b K) bool { return a == b }, nil
	}
	equal, ok := s.keyEqual.(func(a, b K) bool)
	if !ok || equal == nil {
		return nil, errors.NewValidationError("equality function does not match the key type").
			WithField("equal").WithValue(fmt.Sprintf("%T", s.keyEqual))
	}
	return equal, nil
}
