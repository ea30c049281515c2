package navigate

import (
	"fmt"
	"math/rand/v2"

	"github.com/Iron-Ham/focusgrid/internal/errors"
	"github.com/Iron-Ham/focusgrid/internal/logging"
	"github.com/Iron-Ham/focusgrid/internal/traverse"
)

// Policy is the traversal policy fixed at construction.
type Policy struct {
	// Loops lets Next and Previous wrap around the ends of the collection.
	Loops bool
	// DisabledElementsAreEligibleLocations lets focus land on disabled
	// items. When false only enabled items are eligible.
	DisabledElementsAreEligibleLocations bool
	// Direction is the default plane scan direction. Ignored for lists.
	Direction traverse.Direction
}

type settings struct {
	Policy
	logger   *logging.Logger
	rng      *rand.Rand
	keyEqual any // func(a, b K) bool for the key type of the List or Plane
}

// Option configures a List or Plane at construction.
type Option func(*settings)

// WithPolicy replaces the whole traversal policy.
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

// WithLogger sets the logger used for reconciliation and rejected targets.
func WithLogger(l *logging.Logger) Option {
	return func(s *settings) { s.logger = l }
}

// WithRand sets the source used by Random.
func WithRand(r *rand.Rand) Option {
	return func(s *settings) { s.rng = r }
}

// WithEqual sets how Sync decides that a key in the next snapshot is the
// same item as a key in the current one. The default is ==. The key type
// must match the List or Plane being built.
func WithEqual[K comparable](equal func(a, b K) bool) Option {
	return func(s *settings) { s.keyEqual = equal }
}

func resolve(surface string, opts []Option) settings {
	s := settings{Policy: Policy{Direction: traverse.Horizontal}}
	for _, opt := range opts {
		opt(&s)
	}
	if s.Direction == "" {
		s.Direction = traverse.Horizontal
	}
	if s.logger == nil {
		s.logger = logging.NopLogger()
	}
	s.logger = s.logger.WithSurface(surface)
	return s
}

func (s settings) intN(n int) int {
	if s.rng != nil {
		return s.rng.IntN(n)
	}
	return rand.IntN(n)
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
