package traverse

import "iter"

// Stepper walks a one-dimensional range of Length positions. Every walk
// computes its stopping limit before the first step, so a walk ends after at
// most one full pass regardless of what the caller does with the positions.
type Stepper struct {
	Length int
	Loops  bool
}

// Forward yields the positions after start in increasing order.
//
// With Loops the walk wraps past the end and finishes on start itself, so a
// lone eligible start is found again. Without Loops it stops at the last
// position. A start of -1 (one before the first position) scans the whole
// range once in either mode.
func (s Stepper) Forward(start int) iter.Seq[int] {
	return func(yield func(int) bool) {
		if s.Length <= 0 {
			return
		}
		from, limit, ok := s.forwardLimit(start)
		if !ok {
			return
		}
		i := from
		for {
			i++
			if i >= s.Length {
				i = 0
			}
			if !yield(i) || i == limit {
				return
			}
		}
	}
}

// Backward yields the positions before start in decreasing order. A start of
// Length (one after the last position) scans the whole range once.
func (s Stepper) Backward(start int) iter.Seq[int] {
	return func(yield func(int) bool) {
		if s.Length <= 0 {
			return
		}
		from, limit, ok := s.backwardLimit(start)
		if !ok {
			return
		}
		i := from
		for {
			i--
			if i < 0 {
				i = s.Length - 1
			}
			if !yield(i) || i == limit {
				return
			}
		}
	}
}

func (s Stepper) forwardLimit(start int) (from, limit int, ok bool) {
	switch {
	case start < 0:
		return -1, s.Length - 1, true
	case start >= s.Length:
		if !s.Loops {
			return 0, 0, false
		}
		return -1, s.Length - 1, true
	case s.Loops:
		return start, start, true
	case start == s.Length-1:
		return 0, 0, false
	default:
		return start, s.Length - 1, true
	}
}

func (s Stepper) backwardLimit(start int) (from, limit int, ok bool) {
	switch {
	case start >= s.Length:
		return s.Length, 0, true
	case start < 0:
		if !s.Loops {
			return 0, 0, false
		}
		return s.Length, 0, true
	case s.Loops:
		return start, start, true
	case start == 0:
		return 0, 0, false
	default:
		return start, 0, true
	}
}

// ToNextEligible returns the first position after start that satisfies
// eligible. The second result is false when no position qualifies.
func ToNextEligible(length, start int, loops bool, eligible func(int) bool) (int, bool) {
	for i := range (Stepper{Length: length, Loops: loops}).Forward(start) {
		if eligible(i) {
			return i, true
		}
	}
	return -1, false
}

// ToPreviousEligible returns the first position before start that satisfies
// eligible.
func ToPreviousEligible(length, start int, loops bool, eligible func(int) bool) (int, bool) {
	for i := range (Stepper{Length: length, Loops: loops}).Backward(start) {
		if eligible(i) {
			return i, true
		}
	}
	return -1, false
}
