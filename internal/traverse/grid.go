package traverse

import (
	"fmt"
	"iter"

	"github.com/Iron-Ham/focusgrid/internal/plane"
)

// Direction names the axis that increments fastest during a plane scan.
type Direction string

const (
	// Horizontal scans across columns first (row-major order).
	Horizontal Direction = "horizontal"
	// Vertical scans down rows first (column-major order).
	Vertical Direction = "vertical"
)

// ParseDirection converts a configuration string to a Direction.
func ParseDirection(s string) (Direction, error) {
	switch Direction(s) {
	case Horizontal, "":
		return Horizontal, nil
	case Vertical:
		return Vertical, nil
	default:
		return "", fmt.Errorf("unknown direction %q (want %q or %q)", s, Horizontal, Vertical)
	}
}

// Grid scans a Rows x Columns plane by nesting two Steppers. The minor
// axis is the one named by the direction; the major axis is the other one.
type Grid struct {
	Rows    int
	Columns int
	Loops   bool
}

// GridOf sizes a Grid after p. p is assumed rectangular.
func GridOf[T any](p plane.Plane[T], loops bool) Grid {
	return Grid{Rows: p.Rows(), Columns: p.Columns(), Loops: loops}
}

// Forward yields coordinates after start. The minor axis is scanned from
// start to its own wraparound limit, then the major axis advances by one and
// the minor axis restarts from its first position. A full pass visits every
// coordinate exactly once.
func (g Grid) Forward(start plane.Coordinates, dir Direction) iter.Seq[plane.Coordinates] {
	return g.scan(start, dir, true)
}

// Backward mirrors Forward toward the origin.
func (g Grid) Backward(start plane.Coordinates, dir Direction) iter.Seq[plane.Coordinates] {
	return g.scan(start, dir, false)
}

func (g Grid) scan(start plane.Coordinates, dir Direction, forward bool) iter.Seq[plane.Coordinates] {
	return func(yield func(plane.Coordinates) bool) {
		if g.Rows <= 0 || g.Columns <= 0 {
			return
		}
		majorLen, minorLen := g.Rows, g.Columns
		major, minor := start.Row, start.Column
		compose := func(maj, mnr int) plane.Coordinates { return plane.At(maj, mnr) }
		if dir == Vertical {
			majorLen, minorLen = g.Columns, g.Rows
			major, minor = start.Column, start.Row
			compose = func(maj, mnr int) plane.Coordinates { return plane.At(mnr, maj) }
		}

		minorStepper := Stepper{Length: minorLen, Loops: g.Loops}
		majorStepper := Stepper{Length: majorLen, Loops: g.Loops}
		walk := minorStepper.Forward
		outer := majorStepper.Forward
		seed := -1
		if !forward {
			walk = minorStepper.Backward
			outer = majorStepper.Backward
			seed = minorLen
		}

		inRange := major >= 0 && major < majorLen
		if inRange {
			for m := range walk(minor) {
				if !yield(compose(major, m)) {
					return
				}
			}
		}

		for maj := range outer(major) {
			// With loops the major walk ends back on the starting line, which
			// the first inner walk has already covered.
			if inRange && maj == major {
				return
			}
			for m := range walk(seed) {
				if !yield(compose(maj, m)) {
					return
				}
			}
		}
	}
}

// ToNextEligibleIn returns the first coordinates after start that satisfy
// eligible, scanning in dir.
func (g Grid) ToNextEligibleIn(start plane.Coordinates, dir Direction, eligible func(plane.Coordinates) bool) (plane.Coordinates, bool) {
	for c := range g.Forward(start, dir) {
		if eligible(c) {
			return c, true
		}
	}
	return plane.None, false
}

// ToPreviousEligibleIn returns the first coordinates before start that
// satisfy eligible, scanning in dir.
func (g Grid) ToPreviousEligibleIn(start plane.Coordinates, dir Direction, eligible func(plane.Coordinates) bool) (plane.Coordinates, bool) {
	for c := range g.Backward(start, dir) {
		if eligible(c) {
			return c, true
		}
	}
	return plane.None, false
}
