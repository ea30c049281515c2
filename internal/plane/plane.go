// Package plane provides the two-dimensional addressing types shared by the
// grid traversal, navigation, and pick packages.
package plane

import (
	"fmt"
	"iter"
)

// Coordinates addresses one cell of a Plane. A value of -1 on either axis
// means "no location".
type Coordinates struct {
	Row    int `json:"row" yaml:"row"`
	Column int `json:"column" yaml:"column"`
}

// None is the empty location sentinel.
var None = Coordinates{Row: -1, Column: -1}

// At is shorthand for Coordinates{Row: row, Column: column}.
func At(row, column int) Coordinates {
	return Coordinates{Row: row, Column: column}
}

// IsNone reports whether c carries the sentinel on either axis.
func (c Coordinates) IsNone() bool {
	return c.Row < 0 || c.Column < 0
}

// String renders c as "(row,column)".
func (c Coordinates) String() string {
	return fmt.Sprintf("(%d,%d)", c.Row, c.Column)
}

// Compare orders coordinates row-major. It returns -1, 0 or +1.
func (c Coordinates) Compare(other Coordinates) int {
	switch {
	case c.Row < other.Row:
		return -1
	case c.Row > other.Row:
		return 1
	case c.Column < other.Column:
		return -1
	case c.Column > other.Column:
		return 1
	default:
		return 0
	}
}

// Point is one cell yielded by Plane.Points.
type Point[T any] struct {
	Row    int
	Column int
	Value  T
}

// Coordinates returns the point's address.
func (p Point[T]) Coordinates() Coordinates {
	return Coordinates{Row: p.Row, Column: p.Column}
}

// Plane is an ordered container of rows of columns. All rows are expected to
// have the same length; Rectangular reports whether that holds.
type Plane[T any] [][]T

// New returns a rows x columns plane filled with zero values.
func New[T any](rows, columns int) Plane[T] {
	p := make(Plane[T], rows)
	for r := range p {
		p[r] = make([]T, columns)
	}
	return p
}

// Fill returns a rows x columns plane with every cell set to value.
func Fill[T any](rows, columns int, value T) Plane[T] {
	p := New[T](rows, columns)
	for r := range p {
		for c := range p[r] {
			p[r][c] = value
		}
	}
	return p
}

// Rows returns the number of rows.
func (p Plane[T]) Rows() int {
	return len(p)
}

// Columns returns the width of the first row, or 0 for an empty plane.
func (p Plane[T]) Columns() int {
	if len(p) == 0 {
		return 0
	}
	return len(p[0])
}

// Len returns the number of cells in a rectangular plane.
func (p Plane[T]) Len() int {
	return p.Rows() * p.Columns()
}

// Contains reports whether c addresses an existing cell.
func (p Plane[T]) Contains(c Coordinates) bool {
	if c.Row < 0 || c.Row >= len(p) {
		return false
	}
	return c.Column >= 0 && c.Column < len(p[c.Row])
}

// Get returns the value at c. The second result is false when c is out of
// bounds.
func (p Plane[T]) Get(c Coordinates) (T, bool) {
	if !p.Contains(c) {
		var zero T
		return zero, false
	}
	return p[c.Row][c.Column], true
}

// Set stores value at c, growing the plane as needed. Growing a row past the
// width of its neighbours leaves the plane non-rectangular until the caller
// finishes rebuilding it.
func (p *Plane[T]) Set(c Coordinates, value T) {
	if c.IsNone() {
		return
	}
	for len(*p) <= c.Row {
		*p = append(*p, nil)
	}
	row := (*p)[c.Row]
	for len(row) <= c.Column {
		var zero T
		row = append(row, zero)
	}
	row[c.Column] = value
	(*p)[c.Row] = row
}

// Points yields every cell in row-major order. Each call starts a fresh pass.
func (p Plane[T]) Points() iter.Seq[Point[T]] {
	return func(yield func(Point[T]) bool) {
		for r, row := range p {
			for c, v := range row {
				if !yield(Point[T]{Row: r, Column: c, Value: v}) {
					return
				}
			}
		}
	}
}

// Rectangular reports whether every row has the same length. The second
// result is the first offending row when it does not.
func (p Plane[T]) Rectangular() (bool, int) {
	width := p.Columns()
	for r, row := range p {
		if len(row) != width {
			return false, r
		}
	}
	return true, -1
}

// Clone returns a deep copy of the row slices.
func (p Plane[T]) Clone() Plane[T] {
	if p == nil {
		return nil
	}
	out := make(Plane[T], len(p))
	for r, row := range p {
		out[r] = append([]T(nil), row...)
	}
	return out
}

// Map builds a plane of the same shape by applying fn to every cell.
func Map[T, U any](p Plane[T], fn func(Point[T]) U) Plane[U] {
	out := make(Plane[U], len(p))
	for r, row := range p {
		out[r] = make([]U, len(row))
		for c, v := range row {
			out[r][c] = fn(Point[T]{Row: r, Column: c, Value: v})
		}
	}
	return out
}
