// Package status classifies how a list or plane snapshot changed between two
// update cycles. It is a cheap gate: navigate and pick only run their
// identity scans when the status says something relevant happened.
package status

import (
	"github.com/Iron-Ham/focusgrid/internal/plane"
)

// Order reports whether items present in both snapshots changed places.
type Order string

const (
	OrderChanged Order = "changed"
	OrderNone    Order = "none"
)

// Length classifies a change along one axis.
type Length string

const (
	Lengthened Length = "lengthened"
	Shortened  Length = "shortened"
	Unchanged  Length = "none"
	// NotApplicable means the axis cannot be measured in the current snapshot.
	NotApplicable Length = "n/a"
)

// ListStatus is the diff of two list snapshots.
type ListStatus struct {
	Order  Order
	Length Length
}

// PlaneStatus is the diff of two plane snapshots. RowWidth tracks the number
// of columns; ColumnHeight tracks the number of rows.
type PlaneStatus struct {
	Order        Order
	RowWidth     Length
	ColumnHeight Length
}

// Changed reports whether anything at all differs.
func (s ListStatus) Changed() bool {
	return s.Order == OrderChanged || s.Length != Unchanged
}

// Changed reports whether anything at all differs.
func (s PlaneStatus) Changed() bool {
	return s.Order == OrderChanged ||
		(s.RowWidth != Unchanged && s.RowWidth != NotApplicable) ||
		s.ColumnHeight != Unchanged
}

type options[K comparable] struct {
	equal  func(a, b K) bool
	absent func(K) bool
}

// Option customizes a diff.
type Option[K comparable] func(*options[K])

// WithEqual replaces == as the identity comparison.
func WithEqual[K comparable](equal func(a, b K) bool) Option[K] {
	return func(o *options[K]) { o.equal = equal }
}

// WithAbsent replaces "is the zero value" as the test for entries that were
// not collected this cycle.
func WithAbsent[K comparable](absent func(K) bool) Option[K] {
	return func(o *options[K]) { o.absent = absent }
}

func resolve[K comparable](opts []Option[K]) options[K] {
	var zero K
	o := options[K]{
		equal:  func(a, b K) bool { return a == b },
		absent: func(k K) bool { return k == zero },
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func (o options[K]) differ(a, b K) bool {
	if o.absent(a) || o.absent(b) {
		return false
	}
	return !o.equal(a, b)
}

// List compares current against previous. Order is changed when any index
// present in both holds a different item; absent entries are skipped.
func List[K comparable](current, previous []K, opts ...Option[K]) ListStatus {
	o := resolve(opts)
	order := OrderNone
	for i := 0; i < min(len(current), len(previous)); i++ {
		if o.differ(current[i], previous[i]) {
			order = OrderChanged
			break
		}
	}
	return ListStatus{Order: order, Length: compare(len(current), len(previous))}
}

// Plane compares current against previous cell by cell over the overlapping
// area.
func Plane[K comparable](current, previous plane.Plane[K], opts ...Option[K]) PlaneStatus {
	o := resolve(opts)
	order := OrderNone
	for pt := range current.Points() {
		prev, ok := previous.Get(pt.Coordinates())
		if ok && o.differ(pt.Value, prev) {
			order = OrderChanged
			break
		}
	}

	width := NotApplicable
	if current.Rows() > 0 {
		width = compare(current.Columns(), previous.Columns())
	}
	return PlaneStatus{
		Order:        order,
		RowWidth:     width,
		ColumnHeight: compare(current.Rows(), previous.Rows()),
	}
}

func compare(current, previous int) Length {
	switch {
	case current > previous:
		return Lengthened
	case current < previous:
		return Shortened
	default:
		return Unchanged
	}
}
