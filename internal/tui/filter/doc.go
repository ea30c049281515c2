// Package filter narrows the demo's focus and pick calls to items whose
// labels match a typed pattern.
//
// A label matches when it contains the pattern (case-insensitive), when
// the pattern is a regular expression that matches it, or when one of its
// words is within the fuzzy edit distance of the pattern.
//
// # Usage
//
//	f := filter.New(2)
//	f.SetPattern("chekbox")
//
//	opts := filter.Where(f, func(i int) string { return labels[i] })
//	nav.Next(from, opts...)
//
// # Rendering
//
// [Filter.Highlight] renders a label with the substring match styled,
// so the grid can show why an item is still eligible.
package filter
