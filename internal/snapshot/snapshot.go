// Package snapshot holds the per-cycle item snapshots handed to navigate and
// pick: identity keys plus parallel metadata records.
package snapshot

import (
	"fmt"
	"strconv"

	"github.com/Iron-Ham/focusgrid/internal/eligibility"
	"github.com/Iron-Ham/focusgrid/internal/errors"
	"github.com/Iron-Ham/focusgrid/internal/plane"
)

// Kind classifies how an item takes part in picking.
type Kind string

const (
	// KindItem is picked only by direct (click-style) selection.
	KindItem Kind = "item"
	// KindCheckbox is picked independently of its neighbours.
	KindCheckbox Kind = "checkbox"
	// KindRadio is exclusive within its Group.
	KindRadio Kind = "radio"
)

// ParseKind accepts item, checkbox, radio, or "" (item).
func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case KindItem, "":
		return KindItem, nil
	case KindCheckbox, KindRadio:
		return Kind(s), nil
	default:
		return "", errors.NewValidationError("unknown item kind").WithField("kind").WithValue(s).WithCause(errors.ErrUnknownKind)
	}
}

// Meta is the dynamic metadata carried alongside each item.
type Meta struct {
	Ability eligibility.Ability
	Kind    Kind
	Group   string
}

// Enabled is the metadata of a plain enabled item.
var Enabled = Meta{Ability: eligibility.Enabled, Kind: KindItem}

// AbilityOrEnabled treats the zero Ability as enabled.
func (m Meta) AbilityOrEnabled() eligibility.Ability {
	if m.Ability == "" {
		return eligibility.Enabled
	}
	return m.Ability
}

// KindOrItem treats the zero Kind as KindItem.
func (m Meta) KindOrItem() Kind {
	if m.Kind == "" {
		return KindItem
	}
	return m.Kind
}

// Exclusive reports whether the item belongs to a radio group.
func (m Meta) Exclusive() bool {
	return m.KindOrItem() == KindRadio && m.Group != ""
}

// List is one update cycle of a list: identity keys and parallel metadata.
// The zero key marks an absent (not yet collected) entry.
type List[K comparable] struct {
	Keys []K
	Meta []Meta
}

// NewList builds a list snapshot where every item is an enabled KindItem.
func NewList[K comparable](keys ...K) List[K] {
	meta := make([]Meta, len(keys))
	for i := range meta {
		meta[i] = Enabled
	}
	return List[K]{Keys: keys, Meta: meta}
}

// Len returns the number of items.
func (l List[K]) Len() int {
	return len(l.Keys)
}

// MetaAt returns the metadata at i, or the zero Meta when out of range.
func (l List[K]) MetaAt(i int) Meta {
	if i < 0 || i >= len(l.Meta) {
		return Meta{}
	}
	return l.Meta[i]
}

// IndexOf returns the first index holding key, or -1.
func (l List[K]) IndexOf(key K) int {
	return l.IndexOfFunc(key, equalKeys[K])
}

// IndexOfFunc is IndexOf with equal deciding which key is the same item.
func (l List[K]) IndexOfFunc(key K, equal func(a, b K) bool) int {
	for i, k := range l.Keys {
		if equal(k, key) {
			return i
		}
	}
	return -1
}

// Validate checks that metadata parallels the keys and that radios are
// grouped.
func (l List[K]) Validate() error {
	if len(l.Meta) != len(l.Keys) {
		return errors.NewSnapshotError(
			fmt.Sprintf("%d meta records for %d items", len(l.Meta), len(l.Keys)),
			errors.ErrMetaMismatch,
		).WithSurface("list")
	}
	for i, m := range l.Meta {
		if err := validateMeta(m); err != nil {
			return errors.NewSnapshotError("invalid item metadata", err).WithSurface("list").WithLocation(strconv.Itoa(i))
		}
	}
	return nil
}

// Plane is one update cycle of a grid.
type Plane[K comparable] struct {
	Keys plane.Plane[K]
	Meta plane.Plane[Meta]
}

// NewPlane builds a plane snapshot where every item is an enabled KindItem.
func NewPlane[K comparable](keys plane.Plane[K]) Plane[K] {
	return Plane[K]{
		Keys: keys,
		Meta: plane.Map(keys, func(plane.Point[K]) Meta { return Enabled }),
	}
}

// Rows returns the number of rows.
func (p Plane[K]) Rows() int {
	return p.Keys.Rows()
}

// Columns returns the row width.
func (p Plane[K]) Columns() int {
	return p.Keys.Columns()
}

// MetaAt returns the metadata at c, or the zero Meta when out of range.
func (p Plane[K]) MetaAt(c plane.Coordinates) Meta {
	m, _ := p.Meta.Get(c)
	return m
}

// IndexOf returns the first coordinates (row-major) holding key, or
// plane.None.
func (p Plane[K]) IndexOf(key K) plane.Coordinates {
	return p.IndexOfFunc(key, equalKeys[K])
}

// IndexOfFunc is IndexOf with equal deciding which key is the same item.
func (p Plane[K]) IndexOfFunc(key K, equal func(a, b K) bool) plane.Coordinates {
	for pt := range p.Keys.Points() {
		if equal(pt.Value, key) {
			return pt.Coordinates()
		}
	}
	return plane.None
}

func equalKeys[K comparable](a, b K) bool { return a == b }

// Validate checks rectangularity and that metadata has the same shape.
func (p Plane[K]) Validate() error {
	if ok, row := p.Keys.Rectangular(); !ok {
		return errors.NewSnapshotError(
			fmt.Sprintf("row %d has %d columns, want %d", row, len(p.Keys[row]), p.Keys.Columns()),
			errors.ErrNonRectangular,
		).WithSurface("plane").WithLocation(strconv.Itoa(row))
	}
	if p.Meta.Rows() != p.Keys.Rows() {
		return errors.NewSnapshotError(
			fmt.Sprintf("%d meta rows for %d item rows", p.Meta.Rows(), p.Keys.Rows()),
			errors.ErrMetaMismatch,
		).WithSurface("plane")
	}
	for r := range p.Keys {
		if len(p.Meta[r]) != len(p.Keys[r]) {
			return errors.NewSnapshotError(
				fmt.Sprintf("meta row %d has %d columns, want %d", r, len(p.Meta[r]), len(p.Keys[r])),
				errors.ErrMetaMismatch,
			).WithSurface("plane").WithLocation(strconv.Itoa(r))
		}
	}
	for pt := range p.Meta.Points() {
		if err := validateMeta(pt.Value); err != nil {
			return errors.NewSnapshotError("invalid item metadata", err).WithSurface("plane").WithLocation(pt.Coordinates().String())
		}
	}
	return nil
}

func validateMeta(m Meta) error {
	if _, err := eligibility.ParseAbility(string(m.Ability)); err != nil {
		return errors.Wrap(errors.ErrInvalidInput, err.Error())
	}
	if _, err := ParseKind(string(m.Kind)); err != nil {
		return err
	}
	if m.KindOrItem() == KindRadio && m.Group == "" {
		return errors.ErrUngroupedRadio
	}
	return nil
}
