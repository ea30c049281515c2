package fixture

import (
	"github.com/Iron-Ham/focusgrid/internal/errors"
	"github.com/Iron-Ham/focusgrid/internal/navigate"
	"github.com/Iron-Ham/focusgrid/internal/pick"
	"github.com/Iron-Ham/focusgrid/internal/plane"
	"github.com/Iron-Ham/focusgrid/internal/snapshot"
	"github.com/Iron-Ham/focusgrid/internal/traverse"
)

func buildList(c Cycle) (snapshot.List[string], error) {
	snap := snapshot.List[string]{
		Keys: make([]string, 0, len(c.Items)),
		Meta: make([]snapshot.Meta, 0, len(c.Items)),
	}
	for _, it := range c.Items {
		m, err := it.meta()
		if err != nil {
			return snapshot.List[string]{}, err
		}
		snap.Keys = append(snap.Keys, it.Key)
		snap.Meta = append(snap.Meta, m)
	}
	return snap, nil
}

func buildPlane(c Cycle) (snapshot.Plane[string], error) {
	snap := snapshot.Plane[string]{
		Keys: make(plane.Plane[string], len(c.Rows)),
		Meta: make(plane.Plane[snapshot.Meta], len(c.Rows)),
	}
	for r, row := range c.Rows {
		snap.Keys[r] = make([]string, len(row))
		snap.Meta[r] = make([]snapshot.Meta, len(row))
		for col, it := range row {
			m, err := it.meta()
			if err != nil {
				return snapshot.Plane[string]{}, err
			}
			snap.Keys[r][col] = it.Key
			snap.Meta[r][col] = m
		}
	}
	return snap, nil
}

func (f *Fixture) cycle(i int) (Cycle, error) {
	if i < 0 || i >= len(f.Cycles) {
		return Cycle{}, errors.NewFixtureError("no such cycle", errors.ErrCycleOutOfRange).WithPath(f.Path)
	}
	return f.Cycles[i], nil
}

// List returns the list snapshot of cycle i.
func (f *Fixture) List(i int) (snapshot.List[string], error) {
	c, err := f.cycle(i)
	if err != nil {
		return snapshot.List[string]{}, err
	}
	return buildList(c)
}

// Plane returns the plane snapshot of cycle i.
func (f *Fixture) Plane(i int) (snapshot.Plane[string], error) {
	c, err := f.cycle(i)
	if err != nil {
		return snapshot.Plane[string]{}, err
	}
	return buildPlane(c)
}

// Labels maps every key of cycle i to its display label.
func (f *Fixture) Labels(i int) map[string]string {
	c, err := f.cycle(i)
	if err != nil {
		return nil
	}
	labels := make(map[string]string)
	for _, it := range c.Items {
		labels[it.Key] = it.DisplayLabel()
	}
	for _, row := range c.Rows {
		for _, it := range row {
			labels[it.Key] = it.DisplayLabel()
		}
	}
	return labels
}

// NavigateOptions returns options for the policy fields the fixture sets.
// Append them after configured defaults so the fixture wins.
func (f *Fixture) NavigateOptions() []navigate.Option {
	var opts []navigate.Option
	if f.Loops != nil {
		opts = append(opts, navigate.WithLoops(*f.Loops))
	}
	if f.DisabledElementsAreEligibleLocations != nil {
		opts = append(opts, navigate.WithDisabledEligible(*f.DisabledElementsAreEligibleLocations))
	}
	if f.Direction != nil {
		dir, _ := traverse.ParseDirection(*f.Direction)
		opts = append(opts, navigate.WithDirection(dir))
	}
	return opts
}

// PickOptions returns options for the policy fields the fixture sets.
func (f *Fixture) PickOptions() []pick.Option {
	var opts []pick.Option
	if f.Loops != nil {
		opts = append(opts, pick.WithLoops(*f.Loops))
	}
	if f.DisabledElementsAreEligibleLocations != nil {
		opts = append(opts, pick.WithDisabledEligible(*f.DisabledElementsAreEligibleLocations))
	}
	if f.Direction != nil {
		dir, _ := traverse.ParseDirection(*f.Direction)
		opts = append(opts, pick.WithDirection(dir))
	}
	if f.AllowsDuplicates != nil {
		opts = append(opts, pick.WithDuplicates(*f.AllowsDuplicates))
	}
	if f.Replace != nil {
		replace, _ := pick.ParseReplace(*f.Replace)
		opts = append(opts, pick.WithReplace(replace))
	}
	return opts
}
