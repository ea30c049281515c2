package navigate

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Iron-Ham/focusgrid/internal/eligibility"
	"github.com/Iron-Ham/focusgrid/internal/errors"
	"github.com/Iron-Ham/focusgrid/internal/logging"
	"github.com/Iron-Ham/focusgrid/internal/plane"
	"github.com/Iron-Ham/focusgrid/internal/snapshot"
	"github.com/Iron-Ham/focusgrid/internal/traverse"
)

// gridOf builds a rows x columns snapshot keyed "r,c" with the given cells
// disabled.
func gridOf(rows, columns int, disabled ...plane.Coordinates) snapshot.Plane[string] {
	keys := plane.New[string](rows, columns)
	for r := range rows {
		for c := range columns {
			keys[r][c] = fmt.Sprintf("%d,%d", r, c)
		}
	}
	snap := snapshot.NewPlane(keys)
	for _, d := range disabled {
		snap.Meta[d.Row][d.Column].Ability = eligibility.Disabled
	}
	return snap
}

func newPlane(t *testing.T, snap snapshot.Plane[string], opts ...Option) *Plane[string] {
	t.Helper()
	p, err := NewPlane(snap, opts...)
	require.NoError(t, err)
	return p
}

func TestNewPlane(t *testing.T) {
	require.Equal(t, plane.At(0, 0), newPlane(t, gridOf(2, 2)).Location())
	require.Equal(t, plane.None, newPlane(t, gridOf(0, 0)).Location())

	ragged := snapshot.NewPlane(plane.Plane[string]{{"a", "b"}, {"c"}})
	_, err := NewPlane(ragged)
	require.ErrorIs(t, err, errors.ErrNonRectangular)
}

func TestPlaneScenarioVerticalLoopPrevious(t *testing.T) {
	p := newPlane(t, gridOf(3, 3), WithDirection(traverse.Vertical), WithLoops(true))

	require.Equal(t, eligibility.OutcomeEnabled, p.Previous(plane.At(0, 0)))
	require.Equal(t, plane.At(2, 0), p.Location())
}

func TestPlaneNextPrevious(t *testing.T) {
	t.Run("horizontal moves along the row then down", func(t *testing.T) {
		p := newPlane(t, gridOf(2, 3, plane.At(1, 0)))
		require.True(t, p.Next(plane.At(0, 2)).Found())
		require.Equal(t, plane.At(1, 1), p.Location())
		require.True(t, p.Previous(p.Location()).Found())
		require.Equal(t, plane.At(0, 2), p.Location())
	})

	t.Run("vertical moves down the column then right", func(t *testing.T) {
		p := newPlane(t, gridOf(2, 3), WithDirection(traverse.Vertical))
		require.True(t, p.Next(plane.At(1, 0)).Found())
		require.Equal(t, plane.At(0, 1), p.Location())
	})

	t.Run("per-call direction overrides the default", func(t *testing.T) {
		p := newPlane(t, gridOf(2, 3))
		require.True(t, p.Next(plane.At(0, 0), eligibility.Toward(traverse.Vertical)).Found())
		require.Equal(t, plane.At(1, 0), p.Location())
	})

	t.Run("none at the end without loops", func(t *testing.T) {
		p := newPlane(t, gridOf(2, 2))
		require.Equal(t, eligibility.OutcomeNone, p.Next(plane.At(1, 1)))
		require.Equal(t, eligibility.OutcomeNone, p.Previous(plane.At(0, 0)))
	})
}

func TestPlaneFirstLast(t *testing.T) {
	p := newPlane(t, gridOf(3, 3, plane.At(0, 0), plane.At(2, 2)))

	require.True(t, p.First().Found())
	require.Equal(t, plane.At(0, 1), p.Location())
	require.True(t, p.Last().Found())
	require.Equal(t, plane.At(2, 1), p.Location())

	v := newPlane(t, gridOf(3, 3, plane.At(0, 0), plane.At(2, 2)), WithDirection(traverse.Vertical))
	require.True(t, v.First().Found())
	require.Equal(t, plane.At(1, 0), v.Location())
	require.True(t, v.Last().Found())
	require.Equal(t, plane.At(1, 2), v.Location())
}

func TestPlaneRowColumnVariants(t *testing.T) {
	disabled := []plane.Coordinates{plane.At(1, 0), plane.At(1, 3), plane.At(0, 2), plane.At(2, 2)}

	tests := []struct {
		name string
		call func(p *Plane[string]) eligibility.Outcome
		want plane.Coordinates
	}{
		{"FirstInRow", func(p *Plane[string]) eligibility.Outcome { return p.FirstInRow(1) }, plane.At(1, 1)},
		{"LastInRow", func(p *Plane[string]) eligibility.Outcome { return p.LastInRow(1) }, plane.At(1, 2)},
		{"FirstInColumn", func(p *Plane[string]) eligibility.Outcome { return p.FirstInColumn(2) }, plane.At(1, 2)},
		{"LastInColumn", func(p *Plane[string]) eligibility.Outcome { return p.LastInColumn(2) }, plane.At(1, 2)},
		{"NextInRow", func(p *Plane[string]) eligibility.Outcome { return p.NextInRow(plane.At(0, 1)) }, plane.At(0, 3)},
		{"PreviousInRow", func(p *Plane[string]) eligibility.Outcome { return p.PreviousInRow(plane.At(0, 3)) }, plane.At(0, 1)},
		{"NextInColumn", func(p *Plane[string]) eligibility.Outcome { return p.NextInColumn(plane.At(0, 0)) }, plane.At(2, 0)},
		{"PreviousInColumn", func(p *Plane[string]) eligibility.Outcome { return p.PreviousInColumn(plane.At(2, 3)) }, plane.At(0, 3)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newPlane(t, gridOf(3, 4, disabled...))
			require.Equal(t, eligibility.OutcomeEnabled, tt.call(p))
			require.Equal(t, tt.want, p.Location())
		})
	}
}

func TestPlaneRowConstrainedBoundaries(t *testing.T) {
	p := newPlane(t, gridOf(2, 3))
	require.Equal(t, eligibility.OutcomeNone, p.NextInRow(plane.At(0, 2)), "does not spill into the next row")
	require.Equal(t, eligibility.OutcomeNone, p.NextInColumn(plane.At(1, 0)))
	require.Equal(t, eligibility.OutcomeNone, p.FirstInRow(5))
	require.Equal(t, eligibility.OutcomeNone, p.LastInColumn(-2))

	looped := newPlane(t, gridOf(2, 3), WithLoops(true))
	require.True(t, looped.NextInRow(plane.At(0, 2)).Found())
	require.Equal(t, plane.At(0, 0), looped.Location(), "wraps within the row")
	require.True(t, looped.PreviousInColumn(plane.At(0, 1)).Found())
	require.Equal(t, plane.At(1, 1), looped.Location())
}

func TestPlaneExact(t *testing.T) {
	var buf bytes.Buffer
	p := newPlane(t, gridOf(2, 2, plane.At(1, 1)), WithLogger(logging.NewWriterLogger(&buf, logging.LevelDebug)))

	require.Equal(t, eligibility.OutcomeEnabled, p.Exact(plane.At(1, 0)))
	require.Equal(t, eligibility.OutcomeEnabled, p.Exact(plane.At(1, 0)))
	require.Equal(t, plane.At(1, 0), p.Location())

	require.Equal(t, eligibility.OutcomeNone, p.Exact(plane.At(1, 1)))
	require.Equal(t, eligibility.OutcomeNone, p.Exact(plane.At(2, 0)))
	require.Equal(t, eligibility.OutcomeNone, p.Exact(plane.None))
	require.Equal(t, plane.At(1, 0), p.Location())
	require.Contains(t, buf.String(), `"surface":"plane"`)
}

func TestPlanePolicyCombinations(t *testing.T) {
	notZeroTwo := eligibility.Where(func(c plane.Coordinates) bool { return c != plane.At(0, 2) })

	tests := []struct {
		name             string
		disabledEligible bool
		opts             []eligibility.Option[plane.Coordinates]
		wantOutcome      eligibility.Outcome
		want             plane.Coordinates
	}{
		{"gated", false, nil, eligibility.OutcomeEnabled, plane.At(0, 2)},
		{"gated with predicate", false, []eligibility.Option[plane.Coordinates]{notZeroTwo}, eligibility.OutcomeEnabled, plane.At(1, 0)},
		{"disabled eligible", true, nil, eligibility.OutcomeDisabled, plane.At(0, 1)},
		{"disabled eligible with predicate", true, []eligibility.Option[plane.Coordinates]{notZeroTwo}, eligibility.OutcomeDisabled, plane.At(0, 1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newPlane(t, gridOf(2, 3, plane.At(0, 1)), WithDisabledEligible(tt.disabledEligible))
			require.Equal(t, tt.wantOutcome, p.Next(plane.At(0, 0), tt.opts...))
			require.Equal(t, tt.want, p.Location())
		})
	}
}

func TestPlaneRandom(t *testing.T) {
	p := newPlane(t, gridOf(2, 2, plane.At(0, 0), plane.At(1, 1)))
	for range 20 {
		require.True(t, p.Random().Found())
		require.Contains(t, []plane.Coordinates{plane.At(0, 1), plane.At(1, 0)}, p.Location())
	}
}

// sameRevision treats "k@2" as a later revision of the item keyed "k".
func sameRevision(a, b string) bool {
	a, _, _ = strings.Cut(a, "@")
	b, _, _ = strings.Cut(b, "@")
	return a == b
}

func TestPlaneSyncCustomEquality(t *testing.T) {
	revised := snapshot.NewPlane(plane.Plane[string]{{"1,1@2", "1,0@2"}, {"0,1@2", "0,0@2"}})

	p := newPlane(t, gridOf(2, 2), WithEqual(sameRevision))
	p.Exact(plane.At(0, 1))
	require.NoError(t, p.Sync(revised))
	require.Equal(t, plane.At(1, 0), p.Location())

	plain := newPlane(t, gridOf(2, 2))
	plain.Exact(plane.At(0, 1))
	require.NoError(t, plain.Sync(revised))
	require.Equal(t, plane.At(0, 0), plain.Location())
}

func TestPlaneSyncIgnoresAbsentFocusedKey(t *testing.T) {
	p := newPlane(t, snapshot.NewPlane(plane.Plane[string]{{"a", ""}, {"c", "d"}}))
	require.Equal(t, eligibility.OutcomeEnabled, p.Exact(plane.At(0, 1)))

	require.NoError(t, p.Sync(snapshot.NewPlane(plane.Plane[string]{{"d", "c"}, {"", "a"}})))
	require.Equal(t, plane.At(0, 0), p.Location())
}

func TestPlaneSync(t *testing.T) {
	t.Run("reorder follows the focused key", func(t *testing.T) {
		p := newPlane(t, gridOf(2, 2))
		p.Exact(plane.At(1, 1))

		moved := snapshot.NewPlane(plane.Plane[string]{{"1,1", "0,1"}, {"1,0", "0,0"}})
		require.NoError(t, p.Sync(moved))
		require.Equal(t, plane.At(0, 0), p.Location())
	})

	t.Run("reorder without the focused key moves to first", func(t *testing.T) {
		p := newPlane(t, gridOf(2, 2))
		p.Exact(plane.At(1, 1))
		require.NoError(t, p.Sync(snapshot.NewPlane(plane.Plane[string]{{"x", "y"}, {"z", "w"}})))
		require.Equal(t, plane.At(0, 0), p.Location())
	})

	tests := []struct {
		name       string
		focus      plane.Coordinates
		rows, cols int
		disabled   []plane.Coordinates
		want       plane.Coordinates
	}{
		{"height shrank past focus", plane.At(3, 1), 2, 3, nil, plane.At(1, 1)},
		{"height shrank, column tail disabled", plane.At(3, 1), 3, 3, []plane.Coordinates{plane.At(2, 1)}, plane.At(1, 1)},
		{"width shrank past focus", plane.At(1, 2), 4, 2, nil, plane.At(1, 1)},
		{"both shrank past focus", plane.At(3, 2), 2, 2, []plane.Coordinates{plane.At(1, 1)}, plane.At(1, 0)},
		{"shrink inside bounds", plane.At(0, 1), 2, 2, nil, plane.At(0, 1)},
		{"grow keeps focus", plane.At(2, 2), 6, 6, nil, plane.At(2, 2)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newPlane(t, gridOf(4, 3))
			require.True(t, p.Exact(tt.focus).Found())
			require.NoError(t, p.Sync(gridOf(tt.rows, tt.cols, tt.disabled...)))
			require.Equal(t, tt.want, p.Location())
		})
	}

	t.Run("empty and repopulate", func(t *testing.T) {
		p := newPlane(t, gridOf(2, 2))
		require.NoError(t, p.Sync(gridOf(0, 0)))
		require.Equal(t, plane.None, p.Location())

		require.NoError(t, p.Sync(gridOf(2, 2, plane.At(0, 0))))
		require.Equal(t, plane.At(0, 1), p.Location())
	})

	t.Run("malformed snapshot leaves state untouched", func(t *testing.T) {
		p := newPlane(t, gridOf(2, 2))
		p.Exact(plane.At(1, 1))
		err := p.Sync(snapshot.NewPlane(plane.Plane[string]{{"a"}, {"b", "c"}}))
		require.ErrorIs(t, err, errors.ErrNonRectangular)
		require.Equal(t, plane.At(1, 1), p.Location())
		require.Equal(t, 2, p.Snapshot().Columns())
	})
}
