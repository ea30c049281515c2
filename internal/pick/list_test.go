package pick

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Iron-Ham/focusgrid/internal/eligibility"
	"github.com/Iron-Ham/focusgrid/internal/errors"
	"github.com/Iron-Ham/focusgrid/internal/logging"
	"github.com/Iron-Ham/focusgrid/internal/snapshot"
)

type entry struct {
	key string
	snapshot.Meta
}

func item(key string) entry     { return entry{key, snapshot.Meta{Kind: snapshot.KindItem}} }
func checkbox(key string) entry { return entry{key, snapshot.Meta{Kind: snapshot.KindCheckbox}} }
func radio(key, group string) entry {
	return entry{key, snapshot.Meta{Kind: snapshot.KindRadio, Group: group}}
}

func (e entry) disabled() entry {
	e.Ability = eligibility.Disabled
	return e
}

func listOf(entries ...entry) snapshot.List[string] {
	var snap snapshot.List[string]
	for _, e := range entries {
		snap.Keys = append(snap.Keys, e.key)
		snap.Meta = append(snap.Meta, e.Meta)
	}
	return snap
}

func newList(t *testing.T, snap snapshot.List[string], opts ...Option) *List[string] {
	t.Helper()
	l, err := NewList(snap, opts...)
	require.NoError(t, err)
	return l
}

func TestNewListRejectsMalformed(t *testing.T) {
	_, err := NewList(listOf(entry{"r", snapshot.Meta{Kind: snapshot.KindRadio}}))
	require.ErrorIs(t, err, errors.ErrUngroupedRadio)
}

func TestListExact(t *testing.T) {
	var buf bytes.Buffer
	l := newList(t, listOf(item("a"), item("b").disabled(), checkbox("c"), item("d")),
		WithLogger(logging.NewWriterLogger(&buf, logging.LevelDebug)))

	require.Equal(t, eligibility.OutcomeEnabled, l.Exact([]int{0}, ""), "plain items are pickable directly")
	require.Equal(t, []int{0}, l.Picks())

	require.Equal(t, eligibility.OutcomeEnabled, l.Exact([]int{2, 3}, ReplaceNone))
	require.Equal(t, []int{0, 2, 3}, l.Picks())

	require.Equal(t, eligibility.OutcomeNone, l.Exact([]int{1, 7}, ReplaceAll), "nothing eligible leaves the selection alone")
	require.Equal(t, []int{0, 2, 3}, l.Picks())
	require.Contains(t, buf.String(), "target out of range")

	require.Equal(t, eligibility.OutcomeEnabled, l.Exact([]int{1, 3}, ReplaceAll), "ineligible targets are skipped")
	require.Equal(t, []int{3}, l.Picks())
	require.Equal(t, []string{"d"}, l.Keys())

	again := l.Exact([]int{3}, ReplaceAll)
	require.Equal(t, eligibility.OutcomeEnabled, again)
	require.Equal(t, []int{3}, l.Picks(), "Exact is idempotent")
}

func TestListPolicyDefaultReplace(t *testing.T) {
	l := newList(t, listOf(checkbox("a"), checkbox("b"), checkbox("c")), WithReplace(ReplaceNone))
	l.Exact([]int{0}, "")
	l.Exact([]int{1}, "")
	require.Equal(t, []int{0, 1}, l.Picks())
	l.Exact([]int{2}, ReplacePartial)
	require.Equal(t, []int{1, 2}, l.Picks())
}

func TestListNextPrevious(t *testing.T) {
	l := newList(t, listOf(checkbox("a"), item("b"), checkbox("c").disabled(), checkbox("d")))

	require.Equal(t, eligibility.OutcomeEnabled, l.Next(0, ReplaceAll))
	require.Equal(t, []int{3}, l.Picks(), "skips the plain item and the disabled checkbox")

	require.Equal(t, eligibility.OutcomeEnabled, l.Previous(3, ReplaceNone))
	require.Equal(t, []int{3, 0}, l.Picks())

	require.Equal(t, eligibility.OutcomeNone, l.Next(3, ReplaceAll))
	require.Equal(t, []int{3, 0}, l.Picks())

	looped := newList(t, listOf(checkbox("a"), item("b"), checkbox("c")), WithLoops(true))
	require.Equal(t, eligibility.OutcomeEnabled, looped.Next(2, ""))
	require.Equal(t, []int{0}, looped.Picks())
}

func TestListKindFilterCombinations(t *testing.T) {
	// b is an enabled plain item, c a disabled checkbox, d an enabled
	// checkbox the caller predicate rejects.
	snap := listOf(checkbox("a"), item("b"), checkbox("c").disabled(), checkbox("d"), checkbox("e"))
	notD := eligibility.Where(func(i int) bool { return i != 3 })

	tests := []struct {
		name             string
		disabledEligible bool
		opts             []eligibility.Option[int]
		wantNext         int
		wantOutcome      eligibility.Outcome
		wantAll          []int
	}{
		{"gated", false, nil, 3, eligibility.OutcomeEnabled, []int{0, 3, 4}},
		{"gated with predicate", false, []eligibility.Option[int]{notD}, 4, eligibility.OutcomeEnabled, []int{0, 4}},
		{"disabled eligible", true, nil, 2, eligibility.OutcomeDisabled, []int{0, 2, 3, 4}},
		{"disabled eligible with predicate", true, []eligibility.Option[int]{notD}, 2, eligibility.OutcomeDisabled, []int{0, 2, 4}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := newList(t, snap, WithDisabledEligible(tt.disabledEligible))
			require.Equal(t, tt.wantOutcome, l.Next(0, ReplaceAll, tt.opts...))
			require.Equal(t, []int{tt.wantNext}, l.Picks())

			require.Equal(t, eligibility.OutcomeEnabled, l.All(tt.opts...))
			require.Equal(t, tt.wantAll, l.Picks())
			require.False(t, l.IsPicked(1), "plain items never join traversal picks")

			// Exact ignores the kind filter but not the gate.
			out := l.Exact([]int{1, 2}, ReplaceAll, tt.opts...)
			if tt.disabledEligible {
				require.Equal(t, eligibility.OutcomeDisabled, out)
				require.Equal(t, []int{1, 2}, l.Picks())
			} else {
				require.Equal(t, eligibility.OutcomeEnabled, out)
				require.Equal(t, []int{1}, l.Picks())
			}
		})
	}
}

func TestListAllNone(t *testing.T) {
	l := newList(t, listOf(item("a"), item("b")))
	l.Exact([]int{1}, "")
	require.Equal(t, eligibility.OutcomeNone, l.All())
	require.Equal(t, []int{1}, l.Picks())
}

func TestListRadioGroups(t *testing.T) {
	l := newList(t, listOf(radio("s", "size"), radio("m", "size"), radio("l", "size"), checkbox("x"), radio("red", "colour")))

	l.Exact([]int{0, 3, 4}, ReplaceNone)
	l.Exact([]int{2}, ReplaceNone)
	require.Equal(t, []int{3, 4, 2}, l.Picks())
	require.Equal(t, map[string]int{"size": 2, "colour": 4}, l.Groups())

	l.Next(2, ReplaceNone, eligibility.Where(func(i int) bool { return i != 3 && i != 4 }))
	require.Len(t, l.Groups(), 2)

	l.All()
	require.Equal(t, []int{2, 3, 4}, l.Picks(), "All keeps the last member of each group")
	assertOnePerGroup(t, l)
}

func assertOnePerGroup(t *testing.T, l *List[string]) {
	t.Helper()
	seen := map[string]bool{}
	for _, i := range l.Picks() {
		m := l.Snapshot().MetaAt(i)
		if !m.Exclusive() {
			continue
		}
		require.False(t, seen[m.Group], "group %q picked twice", m.Group)
		seen[m.Group] = true
	}
}

func TestListRange(t *testing.T) {
	l := newList(t, listOf(item("a"), item("b").disabled(), item("c"), item("d"), item("e")))

	require.Equal(t, eligibility.OutcomeEnabled, l.Range(3, 0, ""))
	require.Equal(t, []int{3, 2, 0}, l.Picks())

	require.Equal(t, eligibility.OutcomeEnabled, l.Range(3, 9, ReplaceAll), "out-of-range tail is clipped")
	require.Equal(t, []int{3, 4}, l.Picks())

	require.Equal(t, eligibility.OutcomeNone, l.Range(1, 1, ReplaceAll))
	require.Equal(t, []int{3, 4}, l.Picks())
}

func TestListRangeClampsToList(t *testing.T) {
	l := newList(t, listOf(item("a"), item("b"), item("c")))

	calls := 0
	counted := eligibility.Where(func(int) bool { calls++; return true })
	require.Equal(t, eligibility.OutcomeEnabled, l.Range(0, 1<<30, ReplaceAll, counted))
	require.Equal(t, []int{0, 1, 2}, l.Picks())
	require.LessOrEqual(t, calls, 3, "only indices inside the list are visited")

	require.Equal(t, eligibility.OutcomeEnabled, l.Range(1<<30, -1<<30, ReplaceAll))
	require.Equal(t, []int{2, 1, 0}, l.Picks())

	require.Equal(t, eligibility.OutcomeNone, l.Range(5, 1<<30, ReplaceAll))
	require.Equal(t, eligibility.OutcomeNone, l.Range(-9, -1, ReplaceAll))
	require.Equal(t, []int{2, 1, 0}, l.Picks(), "a span outside the list leaves picks alone")

	empty := newList(t, listOf())
	require.Equal(t, eligibility.OutcomeNone, empty.Range(0, 1<<30, ReplaceAll))
}

func TestListQueries(t *testing.T) {
	l := newList(t, listOf(item("a"), item("b"), item("c"), item("d")))
	require.False(t, l.Multiple())
	_, ok := l.Newest()
	require.False(t, ok)

	l.Exact([]int{2, 0, 3}, ReplaceNone)
	oldest, _ := l.Oldest()
	newest, _ := l.Newest()
	first, _ := l.First()
	last, _ := l.Last()
	require.Equal(t, 2, oldest)
	require.Equal(t, 3, newest)
	require.Equal(t, 0, first)
	require.Equal(t, 3, last)
	require.True(t, l.Multiple())

	require.Equal(t, 1, l.Omit(0, 9))
	require.Equal(t, []int{2, 3}, l.Picks())
	l.Clear()
	require.Empty(t, l.Picks())
}

func TestListSyncCustomEquality(t *testing.T) {
	l := newList(t, listOf(item("a"), item("b"), item("c")), WithEqual(strings.EqualFold))
	l.Exact([]int{0, 2}, ReplaceNone)

	require.NoError(t, l.Sync(listOf(item("C"), item("B"), item("A"))))
	require.Equal(t, []int{2, 0}, l.Picks())
	require.Equal(t, []string{"A", "C"}, l.Keys())

	_, err := NewList(listOf(item("a")), WithEqual(func(a, b int) bool { return a == b }))
	require.ErrorIs(t, err, errors.ErrInvalidInput)
}

func TestListSync(t *testing.T) {
	t.Run("reorder remaps picks by key", func(t *testing.T) {
		l := newList(t, listOf(item("a"), item("b"), item("c"), item("d")))
		l.Exact([]int{1, 3}, ReplaceNone)

		require.NoError(t, l.Sync(listOf(item("d"), item("c"), item("b"))))
		require.Equal(t, []int{2, 0}, l.Picks())
		require.Equal(t, []string{"b", "d"}, l.Keys())
	})

	t.Run("reorder drops picks whose key is gone", func(t *testing.T) {
		l := newList(t, listOf(item("a"), item("b"), item("c")))
		l.Exact([]int{0, 2}, ReplaceNone)
		require.NoError(t, l.Sync(listOf(item("c"), item("b"))))
		require.Equal(t, []int{0}, l.Picks())
	})

	t.Run("shorten drops out-of-bounds picks", func(t *testing.T) {
		l := newList(t, listOf(item("a"), item("b"), item("c"), item("d")))
		l.Exact([]int{3, 1}, ReplaceNone)
		require.NoError(t, l.Sync(listOf(item("a"), item("b"))))
		require.Equal(t, []int{1}, l.Picks())

		require.NoError(t, l.Sync(listOf(item("a"))))
		require.Empty(t, l.Picks())
		require.Empty(t, l.Groups())
	})

	t.Run("ability flip drops the pick", func(t *testing.T) {
		l := newList(t, listOf(item("a"), item("b"), item("c")), WithDisabledEligible(true))
		l.Exact([]int{0, 1}, ReplaceNone)
		require.NoError(t, l.Sync(listOf(item("a"), item("b").disabled(), item("c"))))
		require.Equal(t, []int{0}, l.Picks())
	})

	t.Run("already disabled picks survive", func(t *testing.T) {
		l := newList(t, listOf(item("a").disabled(), item("b")), WithDisabledEligible(true))
		l.Exact([]int{0}, "")
		require.NoError(t, l.Sync(listOf(item("a").disabled(), item("b"), item("c"))))
		require.Equal(t, []int{0}, l.Picks())
	})

	t.Run("group tags follow the new metadata", func(t *testing.T) {
		l := newList(t, listOf(radio("a", "g1"), radio("b", "g2")))
		l.Exact([]int{0, 1}, ReplaceNone)
		require.NoError(t, l.Sync(listOf(radio("a", "g"), radio("b", "g"))))
		require.Equal(t, []int{1}, l.Picks())
		require.Equal(t, map[string]int{"g": 1}, l.Groups())
	})

	t.Run("malformed snapshot leaves state untouched", func(t *testing.T) {
		l := newList(t, listOf(item("a"), item("b")))
		l.Exact([]int{1}, "")
		bad := snapshot.List[string]{Keys: []string{"a"}}
		require.ErrorIs(t, l.Sync(bad), errors.ErrMetaMismatch)
		require.Equal(t, []int{1}, l.Picks())
		require.Equal(t, 2, l.Snapshot().Len())
	})

	t.Run("logs reconciliation at debug", func(t *testing.T) {
		var buf bytes.Buffer
		l := newList(t, listOf(item("a"), item("b")), WithLogger(logging.NewWriterLogger(&buf, logging.LevelDebug)))
		l.Exact([]int{1}, "")
		require.NoError(t, l.Sync(listOf(item("a"))))
		require.Contains(t, buf.String(), `"op":"pick.sync"`)
		require.Contains(t, buf.String(), `"dropped":1`)
	})
}
