package traverse

import (
	"testing"

	"github.com/Iron-Ham/focusgrid/internal/plane"
)

func coords(seq func(func(plane.Coordinates) bool)) []plane.Coordinates {
	var out []plane.Coordinates
	for c := range seq {
		out = append(out, c)
	}
	return out
}

func equalCoords(t *testing.T, got, want []plane.Coordinates) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %d coordinates %v, want %d %v", len(got), got, len(want), want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestGridFullScanOrder(t *testing.T) {
	g := Grid{Rows: 2, Columns: 3}

	t.Run("horizontal is row-major", func(t *testing.T) {
		got := coords(g.Forward(plane.At(0, -1), Horizontal))
		equalCoords(t, got, []plane.Coordinates{
			plane.At(0, 0), plane.At(0, 1), plane.At(0, 2),
			plane.At(1, 0), plane.At(1, 1), plane.At(1, 2),
		})
	})

	t.Run("vertical is column-major", func(t *testing.T) {
		got := coords(g.Forward(plane.At(-1, 0), Vertical))
		equalCoords(t, got, []plane.Coordinates{
			plane.At(0, 0), plane.At(1, 0),
			plane.At(0, 1), plane.At(1, 1),
			plane.At(0, 2), plane.At(1, 2),
		})
	})

	t.Run("backward horizontal from past the end", func(t *testing.T) {
		got := coords(g.Backward(plane.At(1, 3), Horizontal))
		equalCoords(t, got, []plane.Coordinates{
			plane.At(1, 2), plane.At(1, 1), plane.At(1, 0),
			plane.At(0, 2), plane.At(0, 1), plane.At(0, 0),
		})
	})
}

func TestGridLoopingPassVisitsEachOnce(t *testing.T) {
	g := Grid{Rows: 3, Columns: 4, Loops: true}
	starts := []plane.Coordinates{plane.At(0, 0), plane.At(1, 2), plane.At(2, 3)}

	for _, dir := range []Direction{Horizontal, Vertical} {
		for _, start := range starts {
			for name, seq := range map[string]func(func(plane.Coordinates) bool){
				"forward":  g.Forward(start, dir),
				"backward": g.Backward(start, dir),
			} {
				seen := make(map[plane.Coordinates]int)
				for c := range seq {
					seen[c]++
				}
				if len(seen) != 12 {
					t.Errorf("%s %s from %v visited %d cells, want 12", dir, name, start, len(seen))
				}
				for c, n := range seen {
					if n != 1 {
						t.Errorf("%s %s from %v visited %v %d times", dir, name, start, c, n)
					}
				}
			}
		}
	}
}

func TestGridInnerAxisWrapsWithinLine(t *testing.T) {
	g := Grid{Rows: 2, Columns: 3, Loops: true}
	got := coords(g.Forward(plane.At(0, 1), Horizontal))
	equalCoords(t, got, []plane.Coordinates{
		plane.At(0, 2), plane.At(0, 0), plane.At(0, 1),
		plane.At(1, 0), plane.At(1, 1), plane.At(1, 2),
	})
}

func TestGridWithoutLoopsStopsAtBoundary(t *testing.T) {
	g := Grid{Rows: 2, Columns: 2}
	got := coords(g.Forward(plane.At(1, 0), Horizontal))
	equalCoords(t, got, []plane.Coordinates{plane.At(1, 1)})

	got = coords(g.Forward(plane.At(1, 1), Horizontal))
	equalCoords(t, got, nil)
}

func TestGridPreviousVerticalLoops(t *testing.T) {
	g := Grid{Rows: 3, Columns: 3, Loops: true}
	always := func(plane.Coordinates) bool { return true }

	c, ok := g.ToPreviousEligibleIn(plane.At(0, 0), Vertical, always)
	if !ok || c != plane.At(2, 0) {
		t.Errorf("previous from (0,0) = %v, %v; want (2,0), true", c, ok)
	}
}

func TestGridRowConstrainedSearch(t *testing.T) {
	g := Grid{Rows: 3, Columns: 3}
	inRow := func(row int) func(plane.Coordinates) bool {
		return func(c plane.Coordinates) bool { return c.Row == row && c.Column != 1 }
	}

	c, ok := g.ToNextEligibleIn(plane.At(0, 0), Horizontal, inRow(0))
	if !ok || c != plane.At(0, 2) {
		t.Errorf("next in row 0 = %v, %v; want (0,2)", c, ok)
	}
	if _, ok := g.ToNextEligibleIn(plane.At(0, 2), Horizontal, inRow(0)); ok {
		t.Error("next in row 0 from the last column should be none without loops")
	}
}

func TestGridEmpty(t *testing.T) {
	g := Grid{}
	if _, ok := g.ToNextEligibleIn(plane.At(0, 0), Horizontal, func(plane.Coordinates) bool { return true }); ok {
		t.Error("empty grid should yield none")
	}
}

func TestParseDirection(t *testing.T) {
	tests := []struct {
		in      string
		want    Direction
		wantErr bool
	}{
		{"", Horizontal, false},
		{"horizontal", Horizontal, false},
		{"vertical", Vertical, false},
		{"diagonal", "", true},
	}
	for _, tt := range tests {
		got, err := ParseDirection(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseDirection(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ParseDirection(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
