package fixture

import (
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/Iron-Ham/focusgrid/internal/plane"
)

// Location is a step argument: a list index written as a scalar, or plane
// coordinates written as [row, column]. The zero Location is unset.
type Location struct {
	Index int
	Row   int
	Col   int
	// Pair is true when the location was written as [row, column].
	Pair bool
	// Set is false when the field was omitted.
	Set bool
}

// Index returns a list location.
func Index(i int) Location {
	return Location{Index: i, Set: true}
}

// Point returns a plane location.
func Point(row, column int) Location {
	return Location{Row: row, Col: column, Pair: true, Set: true}
}

// Coordinates returns the plane coordinates of a point location.
func (l Location) Coordinates() plane.Coordinates {
	return plane.At(l.Row, l.Col)
}

func (l Location) String() string {
	switch {
	case !l.Set:
		return "-"
	case l.Pair:
		return l.Coordinates().String()
	default:
		return strconv.Itoa(l.Index)
	}
}

// UnmarshalYAML accepts `4` or `[1, 2]`.
func (l *Location) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		var i int
		if err := value.Decode(&i); err != nil {
			return fmt.Errorf("line %d: location must be an integer or [row, column]", value.Line)
		}
		*l = Index(i)
		return nil
	case yaml.SequenceNode:
		var pair []int
		if err := value.Decode(&pair); err != nil || len(pair) != 2 {
			return fmt.Errorf("line %d: coordinates must be written [row, column]", value.Line)
		}
		*l = Point(pair[0], pair[1])
		return nil
	default:
		return fmt.Errorf("line %d: location must be an integer or [row, column]", value.Line)
	}
}

// UnmarshalTOML accepts `4` or `[1, 2]`.
func (l *Location) UnmarshalTOML(v any) error {
	switch x := v.(type) {
	case int64:
		*l = Index(int(x))
		return nil
	case []any:
		if len(x) != 2 {
			return fmt.Errorf("coordinates must be written [row, column]")
		}
		row, ok1 := x[0].(int64)
		col, ok2 := x[1].(int64)
		if !ok1 || !ok2 {
			return fmt.Errorf("coordinates must be integers")
		}
		*l = Point(int(row), int(col))
		return nil
	default:
		return fmt.Errorf("location must be an integer or [row, column], got %T", v)
	}
}
