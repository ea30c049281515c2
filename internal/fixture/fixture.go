package fixture

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/Iron-Ham/focusgrid/internal/errors"
)

// Surface names the collection shape a fixture drives.
type Surface string

const (
	SurfaceList  Surface = "list"
	SurfacePlane Surface = "plane"
)

// Format is a fixture encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// FormatFor picks the format from a file extension.
func FormatFor(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return "", errors.NewFixtureError("unsupported extension "+filepath.Ext(path), errors.ErrFixtureFormat).WithPath(path)
	}
}

// Fixture is a scripted session: the item snapshot of each update cycle and
// the steps replayed against it. Policy fields left out of the file keep the
// caller's configured values.
type Fixture struct {
	Name string  `yaml:"name" toml:"name"`
	Kind Surface `yaml:"kind" toml:"kind"`

	Loops                                *bool   `yaml:"loops" toml:"loops"`
	DisabledElementsAreEligibleLocations *bool   `yaml:"disabled_elements_are_eligible_locations" toml:"disabled_elements_are_eligible_locations"`
	Direction                            *string `yaml:"direction" toml:"direction"`
	AllowsDuplicates                     *bool   `yaml:"allows_duplicates" toml:"allows_duplicates"`
	Replace                              *string `yaml:"replace" toml:"replace"`
	// Seed makes random steps reproducible. Zero picks a fixed default.
	Seed uint64 `yaml:"seed" toml:"seed"`

	// Cycles holds one snapshot per update cycle; cycle 0 is the initial one.
	Cycles []Cycle `yaml:"cycles" toml:"cycles"`
	Steps  []Step  `yaml:"steps" toml:"steps"`

	// Path is the file the fixture was loaded from, if any.
	Path string `yaml:"-" toml:"-"`
}

// Cycle is one update cycle. List fixtures fill Items; plane fixtures fill
// Rows.
type Cycle struct {
	Items []Item   `yaml:"items" toml:"items"`
	Rows  [][]Item `yaml:"rows" toml:"rows"`
}

// Item is one entry of a snapshot.
type Item struct {
	Key     string `yaml:"key" toml:"key"`
	Label   string `yaml:"label,omitempty" toml:"label"`
	Ability string `yaml:"ability,omitempty" toml:"ability"`
	Kind    string `yaml:"kind,omitempty" toml:"kind"`
	Group   string `yaml:"group,omitempty" toml:"group"`
}

// DisplayLabel returns the label, or the key when no label is given.
func (i Item) DisplayLabel() string {
	if i.Label != "" {
		return i.Label
	}
	return i.Key
}

// Load reads and validates the fixture at path.
func Load(path string) (*Fixture, error) {
	format, err := FormatFor(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewNotFoundError("fixture", path).WithCause(err)
		}
		return nil, errors.Wrapf(err, "reading fixture %s", path)
	}
	f, err := Decode(data, format)
	if err != nil {
		var fe *errors.FixtureError
		if errors.As(err, &fe) {
			fe.WithPath(path)
		}
		return nil, err
	}
	f.Path = path
	return f, nil
}

// Decode parses and validates a fixture.
func Decode(data []byte, format Format) (*Fixture, error) {
	var f Fixture
	switch format {
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&f); err != nil {
			return nil, errors.NewFixtureError("parsing yaml", errors.Join(errors.ErrInvalidInput, err))
		}
	case FormatTOML:
		md, err := toml.Decode(string(data), &f)
		if err != nil {
			return nil, errors.NewFixtureError("parsing toml", errors.Join(errors.ErrInvalidInput, err))
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, errors.NewFixtureError("unknown field "+undecoded[0].String(), errors.ErrInvalidInput)
		}
	default:
		return nil, errors.NewFixtureError("unsupported format "+string(format), errors.ErrFixtureFormat)
	}

	if err := f.Validate(); err != nil {
		return nil, err
	}
	return &f, nil
}
