package fixture

import (
	"embed"
	"io/fs"
	"path"
	"slices"
	"strings"

	"github.com/Iron-Ham/focusgrid/internal/errors"
)

//go:embed samples
var samples embed.FS

// Samples returns the names of the built-in fixtures, without extension.
func Samples() []string {
	entries, err := fs.ReadDir(samples, "samples")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e.Name(), path.Ext(e.Name())))
	}
	slices.Sort(names)
	return names
}

// Sample decodes the built-in fixture called name.
func Sample(name string) (*Fixture, error) {
	entries, err := fs.ReadDir(samples, "samples")
	if err != nil {
		return nil, err
	}
	for _, e := range entries {
		if strings.TrimSuffix(e.Name(), path.Ext(e.Name())) != name {
			continue
		}
		format, err := FormatFor(e.Name())
		if err != nil {
			return nil, err
		}
		data, err := samples.ReadFile(path.Join("samples", e.Name()))
		if err != nil {
			return nil, err
		}
		f, err := Decode(data, format)
		if err != nil {
			return nil, err
		}
		f.Path = e.Name()
		return f, nil
	}
	return nil, errors.NewNotFoundError("sample fixture", name)
}
