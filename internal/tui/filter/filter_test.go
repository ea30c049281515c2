package filter

import (
	"testing"

	"github.com/charmbracelet/lipgloss"

	"github.com/Iron-Ham/focusgrid/internal/eligibility"
)

func TestMatches(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		label   string
		want    bool
	}{
		{"empty pattern matches all", "", "anything", true},
		{"substring", "box", "Checkbox", true},
		{"case insensitive", "CHECK", "checkbox", true},
		{"regex", "^s(mall|ize)", "Size", true},
		{"invalid regex falls back to substring", "a(b", "xa(by", true},
		{"fuzzy word", "chekbox", "show checkbox", true},
		{"fuzzy too far", "chkbx", "show checkbox", false},
		{"short pattern skips fuzzy", "zz", "ab", false},
		{"no match", "radio", "checkbox", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := New(2)
			f.SetPattern(tt.pattern)
			if got := f.Matches(tt.label); got != tt.want {
				t.Errorf("Matches(%q) with pattern %q = %v, want %v", tt.label, tt.pattern, got, tt.want)
			}
		})
	}
}

func TestFuzzyDisabled(t *testing.T) {
	f := New(0)
	f.SetPattern("chekbox")
	if f.Matches("checkbox") {
		t.Error("fuzzy matching should be off at distance 0")
	}
}

func TestClear(t *testing.T) {
	f := New(2)
	f.SetPattern("x")
	if !f.Active() {
		t.Fatal("expected active filter")
	}
	f.Clear()
	if f.Active() || f.Pattern() != "" {
		t.Errorf("Clear() left pattern %q", f.Pattern())
	}
	if !f.Matches("anything") {
		t.Error("cleared filter should match everything")
	}
}

func TestWhere(t *testing.T) {
	labels := []string{"alpha", "beta", "gamma"}
	label := func(i int) string { return labels[i] }

	f := New(2)
	if opts := Where(f, label); opts != nil {
		t.Errorf("inactive filter should return no options, got %d", len(opts))
	}
	if opts := Where[int](nil, label); opts != nil {
		t.Error("nil filter should return no options")
	}

	f.SetPattern("ta")
	o := eligibility.Apply(Where(f, label))
	var got []string
	for i, l := range labels {
		if o.Predicate(i) {
			got = append(got, l)
		}
	}
	if len(got) != 1 || got[0] != "beta" {
		t.Errorf("filtered labels = %v, want [beta]", got)
	}
}

func TestHighlight(t *testing.T) {
	f := New(2)
	style := lipgloss.NewStyle()

	if got := f.Highlight("Alpha", style); got != "Alpha" {
		t.Errorf("inactive Highlight = %q", got)
	}

	f.SetPattern("LP")
	if got := f.Highlight("Alpha", style); got != "A"+style.Render("lp")+"ha" {
		t.Errorf("Highlight = %q", got)
	}

	f.SetPattern("zz")
	if got := f.Highlight("Alpha", style); got != "Alpha" {
		t.Errorf("non-matching Highlight = %q", got)
	}
}
