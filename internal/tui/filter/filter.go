package filter

import (
	"regexp"
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/charmbracelet/lipgloss"

	"github.com/Iron-Ham/focusgrid/internal/eligibility"
)

// Filter matches labels against a typed pattern.
type Filter struct {
	pattern     string
	lower       string
	regex       *regexp.Regexp
	maxDistance int
}

// New creates an empty Filter. maxDistance bounds the fuzzy word match;
// zero disables fuzzy matching.
func New(maxDistance int) *Filter {
	return &Filter{maxDistance: max(maxDistance, 0)}
}

// Pattern returns the current pattern.
func (f *Filter) Pattern() string {
	return f.pattern
}

// SetPattern replaces the pattern. The pattern is also compiled as a
// case-insensitive regex; invalid expressions fall back to plain matching.
func (f *Filter) SetPattern(pattern string) {
	f.pattern = pattern
	f.lower = strings.ToLower(pattern)
	f.regex = nil
	if pattern == "" {
		return
	}
	if re, err := regexp.Compile("(?i)" + pattern); err == nil {
		f.regex = re
	}
}

// Clear removes the pattern.
func (f *Filter) Clear() {
	f.SetPattern("")
}

// Active reports whether a pattern is set.
func (f *Filter) Active() bool {
	return f.pattern != ""
}

// Matches reports whether label passes the filter. Every label passes an
// inactive filter.
func (f *Filter) Matches(label string) bool {
	if !f.Active() {
		return true
	}
	if strings.Contains(strings.ToLower(label), f.lower) {
		return true
	}
	if f.regex != nil && f.regex.MatchString(label) {
		return true
	}
	return f.fuzzy(label)
}

// fuzzy compares the pattern with each word of label. Patterns no longer
// than the distance would match everything and are skipped.
func (f *Filter) fuzzy(label string) bool {
	if f.maxDistance == 0 || len([]rune(f.lower)) <= f.maxDistance {
		return false
	}
	for _, word := range strings.Fields(strings.ToLower(label)) {
		if levenshtein.ComputeDistance(word, f.lower) <= f.maxDistance {
			return true
		}
	}
	return false
}

// Where returns call options restricting navigation to matching labels,
// or nil when the filter is inactive.
func Where[L any](f *Filter, label func(L) string) []eligibility.Option[L] {
	if f == nil || !f.Active() {
		return nil
	}
	return []eligibility.Option[L]{eligibility.Where(func(l L) bool {
		return f.Matches(label(l))
	})}
}

// Highlight renders label with the first case-insensitive substring match
// in style. Labels without a substring match are returned unchanged.
func (f *Filter) Highlight(label string, style lipgloss.Style) string {
	if !f.Active() {
		return label
	}
	i := strings.Index(strings.ToLower(label), f.lower)
	if i < 0 || len(strings.ToLower(label)) != len(label) {
		return label
	}
	end := i + len(f.lower)
	return label[:i] + style.Render(label[i:end]) + label[end:]
}
