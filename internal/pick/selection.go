package pick

import (
	"slices"

	"github.com/Iron-Ham/focusgrid/internal/errors"
)

// Replace says what happens to existing picks when new ones are added.
type Replace string

const (
	// ReplaceNone appends to the selection.
	ReplaceNone Replace = "none"
	// ReplaceAll discards the selection first.
	ReplaceAll Replace = "all"
	// ReplacePartial drops as many of the oldest picks as are being added.
	ReplacePartial Replace = "partial"
)

// ParseReplace accepts none, all, partial, or "" (all).
func ParseReplace(s string) (Replace, error) {
	switch Replace(s) {
	case ReplaceAll, "":
		return ReplaceAll, nil
	case ReplaceNone, ReplacePartial:
		return Replace(s), nil
	default:
		return "", errors.NewValidationError("unknown replace mode").WithField("replace").WithValue(s)
	}
}

// selection is the ordered pick sequence plus the group map. Every mutation
// goes through settle, which keeps at most one pick per exclusive group.
type selection[L comparable] struct {
	picks  []L
	groups map[string]L
}

func (s *selection[L]) contains(l L) bool {
	return slices.Contains(s.picks, l)
}

func (s *selection[L]) clear() {
	s.picks = nil
	s.groups = nil
}

// add appends targets according to replace. Without duplicates, targets
// already picked (or repeated within targets) are skipped. group returns the
// exclusive group of a location, or "".
func (s *selection[L]) add(targets []L, replace Replace, duplicates bool, group func(L) string) {
	existing := s.picks
	if replace == ReplaceAll {
		existing = nil
	}

	batch := make([]L, 0, len(targets))
	for _, t := range targets {
		if !duplicates && (slices.Contains(existing, t) || slices.Contains(batch, t)) {
			continue
		}
		batch = append(batch, t)
	}

	if replace == ReplacePartial {
		existing = existing[min(len(batch), len(existing)):]
	}

	combined := make([]L, 0, len(existing)+len(batch))
	combined = append(combined, existing...)
	combined = append(combined, batch...)
	s.settle(combined, group)
}

// omit removes every occurrence of targets and reports how many picks were
// removed.
func (s *selection[L]) omit(targets []L, group func(L) string) int {
	before := len(s.picks)
	kept := slices.DeleteFunc(slices.Clone(s.picks), func(l L) bool {
		return slices.Contains(targets, l)
	})
	s.settle(kept, group)
	return before - len(s.picks)
}

// settle replaces the picks with picks, evicting older members of each
// exclusive group in favour of newer ones, and rebuilds the group map.
func (s *selection[L]) settle(picks []L, group func(L) string) {
	groups := make(map[string]L)
	out := make([]L, 0, len(picks))
	for _, l := range picks {
		if g := group(l); g != "" {
			if held, ok := groups[g]; ok && held != l {
				out = slices.DeleteFunc(out, func(x L) bool { return x == held })
			}
			groups[g] = l
		}
		out = append(out, l)
	}
	if len(out) == 0 {
		s.clear()
		return
	}
	s.picks = out
	s.groups = groups
}

func (s *selection[L]) oldest() (L, bool) {
	if len(s.picks) == 0 {
		var zero L
		return zero, false
	}
	return s.picks[0], true
}

func (s *selection[L]) newest() (L, bool) {
	if len(s.picks) == 0 {
		var zero L
		return zero, false
	}
	return s.picks[len(s.picks)-1], true
}

// first and last order picks by position rather than by pick order.
func (s *selection[L]) first(cmp func(a, b L) int) (L, bool) {
	if len(s.picks) == 0 {
		var zero L
		return zero, false
	}
	return slices.MinFunc(s.picks, cmp), true
}

func (s *selection[L]) last(cmp func(a, b L) int) (L, bool) {
	if len(s.picks) == 0 {
		var zero L
		return zero, false
	}
	return slices.MaxFunc(s.picks, cmp), true
}

func (s *selection[L]) snapshot() []L {
	return slices.Clone(s.picks)
}

func (s *selection[L]) groupMap() map[string]L {
	out := make(map[string]L, len(s.groups))
	for g, l := range s.groups {
		out[g] = l
	}
	return out
}
