package notes

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"
)

// FilterKind enumerates the filter modes.
type FilterKind uint8

const (
	FilterNormal FilterKind = iota
	FilterPinned
	FilterQueried
	FilterPinnedQueried
)

func (k FilterKind) String() string {
	switch k {
	case FilterNormal:
		return "normal"
	case FilterPinned:
		return "pinned"
	case FilterQueried:
		return "queried"
	case FilterPinnedQueried:
		return "pinned_queried"
	default:
		return fmt.Sprintf("FilterKind(%d)", uint8(k))
	}
}

// FilterMode is the active filter. Query is meaningful only for the queried kinds.
type FilterMode struct {
	Kind  FilterKind
	Query string
}

// Normal, Pinned, Queried and PinnedQueried build the four modes.
func Normal() FilterMode                { return FilterMode{Kind: FilterNormal} }
func Pinned() FilterMode                { return FilterMode{Kind: FilterPinned} }
func Queried(q string) FilterMode       { return FilterMode{Kind: FilterQueried, Query: q} }
func PinnedQueried(q string) FilterMode { return FilterMode{Kind: FilterPinnedQueried, Query: q} }

// ModeFor combines the pin-only toggle and the search text. An empty query
// never produces a queried mode.
func ModeFor(onlyPinned bool, query string) FilterMode {
	switch {
	case query == "" && onlyPinned:
		return Pinned()
	case query == "":
		return Normal()
	case onlyPinned:
		return PinnedQueried(query)
	default:
		return Queried(query)
	}
}

// OnlyPinned reports whether the mode restricts to pinned notes.
func (m FilterMode) OnlyPinned() bool {
	return m.Kind == FilterPinned || m.Kind == FilterPinnedQueried
}

// HasQuery reports whether the mode filters by title.
func (m FilterMode) HasQuery() bool {
	return m.Kind == FilterQueried || m.Kind == FilterPinnedQueried
}

func (m FilterMode) String() string {
	if m.HasQuery() {
		return fmt.Sprintf("%s(%q)", m.Kind, m.Query)
	}
	return m.Kind.String()
}

// MarshalJSON encodes {"kind": "...", "query": "..."}.
func (m FilterMode) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Kind  string `json:"kind"`
		Query string `json:"query,omitempty"`
	}{Kind: m.Kind.String(), Query: m.Query})
}

// UnmarshalJSON decodes the MarshalJSON form. The mode is rebuilt through
// ModeFor, so an empty query never yields a queried kind.
func (m *FilterMode) UnmarshalJSON(b []byte) error {
	var w struct {
		Kind  string `json:"kind"`
		Query string `json:"query"`
	}
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}
	for _, k := range []FilterKind{FilterNormal, FilterPinned, FilterQueried, FilterPinnedQueried} {
		if k.String() == w.Kind {
			query := ""
			if k == FilterQueried || k == FilterPinnedQueried {
				query = w.Query
			}
			*m = ModeFor(k == FilterPinned || k == FilterPinnedQueried, query)
			return nil
		}
	}
	return fmt.Errorf("unknown filter kind %q", w.Kind)
}

// matches reads both cells on every call so a derived view depends on the
// same set of cells whatever the mode.
func (m FilterMode) matches(n *Note) bool {
	pinned := n.Pinned.Get()
	title := n.Title.Get()

	switch m.Kind {
	case FilterPinned:
		return pinned
	case FilterQueried:
		return strings.Contains(title, m.Query)
	case FilterPinnedQueried:
		return pinned && strings.Contains(title, m.Query)
	default:
		return true
	}
}

// DeriveVisible filters notes by mode and orders the result for display.
// Title matching is a case-sensitive substring test.
func DeriveVisible(notes []*Note, mode FilterMode) []*Note {
	out := make([]*Note, 0, len(notes))
	for _, n := range notes {
		if mode.matches(n) {
			out = append(out, n)
		}
	}
	OrderForDisplay(out)
	return out
}

// OrderForDisplay sorts in place: pinned and expanded first, then pinned and
// minimized, then everything else. Ties keep their current relative order.
func OrderForDisplay(notes []*Note) {
	slices.SortStableFunc(notes, func(a, b *Note) int {
		return displayRank(a) - displayRank(b)
	})
}

// displayRank flattens the key (pinned ? 0 : 1, pinned && minimized ? 1 : 0).
func displayRank(n *Note) int {
	if !n.Pinned.Get() {
		return 2
	}
	if n.Minimized.Get() {
		return 1
	}
	return 0
}
