package notes

import (
	"fmt"
	"unicode/utf8"
)

// LimitState is the advisory warning level shown next to a text field.
type LimitState uint8

const (
	LimitNormal LimitState = iota
	LimitWarning
	LimitReached
	LimitOver
)

// LimitStateFor grades length against limit. The checks run from the most
// severe state down, so Reached and Over are reachable.
func LimitStateFor(length, limit int) LimitState {
	switch {
	case length > limit:
		return LimitOver
	case length == limit:
		return LimitReached
	case length > limit/2:
		return LimitWarning
	default:
		return LimitNormal
	}
}

// TextLimitState grades s, counted in runes.
func TextLimitState(s string, limit int) LimitState {
	return LimitStateFor(utf8.RuneCountInString(s), limit)
}

// Colour is the text colour the counter renders in.
func (s LimitState) Colour() string {
	switch s {
	case LimitWarning:
		return "yellow"
	case LimitReached:
		return "red"
	case LimitOver:
		return "really red"
	default:
		return "white"
	}
}

func (s LimitState) String() string {
	switch s {
	case LimitNormal:
		return "normal"
	case LimitWarning:
		return "warning"
	case LimitReached:
		return "limit"
	case LimitOver:
		return "over_limit"
	default:
		return fmt.Sprintf("LimitState(%d)", uint8(s))
	}
}

// MarshalText encodes the state by name.
func (s LimitState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText decodes a state name.
func (s *LimitState) UnmarshalText(b []byte) error {
	for _, c := range []LimitState{LimitNormal, LimitWarning, LimitReached, LimitOver} {
		if c.String() == string(b) {
			*s = c
			return nil
		}
	}
	return fmt.Errorf("unknown limit state %q", b)
}
