package sanitize

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// strict is a cached bluemonday policy that removes all HTML tags and attributes.
// It's safe for concurrent use as bluemonday.Policy is read-only after build.
// WARNING: Never call mutating helpers (e.g. AddAttr, AllowElements) on this policy
// after initialization as it would create a data race.
var strict = func() *bluemonday.Policy {
	p := bluemonday.StrictPolicy()
	p.AddSpaceWhenStrippingTag(true) // Prevents word concatenation
	return p
}()

// Sanitize strips all HTML from arbitrary user input while preserving readability.
//
// Examples:
//   - "<script>alert('xss')</script>Hello" -> "Hello"
//   - "<p>Hello world</p>" -> " Hello world "
//   - "**markdown** text" -> "**markdown** text" (preserved)
func Sanitize(s string) string {
	return strict.Sanitize(s)
}

// Input prepares a title or body typed into a note before it reaches the store.
//
// Empty input is returned as is. Anything else only loses its surrounding
// whitespace; markup, entities, inner spacing and line breaks are kept verbatim.
//
// Examples:
//   - "  milk  " -> "milk"
//   - "eggs\n  and ham" -> "eggs\n  and ham"
//   - "vector<int> notes" -> "vector<int> notes"
func Input(s string) string {
	if s == "" {
		return s
	}
	return strings.TrimSpace(s)
}

// Name cleans a display name arriving from outside the note editor, such as an
// imported author or the configured viewer. HTML is stripped, entities are
// unescaped and surrounding whitespace is trimmed.
//
// Examples:
//   - "<b>will</b>" -> "will"
//   - " tom &amp; jerry " -> "tom & jerry"
func Name(s string) string {
	if s == "" {
		return s
	}
	return strings.TrimSpace(html.UnescapeString(strict.Sanitize(s)))
}
