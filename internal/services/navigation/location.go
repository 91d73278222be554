// Package navigation models the host's address bar: a Location value, the
// Navigator collaborator interface and an in-memory History implementation.
package navigation

import (
	"net/url"
	"strings"
)

// Location is the part of a URL the overlay system observes. RawQuery and
// Fragment are kept in their original encoding so unrelated parameters
// survive a round trip untouched.
type Location struct {
	Path     string
	RawQuery string
	Fragment string
}

// Parse reads a location from a URL or a bare "/path?query#fragment"
// reference. Scheme and host are discarded.
func Parse(raw string) (Location, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return Location{}, err
	}
	loc := Location{
		Path:     u.EscapedPath(),
		RawQuery: u.RawQuery,
		Fragment: u.EscapedFragment(),
	}
	if loc.Path == "" {
		loc.Path = "/"
	}
	return loc, nil
}

// MustParse is like Parse but panics on error.
func MustParse(raw string) Location {
	loc, err := Parse(raw)
	if err != nil {
		panic(err)
	}
	return loc
}

// String renders path, "?query" and "#fragment", omitting empty parts. This
// is the string conditional display patterns are matched against.
func (l Location) String() string {
	var b strings.Builder
	b.WriteString(l.Path)
	if l.RawQuery != "" {
		b.WriteByte('?')
		b.WriteString(l.RawQuery)
	}
	if l.Fragment != "" {
		b.WriteByte('#')
		b.WriteString(l.Fragment)
	}
	return b.String()
}

// WithQuery returns a copy of l with RawQuery replaced.
func (l Location) WithQuery(rawQuery string) Location {
	l.RawQuery = rawQuery
	return l
}
