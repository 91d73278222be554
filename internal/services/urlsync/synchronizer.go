// Package urlsync reads and writes the single query parameter that encodes
// the active overlay id.
package urlsync

import (
	"log/slog"
	"net/url"
	"strings"

	"github.com/riordanpawley/overlayctl/internal/services/navigation"
)

// DefaultParameter is the query parameter used when none is configured.
const DefaultParameter = "modal"

// Synchronizer owns one query parameter on a Navigator. All writes are
// replace navigations; every other parameter keeps its raw encoding and
// position.
type Synchronizer struct {
	nav    navigation.Navigator
	param  string
	logger *slog.Logger
}

// New creates a Synchronizer for param (DefaultParameter when empty).
func New(nav navigation.Navigator, param string, logger *slog.Logger) *Synchronizer {
	if param == "" {
		param = DefaultParameter
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Synchronizer{
		nav:    nav,
		param:  param,
		logger: logger,
	}
}

// Parameter returns the owned query parameter name.
func (s *Synchronizer) Parameter() string {
	return s.param
}

// ReadCurrentID returns the first value of the parameter in the current
// location. A present but empty value is reported as ("", true).
func (s *Synchronizer) ReadCurrentID() (string, bool) {
	return Get(s.nav.Location().RawQuery, s.param)
}

// IDFrom reads the parameter from loc instead of the navigator's current
// location. Observers use it to decode the location they were handed.
func (s *Synchronizer) IDFrom(loc navigation.Location) (string, bool) {
	return Get(loc.RawQuery, s.param)
}

// WriteID sets the parameter to id.
func (s *Synchronizer) WriteID(id string) {
	loc := s.nav.Location()
	next := loc.WithQuery(Set(loc.RawQuery, s.param, id))
	s.logger.Debug("write overlay id", "param", s.param, "id", id, "location", next.String())
	s.nav.Replace(next)
}

// ClearID removes the parameter.
func (s *Synchronizer) ClearID() {
	loc := s.nav.Location()
	next := loc.WithQuery(Del(loc.RawQuery, s.param))
	s.logger.Debug("clear overlay id", "param", s.param, "location", next.String())
	s.nav.Replace(next)
}

// Get returns the first decoded value of key in rawQuery.
func Get(rawQuery, key string) (string, bool) {
	for _, pair := range strings.Split(rawQuery, "&") {
		if pair == "" {
			continue
		}
		k, v, _ := strings.Cut(pair, "=")
		if unescape(k) == key {
			return unescape(v), true
		}
	}
	return "", false
}

// Set replaces the first occurrence of key with value, drops later
// duplicates, and appends the pair when key is absent.
func Set(rawQuery, key, value string) string {
	encoded := url.QueryEscape(key) + "=" + url.QueryEscape(value)
	out := make([]string, 0, 4)
	found := false
	for _, pair := range pairs(rawQuery) {
		k, _, _ := strings.Cut(pair, "=")
		if pair == "" || unescape(k) != key {
			out = append(out, pair)
			continue
		}
		if !found {
			out = append(out, encoded)
			found = true
		}
	}
	if !found {
		out = append(out, encoded)
	}
	return strings.Join(out, "&")
}

// Del removes every occurrence of key.
func Del(rawQuery, key string) string {
	out := make([]string, 0, 4)
	for _, pair := range pairs(rawQuery) {
		k, _, _ := strings.Cut(pair, "=")
		if pair == "" || unescape(k) != key {
			out = append(out, pair)
		}
	}
	return strings.Join(out, "&")
}

// pairs splits rawQuery on '&'. Empty segments are kept so that rebuilding
// the query leaves pairs owned by others untouched.
func pairs(rawQuery string) []string {
	if rawQuery == "" {
		return nil
	}
	return strings.Split(rawQuery, "&")
}

func unescape(s string) string {
	if u, err := url.QueryUnescape(s); err == nil {
		return u
	}
	return s
}
