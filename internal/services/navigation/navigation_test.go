package navigation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want Location
	}{
		{"path only", "/home", Location{Path: "/home"}},
		{"query and fragment", "/a/b?x=1&modal=help#top", Location{Path: "/a/b", RawQuery: "x=1&modal=help", Fragment: "top"}},
		{"absolute url", "https://example.com/shop?cart=1", Location{Path: "/shop", RawQuery: "cart=1"}},
		{"empty", "", Location{Path: "/"}},
		{"query only", "?modal=x", Location{Path: "/", RawQuery: "modal=x"}},
		{"encoded query kept raw", "/s?q=a%20b&modal=x", Location{Path: "/s", RawQuery: "q=a%20b&modal=x"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParse_Invalid(t *testing.T) {
	_, err := Parse("/%zz")
	assert.Error(t, err)
	assert.Panics(t, func() { MustParse("/%zz") })
}

func TestLocation_String(t *testing.T) {
	assert.Equal(t, "/home", Location{Path: "/home"}.String())
	assert.Equal(t, "/home?a=1", Location{Path: "/home", RawQuery: "a=1"}.String())
	assert.Equal(t, "/home#top", Location{Path: "/home", Fragment: "top"}.String())
	assert.Equal(t, "/home?a=1#top", Location{Path: "/home", RawQuery: "a=1", Fragment: "top"}.String())
	assert.Equal(t, "/home?a=1#top", MustParse("/home?a=1#top").String())
}

func TestHistory_ReplaceDoesNotGrow(t *testing.T) {
	h := NewHistory(MustParse("/home"), nil)

	h.Replace(MustParse("/home?modal=help"))
	h.Replace(MustParse("/home"))

	assert.Equal(t, 1, h.Len())
	assert.Equal(t, 0, h.Index())
	assert.Equal(t, "/home", h.Location().String())
}

func TestHistory_PushBackForward(t *testing.T) {
	h := NewHistory(MustParse("/a"), nil)

	h.Push(MustParse("/b"))
	h.Push(MustParse("/c"))
	assert.Equal(t, 3, h.Len())
	assert.Equal(t, "/c", h.Location().String())

	require.True(t, h.Back())
	assert.Equal(t, "/b", h.Location().String())
	require.True(t, h.Back())
	assert.False(t, h.Back(), "back at start of history")
	assert.Equal(t, "/a", h.Location().String())

	require.True(t, h.Forward())
	assert.Equal(t, "/b", h.Location().String())

	// Pushing from the middle drops forward entries
	h.Push(MustParse("/d"))
	assert.Equal(t, 3, h.Len())
	assert.False(t, h.Forward(), "forward at end of history")
	assert.Equal(t, "/d", h.Location().String())
}

func TestHistory_Subscribe(t *testing.T) {
	h := NewHistory(MustParse("/a"), nil)

	var seen []string
	cancel := h.Subscribe(func(loc Location) { seen = append(seen, loc.String()) })

	h.Push(MustParse("/b"))
	h.Replace(MustParse("/b?modal=x"))
	h.Back()
	cancel()
	h.Forward()

	assert.Equal(t, []string{"/b", "/b?modal=x", "/a"}, seen)
}

func TestHistory_ReentrantNotificationsAreQueued(t *testing.T) {
	h := NewHistory(MustParse("/a"), nil)

	var seen []string
	h.Subscribe(func(loc Location) {
		seen = append(seen, "first:"+loc.String())
		if loc.String() == "/b" {
			// Mutating from inside a handler must not recurse
			h.Replace(MustParse("/b?modal=x"))
		}
	})
	h.Subscribe(func(loc Location) {
		seen = append(seen, "second:"+loc.String())
	})

	h.Push(MustParse("/b"))

	assert.Equal(t, []string{
		"first:/b",
		"second:/b",
		"first:/b?modal=x",
		"second:/b?modal=x",
	}, seen)
	assert.Equal(t, "/b?modal=x", h.Location().String())
}

func TestHistory_ImplementsNavigator(t *testing.T) {
	var _ Navigator = NewHistory(Location{Path: "/"}, nil)
}
