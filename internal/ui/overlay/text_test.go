package overlay

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func key(s string) tea.KeyMsg {
	switch s {
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestTextOverlaySizeDefaults(t *testing.T) {
	o := NewTextOverlay(Content{}, nil)
	w, h := o.Size()
	assert.Equal(t, DefaultWidth, w)
	assert.Equal(t, DefaultHeight, h)

	o = NewTextOverlay(Content{Width: 70, Height: 3}, nil)
	w, h = o.Size()
	assert.Equal(t, 70, w)
	assert.Equal(t, 3, h)
}

func TestTextOverlayCloseKeys(t *testing.T) {
	for _, k := range []string{"esc", "x"} {
		t.Run(k, func(t *testing.T) {
			o := NewTextOverlay(Content{Title: "T"}, nil)
			_, cmd := o.Update(key(k))
			require.NotNil(t, cmd)
			assert.IsType(t, CloseOverlayMsg{}, cmd())
		})
	}
}

func TestTextOverlayIgnoresOtherKeys(t *testing.T) {
	o := NewTextOverlay(Content{Title: "T"}, nil)
	model, cmd := o.Update(key("z"))
	assert.Nil(t, cmd)
	assert.Same(t, o, model)
}

func TestTextOverlayScroll(t *testing.T) {
	body := strings.Join([]string{"l1", "l2", "l3", "l4", "l5", "l6"}, "\n")
	o := NewTextOverlay(Content{Body: body, Height: 3}, nil)

	assert.Contains(t, o.View(), "l1")
	assert.NotContains(t, o.View(), "l4")

	o.Update(key("j"))
	assert.NotContains(t, o.View(), "l1")
	assert.Contains(t, o.View(), "l2")

	// Cannot scroll past the end
	for i := 0; i < 20; i++ {
		o.Update(key("down"))
	}
	assert.Equal(t, o.maxScroll(), o.scroll)

	for i := 0; i < 20; i++ {
		o.Update(key("k"))
	}
	assert.Equal(t, 0, o.scroll)
}

func TestFallbackOverlayDefaults(t *testing.T) {
	o := NewFallbackOverlay(Content{}, "ghost")

	assert.True(t, o.Fallback())
	assert.Equal(t, "Unknown overlay", o.Title())
	assert.Contains(t, o.View(), `"ghost"`)

	custom := NewFallbackOverlay(Content{Title: "Gone", Body: "Moved away."}, "ghost")
	assert.Equal(t, "Gone", custom.Title())
	assert.Contains(t, custom.View(), "Moved away.")
	assert.False(t, NewTextOverlay(Content{}, nil).Fallback())
}
