package overlay

import (
	"fmt"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/riordanpawley/overlayctl/internal/domain"
)

// Default frame size when the content does not set one
const (
	DefaultWidth  = 48
	DefaultHeight = 10
)

// Content is the static payload registered for a text overlay
type Content struct {
	Title  string
	Body   string
	Width  int
	Height int
}

// TextOverlay shows a title, a body and the props it was opened with
type TextOverlay struct {
	content  Content
	props    domain.Props
	fallback bool
	styles   *Styles
	scroll   int
}

// NewTextOverlay creates an overlay for content with the current props
func NewTextOverlay(content Content, props domain.Props) *TextOverlay {
	return &TextOverlay{content: content, props: props, styles: New()}
}

// NewFallbackOverlay creates the overlay shown for an unregistered id
func NewFallbackOverlay(content Content, id string) *TextOverlay {
	if content.Title == "" {
		content.Title = "Unknown overlay"
	}
	if content.Body == "" {
		content.Body = fmt.Sprintf("Nothing is registered as %q.", id)
	}
	return &TextOverlay{content: content, fallback: true, styles: New()}
}

// Fallback reports whether this overlay stands in for an unknown id
func (o *TextOverlay) Fallback() bool { return o.fallback }

// Init initializes the overlay
func (o *TextOverlay) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (o *TextOverlay) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "esc", "x":
			return o, closeCmd
		case "j", "down":
			if o.scroll < o.maxScroll() {
				o.scroll++
			}
		case "k", "up":
			if o.scroll > 0 {
				o.scroll--
			}
		}
	}
	return o, nil
}

// View renders body and props, clipped to the overlay height
func (o *TextOverlay) View() string {
	lines := o.lines()
	_, h := o.Size()
	end := min(o.scroll+h, len(lines))
	return strings.Join(lines[o.scroll:end], "\n")
}

// Title returns the overlay title
func (o *TextOverlay) Title() string {
	return o.content.Title
}

// Size returns the overlay dimensions
func (o *TextOverlay) Size() (width, height int) {
	width, height = o.content.Width, o.content.Height
	if width <= 0 {
		width = DefaultWidth
	}
	if height <= 0 {
		height = DefaultHeight
	}
	return width, height
}

func (o *TextOverlay) maxScroll() int {
	_, h := o.Size()
	return max(0, len(o.lines())-h)
}

func (o *TextOverlay) lines() []string {
	var b strings.Builder
	b.WriteString(o.styles.Body.Render(o.content.Body))

	if len(o.props) > 0 {
		b.WriteString("\n")
		b.WriteString(o.styles.Separator.Render("props"))
		keys := make([]string, 0, len(o.props))
		for k := range o.props {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			b.WriteString("\n  ")
			b.WriteString(o.styles.PropKey.Render(k))
			b.WriteString(" ")
			b.WriteString(o.styles.PropValue.Render(fmt.Sprint(o.props[k])))
		}
	}

	b.WriteString("\n")
	b.WriteString(o.styles.Footer.Render("esc close"))
	return strings.Split(b.String(), "\n")
}
