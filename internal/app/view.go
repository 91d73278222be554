package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/riordanpawley/overlayctl/internal/ui/overlay"
	"github.com/riordanpawley/overlayctl/internal/ui/statusbar"
	"github.com/riordanpawley/overlayctl/internal/ui/toast"
)

// View renders the current state as a string
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	header := m.renderLocationBar()

	id, present := m.provider.CurrentID()
	sb := statusbar.New(m.Mode(), m.width, m.styles).
		WithSelection(m.provider.Parameter(), id, present)
	statusBarView := sb.Render()

	toastView := toast.New(m.styles).Render(m.toasts, m.width)

	bodyHeight := m.height - lipgloss.Height(header) - lipgloss.Height(statusBarView)
	if toastView != "" {
		bodyHeight -= lipgloss.Height(toastView)
	}
	bodyHeight = max(bodyHeight, 0)

	var body string
	if m.active != nil {
		body = overlay.Place(m.active, overlay.FromTheme(m.styles), m.width, bodyHeight)
	} else {
		body = lipgloss.Place(m.width, bodyHeight, lipgloss.Left, lipgloss.Top, m.renderPages())
	}

	parts := []string{header, body}
	if toastView != "" {
		parts = append(parts, lipgloss.PlaceHorizontal(m.width, lipgloss.Right, toastView))
	}
	parts = append(parts, statusBarView)

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m Model) renderLocationBar() string {
	if m.editing {
		return m.styles.Location.Width(m.width).Render(m.location.View())
	}
	loc := m.history.Location().String()
	if m.width > 2 && len(loc) > m.width-2 {
		loc = ansi.Truncate(loc, m.width-2, "…")
	}
	return m.styles.Location.Width(m.width).Render(m.highlightParam(loc))
}

// highlightParam emphasises the overlay parameter inside a location string
func (m Model) highlightParam(loc string) string {
	param := m.provider.Parameter() + "="
	q := strings.IndexByte(loc, '?')
	if q < 0 {
		return loc
	}
	end := strings.IndexByte(loc, '#')
	if end < 0 {
		end = len(loc)
	}

	query := loc[q+1 : end]
	pairs := strings.Split(query, "&")
	for i, pair := range pairs {
		if strings.HasPrefix(pair, param) || pair == strings.TrimSuffix(param, "=") {
			pairs[i] = m.styles.Param.Render(pair)
		}
	}
	return loc[:q+1] + strings.Join(pairs, "&") + loc[end:]
}

func (m Model) renderPages() string {
	var b strings.Builder
	b.WriteString(m.styles.Header.Render("Pages"))
	b.WriteString("\n")

	current := m.history.Location().Path
	for i, route := range m.routes {
		marker := "  "
		if routePath(route) == current {
			marker = m.styles.RouteMarker.Render("● ")
		}
		style := m.styles.Route
		if i == m.cursor {
			style = m.styles.RouteActive
		}
		b.WriteString(style.Render(marker + route))
		b.WriteString("\n")
	}

	if len(m.cfg.Overlays) > 0 {
		b.WriteString("\n")
		b.WriteString(m.styles.Header.Render("Overlays"))
		b.WriteString("\n")
		for i, o := range m.cfg.Overlays {
			if i >= 9 {
				break
			}
			b.WriteString(m.styles.Route.Render(fmt.Sprintf("%d  %s", i+1, o.ID)))
			b.WriteString("\n")
		}
	}

	if m.renderErr != nil {
		b.WriteString("\n")
		b.WriteString(m.styles.ToastError.Render(m.renderErr.Error()))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func routePath(route string) string {
	if i := strings.IndexAny(route, "?#"); i >= 0 {
		route = route[:i]
	}
	if route == "" {
		return "/"
	}
	return route
}
