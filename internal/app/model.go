// Package app implements the terminal host: a page list backed by an
// in-memory history with a single URL-driven overlay slot on top.
package app

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/riordanpawley/overlayctl/internal/config"
	"github.com/riordanpawley/overlayctl/internal/core/resolver"
	"github.com/riordanpawley/overlayctl/internal/domain"
	"github.com/riordanpawley/overlayctl/internal/provider"
	"github.com/riordanpawley/overlayctl/internal/services/navigation"
	"github.com/riordanpawley/overlayctl/internal/types"
	"github.com/riordanpawley/overlayctl/internal/ui/overlay"
	"github.com/riordanpawley/overlayctl/internal/ui/styles"
)

// Type aliases for convenience
type (
	Mode       = types.Mode
	Toast      = types.Toast
	ToastLevel = types.ToastLevel
)

const (
	ModeNormal   = types.ModeNormal
	ModeOverlay  = types.ModeOverlay
	ModeLocation = types.ModeLocation
)

// tickMsg expires toasts
type tickMsg time.Time

const tickInterval = time.Second

// inbox collects provider events until the model drains them. Provider
// callbacks run synchronously inside Update, so no locking is needed.
type inbox struct {
	events []provider.Event
}

func (b *inbox) push(ev provider.Event) { b.events = append(b.events, ev) }

func (b *inbox) drain() []provider.Event {
	out := b.events
	b.events = nil
	return out
}

// Model is the root bubbletea model
type Model struct {
	cfg      *config.Config
	history  *navigation.History
	provider *provider.Provider
	inbox    *inbox

	routes []string
	cursor int

	// Cached result of the last provider render. View only reads these.
	decision  resolver.Decision
	renderErr error
	active    overlay.Overlay
	activeKey string

	location textinput.Model
	editing  bool

	keys keyMap
	help help.Model

	toasts []Toast

	width  int
	height int
	styles *styles.Styles

	now    func() time.Time
	logger *slog.Logger
}

// New creates the host for cfg. The history starts at cfg.StartLocation.
func New(cfg *config.Config, logger *slog.Logger) (Model, error) {
	if logger == nil {
		logger = slog.Default()
	}

	start, err := navigation.Parse(cfg.StartLocation)
	if err != nil {
		return Model{}, fmt.Errorf("invalid start location %q: %w", cfg.StartLocation, err)
	}

	defs, err := cfg.Definitions(func(o config.OverlayConfig) any {
		return overlay.Content{Title: o.Title, Body: o.Body, Width: o.Width, Height: o.Height}
	})
	if err != nil {
		return Model{}, err
	}

	opts := provider.DefaultOptions()
	opts.Parameter = cfg.QueryParameter
	opts.StripUnknown = cfg.StripUnknown()
	opts.Logger = logger
	if cfg.Fallback != nil {
		opts.Fallback = overlay.Content{Title: cfg.Fallback.Title, Body: cfg.Fallback.Body}
	}

	history := navigation.NewHistory(start, logger)
	p := provider.Mount(history, defs, opts)

	box := &inbox{}
	p.Subscribe(box.push)

	ti := textinput.New()
	ti.Prompt = "location: "
	ti.Placeholder = "/path?modal=id"
	ti.CharLimit = 512

	m := Model{
		cfg:      cfg,
		history:  history,
		provider: p,
		inbox:    box,
		routes:   cfg.Routes,
		location: ti,
		keys:     defaultKeyMap(),
		help:     help.New(),
		styles:   styles.New(),
		now:      time.Now,
		logger:   logger,
	}
	m.refresh()
	return m, nil
}

// Init starts the toast expiry ticker
func (m Model) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// Update handles incoming messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.location.Width = max(10, msg.Width-len(m.location.Prompt)-2)
		return m, nil

	case tickMsg:
		m.toasts = types.Live(m.toasts, m.now())
		return m, tick()

	case tea.KeyMsg:
		if m.editing {
			return m.handleLocationKey(msg)
		}
		return m.handleKey(msg)

	case overlay.CloseOverlayMsg:
		m.closeOverlay()
		return m, nil
	}

	return m, nil
}

// Mode reports what currently receives key input
func (m Model) Mode() Mode {
	switch {
	case m.editing:
		return ModeLocation
	case m.active != nil:
		return ModeOverlay
	default:
		return ModeNormal
	}
}

// Decision returns the most recent render decision
func (m Model) Decision() resolver.Decision {
	return m.decision
}

// Location returns the current history location
func (m Model) Location() navigation.Location {
	return m.history.Location()
}

// Close unmounts the provider
func (m Model) Close() {
	m.provider.Unmount()
}

// handleKey processes keyboard input outside the location bar
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Global keys
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Back):
		if !m.history.Back() {
			m.addToast(types.ToastInfo, "no earlier location")
		}
		m.refresh()
		return m, nil
	case key.Matches(msg, m.keys.Forward):
		if !m.history.Forward() {
			m.addToast(types.ToastInfo, "no later location")
		}
		m.refresh()
		return m, nil
	case key.Matches(msg, m.keys.Location):
		m.editing = true
		m.location.SetValue(m.history.Location().String())
		m.location.CursorEnd()
		return m, m.location.Focus()
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	// An open overlay gets the remaining keys first
	if m.active != nil {
		model, cmd := m.active.Update(msg)
		if o, ok := model.(overlay.Overlay); ok {
			m.active = o
		}
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.routes)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Go):
		if m.cursor < len(m.routes) {
			m.navigate(m.routes[m.cursor])
		}
	case key.Matches(msg, m.keys.Open):
		n, _ := strconv.Atoi(msg.String())
		m.openNth(n)
	case key.Matches(msg, m.keys.Close):
		// Clears selections that are not visible, e.g. suppressed ones
		if _, present := m.provider.CurrentID(); present {
			m.closeOverlay()
		}
	}
	return m, nil
}

// handleLocationKey drives the location bar
func (m Model) handleLocationKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.editing = false
		m.location.Blur()
		return m, nil
	case tea.KeyEnter:
		m.editing = false
		m.location.Blur()
		m.navigate(m.location.Value())
		return m, nil
	}

	var cmd tea.Cmd
	m.location, cmd = m.location.Update(msg)
	return m, cmd
}

// navigate pushes raw onto the history, like following a link
func (m *Model) navigate(raw string) {
	loc, err := navigation.Parse(raw)
	if err != nil {
		m.logger.Warn("invalid location", "location", raw, "error", err)
		m.addToast(types.ToastError, fmt.Sprintf("invalid location %q", raw))
		return
	}
	m.history.Push(loc)
	m.refresh()
}

// openNth opens the n-th configured overlay (1-based) with the current path
// as props
func (m *Model) openNth(n int) {
	if n < 1 || n > len(m.cfg.Overlays) {
		m.addToast(types.ToastWarning, fmt.Sprintf("no overlay #%d", n))
		return
	}
	id := m.cfg.Overlays[n-1].ID
	props := domain.Props{"from": m.history.Location().Path}
	m.provider.OpenModal(id, m.callbacks("open", id), props)
	m.refresh()
}

func (m *Model) closeOverlay() {
	id, _ := m.provider.CurrentID()
	m.provider.CloseModal(m.callbacks("close", id))
	m.refresh()
}

func (m *Model) callbacks(op, id string) domain.Callbacks {
	logger := m.logger
	return domain.Callbacks{
		PreAction: func() {
			logger.Debug("overlay transition starting", "op", op, "id", id)
		},
		PostAction: func() {
			logger.Debug("overlay transition done", "op", op, "id", id)
		},
	}
}

// refresh renders the provider, rebuilds the active overlay when the
// decision changed and turns pending provider events into toasts.
func (m *Model) refresh() {
	props := false
	d, err := m.provider.Render()
	for _, ev := range m.inbox.drain() {
		if ev.Kind == provider.EventPropsChanged {
			props = true
		}
		m.toastFor(ev)
	}

	if err != nil {
		m.logger.Error("overlay render failed", "error", err)
		m.renderErr = err
		m.decision = resolver.Decision{}
		m.active, m.activeKey = nil, ""
		var pe *domain.PatternError
		if errors.As(err, &pe) {
			m.addToast(types.ToastError, fmt.Sprintf("%s pattern failed: %v", pe.Engine, pe.Err))
		} else {
			m.addToast(types.ToastError, err.Error())
		}
		return
	}
	m.renderErr = nil

	if d.Strip {
		m.addToast(types.ToastWarning, fmt.Sprintf("removed unknown overlay %q from the url", d.ID))
	}

	m.decision = d
	k := d.Outcome.String() + ":" + d.ID
	if k == m.activeKey && !props {
		return
	}
	m.activeKey = k
	m.active = m.buildOverlay(d)
}

func (m *Model) buildOverlay(d resolver.Decision) overlay.Overlay {
	switch d.Outcome {
	case resolver.OutcomeContent:
		switch c := d.Content.(type) {
		case overlay.Overlay:
			return c
		case overlay.Content:
			return overlay.NewTextOverlay(c, m.provider.CurrentModalProps())
		default:
			return overlay.NewTextOverlay(overlay.Content{Title: d.ID, Body: fmt.Sprint(c)}, m.provider.CurrentModalProps())
		}
	case resolver.OutcomeFallback:
		c, _ := d.Content.(overlay.Content)
		return overlay.NewFallbackOverlay(c, d.ID)
	default:
		return nil
	}
}

func (m *Model) toastFor(ev provider.Event) {
	param := m.provider.Parameter()
	switch ev.Kind {
	case provider.EventSelectionChanged:
		if ev.Present {
			m.addToast(types.ToastInfo, fmt.Sprintf("%s=%s", param, ev.ID))
		} else {
			m.addToast(types.ToastSuccess, fmt.Sprintf("%s cleared", param))
		}
	case provider.EventRegistryChanged:
		m.addToast(types.ToastInfo, fmt.Sprintf("%d overlays registered", m.provider.Registry().Len()))
	}
}

// addToast adds a toast notification to the list
func (m *Model) addToast(level ToastLevel, message string) {
	m.toasts = append(m.toasts, types.NewToast(level, message, m.now()))
}
