// Package provider exposes the overlay system to consuming code. A Provider
// is mounted on a Navigator, keeps the current selection in step with the
// location, re-populates the registry when the overlay list changes and
// resolves what to render.
package provider

import (
	"fmt"
	"log/slog"

	"github.com/riordanpawley/overlayctl/internal/core/resolver"
	"github.com/riordanpawley/overlayctl/internal/domain"
	"github.com/riordanpawley/overlayctl/internal/services/navigation"
	"github.com/riordanpawley/overlayctl/internal/services/registry"
	"github.com/riordanpawley/overlayctl/internal/services/transition"
	"github.com/riordanpawley/overlayctl/internal/services/urlsync"
)

// Surface is the contract offered to code running inside a provider scope.
type Surface interface {
	// OpenModal opens the overlay with the given id.
	OpenModal(id string, cb domain.Callbacks, data domain.Props)
	// CloseModal closes the current overlay, if any.
	CloseModal(cb domain.Callbacks)
	// CurrentModalProps returns the data passed to the most recent open.
	CurrentModalProps() domain.Props
	// RegisterModal registers def, replacing any definition with its id.
	RegisterModal(def domain.Definition)
}

// Options configures a Provider.
type Options struct {
	// Parameter is the owned query parameter (urlsync.DefaultParameter when
	// empty).
	Parameter string

	// StripUnknown clears unregistered ids from the URL at render time.
	StripUnknown bool

	// Fallback renders for unregistered ids when StripUnknown is off.
	Fallback any

	// Registry to populate. A private registry is created when nil.
	Registry *registry.Registry

	Logger *slog.Logger
}

// DefaultOptions returns the default configuration: the "modal" parameter
// with unknown ids stripped.
func DefaultOptions() Options {
	return Options{
		Parameter:    urlsync.DefaultParameter,
		StripUnknown: true,
	}
}

// Provider implements Surface. It is driven from a single goroutine.
type Provider struct {
	nav    navigation.Navigator
	reg    *registry.Registry
	urls   *urlsync.Synchronizer
	ctl    *transition.Controller
	policy resolver.Policy

	loc navigation.Location
	sel resolver.Selection

	mounted bool
	cancels []func()
	bus     bus

	logger *slog.Logger
}

var _ Surface = (*Provider)(nil)

// Mount creates a provider on nav, registers overlays and starts observing
// location and registry changes.
func Mount(nav navigation.Navigator, overlays []domain.Definition, opts Options) *Provider {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	reg := opts.Registry
	if reg == nil {
		reg = registry.New(logger)
	}

	p := &Provider{
		nav: nav,
		reg: reg,
		policy: resolver.Policy{
			StripUnknown: opts.StripUnknown,
			Fallback:     opts.Fallback,
		},
		logger: logger,
	}
	p.urls = urlsync.New(nav, opts.Parameter, logger)
	p.ctl = transition.New(p.urls, p.propsChanged, logger)

	p.reg.Replace(overlays)

	p.loc = nav.Location()
	id, ok := p.urls.IDFrom(p.loc)
	p.sel = resolver.Selection{ID: id, Present: ok}

	p.cancels = append(p.cancels,
		nav.Subscribe(p.locationChanged),
		reg.Subscribe(p.registryChanged),
	)
	p.mounted = true

	logger.Debug("overlay provider mounted",
		"param", p.urls.Parameter(),
		"overlays", len(overlays),
		"location", p.loc.String(),
	)
	return p
}

// Unmount stops observing changes. Surface calls panic afterwards.
func (p *Provider) Unmount() {
	for _, cancel := range p.cancels {
		cancel()
	}
	p.cancels = nil
	p.mounted = false
	p.logger.Debug("overlay provider unmounted")
}

// Mounted reports whether the provider is active.
func (p *Provider) Mounted() bool {
	return p.mounted
}

func (p *Provider) mustBeMounted(op string) {
	if !p.mounted {
		panic(fmt.Errorf("%s: %w", op, domain.ErrNoProvider))
	}
}

// OpenModal implements Surface.
func (p *Provider) OpenModal(id string, cb domain.Callbacks, data domain.Props) {
	p.mustBeMounted("OpenModal")
	p.ctl.Open(id, cb, data)
}

// CloseModal implements Surface.
func (p *Provider) CloseModal(cb domain.Callbacks) {
	p.mustBeMounted("CloseModal")
	p.ctl.Close(cb)
}

// CurrentModalProps implements Surface.
func (p *Provider) CurrentModalProps() domain.Props {
	p.mustBeMounted("CurrentModalProps")
	return p.ctl.CurrentProps()
}

// RegisterModal implements Surface.
func (p *Provider) RegisterModal(def domain.Definition) {
	p.mustBeMounted("RegisterModal")
	p.reg.Register(def)
}

// SetOverlays supplies the current overlay list. Every call re-registers the
// whole list, so reordering or editing content always takes effect; ids that
// are no longer listed stay registered.
func (p *Provider) SetOverlays(defs []domain.Definition) {
	p.mustBeMounted("SetOverlays")
	p.reg.Replace(defs)
}

// CurrentID returns the id encoded in the observed location.
func (p *Provider) CurrentID() (string, bool) {
	return p.sel.ID, p.sel.Present
}

// Location returns the last observed location.
func (p *Provider) Location() navigation.Location {
	return p.loc
}

// Parameter returns the owned query parameter name.
func (p *Provider) Parameter() string {
	return p.urls.Parameter()
}

// Registry returns the registry the provider populates.
func (p *Provider) Registry() *registry.Registry {
	return p.reg
}

// Render resolves the current selection. When the decision asks for an
// unknown id to be stripped, the id is cleared from the URL before Render
// returns. Pattern errors are returned to the caller.
func (p *Provider) Render() (resolver.Decision, error) {
	p.mustBeMounted("Render")

	d, err := resolver.Resolve(p.sel, p.reg, p.loc, p.policy)
	if err != nil {
		return resolver.Decision{}, err
	}
	if d.Strip {
		p.logger.Warn("stripping unknown overlay id from url", "id", d.ID, "param", p.urls.Parameter())
		p.urls.ClearID()
	}
	return d, nil
}

// Subscribe registers fn for provider events.
func (p *Provider) Subscribe(fn func(Event)) (cancel func()) {
	return p.bus.subscribe(fn)
}

func (p *Provider) locationChanged(loc navigation.Location) {
	id, ok := p.urls.IDFrom(loc)
	next := resolver.Selection{ID: id, Present: ok}
	changed := next != p.sel

	// Location and selection are updated together so handlers of either
	// event observe a consistent pair.
	p.loc = loc
	p.sel = next
	p.bus.emit(Event{Kind: EventLocationChanged, Location: loc})
	if !changed {
		return
	}
	p.logger.Debug("overlay selection changed", "id", id, "present", ok)
	p.bus.emit(Event{Kind: EventSelectionChanged, Location: loc, ID: id, Present: ok})
}

func (p *Provider) registryChanged() {
	p.bus.emit(Event{Kind: EventRegistryChanged, Location: p.loc})
}

func (p *Provider) propsChanged(props domain.Props) {
	p.bus.emit(Event{Kind: EventPropsChanged, Location: p.loc, Props: props})
}
