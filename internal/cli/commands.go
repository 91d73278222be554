package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/riordanpawley/overlayctl/internal/config"
	"github.com/riordanpawley/overlayctl/internal/core/resolver"
	"github.com/riordanpawley/overlayctl/internal/domain"
	"github.com/riordanpawley/overlayctl/internal/pattern"
	"github.com/riordanpawley/overlayctl/internal/provider"
	"github.com/riordanpawley/overlayctl/internal/services/navigation"
)

// Dependencies holds what the one-shot commands need
type Dependencies struct {
	Config *config.Config
	Logger *slog.Logger
}

// NewDependencies creates a Dependencies for cfg
func NewDependencies(cfg *config.Config, logger *slog.Logger) *Dependencies {
	if logger == nil {
		logger = slog.Default()
	}
	return &Dependencies{Config: cfg, Logger: logger}
}

// session is a provider mounted on a throwaway history
type session struct {
	history  *navigation.History
	provider *provider.Provider
}

// mount parses raw and mounts a provider with the configured overlays on it
func (d *Dependencies) mount(raw string) (*session, error) {
	loc, err := navigation.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid url %q: %w", raw, err)
	}

	defs, err := d.Config.Definitions(func(o config.OverlayConfig) any { return o.Title })
	if err != nil {
		return nil, err
	}

	opts := provider.DefaultOptions()
	opts.Parameter = d.Config.QueryParameter
	opts.StripUnknown = d.Config.StripUnknown()
	opts.Logger = d.Logger
	if d.Config.Fallback != nil {
		opts.Fallback = d.Config.Fallback.Title
	}

	h := navigation.NewHistory(loc, d.Logger)
	return &session{history: h, provider: provider.Mount(h, defs, opts)}, nil
}

func (s *session) close() { s.provider.Unmount() }

// ResolveResult is the outcome of resolving one URL
type ResolveResult struct {
	Input    string `json:"input"`
	Location string `json:"location"`
	ID       string `json:"id,omitempty"`
	Present  bool   `json:"present"`
	Outcome  string `json:"outcome"`
	Reason   string `json:"reason"`
	Visible  bool   `json:"visible"`
	Stripped bool   `json:"stripped"`
	Content  any    `json:"content,omitempty"`

	outcome resolver.Outcome
}

// Resolve reports what a host would render at raw. When stripping applies the
// returned location has the id removed.
func Resolve(deps *Dependencies, raw string) (*ResolveResult, error) {
	s, err := deps.mount(raw)
	if err != nil {
		return nil, err
	}
	defer s.close()

	id, present := s.provider.CurrentID()
	d, err := s.provider.Render()
	if err != nil {
		return nil, err
	}

	deps.Logger.Debug("resolved", "url", raw, "outcome", d.Outcome, "reason", d.Reason)
	return &ResolveResult{
		Input:    raw,
		Location: s.history.Location().String(),
		ID:       id,
		Present:  present,
		Outcome:  d.Outcome.String(),
		Reason:   d.Reason.String(),
		Visible:  d.Visible(),
		Stripped: d.Strip,
		Content:  d.Content,
		outcome:  d.Outcome,
	}, nil
}

// TransitionResult is the location after an open or close
type TransitionResult struct {
	Input    string       `json:"input"`
	Location string       `json:"location"`
	ID       string       `json:"id,omitempty"`
	Props    domain.Props `json:"props,omitempty"`
}

// Open sets id on raw with props, the way a host would
func Open(deps *Dependencies, raw, id string, props domain.Props) (*TransitionResult, error) {
	s, err := deps.mount(raw)
	if err != nil {
		return nil, err
	}
	defer s.close()

	s.provider.OpenModal(id, domain.Callbacks{}, props)
	return &TransitionResult{
		Input:    raw,
		Location: s.history.Location().String(),
		ID:       id,
		Props:    s.provider.CurrentModalProps(),
	}, nil
}

// Close removes the overlay parameter from raw
func Close(deps *Dependencies, raw string) (*TransitionResult, error) {
	s, err := deps.mount(raw)
	if err != nil {
		return nil, err
	}
	defer s.close()

	s.provider.CloseModal(domain.Callbacks{})
	return &TransitionResult{
		Input:    raw,
		Location: s.history.Location().String(),
	}, nil
}

// OverlayInfo describes one configured overlay
type OverlayInfo struct {
	ID       string `json:"id"`
	Title    string `json:"title,omitempty"`
	Suppress string `json:"suppress,omitempty"`
	ShowOnly string `json:"showOnly,omitempty"`
}

// List returns the configured overlays in config order
func List(deps *Dependencies) ([]OverlayInfo, error) {
	defs, err := deps.Config.Definitions(func(o config.OverlayConfig) any { return o.Title })
	if err != nil {
		return nil, err
	}

	out := make([]OverlayInfo, 0, len(defs))
	for _, def := range defs {
		info := OverlayInfo{ID: def.ID}
		info.Title, _ = def.Content.(string)
		if def.Suppress != nil {
			info.Suppress = pattern.Describe(def.Suppress)
		}
		if def.ShowOnly != nil {
			info.ShowOnly = pattern.Describe(def.ShowOnly)
		}
		out = append(out, info)
	}
	return out, nil
}

// ParseData turns k=v pairs into props. Values that parse as JSON keep their
// JSON type; anything else is a string.
func ParseData(pairs []string) (domain.Props, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	props := make(domain.Props, len(pairs))
	for _, pair := range pairs {
		k, v, ok := strings.Cut(pair, "=")
		if !ok || k == "" {
			return nil, fmt.Errorf("invalid data %q (expected key=value)", pair)
		}
		var decoded any
		if err := json.Unmarshal([]byte(v), &decoded); err == nil {
			props[k] = decoded
		} else {
			props[k] = v
		}
	}
	return props, nil
}

func writeResolve(w io.Writer, r *ResolveResult) {
	printLabelValue(w, "location", r.Location)
	if r.Present {
		printLabelValue(w, "id", fmt.Sprintf("%q", r.ID))
	} else {
		printLabelValue(w, "id", "-")
	}
	_, _ = labelColor.Fprintf(w, "%-10s ", "outcome:")
	_, _ = outcomeColor(r.outcome).Fprintln(w, r.Outcome)
	printLabelValue(w, "reason", r.Reason)
	if r.Content != nil {
		printLabelValue(w, "content", fmt.Sprint(r.Content))
	}
	if r.Stripped {
		printWarning(w, fmt.Sprintf("unknown id %q removed from %s", r.ID, r.Input))
	}
}

func writeList(w io.Writer, items []OverlayInfo) {
	if len(items) == 0 {
		_, _ = dimColor.Fprintln(w, "No overlays configured")
		return
	}
	printHeader(w, "Overlays")
	for i, o := range items {
		_, _ = valueColor.Fprintf(w, "%d. %s", i+1, o.ID)
		if o.Title != "" {
			_, _ = dimColor.Fprintf(w, "  %s", o.Title)
		}
		fmt.Fprintln(w)
		if o.Suppress != "" {
			fmt.Fprintf(w, "     suppress  %s\n", o.Suppress)
		}
		if o.ShowOnly != "" {
			fmt.Fprintf(w, "     show-only %s\n", o.ShowOnly)
		}
	}
}
