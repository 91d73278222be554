// Package resolver decides whether the selected overlay may render.
//
// Resolve is a pure function of the selection, the registry contents, the
// location and the static policy. The only side effect the algorithm asks
// for, stripping an unknown id from the URL, is reported in the Decision and
// carried out by the caller.
package resolver

import (
	"github.com/riordanpawley/overlayctl/internal/domain"
	"github.com/riordanpawley/overlayctl/internal/services/navigation"
)

// Lookuper is the registry capability the resolver needs.
type Lookuper interface {
	Lookup(id string) (domain.Definition, bool)
}

// Selection is the overlay id currently encoded in the URL.
type Selection struct {
	ID      string
	Present bool
}

// Select returns a present selection for id.
func Select(id string) Selection {
	return Selection{ID: id, Present: true}
}

// Policy configures the handling of ids that are not registered.
type Policy struct {
	// StripUnknown clears an unknown id from the URL. It takes precedence
	// over Fallback.
	StripUnknown bool

	// Fallback is rendered for an unknown id when StripUnknown is off.
	Fallback any
}

// Outcome is what the host should render.
type Outcome int

const (
	OutcomeNothing Outcome = iota
	OutcomeContent
	OutcomeFallback
)

// String returns the string representation of the outcome
func (o Outcome) String() string {
	switch o {
	case OutcomeNothing:
		return "nothing"
	case OutcomeContent:
		return "content"
	case OutcomeFallback:
		return "fallback"
	default:
		return "unknown"
	}
}

// Reason records which rule produced a decision.
type Reason int

const (
	ReasonNoSelection Reason = iota
	ReasonUnknownStripped
	ReasonUnknownFallback
	ReasonUnknownSilent
	ReasonSuppressed
	ReasonNotShown
	ReasonVisible
)

// String returns the string representation of the reason
func (r Reason) String() string {
	switch r {
	case ReasonNoSelection:
		return "no overlay selected"
	case ReasonUnknownStripped:
		return "unknown id stripped from url"
	case ReasonUnknownFallback:
		return "unknown id, fallback rendered"
	case ReasonUnknownSilent:
		return "unknown id ignored"
	case ReasonSuppressed:
		return "suppressed for this location"
	case ReasonNotShown:
		return "not shown for this location"
	case ReasonVisible:
		return "visible"
	default:
		return "unknown"
	}
}

// Decision is the result of Resolve.
type Decision struct {
	Outcome Outcome
	Reason  Reason

	// ID is the selected id, empty when nothing is selected.
	ID string

	// Content is the definition content or the fallback, depending on Outcome.
	Content any

	// Strip asks the caller to clear the id from the URL.
	Strip bool
}

// Visible reports whether something should be drawn.
func (d Decision) Visible() bool {
	return d.Outcome != OutcomeNothing
}

// Resolve applies the visibility rules in order; the first one that applies
// wins:
//
//  1. no selection renders nothing
//  2. an unknown id is stripped, replaced by the fallback, or ignored
//  3. a matching suppress pattern hides the overlay (even if ShowOnly matches)
//  4. a ShowOnly pattern that does not match hides the overlay
//  5. otherwise the definition's content renders
//
// Pattern errors are returned as is.
func Resolve(sel Selection, reg Lookuper, loc navigation.Location, policy Policy) (Decision, error) {
	if !sel.Present {
		return Decision{Outcome: OutcomeNothing, Reason: ReasonNoSelection}, nil
	}

	def, ok := reg.Lookup(sel.ID)
	if !ok {
		switch {
		case policy.StripUnknown:
			return Decision{Outcome: OutcomeNothing, Reason: ReasonUnknownStripped, ID: sel.ID, Strip: true}, nil
		case policy.Fallback != nil:
			return Decision{Outcome: OutcomeFallback, Reason: ReasonUnknownFallback, ID: sel.ID, Content: policy.Fallback}, nil
		default:
			return Decision{Outcome: OutcomeNothing, Reason: ReasonUnknownSilent, ID: sel.ID}, nil
		}
	}

	location := loc.String()

	if def.Suppress != nil {
		suppressed, err := def.Suppress.Match(location)
		if err != nil {
			return Decision{}, err
		}
		if suppressed {
			return Decision{Outcome: OutcomeNothing, Reason: ReasonSuppressed, ID: sel.ID}, nil
		}
	}

	if def.ShowOnly != nil {
		allowed, err := def.ShowOnly.Match(location)
		if err != nil {
			return Decision{}, err
		}
		if !allowed {
			return Decision{Outcome: OutcomeNothing, Reason: ReasonNotShown, ID: sel.ID}, nil
		}
	}

	return Decision{Outcome: OutcomeContent, Reason: ReasonVisible, ID: sel.ID, Content: def.Content}, nil
}
