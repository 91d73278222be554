package provider

import (
	"github.com/riordanpawley/overlayctl/internal/domain"
	"github.com/riordanpawley/overlayctl/internal/services/navigation"
)

// EventKind identifies what changed.
type EventKind int

const (
	EventLocationChanged EventKind = iota
	EventSelectionChanged
	EventRegistryChanged
	EventPropsChanged
)

// String returns the string representation of the event kind
func (k EventKind) String() string {
	switch k {
	case EventLocationChanged:
		return "location"
	case EventSelectionChanged:
		return "selection"
	case EventRegistryChanged:
		return "registry"
	case EventPropsChanged:
		return "props"
	default:
		return "unknown"
	}
}

// Event is delivered to provider subscribers.
type Event struct {
	Kind     EventKind
	Location navigation.Location

	// ID and Present describe the new selection (EventSelectionChanged).
	ID      string
	Present bool

	// Props holds the new props (EventPropsChanged).
	Props domain.Props
}

// bus delivers events in order. Events emitted by a handler are queued and
// delivered after the current event has reached every subscriber.
type bus struct {
	subs   map[int]func(Event)
	order  []int
	nextID int

	dispatching bool
	pending     []Event
}

func (b *bus) subscribe(fn func(Event)) func() {
	if b.subs == nil {
		b.subs = make(map[int]func(Event))
	}
	id := b.nextID
	b.nextID++
	b.subs[id] = fn
	b.order = append(b.order, id)
	return func() {
		delete(b.subs, id)
		order := make([]int, 0, len(b.order))
		for _, other := range b.order {
			if other != id {
				order = append(order, other)
			}
		}
		b.order = order
	}
}

func (b *bus) emit(ev Event) {
	b.pending = append(b.pending, ev)
	if b.dispatching {
		return
	}
	b.dispatching = true
	defer func() { b.dispatching = false }()

	for len(b.pending) > 0 {
		next := b.pending[0]
		b.pending = b.pending[1:]
		for _, id := range b.order {
			if fn, ok := b.subs[id]; ok {
				fn(next)
			}
		}
	}
}
