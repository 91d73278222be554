package navigation

import "log/slog"

// Navigator is the host routing capability consumed by the overlay system.
// Replace must not add a history entry. Subscribers are notified after every
// change of the current location, whatever caused it.
type Navigator interface {
	Location() Location
	Replace(loc Location)
	Subscribe(fn func(Location)) (cancel func())
}

// History is an in-memory Navigator with a browser-like back stack. It is
// driven from a single goroutine. Notifications raised while subscribers are
// being notified are queued and delivered once the current round finishes.
type History struct {
	entries []Location
	index   int

	subs   map[int]func(Location)
	order  []int
	nextID int

	dispatching bool
	pending     []Location

	logger *slog.Logger
}

// NewHistory creates a history positioned on start.
func NewHistory(start Location, logger *slog.Logger) *History {
	if logger == nil {
		logger = slog.Default()
	}
	return &History{
		entries: []Location{start},
		subs:    make(map[int]func(Location)),
		logger:  logger,
	}
}

// Location returns the current entry.
func (h *History) Location() Location {
	return h.entries[h.index]
}

// Replace overwrites the current entry without growing the stack.
func (h *History) Replace(loc Location) {
	h.logger.Debug("history replace", "location", loc.String())
	h.entries[h.index] = loc
	h.notify(loc)
}

// Push appends a new entry after the current one, discarding forward
// entries, the way a link click does.
func (h *History) Push(loc Location) {
	h.logger.Debug("history push", "location", loc.String())
	h.entries = append(h.entries[:h.index+1], loc)
	h.index++
	h.notify(loc)
}

// Back moves one entry back. It reports false at the start of history.
func (h *History) Back() bool {
	if h.index == 0 {
		return false
	}
	h.index--
	h.notify(h.entries[h.index])
	return true
}

// Forward moves one entry forward. It reports false at the end of history.
func (h *History) Forward() bool {
	if h.index >= len(h.entries)-1 {
		return false
	}
	h.index++
	h.notify(h.entries[h.index])
	return true
}

// Len returns the number of entries in the back stack.
func (h *History) Len() int {
	return len(h.entries)
}

// Index returns the position of the current entry.
func (h *History) Index() int {
	return h.index
}

// Subscribe registers fn for location changes.
func (h *History) Subscribe(fn func(Location)) (cancel func()) {
	id := h.nextID
	h.nextID++
	h.subs[id] = fn
	h.order = append(h.order, id)
	return func() {
		delete(h.subs, id)
		order := make([]int, 0, len(h.order))
		for _, other := range h.order {
			if other != id {
				order = append(order, other)
			}
		}
		h.order = order
	}
}

func (h *History) notify(loc Location) {
	h.pending = append(h.pending, loc)
	if h.dispatching {
		return
	}
	h.dispatching = true
	defer func() { h.dispatching = false }()

	for len(h.pending) > 0 {
		next := h.pending[0]
		h.pending = h.pending[1:]
		for _, id := range h.order {
			if fn, ok := h.subs[id]; ok {
				fn(next)
			}
		}
	}
}
