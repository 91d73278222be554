// Package domain holds the core overlay types shared by every layer.
package domain

// Matcher reports whether a location (path, query and fragment concatenated)
// satisfies a conditional display pattern.
type Matcher interface {
	Match(location string) (bool, error)
}

// MatcherFunc adapts a plain function to the Matcher interface.
type MatcherFunc func(location string) (bool, error)

// Match calls f(location).
func (f MatcherFunc) Match(location string) (bool, error) {
	return f(location)
}

// Definition is an overlay registered under a unique ID.
type Definition struct {
	ID string

	// Content is the renderable payload. It belongs to the registrant and is
	// passed through untouched.
	Content any

	// Suppress, when set and matching, hides the overlay even if selected.
	Suppress Matcher

	// ShowOnly, when set and not matching, hides the overlay even if selected.
	ShowOnly Matcher
}

// Callbacks run around an open or close transition. Either may be nil.
type Callbacks struct {
	PreAction  func()
	PostAction func()
}

func (c Callbacks) pre() {
	if c.PreAction != nil {
		c.PreAction()
	}
}

func (c Callbacks) post() {
	if c.PostAction != nil {
		c.PostAction()
	}
}

// Run invokes PreAction, then action, then PostAction.
func (c Callbacks) Run(action func()) {
	c.pre()
	action()
	c.post()
}

// Props is auxiliary data handed to an overlay when it is opened. It lives in
// session state only and is never written to the URL.
type Props map[string]any
