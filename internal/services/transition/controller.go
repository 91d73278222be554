// Package transition runs open and close requests: callbacks, props and the
// URL write, in a fixed order.
package transition

import (
	"log/slog"

	"github.com/riordanpawley/overlayctl/internal/domain"
)

// IDWriter is the part of the URL synchronizer the controller drives.
type IDWriter interface {
	WriteID(id string)
	ClearID()
}

// Controller orchestrates transitions. It is not safe for concurrent use.
type Controller struct {
	urls    IDWriter
	props   domain.Props
	onProps func(domain.Props)
	logger  *slog.Logger
}

// New creates a controller writing through urls. onProps, if not nil, is
// called synchronously whenever Open replaces the current props.
func New(urls IDWriter, onProps func(domain.Props), logger *slog.Logger) *Controller {
	if logger == nil {
		logger = slog.Default()
	}
	return &Controller{
		urls:    urls,
		onProps: onProps,
		logger:  logger,
	}
}

// Open stores data as the current props, then runs PreAction, writes id to
// the URL and runs PostAction. The id is not checked against the registry;
// unknown ids are handled when the selection is resolved.
func (c *Controller) Open(id string, cb domain.Callbacks, data domain.Props) {
	c.logger.Debug("open overlay", "id", id, "props", len(data))

	c.props = data
	if c.onProps != nil {
		c.onProps(data)
	}

	cb.Run(func() { c.urls.WriteID(id) })
}

// Close runs PreAction, removes the id from the URL and runs PostAction.
// The current props are left as they are until the next Open.
func (c *Controller) Close(cb domain.Callbacks) {
	c.logger.Debug("close overlay")
	cb.Run(c.urls.ClearID)
}

// CurrentProps returns the data passed to the most recent Open.
func (c *Controller) CurrentProps() domain.Props {
	return c.props
}
