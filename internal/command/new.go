package command

import (
	"sort"
	"time"

	pkgLog "command-bridge/pkg/log"
)

// Dispatcher maps command names to handlers.
type Dispatcher struct {
	handlers map[string]Handler
	l        pkgLog.Logger
	now      func() time.Time
}

// New creates a dispatcher with the given handlers registered.
func New(l pkgLog.Logger, handlers ...Handler) *Dispatcher {
	d := &Dispatcher{
		handlers: make(map[string]Handler, len(handlers)),
		l:        l,
		now:      time.Now,
	}
	for _, h := range handlers {
		d.Register(h)
	}
	return d
}

// Register adds a handler, replacing any handler with the same name.
func (d *Dispatcher) Register(h Handler) {
	d.handlers[h.Name()] = h
}

// Get retrieves a handler by name.
func (d *Dispatcher) Get(name string) (Handler, bool) {
	h, ok := d.handlers[name]
	return h, ok
}

// Names lists registered command names in sorted order.
func (d *Dispatcher) Names() []string {
	names := make([]string, 0, len(d.handlers))
	for name := range d.handlers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
