// Package registry implements the handler name-to-factory table described
// in spec §4.2: handlers register a constructor under a name, and routes
// name a handler by that string rather than referencing a Go type
// directly. This mirrors the original implementation's HandlerRegistry
// (original_source/include/handler_registry.h), translated from a C++
// singleton into an explicit, dependency-injected Go type.
package registry

import (
	"sync"

	"github.com/relaykit/httpd/internal/httpproto"
)

// Handler serves one HTTP request within a session's context.
type Handler interface {
	Handle(req *httpproto.Request) *httpproto.Response
}

// HandlerFunc adapts a plain function to the Handler interface.
type HandlerFunc func(req *httpproto.Request) *httpproto.Response

func (f HandlerFunc) Handle(req *httpproto.Request) *httpproto.Response { return f(req) }

// Factory builds a Handler from a route's flattened config args
// (spec §4.1's `location <prefix> <name> { <kv>* }` block).
type Factory func(args []string) (Handler, error)

// Registry maps handler names to factories. A later Register call for the
// same name overwrites the earlier one (spec §4.2), matching map-assignment
// semantics in the original's `registry[name] = factory`.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

// New returns an empty Registry.
func New() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// Register installs factory under name, overwriting any prior factory
// registered under the same name.
func (r *Registry) Register(name string, factory Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[name] = factory
}

// Create invokes the factory registered under name with args. It reports
// ok=false if name is not registered (spec §4.2: "unknown names produce
// no handler").
func (r *Registry) Create(name string, args []string) (handler Handler, ok bool, err error) {
	r.mu.RLock()
	factory, found := r.factories[name]
	r.mu.RUnlock()
	if !found {
		return nil, false, nil
	}
	h, err := factory(args)
	if err != nil {
		return nil, true, err
	}
	return h, true, nil
}

// Names returns the currently registered handler names.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	return names
}
