// Package router implements the longest-prefix-match dispatcher described
// in spec §4.2 and exercised by testable-property 1 in spec §8. It is
// grounded on the original implementation's Dispatcher
// (original_source/src/dispatcher.cc), which scans every registered
// route and keeps the one whose prefix is both a match and the longest,
// translated here into a Go type instead of a package-level singleton.
package router

import (
	"strings"

	"github.com/relaykit/httpd/internal/registry"
)

// Route binds a URL path prefix to a built Handler.
type Route struct {
	Prefix  string
	Handler registry.Handler
}

// Dispatcher holds the routing table built from the parsed config and
// resolves a request path to a handler by longest-prefix match.
type Dispatcher struct {
	routes   []Route
	notFound registry.Handler
}

// New builds a Dispatcher from routes, using notFound whenever no route's
// prefix matches the requested path (spec §4.2's "not_found" default).
func New(routes []Route, notFound registry.Handler) *Dispatcher {
	return &Dispatcher{routes: routes, notFound: notFound}
}

// Match returns the handler whose Prefix is the longest prefix of path
// among all routes whose Prefix is a prefix of path. Ties are broken in
// favor of the first route at the longest matching length, matching the
// table's declaration order. If no route matches, it returns the
// configured not-found handler.
func (d *Dispatcher) Match(path string) registry.Handler {
	var best *Route
	for i := range d.routes {
		r := &d.routes[i]
		if !strings.HasPrefix(path, r.Prefix) {
			continue
		}
		if best == nil || len(r.Prefix) > len(best.Prefix) {
			best = r
		}
	}
	if best == nil {
		return d.notFound
	}
	return best.Handler
}
