// Package httpproto implements the wire-level HTTP/1.1 request and
// response types and the hand-written request parser described in
// spec §3 and §4.3. It deliberately does not use net/http's server: the
// spec requires a from-scratch parser and response serializer.
package httpproto

import "github.com/relaykit/httpd/internal/session"

// Header is an ordered, case-sensitive header list: the spec requires
// headers to be stored "as received" and allows repeated names (notably
// Set-Cookie), which a map cannot represent faithfully.
type Header struct {
	Name  string
	Value string
}

// Request is the parsed representation of an inbound HTTP/1.1 request, per
// spec §3 "HttpRequest".
type Request struct {
	Method  string
	Path    string
	Version string
	Headers []Header
	Body    []byte
	Raw     []byte

	// ClientIP is the remote endpoint's address, or "unknown" when it
	// could not be determined (spec §4.9).
	ClientIP string

	// Session is populated by the session middleware; it is the zero
	// value (unauthenticated) for requests that bypass the middleware.
	Session session.Context
}

// Header looks up the first header matching name case-sensitively, per
// spec §3 ("case-sensitive names as received"). Returns "" and false when
// absent.
func (r *Request) Header(name string) (string, bool) {
	for _, h := range r.Headers {
		if h.Name == name {
			return h.Value, true
		}
	}
	return "", false
}

// HeaderValues returns every header value matching name, in request order.
func (r *Request) HeaderValues(name string) []string {
	var values []string
	for _, h := range r.Headers {
		if h.Name == name {
			values = append(values, h.Value)
		}
	}
	return values
}

// WithSession returns a shallow copy of r with the session context
// replaced. The session middleware copies the request rather than
// mutating the caller's value, per spec §4.5 step 1.
func (r *Request) WithSession(sc session.Context) *Request {
	cp := *r
	cp.Session = sc
	return &cp
}
