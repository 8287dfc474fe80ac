package httpproto

import (
	"bytes"
	"fmt"
	"sort"
	"strconv"
)

// Response is the handler-produced representation of an outbound
// HTTP/1.1 response, per spec §3 "HttpResponse". Headers are
// order-insensitive except that multiple Set-Cookie values MUST remain
// separate entries (spec §3 invariant), so Response stores them as an
// ordered slice rather than a map.
type Response struct {
	StatusCode int
	Headers    []Header
	Body       []byte
}

var statusText = map[int]string{
	200: "OK",
	201: "Created",
	400: "Bad Request",
	401: "Unauthorized",
	403: "Forbidden",
	404: "Not Found",
	405: "Method Not Allowed",
	500: "Internal Server Error",
}

// ReasonPhrase returns the reason phrase for code, or "Unknown" if code is
// not one this server produces.
func ReasonPhrase(code int) string {
	if s, ok := statusText[code]; ok {
		return s
	}
	return "Unknown"
}

// NewResponse builds a Response with the given status and body, setting
// Content-Type and Content-Length per the invariant in spec §3 ("when
// body is non-empty the handler SHOULD set Content-Type and MUST set
// Content-Length").
func NewResponse(status int, contentType string, body []byte) *Response {
	r := &Response{StatusCode: status, Body: body}
	if len(body) > 0 {
		if contentType != "" {
			r.SetHeader("Content-Type", contentType)
		}
		r.SetHeader("Content-Length", strconv.Itoa(len(body)))
	}
	return r
}

// NewTextResponse is a convenience constructor for text/plain bodies.
func NewTextResponse(status int, body string) *Response {
	return NewResponse(status, "text/plain", []byte(body))
}

// NewJSONResponse is a convenience constructor for application/json bodies.
func NewJSONResponse(status int, body []byte) *Response {
	return NewResponse(status, "application/json", body)
}

// NewEmptyResponse builds a response with no body and no Content-Length,
// for e.g. 404s that carry no payload.
func NewEmptyResponse(status int) *Response {
	return &Response{StatusCode: status}
}

// SetHeader replaces every existing header named name with a single entry.
// Use AddHeader to append a repeated header (e.g. Set-Cookie).
func (r *Response) SetHeader(name, value string) {
	out := r.Headers[:0]
	for _, h := range r.Headers {
		if h.Name != name {
			out = append(out, h)
		}
	}
	r.Headers = append(out, Header{Name: name, Value: value})
}

// AddHeader appends a header entry without removing existing ones with the
// same name.
func (r *Response) AddHeader(name, value string) {
	r.Headers = append(r.Headers, Header{Name: name, Value: value})
}

// HeaderValue returns the first value for name, case-sensitive, matching
// how this server stores them.
func (r *Response) HeaderValue(name string) (string, bool) {
	for _, h := range r.Headers {
		if h.Name == name {
			return h.Value, true
		}
	}
	return "", false
}

// Serialize frames r as "HTTP/1.1 <code> <reason>\r\n<headers>\r\n\r\n<body>",
// per spec §4.9 step 5. Headers are written in insertion order; callers
// that need deterministic snapshots for tests should sort beforehand.
func (r *Response) Serialize() []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "HTTP/1.1 %d %s\r\n", r.StatusCode, ReasonPhrase(r.StatusCode))
	for _, h := range r.Headers {
		fmt.Fprintf(&buf, "%s: %s\r\n", h.Name, h.Value)
	}
	buf.WriteString("\r\n")
	buf.Write(r.Body)
	return buf.Bytes()
}

// SortedHeaderNames returns the distinct header names present, sorted;
// used only by tests that want a stable traversal order.
func (r *Response) SortedHeaderNames() []string {
	seen := map[string]bool{}
	var names []string
	for _, h := range r.Headers {
		if !seen[h.Name] {
			seen[h.Name] = true
			names = append(names, h.Name)
		}
	}
	sort.Strings(names)
	return names
}
