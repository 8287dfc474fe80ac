// Package middleware implements the session middleware described in
// spec §4.5, grounded on the original implementation's
// SessionMiddlewareHandler (original_source/src/session_middleware_handler.cc):
// it clears and repopulates the request's session context from a token
// extracted out of the Cookie or Authorization header, delegates to the
// inner handler, then issues or clears the session cookie around
// /login and /logout responses.
package middleware

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/relaykit/httpd/internal/httpproto"
	"github.com/relaykit/httpd/internal/registry"
	"github.com/relaykit/httpd/internal/session"
)

var sessionCookieRegexp = regexp.MustCompile(`session=([^;]+)`)

// SessionHandler wraps next with session context population and
// login/logout cookie management, per spec §4.5.
type SessionHandler struct {
	next  registry.Handler
	store *session.Store
}

// NewSessionHandler returns a SessionHandler backed by store, wrapping next.
func NewSessionHandler(next registry.Handler, store *session.Store) *SessionHandler {
	return &SessionHandler{next: next, store: store}
}

// Handle clears req's session context, repopulates it from any valid
// session token found on req, invokes next, then manages the session
// cookie for /login and /logout responses.
func (m *SessionHandler) Handle(req *httpproto.Request) *httpproto.Response {
	modified := req.WithSession(session.Context{})
	token, hasToken := extractSessionToken(req)

	if hasToken {
		if rec, ok := m.store.GetSession(token); ok {
			modified.Session = session.Context{
				Token:  token,
				UserID: rec.UserID,
				Data:   rec.Data,
			}
		}
	}

	resp := m.next.Handle(modified)
	if resp == nil {
		return resp
	}

	switch {
	case req.Path == "/login" && resp.StatusCode == 200:
		userID := string(resp.Body)
		newToken, err := m.store.CreateSession(userID)
		if err == nil {
			resp.SetHeader("Set-Cookie", fmt.Sprintf("session=%s; HttpOnly; Path=/;", newToken))
		}
	case req.Path == "/logout" && hasToken:
		m.store.InvalidateSession(token)
		resp.SetHeader("Set-Cookie", "session=; HttpOnly; Path=/; Max-Age=0")
	}

	return resp
}

// extractSessionToken pulls a session token out of req's Cookie header
// first, falling back to a Bearer Authorization header, per spec §4.5.
func extractSessionToken(req *httpproto.Request) (string, bool) {
	if cookie, ok := req.Header("Cookie"); ok {
		if m := sessionCookieRegexp.FindStringSubmatch(cookie); m != nil {
			return m[1], true
		}
	}
	if auth, ok := req.Header("Authorization"); ok {
		if strings.HasPrefix(auth, "Bearer ") {
			return strings.TrimPrefix(auth, "Bearer "), true
		}
	}
	return "", false
}
