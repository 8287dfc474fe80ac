package handlers

import (
	"github.com/relaykit/httpd/internal/httpproto"
	"github.com/relaykit/httpd/internal/registry"
)

// LogoutHandler always answers 200 with a Set-Cookie that expires the
// session cookie; the session middleware wrapping it notices the /logout
// path and invalidates the caller's session when the request carried a
// token, per spec §4.5/§4.7. Grounded on
// original_source/src/logout_handler.cc.
type LogoutHandler struct{}

// NewLogoutFactory builds the registry.Factory for LogoutHandler. Callers
// are expected to wrap the returned handler in
// middleware.NewSessionHandler.
func NewLogoutFactory() registry.Factory {
	return func(args []string) (registry.Handler, error) {
		return &LogoutHandler{}, nil
	}
}

func (h *LogoutHandler) Handle(req *httpproto.Request) *httpproto.Response {
	resp := httpproto.NewTextResponse(200, "Logged out successfully")
	resp.SetHeader("Set-Cookie", "session=; HttpOnly; Path=/; Max-Age=0")
	return resp
}
