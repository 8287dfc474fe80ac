package handlers

import (
	"encoding/json"
	"path/filepath"

	"github.com/relaykit/httpd/internal/httperr"
	"github.com/relaykit/httpd/internal/httpproto"
	"github.com/relaykit/httpd/internal/registry"
	"github.com/relaykit/httpd/internal/userstore"
)

// LoginHandler verifies credentials against the user store and, on
// success, echoes the username back in the body so the wrapping session
// middleware can create a session for it (spec §4.7, §4.5). Grounded on
// original_source/src/login_handler.cc.
type LoginHandler struct {
	store *userstore.Store
}

// NewLoginFactory builds the registry.Factory for LoginHandler. Like
// RegisterHandler, it reads users.json from the route's "data_path" arg.
// Callers are expected to wrap the returned handler in
// middleware.NewSessionHandler, per spec §4.5.
func NewLoginFactory() registry.Factory {
	return func(args []string) (registry.Handler, error) {
		dataPath, _ := argValue(args, "data_path")
		cfg := dataPathConfig{DataPath: dataPath}
		if err := validateConfig(cfg); err != nil {
			return nil, err
		}
		return &LoginHandler{store: userstore.New(filepath.Join(cfg.DataPath, "users.json"))}, nil
	}
}

func (h *LoginHandler) Handle(req *httpproto.Request) *httpproto.Response {
	if req.Method != "POST" {
		resp := httperr.MethodNotAllowed("POST").Response()
		resp.SetHeader("Allow", "POST")
		return resp
	}

	var creds credentials
	if err := json.Unmarshal(req.Body, &creds); err != nil || creds.Username == "" {
		return httperr.BadJSON("Invalid request format").Response()
	}

	ok, err := h.store.Verify(creds.Username, creds.Password)
	if err != nil {
		return httperr.Internal("Internal server error").Response()
	}
	if !ok {
		return httperr.Unauthorized("Invalid credentials").Response()
	}

	// Body carries the user id; the session middleware turns a 200 on
	// /login into a fresh session keyed by this value.
	return httpproto.NewTextResponse(200, creds.Username)
}
