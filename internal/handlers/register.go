package handlers

import (
	"encoding/json"
	"path/filepath"

	"github.com/relaykit/httpd/internal/httperr"
	"github.com/relaykit/httpd/internal/httpproto"
	"github.com/relaykit/httpd/internal/registry"
	"github.com/relaykit/httpd/internal/userstore"
)

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// RegisterHandler creates a new account in the user store, per spec §4.7.
// Grounded on original_source/src/register_handler.cc.
type RegisterHandler struct {
	store *userstore.Store
}

// NewRegisterFactory builds the registry.Factory for RegisterHandler. The
// route's "data_path" config arg names the directory users.json lives in.
func NewRegisterFactory() registry.Factory {
	return func(args []string) (registry.Handler, error) {
		dataPath, _ := argValue(args, "data_path")
		cfg := dataPathConfig{DataPath: dataPath}
		if err := validateConfig(cfg); err != nil {
			return nil, err
		}
		return &RegisterHandler{store: userstore.New(filepath.Join(cfg.DataPath, "users.json"))}, nil
	}
}

func (h *RegisterHandler) Handle(req *httpproto.Request) *httpproto.Response {
	if req.Method != "POST" {
		resp := httperr.MethodNotAllowed("POST").Response()
		resp.SetHeader("Allow", "POST")
		return resp
	}

	var creds credentials
	if err := json.Unmarshal(req.Body, &creds); err != nil || creds.Username == "" || creds.Password == "" {
		return httperr.BadJSON("Invalid request format").Response()
	}

	exists, err := h.store.Exists(creds.Username)
	if err != nil {
		return httperr.Internal("Internal server error").Response()
	}
	if exists {
		return httperr.BadRequest("Username already exists").Response()
	}

	if err := h.store.Register(creds.Username, creds.Password); err != nil {
		return httperr.Internal("Internal server error").Response()
	}
	return httpproto.NewTextResponse(200, "Registration successful")
}
