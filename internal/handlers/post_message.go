package handlers

import (
	"encoding/json"
	"path/filepath"

	"github.com/relaykit/httpd/internal/httperr"
	"github.com/relaykit/httpd/internal/httpproto"
	"github.com/relaykit/httpd/internal/messagelog"
	"github.com/relaykit/httpd/internal/registry"
)

type postMessageBody struct {
	Content string `json:"content"`
}

// PostMessageHandler appends an authenticated user's message to the
// shared message log and persists it to messagesDir, per spec §4.7.
// Grounded on original_source/src/post_message_handler.cc.
type PostMessageHandler struct {
	log         *messagelog.Log
	messagesDir string
}

// NewPostMessageFactory builds the registry.Factory for PostMessageHandler,
// sharing log across every route that registers it (spec §4.4's
// "process-wide instance" for stateful stores). Callers are expected to
// wrap the returned handler in middleware.NewSessionHandler.
func NewPostMessageFactory(log *messagelog.Log) registry.Factory {
	return func(args []string) (registry.Handler, error) {
		dataPath, _ := argValue(args, "data_path")
		cfg := dataPathConfig{DataPath: dataPath}
		if err := validateConfig(cfg); err != nil {
			return nil, err
		}
		return &PostMessageHandler{log: log, messagesDir: filepath.Join(cfg.DataPath, "messages")}, nil
	}
}

func (h *PostMessageHandler) Handle(req *httpproto.Request) *httpproto.Response {
	if req.Method != "POST" {
		resp := httperr.MethodNotAllowed("POST").Response()
		resp.SetHeader("Allow", "POST")
		return resp
	}
	if !req.Session.IsAuthenticated() {
		return httperr.Unauthorized("User not authenticated").Response()
	}

	var body postMessageBody
	if err := json.Unmarshal(req.Body, &body); err != nil || body.Content == "" {
		return httperr.BadJSON("Expected JSON { \"content\": \"<message>\" }").Response()
	}

	h.log.Add(req.Session.UserID, body.Content)
	if err := h.log.PersistToDirectory(h.messagesDir); err != nil {
		return httperr.Internal("Failed to persist message").Response()
	}

	return httpproto.NewTextResponse(201, "Message stored\n")
}
