package handlers

import (
	"encoding/json"
	"path/filepath"

	"github.com/relaykit/httpd/internal/httperr"
	"github.com/relaykit/httpd/internal/httpproto"
	"github.com/relaykit/httpd/internal/messagelog"
	"github.com/relaykit/httpd/internal/registry"
)

// GetMessagesHandler returns every persisted message under its configured
// directory as a JSON array, sorted by timestamp, per spec §4.7. Grounded
// on original_source/src/get_messages_handler.cc.
type GetMessagesHandler struct {
	prefix      string
	messagesDir string
}

// NewGetMessagesFactory builds the registry.Factory for
// GetMessagesHandler. Callers are expected to wrap the returned handler
// in middleware.NewSessionHandler.
func NewGetMessagesFactory() registry.Factory {
	return func(args []string) (registry.Handler, error) {
		prefix, err := routePrefix(args)
		if err != nil {
			return nil, err
		}
		dataPath, _ := argValue(args, "data_path")
		cfg := dataPathConfig{DataPath: dataPath}
		if err := validateConfig(cfg); err != nil {
			return nil, err
		}
		return &GetMessagesHandler{prefix: prefix, messagesDir: filepath.Join(cfg.DataPath, "messages")}, nil
	}
}

func (h *GetMessagesHandler) Handle(req *httpproto.Request) *httpproto.Response {
	if req.Method != "GET" {
		resp := httperr.MethodNotAllowed("GET").Response()
		resp.SetHeader("Allow", "GET")
		return resp
	}
	if req.Path != h.prefix {
		return httperr.NotFound("No such route").Response()
	}

	messages, err := messagelog.Enumerate(h.messagesDir)
	if err != nil {
		return httperr.Internal("Failed to read messages").Response()
	}
	if messages == nil {
		messages = []messagelog.Message{}
	}

	body, err := json.Marshal(messages)
	if err != nil {
		return httperr.Internal("Failed to encode messages").Response()
	}
	return httpproto.NewJSONResponse(200, body)
}
