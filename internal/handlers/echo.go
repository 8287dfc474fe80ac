package handlers

import (
	"github.com/relaykit/httpd/internal/httpproto"
	"github.com/relaykit/httpd/internal/registry"
)

// EchoHandler returns the raw bytes of a GET request as the response
// body, per spec §4.6. Grounded on
// original_source/src/echo_handler.cc.
type EchoHandler struct{}

// NewEchoFactory builds the registry.Factory for EchoHandler.
func NewEchoFactory() registry.Factory {
	return func(args []string) (registry.Handler, error) {
		if _, err := routePrefix(args); err != nil {
			return nil, err
		}
		return &EchoHandler{}, nil
	}
}

func (h *EchoHandler) Handle(req *httpproto.Request) *httpproto.Response {
	if req.Method != "GET" {
		return httpproto.NewEmptyResponse(400)
	}
	return httpproto.NewResponse(200, "text/plain", req.Raw)
}
