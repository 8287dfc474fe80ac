package handlers

import (
	"github.com/relaykit/httpd/internal/httpproto"
	"github.com/relaykit/httpd/internal/registry"
)

// HealthHandler answers GET on its own mounted prefix with 200 "OK", and
// 404 for anything else under that prefix, per spec §4.6. Grounded on
// original_source/src/health_handler.cc.
type HealthHandler struct {
	prefix string
}

// NewHealthFactory builds the registry.Factory for HealthHandler.
func NewHealthFactory() registry.Factory {
	return func(args []string) (registry.Handler, error) {
		prefix, err := routePrefix(args)
		if err != nil {
			return nil, err
		}
		return &HealthHandler{prefix: prefix}, nil
	}
}

func (h *HealthHandler) Handle(req *httpproto.Request) *httpproto.Response {
	if req.Method == "" {
		return httpproto.NewTextResponse(400, "Bad Request")
	}
	if req.Method == "GET" && req.Path == h.prefix {
		return httpproto.NewTextResponse(200, "OK")
	}
	return httpproto.NewTextResponse(404, "Not Found")
}
