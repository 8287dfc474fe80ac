package handlers

import (
	"github.com/relaykit/httpd/internal/httpproto"
	"github.com/relaykit/httpd/internal/registry"
)

// NotFoundHandler always answers 404, used as the dispatcher's default
// when no route prefix matches (spec §4.2, §4.6). Grounded on
// original_source/src/not_found_handler.cc.
type NotFoundHandler struct{}

// NewNotFoundFactory builds the registry.Factory for NotFoundHandler.
func NewNotFoundFactory() registry.Factory {
	return func(args []string) (registry.Handler, error) {
		return &NotFoundHandler{}, nil
	}
}

func (h *NotFoundHandler) Handle(req *httpproto.Request) *httpproto.Response {
	return httpproto.NewEmptyResponse(404)
}
