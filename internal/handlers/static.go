package handlers

import (
	"os"
	"path"
	"strings"

	"github.com/relaykit/httpd/internal/httpproto"
	"github.com/relaykit/httpd/internal/registry"
)

var staticMimeTypes = map[string]string{
	".html": "text/html",
	".txt":  "text/plain",
	".jpg":  "image/jpeg",
	".zip":  "application/zip",
	".png":  "image/png",
	".css":  "text/css",
	".js":   "application/javascript",
	".json": "application/json",
}

// StaticHandler serves files out of a configured root directory, replacing
// the matched route prefix with the root, per spec §4.6. Grounded on
// original_source/src/static_handler.cc.
type StaticHandler struct {
	prefix  string
	rootDir string
}

// NewStaticFactory builds the registry.Factory for StaticHandler. The
// route's "root" config arg is required.
func NewStaticFactory() registry.Factory {
	return func(args []string) (registry.Handler, error) {
		prefix, err := routePrefix(args)
		if err != nil {
			return nil, err
		}
		root, _ := argValue(args, "root")
		cfg := staticConfig{Root: root}
		if err := validateConfig(cfg); err != nil {
			return nil, err
		}
		return &StaticHandler{prefix: prefix, rootDir: cfg.Root}, nil
	}
}

func (h *StaticHandler) Handle(req *httpproto.Request) *httpproto.Response {
	if req.Method != "GET" {
		return httpproto.NewEmptyResponse(400)
	}

	rest := strings.TrimPrefix(req.Path, h.prefix)
	ext := path.Ext(rest)
	mimeType, known := staticMimeTypes[ext]
	if !known {
		return httpproto.NewEmptyResponse(404)
	}

	filePath := path.Join(h.rootDir, rest)
	data, err := os.ReadFile(filePath)
	if err != nil {
		return httpproto.NewEmptyResponse(404)
	}
	return httpproto.NewResponse(200, mimeType, data)
}
