package handlers

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"
	"sync"

	"github.com/relaykit/httpd/internal/blobstore"
	"github.com/relaykit/httpd/internal/httpproto"
	"github.com/relaykit/httpd/internal/registry"
)

var apiPathRegexp = regexp.MustCompile(`^/([^/]+)(?:/(\d+))?$`)

// ApiHandler implements the generic entity CRUD API described in spec
// §4.8: POST creates, GET retrieves-or-lists, PUT updates, DELETE
// removes, all backed by a blobstore.Store. A handler-local mutex
// serializes every operation, per spec §5. Grounded on
// original_source/src/api_handler.cc.
type ApiHandler struct {
	mu    sync.Mutex
	mount string
	store blobstore.Store
}

// NewApiFactory builds the registry.Factory for ApiHandler. The route's
// "data_path" config arg names the directory the blob store is rooted at.
func NewApiFactory() registry.Factory {
	return func(args []string) (registry.Handler, error) {
		mount, err := routePrefix(args)
		if err != nil {
			return nil, err
		}
		dataPath, _ := argValue(args, "data_path")
		cfg := dataPathConfig{DataPath: dataPath}
		if err := validateConfig(cfg); err != nil {
			return nil, err
		}
		return &ApiHandler{mount: mount, store: blobstore.NewDiskStore(cfg.DataPath)}, nil
	}
}

// parsePath strips h.mount from p and extracts the entity name and
// optional numeric id, matching original_source's `^/([^/]+)(?:/(\d+))?$`.
func (h *ApiHandler) parsePath(p string) (entity string, id int, hasID bool, ok bool) {
	if !strings.HasPrefix(p, h.mount) {
		return "", 0, false, false
	}
	rest := strings.TrimPrefix(p, h.mount)
	m := apiPathRegexp.FindStringSubmatch(rest)
	if m == nil {
		return "", 0, false, false
	}
	entity = m[1]
	if m[2] != "" {
		n, err := strconv.Atoi(m[2])
		if err != nil {
			return "", 0, false, false
		}
		return entity, n, true, true
	}
	return entity, 0, false, true
}

func jsonErr(status int, message string) *httpproto.Response {
	body, _ := json.Marshal(map[string]string{"error": message})
	return httpproto.NewJSONResponse(status, body)
}

func (h *ApiHandler) Handle(req *httpproto.Request) *httpproto.Response {
	entity, id, hasID, ok := h.parsePath(req.Path)
	if !ok {
		return httpproto.NewEmptyResponse(404)
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	switch {
	case req.Method == "POST" && !hasID:
		return h.create(entity, req.Body)
	case req.Method == "GET" && hasID:
		return h.retrieve(entity, id)
	case req.Method == "GET" && !hasID:
		return h.list(entity)
	case req.Method == "PUT" && hasID:
		return h.update(entity, id, req.Body)
	case req.Method == "DELETE" && hasID:
		return h.delete(entity, id)
	default:
		return httpproto.NewEmptyResponse(400)
	}
}

func (h *ApiHandler) create(entity string, body []byte) *httpproto.Response {
	newID, err := h.store.NextID(entity)
	if err != nil {
		return httpproto.NewEmptyResponse(500)
	}
	if err := h.store.Write(entity, newID, body); err != nil {
		return httpproto.NewEmptyResponse(500)
	}
	respBody, _ := json.Marshal(map[string]int{"id": newID})
	return httpproto.NewJSONResponse(201, respBody)
}

func (h *ApiHandler) retrieve(entity string, id int) *httpproto.Response {
	data, ok, err := h.store.Read(entity, id)
	if err != nil {
		return httpproto.NewEmptyResponse(500)
	}
	if !ok {
		return httpproto.NewEmptyResponse(404)
	}
	return httpproto.NewJSONResponse(200, data)
}

func (h *ApiHandler) list(entity string) *httpproto.Response {
	ids, ok, err := h.store.List(entity)
	if err != nil {
		return httpproto.NewEmptyResponse(500)
	}
	if !ok {
		return httpproto.NewEmptyResponse(404)
	}
	body, _ := json.Marshal(map[string][]int{"id": ids})
	return httpproto.NewJSONResponse(200, body)
}

func (h *ApiHandler) update(entity string, id int, body []byte) *httpproto.Response {
	if !json.Valid(body) {
		return jsonErr(400, "Invalid JSON format")
	}
	if err := h.store.Write(entity, id, body); err != nil {
		return jsonErr(500, "Failed to write data")
	}
	respBody, _ := json.Marshal(map[string]any{"success": true, "id": id})
	return httpproto.NewJSONResponse(200, respBody)
}

func (h *ApiHandler) delete(entity string, id int) *httpproto.Response {
	_, found, err := h.store.Read(entity, id)
	if err != nil {
		return httpproto.NewEmptyResponse(500)
	}
	if !found {
		return jsonErr(404, "Entity not found")
	}
	ok, err := h.store.Remove(entity, id)
	if err != nil || !ok {
		return jsonErr(500, "Failed to delete entity")
	}
	respBody, _ := json.Marshal(map[string]bool{"success": true})
	return httpproto.NewJSONResponse(200, respBody)
}
