// Package httperr maps the error taxonomy of spec §7 onto concrete HTTP
// status codes and response bodies, mirroring the
// SendXError/ErrorResponse helpers the teacher attaches to its web
// framework, adapted to this project's own httpproto.Response builder
// instead of *gin.Context.
package httperr

import "github.com/relaykit/httpd/internal/httpproto"

// Kind names one of the error categories from spec §7, for logging and
// tests; it carries no behavior beyond identification.
type Kind string

const (
	KindConfigParse       Kind = "config_parse"
	KindConfigSemantic    Kind = "config_semantic"
	KindRequestParse      Kind = "request_parse"
	KindRouteMiss         Kind = "route_miss"
	KindMethodNotAllowed  Kind = "method_not_allowed"
	KindBadJSON           Kind = "bad_json"
	KindNotAuthenticated  Kind = "not_authenticated"
	KindNotFoundEntity    Kind = "not_found_entity"
	KindStorageFailure    Kind = "storage_failure"
	KindInternalConfig    Kind = "internal_config"
)

// Error pairs a Kind with an HTTP status and a client-safe message. It
// implements the standard error interface so handlers can return it
// directly from functions that also need plain Go error handling.
type Error struct {
	Kind    Kind
	Status  int
	Message string
}

func (e *Error) Error() string { return e.Message }

func newErr(kind Kind, status int, message string) *Error {
	return &Error{Kind: kind, Status: status, Message: message}
}

func BadRequest(message string) *Error {
	return newErr(KindRequestParse, 400, message)
}

func BadJSON(message string) *Error {
	return newErr(KindBadJSON, 400, message)
}

func Unauthorized(message string) *Error {
	return newErr(KindNotAuthenticated, 401, message)
}

func NotFound(message string) *Error {
	return newErr(KindNotFoundEntity, 404, message)
}

func MethodNotAllowed(allow string) *Error {
	e := newErr(KindMethodNotAllowed, 405, "Method Not Allowed")
	e.Message = allow // carries the Allow header value; see Response below
	return e
}

func Internal(message string) *Error {
	return newErr(KindStorageFailure, 500, message)
}

// Response renders e as a plain-text HttpResponse. MethodNotAllowed errors
// additionally need an Allow header, which callers attach themselves since
// Error has no headers map of its own.
func (e *Error) Response() *httpproto.Response {
	body := e.Message
	if e.Kind == KindMethodNotAllowed {
		body = "Method Not Allowed"
	}
	return httpproto.NewTextResponse(e.Status, body)
}
