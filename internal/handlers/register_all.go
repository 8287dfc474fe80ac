package handlers

import (
	"github.com/relaykit/httpd/internal/messagelog"
	"github.com/relaykit/httpd/internal/middleware"
	"github.com/relaykit/httpd/internal/registry"
	"github.com/relaykit/httpd/internal/session"
)

// Names are the handler names routes reference in config (spec §4.1's
// `location <prefix> <name> { ... }`), matching the original
// implementation's kName constants.
const (
	NameEcho        = "EchoHandler"
	NameStatic      = "StaticHandler"
	NameNotFound    = "NotFoundHandler"
	NameHealth      = "HealthHandler"
	NameRegister    = "RegisterHandler"
	NameLogin       = "LoginHandler"
	NameLogout      = "LogoutHandler"
	NamePostMessage = "PostMessageHandler"
	NameGetMessages = "GetMessagesHandler"
	NameApi         = "ApiHandler"
	NameSleep       = "SleepHandler"
)

// withSession wraps factory's built handler with the session middleware,
// matching how the original registers LoginHandler, LogoutHandler,
// PostMessageHandler, and GetMessagesHandler inside a
// SessionMiddlewareHandler (spec §4.5, §4.7).
func withSession(factory registry.Factory, store *session.Store) registry.Factory {
	return func(args []string) (registry.Handler, error) {
		inner, err := factory(args)
		if err != nil {
			return nil, err
		}
		return middleware.NewSessionHandler(inner, store), nil
	}
}

// RegisterAll installs every built-in handler factory into reg, wiring
// the session-aware handlers (login, logout, post_message, get_messages)
// through store and the message handlers through log, per spec §4.2's
// "plugin registry" design (spec §9).
func RegisterAll(reg *registry.Registry, store *session.Store, log *messagelog.Log) {
	reg.Register(NameEcho, NewEchoFactory())
	reg.Register(NameStatic, NewStaticFactory())
	reg.Register(NameNotFound, NewNotFoundFactory())
	reg.Register(NameHealth, NewHealthFactory())
	reg.Register(NameRegister, NewRegisterFactory())
	reg.Register(NameLogin, withSession(NewLoginFactory(), store))
	reg.Register(NameLogout, withSession(NewLogoutFactory(), store))
	reg.Register(NamePostMessage, withSession(NewPostMessageFactory(log), store))
	reg.Register(NameGetMessages, withSession(NewGetMessagesFactory(), store))
	reg.Register(NameApi, NewApiFactory())
	reg.Register(NameSleep, NewSleepFactory())
}
