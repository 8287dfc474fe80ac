package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/relaykit/httpd/internal/httpproto"
	"github.com/relaykit/httpd/internal/messagelog"
	"github.com/relaykit/httpd/internal/registry"
	"github.com/relaykit/httpd/internal/session"
)

func TestRegisterAll(t *testing.T) {
	t.Run("Should register every built-in handler name", func(t *testing.T) {
		reg := registry.New()
		RegisterAll(reg, session.NewStore(), messagelog.NewLog())

		for _, name := range []string{
			NameEcho, NameStatic, NameNotFound, NameHealth, NameRegister,
			NameLogin, NameLogout, NamePostMessage, NameGetMessages, NameApi, NameSleep,
		} {
			assert.Contains(t, reg.Names(), name)
		}
	})

	t.Run("Should wrap login in session middleware so a 200 issues a cookie", func(t *testing.T) {
		reg := registry.New()
		store := session.NewStore()
		RegisterAll(reg, store, messagelog.NewLog())

		dataPath := t.TempDir()
		registerHandler, ok, err := reg.Create(NameRegister, []string{"/register", "data_path", dataPath})
		require.NoError(t, err)
		require.True(t, ok)
		registerHandler.Handle(&httpproto.Request{Method: "POST", Body: []byte(`{"username":"alice","password":"x"}`)})

		loginHandler, ok, err := reg.Create(NameLogin, []string{"/login", "data_path", dataPath})
		require.NoError(t, err)
		require.True(t, ok)

		resp := loginHandler.Handle(&httpproto.Request{Path: "/login", Method: "POST", Body: []byte(`{"username":"alice","password":"x"}`)})

		cookie, ok := resp.HeaderValue("Set-Cookie")
		require.True(t, ok)
		assert.Contains(t, cookie, "session=")
	})
}
