package server

import (
	"bufio"
	"net"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/relaykit/httpd/internal/httpproto"
	"github.com/relaykit/httpd/internal/registry"
	"github.com/relaykit/httpd/internal/router"
	"github.com/relaykit/httpd/pkg/logger"
)

func echoUpperHandler() registry.Handler {
	return registry.HandlerFunc(func(req *httpproto.Request) *httpproto.Response {
		return httpproto.NewTextResponse(200, strings.ToUpper(string(req.Body)))
	})
}

func startTestServer(t *testing.T) *Server {
	t.Helper()
	dispatch := router.New([]router.Route{
		{Prefix: "/echo", Handler: echoUpperHandler()},
	}, registry.HandlerFunc(func(req *httpproto.Request) *httpproto.Response {
		return httpproto.NewEmptyResponse(404)
	}))
	srv, err := New("127.0.0.1:0", dispatch, 2, logger.NewLogger(logger.TestConfig()), NewMetrics(prometheus.NewRegistry()))
	require.NoError(t, err)
	go srv.Run()
	t.Cleanup(srv.Shutdown)
	return srv
}

func TestServer_HandlesRequest(t *testing.T) {
	t.Run("Should read, dispatch, and respond to a request then close the connection", func(t *testing.T) {
		srv := startTestServer(t)

		conn, err := net.Dial("tcp", srv.Addr().String())
		require.NoError(t, err)
		defer conn.Close()

		body := "hello"
		req := "POST /echo HTTP/1.1\r\nContent-Length: " + itoa(len(body)) + "\r\n\r\n" + body
		_, err = conn.Write([]byte(req))
		require.NoError(t, err)

		conn.SetReadDeadline(time.Now().Add(2 * time.Second))
		reader := bufio.NewReader(conn)
		statusLine, err := reader.ReadString('\n')
		require.NoError(t, err)
		assert.Contains(t, statusLine, "200")
	})

	t.Run("Should 404 for an unmatched path", func(t *testing.T) {
		srv := startTestServer(t)

		conn, err := net.Dial("tcp", srv.Addr().String())
		require.NoError(t, err)
		defer conn.Close()

		_, err = conn.Write([]byte("GET /nope HTTP/1.1\r\n\r\n"))
		require.NoError(t, err)

		conn.SetReadDeadline(time.Now().Add(2 * time.Second))
		reader := bufio.NewReader(conn)
		statusLine, err := reader.ReadString('\n')
		require.NoError(t, err)
		assert.Contains(t, statusLine, "404")
	})
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	digits := []byte{}
	for n > 0 {
		digits = append([]byte{byte('0' + n%10)}, digits...)
		n /= 10
	}
	return string(digits)
}
