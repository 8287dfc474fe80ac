// Package server implements the per-connection session loop described in
// spec §4.9: accept a TCP connection, read a full request, dispatch it
// to a handler, serialize and write the response, then close the
// connection (no keep-alive, per spec's Non-goals). Grounded on the
// original implementation's server/session pair
// (original_source/include/server.h, original_source/include/session.h)
// translated from Boost.Asio's async accept loop plus a fixed
// boost::asio::thread_pool into a blocking Accept loop dispatched onto
// workerpool.Pool, and on the teacher's graceful-shutdown idiom
// (engine/infra/server/lifecycle.go) translated from net/http.Server
// shutdown to a raw net.Listener.
package server

import (
	"bytes"
	"fmt"
	"net"
	"os"
	"os/signal"
	"strconv"
	"sync"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/relaykit/httpd/internal/httperr"
	"github.com/relaykit/httpd/internal/httpproto"
	"github.com/relaykit/httpd/internal/router"
	"github.com/relaykit/httpd/internal/workerpool"
	"github.com/relaykit/httpd/pkg/logger"
)

// ReadTimeout bounds how long a connection may take to deliver a full
// request before the server gives up on it.
const ReadTimeout = 30 * time.Second

// Metrics are the server's Prometheus instrumentation, registered once
// per Server (spec's ambient observability concern; the spec's
// non-goals exclude a live /metrics endpoint, so these are exercised
// directly by tests and available to an embedder, not served over HTTP).
type Metrics struct {
	ConnectionsTotal prometheus.Counter
	RequestDuration  prometheus.Histogram
}

// NewMetrics registers and returns a fresh Metrics set against reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		ConnectionsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "httpd_connections_total",
			Help: "Total TCP connections accepted.",
		}),
		RequestDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name: "httpd_request_duration_seconds",
			Help: "Request handling latency in seconds.",
		}),
	}
	reg.MustRegister(m.ConnectionsTotal, m.RequestDuration)
	return m
}

// Server owns a listener, a routing dispatcher, and a worker pool that
// handles accepted connections concurrently.
type Server struct {
	listener net.Listener
	dispatch *router.Dispatcher
	pool     *workerpool.Pool
	log      logger.Logger
	metrics  *Metrics

	shutdownOnce sync.Once
	shutdownCh   chan struct{}
	wg           sync.WaitGroup
}

// New builds a Server bound to addr (":<port>"), dispatching accepted
// connections' requests through dispatch using a pool of poolSize
// workers.
func New(addr string, dispatch *router.Dispatcher, poolSize int, log logger.Logger, metrics *Metrics) (*Server, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("listen on %s: %w", addr, err)
	}
	return &Server{
		listener:   ln,
		dispatch:   dispatch,
		pool:       workerpool.New(poolSize),
		log:        log,
		metrics:    metrics,
		shutdownCh: make(chan struct{}),
	}, nil
}

// Addr returns the listener's bound address.
func (s *Server) Addr() net.Addr { return s.listener.Addr() }

// Run starts the worker pool and accepts connections until Shutdown is
// called or the listener errors. It also installs a SIGINT/SIGTERM
// handler so the process exits cleanly (code 0) on an interrupt, per
// spec §6.
func (s *Server) Run() error {
	s.pool.Start()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case <-sigCh:
			s.log.Info("received shutdown signal")
			s.Shutdown()
		case <-s.shutdownCh:
		}
	}()

	for {
		conn, err := s.listener.Accept()
		if err != nil {
			select {
			case <-s.shutdownCh:
				s.wg.Wait()
				s.pool.Stop()
				return nil
			default:
				return fmt.Errorf("accept: %w", err)
			}
		}
		if s.metrics != nil {
			s.metrics.ConnectionsTotal.Inc()
		}
		s.wg.Add(1)
		s.pool.Submit(func() {
			defer s.wg.Done()
			s.handleConnection(conn)
		})
	}
}

// Shutdown closes the listener, unblocking Run's Accept loop so it can
// drain in-flight connections and stop the pool. Safe to call multiple
// times or concurrently.
func (s *Server) Shutdown() {
	s.shutdownOnce.Do(func() {
		close(s.shutdownCh)
		s.listener.Close()
	})
}

func (s *Server) handleConnection(conn net.Conn) {
	defer conn.Close()
	start := time.Now()

	_ = conn.SetDeadline(time.Now().Add(ReadTimeout))
	raw, err := readRequest(conn)
	clientIP := "unknown"
	if addr, ok := conn.RemoteAddr().(*net.TCPAddr); ok {
		clientIP = addr.IP.String()
	}

	var resp *httpproto.Response
	if err != nil {
		resp = httperr.BadRequest(err.Error()).Response()
	} else {
		req, perr := httpproto.Parse(raw)
		if perr != nil {
			resp = httperr.BadRequest(perr.Error()).Response()
		} else {
			req.ClientIP = clientIP
			handler := s.dispatch.Match(req.Path)
			resp = handler.Handle(req)
		}
	}

	conn.Write(resp.Serialize())

	if s.metrics != nil {
		s.metrics.RequestDuration.Observe(time.Since(start).Seconds())
	}
	if s.log != nil {
		s.log.Debug("handled request", "client_ip", clientIP, "status", resp.StatusCode, "duration", time.Since(start).String())
	}
}

// readRequest reads from conn until it has the full request: headers
// terminated by "\r\n\r\n", plus a body of Content-Length bytes if
// present, capped at httpproto.MaxRequestSize (spec §4.9).
func readRequest(conn net.Conn) ([]byte, error) {
	buf := make([]byte, 0, 4096)
	chunk := make([]byte, 4096)
	headerEnd := -1
	for {
		n, err := conn.Read(chunk)
		if n > 0 {
			buf = append(buf, chunk[:n]...)
			if headerEnd < 0 {
				if idx := bytes.Index(buf, []byte("\r\n\r\n")); idx >= 0 {
					headerEnd = idx
				}
			}
			if headerEnd >= 0 {
				need := headerEnd + 4 + contentLength(buf[:headerEnd])
				if len(buf) >= need {
					return buf[:need], nil
				}
			}
			if len(buf) > httpproto.MaxRequestSize {
				return nil, fmt.Errorf("request exceeds maximum size")
			}
		}
		if err != nil {
			if headerEnd >= 0 {
				return buf, nil
			}
			return nil, fmt.Errorf("read request: %w", err)
		}
	}
}

func contentLength(head []byte) int {
	lines := bytes.Split(head, []byte("\r\n"))
	for _, line := range lines {
		parts := bytes.SplitN(line, []byte(":"), 2)
		if len(parts) != 2 {
			continue
		}
		if !bytes.EqualFold(bytes.TrimSpace(parts[0]), []byte("Content-Length")) {
			continue
		}
		n, err := strconv.Atoi(string(bytes.TrimSpace(parts[1])))
		if err != nil {
			return 0
		}
		return n
	}
	return 0
}
