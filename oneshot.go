package oneshot

import (
	"errors"
	"fmt"
	"net"
	stdhttp "net/http"
	"sync/atomic"

	"github.com/indigo-web/oneshot/config"
	"github.com/indigo-web/oneshot/internal/metrics"
	"github.com/indigo-web/oneshot/internal/server/http"
	"github.com/indigo-web/oneshot/internal/server/tcp"
	"github.com/indigo-web/oneshot/router"
	"github.com/indigo-web/oneshot/router/fileaccess"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog"
)

// ErrShutdown is returned by Serve after the App was stopped.
var ErrShutdown = tcp.ErrShutdown

// App serves one request per connection on the configured address.
type App struct {
	cfg      config.Config
	log      zerolog.Logger
	registry *prometheus.Registry
	metrics  *metrics.Metrics
	onStart  func(addr net.Addr)
	stops    atomic.Int32
	stopCh   chan struct{}
	killCh   chan struct{}
}

// New returns a new App instance. The configuration is expected to be already validated.
func New(cfg config.Config, log zerolog.Logger) *App {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return &App{
		cfg:      cfg,
		log:      log,
		registry: registry,
		metrics:  metrics.New(registry),
		stopCh:   make(chan struct{}),
		killCh:   make(chan struct{}),
	}
}

// NotifyOnStart calls the callback with the actual listening address as soon as the
// socket is bound.
func (a *App) NotifyOnStart(cb func(addr net.Addr)) *App {
	a.onStart = cb
	return a
}

// Serve binds the address and serves until Stop is called or the listener fails. After the
// first Stop it waits for all the connections in flight before returning, the second Stop
// closes them instead. Once stopped, the App doesn't serve anymore: further calls return
// ErrShutdown right away.
func (a *App) Serve() error {
	sock, err := net.Listen("tcp", a.cfg.NET.Addr)
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}

	var metricsServer *stdhttp.Server
	if a.cfg.Metrics.Addr != "" {
		metricsServer, err = a.serveMetrics()
		if err != nil {
			_ = sock.Close()
			return err
		}

		defer metricsServer.Close()
	}

	server := tcp.NewServer(sock, a.newTCPCallback(a.newHTTPServer()))
	startErr := make(chan error, 1)
	go func() {
		startErr <- server.Start()
	}()

	a.log.Info().Stringer("addr", server.Addr()).Str("directory", a.cfg.Files.Directory).Msg("listening")
	if a.onStart != nil {
		a.onStart(server.Addr())
	}

	select {
	case err = <-startErr:
	case <-a.stopCh:
		if stopErr := server.GracefulShutdown(); stopErr != nil {
			a.log.Warn().Err(stopErr).Msg("failed to close the listener")
		}

		select {
		case err = <-startErr:
		case <-a.killCh:
			a.log.Warn().Msg("closing connections in flight")
			_ = server.Stop()
			err = <-startErr
		}
	}

	a.log.Info().Err(err).Msg("stopped")

	return err
}

// Stop makes Serve return. The first call stops accepting new connections and lets the ones
// in flight finish. Because no timeouts are enforced, a silent client could hold Serve forever,
// so the second call closes all the remaining connections. Any further calls are no-ops.
//
// NOTE: the call isn't blocking. So by that, after the method returned, the server may
// still be working
func (a *App) Stop() {
	switch a.stops.Add(1) {
	case 1:
		close(a.stopCh)
	case 2:
		close(a.killCh)
	}
}

func (a *App) newHTTPServer() *http.Server {
	var files router.FileAccess
	if a.cfg.Files.Directory != "" {
		files = fileaccess.New(a.cfg.Files.Directory)
	}

	return http.NewServer(router.New(files), a.metrics, a.log)
}

func (a *App) newTCPCallback(server *http.Server) func(net.Conn) {
	return func(conn net.Conn) {
		client := tcp.NewClient(conn, a.cfg.NET.ReadBufferSize, a.cfg.NET.MaxRequestSize)
		// the outcome is already logged and counted by the server
		_ = server.Serve(client)
	}
}

func (a *App) serveMetrics() (*stdhttp.Server, error) {
	sock, err := net.Listen("tcp", a.cfg.Metrics.Addr)
	if err != nil {
		return nil, fmt.Errorf("metrics: listen: %w", err)
	}

	mux := stdhttp.NewServeMux()
	mux.Handle("/metrics", metrics.Handler(a.registry))
	server := &stdhttp.Server{Handler: mux}

	go func() {
		if err := server.Serve(sock); err != nil && !errors.Is(err, stdhttp.ErrServerClosed) {
			a.log.Error().Err(err).Msg("metrics server failed")
		}
	}()

	a.log.Info().Stringer("addr", sock.Addr()).Msg("serving metrics")

	return server, nil
}
