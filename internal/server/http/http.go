package http

import (
	"errors"
	"fmt"

	"github.com/indigo-web/oneshot/http"
	"github.com/indigo-web/oneshot/http/status"
	"github.com/indigo-web/oneshot/internal/metrics"
	"github.com/indigo-web/oneshot/internal/protocol/http1"
	"github.com/indigo-web/oneshot/internal/server/tcp"
	"github.com/indigo-web/oneshot/router"
	"github.com/rs/zerolog"
)

type Server struct {
	router  router.Router
	metrics *metrics.Metrics
	log     zerolog.Logger
}

// NewServer returns a server handling connections with the router. The metrics may be nil.
func NewServer(r router.Router, m *metrics.Metrics, log zerolog.Logger) *Server {
	return &Server{
		router:  r,
		metrics: m,
		log:     log,
	}
}

// Serve handles exactly one request over the client and closes it afterwards, no matter
// what happened. Any failure terminates only this connection and is returned. A request
// that fails to decode or to route gets no response at all.
func (s *Server) Serve(client tcp.Client) error {
	s.metrics.Connection()
	log := s.log.With().Stringer("remote", client.Remote()).Logger()
	log.Debug().Msg("accepted connection")

	err := s.serve(client, log)
	if closeErr := client.Close(); err == nil && closeErr != nil {
		err = fmt.Errorf("close: %w", closeErr)
	}

	if err != nil {
		var decodeErr http.DecodeError
		if !errors.As(err, &decodeErr) {
			s.metrics.ConnectionError()
		}
	}

	return err
}

func (s *Server) serve(client tcp.Client, log zerolog.Logger) error {
	data, err := client.Read()
	if err != nil {
		log.Error().Err(err).Msg("failed to read the request")
		return fmt.Errorf("read: %w", err)
	}

	request, err := http1.Parse(data)
	if err != nil {
		kind := "unknown"
		var decodeErr http.DecodeError
		if errors.As(err, &decodeErr) {
			kind = decodeErr.Kind.String()
		}

		s.metrics.DecodeError(kind)
		log.Warn().Err(err).Str("kind", kind).Msg("failed to decode the request")
		return err
	}

	log = log.With().
		Stringer("method", request.Method).
		Str("url", request.URL).
		Logger()

	response, err := s.router.OnRequest(request)
	if err != nil {
		log.Warn().Err(err).Msg("failed to route the request")
		return fmt.Errorf("route: %w", err)
	}

	code := response.Reveal().Code
	if err = http1.NewSerializer(make([]byte, 0, 128)).Write(response, writer{client}); err != nil {
		log.Error().Err(err).Msg("failed to write the response")
		return fmt.Errorf("write: %w", err)
	}

	s.metrics.Request(request.Method.String(), status.StringCode(code))
	log.Debug().Uint16("status", uint16(code)).Msg("served")

	return nil
}

// writer adapts the client to io.Writer.
type writer struct {
	client tcp.Client
}

func (w writer) Write(b []byte) (n int, err error) {
	if err = w.client.Write(b); err != nil {
		return 0, err
	}

	return len(b), nil
}
