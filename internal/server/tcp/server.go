package tcp

import (
	"errors"
	"net"
	"sync"
	"sync/atomic"
)

// ErrShutdown is returned by Start after the server was stopped.
var ErrShutdown = errors.New("server has been shut down")

type onConnection func(net.Conn)

type Server struct {
	sock     net.Listener
	onConn   onConnection
	mu       sync.Mutex
	conns    map[net.Conn]struct{}
	shutdown atomic.Bool
}

func NewServer(sock net.Listener, onConn onConnection) *Server {
	return &Server{
		sock:   sock,
		onConn: onConn,
		conns:  map[net.Conn]struct{}{},
	}
}

// Start accepts connections until the listener is closed, serving each one in its own
// goroutine. Before returning it waits for all the running handlers to finish.
func (s *Server) Start() error {
	wg := new(sync.WaitGroup)

	for {
		conn, err := s.sock.Accept()
		if err != nil {
			wg.Wait()

			if s.shutdown.Load() {
				return ErrShutdown
			}

			return err
		}

		s.track(conn)
		wg.Add(1)
		go s.connHandler(wg, conn)
	}
}

// GracefulShutdown stops the listener, but leaves all the connections free to end their
// lives peacefully. As there are no timeouts, Start won't return while any client stays
// silent, so Stop may follow to finish them off.
func (s *Server) GracefulShutdown() error {
	s.shutdown.Store(true)

	return s.sock.Close()
}

// Stop shuts the listener and ALL the connections down.
func (s *Server) Stop() error {
	err := s.GracefulShutdown()
	if errors.Is(err, net.ErrClosed) {
		// already closed by a previous graceful shutdown
		err = nil
	}

	s.mu.Lock()
	for conn := range s.conns {
		_ = conn.Close()
	}
	s.mu.Unlock()

	return err
}

// Addr returns the address the server listens on.
func (s *Server) Addr() net.Addr {
	return s.sock.Addr()
}

func (s *Server) track(conn net.Conn) {
	s.mu.Lock()
	s.conns[conn] = struct{}{}
	s.mu.Unlock()
}

func (s *Server) connHandler(wg *sync.WaitGroup, conn net.Conn) {
	defer wg.Done()
	s.onConn(conn)

	s.mu.Lock()
	delete(s.conns, conn)
	s.mu.Unlock()
}
