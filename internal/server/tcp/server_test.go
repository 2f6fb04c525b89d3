package tcp

import (
	"io"
	"net"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func startServer(t *testing.T, onConn onConnection) (*Server, chan error) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	server := NewServer(listener, onConn)
	stopCh := make(chan error, 1)
	go func() {
		stopCh <- server.Start()
	}()

	return server, stopCh
}

func TestServer(t *testing.T) {
	var served atomic.Int32
	server, stopCh := startServer(t, func(conn net.Conn) {
		_, _ = io.Copy(conn, conn)
		_ = conn.Close()
		served.Add(1)
	})

	for range 3 {
		conn, err := net.Dial("tcp", server.Addr().String())
		require.NoError(t, err)
		_, err = conn.Write([]byte("ping"))
		require.NoError(t, err)
		require.NoError(t, conn.(*net.TCPConn).CloseWrite())
		data, err := io.ReadAll(conn)
		require.NoError(t, err)
		require.Equal(t, "ping", string(data))
		require.NoError(t, conn.Close())
	}

	require.NoError(t, server.GracefulShutdown())
	require.ErrorIs(t, <-stopCh, ErrShutdown)
	require.Equal(t, int32(3), served.Load())
}

func TestServer_SilentClient(t *testing.T) {
	accepted := make(chan struct{})
	server, stopCh := startServer(t, func(conn net.Conn) {
		close(accepted)
		_, _ = io.ReadAll(conn)
		_ = conn.Close()
	})

	conn, err := net.Dial("tcp", server.Addr().String())
	require.NoError(t, err)
	defer conn.Close()
	<-accepted

	require.NoError(t, server.GracefulShutdown())
	select {
	case <-stopCh:
		require.FailNow(t, "graceful shutdown must wait for the connection in flight")
	case <-time.After(100 * time.Millisecond):
	}

	require.NoError(t, server.Stop())
	select {
	case err := <-stopCh:
		require.ErrorIs(t, err, ErrShutdown)
	case <-time.After(2 * time.Second):
		require.FailNow(t, "stop didn't close the connection in flight")
	}
}
