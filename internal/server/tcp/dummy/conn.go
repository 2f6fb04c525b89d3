package dummy

import (
	"io"
	"net"
	"time"
)

// Conn is a net.Conn returning Chunks one per Read call, followed by io.EOF. Everything
// written is accumulated in Data, unless WriteErr is set.
type Conn struct {
	Chunks   [][]byte
	Data     []byte
	WriteErr error
	ReadErr  error
	Closed   bool
	pending  []byte
}

func NewConn(chunks ...[]byte) *Conn {
	return &Conn{Chunks: chunks}
}

func (c *Conn) Read(b []byte) (n int, err error) {
	if len(c.pending) == 0 {
		if len(c.Chunks) == 0 {
			if c.ReadErr != nil {
				return 0, c.ReadErr
			}

			return 0, io.EOF
		}

		c.pending, c.Chunks = c.Chunks[0], c.Chunks[1:]
	}

	n = copy(b, c.pending)
	c.pending = c.pending[n:]

	return n, nil
}

func (c *Conn) Write(b []byte) (n int, err error) {
	if c.WriteErr != nil {
		return 0, c.WriteErr
	}

	c.Data = append(c.Data, b...)

	return len(b), nil
}

func (c *Conn) Close() error {
	c.Closed = true
	return nil
}

func (c *Conn) LocalAddr() net.Addr {
	return nil
}

func (c *Conn) RemoteAddr() net.Addr {
	return &net.TCPAddr{IP: net.IPv4(127, 0, 0, 1), Port: 4221}
}

func (c *Conn) SetDeadline(time.Time) error {
	return nil
}

func (c *Conn) SetReadDeadline(time.Time) error {
	return nil
}

func (c *Conn) SetWriteDeadline(time.Time) error {
	return nil
}
