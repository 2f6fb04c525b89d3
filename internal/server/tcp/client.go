package tcp

import (
	"bytes"
	"errors"
	"io"
	"net"
	"strconv"

	"github.com/indigo-web/utils/strcomp"
	"github.com/indigo-web/utils/uf"
)

const contentLengthKey = "Content-Length"

// ErrRequestTooLarge is returned when the request doesn't fit into the maximal read buffer.
var ErrRequestTooLarge = errors.New("request exceeds the maximal request size")

type Client interface {
	// Read returns the whole request as far as it can be told from the wire. The returned
	// slice is owned by the caller and is never reused by the client.
	Read() ([]byte, error)
	Write([]byte) error
	Remote() net.Addr
	Close() error
}

type client struct {
	conn       net.Conn
	bufferSize int
	maxSize    int
}

// NewClient wraps the connection. Reading starts with a buffer of bufferSize bytes and
// doubles it while the request isn't complete, but never beyond maxSize.
func NewClient(conn net.Conn, bufferSize, maxSize int) Client {
	return &client{
		conn:       conn,
		bufferSize: max(bufferSize, 1),
		maxSize:    max(maxSize, bufferSize, 1),
	}
}

// Read stops at EOF, at a read which didn't fill the buffer up before the header block was
// terminated, or right after the header block once the body announced by Content-Length (none,
// if the header is absent) is there.
func (c *client) Read() ([]byte, error) {
	buff := make([]byte, 0, c.bufferSize)

	for {
		if len(buff) == cap(buff) {
			if cap(buff) >= c.maxSize {
				return nil, ErrRequestTooLarge
			}

			grown := make([]byte, len(buff), min(cap(buff)*2, c.maxSize))
			copy(grown, buff)
			buff = grown
		}

		n, err := c.conn.Read(buff[len(buff):cap(buff)])
		buff = buff[:len(buff)+n]

		switch {
		case errors.Is(err, io.EOF):
			return buff, nil
		case err != nil:
			return nil, err
		}

		terminated, missing := framing(buff)
		switch {
		case terminated && missing <= 0:
			return buff, nil
		case terminated:
			// the body is still on its way
		case len(buff) < cap(buff):
			return buff, nil
		}
	}
}

func (c *client) Write(b []byte) error {
	_, err := c.conn.Write(b)

	return err
}

func (c *client) Remote() net.Addr {
	return c.conn.RemoteAddr()
}

func (c *client) Close() error {
	return c.conn.Close()
}

// framing reports whether data holds the empty line terminating the header block and, if so,
// how many bytes of the body announced by Content-Length are yet to come. A missing or
// malformed Content-Length announces no body.
func framing(data []byte) (terminated bool, missing int) {
	contentLength := 0

	for offset := 0; ; {
		lf := bytes.IndexByte(data[offset:], '\n')
		if lf == -1 {
			return false, 0
		}

		line := bytes.TrimSuffix(data[offset:offset+lf], []byte{'\r'})
		offset += lf + 1

		if len(line) == 0 {
			return true, contentLength - len(data[offset:])
		}

		key, value, found := bytes.Cut(line, []byte{':'})
		if found && strcomp.EqualFold(uf.B2S(key), contentLengthKey) {
			if length, err := strconv.Atoi(uf.B2S(bytes.TrimSpace(value))); err == nil && length > 0 {
				contentLength = length
			}
		}
	}
}
