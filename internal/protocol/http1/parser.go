package http1

import (
	"bytes"
	"unicode/utf8"

	"github.com/indigo-web/oneshot/http"
	"github.com/indigo-web/oneshot/http/method"
	"github.com/indigo-web/utils/uf"
)

var headerSeparator = []byte(": ")

// Parse decodes a whole request at once. All the request's strings and the body are
// borrowed from data without copying, therefore data must not be modified as long as the
// request is used.
//
// The message is split into lines by LF, stripping the trailing CR of each line if there is
// one. The first line is the request line, all the following lines up to the first empty one
// are headers, and the single line right after the empty one (if any) becomes the body. Any
// lines after the body are ignored: no Content-Length nor Transfer-Encoding is taken into
// account.
func Parse(data []byte) (*http.Request, error) {
	if len(data) == 0 {
		return nil, http.ErrProtocol
	}

	request := http.NewRequest()
	lines := newLineReader(data)
	requestLine, _ := lines.Next()
	if err := parseRequestLine(request, requestLine); err != nil {
		return nil, err
	}

	for {
		line, ok := lines.Next()
		if !ok {
			// the input ended before the header block was terminated. Nothing
			// could follow as a body then
			return request, nil
		}

		if len(line) == 0 {
			break
		}

		if err := parseHeader(request, line); err != nil {
			return nil, err
		}
	}

	if body, ok := lines.Next(); ok {
		request.Body = body
	}

	return request, nil
}

func parseRequestLine(request *http.Request, line []byte) error {
	sp := bytes.IndexByte(line, ' ')
	methodToken := line
	if sp != -1 {
		methodToken = line[:sp]
	}

	if len(methodToken) == 0 {
		return http.ErrProtocol
	}

	request.Method = method.Parse(uf.B2S(methodToken))
	if request.Method == method.Unknown {
		return http.ErrMethod
	}

	if sp == -1 {
		return http.ErrProtocol
	}

	url := line[sp+1:]
	if sp = bytes.IndexByte(url, ' '); sp != -1 {
		// the protocol token isn't validated
		url = url[:sp]
	}

	switch {
	case len(url) == 0:
		return http.ErrProtocol
	case !utf8.Valid(url), url[0] != '/':
		return http.ErrURL
	}

	request.URL = uf.B2S(url)

	return nil
}

func parseHeader(request *http.Request, line []byte) error {
	if !utf8.Valid(line) {
		return http.ErrHeader
	}

	sep := bytes.Index(line, headerSeparator)
	if sep <= 0 {
		return http.ErrHeader
	}

	value := line[sep+len(headerSeparator):]
	if len(value) == 0 {
		return http.ErrHeader
	}

	request.Headers.Set(uf.B2S(line[:sep]), uf.B2S(value))

	return nil
}

// lineReader yields LF-separated lines with their trailing CR stripped. A trailing empty
// segment after the last LF is not a line.
type lineReader struct {
	data []byte
}

func newLineReader(data []byte) *lineReader {
	return &lineReader{data: data}
}

func (l *lineReader) Next() (line []byte, ok bool) {
	if len(l.data) == 0 {
		return nil, false
	}

	lf := bytes.IndexByte(l.data, '\n')
	if lf == -1 {
		line, l.data = l.data, nil
	} else {
		line, l.data = l.data[:lf], l.data[lf+1:]
	}

	return rstripCR(line), true
}

func rstripCR(b []byte) []byte {
	if len(b) > 0 && b[len(b)-1] == '\r' {
		return b[:len(b)-1]
	}

	return b
}
