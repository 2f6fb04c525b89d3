package http1

import (
	"io"
	"strconv"

	"github.com/indigo-web/oneshot/http"
	"github.com/indigo-web/oneshot/http/status"
	"github.com/indigo-web/oneshot/internal/response"
)

const (
	protocol      = "HTTP/1.1"
	contentType   = "Content-Type: "
	contentLength = "Content-Length: "
	colonsp       = ": "
	crlf          = "\r\n"
)

type Serializer struct {
	buff []byte
}

func NewSerializer(buff []byte) *Serializer {
	return &Serializer{
		buff: buff[:0],
	}
}

// Render serializes the response into the internal buffer and returns it. The returned
// slice is only valid until the next call on the serializer.
//
// The layout is always the status line, Content-Length matching the body length, then
// either the set headers sorted by key or the default Content-Type, an empty line and the
// body.
func (d *Serializer) Render(response *http.Response) []byte {
	d.buff = d.buff[:0]
	fields := response.Reveal()
	d.renderResponseLine(fields.Code)
	d.renderContentLength(int64(len(fields.Body)))
	d.renderHeaders(fields)
	d.crlf()
	d.buff = append(d.buff, fields.Body...)

	return d.buff
}

// Write renders the response and writes it into the writer at once.
func (d *Serializer) Write(response *http.Response, writer io.Writer) error {
	_, err := writer.Write(d.Render(response))
	d.clear()

	return err
}

// RenderRequest serializes the request in the same shape Parse expects it: request line,
// headers sorted by key, an empty line and the body line, if any.
func (d *Serializer) RenderRequest(request *http.Request) []byte {
	d.buff = d.buff[:0]
	d.buff = append(d.buff, request.Method.String()...)
	d.sp()
	d.buff = append(d.buff, request.URL...)
	d.sp()
	d.buff = append(d.buff, protocol...)
	d.crlf()

	for _, header := range request.Headers.Sorted() {
		d.renderHeader(header.Key, header.Value)
	}

	d.crlf()

	if request.Body != nil {
		d.buff = append(d.buff, request.Body...)
		d.crlf()
	}

	return d.buff
}

func (d *Serializer) renderResponseLine(code status.Code) {
	d.buff = append(d.buff, protocol...)
	d.sp()
	d.buff = append(d.buff, status.Line(code)...)
	d.crlf()
}

func (d *Serializer) renderHeaders(fields *response.Fields) {
	if fields.Headers == nil || fields.Headers.Empty() {
		d.renderKnownHeader(contentType, response.DefaultContentType)
		return
	}

	for _, header := range fields.Headers.Sorted() {
		d.renderHeader(header.Key, header.Value)
	}
}

// renderHeader into the buffer. Appends CRLF in the end
func (d *Serializer) renderHeader(key, value string) {
	d.buff = append(d.buff, key...)
	d.colonsp()
	d.buff = append(d.buff, value...)
	d.crlf()
}

func (d *Serializer) renderContentLength(value int64) {
	d.buff = strconv.AppendInt(append(d.buff, contentLength...), value, 10)
	d.crlf()
}

func (d *Serializer) renderKnownHeader(key, value string) {
	d.buff = append(d.buff, key...)
	d.buff = append(d.buff, value...)
	d.crlf()
}

func (d *Serializer) sp() {
	d.buff = append(d.buff, ' ')
}

func (d *Serializer) colonsp() {
	d.buff = append(d.buff, colonsp...)
}

func (d *Serializer) crlf() {
	d.buff = append(d.buff, crlf...)
}

func (d *Serializer) clear() {
	d.buff = d.buff[:0]
}
