package http

import (
	"github.com/indigo-web/oneshot/http/status"
	"github.com/indigo-web/oneshot/internal/response"
	"github.com/indigo-web/oneshot/kv"
	"github.com/indigo-web/utils/strcomp"
	"github.com/indigo-web/utils/uf"
)

const contentLength = "Content-Length"

// Response is built via chained calls and is meant to be serialized exactly once.
type Response struct {
	fields *response.Fields
}

// NewResponse returns a new instance of the Response object with the given status code, no
// headers and no body.
func NewResponse(code status.Code) *Response {
	return &Response{
		&response.Fields{
			Code: code,
		},
	}
}

// OK is a shorthand for NewResponse(status.OK).
func OK() *Response {
	return NewResponse(status.OK)
}

// Created is a shorthand for NewResponse(status.Created).
func Created() *Response {
	return NewResponse(status.Created)
}

// NotFound is a shorthand for NewResponse(status.NotFound).
func NotFound() *Response {
	return NewResponse(status.NotFound)
}

// Header sets the header value, overriding the previous one under the same key.
//
// Content-Length is never stored: it is always derived from the body during serialization.
func (r *Response) Header(key, value string) *Response {
	if strcomp.EqualFold(key, contentLength) {
		return r
	}

	if r.fields.Headers == nil {
		r.fields.Headers = kv.New()
	}

	r.fields.Headers.Set(key, value)

	return r
}

// String sets the response's body to the passed string
func (r *Response) String(body string) *Response {
	return r.Bytes(uf.S2B(body))
}

// Bytes sets the response's body to passed slice WITHOUT COPYING. Changing
// the passed slice later will affect the response by itself
func (r *Response) Bytes(body []byte) *Response {
	r.fields.Body = body
	return r
}

// Reveal returns a struct with values, filled by builder. Used mostly in internal purposes
func (r *Response) Reveal() *response.Fields {
	return r.fields
}
