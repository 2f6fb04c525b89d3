package http

import (
	"slices"

	"github.com/indigo-web/oneshot/http/method"
	"github.com/indigo-web/oneshot/kv"
)

type Headers = *kv.Storage

// Request represents HTTP request.
//
// A decoded request borrows its memory: URL, header keys and values and the Body all point
// into the buffer the request was decoded from. The buffer must stay untouched for as long
// as the request is in use, otherwise Clone it first.
type Request struct {
	// Method is an enum representing the request method.
	Method method.Method
	// URL is the request target exactly as received. It always begins with a slash and is
	// neither percent-decoded nor split into path and query.
	URL string
	// Headers holds header pairs. Keys are case-sensitive, so "user-agent" and "User-Agent"
	// are different headers.
	Headers Headers
	// Body is the single line following the header block. It is nil if there was no such
	// line, and non-nil (but possibly empty) otherwise.
	Body []byte
}

func NewRequest() *Request {
	return &Request{
		Method:  method.Unknown,
		Headers: kv.New(),
	}
}

// Clone returns a deep copy, which doesn't reference the original buffer anymore.
func (r *Request) Clone() *Request {
	clone := &Request{
		Method:  r.Method,
		URL:     string([]byte(r.URL)),
		Headers: r.Headers.Clone(),
	}

	if r.Body != nil {
		clone.Body = slices.Clone(r.Body)
	}

	return clone
}
