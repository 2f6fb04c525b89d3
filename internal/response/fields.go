package response

import (
	"github.com/indigo-web/oneshot/http/mime"
	"github.com/indigo-web/oneshot/http/status"
	"github.com/indigo-web/oneshot/kv"
)

// DefaultContentType is rendered only if no headers were set at all.
const DefaultContentType = mime.Plain

type Fields struct {
	// Headers is nil until the first header is set.
	Headers *kv.Storage
	Body    []byte
	Code    status.Code
}
