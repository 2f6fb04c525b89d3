package router

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/indigo-web/oneshot/http"
	"github.com/indigo-web/oneshot/http/method"
	"github.com/indigo-web/oneshot/http/mime"
)

const (
	userAgent   = "User-Agent"
	filesPrefix = "/files/"
	echoPrefix  = "/echo/"
)

var (
	// ErrNoUserAgent is returned for /user-agent if the request carries no User-Agent header.
	ErrNoUserAgent = errors.New("request has no User-Agent header")
	// ErrNoBody is returned for POST /files/ if the request carries no body.
	ErrNoBody = errors.New("request has no body to store")
)

// FileAccess is a capability over a base directory, consulted only by the /files/ routes.
type FileAccess interface {
	// List returns names of the entries available for reading.
	List() ([]string, error)
	// Open opens the entry for reading.
	Open(name string) (io.ReadCloser, error)
	// Create creates the entry, or truncates it if one already exists.
	Create(name string) (io.WriteCloser, error)
}

type Router interface {
	// OnRequest resolves the request into a response. A non-nil error means the request
	// couldn't be served at all and the connection must be terminated without a response.
	OnRequest(request *http.Request) (*http.Response, error)
}

type fixed struct {
	files FileAccess
}

// New returns a Router serving the fixed routes table over the file access. The files may be
// nil, in which case /files/ routes always respond 404.
func New(files FileAccess) Router {
	return fixed{files: files}
}

func (f fixed) OnRequest(request *http.Request) (*http.Response, error) {
	return Route(request, f.files)
}

// Route matches the request against the routes table, first match wins:
//
//	/                any method   200, empty body
//	/user-agent      any method   200, the User-Agent header value as a body
//	/files/<name>    GET          200 with the file's content, or 404
//	/files/<name>    POST         stores the body as the file, 201
//	/echo/<text>     any method   200, <text> as a body
//	anything else                 404
func Route(request *http.Request, files FileAccess) (*http.Response, error) {
	url := request.URL

	switch {
	case url == "/":
		return http.OK(), nil
	case url == "/user-agent":
		agent, found := request.Headers.Get(userAgent)
		if !found {
			return nil, ErrNoUserAgent
		}

		return http.OK().String(agent), nil
	case strings.HasPrefix(url, filesPrefix) && request.Method == method.GET:
		return readFile(files, url[len(filesPrefix):])
	case strings.HasPrefix(url, filesPrefix) && request.Method == method.POST:
		return storeFile(files, url[len(filesPrefix):], request.Body)
	case strings.HasPrefix(url, echoPrefix):
		return http.OK().String(url[len(echoPrefix):]), nil
	default:
		return http.NotFound(), nil
	}
}

func readFile(files FileAccess, name string) (*http.Response, error) {
	if files == nil {
		return http.NotFound(), nil
	}

	names, err := files.List()
	if err != nil {
		return nil, fmt.Errorf("list files: %w", err)
	}

	if !slices.Contains(names, name) {
		return http.NotFound(), nil
	}

	fd, err := files.Open(name)
	if err != nil {
		return nil, fmt.Errorf("open %q: %w", name, err)
	}

	content, err := io.ReadAll(fd)
	_ = fd.Close()
	if err != nil {
		return nil, fmt.Errorf("read %q: %w", name, err)
	}

	return http.OK().
		Header("Content-Type", mime.OctetStream).
		Bytes(content), nil
}

func storeFile(files FileAccess, name string, body []byte) (*http.Response, error) {
	if files == nil {
		return http.NotFound(), nil
	}

	if body == nil {
		return nil, ErrNoBody
	}

	fd, err := files.Create(name)
	if err != nil {
		return nil, fmt.Errorf("create %q: %w", name, err)
	}

	if _, err = fd.Write(body); err != nil {
		_ = fd.Close()
		return nil, fmt.Errorf("write %q: %w", name, err)
	}

	if err = fd.Close(); err != nil {
		return nil, fmt.Errorf("close %q: %w", name, err)
	}

	return http.Created(), nil
}
