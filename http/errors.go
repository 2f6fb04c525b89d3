package http

// DecodeErrorKind enumerates the ways raw bytes may fail to form a request.
type DecodeErrorKind uint8

const (
	// KindProtocol is a missing or malformed request line.
	KindProtocol DecodeErrorKind = iota + 1
	// KindMethod is an unrecognized method token.
	KindMethod
	// KindURL is a request target that isn't valid UTF-8 or doesn't start with a slash.
	KindURL
	// KindHeader is a malformed header line or one holding non-UTF-8 bytes.
	KindHeader
)

func (k DecodeErrorKind) String() string {
	switch k {
	case KindProtocol:
		return "protocol"
	case KindMethod:
		return "method"
	case KindURL:
		return "url"
	case KindHeader:
		return "header"
	default:
		return "unknown"
	}
}

type DecodeError struct {
	Message string
	Kind    DecodeErrorKind
}

func NewDecodeError(kind DecodeErrorKind, message string) error {
	return DecodeError{
		Kind:    kind,
		Message: message,
	}
}

func (d DecodeError) Error() string {
	return d.Message
}

// Is matches any DecodeError of the same kind, so errors.Is(err, ErrHeader) holds regardless
// of the message.
func (d DecodeError) Is(target error) bool {
	t, ok := target.(DecodeError)
	return ok && t.Kind == d.Kind
}

var (
	ErrProtocol = NewDecodeError(KindProtocol, "malformed request line")
	ErrMethod   = NewDecodeError(KindMethod, "request method is not supported")
	ErrURL      = NewDecodeError(KindURL, "malformed request url")
	ErrHeader   = NewDecodeError(KindHeader, "malformed header line")
)
