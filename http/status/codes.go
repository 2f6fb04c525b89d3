package status

import (
	"strconv"
)

type Code uint16

// The closed set of codes the server answers with. Adding a route that needs another code
// means adding it here, together with its status line.
const (
	OK       Code = 200 // RFC 9110, 15.3.1
	Created  Code = 201 // RFC 9110, 15.3.2
	NotFound Code = 404 // RFC 9110, 15.5.5
)

// Line returns the status line literal without the protocol, e.g. "200 OK". Codes outside
// of the known set are rendered as "<code> Unknown Status Code".
func Line(code Code) string {
	switch code {
	case OK:
		return "200 OK"
	case Created:
		return "201 Created"
	case NotFound:
		return "404 Not Found"
	default:
		return strconv.Itoa(int(code)) + " Unknown Status Code"
	}
}

// StringCode returns the code as a decimal string.
func StringCode(code Code) string {
	return strconv.Itoa(int(code))
}
