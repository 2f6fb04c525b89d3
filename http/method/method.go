package method

type Method uint8

const (
	Unknown Method = iota
	GET
	POST
	PATCH
	PUT
	// OPTION is matched by the literal "OPTION" token, not "OPTIONS". Clients sending
	// the RFC spelling are rejected as unknown.
	OPTION
)

// List contains all the supported HTTP methods. They are sorted by their integer value, however
// Unknown method is not included. So in order to index the List, you must subtract 1 first.
var List = []Method{GET, POST, PATCH, PUT, OPTION}

func Parse(str string) Method {
	switch len(str) {
	case 3:
		if str == "GET" {
			return GET
		} else if str == "PUT" {
			return PUT
		}
	case 4:
		if str == "POST" {
			return POST
		}
	case 5:
		if str == "PATCH" {
			return PATCH
		}
	case 6:
		if str == "OPTION" {
			return OPTION
		}
	}

	return Unknown
}

func (m Method) String() string {
	switch m {
	case GET:
		return "GET"
	case POST:
		return "POST"
	case PATCH:
		return "PATCH"
	case PUT:
		return "PUT"
	case OPTION:
		return "OPTION"
	default:
		return "UNKNOWN"
	}
}
