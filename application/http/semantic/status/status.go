package status

type Status struct {
	Code         uint
	ReasonPhrase string

	// Deprecated codes should no longer be sent.
	Deprecated bool
	// Reserved codes are set aside for future use.
	Reserved bool
}

// Class is the first digit of the code.
func (s Status) Class() uint { return s.Code / 100 }

func (s Status) IsRedirect() bool { return s.Class() == 3 }

// Informational 1XX
// Reference: https://datatracker.ietf.org/doc/html/rfc9110#section-15.2
var (
	Continue           = add(Status{Code: 100, ReasonPhrase: "Continue"})
	SwitchingProtocols = add(Status{Code: 101, ReasonPhrase: "Switching Protocols"})
	Processing         = add(Status{Code: 102, ReasonPhrase: "Processing"})
)

// Successful 2XX
// Reference: https://datatracker.ietf.org/doc/html/rfc9110#section-15.3
var (
	OK                   = add(Status{Code: 200, ReasonPhrase: "OK"})
	Created              = add(Status{Code: 201, ReasonPhrase: "Created"})
	Accepted             = add(Status{Code: 202, ReasonPhrase: "Accepted"})
	NonAuthoritativeInfo = add(Status{Code: 203, ReasonPhrase: "Non-Authoritative Information"})
	NoContent            = add(Status{Code: 204, ReasonPhrase: "No Content"})
	ResetContent         = add(Status{Code: 205, ReasonPhrase: "Reset Content"})
	PartialContent       = add(Status{Code: 206, ReasonPhrase: "Partial Content"})
	MultiStatus          = add(Status{Code: 207, ReasonPhrase: "Multi-Status"})
	IMUsed               = add(Status{Code: 226, ReasonPhrase: "IM Used"})
)

// Redirection 3xx
// Reference: https://datatracker.ietf.org/doc/html/rfc9110#section-15.4
var (
	MultipleChoices   = add(Status{Code: 300, ReasonPhrase: "Multiple Choices"})
	MovedPermanently  = add(Status{Code: 301, ReasonPhrase: "Moved Permanently"})
	Found             = add(Status{Code: 302, ReasonPhrase: "Found"})
	SeeOther          = add(Status{Code: 303, ReasonPhrase: "See Other"})
	NotModified       = add(Status{Code: 304, ReasonPhrase: "Not Modified"})
	UseProxy          = add(Status{Code: 305, ReasonPhrase: "Use Proxy", Deprecated: true})
	Unused            = add(Status{Code: 306, ReasonPhrase: "(Unused)", Reserved: true})
	TemporaryRedirect = add(Status{Code: 307, ReasonPhrase: "Temporary Redirect"})
	PermanentRedirect = add(Status{Code: 308, ReasonPhrase: "Permanent Redirect"})
)

// Client Error 4xx
// Reference: https://datatracker.ietf.org/doc/html/rfc9110#section-15.5
var (
	BadRequest           = add(Status{Code: 400, ReasonPhrase: "Bad Request"})
	Unauthorized         = add(Status{Code: 401, ReasonPhrase: "Unauthorized"})
	PaymentRequired      = add(Status{Code: 402, ReasonPhrase: "Payment Required"})
	Forbidden            = add(Status{Code: 403, ReasonPhrase: "Forbidden"})
	NotFound             = add(Status{Code: 404, ReasonPhrase: "Not Found"})
	MethodNotAllowed     = add(Status{Code: 405, ReasonPhrase: "Method Not Allowed"})
	NotAcceptable        = add(Status{Code: 406, ReasonPhrase: "Not Acceptable"})
	ProxyAuthRequired    = add(Status{Code: 407, ReasonPhrase: "Proxy Authentication Required"})
	RequestTimeout       = add(Status{Code: 408, ReasonPhrase: "Request Timeout"})
	Conflict             = add(Status{Code: 409, ReasonPhrase: "Conflict"})
	Gone                 = add(Status{Code: 410, ReasonPhrase: "Gone"})
	LengthRequired       = add(Status{Code: 411, ReasonPhrase: "Length Required"})
	PreconditionFailed   = add(Status{Code: 412, ReasonPhrase: "Precondition Failed"})
	ContentTooLarge      = add(Status{Code: 413, ReasonPhrase: "Content Too Large"})
	RequestURITooLong    = add(Status{Code: 414, ReasonPhrase: "URI Too Long"})
	UnsupportedMediaType = add(Status{Code: 415, ReasonPhrase: "Unsupported Media Type"})
	RangeNotSatisfiable  = add(Status{Code: 416, ReasonPhrase: "Range Not Satisfiable"})
	ExpectationFailed    = add(Status{Code: 417, ReasonPhrase: "Expectation Failed"})
	ImATeapot            = add(Status{Code: 418, ReasonPhrase: "I'm a teapot"}) // Unused. But I like the joke.
	MisdirectedRequest   = add(Status{Code: 421, ReasonPhrase: "Misdirected Request"})
	UnprocessableContent = add(Status{Code: 422, ReasonPhrase: "Unprocessable Content"})
	Locked               = add(Status{Code: 423, ReasonPhrase: "Locked"})
	FailedDependency     = add(Status{Code: 424, ReasonPhrase: "Failed Dependency"})
	UpgradeRequired      = add(Status{Code: 426, ReasonPhrase: "Upgrade Required"})
)

// Server Error 5xx
// Reference: https://datatracker.ietf.org/doc/html/rfc9110#section-15.6
var (
	InternalServerError     = add(Status{Code: 500, ReasonPhrase: "Internal Server Error"})
	NotImplemented          = add(Status{Code: 501, ReasonPhrase: "Not Implemented"})
	BadGateway              = add(Status{Code: 502, ReasonPhrase: "Bad Gateway"})
	ServiceUnavailable      = add(Status{Code: 503, ReasonPhrase: "Service Unavailable"})
	GatewayTimeout          = add(Status{Code: 504, ReasonPhrase: "Gateway Timeout"})
	HTTPVersionNotSupported = add(Status{Code: 505, ReasonPhrase: "HTTP Version Not Supported"})
	VariantAlsoNegotiates   = add(Status{Code: 506, ReasonPhrase: "Variant Also Negotiates"})
	InsufficientStorage     = add(Status{Code: 507, ReasonPhrase: "Insufficient Storage"})
	NotExtended             = add(Status{Code: 510, ReasonPhrase: "Not Extended"})
)

var sm = make(map[uint]*Status)

func add(status Status) Status {
	sm[status.Code] = &status
	return status
}

// FromCode looks code up in the registered table.
// ok is false for codes that are not standard.
func FromCode(code uint) (status Status, ok bool) {
	s, ok := sm[code]
	if !ok {
		return Status{Code: code, ReasonPhrase: ""}, false
	}

	return *s, true
}
