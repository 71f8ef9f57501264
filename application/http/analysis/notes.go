package analysis

import "http-inspector/application/http/note"

// Request notes.
var (
	URITooLong   = note.Template{ID: "URI_TOO_LONG", Category: note.General, Level: note.Warning, Summary: "The URI is very long ({uri_len} characters)."}
	URIBadSyntax = note.Template{ID: "URI_BAD_SYNTAX", Category: note.General, Level: note.Bad, Summary: "The URI's syntax isn't valid."}
)

// Body notes.
var (
	CLCorrect     = note.Template{ID: "CL_CORRECT", Category: note.General, Level: note.Good, Summary: "The Content-Length header is correct."}
	CLIncorrect   = note.Template{ID: "CL_INCORRECT", Category: note.General, Level: note.Bad, Summary: "The response's Content-Length header is incorrect ({body_length} bytes were sent)."}
	CMD5Correct   = note.Template{ID: "CMD5_CORRECT", Category: note.General, Level: note.Good, Summary: "The Content-MD5 header is correct."}
	CMD5Incorrect = note.Template{ID: "CMD5_INCORRECT", Category: note.General, Level: note.Bad, Summary: "The Content-MD5 header is incorrect (the payload hashes to {calc_md5})."}
)

// Status notes.
var (
	NoDate304              = note.Template{ID: "NO_DATE_304", Category: note.Validation, Level: note.Warning, Summary: "304 responses need to have a Date header."}
	UnexpectedContinue     = note.Template{ID: "UNEXPECTED_CONTINUE", Category: note.General, Level: note.Bad, Summary: "A 100 Continue response was sent when it wasn't asked for."}
	UpgradeNotRequested    = note.Template{ID: "UPGRADE_NOT_REQUESTED", Category: note.General, Level: note.Bad, Summary: "The protocol was upgraded without being requested."}
	CreatedSafeMethod      = note.Template{ID: "CREATED_SAFE_METHOD", Category: note.General, Level: note.Warning, Summary: "A new resource was created in response to a safe request ({method})."}
	CreatedWithoutLocation = note.Template{ID: "CREATED_WITHOUT_LOCATION", Category: note.General, Level: note.Bad, Summary: "A new resource was created without its location being sent."}
	PartialWithoutRange    = note.Template{ID: "PARTIAL_WITHOUT_RANGE", Category: note.General, Level: note.Bad, Summary: "The partial response doesn't have a Content-Range header."}
	PartialNotRequested    = note.Template{ID: "PARTIAL_NOT_REQUESTED", Category: note.General, Level: note.Bad, Summary: "A partial response was sent when it wasn't requested."}
	RedirectNoLocation     = note.Template{ID: "REDIRECT_WITHOUT_LOCATION", Category: note.General, Level: note.Bad, Summary: "Redirects need to have a Location header."}
	StatusDeprecated       = note.Template{ID: "STATUS_DEPRECATED", Category: note.General, Level: note.Bad, Summary: "The {status} status code is deprecated."}
	StatusReserved         = note.Template{ID: "STATUS_RESERVED", Category: note.General, Level: note.Bad, Summary: "The {status} status code is reserved."}
	StatusNonstandard      = note.Template{ID: "STATUS_NONSTANDARD", Category: note.General, Level: note.Bad, Summary: "{status} is not a standard HTTP status code."}

	StatusBadRequest          = note.Template{ID: "STATUS_BAD_REQUEST", Category: note.General, Level: note.Warning, Summary: "The server didn't understand the request."}
	StatusForbidden           = note.Template{ID: "STATUS_FORBIDDEN", Category: note.General, Level: note.Info, Summary: "The server has forbidden this request."}
	StatusNotFound            = note.Template{ID: "STATUS_NOT_FOUND", Category: note.General, Level: note.Info, Summary: "The resource could not be found."}
	StatusNotAcceptable       = note.Template{ID: "STATUS_NOT_ACCEPTABLE", Category: note.General, Level: note.Info, Summary: "The resource could not be found in an acceptable form."}
	StatusConflict            = note.Template{ID: "STATUS_CONFLICT", Category: note.General, Level: note.Info, Summary: "The request conflicted with the state of the resource."}
	StatusGone                = note.Template{ID: "STATUS_GONE", Category: note.General, Level: note.Info, Summary: "The resource is gone."}
	StatusContentTooLarge     = note.Template{ID: "STATUS_REQUEST_ENTITY_TOO_LARGE", Category: note.General, Level: note.Info, Summary: "The request body was too large for the server."}
	StatusURITooLong          = note.Template{ID: "STATUS_URI_TOO_LONG", Category: note.General, Level: note.Bad, Summary: "The server won't accept a URI this long ({uri_len} characters)."}
	StatusUnsupportedMedia    = note.Template{ID: "STATUS_UNSUPPORTED_MEDIA_TYPE", Category: note.General, Level: note.Info, Summary: "The resource doesn't support this media type in requests."}
	StatusTeapot              = note.Template{ID: "STATUS_IM_A_TEAPOT", Category: note.General, Level: note.Warning, Summary: "The server returned 418 I'm a Teapot, an easter egg defined in RFC 2324."}
	StatusInternalServerError = note.Template{ID: "STATUS_INTERNAL_SERVICE_ERROR", Category: note.General, Level: note.Info, Summary: "There was a general server error."}
	StatusNotImplemented      = note.Template{ID: "STATUS_NOT_IMPLEMENTED", Category: note.General, Level: note.Info, Summary: "The server doesn't implement the request method."}
	StatusBadGateway          = note.Template{ID: "STATUS_BAD_GATEWAY", Category: note.General, Level: note.Info, Summary: "An intermediary encountered an error."}
	StatusServiceUnavailable  = note.Template{ID: "STATUS_SERVICE_UNAVAILABLE", Category: note.General, Level: note.Info, Summary: "The server is temporarily unavailable."}
	StatusGatewayTimeout      = note.Template{ID: "STATUS_GATEWAY_TIMEOUT", Category: note.General, Level: note.Info, Summary: "An intermediary timed out."}
	StatusVersionUnsupported  = note.Template{ID: "STATUS_VERSION_NOT_SUPPORTED", Category: note.General, Level: note.Bad, Summary: "The request HTTP version isn't supported."}
)

// Caching notes.
var (
	LMFuture           = note.Template{ID: "LM_FUTURE", Category: note.Caching, Level: note.Bad, Summary: "The Last-Modified time is in the future."}
	LMPresent          = note.Template{ID: "LM_PRESENT", Category: note.Caching, Level: note.Info, Summary: "The resource last changed {last_modified_string}."}
	MethodUncacheable  = note.Template{ID: "METHOD_UNCACHEABLE", Category: note.Caching, Level: note.Info, Summary: "Responses to the {method} method can't be stored by caches."}
	CCMiscap           = note.Template{ID: "CC_MISCAP", Category: note.Caching, Level: note.Warning, Summary: "The {cc} Cache-Control directive appears to have incorrect capitalisation."}
	CCDup              = note.Template{ID: "CC_DUP", Category: note.Caching, Level: note.Warning, Summary: "The {cc} Cache-Control directive appears more than once."}
	NoStore            = note.Template{ID: "NO_STORE", Category: note.Caching, Level: note.Info, Summary: "This response can't be stored by a cache."}
	PrivateCC          = note.Template{ID: "PRIVATE_CC", Category: note.Caching, Level: note.Info, Summary: "This response only allows a private cache to store it."}
	PrivateAuth        = note.Template{ID: "PRIVATE_AUTH", Category: note.Caching, Level: note.Info, Summary: "This response only allows a private cache to store it, because the request was authenticated."}
	Storable           = note.Template{ID: "STORABLE", Category: note.Caching, Level: note.Info, Summary: "This response allows all caches to store it."}
	NoCache            = note.Template{ID: "NO_CACHE", Category: note.Caching, Level: note.Info, Summary: "This response cannot be served from cache without validation."}
	NoCacheNoValidator = note.Template{ID: "NO_CACHE_NO_VALIDATOR", Category: note.Caching, Level: note.Info, Summary: "This response cannot be served from cache without validation, and has no validator."}
	VaryAsterisk       = note.Template{ID: "VARY_ASTERISK", Category: note.Caching, Level: note.Warning, Summary: "Vary: * effectively makes this response uncacheable."}
	VaryUserAgent      = note.Template{ID: "VARY_USER_AGENT", Category: note.Caching, Level: note.Info, Summary: "Vary: User-Agent can cause cache inefficiency."}
	VaryHost           = note.Template{ID: "VARY_HOST", Category: note.Caching, Level: note.Warning, Summary: "Vary: Host is not necessary."}
	VaryComplex        = note.Template{ID: "VARY_COMPLEX", Category: note.Caching, Level: note.Warning, Summary: "This resource varies in {vary_count} ways."}
	Public             = note.Template{ID: "PUBLIC", Category: note.Caching, Level: note.Warning, Summary: "Cache-Control: public is rarely necessary."}
	CurrentAge         = note.Template{ID: "CURRENT_AGE", Category: note.Caching, Level: note.Info, Summary: "This response has been cached for {age}."}

	FreshnessFresh        = note.Template{ID: "FRESHNESS_FRESH", Category: note.Caching, Level: note.Good, Summary: "This response is fresh until {freshness_left} from now."}
	FreshnessStaleCache   = note.Template{ID: "FRESHNESS_STALE_CACHE", Category: note.Caching, Level: note.Warning, Summary: "This response has been served stale by a cache."}
	FreshnessStaleAlready = note.Template{ID: "FRESHNESS_STALE_ALREADY", Category: note.Caching, Level: note.Info, Summary: "This response is already stale."}
	FreshnessHeuristic    = note.Template{ID: "FRESHNESS_HEURISTIC", Category: note.Caching, Level: note.Warning, Summary: "This response allows a cache to assign its own freshness lifetime."}
	FreshnessNone         = note.Template{ID: "FRESHNESS_NONE", Category: note.Caching, Level: note.Info, Summary: "This response can only be served by a cache under exceptional circumstances."}

	FreshServable        = note.Template{ID: "FRESH_SERVABLE", Category: note.Caching, Level: note.Info, Summary: "This response may still be served by a cache once it becomes stale."}
	StaleServable        = note.Template{ID: "STALE_SERVABLE", Category: note.Caching, Level: note.Info, Summary: "This response might be served by a cache, even though it is stale."}
	FreshMustRevalidate  = note.Template{ID: "FRESH_MUST_REVALIDATE", Category: note.Caching, Level: note.Info, Summary: "This response cannot be served by a cache once it becomes stale."}
	StaleMustRevalidate  = note.Template{ID: "STALE_MUST_REVALIDATE", Category: note.Caching, Level: note.Info, Summary: "This response cannot be served by a cache, because it is stale."}
	FreshProxyRevalidate = note.Template{ID: "FRESH_PROXY_REVALIDATE", Category: note.Caching, Level: note.Info, Summary: "This response cannot be served by a shared cache once it becomes stale."}
	StaleProxyRevalidate = note.Template{ID: "STALE_PROXY_REVALIDATE", Category: note.Caching, Level: note.Info, Summary: "This response cannot be served by a shared cache, because it is stale."}

	CheckSingle     = note.Template{ID: "CHECK_SINGLE", Category: note.Caching, Level: note.Warning, Summary: "Only one of the pre-check and post-check Cache-Control directives is present."}
	CheckNotInteger = note.Template{ID: "CHECK_NOT_INTEGER", Category: note.Caching, Level: note.Warning, Summary: "One of the pre-check/post-check Cache-Control directives has a non-integer value."}
	CheckAllZero    = note.Template{ID: "CHECK_ALL_ZERO", Category: note.Caching, Level: note.Warning, Summary: "The pre-check and post-check Cache-Control directives are both '0'."}
	CheckPostBigger = note.Template{ID: "CHECK_POST_BIGGER", Category: note.Caching, Level: note.Warning, Summary: "The post-check Cache-control directive's value is larger than pre-check's."}
	CheckPostZero   = note.Template{ID: "CHECK_POST_ZERO", Category: note.Caching, Level: note.Bad, Summary: "The post-check Cache-control directive's value is '0'."}
	CheckPostPre    = note.Template{ID: "CHECK_POST_PRE", Category: note.Caching, Level: note.Info, Summary: "This response may be refreshed in the background by Internet Explorer (pre-check={pre_check}, post-check={post_check})."}

	DateCorrect         = note.Template{ID: "DATE_CORRECT", Category: note.General, Level: note.Good, Summary: "The server's clock is correct."}
	DateIncorrect       = note.Template{ID: "DATE_INCORRECT", Category: note.General, Level: note.Bad, Summary: "The server's clock is {clock_skew_string}."}
	AgePenalty          = note.Template{ID: "AGE_PENALTY", Category: note.General, Level: note.Warning, Summary: "It appears that the Date header has been changed by an intermediary."}
	DateClockless       = note.Template{ID: "DATE_CLOCKLESS", Category: note.General, Level: note.Warning, Summary: "This response doesn't have a Date header."}
	DateClocklessBadHdr = note.Template{ID: "DATE_CLOCKLESS_BAD_HDR", Category: note.Caching, Level: note.Bad, Summary: "Responses without a Date aren't allowed to have Expires or Last-Modified values."}
)

// Probe notes.
var (
	MissingHdrs304 = note.Template{ID: "MISSING_HDRS_304", Category: note.Validation, Level: note.Warning, Summary: "The 304 response is missing required headers ({missing_hdrs})."}

	ETagSubreqProblem = note.Template{ID: "ETAG_SUBREQ_PROBLEM", Category: note.Validation, Level: note.Info, Summary: "There was a problem checking for ETag validation support ({problem})."}
	INM304            = note.Template{ID: "INM_304", Category: note.Validation, Level: note.Good, Summary: "If-None-Match conditional requests are supported."}
	INMFull           = note.Template{ID: "INM_FULL", Category: note.Validation, Level: note.Warning, Summary: "An If-None-Match conditional request returned the full content unchanged."}
	INMDupETagWeak    = note.Template{ID: "INM_DUP_ETAG_WEAK", Category: note.Validation, Level: note.Info, Summary: "During validation, the ETag didn't change, even though the response content did."}
	INMDupETagStrong  = note.Template{ID: "INM_DUP_ETAG_STRONG", Category: note.Validation, Level: note.Bad, Summary: "During validation, the ETag {etag} didn't change, even though the response content did."}
	INMUnknown        = note.Template{ID: "INM_UNKNOWN", Category: note.Validation, Level: note.Info, Summary: "An If-None-Match conditional request returned the full content, but it had changed."}
	INMStatus         = note.Template{ID: "INM_STATUS", Category: note.Validation, Level: note.Info, Summary: "An If-None-Match conditional request returned a {inm_status} status."}

	LMSubreqProblem = note.Template{ID: "LM_SUBREQ_PROBLEM", Category: note.Validation, Level: note.Info, Summary: "There was a problem checking for Last-Modified validation support ({problem})."}
	IMS304          = note.Template{ID: "IMS_304", Category: note.Validation, Level: note.Good, Summary: "If-Modified-Since conditional requests are supported."}
	IMSFull         = note.Template{ID: "IMS_FULL", Category: note.Validation, Level: note.Warning, Summary: "An If-Modified-Since conditional request returned the full content unchanged."}
	IMSUnknown      = note.Template{ID: "IMS_UNKNOWN", Category: note.Validation, Level: note.Info, Summary: "An If-Modified-Since conditional request returned the full content, but it had changed."}
	IMSStatus       = note.Template{ID: "IMS_STATUS", Category: note.Validation, Level: note.Info, Summary: "An If-Modified-Since conditional request returned a {ims_status} status."}

	ConnegSubreqProblem     = note.Template{ID: "CONNEG_SUBREQ_PROBLEM", Category: note.ContentNegotiation, Level: note.Info, Summary: "There was a problem checking for Content Negotiation support ({problem})."}
	ConnegGzipGood          = note.Template{ID: "CONNEG_GZIP_GOOD", Category: note.ContentNegotiation, Level: note.Good, Summary: "Content negotiation for gzip compression is supported, saving {savings}% ({orig_size} to {gzip_size} bytes)."}
	ConnegGzipBad           = note.Template{ID: "CONNEG_GZIP_BAD", Category: note.ContentNegotiation, Level: note.Warning, Summary: "Content negotiation for gzip compression makes the response {savings}% larger ({orig_size} to {gzip_size} bytes)."}
	ConnegNoGzip            = note.Template{ID: "CONNEG_NO_GZIP", Category: note.ContentNegotiation, Level: note.Info, Summary: "Content negotiation for gzip compression isn't supported."}
	ConnegNoVary            = note.Template{ID: "CONNEG_NO_VARY", Category: note.ContentNegotiation, Level: note.Bad, Summary: "The response is negotiated, but doesn't have an appropriate Vary header."}
	ConnegGzipWithoutAsking = note.Template{ID: "CONNEG_GZIP_WITHOUT_ASKING", Category: note.ContentNegotiation, Level: note.Warning, Summary: "A gzip-compressed response was sent when it wasn't asked for."}
	VaryInconsistent        = note.Template{ID: "VARY_INCONSISTENT", Category: note.ContentNegotiation, Level: note.Bad, Summary: "The resource doesn't send Vary consistently ({conneg_vary} vs {no_conneg_vary})."}
	VaryStatusMismatch      = note.Template{ID: "VARY_STATUS_MISMATCH", Category: note.ContentNegotiation, Level: note.Warning, Summary: "The response status is different when content negotiation happens ({neg_status} vs {noneg_status})."}
	VaryHeaderMismatch      = note.Template{ID: "VARY_HEADER_MISMATCH", Category: note.ContentNegotiation, Level: note.Bad, Summary: "The {header} header is different when content negotiation happens."}
	VaryBodyMismatch        = note.Template{ID: "VARY_BODY_MISMATCH", Category: note.ContentNegotiation, Level: note.Info, Summary: "The response content is different when content negotiation happens."}
	VaryETagDoesntChange    = note.Template{ID: "VARY_ETAG_DOESNT_CHANGE", Category: note.ContentNegotiation, Level: note.Bad, Summary: "The ETag doesn't change between negotiated representations."}

	RangeSubreqProblem   = note.Template{ID: "RANGE_SUBREQ_PROBLEM", Category: note.Range, Level: note.Info, Summary: "There was a problem checking for Partial Content support ({problem})."}
	RangeCorrect         = note.Template{ID: "RANGE_CORRECT", Category: note.Range, Level: note.Good, Summary: "A ranged request returned the correct partial content."}
	RangeIncorrect       = note.Template{ID: "RANGE_INCORRECT", Category: note.Range, Level: note.Bad, Summary: "A ranged request for {range} returned partial content, but it was incorrect (expected {range_expected_bytes} bytes {range_expected}, received {range_received_bytes} bytes {range_received})."}
	RangeChanged         = note.Template{ID: "RANGE_CHANGED", Category: note.Range, Level: note.Warning, Summary: "A ranged request returned another representation."}
	RangeFull            = note.Template{ID: "RANGE_FULL", Category: note.Range, Level: note.Warning, Summary: "A ranged request returned the full rather than partial content."}
	RangeStatus          = note.Template{ID: "RANGE_STATUS", Category: note.Range, Level: note.Info, Summary: "A ranged request returned a {range_status} status."}
	RangeNegMismatch     = note.Template{ID: "RANGE_NEG_MISMATCH", Category: note.Range, Level: note.Bad, Summary: "Partial responses don't have the same support for compression that full ones do."}
	MissingHdrs206       = note.Template{ID: "MISSING_HDRS_206", Category: note.Validation, Level: note.Warning, Summary: "The partial response is missing required headers ({missing_hdrs})."}
	RangeCLFull          = note.Template{ID: "RANGE_CL_FULL", Category: note.Range, Level: note.Warning, Summary: "The partial response has a Content-Length equal to the full response."}
	RangeIncorrectLength = note.Template{ID: "RANGE_INCORRECT_LENGTH", Category: note.Range, Level: note.Warning, Summary: "The Content-Range header indicates an incorrect total length."}
)
