package header

import "http-inspector/application/http/note"

// Pipeline notes.
var (
	HeaderTooLarge      = note.Template{ID: "HEADER_TOO_LARGE", Category: note.General, Level: note.Warning, Summary: "The {header_name} header is very large ({header_size} bytes)."}
	HeaderBlockTooLarge = note.Template{ID: "HEADER_BLOCK_TOO_LARGE", Category: note.General, Level: note.Bad, Summary: "The headers are very large ({header_block_size} bytes)."}
	HeaderNameEncoding  = note.Template{ID: "HEADER_NAME_ENCODING", Category: note.General, Level: note.Bad, Summary: "The {header_name} header's name contains non-ASCII characters."}
	HeaderValueEncoding = note.Template{ID: "HEADER_VALUE_ENCODING", Category: note.General, Level: note.Warning, Summary: "The {header_name} header's value contains non-ASCII characters."}
	FieldNameBadSyntax  = note.Template{ID: "FIELD_NAME_BAD_SYNTAX", Category: note.General, Level: note.Bad, Summary: `"{field_name}" is not a valid header field-name.`}
	BadSyntax           = note.Template{ID: "BAD_SYNTAX", Category: note.General, Level: note.Bad, Summary: "The {field_name} header's syntax isn't valid."}
	SingleHeaderRepeat  = note.Template{ID: "SINGLE_HEADER_REPEAT", Category: note.General, Level: note.Bad, Summary: "Only one {field_name} header is allowed in a message."}
	HeaderDeprecated    = note.Template{ID: "HEADER_DEPRECATED", Category: note.General, Level: note.Warning, Summary: "The {field_name} header is deprecated."}
	RequestHdrInResp    = note.Template{ID: "REQUEST_HDR_IN_RESPONSE", Category: note.General, Level: note.Bad, Summary: `"{field_name}" is a request header.`}
	ResponseHdrInReq    = note.Template{ID: "RESPONSE_HDR_IN_REQUEST", Category: note.General, Level: note.Bad, Summary: `"{field_name}" is a response header.`}
)

// Parameter and date notes.
var (
	ParamRepeats       = note.Template{ID: "PARAM_REPEATS", Category: note.General, Level: note.Warning, Summary: "The '{param}' parameter repeats in the {field_name} header."}
	ParamSingleQuoted  = note.Template{ID: "PARAM_SINGLE_QUOTED", Category: note.General, Level: note.Warning, Summary: "The '{param}' parameter on the {field_name} header is single-quoted."}
	ParamStarQuoted    = note.Template{ID: "PARAM_STAR_QUOTED", Category: note.General, Level: note.Bad, Summary: "The '{param}' parameter's value cannot be quoted."}
	ParamStarError     = note.Template{ID: "PARAM_STAR_ERROR", Category: note.General, Level: note.Bad, Summary: "The {param} parameter's value is invalid."}
	ParamStarBad       = note.Template{ID: "PARAM_STAR_BAD", Category: note.General, Level: note.Bad, Summary: "The {param}* parameter isn't allowed on the {field_name} header."}
	ParamStarNoCharset = note.Template{ID: "PARAM_STAR_NOCHARSET", Category: note.General, Level: note.Warning, Summary: "The {param} parameter's value doesn't define an encoding."}
	ParamStarCharset   = note.Template{ID: "PARAM_STAR_CHARSET", Category: note.General, Level: note.Warning, Summary: "The {param} parameter's value uses an encoding other than UTF-8."}
	BadDateSyntax      = note.Template{ID: "BAD_DATE_SYNTAX", Category: note.General, Level: note.Bad, Summary: "The {field_name} header's value isn't a valid date."}
	DateObsolete       = note.Template{ID: "DATE_OBSOLETE", Category: note.General, Level: note.Warning, Summary: "The {field_name} header's value uses an obsolete format."}
)

// Field specific notes.
var (
	AgeNotInt                 = note.Template{ID: "AGE_NOT_INT", Category: note.Caching, Level: note.Bad, Summary: "The Age header's value should be an integer."}
	AgeNegative               = note.Template{ID: "AGE_NEGATIVE", Category: note.Caching, Level: note.Bad, Summary: "The Age header's value must be a positive integer."}
	BadCCSyntax               = note.Template{ID: "BAD_CC_SYNTAX", Category: note.Caching, Level: note.Bad, Summary: "The {bad_cc_attr} Cache-Control directive's syntax is incorrect."}
	UnknownRange              = note.Template{ID: "UNKNOWN_RANGE", Category: note.Range, Level: note.Warning, Summary: "The response advertises support for non-standard range-units ({range})."}
	ContentRangeMeaningless   = note.Template{ID: "CONTENT_RANGE_MEANINGLESS", Category: note.Range, Level: note.Warning, Summary: "The response shouldn't have a Content-Range header."}
	EncodingUnwanted          = note.Template{ID: "ENCODING_UNWANTED", Category: note.ContentNegotiation, Level: note.Warning, Summary: "The response contained unwanted content-codings ({unwanted_codings})."}
	TransferCodingIdentity    = note.Template{ID: "TRANSFER_CODING_IDENTITY", Category: note.Connection, Level: note.Info, Summary: "The identity transfer-coding isn't necessary."}
	TransferCodingUnwanted    = note.Template{ID: "TRANSFER_CODING_UNWANTED", Category: note.Connection, Level: note.Bad, Summary: "The response has unsupported transfer-coding ({unwanted_codings})."}
	TransferCodingParam       = note.Template{ID: "TRANSFER_CODING_PARAM", Category: note.Connection, Level: note.Warning, Summary: "The response had parameters on its transfer-codings."}
	MIMEVersion               = note.Template{ID: "MIME_VERSION", Category: note.General, Level: note.Warning, Summary: "The MIME-Version header isn't necessary in HTTP."}
	PragmaNoCache             = note.Template{ID: "PRAGMA_NO_CACHE", Category: note.Caching, Level: note.Warning, Summary: "Pragma: no-cache is a request directive, not a response directive."}
	PragmaOther               = note.Template{ID: "PRAGMA_OTHER", Category: note.General, Level: note.Warning, Summary: "The Pragma header is being used in an undefined way."}
	ViaPresent                = note.Template{ID: "VIA_PRESENT", Category: note.General, Level: note.Info, Summary: "One or more intermediaries are present ({via_list})."}
	LocationUndefined         = note.Template{ID: "LOCATION_UNDEFINED", Category: note.General, Level: note.Warning, Summary: "A {status} response doesn't define any meaning for the Location header."}
	LocationNotAbsolute       = note.Template{ID: "LOCATION_NOT_ABSOLUTE", Category: note.General, Level: note.Info, Summary: "The Location header contains a relative URI."}
	ContentTypeOptions        = note.Template{ID: "CONTENT_TYPE_OPTIONS", Category: note.General, Level: note.Info, Summary: "The response instructs browsers not to 'sniff' its media type."}
	ContentTypeOptionsUnknown = note.Template{ID: "CONTENT_TYPE_OPTIONS_UNKNOWN", Category: note.General, Level: note.Warning, Summary: "The response contains an X-Content-Type-Options header with an unknown value."}
	FrameOptionsDeny          = note.Template{ID: "FRAME_OPTIONS_DENY", Category: note.General, Level: note.Info, Summary: "The response prevents some browsers from rendering it if it will be contained within a frame."}
	FrameOptionsSameOrigin    = note.Template{ID: "FRAME_OPTIONS_SAMEORIGIN", Category: note.General, Level: note.Info, Summary: "The response prevents some browsers from rendering it if it will be contained within a frame on another site."}
	FrameOptionsUnknown       = note.Template{ID: "FRAME_OPTIONS_UNKNOWN", Category: note.General, Level: note.Warning, Summary: "The response contains an X-Frame-Options header with an unknown value."}
	XSSProtectionOn           = note.Template{ID: "XSS_PROTECTION_ON", Category: note.General, Level: note.Info, Summary: "The response enables XSS filtering."}
	XSSProtectionOff          = note.Template{ID: "XSS_PROTECTION_OFF", Category: note.General, Level: note.Info, Summary: "The response disables XSS filtering."}
	XSSProtectionBlock        = note.Template{ID: "XSS_PROTECTION_BLOCK", Category: note.General, Level: note.Info, Summary: "The response blocks XSS attacks."}
	DispositionUnknown        = note.Template{ID: "DISPOSITION_UNKNOWN", Category: note.General, Level: note.Warning, Summary: "The '{disposition}' Content-Disposition isn't known."}
	DispositionOmitsFilename  = note.Template{ID: "DISPOSITION_OMITS_FILENAME", Category: note.General, Level: note.Warning, Summary: "The Content-Disposition header doesn't have a 'filename' parameter."}
	DispositionFilenamePct    = note.Template{ID: "DISPOSITION_FILENAME_PERCENT", Category: note.General, Level: note.Warning, Summary: "The 'filename' parameter on the Content-Disposition header contains a '%' character."}
	DispositionFilenamePath   = note.Template{ID: "DISPOSITION_FILENAME_PATH_CHAR", Category: note.General, Level: note.Warning, Summary: "The filename in the Content-Disposition header contains a path character."}
)
