package message

import "http-inspector/application/http/note"

var (
	StatusPhraseEncoding = note.Template{ID: "STATUS_PHRASE_ENCODING", Category: note.General, Level: note.Bad, Summary: "The status phrase contains non-ASCII characters."}
	BadGzip              = note.Template{ID: "BAD_GZIP", Category: note.ContentNegotiation, Level: note.Bad, Summary: "The response was compressed using GZip, but the header wasn't valid ({gzip_error})."}
	BadZlib              = note.Template{ID: "BAD_ZLIB", Category: note.ContentNegotiation, Level: note.Bad, Summary: "The response was compressed, but the data was corrupt ({zlib_error})."}
)
