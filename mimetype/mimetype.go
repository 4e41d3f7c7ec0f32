// Enumeration-like type for content mimetypes.
package mimetype

import (
	"mime"
	"path/filepath"
	"strings"
)

/*
MimeType is used to enumerate the default representation for content encoding types.
Non default MimeTypes can be used by wrapping a custom string:

	MimeType("text/csv")
*/
type MimeType string

const (
	JSON = MimeType("application/json")
	BSON = MimeType("application/bson")
	YAML = MimeType("application/yaml")
	TEXT = MimeType("text/plain")
	// OCTET_STREAM is the default media type for raw binary part payloads.
	OCTET_STREAM = MimeType("application/octet-stream")
	// MULTIPART_FORM is the media type of a whole multipart/form-data body.
	MULTIPART_FORM = MimeType("multipart/form-data")
	// UNKNOWN is used when the incoming string is blank
	UNKNOWN = MimeType("")
)

// List of default mimeTypes that are encoded to / from objects (as opposed to raw
// text).
var objectMimeTypes = []MimeType{JSON, BSON, YAML}

// Interface for object used to read headers such as http.Request.Header or
// http.Response.Header
type headerFetcher interface {
	Get(string) string
}

// Extract content type from a message / request header. Body encoding never
// reads headers; this is a convenience for callers inspecting templates their
// own transport layer populated.
func FromHeader(headers headerFetcher) MimeType {
	return FromString(headers.Get("Content-Type"))
}

/*
Convert MimeType from a string. Ignores case. If the MimeType is a default type,
multiple formats are respected. For instance, all of the following will yield
"mimetype.JSON":

• "application/json"

• "application/JSON"

• "application/x-json"

• "json"

• "x-json"
*/
func FromString(incoming string) MimeType {
	incoming = strings.ToLower(incoming)

	if incoming == "" {
		return UNKNOWN
	}
	if incoming == "text/plain" || incoming == "text" {
		return TEXT
	}

	for _, mimeType := range objectMimeTypes {
		mimeTypeLower := strings.ToLower(string(mimeType))
		mimeTypeLower = strings.Split(mimeTypeLower, "/")[1]
		if strings.HasSuffix(incoming, mimeTypeLower) {
			return mimeType
		}
	}

	return MimeType(incoming)
}

/*
FromFileName probes a mimetype from a file name's extension, for use as the
Content-Type of a file part whose media type was not declared by the caller.
Falls back to OCTET_STREAM when the extension is unknown.

Parameters attached to the probed type (such as a charset on text types) are
stripped, since part writers emit their own charset information.
*/
func FromFileName(name string) MimeType {
	extension := filepath.Ext(name)
	if extension == "" {
		return OCTET_STREAM
	}

	byExtension := mime.TypeByExtension(extension)
	if byExtension == "" {
		return OCTET_STREAM
	}

	mediaType, _, err := mime.ParseMediaType(byExtension)
	if err != nil {
		return OCTET_STREAM
	}

	return FromString(mediaType)
}
