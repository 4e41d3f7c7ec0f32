package multipart

/*
Template is the outgoing request representation a content processor mutates.
net/http users can satisfy it with a thin adapter over http.Header plus a body
slot; it is kept abstract so the processor stays independent of any one HTTP
client.
*/
type Template interface {
	// SetHeader replaces all existing values of the named header with values.
	// Called with no values it clears the header.
	SetHeader(name string, values ...string)

	// SetBody replaces the request body. The bytes are a complete multipart
	// payload and must be treated as opaque binary by the transport: parts mix
	// binary and text content, so the body must never be retagged or transcoded
	// by charset.
	SetBody(body []byte)
}
