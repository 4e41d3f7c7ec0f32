package multipart

import (
	"github.com/illuscio-dev/formtools-go/mimetype"
)

/*
Writer is the contract a single value-kind encoder satisfies. A WriterChain
probes writers in order and hands each field to the first writer whose
Applicable predicate accepts the value.

Implementations of Write append one or more COMPLETE parts to the output:
opening boundary line, part headers, blank line, payload and trailing line
terminator. A writer may invoke the chain again to redispatch child values (the
pojo writer does this), so arbitrary nesting depth is supported without the
chain knowing about it.
*/
type Writer interface {
	// Applicable reports whether this writer can encode value. It must be a pure
	// predicate: no side effects, and it must not panic for any input, including
	// nil.
	Applicable(value interface{}) bool

	// Write appends the part(s) for one field to out. boundary is the separator
	// token of the current encode pass, key the field name. A writer that
	// accepted a value but cannot serialize it returns an error wrapping
	// formerrors.EncodingError.
	Write(out *Output, boundary string, key string, value interface{}) error
}

// writeBoundary opens a new part with its boundary line.
func writeBoundary(out *Output, boundary string) {
	out.WriteString("--").WriteString(boundary).WriteCRLF()
}

// writePartMeta emits the header block of a part: content disposition with an
// optional filename parameter, an optional Content-Type line, and the blank
// line separating headers from payload.
func writePartMeta(
	out *Output,
	key string,
	fileName string,
	contentType mimetype.MimeType,
) {
	out.WriteString(`Content-Disposition: form-data; name="`).
		WriteString(key).
		WriteString(`"`)

	if fileName != "" {
		out.WriteString(`; filename="`).WriteString(fileName).WriteString(`"`)
	}
	out.WriteCRLF()

	if contentType != mimetype.UNKNOWN {
		out.WriteString("Content-Type: ").
			WriteString(string(contentType)).
			WriteCRLF()
	}

	out.WriteCRLF()
}
