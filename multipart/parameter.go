package multipart

import (
	"fmt"
	"reflect"

	"github.com/illuscio-dev/formtools-go/mimetype"
)

/*
parameterWriter handles plain scalar values, emitting them as text/plain parts.
It is the catch-most of the default chain: anything with a scalar kind or a
Stringer implementation is accepted, so more specific writers must be probed
before it.
*/
type parameterWriter struct{}

func (writer *parameterWriter) Applicable(value interface{}) bool {
	switch typed := value.(type) {
	case string, bool, fmt.Stringer:
		return true
	case *string:
		// A typed nil has no scalar rendition. Left for the fallback writer.
		return typed != nil
	}

	reflected := reflect.ValueOf(value)
	if !reflected.IsValid() {
		return false
	}

	switch reflected.Kind() {
	case reflect.String, reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	default:
		return false
	}
}

func (writer *parameterWriter) Write(
	out *Output, boundary string, key string, value interface{},
) error {
	if pointer, ok := value.(*string); ok {
		value = *pointer
	}

	writeBoundary(out, boundary)
	writePartMeta(
		out,
		key,
		"",
		mimetype.TEXT+mimetype.MimeType("; charset="+out.Charset().Name()),
	)
	out.WriteString(fmt.Sprint(value)).WriteCRLF()

	return out.Err()
}
