package multipart

import (
	"github.com/illuscio-dev/formtools-go/formtypes"
	"github.com/illuscio-dev/formtools-go/mimetype"
)

// byteArrayWriter handles raw binary payload values, emitting them as a single
// application/octet-stream part. First in the default chain so exact byte
// content is never shadowed by the generic matchers further down.
type byteArrayWriter struct{}

func (writer *byteArrayWriter) Applicable(value interface{}) bool {
	switch typed := value.(type) {
	case []byte, formtypes.BinData:
		return true
	case *[]byte:
		// Typed nils carry no payload. Left for the fallback writer.
		return typed != nil
	case *formtypes.BinData:
		return typed != nil
	default:
		return false
	}
}

func (writer *byteArrayWriter) Write(
	out *Output, boundary string, key string, value interface{},
) error {
	var data []byte

	switch typed := value.(type) {
	case []byte:
		data = typed
	case *[]byte:
		data = *typed
	case formtypes.BinData:
		data = typed
	case *formtypes.BinData:
		data = *typed
	}

	writeBoundary(out, boundary)
	writePartMeta(out, key, "", mimetype.OCTET_STREAM)
	out.WriteBytes(data).WriteCRLF()

	return out.Err()
}
