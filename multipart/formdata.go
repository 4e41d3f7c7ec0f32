package multipart

import (
	"github.com/illuscio-dev/formtools-go/formtypes"
)

// formDataWriter handles payloads the caller already encoded along with their
// declared media type, copying them into a named part verbatim.
type formDataWriter struct{}

func (writer *formDataWriter) Applicable(value interface{}) bool {
	switch typed := value.(type) {
	case formtypes.FormData:
		return true
	case *formtypes.FormData:
		// Typed nils carry no payload. Left for the fallback writer.
		return typed != nil
	default:
		return false
	}
}

func (writer *formDataWriter) Write(
	out *Output, boundary string, key string, value interface{},
) error {
	var formData formtypes.FormData

	switch typed := value.(type) {
	case formtypes.FormData:
		formData = typed
	case *formtypes.FormData:
		formData = *typed
	}

	writeBoundary(out, boundary)
	writePartMeta(out, key, "", formData.ContentType)
	out.WriteBytes(formData.Data).WriteCRLF()

	return out.Err()
}
