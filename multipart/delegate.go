package multipart

import (
	"bytes"

	"github.com/illuscio-dev/formtools-go/encoding"
	"github.com/illuscio-dev/formtools-go/formerrors"
	"github.com/illuscio-dev/formtools-go/mimetype"
)

/*
DelegateWriter hands serialization of a value off to an externally supplied
ContentEngine and copies the engine's output into the body verbatim. It is the
guaranteed fallback of a writer chain: every chain is constructed with one, and
any value no ordered writer accepts lands here instead of being dropped.

A DelegateWriter can also be registered as an ordered writer (it accepts every
value), for example prepended to force a whole mapping through the delegate.
*/
type DelegateWriter struct {
	engine   encoding.ContentEngine
	mimeType mimetype.MimeType
}

/*
NewDelegateWriter creates a DelegateWriter encoding values as mimeType through
engine. Pass mimetype.UNKNOWN to let the engine pick a type per value (strings
to text/plain, everything else to application/json).
*/
func NewDelegateWriter(
	engine encoding.ContentEngine, mimeType mimetype.MimeType,
) *DelegateWriter {
	return &DelegateWriter{
		engine:   engine,
		mimeType: mimeType,
	}
}

func (writer *DelegateWriter) Applicable(value interface{}) bool {
	return true
}

func (writer *DelegateWriter) Write(
	out *Output, boundary string, key string, value interface{},
) error {
	partType := encoding.PickMimeType(writer.mimeType, value)

	encoded := new(bytes.Buffer)
	if err := writer.engine.Encode(partType, value, encoded); err != nil {
		return formerrors.EncodingError.New(
			"delegate encoder failed for field "+key, err,
		)
	}

	if partType == mimetype.TEXT {
		partType += mimetype.MimeType("; charset=" + out.Charset().Name())
	}

	writeBoundary(out, boundary)
	writePartMeta(out, key, "", partType)
	out.WriteBytes(encoded.Bytes()).WriteCRLF()

	return out.Err()
}
