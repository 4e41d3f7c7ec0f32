// Text-encoding selection for multipart bodies.
package charset

import (
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/xerrors"
)

/*
Charset identifies the text encoding used to transcode string content into the
bytes of a multipart body. The zero value is not valid; use UTF8 or Named().

The Name() of the charset is embedded verbatim into the generated Content-Type
header, so it should be the canonical IANA name the receiving side expects.
*/
type Charset struct {
	name     string
	encoding encoding.Encoding
}

// UTF8 is the default charset for multipart bodies.
var UTF8 = Charset{name: "UTF-8", encoding: unicode.UTF8}

/*
Named resolves an IANA charset name (such as "UTF-8" or "ISO-8859-1") into a
Charset. Resolution is done through the IANA index using preferred MIME names,
so any registered charset name with an available encoding can be used and the
canonical name embedded in headers is the one MIME consumers expect.
*/
func Named(name string) (Charset, error) {
	resolved, err := ianaindex.MIME.Encoding(name)
	if err != nil {
		return Charset{}, xerrors.Errorf("unknown charset %v: %w", name, err)
	}
	if resolved == nil {
		return Charset{}, xerrors.New("charset " + name + " has no available encoding")
	}

	canonical, err := ianaindex.MIME.Name(resolved)
	if err != nil {
		canonical = name
	}

	return Charset{name: canonical, encoding: resolved}, nil
}

// Canonical IANA name of the charset, as embedded in Content-Type headers.
func (charset Charset) Name() string {
	return charset.name
}

// NewEncoder returns a fresh transcoding encoder from UTF-8 string content to
// the charset's byte representation.
func (charset Charset) NewEncoder() *encoding.Encoder {
	return charset.encoding.NewEncoder()
}

// EncodeString transcodes string content to the charset's byte representation.
func (charset Charset) EncodeString(content string) ([]byte, error) {
	encoded, err := charset.NewEncoder().String(content)
	if err != nil {
		return nil, xerrors.Errorf(
			"error transcoding string to %v: %w", charset.name, err,
		)
	}
	return []byte(encoded), nil
}
