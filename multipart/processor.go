package multipart

import (
	"fmt"

	"github.com/rs/zerolog"
	"golang.org/x/xerrors"

	"github.com/illuscio-dev/formtools-go/charset"
	"github.com/illuscio-dev/formtools-go/encoding"
	"github.com/illuscio-dev/formtools-go/formerrors"
	"github.com/illuscio-dev/formtools-go/mimetype"
)

// ContentTypeHeader is the header name Process sets on the template.
const ContentTypeHeader = "Content-Type"

/*
ContentProcessor orchestrates full encode passes over field mappings. It owns
one WriterChain; each pass generates a fresh boundary token, dispatches every
field through the chain in mapping order, appends the terminal boundary marker
and produces the matching Content-Type header value.

The processor holds no per-pass state, so a configured processor can run
concurrent Encode calls. Chain mutation is NOT synchronized with encoding:
finish configuration before sharing the processor, or serialize
reconfiguration externally.
*/
type ContentProcessor struct {
	chain    *WriterChain
	boundary BoundarySource
	logger   zerolog.Logger
}

// ProcessorOpt configures a ContentProcessor during construction.
type ProcessorOpt func(*ContentProcessor)

// WithBoundarySource replaces the default time-derived boundary source.
func WithBoundarySource(source BoundarySource) ProcessorOpt {
	return func(processor *ContentProcessor) {
		processor.boundary = source
	}
}

// WithLogger attaches a logger for debug-level dispatch traces. Logging is
// disabled by default.
func WithLogger(logger zerolog.Logger) ProcessorOpt {
	return func(processor *ContentProcessor) {
		processor.logger = logger
	}
}

// WithChain replaces the default writer chain wholesale.
func WithChain(chain *WriterChain) ProcessorOpt {
	return func(processor *ContentProcessor) {
		processor.chain = chain
	}
}

/*
NewContentProcessor creates a processor with the default writer chain, falling
back to delegate for values no chain writer accepts. See NewDefaultChain for
the default probe order.
*/
func NewContentProcessor(
	delegate encoding.ContentEngine, opts ...ProcessorOpt,
) *ContentProcessor {
	processor := &ContentProcessor{
		chain:    NewDefaultChain(delegate),
		boundary: TimeBoundary,
		logger:   zerolog.Nop(),
	}

	for _, opt := range opts {
		opt(processor)
	}

	return processor
}

// Chain returns the processor's writer chain for runtime configuration.
func (processor *ContentProcessor) Chain() *WriterChain {
	return processor.chain
}

// ContentType returns the media type this processor produces.
func (processor *ContentProcessor) ContentType() mimetype.MimeType {
	return mimetype.MULTIPART_FORM
}

/*
Encode runs one full pass over fields in mapping order and returns the complete
multipart body plus the value for the Content-Type header, of the form:

	multipart/form-data; charset=<name>; boundary=<token>

On any writer failure the pass is aborted and nothing is returned; a partial
body is never surfaced. The returned bytes are a fresh copy owned by the
caller.
*/
func (processor *ContentProcessor) Encode(
	cs charset.Charset, fields *Fields,
) (body []byte, contentType string, err error) {
	if cs.Name() == "" {
		cs = charset.UTF8
	}
	if fields == nil {
		fields = NewFields()
	}

	boundary := processor.boundary()

	out := NewOutput(cs)
	defer func() {
		_ = out.Close()
	}()

	err = fields.Each(func(key string, value interface{}) error {
		writer := processor.chain.Dispatch(value)

		processor.logger.Debug().
			Str("key", key).
			Str("writer", fmt.Sprintf("%T", writer)).
			Msg("dispatched field")

		writeErr := writer.Write(out, boundary, key, value)
		if writeErr == nil {
			return nil
		}
		if xerrors.Is(writeErr, formerrors.EncodingError) {
			return writeErr
		}
		return formerrors.EncodingError.New(
			"writer failed for field "+key, writeErr,
		)
	})
	if err != nil {
		return nil, "", err
	}

	// Terminal boundary marker.
	out.WriteString("--").WriteString(boundary).WriteString("--").WriteCRLF()
	if out.Err() != nil {
		return nil, "", formerrors.EncodingError.New(
			"could not finalize body", out.Err(),
		)
	}

	contentType = string(mimetype.MULTIPART_FORM) +
		"; charset=" + cs.Name() +
		"; boundary=" + boundary

	// Copy out of the buffer so the body survives the deferred release.
	encoded := out.Bytes()
	body = make([]byte, len(encoded))
	copy(body, encoded)

	return body, contentType, nil
}

/*
Process encodes fields and applies the result to template: the existing
Content-Type header is reset, the new header value set, and the body bytes
installed. The template is only touched after the full body has been built, so
a failed pass leaves the caller's prior header and body intact.
*/
func (processor *ContentProcessor) Process(
	template Template, cs charset.Charset, fields *Fields,
) error {
	body, contentType, err := processor.Encode(cs, fields)
	if err != nil {
		return err
	}

	template.SetHeader(ContentTypeHeader)
	template.SetHeader(ContentTypeHeader, contentType)
	template.SetBody(body)

	return nil
}
