package multipart

import (
	"bytes"
	"io"

	"golang.org/x/xerrors"

	"github.com/illuscio-dev/formtools-go/charset"
)

// CRLF is the line terminator of the multipart wire format.
const CRLF = "\r\n"

/*
Output is the append-only byte sink a single encode pass accumulates its body
into. String content is transcoded to the output charset as it is appended; raw
byte content is copied through untouched.

Write calls chain, carrying a sticky error: once an append fails, further
appends are no-ops and the first failure is reported by Err(). This lets part
writers compose header lines without checking every call:

	out.WriteString("--").WriteString(boundary).WriteCRLF()

An Output is scoped to exactly one encode pass. Close() releases the
accumulated bytes; the Output must not be written to afterwards.
*/
type Output struct {
	buffer  *bytes.Buffer
	charset charset.Charset
	err     error
}

// NewOutput creates an empty Output transcoding string appends to cs.
func NewOutput(cs charset.Charset) *Output {
	if cs.Name() == "" {
		cs = charset.UTF8
	}
	return &Output{
		buffer:  new(bytes.Buffer),
		charset: cs,
	}
}

// Charset returns the text encoding string appends are transcoded with.
func (out *Output) Charset() charset.Charset {
	return out.charset
}

// WriteString appends text content, transcoded to the output charset.
func (out *Output) WriteString(content string) *Output {
	if out.err != nil {
		return out
	}

	encoded, err := out.charset.EncodeString(content)
	if err != nil {
		out.err = err
		return out
	}

	out.buffer.Write(encoded)
	return out
}

// WriteBytes appends raw byte content verbatim.
func (out *Output) WriteBytes(data []byte) *Output {
	if out.err != nil {
		return out
	}

	out.buffer.Write(data)
	return out
}

// WriteCRLF appends one multipart line terminator.
func (out *Output) WriteCRLF() *Output {
	return out.WriteString(CRLF)
}

// ReadFrom appends the full content of reader verbatim.
func (out *Output) ReadFrom(reader io.Reader) *Output {
	if out.err != nil {
		return out
	}

	if _, err := io.Copy(out.buffer, reader); err != nil {
		out.err = xerrors.Errorf("error reading part content: %w", err)
	}
	return out
}

// Err returns the first append failure, or nil.
func (out *Output) Err() error {
	return out.err
}

// Bytes materializes the accumulated body. The returned slice aliases the
// internal buffer and is only valid until Close().
func (out *Output) Bytes() []byte {
	return out.buffer.Bytes()
}

// Close releases the accumulated bytes. The Output must not be used afterwards.
func (out *Output) Close() error {
	out.buffer.Reset()
	out.buffer = nil
	return nil
}
