// Value kinds recognized by the default multipart writers.
package formtypes

import (
	"bytes"
	"io"
	"os"
	"path/filepath"

	"golang.org/x/xerrors"

	"github.com/illuscio-dev/formtools-go/mimetype"
)

// BinData is used to hold raw binary blob information. In a multipart body it is
// written as a single application/octet-stream part. The json encoder will hexify
// this data when it appears inside a delegated object payload.
type BinData []byte

/*
FormData holds a part payload that the caller has already encoded, along with the
media type it was encoded as. The multipart writers copy the data into the body
verbatim under the field's name, declaring the stored ContentType.
*/
type FormData struct {
	// Media type the data was encoded as.
	ContentType mimetype.MimeType
	// The encoded payload bytes.
	Data []byte
}

/*
File is the contract for file-like field values. Implementations expose a file
name, an optional declared media type, and a byte-readable handle. All I/O needed
to realize the content happens inside Open / the returned reader, never in the
multipart core.
*/
type File interface {
	// File name, emitted as the filename= parameter of the part disposition.
	Name() string

	// Declared media type of the content. Return mimetype.UNKNOWN to have the
	// part writer probe a type from the file name instead.
	ContentType() mimetype.MimeType

	// Open returns a reader over the file content. Each call must return a fresh
	// reader positioned at the start of the content.
	Open() (io.ReadCloser, error)
}

// VirtualFile is an in-memory File implementation.
type VirtualFile struct {
	FileName  string
	MediaType mimetype.MimeType
	Data      []byte
}

func (file VirtualFile) Name() string {
	return file.FileName
}

func (file VirtualFile) ContentType() mimetype.MimeType {
	return file.MediaType
}

func (file VirtualFile) Open() (io.ReadCloser, error) {
	return io.NopCloser(bytes.NewReader(file.Data)), nil
}

// DiskFile is a File implementation backed by a path on the local filesystem.
// The file is opened lazily, once per encode pass.
type DiskFile struct {
	Path      string
	MediaType mimetype.MimeType
}

// Name returns the base name of the backing path, so local directory layout is
// not leaked into the part disposition.
func (file DiskFile) Name() string {
	return filepath.Base(file.Path)
}

func (file DiskFile) ContentType() mimetype.MimeType {
	return file.MediaType
}

func (file DiskFile) Open() (io.ReadCloser, error) {
	handle, err := os.Open(file.Path)
	if err != nil {
		return nil, xerrors.Errorf("error opening %v: %w", file.Path, err)
	}
	return handle, nil
}
