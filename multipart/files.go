package multipart

import (
	"reflect"

	"github.com/illuscio-dev/formtools-go/formerrors"
	"github.com/illuscio-dev/formtools-go/formtypes"
	"github.com/illuscio-dev/formtools-go/mimetype"
)

// singleFileWriter handles one file-like value, streaming its content into a
// part carrying the file name and media type.
type singleFileWriter struct{}

func (writer *singleFileWriter) Applicable(value interface{}) bool {
	file, ok := value.(formtypes.File)
	return ok && !isNilFile(file)
}

func (writer *singleFileWriter) Write(
	out *Output, boundary string, key string, value interface{},
) error {
	file := value.(formtypes.File)
	return writeFile(out, boundary, key, file)
}

// isNilFile reports whether a File interface value holds no usable
// implementation, either a nil interface or a typed nil pointer.
func isNilFile(file formtypes.File) bool {
	if file == nil {
		return true
	}
	reflected := reflect.ValueOf(file)
	return reflected.Kind() == reflect.Ptr && reflected.IsNil()
}

// writeFile emits one complete part for file. Shared by the single and
// many-file writers.
func writeFile(out *Output, boundary string, key string, file formtypes.File) error {
	if isNilFile(file) {
		return formerrors.EncodingError.New(
			"nil file in list for field "+key, nil,
		)
	}

	contentType := file.ContentType()
	if contentType == mimetype.UNKNOWN {
		contentType = mimetype.FromFileName(file.Name())
	}

	reader, err := file.Open()
	if err != nil {
		return formerrors.EncodingError.New(
			"could not open file content for field "+key, err,
		)
	}
	defer func() {
		_ = reader.Close()
	}()

	writeBoundary(out, boundary)
	writePartMeta(out, key, file.Name(), contentType)
	out.ReadFrom(reader).WriteCRLF()

	if out.Err() != nil {
		return formerrors.EncodingError.New(
			"could not read file content for field "+key, out.Err(),
		)
	}

	return nil
}

// manyFilesWriter handles an ordered collection of file-like values, emitting
// one part per element under the same field name.
type manyFilesWriter struct{}

var fileType = reflect.TypeOf((*formtypes.File)(nil)).Elem()

func (writer *manyFilesWriter) Applicable(value interface{}) bool {
	if _, ok := value.([]formtypes.File); ok {
		return true
	}

	// Concrete slices of file implementations, such as []formtypes.DiskFile,
	// are recognized by element type, so an empty concrete slice emits zero
	// parts just like an empty []formtypes.File does.
	reflected := reflect.ValueOf(value)
	if !reflected.IsValid() {
		return false
	}
	if reflected.Kind() != reflect.Slice && reflected.Kind() != reflect.Array {
		return false
	}

	return reflected.Type().Elem().Implements(fileType)
}

func (writer *manyFilesWriter) Write(
	out *Output, boundary string, key string, value interface{},
) error {
	if files, ok := value.([]formtypes.File); ok {
		for _, file := range files {
			if err := writeFile(out, boundary, key, file); err != nil {
				return err
			}
		}
		return nil
	}

	reflected := reflect.ValueOf(value)
	for index := 0; index < reflected.Len(); index++ {
		file := reflected.Index(index).Interface().(formtypes.File)
		if err := writeFile(out, boundary, key, file); err != nil {
			return err
		}
	}

	return nil
}
