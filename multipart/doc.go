// Encoding of field mappings into multipart/form-data request bodies.
/*
This package turns an ordered mapping of named field values into a single
multipart/form-data byte payload plus the matching Content-Type header value,
for use as an outgoing request body.

The core of the package is the writer chain: an ordered, runtime-extensible
sequence of part writers, each deciding independently whether it can handle a
value's runtime shape. The first writer to accept a value encodes it; a value
accepted by none is handed to a delegate serialization engine, so every field
is always encoded by exactly one writer.

Basic usage:

	engine, err := encoding.NewContentEngine()
	if err != nil {
		return err
	}

	processor := multipart.NewContentProcessor(engine)

	fields := multipart.NewFields().
		Set("name", "value").
		Set("attachment", formtypes.DiskFile{Path: "./report.pdf"})

	body, contentType, err := processor.Encode(charset.UTF8, fields)

Callers introducing their own value kinds register writers on the chain at
runtime:

	processor.Chain().Prepend(&myProtoWriter{})

Prepended writers win over the defaults wherever applicability overlaps, which
is how default behavior for an already-handled shape is overridden without
replacing the chain.

This package only produces bodies; it never parses them, and it performs no
network or filesystem I/O of its own. File content is realized through the
formtypes.File contract, and blocking or cancellation concerns around that I/O
belong to the caller.
*/
package multipart
