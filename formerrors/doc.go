/*
Error model for multipart content processing.

This package defines two main objects for handling errors:

• FormErrorType defines an error type.

• FormError is an instance of an error which contains a FormErrorType.

# Default FormErrorType Variables

Pointers to the FormErrorType definitions used by the multipart package are
included here. Instances match their type definition under errors.Is:

	err := processor.Process(template, charset.UTF8, fields)
	if xerrors.Is(err, formerrors.EncodingError) {
		// a writer failed to serialize a value it accepted
	}
*/
package formerrors
