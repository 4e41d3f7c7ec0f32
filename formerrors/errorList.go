package formerrors

// A writer accepted a value through its applicability check but failed to
// serialize it. Aborts the whole encode pass.
var EncodingError = NewFormErrorType(
	"EncodingError",
	1000,
)

// Invalid position passed to a writer chain mutation operation.
var IndexError = NewFormErrorType(
	"IndexError",
	1001,
)

// List of default form error type definitions.
var ErrorList = [2]*FormErrorType{
	EncodingError,
	IndexError,
}
