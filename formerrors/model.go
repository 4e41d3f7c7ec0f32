package formerrors

import (
	"fmt"
	"strconv"

	uuid "github.com/satori/go.uuid"
	"golang.org/x/xerrors"
)

/*
FormErrorType defines a TYPE of error the content processing layer can return.
Each type has a unique name and code so callers can branch on failure kind
without string matching.

Since types are declared as pointers, to protect against accidental mutation of
the error type by other packages, the underlying fields of this struct are
private and accessed through functions. Define new error types using
NewFormErrorType().
*/
type FormErrorType struct {
	// Unique human-readable name of the error type.
	name string

	// Unique number identifying the error type.
	code int
}

// Returns a form error type definition. Each definition should only need to be
// declared once, ensuring consistent error codes and names across libraries
// built on this module.
func NewFormErrorType(name string, code int) *FormErrorType {
	return &FormErrorType{
		name: name,
		code: code,
	}
}

// Unique human-readable name of the error type.
func (errorType *FormErrorType) Name() string {
	return errorType.name
}

// Unique number identifying the error type.
func (errorType *FormErrorType) Code() int {
	return errorType.code
}

// Allows the error type definition itself to also be a valid error for things
// like testing error equality with xerrors.Is.
func (errorType *FormErrorType) Error() string {
	return errorType.name + " (" + strconv.Itoa(errorType.code) + ")"
}

// Returns a new form error instance of this type, wrapping source (which may be
// nil when the failure did not originate in another error).
func (errorType *FormErrorType) New(message string, source error) *FormError {
	return &FormError{
		FormErrorType: errorType,
		Message:       message,
		ID:            uuid.NewV4(),
		sourceErr:     source,
		frame:         xerrors.Caller(1),
	}
}

// Newf is New with fmt.Sprintf-style message formatting.
func (errorType *FormErrorType) Newf(format string, args ...interface{}) *FormError {
	return &FormError{
		FormErrorType: errorType,
		Message:       fmt.Sprintf(format, args...),
		ID:            uuid.NewV4(),
		frame:         xerrors.Caller(1),
	}
}

// FormError is a specific error instance of a FormErrorType.
type FormError struct {
	// The type of error being returned.
	*FormErrorType

	// A message detailing what caused the error.
	Message string

	// An id for the error instance, for correlating a returned error with any
	// caller-side logging.
	ID uuid.UUID

	// If this error was returned because of another error, the original error is
	// stored here.
	sourceErr error

	// The xerrors.Frame from where this error was instantiated.
	frame xerrors.Frame
}

// Returns true if the underlying type of this error is the same as errorType.
func (formError *FormError) IsType(errorType *FormErrorType) bool {
	return formError.FormErrorType.Error() == errorType.Error()
}

// Error string to conform to builtin error interface.
func (formError *FormError) Error() string {
	return formError.FormErrorType.Error() + " - " + formError.Message
}

// Implements xerrors.Wrapper, exposing the source error to errors.Is /
// errors.As chains.
func (formError *FormError) Unwrap() error {
	return formError.sourceErr
}

// Is reports whether this error matches its own type definition, so that
// xerrors.Is(err, formerrors.EncodingError) works on instances.
func (formError *FormError) Is(target error) bool {
	targetType, ok := target.(*FormErrorType)
	if !ok {
		return false
	}
	return formError.IsType(targetType)
}

// Format implements xerrors.Formatter so %+v renders the creation frame and the
// source error chain.
func (formError *FormError) Format(state fmt.State, verb rune) {
	xerrors.FormatError(formError, state, verb)
}

// FormatError implements xerrors.Formatter.
func (formError *FormError) FormatError(printer xerrors.Printer) error {
	printer.Print(formError.Error())
	formError.frame.Format(printer)
	return formError.sourceErr
}
