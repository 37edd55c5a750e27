// Package errs defines the sentinel errors returned across the steel
// module. Call sites wrap a specific sentinel with context using
// fmt.Errorf("%w: ...", errs.ErrXxx); callers compare with errors.Is.
package errs

import "errors"

// The four failure kinds from the error handling design. The more
// specific causes below are independent values that do not wrap these
// kinds themselves; call sites that report a cause typically wrap it
// together with one of the four kinds in a single error, so both match
// with errors.Is.
var (
	// ErrConfiguration is returned when a codec or structure is declared
	// with contradictory or invalid parameters.
	ErrConfiguration = errors.New("steel: invalid configuration")

	// ErrValidation is returned when a value does not satisfy a codec's
	// or a structure's contract.
	ErrValidation = errors.New("steel: validation failed")

	// ErrMissingField is returned when an unassigned field is read or
	// written.
	ErrMissingField = errors.New("steel: field has no value")

	// ErrDecode is returned when the buffer ends mid-field or produced
	// bytes cannot be decoded.
	ErrDecode = errors.New("steel: decode failed")
)

// Configuration-time causes.
var (
	ErrMultiByteTerminator = errors.New("terminator must be exactly one byte")
	ErrMultiBytePadding    = errors.New("padding must be exactly one byte")
	ErrInvalidFieldSize    = errors.New("field size must be non-negative")
	ErrUnknownOption       = errors.New("option not recognized by field")
	ErrDuplicateField      = errors.New("field name already declared")
)

// Validation-time causes.
var (
	ErrFixedBytesMismatch = errors.New("value does not match fixed bytes")
	ErrIntegerOutOfRange  = errors.New("integer value out of range for field width")
	ErrStringTooLong      = errors.New("encoded string exceeds field size")
	ErrEnumDomain         = errors.New("value is not a member of the enum domain")
	ErrFlagsDomain        = errors.New("value contains bits outside the declared flag set")
	ErrNotEncodable       = errors.New("value cannot be encoded with the field's encoding")
	ErrByteLengthMismatch = errors.New("byte value does not match the field's exact length")
)

// Decode-time causes.
var (
	ErrUnexpectedEOF = errors.New("buffer ended before field could be fully read")
	ErrInvalidUTF8   = errors.New("decoded bytes are not valid text for the field's encoding")
	ErrNotSeekable   = errors.New("cursor does not support seeking")
	ErrNotWritable   = errors.New("cursor does not support writing")
	ErrNotReadable   = errors.New("cursor does not support reading")
)
