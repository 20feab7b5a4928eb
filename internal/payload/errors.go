package payload

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyInput         = errors.New("Base64 string is empty after cleaning")
	ErrInvalidBase64      = errors.New("invalid base64")
	ErrEmptyPayload       = errors.New("Decoded data is empty")
	ErrUnrecognizedFormat = errors.New("Unable to detect file type. Supported types: PDF, PNG, ZPLII, EPL2")
)

// InvalidBase64Error carries the decoder diagnostic for a cleaned string that
// is not valid standard base64.
type InvalidBase64Error struct {
	Err error
}

func (e *InvalidBase64Error) Error() string {
	return fmt.Sprintf("Failed to decode base64: %v. Please ensure the string is valid base64.", e.Err)
}

func (e *InvalidBase64Error) Unwrap() error { return e.Err }

func (e *InvalidBase64Error) Is(target error) bool { return target == ErrInvalidBase64 }
