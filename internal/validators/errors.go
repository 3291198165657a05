package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrMissingField     = errors.New("required field is empty")
	ErrInvalidSubject   = errors.New("repository must look like owner/name")
	ErrPasswordMismatch = errors.New("passwords do not match")
	ErrPasswordTooShort = errors.New("password is too short")
	ErrEmptyPost        = errors.New("post needs text or an image")
	ErrNegativeValue    = errors.New("value must not be negative")
)
