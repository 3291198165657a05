package adapter

import (
	"errors"
	"fmt"
)

var (
	ErrBadRequest          = errors.New("bad request")
	ErrUnauthorized        = errors.New("credential rejected")
	ErrForbidden           = errors.New("access forbidden")
	ErrNotFound            = errors.New("document not found")
	ErrVersionConflict     = errors.New("version conflict")
	ErrAlreadyExists       = errors.New("document already exists")
	ErrUnexpectedResponse  = errors.New("unexpected response from store")
	ErrInvalidSubject      = errors.New("invalid subject, expected owner/name")
	ErrTransport           = errors.New("store unreachable")
	ErrServerUnavailable   = fmt.Errorf("%w: store unavailable", ErrTransport)
	ErrWriteOutcomeUnknown = fmt.Errorf("%w: write outcome unknown, re-fetch before retrying", ErrTransport)
)
