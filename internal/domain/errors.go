package domain

import "errors"

var (
	ErrMissingLimitations = errors.New("limitations text is required")
	ErrMissingRecipient   = errors.New("recipient email is required")
	ErrNoFiles            = errors.New("at least one invoice file is required")
	ErrUnsupportedFormat  = errors.New("unsupported file format")
	ErrFileTooLarge       = errors.New("file exceeds maximum allowed size")
	ErrUnparsableResponse = errors.New("could not parse structured result from model response")
	ErrNoReport           = errors.New("no report has been generated yet")
)
