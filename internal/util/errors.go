package util

import "errors"

var (
	ErrMissingAPIKey = errors.New("congress api key missing")
	ErrValidation    = errors.New("invalid upstream record")
)
