package client

import "errors"

var (
	ErrUnavailable      = errors.New("weather service unavailable")
	ErrAPIKeyMissing    = errors.New("API key missing")
	ErrLocationNotFound = errors.New("location not found")
	ErrExternalAPI      = errors.New("external API error")
)
