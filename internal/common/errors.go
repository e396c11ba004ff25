// Package common defines shared sentinel errors and small helpers used across
// the WeatherFace client packages. Callers should use errors.Is to match
// these values.
package common

import "errors"

// ErrorValidation is matched by every field-level validation failure.
var ErrorValidation = errors.New("validation error")
