// Package llm provides the internal representation of a single image-to-text
// generation call and the errors it can produce.
package llm

import (
	"errors"
	"fmt"
)

// ErrNoImage is returned when a generation request carries no image data.
var ErrNoImage = errors.New("generation request has no image")

// ErrorResponse is the JSON body returned by API routes on failure.
type ErrorResponse struct {
	Error string `json:"error"`
}

// GenerationError wraps a failed call to the upstream generation service
// (auth, quota, network, malformed request).
type GenerationError struct {
	Model string
	Err   error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("generation with %s failed: %v", e.Model, e.Err)
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}
