// Package llm provides generative-language backends. Both backends
// implement Generator so callers can iterate candidate model names
// without caring which transport is underneath.
package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

// Generator submits one prompt to one model and returns its text answer.
type Generator interface {
	Generate(ctx context.Context, model, prompt string) (string, error)
}

// APIError carries the HTTP status of a failed backend call so callers
// can tell auth failures from rate limiting.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("llm: backend status %d: %s", e.StatusCode, e.Body)
}

// IsUnauthorized reports whether err is a credential rejection.
// Callers should stop iterating models on these: the credential will
// not get better.
func IsUnauthorized(err error) bool {
	var ae *APIError
	if errors.As(err, &ae) {
		return ae.StatusCode == http.StatusUnauthorized || ae.StatusCode == http.StatusForbidden
	}
	return false
}

// IsRateLimited reports whether err is a rate-limit rejection.
func IsRateLimited(err error) bool {
	var ae *APIError
	if errors.As(err, &ae) {
		return ae.StatusCode == http.StatusTooManyRequests
	}
	return false
}
