package embedding

import (
	"errors"
	"fmt"
)

var (
	// ErrUnavailable means the service could not be reached.
	ErrUnavailable = errors.New("embedding service unavailable")

	// ErrModelMissing means the service does not serve the requested model.
	ErrModelMissing = errors.New("embedding model not installed")

	// ErrEmptyText is returned for blank input.
	ErrEmptyText = errors.New("nothing to embed")
)

// ServiceError is a non-200 answer from the service.
type ServiceError struct {
	Status int
	Body   string
}

func (e *ServiceError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("embedding service returned status %d", e.Status)
	}
	return fmt.Sprintf("embedding service returned status %d: %s", e.Status, e.Body)
}

// IsModelMissing reports whether err means the model is not installed.
// Ollama answers 404 to an embedding request for an unknown model.
func IsModelMissing(err error) bool {
	if errors.Is(err, ErrModelMissing) {
		return true
	}
	var se *ServiceError
	return errors.As(err, &se) && se.Status == 404
}
