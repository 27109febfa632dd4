package translator

import (
	"context"
	"errors"
	"fmt"

	"github.com/nguyenvanduocit/zhtrans/pkg/detector"
)

var ErrRateLimitExceeded = errors.New("rate limit exceeded")

// Translator is the capability every translation provider exposes.
// Implementations must return a *ServiceError for any network, authentication,
// rate-limit or provider-side failure.
type Translator interface {
	Translate(ctx context.Context, text string, source, target detector.Lang) (string, error)
}

// ServiceError reports that a provider was unavailable or rejected a request.
// Callers treat it as recoverable.
type ServiceError struct {
	Provider string
	Reason   string
	Err      error
}

func NewServiceError(provider, reason string, err error) *ServiceError {
	return &ServiceError{Provider: provider, Reason: reason, Err: err}
}

func (e *ServiceError) Error() string {
	msg := e.Reason
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	} else if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", e.Reason, e.Err)
	}
	if e.Provider == "" {
		return msg
	}
	return e.Provider + ": " + msg
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

// IsServiceError reports whether err is, or wraps, a *ServiceError.
func IsServiceError(err error) bool {
	var se *ServiceError
	return errors.As(err, &se)
}
