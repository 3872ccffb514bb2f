package verification

import (
	"errors"
	"fmt"

	"github.com/shenikar/gym_presence/internal/models"
)

// Виды ошибок проверки. Сравнивать через errors.Is.
var (
	ErrPermissionDenied    = errors.New("location permission denied")
	ErrPositionUnavailable = errors.New("position unavailable")
	ErrTimeout             = errors.New("location request timed out")
	ErrOutOfRange          = errors.New("location outside allowed range")
	ErrHighSpoofingRisk    = errors.New("high spoofing risk")
	ErrInternal            = errors.New("internal verification error")
	ErrCancelled           = errors.New("verification cancelled")
)

// Error - терминальная ошибка сессии проверки с сохраненной структурированной причиной
type Error struct {
	Kind    error
	Message string
	// Result заполнен для ErrOutOfRange и ErrHighSpoofingRisk
	Result  *models.VerificationResult
	Reasons []string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *Error) Unwrap() []error {
	if e.Cause != nil {
		return []error{e.Kind, e.Cause}
	}
	return []error{e.Kind}
}

// classifySamplerError сводит ошибку сэмплера к одному из видов ошибок геолокации
func classifySamplerError(err error) *Error {
	switch {
	case errors.Is(err, ErrPermissionDenied):
		return &Error{Kind: ErrPermissionDenied, Message: "location permission denied", Cause: err}
	case errors.Is(err, ErrTimeout):
		return &Error{Kind: ErrTimeout, Message: "timed out waiting for location", Cause: err}
	case errors.Is(err, ErrInternal):
		return &Error{Kind: ErrInternal, Message: "location provider failed unexpectedly", Cause: err}
	case errors.Is(err, ErrPositionUnavailable):
		return &Error{Kind: ErrPositionUnavailable, Message: "position unavailable", Cause: err}
	default:
		return &Error{Kind: ErrPositionUnavailable, Message: "position unavailable", Cause: err}
	}
}
