package service

import (
	"errors"
	"fmt"
)

var (
	// ErrPersistenceUnavailable - хранилище недоступно; результат неизвестен и не считается ни успехом, ни отказом
	ErrPersistenceUnavailable = errors.New("persistence unavailable")
	ErrGymNotFound            = errors.New("gym not found")
	ErrInvalidLocation        = errors.New("invalid coordinates")
)

func persistenceError(op string, err error) error {
	return fmt.Errorf("service: %s: %w: %w", op, ErrPersistenceUnavailable, err)
}
