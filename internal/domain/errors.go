package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors shared by providers, stores and the session machine.
var (
	ErrProviderUnavailable    = errors.New("provider unavailable")
	ErrUnsupportedLanguage    = errors.New("unsupported language pair")
	ErrNotFound               = errors.New("not found")
	ErrUnauthorized           = errors.New("unauthorized")
	ErrStoreUnavailable       = errors.New("store unavailable")
	ErrInsufficientVocabulary = errors.New("insufficient vocabulary")
	ErrProtocolViolation      = errors.New("unexpected input")
)

// RejectedError is returned when the store answers with a non-success status.
type RejectedError struct {
	Status int
	Body   string
}

func (e *RejectedError) Error() string {
	return fmt.Sprintf("store rejected request: status %d: %s", e.Status, e.Body)
}
