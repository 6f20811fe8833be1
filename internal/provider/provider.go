// Package provider defines the capabilities the bot consumes from external
// translation and dictionary services.
package provider

import (
	"context"
	"fmt"

	"wordbot/internal/domain"
)

// Translator translates short text between the supported languages.
// Errors wrap domain.ErrProviderUnavailable or domain.ErrUnsupportedLanguage.
type Translator interface {
	Name() string
	Translate(ctx context.Context, text string, src, dest domain.Lang) (string, error)
}

// Dictionary looks up an English definition.
// Errors wrap domain.ErrNotFound or domain.ErrProviderUnavailable.
type Dictionary interface {
	Name() string
	Lookup(ctx context.Context, word string) (string, error)
}

// CheckPair rejects anything but a ru<->en pair
func CheckPair(src, dest domain.Lang) error {
	if !src.Valid() || !dest.Valid() || src == dest {
		return fmt.Errorf("%s->%s: %w", src, dest, domain.ErrUnsupportedLanguage)
	}
	return nil
}

// Unavailable wraps cause as a provider outage
func Unavailable(name string, cause error) error {
	return fmt.Errorf("%s: %w: %v", name, domain.ErrProviderUnavailable, cause)
}
