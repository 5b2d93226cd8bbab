package middleware

import (
	"errors"
	"net/url"
	"strings"
)

// SanitizeConfig contains configuration for input sanitization
type SanitizeConfig struct {
	MaxStringLength int // Maximum allowed string length
}

// DefaultSanitizeConfig returns default sanitization configuration
func DefaultSanitizeConfig() SanitizeConfig {
	return SanitizeConfig{
		MaxStringLength: 2048,
	}
}

// SanitizeString sanitizes a string input by trimming whitespace, removing
// null bytes and truncating to the configured max length.
func SanitizeString(input string, config SanitizeConfig) string {
	input = strings.ReplaceAll(input, "\x00", "")
	input = strings.TrimSpace(input)

	if config.MaxStringLength > 0 && len(input) > config.MaxStringLength {
		input = input[:config.MaxStringLength]
	}

	return input
}

// ErrInvalidFeedURL indicates a feed URL that failed validation
var ErrInvalidFeedURL = errors.New("feed URL inválida")

// ValidateFeedURL checks that a user-supplied calendar feed URL is a
// well-formed absolute http(s) URL without embedded credentials. Secret ICS
// addresses carry their secret in the path or query, never in userinfo.
func ValidateFeedURL(raw string) (string, error) {
	raw = SanitizeString(raw, DefaultSanitizeConfig())
	if raw == "" {
		return "", ErrInvalidFeedURL
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", ErrInvalidFeedURL
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return "", ErrInvalidFeedURL
	}
	if u.Host == "" {
		return "", ErrInvalidFeedURL
	}
	if u.User != nil {
		return "", ErrInvalidFeedURL
	}

	return u.String(), nil
}
