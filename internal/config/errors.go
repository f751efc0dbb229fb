package config

import (
	"errors"
	"fmt"
)

// Sentinel error kinds for this package. These allow errors.Is/As from callers.
var (
	// ErrConfiguration marks any missing, unreadable or invalid configuration.
	ErrConfiguration = errors.New("configuration error")

	ErrInvalidConfig = fmt.Errorf("%w: invalid config", ErrConfiguration)
	ErrLoadConfig    = fmt.Errorf("%w: load config failed", ErrConfiguration)
)

func invalid(msg string) error {
	return fmt.Errorf("%w: %s", ErrInvalidConfig, msg)
}

func loadFailed(path string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrLoadConfig, path, err)
}
