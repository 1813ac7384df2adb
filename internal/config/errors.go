package config

import (
	"errors"
	"fmt"
)

// Sentinel error kinds for this package. These allow errors.Is/As from callers.
var (
	ErrInvalidConfig = errors.New("invalid config")
	ErrLoadConfig    = errors.New("load config failed")
)

// WrapLoad wraps an external loading error with ErrLoadConfig.
func WrapLoad(err error) error {
	return fmt.Errorf("%w: %w", ErrLoadConfig, err)
}
