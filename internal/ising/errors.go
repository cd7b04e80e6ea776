package ising

import "fmt"

// ConfigError reports an unknown mode selector or an invalid configuration
// value. Operations returning it leave the engine state untouched.
type ConfigError struct {
	Key    string
	Value  string
	Reason string
}

func (e *ConfigError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("ising: unknown %s %q", e.Key, e.Value)
	}
	return fmt.Sprintf("ising: invalid %s %q: %s", e.Key, e.Value, e.Reason)
}

func unknown(key, value string) error {
	return &ConfigError{Key: key, Value: value}
}

func invalid(key, value, reason string) error {
	return &ConfigError{Key: key, Value: value, Reason: reason}
}
