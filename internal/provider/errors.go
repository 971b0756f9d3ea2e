package provider

import (
	"errors"
	"fmt"
)

// ErrMissingCredential is returned when a key-based provider is given no key.
var ErrMissingCredential = errors.New("missing credential")

// UnsupportedProviderError reports a provider name outside the supported set.
type UnsupportedProviderError struct {
	Name string
}

func (e *UnsupportedProviderError) Error() string {
	return fmt.Sprintf("unsupported provider %q", e.Name)
}

// UnsupportedOperationError reports an operation the active provider cannot serve.
type UnsupportedOperationError struct {
	Provider  ID
	Operation Operation
}

func (e *UnsupportedOperationError) Error() string {
	return fmt.Sprintf("provider %s does not support %q", e.Provider, e.Operation)
}

// TransportError wraps a network, HTTP status or decoding failure from a backend.
type TransportError struct {
	Provider  ID
	Operation Operation
	Err       error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Provider, e.Operation, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }
