package model

import "errors"

var (
	// ErrConfigurationMissing means a required credential or endpoint is absent.
	ErrConfigurationMissing = errors.New("required configuration is missing")

	// ErrInputNotFound means an input file required for the run is absent.
	ErrInputNotFound = errors.New("input not found")

	// ErrExternalService means the model API call failed (network, auth, rate-limit).
	ErrExternalService = errors.New("external service error")

	// ErrSerialization means the result could not be written.
	ErrSerialization = errors.New("serialization error")
)
