package domain

import "errors"

var (
	// ErrUpstream is returned when a provider is unreachable or answers with a
	// non-success status.
	ErrUpstream = errors.New("upstream error")

	// ErrEmptyResult is returned when a provider answers with a well-formed
	// response that carries no usable data.
	ErrEmptyResult = errors.New("empty result")

	// ErrUnsupportedProvider is returned for unknown speech providers.
	ErrUnsupportedProvider = errors.New("unsupported provider")
)
