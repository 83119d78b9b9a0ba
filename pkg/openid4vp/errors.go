package openid4vp

import "errors"

var (
	// ErrInputDecode is returned when the request buffer is not valid UTF-8, JSON or the expected shape
	ErrInputDecode = errors.New("INPUT_DECODE_FAILURE")

	// ErrNoProvider is returned when no provider in the request speaks OpenID4VP
	ErrNoProvider = errors.New("NO_OPENID4VP_PROVIDER")

	// ErrWrappedPayload is returned when a wrapped request is not a well-formed JWT compact serialization or its payload is not an OpenID4VP request
	ErrWrappedPayload = errors.New("WRAPPED_PAYLOAD_MALFORMED")
)
