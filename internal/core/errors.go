package core

import "errors"

var (
	// ErrPrecondition marks a call made with arguments the engine cannot accept:
	// empty fill sets, non-positive dimensions, out-of-range coordinates or
	// mismatched buffer lengths. The engine state is unchanged when it is returned.
	ErrPrecondition = errors.New("precondition violation")

	// ErrMalformedInput marks user-entered text that could not be decoded.
	ErrMalformedInput = errors.New("malformed input")
)
