package qcril

import "errors"

var (
	// ErrNotSupported is returned for requests this baseband does not
	// implement. Nothing is written to rild.
	ErrNotSupported = errors.New("request not supported by baseband")

	// ErrNoResponse is returned when rild completed a request without a
	// payload the caller needs.
	ErrNoResponse = errors.New("empty response")
)
