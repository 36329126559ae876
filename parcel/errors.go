package parcel

import "errors"

var (
	// ErrMalformedRecord is returned when a parcel ends before all fields
	// of the record being decoded have been read, or when a length field
	// carries a value that cannot describe data in the buffer.
	//
	// It is fatal for the record being decoded only. Callers drop the
	// record and keep processing the stream.
	ErrMalformedRecord = errors.New("malformed record")

	// ErrFrameTooLarge is returned by Splitter when a frame header
	// announces a payload larger than MaxFrameSize.
	//
	// This typically indicates a framing error on the socket, garbage on a
	// serial line, or a peer speaking a different protocol.
	ErrFrameTooLarge = errors.New("frame too large")

	// ErrInvalidPosition is returned by SetPosition when the mark lies
	// outside the parcel data.
	ErrInvalidPosition = errors.New("invalid parcel position")
)
