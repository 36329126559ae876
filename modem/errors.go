package modem

import "errors"

var (
	// ErrNoDialer is returned when a RIL is constructed without a Dialer.
	//
	// This indicates a configuration error. A Dialer is required in order to
	// establish a connection to rild.
	ErrNoDialer = errors.New("no dialer configured")

	// ErrNotInitialized is returned when an operation is attempted on a RIL
	// that has no transport.
	//
	// This can occur if the Dialer returned no Transport or if the RIL was
	// not created via New.
	ErrNotInitialized = errors.New("ril not initialized")

	// ErrAlreadyClosed is returned when Close is called on a RIL that has
	// already been closed, and by requests issued after Close.
	ErrAlreadyClosed = errors.New("ril already closed")

	// ErrLoopRunning is returned when Loop is called while another Loop is
	// still reading the transport.
	ErrLoopRunning = errors.New("loop already running")

	// ErrUnknownResponseType is returned for a frame whose first integer is
	// neither a solicited nor an unsolicited response.
	//
	// The frame is dropped. This typically indicates a framing error or a
	// peer speaking a different protocol.
	ErrUnknownResponseType = errors.New("unknown response type")
)
