package bringup

import "errors"

var (
	// ErrUnsupportedApplicationType is reported when the subscription
	// application is usable (PIN, PUK or READY) but of a type this bridge
	// cannot bring up, e.g. CSIM or ISIM.
	//
	// The session parks and waits for the next SIM status change.
	ErrUnsupportedApplicationType = errors.New("unsupported application type")

	// ErrQueryFailed is reported when rild answers GET_SIM_STATUS with an
	// error. The request is defined never to fail, so this is a protocol
	// violation by the baseband. The session parks.
	ErrQueryFailed = errors.New("card status query failed")

	// ErrAppIndexOutOfRange is reported when the subscription app index
	// does not address one of the applications in the card status.
	ErrAppIndexOutOfRange = errors.New("subscription app index out of range")
)
