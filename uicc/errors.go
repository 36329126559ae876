package uicc

import "errors"

var (
	// ErrInvalidCardState is returned when the card state on the wire is
	// outside the range rild is known to report, even after the REMOVED
	// and SIM_DETECT_INSERTED codes have been folded onto ABSENT and
	// PRESENT.
	//
	// It is always wrapped together with parcel.ErrMalformedRecord.
	ErrInvalidCardState = errors.New("invalid card state")

	// ErrNotFCP is returned by IccIoResult.FCP when the response payload
	// does not start with a File Control Parameters template.
	ErrNotFCP = errors.New("response is not an FCP template")
)
