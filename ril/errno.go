package ril

import "fmt"

// Errno is the status code rild attaches to every solicited response.
// Zero means success and is never returned as an error.
type Errno int32

const (
	ErrnoSuccess             Errno = 0
	ErrnoRadioNotAvailable   Errno = 1
	ErrnoGenericFailure      Errno = 2
	ErrnoPasswordIncorrect   Errno = 3
	ErrnoSimPin2             Errno = 4
	ErrnoSimPuk2             Errno = 5
	ErrnoRequestNotSupported Errno = 6
	ErrnoCancelled           Errno = 7
	ErrnoSimAbsent           Errno = 11
	ErrnoModeNotSupported    Errno = 13
	ErrnoFdnCheckFailure     Errno = 14
)

var errnoNames = map[Errno]string{
	ErrnoRadioNotAvailable:   "radio not available",
	ErrnoGenericFailure:      "generic failure",
	ErrnoPasswordIncorrect:   "password incorrect",
	ErrnoSimPin2:             "SIM PIN2 required",
	ErrnoSimPuk2:             "SIM PUK2 required",
	ErrnoRequestNotSupported: "request not supported",
	ErrnoCancelled:           "cancelled",
	ErrnoSimAbsent:           "SIM absent",
	ErrnoModeNotSupported:    "mode not supported",
	ErrnoFdnCheckFailure:     "FDN check failure",
}

func (e Errno) Error() string {
	if name, ok := errnoNames[e]; ok {
		return "rild: " + name
	}
	return fmt.Sprintf("rild: errno %d", int32(e))
}

// ErrnoError converts a wire errno into an error, nil on success.
func ErrnoError(code int32) error {
	if code == 0 {
		return nil
	}
	return Errno(code)
}
