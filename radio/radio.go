// Package radio turns raw radio state codes reported by the baseband into
// ril.RadioState transitions and drives the bring-up session lifecycle
// that goes with them.
package radio

import (
	"errors"
	"fmt"

	"i4.energy/across/rilbridge/ril"
)

//go:generate go tool mockgen -source=radio.go -destination=mock_radio.go -package=radio

// ErrUnrecognizedRadioState is returned for a raw radio state code outside
// the known table. It means the baseband speaks a protocol revision this
// bridge does not understand; the event must be dropped, not coerced.
var ErrUnrecognizedRadioState = errors.New("unrecognized radio state")

// Reduce maps a raw RADIO_STATE_CHANGED code to a RadioState. Codes 10 and
// 13 are the legacy SIM_READY/RUIM_READY codes some basebands still send
// for a powered radio.
func Reduce(code int32) (ril.RadioState, error) {
	switch code {
	case 0:
		return ril.RadioOff, nil
	case 1:
		return ril.RadioUnavailable, nil
	case 2, 10, 13:
		return ril.RadioOn, nil
	}
	return 0, fmt.Errorf("%w: %d", ErrUnrecognizedRadioState, code)
}

// Lifecycle is notified before a new radio state is recorded.
type Lifecycle interface {
	// StartSession creates the bring-up session if none exists, or
	// tells the existing one the radio is on again.
	StartSession()
	// StopSession discards the bring-up session, if any.
	StopSession()
	// RadioUnavailable tells the session the radio is gone without
	// discarding it.
	RadioUnavailable()
}

// Recorder stores the radio state, typically the command dispatcher.
type Recorder interface {
	SetRadioState(ril.RadioState)
}

// Reducer applies raw radio state codes.
type Reducer struct {
	lifecycle Lifecycle
	recorder  Recorder
}

// NewReducer returns a Reducer driving lifecycle and recorder.
func NewReducer(lifecycle Lifecycle, recorder Recorder) *Reducer {
	return &Reducer{lifecycle: lifecycle, recorder: recorder}
}

// Apply reduces code, runs the matching session lifecycle hook and then
// records the new state. Nothing is applied for an unrecognized code.
func (r *Reducer) Apply(code int32) (ril.RadioState, error) {
	state, err := Reduce(code)
	if err != nil {
		return 0, err
	}

	switch state {
	case ril.RadioOff:
		r.lifecycle.StopSession()
	case ril.RadioUnavailable:
		r.lifecycle.RadioUnavailable()
	case ril.RadioOn:
		r.lifecycle.StartSession()
	}

	r.recorder.SetRadioState(state)
	return state, nil
}
