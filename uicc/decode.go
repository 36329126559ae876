package uicc

import (
	"fmt"

	"i4.energy/across/rilbridge/parcel"
)

// DecodeCardStatus reads one card status record from p.
//
// When skipPinPukRetryCounters is false each application is followed by
// two retry counters after PIN1 and two more after PIN2. Older basebands
// do not send them, and reading them there would shift every following
// field.
//
// Applications past MaxApplications are not read. Any error leaves the
// record unusable and is wrapped with parcel.ErrMalformedRecord.
func DecodeCardStatus(p *parcel.Parcel, skipPinPukRetryCounters bool) (*CardStatus, error) {
	raw, err := p.ReadInt32()
	if err != nil {
		return nil, fmt.Errorf("card state: %w", err)
	}
	cardState, err := cardStateFromRIL(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", parcel.ErrMalformedRecord, err)
	}

	status := &CardStatus{CardState: cardState}

	upin, err := p.ReadInt32()
	if err != nil {
		return nil, fmt.Errorf("universal pin state: %w", err)
	}
	status.UniversalPinState = pinStateFromRIL(upin)

	if status.GsmUmtsSubscriptionAppIndex, err = p.ReadInt(); err != nil {
		return nil, fmt.Errorf("gsm/umts app index: %w", err)
	}
	if status.CdmaSubscriptionAppIndex, err = p.ReadInt(); err != nil {
		return nil, fmt.Errorf("cdma app index: %w", err)
	}
	if status.ImsSubscriptionAppIndex, err = p.ReadInt(); err != nil {
		return nil, fmt.Errorf("ims app index: %w", err)
	}

	count, err := p.ReadInt()
	if err != nil {
		return nil, fmt.Errorf("application count: %w", err)
	}
	if count < 0 {
		return nil, fmt.Errorf("%w: application count %d", parcel.ErrMalformedRecord, count)
	}
	count = min(count, MaxApplications)

	status.Applications = make([]ApplicationStatus, count)
	for i := range status.Applications {
		if err := decodeApplication(p, &status.Applications[i], skipPinPukRetryCounters); err != nil {
			return nil, fmt.Errorf("application %d: %w", i, err)
		}
	}

	return status, nil
}

func decodeApplication(p *parcel.Parcel, app *ApplicationStatus, skipRetryCounters bool) error {
	var v [3]int32
	for i := range v {
		var err error
		if v[i], err = p.ReadInt32(); err != nil {
			return err
		}
	}
	app.Type = appTypeFromRIL(v[0])
	app.State = appStateFromRIL(v[1])
	app.PersoSubstate = persoSubstateFromRIL(v[2])

	var err error
	if app.AID, err = p.ReadStringOrEmpty(); err != nil {
		return fmt.Errorf("aid: %w", err)
	}
	if app.Label, err = p.ReadStringOrEmpty(); err != nil {
		return fmt.Errorf("label: %w", err)
	}

	replaced, err := p.ReadInt32()
	if err != nil {
		return err
	}
	app.Pin1Replaced = replaced != 0

	if app.Pin1, err = readPinState(p, skipRetryCounters); err != nil {
		return fmt.Errorf("pin1: %w", err)
	}
	if app.Pin2, err = readPinState(p, skipRetryCounters); err != nil {
		return fmt.Errorf("pin2: %w", err)
	}
	return nil
}

// readPinState reads a PIN state and, unless skipped, the PIN and PUK
// remaining attempt counters that follow it.
func readPinState(p *parcel.Parcel, skipRetryCounters bool) (PinState, error) {
	raw, err := p.ReadInt32()
	if err != nil {
		return PinUnknown, err
	}
	if !skipRetryCounters {
		if err := p.SkipInt32(2); err != nil {
			return PinUnknown, fmt.Errorf("retry counters: %w", err)
		}
	}
	return pinStateFromRIL(raw), nil
}
