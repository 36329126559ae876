// Package unsol routes unsolicited rild responses. It handles the codes
// the Qualcomm extension overrides and hands everything else, unread, to
// the base dispatcher.
package unsol

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"i4.energy/across/rilbridge/parcel"
	"i4.energy/across/rilbridge/ril"
)

//go:generate go tool mockgen -source=unsol.go -destination=mock_unsol.go -package=unsol

// Handler receives the unsolicited events handled by the router.
type Handler interface {
	RadioStateChanged(code int32) error
	Connected(version int32)
	ExitEmergencyCallbackMode()
}

// Fallback processes unsolicited parcels not handled by the router. The
// parcel is positioned on the response code.
type Fallback interface {
	ProcessUnsolicited(p *parcel.Parcel) error
}

// legacySkipped are the codes legacy basebands emit in a shape the
// current stack cannot parse.
var legacySkipped = map[int32]bool{
	ril.UnsolCdmaSubscriptionSourceChanged: true,
	ril.UnsolCdmaPrlChanged:                true,
	ril.UnsolExitEmergencyCallbackMode:     true,
	ril.UnsolRilConnected:                  true,
}

// Router dispatches unsolicited parcels.
type Router struct {
	handler  Handler
	fallback Fallback
	// legacyDataCallCompat drops the legacySkipped codes
	legacyDataCallCompat bool
	log                  logrus.FieldLogger
}

// NewRouter returns a Router.
func NewRouter(handler Handler, fallback Fallback, legacyDataCallCompat bool, log logrus.FieldLogger) *Router {
	return &Router{
		handler:              handler,
		fallback:             fallback,
		legacyDataCallCompat: legacyDataCallCompat,
		log:                  log.WithField("component", "unsol"),
	}
}

// Route handles one unsolicited parcel positioned on its response code.
// Errors are for the single event only.
func (r *Router) Route(p *parcel.Parcel) error {
	mark := p.Position()
	code, err := p.ReadInt32()
	if err != nil {
		return fmt.Errorf("unsolicited code: %w", err)
	}

	log := r.log.WithField("code", ril.UnsolName(code))

	if r.legacyDataCallCompat && legacySkipped[code] {
		log.Debug("skipping unsolicited response on legacy baseband")
		return nil
	}

	switch code {
	case ril.UnsolRadioStateChanged:
		state, err := p.ReadInt32()
		if err != nil {
			return fmt.Errorf("%s: %w", ril.UnsolName(code), err)
		}
		if err := r.handler.RadioStateChanged(state); err != nil {
			return fmt.Errorf("%s: %w", ril.UnsolName(code), err)
		}

	case ril.UnsolRilConnected:
		ints, err := p.ReadInts()
		if err != nil {
			return fmt.Errorf("%s: %w", ril.UnsolName(code), err)
		}
		if len(ints) == 0 {
			return fmt.Errorf("%s: %w: no version", ril.UnsolName(code), parcel.ErrMalformedRecord)
		}
		log.WithField("version", ints[0]).Info("rild connected")
		r.handler.Connected(ints[0])

	case ril.UnsolExitEmergencyCallbackMode:
		r.handler.ExitEmergencyCallbackMode()

	default:
		if err := p.SetPosition(mark); err != nil {
			return err
		}
		return r.fallback.ProcessUnsolicited(p)
	}

	return nil
}
