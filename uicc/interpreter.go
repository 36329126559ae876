package uicc

import (
	"github.com/sirupsen/logrus"
	"i4.energy/across/rilbridge/parcel"
	"i4.energy/across/rilbridge/ril"
)

// InterpreterConfig holds the phone and baseband facts the interpreter
// needs to pick the active application.
type InterpreterConfig struct {
	PhoneType ril.PhoneType
	// SkipCdmaSubscription makes a CDMA phone resolve the GSM/UMTS
	// application like a GSM phone would.
	SkipCdmaSubscription bool
	// SkipPinPukRetryCounters marks basebands that omit the four retry
	// counters per application.
	SkipPinPukRetryCounters bool
	// PreferredNetworkType is snapshotted into the Subscription on each
	// successful resolution.
	PreferredNetworkType int
}

// Interpreter decodes card status records and maintains the active
// Subscription from them.
type Interpreter struct {
	cfg InterpreterConfig
	log logrus.FieldLogger
}

// NewInterpreter returns an Interpreter for cfg.
func NewInterpreter(cfg InterpreterConfig, log logrus.FieldLogger) *Interpreter {
	return &Interpreter{
		cfg: cfg,
		log: log.WithField("component", "uicc"),
	}
}

// Interpret decodes a card status record from p and updates sub from it.
// sub is untouched when decoding fails.
func (i *Interpreter) Interpret(p *parcel.Parcel, sub *Subscription) (*CardStatus, error) {
	status, err := DecodeCardStatus(p, i.cfg.SkipPinPukRetryCounters)
	if err != nil {
		return nil, err
	}
	i.Resolve(status, sub)
	return status, nil
}

// AppIndex returns the subscription application index the phone uses.
// It may be negative or out of range.
func (i *Interpreter) AppIndex(status *CardStatus) int {
	if i.cfg.PhoneType == ril.PhoneCDMA && !i.cfg.SkipCdmaSubscription {
		return status.CdmaSubscriptionAppIndex
	}
	return status.GsmUmtsSubscriptionAppIndex
}

// Resolve copies the active application of status into sub. It returns
// false, leaving sub as it was, when the card is absent or the index does
// not address an application.
func (i *Interpreter) Resolve(status *CardStatus, sub *Subscription) bool {
	idx := i.AppIndex(status)
	log := i.log.WithFields(logrus.Fields{
		"phone_type": i.cfg.PhoneType.String(),
		"app_index":  idx,
	})

	if status.CardState == CardAbsent {
		log.Debug("card absent, subscription unchanged")
		return false
	}

	app, ok := status.Application(idx)
	if !ok {
		if idx >= 0 && len(status.Applications) > 0 {
			log.WithField("applications", len(status.Applications)).
				Warn("subscription app index out of range")
		}
		return false
	}

	sub.AID = app.AID
	sub.IsUSIM = app.Type == AppTypeUSIM
	sub.PreferredNetworkType = i.cfg.PreferredNetworkType
	sub.Resolved = true

	log.WithFields(logrus.Fields{
		"aid":      sub.AID,
		"app_type": app.Type.String(),
	}).Info("active application resolved")
	return true
}
