// Package qcril is the Qualcomm RIL extension layered on the base
// dispatcher. It interprets card status records, keeps the active
// subscription, runs SIM bring-up across radio power cycles and scopes
// SIM requests to the active application.
package qcril

import (
	"context"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"
	"go.uber.org/atomic"
	"i4.energy/across/rilbridge/bringup"
	"i4.energy/across/rilbridge/modem"
	"i4.energy/across/rilbridge/parcel"
	"i4.energy/across/rilbridge/radio"
	"i4.energy/across/rilbridge/ril"
	"i4.energy/across/rilbridge/uicc"
	"i4.energy/across/rilbridge/unsol"
)

//go:generate go tool mockgen -source=qcril.go -destination=mock_base.go -package=qcril

// Base is the part of the command dispatcher the extension builds on.
// *modem.RIL implements it.
type Base interface {
	Send(ctx context.Context, request int32, payload []byte) (*modem.Response, error)
	SendAsync(request int32, payload []byte, done func(*modem.Response))
	SetUnsolicitedHandler(h modem.UnsolicitedHandler)
	ProcessUnsolicited(p *parcel.Parcel) error
	SetRadioState(state ril.RadioState)
	RadioState() ril.RadioState
	RegisterForSimStatusChanged(h func()) (unregister func())
	NotifyConnected(version int32)
	NotifyExitEmergencyCallbackMode()
}

// Quirks are the baseband capability flags, resolved once from
// configuration.
type Quirks struct {
	// SkipCdmaSubscription resolves the GSM/UMTS application on CDMA
	// phones.
	SkipCdmaSubscription bool
	// SkipPinPukRetryCounters is set for basebands that omit the retry
	// counters in card status records.
	SkipPinPukRetryCounters bool
	// LegacyDataCallCompat drops the unsolicited responses legacy
	// basebands send in an unparseable shape.
	LegacyDataCallCompat bool
}

// Config configures the extension.
type Config struct {
	Quirks    Quirks
	PhoneType ril.PhoneType
	// PreferredNetworkType and CdmaSubscriptionSource are sent to rild
	// on every connection.
	PreferredNetworkType   int
	CdmaSubscriptionSource int
	// QueueSize is the bring-up session event queue capacity.
	QueueSize int
}

// RIL is the Qualcomm extension of a base dispatcher.
type RIL struct {
	base   Base
	config Config
	log    logrus.FieldLogger

	interpreter *uicc.Interpreter
	reducer     *radio.Reducer
	router      *unsol.Router

	subMu        sync.RWMutex
	subscription uicc.Subscription

	sessionMu sync.Mutex
	session   *bringup.Session

	// version is the rild version of the current connection, -1 before
	// the first one
	version *atomic.Int32

	subscriptionRegistrants ril.Registrants[uicc.Subscription]
}

// New layers the extension on base and installs it as the unsolicited
// handler of base.
func New(base Base, config Config, log logrus.FieldLogger) *RIL {
	r := &RIL{
		base:    base,
		config:  config,
		log:     log.WithField("component", "qcril"),
		version: atomic.NewInt32(-1),
	}
	r.interpreter = uicc.NewInterpreter(uicc.InterpreterConfig{
		PhoneType:               config.PhoneType,
		SkipCdmaSubscription:    config.Quirks.SkipCdmaSubscription,
		SkipPinPukRetryCounters: config.Quirks.SkipPinPukRetryCounters,
		PreferredNetworkType:    config.PreferredNetworkType,
	}, log)
	r.reducer = radio.NewReducer(r, base)
	r.router = unsol.NewRouter(r, base, config.Quirks.LegacyDataCallCompat, log)

	base.SetUnsolicitedHandler(r)
	return r
}

// ProcessUnsolicited routes an unsolicited parcel through the extension.
func (r *RIL) ProcessUnsolicited(p *parcel.Parcel) error {
	return r.router.Route(p)
}

// Subscription returns a snapshot of the active subscription.
func (r *RIL) Subscription() uicc.Subscription {
	r.subMu.RLock()
	defer r.subMu.RUnlock()
	return r.subscription
}

// RegisterForSubscriptionChanged notifies h whenever the active
// application changes.
func (r *RIL) RegisterForSubscriptionChanged(h func(uicc.Subscription)) (unregister func()) {
	return r.subscriptionRegistrants.Register(h)
}

// Version returns the rild version of the current connection, or -1.
func (r *RIL) Version() int32 {
	return r.version.Load()
}

// interpret decodes a card status record and updates the subscription.
func (r *RIL) interpret(p *parcel.Parcel) (*uicc.CardStatus, error) {
	r.subMu.Lock()
	old := r.subscription
	status, err := r.interpreter.Interpret(p, &r.subscription)
	sub := r.subscription
	r.subMu.Unlock()

	if err != nil {
		return nil, fmt.Errorf("%s: %w", ril.RequestName(ril.RequestGetSimStatus), err)
	}
	if sub != old {
		r.subscriptionRegistrants.Notify(sub)
	}
	return status, nil
}

// GetIccCardStatus queries and interprets the card status.
func (r *RIL) GetIccCardStatus(ctx context.Context) (*uicc.CardStatus, error) {
	resp, err := r.base.Send(ctx, ril.RequestGetSimStatus, nil)
	if err != nil {
		return nil, err
	}
	return r.interpret(resp.Parcel)
}

// RadioStateChanged applies a raw radio state code.
func (r *RIL) RadioStateChanged(code int32) error {
	_, err := r.reducer.Apply(code)
	return err
}

// Connected runs the connection init sequence: radio off, preferred
// network type and CDMA subscription source, then the connected
// registrants are notified.
func (r *RIL) Connected(version int32) {
	r.version.Store(version)

	r.base.SendAsync(ril.RequestRadioPower,
		parcel.NewWriter().WriteInts(0).Bytes(),
		r.logFailure(ril.RequestRadioPower))
	r.base.SendAsync(ril.RequestSetPreferredNetworkType,
		parcel.NewWriter().WriteInts(int32(r.config.PreferredNetworkType)).Bytes(),
		r.logFailure(ril.RequestSetPreferredNetworkType))
	r.base.SendAsync(ril.RequestCdmaSetSubscriptionSource,
		parcel.NewWriter().WriteInts(int32(r.config.CdmaSubscriptionSource)).Bytes(),
		r.logFailure(ril.RequestCdmaSetSubscriptionSource))

	r.base.NotifyConnected(version)
}

// ExitEmergencyCallbackMode notifies the ECBM exit registrants.
func (r *RIL) ExitEmergencyCallbackMode() {
	r.base.NotifyExitEmergencyCallbackMode()
}

func (r *RIL) logFailure(request int32) func(*modem.Response) {
	return func(resp *modem.Response) {
		if resp.Err != nil {
			r.log.WithError(resp.Err).
				WithField("request", ril.RequestName(request)).
				Warn("connection init request failed")
		}
	}
}

// StartSession creates and starts the bring-up session, or tells the
// running one the radio is on again.
func (r *RIL) StartSession() {
	r.sessionMu.Lock()
	defer r.sessionMu.Unlock()

	if r.session != nil {
		r.session.RadioOn()
		return
	}
	r.session = bringup.New(r, bringup.Config{
		PhoneType: r.config.PhoneType,
		QueueSize: r.config.QueueSize,
	}, r.log)
	r.session.Start()
}

// StopSession discards the bring-up session.
func (r *RIL) StopSession() {
	r.sessionMu.Lock()
	s := r.session
	r.session = nil
	r.sessionMu.Unlock()

	if s != nil {
		s.Stop()
	}
}

// RadioUnavailable tells the bring-up session the radio is gone.
func (r *RIL) RadioUnavailable() {
	r.sessionMu.Lock()
	defer r.sessionMu.Unlock()

	if r.session != nil {
		r.session.RadioOffOrUnavailable()
	}
}

// SessionState returns the bring-up state, or bringup.StateIdle without a
// session.
func (r *RIL) SessionState() string {
	r.sessionMu.Lock()
	defer r.sessionMu.Unlock()

	if r.session == nil {
		return bringup.StateIdle
	}
	return r.session.State()
}

// Close stops the bring-up session.
func (r *RIL) Close() {
	r.StopSession()
}

// RequestCardStatus issues GET_SIM_STATUS for the bring-up session.
func (r *RIL) RequestCardStatus(done func(*uicc.CardStatus, error)) {
	r.base.SendAsync(ril.RequestGetSimStatus, nil, func(resp *modem.Response) {
		if resp.Err != nil {
			done(nil, resp.Err)
			return
		}
		done(r.interpret(resp.Parcel))
	})
}

// RegisterForSimStatusChanged adds h to the base SIM status registrants.
func (r *RIL) RegisterForSimStatusChanged(h func()) (unregister func()) {
	return r.base.RegisterForSimStatusChanged(h)
}

// SetRadioState records state on the base dispatcher.
func (r *RIL) SetRadioState(state ril.RadioState) {
	r.base.SetRadioState(state)
}

// RadioState returns the radio state recorded by the base dispatcher.
func (r *RIL) RadioState() ril.RadioState {
	return r.base.RadioState()
}

var (
	_ unsol.Handler            = (*RIL)(nil)
	_ radio.Lifecycle          = (*RIL)(nil)
	_ bringup.Commands         = (*RIL)(nil)
	_ modem.UnsolicitedHandler = (*RIL)(nil)
	_ Base                     = (*modem.RIL)(nil)
)
