package bringup

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/looplab/fsm"
	"github.com/sirupsen/logrus"
	"go.uber.org/atomic"
	"i4.energy/across/rilbridge/ril"
	"i4.energy/across/rilbridge/uicc"
)

// Session is the bring-up worker of one radio power cycle. All events are
// processed in order on a single goroutine started by Start.
type Session struct {
	// id distinguishes completions of this session from late ones of a
	// discarded session
	id      uuid.UUID
	cmds    Commands
	config  Config
	log     logrus.FieldLogger
	machine *fsm.FSM

	// events is the ordered queue consumed by the worker
	events chan event

	ctx        context.Context
	cancel     context.CancelFunc
	done       chan struct{}
	unregister func()
	startOnce  sync.Once
	stopOnce   sync.Once

	// radioEpoch counts radio off or unavailable reports. It is bumped by
	// the reporting goroutine before the event is queued, so a completion
	// already waiting in the queue is dropped too.
	radioEpoch atomic.Uint64

	// Worker state, only touched from the worker goroutine.
	// radioOn mirrors the last radio on/off event seen by the session
	radioOn bool
	// outstanding is set while a card status query is in flight
	outstanding bool
	// querySeq numbers the card status queries; only the completion of
	// the latest one is accepted
	querySeq uint64
	// requery is set when the SIM status changed while a query was in
	// flight; its result is stale and the query is issued again
	requery bool
}

// New returns a Session in StateIdle. Nothing runs until Start.
func New(cmds Commands, config Config, log logrus.FieldLogger) *Session {
	if config.QueueSize <= 0 {
		config.QueueSize = defaultQueueSize
	}

	s := &Session{
		id:     uuid.New(),
		cmds:   cmds,
		config: config,
		events: make(chan event, config.QueueSize),
		done:   make(chan struct{}),
	}
	s.log = log.WithFields(logrus.Fields{
		"component": "bringup",
		"session":   s.id.String(),
	})
	s.ctx, s.cancel = context.WithCancel(context.Background())

	s.machine = fsm.NewFSM(
		StateIdle,
		fsm.Events{
			{Name: EventRadioOn, Src: []string{StateIdle}, Dst: StateRadioOnPendingStatus},
			{Name: EventQuery, Src: []string{StateRadioOnPendingStatus, StateAwaitingCardStatus, StateResolved, StatePending}, Dst: StateAwaitingCardStatus},
			{Name: EventResolve, Src: []string{StateAwaitingCardStatus}, Dst: StateResolved},
			{Name: EventPark, Src: []string{StateAwaitingCardStatus}, Dst: StatePending},
			{Name: EventRadioOff, Src: []string{StateRadioOnPendingStatus, StateAwaitingCardStatus, StateResolved, StatePending}, Dst: StateIdle},
		},
		fsm.Callbacks{
			"enter_state": func(_ context.Context, e *fsm.Event) {
				s.log.WithFields(logrus.Fields{
					"event": e.Event,
					"from":  e.Src,
					"to":    e.Dst,
				}).Debug("state transition")
			},
		},
	)

	return s
}

// ID returns the session identity.
func (s *Session) ID() uuid.UUID {
	return s.id
}

// State returns the current state name.
func (s *Session) State() string {
	return s.machine.Current()
}

// Done is closed once the worker goroutine has exited.
func (s *Session) Done() <-chan struct{} {
	return s.done
}

// Start subscribes for SIM status changes, starts the worker and queues
// the initial radio on event. Calling Start again has no effect.
func (s *Session) Start() {
	s.startOnce.Do(func() {
		s.unregister = s.cmds.RegisterForSimStatusChanged(s.SimStatusChanged)
		go s.run()
		s.post(event{kind: evRadioOn})
	})
}

// Stop detaches the session and waits for the worker to exit. Events
// queued or posted afterwards are dropped.
func (s *Session) Stop() {
	s.stopOnce.Do(func() {
		s.cancel()
		if s.unregister != nil {
			s.unregister()
		}
	})
	s.startOnce.Do(func() { close(s.done) })
	<-s.done
}

// RadioOn tells the session the radio is powered again.
func (s *Session) RadioOn() bool {
	return s.post(event{kind: evRadioOn})
}

// RadioOffOrUnavailable tells the session the radio went away.
func (s *Session) RadioOffOrUnavailable() bool {
	s.radioEpoch.Inc()
	return s.post(event{kind: evRadioOffOrUnavailable})
}

// SimStatusChanged queues a SIM status change. It is the handler
// registered with the command dispatcher.
func (s *Session) SimStatusChanged() {
	s.post(event{kind: evSimStatusChanged})
}

// post queues ev. It reports false, dropping ev, once the session is
// stopped.
func (s *Session) post(ev event) bool {
	if s.ctx.Err() != nil {
		return false
	}
	select {
	case s.events <- ev:
		return true
	case <-s.ctx.Done():
		return false
	}
}

func (s *Session) run() {
	defer close(s.done)
	for {
		select {
		case <-s.ctx.Done():
			return
		case ev := <-s.events:
			// Stop may race with a queued event; the context wins.
			if s.ctx.Err() != nil {
				return
			}
			s.handle(ev)
		}
	}
}

func (s *Session) handle(ev event) {
	switch ev.kind {
	case evRadioOn:
		if s.radioOn {
			return
		}
		s.radioOn = true
		s.fire(EventRadioOn)
		s.query()

	case evSimStatusChanged:
		if !s.radioOn {
			s.log.Debug("SIM status changed while radio is off, ignoring")
			return
		}
		s.query()

	case evCardStatusDone:
		s.handleCardStatus(ev)

	case evRadioOffOrUnavailable:
		s.radioOn = false
		s.outstanding = false
		s.requery = false
		s.fire(EventRadioOff)
	}
}

// query issues a card status query unless one is already in flight, in
// which case the running one is marked stale.
func (s *Session) query() {
	if s.outstanding {
		s.requery = true
		return
	}
	s.outstanding = true
	s.querySeq++
	s.fire(EventQuery)

	id, seq, epoch := s.id, s.querySeq, s.radioEpoch.Load()
	s.cmds.RequestCardStatus(func(status *uicc.CardStatus, err error) {
		s.post(event{kind: evCardStatusDone, session: id, seq: seq, epoch: epoch, status: status, err: err})
	})
}

func (s *Session) handleCardStatus(ev event) {
	if ev.session != s.id {
		s.log.Warn("dropping card status of unknown query")
		return
	}
	if ev.epoch != s.radioEpoch.Load() {
		s.log.Debug("dropping card status of a query issued before the radio went away")
		return
	}
	if !s.outstanding || ev.seq != s.querySeq {
		s.log.Debug("dropping card status of a query abandoned on radio off")
		return
	}
	s.outstanding = false
	if s.requery {
		s.requery = false
		s.log.Debug("SIM status changed during query, querying again")
		s.query()
		return
	}

	if err := s.evaluate(ev.status, ev.err); err != nil {
		s.log.WithError(err).Warn("SIM bring-up halted")
	}
}

// evaluate decides on a card status. It returns the reason when the
// session parks on an error.
func (s *Session) evaluate(status *uicc.CardStatus, err error) error {
	if err != nil {
		s.fire(EventPark)
		return fmt.Errorf("%w: %w", ErrQueryFailed, err)
	}

	if len(status.Applications) == 0 {
		s.log.WithField("radio_state", s.cmds.RadioState().String()).
			Info("card reports no applications")
		s.fire(EventPark)
		return nil
	}

	idx := s.appIndex(status)
	app, ok := status.Application(idx)
	if !ok {
		s.fire(EventPark)
		return fmt.Errorf("%w: index %d, %d applications", ErrAppIndexOutOfRange, idx, len(status.Applications))
	}

	log := s.log.WithFields(logrus.Fields{
		"app_index": idx,
		"app_type":  app.Type.String(),
		"app_state": app.State.String(),
	})

	switch app.State {
	case uicc.AppStatePIN, uicc.AppStatePUK, uicc.AppStateReady:
	default:
		log.Debug("application not ready yet")
		s.fire(EventPark)
		return nil
	}

	switch app.Type {
	case uicc.AppTypeSIM, uicc.AppTypeUSIM, uicc.AppTypeRUIM:
		log.Info("subscription application usable, radio on")
		s.cmds.SetRadioState(ril.RadioOn)
		s.fire(EventResolve)
		return nil
	}

	s.fire(EventPark)
	return fmt.Errorf("%w: %s", ErrUnsupportedApplicationType, app.Type)
}

// appIndex picks the CDMA index on a CDMA phone that reports one and the
// GSM/UMTS index otherwise, with a negative GSM/UMTS index meaning 0.
func (s *Session) appIndex(status *uicc.CardStatus) int {
	if s.config.PhoneType == ril.PhoneCDMA && status.CdmaSubscriptionAppIndex >= 0 {
		return status.CdmaSubscriptionAppIndex
	}
	return max(status.GsmUmtsSubscriptionAppIndex, 0)
}

func (s *Session) fire(name string) {
	err := s.machine.Event(context.Background(), name)
	if err == nil {
		return
	}
	var noTransition fsm.NoTransitionError
	if errors.As(err, &noTransition) {
		return
	}
	s.log.WithError(err).WithField("state", s.machine.Current()).Warn("rejected bring-up event")
}
