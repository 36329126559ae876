// Package modem is the base rild command dispatcher. It owns the transport,
// frames and correlates requests with their responses, keeps the radio
// state and fans unsolicited events out to registrants.
package modem

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/sirupsen/logrus"
	"go.uber.org/atomic"
	"i4.energy/across/rilbridge/parcel"
	"i4.energy/across/rilbridge/radio"
	"i4.energy/across/rilbridge/ril"
)

// UnsolicitedHandler processes an unsolicited parcel positioned on its
// response code.
type UnsolicitedHandler interface {
	ProcessUnsolicited(p *parcel.Parcel) error
}

// RIL is a connection to rild. Requests may be issued from any goroutine;
// responses and unsolicited events are delivered on the Loop goroutine.
type RIL struct {
	// transport provides the connection to rild (unix socket, serial, etc.)
	transport Transport
	// config contains the dispatcher configuration
	config Config
	log    logrus.FieldLogger
	// closed indicates if the RIL has been shut down
	closed *atomic.Bool
	// loopRunning indicates if the Loop is currently running
	loopRunning *atomic.Bool

	// serial is the last request serial handed out
	serial *atomic.Int32
	// pending maps serials to requests awaiting a response
	pendingMu sync.Mutex
	pending   map[int32]*pendingRequest
	// writeMu keeps frames from interleaving on the transport
	writeMu sync.Mutex

	stateMu    sync.RWMutex
	radioState ril.RadioState

	unsolMu sync.RWMutex
	unsol   UnsolicitedHandler

	radioStateRegistrants ril.Registrants[ril.RadioState]
	simStatusRegistrants  ril.Registrants[struct{}]
	connectedRegistrants  ril.Registrants[int32]
	ecbmExitRegistrants   ril.Registrants[struct{}]

	// loopCtx is cancelled by Close to stop the main event loop
	loopCtx    context.Context
	loopCancel context.CancelFunc
}

// pendingRequest is a request written to rild whose response has not
// arrived yet.
type pendingRequest struct {
	request int32
	done    func(*Response)
}

// Response is the outcome of one request.
type Response struct {
	Serial  int32
	Request int32
	// Err is the rild errno as a ril.Errno, or a local failure such as a
	// write error or the Loop exiting.
	Err error
	// Parcel is positioned on the response payload. It is nil when Err
	// is a local failure.
	Parcel *parcel.Parcel
}

// New dials rild and returns a RIL in the Unavailable radio state. Call
// Loop to start processing responses.
func New(ctx context.Context, config Config) (*RIL, error) {
	if config.dialer == nil {
		return nil, ErrNoDialer
	}
	config.setDefaults()

	transport, err := config.dialer.Dial(ctx)
	if err != nil {
		return nil, err
	}
	if transport == nil {
		return nil, ErrNotInitialized
	}

	r := &RIL{
		transport:   transport,
		config:      config,
		log:         config.logger.WithField("component", "modem"),
		closed:      atomic.NewBool(false),
		loopRunning: atomic.NewBool(false),
		serial:      atomic.NewInt32(0),
		pending:     make(map[int32]*pendingRequest),
		radioState:  ril.RadioUnavailable,
	}
	r.unsol = r

	// Prepare context for Loop (but don't start it yet)
	r.loopCtx, r.loopCancel = context.WithCancel(context.Background())

	return r, nil
}

// SetUnsolicitedHandler replaces the handler unsolicited parcels are given
// to. The RIL itself, see ProcessUnsolicited, is the default.
func (r *RIL) SetUnsolicitedHandler(h UnsolicitedHandler) {
	r.unsolMu.Lock()
	defer r.unsolMu.Unlock()
	r.unsol = h
}

// Loop is the main event loop reading the transport. It must be called
// exactly once after New. It is the ONLY goroutine that reads from the
// transport:
//
// 1. Splits the byte stream into frames
// 2. Completes pending requests with solicited responses
// 3. Hands unsolicited responses to the unsolicited handler
//
// Malformed frames are logged and dropped. The Loop runs until the
// context is cancelled or the transport fails; pending requests are then
// failed with the reason.
func (r *RIL) Loop(ctx context.Context) error {
	if !r.loopRunning.CompareAndSwap(false, true) {
		return ErrLoopRunning
	}
	defer r.loopRunning.Store(false)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	stop := context.AfterFunc(r.loopCtx, cancel)
	defer stop()

	scanner := bufio.NewScanner(r.transport)
	scanner.Buffer(make([]byte, 0, parcel.MaxFrameSize+4), parcel.MaxFrameSize+4)
	scanner.Split(parcel.Splitter)

	// Channels for frames and errors from the scanner goroutine
	frames := make(chan []byte, 10)
	scanErrs := make(chan error, 1)

	go func() {
		defer close(frames)
		for scanner.Scan() {
			select {
			case frames <- bytes.Clone(scanner.Bytes()):
			case <-ctx.Done():
				return
			}
		}
		if err := scanner.Err(); err != nil {
			select {
			case scanErrs <- err:
			case <-ctx.Done():
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			r.failPending(ctx.Err())
			return ctx.Err()

		case frame, ok := <-frames:
			if !ok {
				// The scanner may have stopped on an error rather than EOF.
				select {
				case err := <-scanErrs:
					r.failPending(err)
					return fmt.Errorf("scanner error: %w", err)
				default:
				}
				r.failPending(io.EOF)
				return io.EOF
			}
			if err := r.dispatch(frame); err != nil {
				r.log.WithError(err).Warn("dropping frame")
			}

		case err := <-scanErrs:
			r.failPending(err)
			return fmt.Errorf("scanner error: %w", err)
		}
	}
}

// dispatch decodes the response header of one frame.
func (r *RIL) dispatch(frame []byte) error {
	p := parcel.New(frame)
	kind, err := p.ReadInt32()
	if err != nil {
		return fmt.Errorf("response type: %w", err)
	}

	switch kind {
	case ril.ResponseUnsolicited:
		r.unsolMu.RLock()
		h := r.unsol
		r.unsolMu.RUnlock()
		return h.ProcessUnsolicited(p)

	case ril.ResponseSolicited:
		serial, err := p.ReadInt32()
		if err != nil {
			return fmt.Errorf("serial: %w", err)
		}
		errno, err := p.ReadInt32()
		if err != nil {
			return fmt.Errorf("errno: %w", err)
		}

		req := r.takePending(serial)
		if req == nil {
			r.log.WithField("serial", serial).Warn("response for unknown serial")
			return nil
		}
		req.done(&Response{
			Serial:  serial,
			Request: req.request,
			Err:     ril.ErrnoError(errno),
			Parcel:  p,
		})
		return nil
	}

	return fmt.Errorf("%w: %d", ErrUnknownResponseType, kind)
}

// ProcessUnsolicited is the base handling of unsolicited responses. It
// covers what the dispatcher itself tracks; everything else is logged
// and dropped.
func (r *RIL) ProcessUnsolicited(p *parcel.Parcel) error {
	code, err := p.ReadInt32()
	if err != nil {
		return fmt.Errorf("unsolicited code: %w", err)
	}
	log := r.log.WithField("code", ril.UnsolName(code))

	switch code {
	case ril.UnsolRadioStateChanged:
		raw, err := p.ReadInt32()
		if err != nil {
			return fmt.Errorf("%s: %w", ril.UnsolName(code), err)
		}
		state, err := radio.Reduce(raw)
		if err != nil {
			return err
		}
		r.SetRadioState(state)

	case ril.UnsolSimStatusChanged:
		r.NotifySimStatusChanged()

	case ril.UnsolRilConnected:
		ints, err := p.ReadInts()
		if err != nil {
			return fmt.Errorf("%s: %w", ril.UnsolName(code), err)
		}
		if len(ints) == 0 {
			return fmt.Errorf("%s: %w: no version", ril.UnsolName(code), parcel.ErrMalformedRecord)
		}
		r.NotifyConnected(ints[0])

	case ril.UnsolExitEmergencyCallbackMode:
		r.NotifyExitEmergencyCallbackMode()

	default:
		log.Debug("unhandled unsolicited response")
	}
	return nil
}

// Send issues request and waits for its response. A non-zero rild errno
// is returned as a ril.Errno together with the response.
func (r *RIL) Send(ctx context.Context, request int32, payload []byte) (*Response, error) {
	// Apply per-request timeout if context has none
	if _, ok := ctx.Deadline(); !ok && r.config.requestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.config.requestTimeout)
		defer cancel()
	}

	respChan := make(chan *Response, 1) // Buffered so the Loop never blocks
	serial, err := r.submit(request, payload, func(resp *Response) {
		respChan <- resp
	})
	if err != nil {
		return nil, err
	}

	select {
	case resp := <-respChan:
		return resp, resp.Err
	case <-ctx.Done():
		r.takePending(serial)
		return nil, fmt.Errorf("%s: %w", ril.RequestName(request), ctx.Err())
	}
}

// SendAsync issues request and returns immediately. done is called exactly
// once, on the Loop goroutine for rild responses or on the calling
// goroutine when the request cannot be written. done must not block.
func (r *RIL) SendAsync(request int32, payload []byte, done func(*Response)) {
	if _, err := r.submit(request, payload, done); err != nil {
		done(&Response{Request: request, Err: err})
	}
}

func (r *RIL) submit(request int32, payload []byte, done func(*Response)) (int32, error) {
	if r.closed.Load() {
		return 0, ErrAlreadyClosed
	}
	if r.transport == nil {
		return 0, ErrNotInitialized
	}

	serial := r.serial.Inc()
	r.pendingMu.Lock()
	r.pending[serial] = &pendingRequest{request: request, done: done}
	r.pendingMu.Unlock()

	frame := parcel.NewWriter().WriteInt32(request).WriteInt32(serial).Bytes()
	frame = append(frame, payload...)

	r.log.WithFields(logrus.Fields{
		"serial":  serial,
		"request": ril.RequestName(request),
	}).Debug("send request")

	r.writeMu.Lock()
	err := parcel.WriteFrame(r.transport, frame)
	r.writeMu.Unlock()
	if err != nil {
		r.takePending(serial)
		return 0, fmt.Errorf("write %s: %w", ril.RequestName(request), err)
	}
	return serial, nil
}

func (r *RIL) takePending(serial int32) *pendingRequest {
	r.pendingMu.Lock()
	defer r.pendingMu.Unlock()
	req, ok := r.pending[serial]
	if !ok {
		return nil
	}
	delete(r.pending, serial)
	return req
}

func (r *RIL) failPending(err error) {
	r.pendingMu.Lock()
	pending := r.pending
	r.pending = make(map[int32]*pendingRequest)
	r.pendingMu.Unlock()

	for serial, req := range pending {
		req.done(&Response{Serial: serial, Request: req.request, Err: err})
	}
}

// RadioState returns the recorded radio state.
func (r *RIL) RadioState() ril.RadioState {
	r.stateMu.RLock()
	defer r.stateMu.RUnlock()
	return r.radioState
}

// SetRadioState records state and notifies the radio state registrants
// when it changed.
func (r *RIL) SetRadioState(state ril.RadioState) {
	r.stateMu.Lock()
	old := r.radioState
	r.radioState = state
	r.stateMu.Unlock()

	if old == state {
		return
	}
	r.log.WithFields(logrus.Fields{
		"from": old.String(),
		"to":   state.String(),
	}).Info("radio state changed")
	r.radioStateRegistrants.Notify(state)
}

// RegisterForRadioStateChanged notifies h on every radio state change.
func (r *RIL) RegisterForRadioStateChanged(h func(ril.RadioState)) (unregister func()) {
	return r.radioStateRegistrants.Register(h)
}

// RegisterForSimStatusChanged notifies h on every SIM status change.
func (r *RIL) RegisterForSimStatusChanged(h func()) (unregister func()) {
	return r.simStatusRegistrants.Register(func(struct{}) { h() })
}

// RegisterForConnected notifies h with the rild version on every
// connection.
func (r *RIL) RegisterForConnected(h func(version int32)) (unregister func()) {
	return r.connectedRegistrants.Register(h)
}

// RegisterForExitEmergencyCallbackMode notifies h whenever the modem leaves
// emergency callback mode.
func (r *RIL) RegisterForExitEmergencyCallbackMode(h func()) (unregister func()) {
	return r.ecbmExitRegistrants.Register(func(struct{}) { h() })
}

// NotifySimStatusChanged runs the SIM status registrants.
func (r *RIL) NotifySimStatusChanged() {
	r.simStatusRegistrants.Notify(struct{}{})
}

// NotifyConnected runs the connected registrants with the rild version.
func (r *RIL) NotifyConnected(version int32) {
	r.connectedRegistrants.Notify(version)
}

// NotifyExitEmergencyCallbackMode runs the emergency callback mode exit
// registrants.
func (r *RIL) NotifyExitEmergencyCallbackMode() {
	r.ecbmExitRegistrants.Notify(struct{}{})
}

// Close shuts down the RIL and releases all resources.
// It stops the event loop and closes the transport connection. After
// calling Close(), the RIL cannot be reused.
func (r *RIL) Close() error {
	if !r.closed.CompareAndSwap(false, true) {
		return ErrAlreadyClosed
	}

	if r.loopCancel != nil {
		r.loopCancel()
	}

	if r.transport != nil {
		return r.transport.Close()
	}
	return nil
}
