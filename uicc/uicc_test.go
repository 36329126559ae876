package uicc_test

import (
	"errors"
	"io"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/sirupsen/logrus"
	"i4.energy/across/rilbridge/parcel"
	"i4.energy/across/rilbridge/ril"
	"i4.energy/across/rilbridge/uicc"
)

type rawApp struct {
	appType, appState, perso int32
	aid, label               string
	absentAID                bool
	pin1Replaced             int32
	pin1, pin2               int32
}

type rawStatus struct {
	cardState, upin   int32
	gsm, cdma, ims    int32
	count             int32
	apps              []rawApp
	omitRetryCounters bool
}

func (s rawStatus) encode() []byte {
	w := parcel.NewWriter().
		WriteInt32(s.cardState).
		WriteInt32(s.upin).
		WriteInt32(s.gsm).
		WriteInt32(s.cdma).
		WriteInt32(s.ims)

	count := s.count
	if count == 0 {
		count = int32(len(s.apps))
	}
	w.WriteInt32(count)

	for _, a := range s.apps {
		w.WriteInt32(a.appType).WriteInt32(a.appState).WriteInt32(a.perso)
		w.WriteOptionalString(a.aid, !a.absentAID)
		w.WriteString(a.label)
		w.WriteInt32(a.pin1Replaced)
		w.WriteInt32(a.pin1)
		if !s.omitRetryCounters {
			w.WriteInt32(3).WriteInt32(10)
		}
		w.WriteInt32(a.pin2)
		if !s.omitRetryCounters {
			w.WriteInt32(3).WriteInt32(10)
		}
	}
	return w.Bytes()
}

func usimReady() rawApp {
	return rawApp{appType: 2, appState: 5, aid: "A0000000871002", label: "USIM", pin1: 2, pin2: 1}
}

func testLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func TestDecodeCardStatus(t *testing.T) {
	t.Run("USIM ready on remapped card state", func(t *testing.T) {
		raw := rawStatus{cardState: 5, gsm: 0, cdma: -1, ims: -1, apps: []rawApp{usimReady()}}

		got, err := uicc.DecodeCardStatus(parcel.New(raw.encode()), false)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		expected := &uicc.CardStatus{
			CardState:                   uicc.CardError,
			UniversalPinState:           uicc.PinUnknown,
			GsmUmtsSubscriptionAppIndex: 0,
			CdmaSubscriptionAppIndex:    -1,
			ImsSubscriptionAppIndex:     -1,
			Applications: []uicc.ApplicationStatus{{
				Type:  uicc.AppTypeUSIM,
				State: uicc.AppStateReady,
				AID:   "A0000000871002",
				Label: "USIM",
				Pin1:  uicc.PinEnabledVerified,
				Pin2:  uicc.PinEnabledNotVerified,
			}},
		}
		if diff := cmp.Diff(expected, got); diff != "" {
			t.Errorf("card status mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("Absent AID decodes as empty", func(t *testing.T) {
		app := usimReady()
		app.absentAID = true
		raw := rawStatus{cardState: 1, apps: []rawApp{app}}

		got, err := uicc.DecodeCardStatus(parcel.New(raw.encode()), false)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.Applications[0].AID != "" {
			t.Errorf("expected empty AID, got %q", got.Applications[0].AID)
		}
	})

	t.Run("Unknown raw enum values map to Unknown", func(t *testing.T) {
		raw := rawStatus{cardState: 1, upin: 42, apps: []rawApp{{appType: 99, appState: -4, perso: 77, pin1: 9, pin2: -1}}}

		got, err := uicc.DecodeCardStatus(parcel.New(raw.encode()), false)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		app := got.Applications[0]
		if got.UniversalPinState != uicc.PinUnknown || app.Type != uicc.AppTypeUnknown ||
			app.State != uicc.AppStateUnknown || app.PersoSubstate != uicc.PersoUnknown ||
			app.Pin1 != uicc.PinUnknown || app.Pin2 != uicc.PinUnknown {
			t.Errorf("expected all Unknown variants, got %+v upin=%v", app, got.UniversalPinState)
		}
	})

	t.Run("Truncated record is malformed", func(t *testing.T) {
		raw := rawStatus{cardState: 1, apps: []rawApp{usimReady()}}
		b := raw.encode()

		_, err := uicc.DecodeCardStatus(parcel.New(b[:len(b)-4]), false)
		if !errors.Is(err, parcel.ErrMalformedRecord) {
			t.Errorf("expected ErrMalformedRecord, got: %v", err)
		}
	})

	t.Run("Negative application count is malformed", func(t *testing.T) {
		b := parcel.NewWriter().WriteInt32(1).WriteInt32(0).
			WriteInt32(0).WriteInt32(-1).WriteInt32(-1).WriteInt32(-2).Bytes()

		_, err := uicc.DecodeCardStatus(parcel.New(b), false)
		if !errors.Is(err, parcel.ErrMalformedRecord) {
			t.Errorf("expected ErrMalformedRecord, got: %v", err)
		}
	})
}

func TestCardStateRemap(t *testing.T) {
	expected := map[int32]uicc.CardState{
		0: uicc.CardAbsent,
		1: uicc.CardPresent,
		2: uicc.CardError,
		3: uicc.CardAbsent,
		4: uicc.CardPresent,
		5: uicc.CardError,
		6: uicc.CardRestricted,
	}
	for raw, want := range expected {
		b := rawStatus{cardState: raw}.encode()
		got, err := uicc.DecodeCardStatus(parcel.New(b), false)
		if err != nil {
			t.Errorf("raw %d: unexpected error: %v", raw, err)
			continue
		}
		if got.CardState != want {
			t.Errorf("raw %d: expected %v, got %v", raw, want, got.CardState)
		}
	}

	for _, raw := range []int32{7, 100, -1} {
		b := rawStatus{cardState: raw}.encode()
		_, err := uicc.DecodeCardStatus(parcel.New(b), false)
		if !errors.Is(err, uicc.ErrInvalidCardState) || !errors.Is(err, parcel.ErrMalformedRecord) {
			t.Errorf("raw %d: expected ErrInvalidCardState, got: %v", raw, err)
		}
	}
}

func TestApplicationClamp(t *testing.T) {
	apps := make([]rawApp, 10)
	for i := range apps {
		apps[i] = usimReady()
	}
	raw := rawStatus{cardState: 1, apps: apps}

	got, err := uicc.DecodeCardStatus(parcel.New(raw.encode()), false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got.Applications) != uicc.MaxApplications {
		t.Errorf("expected %d applications, got %d", uicc.MaxApplications, len(got.Applications))
	}
}

func TestRetryCounterDisplacement(t *testing.T) {
	raw := rawStatus{cardState: 1, apps: []rawApp{usimReady()}}
	b := raw.encode()

	withCounters := parcel.New(b)
	if _, err := uicc.DecodeCardStatus(withCounters, false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if withCounters.Remaining() != 0 {
		t.Errorf("expected the full record to be consumed, %d bytes left", withCounters.Remaining())
	}

	withoutCounters := parcel.New(b)
	if _, err := uicc.DecodeCardStatus(withoutCounters, true); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if d := withCounters.Position() - withoutCounters.Position(); d != 4*4 {
		t.Errorf("expected a displacement of 4 integers, got %d bytes", d)
	}

	t.Run("Layout without counters decodes with the flag set", func(t *testing.T) {
		raw.omitRetryCounters = true
		p := parcel.New(raw.encode())

		got, err := uicc.DecodeCardStatus(p, true)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.Applications[0].Pin2 != uicc.PinEnabledNotVerified {
			t.Errorf("expected pin2 enabled_not_verified, got %v", got.Applications[0].Pin2)
		}
		if p.Remaining() != 0 {
			t.Errorf("expected the full record to be consumed, %d bytes left", p.Remaining())
		}
	})
}

func TestInterpret(t *testing.T) {
	tests := []struct {
		name     string
		cfg      uicc.InterpreterConfig
		raw      rawStatus
		prior    uicc.Subscription
		expected uicc.Subscription
	}{
		{
			name: "GSM phone resolves the USIM",
			cfg:  uicc.InterpreterConfig{PhoneType: ril.PhoneGSM, PreferredNetworkType: 9},
			raw:  rawStatus{cardState: 5, gsm: 0, cdma: -1, ims: -1, apps: []rawApp{usimReady()}},
			expected: uicc.Subscription{
				AID:                  "A0000000871002",
				Resolved:             true,
				IsUSIM:               true,
				PreferredNetworkType: 9,
			},
		},
		{
			name: "CDMA phone uses the CDMA index",
			cfg:  uicc.InterpreterConfig{PhoneType: ril.PhoneCDMA},
			raw: rawStatus{cardState: 1, gsm: 0, cdma: 1, apps: []rawApp{
				usimReady(),
				{appType: 3, appState: 2, aid: "A000000343"},
			}},
			expected: uicc.Subscription{AID: "A000000343", Resolved: true},
		},
		{
			name: "CDMA phone with skip quirk uses the GSM index",
			cfg:  uicc.InterpreterConfig{PhoneType: ril.PhoneCDMA, SkipCdmaSubscription: true},
			raw: rawStatus{cardState: 1, gsm: 0, cdma: 1, apps: []rawApp{
				usimReady(),
				{appType: 3, appState: 2, aid: "A000000343"},
			}},
			expected: uicc.Subscription{AID: "A0000000871002", Resolved: true, IsUSIM: true},
		},
		{
			name:     "Absent card leaves prior subscription",
			cfg:      uicc.InterpreterConfig{PhoneType: ril.PhoneGSM},
			raw:      rawStatus{cardState: 3, gsm: 0, apps: []rawApp{usimReady()}},
			prior:    uicc.Subscription{AID: "OLD", Resolved: true},
			expected: uicc.Subscription{AID: "OLD", Resolved: true},
		},
		{
			// No fallback to index 0 here, unlike the bring-up evaluation.
			name:     "Negative GSM index leaves subscription unset",
			cfg:      uicc.InterpreterConfig{PhoneType: ril.PhoneGSM},
			raw:      rawStatus{cardState: 1, gsm: -1, apps: []rawApp{usimReady()}},
			expected: uicc.Subscription{},
		},
		{
			name:     "Index past the end leaves subscription unset",
			cfg:      uicc.InterpreterConfig{PhoneType: ril.PhoneGSM},
			raw:      rawStatus{cardState: 1, gsm: 4, apps: []rawApp{usimReady()}},
			expected: uicc.Subscription{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			interp := uicc.NewInterpreter(tt.cfg, testLogger())
			sub := tt.prior

			if _, err := interp.Interpret(parcel.New(tt.raw.encode()), &sub); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if diff := cmp.Diff(tt.expected, sub); diff != "" {
				t.Errorf("subscription mismatch (-want +got):\n%s", diff)
			}
		})
	}

	t.Run("Interpreting the same bytes twice is idempotent", func(t *testing.T) {
		interp := uicc.NewInterpreter(uicc.InterpreterConfig{PhoneType: ril.PhoneGSM}, testLogger())
		b := rawStatus{cardState: 1, apps: []rawApp{usimReady()}}.encode()

		var sub1, sub2 uicc.Subscription
		first, err := interp.Interpret(parcel.New(b), &sub1)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		second, err := interp.Interpret(parcel.New(b), &sub1)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, err := interp.Interpret(parcel.New(b), &sub2); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if diff := cmp.Diff(first, second); diff != "" {
			t.Errorf("card status mismatch (-first +second):\n%s", diff)
		}
		if diff := cmp.Diff(sub1, sub2); diff != "" {
			t.Errorf("subscription mismatch (-first +second):\n%s", diff)
		}
	})

	t.Run("Decode failure leaves subscription untouched", func(t *testing.T) {
		interp := uicc.NewInterpreter(uicc.InterpreterConfig{PhoneType: ril.PhoneGSM}, testLogger())
		b := rawStatus{cardState: 1, apps: []rawApp{usimReady()}}.encode()
		sub := uicc.Subscription{AID: "OLD"}

		if _, err := interp.Interpret(parcel.New(b[:40]), &sub); !errors.Is(err, parcel.ErrMalformedRecord) {
			t.Errorf("expected ErrMalformedRecord, got: %v", err)
		}
		if sub.AID != "OLD" {
			t.Errorf("expected subscription untouched, got %+v", sub)
		}
	})
}

func TestIccIoResult(t *testing.T) {
	// FCP of a transparent EF of 10 bytes, file id 6F07.
	fcpHex := "621982024121" + "83026f07" + "a503800171" + "8a0105" + "8b036f0606" + "8002000a"

	b := parcel.NewWriter().WriteInt32(0x90).WriteInt32(0x00).WriteString(fcpHex).Bytes()

	res, err := uicc.DecodeIccIoResult(parcel.New(b))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.Success() {
		t.Errorf("expected success for %v", res)
	}

	fcp, err := res.FCP()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	expected := &uicc.FCP{
		FileDescriptor: []byte{0x41, 0x21},
		FileID:         []byte{0x6f, 0x07},
		FileSize:       10,
	}
	if diff := cmp.Diff(expected, fcp); diff != "" {
		t.Errorf("FCP mismatch (-want +got):\n%s", diff)
	}

	t.Run("Non-FCP payload", func(t *testing.T) {
		res := &uicc.IccIoResult{SW1: 0x90, Payload: []byte{0x6f, 0x00}}
		if _, err := res.FCP(); !errors.Is(err, uicc.ErrNotFCP) {
			t.Errorf("expected ErrNotFCP, got: %v", err)
		}
	})

	t.Run("Error status words", func(t *testing.T) {
		res := &uicc.IccIoResult{SW1: 0x6a, SW2: 0x82}
		if res.Success() {
			t.Error("expected 6A82 to be a failure")
		}
	})

	t.Run("Invalid hex is malformed", func(t *testing.T) {
		b := parcel.NewWriter().WriteInt32(0x90).WriteInt32(0).WriteString("zz").Bytes()
		if _, err := uicc.DecodeIccIoResult(parcel.New(b)); !errors.Is(err, parcel.ErrMalformedRecord) {
			t.Errorf("expected ErrMalformedRecord, got: %v", err)
		}
	})
}
