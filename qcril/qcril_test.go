package qcril_test

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/sirupsen/logrus"
	"go.uber.org/mock/gomock"
	"i4.energy/across/rilbridge/bringup"
	"i4.energy/across/rilbridge/modem"
	"i4.energy/across/rilbridge/parcel"
	"i4.energy/across/rilbridge/qcril"
	"i4.energy/across/rilbridge/ril"
	"i4.energy/across/rilbridge/uicc"
)

const usimAID = "A0000000871002FF33FF018900000100"

func quietLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// usimReady is a card status record with one ready USIM at index 0.
func usimReady() []byte {
	return parcel.NewWriter().
		WriteInt32(1).          // card present
		WriteInt32(0).          // universal PIN
		WriteInt32(0).          // GSM/UMTS index
		WriteInt32(-1).         // CDMA index
		WriteInt32(-1).         // IMS index
		WriteInt32(1).          // applications
		WriteInt32(2).          // USIM
		WriteInt32(5).          // ready
		WriteInt32(0).          // perso substate
		WriteString(usimAID).   // AID
		WriteString("Telenor"). // label
		WriteInt32(0).          // PIN1 replaced
		WriteInt32(3).          // PIN1 disabled
		WriteInt32(3).WriteInt32(10).
		WriteInt32(1). // PIN2 enabled, not verified
		WriteInt32(3).WriteInt32(10).
		Bytes()
}

func unsolicited(code int32, payload ...int32) *parcel.Parcel {
	w := parcel.NewWriter().WriteInt32(code)
	for _, v := range payload {
		w.WriteInt32(v)
	}
	return parcel.New(w.Bytes())
}

func newRIL(t *testing.T, base *qcril.MockBase, config qcril.Config) *qcril.RIL {
	t.Helper()
	base.EXPECT().SetUnsolicitedHandler(gomock.Any())
	r := qcril.New(base, config, quietLogger())
	t.Cleanup(r.Close)
	return r
}

// resolve makes usimReady the active subscription.
func resolve(t *testing.T, base *qcril.MockBase, r *qcril.RIL) {
	t.Helper()
	base.EXPECT().Send(gomock.Any(), ril.RequestGetSimStatus, nil).
		Return(&modem.Response{Request: ril.RequestGetSimStatus, Parcel: parcel.New(usimReady())}, nil)

	if _, err := r.GetIccCardStatus(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func eventually(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatal("condition not met in time")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestNew(t *testing.T) {
	ctrl := gomock.NewController(t)
	base := qcril.NewMockBase(ctrl)

	var installed modem.UnsolicitedHandler
	base.EXPECT().SetUnsolicitedHandler(gomock.Any()).Do(func(h modem.UnsolicitedHandler) {
		installed = h
	})
	r := qcril.New(base, qcril.Config{}, quietLogger())

	if installed != r {
		t.Error("extension must install itself as the unsolicited handler")
	}
	if r.Version() != -1 {
		t.Errorf("expected version -1 before connection, got %d", r.Version())
	}
	if r.SessionState() != bringup.StateIdle {
		t.Errorf("expected idle session, got %s", r.SessionState())
	}
}

func TestSimBringup(t *testing.T) {
	ctrl := gomock.NewController(t)
	base := qcril.NewMockBase(ctrl)
	r := newRIL(t, base, qcril.Config{PhoneType: ril.PhoneGSM, PreferredNetworkType: 9})

	var subs []uicc.Subscription
	r.RegisterForSubscriptionChanged(func(s uicc.Subscription) { subs = append(subs, s) })

	unregistered := make(chan struct{}, 1)
	radioOn := make(chan struct{}, 2)

	base.EXPECT().RegisterForSimStatusChanged(gomock.Any()).Return(func() { unregistered <- struct{}{} })
	base.EXPECT().SendAsync(ril.RequestGetSimStatus, nil, gomock.Any()).
		Do(func(_ int32, _ []byte, done func(*modem.Response)) {
			done(&modem.Response{Request: ril.RequestGetSimStatus, Parcel: parcel.New(usimReady())})
		})
	// Once from the radio state change, once when the application
	// resolves.
	base.EXPECT().SetRadioState(ril.RadioOn).Times(2).Do(func(ril.RadioState) {
		radioOn <- struct{}{}
	})
	base.EXPECT().RadioState().Return(ril.RadioOn).AnyTimes()

	if err := r.ProcessUnsolicited(unsolicited(ril.UnsolRadioStateChanged, 2)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for range 2 {
		select {
		case <-radioOn:
		case <-time.After(time.Second):
			t.Fatal("radio not declared on")
		}
	}
	eventually(t, func() bool { return r.SessionState() == bringup.StateResolved })

	want := uicc.Subscription{AID: usimAID, Resolved: true, IsUSIM: true, PreferredNetworkType: 9}
	if diff := cmp.Diff(want, r.Subscription()); diff != "" {
		t.Errorf("subscription mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]uicc.Subscription{want}, subs); diff != "" {
		t.Errorf("subscription notifications mismatch (-want +got):\n%s", diff)
	}

	base.EXPECT().SetRadioState(ril.RadioOff)
	if err := r.ProcessUnsolicited(unsolicited(ril.UnsolRadioStateChanged, 0)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	select {
	case <-unregistered:
	default:
		t.Error("session must unregister from SIM status changes on radio off")
	}
	if r.SessionState() != bringup.StateIdle {
		t.Errorf("expected idle after radio off, got %s", r.SessionState())
	}
}

func TestRadioUnavailableKeepsSession(t *testing.T) {
	ctrl := gomock.NewController(t)
	base := qcril.NewMockBase(ctrl)
	r := newRIL(t, base, qcril.Config{PhoneType: ril.PhoneGSM})

	queried := make(chan func(*modem.Response), 2)
	base.EXPECT().RegisterForSimStatusChanged(gomock.Any()).Return(func() {})
	base.EXPECT().SendAsync(ril.RequestGetSimStatus, nil, gomock.Any()).
		Do(func(_ int32, _ []byte, done func(*modem.Response)) { queried <- done }).
		Times(2)
	base.EXPECT().SetRadioState(gomock.Any()).AnyTimes()

	r.ProcessUnsolicited(unsolicited(ril.UnsolRadioStateChanged, 2))
	<-queried

	r.ProcessUnsolicited(unsolicited(ril.UnsolRadioStateChanged, 1))
	eventually(t, func() bool { return r.SessionState() == bringup.StateIdle })

	// The same session comes back with the radio and queries again.
	r.ProcessUnsolicited(unsolicited(ril.UnsolRadioStateChanged, 13))
	select {
	case <-queried:
	case <-time.After(time.Second):
		t.Fatal("no card status query after the radio came back")
	}
}

func TestUnrecognizedRadioState(t *testing.T) {
	ctrl := gomock.NewController(t)
	base := qcril.NewMockBase(ctrl)
	r := newRIL(t, base, qcril.Config{})

	err := r.ProcessUnsolicited(unsolicited(ril.UnsolRadioStateChanged, 7))
	if err == nil {
		t.Fatal("expected error for radio state 7")
	}
	if r.SessionState() != bringup.StateIdle {
		t.Errorf("no session may start on an unrecognized state, got %s", r.SessionState())
	}
}

func TestConnected(t *testing.T) {
	t.Run("Sends the init sequence and notifies", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		base := qcril.NewMockBase(ctrl)
		r := newRIL(t, base, qcril.Config{PreferredNetworkType: 9, CdmaSubscriptionSource: 1})

		gomock.InOrder(
			base.EXPECT().SendAsync(ril.RequestRadioPower,
				parcel.NewWriter().WriteInts(0).Bytes(), gomock.Any()).
				Do(func(_ int32, _ []byte, done func(*modem.Response)) {
					done(&modem.Response{Err: ril.ErrnoRadioNotAvailable})
				}),
			base.EXPECT().SendAsync(ril.RequestSetPreferredNetworkType,
				parcel.NewWriter().WriteInts(9).Bytes(), gomock.Any()),
			base.EXPECT().SendAsync(ril.RequestCdmaSetSubscriptionSource,
				parcel.NewWriter().WriteInts(1).Bytes(), gomock.Any()),
			base.EXPECT().NotifyConnected(int32(12)),
		)

		p := parcel.New(parcel.NewWriter().WriteInt32(ril.UnsolRilConnected).WriteInts(12).Bytes())
		if err := r.ProcessUnsolicited(p); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if r.Version() != 12 {
			t.Errorf("expected version 12, got %d", r.Version())
		}
	})

	t.Run("Dropped on legacy basebands", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		base := qcril.NewMockBase(ctrl)
		r := newRIL(t, base, qcril.Config{Quirks: qcril.Quirks{LegacyDataCallCompat: true}})

		p := parcel.New(parcel.NewWriter().WriteInt32(ril.UnsolRilConnected).WriteInts(12).Bytes())
		if err := r.ProcessUnsolicited(p); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if r.Version() != -1 {
			t.Errorf("expected no connection on legacy baseband, got version %d", r.Version())
		}
	})
}

func TestUnsolicitedDelegation(t *testing.T) {
	t.Run("Unhandled codes reach the base rewound", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		base := qcril.NewMockBase(ctrl)
		r := newRIL(t, base, qcril.Config{})

		base.EXPECT().ProcessUnsolicited(gomock.Any()).DoAndReturn(func(p *parcel.Parcel) error {
			code, err := p.ReadInt32()
			if err != nil || code != ril.UnsolSimStatusChanged {
				t.Errorf("base got code %d, %v", code, err)
			}
			return nil
		})

		if err := r.ProcessUnsolicited(unsolicited(ril.UnsolSimStatusChanged)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("Emergency callback mode exit", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		base := qcril.NewMockBase(ctrl)
		r := newRIL(t, base, qcril.Config{})

		base.EXPECT().NotifyExitEmergencyCallbackMode()
		if err := r.ProcessUnsolicited(unsolicited(ril.UnsolExitEmergencyCallbackMode)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})
}

func TestGetIccCardStatus(t *testing.T) {
	t.Run("Errno passes through", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		base := qcril.NewMockBase(ctrl)
		r := newRIL(t, base, qcril.Config{})

		base.EXPECT().Send(gomock.Any(), ril.RequestGetSimStatus, nil).
			Return(&modem.Response{Err: ril.ErrnoRadioNotAvailable}, ril.ErrnoRadioNotAvailable)

		if _, err := r.GetIccCardStatus(context.Background()); !errors.Is(err, ril.ErrnoRadioNotAvailable) {
			t.Errorf("expected ErrnoRadioNotAvailable, got: %v", err)
		}
	})

	t.Run("Malformed record leaves the subscription", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		base := qcril.NewMockBase(ctrl)
		r := newRIL(t, base, qcril.Config{})
		resolve(t, base, r)

		truncated := usimReady()[:40]
		base.EXPECT().Send(gomock.Any(), ril.RequestGetSimStatus, nil).
			Return(&modem.Response{Parcel: parcel.New(truncated)}, nil)

		if _, err := r.GetIccCardStatus(context.Background()); !errors.Is(err, parcel.ErrMalformedRecord) {
			t.Errorf("expected ErrMalformedRecord, got: %v", err)
		}
		if r.Subscription().AID != usimAID {
			t.Errorf("subscription changed on a malformed record: %+v", r.Subscription())
		}
	})
}

func TestAIDScopedRequests(t *testing.T) {
	tests := []struct {
		name    string
		call    func(ctx context.Context, r *qcril.RIL) (int, error)
		request int32
		payload []byte
	}{
		{
			name: "SupplyIccPin2",
			call: func(ctx context.Context, r *qcril.RIL) (int, error) {
				return r.SupplyIccPin2(ctx, "1234")
			},
			request: ril.RequestEnterSimPin2,
			payload: parcel.NewWriter().WriteStrings("1234", usimAID).Bytes(),
		},
		{
			name: "ChangeIccPin2",
			call: func(ctx context.Context, r *qcril.RIL) (int, error) {
				return r.ChangeIccPin2(ctx, "1234", "4321")
			},
			request: ril.RequestChangeSimPin2,
			payload: parcel.NewWriter().WriteStrings("1234", "4321", usimAID).Bytes(),
		},
		{
			name: "SupplyIccPuk",
			call: func(ctx context.Context, r *qcril.RIL) (int, error) {
				return r.SupplyIccPuk(ctx, "12345678", "0000")
			},
			request: ril.RequestEnterSimPuk,
			payload: parcel.NewWriter().WriteStrings("12345678", "0000", usimAID).Bytes(),
		},
		{
			name: "SupplyIccPuk2",
			call: func(ctx context.Context, r *qcril.RIL) (int, error) {
				return r.SupplyIccPuk2(ctx, "87654321", "1111")
			},
			request: ril.RequestEnterSimPuk2,
			payload: parcel.NewWriter().WriteStrings("87654321", "1111", usimAID).Bytes(),
		},
		{
			name: "SetFacilityLock",
			call: func(ctx context.Context, r *qcril.RIL) (int, error) {
				return r.SetFacilityLock(ctx, "SC", true, "1234", 7)
			},
			request: ril.RequestSetFacilityLock,
			payload: parcel.NewWriter().WriteStrings("SC", "1", "1234", "7", usimAID).Bytes(),
		},
		{
			name: "QueryFacilityLock",
			call: func(ctx context.Context, r *qcril.RIL) (int, error) {
				return r.QueryFacilityLock(ctx, "FD", "", 0)
			},
			request: ril.RequestQueryFacilityLock,
			payload: parcel.NewWriter().WriteStrings("FD", "", "0", usimAID).Bytes(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			base := qcril.NewMockBase(ctrl)
			r := newRIL(t, base, qcril.Config{})
			resolve(t, base, r)

			base.EXPECT().Send(gomock.Any(), tt.request, gomock.Any()).
				DoAndReturn(func(_ context.Context, _ int32, payload []byte) (*modem.Response, error) {
					if diff := cmp.Diff(tt.payload, payload); diff != "" {
						t.Errorf("payload mismatch (-want +got):\n%s", diff)
					}
					return &modem.Response{
						Request: tt.request,
						Parcel:  parcel.New(parcel.NewWriter().WriteInts(2).Bytes()),
					}, nil
				})

			got, err := tt.call(context.Background(), r)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != 2 {
				t.Errorf("expected 2, got %d", got)
			}
		})
	}

	t.Run("Attempts reported with a wrong PIN2", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		base := qcril.NewMockBase(ctrl)
		r := newRIL(t, base, qcril.Config{})

		base.EXPECT().Send(gomock.Any(), ril.RequestEnterSimPin2, gomock.Any()).
			Return(&modem.Response{
				Err:    ril.ErrnoPasswordIncorrect,
				Parcel: parcel.New(parcel.NewWriter().WriteInts(1).Bytes()),
			}, ril.ErrnoPasswordIncorrect)

		attempts, err := r.SupplyIccPin2(context.Background(), "0000")
		if !errors.Is(err, ril.ErrnoPasswordIncorrect) {
			t.Errorf("expected ErrnoPasswordIncorrect, got: %v", err)
		}
		if attempts != 1 {
			t.Errorf("expected 1 attempt left, got %d", attempts)
		}
	})

	t.Run("Absent AID before resolution", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		base := qcril.NewMockBase(ctrl)
		r := newRIL(t, base, qcril.Config{})

		want := parcel.NewWriter().WriteInt32(1).WriteNullString().Bytes()
		base.EXPECT().Send(gomock.Any(), ril.RequestGetIMSI, want).
			Return(&modem.Response{
				Parcel: parcel.New(parcel.NewWriter().WriteString("242011234567890").Bytes()),
			}, nil)

		imsi, err := r.GetIMSI(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if imsi != "242011234567890" {
			t.Errorf("unexpected IMSI %q", imsi)
		}
	})

	t.Run("GetIMSI without payload", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		base := qcril.NewMockBase(ctrl)
		r := newRIL(t, base, qcril.Config{})
		resolve(t, base, r)

		want := parcel.NewWriter().WriteStrings(usimAID).Bytes()
		base.EXPECT().Send(gomock.Any(), ril.RequestGetIMSI, want).
			Return(&modem.Response{
				Parcel: parcel.New(parcel.NewWriter().WriteNullString().Bytes()),
			}, nil)

		if _, err := r.GetIMSI(context.Background()); !errors.Is(err, qcril.ErrNoResponse) {
			t.Errorf("expected ErrNoResponse, got: %v", err)
		}
	})
}

func TestIccIO(t *testing.T) {
	ctrl := gomock.NewController(t)
	base := qcril.NewMockBase(ctrl)
	r := newRIL(t, base, qcril.Config{})
	resolve(t, base, r)

	want := parcel.NewWriter().
		WriteInt32(0xc0).
		WriteInt32(0x6f07).
		WriteString("3F007FFF").
		WriteInt32(0).
		WriteInt32(0).
		WriteInt32(15).
		WriteNullString().
		WriteNullString().
		WriteString(usimAID).
		Bytes()
	base.EXPECT().Send(gomock.Any(), ril.RequestSimIO, want).
		Return(&modem.Response{
			Parcel: parcel.New(parcel.NewWriter().
				WriteInt32(0x90).
				WriteInt32(0x00).
				WriteString("62088202412183026f07").
				Bytes()),
		}, nil)

	result, err := r.IccIO(context.Background(), qcril.IccIoRequest{
		Command: 0xc0,
		FileID:  0x6f07,
		Path:    "3F007FFF",
		P3:      15,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Success() {
		t.Errorf("expected success, got %s", result)
	}
	fcp, err := result.FCP()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := cmp.Diff([]byte{0x6f, 0x07}, fcp.FileID); diff != "" {
		t.Errorf("file ID mismatch (-want +got):\n%s", diff)
	}
}

func TestSetNetworkSelectionModeManual(t *testing.T) {
	ctrl := gomock.NewController(t)
	base := qcril.NewMockBase(ctrl)
	r := newRIL(t, base, qcril.Config{})

	want := parcel.NewWriter().WriteStrings("24201", "NOCHANGE").Bytes()
	base.EXPECT().Send(gomock.Any(), ril.RequestSetNetworkSelectionManual, want).
		Return(&modem.Response{}, nil)

	if err := r.SetNetworkSelectionModeManual(context.Background(), "24201"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestUnsupportedRequests(t *testing.T) {
	ctrl := gomock.NewController(t)
	base := qcril.NewMockBase(ctrl)
	r := newRIL(t, base, qcril.Config{})
	ctx := context.Background()

	// No expectations: nothing may reach the base.
	for name, err := range map[string]error{
		"GetCellInfoList":     r.GetCellInfoList(ctx),
		"SetCellInfoListRate": r.SetCellInfoListRate(ctx, time.Second),
		"SetInitialAttachApn": r.SetInitialAttachApn(ctx, qcril.InitialAttachApn{APN: "internet"}),
	} {
		if !errors.Is(err, qcril.ErrNotSupported) {
			t.Errorf("%s: expected ErrNotSupported, got: %v", name, err)
		}
	}
}
