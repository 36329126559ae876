package qcril

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"i4.energy/across/rilbridge/modem"
	"i4.energy/across/rilbridge/parcel"
	"i4.energy/across/rilbridge/ril"
	"i4.energy/across/rilbridge/uicc"
)

// IccIoRequest is one SIM_IO command. Data and Pin2 are sent as absent
// strings when empty.
type IccIoRequest struct {
	Command int
	FileID  int
	Path    string
	P1      int
	P2      int
	P3      int
	Data    string
	Pin2    string
}

// InitialAttachApn is the LTE initial attach APN.
type InitialAttachApn struct {
	APN      string
	Protocol string
	AuthType int
	Username string
	Password string
}

// writeAID appends the active AID, absent until an application resolved.
func (r *RIL) writeAID(w *parcel.Writer) *parcel.Writer {
	sub := r.Subscription()
	return w.WriteOptionalString(sub.AID, sub.Resolved)
}

// sendStrings sends a count-prefixed string list followed by the AID.
func (r *RIL) sendStrings(ctx context.Context, request int32, values ...string) (*modem.Response, error) {
	w := parcel.NewWriter().WriteInt(len(values) + 1)
	for _, v := range values {
		w.WriteString(v)
	}
	return r.base.Send(ctx, request, r.writeAID(w).Bytes())
}

// attemptsLeft returns the remaining retries rild reports for PIN and PUK
// operations, or -1 when unknown. It is reported on failure too.
func attemptsLeft(resp *modem.Response) int {
	if resp == nil || resp.Parcel == nil {
		return -1
	}
	ints, err := resp.Parcel.ReadInts()
	if err != nil || len(ints) == 0 {
		return -1
	}
	return int(ints[0])
}

// SupplyIccPin2 verifies PIN2 of the active application.
func (r *RIL) SupplyIccPin2(ctx context.Context, pin2 string) (attempts int, err error) {
	resp, err := r.sendStrings(ctx, ril.RequestEnterSimPin2, pin2)
	return attemptsLeft(resp), err
}

// ChangeIccPin2 changes PIN2 of the active application.
func (r *RIL) ChangeIccPin2(ctx context.Context, oldPin2, newPin2 string) (attempts int, err error) {
	resp, err := r.sendStrings(ctx, ril.RequestChangeSimPin2, oldPin2, newPin2)
	return attemptsLeft(resp), err
}

// SupplyIccPuk unblocks PIN1 of the active application.
func (r *RIL) SupplyIccPuk(ctx context.Context, puk, newPin string) (attempts int, err error) {
	resp, err := r.sendStrings(ctx, ril.RequestEnterSimPuk, puk, newPin)
	return attemptsLeft(resp), err
}

// SupplyIccPuk2 unblocks PIN2 of the active application.
func (r *RIL) SupplyIccPuk2(ctx context.Context, puk2, newPin2 string) (attempts int, err error) {
	resp, err := r.sendStrings(ctx, ril.RequestEnterSimPuk2, puk2, newPin2)
	return attemptsLeft(resp), err
}

// QueryFacilityLock returns the service classes for which facility is
// locked, 0 meaning unlocked.
func (r *RIL) QueryFacilityLock(ctx context.Context, facility, password string, serviceClass int) (int, error) {
	resp, err := r.sendStrings(ctx, ril.RequestQueryFacilityLock,
		facility, password, strconv.Itoa(serviceClass))
	if err != nil {
		return 0, err
	}
	ints, err := resp.Parcel.ReadInts()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", ril.RequestName(ril.RequestQueryFacilityLock), err)
	}
	if len(ints) == 0 {
		return 0, fmt.Errorf("%s: %w", ril.RequestName(ril.RequestQueryFacilityLock), ErrNoResponse)
	}
	return int(ints[0]), nil
}

// SetFacilityLock locks or unlocks facility.
func (r *RIL) SetFacilityLock(ctx context.Context, facility string, lock bool, password string, serviceClass int) (attempts int, err error) {
	state := "0"
	if lock {
		state = "1"
	}
	resp, err := r.sendStrings(ctx, ril.RequestSetFacilityLock,
		facility, state, password, strconv.Itoa(serviceClass))
	return attemptsLeft(resp), err
}

// GetIMSI returns the IMSI of the active application.
func (r *RIL) GetIMSI(ctx context.Context) (string, error) {
	resp, err := r.sendStrings(ctx, ril.RequestGetIMSI)
	if err != nil {
		return "", err
	}
	imsi, present, err := resp.Parcel.ReadString()
	if err != nil {
		return "", fmt.Errorf("%s: %w", ril.RequestName(ril.RequestGetIMSI), err)
	}
	if !present {
		return "", fmt.Errorf("%s: %w", ril.RequestName(ril.RequestGetIMSI), ErrNoResponse)
	}
	return imsi, nil
}

// IccIO runs a SIM_IO command against the active application. A status
// word outside the success range is not an error; check
// IccIoResult.Success.
func (r *RIL) IccIO(ctx context.Context, req IccIoRequest) (*uicc.IccIoResult, error) {
	w := parcel.NewWriter().
		WriteInt(req.Command).
		WriteInt(req.FileID).
		WriteString(req.Path).
		WriteInt(req.P1).
		WriteInt(req.P2).
		WriteInt(req.P3).
		WriteOptionalString(req.Data, req.Data != "").
		WriteOptionalString(req.Pin2, req.Pin2 != "")

	r.log.WithField("file_id", fmt.Sprintf("%04x", req.FileID)).
		WithField("aid", r.Subscription().AID).
		Debug("SIM IO")

	resp, err := r.base.Send(ctx, ril.RequestSimIO, r.writeAID(w).Bytes())
	if err != nil {
		return nil, err
	}
	result, err := uicc.DecodeIccIoResult(resp.Parcel)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ril.RequestName(ril.RequestSimIO), err)
	}
	return result, nil
}

// SetNetworkSelectionModeManual registers on operator, a numeric PLMN.
func (r *RIL) SetNetworkSelectionModeManual(ctx context.Context, operator string) error {
	payload := parcel.NewWriter().WriteStrings(operator, "NOCHANGE").Bytes()
	_, err := r.base.Send(ctx, ril.RequestSetNetworkSelectionManual, payload)
	return err
}

// GetCellInfoList is not supported by this baseband.
func (r *RIL) GetCellInfoList(ctx context.Context) error {
	r.notSupported(ril.RequestGetCellInfoList)
	return ErrNotSupported
}

// SetCellInfoListRate is not supported by this baseband.
func (r *RIL) SetCellInfoListRate(ctx context.Context, rate time.Duration) error {
	r.notSupported(ril.RequestSetUnsolCellInfoListRate)
	return ErrNotSupported
}

// SetInitialAttachApn is not supported by this baseband.
func (r *RIL) SetInitialAttachApn(ctx context.Context, apn InitialAttachApn) error {
	r.notSupported(ril.RequestSetInitialAttachApn)
	return ErrNotSupported
}

func (r *RIL) notSupported(request int32) {
	r.log.WithField("request", ril.RequestName(request)).Debug("request not supported")
}
