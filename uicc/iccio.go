package uicc

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/moov-io/bertlv"
	"i4.energy/across/rilbridge/parcel"
)

// IccIoResult is the decoded response to a SIM_IO request.
type IccIoResult struct {
	SW1     int
	SW2     int
	Payload []byte
}

// DecodeIccIoResult reads sw1, sw2 and the hex payload string from p.
func DecodeIccIoResult(p *parcel.Parcel) (*IccIoResult, error) {
	sw1, err := p.ReadInt()
	if err != nil {
		return nil, fmt.Errorf("sw1: %w", err)
	}
	sw2, err := p.ReadInt()
	if err != nil {
		return nil, fmt.Errorf("sw2: %w", err)
	}
	response, err := p.ReadStringOrEmpty()
	if err != nil {
		return nil, fmt.Errorf("response: %w", err)
	}
	payload, err := hex.DecodeString(response)
	if err != nil {
		return nil, fmt.Errorf("%w: response payload: %v", parcel.ErrMalformedRecord, err)
	}
	return &IccIoResult{SW1: sw1, SW2: sw2, Payload: payload}, nil
}

// Success reports whether the status words signal normal completion,
// i.e. 90 00 or one of the 91 xx / 92 xx warnings carrying data.
func (r *IccIoResult) Success() bool {
	return r.SW1 == 0x90 || r.SW1 == 0x91 || r.SW1 == 0x92 || r.SW1 == 0x9e || r.SW1 == 0x9f
}

func (r *IccIoResult) String() string {
	return fmt.Sprintf("IccIoResult sw1:0x%02x sw2:0x%02x", r.SW1, r.SW2)
}

// FCP holds the File Control Parameters a USIM returns for GET RESPONSE
// on an elementary file.
type FCP struct {
	FileDescriptor []byte
	FileID         []byte
	// FileSize is the data size excluding structural information (tag 80),
	// or the total file size (tag 81) when the former is missing.
	FileSize int
}

// FCP decodes the payload as a BER-TLV FCP template (tag 62).
func (r *IccIoResult) FCP() (*FCP, error) {
	packets, err := bertlv.Decode(r.Payload)
	if err != nil {
		return nil, fmt.Errorf("BER-TLV decode failed: %w", err)
	}
	if len(packets) == 0 || !strings.EqualFold(packets[0].Tag, "62") {
		return nil, ErrNotFCP
	}

	fcp := &FCP{}
	var total []byte
	haveSize := false
	for _, tlv := range packets[0].TLVs {
		switch strings.ToUpper(tlv.Tag) {
		case "80":
			fcp.FileSize = beInt(tlv.Value)
			haveSize = true
		case "81":
			total = tlv.Value
		case "82":
			fcp.FileDescriptor = tlv.Value
		case "83":
			fcp.FileID = tlv.Value
		}
	}
	if !haveSize && total != nil {
		fcp.FileSize = beInt(total)
	}
	return fcp, nil
}

func beInt(b []byte) int {
	n := 0
	for _, c := range b {
		n = n<<8 | int(c)
	}
	return n
}
