// Package parcel implements the flat record encoding spoken by rild: a
// sequence of little-endian 32-bit integers and String16 values with no
// self-describing record boundaries. The reader must know, from the
// request or unsolicited code, which fields follow and in what order.
package parcel

import (
	"encoding/binary"
	"fmt"

	"golang.org/x/text/encoding/unicode"
)

// nullLength is the String16 length marker for an absent string.
const nullLength = -1

var utf16le = unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)

// Parcel is a read cursor over one decoded record buffer.
//
// Reads advance the cursor deterministically. The only way back is
// SetPosition with a value previously obtained from Position.
type Parcel struct {
	data []byte
	pos  int
}

// New returns a Parcel positioned at the start of data. The slice is not
// copied and must not be modified while the Parcel is in use.
func New(data []byte) *Parcel {
	return &Parcel{data: data}
}

// Len returns the total size of the parcel in bytes.
func (p *Parcel) Len() int {
	return len(p.data)
}

// Position returns the current cursor offset. It can be handed back to
// SetPosition to replay the bytes that follow.
func (p *Parcel) Position() int {
	return p.pos
}

// SetPosition moves the cursor to mark.
func (p *Parcel) SetPosition(mark int) error {
	if mark < 0 || mark > len(p.data) {
		return fmt.Errorf("%w: %d not in [0,%d]", ErrInvalidPosition, mark, len(p.data))
	}
	p.pos = mark
	return nil
}

// Remaining returns the number of unread bytes.
func (p *Parcel) Remaining() int {
	return len(p.data) - p.pos
}

// ReadInt32 decodes one 32-bit integer.
func (p *Parcel) ReadInt32() (int32, error) {
	if p.Remaining() < 4 {
		return 0, fmt.Errorf("%w: int32 at offset %d, %d bytes left", ErrMalformedRecord, p.pos, p.Remaining())
	}
	v := int32(binary.LittleEndian.Uint32(p.data[p.pos:]))
	p.pos += 4
	return v, nil
}

// ReadInt is ReadInt32 widened to int, which is what most callers index
// and compare with.
func (p *Parcel) ReadInt() (int, error) {
	v, err := p.ReadInt32()
	return int(v), err
}

// SkipInt32 consumes and discards n integers.
func (p *Parcel) SkipInt32(n int) error {
	for i := 0; i < n; i++ {
		if _, err := p.ReadInt32(); err != nil {
			return err
		}
	}
	return nil
}

// ReadInts decodes a count-prefixed list of integers.
func (p *Parcel) ReadInts() ([]int32, error) {
	n, err := p.ReadInt32()
	if err != nil {
		return nil, err
	}
	if n < 0 || int(n) > p.Remaining()/4 {
		return nil, fmt.Errorf("%w: int list of %d entries, %d bytes left", ErrMalformedRecord, n, p.Remaining())
	}
	out := make([]int32, n)
	for i := range out {
		if out[i], err = p.ReadInt32(); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// ReadString decodes one String16 value. present is false when the wire
// carried the absent marker, which is distinct from an empty string.
func (p *Parcel) ReadString() (s string, present bool, err error) {
	n, err := p.ReadInt32()
	if err != nil {
		return "", false, err
	}
	if n == nullLength {
		return "", false, nil
	}
	if n < 0 {
		return "", false, fmt.Errorf("%w: string length %d", ErrMalformedRecord, n)
	}

	// UTF-16 units plus the terminating NUL unit, padded to 4 bytes.
	size := (int(n) + 1) * 2
	padded := (size + 3) &^ 3
	if p.Remaining() < padded {
		return "", false, fmt.Errorf("%w: string of %d units at offset %d, %d bytes left", ErrMalformedRecord, n, p.pos, p.Remaining())
	}

	raw := p.data[p.pos : p.pos+int(n)*2]
	p.pos += padded

	decoded, err := utf16le.NewDecoder().Bytes(raw)
	if err != nil {
		return "", false, fmt.Errorf("%w: %v", ErrMalformedRecord, err)
	}
	return string(decoded), true, nil
}

// ReadStringOrEmpty decodes a String16 value and folds the absent marker
// into the empty string.
func (p *Parcel) ReadStringOrEmpty() (string, error) {
	s, _, err := p.ReadString()
	return s, err
}

// ReadStrings decodes a count-prefixed list of String16 values.
func (p *Parcel) ReadStrings() ([]string, error) {
	n, err := p.ReadInt32()
	if err != nil {
		return nil, err
	}
	if n < 0 || int(n) > p.Remaining()/4 {
		return nil, fmt.Errorf("%w: string list of %d entries, %d bytes left", ErrMalformedRecord, n, p.Remaining())
	}
	out := make([]string, n)
	for i := range out {
		if out[i], err = p.ReadStringOrEmpty(); err != nil {
			return nil, err
		}
	}
	return out, nil
}
