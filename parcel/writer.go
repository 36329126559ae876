package parcel

import (
	"encoding/binary"
)

// Writer builds a parcel. The zero value is ready to use.
type Writer struct {
	buf []byte
}

// NewWriter returns an empty Writer.
func NewWriter() *Writer {
	return &Writer{}
}

// Bytes returns the encoded parcel. The slice aliases the Writer buffer.
func (w *Writer) Bytes() []byte {
	return w.buf
}

// Len returns the number of bytes written so far.
func (w *Writer) Len() int {
	return len(w.buf)
}

// WriteInt32 appends one 32-bit integer.
func (w *Writer) WriteInt32(v int32) *Writer {
	w.buf = binary.LittleEndian.AppendUint32(w.buf, uint32(v))
	return w
}

// WriteInt appends v as a 32-bit integer.
func (w *Writer) WriteInt(v int) *Writer {
	return w.WriteInt32(int32(v))
}

// WriteInts appends a count-prefixed list of integers.
func (w *Writer) WriteInts(vs ...int32) *Writer {
	w.WriteInt(len(vs))
	for _, v := range vs {
		w.WriteInt32(v)
	}
	return w
}

// WriteNullString appends the absent-string marker.
func (w *Writer) WriteNullString() *Writer {
	return w.WriteInt32(nullLength)
}

// WriteString appends s as a String16 value.
func (w *Writer) WriteString(s string) *Writer {
	// The encoder only fails on invalid UTF-8 when configured strictly;
	// the default replaces bad sequences, so the error is always nil.
	units, _ := utf16le.NewEncoder().Bytes([]byte(s))

	w.WriteInt(len(units) / 2)
	w.buf = append(w.buf, units...)
	w.buf = append(w.buf, 0, 0)
	for len(w.buf)%4 != 0 {
		w.buf = append(w.buf, 0)
	}
	return w
}

// WriteOptionalString appends s, or the absent marker when present is false.
func (w *Writer) WriteOptionalString(s string, present bool) *Writer {
	if !present {
		return w.WriteNullString()
	}
	return w.WriteString(s)
}

// WriteStrings appends a count-prefixed list of String16 values.
func (w *Writer) WriteStrings(ss ...string) *Writer {
	w.WriteInt(len(ss))
	for _, s := range ss {
		w.WriteString(s)
	}
	return w
}
