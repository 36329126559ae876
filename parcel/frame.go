package parcel

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
)

const (
	// headerSize is the big-endian length prefix in front of each frame.
	headerSize = 4

	// MaxFrameSize is the largest payload rild will put on the socket.
	MaxFrameSize = 8 * 1024
)

// Splitter tokenizes a rild byte stream into frame payloads. It uses the
// signature of bufio.SplitFunc so it can be used with bufio.Scanner
// directly.
//
// Each frame is a 4-byte big-endian payload length followed by the
// payload. The token returned is the payload without its header.
//
// When atEOF is set and a partial frame remains, io.ErrUnexpectedEOF is
// returned so the scanner reports a truncated stream instead of silently
// dropping the tail.
func Splitter(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}

	if len(data) < headerSize {
		if atEOF {
			return 0, nil, io.ErrUnexpectedEOF
		}
		return 0, nil, nil
	}

	size := binary.BigEndian.Uint32(data)
	if size > MaxFrameSize {
		return 0, nil, fmt.Errorf("%w: %d bytes", ErrFrameTooLarge, size)
	}

	end := headerSize + int(size)
	if len(data) < end {
		if atEOF {
			return 0, nil, io.ErrUnexpectedEOF
		}
		return 0, nil, nil
	}

	return end, data[headerSize:end], nil
}

var _ bufio.SplitFunc = Splitter

// WriteFrame writes payload to w with its length header.
func WriteFrame(w io.Writer, payload []byte) error {
	if len(payload) > MaxFrameSize {
		return fmt.Errorf("%w: %d bytes", ErrFrameTooLarge, len(payload))
	}
	frame := make([]byte, headerSize, headerSize+len(payload))
	binary.BigEndian.PutUint32(frame, uint32(len(payload)))
	frame = append(frame, payload...)
	_, err := w.Write(frame)
	return err
}
