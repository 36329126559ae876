package modem

import (
	"bytes"
	"io"
	"sync"

	"i4.energy/across/rilbridge/parcel"
)

// TestTransport is a test helper that simulates a blocking transport using channels.
// This is needed because the Loop's scanner goroutine continuously reads from the transport,
// and we need reads to block until data is available (like a real socket would).
type TestTransport struct {
	mu       sync.Mutex
	readChan chan []byte
	written  chan []byte
	closed   bool
}

// NewTestTransport creates a new test transport for testing.
// Exported for use in tests.
func NewTestTransport() *TestTransport {
	return &TestTransport{
		readChan: make(chan []byte, 10),
		written:  make(chan []byte, 10),
	}
}

// Write records p. Each call is expected to carry one complete frame, which
// is how RIL writes them.
func (t *TestTransport) Write(p []byte) (n int, err error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return 0, io.ErrClosedPipe
	}
	t.written <- bytes.Clone(p)
	return len(p), nil
}

func (t *TestTransport) Read(p []byte) (n int, err error) {
	data, ok := <-t.readChan
	if !ok {
		return 0, io.EOF
	}
	return copy(p, data), nil
}

func (t *TestTransport) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return nil
	}
	t.closed = true
	close(t.readChan)
	return nil
}

// SendFrame queues payload, framed, to be read by the transport.
// This simulates rild sending a parcel.
func (t *TestTransport) SendFrame(payload []byte) {
	var buf bytes.Buffer
	if err := parcel.WriteFrame(&buf, payload); err != nil {
		panic(err)
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.closed {
		t.readChan <- buf.Bytes()
	}
}

// Written returns the frames written to the transport, header included.
func (t *TestTransport) Written() <-chan []byte {
	return t.written
}
