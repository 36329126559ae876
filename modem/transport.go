package modem

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"

	"go.bug.st/serial"
)

//go:generate go tool mockgen -source=transport.go -destination=mock_transport.go -package=modem

// Transport represents an established, bidirectional byte stream to rild.
//
// A Transport is assumed to be already connected and ready for use. It carries
// length-prefixed parcels in both directions. Typical implementations include
// the rild unix socket, a serial line to a baseband running a rild bridge, or
// in-memory fakes used for testing.
type Transport interface {
	io.ReadWriteCloser
}

// Dialer opens a Transport to rild.
//
// Dialer abstracts how the connection is created and is intended to be used
// during construction only. Once a Transport is obtained, the Dialer is no
// longer needed.
type Dialer interface {
	// Dial is responsible for creating and returning a connected Transport. It may
	// perform blocking operations and should respect cancellation and deadlines
	// provided by the context. Dial returns an error if the transport cannot be
	// established.
	Dial(ctx context.Context) (Transport, error)
}

// DefaultSerialMode is used by SerialDialer when no Mode is set.
var DefaultSerialMode = serial.Mode{
	BaudRate: 115200,
	Parity:   serial.NoParity,
	DataBits: 8,
	StopBits: serial.OneStopBit,
}

// SerialDialer opens rild over a serial port using go.bug.st/serial.
type SerialDialer struct {
	PortName string
	// Mode defaults to DefaultSerialMode when nil.
	Mode *serial.Mode
}

func (d SerialDialer) Dial(ctx context.Context) (Transport, error) {
	if ctx == nil {
		return nil, errors.New("rild: context is nil")
	}
	if d.PortName == "" {
		return nil, errors.New("rild: serial port name is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	mode := d.Mode
	if mode == nil {
		m := DefaultSerialMode
		mode = &m
	}

	port, err := serial.Open(d.PortName, mode)
	if err != nil {
		return nil, fmt.Errorf("open serial port %s: %w", d.PortName, err)
	}
	return port, nil
}

// DefaultSocketAddress is the rild socket on an Android device.
const DefaultSocketAddress = "/dev/socket/rild"

// SocketDialer connects to rild over a stream socket.
type SocketDialer struct {
	// Network is "unix" unless set, e.g. "tcp" for an emulator bridge.
	Network string
	Address string
}

func (d SocketDialer) Dial(ctx context.Context) (Transport, error) {
	if ctx == nil {
		return nil, errors.New("rild: context is nil")
	}
	network := d.Network
	if network == "" {
		network = "unix"
	}
	address := d.Address
	if address == "" {
		address = DefaultSocketAddress
	}

	var nd net.Dialer
	conn, err := nd.DialContext(ctx, network, address)
	if err != nil {
		return nil, fmt.Errorf("dial rild %s %s: %w", network, address, err)
	}
	return conn, nil
}
