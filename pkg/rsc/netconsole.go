package rsc

import (
	"errors"
	"net"

	"github.com/golang/glog"
)

// ErrConsoleDetach is returned by NetConsole once its peer connection
// has gone away.
var ErrConsoleDetach = errors.New("rsc: console detached")

// NetConsole is a Device that forwards single-byte UART traffic to a
// TCP peer instead of a local io.Writer. It implements the same
// single-byte contract as SerialPort: writes of size other than 1
// fault with ErrInvalidSize, and reads always return 0 (this machine
// has no console input path).
//
// The caller is expected to construct one with AcceptConsole, defer
// Close, and wire the result into NewBus in place of a SerialPort. A
// NetConsole is not safe for concurrent use, matching the rest of the
// bus: the machine driving CycleState must own it.
type NetConsole struct {
	conn net.Conn
}

// AcceptConsole listens on a loopback TCP port and blocks until a
// single peer attaches. The returned address is meant to be printed
// to the operator so they can `nc` or `telnet` in before the machine
// starts running.
func AcceptConsole() (*NetConsole, net.Addr, error) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return nil, nil, err
	}
	addr := ln.Addr()
	glog.Infof("rsc: waiting for console to attach on %s", addr)
	conn, err := ln.Accept()
	if err != nil {
		return nil, nil, err
	}
	return &NetConsole{conn: conn}, addr, nil
}

// Close closes the underlying connection.
func (c *NetConsole) Close() error {
	return c.conn.Close()
}

// Read implements Device. The simulated console has no input path, so
// every read returns 0.
func (c *NetConsole) Read(offset, size uint32) (uint32, error) {
	return 0, nil
}

// Write implements Device, forwarding the low byte of value to the
// attached peer.
func (c *NetConsole) Write(offset, size, value uint32) error {
	if size != 1 {
		return ErrInvalidSize
	}
	_, err := c.conn.Write([]byte{byte(value)})
	if err != nil {
		return ErrConsoleDetach
	}
	return nil
}
