// Package comport provides a thin byte-stream wrapper around a serial
// port, with per-call read timeouts and optional delimiter-terminated
// reads. The line settings are fixed at 8N1 with no flow control, which
// is what the display hardware speaks.
package comport

import (
	"fmt"
	"time"

	"go.bug.st/serial"
)

// readSlice bounds the time a single kernel read may block, so that a
// delimiter scan stays responsive to the caller's deadline.
const readSlice = 20 * time.Millisecond

// Port is an open serial connection. It is not safe for concurrent use;
// the caller serializes access.
type Port struct {
	name    string
	baud    int
	port    serial.Port
	lastErr string
}

// New returns an unopened Port.
func New() *Port {
	return &Port{}
}

func mode(baud int) *serial.Mode {
	return &serial.Mode{
		BaudRate: baud,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	}
}

// Open opens the named device at the given bit rate. An already open
// port must be closed first.
func (p *Port) Open(name string, baud int) error {
	if p.port != nil {
		return p.fail(fmt.Errorf("port %s is already open", p.name))
	}
	port, err := serial.Open(name, mode(baud))
	if err != nil {
		return p.fail(fmt.Errorf("failed to open serial port %s: %w", name, err))
	}
	p.name = name
	p.baud = baud
	p.port = port
	return nil
}

// Close releases the device. Closing a closed port is a no-op.
func (p *Port) Close() error {
	if p.port == nil {
		return nil
	}
	err := p.port.Close()
	p.port = nil
	p.name = ""
	if err != nil {
		return p.fail(fmt.Errorf("failed to close serial port: %w", err))
	}
	return nil
}

// Flush pushes out pending output and discards any unread input, leaving
// the line quiet for the next exchange.
func (p *Port) Flush() error {
	if p.port == nil {
		return p.fail(fmt.Errorf("port is not open"))
	}
	if err := p.port.Drain(); err != nil {
		return p.fail(fmt.Errorf("failed to drain output: %w", err))
	}
	if err := p.port.ResetInputBuffer(); err != nil {
		return p.fail(fmt.Errorf("failed to discard input: %w", err))
	}
	return nil
}

// Drain blocks until pending output has left the host.
func (p *Port) Drain() error {
	if p.port == nil {
		return p.fail(fmt.Errorf("port is not open"))
	}
	if err := p.port.Drain(); err != nil {
		return p.fail(fmt.Errorf("failed to drain output: %w", err))
	}
	return nil
}

// SetBaud changes the host-side bit rate without reopening the device.
func (p *Port) SetBaud(rate int) error {
	if p.port == nil {
		return p.fail(fmt.Errorf("port is not open"))
	}
	if err := p.port.SetMode(mode(rate)); err != nil {
		return p.fail(fmt.Errorf("failed to set baud rate to %d: %w", rate, err))
	}
	p.baud = rate
	return nil
}

// Read fills buf with bytes arriving within timeout. It returns early
// when buf is full or, if delim is nonzero, right after delim has been
// stored. A timeout is not an error: the caller checks the byte count.
func (p *Port) Read(buf []byte, timeout time.Duration, delim byte) (int, error) {
	if p.port == nil {
		return 0, p.fail(fmt.Errorf("port is not open"))
	}

	total := 0
	deadline := time.Now().Add(timeout)
	for total < len(buf) {
		remain := time.Until(deadline)
		if remain <= 0 {
			break
		}
		slice := remain
		if delim != 0 && slice > readSlice {
			slice = readSlice
		}
		if err := p.port.SetReadTimeout(slice); err != nil {
			return total, p.fail(fmt.Errorf("failed to set read timeout: %w", err))
		}
		n, err := p.port.Read(buf[total:])
		if err != nil {
			return total, p.fail(fmt.Errorf("read failed: %w", err))
		}
		if n > 0 && delim != 0 {
			for i := 0; i < n; i++ {
				if buf[total+i] == delim {
					return total + i + 1, nil
				}
			}
		}
		total += n
		if n == 0 && delim == 0 {
			// SetReadTimeout covered the whole remaining window.
			break
		}
	}
	return total, nil
}

// Write sends buf to the device. timeoutHint is advisory: the kernel
// write path applies its own flow control, and a stalled line surfaces
// as a short write.
func (p *Port) Write(buf []byte, timeoutHint time.Duration) (int, error) {
	if p.port == nil {
		return 0, p.fail(fmt.Errorf("port is not open"))
	}
	_ = timeoutHint
	n, err := p.port.Write(buf)
	if err != nil {
		return n, p.fail(fmt.Errorf("write failed: %w", err))
	}
	return n, nil
}

// Name returns the device path of the open port, or "" when closed.
func (p *Port) Name() string {
	return p.name
}

// Baud returns the current host-side bit rate.
func (p *Port) Baud() int {
	return p.baud
}

// IsOpen reports whether the port is open.
func (p *Port) IsOpen() bool {
	return p.port != nil
}

// LastError returns the text of the most recent failure.
func (p *Port) LastError() string {
	return p.lastErr
}

func (p *Port) fail(err error) error {
	p.lastErr = err.Error()
	return err
}
