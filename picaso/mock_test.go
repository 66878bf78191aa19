package picaso

import (
	"errors"
	"time"
)

// mockPort is a scripted stand-in for a serial port. Responses are queued
// per write: after each Write the next scripted response becomes readable,
// which mirrors a device that only ever speaks when spoken to. Tests that
// need finer control install an onWrite hook instead.
type mockPort struct {
	opened bool
	name   string
	baud   int

	input     []byte   // bytes currently readable
	responses [][]byte // consumed one per Write when onWrite is nil
	writes    [][]byte // every Write, in order

	onWrite func(m *mockPort, data []byte)

	openErr    error
	baudErr    error
	readErr    error
	failWrite  bool // Write moves no bytes
	shortWrite bool // Write moves one byte then fails

	flushes int
	drains  int
	lastErr string
}

var _ Port = (*mockPort)(nil)

func (m *mockPort) Open(name string, baud int) error {
	if m.openErr != nil {
		m.lastErr = m.openErr.Error()
		return m.openErr
	}
	m.opened = true
	m.name = name
	m.baud = baud
	return nil
}

func (m *mockPort) Close() error {
	m.opened = false
	return nil
}

func (m *mockPort) Flush() error {
	m.flushes++
	m.input = nil
	return nil
}

func (m *mockPort) Drain() error {
	m.drains++
	return nil
}

func (m *mockPort) SetBaud(rate int) error {
	if m.baudErr != nil {
		m.lastErr = m.baudErr.Error()
		return m.baudErr
	}
	m.baud = rate
	return nil
}

func (m *mockPort) Read(buf []byte, timeout time.Duration, delim byte) (int, error) {
	if m.readErr != nil {
		m.lastErr = m.readErr.Error()
		return 0, m.readErr
	}
	n := copy(buf, m.input)
	m.input = m.input[n:]
	return n, nil
}

func (m *mockPort) Write(buf []byte, timeoutHint time.Duration) (int, error) {
	if m.failWrite {
		m.lastErr = "write failed"
		return 0, errors.New(m.lastErr)
	}
	cp := make([]byte, len(buf))
	copy(cp, buf)
	m.writes = append(m.writes, cp)
	if m.shortWrite {
		m.lastErr = "short write"
		return 1, errors.New(m.lastErr)
	}
	if m.onWrite != nil {
		m.onWrite(m, cp)
	} else if len(m.responses) > 0 {
		m.input = append(m.input, m.responses[0]...)
		m.responses = m.responses[1:]
	}
	return len(buf), nil
}

func (m *mockPort) Name() string      { return m.name }
func (m *mockPort) IsOpen() bool      { return m.opened }
func (m *mockPort) LastError() string { return m.lastErr }

// newTestDisplay returns a Display wired to the mock in the connected
// Idle state, without running Connect or the background worker.
func newTestDisplay(m *mockPort) *Display {
	m.opened = true
	m.name = "mock"
	m.baud = 9600
	d := newDisplay(m)
	d.state = Idle
	d.portRate = 9600
	return d
}

// lastWrite returns the most recent packet written to the mock.
func (m *mockPort) lastWrite() []byte {
	if len(m.writes) == 0 {
		return nil
	}
	return m.writes[len(m.writes)-1]
}
