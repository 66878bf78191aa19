package picaso

import (
	"bytes"
	"testing"
)

func countProbes(writes [][]byte) int {
	n := 0
	for _, w := range writes {
		if bytes.Equal(w, []byte{'U'}) {
			n++
		}
	}
	return n
}

func TestConnectAutobaud(t *testing.T) {
	// The device misses the first two probes and acknowledges the third.
	m := &mockPort{}
	m.onWrite = func(m *mockPort, data []byte) {
		if bytes.Equal(data, []byte{'U'}) && countProbes(m.writes) == 3 {
			m.input = append(m.input, ACK)
		}
	}

	d := newDisplay(m)
	if st := d.Connect("mock"); st != StatusOK {
		t.Fatalf("Connect failed: %v (%s)", st, d.LastError())
	}
	defer d.Close()

	if got := countProbes(m.writes); got != 3 {
		t.Errorf("sent %d probes, want 3", got)
	}
	if d.State() != Idle {
		t.Errorf("state after Connect: %v, want %v", d.State(), Idle)
	}
}

func TestConnectAutobaudExhausted(t *testing.T) {
	m := &mockPort{}

	d := newDisplay(m)
	if st := d.Connect("mock"); st != StatusFault {
		t.Fatalf("Connect: got %v, want %v", st, StatusFault)
	}

	if got := countProbes(m.writes); got != autobaudTries {
		t.Errorf("sent %d probes, want %d", got, autobaudTries)
	}
	if d.State() != Inactive {
		t.Errorf("state after failed Connect: %v, want %v", d.State(), Inactive)
	}
	if m.IsOpen() {
		t.Error("port left open after failed Connect")
	}
}

func TestSetBaudSameRateIsNoOp(t *testing.T) {
	m := &mockPort{}
	d := newTestDisplay(m)

	if st := d.SetBaud(Baud9600); st != StatusOK {
		t.Fatalf("got %v, want %v", st, StatusOK)
	}
	if len(m.writes) != 0 {
		t.Errorf("no-op rate change wrote %d packets, want 0", len(m.writes))
	}
}

func TestSetBaudNACK(t *testing.T) {
	m := &mockPort{responses: [][]byte{{NACK}}}
	d := newTestDisplay(m)

	if st := d.SetBaud(Baud19200); st != StatusNACK {
		t.Fatalf("got %v, want %v", st, StatusNACK)
	}
	want := []byte{'Q', byte(Baud19200)}
	if !bytes.Equal(m.lastWrite(), want) {
		t.Errorf("wrote % X, want % X", m.lastWrite(), want)
	}
	// The device refused, so both ends must still be at the old rate.
	if d.BaudRate() != 9600 {
		t.Errorf("host rate changed to %d after NACK", d.BaudRate())
	}
}

func TestSetBaudQuirkResponse(t *testing.T) {
	// The device answers the rate change with 0xFF instead of an ACK;
	// that must count as acceptance.
	m := &mockPort{responses: [][]byte{{0xff}}}
	d := newTestDisplay(m)

	if st := d.SetBaud(Baud19200); st != StatusOK {
		t.Fatalf("got %v, want %v", st, StatusOK)
	}
	if d.BaudRate() != 19200 {
		t.Errorf("host rate is %d, want 19200", d.BaudRate())
	}
	if m.baud != 19200 {
		t.Errorf("port rate is %d, want 19200", m.baud)
	}
}

func TestCodeForRate(t *testing.T) {
	tests := []struct {
		rate int
		code BaudCode
		ok   bool
	}{
		{9600, Baud9600, true},
		{115200, Baud115200, true},
		{256000, Baud256000, true},
		{12345, 0, false},
	}
	for _, tt := range tests {
		code, ok := CodeForRate(tt.rate)
		if code != tt.code || ok != tt.ok {
			t.Errorf("CodeForRate(%d) = (0x%02X, %v), want (0x%02X, %v)",
				tt.rate, byte(code), ok, byte(tt.code), tt.ok)
		}
	}
}
