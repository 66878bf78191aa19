package picaso

import (
	"bytes"
	"testing"
)

func TestGetTouchAsync(t *testing.T) {
	m := &mockPort{}
	d := newTestDisplay(m)

	coords := make([]uint16, 2)
	calls := 0
	var gotOK bool
	d.SetNotifier(NotifierFunc(func(_ *Display, cmd Pending, ok bool) {
		calls++
		gotOK = ok
		if cmd != PendingTouchData {
			t.Errorf("notified for %v, want %v", cmd, PendingTouchData)
		}
	}))

	if st := d.GetTouch(TouchGetPress, coords); st != StatusTimeout {
		t.Fatalf("GetTouch: got %v, want %v", st, StatusTimeout)
	}
	if !bytes.Equal(m.lastWrite(), []byte{'o', TouchGetPress}) {
		t.Errorf("wrote % X", m.lastWrite())
	}
	if d.State() != Busy {
		t.Fatalf("state: %v, want %v", d.State(), Busy)
	}

	// The coordinates dribble in across two reads.
	m.input = append(m.input, 0x00)
	d.Process()
	if calls != 0 {
		t.Fatal("notifier fired on a partial packet")
	}
	if d.State() != Busy {
		t.Fatalf("partial packet completed the command")
	}

	m.input = append(m.input, 0x0a, 0x00, 0x14)
	d.Process()
	if calls != 1 {
		t.Fatalf("notifier fired %d times, want 1", calls)
	}
	if !gotOK {
		t.Error("completion reported failure")
	}
	if coords[0] != 10 || coords[1] != 20 {
		t.Errorf("coordinates (%d, %d), want (10, 20)", coords[0], coords[1])
	}
	if d.State() != Idle {
		t.Errorf("state after completion: %v, want %v", d.State(), Idle)
	}
}

func TestGetTouchSync(t *testing.T) {
	m := &mockPort{responses: [][]byte{{0x00, 0x30, 0x00, 0x40}}}
	d := newTestDisplay(m)

	coords := make([]uint16, 2)
	if st := d.GetTouch(TouchGetLast, coords); st != StatusOK {
		t.Fatalf("GetTouch: got %v (%s)", st, d.LastError())
	}
	if coords[0] != 0x30 || coords[1] != 0x40 {
		t.Errorf("coordinates (%d, %d), want (48, 64)", coords[0], coords[1])
	}
	if d.State() != Idle {
		t.Errorf("sync mode left state %v", d.State())
	}
}

func TestGetTouchValidation(t *testing.T) {
	m := &mockPort{}
	d := newTestDisplay(m)

	if st := d.GetTouch(6, make([]uint16, 2)); st != StatusFault {
		t.Errorf("mode 6: got %v, want %v", st, StatusFault)
	}
	if st := d.GetTouch(TouchGetPress, make([]uint16, 1)); st != StatusFault {
		t.Errorf("short buffer: got %v, want %v", st, StatusFault)
	}
	if len(m.writes) != 0 {
		t.Error("rejected request touched the wire")
	}
}

func TestWaitTouch(t *testing.T) {
	t.Run("immediate ACK", func(t *testing.T) {
		m := &mockPort{responses: [][]byte{{ACK}}}
		d := newTestDisplay(m)
		if st := d.WaitTouch(1000); st != StatusOK {
			t.Errorf("got %v, want %v", st, StatusOK)
		}
		if d.State() != Idle {
			t.Errorf("state %v, want %v", d.State(), Idle)
		}
	})

	t.Run("pending completion", func(t *testing.T) {
		m := &mockPort{}
		d := newTestDisplay(m)

		calls := 0
		d.SetNotifier(NotifierFunc(func(_ *Display, cmd Pending, ok bool) {
			calls++
			if cmd != PendingTouchWait || !ok {
				t.Errorf("notified (%v, %v), want (%v, true)", cmd, ok, PendingTouchWait)
			}
		}))

		if st := d.WaitTouch(1000); st != StatusTimeout {
			t.Fatalf("got %v, want %v", st, StatusTimeout)
		}
		if d.State() != Busy {
			t.Fatalf("state %v, want %v", d.State(), Busy)
		}

		m.input = append(m.input, ACK)
		d.Process()
		if calls != 1 {
			t.Errorf("notifier fired %d times, want 1", calls)
		}
	})
}

func TestCloseFailsPendingCommand(t *testing.T) {
	m := &mockPort{}
	d := newTestDisplay(m)

	calls := 0
	d.SetNotifier(NotifierFunc(func(_ *Display, cmd Pending, ok bool) {
		calls++
		if ok {
			t.Error("completion reported success on Close")
		}
		if cmd != PendingTouchData {
			t.Errorf("notified for %v, want %v", cmd, PendingTouchData)
		}
	}))

	if st := d.GetTouch(TouchGetPress, make([]uint16, 2)); st != StatusTimeout {
		t.Fatalf("GetTouch: got %v", st)
	}

	d.Close()
	if calls != 1 {
		t.Errorf("notifier fired %d times, want 1", calls)
	}
	if d.State() != Inactive {
		t.Errorf("state after Close: %v, want %v", d.State(), Inactive)
	}
	if m.IsOpen() {
		t.Error("port left open")
	}
}

func TestSetRegionEncoding(t *testing.T) {
	m := &mockPort{responses: [][]byte{{ACK}}}
	d := newTestDisplay(m)

	if st := d.SetRegion(1, 2, 300, 400); st != StatusOK {
		t.Fatalf("got %v", st)
	}
	want := []byte{'u', 0, 1, 0, 2, 0x01, 0x2c, 0x01, 0x90}
	if !bytes.Equal(m.lastWrite(), want) {
		t.Errorf("wrote % X, want % X", m.lastWrite(), want)
	}
}
