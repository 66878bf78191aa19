package picaso

import "testing"

func TestWaitACKNACK(t *testing.T) {
	t.Run("junk before ACK is discarded", func(t *testing.T) {
		m := &mockPort{responses: [][]byte{{0x00, 0x99, 0xff, ACK}}}
		d := newTestDisplay(m)
		if st := d.Clear(); st != StatusOK {
			t.Errorf("got %v, want %v", st, StatusOK)
		}
	})

	t.Run("NACK", func(t *testing.T) {
		m := &mockPort{responses: [][]byte{{NACK}}}
		d := newTestDisplay(m)
		if st := d.Clear(); st != StatusNACK {
			t.Errorf("got %v, want %v", st, StatusNACK)
		}
	})

	t.Run("junk before NACK", func(t *testing.T) {
		m := &mockPort{responses: [][]byte{{0x42, NACK}}}
		d := newTestDisplay(m)
		if st := d.Clear(); st != StatusNACK {
			t.Errorf("got %v, want %v", st, StatusNACK)
		}
	})

	t.Run("timeout", func(t *testing.T) {
		m := &mockPort{}
		d := newTestDisplay(m)
		if st := d.Clear(); st != StatusTimeout {
			t.Errorf("got %v, want %v", st, StatusTimeout)
		}
	})
}

func TestSendFlushesStaleInput(t *testing.T) {
	// A late response to an earlier command must not satisfy the next
	// command's wait.
	m := &mockPort{input: []byte{ACK}}
	d := newTestDisplay(m)
	if st := d.Clear(); st != StatusTimeout {
		t.Errorf("got %v, want %v", st, StatusTimeout)
	}
	if m.flushes == 0 {
		t.Error("send did not flush the port")
	}
}
