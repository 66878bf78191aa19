package picaso

import (
	"bytes"
	"testing"
)

func TestVersionDecode(t *testing.T) {
	m := &mockPort{responses: [][]byte{{DevOLED, 3, 12, 0x96, 0x64}}}
	d := newTestDisplay(m)

	info, st := d.Version(false)
	if st != StatusOK {
		t.Fatalf("Version failed: %v (%s)", st, d.LastError())
	}
	if !bytes.Equal(m.lastWrite(), []byte{'V', 0}) {
		t.Errorf("wrote % X, want 56 00", m.lastWrite())
	}

	want := VersionInfo{DisplayType: DevOLED, HardwareRev: 3, FirmwareRev: 12, HRes: 96, VRes: 64}
	if info != want {
		t.Errorf("decoded %+v, want %+v", info, want)
	}
}

func TestVersionUnknownType(t *testing.T) {
	m := &mockPort{responses: [][]byte{{0x77, 1, 1, 0x28, 0x28}}}
	d := newTestDisplay(m)

	info, st := d.Version(false)
	if st != StatusOK {
		t.Fatalf("Version failed: %v", st)
	}
	if info.DisplayType != DevUnknown {
		t.Errorf("display type 0x%02X, want DevUnknown", info.DisplayType)
	}
}

func TestVersionShortReply(t *testing.T) {
	m := &mockPort{responses: [][]byte{{DevOLED, 3}}}
	d := newTestDisplay(m)

	if _, st := d.Version(false); st != StatusFault {
		t.Errorf("got %v, want %v", st, StatusFault)
	}
}

func TestSetVolumeValidation(t *testing.T) {
	valid := []byte{0, 1, 2, 3, 8, 64, 127, 253, 254, 255}
	for _, v := range valid {
		m := &mockPort{responses: [][]byte{{ACK}}}
		d := newTestDisplay(m)
		if st := d.SetVolume(v); st != StatusOK {
			t.Errorf("SetVolume(%d) = %v, want %v", v, st, StatusOK)
		}
		if !bytes.Equal(m.lastWrite(), []byte{'v', v}) {
			t.Errorf("SetVolume(%d) wrote % X", v, m.lastWrite())
		}
	}

	invalid := []byte{4, 5, 6, 7, 128, 200, 252}
	for _, v := range invalid {
		m := &mockPort{}
		d := newTestDisplay(m)
		if st := d.SetVolume(v); st != StatusFault {
			t.Errorf("SetVolume(%d) = %v, want %v", v, st, StatusFault)
		}
		if len(m.writes) != 0 {
			t.Errorf("SetVolume(%d) touched the wire", v)
		}
	}
}

func TestCtlValidation(t *testing.T) {
	tests := []struct {
		name  string
		mode  byte
		value byte
		want  Status
	}{
		{"backlight on", CtlBacklight, 1, StatusOK},
		{"backlight bad", CtlBacklight, 2, StatusFault},
		{"contrast any", CtlContrast, 200, StatusOK},
		{"orientation low", CtlOrientation, 0, StatusFault},
		{"orientation high", CtlOrientation, 5, StatusFault},
		{"orientation ok", CtlOrientation, 4, StatusOK},
		{"touch reset", CtlTouch, 2, StatusOK},
		{"touch bad", CtlTouch, 3, StatusFault},
		{"fat protect", CtlProtectFAT, 2, StatusOK},
		{"fat protect bad", CtlProtectFAT, 1, StatusFault},
		{"unknown mode", 7, 0, StatusFault},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := &mockPort{responses: [][]byte{{ACK}}}
			d := newTestDisplay(m)
			if st := d.Ctl(tt.mode, tt.value); st != tt.want {
				t.Errorf("Ctl(%d, %d) = %v, want %v", tt.mode, tt.value, st, tt.want)
			}
			if tt.want == StatusFault && len(m.writes) != 0 {
				t.Error("rejected command touched the wire")
			}
		})
	}
}

func TestSuspendValidation(t *testing.T) {
	m := &mockPort{}
	d := newTestDisplay(m)

	if st := d.Suspend(0x10, 0); st != StatusFault {
		t.Errorf("reserved bit: got %v, want %v", st, StatusFault)
	}
	if st := d.Suspend(0x22, 0); st != StatusFault {
		t.Errorf("wake on touch with touch off: got %v, want %v", st, StatusFault)
	}
	if len(m.writes) != 0 {
		t.Error("rejected suspend touched the wire")
	}
}

func TestSuspendAsync(t *testing.T) {
	m := &mockPort{}
	d := newTestDisplay(m)

	var gotCmd Pending
	var gotOK bool
	calls := 0
	d.SetNotifier(NotifierFunc(func(_ *Display, cmd Pending, ok bool) {
		calls++
		gotCmd = cmd
		gotOK = ok
	}))

	// Wake on serial activity: the device answers only on wake-up.
	if st := d.Suspend(0x01, 0); st != StatusTimeout {
		t.Fatalf("Suspend: got %v, want %v", st, StatusTimeout)
	}
	if d.State() != Busy {
		t.Fatalf("state after Suspend: %v, want %v", d.State(), Busy)
	}

	// Nothing arrived yet: one worker step leaves the command pending.
	d.Process()
	if calls != 0 {
		t.Fatalf("notifier fired before completion")
	}

	// The wake acknowledgement arrives.
	m.input = append(m.input, ACK)
	d.Process()
	if calls != 1 {
		t.Fatalf("notifier fired %d times, want 1", calls)
	}
	if gotCmd != PendingSleep || !gotOK {
		t.Errorf("notified (%v, %v), want (%v, true)", gotCmd, gotOK, PendingSleep)
	}
	if d.State() != Idle {
		t.Errorf("state after wake: %v, want %v", d.State(), Idle)
	}
}

func TestReadPin(t *testing.T) {
	m := &mockPort{responses: [][]byte{{1}}}
	d := newTestDisplay(m)

	v, st := d.ReadPin(7)
	if st != StatusOK || v != 1 {
		t.Errorf("ReadPin = (%d, %v), want (1, %v)", v, st, StatusOK)
	}
	if !bytes.Equal(m.lastWrite(), []byte{'i', 7}) {
		t.Errorf("wrote % X", m.lastWrite())
	}

	if _, st := d.ReadPin(16); st != StatusFault {
		t.Errorf("ReadPin(16) = %v, want %v", st, StatusFault)
	}
}
