package picaso

import "time"

// Ctl modes for the display control command.
const (
	CtlBacklight   = 0 // 0 off, 1 on
	CtlDisplay     = 1 // 0 off, 1 on
	CtlContrast    = 2 // contrast value
	CtlPower       = 3 // 0 shutdown, 1 powerup
	CtlOrientation = 4 // 1..4
	CtlTouch       = 5 // 0 enable, 1 disable, 2 reset
	CtlImageFormat = 6 // 0 new, 1 old
	CtlProtectFAT  = 8 // 0 unprotect, 2 protect
)

// Version queries the device identity. With onScreen set the device also
// shows the information on the display, which takes it noticeably longer
// to answer.
func (d *Display) Version(onScreen bool) (VersionInfo, Status) {
	d.mu.Lock()
	defer d.mu.Unlock()
	var ver VersionInfo
	if st := d.ready(); st != StatusOK {
		return ver, st
	}

	show := byte(0)
	wait := 50 * time.Millisecond
	if onScreen {
		show = 1
		wait = 500 * time.Millisecond
	}
	if st := d.send([]byte{'V', show}); st != StatusOK {
		return ver, st
	}

	var msg [5]byte
	n, err := d.port.Read(msg[:], wait, 0)
	if err != nil {
		d.errf("no response: %s", d.port.LastError())
		return ver, StatusFault
	}
	if n != 5 {
		d.errf("incomplete response packet (%d bytes, 5 expected)", n)
		return ver, StatusFault
	}

	switch msg[0] {
	case DevOLED, DevLCD, DevVGA:
		ver.DisplayType = msg[0]
	default:
		ver.DisplayType = DevUnknown
	}
	ver.HardwareRev = msg[1]
	ver.FirmwareRev = msg[2]
	ver.HRes = convertRes(msg[3])
	ver.VRes = convertRes(msg[4])
	return ver, StatusOK
}

// Ctl adjusts a display control: backlight, power, contrast, orientation,
// touch and so on. Value ranges are mode-specific.
func (d *Display) Ctl(mode, value byte) Status {
	d.mu.Lock()
	defer d.mu.Unlock()
	if st := d.ready(); st != StatusOK {
		return st
	}

	switch mode {
	case CtlBacklight, CtlDisplay, CtlPower, CtlImageFormat:
		if value != 0 && value != 1 {
			d.errf("invalid value for control mode %d (%d); valid values are 0,1", mode, value)
			return StatusFault
		}
	case CtlContrast:
		// any byte
	case CtlOrientation:
		if value < 1 || value > 4 {
			d.errf("invalid orientation (%d); valid values are 1..4", value)
			return StatusFault
		}
	case CtlTouch:
		if value > 2 {
			d.errf("invalid touch control (%d); valid values are 0..2", value)
			return StatusFault
		}
	case CtlProtectFAT:
		if value != 0 && value != 2 {
			d.errf("invalid FAT protect value (%d); valid values are 0,2", value)
			return StatusFault
		}
	default:
		d.errf("invalid control mode (%d); valid values are 0..6,8", mode)
		return StatusFault
	}

	if st := d.send([]byte{'Y', mode, value}); st != StatusOK {
		return st
	}
	return d.waitACKNACK(100 * time.Millisecond)
}

// SetVolume sets the audio output level. The device accepts 0..3 (mute and
// preset low levels), 8..127 (linear range) and 253..255 (step and maximum
// controls); everything between is rejected by the hardware so it is
// rejected here before touching the wire.
func (d *Display) SetVolume(value byte) Status {
	d.mu.Lock()
	defer d.mu.Unlock()
	if st := d.ready(); st != StatusOK {
		return st
	}

	if (value > 3 && value < 8) || (value > 127 && value < 253) {
		d.errf("invalid volume (%d); valid values are 0..3, 8..127, 253..255", value)
		return StatusFault
	}

	if st := d.send([]byte{'v', value}); st != StatusOK {
		return st
	}
	return d.waitACKNACK(100 * time.Millisecond)
}

// Suspend puts the display into low-power sleep. options selects the wake
// condition (set only one of the wake bits); duration is in seconds, with
// 0 meaning indefinite. When a wake condition is armed the device answers
// only on wake-up, so the command completes asynchronously: StatusTimeout
// is returned and the Notifier reports the eventual wake.
func (d *Display) Suspend(options, duration byte) Status {
	d.mu.Lock()
	defer d.mu.Unlock()
	if st := d.ready(); st != StatusOK {
		return st
	}

	if options&0x10 != 0 {
		d.errf("invalid suspend options; bit 4 (0x10) must not be set")
		return StatusFault
	}
	if options&0x2f == 0x22 {
		d.errf("wake on touch was specified with touch off")
		return StatusFault
	}

	if st := d.send([]byte{'Z', options, duration}); st != StatusOK {
		return st
	}

	switch st := d.waitACKNACK(100 * time.Millisecond); st {
	case StatusOK, StatusNACK:
		return st
	case StatusTimeout:
		if options&0x0f != 0 {
			d.pending = PendingSleep
			d.touchBuf = nil
			d.state = Busy
		}
		return StatusTimeout
	}
	return StatusFault
}

// ReadPin reads the state of a GPIO pin (0..15).
func (d *Display) ReadPin(pin byte) (byte, Status) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if st := d.ready(); st != StatusOK {
		return 0, st
	}

	if pin > 15 {
		d.errf("invalid pin (%d); valid values are 0..15", pin)
		return 0, StatusFault
	}

	if st := d.send([]byte{'i', pin}); st != StatusOK {
		return 0, st
	}

	var buf [1]byte
	n, err := d.port.Read(buf[:], 100*time.Millisecond, 0)
	if err != nil || n != 1 {
		d.errf("no response: %s", d.port.LastError())
		return 0, StatusFault
	}
	return buf[0], StatusOK
}

// WritePin sets a GPIO pin (0..15) to 0 or 1.
func (d *Display) WritePin(pin, value byte) Status {
	d.mu.Lock()
	defer d.mu.Unlock()
	if st := d.ready(); st != StatusOK {
		return st
	}

	if pin > 15 {
		d.errf("invalid pin (%d); valid values are 0..15", pin)
		return StatusFault
	}
	if value != 0 && value != 1 {
		d.errf("invalid pin value (%d); valid values are 0,1", value)
		return StatusFault
	}

	if st := d.send([]byte{'y', pin, value}); st != StatusOK {
		return st
	}
	return d.waitACKNACK(100 * time.Millisecond)
}

// ReadBus reads the 8-bit parallel bus.
func (d *Display) ReadBus() (byte, Status) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if st := d.ready(); st != StatusOK {
		return 0, st
	}

	if st := d.send([]byte{'a'}); st != StatusOK {
		return 0, st
	}

	var buf [1]byte
	n, err := d.port.Read(buf[:], 100*time.Millisecond, 0)
	if err != nil || n != 1 {
		d.errf("no response: %s", d.port.LastError())
		return 0, StatusFault
	}
	return buf[0], StatusOK
}

// WriteBus drives the 8-bit parallel bus.
func (d *Display) WriteBus(value byte) Status {
	d.mu.Lock()
	defer d.mu.Unlock()
	if st := d.ready(); st != StatusOK {
		return st
	}

	if st := d.send([]byte{'W', value}); st != StatusOK {
		return st
	}
	return d.waitACKNACK(100 * time.Millisecond)
}
