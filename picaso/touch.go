package picaso

import (
	"encoding/binary"
	"time"
)

// Touch request modes.
const (
	TouchGetStatus  = 0 // wait for any activity
	TouchGetPress   = 1 // wait for press
	TouchGetRelease = 2 // wait for release
	TouchGetMoving  = 3 // wait for movement
	TouchReset      = 4 // reset the active region, replies immediately
	TouchGetLast    = 5 // read last coordinates, replies immediately
)

// GetTouch requests touch coordinates. Modes 0..3 complete in the
// background: the call commits the request and returns StatusTimeout,
// and the worker fills coords and fires the notifier once the device
// reports an event. Modes 4..5 reply immediately. coords must hold at
// least two entries; it receives x and y.
func (d *Display) GetTouch(mode byte, coords []uint16) Status {
	d.mu.Lock()
	defer d.mu.Unlock()
	if st := d.ready(); st != StatusOK {
		return st
	}
	if mode > TouchGetLast {
		d.errf("invalid touch mode (%d); valid values are 0..5", mode)
		return StatusFault
	}
	if len(coords) < 2 {
		d.errf("coordinate buffer too small (%d entries, 2 needed)", len(coords))
		return StatusFault
	}

	if st := d.send([]byte{'o', mode}); st != StatusOK {
		return st
	}

	if mode <= TouchGetMoving {
		// The device stays quiet until the requested event happens.
		// Hand the read off to the worker.
		d.pending = PendingTouchData
		d.touchBuf = coords
		d.rcvd = 0
		d.state = Busy
		return StatusTimeout
	}

	var buf [4]byte
	n, err := d.port.Read(buf[:], 100*time.Millisecond, 0)
	if err != nil {
		d.errf("no response: %s", d.port.LastError())
		return StatusFault
	}
	if n != 4 {
		d.errf("incomplete response packet (%d bytes, 4 expected)", n)
		return StatusFault
	}
	coords[0] = binary.BigEndian.Uint16(buf[0:2])
	coords[1] = binary.BigEndian.Uint16(buf[2:4])
	return StatusOK
}

// WaitTouch asks the device to report whether a touch happens within the
// given interval (milliseconds). An immediate ACK means a touch is
// already in progress; otherwise the answer arrives later and the worker
// fires the notifier, so StatusTimeout here means "pending".
func (d *Display) WaitTouch(interval uint16) Status {
	d.mu.Lock()
	defer d.mu.Unlock()
	if st := d.ready(); st != StatusOK {
		return st
	}

	cmd := put16([]byte{'w'}, interval)
	if st := d.send(cmd); st != StatusOK {
		return st
	}

	st := d.waitACKNACK(0)
	if st == StatusTimeout {
		d.pending = PendingTouchWait
		d.state = Busy
	}
	return st
}

// SetRegion restricts touch reporting to a rectangular screen area.
func (d *Display) SetRegion(x1, y1, x2, y2 uint16) Status {
	d.mu.Lock()
	defer d.mu.Unlock()
	if st := d.ready(); st != StatusOK {
		return st
	}
	cmd := []byte{'u'}
	for _, v := range []uint16{x1, y1, x2, y2} {
		cmd = put16(cmd, v)
	}
	if st := d.send(cmd); st != StatusOK {
		return st
	}
	return d.waitACKNACK(200 * time.Millisecond)
}
