package picaso

import (
	"log"
	"time"
)

const (
	// The device manual requires a quiet period after power-up / port open
	// before the first byte is sent.
	settleDelay = 500 * time.Millisecond

	autobaudTries   = 4
	autobaudACKWait = 20 * time.Millisecond

	powerOnRate = 9600
)

// Connect opens the serial device at the display's power-on rate, performs
// the mandatory settle delay and autobaud handshake, then tries to upgrade
// the link to the fastest rate this platform supports and starts the
// background worker. A failed upgrade leaves the connection usable at the
// slower rate. Rejected while an asynchronous command is Busy.
func (d *Display) Connect(portName string) Status {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.state == Busy {
		d.errf("display busy")
		return StatusFault
	}
	d.pending = PendingNone
	d.touchBuf = nil
	d.rcvd = 0

	if d.port.IsOpen() {
		d.closeLocked()
	}

	if err := d.port.Open(portName, powerOnRate); err != nil {
		d.errf("could not open port: %s", err)
		return StatusFault
	}

	time.Sleep(settleDelay)

	if st := d.autobaud(); st != StatusOK {
		d.port.Close()
		return st
	}

	if st := d.setBaud(maxBaud); st != StatusOK {
		// A slower but working link is acceptable.
		log.Printf("[picaso] staying at %d baud: %s", d.portRate, d.lastErr)
	}

	d.halt = false
	d.workerWG.Add(1)
	go d.run()

	return StatusOK
}

// autobaud sends the probe byte until the device acknowledges, fixing the
// negotiated rate to the power-on default. Exhausting the retry budget is
// a hard failure and leaves the state Inactive.
func (d *Display) autobaud() Status {
	for i := autobaudTries; i > 0; i-- {
		d.port.Flush()
		n, err := d.port.Write([]byte{'U'}, time.Second)
		if err != nil || n != 1 {
			time.Sleep(20 * time.Microsecond)
			continue
		}
		if d.waitACK(autobaudACKWait) == StatusOK {
			d.baud = Baud9600
			d.portRate = powerOnRate
			d.state = Idle
			return StatusOK
		}
	}
	d.errf("autobaud timed out, no ACK received")
	return StatusFault
}

// CodeForRate maps a bit rate to the device-side rate index. Rates the
// protocol does not define report ok == false.
func CodeForRate(rate int) (BaudCode, bool) {
	switch rate {
	case 9600:
		return Baud9600, true
	case 19200:
		return Baud19200, true
	case 38400:
		return Baud38400, true
	case 57600:
		return Baud57600, true
	case 115200:
		return Baud115200, true
	case 128000:
		return Baud128000, true
	case 256000:
		return Baud256000, true
	}
	return 0, false
}

// BaudRate returns the bit rate of the current connection.
func (d *Display) BaudRate() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.portRate
}

// SetBaud switches the device and the host to a new rate in lockstep.
// Setting the rate already in effect is a no-op. If the device accepts the
// new rate but the host-side switch then fails, the two ends are
// desynchronized and only a manual device reset recovers; that case
// returns StatusFaultIndet.
func (d *Display) SetBaud(code BaudCode) Status {
	d.mu.Lock()
	defer d.mu.Unlock()
	if st := d.ready(); st != StatusOK {
		return st
	}
	return d.setBaud(code)
}

func (d *Display) setBaud(code BaudCode) Status {
	if code == d.baud {
		return StatusOK
	}

	rate, ok := hostRate(code)
	if !ok {
		d.errf("bit rate code 0x%02X not supported on this platform", byte(code))
		return StatusFault
	}

	// Probe the host side first: switch to the new rate and back. This
	// both validates hardware support and gives the UART a settle cycle
	// before the device is asked to move.
	if err := d.port.SetBaud(rate); err != nil {
		d.errf("bit rate %d not supported by port: %s", rate, err)
		return StatusFault
	}
	time.Sleep(50 * time.Microsecond)
	if err := d.port.SetBaud(d.portRate); err != nil {
		d.errf("cannot revert to original bit rate: %s", err)
		return StatusFault
	}
	time.Sleep(50 * time.Microsecond)

	if st := d.send([]byte{'Q', byte(code)}); st != StatusOK {
		return st
	}

	// The PICASO answers SetBaud with 0xFF instead of a proper ACK, so the
	// response value is ignored; only an explicit NACK counts as refusal.
	if d.waitACKNACK(100*time.Millisecond) == StatusNACK {
		d.errf("NACK on SetBaud request")
		return StatusNACK
	}

	if err := d.port.SetBaud(rate); err != nil {
		d.errf("could not switch host bit rate after switching display; "+
			"display will require a manual reset: %s", err)
		return StatusFaultIndet
	}

	d.baud = code
	d.portRate = rate
	return StatusOK
}

// Close fails any in-flight asynchronous command, makes a best effort to
// restore the device's default rate for the next connection, closes the
// port and joins the background worker. Safe to call when not open.
func (d *Display) Close() {
	d.mu.Lock()
	if !d.port.IsOpen() {
		d.mu.Unlock()
		return
	}
	d.lastErr = ""
	d.halt = true

	var failed Pending
	notify := false
	if d.state == Busy {
		d.errf("port is closing")
		failed = d.pending
		d.pending = PendingNone
		d.touchBuf = nil
		d.state = Idle
		notify = d.notifier != nil
	}

	if d.state != Inactive {
		if st := d.setBaud(Baud9600); st != StatusOK {
			log.Printf("[picaso] cannot restore default bit rate; "+
				"device may require manual reset: %s", d.lastErr)
		}
	}

	d.port.Close()
	d.state = Inactive
	n := d.notifier
	d.mu.Unlock()

	// The caller of the pending command must not be left waiting forever.
	if notify {
		n.Done(d, failed, false)
	}

	d.workerWG.Wait()
}

// closeLocked tears down a stale connection during Connect. The caller
// holds the mutex; the worker is stopped without firing callbacks since
// Connect rejects while Busy.
func (d *Display) closeLocked() {
	d.halt = true
	d.port.Close()
	d.state = Inactive
	d.mu.Unlock()
	d.workerWG.Wait()
	d.mu.Lock()
}

// run is the background worker servicing asynchronous command completion.
// It exits when Process observes the halt flag.
func (d *Display) run() {
	defer d.workerWG.Done()
	for !d.Process() {
	}
}
