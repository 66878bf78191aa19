package picaso

import "time"

// How long each transport read blocks inside a wait loop. Short enough
// that the wall-clock deadline is re-checked promptly.
const ackPollInterval = 10 * time.Millisecond

// The write budget for a command packet. Writes are expected to complete
// immediately at any supported rate; this is a backstop, not a tunable.
const writeTimeout = time.Second

// send flushes stale input and writes a complete command packet. The
// distinction between the two failure returns matters to callers: a write
// that moved no bytes is safely retryable, while a partial write leaves
// the device expecting the remainder of the packet.
func (d *Display) send(cmd []byte) Status {
	d.port.Flush()
	n, err := d.port.Write(cmd, writeTimeout)
	if n == len(cmd) && err == nil {
		return StatusOK
	}
	d.errf("command write failed (%d of %d bytes): %s", n, len(cmd), d.port.LastError())
	if n > 0 {
		return StatusFaultIndet
	}
	return StatusFault
}

// waitACK scans incoming bytes for ACK until the deadline. Stray bytes are
// discarded, not treated as corruption: the protocol has no framing beyond
// the two sentinel bytes and a late response to an aborted command may
// still be in flight.
func (d *Display) waitACK(timeout time.Duration) Status {
	if timeout < 2*time.Millisecond {
		timeout = 2 * time.Millisecond
	}
	deadline := time.Now().Add(timeout)
	buf := make([]byte, 64)
	for {
		n, err := d.port.Read(buf, ackPollInterval, 0)
		if err != nil {
			d.errf("read failed: %s", d.port.LastError())
			return StatusFault
		}
		for i := 0; i < n; i++ {
			if buf[i] == ACK {
				return StatusOK
			}
		}
		if !time.Now().Before(deadline) {
			d.errf("timeout")
			return StatusTimeout
		}
	}
}

// waitNACK scans for NACK until the deadline. Absence of a NACK is not an
// error here — it returns StatusOK, which is the meaning commands with
// NACK-only responses rely on.
func (d *Display) waitNACK(timeout time.Duration) Status {
	if timeout < 2*time.Millisecond {
		timeout = 2 * time.Millisecond
	}
	deadline := time.Now().Add(timeout)
	buf := make([]byte, 64)
	for {
		n, err := d.port.Read(buf, ackPollInterval, 0)
		if err != nil {
			d.errf("read failed: %s", d.port.LastError())
			return StatusFault
		}
		for i := 0; i < n; i++ {
			if buf[i] == NACK {
				return StatusNACK
			}
		}
		if !time.Now().Before(deadline) {
			return StatusOK
		}
	}
}

// waitACKNACK scans for either sentinel, discarding everything else. This
// is the terminal wait used by the majority of commands. A zero timeout
// still performs one short poll.
func (d *Display) waitACKNACK(timeout time.Duration) Status {
	deadline := time.Now().Add(timeout)
	buf := make([]byte, 64)
	for {
		n, err := d.port.Read(buf, ackPollInterval, 0)
		if err != nil {
			d.errf("read failed: %s", d.port.LastError())
			return StatusFault
		}
		for i := 0; i < n; i++ {
			switch buf[i] {
			case ACK:
				return StatusOK
			case NACK:
				return StatusNACK
			}
		}
		if !time.Now().Before(deadline) {
			d.errf("timeout")
			return StatusTimeout
		}
	}
}
