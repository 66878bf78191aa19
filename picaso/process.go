package picaso

import (
	"encoding/binary"
	"log"
	"time"
)

const (
	// Idle sleep between worker iterations when nothing is pending.
	processIdleSleep = 100 * time.Millisecond
	// Budget for one re-poll of a pending sleep/touch acknowledgement.
	processPollWait = 200 * time.Millisecond
	// Budget for one attempt at the remaining touch coordinate bytes.
	touchReadWait = 100 * time.Millisecond
)

// Process advances the in-flight asynchronous command by one step, if any,
// and reports whether the engine has been halted. It is invoked repeatedly
// by the background worker; callers doing their own scheduling may invoke
// it directly instead. Completion, rejection or a fault consumes the
// pending command and fires the Notifier exactly once; a timeout leaves it
// pending for the next invocation.
func (d *Display) Process() (halted bool) {
	d.mu.Lock()
	if d.halt {
		d.mu.Unlock()
		return true
	}
	if d.state != Busy {
		d.mu.Unlock()
		time.Sleep(processIdleSleep)
		return false
	}

	cmd := d.pending
	switch cmd {
	case PendingSleep, PendingTouchWait:
		switch d.waitACKNACK(processPollWait) {
		case StatusOK:
			d.finish(cmd, true)
		case StatusNACK:
			d.errf("NACK")
			d.finish(cmd, false)
		case StatusFault:
			d.finish(cmd, false)
		default:
			// Still waiting; retried on the next invocation.
			d.mu.Unlock()
		}

	case PendingTouchData:
		n, err := d.port.Read(d.datain[d.rcvd:], touchReadWait, 0)
		if err != nil {
			d.errf("touch read fault: %s", d.port.LastError())
			d.finish(cmd, false)
			return false
		}
		d.rcvd += n
		if d.rcvd < len(d.datain) {
			d.mu.Unlock()
			return false
		}
		if len(d.touchBuf) < 2 {
			d.errf("touch destination buffer missing")
			d.finish(cmd, false)
			return false
		}
		d.touchBuf[0] = binary.BigEndian.Uint16(d.datain[0:2])
		d.touchBuf[1] = binary.BigEndian.Uint16(d.datain[2:4])
		d.finish(cmd, true)

	default:
		// Busy with nothing pending indicates an internal inconsistency,
		// not a device fault. Recover to Idle and report failure.
		log.Printf("[picaso] busy with unexpected pending command %s", cmd)
		d.errf("busy with unexpected pending command %s", cmd)
		d.finish(cmd, false)
	}
	return false
}

// finish consumes the pending command, returns the engine to Idle and
// fires the Notifier outside the mutex. The caller must hold the mutex;
// finish releases it.
func (d *Display) finish(cmd Pending, ok bool) {
	d.pending = PendingNone
	d.touchBuf = nil
	d.rcvd = 0
	d.state = Idle
	n := d.notifier
	d.mu.Unlock()
	if n != nil {
		n.Done(d, cmd, ok)
	}
}
