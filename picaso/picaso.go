// Package picaso drives 4D Systems uOLED/uLCD displays built around the
// PICASO graphics processor, speaking the serial (SGC) command set over a
// byte-oriented port. Each exported command method encodes one fixed-layout
// binary packet, writes it and waits for the acknowledgement or typed
// response defined for that command.
//
// Commands that may legitimately block for a long time on the device side
// (Suspend, WaitTouch, GetTouch in coordinate mode) complete asynchronously:
// they return StatusTimeout immediately and a background worker observes the
// eventual response, reporting it through the registered Notifier.
package picaso

import (
	"fmt"
	"sync"
	"time"
)

// Status is the outcome of a command, from the closed set the device
// protocol distinguishes. Callers should branch on these values; the text
// from LastError exists for diagnostics only.
type Status int

const (
	// StatusFaultIndet is a fault that occurred after part of a command was
	// already transmitted. The device may be waiting for bytes that will
	// never arrive; retrying is unsafe and a manual reset may be needed.
	StatusFaultIndet Status = -2
	// StatusFault is a usage or transport fault detected before the device
	// state could be disturbed. Always safe to retry.
	StatusFault Status = -1
	// StatusOK means the device acknowledged the command.
	StatusOK Status = 0
	// StatusNACK means the device explicitly rejected the command.
	StatusNACK Status = 1
	// StatusTimeout means no response arrived within the command budget.
	// For asynchronous commands this doubles as "in progress": completion
	// will be reported through the Notifier.
	StatusTimeout Status = 2
)

func (s Status) String() string {
	switch s {
	case StatusFaultIndet:
		return "fault after partial send"
	case StatusFault:
		return "fault"
	case StatusOK:
		return "ok"
	case StatusNACK:
		return "nack"
	case StatusTimeout:
		return "timeout"
	}
	return fmt.Sprintf("status(%d)", int(s))
}

// State of the connection to the display.
type State int

const (
	Inactive State = iota // no device connected
	Idle                  // connected, ready for a command
	Busy                  // an asynchronous command is in flight
)

// Pending identifies the asynchronous command the worker is servicing.
type Pending int

const (
	PendingNone      Pending = iota
	PendingSleep             // Suspend awaiting wake acknowledgement
	PendingTouchWait         // WaitTouch awaiting press acknowledgement
	PendingTouchData         // GetTouch awaiting 4 coordinate bytes
)

func (p Pending) String() string {
	switch p {
	case PendingNone:
		return "none"
	case PendingSleep:
		return "sleep"
	case PendingTouchWait:
		return "touch-wait"
	case PendingTouchData:
		return "touch-data"
	}
	return fmt.Sprintf("pending(%d)", int(p))
}

// Sentinel response bytes. These are the only in-band control signals the
// protocol defines for most commands; anything else seen during an ACK/NACK
// wait is a stray byte and is discarded.
const (
	ACK  = 0x06
	NACK = 0x15
)

// BaudCode is the device-side baud rate index carried in the SetBaud
// command. The engine keeps it paired with the equivalent host bit rate;
// the two must always name the same physical rate or device and host lose
// framing.
type BaudCode byte

const (
	Baud9600   BaudCode = 0x06 // power-on default
	Baud19200  BaudCode = 0x08
	Baud38400  BaudCode = 0x0A
	Baud57600  BaudCode = 0x0C
	Baud115200 BaudCode = 0x0D
	Baud128000 BaudCode = 0x0E
	Baud256000 BaudCode = 0x0F
)

// Display types reported by the Version command.
const (
	DevOLED    = 0
	DevLCD     = 1
	DevVGA     = 2
	DevUnknown = 0xff
)

// VersionInfo is the decoded reply to the Version command.
type VersionInfo struct {
	DisplayType byte
	HardwareRev byte
	FirmwareRev byte
	HRes        uint // horizontal resolution, pixels
	VRes        uint // vertical resolution, pixels
}

// Notifier receives the completion of an asynchronous command. Done is
// invoked from the background worker (or from Close, which fails any
// in-flight command), exactly once per command.
type Notifier interface {
	Done(d *Display, cmd Pending, ok bool)
}

// NotifierFunc adapts a plain function to the Notifier interface.
type NotifierFunc func(d *Display, cmd Pending, ok bool)

func (f NotifierFunc) Done(d *Display, cmd Pending, ok bool) { f(d, cmd, ok) }

// Port is the byte-stream capability the engine needs from a serial
// transport. *comport.Port satisfies it; tests substitute a mock. The
// transport provides no message framing: Read returns whatever arrived
// within the timeout, up to len(buf) bytes, or stops after delim when
// delim is nonzero.
type Port interface {
	Open(name string, baud int) error
	Close() error
	// Flush drains pending output and discards unread input.
	Flush() error
	// Drain waits for pending output to leave the host.
	Drain() error
	SetBaud(rate int) error
	Read(buf []byte, timeout time.Duration, delim byte) (int, error)
	Write(buf []byte, timeoutHint time.Duration) (int, error)
	Name() string
	IsOpen() bool
	LastError() string
}

// Display is the protocol engine for one physical display. All command
// methods are synchronous and serialized by an internal mutex, but the
// half-duplex channel still admits only one caller at a time in any useful
// sense: a command issued while another is Busy is rejected rather than
// queued. A Display is reusable across Connect/Close cycles.
type Display struct {
	mu   sync.Mutex
	port Port

	state    State
	baud     BaudCode // device-side rate index
	portRate int      // host-side bit rate, always paired with baud

	pending  Pending
	touchBuf []uint16 // caller-owned destination for touch coordinates
	rcvd     int      // coordinate bytes accumulated so far
	datain   [4]byte

	halt     bool
	workerWG sync.WaitGroup

	notifier Notifier
	lastErr  string
}

// New returns a Display bound to a real serial port. Connect must be
// called before any command.
func New() *Display {
	return newDisplay(defaultPort())
}

func newDisplay(p Port) *Display {
	return &Display{
		port: p,
		baud: Baud9600,
	}
}

// SetNotifier registers the completion receiver for asynchronous commands.
// Rejected while a command is Busy.
func (d *Display) SetNotifier(n Notifier) Status {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.state == Busy {
		d.errf("display busy")
		return StatusFault
	}
	d.notifier = n
	return StatusOK
}

// LastError returns the description of the most recent failure. It is
// overwritten by every failing operation; no history is kept.
func (d *Display) LastError() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.lastErr
}

// IsOpen reports whether a device is connected.
func (d *Display) IsOpen() bool {
	return d.port.IsOpen()
}

// PortName returns the path of the open serial device.
func (d *Display) PortName() string {
	return d.port.Name()
}

// State returns the current connection state.
func (d *Display) State() State {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state
}

// errf records the last-error message, overwriting any previous one.
func (d *Display) errf(format string, args ...interface{}) {
	d.lastErr = fmt.Sprintf(format, args...)
}

// ready gates every command that is not Connect/Close: the device must be
// connected and not servicing an asynchronous command.
func (d *Display) ready() Status {
	switch d.state {
	case Inactive:
		d.errf("display inactive")
		return StatusFault
	case Busy:
		d.errf("display busy")
		return StatusFault
	}
	return StatusOK
}

// convertRes translates the device-specific resolution code from the
// Version reply into a pixel count. Unknown codes map to 0.
func convertRes(code byte) uint {
	switch code {
	case 0x22:
		return 220
	case 0x24:
		return 240
	case 0x28:
		return 128
	case 0x32:
		return 320
	case 0x60:
		return 160
	case 0x64:
		return 64
	case 0x76:
		return 176
	case 0x96:
		return 96
	}
	return 0
}
