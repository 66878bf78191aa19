//go:build !linux

package picaso

// Fastest rate the device supports; non-termios platforms can express the
// full range.
const maxBaud = Baud256000

// hostRate maps a device baud code to the equivalent host bit rate.
func hostRate(code BaudCode) (int, bool) {
	switch code {
	case Baud9600:
		return 9600, true
	case Baud19200:
		return 19200, true
	case Baud38400:
		return 38400, true
	case Baud57600:
		return 57600, true
	case Baud115200:
		return 115200, true
	case Baud128000:
		return 128000, true
	case Baud256000:
		return 256000, true
	}
	return 0, false
}
