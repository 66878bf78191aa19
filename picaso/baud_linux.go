//go:build linux

package picaso

// Fastest rate the Linux termios layer supports for this device family.
const maxBaud = Baud115200

// hostRate maps a device baud code to the equivalent host bit rate.
// 128000 and 256000 are not available on Linux.
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
	}
	return 0, false
}
