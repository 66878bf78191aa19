package picaso

import "github.com/sergev/uoled/comport"

// defaultPort binds the engine to a real serial device.
func defaultPort() Port {
	return comport.New()
}
