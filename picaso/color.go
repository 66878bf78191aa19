package picaso

// RGB packs 8-bit color components into the RGB565 format the device
// uses for all color fields.
func RGB(r, g, b byte) uint16 {
	return uint16(r&0xf8)<<8 | uint16(g&0xfc)<<3 | uint16(b)>>3
}

// Common RGB565 colors.
const (
	Black   uint16 = 0x0000
	White   uint16 = 0xffff
	Red     uint16 = 0xf800
	Green   uint16 = 0x07e0
	Blue    uint16 = 0x001f
	Yellow  uint16 = 0xffe0
	Cyan    uint16 = 0x07ff
	Magenta uint16 = 0xf81f
)
