package picaso

import (
	"encoding/binary"
	"time"
)

// Color modes for icon and card image data.
const (
	Color8Bit  = 0x08
	Color16Bit = 0x10
)

// put16 appends a 16-bit field in wire order (big-endian).
func put16(buf []byte, v uint16) []byte {
	return append(buf, byte(v>>8), byte(v))
}

// Clear erases the screen to the current background color.
func (d *Display) Clear() Status {
	d.mu.Lock()
	defer d.mu.Unlock()
	if st := d.ready(); st != StatusOK {
		return st
	}
	if st := d.send([]byte{'E'}); st != StatusOK {
		return st
	}
	return d.waitACKNACK(100 * time.Millisecond)
}

// SetBackground sets the background color used by subsequent drawing.
func (d *Display) SetBackground(color uint16) Status {
	d.mu.Lock()
	defer d.mu.Unlock()
	if st := d.ready(); st != StatusOK {
		return st
	}
	cmd := put16([]byte{'K'}, color)
	if st := d.send(cmd); st != StatusOK {
		return st
	}
	return d.waitACKNACK(100 * time.Millisecond)
}

// ReplaceBackground repaints every background-colored pixel with the new
// color. This is a full-screen pass on the device, hence the long budget.
func (d *Display) ReplaceBackground(color uint16) Status {
	d.mu.Lock()
	defer d.mu.Unlock()
	if st := d.ready(); st != StatusOK {
		return st
	}
	cmd := put16([]byte{'B'}, color)
	if st := d.send(cmd); st != StatusOK {
		return st
	}
	return d.waitACKNACK(2500 * time.Millisecond)
}

// WritePixel sets a single pixel.
func (d *Display) WritePixel(x, y, color uint16) Status {
	d.mu.Lock()
	defer d.mu.Unlock()
	if st := d.ready(); st != StatusOK {
		return st
	}
	cmd := []byte{'P'}
	cmd = put16(cmd, x)
	cmd = put16(cmd, y)
	cmd = put16(cmd, color)
	if st := d.send(cmd); st != StatusOK {
		return st
	}
	return d.waitACKNACK(200 * time.Millisecond)
}

// ReadPixel returns the color of a single pixel.
func (d *Display) ReadPixel(x, y uint16) (uint16, Status) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if st := d.ready(); st != StatusOK {
		return 0, st
	}
	cmd := []byte{'R'}
	cmd = put16(cmd, x)
	cmd = put16(cmd, y)
	if st := d.send(cmd); st != StatusOK {
		return 0, st
	}

	var buf [2]byte
	n, err := d.port.Read(buf[:], 200*time.Millisecond, 0)
	if err != nil {
		d.errf("no response: %s", d.port.LastError())
		return 0, StatusFault
	}
	if n != 2 {
		d.errf("incomplete response packet (%d bytes, 2 expected)", n)
		return 0, StatusFault
	}
	return binary.BigEndian.Uint16(buf[:]), StatusOK
}

// Line draws a line between two points.
func (d *Display) Line(x1, y1, x2, y2, color uint16) Status {
	d.mu.Lock()
	defer d.mu.Unlock()
	if st := d.ready(); st != StatusOK {
		return st
	}
	cmd := []byte{'L'}
	for _, v := range []uint16{x1, y1, x2, y2, color} {
		cmd = put16(cmd, v)
	}
	if st := d.send(cmd); st != StatusOK {
		return st
	}
	return d.waitACKNACK(100 * time.Millisecond)
}

// Rectangle draws a rectangle with opposite corners (x1,y1) and (x2,y2).
func (d *Display) Rectangle(x1, y1, x2, y2, color uint16) Status {
	d.mu.Lock()
	defer d.mu.Unlock()
	if st := d.ready(); st != StatusOK {
		return st
	}
	cmd := []byte{'r'}
	for _, v := range []uint16{x1, y1, x2, y2, color} {
		cmd = put16(cmd, v)
	}
	if st := d.send(cmd); st != StatusOK {
		return st
	}
	return d.waitACKNACK(100 * time.Millisecond)
}

// Circle draws a circle of the given radius.
func (d *Display) Circle(x, y, radius, color uint16) Status {
	d.mu.Lock()
	defer d.mu.Unlock()
	if st := d.ready(); st != StatusOK {
		return st
	}
	cmd := []byte{'C'}
	for _, v := range []uint16{x, y, radius, color} {
		cmd = put16(cmd, v)
	}
	if st := d.send(cmd); st != StatusOK {
		return st
	}
	return d.waitACKNACK(100 * time.Millisecond)
}

// Ellipse draws an ellipse with radii rx and ry.
func (d *Display) Ellipse(x, y, rx, ry, color uint16) Status {
	d.mu.Lock()
	defer d.mu.Unlock()
	if st := d.ready(); st != StatusOK {
		return st
	}
	cmd := []byte{'e'}
	for _, v := range []uint16{x, y, rx, ry, color} {
		cmd = put16(cmd, v)
	}
	if st := d.send(cmd); st != StatusOK {
		return st
	}
	return d.waitACKNACK(200 * time.Millisecond)
}

// Triangle draws a triangle through three vertices.
func (d *Display) Triangle(x1, y1, x2, y2, x3, y3, color uint16) Status {
	d.mu.Lock()
	defer d.mu.Unlock()
	if st := d.ready(); st != StatusOK {
		return st
	}
	cmd := []byte{'G'}
	for _, v := range []uint16{x1, y1, x2, y2, x3, y3, color} {
		cmd = put16(cmd, v)
	}
	if st := d.send(cmd); st != StatusOK {
		return st
	}
	return d.waitACKNACK(200 * time.Millisecond)
}

// Polygon draws a closed polygon through 3..7 vertices. xs and ys carry
// the coordinates pairwise.
func (d *Display) Polygon(xs, ys []uint16, color uint16) Status {
	d.mu.Lock()
	defer d.mu.Unlock()
	if st := d.ready(); st != StatusOK {
		return st
	}

	n := len(xs)
	if n < 3 || n > 7 {
		d.errf("invalid number of vertices (%d); valid range is 3..7", n)
		return StatusFault
	}
	if len(ys) != n {
		d.errf("vertex lists differ in length (%d x, %d y)", n, len(ys))
		return StatusFault
	}

	cmd := []byte{'g', byte(n)}
	for i := 0; i < n; i++ {
		cmd = put16(cmd, xs[i])
		cmd = put16(cmd, ys[i])
	}
	cmd = put16(cmd, color)
	if st := d.send(cmd); st != StatusOK {
		return st
	}
	return d.waitACKNACK(100 * time.Millisecond)
}

// CopyPaste copies a rectangular screen region to another position.
func (d *Display) CopyPaste(xsrc, ysrc, xdst, ydst, width, height uint16) Status {
	d.mu.Lock()
	defer d.mu.Unlock()
	if st := d.ready(); st != StatusOK {
		return st
	}
	cmd := []byte{'c'}
	for _, v := range []uint16{xsrc, ysrc, xdst, ydst, width, height} {
		cmd = put16(cmd, v)
	}
	if st := d.send(cmd); st != StatusOK {
		return st
	}
	return d.waitACKNACK(2000 * time.Millisecond)
}

// ReplaceColor repaints every oldcolor pixel in the region with newcolor.
// Slowest of the fill operations.
func (d *Display) ReplaceColor(x1, y1, x2, y2, oldcolor, newcolor uint16) Status {
	d.mu.Lock()
	defer d.mu.Unlock()
	if st := d.ready(); st != StatusOK {
		return st
	}
	cmd := []byte{'k'}
	for _, v := range []uint16{x1, y1, x2, y2, oldcolor, newcolor} {
		cmd = put16(cmd, v)
	}
	if st := d.send(cmd); st != StatusOK {
		return st
	}
	return d.waitACKNACK(5000 * time.Millisecond)
}

// PenSize selects solid (0) or wireframe (1) drawing for closed shapes.
func (d *Display) PenSize(size byte) Status {
	d.mu.Lock()
	defer d.mu.Unlock()
	if st := d.ready(); st != StatusOK {
		return st
	}
	if size != 0 && size != 1 {
		d.errf("invalid pen size (%d); valid values are 0,1", size)
		return StatusFault
	}
	if st := d.send([]byte{'p', size}); st != StatusOK {
		return st
	}
	return d.waitACKNACK(100 * time.Millisecond)
}

// bitmapLimits gives the payload length and maximum index for a user
// bitmap group: 8x8, 16x16 or 32x32 cells.
func bitmapLimits(group byte) (dataLen int, maxIndex byte, ok bool) {
	switch group {
	case 0:
		return 8, 63, true
	case 1:
		return 32, 15, true
	case 2:
		return 128, 7, true
	}
	return 0, 0, false
}

// AddBitmap stores a user-defined bitmap in the given group and slot.
// Group 0 holds 8x8 cells (8 bytes), group 1 16x16 (32 bytes), group 2
// 32x32 (128 bytes).
func (d *Display) AddBitmap(group, index byte, data []byte) Status {
	d.mu.Lock()
	defer d.mu.Unlock()
	if st := d.ready(); st != StatusOK {
		return st
	}

	want, maxIndex, ok := bitmapLimits(group)
	if !ok {
		d.errf("invalid bitmap group (%d); valid values are 0..2", group)
		return StatusFault
	}
	if len(data) != want {
		d.errf("invalid data length for group %d (%d bytes, %d expected)", group, len(data), want)
		return StatusFault
	}
	if index > maxIndex {
		d.errf("invalid index for group %d (%d); valid values are 0..%d", group, index, maxIndex)
		return StatusFault
	}

	cmd := append([]byte{'A', group, index}, data...)
	if st := d.send(cmd); st != StatusOK {
		return st
	}
	d.port.Drain()
	return d.waitACKNACK(200 * time.Millisecond)
}

// DrawBitmap draws a previously stored user bitmap.
func (d *Display) DrawBitmap(group, index byte, x, y, color uint16) Status {
	d.mu.Lock()
	defer d.mu.Unlock()
	if st := d.ready(); st != StatusOK {
		return st
	}

	_, maxIndex, ok := bitmapLimits(group)
	if !ok {
		d.errf("invalid bitmap group (%d); valid values are 0..2", group)
		return StatusFault
	}
	if index > maxIndex {
		d.errf("invalid index for group %d (%d); valid values are 0..%d", group, index, maxIndex)
		return StatusFault
	}

	cmd := []byte{'D', group, index}
	cmd = put16(cmd, x)
	cmd = put16(cmd, y)
	cmd = put16(cmd, color)
	if st := d.send(cmd); st != StatusOK {
		return st
	}
	return d.waitACKNACK(100 * time.Millisecond)
}

// DrawIcon transfers raw pixel data to a screen region. colormode selects
// 8-bit (one byte per pixel) or 16-bit (two bytes per pixel); data length
// must match width*height at that depth.
func (d *Display) DrawIcon(x, y, width, height uint16, colormode byte, data []byte) Status {
	d.mu.Lock()
	defer d.mu.Unlock()
	if st := d.ready(); st != StatusOK {
		return st
	}

	if colormode != Color8Bit && colormode != Color16Bit {
		d.errf("invalid color mode (0x%02X); valid values are 0x08 and 0x10", colormode)
		return StatusFault
	}
	want := int(width) * int(height)
	if colormode == Color16Bit {
		want *= 2
	}
	if len(data) != want {
		d.errf("invalid data length for color mode 0x%02X (%d bytes, %d expected)",
			colormode, len(data), want)
		return StatusFault
	}

	cmd := make([]byte, 0, 10+len(data))
	cmd = append(cmd, 'I')
	cmd = put16(cmd, x)
	cmd = put16(cmd, y)
	cmd = put16(cmd, width)
	cmd = put16(cmd, height)
	cmd = append(cmd, colormode)
	cmd = append(cmd, data...)
	if st := d.send(cmd); st != StatusOK {
		return st
	}
	return d.waitACKNACK(400 * time.Millisecond)
}
