package picaso

import "time"

// Font selectors.
const (
	Font5x7   = 0
	Font8x8   = 1
	Font8x12  = 2
	Font12x16 = 3
)

// maxStringLen limits the text payload of ShowString: the device buffers
// the string plus a NUL terminator in a 256-byte window.
const maxStringLen = 256

// SetFont selects the built-in font used by the text commands.
func (d *Display) SetFont(font byte) Status {
	d.mu.Lock()
	defer d.mu.Unlock()
	if st := d.ready(); st != StatusOK {
		return st
	}
	if font > Font12x16 {
		d.errf("invalid font (%d); valid values are 0..3", font)
		return StatusFault
	}
	if st := d.send([]byte{'F', font}); st != StatusOK {
		return st
	}
	return d.waitACKNACK(100 * time.Millisecond)
}

// SetOpacity selects transparent (0) or opaque (1) text background.
func (d *Display) SetOpacity(mode byte) Status {
	d.mu.Lock()
	defer d.mu.Unlock()
	if st := d.ready(); st != StatusOK {
		return st
	}
	if mode != 0 && mode != 1 {
		d.errf("invalid opacity mode (%d); valid values are 0,1", mode)
		return StatusFault
	}
	if st := d.send([]byte{'O', mode}); st != StatusOK {
		return st
	}
	return d.waitACKNACK(100 * time.Millisecond)
}

// ShowChar draws a single character at a text cell position using the
// current font.
func (d *Display) ShowChar(ch byte, column, row byte, color uint16) Status {
	d.mu.Lock()
	defer d.mu.Unlock()
	if st := d.ready(); st != StatusOK {
		return st
	}
	cmd := put16([]byte{'T', ch, column, row}, color)
	if st := d.send(cmd); st != StatusOK {
		return st
	}
	return d.waitACKNACK(100 * time.Millisecond)
}

// ScaleChar draws a single character at a pixel position with independent
// width and height multipliers.
func (d *Display) ScaleChar(ch byte, x, y, color uint16, width, height byte) Status {
	d.mu.Lock()
	defer d.mu.Unlock()
	if st := d.ready(); st != StatusOK {
		return st
	}
	cmd := []byte{'t', ch}
	cmd = put16(cmd, x)
	cmd = put16(cmd, y)
	cmd = put16(cmd, color)
	cmd = append(cmd, width, height)
	if st := d.send(cmd); st != StatusOK {
		return st
	}
	return d.waitACKNACK(5000 * time.Millisecond)
}

// ShowString draws a text string at a text cell position. An empty string
// is a no-op and succeeds without touching the wire.
func (d *Display) ShowString(column, row, font byte, color uint16, text string) Status {
	d.mu.Lock()
	defer d.mu.Unlock()
	if st := d.ready(); st != StatusOK {
		return st
	}
	if len(text) == 0 {
		return StatusOK
	}
	if len(text) > maxStringLen {
		d.errf("string too long (%d bytes, %d max)", len(text), maxStringLen)
		return StatusFault
	}
	if font > Font12x16 {
		d.errf("invalid font (%d); valid values are 0..3", font)
		return StatusFault
	}

	cmd := make([]byte, 0, 7+len(text))
	cmd = append(cmd, 's', column, row, font)
	cmd = put16(cmd, color)
	cmd = append(cmd, text...)
	cmd = append(cmd, 0)
	if st := d.send(cmd); st != StatusOK {
		return st
	}
	return d.waitACKNACK(400 * time.Millisecond)
}

// ScaleString draws a text string at a pixel position with independent
// width and height multipliers.
func (d *Display) ScaleString(x, y uint16, font byte, color uint16, width, height byte, text string) Status {
	d.mu.Lock()
	defer d.mu.Unlock()
	if st := d.ready(); st != StatusOK {
		return st
	}
	if len(text) == 0 {
		return StatusOK
	}
	if len(text) > maxStringLen {
		d.errf("string too long (%d bytes, %d max)", len(text), maxStringLen)
		return StatusFault
	}
	if font > Font12x16 {
		d.errf("invalid font (%d); valid values are 0..3", font)
		return StatusFault
	}

	cmd := make([]byte, 0, 11+len(text))
	cmd = append(cmd, 'S')
	cmd = put16(cmd, x)
	cmd = put16(cmd, y)
	cmd = append(cmd, font)
	cmd = put16(cmd, color)
	cmd = append(cmd, width, height)
	cmd = append(cmd, text...)
	cmd = append(cmd, 0)
	if st := d.send(cmd); st != StatusOK {
		return st
	}
	return d.waitACKNACK(5000 * time.Millisecond)
}

// Button draws a labelled button. state selects pressed (0) or released
// (1) appearance.
func (d *Display) Button(state byte, x, y, buttonColor uint16, font byte, textColor uint16, width, height byte, text string) Status {
	d.mu.Lock()
	defer d.mu.Unlock()
	if st := d.ready(); st != StatusOK {
		return st
	}
	if state != 0 && state != 1 {
		d.errf("invalid button state (%d); valid values are 0,1", state)
		return StatusFault
	}
	if len(text) == 0 {
		return StatusOK
	}
	if len(text) > maxStringLen {
		d.errf("string too long (%d bytes, %d max)", len(text), maxStringLen)
		return StatusFault
	}
	if font > Font12x16 {
		d.errf("invalid font (%d); valid values are 0..3", font)
		return StatusFault
	}

	cmd := make([]byte, 0, 14+len(text))
	cmd = append(cmd, 'b', state)
	cmd = put16(cmd, x)
	cmd = put16(cmd, y)
	cmd = put16(cmd, buttonColor)
	cmd = append(cmd, font)
	cmd = put16(cmd, textColor)
	cmd = append(cmd, width, height)
	cmd = append(cmd, text...)
	cmd = append(cmd, 0)
	if st := d.send(cmd); st != StatusOK {
		return st
	}
	return d.waitACKNACK(2000 * time.Millisecond)
}
