package picaso

import "time"

// SectorSize is the fixed block size of raw card transfers.
const SectorSize = 512

// maxSectorAddr bounds the 3-byte sector address fields.
const maxSectorAddr = 0x00ffffff

// put24 appends a 24-bit sector address in wire order.
func put24(buf []byte, addr uint32) []byte {
	return append(buf, byte(addr>>16), byte(addr>>8), byte(addr))
}

// put32 appends a 32-bit field in wire order.
func put32(buf []byte, v uint32) []byte {
	return append(buf, byte(v>>24), byte(v>>16), byte(v>>8), byte(v))
}

func (d *Display) checkSector(addr uint32) Status {
	if addr > maxSectorAddr {
		d.errf("invalid sector address (0x%08X); must be <= 0x%08X", addr, uint32(maxSectorAddr))
		return StatusFault
	}
	return StatusOK
}

// SDInit initializes the storage card. Must be called once before any
// other card operation.
func (d *Display) SDInit() Status {
	d.mu.Lock()
	defer d.mu.Unlock()
	if st := d.ready(); st != StatusOK {
		return st
	}
	if st := d.send([]byte{'@', 'i'}); st != StatusOK {
		return st
	}
	return d.waitACKNACK(200 * time.Millisecond)
}

// SDSetAddress positions the card byte pointer used by SDReadByte and
// SDWriteByte.
func (d *Display) SDSetAddress(addr uint32) Status {
	d.mu.Lock()
	defer d.mu.Unlock()
	if st := d.ready(); st != StatusOK {
		return st
	}
	cmd := put32([]byte{'@', 'A'}, addr)
	if st := d.send(cmd); st != StatusOK {
		return st
	}
	return d.waitACKNACK(200 * time.Millisecond)
}

// SDReadByte reads one byte at the current card address and advances the
// pointer.
func (d *Display) SDReadByte() (byte, Status) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if st := d.ready(); st != StatusOK {
		return 0, st
	}
	if st := d.send([]byte{'@', 'r'}); st != StatusOK {
		return 0, st
	}

	var buf [1]byte
	n, err := d.port.Read(buf[:], 200*time.Millisecond, 0)
	if err != nil {
		d.errf("no response: %s", d.port.LastError())
		return 0, StatusFault
	}
	if n != 1 {
		d.errf("no response (timeout)")
		return 0, StatusTimeout
	}
	return buf[0], StatusOK
}

// SDWriteByte writes one byte at the current card address and advances
// the pointer.
func (d *Display) SDWriteByte(value byte) Status {
	d.mu.Lock()
	defer d.mu.Unlock()
	if st := d.ready(); st != StatusOK {
		return st
	}
	if st := d.send([]byte{'@', 'w', value}); st != StatusOK {
		return st
	}
	return d.waitACKNACK(200 * time.Millisecond)
}

// SDReadSector reads one 512-byte sector into data.
func (d *Display) SDReadSector(sector uint32, data []byte) Status {
	d.mu.Lock()
	defer d.mu.Unlock()
	if st := d.ready(); st != StatusOK {
		return st
	}
	if len(data) < SectorSize {
		d.errf("buffer too small (%d bytes, %d needed)", len(data), SectorSize)
		return StatusFault
	}
	if st := d.checkSector(sector); st != StatusOK {
		return st
	}

	cmd := put24([]byte{'@', 'R'}, sector)
	if st := d.send(cmd); st != StatusOK {
		return st
	}

	n, err := d.port.Read(data[:SectorSize], 500*time.Millisecond, 0)
	if err != nil {
		d.errf("no response: %s", d.port.LastError())
		return StatusFault
	}
	if n != SectorSize {
		d.errf("incomplete sector (%d bytes, %d expected)", n, SectorSize)
		return StatusTimeout
	}
	return StatusOK
}

// SDWriteSector writes one 512-byte sector.
func (d *Display) SDWriteSector(sector uint32, data []byte) Status {
	d.mu.Lock()
	defer d.mu.Unlock()
	if st := d.ready(); st != StatusOK {
		return st
	}
	if len(data) != SectorSize {
		d.errf("invalid data length (%d bytes, %d expected)", len(data), SectorSize)
		return StatusFault
	}
	if st := d.checkSector(sector); st != StatusOK {
		return st
	}

	cmd := make([]byte, 0, 5+SectorSize)
	cmd = append(cmd, '@', 'W')
	cmd = put24(cmd, sector)
	cmd = append(cmd, data...)
	if st := d.send(cmd); st != StatusOK {
		return st
	}
	return d.waitACKNACK(200 * time.Millisecond)
}

// SDScreenCopy saves a rectangular screen region to the card starting at
// the given sector.
func (d *Display) SDScreenCopy(x, y, width, height uint16, sector uint32) Status {
	d.mu.Lock()
	defer d.mu.Unlock()
	if st := d.ready(); st != StatusOK {
		return st
	}
	if st := d.checkSector(sector); st != StatusOK {
		return st
	}

	cmd := []byte{'@', 'C'}
	for _, v := range []uint16{x, y, width, height} {
		cmd = put16(cmd, v)
	}
	cmd = put24(cmd, sector)
	if st := d.send(cmd); st != StatusOK {
		return st
	}
	return d.waitACKNACK(200 * time.Millisecond)
}

// SDShowImage displays raw image data stored on the card.
func (d *Display) SDShowImage(x, y, width, height uint16, colormode byte, sector uint32) Status {
	d.mu.Lock()
	defer d.mu.Unlock()
	if st := d.ready(); st != StatusOK {
		return st
	}
	if st := d.checkSector(sector); st != StatusOK {
		return st
	}
	if colormode != Color8Bit && colormode != Color16Bit {
		d.errf("invalid color mode (0x%02X); valid values are 0x08 and 0x10", colormode)
		return StatusFault
	}

	cmd := []byte{'@', 'I'}
	for _, v := range []uint16{x, y, width, height} {
		cmd = put16(cmd, v)
	}
	cmd = append(cmd, colormode)
	cmd = put24(cmd, sector)
	if st := d.send(cmd); st != StatusOK {
		return st
	}
	return d.waitACKNACK(200 * time.Millisecond)
}

// SDShowObject displays a 4DSL object stored at a card byte address.
func (d *Display) SDShowObject(addr uint32) Status {
	d.mu.Lock()
	defer d.mu.Unlock()
	if st := d.ready(); st != StatusOK {
		return st
	}
	cmd := put32([]byte{'@', 'O'}, addr)
	if st := d.send(cmd); st != StatusOK {
		return st
	}
	return d.waitACKNACK(200 * time.Millisecond)
}

// SDShowVideo plays new-format video data stored on the card. delay is
// the inter-frame delay in milliseconds.
func (d *Display) SDShowVideo(x, y uint16, delay byte, sector uint32) Status {
	d.mu.Lock()
	defer d.mu.Unlock()
	if st := d.ready(); st != StatusOK {
		return st
	}
	if st := d.checkSector(sector); st != StatusOK {
		return st
	}

	cmd := []byte{'@', 'V'}
	cmd = put16(cmd, x)
	cmd = put16(cmd, y)
	cmd = append(cmd, delay)
	cmd = put24(cmd, sector)
	if st := d.send(cmd); st != StatusOK {
		return st
	}
	return d.waitACKNACK(200 * time.Millisecond)
}

// SDShowVideoOld plays old-format video data, which carries its geometry
// in the command rather than in the data header.
func (d *Display) SDShowVideoOld(x, y, width, height uint16, colormode, delay byte, frames uint16, sector uint32) Status {
	d.mu.Lock()
	defer d.mu.Unlock()
	if st := d.ready(); st != StatusOK {
		return st
	}
	if st := d.checkSector(sector); st != StatusOK {
		return st
	}
	if colormode != Color8Bit && colormode != Color16Bit {
		d.errf("invalid color mode (0x%02X); valid values are 0x08 and 0x10", colormode)
		return StatusFault
	}

	cmd := []byte{'@', 'V'}
	for _, v := range []uint16{x, y, width, height} {
		cmd = put16(cmd, v)
	}
	cmd = append(cmd, colormode, delay)
	cmd = put16(cmd, frames)
	cmd = put24(cmd, sector)
	if st := d.send(cmd); st != StatusOK {
		return st
	}
	return d.waitACKNACK(200 * time.Millisecond)
}

// SDRunScript starts a 4DSL script stored at a card byte address. The
// device only answers if the script fails to start, so the absence of a
// NACK within the wait window counts as success.
func (d *Display) SDRunScript(addr uint32) Status {
	d.mu.Lock()
	defer d.mu.Unlock()
	if st := d.ready(); st != StatusOK {
		return st
	}
	cmd := put32([]byte{'@', 'P'}, addr)
	if st := d.send(cmd); st != StatusOK {
		return st
	}
	return d.waitNACK(200 * time.Millisecond)
}
