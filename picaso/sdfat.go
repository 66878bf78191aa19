package picaso

import (
	"encoding/binary"
	"time"
)

// FAT transfers move file data in chunks of this size, with an ACK
// handshake before each chunk.
const fatChunkSize = 50

// maxFilenameLen is the 8.3 limit of the on-card FAT16 filesystem.
const maxFilenameLen = 12

func (d *Display) checkFilename(name string) Status {
	if len(name) < 1 || len(name) > maxFilenameLen {
		d.errf("invalid filename length (%d); valid range is 1..%d", len(name), maxFilenameLen)
		return StatusFault
	}
	return StatusOK
}

// appendName appends a filename and its NUL terminator.
func appendName(buf []byte, name string) []byte {
	buf = append(buf, name...)
	return append(buf, 0)
}

// SDReadFile reads a whole file from the card. The device announces the
// file size, then streams it in chunks, each released by an ACK from the
// host. A zero-length file yields an empty slice and StatusOK.
func (d *Display) SDReadFile(filename string) ([]byte, Status) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if st := d.ready(); st != StatusOK {
		return nil, st
	}
	if st := d.checkFilename(filename); st != StatusOK {
		return nil, st
	}

	cmd := appendName([]byte{'@', 'a', fatChunkSize}, filename)
	if st := d.send(cmd); st != StatusOK {
		return nil, st
	}

	var hdr [4]byte
	n, err := d.port.Read(hdr[:], 500*time.Millisecond, 0)
	if err != nil {
		d.errf("no response: %s", d.port.LastError())
		return nil, StatusFault
	}
	if n == 0 {
		// Cancel the transaction so the device does not stay in
		// transfer mode.
		d.port.Write([]byte{NACK}, writeTimeout)
		d.errf("timeout: no response")
		return nil, StatusFaultIndet
	}
	if n == 1 && hdr[0] == NACK {
		return nil, StatusNACK
	}
	if n != 4 {
		d.port.Write([]byte{NACK}, writeTimeout)
		d.errf("unexpected response size (%d); expected 4", n)
		return nil, StatusFaultIndet
	}

	size := binary.BigEndian.Uint32(hdr[:])
	if size == 0 {
		d.port.Write([]byte{NACK}, writeTimeout)
		return []byte{}, StatusOK
	}

	data := make([]byte, size)
	for idx := uint32(0); idx < size; idx += fatChunkSize {
		if _, err := d.port.Write([]byte{ACK}, writeTimeout); err != nil {
			d.errf("handshake failed: %s", d.port.LastError())
			return nil, StatusFault
		}
		end := idx + fatChunkSize
		if end > size {
			end = size
		}
		nb, err := d.port.Read(data[idx:end], 500*time.Millisecond, 0)
		if err != nil {
			d.errf("failed to read %d bytes of data: %s", size, d.port.LastError())
			return nil, StatusFaultIndet
		}
		if nb != int(end-idx) {
			d.errf("failed to read %d bytes of data (timeout)", size)
			return nil, StatusFaultIndet
		}
	}

	// The device terminates the transfer with an ACK.
	if st := d.waitACK(100 * time.Millisecond); st != StatusOK {
		return nil, st
	}
	return data, StatusOK
}

// SDWriteFile writes a file to the card. Small payloads (up to 100
// bytes) go out in a single block without handshaking; larger ones move
// in 50-byte chunks, each preceded by an ACK from the device. A NACK
// before the first chunk reports a device-side refusal (card full,
// write-protected); a NACK after data went out leaves the file in an
// unknown state.
func (d *Display) SDWriteFile(filename string, data []byte, appendMode bool) Status {
	d.mu.Lock()
	defer d.mu.Unlock()
	if st := d.ready(); st != StatusOK {
		return st
	}
	if st := d.checkFilename(filename); st != StatusOK {
		return st
	}

	size := uint32(len(data))
	var handshake byte
	chunk := len(data)
	if len(data) > 100 {
		handshake = fatChunkSize
		chunk = fatChunkSize
	}
	if appendMode {
		handshake |= 0x80
	}

	cmd := appendName([]byte{'@', 't', handshake}, filename)
	cmd = put32(cmd, size)
	if st := d.send(cmd); st != StatusOK {
		return st
	}

	for idx := 0; idx < len(data); idx += chunk {
		switch st := d.waitACKNACK(1000 * time.Millisecond); st {
		case StatusOK:
		case StatusNACK:
			if idx == 0 {
				return StatusNACK
			}
			d.errf("NACK after %d bytes", idx)
			return StatusFaultIndet
		default:
			d.errf("no handshake after %d bytes", idx)
			return StatusFault
		}
		end := idx + chunk
		if end > len(data) {
			end = len(data)
		}
		if n, err := d.port.Write(data[idx:end], writeTimeout); err != nil || n != end-idx {
			d.errf("write failed after %d bytes: %s", idx, d.port.LastError())
			return StatusFaultIndet
		}
	}
	return d.waitACKNACK(1000 * time.Millisecond)
}

// SDEraseFile deletes a file from the card.
func (d *Display) SDEraseFile(filename string) Status {
	d.mu.Lock()
	defer d.mu.Unlock()
	if st := d.ready(); st != StatusOK {
		return st
	}
	if st := d.checkFilename(filename); st != StatusOK {
		return st
	}
	cmd := appendName([]byte{'@', 'e'}, filename)
	if st := d.send(cmd); st != StatusOK {
		return st
	}
	return d.waitACKNACK(200 * time.Millisecond)
}

// SDListDir lists card files matching a wildcard pattern ("*.*" for
// everything). The device streams newline-delimited names and ends the
// listing with an ACK, or a NACK when the pattern matches nothing it can
// report.
func (d *Display) SDListDir(pattern string) ([]string, Status) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if st := d.ready(); st != StatusOK {
		return nil, st
	}
	if st := d.checkFilename(pattern); st != StatusOK {
		return nil, st
	}

	cmd := appendName([]byte{'@', 'd'}, pattern)
	if st := d.send(cmd); st != StatusOK {
		return nil, st
	}

	var dir []string
	var entry []byte
	var b [1]byte
	for {
		n, err := d.port.Read(b[:], 500*time.Millisecond, 0)
		if err != nil {
			d.errf("failed after acquiring %d entries: %s", len(dir), d.port.LastError())
			return nil, StatusFault
		}
		if n == 0 {
			d.errf("timeout: no ACK or NACK after %d entries", len(dir))
			return nil, StatusFault
		}
		switch b[0] {
		case '\n':
			if len(entry) > 0 {
				dir = append(dir, string(entry))
				entry = entry[:0]
			}
		case ACK:
			if len(entry) > 0 {
				dir = append(dir, string(entry))
			}
			return dir, StatusOK
		case NACK:
			d.errf("failed after acquiring %d entries (NACK)", len(dir))
			return nil, StatusNACK
		default:
			entry = append(entry, b[0])
		}
	}
}

// SDScreenCopyFile saves a rectangular screen region to a card file.
func (d *Display) SDScreenCopyFile(x, y, width, height uint16, filename string) Status {
	d.mu.Lock()
	defer d.mu.Unlock()
	if st := d.ready(); st != StatusOK {
		return st
	}
	if st := d.checkFilename(filename); st != StatusOK {
		return st
	}

	cmd := []byte{'@', 'c'}
	for _, v := range []uint16{x, y, width, height} {
		cmd = put16(cmd, v)
	}
	cmd = appendName(cmd, filename)
	if st := d.send(cmd); st != StatusOK {
		return st
	}
	return d.waitACKNACK(200 * time.Millisecond)
}

// SDShowImageFile displays image data from a card file. addr selects the
// image within a multi-image file, in sectors from the start of the file.
func (d *Display) SDShowImageFile(filename string, x, y uint16, addr uint32) Status {
	d.mu.Lock()
	defer d.mu.Unlock()
	if st := d.ready(); st != StatusOK {
		return st
	}
	if st := d.checkFilename(filename); st != StatusOK {
		return st
	}
	if st := d.checkSector(addr); st != StatusOK {
		return st
	}

	cmd := appendName([]byte{'@', 'm'}, filename)
	cmd = put16(cmd, x)
	cmd = put16(cmd, y)
	cmd = put24(cmd, addr)
	if st := d.send(cmd); st != StatusOK {
		return st
	}
	return d.waitACKNACK(200 * time.Millisecond)
}

// Audio playback options for SDPlayAudio.
const (
	AudioPlayBlocking = 0 // play once, no events serviced
	AudioPlayOnce     = 1 // play once in the background
	AudioLoopBlocking = 2 // loop, no events serviced
	AudioLoop         = 3 // loop in the background
	AudioContinue     = 4 // resume paused playback
	AudioStop         = 5 // stop playback
)

// SDPlayAudio plays a WAV file from the card.
func (d *Display) SDPlayAudio(filename string, option byte) Status {
	d.mu.Lock()
	defer d.mu.Unlock()
	if st := d.ready(); st != StatusOK {
		return st
	}
	if st := d.checkFilename(filename); st != StatusOK {
		return st
	}
	if option > AudioStop {
		d.errf("invalid option (%d); valid range is 0..5", option)
		return StatusFault
	}

	cmd := appendName([]byte{'@', 'l', option}, filename)
	if st := d.send(cmd); st != StatusOK {
		return st
	}
	return d.waitACKNACK(200 * time.Millisecond)
}

// SDRunScriptFile starts a 4DSL script stored in a card file.
func (d *Display) SDRunScriptFile(filename string) Status {
	d.mu.Lock()
	defer d.mu.Unlock()
	if st := d.ready(); st != StatusOK {
		return st
	}
	if st := d.checkFilename(filename); st != StatusOK {
		return st
	}
	cmd := appendName([]byte{'@', 'p'}, filename)
	if st := d.send(cmd); st != StatusOK {
		return st
	}
	return d.waitACKNACK(200 * time.Millisecond)
}
