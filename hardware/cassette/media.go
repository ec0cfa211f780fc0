// This file is part of Gopher80.
//
// Gopher80 is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Gopher80 is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Gopher80.  If not, see <https://www.gnu.org/licenses/>.

package cassette

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/jetsetilly/gopher80/curated"
)

// media is the tape itself, a byte buffer with a head position, backed by a
// file on disk. The buffer is only written back to disk by an explicit
// save(), never as a side effect of record().
type media struct {
	path   string
	buffer []uint8
	head   int
}

// loadMedia reads the named file into a fresh media instance. A file that
// does not exist yet is not an error, it is a blank tape.
func loadMedia(path string) (*media, error) {
	m := &media{path: path}

	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return m, nil
		}
		return nil, curated.Errorf("cassette: %v", err)
	}
	m.buffer = b

	return m, nil
}

// retrieve returns the byte under the head and advances the head. Reading
// past the end of the buffer returns 0x00, as though the tape ran on into
// blank leader.
func (m *media) retrieve() uint8 {
	if m.head >= len(m.buffer) {
		m.head++
		return 0x00
	}
	v := m.buffer[m.head]
	m.head++
	return v
}

// record stores a byte at the head and advances the head, growing the
// buffer as needed. Existing bytes under the head are overwritten.
func (m *media) record(v uint8) {
	for m.head >= len(m.buffer) {
		m.buffer = append(m.buffer, 0x00)
	}
	m.buffer[m.head] = v
	m.head++
}

// atEnd is true when the head has passed the last byte in the buffer.
func (m *media) atEnd() bool {
	return m.head >= len(m.buffer)
}

// seek moves the head, clamping into the range covered by the buffer.
func (m *media) seek(pos int) {
	if pos < 0 {
		pos = 0
	}
	if pos > len(m.buffer) {
		pos = len(m.buffer)
	}
	m.head = pos
}

// erase empties the buffer and rewinds the head. The file on disk is not
// touched until the next save().
func (m *media) erase() {
	m.buffer = m.buffer[:0]
	m.head = 0
}

// save writes the buffer back to the file. The write goes through a
// temporary file in the same directory so a failure part way cannot corrupt
// an existing tape.
func (m *media) save() error {
	f, err := os.CreateTemp(filepath.Dir(m.path), filepath.Base(m.path)+".*")
	if err != nil {
		return curated.Errorf("cassette: %v", err)
	}

	_, err = f.Write(m.buffer)
	if err != nil {
		f.Close()
		os.Remove(f.Name())
		return curated.Errorf("cassette: %v", err)
	}

	err = f.Close()
	if err != nil {
		os.Remove(f.Name())
		return curated.Errorf("cassette: %v", err)
	}

	err = os.Rename(f.Name(), m.path)
	if err != nil {
		os.Remove(f.Name())
		return curated.Errorf("cassette: %v", err)
	}

	return nil
}
