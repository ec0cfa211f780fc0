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

package memory

import (
	"github.com/jetsetilly/gopher80/curated"
	"github.com/jetsetilly/gopher80/environment"
	"github.com/jetsetilly/gopher80/hardware/memory/memorymap"
	"github.com/jetsetilly/gopher80/logger"
)

// Sentinal errors returned by the RAM type.
const (
	InvalidRAMSize = "ram: invalid size: %d bytes"
)

// RAM is the read/write memory starting at 0x4000. How much of the window
// is populated depends on the fitted size: a 16k machine answers the first
// 16k of the window and floats high for the rest, exactly like empty
// sockets.
type RAM struct {
	env  *environment.Environment
	data []uint8

	// the ROM sizes memory at boot by scanning past the fitted area, which
	// would flood the log. one line per power cycle is enough
	overWarned bool
}

func newRAM(env *environment.Environment, size int) (*RAM, error) {
	ram := &RAM{env: env}
	err := ram.Resize(size)
	if err != nil {
		return nil, err
	}
	return ram, nil
}

// Read an address in the RAM window. The address is relative to the window
// origin. Reads beyond the fitted size return 0xff, exactly like empty
// sockets.
func (ram *RAM) Read(idx uint16) uint8 {
	if int(idx) >= len(ram.data) {
		if !ram.overWarned {
			ram.overWarned = true
			logger.Logf(ram.env, "ram", "read beyond fitted RAM (%#04x)", memorymap.OriginRAM+idx)
		}
		return 0xff
	}
	return ram.data[idx]
}

// Write to the RAM window. Writes beyond the fitted size are discarded.
func (ram *RAM) Write(idx uint16, data uint8) {
	if int(idx) >= len(ram.data) {
		return
	}
	ram.data[idx] = data
}

// Wipe the fitted RAM to zero, as happens on power-on.
func (ram *RAM) Wipe() {
	for i := range ram.data {
		ram.data[i] = 0x00
	}
	ram.overWarned = false
}

// Size of the fitted RAM in bytes.
func (ram *RAM) Size() int {
	return len(ram.data)
}

// Resize the fitted RAM. Contents up to the smaller of the old and new
// sizes are preserved, an enlarged area arrives wiped.
func (ram *RAM) Resize(size int) error {
	if size <= 0 || size > memorymap.MaxRAM {
		return curated.Errorf(InvalidRAMSize, size)
	}

	data := make([]uint8, size)
	copy(data, ram.data)
	ram.data = data
	ram.overWarned = false

	return nil
}

// Patch the RAM with data at the given offset.
func (ram *RAM) Patch(offset int, data []uint8) error {
	if offset < 0 || offset+len(data) > len(ram.data) {
		return curated.Errorf("ram: patch out of bounds: %#04x", offset)
	}
	copy(ram.data[offset:], data)
	return nil
}
