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

// Sentinal errors returned by the ROM type.
const (
	ROMImageTooLarge = "rom: image too large: %d bytes"
	ROMPatchBounds   = "rom: patch out of bounds: %#04x"
)

// ROM is the 12k window at the bottom of the address space. Whether it
// holds Level I BASIC, Level II BASIC or something else entirely is decided
// by whoever loads the image.
type ROM struct {
	env  *environment.Environment
	data [memorymap.MemtopROM + 1]uint8
}

func newROM(env *environment.Environment) *ROM {
	rom := &ROM{env: env}
	rom.Wipe()
	return rom
}

// Read an address in the ROM window. The address is relative to the window
// origin.
func (rom *ROM) Read(idx uint16) uint8 {
	return rom.data[idx]
}

// Write to the ROM window. The data is discarded. Programs that do this are
// usually scanning for RAM so the event is worth a log entry but nothing
// stronger.
func (rom *ROM) Write(idx uint16, data uint8) {
	logger.Logf(rom.env, "rom", "write to rom discarded (%#04x = %#02x)", idx, data)
}

// Wipe the ROM. Unprogrammed mask ROM reads high.
func (rom *ROM) Wipe() {
	for i := range rom.data {
		rom.data[i] = 0xff
	}
}

// LoadImage copies a ROM image into the window, starting at the origin. An
// image smaller than the window, such as Level I BASIC, leaves the
// remainder wiped.
func (rom *ROM) LoadImage(data []uint8) error {
	if len(data) > len(rom.data) {
		return curated.Errorf(ROMImageTooLarge, len(data))
	}
	rom.Wipe()
	copy(rom.data[:], data)
	return nil
}

// Patch the ROM with data at the given offset. Used by the terminal's POKE
// style commands and by ROM patch files.
func (rom *ROM) Patch(offset int, data []uint8) error {
	if offset < 0 || offset+len(data) > len(rom.data) {
		return curated.Errorf(ROMPatchBounds, offset)
	}
	copy(rom.data[offset:], data)
	return nil
}

// The stub program loaded when no ROM image has been configured. It blanks
// the screen, writes a banner to the middle of the video window and halts.
var stub = []uint8{
	0xf3,             // di
	0x21, 0x00, 0x3c, // ld hl,$3c00
	0x36, 0x20, // ld (hl),$20
	0x11, 0x01, 0x3c, // ld de,$3c01
	0x01, 0xff, 0x03, // ld bc,$03ff
	0xed, 0xb0, // ldir
	0x21, 0x1a, 0x00, // ld hl,$001a
	0x11, 0xd9, 0x3d, // ld de,$3dd9
	0x01, 0x0d, 0x00, // ld bc,$000d
	0xed, 0xb0, // ldir
	0x76, // halt
	'N', 'O', ' ', 'R', 'O', 'M', ' ', 'L', 'O', 'A', 'D', 'E', 'D',
}

// LoadStub installs the built-in stub program. The machine is still usable
// through the terminal, there is just no BASIC to talk to.
func (rom *ROM) LoadStub() {
	rom.Wipe()
	copy(rom.data[:], stub)
	logger.Log(rom.env, "rom", "no rom image, stub program loaded")
}
