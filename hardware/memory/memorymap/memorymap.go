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

package memorymap

// Area represents the different areas of memory
type Area int

func (a Area) String() string {
	switch a {
	case ROM:
		return "ROM"
	case Keyboard:
		return "Keyboard"
	case Video:
		return "Video"
	case RAM:
		return "RAM"
	}

	return "undefined"
}

// The different memory areas in the TRS-80
const (
	Undefined Area = iota
	ROM
	Keyboard
	Video
	RAM
)

// The origin and memory top for each area of memory. Checking which area an
// address falls within and dragging the address down to an array index is all
// handled by the MapAddress() function.
//
// The keyboard and video areas sit in the gap between the end of ROM and the
// start of RAM. Addresses in that gap which belong to neither device (ie.
// 0x3000 to 0x37ff and 0x3900 to 0x3bff) are not connected to anything.
const (
	OriginROM      = uint16(0x0000)
	MemtopROM      = uint16(0x2fff)
	OriginKeyboard = uint16(0x3800)
	MemtopKeyboard = uint16(0x38ff)
	OriginVideo    = uint16(0x3c00)
	MemtopVideo    = uint16(0x3fff)
	OriginRAM      = uint16(0x4000)
	MemtopRAM      = uint16(0xffff)
)

// Memtop is the top most address of the 16bit bus. Whether an address up here
// responds to anything depends on how much RAM is fitted.
const Memtop = uint16(0xffff)

// MaxRAM is the largest amount of RAM that can be fitted before running out
// of address space.
const MaxRAM = 0xc000

// MapAddress translates a bus address to an index local to the area it falls
// within. An address should be passed through this function before accessing
// memory. The mapping is the same for read and write accesses.
func MapAddress(address uint16) (uint16, Area) {
	// note that the order of these filters is important

	// RAM addresses. the top bits select nothing else once we're past the
	// keyboard/video gap
	if address >= OriginRAM {
		return address - OriginRAM, RAM
	}

	// ROM addresses
	if address <= MemtopROM {
		return address, ROM
	}

	// video addresses. the video area runs to the top of its 1k range so the
	// xor trick is safe here
	if address >= OriginVideo {
		return address ^ OriginVideo, Video
	}

	// keyboard addresses
	if address >= OriginKeyboard && address <= MemtopKeyboard {
		return address - OriginKeyboard, Keyboard
	}

	// everything else is unconnected
	return address, Undefined
}

// IsArea returns true if the address is in the specificied area
func IsArea(address uint16, area Area) bool {
	_, a := MapAddress(address)
	return area == a
}
