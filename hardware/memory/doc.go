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

// Package memory implements the machine's address space and the devices
// that decode from it.
//
// The map is simple and entirely static: 12k of ROM at the bottom, the
// keyboard matrix at 0x3800, video memory at 0x3c00, and RAM from 0x4000
// up. There is no bank switching and no mirroring. Addresses that decode to
// nothing, of which the largest run sits between the ROM and the keyboard,
// float high.
//
// Devices hang off the Memory type as exported fields. The CPU sees the
// whole assembly through the cpubus.Memory interface and has no idea which
// device answers any particular address; the rest of the emulation reaches
// the devices directly.
//
// The interrupt lines also live here. Peripherals that raise interrupts do
// it by setting the latch fields on the bus and the CPU collects them
// through the same interface it reads memory with.
package memory
