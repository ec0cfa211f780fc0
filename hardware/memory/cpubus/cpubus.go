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

package cpubus

// Memory defines the memory system as the CPU sees it. The bus resolves
// every access itself: reads of unmapped addresses float high (0xff) and
// stray writes are logged and discarded, so none of these operations can
// fail.
//
// The interrupt lines ride on the same interface. On real hardware they are
// pins on the CPU socket, wired to the peripheral side of the machine, and
// the bus implementation is where that peripheral state lives.
type Memory interface {
	Read(address uint16) uint8
	Write(address uint16, data uint8)

	// 16bit accesses are little-endian, as the Z80 expects
	Read16(address uint16) uint16
	Write16(address uint16, data uint16)

	PortRead(port uint8) uint8
	PortWrite(port uint8, data uint8)

	// interrupt requests latch until acknowledged
	PendingNMI() bool
	AckNMI()
	PendingIRQ() bool
	AckIRQ()

	// Mode0Target is the address resolved from the data byte an
	// interrupting device would supply in interrupt mode 0. Mode2Vector is
	// the low byte of the mode 2 table entry address
	Mode0Target() uint16
	Mode2Vector() uint8
}
