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
	"github.com/jetsetilly/gopher80/environment"
	"github.com/jetsetilly/gopher80/hardware/cassette"
	"github.com/jetsetilly/gopher80/hardware/keyboard"
	"github.com/jetsetilly/gopher80/hardware/memory/memorymap"
	"github.com/jetsetilly/gopher80/hardware/video"
	"github.com/jetsetilly/gopher80/logger"
)

// The one port the machine answers on. Every other port number floats.
const CassettePort = 0xff

// Memory is the machine's address and port space. It owns the devices that
// decode from it: the ROM and RAM chips, the keyboard matrix, the video
// memory and the cassette deck. The CPU reaches all of them through the
// cpubus.Memory interface, everything else reaches them through the
// exported fields.
type Memory struct {
	env *environment.Environment

	ROM      *ROM
	RAM      *RAM
	Keyboard *keyboard.Matrix
	Video    *video.Video
	Cassette *cassette.Deck

	// interrupt requests latch here until the CPU acknowledges them.
	// IntrAddress is the mode 0 target resolved from the data byte a
	// device would supply; with nothing driving the bus it reads 0xff,
	// which is RST 38h. IntrVector is the mode 2 table entry low byte
	IRQ         bool
	NMI         bool
	IntrAddress uint16
	IntrVector  uint8
}

// NewMemory is the preferred method of initialisation for the Memory type.
// RAM is fitted according to the configuration store.
func NewMemory(env *environment.Environment) (*Memory, error) {
	mem := &Memory{
		env:      env,
		ROM:      newROM(env),
		Keyboard: keyboard.NewMatrix(env),
		Video:    video.NewVideo(env),
		Cassette: cassette.NewDeck(env),
	}

	ram, err := newRAM(env, env.Config.RAMSize.Bytes())
	if err != nil {
		return nil, err
	}
	mem.RAM = ram

	mem.resetInterrupts()

	return mem, nil
}

func (mem *Memory) resetInterrupts() {
	mem.IRQ = false
	mem.NMI = false
	mem.IntrAddress = 0x0038
	mem.IntrVector = 0x00
}

// Reset the memory system and the devices living on it. RAM and ROM
// contents are left alone, which is what the reset button on the real
// machine does.
func (mem *Memory) Reset() {
	mem.Keyboard.Reset()
	mem.Video.Reset()
	mem.Cassette.Reset()
	mem.resetInterrupts()
}

// Read an address on the bus.
func (mem *Memory) Read(address uint16) uint8 {
	idx, area := memorymap.MapAddress(address)

	switch area {
	case memorymap.ROM:
		return mem.ROM.Read(idx)
	case memorymap.Keyboard:
		return mem.Keyboard.Read(uint8(idx))
	case memorymap.Video:
		return mem.Video.Read(idx)
	case memorymap.RAM:
		return mem.RAM.Read(idx)
	}

	logger.Logf(mem.env, "memory", "read from unmapped address (%#04x)", address)
	return 0xff
}

// Write an address on the bus.
func (mem *Memory) Write(address uint16, data uint8) {
	idx, area := memorymap.MapAddress(address)

	switch area {
	case memorymap.ROM:
		mem.ROM.Write(idx, data)
	case memorymap.Keyboard:
		// the matrix has no write side. discarded
	case memorymap.Video:
		mem.Video.Write(idx, data)
	case memorymap.RAM:
		mem.RAM.Write(idx, data)
	default:
		logger.Logf(mem.env, "memory", "write to unmapped address (%#04x = %#02x)", address, data)
	}
}

// Read16 reads a little-endian 16bit value. The second byte wraps around
// the top of the address space.
func (mem *Memory) Read16(address uint16) uint16 {
	lo := mem.Read(address)
	hi := mem.Read(address + 1)
	return uint16(hi)<<8 | uint16(lo)
}

// Write16 writes a little-endian 16bit value.
func (mem *Memory) Write16(address uint16, data uint16) {
	mem.Write(address, uint8(data&0xff))
	mem.Write(address+1, uint8(data>>8))
}

// PortRead reads one of the Z80's 256 ports. Only the cassette port is
// wired to anything. In 32 column mode bit 6 of the cassette port is pulled
// low by the video circuit.
func (mem *Memory) PortRead(port uint8) uint8 {
	if port == CassettePort {
		v := mem.Cassette.PortRead()
		if mem.Video.Wide() {
			v &= 0xbf
		}
		return v
	}

	logger.Logf(mem.env, "memory", "read from unmapped port (%#02x)", port)
	return 0xff
}

// PortWrite writes one of the Z80's 256 ports. The cassette port carries
// the output level and motor relay in the low bits and the video mode
// select in bit 3.
func (mem *Memory) PortWrite(port uint8, data uint8) {
	if port == CassettePort {
		mem.Cassette.PortWrite(data)
		mem.Video.SetWide(data&0x08 == 0x08)
		return
	}

	logger.Logf(mem.env, "memory", "write to unmapped port (%#02x = %#02x)", port, data)
}

// PendingNMI implements the cpubus.Memory interface.
func (mem *Memory) PendingNMI() bool {
	return mem.NMI
}

// AckNMI implements the cpubus.Memory interface.
func (mem *Memory) AckNMI() {
	mem.NMI = false
}

// PendingIRQ implements the cpubus.Memory interface.
func (mem *Memory) PendingIRQ() bool {
	return mem.IRQ
}

// AckIRQ implements the cpubus.Memory interface.
func (mem *Memory) AckIRQ() {
	mem.IRQ = false
}

// Mode0Target implements the cpubus.Memory interface.
func (mem *Memory) Mode0Target() uint16 {
	return mem.IntrAddress
}

// Mode2Vector implements the cpubus.Memory interface.
func (mem *Memory) Mode2Vector() uint8 {
	return mem.IntrVector
}
