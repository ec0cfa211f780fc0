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

package cpu

import (
	"fmt"

	"github.com/jetsetilly/gopher80/hardware/memory/cpubus"
)

// which index register, if any, the instruction being decoded works with.
// while a prefix is active the H and L register codes alias the halves of
// the index register.
type prefix int

const (
	prefixNone prefix = iota
	prefixDD
	prefixFD
)

// CPU implements the Z80 found in the TRS-80 Model I. Registers are exposed
// as fields. The 16bit pairings and the alternate set exchanges are
// implemented in registers.go and flag representation in flags.go.
type CPU struct {
	mem cpubus.Memory

	A uint8
	F Flags
	B uint8
	C uint8
	D uint8
	E uint8
	H uint8
	L uint8

	// the alternate register set. no instruction operates on these
	// directly, they are only ever exchanged with the main set
	A2 uint8
	F2 Flags
	B2 uint8
	C2 uint8
	D2 uint8
	E2 uint8
	H2 uint8
	L2 uint8

	IX uint16
	IY uint16
	SP uint16
	PC uint16

	// interrupt page and memory refresh registers
	I uint8
	R uint8

	IFF1 bool
	IFF2 bool
	IM   uint8

	// the CPU has executed a HALT and is idling until an interrupt
	Halted bool

	// cycles consumed by the step in progress
	cycles int

	// EI arms this countdown rather than setting the IFF flags itself.
	// maskable interrupts become serviceable only after the instruction
	// that follows the EI has completed
	eiDelay int

	// active index register prefix. set for the duration of a DD or FD
	// dispatch and consumed by indexReg() and the register code aliasing
	prefix prefix

	// instruction dispatch. the one indexOps table serves both the DD and
	// FD prefixes, with the prefix field selecting the index register
	baseOps  [256]func(*CPU)
	cbOps    [256]func(*CPU)
	edOps    [256]func(*CPU)
	indexOps [256]func(*CPU)
}

// NewCPU is the preferred method of initialisation for the CPU type. The
// dispatch tables are built once per instance.
func NewCPU(mem cpubus.Memory) *CPU {
	mc := &CPU{mem: mem}
	mc.initBaseOps()
	mc.initCBOps()
	mc.initEDOps()
	mc.initIndexOps()
	mc.Reset()
	return mc
}

// Plumb a new memory implementation into the CPU.
func (mc *CPU) Plumb(mem cpubus.Memory) {
	mc.mem = mem
}

func (mc *CPU) String() string {
	return fmt.Sprintf("AF=%04x BC=%04x DE=%04x HL=%04x IX=%04x IY=%04x SP=%04x PC=%04x %s IM%d",
		mc.AF(), mc.BC(), mc.DE(), mc.HL(), mc.IX, mc.IY, mc.SP, mc.PC, mc.F, mc.IM)
}

// Reset the CPU to its power-on state. PC starts at the top of ROM, the
// stack pointer and AF float high, interrupts are disabled and mode 0 is
// selected.
func (mc *CPU) Reset() {
	mc.A = 0xff
	mc.F.Reset()
	mc.B, mc.C = 0x00, 0x00
	mc.D, mc.E = 0x00, 0x00
	mc.H, mc.L = 0x00, 0x00

	mc.A2 = 0xff
	mc.F2.Reset()
	mc.B2, mc.C2 = 0x00, 0x00
	mc.D2, mc.E2 = 0x00, 0x00
	mc.H2, mc.L2 = 0x00, 0x00

	mc.IX = 0x0000
	mc.IY = 0x0000
	mc.SP = 0xffff
	mc.PC = 0x0000

	mc.I = 0x00
	mc.R = 0x00

	mc.IFF1 = false
	mc.IFF2 = false
	mc.IM = 0

	mc.Halted = false
	mc.cycles = 0
	mc.eiDelay = 0
	mc.prefix = prefixNone
}

// Step executes a single instruction, returning the number of machine cycles
// consumed. Pending interrupts are honoured before decode: a non-maskable
// interrupt always, a maskable interrupt only when IFF1 is set. A halted CPU
// idles in four cycle units until an interrupt arrives.
func (mc *CPU) Step() int {
	mc.cycles = 0

	// the refresh register counts every step, including interrupt
	// acknowledgements and halt idling
	mc.incrementR()

	if mc.mem.PendingNMI() {
		mc.mem.AckNMI()
		mc.serviceNMI()
		return mc.cycles
	}

	if mc.IFF1 && mc.mem.PendingIRQ() {
		mc.mem.AckIRQ()
		mc.serviceIRQ()
		return mc.cycles
	}

	if mc.Halted {
		mc.tick(4)
		return mc.cycles
	}

	opcode := mc.fetchByte()
	mc.baseOps[opcode](mc)

	if mc.eiDelay > 0 {
		mc.eiDelay--
		if mc.eiDelay == 0 {
			mc.IFF1 = true
			mc.IFF2 = true
		}
	}

	return mc.cycles
}

// serviceNMI acknowledges a non-maskable interrupt. IFF2 keeps the
// pre-interrupt state of IFF1 so that RETN can restore it.
func (mc *CPU) serviceNMI() {
	mc.Halted = false
	mc.pushWord(mc.PC)
	mc.IFF1 = false
	mc.PC = 0x0066
	mc.tick(11)
}

// serviceIRQ acknowledges a maskable interrupt according to the current
// interrupt mode. In mode 0 the bus supplies the instruction byte, which
// the memory implementation resolves to a target address. In mode 2 the
// bus supplies the low byte of an address into the table pointed to by
// the I register.
func (mc *CPU) serviceIRQ() {
	mc.Halted = false
	mc.IFF1 = false
	mc.IFF2 = false

	switch mc.IM {
	case 2:
		table := uint16(mc.I)<<8 | uint16(mc.mem.Mode2Vector()&0xfe)
		mc.pushWord(mc.PC)
		mc.PC = mc.mem.Read16(table)
		mc.tick(19)
	case 1:
		mc.pushWord(mc.PC)
		mc.PC = 0x0038
		mc.tick(11)
	default:
		mc.pushWord(mc.PC)
		mc.PC = mc.mem.Mode0Target()
		mc.tick(13)
	}
}

// tick adds machine cycles to the step in progress.
func (mc *CPU) tick(cycles int) {
	mc.cycles += cycles
}

// fetchByte reads the byte at PC and advances PC.
func (mc *CPU) fetchByte() uint8 {
	v := mc.mem.Read(mc.PC)
	mc.PC++
	return v
}

// fetchWord reads the little-endian word at PC and advances PC twice.
func (mc *CPU) fetchWord() uint16 {
	lo := mc.fetchByte()
	hi := mc.fetchByte()
	return uint16(hi)<<8 | uint16(lo)
}

func (mc *CPU) read(address uint16) uint8 {
	return mc.mem.Read(address)
}

func (mc *CPU) write(address uint16, data uint8) {
	mc.mem.Write(address, data)
}

// pushWord places a 16bit value on the stack, high byte first.
func (mc *CPU) pushWord(v uint16) {
	mc.SP--
	mc.write(mc.SP, uint8(v>>8))
	mc.SP--
	mc.write(mc.SP, uint8(v))
}

// popWord retrieves a 16bit value from the stack.
func (mc *CPU) popWord() uint16 {
	lo := mc.read(mc.SP)
	mc.SP++
	hi := mc.read(mc.SP)
	mc.SP++
	return uint16(hi)<<8 | uint16(lo)
}

// indexReg returns the index register selected by the active prefix. only
// ever called from ops dispatched through the indexOps table, so the prefix
// is never prefixNone.
func (mc *CPU) indexReg() *uint16 {
	if mc.prefix == prefixFD {
		return &mc.IY
	}
	return &mc.IX
}

// indexAddr fetches the displacement byte and applies it to the selected
// index register.
func (mc *CPU) indexAddr() uint16 {
	disp := int8(mc.fetchByte())
	return uint16(int32(*mc.indexReg()) + int32(disp))
}
