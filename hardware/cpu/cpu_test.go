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

package cpu_test

import (
	"testing"

	"github.com/jetsetilly/gopher80/hardware/cpu"
	"github.com/jetsetilly/gopher80/test"
)

// testMem is a flat 64k of RAM with a full complement of ports. interrupt
// requests are latched fields the tests set directly.
type testMem struct {
	ram   [0x10000]uint8
	ports [0x100]uint8

	nmi bool
	irq bool

	mode0Target uint16
	mode2Vector uint8
}

func newTestMem() *testMem {
	return &testMem{
		mode0Target: 0x0038,
	}
}

func (m *testMem) load(origin uint16, data ...uint8) {
	copy(m.ram[origin:], data)
}

func (m *testMem) Read(address uint16) uint8 {
	return m.ram[address]
}

func (m *testMem) Write(address uint16, data uint8) {
	m.ram[address] = data
}

func (m *testMem) Read16(address uint16) uint16 {
	return uint16(m.ram[address]) | uint16(m.ram[address+1])<<8
}

func (m *testMem) Write16(address uint16, data uint16) {
	m.ram[address] = uint8(data)
	m.ram[address+1] = uint8(data >> 8)
}

func (m *testMem) PortRead(port uint8) uint8 {
	return m.ports[port]
}

func (m *testMem) PortWrite(port uint8, data uint8) {
	m.ports[port] = data
}

func (m *testMem) PendingNMI() bool {
	return m.nmi
}

func (m *testMem) AckNMI() {
	m.nmi = false
}

func (m *testMem) PendingIRQ() bool {
	return m.irq
}

func (m *testMem) AckIRQ() {
	m.irq = false
}

func (m *testMem) Mode0Target() uint16 {
	return m.mode0Target
}

func (m *testMem) Mode2Vector() uint8 {
	return m.mode2Vector
}

// run executes the given number of steps, returning the cycles consumed.
func run(mc *cpu.CPU, steps int) int {
	cyc := 0
	for i := 0; i < steps; i++ {
		cyc += mc.Step()
	}
	return cyc
}

func TestPowerOnState(t *testing.T) {
	mem := newTestMem()
	mc := cpu.NewCPU(mem)

	test.ExpectEquality(t, mc.PC, 0x0000)
	test.ExpectEquality(t, mc.SP, 0xffff)
	test.ExpectEquality(t, mc.A, 0xff)
	test.ExpectEquality(t, mc.F.Value(), 0xff)
	test.ExpectEquality(t, mc.IM, 0)
	test.ExpectEquality(t, mc.IFF1, false)
	test.ExpectEquality(t, mc.IFF2, false)
	test.ExpectEquality(t, mc.Halted, false)
}

func TestAccumulatorArithmetic(t *testing.T) {
	mem := newTestMem()
	mc := cpu.NewCPU(mem)

	// LD A,0x15 ; LD B,0x27 ; ADD A,B
	mem.load(0x0000, 0x3e, 0x15, 0x06, 0x27, 0x80)
	cyc := run(mc, 3)
	test.ExpectEquality(t, cyc, 18)
	test.ExpectEquality(t, mc.A, 0x3c)
	test.ExpectEquality(t, mc.F.Value(), 0x28)

	// LD A,0x7f ; ADD A,A. overflow from the sign bit's point of view
	mem.load(0x0005, 0x3e, 0x7f, 0x87)
	run(mc, 2)
	test.ExpectEquality(t, mc.A, 0xfe)
	test.ExpectEquality(t, mc.F.Value(), 0xbc)

	// LD A,0x02 ; SUB 0x05. borrow through every flag
	mem.load(0x0008, 0x3e, 0x02, 0xd6, 0x05)
	run(mc, 2)
	test.ExpectEquality(t, mc.A, 0xfd)
	test.ExpectEquality(t, mc.F.Value(), 0xbb)
}

func TestCompareFlagBits(t *testing.T) {
	mem := newTestMem()
	mc := cpu.NewCPU(mem)

	// LD A,0x40 ; LD B,0x01 ; CP B. the undocumented flag bits come from
	// the operand, so bits 5 and 3 of the result (0x3f) must not appear
	mem.load(0x0000, 0x3e, 0x40, 0x06, 0x01, 0xb8)
	run(mc, 3)
	test.ExpectEquality(t, mc.A, 0x40)
	test.ExpectEquality(t, mc.F.Value(), 0x12)
}

func TestDecimalAdjust(t *testing.T) {
	mem := newTestMem()
	mc := cpu.NewCPU(mem)

	// LD A,0x15 ; ADD A,0x27 ; DAA. 15+27 is 42 in BCD
	mem.load(0x0000, 0x3e, 0x15, 0xc6, 0x27, 0x27)
	run(mc, 3)
	test.ExpectEquality(t, mc.A, 0x42)
	test.ExpectEquality(t, mc.F.Value(), 0x14)

	// LD A,0x42 ; SUB 0x15 ; DAA. and back again
	mem.load(0x0005, 0x3e, 0x42, 0xd6, 0x15, 0x27)
	run(mc, 3)
	test.ExpectEquality(t, mc.A, 0x27)
	test.ExpectEquality(t, mc.F.Value(), 0x26)
}

func TestInterruptEnableDelay(t *testing.T) {
	mem := newTestMem()
	mc := cpu.NewCPU(mem)

	// EI ; NOP ; NOP with an interrupt already waiting. the request must
	// not be honoured until the instruction after EI has completed
	mem.load(0x0000, 0xfb, 0x00, 0x00)
	mem.irq = true

	mc.Step()
	test.ExpectEquality(t, mc.IFF1, false)

	mc.Step()
	test.ExpectEquality(t, mc.IFF1, true)
	test.ExpectEquality(t, mc.PC, 0x0002)

	// mode 0 acknowledge, with the bus supplying the target address
	cyc := mc.Step()
	test.ExpectEquality(t, cyc, 13)
	test.ExpectEquality(t, mc.PC, 0x0038)
	test.ExpectEquality(t, mc.IFF1, false)
	test.ExpectEquality(t, mc.SP, 0xfffd)
	test.ExpectEquality(t, mem.Read16(0xfffd), 0x0002)
	test.ExpectEquality(t, mem.irq, false)
}

func TestDisableInterrupt(t *testing.T) {
	mem := newTestMem()
	mc := cpu.NewCPU(mem)

	// EI ; NOP ; DI ; NOP. an interrupt arriving after DI stays latched
	mem.load(0x0000, 0xfb, 0x00, 0xf3, 0x00)
	run(mc, 3)
	mem.irq = true
	cyc := mc.Step()
	test.ExpectEquality(t, cyc, 4)
	test.ExpectEquality(t, mc.PC, 0x0004)
	test.ExpectEquality(t, mc.IFF1, false)
	test.ExpectEquality(t, mem.irq, true)

	// EI ; DI ; NOP ; NOP. DI within the EI delay window cancels it
	mc.Plumb(mem)
	mc.Reset()
	mem.load(0x0000, 0xfb, 0xf3, 0x00, 0x00)
	run(mc, 4)
	test.ExpectEquality(t, mc.IFF1, false)
	test.ExpectEquality(t, mc.PC, 0x0004)
	test.ExpectEquality(t, mem.irq, true)
}

func TestNMIWhileHalted(t *testing.T) {
	mem := newTestMem()
	mc := cpu.NewCPU(mem)

	// EI ; NOP ; HALT
	mem.load(0x0000, 0xfb, 0x00, 0x76)
	run(mc, 3)
	test.ExpectEquality(t, mc.Halted, true)

	// a halted CPU idles in four cycle units without moving PC
	cyc := mc.Step()
	test.ExpectEquality(t, cyc, 4)
	test.ExpectEquality(t, mc.PC, 0x0003)

	// the NMI wakes the CPU. IFF1 clears but IFF2 keeps the enabled state
	mem.nmi = true
	cyc = mc.Step()
	test.ExpectEquality(t, cyc, 11)
	test.ExpectEquality(t, mc.Halted, false)
	test.ExpectEquality(t, mc.PC, 0x0066)
	test.ExpectEquality(t, mc.IFF1, false)
	test.ExpectEquality(t, mc.IFF2, true)
	test.ExpectEquality(t, mem.Read16(0xfffd), 0x0003)
}

func TestReturnFromInterrupt(t *testing.T) {
	mem := newTestMem()
	mc := cpu.NewCPU(mem)

	mem.load(0x0000, 0xfb, 0x00, 0x00)
	mem.load(0x0066, 0xed, 0x45) // RETN
	run(mc, 2)
	mem.nmi = true
	mc.Step()
	test.ExpectEquality(t, mc.IFF1, false)

	cyc := mc.Step()
	test.ExpectEquality(t, cyc, 14)
	test.ExpectEquality(t, mc.PC, 0x0002)
	test.ExpectEquality(t, mc.IFF1, true)
}

func TestInterruptModes(t *testing.T) {
	mem := newTestMem()
	mc := cpu.NewCPU(mem)

	// IM 1 ; EI ; NOP. the mode 1 response is a fixed jump to 0x0038
	mem.load(0x0000, 0xed, 0x56, 0xfb, 0x00)
	cyc := mc.Step()
	test.ExpectEquality(t, cyc, 8)
	run(mc, 2)
	mem.irq = true
	cyc = mc.Step()
	test.ExpectEquality(t, cyc, 11)
	test.ExpectEquality(t, mc.PC, 0x0038)
	test.ExpectEquality(t, mem.Read16(0xfffd), 0x0004)

	// mode 2 vectors through a table in the I register's page. an odd
	// vector aligns down to the even table entry
	mem = newTestMem()
	mc = cpu.NewCPU(mem)
	mem.mode2Vector = 0x35
	mem.Write16(0x1234, 0x5678)

	// LD A,0x12 ; LD I,A ; IM 2 ; EI ; NOP
	mem.load(0x0000, 0x3e, 0x12, 0xed, 0x47, 0xed, 0x5e, 0xfb, 0x00)
	run(mc, 5)
	mem.irq = true
	cyc = mc.Step()
	test.ExpectEquality(t, cyc, 19)
	test.ExpectEquality(t, mc.PC, 0x5678)
	test.ExpectEquality(t, mem.Read16(0xfffd), 0x0008)
}

func TestBlockCopy(t *testing.T) {
	mem := newTestMem()
	mc := cpu.NewCPU(mem)

	// LD HL,0x8000 ; LD DE,0x9000 ; LD BC,0x0003 ; LDIR
	mem.load(0x8000, 0xde, 0xad, 0xbe)
	mem.load(0x0000, 0x21, 0x00, 0x80, 0x11, 0x00, 0x90, 0x01, 0x03, 0x00, 0xed, 0xb0)
	run(mc, 3)

	// each repeating iteration is a step of its own
	cyc := run(mc, 3)
	test.ExpectEquality(t, cyc, 58)
	test.ExpectEquality(t, mem.ram[0x9000], 0xde)
	test.ExpectEquality(t, mem.ram[0x9001], 0xad)
	test.ExpectEquality(t, mem.ram[0x9002], 0xbe)
	test.ExpectEquality(t, mc.BC(), 0x0000)
	test.ExpectEquality(t, mc.HL(), 0x8003)
	test.ExpectEquality(t, mc.DE(), 0x9003)
	test.ExpectEquality(t, mc.PC, 0x000b)
	test.ExpectEquality(t, mc.F.ParityOverflow, false)
}

func TestBlockSearch(t *testing.T) {
	mem := newTestMem()
	mc := cpu.NewCPU(mem)

	// LD HL,0x8000 ; LD BC,0x0010 ; LD A,0xbe ; CPIR
	mem.load(0x8000, 0xde, 0xad, 0xbe, 0xef)
	mem.load(0x0000, 0x21, 0x00, 0x80, 0x01, 0x10, 0x00, 0x3e, 0xbe, 0xed, 0xb1)
	run(mc, 3)

	cyc := run(mc, 3)
	test.ExpectEquality(t, cyc, 58)
	test.ExpectEquality(t, mc.F.Zero, true)
	test.ExpectEquality(t, mc.HL(), 0x8003)
	test.ExpectEquality(t, mc.BC(), 0x000d)
	test.ExpectEquality(t, mc.F.ParityOverflow, true)
}

func TestBlockInput(t *testing.T) {
	mem := newTestMem()
	mc := cpu.NewCPU(mem)

	// LD HL,0x8000 ; LD B,0x02 ; LD C,0x17 ; INIR
	mem.ports[0x17] = 0x99
	mem.load(0x0000, 0x21, 0x00, 0x80, 0x06, 0x02, 0x0e, 0x17, 0xed, 0xb2)
	run(mc, 3)

	cyc := run(mc, 2)
	test.ExpectEquality(t, cyc, 37)
	test.ExpectEquality(t, mem.ram[0x8000], 0x99)
	test.ExpectEquality(t, mem.ram[0x8001], 0x99)
	test.ExpectEquality(t, mc.B, 0x00)
	test.ExpectEquality(t, mc.HL(), 0x8002)
	test.ExpectEquality(t, mc.F.Zero, true)
}

func TestBlockOutput(t *testing.T) {
	mem := newTestMem()
	mc := cpu.NewCPU(mem)

	// LD HL,0x9000 ; LD B,0x03 ; LD C,0x42 ; OTIR
	mem.load(0x9000, 0x01, 0x02, 0x03)
	mem.load(0x0000, 0x21, 0x00, 0x90, 0x06, 0x03, 0x0e, 0x42, 0xed, 0xb3)
	run(mc, 3)
	run(mc, 3)

	test.ExpectEquality(t, mem.ports[0x42], 0x03)
	test.ExpectEquality(t, mc.B, 0x00)
	test.ExpectEquality(t, mc.HL(), 0x9003)
}

func TestIndexRegisters(t *testing.T) {
	mem := newTestMem()
	mc := cpu.NewCPU(mem)

	// LD IX,0x8000 ; LD A,(IX+5) ; LD (IX-5),A ; LD IXH,0x12
	mem.ram[0x8005] = 0x42
	mem.load(0x0000,
		0xdd, 0x21, 0x00, 0x80,
		0xdd, 0x7e, 0x05,
		0xdd, 0x77, 0xfb,
		0xdd, 0x26, 0x12,
	)

	cyc := mc.Step()
	test.ExpectEquality(t, cyc, 14)
	test.ExpectEquality(t, mc.IX, 0x8000)

	cyc = mc.Step()
	test.ExpectEquality(t, cyc, 19)
	test.ExpectEquality(t, mc.A, 0x42)

	mc.Step()
	test.ExpectEquality(t, mem.ram[0x7ffb], 0x42)

	// the undocumented load into the high half of IX
	cyc = mc.Step()
	test.ExpectEquality(t, cyc, 11)
	test.ExpectEquality(t, mc.IX, 0x1200)

	// the FD prefix reaches IY through the same table
	mem.load(0x000d, 0xfd, 0x21, 0x34, 0x12, 0xfd, 0xe5)
	mc.Step()
	test.ExpectEquality(t, mc.IY, 0x1234)
	cyc = mc.Step()
	test.ExpectEquality(t, cyc, 15)
	test.ExpectEquality(t, mem.Read16(0xfffd), 0x1234)
}

func TestIndexAliasing(t *testing.T) {
	mem := newTestMem()
	mc := cpu.NewCPU(mem)

	// LD IX,0x8000 ; LD H,(IX+3). the indexed load targets the real H
	// register despite the prefix
	mem.ram[0x8003] = 0x99
	mem.load(0x0000, 0xdd, 0x21, 0x00, 0x80, 0xdd, 0x66, 0x03)
	run(mc, 2)
	test.ExpectEquality(t, mc.H, 0x99)
	test.ExpectEquality(t, mc.IX, 0x8000)

	// INC H under the prefix targets IXH and leaves H alone
	mem.load(0x0007, 0xdd, 0x24)
	cyc := mc.Step()
	test.ExpectEquality(t, cyc, 8)
	test.ExpectEquality(t, mc.IX, 0x8100)
	test.ExpectEquality(t, mc.H, 0x99)
}

func TestIndexedBit(t *testing.T) {
	mem := newTestMem()
	mc := cpu.NewCPU(mem)

	// OR A ; LD IX,0x2800 ; BIT 7,(IX+2). bits 5 and 3 of the flags come
	// from the high byte of the effective address
	mem.ram[0x2802] = 0x80
	mem.load(0x0000, 0xb7, 0xdd, 0x21, 0x00, 0x28, 0xdd, 0xcb, 0x02, 0x7e)
	run(mc, 2)
	cyc := mc.Step()
	test.ExpectEquality(t, cyc, 20)
	test.ExpectEquality(t, mc.F.Value(), 0xb8)

	// SET 0,(IX+2) with the result copied to C
	mem.load(0x0009, 0xdd, 0xcb, 0x02, 0xc1)
	cyc = mc.Step()
	test.ExpectEquality(t, cyc, 23)
	test.ExpectEquality(t, mem.ram[0x2802], 0x81)
	test.ExpectEquality(t, mc.C, 0x81)
}

func TestStackExchange(t *testing.T) {
	mem := newTestMem()
	mc := cpu.NewCPU(mem)

	// LD HL,0x1234 ; PUSH HL ; LD HL,0xabcd ; EX (SP),HL ; POP BC
	mem.load(0x0000, 0x21, 0x34, 0x12, 0xe5, 0x21, 0xcd, 0xab, 0xe3, 0xc1)
	cyc := run(mc, 5)
	test.ExpectEquality(t, cyc, 60)
	test.ExpectEquality(t, mc.HL(), 0x1234)
	test.ExpectEquality(t, mc.BC(), 0xabcd)
	test.ExpectEquality(t, mc.SP, 0xffff)
}

func TestShadowRegisters(t *testing.T) {
	mem := newTestMem()
	mc := cpu.NewCPU(mem)

	// LD A,0x11 ; EX AF,AF' ; LD A,0x22 ; EX AF,AF'
	// LD BC,0x1234 ; EXX ; LD BC,0x5678 ; EXX
	mem.load(0x0000,
		0x3e, 0x11, 0x08, 0x3e, 0x22, 0x08,
		0x01, 0x34, 0x12, 0xd9, 0x01, 0x78, 0x56, 0xd9,
	)
	run(mc, 4)
	test.ExpectEquality(t, mc.A, 0x11)
	run(mc, 4)
	test.ExpectEquality(t, mc.BC(), 0x1234)
}

func TestConditionalFlow(t *testing.T) {
	mem := newTestMem()
	mc := cpu.NewCPU(mem)

	// LD A,0x01 ; DEC A ; JR Z,+2 ; (skipped LD A,0xaa) ; LD B,0x55
	mem.load(0x0000, 0x3e, 0x01, 0x3d, 0x28, 0x02, 0x3e, 0xaa, 0x06, 0x55)
	run(mc, 2)
	test.ExpectEquality(t, mc.F.Zero, true)

	cyc := mc.Step()
	test.ExpectEquality(t, cyc, 12)
	test.ExpectEquality(t, mc.PC, 0x0007)

	mc.Step()
	test.ExpectEquality(t, mc.A, 0x00)
	test.ExpectEquality(t, mc.B, 0x55)

	// a failed JR is cheaper
	mem.load(0x0009, 0x20, 0x10)
	cyc = mc.Step()
	test.ExpectEquality(t, cyc, 7)
	test.ExpectEquality(t, mc.PC, 0x000b)

	// a failed JP costs the same as a taken one
	mem.load(0x000b, 0xc2, 0x00, 0x40)
	cyc = mc.Step()
	test.ExpectEquality(t, cyc, 10)
	test.ExpectEquality(t, mc.PC, 0x000e)
}

func TestCallReturn(t *testing.T) {
	mem := newTestMem()
	mc := cpu.NewCPU(mem)

	mem.load(0x0000, 0xcd, 0x10, 0x00)
	mem.load(0x0010, 0xc0, 0xc8) // RET NZ ; RET Z

	cyc := mc.Step()
	test.ExpectEquality(t, cyc, 17)
	test.ExpectEquality(t, mc.PC, 0x0010)
	test.ExpectEquality(t, mc.SP, 0xfffd)
	test.ExpectEquality(t, mem.Read16(0xfffd), 0x0003)

	// zero flag is set after a reset so RET NZ fails
	cyc = mc.Step()
	test.ExpectEquality(t, cyc, 5)
	test.ExpectEquality(t, mc.PC, 0x0011)

	cyc = mc.Step()
	test.ExpectEquality(t, cyc, 11)
	test.ExpectEquality(t, mc.PC, 0x0003)
	test.ExpectEquality(t, mc.SP, 0xffff)
}

func TestDJNZ(t *testing.T) {
	mem := newTestMem()
	mc := cpu.NewCPU(mem)

	// LD B,0x03 ; DJNZ -2. the jump lands on the DJNZ itself
	mem.load(0x0000, 0x06, 0x03, 0x10, 0xfe)
	mc.Step()

	cyc := mc.Step()
	test.ExpectEquality(t, cyc, 13)
	test.ExpectEquality(t, mc.PC, 0x0002)

	mc.Step()
	cyc = mc.Step()
	test.ExpectEquality(t, cyc, 8)
	test.ExpectEquality(t, mc.B, 0x00)
	test.ExpectEquality(t, mc.PC, 0x0004)
}

func TestJumpAndRestart(t *testing.T) {
	mem := newTestMem()
	mc := cpu.NewCPU(mem)

	mem.load(0x0000, 0xc3, 0x20, 0x00)
	mem.load(0x0020, 0xcf) // RST 0x08

	cyc := mc.Step()
	test.ExpectEquality(t, cyc, 10)
	test.ExpectEquality(t, mc.PC, 0x0020)

	cyc = mc.Step()
	test.ExpectEquality(t, cyc, 11)
	test.ExpectEquality(t, mc.PC, 0x0008)
	test.ExpectEquality(t, mem.Read16(0xfffd), 0x0021)

	// LD HL,0x0030 ; JP (HL)
	mem.load(0x0008, 0x21, 0x30, 0x00, 0xe9)
	mc.Step()
	cyc = mc.Step()
	test.ExpectEquality(t, cyc, 4)
	test.ExpectEquality(t, mc.PC, 0x0030)
}

func TestRefreshRegister(t *testing.T) {
	mem := newTestMem()
	mc := cpu.NewCPU(mem)

	// R counts one for every opcode fetch and one for every prefix
	mem.load(0x0000, 0x00, 0xdd, 0x21, 0x00, 0x80, 0xed, 0x44, 0xcb, 0x00)
	run(mc, 4)
	test.ExpectEquality(t, mc.R, 0x07)

	// bit 7 of R is only ever changed by LD R,A
	mc.Plumb(mem)
	mc.Reset()
	mem.load(0x0000, 0x3e, 0x80, 0xed, 0x4f, 0x00)
	run(mc, 3)
	test.ExpectEquality(t, mc.R, 0x81)
}

func TestMemoryOperands(t *testing.T) {
	mem := newTestMem()
	mc := cpu.NewCPU(mem)

	// LD HL,0x8000 ; LD (HL),0x3f ; INC (HL) ; LD A,(HL) ; ADD A,(HL)
	mem.load(0x0000, 0x21, 0x00, 0x80, 0x36, 0x3f, 0x34, 0x7e, 0x86)
	cyc := run(mc, 2)
	test.ExpectEquality(t, cyc, 20)

	cyc = mc.Step()
	test.ExpectEquality(t, cyc, 11)
	test.ExpectEquality(t, mem.ram[0x8000], 0x40)
	test.ExpectEquality(t, mc.F.HalfCarry, true)

	run(mc, 2)
	test.ExpectEquality(t, mc.A, 0x80)
	test.ExpectEquality(t, mc.F.Value(), 0x84)
}

func TestLoadStoreDirect(t *testing.T) {
	mem := newTestMem()
	mc := cpu.NewCPU(mem)

	// LD HL,0x1234 ; LD (0x9000),HL ; LD A,0x77 ; LD (0x9002),A
	// LD HL,(0x9000)
	mem.load(0x0000,
		0x21, 0x34, 0x12, 0x22, 0x00, 0x90,
		0x3e, 0x77, 0x32, 0x02, 0x90,
		0x2a, 0x00, 0x90,
	)
	run(mc, 2)
	test.ExpectEquality(t, mem.Read16(0x9000), 0x1234)
	run(mc, 2)
	test.ExpectEquality(t, mem.ram[0x9002], 0x77)

	mc.SetHL(0x0000)
	cyc := mc.Step()
	test.ExpectEquality(t, cyc, 16)
	test.ExpectEquality(t, mc.HL(), 0x1234)
}

func TestAccumulatorRotate(t *testing.T) {
	mem := newTestMem()
	mc := cpu.NewCPU(mem)

	// XOR A ; LD A,0x81 ; RLCA ; RRA. sign, zero and parity keep the
	// state the XOR left them in
	mem.load(0x0000, 0xaf, 0x3e, 0x81, 0x07, 0x1f)
	run(mc, 3)
	test.ExpectEquality(t, mc.A, 0x03)
	test.ExpectEquality(t, mc.F.Value(), 0x45)

	mc.Step()
	test.ExpectEquality(t, mc.A, 0x81)
	test.ExpectEquality(t, mc.F.Value(), 0x45)
}

func TestShiftRegister(t *testing.T) {
	mem := newTestMem()
	mc := cpu.NewCPU(mem)

	// LD B,0x85 ; RLC B ; SRA B
	mem.load(0x0000, 0x06, 0x85, 0xcb, 0x00, 0xcb, 0x28)
	mc.Step()

	cyc := mc.Step()
	test.ExpectEquality(t, cyc, 8)
	test.ExpectEquality(t, mc.B, 0x0b)
	test.ExpectEquality(t, mc.F.Value(), 0x09)

	mc.Step()
	test.ExpectEquality(t, mc.B, 0x05)
	test.ExpectEquality(t, mc.F.Value(), 0x05)

	// LD HL,0x8000 ; SET 3,(HL)
	mem.load(0x0006, 0x21, 0x00, 0x80, 0xcb, 0xde)
	mc.Step()
	cyc = mc.Step()
	test.ExpectEquality(t, cyc, 15)
	test.ExpectEquality(t, mem.ram[0x8000], 0x08)
}

func TestNegateComplement(t *testing.T) {
	mem := newTestMem()
	mc := cpu.NewCPU(mem)

	// LD A,0x01 ; NEG ; CPL
	mem.load(0x0000, 0x3e, 0x01, 0xed, 0x44, 0x2f)
	run(mc, 2)
	test.ExpectEquality(t, mc.A, 0xff)
	test.ExpectEquality(t, mc.F.Value(), 0xbb)

	mc.Step()
	test.ExpectEquality(t, mc.A, 0x00)
	test.ExpectEquality(t, mc.F.Value(), 0x93)
}

func TestCarryFlagOps(t *testing.T) {
	mem := newTestMem()
	mc := cpu.NewCPU(mem)

	// XOR A ; SCF ; CCF
	mem.load(0x0000, 0xaf, 0x37, 0x3f)
	run(mc, 2)
	test.ExpectEquality(t, mc.F.Value(), 0x45)

	// CCF moves the old carry into half carry
	mc.Step()
	test.ExpectEquality(t, mc.F.Value(), 0x54)
}

func TestNibbleRotate(t *testing.T) {
	mem := newTestMem()
	mc := cpu.NewCPU(mem)

	// LD HL,0x8000 ; LD A,0x12 ; RRD ; RLD. the RLD undoes the RRD
	mem.ram[0x8000] = 0x34
	mem.load(0x0000, 0x21, 0x00, 0x80, 0x3e, 0x12, 0xed, 0x67, 0xed, 0x6f)
	run(mc, 2)

	cyc := mc.Step()
	test.ExpectEquality(t, cyc, 18)
	test.ExpectEquality(t, mc.A, 0x14)
	test.ExpectEquality(t, mem.ram[0x8000], 0x23)

	mc.Step()
	test.ExpectEquality(t, mc.A, 0x12)
	test.ExpectEquality(t, mem.ram[0x8000], 0x34)
}

func TestPortIO(t *testing.T) {
	mem := newTestMem()
	mc := cpu.NewCPU(mem)

	// LD A,0x5a ; OUT (0x42),A ; XOR A ; IN A,(0x17) ; LD C,0x17
	// IN D,(C)
	mem.ports[0x17] = 0xc3
	mem.load(0x0000, 0x3e, 0x5a, 0xd3, 0x42, 0xaf, 0xdb, 0x17, 0x0e, 0x17, 0xed, 0x50)
	run(mc, 2)
	test.ExpectEquality(t, mem.ports[0x42], 0x5a)

	mc.Step()
	test.ExpectEquality(t, mc.F.Value(), 0x44)

	// IN A,(n) leaves the flags alone
	cyc := mc.Step()
	test.ExpectEquality(t, cyc, 11)
	test.ExpectEquality(t, mc.A, 0xc3)
	test.ExpectEquality(t, mc.F.Value(), 0x44)

	// IN r,(C) does not
	run(mc, 2)
	test.ExpectEquality(t, mc.D, 0xc3)
	test.ExpectEquality(t, mc.F.Value(), 0x84)
}

func TestSixteenBitArithmetic(t *testing.T) {
	mem := newTestMem()
	mc := cpu.NewCPU(mem)

	// LD HL,0x0fff ; LD BC,0x0001 ; ADD HL,BC ; SBC HL,BC ; ADC HL,BC
	mem.load(0x0000, 0x21, 0xff, 0x0f, 0x01, 0x01, 0x00, 0x09, 0xed, 0x42, 0xed, 0x4a)
	run(mc, 2)

	cyc := mc.Step()
	test.ExpectEquality(t, cyc, 11)
	test.ExpectEquality(t, mc.HL(), 0x1000)
	test.ExpectEquality(t, mc.F.HalfCarry, true)
	test.ExpectEquality(t, mc.F.Carry, false)

	cyc = mc.Step()
	test.ExpectEquality(t, cyc, 15)
	test.ExpectEquality(t, mc.HL(), 0x0fff)
	test.ExpectEquality(t, mc.F.Value(), 0x1a)

	cyc = mc.Step()
	test.ExpectEquality(t, cyc, 15)
	test.ExpectEquality(t, mc.HL(), 0x1000)
	test.ExpectEquality(t, mc.F.Value(), 0x10)

	// ADD IX,IX doubles the index register without touching HL
	mem.load(0x000b, 0xdd, 0x21, 0x00, 0x40, 0xdd, 0x29)
	mc.Step()
	cyc = mc.Step()
	test.ExpectEquality(t, cyc, 15)
	test.ExpectEquality(t, mc.IX, 0x8000)
	test.ExpectEquality(t, mc.HL(), 0x1000)
}
