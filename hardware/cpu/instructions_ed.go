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

func (mc *CPU) initEDOps() {
	for i := range mc.edOps {
		mc.edOps[i] = (*CPU).opEDUndefined
	}

	// IN r,(C) and OUT (C),r. code 6 is the flag-only input and the
	// zero output
	for code := uint8(0); code <= 7; code++ {
		reg := code
		mc.edOps[0x40|code<<3] = func(mc *CPU) {
			mc.opINRegC(reg)
		}
		mc.edOps[0x41|code<<3] = func(mc *CPU) {
			mc.opOUTCReg(reg)
		}
	}

	// 16bit loads and arithmetic with carry
	for code := uint8(0); code < 4; code++ {
		pair := code
		mc.edOps[0x43|code<<4] = func(mc *CPU) {
			mc.mem.Write16(mc.fetchWord(), mc.readPair(pair))
			mc.tick(20)
		}
		mc.edOps[0x4b|code<<4] = func(mc *CPU) {
			mc.writePair(pair, mc.mem.Read16(mc.fetchWord()))
			mc.tick(20)
		}
		mc.edOps[0x4a|code<<4] = func(mc *CPU) {
			mc.adcHL(mc.readPair(pair))
			mc.tick(15)
		}
		mc.edOps[0x42|code<<4] = func(mc *CPU) {
			mc.sbcHL(mc.readPair(pair))
			mc.tick(15)
		}
	}

	// NEG and RETN repeat through the undefined slots of their columns
	for opcode := 0x44; opcode <= 0x7c; opcode += 8 {
		mc.edOps[opcode] = (*CPU).opNEG
		mc.edOps[opcode+1] = (*CPU).opRETN
	}
	mc.edOps[0x4d] = (*CPU).opRETI

	mc.edOps[0x46] = (*CPU).opIM0
	mc.edOps[0x56] = (*CPU).opIM1
	mc.edOps[0x5e] = (*CPU).opIM2
	mc.edOps[0x66] = (*CPU).opIM0
	mc.edOps[0x6e] = (*CPU).opIM0
	mc.edOps[0x76] = (*CPU).opIM1
	mc.edOps[0x7e] = (*CPU).opIM2

	mc.edOps[0x47] = (*CPU).opLDIA
	mc.edOps[0x4f] = (*CPU).opLDRA
	mc.edOps[0x57] = (*CPU).opLDAI
	mc.edOps[0x5f] = (*CPU).opLDAR

	mc.edOps[0x67] = (*CPU).opRRD
	mc.edOps[0x6f] = (*CPU).opRLD

	// the block instructions
	mc.edOps[0xa0] = (*CPU).opLDI
	mc.edOps[0xa8] = (*CPU).opLDD
	mc.edOps[0xb0] = (*CPU).opLDIR
	mc.edOps[0xb8] = (*CPU).opLDDR
	mc.edOps[0xa1] = (*CPU).opCPI
	mc.edOps[0xa9] = (*CPU).opCPD
	mc.edOps[0xb1] = (*CPU).opCPIR
	mc.edOps[0xb9] = (*CPU).opCPDR
	mc.edOps[0xa2] = (*CPU).opINI
	mc.edOps[0xaa] = (*CPU).opIND
	mc.edOps[0xb2] = (*CPU).opINIR
	mc.edOps[0xba] = (*CPU).opINDR
	mc.edOps[0xa3] = (*CPU).opOUTI
	mc.edOps[0xab] = (*CPU).opOUTD
	mc.edOps[0xb3] = (*CPU).opOTIR
	mc.edOps[0xbb] = (*CPU).opOTDR
}

// opEDUndefined handles the unused portions of the ED page. the hardware
// treats them as a pair of NOPs.
func (mc *CPU) opEDUndefined() {
	mc.tick(8)
}

func (mc *CPU) opINRegC(reg uint8) {
	value := mc.mem.PortRead(mc.C)
	if reg != 6 {
		mc.writeReg8Plain(reg, value)
	}
	mc.szpFlags(value)
	mc.tick(12)
}

func (mc *CPU) opOUTCReg(reg uint8) {
	if reg == 6 {
		mc.mem.PortWrite(mc.C, 0x00)
	} else {
		mc.mem.PortWrite(mc.C, mc.readReg8Plain(reg))
	}
	mc.tick(12)
}

func (mc *CPU) opNEG() {
	mc.neg()
	mc.tick(8)
}

// RETN restores the interrupt enable state saved by the interrupt
// acknowledge. RETI behaves identically as far as the CPU is concerned; the
// distinction only matters to peripherals watching the bus.
func (mc *CPU) opRETN() {
	mc.PC = mc.popWord()
	mc.IFF1 = mc.IFF2
	mc.tick(14)
}

func (mc *CPU) opRETI() {
	mc.PC = mc.popWord()
	mc.IFF1 = mc.IFF2
	mc.tick(14)
}

func (mc *CPU) opIM0() {
	mc.IM = 0
	mc.tick(8)
}

func (mc *CPU) opIM1() {
	mc.IM = 1
	mc.tick(8)
}

func (mc *CPU) opIM2() {
	mc.IM = 2
	mc.tick(8)
}

func (mc *CPU) opLDIA() {
	mc.I = mc.A
	mc.tick(9)
}

func (mc *CPU) opLDRA() {
	mc.R = mc.A
	mc.tick(9)
}

// the loads from I and R are the one place the interrupt enable state is
// visible to a program: IFF2 lands in the parity flag.
func (mc *CPU) opLDAI() {
	mc.A = mc.I
	mc.szpFlags(mc.A)
	mc.F.ParityOverflow = mc.IFF2
	mc.tick(9)
}

func (mc *CPU) opLDAR() {
	mc.A = mc.R
	mc.szpFlags(mc.A)
	mc.F.ParityOverflow = mc.IFF2
	mc.tick(9)
}

// RRD and RLD rotate the low nibble of the accumulator through the two
// nibbles of the byte at HL.
func (mc *CPU) opRRD() {
	addr := mc.HL()
	value := mc.read(addr)
	mc.write(addr, value>>4|mc.A<<4)
	mc.A = mc.A&0xf0 | value&0x0f
	mc.szpFlags(mc.A)
	mc.tick(18)
}

func (mc *CPU) opRLD() {
	addr := mc.HL()
	value := mc.read(addr)
	mc.write(addr, value<<4|mc.A&0x0f)
	mc.A = mc.A&0xf0 | value>>4
	mc.szpFlags(mc.A)
	mc.tick(18)
}

func (mc *CPU) opLDI() {
	value := mc.read(mc.HL())
	mc.write(mc.DE(), value)
	mc.SetHL(mc.HL() + 1)
	mc.SetDE(mc.DE() + 1)
	mc.SetBC(mc.BC() - 1)
	mc.ldBlockFlags(value)
	mc.tick(16)
}

func (mc *CPU) opLDD() {
	value := mc.read(mc.HL())
	mc.write(mc.DE(), value)
	mc.SetHL(mc.HL() - 1)
	mc.SetDE(mc.DE() - 1)
	mc.SetBC(mc.BC() - 1)
	mc.ldBlockFlags(value)
	mc.tick(16)
}

// the repeating block forms rewind PC by the two instruction bytes so that
// the interrupt check in Step sees an ordinary instruction boundary between
// repeats.
func (mc *CPU) opLDIR() {
	mc.opLDI()
	if mc.BC() != 0 {
		mc.PC -= 2
		mc.tick(5)
	}
}

func (mc *CPU) opLDDR() {
	mc.opLDD()
	if mc.BC() != 0 {
		mc.PC -= 2
		mc.tick(5)
	}
}

func (mc *CPU) opCPI() {
	value := mc.read(mc.HL())
	mc.SetHL(mc.HL() + 1)
	mc.SetBC(mc.BC() - 1)
	mc.cpBlockFlags(value)
	mc.tick(16)
}

func (mc *CPU) opCPD() {
	value := mc.read(mc.HL())
	mc.SetHL(mc.HL() - 1)
	mc.SetBC(mc.BC() - 1)
	mc.cpBlockFlags(value)
	mc.tick(16)
}

func (mc *CPU) opCPIR() {
	mc.opCPI()
	if mc.BC() != 0 && !mc.F.Zero {
		mc.PC -= 2
		mc.tick(5)
	}
}

func (mc *CPU) opCPDR() {
	mc.opCPD()
	if mc.BC() != 0 && !mc.F.Zero {
		mc.PC -= 2
		mc.tick(5)
	}
}

func (mc *CPU) opINI() {
	value := mc.mem.PortRead(mc.C)
	mc.write(mc.HL(), value)
	mc.B--
	mc.SetHL(mc.HL() + 1)
	mc.ioBlockFlags(value, uint16(value)+uint16(mc.C+1))
	mc.tick(16)
}

func (mc *CPU) opIND() {
	value := mc.mem.PortRead(mc.C)
	mc.write(mc.HL(), value)
	mc.B--
	mc.SetHL(mc.HL() - 1)
	mc.ioBlockFlags(value, uint16(value)+uint16(mc.C-1))
	mc.tick(16)
}

func (mc *CPU) opINIR() {
	mc.opINI()
	if mc.B != 0 {
		mc.PC -= 2
		mc.tick(5)
	}
}

func (mc *CPU) opINDR() {
	mc.opIND()
	if mc.B != 0 {
		mc.PC -= 2
		mc.tick(5)
	}
}

func (mc *CPU) opOUTI() {
	value := mc.read(mc.HL())
	mc.B--
	mc.mem.PortWrite(mc.C, value)
	mc.SetHL(mc.HL() + 1)
	mc.ioBlockFlags(value, uint16(value)+uint16(mc.L))
	mc.tick(16)
}

func (mc *CPU) opOUTD() {
	value := mc.read(mc.HL())
	mc.B--
	mc.mem.PortWrite(mc.C, value)
	mc.SetHL(mc.HL() - 1)
	mc.ioBlockFlags(value, uint16(value)+uint16(mc.L))
	mc.tick(16)
}

func (mc *CPU) opOTIR() {
	mc.opOUTI()
	if mc.B != 0 {
		mc.PC -= 2
		mc.tick(5)
	}
}

func (mc *CPU) opOTDR() {
	mc.opOUTD()
	if mc.B != 0 {
		mc.PC -= 2
		mc.tick(5)
	}
}
