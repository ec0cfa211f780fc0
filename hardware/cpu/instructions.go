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

// readReg8 reads the register encoded by a 3bit field of the opcode. code 6
// is the memory access through HL. codes 4 and 5 follow the active index
// register prefix.
func (mc *CPU) readReg8(code uint8) uint8 {
	switch code {
	case 0:
		return mc.B
	case 1:
		return mc.C
	case 2:
		return mc.D
	case 3:
		return mc.E
	case 4:
		return mc.readIndexHigh()
	case 5:
		return mc.readIndexLow()
	case 6:
		return mc.read(mc.HL())
	default:
		return mc.A
	}
}

func (mc *CPU) writeReg8(code uint8, value uint8) {
	switch code {
	case 0:
		mc.B = value
	case 1:
		mc.C = value
	case 2:
		mc.D = value
	case 3:
		mc.E = value
	case 4:
		mc.writeIndexHigh(value)
	case 5:
		mc.writeIndexLow(value)
	case 6:
		mc.write(mc.HL(), value)
	case 7:
		mc.A = value
	}
}

// the plain variants ignore any active prefix. the indexed loads use them
// because LD H,(IX+d) really does target H.
func (mc *CPU) readReg8Plain(code uint8) uint8 {
	switch code {
	case 0:
		return mc.B
	case 1:
		return mc.C
	case 2:
		return mc.D
	case 3:
		return mc.E
	case 4:
		return mc.H
	case 5:
		return mc.L
	case 6:
		return mc.read(mc.HL())
	default:
		return mc.A
	}
}

func (mc *CPU) writeReg8Plain(code uint8, value uint8) {
	switch code {
	case 0:
		mc.B = value
	case 1:
		mc.C = value
	case 2:
		mc.D = value
	case 3:
		mc.E = value
	case 4:
		mc.H = value
	case 5:
		mc.L = value
	case 6:
		mc.write(mc.HL(), value)
	case 7:
		mc.A = value
	}
}

func (mc *CPU) readIndexHigh() uint8 {
	switch mc.prefix {
	case prefixDD:
		return uint8(mc.IX >> 8)
	case prefixFD:
		return uint8(mc.IY >> 8)
	default:
		return mc.H
	}
}

func (mc *CPU) readIndexLow() uint8 {
	switch mc.prefix {
	case prefixDD:
		return uint8(mc.IX)
	case prefixFD:
		return uint8(mc.IY)
	default:
		return mc.L
	}
}

func (mc *CPU) writeIndexHigh(value uint8) {
	switch mc.prefix {
	case prefixDD:
		mc.IX = mc.IX&0x00ff | uint16(value)<<8
	case prefixFD:
		mc.IY = mc.IY&0x00ff | uint16(value)<<8
	default:
		mc.H = value
	}
}

func (mc *CPU) writeIndexLow(value uint8) {
	switch mc.prefix {
	case prefixDD:
		mc.IX = mc.IX&0xff00 | uint16(value)
	case prefixFD:
		mc.IY = mc.IY&0xff00 | uint16(value)
	default:
		mc.L = value
	}
}

// readPair reads the register pair encoded in bits 4 and 5 of the opcode.
// code 3 is SP. PUSH and POP substitute AF for that code and are handled
// separately.
func (mc *CPU) readPair(code uint8) uint16 {
	switch code {
	case 0:
		return mc.BC()
	case 1:
		return mc.DE()
	case 2:
		return mc.HL()
	default:
		return mc.SP
	}
}

func (mc *CPU) writePair(code uint8, v uint16) {
	switch code {
	case 0:
		mc.SetBC(v)
	case 1:
		mc.SetDE(v)
	case 2:
		mc.SetHL(v)
	default:
		mc.SP = v
	}
}

// condition returns the state of the condition encoded in bits 3 to 5 of
// the conditional jump, call and return opcodes.
func (mc *CPU) condition(code uint8) bool {
	switch code {
	case 0:
		return !mc.F.Zero
	case 1:
		return mc.F.Zero
	case 2:
		return !mc.F.Carry
	case 3:
		return mc.F.Carry
	case 4:
		return !mc.F.ParityOverflow
	case 5:
		return mc.F.ParityOverflow
	case 6:
		return !mc.F.Sign
	default:
		return mc.F.Sign
	}
}

func (mc *CPU) initBaseOps() {
	for i := range mc.baseOps {
		mc.baseOps[i] = (*CPU).opNOP
	}

	mc.baseOps[0x00] = (*CPU).opNOP
	mc.baseOps[0x76] = (*CPU).opHALT

	// LD r,r'
	for opcode := 0x40; opcode <= 0x7f; opcode++ {
		if opcode == 0x76 {
			continue
		}
		dest := uint8(opcode>>3) & 0x07
		src := uint8(opcode) & 0x07
		mc.baseOps[opcode] = func(mc *CPU) {
			mc.opLDRegReg(dest, src)
		}
	}

	// LD r,n / INC r / DEC r
	for code := uint8(0); code <= 7; code++ {
		reg := code
		mc.baseOps[0x06|code<<3] = func(mc *CPU) {
			mc.opLDRegImm(reg)
		}
		mc.baseOps[0x04|code<<3] = func(mc *CPU) {
			mc.opINCReg(reg)
		}
		mc.baseOps[0x05|code<<3] = func(mc *CPU) {
			mc.opDECReg(reg)
		}
	}

	// the accumulator operations, register and immediate forms
	for opcode := 0x80; opcode <= 0xbf; opcode++ {
		op := aluOp(opcode>>3) & 0x07
		src := uint8(opcode) & 0x07
		mc.baseOps[opcode] = func(mc *CPU) {
			mc.opALUReg(op, src)
		}
	}
	for op := aluAdd; op <= aluCp; op++ {
		o := op
		mc.baseOps[0xc6|uint8(op)<<3] = func(mc *CPU) {
			mc.opALUImm(o)
		}
	}

	// 16bit loads and arithmetic
	for code := uint8(0); code < 4; code++ {
		pair := code
		mc.baseOps[0x01|code<<4] = func(mc *CPU) {
			mc.writePair(pair, mc.fetchWord())
			mc.tick(10)
		}
		mc.baseOps[0x03|code<<4] = func(mc *CPU) {
			mc.writePair(pair, mc.readPair(pair)+1)
			mc.tick(6)
		}
		mc.baseOps[0x0b|code<<4] = func(mc *CPU) {
			mc.writePair(pair, mc.readPair(pair)-1)
			mc.tick(6)
		}
		mc.baseOps[0x09|code<<4] = func(mc *CPU) {
			mc.SetHL(mc.addPair(mc.HL(), mc.readPair(pair)))
			mc.tick(11)
		}
		mc.baseOps[0xc5|code<<4] = func(mc *CPU) {
			mc.opPUSH(pair)
		}
		mc.baseOps[0xc1|code<<4] = func(mc *CPU) {
			mc.opPOP(pair)
		}
	}

	// jumps, calls and returns
	mc.baseOps[0xc3] = (*CPU).opJPNN
	mc.baseOps[0xe9] = (*CPU).opJPHL
	mc.baseOps[0x18] = (*CPU).opJR
	mc.baseOps[0x10] = (*CPU).opDJNZ
	mc.baseOps[0xcd] = (*CPU).opCALLNN
	mc.baseOps[0xc9] = (*CPU).opRET

	for code := uint8(0); code <= 7; code++ {
		cond := code
		mc.baseOps[0xc2|code<<3] = func(mc *CPU) {
			mc.jpCond(mc.condition(cond))
		}
		mc.baseOps[0xc4|code<<3] = func(mc *CPU) {
			mc.callCond(mc.condition(cond))
		}
		mc.baseOps[0xc0|code<<3] = func(mc *CPU) {
			mc.retCond(mc.condition(cond))
		}
		target := uint16(code) << 3
		mc.baseOps[0xc7|code<<3] = func(mc *CPU) {
			mc.opRST(target)
		}
	}
	for code := uint8(0); code < 4; code++ {
		cond := code
		mc.baseOps[0x20|code<<3] = func(mc *CPU) {
			mc.jrCond(mc.condition(cond))
		}
	}

	// accumulator rotates and flag operations
	mc.baseOps[0x07] = (*CPU).opRLCA
	mc.baseOps[0x0f] = (*CPU).opRRCA
	mc.baseOps[0x17] = (*CPU).opRLA
	mc.baseOps[0x1f] = (*CPU).opRRA
	mc.baseOps[0x27] = (*CPU).opDAA
	mc.baseOps[0x2f] = (*CPU).opCPL
	mc.baseOps[0x37] = (*CPU).opSCF
	mc.baseOps[0x3f] = (*CPU).opCCF

	// accumulator and HL transfers with memory
	mc.baseOps[0x02] = (*CPU).opLDBCA
	mc.baseOps[0x0a] = (*CPU).opLDABC
	mc.baseOps[0x12] = (*CPU).opLDDEA
	mc.baseOps[0x1a] = (*CPU).opLDADE
	mc.baseOps[0x22] = (*CPU).opLDNNHL
	mc.baseOps[0x2a] = (*CPU).opLDHLNN
	mc.baseOps[0x32] = (*CPU).opLDNNA
	mc.baseOps[0x3a] = (*CPU).opLDANN
	mc.baseOps[0xf9] = (*CPU).opLDSPHL

	// exchanges
	mc.baseOps[0x08] = (*CPU).opEXAF
	mc.baseOps[0xd9] = (*CPU).opEXX
	mc.baseOps[0xeb] = (*CPU).opEXDEHL
	mc.baseOps[0xe3] = (*CPU).opEXSPHL

	// ports
	mc.baseOps[0xd3] = (*CPU).opOUTNA
	mc.baseOps[0xdb] = (*CPU).opINAN

	// interrupt control
	mc.baseOps[0xf3] = (*CPU).opDI
	mc.baseOps[0xfb] = (*CPU).opEI

	// prefixes
	mc.baseOps[0xcb] = (*CPU).opCBPrefix
	mc.baseOps[0xed] = (*CPU).opEDPrefix
	mc.baseOps[0xdd] = (*CPU).opDDPrefix
	mc.baseOps[0xfd] = (*CPU).opFDPrefix
}

func (mc *CPU) opNOP() {
	mc.tick(4)
}

func (mc *CPU) opHALT() {
	mc.Halted = true
	mc.tick(4)
}

func (mc *CPU) opLDRegReg(dest uint8, src uint8) {
	mc.writeReg8(dest, mc.readReg8(src))
	if dest == 6 || src == 6 {
		mc.tick(7)
	} else {
		mc.tick(4)
	}
}

func (mc *CPU) opLDRegImm(dest uint8) {
	mc.writeReg8(dest, mc.fetchByte())
	if dest == 6 {
		mc.tick(10)
	} else {
		mc.tick(7)
	}
}

func (mc *CPU) opINCReg(reg uint8) {
	mc.writeReg8(reg, mc.inc8(mc.readReg8(reg)))
	if reg == 6 {
		mc.tick(11)
	} else {
		mc.tick(4)
	}
}

func (mc *CPU) opDECReg(reg uint8) {
	mc.writeReg8(reg, mc.dec8(mc.readReg8(reg)))
	if reg == 6 {
		mc.tick(11)
	} else {
		mc.tick(4)
	}
}

func (mc *CPU) opALUReg(op aluOp, src uint8) {
	mc.performALU(op, mc.readReg8(src))
	if src == 6 {
		mc.tick(7)
	} else {
		mc.tick(4)
	}
}

func (mc *CPU) opALUImm(op aluOp) {
	mc.performALU(op, mc.fetchByte())
	mc.tick(7)
}

func (mc *CPU) opPUSH(pair uint8) {
	if pair == 3 {
		mc.pushWord(mc.AF())
	} else {
		mc.pushWord(mc.readPair(pair))
	}
	mc.tick(11)
}

func (mc *CPU) opPOP(pair uint8) {
	if pair == 3 {
		mc.SetAF(mc.popWord())
	} else {
		mc.writePair(pair, mc.popWord())
	}
	mc.tick(10)
}

func (mc *CPU) opJPNN() {
	mc.PC = mc.fetchWord()
	mc.tick(10)
}

func (mc *CPU) opJPHL() {
	mc.PC = mc.HL()
	mc.tick(4)
}

func (mc *CPU) opJR() {
	disp := int8(mc.fetchByte())
	mc.PC = uint16(int32(mc.PC) + int32(disp))
	mc.tick(12)
}

func (mc *CPU) opDJNZ() {
	disp := int8(mc.fetchByte())
	mc.B--
	if mc.B != 0 {
		mc.PC = uint16(int32(mc.PC) + int32(disp))
		mc.tick(13)
	} else {
		mc.tick(8)
	}
}

func (mc *CPU) opCALLNN() {
	addr := mc.fetchWord()
	mc.pushWord(mc.PC)
	mc.PC = addr
	mc.tick(17)
}

func (mc *CPU) opRET() {
	mc.PC = mc.popWord()
	mc.tick(10)
}

func (mc *CPU) opRST(target uint16) {
	mc.pushWord(mc.PC)
	mc.PC = target
	mc.tick(11)
}

// the conditional forms. the jump absolute takes the same time whether or
// not the condition passes, the others differ.

func (mc *CPU) jpCond(cond bool) {
	addr := mc.fetchWord()
	if cond {
		mc.PC = addr
	}
	mc.tick(10)
}

func (mc *CPU) jrCond(cond bool) {
	disp := int8(mc.fetchByte())
	if cond {
		mc.PC = uint16(int32(mc.PC) + int32(disp))
		mc.tick(12)
	} else {
		mc.tick(7)
	}
}

func (mc *CPU) callCond(cond bool) {
	addr := mc.fetchWord()
	if cond {
		mc.pushWord(mc.PC)
		mc.PC = addr
		mc.tick(17)
	} else {
		mc.tick(10)
	}
}

func (mc *CPU) retCond(cond bool) {
	if cond {
		mc.PC = mc.popWord()
		mc.tick(11)
	} else {
		mc.tick(5)
	}
}

func (mc *CPU) opRLCA() {
	carry := mc.A&0x80 == 0x80
	mc.A = mc.A<<1 | mc.A>>7
	mc.rotateAFlags(carry)
	mc.tick(4)
}

func (mc *CPU) opRRCA() {
	carry := mc.A&0x01 == 0x01
	mc.A = mc.A>>1 | mc.A<<7
	mc.rotateAFlags(carry)
	mc.tick(4)
}

func (mc *CPU) opRLA() {
	carry := mc.A&0x80 == 0x80
	mc.A <<= 1
	if mc.F.Carry {
		mc.A |= 0x01
	}
	mc.rotateAFlags(carry)
	mc.tick(4)
}

func (mc *CPU) opRRA() {
	carry := mc.A&0x01 == 0x01
	mc.A >>= 1
	if mc.F.Carry {
		mc.A |= 0x80
	}
	mc.rotateAFlags(carry)
	mc.tick(4)
}

func (mc *CPU) opDAA() {
	mc.daa()
	mc.tick(4)
}

func (mc *CPU) opCPL() {
	mc.A = ^mc.A
	mc.F.HalfCarry = true
	mc.F.Subtract = true
	mc.F.SetResultBits(mc.A)
	mc.tick(4)
}

func (mc *CPU) opSCF() {
	mc.F.HalfCarry = false
	mc.F.Subtract = false
	mc.F.Carry = true
	mc.F.SetResultBits(mc.A)
	mc.tick(4)
}

func (mc *CPU) opCCF() {
	mc.F.HalfCarry = mc.F.Carry
	mc.F.Subtract = false
	mc.F.Carry = !mc.F.Carry
	mc.F.SetResultBits(mc.A)
	mc.tick(4)
}

func (mc *CPU) opLDBCA() {
	mc.write(mc.BC(), mc.A)
	mc.tick(7)
}

func (mc *CPU) opLDABC() {
	mc.A = mc.read(mc.BC())
	mc.tick(7)
}

func (mc *CPU) opLDDEA() {
	mc.write(mc.DE(), mc.A)
	mc.tick(7)
}

func (mc *CPU) opLDADE() {
	mc.A = mc.read(mc.DE())
	mc.tick(7)
}

func (mc *CPU) opLDNNHL() {
	addr := mc.fetchWord()
	mc.mem.Write16(addr, mc.HL())
	mc.tick(16)
}

func (mc *CPU) opLDHLNN() {
	addr := mc.fetchWord()
	mc.SetHL(mc.mem.Read16(addr))
	mc.tick(16)
}

func (mc *CPU) opLDNNA() {
	mc.write(mc.fetchWord(), mc.A)
	mc.tick(13)
}

func (mc *CPU) opLDANN() {
	mc.A = mc.read(mc.fetchWord())
	mc.tick(13)
}

func (mc *CPU) opLDSPHL() {
	mc.SP = mc.HL()
	mc.tick(6)
}

func (mc *CPU) opEXAF() {
	mc.exAF()
	mc.tick(4)
}

func (mc *CPU) opEXX() {
	mc.exx()
	mc.tick(4)
}

func (mc *CPU) opEXDEHL() {
	mc.D, mc.H = mc.H, mc.D
	mc.E, mc.L = mc.L, mc.E
	mc.tick(4)
}

func (mc *CPU) opEXSPHL() {
	v := mc.mem.Read16(mc.SP)
	mc.mem.Write16(mc.SP, mc.HL())
	mc.SetHL(v)
	mc.tick(19)
}

func (mc *CPU) opOUTNA() {
	mc.mem.PortWrite(mc.fetchByte(), mc.A)
	mc.tick(11)
}

// opINAN does not affect any flags, unlike the IN r,(C) family.
func (mc *CPU) opINAN() {
	mc.A = mc.mem.PortRead(mc.fetchByte())
	mc.tick(11)
}

func (mc *CPU) opDI() {
	mc.IFF1 = false
	mc.IFF2 = false
	mc.eiDelay = 0
	mc.tick(4)
}

func (mc *CPU) opEI() {
	mc.eiDelay = 2
	mc.tick(4)
}

func (mc *CPU) opCBPrefix() {
	mc.incrementR()
	opcode := mc.fetchByte()
	mc.cbOps[opcode](mc)
}

func (mc *CPU) opEDPrefix() {
	mc.incrementR()
	opcode := mc.fetchByte()
	mc.edOps[opcode](mc)
}

func (mc *CPU) opDDPrefix() {
	mc.incrementR()
	opcode := mc.fetchByte()
	prev := mc.prefix
	mc.prefix = prefixDD
	mc.indexOps[opcode](mc)
	mc.prefix = prev
}

func (mc *CPU) opFDPrefix() {
	mc.incrementR()
	opcode := mc.fetchByte()
	prev := mc.prefix
	mc.prefix = prefixFD
	mc.indexOps[opcode](mc)
	mc.prefix = prev
}
