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

// initIndexOps fills the table used after a DD or FD prefix. the same table
// serves both prefixes. the prefix field, set by the dispatching opcode,
// decides whether IX or IY is meant.
func (mc *CPU) initIndexOps() {
	// any opcode without an indexed form executes as the unprefixed
	// instruction, with the prefix fetch costing four cycles. the prefix
	// remains in force so that instructions referring to H or L pick up
	// the halves of the index register instead
	for i := range mc.indexOps {
		op := uint8(i)
		mc.indexOps[i] = func(mc *CPU) {
			mc.tick(4)
			mc.baseOps[op](mc)
		}
	}

	mc.indexOps[0x21] = func(mc *CPU) {
		*mc.indexReg() = mc.fetchWord()
		mc.tick(14)
	}
	mc.indexOps[0x22] = func(mc *CPU) {
		mc.mem.Write16(mc.fetchWord(), *mc.indexReg())
		mc.tick(20)
	}
	mc.indexOps[0x2a] = func(mc *CPU) {
		*mc.indexReg() = mc.mem.Read16(mc.fetchWord())
		mc.tick(20)
	}
	mc.indexOps[0x23] = func(mc *CPU) {
		r := mc.indexReg()
		*r++
		mc.tick(10)
	}
	mc.indexOps[0x2b] = func(mc *CPU) {
		r := mc.indexReg()
		*r--
		mc.tick(10)
	}

	mc.indexOps[0x34] = func(mc *CPU) {
		addr := mc.indexAddr()
		mc.write(addr, mc.inc8(mc.read(addr)))
		mc.tick(23)
	}
	mc.indexOps[0x35] = func(mc *CPU) {
		addr := mc.indexAddr()
		mc.write(addr, mc.dec8(mc.read(addr)))
		mc.tick(23)
	}

	// the displacement byte arrives before the immediate value
	mc.indexOps[0x36] = func(mc *CPU) {
		addr := mc.indexAddr()
		mc.write(addr, mc.fetchByte())
		mc.tick(19)
	}

	// ADD ix,pp. the HL slot of the pair encoding means the index
	// register itself while the prefix is active
	for code := uint8(0); code < 4; code++ {
		pair := code
		mc.indexOps[0x09|code<<4] = func(mc *CPU) {
			r := mc.indexReg()
			value := mc.readPair(pair)
			if pair == 2 {
				value = *r
			}
			*r = mc.addPair(*r, value)
			mc.tick(15)
		}
	}

	// loads between the registers and (ix+d). these bypass the prefix
	// aliasing. LD H,(IX+d) really does target H
	for code := uint8(0); code <= 7; code++ {
		if code == 6 {
			continue
		}
		reg := code
		mc.indexOps[0x46|code<<3] = func(mc *CPU) {
			mc.writeReg8Plain(reg, mc.read(mc.indexAddr()))
			mc.tick(19)
		}
		mc.indexOps[0x70|code] = func(mc *CPU) {
			mc.write(mc.indexAddr(), mc.readReg8Plain(reg))
			mc.tick(19)
		}
	}

	// accumulator arithmetic on (ix+d)
	for code := uint8(0); code <= 7; code++ {
		op := aluOp(code)
		mc.indexOps[0x86|code<<3] = func(mc *CPU) {
			mc.performALU(op, mc.read(mc.indexAddr()))
			mc.tick(19)
		}
	}

	mc.indexOps[0xe1] = func(mc *CPU) {
		*mc.indexReg() = mc.popWord()
		mc.tick(14)
	}
	mc.indexOps[0xe5] = func(mc *CPU) {
		mc.pushWord(*mc.indexReg())
		mc.tick(15)
	}
	mc.indexOps[0xe3] = func(mc *CPU) {
		r := mc.indexReg()
		top := mc.mem.Read16(mc.SP)
		mc.mem.Write16(mc.SP, *r)
		*r = top
		mc.tick(23)
	}
	mc.indexOps[0xe9] = func(mc *CPU) {
		mc.PC = *mc.indexReg()
		mc.tick(8)
	}
	mc.indexOps[0xf9] = func(mc *CPU) {
		mc.SP = *mc.indexReg()
		mc.tick(10)
	}

	mc.indexOps[0xcb] = (*CPU).opIndexCBPrefix
}
