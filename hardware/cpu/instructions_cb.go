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

// the CB page divides cleanly into four quarters: rotate and shift, BIT,
// RES and SET. within each quarter bits 3 to 5 select the operation or bit
// number and bits 0 to 2 the register.
func (mc *CPU) initCBOps() {
	for opcode := 0x00; opcode <= 0x3f; opcode++ {
		group := uint8(opcode>>3) & 0x07
		reg := uint8(opcode) & 0x07
		mc.cbOps[opcode] = func(mc *CPU) {
			mc.opCBRotate(group, reg)
		}
	}
	for opcode := 0x40; opcode <= 0x7f; opcode++ {
		bit := uint8(opcode>>3) & 0x07
		reg := uint8(opcode) & 0x07
		mc.cbOps[opcode] = func(mc *CPU) {
			mc.opCBBIT(bit, reg)
		}
	}
	for opcode := 0x80; opcode <= 0xbf; opcode++ {
		bit := uint8(opcode>>3) & 0x07
		reg := uint8(opcode) & 0x07
		mc.cbOps[opcode] = func(mc *CPU) {
			mc.opCBRES(bit, reg)
		}
	}
	for opcode := 0xc0; opcode <= 0xff; opcode++ {
		bit := uint8(opcode>>3) & 0x07
		reg := uint8(opcode) & 0x07
		mc.cbOps[opcode] = func(mc *CPU) {
			mc.opCBSET(bit, reg)
		}
	}
}

func (mc *CPU) opCBRotate(group uint8, reg uint8) {
	mc.writeReg8(reg, mc.rotate(group, mc.readReg8(reg)))
	if reg == 6 {
		mc.tick(15)
	} else {
		mc.tick(8)
	}
}

func (mc *CPU) opCBBIT(bit uint8, reg uint8) {
	value := mc.readReg8(reg)
	mc.bitFlags(value, bit, value)
	if reg == 6 {
		mc.tick(12)
	} else {
		mc.tick(8)
	}
}

func (mc *CPU) opCBRES(bit uint8, reg uint8) {
	mc.writeReg8(reg, mc.readReg8(reg)&^(1<<bit))
	if reg == 6 {
		mc.tick(15)
	} else {
		mc.tick(8)
	}
}

func (mc *CPU) opCBSET(bit uint8, reg uint8) {
	mc.writeReg8(reg, mc.readReg8(reg)|1<<bit)
	if reg == 6 {
		mc.tick(15)
	} else {
		mc.tick(8)
	}
}

// the displacement forms of the CB page, reached through DD CB and FD CB.
// every non-BIT operation works on the indexed address and, when the
// register field names one, also copies the result into that register. the
// displacement byte precedes the final opcode.
func (mc *CPU) opIndexCBPrefix() {
	addr := mc.indexAddr()
	opcode := mc.fetchByte()
	reg := opcode & 0x07

	switch opcode >> 6 {
	case 0:
		res := mc.rotate(opcode>>3&0x07, mc.read(addr))
		mc.write(addr, res)
		if reg != 6 {
			mc.writeReg8Plain(reg, res)
		}
		mc.tick(23)
	case 1:
		// the undocumented flag bits of the indexed BIT come from the
		// high byte of the effective address
		mc.bitFlags(mc.read(addr), opcode>>3&0x07, uint8(addr>>8))
		mc.tick(20)
	case 2:
		res := mc.read(addr) &^ (1 << (opcode >> 3 & 0x07))
		mc.write(addr, res)
		if reg != 6 {
			mc.writeReg8Plain(reg, res)
		}
		mc.tick(23)
	case 3:
		res := mc.read(addr) | 1<<(opcode>>3&0x07)
		mc.write(addr, res)
		if reg != 6 {
			mc.writeReg8Plain(reg, res)
		}
		mc.tick(23)
	}
}
