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

// the eight accumulator operations encoded in bits 3 to 5 of the ALU rows
// of the opcode space.
type aluOp uint8

const (
	aluAdd aluOp = iota
	aluAdc
	aluSub
	aluSbc
	aluAnd
	aluXor
	aluOr
	aluCp
)

// performALU applies an accumulator operation. the carry argument of the
// with-carry forms is folded in here.
func (mc *CPU) performALU(op aluOp, value uint8) {
	switch op {
	case aluAdd:
		mc.add8(value, 0)
	case aluAdc:
		carry := uint8(0)
		if mc.F.Carry {
			carry = 1
		}
		mc.add8(value, carry)
	case aluSub:
		mc.sub8(value, 0)
	case aluSbc:
		carry := uint8(0)
		if mc.F.Carry {
			carry = 1
		}
		mc.sub8(value, carry)
	case aluAnd:
		mc.and8(value)
	case aluXor:
		mc.xor8(value)
	case aluOr:
		mc.or8(value)
	case aluCp:
		mc.cp8(value)
	}
}

// parity returns true when the value has an even number of set bits.
func parity(v uint8) bool {
	v ^= v >> 4
	v ^= v >> 2
	v ^= v >> 1
	return v&1 == 0
}

func (mc *CPU) add8(value uint8, carry uint8) {
	a := mc.A
	sum := uint16(a) + uint16(value) + uint16(carry)
	res := uint8(sum)

	mc.A = res
	mc.F.Sign = res&0x80 == 0x80
	mc.F.Zero = res == 0
	mc.F.HalfCarry = (a&0x0f)+(value&0x0f)+carry > 0x0f
	mc.F.ParityOverflow = (^(a^value))&(a^res)&0x80 != 0
	mc.F.Subtract = false
	mc.F.Carry = sum > 0xff
	mc.F.SetResultBits(res)
}

func (mc *CPU) sub8(value uint8, carry uint8) {
	a := mc.A
	diff := int(a) - int(value) - int(carry)
	res := uint8(diff)

	mc.A = res
	mc.F.Sign = res&0x80 == 0x80
	mc.F.Zero = res == 0
	mc.F.HalfCarry = int(a&0x0f)-int(value&0x0f)-int(carry) < 0
	mc.F.ParityOverflow = (a^value)&(a^res)&0x80 != 0
	mc.F.Subtract = true
	mc.F.Carry = diff < 0
	mc.F.SetResultBits(res)
}

// cp8 is a subtraction that discards the result. uniquely among the
// accumulator operations, the undocumented flag bits come from the operand
// rather than the result.
func (mc *CPU) cp8(value uint8) {
	a := mc.A
	diff := int(a) - int(value)
	res := uint8(diff)

	mc.F.Sign = res&0x80 == 0x80
	mc.F.Zero = res == 0
	mc.F.HalfCarry = a&0x0f < value&0x0f
	mc.F.ParityOverflow = (a^value)&(a^res)&0x80 != 0
	mc.F.Subtract = true
	mc.F.Carry = diff < 0
	mc.F.SetResultBits(value)
}

func (mc *CPU) and8(value uint8) {
	mc.A &= value
	mc.F.Sign = mc.A&0x80 == 0x80
	mc.F.Zero = mc.A == 0
	mc.F.HalfCarry = true
	mc.F.ParityOverflow = parity(mc.A)
	mc.F.Subtract = false
	mc.F.Carry = false
	mc.F.SetResultBits(mc.A)
}

func (mc *CPU) xor8(value uint8) {
	mc.A ^= value
	mc.F.Sign = mc.A&0x80 == 0x80
	mc.F.Zero = mc.A == 0
	mc.F.HalfCarry = false
	mc.F.ParityOverflow = parity(mc.A)
	mc.F.Subtract = false
	mc.F.Carry = false
	mc.F.SetResultBits(mc.A)
}

func (mc *CPU) or8(value uint8) {
	mc.A |= value
	mc.F.Sign = mc.A&0x80 == 0x80
	mc.F.Zero = mc.A == 0
	mc.F.HalfCarry = false
	mc.F.ParityOverflow = parity(mc.A)
	mc.F.Subtract = false
	mc.F.Carry = false
	mc.F.SetResultBits(mc.A)
}

// inc8 increments a value, leaving the carry flag untouched.
func (mc *CPU) inc8(value uint8) uint8 {
	res := value + 1
	mc.F.Sign = res&0x80 == 0x80
	mc.F.Zero = res == 0
	mc.F.HalfCarry = value&0x0f == 0x0f
	mc.F.ParityOverflow = value == 0x7f
	mc.F.Subtract = false
	mc.F.SetResultBits(res)
	return res
}

// dec8 decrements a value, leaving the carry flag untouched.
func (mc *CPU) dec8(value uint8) uint8 {
	res := value - 1
	mc.F.Sign = res&0x80 == 0x80
	mc.F.Zero = res == 0
	mc.F.HalfCarry = value&0x0f == 0x00
	mc.F.ParityOverflow = value == 0x80
	mc.F.Subtract = true
	mc.F.SetResultBits(res)
	return res
}

// daa decimal-adjusts the accumulator after a binary addition or
// subtraction of BCD values. the adjustment depends on the half carry,
// carry and subtract flags left by that operation.
func (mc *CPU) daa() {
	a := mc.A
	adj := uint8(0)

	if mc.F.HalfCarry || (!mc.F.Subtract && a&0x0f > 0x09) {
		adj |= 0x06
	}
	if mc.F.Carry || (!mc.F.Subtract && a > 0x99) {
		adj |= 0x60
	}

	var res uint8
	if mc.F.Subtract {
		res = a - adj
	} else {
		res = a + adj
	}

	mc.A = res
	mc.F.Sign = res&0x80 == 0x80
	mc.F.Zero = res == 0
	if mc.F.Subtract {
		mc.F.HalfCarry = (a^res)&0x10 != 0
	} else {
		mc.F.HalfCarry = a&0x0f > 0x09
	}
	mc.F.ParityOverflow = parity(res)
	mc.F.Carry = adj >= 0x60
	mc.F.SetResultBits(res)
}

// neg negates the accumulator. equivalent to subtracting A from zero.
func (mc *CPU) neg() {
	a := mc.A
	res := uint8(0 - int(a))

	mc.A = res
	mc.F.Sign = res&0x80 == 0x80
	mc.F.Zero = res == 0
	mc.F.HalfCarry = a&0x0f != 0
	mc.F.ParityOverflow = a == 0x80
	mc.F.Subtract = true
	mc.F.Carry = a != 0
	mc.F.SetResultBits(res)
}

// addPair implements the 16bit ADD instructions. sign, zero and parity are
// untouched and the half carry works on the 12bit boundary.
func (mc *CPU) addPair(dest uint16, value uint16) uint16 {
	sum := uint32(dest) + uint32(value)
	res := uint16(sum)

	mc.F.HalfCarry = (dest&0x0fff)+(value&0x0fff) > 0x0fff
	mc.F.Subtract = false
	mc.F.Carry = sum > 0xffff
	mc.F.SetResultBits(uint8(res >> 8))
	return res
}

// adcHL implements ADC HL,rr. unlike the plain 16bit ADD, the full flag set
// is affected.
func (mc *CPU) adcHL(value uint16) {
	hl := mc.HL()
	carry := uint16(0)
	if mc.F.Carry {
		carry = 1
	}
	sum := uint32(hl) + uint32(value) + uint32(carry)
	res := uint16(sum)

	mc.SetHL(res)
	mc.F.Sign = res&0x8000 == 0x8000
	mc.F.Zero = res == 0
	mc.F.HalfCarry = (hl&0x0fff)+(value&0x0fff)+carry > 0x0fff
	mc.F.ParityOverflow = (^(hl^value))&(hl^res)&0x8000 != 0
	mc.F.Subtract = false
	mc.F.Carry = sum > 0xffff
	mc.F.SetResultBits(uint8(res >> 8))
}

// sbcHL implements SBC HL,rr.
func (mc *CPU) sbcHL(value uint16) {
	hl := mc.HL()
	carry := uint16(0)
	if mc.F.Carry {
		carry = 1
	}
	diff := int32(hl) - int32(value) - int32(carry)
	res := uint16(diff)

	mc.SetHL(res)
	mc.F.Sign = res&0x8000 == 0x8000
	mc.F.Zero = res == 0
	mc.F.HalfCarry = int32(hl&0x0fff)-int32(value&0x0fff)-int32(carry) < 0
	mc.F.ParityOverflow = (hl^value)&(hl^res)&0x8000 != 0
	mc.F.Subtract = true
	mc.F.Carry = diff < 0
	mc.F.SetResultBits(uint8(res >> 8))
}

// rotate applies one of the eight CB rotate and shift operations. the group
// value is bits 3 to 5 of the CB opcode.
func (mc *CPU) rotate(group uint8, value uint8) uint8 {
	var res uint8
	var carry bool

	switch group {
	case 0: // RLC
		carry = value&0x80 == 0x80
		res = value<<1 | value>>7
	case 1: // RRC
		carry = value&0x01 == 0x01
		res = value>>1 | value<<7
	case 2: // RL
		carry = value&0x80 == 0x80
		res = value << 1
		if mc.F.Carry {
			res |= 0x01
		}
	case 3: // RR
		carry = value&0x01 == 0x01
		res = value >> 1
		if mc.F.Carry {
			res |= 0x80
		}
	case 4: // SLA
		carry = value&0x80 == 0x80
		res = value << 1
	case 5: // SRA
		carry = value&0x01 == 0x01
		res = value>>1 | value&0x80
	case 6: // SLL. undocumented: like SLA but shifts a one into bit 0
		carry = value&0x80 == 0x80
		res = value<<1 | 0x01
	case 7: // SRL
		carry = value&0x01 == 0x01
		res = value >> 1
	}

	mc.F.Sign = res&0x80 == 0x80
	mc.F.Zero = res == 0
	mc.F.HalfCarry = false
	mc.F.ParityOverflow = parity(res)
	mc.F.Subtract = false
	mc.F.Carry = carry
	mc.F.SetResultBits(res)
	return res
}

// rotateAFlags applies the reduced flag treatment of the accumulator rotate
// instructions. sign, zero and parity are untouched.
func (mc *CPU) rotateAFlags(carry bool) {
	mc.F.HalfCarry = false
	mc.F.Subtract = false
	mc.F.Carry = carry
	mc.F.SetResultBits(mc.A)
}

// szpFlags sets sign, zero and parity from a value, clearing half carry and
// subtract and leaving carry alone. this is the flag treatment shared by
// IN r,(C), RLD, RRD and the interrupt-state loads.
func (mc *CPU) szpFlags(value uint8) {
	mc.F.Sign = value&0x80 == 0x80
	mc.F.Zero = value == 0
	mc.F.HalfCarry = false
	mc.F.ParityOverflow = parity(value)
	mc.F.Subtract = false
	mc.F.SetResultBits(value)
}

// bitFlags applies the flag result of the BIT instruction. the undoc
// argument supplies the byte the undocumented bits are copied from: the
// operand for the register forms, the high byte of the effective address
// for the indexed forms.
func (mc *CPU) bitFlags(value uint8, bit uint8, undoc uint8) {
	mask := uint8(1) << bit
	mc.F.Sign = bit == 7 && value&mask != 0
	mc.F.Zero = value&mask == 0
	mc.F.HalfCarry = true
	mc.F.ParityOverflow = value&mask == 0
	mc.F.Subtract = false
	mc.F.SetResultBits(undoc)
}

// ldBlockFlags applies the flag result of the LDI family. called after the
// BC decrement. the undocumented bits come from the sum of the accumulator
// and the transferred value, with bit 1 standing in for bit 5.
func (mc *CPU) ldBlockFlags(value uint8) {
	n := mc.A + value
	mc.F.HalfCarry = false
	mc.F.ParityOverflow = mc.BC() != 0
	mc.F.Subtract = false
	mc.F.Bit5 = n&0x02 == 0x02
	mc.F.Bit3 = n&0x08 == 0x08
}

// cpBlockFlags applies the flag result of the CPI family. carry is
// untouched. called after the BC decrement.
func (mc *CPU) cpBlockFlags(value uint8) {
	a := mc.A
	res := a - value

	mc.F.Sign = res&0x80 == 0x80
	mc.F.Zero = res == 0
	mc.F.HalfCarry = a&0x0f < value&0x0f
	mc.F.ParityOverflow = mc.BC() != 0
	mc.F.Subtract = true

	n := res
	if mc.F.HalfCarry {
		n--
	}
	mc.F.Bit5 = n&0x02 == 0x02
	mc.F.Bit3 = n&0x08 == 0x08
}

// ioBlockFlags applies the flag result of the INI and OUTI families. called
// after the B decrement. k is the 9bit intermediate sum the half carry and
// carry derive from: the transferred value plus the adjusted C register for
// input, plus L for output.
func (mc *CPU) ioBlockFlags(value uint8, k uint16) {
	mc.F.Sign = mc.B&0x80 == 0x80
	mc.F.Zero = mc.B == 0
	mc.F.HalfCarry = k > 0xff
	mc.F.ParityOverflow = parity(uint8(k&0x07) ^ mc.B)
	mc.F.Subtract = value&0x80 == 0x80
	mc.F.Carry = k > 0xff
	mc.F.SetResultBits(mc.B)
}
