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

// the 8bit registers of the Z80 pair up into 16bit registers for address
// work and 16bit arithmetic. the pairings are fixed: B with C, D with E, H
// with L and, for the purposes of PUSH and POP, A with the flags.

// AF returns the accumulator and flags as a 16bit value.
func (mc *CPU) AF() uint16 {
	return uint16(mc.A)<<8 | uint16(mc.F.Value())
}

// SetAF distributes a 16bit value over the accumulator and flags.
func (mc *CPU) SetAF(v uint16) {
	mc.A = uint8(v >> 8)
	mc.F.FromValue(uint8(v))
}

// BC returns the B and C registers as a 16bit value.
func (mc *CPU) BC() uint16 {
	return uint16(mc.B)<<8 | uint16(mc.C)
}

// SetBC distributes a 16bit value over the B and C registers.
func (mc *CPU) SetBC(v uint16) {
	mc.B = uint8(v >> 8)
	mc.C = uint8(v)
}

// DE returns the D and E registers as a 16bit value.
func (mc *CPU) DE() uint16 {
	return uint16(mc.D)<<8 | uint16(mc.E)
}

// SetDE distributes a 16bit value over the D and E registers.
func (mc *CPU) SetDE(v uint16) {
	mc.D = uint8(v >> 8)
	mc.E = uint8(v)
}

// HL returns the H and L registers as a 16bit value.
func (mc *CPU) HL() uint16 {
	return uint16(mc.H)<<8 | uint16(mc.L)
}

// SetHL distributes a 16bit value over the H and L registers.
func (mc *CPU) SetHL(v uint16) {
	mc.H = uint8(v >> 8)
	mc.L = uint8(v)
}

// exAF exchanges AF with the alternate set. implements EX AF,AF'.
func (mc *CPU) exAF() {
	mc.A, mc.A2 = mc.A2, mc.A
	mc.F, mc.F2 = mc.F2, mc.F
}

// exx exchanges BC, DE and HL with the alternate set. implements EXX.
func (mc *CPU) exx() {
	mc.B, mc.B2 = mc.B2, mc.B
	mc.C, mc.C2 = mc.C2, mc.C
	mc.D, mc.D2 = mc.D2, mc.D
	mc.E, mc.E2 = mc.E2, mc.E
	mc.H, mc.H2 = mc.H2, mc.H
	mc.L, mc.L2 = mc.L2, mc.L
}

// incrementR advances the low 7 bits of the refresh register. bit 7 is only
// ever changed by LD R,A.
func (mc *CPU) incrementR() {
	mc.R = (mc.R & 0x80) | ((mc.R + 1) & 0x7f)
}
