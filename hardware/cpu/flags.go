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

import "strings"

// Flags is the F register of the Z80. Bit5 and Bit3 have no documented
// meaning but real silicon copies bits of recent results into them and some
// software notices, so they are emulated like any other flag.
type Flags struct {
	Sign           bool
	Zero           bool
	Bit5           bool
	HalfCarry      bool
	Bit3           bool
	ParityOverflow bool
	Subtract       bool
	Carry          bool
}

func (fl Flags) String() string {
	s := strings.Builder{}

	if fl.Sign {
		s.WriteRune('S')
	} else {
		s.WriteRune('s')
	}
	if fl.Zero {
		s.WriteRune('Z')
	} else {
		s.WriteRune('z')
	}
	if fl.Bit5 {
		s.WriteRune('5')
	} else {
		s.WriteRune('-')
	}
	if fl.HalfCarry {
		s.WriteRune('H')
	} else {
		s.WriteRune('h')
	}
	if fl.Bit3 {
		s.WriteRune('3')
	} else {
		s.WriteRune('-')
	}
	if fl.ParityOverflow {
		s.WriteRune('P')
	} else {
		s.WriteRune('p')
	}
	if fl.Subtract {
		s.WriteRune('N')
	} else {
		s.WriteRune('n')
	}
	if fl.Carry {
		s.WriteRune('C')
	} else {
		s.WriteRune('c')
	}

	return s.String()
}

// Value converts the Flags struct into the byte that PUSH AF places on the
// stack.
func (fl Flags) Value() uint8 {
	var v uint8

	if fl.Sign {
		v |= 0x80
	}
	if fl.Zero {
		v |= 0x40
	}
	if fl.Bit5 {
		v |= 0x20
	}
	if fl.HalfCarry {
		v |= 0x10
	}
	if fl.Bit3 {
		v |= 0x08
	}
	if fl.ParityOverflow {
		v |= 0x04
	}
	if fl.Subtract {
		v |= 0x02
	}
	if fl.Carry {
		v |= 0x01
	}

	return v
}

// FromValue converts a byte (from POP AF, for example) to the Flags struct
// receiver.
func (fl *Flags) FromValue(v uint8) {
	fl.Sign = v&0x80 == 0x80
	fl.Zero = v&0x40 == 0x40
	fl.Bit5 = v&0x20 == 0x20
	fl.HalfCarry = v&0x10 == 0x10
	fl.Bit3 = v&0x08 == 0x08
	fl.ParityOverflow = v&0x04 == 0x04
	fl.Subtract = v&0x02 == 0x02
	fl.Carry = v&0x01 == 0x01
}

// SetResultBits copies bits 5 and 3 of a result value into the undocumented
// flag positions.
func (fl *Flags) SetResultBits(v uint8) {
	fl.Bit5 = v&0x20 == 0x20
	fl.Bit3 = v&0x08 == 0x08
}

// Reset flags to the power-on state. On real hardware the flag bits float
// high after a reset.
func (fl *Flags) Reset() {
	fl.FromValue(0xff)
}
