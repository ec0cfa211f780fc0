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

package sdlscreen

// Dimensions of a character cell in texture pixels.
const (
	glyphWidth  = 8
	glyphHeight = 12
)

// The available character generators. Selected by the character_generator
// option.
//
// The first generator behaves like an unmodified machine: the character ROM
// has no lowercase half and the lowercase codes repeat the uppercase
// glyphs. The second adds lowercase glyphs with the descenders clipped at
// the bottom of the cell, in the manner of the simpler aftermarket
// modifications. The third draws the lowercase half a row higher so the
// descenders survive.
const (
	GeneratorUppercase = iota + 1
	GeneratorLowercase
	GeneratorDescenders
)

// glyph returns the 12 row bit pattern for a display code under the
// selected generator. The most significant bit of a row is the leftmost
// pixel.
//
// Codes 0x00 to 0x1f alias the 0x40 to 0x5f range; the real character
// generator has no seventh address bit for the text half. Codes 0x80
// upwards are the block graphics, synthesised rather than stored: bits 0 to
// 5 each fill one subcell of a 2x3 grid. Bit 6 of a graphics code is
// ignored, so 0xc0 to 0xff repeat 0x80 to 0xbf.
func glyph(code uint8, generator int) [glyphHeight]uint8 {
	if code >= 0x80 {
		return blockGlyph(code)
	}

	code &= 0x7f
	if code < 0x20 {
		code += 0x40
	}

	if code >= 0x60 {
		switch generator {
		case GeneratorLowercase:
			return characterROM[code-0x20]
		case GeneratorDescenders:
			return lowercaseROM[code-0x60]
		}
		return characterROM[code-0x40]
	}

	return characterROM[code-0x20]
}

// blockGlyph synthesises one of the 2x3 block graphics. Each subcell is
// four pixels wide and four rows tall.
func blockGlyph(code uint8) [glyphHeight]uint8 {
	var g [glyphHeight]uint8

	for bit := 0; bit < 6; bit++ {
		if code&(1<<bit) == 0 {
			continue
		}

		var row uint8 = 0xf0
		if bit&0x01 == 0x01 {
			row = 0x0f
		}

		base := (bit >> 1) * 4
		for y := base; y < base+4; y++ {
			g[y] |= row
		}
	}

	return g
}
