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

package cassette

import (
	"math"

	"github.com/jetsetilly/gopher80/hardware/clocks"
)

// Speed of the tape encoding. The Level II ROM reads and writes at 500 baud;
// the Level I ROM at 250 baud.
type Speed int

// The two tape speeds.
const (
	Baud500 Speed = iota
	Baud250
)

func (s Speed) String() string {
	if s == Baud250 {
		return "250 baud"
	}
	return "500 baud"
}

// A shape entry advances the output level after the given number of
// microseconds. A full pulse is the level sequence 0, 1, 2, 0.
type shape struct {
	gap  int // µs
	next uint8
}

// The pulse shapes for each bit value at each speed. Each table covers one
// bit cell, starting just after the cell's clock pulse has risen and ending
// with the rise of the next cell's clock pulse. A bit 1 has a second pulse
// in the middle of the cell; a bit 0 is silence until the next clock.
//
// Cell lengths are 2008µs at 500 baud and 4016µs at 250 baud.
var (
	shape500Bit1 = []shape{{128, 2}, {128, 0}, {748, 1}, {128, 2}, {128, 0}, {748, 1}}
	shape500Bit0 = []shape{{128, 2}, {128, 0}, {1752, 1}}
	shape250Bit1 = []shape{{128, 2}, {128, 0}, {1752, 1}, {128, 2}, {128, 0}, {1752, 1}}
	shape250Bit0 = []shape{{128, 2}, {128, 0}, {3760, 1}}
)

// shapeFor selects the pulse shape table for a bit value at a speed.
func shapeFor(bit uint8, speed Speed) []shape {
	if speed == Baud250 {
		if bit == 0x00 {
			return shape250Bit0
		}
		return shape250Bit1
	}
	if bit == 0x00 {
		return shape500Bit0
	}
	return shape500Bit1
}

// Classification thresholds for the write side, in µs. Measured from the end
// of a clock pulse to the next rise: a data pulse arrives well inside the
// cell, the next clock pulse arrives at the cell length.
const (
	// in the 500 baud states, a gap longer than this is a bit 0
	threshold500 = 1250

	// in either family of states, a gap longer than this is a bit 0 at the
	// lower speed
	threshold250 = 2500
)

// The gap closing a byte's final bit cell is stretched by a small amount,
// mirroring the per-byte overhead of the ROM write routines.
const (
	byteStretch500 = 114
	byteStretch250 = 112
)

// After the first 0xa5 sync byte at 500 baud an extra delay is inserted.
// The Level II ROM clears the screen between finding sync and reading data
// and the tape has to wait for it.
const syncByte = 0xa5
const syncStretch500 = 1034

// The read routines in the two ROMs poll the port at very different rates.
// A polling interval longer than this many µs identifies the Level I
// routine, and so a 250 baud tape.
const speedDetectUs = 1200

// usToCycles converts microsecond delays into whole CPU cycles. The
// rounding error of each conversion is carried into the next so that a long
// pulse train does not drift from real time.
type usToCycles struct {
	roundoff float64
}

func (c *usToCycles) convert(us int) int {
	exact := float64(us)*clocks.CyclesPerMicrosecond - c.roundoff
	ticks := math.Round(exact)
	c.roundoff = ticks - exact
	return int(ticks)
}

// cyclesToUs is the reverse of usToCycles, used on the write side where
// transition timestamps arrive in cycles and the tape format wants
// microseconds.
type cyclesToUs struct {
	roundoff float64
}

func (c *cyclesToUs) convert(cycles int64) int {
	exact := float64(cycles)/clocks.CyclesPerMicrosecond - c.roundoff
	us := math.Round(exact)
	c.roundoff = us - exact
	return int(us)
}
