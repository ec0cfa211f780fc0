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

// CPT record layout. A short record is a 16bit little-endian word with the
// level in the low two bits and the µs delay in the rest. Delays too large
// for a short record use the extended form: the marker word, a level byte
// and a 32bit little-endian delay.
const (
	cptExtended   = 0xffff
	cptMaxShortUs = 0x3fff
)

type writerState int

// The write side decodes the CPU's pulses back into bits. A bit cell opens
// with a clock pulse and the gap that follows it tells the story: a pulse
// soon after is the data pulse of a bit 1, a long silence ending in the
// next clock pulse is a bit 0, a very long silence is a bit 0 at the lower
// tape speed.
const (
	wrInitial writerState = iota
	wrClock500
	wrData500
	wrInitial250
	wrClock250
	wrData250
)

type writer struct {
	state writerState

	// bits are assembled most significant first, bitIndex counting down
	byte     uint8
	bitIndex int

	conv cyclesToUs
}

// begin readies the writer for a fresh recording.
func (wr *writer) begin() {
	wr.state = wrInitial
	wr.byte = 0x00
	wr.bitIndex = 7
	wr.conv = cyclesToUs{}
}

// transition feeds one output level change into the writer. cycles is the
// time since the previous transition.
func (wr *writer) transition(from uint8, to uint8, cycles int64, format Format, m *media) {
	if format == CPT {
		wr.emitCPT(to, cycles, m)
		return
	}

	us := float64(cycles) / clocks.CyclesPerMicrosecond

	switch wr.state {
	case wrInitial:
		if from == 2 && to == 0 {
			wr.state = wrClock500
		}

	case wrClock500:
		if from == 0 && to == 1 {
			if us > threshold250 {
				wr.recordBit(0x00, m)
				wr.state = wrInitial250
			} else if us > threshold500 {
				wr.recordBit(0x00, m)
				wr.state = wrInitial
			} else {
				wr.recordBit(0x01, m)
				wr.state = wrData500
			}
		}

	case wrData500:
		if from == 2 && to == 0 {
			wr.state = wrInitial
		}

	case wrInitial250:
		if from == 2 && to == 0 {
			wr.state = wrClock250
		}

	case wrClock250:
		if from == 0 && to == 1 {
			if us > threshold250 {
				wr.recordBit(0x00, m)
				wr.state = wrInitial250
			} else {
				wr.recordBit(0x01, m)
				wr.state = wrData250
			}
		}

	case wrData250:
		if from == 2 && to == 0 {
			wr.state = wrInitial250
		}
	}
}

// recordBit shifts a decoded bit into the current byte, storing the byte on
// the tape when all eight bits have arrived.
func (wr *writer) recordBit(bit uint8, m *media) {
	wr.byte |= bit << wr.bitIndex
	wr.bitIndex--
	if wr.bitIndex < 0 {
		m.record(wr.byte)
		wr.byte = 0x00
		wr.bitIndex = 7
	}
}

// flush ends the recording. An incomplete CAS byte is stored as it stands.
// A CPT recording closes with a record of the last known level.
func (wr *writer) flush(level uint8, cycles int64, format Format, m *media) {
	if format == CPT {
		wr.emitCPT(level, cycles, m)
		return
	}

	if wr.bitIndex < 7 {
		m.record(wr.byte)
	}
	wr.byte = 0x00
	wr.bitIndex = 7
}

// emitCPT appends one transition record to the tape.
func (wr *writer) emitCPT(level uint8, cycles int64, m *media) {
	us := wr.conv.convert(cycles)
	if us < 0 {
		us = 0
	}
	cptRecord(m, level, us)
}

// cptRecord stores a single transition record, choosing the short or
// extended form by the size of the delay.
func cptRecord(m *media, level uint8, us int) {
	if us < cptMaxShortUs {
		word := uint16(us)<<2 | uint16(level&0x03)
		m.record(uint8(word & 0xff))
		m.record(uint8(word >> 8))
		return
	}

	if us > math.MaxUint32 {
		us = math.MaxUint32
	}
	m.record(0xff)
	m.record(0xff)
	m.record(level & 0x03)
	m.record(uint8(us & 0xff))
	m.record(uint8((us >> 8) & 0xff))
	m.record(uint8((us >> 16) & 0xff))
	m.record(uint8((us >> 24) & 0xff))
}
