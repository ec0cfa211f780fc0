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

// reader turns the bytes on the tape into a pulse train. The train is a
// sequence of output level transitions, each scheduled a number of CPU
// cycles after the previous one.
//
// For CAS media the train is synthesised from the pulse shape tables. For
// CPT media the recorded transitions are played back verbatim.
type reader struct {
	active bool
	format Format
	speed  Speed

	// current output level and the pending transition
	value uint8
	next  uint8
	delta int

	conv usToCycles

	// CAS synthesis. table is nil until the first byte has been fetched.
	byte     uint8
	bitIndex int
	table    []shape
	entry    int
	syncSeen bool
}

// begin starts a fresh pulse train from the tape's current head position.
func (rd *reader) begin(format Format, speed Speed) {
	rd.active = true
	rd.format = format
	rd.speed = speed
	rd.value = 0
	rd.delta = 0
	rd.conv = usToCycles{}

	rd.byte = 0x00
	rd.bitIndex = 0
	rd.table = nil
	rd.entry = 0
	rd.syncSeen = false

	// a CAS train opens with the rise of the first clock pulse. a CPT
	// recording already contains every transition
	if format == CAS {
		rd.next = 1
	} else {
		rd.next = 0
	}
}

// end stops the pulse train. The tape head stays where it is.
func (rd *reader) end() {
	rd.active = false
}

// tick advances the pulse train by the given number of cycles, firing as
// many transitions as fall within that span. The returned count is the
// number of rises to level 1, the transitions that latch the read flipflop.
func (rd *reader) tick(cycles int, m *media) int {
	if !rd.active {
		return 0
	}

	rises := 0
	for cycles > 0 {
		if rd.delta > cycles {
			rd.delta -= cycles
			break
		}
		cycles -= rd.delta
		rd.delta = 0

		if rd.value != rd.next && rd.next == 1 {
			rises++
		}
		rd.value = rd.next

		rd.advance(m)
		if !rd.active {
			break
		}
	}

	return rises
}

// advance schedules the transition that follows the one that has just
// fired.
func (rd *reader) advance(m *media) {
	if rd.format == CPT {
		rd.advanceCPT(m)
		return
	}

	if rd.table == nil {
		rd.fetchByte(m)
	} else if rd.entry >= len(rd.table) {
		rd.bitIndex--
		if rd.bitIndex < 0 {
			rd.fetchByte(m)
		} else {
			rd.table = shapeFor((rd.byte>>rd.bitIndex)&0x01, rd.speed)
			rd.entry = 0
		}
	}

	e := rd.table[rd.entry]
	gap := e.gap

	// the gap that closes the byte is stretched. the first sync byte at 500
	// baud is followed by a much longer pause
	if rd.bitIndex == 0 && rd.entry == len(rd.table)-1 {
		if rd.speed == Baud250 {
			gap += byteStretch250
		} else {
			gap += byteStretch500
			if rd.byte == syncByte && !rd.syncSeen {
				gap += syncStretch500
				rd.syncSeen = true
			}
		}
	}

	rd.next = e.next
	rd.delta = rd.conv.convert(gap)
	rd.entry++
}

// fetchByte pulls the next byte off the tape and points the reader at the
// shape table for its most significant bit.
func (rd *reader) fetchByte(m *media) {
	rd.byte = m.retrieve()
	rd.bitIndex = 7
	rd.table = shapeFor((rd.byte>>rd.bitIndex)&0x01, rd.speed)
	rd.entry = 0
}

// advanceCPT schedules the next recorded transition. The train goes idle at
// the end of the recording.
func (rd *reader) advanceCPT(m *media) {
	if m.atEnd() {
		rd.active = false
		return
	}

	lo := m.retrieve()
	hi := m.retrieve()
	word := uint16(hi)<<8 | uint16(lo)

	if word == cptExtended {
		rd.next = clampLevel(m.retrieve())
		us := uint32(m.retrieve())
		us |= uint32(m.retrieve()) << 8
		us |= uint32(m.retrieve()) << 16
		us |= uint32(m.retrieve()) << 24
		rd.delta = rd.conv.convert(int(us))
		return
	}

	rd.next = clampLevel(uint8(word))
	rd.delta = rd.conv.convert(int(word >> 2))
}

// clampLevel maps a stored level field into the output domain. A tape from
// another tool can carry the fourth encoding, which drives the same high
// output as 2.
func clampLevel(level uint8) uint8 {
	level &= 0x03
	if level == 3 {
		level = 2
	}
	return level
}
