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
	"fmt"
	"strings"

	"github.com/jetsetilly/gopher80/curated"
	"github.com/jetsetilly/gopher80/environment"
	"github.com/jetsetilly/gopher80/logger"
)

// Sentinal errors returned by the conversion functions.
const (
	ConvertError = "cassette: convert: %v"
)

// Info returns a human readable description of a tape file.
func Info(filename string, format Format) (string, error) {
	m, err := loadMedia(filename)
	if err != nil {
		return "", err
	}

	s := strings.Builder{}
	s.WriteString(fmt.Sprintf("%s: %s, %d bytes\n", filename, format, len(m.buffer)))

	switch format {
	case CAS:
		// a Level II SYSTEM or CLOAD tape opens with a run of zero bytes
		// and the sync byte. the leader length is a good indicator of
		// whether the file really is a CAS recording
		leader := 0
		for leader < len(m.buffer) && m.buffer[leader] == 0x00 {
			leader++
		}
		s.WriteString(fmt.Sprintf("leader: %d zero bytes\n", leader))
		if leader < len(m.buffer) && m.buffer[leader] == syncByte {
			s.WriteString("sync byte present\n")
		} else {
			s.WriteString("no sync byte. possibly a Level I recording\n")
		}
		s.WriteString(fmt.Sprintf("play time: %.01fs at 500 baud, %.01fs at 250 baud",
			casPlaySeconds(len(m.buffer), Baud500),
			casPlaySeconds(len(m.buffer), Baud250)))

	case CPT:
		records := 0
		us := int64(0)
		for !m.atEnd() {
			rus, _, err := nextCPTRecord(m)
			if err != nil {
				return "", err
			}
			records++
			us += int64(rus)
		}
		s.WriteString(fmt.Sprintf("%d transition records\n", records))
		s.WriteString(fmt.Sprintf("play time: %.01fs", float64(us)/1e6))
	}

	return s.String(), nil
}

// Convert rewrites a tape file in another format. CAS to CPT synthesises the
// pulse train that playing the tape would produce, using the shape tables
// for the given speed. CPT to CAS feeds the recorded pulse train through the
// bit recovery state machine; pulses that do not describe data bits are
// discarded, as they would be on a real re-recording.
func Convert(env *environment.Environment, src string, srcFormat Format, dst string, dstFormat Format, speed Speed) error {
	m, err := loadMedia(src)
	if err != nil {
		return err
	}
	if len(m.buffer) == 0 {
		return curated.Errorf(ConvertError, fmt.Sprintf("%s is empty", src))
	}

	out := &media{path: dst}

	switch {
	case srcFormat == dstFormat:
		out.buffer = append(out.buffer, m.buffer...)

	case srcFormat == CAS && dstFormat == CPT:
		convertCASToCPT(m, out, speed)

	case srcFormat == CPT && dstFormat == CAS:
		err = convertCPTToCAS(m, out)
		if err != nil {
			return err
		}
	}

	logger.Logf(env, "cassette", "converted %s (%s) to %s (%s)", src, srcFormat, dst, dstFormat)

	return out.save()
}

// convertCASToCPT plays the CAS tape through the reader and records every
// transition of the resulting pulse train.
func convertCASToCPT(m *media, out *media, speed Speed) {
	rd := reader{}
	rd.begin(CAS, speed)

	conv := cyclesToUs{}

	// the synthesised train opens with the rise of the first clock pulse
	cptRecord(out, rd.next, 0)

	for {
		// fire the pending transition and schedule the one after it. this
		// is the order the reader's tick uses
		rd.value = rd.next
		rd.advance(m)

		// the head passing the end of the buffer means the scheduled
		// transition belongs to blank tape
		if m.head > len(m.buffer) {
			break
		}

		cptRecord(out, rd.next, conv.convert(int64(rd.delta)))
	}
}

// convertCPTToCAS runs the recorded pulse train through the same state
// machine that decodes the CPU's own writes.
func convertCPTToCAS(m *media, out *media) error {
	wr := writer{}
	wr.begin()

	conv := usToCycles{}
	level := uint8(0)

	for !m.atEnd() {
		us, next, err := nextCPTRecord(m)
		if err != nil {
			return err
		}
		wr.transition(level, next, int64(conv.convert(us)), CAS, out)
		level = next
	}
	wr.flush(level, 0, CAS, out)

	return nil
}

// nextCPTRecord parses one transition record at the tape head.
func nextCPTRecord(m *media) (int, uint8, error) {
	lo := m.retrieve()
	hi := m.retrieve()
	word := uint16(hi)<<8 | uint16(lo)

	if word == cptExtended {
		if m.atEnd() {
			return 0, 0, curated.Errorf(ConvertError, "truncated extended record")
		}
		level := clampLevel(m.retrieve())
		us := uint32(m.retrieve())
		us |= uint32(m.retrieve()) << 8
		us |= uint32(m.retrieve()) << 16
		us |= uint32(m.retrieve()) << 24
		return int(us), level, nil
	}

	return int(word >> 2), clampLevel(uint8(word)), nil
}

// casPlaySeconds estimates the time taken to play a CAS tape of the given
// length. Every byte costs eight bit cells plus the end of byte stretch. The
// cell length is the sum of the gaps in a bit cell's shape table.
func casPlaySeconds(bytes int, speed Speed) float64 {
	cell := 0
	for _, e := range shapeFor(0x00, speed) {
		cell += e.gap
	}
	stretch := byteStretch500
	if speed == Baud250 {
		stretch = byteStretch250
	}
	return float64(bytes*(8*cell+stretch)) / 1e6
}
