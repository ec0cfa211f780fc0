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
	"github.com/jetsetilly/gopher80/hardware/clocks"
	"github.com/jetsetilly/gopher80/logger"
	"github.com/jetsetilly/gopher80/notifications"
)

// Format of the file backing the tape.
type Format int

// CAS files hold the decoded byte stream. CPT files hold the raw transition
// timings, which is slower to store but preserves recordings no byte
// decoder understands.
const (
	CAS Format = iota
	CPT
)

func (f Format) String() string {
	if f == CPT {
		return "CPT"
	}
	return "CAS"
}

// ParseFormat converts a format name, case insensitively.
func ParseFormat(s string) (Format, error) {
	switch strings.ToUpper(s) {
	case "CAS":
		return CAS, nil
	case "CPT":
		return CPT, nil
	}
	return CAS, curated.Errorf(UnknownFormat, s)
}

// Mode the deck is currently in.
type Mode int

// The deck idles in ModeClosed. The direction of the first tape activity
// after motor start decides between ModeReading and ModeWriting. ModeFailed
// latches on a file error and only ejecting the tape clears it.
const (
	ModeClosed Mode = iota
	ModeReading
	ModeWriting
	ModeFailed
)

func (m Mode) String() string {
	switch m {
	case ModeReading:
		return "reading"
	case ModeWriting:
		return "writing"
	case ModeFailed:
		return "failed"
	}
	return "closed"
}

// Sentinal errors returned by the Deck type.
const (
	NoTape        = "cassette: no tape inserted"
	UnknownFormat = "cassette: unknown format: %v"
)

// Deck is the cassette recorder. The CPU drives it entirely through port
// 0xff, the emulation's control surfaces through the exported functions.
type Deck struct {
	env *environment.Environment

	media  *media
	format Format

	mode  Mode
	motor bool
	speed Speed

	// output level most recently written by the CPU
	level uint8

	// the read flipflop latches on pulse rises and is reset by CPU writes
	// while reading
	flipflop bool

	rd reader
	wr writer

	// cycle clock and the timestamps measured against it
	now            int64
	lastTransition int64
	firstRead      int64

	// CPU writes that changed the output level since motor start. reads
	// only put the deck into ModeReading while this is less than two
	transitions int

	detectArmed  bool
	noTapeWarned bool
}

// NewDeck is the preferred method of initialisation for the Deck type.
func NewDeck(env *environment.Environment) *Deck {
	return &Deck{
		env:   env,
		speed: Baud500,
	}
}

// Insert loads the named file as the new tape, ejecting any tape already in
// the deck. A file that does not exist yet is a blank tape. The head is
// placed at offset, clamped to the tape length.
func (dk *Deck) Insert(filename string, format Format, offset int) error {
	if dk.media != nil {
		err := dk.Eject()
		if err != nil {
			return err
		}
	}

	m, err := loadMedia(filename)
	if err != nil {
		return err
	}
	m.seek(offset)

	dk.media = m
	dk.format = format
	dk.mode = ModeClosed
	dk.rd.end()

	logger.Logf(dk.env, "cassette", "inserted %s (%s, %d bytes, head at %d)",
		filename, format, len(m.buffer), m.head)

	return nil
}

// Eject removes the tape, saving any recording still in flight. A deck in
// ModeFailed gives up on the unsaved recording and ejects cleanly.
func (dk *Deck) Eject() error {
	if dk.media == nil {
		return nil
	}

	if dk.mode == ModeFailed {
		dk.media = nil
		dk.mode = ModeClosed
		logger.Log(dk.env, "cassette", "ejected failed tape, recording lost")
		return nil
	}

	if dk.mode == ModeWriting {
		dk.wr.flush(dk.level, dk.now-dk.lastTransition, dk.format, dk.media)
		err := dk.media.save()
		if err != nil {
			dk.fail(err)
			return err
		}
	}

	logger.Logf(dk.env, "cassette", "ejected %s", dk.media.path)
	dk.media = nil
	dk.mode = ModeClosed
	dk.rd.end()

	return nil
}

// Erase empties the tape and truncates the backing file.
func (dk *Deck) Erase() error {
	if dk.media == nil {
		return curated.Errorf(NoTape)
	}

	dk.rd.end()
	if dk.mode != ModeFailed {
		dk.mode = ModeClosed
	}

	dk.media.erase()
	err := dk.media.save()
	if err != nil {
		dk.fail(err)
		return err
	}

	dk.mode = ModeClosed
	logger.Logf(dk.env, "cassette", "erased %s", dk.media.path)

	return nil
}

// Seek moves the tape head, clamped to the tape length. Seeking while the
// deck is reading restarts the pulse train from the new position.
func (dk *Deck) Seek(pos int) error {
	if dk.media == nil {
		return curated.Errorf(NoTape)
	}

	dk.media.seek(pos)
	if dk.mode == ModeReading {
		dk.rd.end()
		dk.mode = ModeClosed
	}

	return nil
}

// Rewind returns the tape head to the start.
func (dk *Deck) Rewind() error {
	return dk.Seek(0)
}

// Inserted is true when a tape is in the deck.
func (dk *Deck) Inserted() bool {
	return dk.media != nil
}

// Path of the file backing the tape. Empty when no tape is inserted.
func (dk *Deck) Path() string {
	if dk.media == nil {
		return ""
	}
	return dk.media.path
}

// Format of the inserted tape.
func (dk *Deck) Format() Format {
	return dk.format
}

// Head returns the tape head position.
func (dk *Deck) Head() int {
	if dk.media == nil {
		return 0
	}
	return dk.media.head
}

// Len returns the tape length in bytes.
func (dk *Deck) Len() int {
	if dk.media == nil {
		return 0
	}
	return len(dk.media.buffer)
}

// Mode the deck is currently in.
func (dk *Deck) Mode() Mode {
	return dk.mode
}

// Motor is true when the CPU has switched the cassette relay on.
func (dk *Deck) Motor() bool {
	return dk.motor
}

// Speed the read side is running at.
func (dk *Deck) Speed() Speed {
	return dk.speed
}

func (dk *Deck) String() string {
	if dk.media == nil {
		return "no tape"
	}
	motor := "off"
	if dk.motor {
		motor = "on"
	}
	return fmt.Sprintf("%s (%s) head %d/%d motor %s %s",
		dk.media.path, dk.format, dk.media.head, len(dk.media.buffer), motor, dk.mode)
}

// PortWrite handles a CPU write to port 0xff. Bits 0 and 1 are the output
// level, bit 2 the motor relay.
func (dk *Deck) PortWrite(data uint8) {
	// the fourth encoding of the level field drives the same high output
	// as 2. normalising here keeps the writer and the recorded formats in
	// the three level domain
	level := data & 0x03
	if level == 3 {
		level = 2
	}
	motor := data&0x04 == 0x04

	if motor != dk.motor {
		if motor {
			dk.motorOn()
		} else {
			dk.motorOff()
		}
	}

	if motor && level != dk.level {
		dk.transitions++

		switch dk.mode {
		case ModeReading:
			// the ROM read routines pulse the level to rearm the flipflop.
			// the deck stays in ModeReading
			dk.flipflop = false

		case ModeClosed:
			if dk.media == nil {
				if !dk.noTapeWarned {
					logger.Log(dk.env, "cassette", "recording with no tape inserted")
					dk.noTapeWarned = true
				}
			} else {
				dk.mode = ModeWriting
				dk.wr.begin()
				dk.notify(notifications.NotifyCassetteWriting)
				logger.Logf(dk.env, "cassette", "recording from position %d", dk.media.head)
			}
		}

		if dk.mode == ModeWriting {
			dk.wr.transition(dk.level, level, dk.now-dk.lastTransition, dk.format, dk.media)
		}
		dk.lastTransition = dk.now
	}

	dk.level = level
}

// PortRead handles a CPU read from port 0xff. The returned value is 0xff
// when the read flipflop is set and 0x7f when it is clear. Masking for the
// 32 column video mode is the memory bus's business, not the deck's.
func (dk *Deck) PortRead() uint8 {
	if dk.motor {
		if dk.detectArmed {
			if dk.firstRead < 0 {
				dk.firstRead = dk.now
			} else {
				if float64(dk.now-dk.firstRead) > speedDetectUs*clocks.CyclesPerMicrosecond {
					dk.speed = Baud250
				} else {
					dk.speed = Baud500
				}
				dk.rd.speed = dk.speed
				dk.detectArmed = false
				logger.Logf(dk.env, "cassette", "detected %s read routine", dk.speed)
			}
		}

		if dk.mode == ModeClosed && dk.transitions < 2 {
			if dk.media == nil {
				if !dk.noTapeWarned {
					logger.Log(dk.env, "cassette", "reading with no tape inserted")
					dk.noTapeWarned = true
				}
			} else {
				dk.mode = ModeReading
				dk.rd.begin(dk.format, dk.speed)
				dk.notify(notifications.NotifyCassetteReading)
				logger.Logf(dk.env, "cassette", "playing from position %d", dk.media.head)
			}
		}
	}

	if dk.flipflop {
		return 0xff
	}
	return 0x7f
}

// Tick advances the deck by the given number of CPU cycles.
func (dk *Deck) Tick(cycles int) {
	dk.now += int64(cycles)

	if dk.mode == ModeReading && dk.motor && dk.media != nil {
		if dk.rd.tick(cycles, dk.media) > 0 {
			dk.flipflop = true
		}
	}
}

// PowerOff flushes any recording in flight, as though the motor relay had
// dropped out.
func (dk *Deck) PowerOff() {
	if dk.motor {
		dk.motorOff()
	}
}

// Reset the deck as part of a machine reset. The tape stays inserted and
// the head stays where it is.
func (dk *Deck) Reset() {
	dk.PowerOff()
	dk.level = 0x00
	dk.flipflop = false
}

func (dk *Deck) motorOn() {
	dk.motor = true
	dk.transitions = 0
	dk.detectArmed = true
	dk.firstRead = -1
	dk.lastTransition = dk.now
	dk.noTapeWarned = false

	dk.notify(notifications.NotifyCassetteMotorOn)
	logger.Logf(dk.env, "cassette", "motor on at position %d", dk.Head())
}

func (dk *Deck) motorOff() {
	dk.motor = false

	switch dk.mode {
	case ModeWriting:
		dk.wr.flush(dk.level, dk.now-dk.lastTransition, dk.format, dk.media)
		err := dk.media.save()
		if err != nil {
			dk.fail(err)
		} else {
			dk.mode = ModeClosed
		}

	case ModeReading:
		dk.rd.end()
		dk.mode = ModeClosed
	}

	dk.notify(notifications.NotifyCassetteMotorOff)
	logger.Logf(dk.env, "cassette", "motor off at position %d", dk.Head())
}

// fail latches the deck into ModeFailed.
func (dk *Deck) fail(err error) {
	dk.mode = ModeFailed
	logger.Logf(dk.env, "cassette", "%v", err)
	dk.notify(notifications.NotifyCassetteFailed)
}

func (dk *Deck) notify(n notifications.Notice) {
	err := dk.env.Notify.Notify(n)
	if err != nil {
		logger.Logf(dk.env, "cassette", "%v", err)
	}
}
