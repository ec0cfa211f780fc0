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

package emulator

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jetsetilly/gopher80/environment"
	"github.com/jetsetilly/gopher80/hardware/cassette"
	"github.com/jetsetilly/gopher80/hardware/clocks"
	"github.com/jetsetilly/gopher80/hardware/keyboard"
	"github.com/jetsetilly/gopher80/hardware/video"
	"github.com/jetsetilly/gopher80/resources"
	"github.com/jetsetilly/gopher80/test"
)

// scriptClock advances only when the loop sleeps. Stepping the machine
// therefore takes no scripted time at all, which makes every frame's
// measured duration exactly the minimum sleep.
type scriptClock struct {
	t int64
}

func (c *scriptClock) now() int64 {
	return c.t
}

func (c *scriptClock) sleep(ns int64) {
	c.t += ns
}

func newTestEmulator(t *testing.T) *Emulator {
	t.Helper()
	resources.SetBase(t.TempDir())
	env, err := environment.NewEnvironment("test", nil, nil)
	test.DemandSuccess(t, err)
	emu, err := New(env)
	test.DemandSuccess(t, err)
	emu.clk = &scriptClock{}
	return emu
}

func TestCyclePacing(t *testing.T) {
	emu := newTestEmulator(t)

	const frames = 120
	for i := 0; i < frames; i++ {
		emu.frame()
	}

	// with the scripted clock every frame measures exactly the minimum
	// sleep. the first frame owes nothing because there is no previous
	// frame to pay for
	owedNs := int64(frames-1) * (frameNs / 3)
	expected := owedNs * clocks.CPUClock / nsPerSecond
	executed := expected - emu.balance

	// the machine runs until the debt is paid and the overshoot is carried,
	// so the cycles executed never lag the wall time and never lead it by
	// more than one instruction
	test.ExpectEquality(t, executed >= expected, true)
	test.ExpectEquality(t, executed-expected < 64, true)
}

func TestPauseDiscardsDebt(t *testing.T) {
	emu := newTestEmulator(t)

	emu.frame()
	emu.frame()

	emu.Commands <- Command{Op: Pause, Pause: PauseSet}
	emu.frame()

	s := <-emu.Status
	test.ExpectEquality(t, string(s.Kind), string(StatusPause))
	test.ExpectEquality(t, s.On, true)

	// a paused machine owes nothing. without this an unpause would sprint
	// through the backlog
	test.ExpectEquality(t, emu.balance, 0)

	emu.Commands <- Command{Op: Pause, Pause: PauseClear}
	emu.frame()

	s = <-emu.Status
	test.ExpectEquality(t, string(s.Kind), string(StatusPause))
	test.ExpectEquality(t, s.On, false)
}

func TestHaltReporting(t *testing.T) {
	emu := newTestEmulator(t)

	// with no ROM images configured the machine runs the stub program,
	// which prints its banner and halts. ten frames is ample
	for i := 0; i < 10; i++ {
		emu.frame()
	}

	s := <-emu.Status
	test.ExpectEquality(t, string(s.Kind), string(StatusHalted))
	test.ExpectEquality(t, s.On, true)

	// the non-maskable interrupt brings the CPU out of the halt even
	// though the stub program disabled interrupts
	emu.Commands <- Command{Op: NMI}
	emu.frame()

	s = <-emu.Status
	test.ExpectEquality(t, string(s.Kind), string(StatusHalted))
	test.ExpectEquality(t, s.On, false)
}

func TestPowerStatus(t *testing.T) {
	emu := newTestEmulator(t)

	emu.Commands <- Command{Op: PowerOff}
	emu.frame()

	s := <-emu.Status
	test.ExpectEquality(t, string(s.Kind), string(StatusPower))
	test.ExpectEquality(t, s.On, false)

	// powering off halts the CPU and the transition is reported
	s = <-emu.Status
	test.ExpectEquality(t, string(s.Kind), string(StatusHalted))
	test.ExpectEquality(t, s.On, true)

	emu.Commands <- Command{Op: PowerOn}
	emu.frame()

	s = <-emu.Status
	test.ExpectEquality(t, string(s.Kind), string(StatusPower))
	test.ExpectEquality(t, s.On, true)

	s = <-emu.Status
	test.ExpectEquality(t, string(s.Kind), string(StatusHalted))
	test.ExpectEquality(t, s.On, false)
}

func TestTerminate(t *testing.T) {
	emu := newTestEmulator(t)

	// the command is queued before Run so the loop ends on its first
	// iteration and Run can be called from the test goroutine
	emu.Commands <- Command{Op: Terminate}
	emu.Run()

	s := <-emu.Status
	test.ExpectEquality(t, string(s.Kind), string(StatusDestroyed))

	dc := <-emu.Display
	test.ExpectEquality(t, string(dc.Op), string(DisplayTerminate))
}

func TestKeyRouting(t *testing.T) {
	emu := newTestEmulator(t)

	emu.Keys <- keyboard.Event{Row: 2, Mask: 0x08, Pressed: true}

	// the first frame moves the event to the matrix queue but owes no
	// cycles, so the matrix only changes on the second
	emu.frame()
	emu.frame()

	test.ExpectEquality(t, emu.trs.Mem.Keyboard.Read(0x04), 0x08)
}

func TestConfigChange(t *testing.T) {
	emu := newTestEmulator(t)

	test.ExpectEquality(t, emu.trs.Mem.RAM.Size(), 16384)

	emu.Commands <- Command{Op: ConfigChange, Key: "ram_size", Value: "32768"}
	emu.frame()

	test.ExpectEquality(t, emu.trs.Mem.RAM.Size(), 32768)

	// the store holds the canonical form of the value
	v, err := emu.env.Config.Get("ram_size")
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, v, "32K")
}

func TestDisplayRouting(t *testing.T) {
	emu := newTestEmulator(t)

	emu.Commands <- Command{Op: ConfigChange, Key: "fg_color", Value: "#ff0000"}
	emu.frame()

	// options the front-end renders with are forwarded so it can reload
	// them at a safe moment
	dc := <-emu.Display
	test.ExpectEquality(t, string(dc.Op), string(DisplayConfigChanged))
	test.ExpectEquality(t, dc.Key, "fg_color")
}

func TestRestore(t *testing.T) {
	emu := newTestEmulator(t)
	old := emu.trs

	emu.trs.Mem.RAM.Write(0x0000, 0xde)

	emu.Commands <- Command{Op: Restore}
	emu.frame()

	// a new machine, built from the store, with untouched RAM
	test.ExpectEquality(t, emu.trs != old, true)
	test.ExpectEquality(t, emu.trs.Mem.RAM.Read(0x0000), 0x00)
	test.ExpectEquality(t, emu.powered, true)

	s := <-emu.Status
	test.ExpectEquality(t, string(s.Kind), string(StatusMessage))
	test.ExpectEquality(t, s.Message, "machine restored")
}

func TestFrameDisplacement(t *testing.T) {
	emu := newTestEmulator(t)

	for i := 1; i <= FrameQueueCap+2; i++ {
		emu.NewFrame(video.Frame{Num: i})
	}

	// the oldest frames were displaced to make room for the newest
	f := <-emu.Frames
	test.ExpectEquality(t, f.Num, 3)

	for len(emu.Frames) > 0 {
		f = <-emu.Frames
	}
	test.ExpectEquality(t, f.Num, FrameQueueCap+2)
}

func TestTapePositionPersistence(t *testing.T) {
	emu := newTestEmulator(t)

	path := filepath.Join(t.TempDir(), "flight.cas")
	err := os.WriteFile(path, []byte{0x55, 0x55, 0x55}, 0600)
	test.DemandSuccess(t, err)

	emu.Commands <- Command{Op: TapeInsert, Path: path, Format: cassette.CAS}
	emu.Commands <- Command{Op: TapeSeek, N: 2}
	emu.frame()

	// spin the motor relay and drop it again. the loop notices the stop
	// and persists the head position, so the next session resumes there
	emu.trs.Mem.Cassette.PortWrite(0x04)
	emu.trs.Mem.Cassette.PortWrite(0x00)
	emu.frame()

	v, err := emu.env.Config.Get("cassette_file_offset")
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, v, "2")

	// inserting a different tape forgets the position
	other := filepath.Join(t.TempDir(), "other.cas")
	err = os.WriteFile(other, []byte{0xaa}, 0600)
	test.DemandSuccess(t, err)

	emu.Commands <- Command{Op: TapeInsert, Path: other, Format: cassette.CAS}
	emu.frame()

	v, err = emu.env.Config.Get("cassette_file_offset")
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, v, "0")
}

func TestTapePositionAtMotorStop(t *testing.T) {
	emu := newTestEmulator(t)

	path := filepath.Join(t.TempDir(), "flight.cas")
	err := os.WriteFile(path, []byte{0x55, 0x55, 0x55}, 0600)
	test.DemandSuccess(t, err)

	emu.Commands <- Command{Op: TapeInsert, Path: path, Format: cassette.CAS}
	emu.Commands <- Command{Op: TapeSeek, N: 2}
	emu.frame()

	// the head can move again between the motor stop and the end of the
	// frame. the position persisted is the one at the moment of the stop
	emu.trs.Mem.Cassette.PortWrite(0x04)
	emu.trs.Mem.Cassette.PortWrite(0x00)
	err = emu.trs.Mem.Cassette.Seek(3)
	test.DemandSuccess(t, err)
	emu.frame()

	v, err := emu.env.Config.Get("cassette_file_offset")
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, v, "2")
}
