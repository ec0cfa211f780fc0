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

package video_test

import (
	"testing"

	"github.com/jetsetilly/gopher80/environment"
	"github.com/jetsetilly/gopher80/hardware/clocks"
	"github.com/jetsetilly/gopher80/hardware/video"
	"github.com/jetsetilly/gopher80/resources"
	"github.com/jetsetilly/gopher80/test"
)

func newTestEnv(t *testing.T) *environment.Environment {
	t.Helper()
	resources.SetBase(t.TempDir())
	env, err := environment.NewEnvironment("test", nil, nil)
	test.DemandSuccess(t, err)
	return env
}

// capture accumulates every frame pushed by the video device.
type capture struct {
	frames []video.Frame
}

func (c *capture) NewFrame(frame video.Frame) {
	c.frames = append(c.frames, frame)
}

func TestLowercaseSynthesis(t *testing.T) {
	vid := video.NewVideo(newTestEnv(t))

	// without the mod, bit 6 is the NOR of bits 5 and 7
	vid.Write(0x000, 0x61) // 'a'
	test.ExpectEquality(t, vid.Read(0x000), 0x21)

	vid.Write(0x001, 0x01)
	test.ExpectEquality(t, vid.Read(0x001), 0x41)

	vid.Write(0x002, 0x41) // 'A' stores as itself
	test.ExpectEquality(t, vid.Read(0x002), 0x41)

	vid.Write(0x003, 0x20) // space stores as itself
	test.ExpectEquality(t, vid.Read(0x003), 0x20)

	vid.Write(0x004, 0xe1)
	test.ExpectEquality(t, vid.Read(0x004), 0xa1)

	// with the mod fitted bytes store verbatim
	vid.SetLowercaseMod(true)
	vid.Write(0x005, 0x61)
	test.ExpectEquality(t, vid.Read(0x005), 0x61)
	vid.Write(0x006, 0x01)
	test.ExpectEquality(t, vid.Read(0x006), 0x01)
}

func TestFrameBudget(t *testing.T) {
	vid := video.NewVideo(newTestEnv(t))
	c := &capture{}
	vid.AddReceiver(c)

	vid.Write(0x123, 0x41)

	// one cycle short of a frame
	vid.Tick(clocks.CyclesPerFrame - 1)
	test.ExpectEquality(t, len(c.frames), 0)

	// crossing the budget pushes a frame carrying the written cell
	vid.Tick(1)
	test.DemandEquality(t, len(c.frames), 1)
	test.ExpectEquality(t, c.frames[0].Num, 1)
	test.ExpectEquality(t, c.frames[0].Cells[0x123], 0x41)
	test.ExpectEquality(t, c.frames[0].Wide, false)

	// the overshoot carries. a frame and a half more gives exactly one
	// additional frame
	vid.Tick(clocks.CyclesPerFrame + clocks.CyclesPerFrame/2)
	test.DemandEquality(t, len(c.frames), 2)
	test.ExpectEquality(t, c.frames[1].Num, 2)

	// and the remaining half frame completes
	vid.Tick(clocks.CyclesPerFrame / 2)
	test.DemandEquality(t, len(c.frames), 3)
}

func TestWideMode(t *testing.T) {
	vid := video.NewVideo(newTestEnv(t))
	c := &capture{}
	vid.AddReceiver(c)

	vid.SetWide(true)
	test.ExpectEquality(t, vid.Wide(), true)

	vid.Tick(clocks.CyclesPerFrame)
	test.DemandEquality(t, len(c.frames), 1)
	test.ExpectEquality(t, c.frames[0].Wide, true)

	// a pushed frame is a snapshot; later writes don't touch it
	vid.Write(0x000, 0x58)
	test.ExpectEquality(t, c.frames[0].Cells[0x000], 0x00)
}
