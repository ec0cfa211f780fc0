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

package video

import (
	"github.com/jetsetilly/gopher80/environment"
	"github.com/jetsetilly/gopher80/hardware/clocks"
)

// Size of the video memory and the character layout it represents.
const (
	Cols     = 64
	Rows     = 16
	NumCells = Cols * Rows
)

// Frame is an immutable copy of the video memory at the moment the frame
// budget was reached. It is safe to hand a Frame to another goroutine.
type Frame struct {
	Cells [NumCells]uint8

	// true when the 32 column mode has been selected through the port. in
	// this mode only the even cells are displayed, double width
	Wide bool

	// count of frames since power on
	Num int
}

// FrameReceiver implementations accept completed frames from the video
// device. The receiver must not block; it is called on the emulation
// goroutine.
type FrameReceiver interface {
	NewFrame(frame Frame)
}

// Video is the video memory device. The running program writes character
// cells through the memory mapped window; every frame's worth of CPU cycles
// the device snapshots the cells and pushes them to the attached receivers.
type Video struct {
	env *environment.Environment

	cells [NumCells]uint8

	// port selected display mode
	wide bool

	// true when the lowercase modification is fitted. without the mod, bit 6
	// of a written byte is synthesised from bits 5 and 7, reproducing the
	// unmodified hardware's inability to store lowercase
	lowercaseMod bool

	// cycles accumulated towards the next frame
	accumulated int

	frameNum  int
	receivers []FrameReceiver
}

// NewVideo is the preferred method of initialisation for the Video type.
func NewVideo(env *environment.Environment) *Video {
	return &Video{
		env:          env,
		lowercaseMod: env.Config.LowercaseMod.Get().(bool),
	}
}

// AddReceiver attaches a receiver for completed frames.
func (vid *Video) AddReceiver(r FrameReceiver) {
	vid.receivers = append(vid.receivers, r)
}

// Reset clears the video memory and returns the device to the 64 column
// mode.
func (vid *Video) Reset() {
	for i := range vid.cells {
		vid.cells[i] = 0x00
	}
	vid.wide = false
	vid.accumulated = 0
}

// Read returns the byte stored in a cell. Note that this is the byte as
// stored, after any write transformation.
func (vid *Video) Read(idx uint16) uint8 {
	return vid.cells[idx&(NumCells-1)]
}

// Write stores a byte in a cell. Without the lowercase mod the hardware has
// no bit 6 of its own; it wires the bit to the NOR of bits 5 and 7. The
// transformation happens here, at write time, so readback sees what the
// hardware would really store.
func (vid *Video) Write(idx uint16, data uint8) {
	if !vid.lowercaseMod {
		if data&0xa0 == 0x00 {
			data |= 0x40
		} else {
			data &^= 0x40
		}
	}
	vid.cells[idx&(NumCells-1)] = data
}

// SetWide selects between the 32 and 64 column display modes. Wired to bit
// 3 of the port.
func (vid *Video) SetWide(wide bool) {
	vid.wide = wide
}

// Wide returns true if the 32 column mode is selected.
func (vid *Video) Wide() bool {
	return vid.wide
}

// SetLowercaseMod changes whether the lowercase modification is fitted.
// Affects future writes only; cells already written keep their stored
// value.
func (vid *Video) SetLowercaseMod(on bool) {
	vid.lowercaseMod = on
}

// FrameNum returns the number of frames produced since the machine was
// created.
func (vid *Video) FrameNum() int {
	return vid.frameNum
}

// Tick advances the device by the number of CPU cycles just executed. Each
// time the accumulated cycles cross the frame budget a snapshot of the
// cells is pushed to the receivers.
func (vid *Video) Tick(cycles int) {
	vid.accumulated += cycles

	for vid.accumulated >= clocks.CyclesPerFrame {
		vid.accumulated -= clocks.CyclesPerFrame
		vid.frameNum++

		f := Frame{
			Cells: vid.cells,
			Wide:  vid.wide,
			Num:   vid.frameNum,
		}
		for _, r := range vid.receivers {
			r.NewFrame(f)
		}
	}
}
