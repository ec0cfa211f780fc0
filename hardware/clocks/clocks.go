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

// Package clocks defines the constant values that describe the speed of the
// console.
//
// The master oscillator in the machine runs at 10.6445MHz. The Z80 clock is
// the master clock divided by six. The other constants in the package are
// derived from the Z80 clock and the refresh rate of the video circuit.
package clocks

// Z80 clock measured in cycles per second.
const CPUClock = 1774080

// CyclesPerMicrosecond is useful when working with the cassette circuit,
// which deals in microsecond measurements.
const CyclesPerMicrosecond = float64(CPUClock) / 1e6

// NanosecondsPerCycle is the length of a single Z80 cycle. Used when pacing
// the emulation against a wall clock.
const NanosecondsPerCycle = 1e9 / float64(CPUClock)

// The video circuit produces frames at a fixed rate, irrespective of what the
// CPU is doing.
const FramesPerSecond = 60

// CyclesPerFrame is the number of Z80 cycles in a single video frame.
const CyclesPerFrame = CPUClock / FramesPerSecond
