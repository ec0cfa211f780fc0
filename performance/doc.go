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

// Package performance contains helper functions relating to performance.
//
// Check() runs the emulation flat out, with no frame pacing, for a fixed
// duration of time and reports how fast the host can drive the machine
// relative to real Model I speed. It will optionally generate profiling
// information.
//
// RunProfiler() can be used to generate the various profile types. On its
// own it does not limit the amount of time the program runs for, so it is
// useful for more real-world situations.
//
// CalcFPS() calculates frames-per-second in aggregate along with an
// accuracy value as compared to the 60Hz frame clock. Not suitable for
// "live" FPS monitoring.
package performance
