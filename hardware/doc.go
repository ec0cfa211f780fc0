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

// Package hardware is the base package for the TRS-80 Model I emulation. It
// and its sub-packages contain everything required for a headless
// emulation.
//
// The TRS80 type is the root of the emulation and contains references to
// all the machine's sub-systems. From here the machine can be stepped one
// instruction at a time, or set running continuously with an optional
// callback to check for continuation.
//
// Nothing in this package or its sub-packages knows about frame pacing,
// channels or the terminal. Those live in the emulator and control
// packages, which drive the machine through the functions offered here.
package hardware
