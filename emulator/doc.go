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

// Package emulator runs the machine. It is the middle of the emulation's
// three threads: the control thread (package control) talks to it with
// Command values and listens with Status values; the front-end (package
// sdlscreen) sends Command and keyboard.Event values and receives
// video.Frame and DisplayCommand values. All of the channels are buffered
// and none of the loop's sends ever block.
//
// The loop paces the machine against the wall clock. Each iteration
// converts the measured duration of the previous iteration into a cycle
// debt, steps the machine until the debt is paid (the overshoot carries),
// and then sleeps briefly. Converting measured time rather than assuming
// the frame rate means the machine runs at the right speed even when the
// host stalls; the one second clamp stops a long stall from turning into
// a sprint.
//
// The loop is also where the machine's notices surface: the tape head
// position is persisted to the configuration store whenever the cassette
// motor stops, and the notices are echoed to the control thread as status
// messages.
package emulator
