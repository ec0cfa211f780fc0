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

// Package control implements the textual control surface of the emulator.
// It runs on its own goroutine, reading commands from a terminal and sending
// them to the emulation loop, and printing the status updates and log
// messages that come back.
//
// The command language is defined as a commandline template in this package
// and parsed by the control/terminal/commandline package. Terminal
// implementations live under control/terminal.
package control
