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

// Package logger is the central log for the entire application. There is only
// one log and it can be accessed through the package level functions.
//
// Log entries are made with Log() and Logf(). Consecutive entries with the
// same tag and detail are collapsed into a single entry with a repeat count.
//
// The log is deliberately small. It is intended to hold the most recent
// entries only, with older entries being lost as new entries arrive. The
// control terminal can echo new entries as they arrive with SetEcho() and
// SetEchoFilter().
//
// The logger is safe for concurrent use. It is the only piece of mutable
// state shared between the emulator's threads.
package logger
