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

// Package easyterm is a wrapper for "github.com/pkg/term/termios". It
// provides the ability to flip between canonical and raw input modes and a
// buffered print function. Embed the EasyTerm type to get the helper
// functions.
package easyterm

import (
	"bufio"
	"os"

	"github.com/pkg/term/termios"
	"golang.org/x/sys/unix"
)

// EasyTerm is the base terminal type. Initialise() must be called before the
// terminal mode functions are used.
type EasyTerm struct {
	input  *os.File
	output *bufio.Writer

	canAttr unix.Termios
	rawAttr unix.Termios
}

// Initialise the terminal, recording the current terminal attributes so
// that they can be restored by CleanUp(). Fails if the input file is not a
// terminal.
func (et *EasyTerm) Initialise(input, output *os.File) error {
	et.input = input
	et.output = bufio.NewWriter(output)

	if err := termios.Tcgetattr(input.Fd(), &et.canAttr); err != nil {
		return err
	}

	// raw mode delivers every rune as it is typed, without echo. output
	// post-processing is kept as it was so that a newline still implies a
	// carriage return
	et.rawAttr = et.canAttr
	termios.Cfmakeraw(&et.rawAttr)
	et.rawAttr.Oflag = et.canAttr.Oflag

	return nil
}

// CleanUp restores the terminal to the state recorded by Initialise().
func (et *EasyTerm) CleanUp() {
	_ = et.Flush()
	_ = et.CanonicalMode()
}

// RawMode puts the terminal into raw mode.
func (et *EasyTerm) RawMode() error {
	return termios.Tcsetattr(et.input.Fd(), termios.TCSAFLUSH, &et.rawAttr)
}

// CanonicalMode puts the terminal into normal, line-buffered mode.
func (et *EasyTerm) CanonicalMode() error {
	return termios.Tcsetattr(et.input.Fd(), termios.TCSAFLUSH, &et.canAttr)
}

// TermPrint writes the string to the terminal's output buffer. Nothing
// reaches the terminal until Flush() is called.
func (et *EasyTerm) TermPrint(s string) {
	_, _ = et.output.WriteString(s)
}

// Flush the accumulated output to the terminal.
func (et *EasyTerm) Flush() error {
	return et.output.Flush()
}
