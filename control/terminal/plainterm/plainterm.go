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

// Package plainterm implements the terminal.Terminal interface for dumb
// terminals. No colour, no line editing, no tab completion. It is the
// fallback when stdin is a pipe or a redirected file rather than a
// terminal.
package plainterm

import (
	"fmt"
	"io"
	"os"

	"github.com/jetsetilly/gopher80/control/terminal"
)

// PlainTerminal implements the terminal.Terminal interface.
type PlainTerminal struct {
	input  io.Reader
	output io.Writer

	// prompts are only printed when input comes from a user rather than a
	// pipe or file
	interactive bool
}

// Initialise the PlainTerminal.
func (pt *PlainTerminal) Initialise() error {
	pt.input = os.Stdin
	pt.output = os.Stdout

	if info, err := os.Stdin.Stat(); err == nil {
		pt.interactive = info.Mode()&os.ModeCharDevice == os.ModeCharDevice
	}

	return nil
}

// CleanUp does nothing for the PlainTerminal.
func (pt *PlainTerminal) CleanUp() {
}

// RegisterTabCompletion does nothing for the PlainTerminal.
func (pt *PlainTerminal) RegisterTabCompletion(terminal.TabCompletion) {
}

// IsInteractive satisfies the terminal.Input interface.
func (pt *PlainTerminal) IsInteractive() bool {
	return pt.interactive
}

// TermPrintLine implements the terminal.Output interface.
func (pt *PlainTerminal) TermPrintLine(style terminal.Style, s string) {
	if style == terminal.StyleError {
		s = fmt.Sprintf("* %s", s)
	}
	fmt.Fprintln(pt.output, s)
}

// TermRead implements the terminal.Input interface. Events that arrived
// while the read was blocked are processed before the input is returned.
func (pt *PlainTerminal) TermRead(buffer []byte, prompt terminal.Prompt, events *terminal.ReadEvents) (int, error) {
	if err := pt.drain(events); err != nil {
		return 0, err
	}

	if pt.interactive {
		fmt.Fprint(pt.output, prompt.String())
	}

	n, err := pt.input.Read(buffer)
	if err != nil {
		return 0, err
	}

	if err := pt.drain(events); err != nil {
		return 0, err
	}

	return n, nil
}

// drain processes any pending events without blocking.
func (pt *PlainTerminal) drain(events *terminal.ReadEvents) error {
	if events == nil {
		return nil
	}

	for {
		select {
		case st, ok := <-events.Status:
			if !ok {
				panic("channel disconnect")
			}
			if err := events.StatusHandler(st); err != nil {
				return err
			}

		case s := <-events.Log:
			events.LogHandler(s)

		case sig := <-events.Signal:
			if err := events.SignalHandler(sig); err != nil {
				return err
			}

		default:
			return nil
		}
	}
}
