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

// Package terminal defines the operations required for command line
// interaction with the emulator.
//
// For flexibility, terminal interaction happens through the Input and Output
// interfaces. The Terminal interface combines the two and adds housekeeping
// functions. Implementations of Terminal can be found in the colorterm and
// plainterm packages.
package terminal

import (
	"os"

	"github.com/jetsetilly/gopher80/emulator"
)

// Sentinal errors controlling how a TermRead() fails.
const (
	// the user has requested the current operation be interrupted. for
	// example, by pressing ctrl-c.
	UserInterrupt = "user interrupt"
)

// Input defines the operations required by an interface that allows input.
type Input interface {
	// TermRead will return the number of characters inserted into the buffer,
	// or an error.
	//
	// A TermRead implementation must process the channels in the ReadEvents
	// argument while waiting for input. Event handler errors are returned to
	// the caller without modification.
	TermRead(buffer []byte, prompt Prompt, events *ReadEvents) (int, error)

	// IsInteractive returns true if the terminal is connected to a user
	// rather than, say, a pipe or a redirected file.
	IsInteractive() bool
}

// ReadEvents lists the events that can interrupt a TermRead().
//
// Only the channels used by the front end need be set. A nil channel is never
// selected and so is effectively ignored.
type ReadEvents struct {
	// status updates from the emulation loop. the handler runs on the
	// terminal goroutine so it is safe for it to print
	Status        <-chan emulator.Status
	StatusHandler func(emulator.Status) error

	// log entries echoed by the logger package arrive over a channel because
	// the logger calls its echo writer from whichever goroutine logged
	Log        chan string
	LogHandler func(s string)

	// encapsulated operating system signals
	Signal        chan os.Signal
	SignalHandler func(sig os.Signal) error
}

// Output defines the operations required by an interface that allows output.
type Output interface {
	TermPrintLine(Style, string)
}

// Terminal defines the operations required by the control loop. The
// combination of the Input and Output interfaces.
type Terminal interface {
	Input
	Output

	// Initialise the terminal. for example, prepare the terminal for raw
	// input mode
	Initialise() error

	// restore the terminal to its condition before Initialise()
	CleanUp()

	// register a tab completion implementation to use with the terminal
	RegisterTabCompletion(TabCompletion)
}

// TabCompletion defines the operations required for tab completion in an
// implementation of the Terminal interface.
type TabCompletion interface {
	Complete(input string) string
	Reset()
}
