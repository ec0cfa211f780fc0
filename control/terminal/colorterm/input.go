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

package colorterm

import (
	"bufio"
	"io"
	"unicode"
	"unicode/utf8"

	"github.com/jetsetilly/gopher80/control/terminal"
	"github.com/jetsetilly/gopher80/control/terminal/colorterm/easyterm"
	"github.com/jetsetilly/gopher80/control/terminal/colorterm/easyterm/ansi"
	"github.com/jetsetilly/gopher80/curated"
)

// readRune is the result of a single call to ReadRune().
type readRune struct {
	r   rune
	err error
}

// runeReader decouples reading from stdin from the TermRead() select loop.
type runeReader chan readRune

func initRuneReader(in io.Reader) runeReader {
	b := bufio.NewReader(in)
	ch := make(runeReader)

	go func() {
		for {
			r, _, err := b.ReadRune()
			ch <- readRune{r: r, err: err}
			if err != nil {
				return
			}
		}
	}()

	return ch
}

// redrawInput repaints the whole of the input line, leaving the terminal
// cursor at the logical cursor position.
func (ct *ColorTerminal) redrawInput(prompt terminal.Prompt, input []rune, cursor int) {
	ct.EasyTerm.TermPrint("\r")
	ct.EasyTerm.TermPrint(ansi.ClearLine)
	ct.EasyTerm.TermPrint(ansi.PenStyles["bold"])
	ct.EasyTerm.TermPrint(prompt.String())
	ct.EasyTerm.TermPrint(ansi.NormalPen)
	ct.EasyTerm.TermPrint(string(input))
	ct.EasyTerm.TermPrint(ansi.CursorMove(cursor - len(input)))
	_ = ct.EasyTerm.Flush()
}

// TermRead implements the terminal.Input interface.
func (ct *ColorTerminal) TermRead(buffer []byte, prompt terminal.Prompt, events *terminal.ReadEvents) (int, error) {
	if events == nil {
		events = &terminal.ReadEvents{}
	}

	if err := ct.EasyTerm.RawMode(); err != nil {
		return 0, err
	}
	defer func() {
		_ = ct.EasyTerm.CanonicalMode()
	}()

	input := make([]rune, 0, len(buffer))
	cursor := 0

	// the byte length of the input line. never allowed to exceed the
	// caller's buffer
	length := 0

	// history browsing. the pending line is stashed on the first step back
	// so that it survives a round trip through the history
	history := len(ct.commandHistory)
	var stashed []rune

	for {
		ct.redrawInput(prompt, input, cursor)

		select {
		case rr := <-ct.reader:
			if rr.err != nil {
				ct.EasyTerm.TermPrint("\n")
				_ = ct.EasyTerm.Flush()
				return 0, rr.err
			}

			r := rr.r

			// any key other than tab ends a completion cycle
			if r != easyterm.KeyTab && ct.tabCompletion != nil {
				ct.tabCompletion.Reset()
			}

			switch r {
			case easyterm.KeyInterrupt:
				ct.EasyTerm.TermPrint("\n")
				_ = ct.EasyTerm.Flush()
				return 0, curated.Errorf(terminal.UserInterrupt)

			case easyterm.KeySuspend:
				_ = ct.EasyTerm.CanonicalMode()
				easyterm.SuspendProcess()
				_ = ct.EasyTerm.RawMode()

			case easyterm.KeyTab:
				if ct.tabCompletion != nil {
					s := ct.tabCompletion.Complete(string(input))
					if len(s) <= len(buffer) {
						input = []rune(s)
						cursor = len(input)
						length = len(s)
					}
				}

			case easyterm.KeyCarriageReturn:
				ct.EasyTerm.TermPrint("\n")
				_ = ct.EasyTerm.Flush()

				if len(input) == 0 {
					return 0, nil
				}

				// a repeat of the most recent history entry is not added
				s := string(input)
				if len(ct.commandHistory) == 0 || s != string(ct.commandHistory[len(ct.commandHistory)-1].input) {
					ct.commandHistory = append(ct.commandHistory, command{input: []byte(s)})
				}

				return copy(buffer, s), nil

			case easyterm.KeyEsc:
				rr := <-ct.reader
				if rr.err != nil {
					return 0, rr.err
				}
				if rr.r != easyterm.EscCursor {
					break
				}

				rr = <-ct.reader
				if rr.err != nil {
					return 0, rr.err
				}

				switch rr.r {
				case easyterm.CursorUp:
					if history > 0 {
						if history == len(ct.commandHistory) {
							stashed = input
						}
						history--
						input = []rune(string(ct.commandHistory[history].input))
						cursor = len(input)
						length = len(ct.commandHistory[history].input)
					}

				case easyterm.CursorDown:
					if history < len(ct.commandHistory) {
						history++
						if history == len(ct.commandHistory) {
							input = stashed
						} else {
							input = []rune(string(ct.commandHistory[history].input))
						}
						cursor = len(input)
						length = len(string(input))
					}

				case easyterm.CursorForward:
					if cursor < len(input) {
						cursor++
					}

				case easyterm.CursorBackward:
					if cursor > 0 {
						cursor--
					}

				case easyterm.EscHome:
					cursor = 0

				case easyterm.EscEnd:
					cursor = len(input)

				case easyterm.EscDelete:
					// the sequence ends with a tilde
					rr = <-ct.reader
					if rr.err != nil {
						return 0, rr.err
					}
					if cursor < len(input) {
						input = deleteRune(input, cursor)
						length = len(string(input))
						history = len(ct.commandHistory)
					}
				}

			case easyterm.KeyBackspace, easyterm.KeyDel:
				if cursor > 0 {
					input = deleteRune(input, cursor-1)
					cursor--
					length = len(string(input))
					history = len(ct.commandHistory)
				}

			default:
				if unicode.IsPrint(r) && length+utf8.RuneLen(r) <= len(buffer) {
					input = insertRune(input, cursor, r)
					cursor++
					length += utf8.RuneLen(r)
					history = len(ct.commandHistory)
				}
			}

		case st, ok := <-events.Status:
			if !ok {
				panic("channel disconnect")
			}
			if err := events.StatusHandler(st); err != nil {
				return 0, err
			}

		case s := <-events.Log:
			events.LogHandler(s)

		case sig := <-events.Signal:
			if err := events.SignalHandler(sig); err != nil {
				return 0, err
			}
		}
	}
}

// insertRune and deleteRune build a new slice. editing never aliases a
// history entry or the stashed line.

func insertRune(input []rune, pos int, r rune) []rune {
	in := make([]rune, 0, len(input)+1)
	in = append(in, input[:pos]...)
	in = append(in, r)
	in = append(in, input[pos:]...)
	return in
}

func deleteRune(input []rune, pos int) []rune {
	in := make([]rune, 0, len(input)-1)
	in = append(in, input[:pos]...)
	in = append(in, input[pos+1:]...)
	return in
}
