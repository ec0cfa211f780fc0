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

package terminal

import "strings"

// Prompt is the text presented at the start of an input line, along with any
// accumulated emulation state the prompt should communicate.
type Prompt struct {
	Content string

	// the emulation is paused. the prompt says so to explain why the machine
	// is not moving
	Paused bool
}

func (p Prompt) String() string {
	s := strings.Builder{}
	s.WriteString("[ ")
	s.WriteString(p.Content)
	if p.Paused {
		s.WriteString(" (paused)")
	}
	s.WriteString(" ] >> ")
	return s.String()
}
