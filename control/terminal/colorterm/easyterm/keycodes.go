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

package easyterm

// List of ASCII codes for non-alphanumeric characters. Terminals disagree
// about the backspace key, it arrives as either KeyBackspace or KeyDel.
const (
	KeyInterrupt      = 3
	KeyBackspace      = 8
	KeyTab            = 9
	KeyCarriageReturn = 13
	KeySuspend        = 26
	KeyEsc            = 27
	KeyDel            = 127
)

// List of ASCII codes for characters that can follow KeyEsc.
const (
	EscCursor = '['
)

// List of ASCII codes for characters that can follow EscCursor.
const (
	CursorUp       = 'A'
	CursorDown     = 'B'
	CursorForward  = 'C'
	CursorBackward = 'D'
	EscEnd         = 'F'
	EscHome        = 'H'
	EscDelete      = '3'
)
