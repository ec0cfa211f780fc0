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

// Package ansi defines ANSI control codes for styling terminal output.
package ansi

import "fmt"

// NormalPen is the CSI sequence to return the terminal to its default pen.
const NormalPen = "\033[0m"

// ClearLine is the CSI sequence to clear the entire of the current line.
const ClearLine = "\033[2K"

// CursorStore is the CSI sequence to store the current cursor position.
const CursorStore = "\033[s"

// CursorRestore is the CSI sequence to restore the cursor position to a
// previously stored location.
const CursorRestore = "\033[u"

// CursorForwardOne is the CSI sequence to move the cursor forward one
// character.
const CursorForwardOne = "\033[1C"

// CursorBackwardOne is the CSI sequence to move the cursor backward one
// character.
const CursorBackwardOne = "\033[1D"

// CursorMove returns the CSI sequence to move the cursor n characters
// forward. Negative values of n move the cursor backward.
func CursorMove(n int) string {
	if n < 0 {
		return fmt.Sprintf("\033[%dD", -n)
	} else if n > 0 {
		return fmt.Sprintf("\033[%dC", n)
	}
	return ""
}

// Pens is the set of bright text pens, keyed by color name.
var Pens map[string]string

// DimPens is the set of regular intensity text pens, keyed by color name.
var DimPens map[string]string

// PenStyles is the set of text effects, keyed by style name.
var PenStyles map[string]string

// the SGR color order. regular pens count from 30, bright pens from 90
var colors = []string{"black", "red", "green", "yellow", "blue", "magenta", "cyan", "white"}

func init() {
	Pens = make(map[string]string)
	DimPens = make(map[string]string)

	for i, color := range colors {
		Pens[color] = fmt.Sprintf("\033[%dm", 90+i)
		DimPens[color] = fmt.Sprintf("\033[%dm", 30+i)
	}

	PenStyles = map[string]string{
		"bold":      "\033[1m",
		"underline": "\033[4m",
	}
}
