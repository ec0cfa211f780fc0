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

package userinput

import (
	"github.com/jetsetilly/gopher80/environment"
	"github.com/jetsetilly/gopher80/hardware/clocks"
	"github.com/jetsetilly/gopher80/hardware/keyboard"
)

// pair value for host keys with no redundant partner.
const noPair = -1

// The redundant pairs. Each names one matrix intersection that more than one
// host key reaches.
const (
	pairShift = iota
	pairEnter
	pairLeft
	pairDigit0
	pairDigit1
	pairDigit2
	pairDigit3
	pairDigit4
	pairDigit5
	pairDigit6
	pairDigit7
	pairDigit8
	pairDigit9
	numPairs
)

// which half of a redundant pair a host key occupies.
const (
	sideLeft = iota
	sideRight
)

// binding ties a host key to a matrix intersection. Host keys that share an
// intersection also share a pair record, with side telling the two apart.
type binding struct {
	row  int
	mask uint8
	pair int
	side int
}

// bindings maps host key names, as reported by SDL, to the keyboard matrix
// of the Model I. The mapping is positional rather than symbolic: the host
// key in the ":" position reaches the ":" intersection whatever the host's
// shift state says it produces.
var bindings = map[string]binding{
	// row 0
	"`": {0, 0x01, noPair, 0}, // the @ key
	"A": {0, 0x02, noPair, 0},
	"B": {0, 0x04, noPair, 0},
	"C": {0, 0x08, noPair, 0},
	"D": {0, 0x10, noPair, 0},
	"E": {0, 0x20, noPair, 0},
	"F": {0, 0x40, noPair, 0},
	"G": {0, 0x80, noPair, 0},

	// row 1
	"H": {1, 0x01, noPair, 0},
	"I": {1, 0x02, noPair, 0},
	"J": {1, 0x04, noPair, 0},
	"K": {1, 0x08, noPair, 0},
	"L": {1, 0x10, noPair, 0},
	"M": {1, 0x20, noPair, 0},
	"N": {1, 0x40, noPair, 0},
	"O": {1, 0x80, noPair, 0},

	// row 2
	"P": {2, 0x01, noPair, 0},
	"Q": {2, 0x02, noPair, 0},
	"R": {2, 0x04, noPair, 0},
	"S": {2, 0x08, noPair, 0},
	"T": {2, 0x10, noPair, 0},
	"U": {2, 0x20, noPair, 0},
	"V": {2, 0x40, noPair, 0},
	"W": {2, 0x80, noPair, 0},

	// row 3
	"X": {3, 0x01, noPair, 0},
	"Y": {3, 0x02, noPair, 0},
	"Z": {3, 0x04, noPair, 0},

	// row 4. the host's keypad digits fold onto the number row
	"0": {4, 0x01, pairDigit0, sideLeft},
	"1": {4, 0x02, pairDigit1, sideLeft},
	"2": {4, 0x04, pairDigit2, sideLeft},
	"3": {4, 0x08, pairDigit3, sideLeft},
	"4": {4, 0x10, pairDigit4, sideLeft},
	"5": {4, 0x20, pairDigit5, sideLeft},
	"6": {4, 0x40, pairDigit6, sideLeft},
	"7": {4, 0x80, pairDigit7, sideLeft},

	"Keypad 0": {4, 0x01, pairDigit0, sideRight},
	"Keypad 1": {4, 0x02, pairDigit1, sideRight},
	"Keypad 2": {4, 0x04, pairDigit2, sideRight},
	"Keypad 3": {4, 0x08, pairDigit3, sideRight},
	"Keypad 4": {4, 0x10, pairDigit4, sideRight},
	"Keypad 5": {4, 0x20, pairDigit5, sideRight},
	"Keypad 6": {4, 0x40, pairDigit6, sideRight},
	"Keypad 7": {4, 0x80, pairDigit7, sideRight},

	// row 5
	"8":        {5, 0x01, pairDigit8, sideLeft},
	"9":        {5, 0x02, pairDigit9, sideLeft},
	"Keypad 8": {5, 0x01, pairDigit8, sideRight},
	"Keypad 9": {5, 0x02, pairDigit9, sideRight},
	"'":        {5, 0x04, noPair, 0}, // the : key
	";":        {5, 0x08, noPair, 0},
	",":        {5, 0x10, noPair, 0},
	"-":        {5, 0x20, noPair, 0},
	".":        {5, 0x40, noPair, 0},
	"/":        {5, 0x80, noPair, 0},

	// row 6. the left arrow doubles as the rubout key so host Backspace is
	// a second way of reaching it
	"Return":       {6, 0x01, pairEnter, sideLeft},
	"Keypad Enter": {6, 0x01, pairEnter, sideRight},
	"Home":         {6, 0x02, noPair, 0}, // clear
	"Escape":       {6, 0x04, noPair, 0}, // break
	"Up":           {6, 0x08, noPair, 0},
	"Down":         {6, 0x10, noPair, 0},
	"Left":         {6, 0x20, pairLeft, sideLeft},
	"Backspace":    {6, 0x20, pairLeft, sideRight},
	"Right":        {6, 0x40, noPair, 0},
	"Space":        {6, 0x80, noPair, 0},

	// row 7. both shift keys are wired to the same contact
	"Left Shift":  {7, 0x01, pairShift, sideLeft},
	"Right Shift": {7, 0x01, pairShift, sideRight},
}

// Translator converts host key transitions into keyboard matrix events.
//
// The type is stateful. Where two host keys reach the same matrix
// intersection the translator tracks both sides and emits a press only for
// the first side down and a release only for the last side up, so that one
// physical key cannot cancel the other.
type Translator struct {
	env *environment.Environment

	// pressed state of each side of each redundant pair
	pairs [numPairs][2]bool
}

// NewTranslator is the preferred method of initialisation for the
// Translator type.
func NewTranslator(env *environment.Environment) *Translator {
	return &Translator{env: env}
}

// Reset the redundant key records. Call on machine reset, or when the host
// window loses focus, so no key is left stuck down.
func (tr *Translator) Reset() {
	for i := range tr.pairs {
		tr.pairs[i][0] = false
		tr.pairs[i][1] = false
	}
}

// KeyDown translates a host key press. Returns false when the key has no
// place in the matrix, or when the transition is absorbed because the other
// side of a redundant pair is already down.
func (tr *Translator) KeyDown(key string) (keyboard.Event, bool) {
	b, ok := bindings[key]
	if !ok {
		return keyboard.Event{}, false
	}

	if b.pair != noPair {
		other := tr.pairs[b.pair][1-b.side]
		tr.pairs[b.pair][b.side] = true
		if other {
			return keyboard.Event{}, false
		}
	}

	return keyboard.Event{
		Row:       b.row,
		Mask:      b.mask,
		Pressed:   true,
		MinCycles: tr.minCycles(),
	}, true
}

// KeyUp translates a host key release. Returns false when the key has no
// place in the matrix, or when the other side of a redundant pair is still
// holding the intersection down.
func (tr *Translator) KeyUp(key string) (keyboard.Event, bool) {
	b, ok := bindings[key]
	if !ok {
		return keyboard.Event{}, false
	}

	if b.pair != noPair {
		tr.pairs[b.pair][b.side] = false
		if tr.pairs[b.pair][1-b.side] {
			return keyboard.Event{}, false
		}
	}

	return keyboard.Event{
		Row:       b.row,
		Mask:      b.mask,
		Pressed:   false,
		MinCycles: tr.minCycles(),
	}, true
}

// the pacing delay stamped on every translated event, from the
// ms_per_keypress option.
func (tr *Translator) minCycles() int {
	ms := tr.env.Config.MsPerKeypress.Get().(int)
	return ms * clocks.CPUClock / 1000
}
