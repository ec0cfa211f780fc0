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

package userinput_test

import (
	"testing"

	"github.com/jetsetilly/gopher80/environment"
	"github.com/jetsetilly/gopher80/resources"
	"github.com/jetsetilly/gopher80/test"
	"github.com/jetsetilly/gopher80/userinput"
)

func newTestEnv(t *testing.T) *environment.Environment {
	t.Helper()
	resources.SetBase(t.TempDir())
	env, err := environment.NewEnvironment("test", nil, nil)
	test.DemandSuccess(t, err)
	return env
}

func TestMapping(t *testing.T) {
	tr := userinput.NewTranslator(newTestEnv(t))

	ev, ok := tr.KeyDown("A")
	test.ExpectEquality(t, ok, true)
	test.ExpectEquality(t, ev.Row, 0)
	test.ExpectEquality(t, ev.Mask, 0x02)
	test.ExpectEquality(t, ev.Pressed, true)

	ev, ok = tr.KeyDown("Space")
	test.ExpectEquality(t, ok, true)
	test.ExpectEquality(t, ev.Row, 6)
	test.ExpectEquality(t, ev.Mask, 0x80)

	ev, ok = tr.KeyDown("Left Shift")
	test.ExpectEquality(t, ok, true)
	test.ExpectEquality(t, ev.Row, 7)
	test.ExpectEquality(t, ev.Mask, 0x01)

	// a host key with no place in the matrix
	_, ok = tr.KeyDown("F5")
	test.ExpectEquality(t, ok, false)
}

func TestShiftRedundancy(t *testing.T) {
	tr := userinput.NewTranslator(newTestEnv(t))

	// the host's two shift keys reach the one shift contact. pressing and
	// releasing both in an overlapping sequence must come out as exactly
	// one press and one release
	ev, ok := tr.KeyDown("Left Shift")
	test.ExpectEquality(t, ok, true)
	test.ExpectEquality(t, ev.Pressed, true)

	_, ok = tr.KeyDown("Right Shift")
	test.ExpectEquality(t, ok, false)

	_, ok = tr.KeyUp("Left Shift")
	test.ExpectEquality(t, ok, false)

	ev, ok = tr.KeyUp("Right Shift")
	test.ExpectEquality(t, ok, true)
	test.ExpectEquality(t, ev.Pressed, false)
	test.ExpectEquality(t, ev.Row, 7)
	test.ExpectEquality(t, ev.Mask, 0x01)
}

func TestDigitRedundancy(t *testing.T) {
	tr := userinput.NewTranslator(newTestEnv(t))

	ev, ok := tr.KeyDown("1")
	test.ExpectEquality(t, ok, true)
	test.ExpectEquality(t, ev.Row, 4)
	test.ExpectEquality(t, ev.Mask, 0x02)

	// the keypad copy of a held digit is absorbed
	_, ok = tr.KeyDown("Keypad 1")
	test.ExpectEquality(t, ok, false)

	// other digits are unaffected by the held pair
	ev, ok = tr.KeyDown("2")
	test.ExpectEquality(t, ok, true)
	test.ExpectEquality(t, ev.Mask, 0x04)

	_, ok = tr.KeyUp("1")
	test.ExpectEquality(t, ok, false)

	ev, ok = tr.KeyUp("Keypad 1")
	test.ExpectEquality(t, ok, true)
	test.ExpectEquality(t, ev.Pressed, false)
}

func TestBackspaceIsLeftArrow(t *testing.T) {
	tr := userinput.NewTranslator(newTestEnv(t))

	ev, ok := tr.KeyDown("Backspace")
	test.ExpectEquality(t, ok, true)
	test.ExpectEquality(t, ev.Row, 6)
	test.ExpectEquality(t, ev.Mask, 0x20)

	// the real left arrow is the other side of the pair
	_, ok = tr.KeyDown("Left")
	test.ExpectEquality(t, ok, false)

	_, ok = tr.KeyUp("Backspace")
	test.ExpectEquality(t, ok, false)

	_, ok = tr.KeyUp("Left")
	test.ExpectEquality(t, ok, true)
}

func TestPacingStamp(t *testing.T) {
	tr := userinput.NewTranslator(newTestEnv(t))

	// default ms_per_keypress of 50 at the Model I clock
	ev, ok := tr.KeyDown("A")
	test.ExpectEquality(t, ok, true)
	test.ExpectEquality(t, ev.MinCycles, 88704)
}

func TestReset(t *testing.T) {
	tr := userinput.NewTranslator(newTestEnv(t))

	_, ok := tr.KeyDown("Left Shift")
	test.ExpectEquality(t, ok, true)

	// reset forgets the held left shift, so the right shift registers as a
	// fresh press
	tr.Reset()

	_, ok = tr.KeyDown("Right Shift")
	test.ExpectEquality(t, ok, true)
}
