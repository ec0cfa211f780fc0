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

package commandline_test

import (
	"testing"

	"github.com/jetsetilly/gopher80/control/terminal/commandline"
	"github.com/jetsetilly/gopher80/test"
)

func TestTabCompletion_cycling(t *testing.T) {
	cmds := mustParse(t, []string{"TEST [ARG|BAG]", "TEST1", "TIME"})
	tc := commandline.NewTabCompletion(cmds)

	// a partially typed keyword completes to the first option. repeated
	// completion of the result cycles through the options and wraps
	s := tc.Complete("TE")
	test.ExpectEquality(t, s, "TEST ")
	s = tc.Complete(s)
	test.ExpectEquality(t, s, "TEST1 ")
	s = tc.Complete(s)
	test.ExpectEquality(t, s, "TEST ")
}

func TestTabCompletion_arguments(t *testing.T) {
	cmds := mustParse(t, []string{"TEST [ARG|BAG]"})
	tc := commandline.NewTabCompletion(cmds)

	test.ExpectEquality(t, tc.Complete("TEST a"), "TEST ARG ")

	tc.Reset()
	test.ExpectEquality(t, tc.Complete("test b"), "test BAG ")
}

func TestTabCompletion_wordsAndCase(t *testing.T) {
	cmds := mustParse(t, []string{"FOO %S WIBBLE"})
	tc := commandline.NewTabCompletion(cmds)

	// completed tokens keep the case they were typed with and the
	// whitespace between them is squeezed onto single spaces
	test.ExpectEquality(t, tc.Complete("FOO   bar     wib"), "FOO bar WIBBLE ")
}

func TestTabCompletion_noOptions(t *testing.T) {
	cmds := mustParse(t, []string{"TEST [ARG (%N)]"})
	tc := commandline.NewTabCompletion(cmds)

	// there is nothing the last token can be completed to
	test.ExpectEquality(t, tc.Complete("TEST arg 10 wib"), "TEST arg 10 wib")

	// unknown commands complete to nothing
	tc.Reset()
	test.ExpectEquality(t, tc.Complete("WIBBLE do"), "WIBBLE do")
}

func TestTabCompletion_placeholders(t *testing.T) {
	cmds := mustParse(t, []string{"TEST %P (FOO|BAR)"})
	tc := commandline.NewTabCompletion(cmds)

	// the placeholder consumes the number, leaving the group keywords as
	// the candidates
	test.ExpectEquality(t, tc.Complete("TEST 100 f"), "TEST 100 FOO ")
}

func TestTabCompletion_doubleArgs(t *testing.T) {
	cmds := mustParse(t, []string{"MESSAGES [SHOW|HIDE|TOGGLE|CLEAR] [MACHINE|EMULATOR|ALL]"})
	tc := commandline.NewTabCompletion(cmds)

	test.ExpectEquality(t, tc.Complete("MESSAGES S"), "MESSAGES SHOW ")

	tc.Reset()
	test.ExpectEquality(t, tc.Complete("MESSAGES show m"), "MESSAGES show MACHINE ")

	tc.Reset()
	s := tc.Complete("messages hide a")
	test.ExpectEquality(t, s, "messages hide ALL ")
}

func TestTabCompletion_nestedGroups(t *testing.T) {
	cmds := mustParse(t, []string{"MACHINE [POWER [ON|OFF]|RESET (CPU|FULL)|UNPAUSE]"})
	tc := commandline.NewTabCompletion(cmds)

	test.ExpectEquality(t, tc.Complete("machine power o"), "machine power ON ")
	s := tc.Complete("machine power ON ")
	test.ExpectEquality(t, s, "machine power OFF ")

	tc.Reset()
	test.ExpectEquality(t, tc.Complete("machine reset c"), "machine reset CPU ")
}

func TestTabCompletion_reset(t *testing.T) {
	cmds := mustParse(t, []string{"TEST [ARG|ARC]"})
	tc := commandline.NewTabCompletion(cmds)

	s := tc.Complete("TEST ar")
	test.ExpectEquality(t, s, "TEST ARG ")

	// a reset forgets the cycling context. the same input is completed
	// afresh rather than cycling to ARC
	tc.Reset()
	s = tc.Complete(s)
	test.ExpectEquality(t, s, "TEST ARG ")
}
