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
	"strings"
	"testing"

	"github.com/jetsetilly/gopher80/control/terminal/commandline"
	"github.com/jetsetilly/gopher80/test"
)

// expectEquivalency parses the template and checks that the canonical form
// of the parsed result is the same as the template itself.
func expectEquivalency(t *testing.T, template []string) {
	t.Helper()

	cmds, err := commandline.ParseCommandTemplate(template)
	if test.ExpectedSuccess(t, err) {
		s := strings.Split(cmds.String(), "\n")
		if test.ExpectEquality(t, len(s), len(template)) {
			for i := range s {
				test.ExpectEquality(t, s[i], template[i])
			}
		}
	}
}

func TestParser_keywordsOnly(t *testing.T) {
	expectEquivalency(t, []string{"QUIT"})
	expectEquivalency(t, []string{"EXIT", "QUIT"})
}

func TestParser_groups(t *testing.T) {
	expectEquivalency(t, []string{"TEST [ARG]"})
	expectEquivalency(t, []string{"TEST (ARG)"})
	expectEquivalency(t, []string{"TEST [ARG|BAG]"})
	expectEquivalency(t, []string{"TEST (ARG|BAG|COG)"})
	expectEquivalency(t, []string{"TEST [ARG [COG|DOG]|BAG]"})
	expectEquivalency(t, []string{"TEST (ARG [COG|DOG] (EGG)|BAG)"})
	expectEquivalency(t, []string{"TEST (EGG|FOG|NUG NOG|BIG) (TUG)"})
}

func TestParser_placeholders(t *testing.T) {
	expectEquivalency(t, []string{"TEST %N"})
	expectEquivalency(t, []string{"TEST %P"})
	expectEquivalency(t, []string{"TEST %S"})
	expectEquivalency(t, []string{"TEST %F"})
	expectEquivalency(t, []string{"TEST %<delay>N"})
	expectEquivalency(t, []string{"TEST [%<file>F|NONE]"})
}

func TestParser_controlSurface(t *testing.T) {
	expectEquivalency(t, []string{
		"CASSETTE [INSERT [CAS|CPT] %<file>F|EJECT|ERASE|SEEK %<position>N|REWIND]",
		"MACHINE [POWER [ON|OFF]|RESET (CPU|FULL)|SWITCH-ROM %<slot>N|PAUSE (ON|OFF|TOGGLE)|UNPAUSE|RESTORE|NMI]",
		"MEMORY [LOAD [ROM|RAM] %<file>F (%<offset>N)|WIPE [RAM|ROM|ALL]]",
		"MESSAGES [SHOW|HIDE|TOGGLE|CLEAR] [MACHINE|EMULATOR|ALL]",
	})
}

func TestParser_caseFolding(t *testing.T) {
	cmds, err := commandline.ParseCommandTemplate([]string{"test [arg|bag]"})
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, cmds.String(), "TEST [ARG|BAG]")
}

func TestParser_badDefinitions(t *testing.T) {
	bad := []string{
		"",
		"TEST [ARG",
		"TEST (ARG",
		"TEST ARG]",
		"TEST ARG)",
		"TEST [ARG|]",
		"TEST ()",
		"TEST %q",
		"TEST %",
		"TEST ARG%S",
		"TEST {ARG}",
		"TEST %<file",
		"TEST %<>F",
	}

	for _, defn := range bad {
		_, err := commandline.ParseCommandTemplate([]string{defn})
		test.ExpectedFailure(t, err)
	}
}

func TestParser_duplicateKeywords(t *testing.T) {
	_, err := commandline.ParseCommandTemplate([]string{"TEST", "test %N"})
	test.ExpectedFailure(t, err)
}

func TestParser_help(t *testing.T) {
	cmds, err := commandline.ParseCommandTemplate([]string{"CASSETTE [EJECT|REWIND]", "QUIT"})
	test.DemandSuccess(t, err)
	test.DemandSuccess(t, cmds.AddHelp("HELP", map[string]string{}))

	test.ExpectEquality(t, cmds.String(), "CASSETTE [EJECT|REWIND]\nQUIT\nHELP (CASSETTE|QUIT|HELP)")

	// adding help twice is an error
	test.ExpectedFailure(t, cmds.AddHelp("HELP", map[string]string{}))
}
