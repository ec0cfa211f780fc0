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

func mustParse(t *testing.T, template []string) *commandline.Commands {
	t.Helper()
	cmds, err := commandline.ParseCommandTemplate(template)
	test.DemandSuccess(t, err)
	return cmds
}

func TestValidation_keywords(t *testing.T) {
	cmds := mustParse(t, []string{"TEST [ARG|BAG]"})

	test.ExpectedSuccess(t, cmds.Validate("test arg"))
	test.ExpectedSuccess(t, cmds.Validate("TEST BAG"))
	test.ExpectedSuccess(t, cmds.Validate("TeSt BaG"))

	test.ExpectedFailure(t, cmds.Validate("test cog"))
	test.ExpectedFailure(t, cmds.Validate("test"))
	test.ExpectedFailure(t, cmds.Validate("test arg bag"))
	test.ExpectedFailure(t, cmds.Validate("wibble"))
}

func TestValidation_optional(t *testing.T) {
	cmds := mustParse(t, []string{"TEST (ARG|BAG)"})

	test.ExpectedSuccess(t, cmds.Validate("test"))
	test.ExpectedSuccess(t, cmds.Validate("test arg"))
	test.ExpectedSuccess(t, cmds.Validate("test bag"))

	test.ExpectedFailure(t, cmds.Validate("test cog"))
	test.ExpectedFailure(t, cmds.Validate("test arg bag"))
}

func TestValidation_backtracking(t *testing.T) {
	cmds := mustParse(t, []string{"TEST [%F|FOO [WIBBLE]|BAR]"})

	// foo matches the filename alternative when it arrives alone and the
	// keyword alternative when wibble follows
	test.ExpectedSuccess(t, cmds.Validate("test somefile"))
	test.ExpectedSuccess(t, cmds.Validate("test foo"))
	test.ExpectedSuccess(t, cmds.Validate("test foo wibble"))
	test.ExpectedSuccess(t, cmds.Validate("test bar"))

	test.ExpectedFailure(t, cmds.Validate("test bar wibble"))
	test.ExpectedFailure(t, cmds.Validate("test foo wibble extra"))
	test.ExpectedFailure(t, cmds.Validate("test"))
}

func TestValidation_doubleArgs(t *testing.T) {
	cmds := mustParse(t, []string{"TEST (EGG|FOG|NUG NOG|BIG) (TUG)"})

	test.ExpectedSuccess(t, cmds.Validate("test"))
	test.ExpectedSuccess(t, cmds.Validate("test egg"))
	test.ExpectedSuccess(t, cmds.Validate("test egg tug"))
	test.ExpectedSuccess(t, cmds.Validate("test nug nog"))
	test.ExpectedSuccess(t, cmds.Validate("test nug nog tug"))
	test.ExpectedSuccess(t, cmds.Validate("test tug"))

	test.ExpectedFailure(t, cmds.Validate("test nug"))
	test.ExpectedFailure(t, cmds.Validate("test nog"))
	test.ExpectedFailure(t, cmds.Validate("test egg nog"))
}

func TestValidation_numbers(t *testing.T) {
	cmds := mustParse(t, []string{"SEEK %<position>N"})

	test.ExpectedSuccess(t, cmds.Validate("seek 100"))
	test.ExpectedSuccess(t, cmds.Validate("seek 0x64"))
	test.ExpectedSuccess(t, cmds.Validate("seek 0b1100100"))
	test.ExpectedSuccess(t, cmds.Validate("seek 0144"))
	test.ExpectedSuccess(t, cmds.Validate("seek 64h"))
	test.ExpectedSuccess(t, cmds.Validate("seek beefH"))
	test.ExpectedSuccess(t, cmds.Validate("seek -100"))

	test.ExpectedFailure(t, cmds.Validate("seek"))
	test.ExpectedFailure(t, cmds.Validate("seek wibble"))
	test.ExpectedFailure(t, cmds.Validate("seek 100 200"))
}

func TestValidation_normalisation(t *testing.T) {
	cmds := mustParse(t, []string{"SEEK %<position>N"})

	// trailing h numbers are rewritten to the prefix form. other forms are
	// left as typed
	tokens := commandline.TokeniseInput("seek 64h")
	test.ExpectedSuccess(t, cmds.ValidateTokens(tokens))
	test.ExpectEquality(t, tokens.String(), "SEEK 0x64")

	tokens = commandline.TokeniseInput("seek 0b101")
	test.ExpectedSuccess(t, cmds.ValidateTokens(tokens))
	test.ExpectEquality(t, tokens.String(), "SEEK 0b101")
}

func TestValidation_floats(t *testing.T) {
	cmds := mustParse(t, []string{"SCALE %P"})

	test.ExpectedSuccess(t, cmds.Validate("scale 1.5"))
	test.ExpectedSuccess(t, cmds.Validate("scale 2"))

	test.ExpectedFailure(t, cmds.Validate("scale big"))
}

func TestValidation_quotedFilenames(t *testing.T) {
	cmds := mustParse(t, []string{"LOAD %<file>F (%<offset>N)"})

	test.ExpectedSuccess(t, cmds.Validate("load games/pinball.cas"))
	test.ExpectedSuccess(t, cmds.Validate(`load "a file with spaces.cas"`))
	test.ExpectedSuccess(t, cmds.Validate(`load "a file with spaces.cas" 0x100`))
}

func TestValidation_help(t *testing.T) {
	cmds := mustParse(t, []string{"CASSETTE [EJECT|REWIND]", "QUIT"})
	test.DemandSuccess(t, cmds.AddHelp("HELP", map[string]string{
		"CASSETTE": "control the cassette deck",
	}))

	test.ExpectedSuccess(t, cmds.Validate("help"))
	test.ExpectedSuccess(t, cmds.Validate("help cassette"))
	test.ExpectedSuccess(t, cmds.Validate("help help"))

	err := cmds.Validate("help wibble")
	if test.ExpectedFailure(t, err) {
		test.ExpectEquality(t, err.Error(), "no help for WIBBLE")
	}
}

func TestValidation_errorMessages(t *testing.T) {
	cmds := mustParse(t, []string{"MACHINE [POWER [ON|OFF]|RESET (CPU|FULL)]"})

	err := cmds.Validate("machine reset 5")
	if test.ExpectedFailure(t, err) {
		test.ExpectEquality(t, err.Error(), "unexpected argument (5), CPU expected")
	}

	err = cmds.Validate("machine power")
	if test.ExpectedFailure(t, err) {
		test.ExpectEquality(t, err.Error(), "ON or OFF required")
	}

	err = cmds.Validate("machine power on extra")
	if test.ExpectedFailure(t, err) {
		test.ExpectEquality(t, err.Error(), "unrecognised argument (extra) for MACHINE")
	}

	err = cmds.Validate("wibble")
	if test.ExpectedFailure(t, err) {
		test.ExpectEquality(t, err.Error(), "unrecognised command (WIBBLE)")
	}
}
