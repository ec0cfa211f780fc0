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

// Package commandline facilitates parsing of command line input. Given a
// command template, the package can be used to validate user input and to
// tab-complete partially typed commands.
//
// A command template is a list of strings, each string defining one command.
// The first word of a definition is the command keyword. The remainder
// describes the arguments the command accepts:
//
//	keyword		a word that must appear as typed (case-insensitive)
//	[a|b|c]		a required group. one of the alternatives must match
//	(a|b|c)		an optional group. the group can be skipped entirely
//	%N		a numeric argument
//	%P		a floating point argument
//	%S		a string argument
//	%F		a filename argument
//
// Groups nest to any depth and each alternative in a group can be a sequence
// of several elements. A placeholder can be given a label for the benefit of
// usage strings. For example:
//
//	SEEK %<position>N
//
// ParseCommandTemplate() converts a template to an instance of Commands. User
// input is then checked with the Validate() or ValidateTokens() functions:
//
//	cmds, _ := commandline.ParseCommandTemplate(template)
//	if err := cmds.Validate(input); err != nil {
//		...
//	}
//
// Validation normalises the tokens as it goes. Command keywords are folded to
// upper case and numeric arguments are rewritten such that they can be passed
// directly to strconv.ParseInt() with a base value of zero. After a
// successful validation the caller can walk the tokens with the Get()
// function, confident about the form of every token:
//
//	tokens.Reset()
//	command, _ := tokens.Get()
//	switch command {
//		...
//	}
//
// The TabCompletion type wraps a Commands instance and guesses the remainder
// of a partially typed line. Repeated calls with the result of the previous
// call cycle through the available options.
package commandline
