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

// Package modalflag wraps the flag package from the standard library with
// support for program modes: named sub-commands, each of which can declare
// its own flags and its own further sub-modes.
//
// Usage differs from the flag package in that the argument list is given up
// front, with NewArgs(), and Parse() is then called once per layer of modes:
//
//	md := modalflag.Modes{Output: os.Stdout}
//	md.NewArgs(os.Args[1:])
//	md.AddSubModes("RUN", "TAPE", "VERSION")
//
//	p, err := md.Parse()
//	...
//	switch md.Mode() {
//	...
//	}
//
// When a mode has sub-modes, the next argument selects one. If it matches no
// sub-mode at all the first listed sub-mode is selected by default and the
// argument is left over for the mode itself, meaning that "gopher80" and
// "gopher80 run" do the same thing. Sub-mode comparison is case insensitive.
//
// After mode selection, NewMode() starts the next layer: flags and sub-modes
// added from then on belong to the selected mode. Flags are declared with
// AddBool() and friends, which mirror the corresponding flag.FlagSet
// functions. Arguments left over after Parse() are available through
// RemainingArgs() and GetArg().
//
// Parse() deals with help requests itself, printing to the Output writer and
// returning ParseHelp.
package modalflag
