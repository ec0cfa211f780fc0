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

// Package version records the version number of the application.
package version

// ApplicationName is the name to use when referring to the application.
const ApplicationName = "Gopher80"

// number is set at build time with the -X linker flag. if it is empty then
// the project was probably not built using the makefile.
var number string

// Version returns the version string for the build. The boolean return value
// indicates whether the version number is from an official release build.
func Version() (string, bool) {
	if number == "" {
		return "unreleased", false
	}
	return number, true
}
