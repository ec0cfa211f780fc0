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

package control

import (
	"strconv"
	"strings"

	"github.com/jetsetilly/gopher80/curated"
)

// Sentinal errors returned by ParseNumber.
const (
	InvalidNumber = "control: not a number: %v"
)

// ParseNumber converts a numeric literal in any of the forms the command
// language accepts: decimal, 0x prefixed hexadecimal, 0b prefixed binary,
// leading zero octal, and hexadecimal with the trailing h familiar from Z80
// assemblers.
func ParseNumber(s string) (int, error) {
	t := s
	if len(t) > 1 && (strings.HasSuffix(t, "h") || strings.HasSuffix(t, "H")) {
		t = "0x" + t[:len(t)-1]
	}
	v, err := strconv.ParseInt(t, 0, 32)
	if err != nil {
		return 0, curated.Errorf(InvalidNumber, s)
	}
	return int(v), nil
}
