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

package control_test

import (
	"testing"

	"github.com/jetsetilly/gopher80/control"
	"github.com/jetsetilly/gopher80/curated"
	"github.com/jetsetilly/gopher80/test"
)

func TestParseNumber(t *testing.T) {
	cases := []struct {
		s string
		v int
	}{
		{"42", 42},
		{"0", 0},
		{"0x3c00", 0x3c00},
		{"3c00h", 0x3c00},
		{"0FFH", 0xff},
		{"0b1010", 10},
		{"017", 15},
		{"-1", -1},
	}

	for _, c := range cases {
		v, err := control.ParseNumber(c.s)
		test.ExpectedSuccess(t, err)
		test.ExpectEquality(t, v, c.v)
	}
}

func TestParseNumberErrors(t *testing.T) {
	for _, s := range []string{"", "h", "0x", "screen", "12q3"} {
		_, err := control.ParseNumber(s)
		if !curated.Is(err, control.InvalidNumber) {
			t.Errorf("expected InvalidNumber error for %q", s)
		}
	}
}
