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

func TestTokeniser(t *testing.T) {
	tokens := commandline.TokeniseInput("  foo \t  bar ")
	test.ExpectEquality(t, tokens.Len(), 2)
	test.ExpectEquality(t, tokens.String(), "foo bar")

	// a double-quoted string is a single token, with the quotes removed
	tokens = commandline.TokeniseInput(`insert cas "tape one.cas"`)
	test.ExpectEquality(t, tokens.Len(), 3)
	tokens.Get()
	tokens.Get()
	tok, ok := tokens.Get()
	test.ExpectEquality(t, ok, true)
	test.ExpectEquality(t, tok, "tape one.cas")

	tokens = commandline.TokeniseInput("")
	test.ExpectEquality(t, tokens.Len(), 0)
	test.ExpectEquality(t, tokens.IsEnd(), true)
}

func TestTokens_walk(t *testing.T) {
	tokens := commandline.TokeniseInput("one two three")

	tok, ok := tokens.Get()
	test.ExpectEquality(t, ok, true)
	test.ExpectEquality(t, tok, "one")
	test.ExpectEquality(t, tokens.Remaining(), 2)

	tok, ok = tokens.Peek()
	test.ExpectEquality(t, ok, true)
	test.ExpectEquality(t, tok, "two")

	// peek does not advance
	tok, _ = tokens.Get()
	test.ExpectEquality(t, tok, "two")

	// unget makes the same token available again
	tokens.Unget()
	tok, _ = tokens.Get()
	test.ExpectEquality(t, tok, "two")

	// update replaces the most recently returned token
	tokens.Update("TWO")
	test.ExpectEquality(t, tokens.String(), "one TWO three")

	tok, _ = tokens.Get()
	test.ExpectEquality(t, tok, "three")
	test.ExpectEquality(t, tokens.IsEnd(), true)

	_, ok = tokens.Get()
	test.ExpectEquality(t, ok, false)

	tokens.Reset()
	test.ExpectEquality(t, tokens.Remaining(), 3)
}
