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

package commandline

import (
	"regexp"
	"strings"
)

// Tokens represents tokenised input. This can be used to walk through the
// input string (using get()) for handling by the emulation.
type Tokens struct {
	tokens []string

	// the index of the token that will be returned by the next call to Get()
	curr int
}

// tokens are separated by whitespace. a double-quoted string counts as a
// single token however much whitespace it contains
var tokeniserPattern = regexp.MustCompile(`"[^"]*"|\S+`)

// TokeniseInput creates and returns a new instance of Tokens.
func TokeniseInput(input string) *Tokens {
	tk := &Tokens{}
	tk.tokens = tokeniserPattern.FindAllString(input, -1)
	for i, t := range tk.tokens {
		if len(t) >= 2 && t[0] == '"' && t[len(t)-1] == '"' {
			tk.tokens[i] = t[1 : len(t)-1]
		}
	}
	return tk
}

// String representation of the tokens in their current form. Tokens may have
// been normalised during validation.
func (tk *Tokens) String() string {
	return strings.Join(tk.tokens, " ")
}

// Reset begins the token walk from the beginning.
func (tk *Tokens) Reset() {
	tk.curr = 0
}

// Len returns the number of tokens.
func (tk *Tokens) Len() int {
	return len(tk.tokens)
}

// Remaining returns the number of tokens not yet returned by Get().
func (tk *Tokens) Remaining() int {
	return len(tk.tokens) - tk.curr
}

// IsEnd returns true if every token has been returned by Get().
func (tk *Tokens) IsEnd() bool {
	return tk.curr >= len(tk.tokens)
}

// Get returns the next token and advances. The boolean return value is false
// if there are no tokens left.
func (tk *Tokens) Get() (string, bool) {
	if tk.curr >= len(tk.tokens) {
		return "", false
	}
	tk.curr++
	return tk.tokens[tk.curr-1], true
}

// Unget makes the token most recently returned by Get() available again.
func (tk *Tokens) Unget() {
	if tk.curr > 0 {
		tk.curr--
	}
}

// Peek returns the next token without advancing.
func (tk *Tokens) Peek() (string, bool) {
	if tk.curr >= len(tk.tokens) {
		return "", false
	}
	return tk.tokens[tk.curr], true
}

// Update replaces the token most recently returned by Get(). Used to
// normalise tokens during validation.
func (tk *Tokens) Update(s string) {
	if tk.curr > 0 {
		tk.tokens[tk.curr-1] = s
	}
}
