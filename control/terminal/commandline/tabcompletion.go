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
	"strings"
)

// TabCompletion keeps track of the most recent completion attempt. Useful
// for implementations of the terminal.Terminal interface.
type TabCompletion struct {
	cmds *Commands

	options []string
	idx     int

	// the input up to but not including the token being completed
	head string

	// the string returned by the previous call to Complete(). a new call
	// with the identical string cycles to the next option
	last string
}

// NewTabCompletion is the preferred method of initialisation for the
// TabCompletion type.
func NewTabCompletion(cmds *Commands) *TabCompletion {
	return &TabCompletion{cmds: cmds}
}

// Complete transforms the input such that the last token is expanded to a
// keyword that can appear at that point in the command template. Repeated
// calls with the result of the previous call cycle through the options.
func (tc *TabCompletion) Complete(input string) string {
	if len(tc.options) > 0 && input == tc.last {
		tc.idx = (tc.idx + 1) % len(tc.options)
		tc.last = tc.head + tc.options[tc.idx] + " "
		return tc.last
	}
	tc.Reset()

	tokens := TokeniseInput(input)
	if tokens.Len() == 0 {
		return input
	}

	// the last token is the partially typed keyword. the preceding tokens
	// keep whatever case they were typed with, squeezed onto single spaces
	prefix := strings.ToUpper(tokens.tokens[tokens.Len()-1])
	head := strings.Join(tokens.tokens[:tokens.Len()-1], " ")
	if head != "" {
		head += " "
	}

	col := &candidates{}
	if tokens.Len() == 1 {
		for _, n := range tc.cmds.cmds {
			col.add(n.tag)
		}
	} else {
		n, ok := tc.cmds.Index[strings.ToUpper(tokens.tokens[0])]
		if !ok {
			return input
		}

		// walk the template with every completed token. candidates are
		// gathered wherever the walk runs out of tokens
		walk := &Tokens{tokens: tokens.tokens[1 : tokens.Len()-1]}
		completeSequence(n.next, walk, func(*Tokens) {}, col)
	}

	for _, opt := range col.list {
		if strings.HasPrefix(opt, prefix) {
			tc.options = append(tc.options, opt)
		}
	}
	if len(tc.options) == 0 {
		return input
	}

	tc.idx = 0
	tc.head = head
	tc.last = head + tc.options[tc.idx] + " "
	return tc.last
}

// Reset forgets the context built up by previous calls to Complete().
func (tc *TabCompletion) Reset() {
	tc.options = tc.options[:0]
	tc.idx = 0
	tc.head = ""
	tc.last = ""
}

// candidates accumulates completion options in template order, without
// duplicates.
type candidates struct {
	list []string
}

func (c *candidates) add(tag string) {
	for _, t := range c.list {
		if t == tag {
			return
		}
	}
	c.list = append(c.list, tag)
}

// completeSequence walks a node sequence in the manner of
// validateSequence(). Keyword nodes reached as the tokens run out are
// completion candidates.
func completeSequence(seq []*node, tokens *Tokens, k func(*Tokens), col *candidates) {
	if len(seq) == 0 {
		k(tokens)
		return
	}
	rest := func(tk *Tokens) {
		completeSequence(seq[1:], tk, k, col)
	}
	seq[0].complete(tokens, rest, col)
}

func (n *node) complete(tokens *Tokens, k func(*Tokens), col *candidates) {
	if n.isGroup() {
		mark := tokens.curr
		for _, alt := range n.branch {
			tokens.curr = mark
			completeSequence(alt, tokens, k, col)
		}
		if n.typ == nodeOptional {
			tokens.curr = mark
			k(tokens)
		}
		return
	}

	tok, ok := tokens.Get()
	if !ok {
		if !n.isPlaceholder() {
			col.add(n.tag)
		}
		return
	}
	if n.match(tok, nil) {
		k(tokens)
	}
}
