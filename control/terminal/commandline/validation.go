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
	"strconv"
	"strings"

	"github.com/jetsetilly/gopher80/curated"
)

// Validate input against the parsed command template. Validation
// tokenises the input and normalises the tokens, see ValidateTokens().
func (cmds Commands) Validate(input string) error {
	return cmds.ValidateTokens(TokeniseInput(input))
}

// ValidateTokens checks tokenised input against the parsed command template.
// Tokens are normalised in place as the template matches. Keywords are
// folded to upper case and numbers are rewritten such that they can be
// passed to strconv.ParseInt() with a base value of zero.
//
// Normalisations survive backtracking over the template alternatives. This
// is safe because keyword matching is case-insensitive and the rewritten
// numbers remain valid for the placeholder directives of every alternative.
func (cmds Commands) ValidateTokens(tokens *Tokens) error {
	tokens.Reset()

	cmd, ok := tokens.Get()
	if !ok {
		return nil
	}
	cmd = strings.ToUpper(cmd)

	n, ok := cmds.Index[cmd]
	if !ok {
		return curated.Errorf("unrecognised command (%s)", cmd)
	}
	tokens.Update(cmd)

	// the help command is checked directly against the list of commands so
	// that an unknown topic says so rather than producing a generic
	// validation error
	if cmd == cmds.helpCommand {
		return cmds.validateHelp(tokens)
	}

	// the continuation run when a candidate match reaches the end of the
	// template. the whole of the input must have been consumed for the
	// match to count
	end := func(tk *Tokens) error {
		if tk.IsEnd() {
			return nil
		}
		arg, _ := tk.Get()
		return curated.Errorf("unrecognised argument (%s) for %s", arg, cmd)
	}

	if err := validateSequence(n.next, tokens, end); err != nil {
		return err
	}

	tokens.Reset()
	return nil
}

func (cmds Commands) validateHelp(tokens *Tokens) error {
	topic, ok := tokens.Get()
	if !ok {
		tokens.Reset()
		return nil
	}

	topic = strings.ToUpper(topic)
	if _, ok := cmds.Index[topic]; !ok {
		return curated.Errorf("no help for %s", topic)
	}
	tokens.Update(topic)

	if !tokens.IsEnd() {
		arg, _ := tokens.Get()
		return curated.Errorf("unrecognised argument (%s) for %s", arg, cmds.helpCommand)
	}

	tokens.Reset()
	return nil
}

// cont is the continuation called when a candidate match reaches the end of
// a node sequence. It returns nil if the remaining input matches the
// remainder of the template.
type cont func(*Tokens) error

// validateSequence matches a sequence of nodes against the tokens, calling k
// with whatever tokens remain. Group alternatives are tried in definition
// order and the first alternative that lets the whole of the input match
// wins.
func validateSequence(seq []*node, tokens *Tokens, k cont) error {
	if len(seq) == 0 {
		return k(tokens)
	}
	rest := func(tk *Tokens) error {
		return validateSequence(seq[1:], tk, k)
	}
	return seq[0].validate(tokens, rest)
}

func (n *node) validate(tokens *Tokens, k cont) error {
	if n.isGroup() {
		mark := tokens.curr

		// on failure, report the error from the alternative that matched
		// the most tokens before going wrong
		var err error
		deepest := -1

		for _, alt := range n.branch {
			tokens.curr = mark
			e := validateSequence(alt, tokens, k)
			if e == nil {
				return nil
			}
			if tokens.curr > deepest {
				deepest = tokens.curr
				err = e
			}
		}

		if n.typ == nodeOptional {
			tokens.curr = mark
			if e := k(tokens); e == nil {
				return nil
			}
		}

		// a missing token describes the whole group rather than whichever
		// alternative happened to fail first
		if mark >= len(tokens.tokens) {
			return curated.Errorf("%s required", n.nodeVerbose())
		}
		return err
	}

	tok, ok := tokens.Get()
	if !ok {
		return curated.Errorf("%s required", n.tagVerbose())
	}
	if !n.match(tok, tokens) {
		return curated.Errorf("unexpected argument (%s), %s expected", tok, n.tagVerbose())
	}
	return k(tokens)
}

// match a single token against a leaf node, normalising the token where
// necessary. A nil Tokens skips normalisation, which is the behaviour
// wanted during tab completion.
func (n *node) match(tok string, tokens *Tokens) bool {
	switch n.tag {
	case placeholderNumeric:
		norm, ok := normaliseNumber(tok)
		if !ok {
			return false
		}
		if tokens != nil && norm != tok {
			tokens.Update(norm)
		}
		return true

	case placeholderFloat:
		_, err := strconv.ParseFloat(tok, 32)
		return err == nil

	case placeholderString, placeholderFile:
		// file existence is not checked at validation time
		return true

	default:
		utok := strings.ToUpper(tok)
		if utok != n.tag {
			return false
		}
		if tokens != nil {
			tokens.Update(utok)
		}
		return true
	}
}

// normaliseNumber rewrites numbers with a trailing h, the usual way of
// writing hexadecimal in the Z80 world, to the 0x prefix form understood by
// strconv.ParseInt() with a base value of zero. Prefix forms, including
// binary and octal, pass through untouched.
func normaliseNumber(tok string) (string, bool) {
	if len(tok) > 1 && (tok[len(tok)-1] == 'h' || tok[len(tok)-1] == 'H') && isHexDigits(tok[:len(tok)-1]) {
		tok = "0x" + tok[:len(tok)-1]
	}
	_, err := strconv.ParseInt(tok, 0, 32)
	return tok, err == nil
}

func isHexDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !strings.ContainsRune("0123456789abcdefABCDEF", r) {
			return false
		}
	}
	return true
}
