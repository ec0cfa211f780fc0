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
	"fmt"
	"strings"
	"unicode"

	"github.com/jetsetilly/gopher80/curated"
)

// ParseCommandTemplate turns a command template into an instance of
// Commands. Definitions are case-insensitive, command keywords must be
// unique.
func ParseCommandTemplate(template []string) (*Commands, error) {
	cmds := &Commands{Index: make(map[string]*node)}

	for _, defn := range template {
		defn = strings.TrimSpace(defn)
		if defn == "" {
			return nil, curated.Errorf("parser: empty command definition")
		}

		n, pos, err := parseDefinition(defn)
		if err != nil {
			return nil, curated.Errorf("parser: %s: %v (char %d)", defn, err, pos)
		}

		if _, ok := cmds.Index[n.tag]; ok {
			return nil, curated.Errorf("parser: duplicate command (%s)", n.tag)
		}

		cmds.Index[n.tag] = n
		cmds.cmds = append(cmds.cmds, n)
	}

	return cmds, nil
}

// definitionParser is a rune scanner over a single command definition.
type definitionParser struct {
	defn []rune
	pos  int
}

// parseDefinition parses a single definition string. The integer return
// value is the rune position of any error.
func parseDefinition(defn string) (*node, int, error) {
	p := &definitionParser{defn: []rune(defn)}

	p.skipSpace()
	keyword, err := p.parseWord()
	if err != nil {
		return nil, p.pos, fmt.Errorf("command keyword missing")
	}
	if r := p.peek(); r != 0 && !unicode.IsSpace(r) {
		return nil, p.pos, fmt.Errorf("unexpected character (%c)", r)
	}

	n := &node{tag: strings.ToUpper(keyword), typ: nodeRoot}

	seq, term, err := p.parseSequence()
	if err != nil {
		return nil, p.pos, err
	}
	if term != 0 {
		return nil, p.pos, fmt.Errorf("unexpected character (%c)", term)
	}

	n.next = seq
	return n, 0, nil
}

func (p *definitionParser) peek() rune {
	if p.pos >= len(p.defn) {
		return 0
	}
	return p.defn[p.pos]
}

func (p *definitionParser) next() rune {
	r := p.peek()
	if r != 0 {
		p.pos++
	}
	return r
}

func (p *definitionParser) skipSpace() {
	for unicode.IsSpace(p.peek()) {
		p.pos++
	}
}

// parseWord collects a plain keyword. Keywords end at whitespace, a group
// delimiter, an alternation bar or the end of the definition.
func (p *definitionParser) parseWord() (string, error) {
	s := strings.Builder{}
	for {
		r := p.peek()
		if r == 0 || unicode.IsSpace(r) || strings.ContainsRune("[]()|%{}", r) {
			break
		}
		s.WriteRune(p.next())
	}
	if s.Len() == 0 {
		return "", fmt.Errorf("keyword expected")
	}
	return s.String(), nil
}

// parseSequence parses elements until the end of the definition or until a
// sequence delimiter. The delimiting rune is returned, zero for the end of
// the definition.
func (p *definitionParser) parseSequence() ([]*node, rune, error) {
	seq := []*node{}

	for {
		p.skipSpace()

		r := p.peek()
		switch {
		case r == 0:
			return seq, 0, nil

		case r == '|' || r == ']' || r == ')':
			p.next()
			return seq, r, nil

		case r == '[' || r == '(':
			p.next()
			g, err := p.parseGroup(r)
			if err != nil {
				return nil, 0, err
			}
			seq = append(seq, g)

		case r == '%':
			p.next()
			n, err := p.parsePlaceholder()
			if err != nil {
				return nil, 0, err
			}
			seq = append(seq, n)

		case r == '{' || r == '}':
			return nil, 0, fmt.Errorf("unexpected character (%c)", r)

		default:
			w, err := p.parseWord()
			if err != nil {
				return nil, 0, err
			}
			seq = append(seq, &node{tag: strings.ToUpper(w)})
		}

		// every element must be followed by a delimiter of some kind
		if r := p.peek(); r != 0 && !unicode.IsSpace(r) && !strings.ContainsRune("|])", r) {
			return nil, 0, fmt.Errorf("unexpected character (%c)", r)
		}
	}
}

// parseGroup parses the alternatives of a group. The opening delimiter has
// already been consumed and decides the group type.
func (p *definitionParser) parseGroup(open rune) (*node, error) {
	n := &node{typ: nodeRequired}
	until := ']'
	if open == '(' {
		n.typ = nodeOptional
		until = ')'
	}

	for {
		seq, term, err := p.parseSequence()
		if err != nil {
			return nil, err
		}
		if len(seq) == 0 {
			return nil, fmt.Errorf("empty alternative in group")
		}
		n.branch = append(n.branch, seq)

		switch term {
		case '|':
			// next alternative
		case until:
			return n, nil
		case 0:
			return nil, fmt.Errorf("unclosed group")
		default:
			return nil, fmt.Errorf("unexpected character (%c)", term)
		}
	}
}

// parsePlaceholder parses the directive rune and any label. The percent sign
// has already been consumed.
func (p *definitionParser) parsePlaceholder() (*node, error) {
	n := &node{}

	if p.peek() == '<' {
		p.next()
		label := strings.Builder{}
		for {
			r := p.next()
			if r == 0 {
				return nil, fmt.Errorf("unclosed placeholder label")
			}
			if r == '>' {
				break
			}
			label.WriteRune(r)
		}
		if label.Len() == 0 {
			return nil, fmt.Errorf("empty placeholder label")
		}
		n.label = label.String()
	}

	switch unicode.ToUpper(p.next()) {
	case 'N':
		n.tag = placeholderNumeric
	case 'P':
		n.tag = placeholderFloat
	case 'S':
		n.tag = placeholderString
	case 'F':
		n.tag = placeholderFile
	case 0:
		return nil, fmt.Errorf("placeholder directive missing")
	default:
		return nil, fmt.Errorf("unknown placeholder directive")
	}

	return n, nil
}
