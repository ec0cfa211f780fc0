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

import "strings"

type nodeType int

const (
	// the first node of a command definition. the node tag is the command
	// keyword and the next field holds the argument sequence
	nodeRoot nodeType = iota + 1

	// a group of alternative sequences, one of which must match
	nodeRequired

	// a group of alternative sequences, all of which can be skipped
	nodeOptional
)

// the placeholder directives. the rune following the percent sign decides
// how a token is matched.
const (
	placeholderNumeric = "%N"
	placeholderFloat   = "%P"
	placeholderString  = "%S"
	placeholderFile    = "%F"
)

// node is an element of a parsed command template.
//
// A leaf node matches a single token, either a keyword that must appear as
// typed or a placeholder directive. A group node has no tag of its own and
// instead holds alternative sequences in the branch field, one per
// alternative. Root nodes are leaf nodes for the command keyword with the
// argument sequence attached to the next field.
type node struct {
	tag string

	// a friendly name for a placeholder leaf. used when printing the node
	label string

	typ nodeType

	// root nodes only
	next []*node

	// group nodes only
	branch [][]*node
}

func (n node) isGroup() bool {
	return n.tag == ""
}

func (n node) isPlaceholder() bool {
	return len(n.tag) == 2 && n.tag[0] == '%'
}

func (n node) String() string {
	s := strings.Builder{}

	switch {
	case n.typ == nodeRoot:
		s.WriteString(n.tag)
		if len(n.next) > 0 {
			s.WriteString(" ")
			s.WriteString(seqString(n.next))
		}

	case n.isGroup():
		left, right := "[", "]"
		if n.typ == nodeOptional {
			left, right = "(", ")"
		}
		s.WriteString(left)
		for i, alt := range n.branch {
			if i > 0 {
				s.WriteString("|")
			}
			s.WriteString(seqString(alt))
		}
		s.WriteString(right)

	case n.isPlaceholder() && n.label != "":
		s.WriteString("%<")
		s.WriteString(n.label)
		s.WriteString(">")
		s.WriteString(n.tag[1:])

	default:
		s.WriteString(n.tag)
	}

	return s.String()
}

func seqString(seq []*node) string {
	s := make([]string, 0, len(seq))
	for _, n := range seq {
		s = append(s, n.String())
	}
	return strings.Join(s, " ")
}

// usageString is the string to use when help for a command is requested.
func (n node) usageString() string {
	return "usage: " + n.String()
}

// tagVerbose describes a leaf node for use in error messages.
func (n node) tagVerbose() string {
	switch n.tag {
	case placeholderNumeric:
		return "numeric argument"
	case placeholderFloat:
		return "floating point argument"
	case placeholderString:
		return "string argument"
	case placeholderFile:
		return "filename argument"
	}
	return n.tag
}

// nodeVerbose describes any node for use in error messages. Groups are
// described by the first element of each alternative.
func (n node) nodeVerbose() string {
	if !n.isGroup() {
		return n.tagVerbose()
	}

	s := make([]string, 0, len(n.branch))
	for _, alt := range n.branch {
		if len(alt) > 0 {
			s = append(s, alt[0].nodeVerbose())
		}
	}
	return strings.Join(s, " or ")
}
