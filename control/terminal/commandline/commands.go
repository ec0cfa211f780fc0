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

	"github.com/jetsetilly/gopher80/curated"
)

// Commands is the result of ParseCommandTemplate().
type Commands struct {
	Index map[string]*node

	cmds []*node

	// the command that triggers the help system. the empty string if
	// AddHelp() has not been called
	helpCommand string
	helps       map[string]string

	// formatting information for the help overview, decided when the help
	// system is added
	helpColFmt string
	helpCols   int
}

// Len implements the sort.Interface.
func (cmds Commands) Len() int {
	return len(cmds.cmds)
}

// Less implements the sort.Interface.
func (cmds Commands) Less(i, j int) bool {
	return cmds.cmds[i].tag < cmds.cmds[j].tag
}

// Swap implements the sort.Interface.
func (cmds Commands) Swap(i, j int) {
	cmds.cmds[i], cmds.cmds[j] = cmds.cmds[j], cmds.cmds[i]
}

// String returns the canonical form of every command, one per line. Useful
// for testing purposes.
func (cmds Commands) String() string {
	s := strings.Builder{}
	for _, n := range cmds.cmds {
		s.WriteString(n.String())
		s.WriteString("\n")
	}
	return strings.TrimRight(s.String(), "\n")
}

// AddHelp adds a help command to an already parsed Commands instance, using
// the existing command keywords as the list of help topics. Sort the
// Commands instance before calling AddHelp() if a sorted topic list is
// wanted.
func (cmds *Commands) AddHelp(helpCommand string, helps map[string]string) error {
	helpCommand = strings.ToUpper(helpCommand)
	if _, ok := cmds.Index[helpCommand]; ok {
		return curated.Errorf("parser: help command (%s) already defined", helpCommand)
	}

	// build the help definition from the other commands
	defn := strings.Builder{}
	defn.WriteString(helpCommand)
	defn.WriteString(" (")
	for _, n := range cmds.cmds {
		defn.WriteString(n.tag)
		defn.WriteString("|")
	}
	defn.WriteString(helpCommand)
	defn.WriteString(")")

	n, _, err := parseDefinition(defn.String())
	if err != nil {
		return curated.Errorf("parser: %v", err)
	}

	cmds.cmds = append(cmds.cmds, n)
	cmds.Index[helpCommand] = n
	cmds.helpCommand = helpCommand
	cmds.helps = helps

	// the overview columns are sized for the longest keyword
	longest := 0
	for _, n := range cmds.cmds {
		if len(n.tag) > longest {
			longest = len(n.tag)
		}
	}
	cmds.helpColFmt = fmt.Sprintf("%%%ds", longest+3)
	cmds.helpCols = 80 / (longest + 3)
	if cmds.helpCols < 1 {
		cmds.helpCols = 1
	}

	return nil
}

// HelpOverview returns the list of command keywords arranged in columns.
func (cmds Commands) HelpOverview() string {
	s := strings.Builder{}
	for i, n := range cmds.cmds {
		s.WriteString(fmt.Sprintf(cmds.helpColFmt, n.tag))
		if (i+1)%cmds.helpCols == 0 {
			s.WriteString("\n")
		}
	}
	return strings.TrimRight(s.String(), "\n ")
}

// Help returns the help text for the keyword, along with the usage string
// for the command.
func (cmds Commands) Help(keyword string) string {
	keyword = strings.ToUpper(keyword)

	s := strings.Builder{}
	if txt, ok := cmds.helps[keyword]; ok {
		s.WriteString(txt)
	} else {
		s.WriteString(fmt.Sprintf("no help available for %s", keyword))
	}

	if n, ok := cmds.Index[keyword]; ok {
		s.WriteString("\n")
		s.WriteString(n.usageString())
	}

	return s.String()
}
