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

// The keywords that open each command.
const (
	cmdCassette = "CASSETTE"
	cmdConfig   = "CONFIG"
	cmdExit     = "EXIT"
	cmdHelp     = "HELP"
	cmdLog      = "LOG"
	cmdMachine  = "MACHINE"
	cmdMemory   = "MEMORY"
	cmdMessages = "MESSAGES"
	cmdQuit     = "QUIT"
)

// the commandline template for the control language. numeric arguments
// accept decimal, 0x hex, 0b binary, leading zero octal and trailing h hex
// forms.
var commandTemplate = []string{
	cmdCassette + " (INSERT (CAS|CPT) %<file>F|EJECT|ERASE|SEEK %<position>N|REWIND)",
	cmdConfig + " (LIST|SHOW %<key>S|CHANGE %<key>S = %<value>S)",
	cmdExit,
	cmdLog + " [ALL|CLEAR]",
	cmdMachine + " (POWER (ON|OFF)|RESET [CPU|FULL]|SWITCH-ROM %<slot>N|PAUSE [ON|OFF|TOGGLE]|UNPAUSE|RESTORE)",
	cmdMemory + " (LOAD (ROM|RAM) %<file>F [%<offset>N]|WIPE (RAM|ROM|ALL))",
	cmdMessages + " (SHOW|HIDE|TOGGLE|CLEAR) (MACHINE|EMULATOR|ALL)",
	cmdQuit,
}

var helps = map[string]string{
	cmdCassette: "Operate the cassette deck. INSERT makes a file the backing tape, in the given format. " +
		"EJECT removes it, saving nothing. ERASE empties the tape and truncates the file. " +
		"SEEK moves the tape head to a byte position and REWIND moves it to the start.",
	cmdConfig: "Inspect and change configuration options. LIST shows every option with its current value. " +
		"CHANGE validates the new value, rewrites the configuration file and applies the change " +
		"to the running machine where it can.",
	cmdExit: "Exit the emulator. The configuration file is rewritten on the way out.",
	cmdLog:  "Print recent log entries, or all of them. CLEAR empties the log.",
	cmdMachine: "Operate the machine. RESET on its own pulls the reset line; RESET FULL is a power cycle. " +
		"SWITCH-ROM loads the ROM from the numbered slot (1 to 3) and performs a full reset. " +
		"PAUSE and UNPAUSE stop and start the flow of time. " +
		"RESTORE rebuilds the machine from the configuration store.",
	cmdMemory: "Load memory from a file, or wipe it. The optional offset is relative to the start of the " +
		"chip, not to the address bus.",
	cmdMessages: "Control which log messages are echoed to this terminal. MACHINE covers the emulated " +
		"hardware, EMULATOR covers everything around it.",
	cmdQuit: "A synonym for EXIT.",
}
