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

package terminal

// Style is used by the Output interface to decorate output in a consistent
// way. How the style is interpreted depends on the implementation. The
// plainterm package ignores all styles except StyleError.
type Style int

// List of terminal styles.
const (
	// the output from the help command
	StyleHelp Style = iota

	// regular feedback for a user command. for example, the output of the
	// config commands
	StyleFeedback

	// status updates from the emulation loop. halt notifications, pause
	// state, and so on
	StyleStatus

	// log entries echoed to the terminal
	StyleLog

	// command errors and any other failure the user should see
	StyleError
)
