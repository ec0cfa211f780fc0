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

package emulator

import (
	"github.com/jetsetilly/gopher80/hardware/cassette"
)

// Op enumerates the requests the emulation loop accepts.
type Op string

// List of defined operations. The comment alongside each names the Command
// fields it reads.
const (
	PowerOn  Op = "PowerOn"
	PowerOff Op = "PowerOff"
	Reset    Op = "Reset" // Full

	SwitchROM Op = "SwitchROM" // N, the slot number

	Pause Op = "Pause" // Pause

	// Restore throws the machine away and builds a new one from the
	// configuration store
	Restore Op = "Restore"

	LoadROM Op = "LoadROM" // Path, N as the offset
	LoadRAM Op = "LoadRAM" // Path, N as the offset

	WipeRAM Op = "WipeRAM"
	WipeROM Op = "WipeROM"
	WipeAll Op = "WipeAll"

	TapeInsert Op = "TapeInsert" // Path, Format
	TapeEject  Op = "TapeEject"
	TapeErase  Op = "TapeErase"
	TapeSeek   Op = "TapeSeek" // N, the head position
	TapeRewind Op = "TapeRewind"

	ConfigChange Op = "ConfigChange" // Key, Value

	// raise the non-maskable interrupt line
	NMI Op = "NMI"

	Terminate Op = "Terminate"
)

// PauseMode says how a Pause command changes the paused state.
type PauseMode int

// The zero value toggles, so Command{Op: Pause} does what a pause key
// should.
const (
	PauseToggle PauseMode = iota
	PauseSet
	PauseClear
)

// Command is one request to the emulation loop. Which fields mean anything
// depends on the Op.
type Command struct {
	Op Op

	// the integer argument. slot number, head position or load offset
	N int

	// the file argument
	Path string

	// the arguments of ConfigChange
	Key   string
	Value string

	Pause  PauseMode
	Full   bool
	Format cassette.Format
}

// StatusKind enumerates the feedback the emulation loop produces.
type StatusKind string

// List of defined status kinds.
const (
	// the CPU has halted or resumed. On carries the new state
	StatusHalted StatusKind = "Halted"

	// the machine has been powered on or off. On carries the new state
	StatusPower StatusKind = "Power"

	// the loop has been paused or unpaused. On carries the new state
	StatusPause StatusKind = "Pause"

	// a line of text for the user. Message carries the text
	StatusMessage StatusKind = "Message"

	// acknowledgment of a Terminate command. the loop sends this once,
	// immediately before its goroutine exits
	StatusDestroyed StatusKind = "Destroyed"
)

// Status is one piece of feedback from the emulation loop.
type Status struct {
	Kind    StatusKind
	On      bool
	Message string
}

// DisplayOp enumerates the instructions the emulation loop sends to the
// front-end.
type DisplayOp string

// List of defined display operations.
const (
	// a display-affecting configuration option has changed. Key names it;
	// the front-end re-reads the value from the store
	DisplayConfigChanged DisplayOp = "ConfigChanged"

	// the front-end should destroy its window and let its thread exit
	DisplayTerminate DisplayOp = "Terminate"
)

// DisplayCommand is one instruction to the front-end.
type DisplayCommand struct {
	Op  DisplayOp
	Key string
}

// Channel capacities for the queues between the threads. None of the
// queues is allowed to block the emulation loop; when a queue is full the
// producing side drops (or displaces, for frames) rather than waits.
const (
	CommandQueueCap = 64
	StatusQueueCap  = 64
	FrameQueueCap   = 4
	DisplayQueueCap = 16
)
