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

// Package cpu emulates the Zilog Z80 found in the TRS-80 Model I.
//
// The CPU is initialised with an implementation of the cpubus.Memory
// interface. Every memory and IO access goes through that interface and none
// of them can fail. Rejecting or redirecting odd addresses is the bus's
// business, not the CPU's.
//
// The CPU is driven with the Step() function. A single call services a
// pending interrupt, or executes a single instruction, and returns the
// number of clock cycles consumed. The caller is expected to meter the
// returned cycles against the other components of the machine.
//
// Opcode dispatch is through per-instance tables of function values. One
// table covers the unprefixed opcode page and there is one each for the CB,
// ED and DD/FD prefixed pages. The undocumented instructions are
// implemented, as are the undocumented bits 5 and 3 of the flags register.
//
// The interrupt lines are polled rather than signalled. At the top of every
// Step() the CPU asks the bus for latched interrupt requests and
// acknowledges the one it accepts. A non-maskable request always wins; a
// maskable request is honoured only when interrupts are enabled, with the
// response determined by the current interrupt mode.
package cpu
