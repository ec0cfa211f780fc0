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

// Package userinput translates keyboard input from the host machine into
// events for the emulated keyboard matrix.
//
// It can be thought of as a translation layer between the GUI
// implementation and the hardware keyboard package. Host keys are named by
// the strings SDL reports, which keeps the GUI's involvement down to
// forwarding names, but nothing in here links against SDL.
//
// The host keyboard is a poor fit for the Model I's in a few places. Keys
// the Model I has once but the host has twice (the shift keys, the digits
// and their keypad copies, return) are reconciled here, so that holding one
// host key cannot be cancelled by tapping its twin.
package userinput
