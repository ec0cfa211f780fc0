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

// Package sdlscreen is the SDL front-end: the Model I display and keyboard.
//
// The display is a 512x192 streaming texture, one 8x12 glyph per character
// cell, scaled to whatever window or fullscreen resolution the
// configuration store asks for. Glyphs come from a built-in character
// generator; the block graphics half of the character set is synthesised.
//
// Host keyboard events are translated to keyboard matrix events by the
// userinput package and forwarded to the emulation loop. A few keys belong
// to the front-end itself: F11 toggles fullscreen, F12 is a hard reset and
// the Pause key pauses the loop. Closing the window asks the loop to
// terminate; the loop answers with a terminate instruction of its own when
// it is ready.
//
// Everything here must run on the main OS thread. The type implements the
// GuiCreator interface and is created and serviced through the main
// thread's service loop.
package sdlscreen
