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

package sdlscreen

import (
	"github.com/jetsetilly/gopher80/emulator"

	"github.com/veandco/go-sdl2/sdl"
)

// serviceKeyboard deals with one host keyboard event. A few keys belong to
// the front-end; everything else goes through the matrix translator.
//
// The translation is positional, so the scancode name is used rather than
// the name of the symbol the host keymap assigns to the key.
func (scr *Screen) serviceKeyboard(ev *sdl.KeyboardEvent) {
	if ev.Repeat == 1 {
		// the matrix does its own key repeat, in ROM, like the real machine
		return
	}

	// front-end keys act on the up event, so a fumbled press can be aborted
	// by moving the pointer away. the matrix keys act on both
	if ev.Type == sdl.KEYUP {
		switch ev.Keysym.Scancode {
		case sdl.SCANCODE_F11:
			scr.setFullscreen(!scr.fullscreen)
			return
		case sdl.SCANCODE_F12:
			scr.sendCommand(emulator.Command{Op: emulator.Reset, Full: true})
			return
		case sdl.SCANCODE_PAUSE:
			scr.sendCommand(emulator.Command{Op: emulator.Pause, Pause: emulator.PauseToggle})
			return
		}
	} else if ev.Type == sdl.KEYDOWN {
		switch ev.Keysym.Scancode {
		case sdl.SCANCODE_F11, sdl.SCANCODE_F12, sdl.SCANCODE_PAUSE:
			return
		}
	}

	key := sdl.GetScancodeName(ev.Keysym.Scancode)

	switch ev.Type {
	case sdl.KEYDOWN:
		if kev, ok := scr.translator.KeyDown(key); ok {
			scr.sendKey(kev)
		}
	case sdl.KEYUP:
		if kev, ok := scr.translator.KeyUp(key); ok {
			scr.sendKey(kev)
		}
	}
}
