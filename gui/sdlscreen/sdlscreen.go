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
	"io"

	"github.com/jetsetilly/gopher80/curated"
	"github.com/jetsetilly/gopher80/emulator"
	"github.com/jetsetilly/gopher80/environment"
	"github.com/jetsetilly/gopher80/hardware/keyboard"
	"github.com/jetsetilly/gopher80/hardware/video"
	"github.com/jetsetilly/gopher80/logger"
	"github.com/jetsetilly/gopher80/userinput"
	"github.com/jetsetilly/gopher80/version"

	"github.com/veandco/go-sdl2/sdl"
)

// how long Service() waits for a host event before giving the frame and
// display queues a turn. milliseconds.
const serviceTimeout = 10

// Screen is the SDL implementation of the Model I display and keyboard.
//
// All functions except NewScreen must be called from the main OS thread.
type Screen struct {
	env        *environment.Environment
	translator *userinput.Translator

	// channels to and from the emulation loop
	commands chan<- emulator.Command
	keys     chan<- keyboard.Event
	frames   <-chan video.Frame
	display  <-chan emulator.DisplayCommand

	window   *sdl.Window
	renderer *sdl.Renderer
	texture  *sdl.Texture

	// the texture's backing pixels
	pixels []byte

	// render state read from the configuration store. refreshed on a
	// config-changed display instruction
	fgRed, fgGreen, fgBlue uint8
	bgRed, bgGreen, bgBlue uint8
	generator              int

	fullscreen bool

	// the most recent frame from the emulation loop, redrawn whenever the
	// render state changes
	lastFrame video.Frame
	haveFrame bool

	// set when the emulation loop has said terminate. Service() does
	// nothing from then on
	ended bool
}

// NewScreen is the preferred method of initialisation for the Screen type.
// The channels of the supplied emulator are the only connection between the
// front-end and the emulation; NewScreen does not keep the emulator itself.
//
// Must be called from the main OS thread.
func NewScreen(env *environment.Environment, emu *emulator.Emulator) (*Screen, error) {
	scr := &Screen{
		env:        env,
		translator: userinput.NewTranslator(env),
		commands:   emu.GUICommands,
		keys:       emu.Keys,
		frames:     emu.Frames,
		display:    emu.Display,
	}

	err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS)
	if err != nil {
		return nil, curated.Errorf("sdlscreen: %v", err)
	}

	scr.readColors()
	scr.generator = env.Config.CharacterGenerator.Get().(int)

	w, h := env.Config.WindowedResolution.Size()
	scr.window, err = sdl.CreateWindow(version.ApplicationName,
		int32(sdl.WINDOWPOS_UNDEFINED), int32(sdl.WINDOWPOS_UNDEFINED),
		int32(w), int32(h), uint32(sdl.WINDOW_RESIZABLE))
	if err != nil {
		return nil, curated.Errorf("sdlscreen: %v", err)
	}

	err = scr.createRenderer()
	if err != nil {
		scr.window.Destroy()
		return nil, err
	}

	if env.Config.DesktopFullscreen.Get().(bool) {
		scr.setFullscreen(true)
	}

	// an empty screen until the first frame arrives
	scr.drawFrame()
	scr.present()

	return scr, nil
}

// Destroy implements the GuiCreator interface. Errors are not returned,
// they are printed to the supplied writer.
func (scr *Screen) Destroy(output io.Writer) {
	scr.destroyRenderer(output)

	if scr.window != nil {
		err := scr.window.Destroy()
		if err != nil {
			io.WriteString(output, err.Error())
		}
		scr.window = nil
	}

	sdl.Quit()
}

// Service implements the GuiCreator interface. One call deals with at most
// one burst of host events, all pending display instructions and the most
// recent frame. The main loop calls it over and over.
func (scr *Screen) Service() {
	if scr.ended {
		return
	}

	scr.serviceDisplay()
	if scr.ended {
		return
	}

	redraw := scr.serviceFrames()

	// wait briefly for a host event, then drain whatever else has arrived
	for ev := sdl.WaitEventTimeout(serviceTimeout); ev != nil; ev = sdl.PollEvent() {
		switch ev := ev.(type) {
		case *sdl.QuitEvent:
			scr.sendCommand(emulator.Command{Op: emulator.Terminate})

		case *sdl.KeyboardEvent:
			scr.serviceKeyboard(ev)

		case *sdl.WindowEvent:
			switch ev.Event {
			case sdl.WINDOWEVENT_FOCUS_LOST:
				// a key released while another window has focus would
				// otherwise be held down forever
				scr.releaseAllKeys()
			case sdl.WINDOWEVENT_EXPOSED, sdl.WINDOWEVENT_SIZE_CHANGED:
				redraw = true
			}
		}
	}

	if redraw {
		scr.drawFrame()
		scr.present()
	}
}

// serviceDisplay deals with the pending display instructions from the
// emulation loop.
func (scr *Screen) serviceDisplay() {
	for {
		select {
		case dc, ok := <-scr.display:
			if !ok {
				panic("channel disconnect")
			}
			switch dc.Op {
			case emulator.DisplayTerminate:
				scr.ended = true
				return
			case emulator.DisplayConfigChanged:
				scr.configChanged(dc.Key)
			}
		default:
			return
		}
	}
}

// serviceFrames takes the most recent frame from the queue. Returns true
// when there is something new to draw. Frames the front-end was too slow
// for are dropped, not displayed late.
func (scr *Screen) serviceFrames() bool {
	updated := false
	for {
		select {
		case frame, ok := <-scr.frames:
			if !ok {
				panic("channel disconnect")
			}
			scr.lastFrame = frame
			scr.haveFrame = true
			updated = true
		default:
			return updated
		}
	}
}

// sendCommand to the emulation loop without blocking.
func (scr *Screen) sendCommand(cmd emulator.Command) {
	select {
	case scr.commands <- cmd:
	default:
		logger.Logf(scr.env, "sdl", "command dropped: %v", cmd.Op)
	}
}

// sendKey to the emulation loop without blocking.
func (scr *Screen) sendKey(ev keyboard.Event) {
	select {
	case scr.keys <- ev:
	default:
		logger.Log(scr.env, "sdl", "key event dropped")
	}
}

// releaseAllKeys resets the translator and releases every matrix
// intersection.
func (scr *Screen) releaseAllKeys() {
	scr.translator.Reset()
	for row := 0; row < keyboard.NumRows; row++ {
		scr.sendKey(keyboard.Event{Row: row, Mask: 0xff, Pressed: false})
	}
}
