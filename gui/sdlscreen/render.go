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
	"os"

	"github.com/jetsetilly/gopher80/curated"
	"github.com/jetsetilly/gopher80/hardware/video"
	"github.com/jetsetilly/gopher80/logger"

	"github.com/veandco/go-sdl2/sdl"
)

// dimensions of the display texture. the texture is rendered at the native
// resolution of the Model I display and the renderer scales it to the
// window.
const (
	textureWidth  = video.Cols * glyphWidth
	textureHeight = video.Rows * glyphHeight
)

// the number of bytes for each texture pixel.
const pixelDepth = 4

// createRenderer builds the renderer and the display texture according to
// the acceleration and vsync options.
func (scr *Screen) createRenderer() error {
	var flags uint32
	if scr.env.Config.UseHWAccel.Get().(bool) {
		flags |= uint32(sdl.RENDERER_ACCELERATED)
	} else {
		flags |= uint32(sdl.RENDERER_SOFTWARE)
	}
	if scr.env.Config.UseVSync.Get().(bool) {
		flags |= uint32(sdl.RENDERER_PRESENTVSYNC)
	}

	var err error

	scr.renderer, err = sdl.CreateRenderer(scr.window, -1, flags)
	if err != nil {
		return curated.Errorf("sdlscreen: %v", err)
	}

	// scale to the window while keeping the display's aspect ratio
	err = scr.renderer.SetLogicalSize(textureWidth, textureHeight)
	if err != nil {
		return curated.Errorf("sdlscreen: %v", err)
	}

	scr.texture, err = scr.renderer.CreateTexture(uint32(sdl.PIXELFORMAT_ARGB8888),
		int(sdl.TEXTUREACCESS_STREAMING), textureWidth, textureHeight)
	if err != nil {
		return curated.Errorf("sdlscreen: %v", err)
	}

	scr.pixels = make([]byte, textureWidth*textureHeight*pixelDepth)

	return nil
}

// destroyRenderer releases the texture and the renderer. Errors are printed
// to the supplied writer.
func (scr *Screen) destroyRenderer(output io.Writer) {
	if scr.texture != nil {
		err := scr.texture.Destroy()
		if err != nil {
			io.WriteString(output, err.Error())
		}
		scr.texture = nil
	}

	if scr.renderer != nil {
		err := scr.renderer.Destroy()
		if err != nil {
			io.WriteString(output, err.Error())
		}
		scr.renderer = nil
	}
}

// readColors refreshes the cached foreground and background colors from the
// configuration store.
func (scr *Screen) readColors() {
	scr.fgRed, scr.fgGreen, scr.fgBlue = scr.env.Config.FGColor.RGB()
	scr.bgRed, scr.bgGreen, scr.bgBlue = scr.env.Config.BGColor.RGB()
}

// configChanged reacts to a config-changed display instruction from the
// emulation loop. The new value is read from the store, not carried by the
// instruction.
func (scr *Screen) configChanged(key string) {
	switch key {
	case "fg_color", "bg_color":
		scr.readColors()

	case "character_generator":
		scr.generator = scr.env.Config.CharacterGenerator.Get().(int)

	case "windowed_resolution":
		if !scr.fullscreen {
			w, h := scr.env.Config.WindowedResolution.Size()
			scr.window.SetSize(int32(w), int32(h))
		}

	case "fullscreen_resolution", "desktop_fullscreen_mode":
		if scr.fullscreen {
			scr.setFullscreen(true)
		}

	case "use_hw_accel", "use_vsync":
		scr.destroyRenderer(os.Stderr)
		err := scr.createRenderer()
		if err != nil {
			// no renderer means no display. nothing to do but give up
			panic(err)
		}
	}

	scr.drawFrame()
	scr.present()
}

// setFullscreen moves the window in or out of fullscreen. The
// desktop_fullscreen_mode option selects between borderless desktop
// fullscreen and a real display mode change to fullscreen_resolution.
func (scr *Screen) setFullscreen(fullscreen bool) {
	scr.fullscreen = fullscreen

	if !fullscreen {
		err := scr.window.SetFullscreen(0)
		if err != nil {
			logger.Logf(scr.env, "sdl", "windowed: %v", err)
		}
		w, h := scr.env.Config.WindowedResolution.Size()
		scr.window.SetSize(int32(w), int32(h))
		return
	}

	if scr.env.Config.DesktopFullscreen.Get().(bool) {
		err := scr.window.SetFullscreen(uint32(sdl.WINDOW_FULLSCREEN_DESKTOP))
		if err != nil {
			logger.Logf(scr.env, "sdl", "fullscreen: %v", err)
		}
		return
	}

	w, h := scr.env.Config.FullscreenResolution.Size()
	err := scr.window.SetDisplayMode(&sdl.DisplayMode{W: int32(w), H: int32(h)})
	if err != nil {
		logger.Logf(scr.env, "sdl", "fullscreen: %v", err)
	}
	err = scr.window.SetFullscreen(uint32(sdl.WINDOW_FULLSCREEN))
	if err != nil {
		logger.Logf(scr.env, "sdl", "fullscreen: %v", err)
	}
}

// drawFrame renders the most recent frame into the backing pixels and
// updates the texture.
func (scr *Screen) drawFrame() {
	for i := 0; i < len(scr.pixels); i += pixelDepth {
		scr.pixels[i] = scr.bgBlue
		scr.pixels[i+1] = scr.bgGreen
		scr.pixels[i+2] = scr.bgRed
		scr.pixels[i+3] = 255
	}

	if scr.haveFrame {
		if scr.lastFrame.Wide {
			// 32 column mode. only the even cells are displayed, at double
			// width
			for cell := 0; cell < video.NumCells; cell += 2 {
				g := glyph(scr.lastFrame.Cells[cell], scr.generator)
				scr.drawGlyphWide(g, (cell%video.Cols)*glyphWidth, (cell/video.Cols)*glyphHeight)
			}
		} else {
			for cell := 0; cell < video.NumCells; cell++ {
				g := glyph(scr.lastFrame.Cells[cell], scr.generator)
				scr.drawGlyph(g, (cell%video.Cols)*glyphWidth, (cell/video.Cols)*glyphHeight)
			}
		}
	}

	err := scr.texture.Update(nil, scr.pixels, textureWidth*pixelDepth)
	if err != nil {
		logger.Logf(scr.env, "sdl", "texture: %v", err)
	}
}

// drawGlyph plots one 8x12 bit pattern at a texture coordinate. The pixel
// layout is the packed little-endian ARGB8888 of the texture.
func (scr *Screen) drawGlyph(g [glyphHeight]uint8, x int, y int) {
	for row := 0; row < glyphHeight; row++ {
		i := ((y+row)*textureWidth + x) * pixelDepth
		for bit := 0; bit < glyphWidth; bit++ {
			if g[row]&(0x80>>bit) != 0x00 {
				scr.pixels[i] = scr.fgBlue
				scr.pixels[i+1] = scr.fgGreen
				scr.pixels[i+2] = scr.fgRed
			}
			i += pixelDepth
		}
	}
}

// drawGlyphWide is drawGlyph with every pixel doubled horizontally, for the
// 32 column mode.
func (scr *Screen) drawGlyphWide(g [glyphHeight]uint8, x int, y int) {
	for row := 0; row < glyphHeight; row++ {
		i := ((y+row)*textureWidth + x) * pixelDepth
		for bit := 0; bit < glyphWidth; bit++ {
			if g[row]&(0x80>>bit) != 0x00 {
				scr.pixels[i] = scr.fgBlue
				scr.pixels[i+1] = scr.fgGreen
				scr.pixels[i+2] = scr.fgRed
				scr.pixels[i+pixelDepth] = scr.fgBlue
				scr.pixels[i+pixelDepth+1] = scr.fgGreen
				scr.pixels[i+pixelDepth+2] = scr.fgRed
			}
			i += pixelDepth * 2
		}
	}
}

// present the texture through the renderer.
func (scr *Screen) present() {
	scr.renderer.SetDrawColor(scr.bgRed, scr.bgGreen, scr.bgBlue, 255)
	err := scr.renderer.Clear()
	if err != nil {
		logger.Logf(scr.env, "sdl", "render: %v", err)
	}

	err = scr.renderer.Copy(scr.texture, nil, nil)
	if err != nil {
		logger.Logf(scr.env, "sdl", "render: %v", err)
	}

	scr.renderer.Present()
}
