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

package hardware

import (
	"fmt"
	"os"
	"strings"

	"github.com/jetsetilly/gopher80/curated"
	"github.com/jetsetilly/gopher80/environment"
	"github.com/jetsetilly/gopher80/hardware/cpu"
	"github.com/jetsetilly/gopher80/hardware/memory"
	"github.com/jetsetilly/gopher80/logger"
)

// Sentinal errors returned by the TRS80 type.
const (
	NoSuchROMSlot = "trs80: no such rom slot: %d"
)

// NumROMSlots is the number of ROM slots in the configuration store.
const NumROMSlots = 3

// TRS80 is the main container for the emulated components of the Model I.
// The CPU is attached to the bus provided by the Mem instance; the bus in
// turn owns the individual devices.
type TRS80 struct {
	Env *environment.Environment

	CPU *cpu.CPU
	Mem *memory.Memory

	// the rom slot most recently loaded by SwitchROM()
	slot int
}

// NewTRS80 is the preferred method of initialisation for the TRS80 type. The
// ROM slot named by the configuration store is loaded and the machine is
// left in its power-on state.
func NewTRS80(env *environment.Environment) (*TRS80, error) {
	trs := &TRS80{Env: env}

	var err error

	trs.Mem, err = memory.NewMemory(env)
	if err != nil {
		return nil, curated.Errorf("trs80: %v", err)
	}

	trs.CPU = cpu.NewCPU(trs.Mem)

	err = trs.SwitchROM(env.Config.DefaultROM.Get().(int))
	if err != nil {
		return nil, err
	}

	return trs, nil
}

// Step the machine by one CPU instruction. The devices on the bus are run
// for the cycles the instruction consumed. Returns the cycle count so that
// the caller can account against the frame budget.
func (trs *TRS80) Step() int {
	cyc := trs.CPU.Step()
	trs.Mem.Keyboard.Tick(cyc)
	trs.Mem.Video.Tick(cyc)
	trs.Mem.Cassette.Tick(cyc)
	return cyc
}

// Reset the machine. A partial reset pulls the Z80 reset line and nothing
// else, like the button on the back of the real keyboard unit. A full reset
// also returns the devices on the bus to their power-on state. Neither
// disturbs the contents of RAM.
func (trs *TRS80) Reset(full bool) {
	trs.CPU.Reset()
	if full {
		trs.Mem.Reset()
	}
}

// PowerOn returns the machine to its power-on state. The loaded ROM image
// is retained.
func (trs *TRS80) PowerOn() {
	trs.Reset(true)
	logger.Log(trs.Env, "trs80", "power on")
}

// PowerOff halts the CPU and powers off the devices on the bus. The
// cassette deck flushes any recording in progress to the backing file. RAM
// contents do not survive the power cycle.
func (trs *TRS80) PowerOff() {
	trs.CPU.Halted = true
	trs.Mem.Cassette.PowerOff()
	trs.Mem.RAM.Wipe()
	logger.Log(trs.Env, "trs80", "power off")
}

// SwitchROM loads the image named by the numbered slot in the configuration
// store and performs a full reset. A slot set to "none", or whose file
// cannot be read, loads the built-in stub program instead. An image too
// large for the ROM window is an error and the chip is left unchanged.
func (trs *TRS80) SwitchROM(slot int) error {
	filename, err := trs.slotFilename(slot)
	if err != nil {
		return err
	}

	if filename == "" || strings.EqualFold(filename, "none") {
		trs.Mem.ROM.LoadStub()
	} else {
		data, err := os.ReadFile(filename)
		if err != nil {
			logger.Logf(trs.Env, "trs80", "rom slot %d: %v", slot, err)
			trs.Mem.ROM.LoadStub()
		} else {
			err = trs.Mem.ROM.LoadImage(data)
			if err != nil {
				return curated.Errorf("trs80: %v", err)
			}
			logger.Logf(trs.Env, "trs80", "rom slot %d: %s (%d bytes)", slot, filename, len(data))
		}
	}

	trs.slot = slot
	trs.Reset(true)

	return nil
}

// ROMSlot returns the number of the ROM slot most recently loaded.
func (trs *TRS80) ROMSlot() int {
	return trs.slot
}

// slotFilename maps a slot number to the filename held by the corresponding
// configuration option.
func (trs *TRS80) slotFilename(slot int) (string, error) {
	switch slot {
	case 1:
		return trs.Env.Config.Level1ROM.String(), nil
	case 2:
		return trs.Env.Config.Level2ROM.String(), nil
	case 3:
		return trs.Env.Config.MiscROM.String(), nil
	}
	return "", curated.Errorf(NoSuchROMSlot, slot)
}

// LoadROM patches the ROM window with the contents of a file, starting at
// the given offset. Unlike SwitchROM the rest of the window is untouched
// and no reset is performed.
func (trs *TRS80) LoadROM(filename string, offset int) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		return curated.Errorf("trs80: %v", err)
	}
	err = trs.Mem.ROM.Patch(offset, data)
	if err != nil {
		return err
	}
	logger.Logf(trs.Env, "trs80", "rom patched: %s (%d bytes at %#04x)", filename, len(data), offset)
	return nil
}

// LoadRAM copies the contents of a file into RAM, starting at the given
// offset. The offset is relative to the RAM origin, not to the address
// space.
func (trs *TRS80) LoadRAM(filename string, offset int) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		return curated.Errorf("trs80: %v", err)
	}
	err = trs.Mem.RAM.Patch(offset, data)
	if err != nil {
		return err
	}
	logger.Logf(trs.Env, "trs80", "ram loaded: %s (%d bytes at %#04x)", filename, len(data), offset)
	return nil
}

// ResizeRAM changes the amount of RAM fitted to the machine. Contents are
// preserved up to the smaller of the old and new sizes.
func (trs *TRS80) ResizeRAM(size int) error {
	return trs.Mem.RAM.Resize(size)
}

// Run sets the machine running as quickly as possible. continueCheck() is
// consulted after every instruction and should return false when the
// emulation is to stop.
func (trs *TRS80) Run(continueCheck func() (bool, error)) error {
	var err error

	cont := true
	for cont {
		trs.Step()
		cont, err = continueCheck()
	}

	return err
}

// RunForFrameCount sets the machine running for the specified number of
// video frames. Useful for fps measurement and for scripted runs. The
// callback is called before every instruction.
func (trs *TRS80) RunForFrameCount(numFrames int, callback func()) {
	target := trs.Mem.Video.FrameNum() + numFrames
	for trs.Mem.Video.FrameNum() < target {
		callback()
		trs.Step()
	}
}

func (trs *TRS80) String() string {
	s := strings.Builder{}
	s.WriteString(fmt.Sprintf("%s\n", trs.CPU.String()))
	s.WriteString(fmt.Sprintf("rom: slot %d   ram: %dk   ", trs.slot, trs.Mem.RAM.Size()/1024))
	if trs.Mem.Video.Wide() {
		s.WriteString("video: 32 column")
	} else {
		s.WriteString("video: 64 column")
	}
	if trs.Mem.Cassette.Inserted() {
		s.WriteString(fmt.Sprintf("\ncassette: %s", trs.Mem.Cassette.String()))
	}
	return s.String()
}
