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
	"strconv"
	"strings"
	"time"

	"github.com/jetsetilly/gopher80/curated"
	"github.com/jetsetilly/gopher80/environment"
	"github.com/jetsetilly/gopher80/hardware"
	"github.com/jetsetilly/gopher80/hardware/cassette"
	"github.com/jetsetilly/gopher80/hardware/clocks"
	"github.com/jetsetilly/gopher80/hardware/keyboard"
	"github.com/jetsetilly/gopher80/hardware/video"
	"github.com/jetsetilly/gopher80/logger"
	"github.com/jetsetilly/gopher80/notifications"
)

// Sentinal errors returned by the Emulator type.
const (
	UnknownCommand = "emulator: unknown command: %v"
)

const nsPerSecond = int64(1000000000)

// the target duration of one pass through the loop.
const frameNs = int64(1000000000 / clocks.FramesPerSecond)

// the pacing clock. the tests substitute a scripted implementation so the
// pacing arithmetic can be exercised without wall time.
type clock interface {
	now() int64
	sleep(ns int64)
}

// wallClock measures from a fixed origin. time.Since() uses the runtime's
// monotonic reading, so the values never jump with the system clock.
type wallClock struct {
	origin time.Time
}

func (c *wallClock) now() int64 {
	return int64(time.Since(c.origin))
}

func (c *wallClock) sleep(ns int64) {
	time.Sleep(time.Duration(ns))
}

// Emulator is the logic thread of the emulation. It owns the machine;
// every other thread works on the machine only by sending commands through
// the channels here.
//
// The channels are exported for wiring but the loop is the only goroutine
// that may touch the unexported state once Run has been called.
type Emulator struct {
	env *environment.Environment
	trs *hardware.TRS80

	// the control thread sends commands and receives status
	Commands chan Command
	Status   chan Status

	// the front-end thread sends commands and key events and receives
	// frames and display instructions
	GUICommands chan Command
	Keys        chan keyboard.Event
	Frames      chan video.Frame
	Display     chan DisplayCommand

	clk clock

	powered bool
	paused  bool
	halted  bool
	done    bool

	// pacing state. balance is the cycles still owed from previous frames
	// (negative after an overshoot). carry holds the sub-cycle remainder
	// of the nanosecond conversion, in units of cycle-nanoseconds, so the
	// conversion loses nothing to rounding
	lastFrameNs int64
	balance     int64
	carry       int64

	// notices collected from the machine while it was stepping
	notices []pendingNotice
}

// pendingNotice is a notice waiting for the end of the frame. The tape head
// position is captured at the moment the notice is raised; the head can move
// again before the queue drains.
type pendingNotice struct {
	notice notifications.Notice
	head   int
}

// New is the preferred method of initialisation for the Emulator type. The
// machine is built immediately. Call Run from the goroutine that is to be
// the logic thread.
func New(env *environment.Environment) (*Emulator, error) {
	emu := &Emulator{
		env:         env,
		Commands:    make(chan Command, CommandQueueCap),
		Status:      make(chan Status, StatusQueueCap),
		GUICommands: make(chan Command, CommandQueueCap),
		Keys:        make(chan keyboard.Event, keyboard.QueueCap),
		Frames:      make(chan video.Frame, FrameQueueCap),
		Display:     make(chan DisplayCommand, DisplayQueueCap),
		clk:         &wallClock{origin: time.Now()},
	}

	// notices from the machine land in the loop's queue
	env.Notify = emu

	err := emu.createMachine()
	if err != nil {
		return nil, err
	}

	return emu, nil
}

// Machine returns the machine being emulated. Once Run has been called
// nothing outside the loop goroutine may touch it.
func (emu *Emulator) Machine() *hardware.TRS80 {
	return emu.trs
}

// createMachine builds a machine from the configuration store, attaches
// the frame receiver and inserts the configured tape.
func (emu *Emulator) createMachine() error {
	trs, err := hardware.NewTRS80(emu.env)
	if err != nil {
		return err
	}
	trs.Mem.Video.AddReceiver(emu)
	emu.trs = trs
	emu.powered = true

	err = emu.insertFromConfig()
	if err != nil {
		// a bad tape must not stop the machine from starting
		logger.Logf(emu.env, "emulator", "%v", err)
	}

	return nil
}

// Run is the emulation loop. It blocks until a Terminate command arrives.
// The closing acknowledgments, a Destroyed status for the control thread
// and a Terminate instruction for the front-end, are sent before it
// returns.
func (emu *Emulator) Run() {
	for !emu.done {
		emu.frame()
	}

	emu.Status <- Status{Kind: StatusDestroyed}
	emu.Display <- DisplayCommand{Op: DisplayTerminate}
}

// frame is one iteration of the emulation loop.
func (emu *Emulator) frame() {
	start := emu.clk.now()

	// cycles owed for the previous frame
	t := emu.lastFrameNs*clocks.CPUClock + emu.carry
	emu.balance += t / nsPerSecond
	emu.carry = t % nsPerSecond

	// commands first, so a terminate or power command is honoured before
	// any cycles are spent
	for draining := true; draining; {
		select {
		case cmd, ok := <-emu.Commands:
			if !ok {
				panic("channel disconnect")
			}
			emu.apply(cmd)
		case cmd, ok := <-emu.GUICommands:
			if !ok {
				panic("channel disconnect")
			}
			emu.apply(cmd)
		default:
			draining = false
		}
	}

	if emu.done {
		return
	}

	// key events move to the matrix's own queue, which paces them
	for draining := true; draining; {
		select {
		case ev, ok := <-emu.Keys:
			if !ok {
				panic("channel disconnect")
			}
			emu.trs.Mem.Keyboard.Queue(ev)
		default:
			draining = false
		}
	}

	// run the machine for the owed cycles, carrying any overshoot
	if emu.powered && !emu.paused {
		for emu.balance > 0 {
			emu.balance -= int64(emu.trs.Step())
		}
	} else {
		// a stopped machine owes nothing. without this an unpause would
		// sprint through the accumulated backlog
		emu.balance = 0
	}

	emu.drainNotices()

	// report halt transitions
	if emu.trs.CPU.Halted != emu.halted {
		emu.halted = emu.trs.CPU.Halted
		emu.sendStatus(Status{Kind: StatusHalted, On: emu.halted})
	}

	// sleep so that at least a third of the target frame time passes per
	// iteration. the pacing itself comes from the cycle accounting above;
	// the sleep only stops the loop from spinning
	elapsed := emu.clk.now() - start
	if min := frameNs / 3; elapsed < min {
		emu.clk.sleep(min - elapsed)
	}

	last := emu.clk.now() - start
	if last > nsPerSecond {
		// a suspended process or a debugger stall must not make the
		// machine race to catch up. one second of cycles is the most a
		// frame can owe
		last = nsPerSecond
	}
	emu.lastFrameNs = last
}

// apply one command to the machine. Errors become status messages; the
// loop itself never stops for them.
func (emu *Emulator) apply(cmd Command) {
	var err error

	switch cmd.Op {
	case PowerOn:
		emu.trs.PowerOn()
		emu.powered = true
		emu.sendStatus(Status{Kind: StatusPower, On: true})
	case PowerOff:
		emu.trs.PowerOff()
		emu.powered = false
		emu.sendStatus(Status{Kind: StatusPower, On: false})
	case Reset:
		emu.trs.Reset(cmd.Full)
	case SwitchROM:
		err = emu.trs.SwitchROM(cmd.N)
	case Pause:
		switch cmd.Pause {
		case PauseToggle:
			emu.paused = !emu.paused
		case PauseSet:
			emu.paused = true
		case PauseClear:
			emu.paused = false
		}
		emu.sendStatus(Status{Kind: StatusPause, On: emu.paused})
	case Restore:
		err = emu.restore()
	case LoadROM:
		err = emu.trs.LoadROM(cmd.Path, cmd.N)
	case LoadRAM:
		err = emu.trs.LoadRAM(cmd.Path, cmd.N)
	case WipeRAM:
		emu.trs.Mem.RAM.Wipe()
	case WipeROM:
		emu.trs.Mem.ROM.Wipe()
	case WipeAll:
		emu.trs.Mem.RAM.Wipe()
		emu.trs.Mem.ROM.Wipe()
	case TapeInsert:
		err = emu.insert(cmd.Path, cmd.Format)
	case TapeEject:
		err = emu.trs.Mem.Cassette.Eject()
	case TapeErase:
		err = emu.trs.Mem.Cassette.Erase()
	case TapeSeek:
		err = emu.trs.Mem.Cassette.Seek(cmd.N)
	case TapeRewind:
		err = emu.trs.Mem.Cassette.Rewind()
	case ConfigChange:
		err = emu.configChange(cmd.Key, cmd.Value)
	case NMI:
		emu.trs.Mem.NMI = true
	case Terminate:
		emu.done = true
	default:
		err = curated.Errorf(UnknownCommand, cmd.Op)
	}

	if err != nil {
		emu.sendStatus(Status{Kind: StatusMessage, Message: err.Error()})
	}
}

// restore throws the machine away and builds a new one from the
// configuration store. The old machine keeps running if the build fails.
func (emu *Emulator) restore() error {
	// power off first so the deck flushes to its backing file, and drain
	// the resulting notices now so the persisted head position is current
	// before the new deck reads it
	emu.trs.PowerOff()
	emu.drainNotices()

	err := emu.createMachine()
	if err != nil {
		return err
	}

	emu.sendStatus(Status{Kind: StatusMessage, Message: "machine restored"})
	return nil
}

// insert makes the named file the backing tape. The configuration store is
// the source of truth for the backing file, so the store is updated first
// and the deck then loads from the store. Switching to a different file
// resets the persisted head position.
func (emu *Emulator) insert(path string, format cassette.Format) error {
	if path != emu.env.Config.CassetteFile.String() {
		err := emu.env.Config.Set("cassette_file_offset", "0")
		if err != nil {
			return err
		}
	}

	err := emu.env.Config.Set("cassette_file", path)
	if err != nil {
		return err
	}

	err = emu.env.Config.Set("cassette_file_format", format.String())
	if err != nil {
		return err
	}

	return emu.insertFromConfig()
}

// insertFromConfig loads the tape named by the configuration store at the
// persisted head position. A store with no tape configured is not an
// error.
func (emu *Emulator) insertFromConfig() error {
	filename := emu.env.Config.CassetteFile.String()
	if filename == "" || strings.EqualFold(filename, "none") {
		return nil
	}

	format, err := cassette.ParseFormat(emu.env.Config.CassetteFileFormat.String())
	if err != nil {
		return err
	}

	return emu.trs.Mem.Cassette.Insert(filename, format, emu.env.Config.CassetteFileOffset.Get().(int))
}

// configChange validates and stores an option change, and routes it to the
// component that has to react. Most options are read at the point of use
// and need no routing.
func (emu *Emulator) configChange(key string, value string) error {
	err := emu.env.Config.Set(key, value)
	if err != nil {
		return err
	}

	switch key {
	case "ram_size":
		err = emu.trs.ResizeRAM(emu.env.Config.RAMSize.Bytes())
	case "lowercase_mod":
		emu.trs.Mem.Video.SetLowercaseMod(emu.env.Config.LowercaseMod.Get().(bool))
	case "windowed_resolution", "fullscreen_resolution", "bg_color", "fg_color",
		"desktop_fullscreen_mode", "use_hw_accel", "use_vsync", "character_generator":
		emu.sendDisplay(DisplayCommand{Op: DisplayConfigChanged, Key: key})
	}

	return err
}

// drainNotices deals with the notices the machine sent while stepping. The
// head position of the tape is persisted on every motor stop, so a later
// Restore, or the next session, resumes where the program left off.
func (emu *Emulator) drainNotices() {
	for _, n := range emu.notices {
		switch n.notice {
		case notifications.NotifyCassetteMotorOff:
			err := emu.env.Config.Set("cassette_file_offset", strconv.Itoa(n.head))
			if err != nil {
				logger.Logf(emu.env, "emulator", "persisting tape position: %v", err)
			}
			emu.sendStatus(Status{Kind: StatusMessage, Message: "cassette: motor off"})
		case notifications.NotifyCassetteMotorOn:
			emu.sendStatus(Status{Kind: StatusMessage, Message: "cassette: motor on"})
		case notifications.NotifyCassetteReading:
			emu.sendStatus(Status{Kind: StatusMessage, Message: "cassette: reading"})
		case notifications.NotifyCassetteWriting:
			emu.sendStatus(Status{Kind: StatusMessage, Message: "cassette: writing"})
		case notifications.NotifyCassetteFailed:
			emu.sendStatus(Status{Kind: StatusMessage, Message: "cassette: failed, tape ejected"})
		}
	}
	emu.notices = emu.notices[:0]
}

// Notify implements the notifications.Notify interface. Notices arrive
// during Step() on the loop goroutine, so a plain slice is enough.
func (emu *Emulator) Notify(notice notifications.Notice) error {
	var head int
	if emu.trs != nil {
		head = emu.trs.Mem.Cassette.Head()
	}
	emu.notices = append(emu.notices, pendingNotice{notice: notice, head: head})
	return nil
}

// NewFrame implements the video.FrameReceiver interface. The send never
// blocks. When the front-end falls behind, the oldest queued frame is
// displaced to make room for the newest.
func (emu *Emulator) NewFrame(frame video.Frame) {
	select {
	case emu.Frames <- frame:
		return
	default:
	}

	select {
	case <-emu.Frames:
	default:
	}

	select {
	case emu.Frames <- frame:
	default:
	}
}

// sendStatus without blocking. A full queue means the control thread has
// stopped reading; the status goes to the log instead.
func (emu *Emulator) sendStatus(s Status) {
	select {
	case emu.Status <- s:
	default:
		logger.Logf(emu.env, "emulator", "status dropped: %v", s)
	}
}

// sendDisplay without blocking.
func (emu *Emulator) sendDisplay(dc DisplayCommand) {
	select {
	case emu.Display <- dc:
	default:
		logger.Logf(emu.env, "emulator", "display command dropped: %v", dc)
	}
}
