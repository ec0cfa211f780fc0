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

package control

import (
	"io"
	"os"
	"os/signal"
	"strings"
	"sync"
	"time"

	"github.com/jetsetilly/gopher80/control/terminal"
	"github.com/jetsetilly/gopher80/control/terminal/commandline"
	"github.com/jetsetilly/gopher80/curated"
	"github.com/jetsetilly/gopher80/emulator"
	"github.com/jetsetilly/gopher80/environment"
	"github.com/jetsetilly/gopher80/hardware/cassette"
	"github.com/jetsetilly/gopher80/logger"
)

// Sentinal errors used inside the control loop.
const (
	// the emulation loop has acknowledged a terminate command. the loop is
	// over when this surfaces
	emulationEnded = "control: emulation ended"
)

// how long to wait for the emulation loop to acknowledge a terminate
// command before giving up on it.
const destroyTimeout = 2 * time.Second

// log tags counted as "emulator" messages by the MESSAGES command. every
// other tag belongs to the emulated machine.
var emulatorTags = map[string]bool{
	"config":      true,
	"control":     true,
	"emulator":    true,
	"performance": true,
	"sdl":         true,
	"tape":        true,
}

// Control is the textual control surface. It owns the terminal; nothing
// else in the process may read from or write to it while Run is active.
type Control struct {
	env  *environment.Environment
	term terminal.Terminal
	cmds *commandline.Commands

	commands chan<- emulator.Command
	status   <-chan emulator.Status

	// log entries are echoed into this queue by whichever goroutine logged
	// them, and printed by the terminal between reads
	logLines chan string

	// guards the message visibility switches, which the logger's echo
	// filter reads from other goroutines
	crit         sync.Mutex
	showMachine  bool
	showEmulator bool

	paused bool
	done   bool
}

// New is the preferred method of initialisation for the Control type. The
// commands and status channels connect it to the emulation loop.
func New(env *environment.Environment, term terminal.Terminal,
	commands chan<- emulator.Command, status <-chan emulator.Status) (*Control, error) {

	ctl := &Control{
		env:          env,
		term:         term,
		commands:     commands,
		status:       status,
		logLines:     make(chan string, 64),
		showMachine:  true,
		showEmulator: true,
	}

	var err error
	ctl.cmds, err = commandline.ParseCommandTemplate(commandTemplate)
	if err != nil {
		return nil, err
	}
	err = ctl.cmds.AddHelp(cmdHelp, helps)
	if err != nil {
		return nil, err
	}

	return ctl, nil
}

// Run is the control loop. It blocks until the user asks to leave or until
// the emulation loop announces its own end. The terminate handshake with
// the emulation loop has completed by the time it returns.
func (ctl *Control) Run() error {
	err := ctl.term.Initialise()
	if err != nil {
		return curated.Errorf("control: %v", err)
	}
	defer ctl.term.CleanUp()

	ctl.term.RegisterTabCompletion(commandline.NewTabCompletion(ctl.cmds))

	// echo the log to the terminal through the logLines queue. the echo
	// writer runs on whichever goroutine logged, so it must not print
	logger.SetEcho(&logEcho{queue: ctl.logLines}, true)
	logger.SetEchoFilter(ctl.echoFilter)
	defer logger.SetEcho(nil, false)
	defer logger.SetEchoFilter(nil)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt)
	defer signal.Stop(sig)

	events := &terminal.ReadEvents{
		Status:        ctl.status,
		StatusHandler: ctl.onStatus,
		Log:           ctl.logLines,
		LogHandler: func(s string) {
			ctl.term.TermPrintLine(terminal.StyleLog, s)
		},
		Signal: sig,
		SignalHandler: func(_ os.Signal) error {
			return curated.Errorf(terminal.UserInterrupt)
		},
	}

	buffer := make([]byte, 255)
	for !ctl.done {
		n, err := ctl.term.TermRead(buffer, ctl.prompt(), events)

		if err != nil {
			switch {
			case curated.Is(err, emulationEnded):
				ctl.done = true
			case curated.Is(err, terminal.UserInterrupt) || err == io.EOF:
				ctl.quit()
			default:
				return curated.Errorf("control: %v", err)
			}
			continue
		}

		input := strings.TrimSpace(string(buffer[:n]))
		if input == "" {
			continue
		}

		err = ctl.dispatch(input)
		if err != nil {
			ctl.term.TermPrintLine(terminal.StyleError, err.Error())
		}
	}

	return nil
}

func (ctl *Control) prompt() terminal.Prompt {
	return terminal.Prompt{
		Content: "gopher80",
		Paused:  ctl.paused,
	}
}

// onStatus prints a status update. Returning an error breaks the terminal
// out of its read, which is how the end of the emulation loop reaches a
// control loop that is sitting at the prompt.
func (ctl *Control) onStatus(s emulator.Status) error {
	switch s.Kind {
	case emulator.StatusMessage:
		ctl.term.TermPrintLine(terminal.StyleStatus, s.Message)
	case emulator.StatusHalted:
		if s.On {
			ctl.term.TermPrintLine(terminal.StyleStatus, "cpu: halted")
		} else {
			ctl.term.TermPrintLine(terminal.StyleStatus, "cpu: running")
		}
	case emulator.StatusPower:
		if s.On {
			ctl.term.TermPrintLine(terminal.StyleStatus, "machine: power on")
		} else {
			ctl.term.TermPrintLine(terminal.StyleStatus, "machine: power off")
		}
	case emulator.StatusPause:
		ctl.paused = s.On
		if s.On {
			ctl.term.TermPrintLine(terminal.StyleStatus, "emulation paused")
		} else {
			ctl.term.TermPrintLine(terminal.StyleStatus, "emulation resumed")
		}
	case emulator.StatusDestroyed:
		return curated.Errorf(emulationEnded)
	}
	return nil
}

// quit asks the emulation loop to terminate and waits for the
// acknowledgment. The wait is bounded; a loop that has stopped answering
// must not wedge the terminal forever.
func (ctl *Control) quit() {
	ctl.commands <- emulator.Command{Op: emulator.Terminate}

	wait := time.NewTimer(destroyTimeout)
	defer wait.Stop()

	for !ctl.done {
		select {
		case s, ok := <-ctl.status:
			if !ok {
				panic("channel disconnect")
			}
			if s.Kind == emulator.StatusDestroyed {
				ctl.done = true
			}
		case <-wait.C:
			logger.Log(ctl.env, "control", "no acknowledgment from emulation loop")
			ctl.done = true
		}
	}
}

// dispatch validates one line of input against the command template and
// acts on it.
func (ctl *Control) dispatch(input string) error {
	// allow "key=value" in a CONFIG CHANGE without insisting on the spaces
	// the template wants. quoted input is left alone
	if strings.Contains(input, "=") && !strings.Contains(input, "\"") {
		input = strings.Replace(input, "=", " = ", 1)
	}

	tokens := commandline.TokeniseInput(input)
	err := ctl.cmds.ValidateTokens(tokens)
	if err != nil {
		return err
	}

	tokens.Reset()
	command, _ := tokens.Get()

	switch strings.ToUpper(command) {
	case cmdHelp:
		if topic, ok := tokens.Get(); ok {
			ctl.printLines(terminal.StyleHelp, ctl.cmds.Help(topic))
		} else {
			ctl.printLines(terminal.StyleHelp, ctl.cmds.HelpOverview())
		}

	case cmdMessages:
		ctl.messages(tokens)

	case cmdMachine:
		return ctl.machine(tokens)

	case cmdMemory:
		return ctl.memory(tokens)

	case cmdCassette:
		return ctl.cassette(tokens)

	case cmdConfig:
		return ctl.config(tokens)

	case cmdLog:
		arg, _ := tokens.Get()
		switch strings.ToUpper(arg) {
		case "ALL":
			w := &lineWriter{}
			logger.Write(w)
			w.flush(ctl.term)
		case "CLEAR":
			logger.Clear()
		default:
			w := &lineWriter{}
			logger.Tail(w, 20)
			w.flush(ctl.term)
		}

	case cmdExit, cmdQuit:
		ctl.quit()
	}

	return nil
}

// messages applies a MESSAGES command. The scope argument selects which of
// the two visibility switches the action applies to.
func (ctl *Control) messages(tokens *commandline.Tokens) {
	action, _ := tokens.Get()
	scope, _ := tokens.Get()

	if strings.ToUpper(action) == "CLEAR" {
		logger.Clear()
		return
	}

	machine := false
	emu := false
	switch strings.ToUpper(scope) {
	case "MACHINE":
		machine = true
	case "EMULATOR":
		emu = true
	case "ALL":
		machine = true
		emu = true
	}

	ctl.crit.Lock()
	defer ctl.crit.Unlock()

	switch strings.ToUpper(action) {
	case "SHOW":
		ctl.showMachine = ctl.showMachine || machine
		ctl.showEmulator = ctl.showEmulator || emu
	case "HIDE":
		ctl.showMachine = ctl.showMachine && !machine
		ctl.showEmulator = ctl.showEmulator && !emu
	case "TOGGLE":
		if machine {
			ctl.showMachine = !ctl.showMachine
		}
		if emu {
			ctl.showEmulator = !ctl.showEmulator
		}
	}
}

func (ctl *Control) machine(tokens *commandline.Tokens) error {
	sub, _ := tokens.Get()

	switch strings.ToUpper(sub) {
	case "POWER":
		arg, _ := tokens.Get()
		if strings.ToUpper(arg) == "ON" {
			ctl.send(emulator.Command{Op: emulator.PowerOn})
		} else {
			ctl.send(emulator.Command{Op: emulator.PowerOff})
		}

	case "RESET":
		arg, _ := tokens.Get()
		ctl.send(emulator.Command{Op: emulator.Reset, Full: strings.ToUpper(arg) == "FULL"})

	case "SWITCH-ROM":
		arg, _ := tokens.Get()
		slot, err := ParseNumber(arg)
		if err != nil {
			return err
		}
		ctl.send(emulator.Command{Op: emulator.SwitchROM, N: slot})

	case "PAUSE":
		mode := emulator.PauseSet
		switch arg, _ := tokens.Get(); strings.ToUpper(arg) {
		case "OFF":
			mode = emulator.PauseClear
		case "TOGGLE":
			mode = emulator.PauseToggle
		}
		ctl.send(emulator.Command{Op: emulator.Pause, Pause: mode})

	case "UNPAUSE":
		ctl.send(emulator.Command{Op: emulator.Pause, Pause: emulator.PauseClear})

	case "RESTORE":
		ctl.send(emulator.Command{Op: emulator.Restore})
	}

	return nil
}

func (ctl *Control) memory(tokens *commandline.Tokens) error {
	sub, _ := tokens.Get()

	switch strings.ToUpper(sub) {
	case "LOAD":
		chip, _ := tokens.Get()
		path, _ := tokens.Get()

		offset := 0
		if arg, ok := tokens.Get(); ok {
			var err error
			offset, err = ParseNumber(arg)
			if err != nil {
				return err
			}
		}

		op := emulator.LoadRAM
		if strings.ToUpper(chip) == "ROM" {
			op = emulator.LoadROM
		}
		ctl.send(emulator.Command{Op: op, Path: path, N: offset})

	case "WIPE":
		switch arg, _ := tokens.Get(); strings.ToUpper(arg) {
		case "RAM":
			ctl.send(emulator.Command{Op: emulator.WipeRAM})
		case "ROM":
			ctl.send(emulator.Command{Op: emulator.WipeROM})
		case "ALL":
			ctl.send(emulator.Command{Op: emulator.WipeAll})
		}
	}

	return nil
}

func (ctl *Control) cassette(tokens *commandline.Tokens) error {
	sub, _ := tokens.Get()

	switch strings.ToUpper(sub) {
	case "INSERT":
		arg, _ := tokens.Get()
		format, err := cassette.ParseFormat(arg)
		if err != nil {
			return err
		}
		path, _ := tokens.Get()
		ctl.send(emulator.Command{Op: emulator.TapeInsert, Format: format, Path: path})

	case "EJECT":
		ctl.send(emulator.Command{Op: emulator.TapeEject})

	case "ERASE":
		ctl.send(emulator.Command{Op: emulator.TapeErase})

	case "SEEK":
		arg, _ := tokens.Get()
		pos, err := ParseNumber(arg)
		if err != nil {
			return err
		}
		ctl.send(emulator.Command{Op: emulator.TapeSeek, N: pos})

	case "REWIND":
		ctl.send(emulator.Command{Op: emulator.TapeRewind})
	}

	return nil
}

func (ctl *Control) config(tokens *commandline.Tokens) error {
	sub, _ := tokens.Get()

	switch strings.ToUpper(sub) {
	case "LIST":
		ctl.printLines(terminal.StyleFeedback, ctl.env.Config.List())

	case "SHOW":
		key, _ := tokens.Get()
		value, err := ctl.env.Config.Get(key)
		if err != nil {
			return err
		}
		ctl.term.TermPrintLine(terminal.StyleFeedback, value)

	case "CHANGE":
		key, _ := tokens.Get()
		_, _ = tokens.Get() // the equals sign
		value, _ := tokens.Get()
		ctl.send(emulator.Command{Op: emulator.ConfigChange, Key: key, Value: value})
	}

	return nil
}

// send a command to the emulation loop.
func (ctl *Control) send(cmd emulator.Command) {
	ctl.commands <- cmd
}

// echoFilter decides whether a log entry with the given tag is printed on
// the terminal. Called by the logger from any goroutine.
func (ctl *Control) echoFilter(tag string) bool {
	ctl.crit.Lock()
	defer ctl.crit.Unlock()
	if emulatorTags[tag] {
		return ctl.showEmulator
	}
	return ctl.showMachine
}

// printLines prints a possibly multi-line string one terminal line at a
// time.
func (ctl *Control) printLines(style terminal.Style, s string) {
	for _, l := range strings.Split(s, "\n") {
		ctl.term.TermPrintLine(style, l)
	}
}

// logEcho queues logged lines for the terminal to print between reads. The
// logger calls Write from whichever goroutine logged, so printing directly
// from here would interleave with the prompt.
type logEcho struct {
	queue chan string
}

func (e *logEcho) Write(p []byte) (int, error) {
	for _, l := range strings.Split(strings.TrimRight(string(p), "\n"), "\n") {
		select {
		case e.queue <- l:
		default:
			// the terminal has fallen a long way behind. drop the line
			// rather than stall the goroutine that logged it
		}
	}
	return len(p), nil
}

// lineWriter collects writes for printing to the terminal afterwards.
type lineWriter struct {
	s strings.Builder
}

func (w *lineWriter) Write(p []byte) (int, error) {
	return w.s.Write(p)
}

func (w *lineWriter) flush(out terminal.Output) {
	for _, l := range strings.Split(strings.TrimRight(w.s.String(), "\n"), "\n") {
		out.TermPrintLine(terminal.StyleLog, l)
	}
}
