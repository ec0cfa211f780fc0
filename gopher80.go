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

package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"runtime/debug"
	"strings"

	"github.com/jetsetilly/gopher80/control"
	"github.com/jetsetilly/gopher80/control/terminal"
	"github.com/jetsetilly/gopher80/control/terminal/colorterm"
	"github.com/jetsetilly/gopher80/control/terminal/plainterm"
	"github.com/jetsetilly/gopher80/emulator"
	"github.com/jetsetilly/gopher80/environment"
	"github.com/jetsetilly/gopher80/gui/sdlscreen"
	"github.com/jetsetilly/gopher80/hardware"
	"github.com/jetsetilly/gopher80/hardware/cassette"
	"github.com/jetsetilly/gopher80/logger"
	"github.com/jetsetilly/gopher80/modalflag"
	"github.com/jetsetilly/gopher80/performance"
	"github.com/jetsetilly/gopher80/resources"
	"github.com/jetsetilly/gopher80/statsview"
	"github.com/jetsetilly/gopher80/version"
)

type stateReq = string

const (
	// main thread should end as soon as possible.
	//
	// takes optional int argument, indicating the status code.
	reqQuit stateReq = "QUIT"

	// reset interrupt signal handling. used when an alternative handler is
	// more appropriate. the control loop provides its own handler once it
	// is running.
	//
	// takes no arguments.
	reqNoIntSig stateReq = "NOINTSIG"
)

type stateRequest struct {
	req  stateReq
	args interface{}
}

// GuiCreator facilitates the creation, servicing and destruction of GUIs
// that need to be run in the main thread.
//
// Note that there is no Create() function because we need the freedom to
// create the GUI how we want. Instead the creator is a channel which accepts
// a function that returns an instance of GuiCreator.
type GuiCreator interface {
	// cleanup resources used by the gui
	Destroy(io.Writer)

	// Service() should not pause or loop longer than necessary (if at all).
	// It MUST ONLY be called as part of a larger loop from the main thread.
	// It should service all gui events that are not safe to do in
	// sub-threads.
	Service()
}

// communication between the main() function and the launch() function. this
// is required because SDL requires window event handling (including
// creation) to occur on the main thread.
type mainSync struct {
	state   chan stateRequest
	creator chan func() (GuiCreator, error)

	// the result of creator will be returned on either of these two
	// channels.
	creation      chan GuiCreator
	creationError chan error
}

// the exit value when any thread has panicked. a panicking thread does not
// take the process down on its own; the message and stack are collected and
// flushed to stderr once the main thread has unwound.
const panicExitVal = 101

// the exit value for a startup failure or a command line error.
const errorExitVal = 1

var panics = make(chan string, 8)

// collectPanic records a recovered panic for the flush at process exit.
// safe to call from any goroutine.
func collectPanic(thread string, r interface{}) {
	select {
	case panics <- fmt.Sprintf("panic in the %s thread: %v\n\n%s", thread, r, string(debug.Stack())):
	default:
	}
}

// #mainthread
func main() {
	sync := &mainSync{
		state:         make(chan stateRequest),
		creator:       make(chan func() (GuiCreator, error)),
		creation:      make(chan GuiCreator),
		creationError: make(chan error),
	}

	// launch program as a go routine. further communication is through the
	// mainSync instance
	go launch(sync)

	exitVal := guiThread(sync)

	// flush panics collected from any of the threads, now that the gui
	// thread has unwound and cannot be holding the terminal
	flushed := false
	for len(panics) > 0 {
		fmt.Fprintln(os.Stderr, <-panics)
		flushed = true
	}
	if flushed {
		exitVal = panicExitVal
	}

	fmt.Print("\r")
	os.Exit(exitVal)
}

// guiThread is the body of the main thread: gui creation, gui servicing and
// state requests all happen here. the returned value is for os.Exit(),
// although a collected panic overrides it.
func guiThread(sync *mainSync) (exitVal int) {
	defer func() {
		if r := recover(); r != nil {
			collectPanic("main", r)
			exitVal = panicExitVal
		}
	}()

	// #ctrlc default handler. can be turned off with reqNoIntSig request
	intChan := make(chan os.Signal, 1)
	signal.Notify(intChan, os.Interrupt)

	// loop until done is true. every iteration of the loop we listen for:
	//
	//  1. interrupt signals
	//  2. new gui creation functions
	//  3. state requests
	//  4. anything in the Service() function of the most recently created GUI
	//
	done := false
	var gui GuiCreator
	for !done {
		select {
		case <-intChan:
			fmt.Println("\r")
			done = true

		case creator := <-sync.creator:
			var err error

			// destroy existing gui
			if gui != nil {
				gui.Destroy(os.Stderr)
			}

			gui, err = creator()
			if err != nil {
				sync.creationError <- err

				// a nil stored in an interface variable does not equate to
				// nil. assign explicitly so the gui checks below work
				gui = nil
			} else {
				sync.creation <- gui
			}

		case state := <-sync.state:
			switch state.req {
			case reqQuit:
				done = true
				if gui != nil {
					gui.Destroy(os.Stderr)
				}

				if state.args != nil {
					if v, ok := state.args.(int); ok {
						exitVal = v
					} else {
						panic(fmt.Sprintf("cannot convert %s arguments into int", reqQuit))
					}
				}

			case reqNoIntSig:
				signal.Reset(os.Interrupt)
				if state.args != nil {
					panic(fmt.Sprintf("%s does not accept any arguments", reqNoIntSig))
				}
			}

		default:
			if gui != nil {
				gui.Service()
			}
		}
	}

	return exitVal
}

// launch is called from main() as a goroutine. uses mainSync instance to
// indicate gui creation and to quit.
func launch(sync *mainSync) {
	defer func() {
		if r := recover(); r != nil {
			collectPanic("launch", r)
			sync.state <- stateRequest{req: reqQuit, args: panicExitVal}
		}
	}()

	md := &modalflag.Modes{Output: os.Stdout}
	md.NewArgs(os.Args[1:])
	md.AddSubModes("RUN", "TAPE", "PERFORMANCE", "VERSION")

	p, err := md.Parse()
	switch p {
	case modalflag.ParseHelp:
		sync.state <- stateRequest{req: reqQuit}
		return

	case modalflag.ParseError:
		fmt.Printf("* error: %v\n", err)
		sync.state <- stateRequest{req: reqQuit, args: errorExitVal}
		return
	}

	switch md.Mode() {
	case "RUN":
		err = run(md, sync)

	case "TAPE":
		err = tape(md)

	case "PERFORMANCE":
		err = perform(md)

	case "VERSION":
		err = printVersion(md)
	}

	if err != nil {
		fmt.Printf("* error in %s mode: %s\n", md.String(), err)
		sync.state <- stateRequest{req: reqQuit, args: errorExitVal}
		return
	}

	sync.state <- stateRequest{req: reqQuit}
}

// run is the default mode: the emulator itself. the emulation loop runs on
// its own goroutine, the control terminal runs here and the SDL front-end
// runs on the main thread.
func run(md *modalflag.Modes, sync *mainSync) error {
	md.NewMode()

	base := md.AddString("c", "", "path to the configuration directory")
	rom1 := md.AddBool("1", false, "select the Level I BASIC ROM")
	rom2 := md.AddBool("2", false, "select the Level II BASIC ROM")
	rom3 := md.AddBool("3", false, "select the miscellaneous ROM")
	log := md.AddBool("log", false, "echo the log to stdout during startup")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	if *base != "" {
		resources.SetBase(*base)
	}

	if *log {
		logger.SetEcho(os.Stdout, true)
	}

	env, err := environment.NewEnvironment("", nil, nil)
	if err != nil {
		return err
	}

	emu, err := emulator.New(env)
	if err != nil {
		return err
	}

	// a rom slot flag overrides the default_rom option for this run
	slot := 0
	for i, f := range []*bool{rom1, rom2, rom3} {
		if *f {
			if slot != 0 {
				return fmt.Errorf("only one rom slot can be selected")
			}
			slot = i + 1
		}
	}
	if slot != 0 && slot != emu.Machine().ROMSlot() {
		err = emu.Machine().SwitchROM(slot)
		if err != nil {
			return err
		}
	}

	// a tape named on the command line is queued for the loop to insert,
	// replacing whatever the cassette_file option put in the deck
	switch len(md.RemainingArgs()) {
	case 0:
	case 1:
		format, err := tapeFormat(md.GetArg(0))
		if err != nil {
			return err
		}
		emu.Commands <- emulator.Command{Op: emulator.TapeInsert, Path: md.GetArg(0), Format: format}
	default:
		return fmt.Errorf("too many arguments for %s mode", md)
	}

	// create gui on the main thread
	sync.creator <- func() (GuiCreator, error) {
		return sdlscreen.NewScreen(env, emu)
	}

	select {
	case <-sync.creation:
	case err := <-sync.creationError:
		return err
	}

	// turn off fallback ctrl-c handling. the control loop uses the
	// interrupt signal to pause the emulation and to quit gracefully
	sync.state <- stateRequest{req: reqNoIntSig}

	// the emulation loop gets its own goroutine
	logicEnded := make(chan struct{})
	go func() {
		defer close(logicEnded)
		defer func() {
			if r := recover(); r != nil {
				collectPanic("emulation", r)

				// unblock the control loop, which would otherwise wait
				// forever for the terminate handshake
				select {
				case emu.Status <- emulator.Status{Kind: emulator.StatusDestroyed}:
				default:
				}
			}
		}()
		emu.Run()
	}()

	// the color terminal needs stdin to be a real terminal
	var term terminal.Terminal
	if stat, serr := os.Stdin.Stat(); serr == nil && stat.Mode()&os.ModeCharDevice != 0 {
		term = &colorterm.ColorTerminal{}
	} else {
		term = &plainterm.PlainTerminal{}
	}

	ctl, err := control.New(env, term, emu.Commands, emu.Status)
	if err != nil {
		return err
	}

	err = ctl.Run()

	// the control loop has completed the terminate handshake by the time
	// Run() returns, so this is a short wait
	<-logicEnded

	return err
}

// tape is the tape toolbox mode. nothing is emulated; the files are worked
// on directly.
func tape(md *modalflag.Modes) error {
	md.NewMode()
	md.AddSubModes("INFO", "CONVERT", "IMPORT", "EXPORT")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	env, err := environment.NewEnvironment("tape", nil, nil)
	if err != nil {
		return err
	}

	switch md.Mode() {
	case "INFO":
		md.NewMode()

		p, err := md.Parse()
		if err != nil || p != modalflag.ParseContinue {
			return err
		}

		if len(md.RemainingArgs()) != 1 {
			return fmt.Errorf("a tape file is required for %s mode", md)
		}

		format, err := tapeFormat(md.GetArg(0))
		if err != nil {
			return err
		}

		info, err := cassette.Info(md.GetArg(0), format)
		if err != nil {
			return err
		}
		fmt.Fprintln(md.Output, info)

	case "CONVERT":
		md.NewMode()

		baud := md.AddInt("baud", 500, "baud rate for pulse synthesis: 500 or 250")

		p, err := md.Parse()
		if err != nil || p != modalflag.ParseContinue {
			return err
		}

		if len(md.RemainingArgs()) != 2 {
			return fmt.Errorf("an input and an output file are required for %s mode", md)
		}

		srcFormat, err := tapeFormat(md.GetArg(0))
		if err != nil {
			return err
		}
		dstFormat, err := tapeFormat(md.GetArg(1))
		if err != nil {
			return err
		}
		if srcFormat == dstFormat {
			return fmt.Errorf("input and output are both %s files", srcFormat)
		}

		speed, err := tapeSpeed(*baud)
		if err != nil {
			return err
		}

		err = cassette.Convert(env, md.GetArg(0), srcFormat, md.GetArg(1), dstFormat, speed)
		if err != nil {
			return err
		}

	case "IMPORT":
		md.NewMode()

		p, err := md.Parse()
		if err != nil || p != modalflag.ParseContinue {
			return err
		}

		if len(md.RemainingArgs()) != 2 {
			return fmt.Errorf("an audio file and an output file are required for %s mode", md)
		}

		err = cassette.ImportPCM(env, md.GetArg(0), md.GetArg(1))
		if err != nil {
			return err
		}

	case "EXPORT":
		md.NewMode()

		baud := md.AddInt("baud", 500, "baud rate for pulse synthesis: 500 or 250")

		p, err := md.Parse()
		if err != nil || p != modalflag.ParseContinue {
			return err
		}

		if len(md.RemainingArgs()) != 2 {
			return fmt.Errorf("an input and an output file are required for %s mode", md)
		}

		format, err := tapeFormat(md.GetArg(0))
		if err != nil {
			return err
		}

		speed, err := tapeSpeed(*baud)
		if err != nil {
			return err
		}

		err = cassette.ExportWAV(env, md.GetArg(0), format, speed, md.GetArg(1))
		if err != nil {
			return err
		}
	}

	return nil
}

// perform is the headless performance mode. no gui, no control terminal,
// just the machine running flat out for a fixed duration.
func perform(md *modalflag.Modes) error {
	md.NewMode()

	duration := md.AddString("duration", "5s", "run duration (note: there is a 2s overhead)")
	profile := md.AddString("profile", "none", "profiling: NONE, CPU, MEM or ALL")
	stats := md.AddBool("statsview", false, "serve runtime statistics (requires the statsview build tag)")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	prof, err := performance.ParseProfileString(*profile)
	if err != nil {
		return err
	}

	if *stats {
		if !statsview.Available() {
			return fmt.Errorf("statsview is not available in this build")
		}
		statsview.Launch(md.Output)
	}

	env, err := environment.NewEnvironment("performance", nil, nil)
	if err != nil {
		return err
	}

	trs, err := hardware.NewTRS80(env)
	if err != nil {
		return err
	}

	return performance.Check(md.Output, prof, trs, *duration)
}

func printVersion(md *modalflag.Modes) error {
	md.NewMode()

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	v, _ := version.Version()
	fmt.Fprintf(md.Output, "%s (%s)\n", version.ApplicationName, v)

	return nil
}

// tapeFormat decides the format of a tape file by its extension.
func tapeFormat(filename string) (cassette.Format, error) {
	return cassette.ParseFormat(strings.TrimPrefix(filepath.Ext(filename), "."))
}

// tapeSpeed converts a baud rate flag into a cassette speed.
func tapeSpeed(baud int) (cassette.Speed, error) {
	switch baud {
	case 500:
		return cassette.Baud500, nil
	case 250:
		return cassette.Baud250, nil
	}
	return cassette.Baud500, fmt.Errorf("unsupported baud rate: %d", baud)
}
