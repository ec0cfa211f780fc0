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

package performance

import (
	"fmt"
	"io"
	"time"

	"github.com/jetsetilly/gopher80/curated"
	"github.com/jetsetilly/gopher80/hardware"
)

// amount of time to allow the emulation to run before measurement begins.
// lets the host CPU governor and the Go runtime settle.
const leadtime = 2 * time.Second

// the timer channel is only checked every performanceBrake instructions.
// checking a channel after every instruction is measurably expensive.
const performanceBrake = 100

// Check the performance of the emulator.
//
// The machine runs uncapped for the specified duration and the number of
// video frames produced is compared against the 60Hz frame clock of the
// real Model I. A cpu profile, a memory profile, or both, will be created
// as defined by the Profile argument.
func Check(output io.Writer, profile Profile, trs *hardware.TRS80, duration string) error {
	dur, err := time.ParseDuration(duration)
	if err != nil {
		return curated.Errorf("performance: %v", err)
	}

	// starting frame number. adjusted when the leadtime concludes
	startFrame := trs.Mem.Video.FrameNum()

	runner := func() error {
		// timerChan signals false when the leadtime has elapsed and
		// measurement should begin; true when the measurement period has
		// concluded
		timerChan := make(chan bool)

		go func() {
			time.AfterFunc(leadtime, func() {
				timerChan <- false
				time.AfterFunc(dur, func() {
					timerChan <- true
				})
			})
		}()

		brake := 0

		return trs.Run(func() (bool, error) {
			brake++
			if brake >= performanceBrake {
				brake = 0

				select {
				case v := <-timerChan:
					if v {
						return false, nil
					}
					startFrame = trs.Mem.Video.FrameNum()
				default:
				}
			}
			return true, nil
		})
	}

	// launch runner directly or through the profiler, depending on supplied
	// arguments
	err = RunProfiler(profile, "performance", runner)
	if err != nil {
		return curated.Errorf("performance: %v", err)
	}

	numFrames := trs.Mem.Video.FrameNum() - startFrame
	fps, accuracy := CalcFPS(numFrames, dur.Seconds())
	output.Write([]byte(fmt.Sprintf("%.2f fps (%d frames in %.2f seconds) %.1f%%\n", fps, numFrames, dur.Seconds(), accuracy)))

	return nil
}
