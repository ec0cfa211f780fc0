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

package keyboard

import (
	"github.com/jetsetilly/gopher80/environment"
	"github.com/jetsetilly/gopher80/logger"
)

// NumRows is the number of rows in the keyboard matrix.
const NumRows = 8

// QueueCap is the most events that can be waiting to be applied to the
// matrix. Beyond this the front-end is producing events far faster than any
// polling routine could consume them and new events are dropped.
const QueueCap = 128

// Event describes one transition of a key at a matrix intersection.
type Event struct {
	// the matrix intersection
	Row  int
	Mask uint8

	// true for a key press, false for a release
	Pressed bool

	// the minimum number of CPU cycles that must elapse after the previous
	// event has been applied before this event may be applied. pacing gives
	// the polling routine in ROM a chance to see every transition
	MinCycles int
}

// Matrix is the keyboard device. It is pure data; key transitions arrive
// from the front-end as Events and the running program reads the rows
// through the memory mapped window.
type Matrix struct {
	env *environment.Environment

	rows [NumRows]uint8

	// queued events not yet applied to the rows
	queue []Event

	// cycles accumulated since the last applied event
	accumulated int
}

// NewMatrix is the preferred method of initialisation for the Matrix type.
func NewMatrix(env *environment.Environment) *Matrix {
	return &Matrix{
		env:   env,
		queue: make([]Event, 0, QueueCap),
	}
}

// Reset releases every key and empties the event queue.
func (kb *Matrix) Reset() {
	for i := range kb.rows {
		kb.rows[i] = 0x00
	}
	kb.queue = kb.queue[:0]
	kb.accumulated = 0
}

// Queue adds an event to be applied to the matrix once its pacing delay has
// passed. If the queue is full the event is dropped.
func (kb *Matrix) Queue(ev Event) {
	if len(kb.queue) >= QueueCap {
		logger.Logf(kb.env, "keyboard", "event queue full: dropped %v", ev)
		return
	}
	kb.queue = append(kb.queue, ev)
}

// Tick advances the matrix by the number of CPU cycles just executed,
// applying any queued events whose pacing delay has been reached.
func (kb *Matrix) Tick(cycles int) {
	kb.accumulated += cycles

	for len(kb.queue) > 0 && kb.accumulated >= kb.queue[0].MinCycles {
		ev := kb.queue[0]
		kb.queue = kb.queue[1:]
		kb.accumulated = 0

		if ev.Row < 0 || ev.Row >= NumRows {
			logger.Logf(kb.env, "keyboard", "event for impossible row %d", ev.Row)
			continue
		}

		if ev.Pressed {
			kb.rows[ev.Row] |= ev.Mask
		} else {
			kb.rows[ev.Row] &^= ev.Mask
		}
	}
}

// Read returns the OR of every row whose bit is set in the selector. The
// selector is the low byte of the address being read, so a program can
// strobe several rows with a single load.
func (kb *Matrix) Read(selector uint8) uint8 {
	var v uint8
	for i := 0; i < NumRows; i++ {
		if selector&(0x01<<i) != 0x00 {
			v |= kb.rows[i]
		}
	}
	return v
}
