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

package keyboard_test

import (
	"testing"

	"github.com/jetsetilly/gopher80/environment"
	"github.com/jetsetilly/gopher80/hardware/keyboard"
	"github.com/jetsetilly/gopher80/resources"
	"github.com/jetsetilly/gopher80/test"
)

func newTestEnv(t *testing.T) *environment.Environment {
	t.Helper()
	resources.SetBase(t.TempDir())
	env, err := environment.NewEnvironment("test", nil, nil)
	test.DemandSuccess(t, err)
	return env
}

func TestSelectorRead(t *testing.T) {
	kb := keyboard.NewMatrix(newTestEnv(t))

	kb.Queue(keyboard.Event{Row: 0, Mask: 0x02, Pressed: true})
	kb.Queue(keyboard.Event{Row: 3, Mask: 0x04, Pressed: true})
	kb.Tick(1)

	// rows 0 and 3 selected together
	test.ExpectEquality(t, kb.Read(0x09), 0x06)

	// row 3 alone
	test.ExpectEquality(t, kb.Read(0x08), 0x04)

	// row 0 alone
	test.ExpectEquality(t, kb.Read(0x01), 0x02)

	// unrelated rows are quiet
	test.ExpectEquality(t, kb.Read(0x02), 0x00)
	test.ExpectEquality(t, kb.Read(0x00), 0x00)
}

func TestPacing(t *testing.T) {
	kb := keyboard.NewMatrix(newTestEnv(t))

	kb.Queue(keyboard.Event{Row: 1, Mask: 0x01, Pressed: true, MinCycles: 100})
	kb.Queue(keyboard.Event{Row: 1, Mask: 0x01, Pressed: false, MinCycles: 100})

	// not enough cycles for the press yet
	kb.Tick(99)
	test.ExpectEquality(t, kb.Read(0x02), 0x00)

	// press applies. the release needs a hundred fresh cycles so the key
	// stays visible
	kb.Tick(1)
	test.ExpectEquality(t, kb.Read(0x02), 0x01)
	kb.Tick(99)
	test.ExpectEquality(t, kb.Read(0x02), 0x01)

	// release applies
	kb.Tick(1)
	test.ExpectEquality(t, kb.Read(0x02), 0x00)
}

func TestQueueBound(t *testing.T) {
	kb := keyboard.NewMatrix(newTestEnv(t))

	// fill the queue and then some. the overflow events are dropped rather
	// than applied out of order
	for i := 0; i < keyboard.QueueCap; i++ {
		kb.Queue(keyboard.Event{Row: 0, Mask: 0x01, Pressed: i%2 == 0})
	}
	kb.Queue(keyboard.Event{Row: 7, Mask: 0x80, Pressed: true})

	kb.Tick(1)

	// the in-queue events all applied (ending on a release); the dropped
	// event never did
	test.ExpectEquality(t, kb.Read(0x01), 0x00)
	test.ExpectEquality(t, kb.Read(0x80), 0x00)
}

func TestReset(t *testing.T) {
	kb := keyboard.NewMatrix(newTestEnv(t))

	kb.Queue(keyboard.Event{Row: 2, Mask: 0xff, Pressed: true})
	kb.Tick(1)
	test.ExpectEquality(t, kb.Read(0x04), 0xff)

	kb.Reset()
	test.ExpectEquality(t, kb.Read(0x04), 0x00)
}
