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

package notifications

// Notice describes events inside the machine that the emulation loop needs
// to react to. Notices carry no payload; the receiver queries the machine
// for any detail it needs.
type Notice string

// List of defined notifications.
const (
	// the cassette motor has been switched on or off by the running program.
	// the motor-off notice is the loop's cue to persist the tape position
	NotifyCassetteMotorOn  Notice = "NotifyCassetteMotorOn"
	NotifyCassetteMotorOff Notice = "NotifyCassetteMotorOff"

	// the cassette drive has settled into reading or writing
	NotifyCassetteReading Notice = "NotifyCassetteReading"
	NotifyCassetteWriting Notice = "NotifyCassetteWriting"

	// the cassette drive could not use the backing file and has latched the
	// failed state. it stays failed until the tape is ejected
	NotifyCassetteFailed Notice = "NotifyCassetteFailed"
)

// Notify is used for direct communication between the hardware and the
// emulation loop. The cassette deck is the only notifying device; its state
// changes outlive the step in which they happen and the loop must update
// the configuration store and the user-facing message stream accordingly.
type Notify interface {
	Notify(notice Notice) error
}
