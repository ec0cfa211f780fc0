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

// Package cassette emulates the cassette recorder hanging off the back of
// the machine. The CPU talks to it through port 0xff: two bits of output
// level, a motor relay bit, and on the read side a single flipflop that
// latches when a pulse arrives off the tape.
//
// The deck decides for itself whether the machine is reading or writing.
// Pulses written soon after motor start mean a recording is underway; port
// reads with a quiet output line mean playback. The gap between the first
// two port reads even tells us which ROM is doing the reading, because the
// Level I and Level II read routines poll at very different rates, and the
// deck adjusts its tape speed to suit.
//
// Tapes are kept in one of two file formats. CAS is the decoded byte
// stream, compact and widely understood by other emulators. CPT records
// the individual output transitions with microsecond timestamps, which
// preserves recordings that no byte decoder can make sense of. Audio
// recordings of real tapes can be converted to CPT with ImportPCM, and any
// tape can be rendered back to audio with ExportWAV.
//
// The tape position survives motor stops. The emulation persists it to the
// configuration store when it hears the motor off notification, so a CLOAD
// split across two sessions finds the tape where it left off.
package cassette
