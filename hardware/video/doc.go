// Package video emulates the video memory of the TRS-80. The display itself
// is not emulated here; the device snapshots its character cells once per
// frame's worth of CPU cycles and pushes the snapshot to whatever receivers
// are attached. Rasterisation is the receiver's business.
//
// The one piece of display behaviour that does live here is the lowercase
// quirk. Unmodified machines have no storage for bit 6 of a video byte and
// synthesise it from bits 5 and 7, which is why lowercase text typed into an
// unmodified Model I comes back as uppercase. The synthesis is applied when
// a byte is written, exactly as the hardware does it.
package video
