// Package memorymap facilitates the translation of bus addresses to indexes
// local to the area of memory the address falls within.
//
// The Model I hangs its devices directly off the Z80 address bus. The ROM,
// keyboard matrix, video memory and RAM all occupy fixed windows; the
// MapAddress() function says which window an address falls in and what the
// index into that window is.
//
//	idx, area := memorymap.MapAddress(address)
//
// Unlike many machines of the era there is no mirroring. Addresses that fall
// between the fixed windows select nothing at all and are reported as the
// Undefined area.
package memorymap
