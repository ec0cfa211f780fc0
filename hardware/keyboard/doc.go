// Package keyboard emulates the keyboard matrix of the TRS-80. The matrix
// is wired directly into the address space; reading an address in the
// keyboard window returns the OR of every row selected by the low byte of
// the address.
//
// The matrix knows nothing about the host keyboard. The front-end translates
// host keys into matrix row/mask events (see the userinput package) and the
// events are applied with a pacing delay so that a short key tap is still
// visible to the ROM's polling routine.
package keyboard
