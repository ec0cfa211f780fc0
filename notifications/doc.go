// Package notifications allows communication from the machine directly to
// the emulation loop. This is used by the cassette deck to signal motor and
// drive state changes.
//
// Notifications are sometimes passed on to the control surface to indicate
// to the user the event that has happened (eg. recording started). For some
// notifications however, it is appropriate for the emulation loop to deal
// with the notification invisibly, such as persisting the tape position
// when the motor stops.
package notifications
